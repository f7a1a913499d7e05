package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Sakshamyadav19/HireMe-Backend/internal/core"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/domain/model"
	apperrors "github.com/Sakshamyadav19/HireMe-Backend/internal/errors"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/mocks"
)

func rankedMatches(n int) []model.MatchResult {
	out := make([]model.MatchResult, n)
	for i := range out {
		out[i] = model.MatchResult{
			Job:   model.CatalogSummary{ID: "job-" + strconv.Itoa(i)},
			Score: float64(100 - i),
		}
	}
	return out
}

func ids(matches []model.MatchResult) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Job.ID
	}
	return out
}

func intPtr(n int) *int { return &n }

func strPtr(s string) *string { return &s }

func TestPaginateMatches(t *testing.T) {
	matches := rankedMatches(5)

	tests := []struct {
		name     string
		cursor   *int
		dir      model.PageDirection
		limit    int
		wantIDs  []string
		wantNext *string
		wantPrev *string
	}{
		{"first page", nil, model.PageNext, 2, []string{"job-0", "job-1"}, strPtr("2"), nil},
		{"middle page", intPtr(2), model.PageNext, 2, []string{"job-2", "job-3"}, strPtr("4"), strPtr("2")},
		{"last page", intPtr(4), model.PageNext, 2, []string{"job-4"}, nil, strPtr("4")},
		{"whole list", nil, model.PageNext, 10, []string{"job-0", "job-1", "job-2", "job-3", "job-4"}, nil, nil},
		{"cursor past end", intPtr(9), model.PageNext, 2, []string{}, nil, strPtr("5")},
		{"prev from middle", intPtr(4), model.PagePrev, 2, []string{"job-2", "job-3"}, strPtr("4"), strPtr("2")},
		{"prev to start", intPtr(2), model.PagePrev, 2, []string{"job-0", "job-1"}, strPtr("2"), nil},
		{"prev short first page", intPtr(1), model.PagePrev, 2, []string{"job-0"}, strPtr("1"), nil},
		{"prev past end", intPtr(9), model.PagePrev, 2, []string{"job-3", "job-4"}, nil, strPtr("3")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := PaginateMatches(matches, tt.cursor, tt.dir, tt.limit)
			assert.Equal(t, 5, page.TotalMatches)
			assert.Equal(t, tt.wantIDs, ids(page.Matches))
			assert.Equal(t, tt.wantNext, page.NextCursor)
			assert.Equal(t, tt.wantPrev, page.PrevCursor)
		})
	}
}

func TestPaginateMatches_NextThenPrevRoundTrip(t *testing.T) {
	matches := rankedMatches(7)

	first := PaginateMatches(matches, nil, model.PageNext, 3)
	require.NotNil(t, first.NextCursor)
	next, err := strconv.Atoi(*first.NextCursor)
	require.NoError(t, err)

	second := PaginateMatches(matches, &next, model.PageNext, 3)
	require.NotNil(t, second.PrevCursor)
	prev, err := strconv.Atoi(*second.PrevCursor)
	require.NoError(t, err)

	back := PaginateMatches(matches, &prev, model.PagePrev, 3)
	assert.Equal(t, ids(first.Matches), ids(back.Matches))
}

func TestPaginateMatches_HundredTwentyByFifty(t *testing.T) {
	matches := rankedMatches(120)

	tests := []struct {
		name      string
		cursor    *int
		dir       model.PageDirection
		wantStart int
		wantEnd   int
		wantNext  *string
		wantPrev  *string
	}{
		{"first page", nil, model.PageNext, 0, 50, strPtr("50"), nil},
		{"second page", intPtr(50), model.PageNext, 50, 100, strPtr("100"), strPtr("50")},
		{"tail page", intPtr(100), model.PageNext, 100, 120, nil, strPtr("100")},
		{"prev from tail", intPtr(100), model.PagePrev, 50, 100, strPtr("100"), strPtr("50")},
		{"prev to head", intPtr(50), model.PagePrev, 0, 50, strPtr("50"), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := PaginateMatches(matches, tt.cursor, tt.dir, 50)
			assert.Equal(t, 120, page.TotalMatches)
			assert.Equal(t, ids(matches[tt.wantStart:tt.wantEnd]), ids(page.Matches))
			assert.Equal(t, tt.wantNext, page.NextCursor)
			assert.Equal(t, tt.wantPrev, page.PrevCursor)
		})
	}
}

func TestPaginateMatches_WalksReassembleList(t *testing.T) {
	for _, total := range []int{0, 1, 49, 50, 51, 120} {
		for _, limit := range []int{1, 7, 50} {
			matches := rankedMatches(total)
			want := ids(matches)

			var forward []string
			var cursor *int
			for pages := 0; ; pages++ {
				require.LessOrEqual(t, pages, total+1, "next walk did not terminate (total=%d limit=%d)", total, limit)
				page := PaginateMatches(matches, cursor, model.PageNext, limit)
				forward = append(forward, ids(page.Matches)...)
				if page.NextCursor == nil {
					break
				}
				next, err := strconv.Atoi(*page.NextCursor)
				require.NoError(t, err)
				cursor = &next
			}
			assert.Equal(t, want, nilIfEmpty(forward), "next walk total=%d limit=%d", total, limit)

			var backward []string
			end := total
			cursor = &end
			for pages := 0; ; pages++ {
				require.LessOrEqual(t, pages, total+1, "prev walk did not terminate (total=%d limit=%d)", total, limit)
				page := PaginateMatches(matches, cursor, model.PagePrev, limit)
				backward = append(ids(page.Matches), backward...)
				if page.PrevCursor == nil {
					break
				}
				prev, err := strconv.Atoi(*page.PrevCursor)
				require.NoError(t, err)
				cursor = &prev
			}
			assert.Equal(t, want, nilIfEmpty(backward), "prev walk total=%d limit=%d", total, limit)
		}
	}
}

func nilIfEmpty(s []string) []string {
	if len(s) == 0 {
		return []string{}
	}
	return s
}

func TestPaginateMatches_DoesNotAliasInput(t *testing.T) {
	matches := rankedMatches(3)
	page := PaginateMatches(matches, nil, model.PageNext, 2)
	page.Matches[0].Score = -1
	assert.Equal(t, float64(100), matches[0].Score)
}

func TestResultService_Page(t *testing.T) {
	ctx := context.Background()

	t.Run("no cached list yields empty page", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockMatchResultCacheRepository(ctrl)
		repo.EXPECT().Get(ctx, "user-1").Return(nil, nil)

		svc, err := NewResultService(ResultServiceOptions{Repo: repo})
		require.NoError(t, err)

		page, err := svc.Page(ctx, model.MatchResultsPageRequest{UserID: "user-1"})
		require.NoError(t, err)
		assert.Equal(t, 0, page.TotalMatches)
		assert.NotNil(t, page.Matches)
		assert.Empty(t, page.Matches)
		assert.Nil(t, page.NextCursor)
		assert.Nil(t, page.PrevCursor)
	})

	t.Run("clamps limit and defaults direction", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockMatchResultCacheRepository(ctrl)
		repo.EXPECT().Get(ctx, "user-1").Return(&core.CachedMatches{
			UserID:       "user-1",
			TotalMatches: 120,
			Matches:      rankedMatches(120),
		}, nil)

		svc, err := NewResultService(ResultServiceOptions{Repo: repo})
		require.NoError(t, err)

		page, err := svc.Page(ctx, model.MatchResultsPageRequest{UserID: "user-1", Limit: 500})
		require.NoError(t, err)
		assert.Len(t, page.Matches, model.MaxPageLimit)
		assert.Equal(t, strPtr(strconv.Itoa(model.MaxPageLimit)), page.NextCursor)
	})

	t.Run("repository error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockMatchResultCacheRepository(ctrl)
		repo.EXPECT().Get(ctx, "user-1").Return(nil, errors.New("db down"))

		svc, err := NewResultService(ResultServiceOptions{Repo: repo})
		require.NoError(t, err)

		_, err = svc.Page(ctx, model.MatchResultsPageRequest{UserID: "user-1"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db down")
	})
}

func TestResultService_PageValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, err := NewResultService(ResultServiceOptions{Repo: mocks.NewMockMatchResultCacheRepository(ctrl)})
	require.NoError(t, err)

	tests := []struct {
		name      string
		req       model.MatchResultsPageRequest
		wantField string
	}{
		{"missing user", model.MatchResultsPageRequest{}, "user_id"},
		{"non-numeric cursor", model.MatchResultsPageRequest{UserID: "u", Cursor: strPtr("abc")}, "cursor"},
		{"negative cursor", model.MatchResultsPageRequest{UserID: "u", Cursor: strPtr("-1")}, "cursor"},
		{"prev without cursor", model.MatchResultsPageRequest{UserID: "u", Direction: model.PagePrev}, "cursor"},
		{"unknown direction", model.MatchResultsPageRequest{UserID: "u", Direction: "up"}, "dir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Page(context.Background(), tt.req)
			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err))
			assert.Equal(t, tt.wantField, apperrors.GetField(err))
		})
	}
}

func TestResultService_SaveAndClear(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockMatchResultCacheRepository(ctrl)

	resp := model.MatchResponse{CandidateID: "c", TotalMatches: 1, Matches: rankedMatches(1)}
	repo.EXPECT().Save(ctx, "user-1", resp).Return(nil)
	repo.EXPECT().Clear(ctx, "user-1").Return(true, nil)
	repo.EXPECT().Clear(ctx, "user-2").Return(false, nil)

	svc, err := NewResultService(ResultServiceOptions{Repo: repo})
	require.NoError(t, err)

	require.NoError(t, svc.Save(ctx, "user-1", resp))

	cleared, err := svc.Clear(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, cleared)

	cleared, err = svc.Clear(ctx, "user-2")
	require.NoError(t, err)
	assert.False(t, cleared)

	_, err = svc.Clear(ctx, " ")
	assert.True(t, apperrors.IsValidation(err))
	assert.True(t, apperrors.IsValidation(svc.Save(ctx, "", resp)))
}

func TestNewResultService_RequiresRepo(t *testing.T) {
	_, err := NewResultService(ResultServiceOptions{})
	require.Error(t, err)
}
