package data

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sakshamyadav19/HireMe-Backend/internal/domain/model"
)

func TestCatalogCursor_RoundTrip(t *testing.T) {
	at := time.Date(2025, 3, 4, 5, 6, 7, 123456000, time.UTC)
	token, err := EncodeCatalogCursor(&model.CatalogEntry{ID: "job-42", CreatedAt: at})
	require.NoError(t, err)

	cur, err := decodeCatalogCursor(token)
	require.NoError(t, err)
	assert.Equal(t, "job-42", cur.ID)
	assert.True(t, at.Equal(cur.CreatedAt))
	assert.NoError(t, ValidateCatalogCursor(token))
}

func TestCatalogCursor_Invalid(t *testing.T) {
	tests := map[string]string{
		"not base64":      "%%%",
		"not json":        base64.RawURLEncoding.EncodeToString([]byte("nope")),
		"missing id":      base64.RawURLEncoding.EncodeToString([]byte(`{"created_at":"2025-01-01T00:00:00Z"}`)),
		"missing time":    base64.RawURLEncoding.EncodeToString([]byte(`{"id":"x"}`)),
		"padded encoding": base64.URLEncoding.EncodeToString([]byte(`{"id":"x"}`)),
		"empty json":      base64.RawURLEncoding.EncodeToString([]byte(`{}`)),
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, ValidateCatalogCursor(token), ErrInvalidCursor)
		})
	}

	_, err := EncodeCatalogCursor(nil)
	assert.ErrorIs(t, err, ErrInvalidCursor)
}

func TestPageCursors(t *testing.T) {
	next, prev, err := pageCursors(nil)
	require.NoError(t, err)
	assert.Nil(t, next)
	assert.Nil(t, prev)

	newest := &model.CatalogEntry{ID: "b", CreatedAt: time.Unix(200, 0).UTC()}
	oldest := &model.CatalogEntry{ID: "a", CreatedAt: time.Unix(100, 0).UTC()}
	next, prev, err = pageCursors([]*model.CatalogEntry{newest, oldest})
	require.NoError(t, err)

	nc, err := decodeCatalogCursor(*next)
	require.NoError(t, err)
	pc, err := decodeCatalogCursor(*prev)
	require.NoError(t, err)
	assert.Equal(t, "a", nc.ID)
	assert.Equal(t, "b", pc.ID)
}

func TestBuildCatalogPageQuery(t *testing.T) {
	cur := &catalogCursor{CreatedAt: time.Unix(100, 0).UTC(), ID: "j5"}
	eng := model.DomainEngineering

	t.Run("first page", func(t *testing.T) {
		q, args := buildCatalogPageQuery(model.PageNext, nil, nil, 20)
		assert.Contains(t, q, "ORDER BY created_at DESC, id DESC LIMIT $1")
		assert.NotContains(t, q, "WHERE")
		assert.Equal(t, []any{20}, args)
	})

	t.Run("next with domain", func(t *testing.T) {
		q, args := buildCatalogPageQuery(model.PageNext, cur, &eng, 20)
		assert.Contains(t, q, "WHERE domain = $1 AND (created_at, id) < ($2::timestamptz, $3::text)")
		assert.Contains(t, q, "ORDER BY created_at DESC, id DESC LIMIT $4")
		assert.Equal(t, []any{"Engineering", cur.CreatedAt, "j5", 20}, args)
	})

	t.Run("prev reads ascending", func(t *testing.T) {
		q, args := buildCatalogPageQuery(model.PagePrev, cur, nil, 10)
		assert.Contains(t, q, "(created_at, id) > ($1::timestamptz, $2::text)")
		assert.Contains(t, q, "ORDER BY created_at ASC, id ASC LIMIT $3")
		assert.Len(t, args, 3)
	})
}

func TestPrefixedCatalogColumns(t *testing.T) {
	cols := prefixedCatalogColumns("j")
	assert.True(t, len(cols) > 0)
	assert.Contains(t, cols, "j.id, j.source, j.title")
	assert.Contains(t, cols, "j.updated_at")
	assert.NotContains(t, cols, "\n")
}

func TestAllowedPredecessors(t *testing.T) {
	assert.Equal(t, []string{"pending"}, allowedPredecessors(model.MatchJobProcessing))
	assert.Equal(t, []string{"processing"}, allowedPredecessors(model.MatchJobCompleted))
	assert.Equal(t, []string{"pending", "processing"}, allowedPredecessors(model.MatchJobFailed))
	assert.Empty(t, allowedPredecessors(model.MatchJobPending))
}
