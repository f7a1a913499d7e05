package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/Sakshamyadav19/HireMe-Backend/internal/core"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/domain/model"
	apperrors "github.com/Sakshamyadav19/HireMe-Backend/internal/errors"
)

// ResultServiceOptions groups dependencies for ResultService.
type ResultServiceOptions struct {
	Repo   core.MatchResultCacheRepository // Required: per-user result cache
	Logger *slog.Logger                    // Optional: structured logger
}

// ResultService serves pages of a user's cached match list.
type ResultService struct {
	repo   core.MatchResultCacheRepository
	logger *slog.Logger
}

// NewResultService constructs a ResultService.
func NewResultService(opts ResultServiceOptions) (*ResultService, error) {
	if opts.Repo == nil {
		return nil, errors.New("MatchResultCacheRepository is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ResultService{repo: opts.Repo, logger: logger.With("component", "result_service")}, nil
}

// Save replaces the user's cached match list.
func (s *ResultService) Save(ctx context.Context, userID string, resp model.MatchResponse) error {
	if strings.TrimSpace(userID) == "" {
		return apperrors.ValidationField("user_id", "user id is required")
	}
	if err := s.repo.Save(ctx, userID, resp); err != nil {
		return fmt.Errorf("save match results: %w", err)
	}
	return nil
}

// Clear drops the user's cached match list and reports whether one existed.
func (s *ResultService) Clear(ctx context.Context, userID string) (bool, error) {
	if strings.TrimSpace(userID) == "" {
		return false, apperrors.ValidationField("user_id", "user id is required")
	}
	cleared, err := s.repo.Clear(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("clear match results: %w", err)
	}
	if cleared {
		s.logger.DebugContext(ctx, "cleared match results", "user_id", userID)
	}
	return cleared, nil
}

// Page returns one page of the user's cached list. A user with no cached list gets an
// empty page rather than an error.
func (s *ResultService) Page(ctx context.Context, req model.MatchResultsPageRequest) (*model.MatchResultsPage, error) {
	if strings.TrimSpace(req.UserID) == "" {
		return nil, apperrors.ValidationField("user_id", "user id is required")
	}
	dir := req.Direction
	if dir == "" {
		dir = model.PageNext
	}
	if dir != model.PageNext && dir != model.PagePrev {
		return nil, apperrors.ValidationField("dir", fmt.Sprintf("invalid direction %q (valid options: next, prev)", dir))
	}
	cursor, err := parseOffsetCursor(req.Cursor)
	if err != nil {
		return nil, err
	}
	if dir == model.PagePrev && cursor == nil {
		return nil, apperrors.ValidationField("cursor", "cursor is required for dir=prev")
	}

	cached, err := s.repo.Get(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("load match results: %w", err)
	}
	if cached == nil {
		return &model.MatchResultsPage{Matches: []model.MatchResult{}}, nil
	}

	page := PaginateMatches(cached.Matches, cursor, dir, model.ClampPageLimit(req.Limit))
	return &page, nil
}

func parseOffsetCursor(raw *string) (*int, error) {
	if raw == nil {
		return nil, nil //nolint:nilnil // absent cursor is not an error
	}
	n, err := strconv.Atoi(strings.TrimSpace(*raw))
	if err != nil || n < 0 {
		return nil, apperrors.ValidationField("cursor", "cursor must be a non-negative integer")
	}
	return &n, nil
}

// PaginateMatches slices matches using an offset as the cursor.
//
// next reads [cursor, cursor+limit) starting at 0 without a cursor. prev reads the
// limit entries before cursor. Cursors past the end are clamped to the list length.
// The returned cursors are offsets and are nil when there is nothing in that direction.
func PaginateMatches(matches []model.MatchResult, cursor *int, dir model.PageDirection, limit int) model.MatchResultsPage {
	total := len(matches)
	offset := func(n int) *string {
		s := strconv.Itoa(n)
		return &s
	}

	var start, end int
	page := model.MatchResultsPage{TotalMatches: total}

	if dir == model.PagePrev {
		end = total
		if cursor != nil && *cursor < total {
			end = *cursor
		}
		start = max(0, end-limit)
		if end < total {
			page.NextCursor = offset(end)
		}
	} else {
		if cursor != nil {
			start = min(*cursor, total)
		}
		end = min(start+limit, total)
		if end < total {
			page.NextCursor = offset(end)
		}
	}
	if start > 0 {
		page.PrevCursor = offset(start)
	}

	page.Matches = make([]model.MatchResult, end-start)
	copy(page.Matches, matches[start:end])
	return page
}
