package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Sakshamyadav19/HireMe-Backend/internal/core"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/domain/model"
)

var _ core.MatchResultCacheRepository = (*MatchResultCacheRepo)(nil)

// matchCacheVersion tags the stored payload layout. Rows written with any other
// version are treated as absent and removed on read.
const matchCacheVersion = 1

type matchCacheEnvelope struct {
	Version int                 `json:"v"`
	Matches []model.MatchResult `json:"matches"`
}

// MatchResultCacheRepoOptions configures a MatchResultCacheRepo.
type MatchResultCacheRepoOptions struct {
	TimeProvider TimeProvider
	Logger       *slog.Logger
}

// MatchResultCacheRepo keeps the latest ranked list per user in match_result_cache.
type MatchResultCacheRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
	logger       *slog.Logger
}

// NewMatchResultCacheRepo creates a new MatchResultCacheRepo.
func NewMatchResultCacheRepo(db *sql.DB, opts MatchResultCacheRepoOptions) *MatchResultCacheRepo {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &MatchResultCacheRepo{
		DB:           db,
		timeProvider: timeProviderOrReal(opts.TimeProvider),
		logger:       logger.With("component", "match_result_cache_repo"),
	}
}

// Save replaces the user's cached list.
func (r *MatchResultCacheRepo) Save(ctx context.Context, userID string, resp model.MatchResponse) error {
	if userID == "" {
		return ErrUserIDRequired
	}
	matches := resp.Matches
	if matches == nil {
		matches = []model.MatchResult{}
	}
	payload, err := json.Marshal(matchCacheEnvelope{Version: matchCacheVersion, Matches: matches})
	if err != nil {
		return fmt.Errorf("marshal cached matches: %w", err)
	}

	_, err = r.DB.ExecContext(ctx, `
		INSERT INTO match_result_cache (user_id, total_matches, matches_json, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET total_matches = EXCLUDED.total_matches,
		    matches_json = EXCLUDED.matches_json,
		    created_at = EXCLUDED.created_at
	`, userID, len(matches), payload, r.timeProvider.Now())
	if err != nil {
		return fmt.Errorf("save cached matches: %w", err)
	}
	return nil
}

// Get returns the user's cached list, or nil when none is stored or the stored
// payload cannot be read.
func (r *MatchResultCacheRepo) Get(ctx context.Context, userID string) (*core.CachedMatches, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}

	var (
		total     int
		payload   []byte
		createdAt time.Time
	)
	err := r.DB.QueryRowContext(ctx, `
		SELECT total_matches, matches_json, created_at
		FROM match_result_cache
		WHERE user_id = $1
	`, userID).Scan(&total, &payload, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cached matches: %w", err)
	}

	var env matchCacheEnvelope
	if err := json.Unmarshal(payload, &env); err != nil || env.Version != matchCacheVersion {
		r.logger.WarnContext(ctx, "discarding unreadable match cache entry",
			"user_id", userID, "version", env.Version, "error", err)
		if _, clearErr := r.Clear(ctx, userID); clearErr != nil {
			r.logger.ErrorContext(ctx, "failed to discard match cache entry", "user_id", userID, "error", clearErr)
		}
		return nil, nil
	}
	if env.Matches == nil {
		env.Matches = []model.MatchResult{}
	}

	return &core.CachedMatches{
		UserID:       userID,
		TotalMatches: total,
		Matches:      env.Matches,
		CreatedAt:    createdAt,
	}, nil
}

// Clear deletes the user's cached list.
func (r *MatchResultCacheRepo) Clear(ctx context.Context, userID string) (bool, error) {
	if userID == "" {
		return false, ErrUserIDRequired
	}
	res, err := r.DB.ExecContext(ctx, `DELETE FROM match_result_cache WHERE user_id = $1`, userID)
	if err != nil {
		return false, fmt.Errorf("clear cached matches: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}
