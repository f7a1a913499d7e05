package data

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Sakshamyadav19/HireMe-Backend/internal/core"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/data/pgxutil"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/domain/model"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/errors"
)

var _ core.SavedJobRepository = (*SavedJobRepo)(nil)

// SavedJobRepoOptions configures a SavedJobRepo.
type SavedJobRepoOptions struct {
	TimeProvider TimeProvider
	Logger       *slog.Logger
}

// SavedJobRepo stores user bookmarks in saved_jobs.
type SavedJobRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
	logger       *slog.Logger
}

// NewSavedJobRepo creates a new SavedJobRepo.
func NewSavedJobRepo(db *sql.DB, opts SavedJobRepoOptions) *SavedJobRepo {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SavedJobRepo{
		DB:           db,
		timeProvider: timeProviderOrReal(opts.TimeProvider),
		logger:       logger.With("component", "saved_job_repo"),
	}
}

// Add bookmarks jobID for userID. Saving twice keeps the original timestamp.
// A jobID missing from the catalog surfaces as a foreign key AppError.
func (r *SavedJobRepo) Add(ctx context.Context, userID, jobID string) error {
	if userID == "" {
		return ErrUserIDRequired
	}
	if jobID == "" {
		return ErrJobIDRequired
	}
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO saved_jobs (user_id, job_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, job_id) DO NOTHING
	`, userID, jobID, r.timeProvider.Now())
	if err != nil {
		return errors.MapDBError(err)
	}
	return nil
}

// Remove deletes a bookmark and reports whether it existed.
func (r *SavedJobRepo) Remove(ctx context.Context, userID, jobID string) (bool, error) {
	if userID == "" {
		return false, ErrUserIDRequired
	}
	res, err := r.DB.ExecContext(ctx, `DELETE FROM saved_jobs WHERE user_id = $1 AND job_id = $2`, userID, jobID)
	if err != nil {
		return false, fmt.Errorf("remove saved job: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

type savedJobRow struct {
	model.CatalogEntry
	SavedAt time.Time `db:"saved_at"`
}

// List returns the user's bookmarks newest first, joined with their catalog rows.
func (r *SavedJobRepo) List(ctx context.Context, userID string) ([]*model.SavedJob, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}

	var rows []savedJobRow
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		result, err := conn.Query(ctx, `
			SELECT `+prefixedCatalogColumns("j")+`, s.created_at AS saved_at
			FROM saved_jobs s
			JOIN jobs j ON j.id = s.job_id
			WHERE s.user_id = $1
			ORDER BY s.created_at DESC, s.job_id
		`, userID)
		if err != nil {
			return err
		}
		rows, err = pgx.CollectRows(result, pgx.RowToStructByName[savedJobRow])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list saved jobs: %w", err)
	}

	out := make([]*model.SavedJob, 0, len(rows))
	for i := range rows {
		entry := rows[i].CatalogEntry
		out = append(out, &model.SavedJob{UserID: userID, Job: &entry, CreatedAt: rows[i].SavedAt})
	}
	return out, nil
}
