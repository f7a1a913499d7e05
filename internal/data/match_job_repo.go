package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/Sakshamyadav19/HireMe-Backend/internal/core"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/data/pgxutil"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/domain/model"
)

var (
	_ core.MatchJobRepository = (*MatchJobRepo)(nil)
	_ core.ReaperRepository   = (*MatchJobRepo)(nil)
)

// MatchJobRepoConfig holds configuration options for the match job repository.
type MatchJobRepoConfig struct {
	Logger       *slog.Logger
	TimeProvider TimeProvider
}

// MatchJobRepo stores match job status rows.
type MatchJobRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
	logger       *slog.Logger
}

// NewMatchJobRepo creates a new MatchJobRepo.
func NewMatchJobRepo(db *sql.DB, cfg MatchJobRepoConfig) *MatchJobRepo {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &MatchJobRepo{
		DB:           db,
		timeProvider: timeProviderOrReal(cfg.TimeProvider),
		logger:       logger.With("component", "match_job_repo"),
	}
}

const matchJobColumns = `id, user_id, status, error, created_at, updated_at`

// Create inserts a pending job.
func (r *MatchJobRepo) Create(ctx context.Context, id, userID string) (*model.MatchJob, error) {
	if id == "" {
		return nil, ErrJobIDRequired
	}
	if userID == "" {
		return nil, ErrUserIDRequired
	}

	now := r.timeProvider.Now()
	var job *model.MatchJob
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO match_jobs (id, user_id, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $4)
			RETURNING `+matchJobColumns,
			id, userID, string(model.MatchJobPending), now)
		if err != nil {
			return err
		}
		job, err = pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.MatchJob])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create match job: %w", err)
	}
	return job, nil
}

// GetByID returns a job regardless of owner.
func (r *MatchJobRepo) GetByID(ctx context.Context, id string) (*model.MatchJob, error) {
	return r.get(ctx, `SELECT `+matchJobColumns+` FROM match_jobs WHERE id = $1`, id)
}

// GetForUser returns the job only if userID owns it. Unknown ids and foreign
// ownership both surface as ErrMatchJobNotFound.
func (r *MatchJobRepo) GetForUser(ctx context.Context, id, userID string) (*model.MatchJob, error) {
	return r.get(ctx, `SELECT `+matchJobColumns+` FROM match_jobs WHERE id = $1 AND user_id = $2`, id, userID)
}

func (r *MatchJobRepo) get(ctx context.Context, query string, args ...any) (*model.MatchJob, error) {
	var job *model.MatchJob
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		job, err = pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.MatchJob])
		return err
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrMatchJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get match job: %w", err)
	}
	return job, nil
}

// allowedPredecessors lists the statuses from which target may be reached.
func allowedPredecessors(target model.MatchJobStatus) []string {
	all := []model.MatchJobStatus{
		model.MatchJobPending,
		model.MatchJobProcessing,
		model.MatchJobCompleted,
		model.MatchJobFailed,
	}
	out := make([]string, 0, len(all))
	for _, s := range all {
		if s.CanTransitionTo(target) {
			out = append(out, string(s))
		}
	}
	return out
}

// UpdateStatus applies a transition guarded in SQL so terminal rows never change.
func (r *MatchJobRepo) UpdateStatus(ctx context.Context, update model.MatchJobStatusUpdate) (bool, error) {
	if err := update.Validate(); err != nil {
		return false, fmt.Errorf("update match job status: %w", err)
	}

	res, err := r.DB.ExecContext(ctx, `
		UPDATE match_jobs
		SET status = $2,
		    error = $3,
		    updated_at = $4
		WHERE id = $1
		  AND status = ANY($5)
	`, update.ID, string(update.Status), update.Error, r.timeProvider.Now(), allowedPredecessors(update.Status))
	if err != nil {
		return false, fmt.Errorf("update match job status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		r.logger.WarnContext(ctx, "match job status not updated", "job_id", update.ID, "status", update.Status)
	}
	return n > 0, nil
}
