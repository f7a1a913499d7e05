package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Sakshamyadav19/HireMe-Backend/internal/core"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/data/pgxutil"
)

// Advisory lock keys for reaper operations, used with two-arg pg_try_advisory_xact_lock.
const (
	advisoryLockReaperMajor  = 2000
	advisoryLockReaperDelete = 1
)

// DeleteOldMatchJobs deletes terminal jobs with the given status whose last update
// is older than MaxAge, at most BatchSize rows per call. Concurrent reapers skip the
// batch when another instance holds the advisory lock.
func (r *MatchJobRepo) DeleteOldMatchJobs(ctx context.Context, params core.DeleteOldMatchJobsParams) (int64, error) {
	if !params.Status.Terminal() {
		return 0, fmt.Errorf("refusing to delete non-terminal status %q", params.Status)
	}
	if params.BatchSize <= 0 {
		return 0, errors.New("batch size must be greater than zero")
	}
	if params.MaxAge <= 0 {
		return 0, errors.New("max age must be greater than zero")
	}

	var rowsAffected int64
	err := pgxutil.WithTx(ctx, r.DB, nil, func(tx *sql.Tx) error {
		var locked bool
		if err := tx.QueryRowContext(ctx, "SELECT pg_try_advisory_xact_lock($1, $2)",
			advisoryLockReaperMajor, advisoryLockReaperDelete).Scan(&locked); err != nil {
			return fmt.Errorf("acquire advisory lock: %w", err)
		}
		if !locked {
			return nil
		}

		cutoff := r.timeProvider.Now().Add(-params.MaxAge)
		res, err := tx.ExecContext(ctx, `
			DELETE FROM match_jobs
			WHERE id IN (
				SELECT id FROM match_jobs
				WHERE status = $1
				  AND updated_at < $2
				ORDER BY updated_at
				LIMIT $3
			)
		`, string(params.Status), cutoff, params.BatchSize)
		if err != nil {
			return fmt.Errorf("delete old match jobs: %w", err)
		}

		ra, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		rowsAffected = ra
		return nil
	})
	if err != nil {
		return 0, err
	}
	return rowsAffected, nil
}
