package data

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/pgvector/pgvector-go"

	"github.com/Sakshamyadav19/HireMe-Backend/internal/core"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/data/pgxutil"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/domain/model"
)

var _ core.NearestNeighborIndex = (*VectorIndex)(nil)

// pgvector rejects hnsw.ef_search above this value.
const maxEfSearch = 1000

// DefaultExactScanLimit is the largest id restriction ranked by an exact scan.
const DefaultExactScanLimit = 5000

// VectorIndexOptions configures approximate search.
type VectorIndexOptions struct {
	// EfSearch is the floor for hnsw.ef_search. Each query raises it to k so an
	// index scan can yield k rows.
	EfSearch int
	// ExactScanLimit ranks restricted searches with at most this many ids by exact
	// distance instead of the HNSW index. Zero always uses the index.
	ExactScanLimit int
	// IterativeScan sets hnsw.iterative_scan (strict_order or relaxed_order,
	// pgvector 0.8+) so restricted index scans keep reading until k rows pass.
	// Empty leaves the server setting alone.
	IterativeScan string
}

// VectorIndex runs cosine nearest-neighbor queries against the HNSW index on jobs.job_embedding.
type VectorIndex struct {
	DB   *sql.DB
	opts VectorIndexOptions
}

// NewVectorIndex creates a VectorIndex.
func NewVectorIndex(db *sql.DB, opts VectorIndexOptions) *VectorIndex {
	return &VectorIndex{DB: db, opts: opts}
}

const (
	vectorSearchSQL = `
		SELECT id, 1 - (job_embedding <=> $1) AS similarity
		FROM jobs
		WHERE job_embedding IS NOT NULL
		ORDER BY job_embedding <=> $1, id
		LIMIT $2
	`
	// The materialized CTE re-sorts index output, which relaxed_order may return
	// slightly out of order.
	vectorSearchRestrictedSQL = `
		WITH nearest AS MATERIALIZED (
			SELECT id, job_embedding <=> $1 AS distance
			FROM jobs
			WHERE job_embedding IS NOT NULL
			  AND id = ANY($3)
			ORDER BY job_embedding <=> $1
			LIMIT $2
		)
		SELECT id, 1 - distance AS similarity
		FROM nearest
		ORDER BY distance, id
	`
	// The CTE hides job_embedding ordering from the planner, so the HNSW index
	// is never used and every restricted id is ranked.
	vectorSearchExactSQL = `
		WITH candidates AS MATERIALIZED (
			SELECT id, job_embedding
			FROM jobs
			WHERE job_embedding IS NOT NULL
			  AND id = ANY($3)
		)
		SELECT id, 1 - (job_embedding <=> $1) AS similarity
		FROM candidates
		ORDER BY job_embedding <=> $1, id
		LIMIT $2
	`
)

// searchPlan is the query and session settings for one Search call.
type searchPlan struct {
	query         string
	exact         bool
	efSearch      int
	iterativeScan string
}

func (v *VectorIndex) plan(restrict []string, k int) searchPlan {
	if restrict == nil {
		return searchPlan{query: vectorSearchSQL, efSearch: efSearchFor(v.opts.EfSearch, k)}
	}
	if len(restrict) <= v.opts.ExactScanLimit {
		return searchPlan{query: vectorSearchExactSQL, exact: true}
	}
	return searchPlan{
		query:         vectorSearchRestrictedSQL,
		efSearch:      efSearchFor(v.opts.EfSearch, k),
		iterativeScan: v.opts.IterativeScan,
	}
}

// efSearchFor returns max(floor, k) bounded by pgvector's limit.
func efSearchFor(floor, k int) int {
	return min(max(floor, k), maxEfSearch)
}

// Search returns up to k entries ordered by cosine similarity descending. A nil
// restrict searches the full catalog; an empty one returns nothing.
func (v *VectorIndex) Search(ctx context.Context, vector []float32, restrict []string, k int) ([]model.Neighbor, error) {
	if len(vector) == 0 || k <= 0 || (restrict != nil && len(restrict) == 0) {
		return []model.Neighbor{}, nil
	}

	plan := v.plan(restrict, k)
	args := []any{pgvector.NewVector(vector), k}
	if restrict != nil {
		args = append(args, restrict)
	}

	neighbors := make([]model.Neighbor, 0, k)
	err := pgxutil.WithTx(ctx, v.DB, &sql.TxOptions{ReadOnly: true}, func(tx *sql.Tx) error {
		if err := applySearchSettings(ctx, tx, plan); err != nil {
			return err
		}

		rows, err := tx.QueryContext(ctx, plan.query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var n model.Neighbor
			if err := rows.Scan(&n.ID, &n.Similarity); err != nil {
				return err
			}
			neighbors = append(neighbors, n)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	return neighbors, nil
}

// applySearchSettings sets transaction-local HNSW parameters for plan.
func applySearchSettings(ctx context.Context, tx *sql.Tx, plan searchPlan) error {
	if plan.exact {
		return nil
	}
	if plan.efSearch > 0 {
		if _, err := tx.ExecContext(ctx, `SELECT set_config('hnsw.ef_search', $1, true)`,
			strconv.Itoa(plan.efSearch)); err != nil {
			return fmt.Errorf("set ef_search: %w", err)
		}
	}
	if plan.iterativeScan != "" {
		if _, err := tx.ExecContext(ctx, `SELECT set_config('hnsw.iterative_scan', $1, true)`,
			plan.iterativeScan); err != nil {
			return fmt.Errorf("set iterative_scan: %w", err)
		}
	}
	return nil
}
