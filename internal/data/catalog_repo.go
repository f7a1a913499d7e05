package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"

	"github.com/Sakshamyadav19/HireMe-Backend/internal/core"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/data/pgxutil"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/domain/model"
)

var _ core.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo reads the jobs table. Catalog rows are written by ingestion; the only
// mutation performed here is the embedding backfill.
type CatalogRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
	logger       *slog.Logger
}

// CatalogRepoOptions configures a CatalogRepo.
type CatalogRepoOptions struct {
	TimeProvider TimeProvider
	Logger       *slog.Logger
}

// NewCatalogRepo creates a new CatalogRepo.
func NewCatalogRepo(db *sql.DB, opts CatalogRepoOptions) *CatalogRepo {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogRepo{
		DB:           db,
		timeProvider: timeProviderOrReal(opts.TimeProvider),
		logger:       logger.With("component", "catalog_repo"),
	}
}

const catalogColumns = `
  id,
  source,
  title,
  company_name,
  description,
  domain,
  subdomain,
  years_experience_min,
  years_experience_max,
  skills_required,
  location,
  country,
  remote,
  salary_min,
  salary_max,
  job_meaning,
  created_at,
  updated_at
`

// prefixedCatalogColumns qualifies catalogColumns with a table alias for joins.
func prefixedCatalogColumns(alias string) string {
	fields := strings.FieldsFunc(catalogColumns, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\n'
	})
	for i, f := range fields {
		fields[i] = alias + "." + f
	}
	return strings.Join(fields, ", ")
}

// Filter returns ids of entries passing the domain, experience-overlap and country
// predicates in a single scan.
func (r *CatalogRepo) Filter(ctx context.Context, f model.CatalogFilter) ([]string, error) {
	const query = `
		SELECT id
		FROM jobs
		WHERE domain = $1
		  AND years_experience_min <= $2::int + $3::int
		  AND years_experience_max >= $2::int - $3::int
		  AND ($4::text IS NULL OR country IS NULL OR country = $4::text)
		ORDER BY created_at DESC, id DESC
	`

	var ids []string
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, string(f.Domain), f.ExperienceYears, f.Window, f.Country)
		if err != nil {
			return err
		}
		ids, err = pgx.CollectRows(rows, pgx.RowTo[string])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("filter catalog: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// GetByID returns a single entry.
func (r *CatalogRepo) GetByID(ctx context.Context, id string) (*model.CatalogEntry, error) {
	var entry *model.CatalogEntry
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT `+catalogColumns+` FROM jobs WHERE id = $1`, id)
		if err != nil {
			return err
		}
		entry, err = pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.CatalogEntry])
		return err
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCatalogEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get catalog entry: %w", err)
	}
	return entry, nil
}

// GetByIDs returns the entries among ids that exist, in the order requested.
func (r *CatalogRepo) GetByIDs(ctx context.Context, ids []string) ([]*model.CatalogEntry, error) {
	if len(ids) == 0 {
		return []*model.CatalogEntry{}, nil
	}

	var entries []*model.CatalogEntry
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT `+catalogColumns+` FROM jobs WHERE id = ANY($1)`, ids)
		if err != nil {
			return err
		}
		entries, err = pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[model.CatalogEntry])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get catalog entries: %w", err)
	}

	byID := make(map[string]*model.CatalogEntry, len(entries))
	for _, e := range entries {
		byID[e.ID] = e
	}
	ordered := make([]*model.CatalogEntry, 0, len(entries))
	for _, id := range ids {
		if e, ok := byID[id]; ok {
			ordered = append(ordered, e)
			delete(byID, id)
		}
	}
	return ordered, nil
}

// ListPage returns one keyset page of the catalog in (created_at DESC, id DESC) order.
// dir=prev reads rows newer than the cursor in ascending order and reverses them so
// pages are always presented newest first.
func (r *CatalogRepo) ListPage(ctx context.Context, req model.CatalogPageRequest) (*model.CatalogPage, error) {
	limit := model.ClampPageLimit(req.Limit)

	var cur *catalogCursor
	if req.Cursor != nil && *req.Cursor != "" {
		decoded, err := decodeCatalogCursor(*req.Cursor)
		if err != nil {
			return nil, err
		}
		cur = &decoded
	}
	if req.Direction == model.PagePrev && cur == nil {
		return nil, ErrCursorRequired
	}

	query, args := buildCatalogPageQuery(req.Direction, cur, req.Domain, limit)

	var entries []*model.CatalogEntry
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		entries, err = pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[model.CatalogEntry])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}

	if req.Direction == model.PagePrev {
		slices.Reverse(entries)
	}
	if entries == nil {
		entries = []*model.CatalogEntry{}
	}

	next, prev, err := pageCursors(entries)
	if err != nil {
		return nil, err
	}
	return &model.CatalogPage{Jobs: entries, NextCursor: next, PrevCursor: prev}, nil
}

func buildCatalogPageQuery(
	dir model.PageDirection,
	cur *catalogCursor,
	domain *model.Domain,
	limit int,
) (string, []any) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if domain != nil {
		where = append(where, "domain = "+arg(string(*domain)))
	}

	order := "created_at DESC, id DESC"
	if cur != nil {
		op := "<"
		if dir == model.PagePrev {
			op = ">"
			order = "created_at ASC, id ASC"
		}
		where = append(where, fmt.Sprintf("(created_at, id) %s (%s::timestamptz, %s::text)", op, arg(cur.CreatedAt), arg(cur.ID)))
	}

	var b strings.Builder
	b.WriteString("SELECT " + catalogColumns + " FROM jobs")
	if len(where) > 0 {
		b.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	b.WriteString(" ORDER BY " + order)
	b.WriteString(" LIMIT " + arg(limit))
	return b.String(), args
}

// ListMissingEmbeddings returns up to limit entries whose embedding is not populated, oldest first.
func (r *CatalogRepo) ListMissingEmbeddings(ctx context.Context, limit int) ([]*model.CatalogEntry, error) {
	if limit < 1 {
		limit = 1
	}
	var entries []*model.CatalogEntry
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+catalogColumns+`
			FROM jobs
			WHERE job_embedding IS NULL
			ORDER BY created_at ASC, id ASC
			LIMIT $1
		`, limit)
		if err != nil {
			return err
		}
		entries, err = pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[model.CatalogEntry])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list entries missing embeddings: %w", err)
	}
	return entries, nil
}

// UpdateEmbedding stores the meaning text and its vector for one entry.
func (r *CatalogRepo) UpdateEmbedding(ctx context.Context, params core.UpdateEmbeddingParams) error {
	if params.ID == "" {
		return ErrJobIDRequired
	}
	if len(params.Embedding) == 0 {
		return errors.New("embedding is empty")
	}

	res, err := r.DB.ExecContext(ctx, `
		UPDATE jobs
		SET job_meaning = $2,
		    job_embedding = $3,
		    updated_at = $4
		WHERE id = $1
	`, params.ID, params.Meaning, pgvector.NewVector(params.Embedding), r.timeProvider.Now())
	if err != nil {
		return fmt.Errorf("update embedding: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrCatalogEntryNotFound
	}
	return nil
}
