package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Sakshamyadav19/HireMe-Backend/internal/core"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/data"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/domain/matching"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/domain/model"
	apperrors "github.com/Sakshamyadav19/HireMe-Backend/internal/errors"
)

const defaultEmbedBatchSize = 64

// CatalogServiceOptions groups dependencies for CatalogService.
type CatalogServiceOptions struct {
	Repo     core.CatalogRepository // Required: catalog storage
	Embedder core.Embedder          // Optional: required only by EmbedMissing
	Logger   *slog.Logger           // Optional: structured logger
}

// CatalogService lists and fetches catalog entries and backfills their embeddings.
type CatalogService struct {
	repo     core.CatalogRepository
	embedder core.Embedder
	logger   *slog.Logger
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(opts CatalogServiceOptions) (*CatalogService, error) {
	if opts.Repo == nil {
		return nil, errors.New("CatalogRepository is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogService{
		repo:     opts.Repo,
		embedder: opts.Embedder,
		logger:   logger.With("component", "catalog_service"),
	}, nil
}

// List returns one keyset page of the catalog, newest first.
func (s *CatalogService) List(ctx context.Context, req model.CatalogPageRequest) (*model.CatalogPage, error) {
	if req.Direction == "" {
		req.Direction = model.PageNext
	}
	if req.Cursor != nil && strings.TrimSpace(*req.Cursor) == "" {
		req.Cursor = nil
	}
	if req.Direction == model.PagePrev && req.Cursor == nil {
		return nil, apperrors.ValidationField("cursor", "cursor is required for dir=prev")
	}
	req.Limit = model.ClampPageLimit(req.Limit)

	page, err := s.repo.ListPage(ctx, req)
	switch {
	case errors.Is(err, data.ErrInvalidCursor):
		return nil, apperrors.ValidationField("cursor", "invalid cursor")
	case errors.Is(err, data.ErrCursorRequired):
		return nil, apperrors.ValidationField("cursor", "cursor is required for dir=prev")
	case err != nil:
		return nil, fmt.Errorf("list catalog: %w", err)
	}
	return page, nil
}

// Get returns one entry by id.
func (s *CatalogService) Get(ctx context.Context, id string) (*model.CatalogEntry, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.NotFound("job not found")
	}
	entry, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, data.ErrCatalogEntryNotFound) {
		return nil, apperrors.NotFound("job not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get catalog entry: %w", err)
	}
	return entry, nil
}

// EmbedMissingResult summarises a backfill run.
type EmbedMissingResult struct {
	Embedded int
	Batches  int
}

// EmbedMissing computes meaning text and embeddings for every entry that has none,
// batchSize entries per provider call. It stops at the first failing batch.
func (s *CatalogService) EmbedMissing(ctx context.Context, batchSize int) (EmbedMissingResult, error) {
	var res EmbedMissingResult
	if s.embedder == nil {
		return res, errors.New("embedder is not configured")
	}
	if batchSize < 1 {
		batchSize = defaultEmbedBatchSize
	}

	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		entries, err := s.repo.ListMissingEmbeddings(ctx, batchSize)
		if err != nil {
			return res, fmt.Errorf("list entries missing embeddings: %w", err)
		}
		if len(entries) == 0 {
			break
		}

		n, err := s.embedBatch(ctx, entries)
		res.Embedded += n
		if err != nil {
			return res, fmt.Errorf("embed batch %d: %w", res.Batches+1, err)
		}
		res.Batches++
		s.logger.InfoContext(ctx, "embedded catalog batch", "batch", res.Batches, "entries", n, "total", res.Embedded)

		if len(entries) < batchSize {
			break
		}
	}
	return res, nil
}

func (s *CatalogService) embedBatch(ctx context.Context, entries []*model.CatalogEntry) (int, error) {
	meanings := make([]string, len(entries))
	for i, e := range entries {
		meanings[i] = matching.BuildCatalogMeaning(e)
	}

	vectors, err := s.embedder.EmbedBatch(ctx, meanings)
	if err != nil {
		return 0, err
	}
	if len(vectors) != len(entries) {
		return 0, fmt.Errorf("embedder returned %d vectors for %d inputs", len(vectors), len(entries))
	}

	for i, e := range entries {
		if err := s.repo.UpdateEmbedding(ctx, core.UpdateEmbeddingParams{
			ID:        e.ID,
			Meaning:   meanings[i],
			Embedding: vectors[i],
		}); err != nil {
			return i, fmt.Errorf("store embedding for %s: %w", e.ID, err)
		}
	}
	return len(entries), nil
}
