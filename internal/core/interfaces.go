// Package core declares the ports between the service layer and its adapters.
package core

import (
	"context"
	"time"

	"github.com/Sakshamyadav19/HireMe-Backend/internal/domain/matching"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// Services depend on these interfaces, not on concrete implementations.

// CatalogRepository provides read access to the job catalog plus the embedding backfill path.
type CatalogRepository interface {
	matching.CandidateFilter
	matching.CatalogLoader
	GetByID(ctx context.Context, id string) (*model.CatalogEntry, error)
	ListPage(ctx context.Context, req model.CatalogPageRequest) (*model.CatalogPage, error)
	ListMissingEmbeddings(ctx context.Context, limit int) ([]*model.CatalogEntry, error)
	UpdateEmbedding(ctx context.Context, params UpdateEmbeddingParams) error
}

// UpdateEmbeddingParams groups the fields written by the embedding backfill.
type UpdateEmbeddingParams struct {
	ID        string
	Meaning   string
	Embedding []float32
}

// NearestNeighborIndex is the semantic retrieval port.
type NearestNeighborIndex = matching.NearestNeighborIndex

// MatchJobRepository persists match job status rows.
type MatchJobRepository interface {
	// Create inserts a pending job owned by userID.
	Create(ctx context.Context, id, userID string) (*model.MatchJob, error)
	// GetByID returns a job regardless of owner.
	GetByID(ctx context.Context, id string) (*model.MatchJob, error)
	// GetForUser returns the job only when userID owns it; otherwise it reports not found.
	GetForUser(ctx context.Context, id, userID string) (*model.MatchJob, error)
	// UpdateStatus applies a lifecycle transition. It returns false without error when
	// the row is missing or the transition is not allowed from its current state.
	UpdateStatus(ctx context.Context, update model.MatchJobStatusUpdate) (bool, error)
}

// DeleteOldMatchJobsParams groups parameters for DeleteOldMatchJobs.
type DeleteOldMatchJobsParams struct {
	Status    model.MatchJobStatus
	MaxAge    time.Duration
	BatchSize int
}

// ReaperRepository prunes terminal match jobs. Pending and processing rows are never touched.
type ReaperRepository interface {
	DeleteOldMatchJobs(ctx context.Context, params DeleteOldMatchJobsParams) (int64, error)
}

// CachedMatches is the stored ranked list for one user.
type CachedMatches struct {
	UserID       string
	TotalMatches int
	Matches      []model.MatchResult
	CreatedAt    time.Time
}

// MatchResultCacheRepository stores the latest ranked list per user.
type MatchResultCacheRepository interface {
	// Save replaces any previous entry for the user.
	Save(ctx context.Context, userID string, resp model.MatchResponse) error
	// Get returns nil, nil when the user has no readable cache entry.
	Get(ctx context.Context, userID string) (*CachedMatches, error)
	// Clear removes the user's entry and reports whether one existed.
	Clear(ctx context.Context, userID string) (bool, error)
}

// SavedJobRepository manages user bookmarks on catalog entries.
type SavedJobRepository interface {
	// Add is idempotent.
	Add(ctx context.Context, userID, jobID string) error
	Remove(ctx context.Context, userID, jobID string) (bool, error)
	// List returns saved entries newest first.
	List(ctx context.Context, userID string) ([]*model.SavedJob, error)
}

// ResumeParser extracts a structured profile from an uploaded resume.
type ResumeParser interface {
	Parse(ctx context.Context, content []byte, filename string) (model.ParsedResume, error)
}

// Embedder turns text into fixed-dimension vectors.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	// EmbedBatch returns one vector per input, in input order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// ResumeObject is an uploaded resume headed for the archive.
type ResumeObject struct {
	JobID       string
	UserID      string
	Filename    string
	ContentType string
	Content     []byte
}

// ResumeStore archives raw uploads.
type ResumeStore interface {
	Put(ctx context.Context, obj ResumeObject) error
}

// CacheRepository is a byte-oriented key/value store with expiry. It fronts the
// embedding provider, so callers treat every error as a miss and fall back to the
// provider.
type CacheRepository interface {
	// Set stores value under key. A zero ttl keeps the key until evicted.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Get returns nil, nil on a miss.
	Get(ctx context.Context, key string) ([]byte, error)
	// Delete reports whether key existed.
	Delete(ctx context.Context, key string) (bool, error)
	// Health pings the backing store; it backs the readiness probe.
	Health(ctx context.Context) error
}
