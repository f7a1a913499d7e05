// Package embedder adapts an OpenAI-compatible embeddings endpoint to core.Embedder.
package embedder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/Sakshamyadav19/HireMe-Backend/config"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/core"
)

// ErrNotConfigured is returned when no API key is available for the provider.
var ErrNotConfigured = errors.New("embedding API key is not configured")

// Options configures an Embedder.
type Options struct {
	Config config.EmbeddingConfig
	Logger *slog.Logger

	// Model replaces the provider client. Used by tests.
	Model embeddings.Embedder
}

// Embedder wraps a langchaingo embedder with dimension validation. Without an API key
// it is still constructed so the server can start, and every call fails with
// ErrNotConfigured.
type Embedder struct {
	model     embeddings.Embedder
	dimension int
	modelName string
	logger    *slog.Logger
}

var _ core.Embedder = (*Embedder)(nil)

// New creates an Embedder for the configured endpoint.
func New(opts Options) (*Embedder, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := opts.Config
	if cfg.Dimension <= 0 {
		return nil, fmt.Errorf("embedding dimension must be positive, got %d", cfg.Dimension)
	}

	model := opts.Model
	if model == nil && cfg.APIKey != "" {
		clientOpts := []openai.Option{
			openai.WithToken(cfg.APIKey),
			openai.WithEmbeddingModel(cfg.Model),
			openai.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		}
		if cfg.BaseURL != "" {
			clientOpts = append(clientOpts, openai.WithBaseURL(cfg.BaseURL))
		}
		llm, err := openai.New(clientOpts...)
		if err != nil {
			return nil, fmt.Errorf("create openai client: %w", err)
		}
		model, err = embeddings.NewEmbedder(llm,
			embeddings.WithBatchSize(max(cfg.BatchSize, 1)),
			embeddings.WithStripNewLines(false),
		)
		if err != nil {
			return nil, fmt.Errorf("create openai embedder: %w", err)
		}
	}

	return &Embedder{
		model:     model,
		dimension: cfg.Dimension,
		modelName: cfg.Model,
		logger:    logger.With("component", "embedder", "model", cfg.Model),
	}, nil
}

// Embed generates an embedding vector for text.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch generates one embedding per text, in input order.
func (e *Embedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if e.model == nil {
		return nil, ErrNotConfigured
	}
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	start := time.Now()
	vectors, err := e.model.EmbedDocuments(ctx, texts)
	duration := time.Since(start)
	if err != nil {
		e.logger.WarnContext(ctx, "embedding failed",
			"texts", len(texts),
			"duration_ms", duration.Milliseconds(),
			"error", err,
		)
		return nil, fmt.Errorf("embed: %w", err)
	}

	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("count mismatch: got %d, want %d", len(vectors), len(texts))
	}
	for i, v := range vectors {
		if len(v) != e.dimension {
			return nil, fmt.Errorf("embedding %d dimension mismatch: got %d, want %d", i, len(v), e.dimension)
		}
	}

	e.logger.DebugContext(ctx, "embedding complete", "texts", len(texts), "duration_ms", duration.Milliseconds())
	return vectors, nil
}

// Configured reports whether a provider client is available.
func (e *Embedder) Configured() bool { return e.model != nil }

// Dimension returns the expected embedding dimension.
func (e *Embedder) Dimension() int { return e.dimension }
