package service

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/Sakshamyadav19/HireMe-Backend/internal/core"
)

const embeddingCacheKeyPrefix = "embedding:"

// CachingEmbedderOptions groups dependencies for CachingEmbedder.
type CachingEmbedderOptions struct {
	Embedder core.Embedder        // Required: provider
	Cache    core.CacheRepository // Required: vector cache
	TTL      time.Duration        // Optional: zero keeps entries until evicted
	Logger   *slog.Logger         // Optional: structured logger
}

// CachingEmbedder serves repeated texts from the cache. Cache failures are logged and
// the provider is called as if the entry were missing.
type CachingEmbedder struct {
	next   core.Embedder
	cache  core.CacheRepository
	ttl    time.Duration
	logger *slog.Logger
}

var _ core.Embedder = (*CachingEmbedder)(nil)

// NewCachingEmbedder constructs a CachingEmbedder.
func NewCachingEmbedder(opts CachingEmbedderOptions) (*CachingEmbedder, error) {
	if opts.Embedder == nil {
		return nil, errors.New("embedder is required")
	}
	if opts.Cache == nil {
		return nil, errors.New("CacheRepository is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &CachingEmbedder{
		next:   opts.Embedder,
		cache:  opts.Cache,
		ttl:    opts.TTL,
		logger: logger.With("component", "caching_embedder"),
	}, nil
}

// Embed returns the cached vector for text or computes and caches it.
func (c *CachingEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	key := embeddingCacheKey(text)
	if v, ok := c.lookup(ctx, key); ok {
		return v, nil
	}
	v, err := c.next.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, v)
	return v, nil
}

// EmbedBatch embeds only the texts missing from the cache, in one provider call.
func (c *CachingEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	keys := make([]string, len(texts))
	var (
		missing    []string
		missingIdx []int
	)
	for i, t := range texts {
		keys[i] = embeddingCacheKey(t)
		if v, ok := c.lookup(ctx, keys[i]); ok {
			out[i] = v
			continue
		}
		missing = append(missing, t)
		missingIdx = append(missingIdx, i)
	}
	if len(missing) == 0 {
		return out, nil
	}

	vectors, err := c.next.EmbedBatch(ctx, missing)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(missing) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d inputs", len(vectors), len(missing))
	}
	for j, idx := range missingIdx {
		out[idx] = vectors[j]
		c.store(ctx, keys[idx], vectors[j])
	}
	return out, nil
}

func (c *CachingEmbedder) lookup(ctx context.Context, key string) ([]float32, bool) {
	raw, err := c.cache.Get(ctx, key)
	if err != nil {
		c.logger.WarnContext(ctx, "embedding cache read failed", "error", err)
		return nil, false
	}
	if raw == nil {
		return nil, false
	}
	v, err := decodeVector(raw)
	if err != nil {
		c.logger.WarnContext(ctx, "discarding unreadable cached embedding", "key", key, "error", err)
		return nil, false
	}
	return v, true
}

func (c *CachingEmbedder) store(ctx context.Context, key string, v []float32) {
	if err := c.cache.Set(ctx, key, encodeVector(v), c.ttl); err != nil {
		c.logger.WarnContext(ctx, "embedding cache write failed", "error", err)
	}
}

func embeddingCacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return embeddingCacheKeyPrefix + hex.EncodeToString(sum[:])
}

// encodeVector packs v as little-endian float32s.
func encodeVector(v []float32) []byte {
	buf := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(f))
	}
	return buf
}

func decodeVector(b []byte) ([]float32, error) {
	if len(b) == 0 || len(b)%4 != 0 {
		return nil, fmt.Errorf("invalid vector payload length %d", len(b))
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[4*i:]))
	}
	return v, nil
}
