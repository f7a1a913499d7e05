package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/Sakshamyadav19/HireMe-Backend/internal/domain/matching"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/domain/model"
)

var (
	_ matching.CandidateFilter      = (*MemoryCatalog)(nil)
	_ matching.NearestNeighborIndex = (*MemoryCatalog)(nil)
	_ matching.CatalogLoader        = (*MemoryCatalog)(nil)
)

// MemoryCatalog is an exact, in-memory catalog implementing the matching
// CandidateFilter, NearestNeighborIndex and CatalogLoader ports. Tests use it in
// place of Postgres and pgvector.
type MemoryCatalog struct {
	mu      sync.RWMutex
	entries map[string]*model.CatalogEntry
	order   []string
}

// NewMemoryCatalog builds a catalog from entries. Later entries replace earlier ones with the same id.
func NewMemoryCatalog(entries ...*model.CatalogEntry) *MemoryCatalog {
	c := &MemoryCatalog{entries: make(map[string]*model.CatalogEntry, len(entries))}
	for _, e := range entries {
		c.Put(e)
	}
	return c
}

// Put inserts or replaces an entry.
func (c *MemoryCatalog) Put(e *model.CatalogEntry) {
	if e == nil || e.ID == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[e.ID]; !ok {
		c.order = append(c.order, e.ID)
	}
	c.entries[e.ID] = e
}

// Filter returns ids of entries passing every structured predicate, in insertion order.
func (c *MemoryCatalog) Filter(_ context.Context, f model.CatalogFilter) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := make([]string, 0)
	for _, id := range c.order {
		if matching.MatchesFilter(c.entries[id], f) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// Search performs an exhaustive cosine scan. Ties are broken by id ascending.
func (c *MemoryCatalog) Search(_ context.Context, vector []float32, restrict []string, k int) ([]model.Neighbor, error) {
	if len(vector) == 0 || k <= 0 {
		return []model.Neighbor{}, nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	candidates := c.order
	if restrict != nil {
		candidates = restrict
	}

	seen := make(map[string]struct{}, len(candidates))
	hits := make([]model.Neighbor, 0, len(candidates))
	for _, id := range candidates {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		e, ok := c.entries[id]
		if !ok || !e.HasEmbedding() {
			continue
		}
		hits = append(hits, model.Neighbor{ID: id, Similarity: matching.CosineSimilarity(vector, e.Embedding)})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Similarity != hits[j].Similarity {
			return hits[i].Similarity > hits[j].Similarity
		}
		return hits[i].ID < hits[j].ID
	})
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

// GetByIDs returns the known entries among ids, preserving the requested order.
func (c *MemoryCatalog) GetByIDs(_ context.Context, ids []string) ([]*model.CatalogEntry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*model.CatalogEntry, 0, len(ids))
	for _, id := range ids {
		if e, ok := c.entries[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}
