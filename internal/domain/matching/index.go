package matching

import (
	"context"
	"math"

	"github.com/Sakshamyadav19/HireMe-Backend/internal/domain/model"
)

// NearestNeighborIndex ranks catalog entries by cosine similarity to a query vector.
//
// restrict limits the search to the given ids. A nil restrict searches the whole
// catalog; a non-nil empty restrict matches nothing. Entries without an embedding
// are never returned and an empty vector yields an empty result. Results are ordered
// by similarity descending with a deterministic tie order.
type NearestNeighborIndex interface {
	Search(ctx context.Context, vector []float32, restrict []string, k int) ([]model.Neighbor, error)
}

// NearestNeighborIndexFunc adapts a function to NearestNeighborIndex.
type NearestNeighborIndexFunc func(ctx context.Context, vector []float32, restrict []string, k int) ([]model.Neighbor, error)

// Search calls fn(ctx, vector, restrict, k).
func (fn NearestNeighborIndexFunc) Search(
	ctx context.Context,
	vector []float32,
	restrict []string,
	k int,
) ([]model.Neighbor, error) {
	return fn(ctx, vector, restrict, k)
}

// CatalogLoader fetches full catalog entries for scoring.
type CatalogLoader interface {
	GetByIDs(ctx context.Context, ids []string) ([]*model.CatalogEntry, error)
}

// CosineSimilarity returns 1 - cosine distance of a and b, or 0 when either is
// empty, zero or the dimensions differ.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
