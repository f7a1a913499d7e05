package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEfSearchFor(t *testing.T) {
	assert.Equal(t, 200, efSearchFor(0, 200), "top-K raises the pgvector default")
	assert.Equal(t, 400, efSearchFor(400, 200), "configured floor wins when larger")
	assert.Equal(t, maxEfSearch, efSearchFor(0, 5000))
}

func TestVectorIndex_Plan(t *testing.T) {
	index := NewVectorIndex(nil, VectorIndexOptions{ExactScanLimit: 3, IterativeScan: "relaxed_order"})

	full := index.plan(nil, 200)
	assert.Equal(t, vectorSearchSQL, full.query)
	assert.Equal(t, 200, full.efSearch)
	assert.Empty(t, full.iterativeScan)

	small := index.plan([]string{"a", "b", "c"}, 200)
	assert.True(t, small.exact)
	assert.Equal(t, vectorSearchExactSQL, small.query)
	assert.Zero(t, small.efSearch)

	large := index.plan([]string{"a", "b", "c", "d"}, 50)
	assert.False(t, large.exact)
	assert.Equal(t, vectorSearchRestrictedSQL, large.query)
	assert.Equal(t, 50, large.efSearch)
	assert.Equal(t, "relaxed_order", large.iterativeScan)

	alwaysIndex := NewVectorIndex(nil, VectorIndexOptions{}).plan([]string{"a"}, 10)
	assert.False(t, alwaysIndex.exact)
	assert.Equal(t, 10, alwaysIndex.efSearch)
}
