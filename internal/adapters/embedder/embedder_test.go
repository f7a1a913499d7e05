package embedder

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sakshamyadav19/HireMe-Backend/config"
)

type fakeModel struct {
	dim   int
	err   error
	short bool
	calls [][]string
}

func (f *fakeModel) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	f.calls = append(f.calls, texts)
	if f.err != nil {
		return nil, f.err
	}
	n := len(texts)
	if f.short {
		n--
	}
	out := make([][]float32, n)
	for i := range out {
		out[i] = make([]float32, f.dim)
		out[i][0] = float32(i + 1)
	}
	return out, nil
}

func (f *fakeModel) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	v, err := f.EmbedDocuments(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return v[0], nil
}

func newTestEmbedder(t *testing.T, model *fakeModel, dim int) *Embedder {
	t.Helper()
	e, err := New(Options{
		Config: config.EmbeddingConfig{Model: "test-embed", Dimension: dim},
		Model:  model,
	})
	require.NoError(t, err)
	return e
}

func TestEmbedder_EmbedBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("preserves order", func(t *testing.T) {
		model := &fakeModel{dim: 4}
		e := newTestEmbedder(t, model, 4)

		got, err := e.EmbedBatch(ctx, []string{"a", "b", "c"})
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, float32(1), got[0][0])
		assert.Equal(t, float32(3), got[2][0])
		assert.Equal(t, [][]string{{"a", "b", "c"}}, model.calls)
	})

	t.Run("empty input skips provider", func(t *testing.T) {
		model := &fakeModel{dim: 4}
		e := newTestEmbedder(t, model, 4)

		got, err := e.EmbedBatch(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.Empty(t, model.calls)
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		e := newTestEmbedder(t, &fakeModel{dim: 3}, 4)
		_, err := e.EmbedBatch(ctx, []string{"a"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "dimension mismatch")
	})

	t.Run("count mismatch", func(t *testing.T) {
		e := newTestEmbedder(t, &fakeModel{dim: 4, short: true}, 4)
		_, err := e.EmbedBatch(ctx, []string{"a", "b"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "count mismatch")
	})

	t.Run("provider error", func(t *testing.T) {
		boom := errors.New("429 too many requests")
		e := newTestEmbedder(t, &fakeModel{err: boom}, 4)
		_, err := e.EmbedBatch(ctx, []string{"a"})
		require.ErrorIs(t, err, boom)
	})
}

func TestEmbedder_Embed(t *testing.T) {
	e := newTestEmbedder(t, &fakeModel{dim: 2}, 2)
	v, err := e.Embed(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 0}, v)
	assert.Equal(t, 2, e.Dimension())
}

func TestNew_Validation(t *testing.T) {
	unconfigured, err := New(Options{Config: config.EmbeddingConfig{Dimension: 1536}})
	require.NoError(t, err)
	assert.False(t, unconfigured.Configured())
	_, err = unconfigured.Embed(context.Background(), "text")
	require.ErrorIs(t, err, ErrNotConfigured)
	assert.EqualError(t, err, "embedding API key is not configured")

	_, err = New(Options{Config: config.EmbeddingConfig{APIKey: "k"}})
	require.Error(t, err)

	e, err := New(Options{Config: config.EmbeddingConfig{
		APIKey:    "k",
		BaseURL:   "https://openrouter.ai/api/v1",
		Model:     "openai/text-embedding-3-small",
		Dimension: 1536,
		BatchSize: 16,
	}})
	require.NoError(t, err)
	assert.True(t, e.Configured())
	assert.Equal(t, 1536, e.Dimension())
}
