package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docrag/internal/vectorstore"
)

func seed(t *testing.T) *Store {
	t.Helper()
	s := New()
	err := s.Upsert(context.Background(), []vectorstore.Point{
		{ID: "a", Vector: []float32{1, 0}, Content: "exact", Metadata: map[string]any{"source": "a.md"}},
		{ID: "b", Vector: []float32{0.9, 0.1}, Content: "close", Metadata: map[string]any{"source": "a.md"}},
		{ID: "c", Vector: []float32{0, 1}, Content: "orthogonal", Metadata: map[string]any{"source": "c.md"}},
		{ID: "d", Vector: []float32{-1, 0}, Content: "opposite", Metadata: map[string]any{"source": "c.md"}},
	})
	require.NoError(t, err)
	return s
}

func TestQuery_OrderedByRelevance(t *testing.T) {
	s := seed(t)
	results, err := s.Query(context.Background(), []float32{1, 0}, 10, nil)
	require.NoError(t, err)
	require.Len(t, results, 4)
	assert.Equal(t, "exact", results[0].Content)
	assert.Equal(t, "close", results[1].Content)
	assert.Equal(t, "orthogonal", results[2].Content)
	assert.Equal(t, "opposite", results[3].Content)
	for i := 1; i < len(results); i++ {
		assert.LessOrEqual(t, results[i].Score, results[i-1].Score)
	}
	assert.InDelta(t, 1.0, results[0].Score, 1e-9)
	assert.InDelta(t, 0.0, results[3].Score, 1e-9)
}

func TestQuery_TopKBounds(t *testing.T) {
	s := seed(t)
	ctx := context.Background()

	results, err := s.Query(ctx, []float32{1, 0}, 2, nil)
	require.NoError(t, err)
	assert.Len(t, results, 2)

	results, err = s.Query(ctx, []float32{1, 0}, 100, nil)
	require.NoError(t, err)
	assert.Len(t, results, 4)

	results, err = s.Query(ctx, []float32{1, 0}, 0, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestQuery_Filter(t *testing.T) {
	s := seed(t)
	results, err := s.Query(context.Background(), []float32{1, 0}, 10, map[string]any{"source": "c.md"})
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Equal(t, "c.md", r.Metadata["source"])
	}

	results, err = s.Query(context.Background(), []float32{1, 0}, 10, map[string]any{"source": "missing.md"})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestQuery_TieBreakByID(t *testing.T) {
	s := New()
	err := s.Upsert(context.Background(), []vectorstore.Point{
		{ID: "z", Vector: []float32{1, 0}, Content: "second"},
		{ID: "a", Vector: []float32{1, 0}, Content: "first"},
	})
	require.NoError(t, err)

	results, err := s.Query(context.Background(), []float32{1, 0}, 2, nil)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "first", results[0].Content)
	assert.Equal(t, "second", results[1].Content)
}

func TestUpsert_DimensionMismatch(t *testing.T) {
	s := seed(t)
	err := s.Upsert(context.Background(), []vectorstore.Point{
		{ID: "e", Vector: []float32{1, 2, 3}},
	})
	require.Error(t, err)
	assert.Equal(t, 4, s.Len())
}

func TestUpsert_FirstBatchMixedDimensions(t *testing.T) {
	s := New()
	err := s.Upsert(context.Background(), []vectorstore.Point{
		{ID: "a", Vector: []float32{1, 0}},
		{ID: "b", Vector: []float32{1, 0, 0}},
	})
	require.Error(t, err)
	assert.Equal(t, 0, s.Len())
}
