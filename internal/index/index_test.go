package index

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docrag/internal/chunker"
	"docrag/internal/domain"
	"docrag/internal/vectorstore/memory"
)

// fakeEmbedder produces deterministic vectors from simple text features
// and records how often it is called.
type fakeEmbedder struct {
	batchCalls int
	embedCalls int
	err        error
}

func featureVector(text string) []float32 {
	var letters, digits, spaces float32
	for _, r := range text {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			letters++
		case r >= '0' && r <= '9':
			digits++
		case r == ' ' || r == '\n':
			spaces++
		}
	}
	return []float32{letters + 1, digits + 1, spaces + 1, float32(len(text) + 1)}
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	f.embedCalls++
	if f.err != nil {
		return nil, f.err
	}
	return featureVector(text), nil
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	f.batchCalls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = featureVector(t)
	}
	return out, nil
}

func newTestIndex(emb domain.Embedder, store *memory.Store) *Index {
	return New(chunker.NewMarkdownChunker(200, 20), emb, store, nil)
}

func multiChunkDoc() string {
	para := "This section talks about apples and orchards in some detail. "
	return "# Fruit\n\n" + strings.Repeat(para, 4) +
		"\n\n# Vegetables\n\n" + strings.Repeat("Carrots and potatoes grow underground. ", 4)
}

func TestAddDocument_ChunksEmbedsAndStores(t *testing.T) {
	emb := &fakeEmbedder{}
	store := memory.New()
	ix := newTestIndex(emb, store)
	ctx := context.Background()

	err := ix.AddDocument(ctx, multiChunkDoc(), map[string]any{"source": "fruit.md"})
	require.NoError(t, err)
	require.Greater(t, store.Len(), 1)
	assert.Equal(t, 1, emb.batchCalls, "all chunks embed in one batch")

	results, err := ix.Search(ctx, "apples", store.Len(), nil)
	require.NoError(t, err)
	require.Len(t, results, store.Len())

	ids := map[string]bool{}
	indices := map[int]bool{}
	for _, r := range results {
		assert.Equal(t, "fruit.md", r.Metadata["source"])
		id, ok := r.Metadata["chunk_id"].(string)
		require.True(t, ok)
		assert.False(t, ids[id], "chunk_id must be unique")
		ids[id] = true
		idx, ok := r.Metadata["chunk_index"].(int)
		require.True(t, ok)
		indices[idx] = true
	}
	for i := 0; i < store.Len(); i++ {
		assert.True(t, indices[i], "chunk_index %d missing", i)
	}
}

func TestAddDocument_EmptyMarkdownIsNoOp(t *testing.T) {
	emb := &fakeEmbedder{}
	store := memory.New()
	ix := newTestIndex(emb, store)

	err := ix.AddDocument(context.Background(), "   \n\n ", map[string]any{"source": "blank.md"})
	require.NoError(t, err)
	assert.Equal(t, 0, store.Len())
	assert.Equal(t, 0, emb.batchCalls)
}

func TestAddDocument_EmbedFailure(t *testing.T) {
	emb := &fakeEmbedder{err: errors.New("api down")}
	store := memory.New()
	ix := newTestIndex(emb, store)

	err := ix.AddDocument(context.Background(), "some content to index", nil)
	var verr *domain.VectorStoreError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 0, store.Len(), "nothing stored on failure")
}

func TestAddDocument_ReAddDuplicates(t *testing.T) {
	emb := &fakeEmbedder{}
	store := memory.New()
	ix := newTestIndex(emb, store)
	ctx := context.Background()

	require.NoError(t, ix.AddDocument(ctx, "short document", map[string]any{"source": "a.md"}))
	first := store.Len()
	require.NoError(t, ix.AddDocument(ctx, "short document", map[string]any{"source": "a.md"}))
	assert.Equal(t, 2*first, store.Len(), "old chunks stay in place")
}

func TestSearch_KZeroSkipsEmbedding(t *testing.T) {
	emb := &fakeEmbedder{}
	ix := newTestIndex(emb, memory.New())

	results, err := ix.Search(context.Background(), "anything", 0, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Equal(t, 0, emb.embedCalls)
}

func TestSearch_TopKOrdering(t *testing.T) {
	emb := &fakeEmbedder{}
	store := memory.New()
	ix := newTestIndex(emb, store)
	ctx := context.Background()

	require.NoError(t, ix.AddDocument(ctx, multiChunkDoc(), map[string]any{"source": "fruit.md"}))
	require.GreaterOrEqual(t, store.Len(), 3)

	results, err := ix.Search(ctx, "apples and orchards", 3, nil)
	require.NoError(t, err)
	require.Len(t, results, 3)
	for i := 1; i < len(results); i++ {
		assert.LessOrEqual(t, results[i].Score, results[i-1].Score)
	}
}

func TestSearch_EmbedFailure(t *testing.T) {
	emb := &fakeEmbedder{}
	store := memory.New()
	ix := newTestIndex(emb, store)
	ctx := context.Background()
	require.NoError(t, ix.AddDocument(ctx, "indexed content", nil))

	emb.err = errors.New("api down")
	_, err := ix.Search(ctx, "query", 3, nil)
	var verr *domain.VectorStoreError
	require.ErrorAs(t, err, &verr)
}

func TestSearch_FilterRestrictsResults(t *testing.T) {
	emb := &fakeEmbedder{}
	store := memory.New()
	ix := newTestIndex(emb, store)
	ctx := context.Background()

	require.NoError(t, ix.AddDocument(ctx, "alpha content", map[string]any{"source": "a.md"}))
	require.NoError(t, ix.AddDocument(ctx, "beta content", map[string]any{"source": "b.md"}))

	results, err := ix.Search(ctx, "content", 10, map[string]any{"source": "b.md"})
	require.NoError(t, err)
	require.NotEmpty(t, results)
	for _, r := range results {
		assert.Equal(t, "b.md", r.Metadata["source"])
	}
}
