package index

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"docrag/internal/domain"
	"docrag/internal/vectorstore"
)

// Index composes the chunker, the embedder and a vector store backend
// into the document-level add/search operations. Raw vectors never
// cross this boundary outward.
type Index struct {
	chunker  domain.Chunker
	embedder domain.Embedder
	backend  vectorstore.Backend
	log      *zap.Logger
}

func New(chunker domain.Chunker, embedder domain.Embedder, backend vectorstore.Backend, log *zap.Logger) *Index {
	if log == nil {
		log = zap.NewNop()
	}
	return &Index{chunker: chunker, embedder: embedder, backend: backend, log: log}
}

// AddDocument chunks the markdown, attaches per-chunk metadata
// (caller metadata plus a fresh chunk_id and the 0-based chunk_index),
// embeds all chunks in one batch and stores them in one batch. The
// operation is all-or-nothing; any failure is a *domain.VectorStoreError.
// Re-adding a previously indexed source leaves the old chunks in place
// (accepted duplication, new chunk IDs are always fresh).
func (ix *Index) AddDocument(ctx context.Context, markdown string, metadata map[string]any) error {
	chunks := ix.chunker.Split(markdown)
	if len(chunks) == 0 {
		return nil
	}
	vectors, err := ix.embedder.EmbedBatch(ctx, chunks)
	if err != nil {
		return domain.NewVectorStoreError("embed chunks", err)
	}
	if len(vectors) != len(chunks) {
		return domain.NewVectorStoreError("embed chunks", errors.New("vector count does not match chunk count"))
	}
	points := make([]vectorstore.Point, len(chunks))
	for i, text := range chunks {
		meta := make(map[string]any, len(metadata)+2)
		for k, v := range metadata {
			meta[k] = v
		}
		chunk := domain.Chunk{ID: uuid.NewString(), Index: i, Text: text, Metadata: meta}
		chunk.Metadata["chunk_id"] = chunk.ID
		chunk.Metadata["chunk_index"] = chunk.Index
		points[i] = vectorstore.Point{ID: chunk.ID, Vector: vectors[i], Content: chunk.Text, Metadata: chunk.Metadata}
	}
	if err := ix.backend.Upsert(ctx, points); err != nil {
		return domain.NewVectorStoreError("store chunks", err)
	}
	ix.log.Info("document indexed", zap.Int("chunks", len(points)))
	return nil
}

// Search embeds the query with the same embedder used for storage and
// returns the k most relevant chunks in descending score order,
// restricted to entries whose metadata contains every filter key/value.
// k <= 0 and zero matches both yield an empty result, not an error.
func (ix *Index) Search(ctx context.Context, query string, k int, filter map[string]any) ([]domain.SearchResult, error) {
	if k <= 0 {
		return nil, nil
	}
	vector, err := ix.embedder.Embed(ctx, query)
	if err != nil {
		return nil, domain.NewVectorStoreError("embed query", err)
	}
	results, err := ix.backend.Query(ctx, vector, k, filter)
	if err != nil {
		return nil, domain.NewVectorStoreError("similarity search", err)
	}
	return results, nil
}
