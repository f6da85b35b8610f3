package rag

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"docrag/internal/domain"
)

// NoInformationFound is the fixed answer returned when retrieval yields
// no sources. The generator is never invoked in that case.
const NoInformationFound = "No relevant information was found."

// DefaultTopK is the number of sources retrieved when the caller does
// not ask for a specific count.
const DefaultTopK = 4

// Searcher is the retrieval capability the orchestrator composes.
type Searcher interface {
	Search(ctx context.Context, query string, k int, filter map[string]any) ([]domain.SearchResult, error)
}

// RAG composes retrieval and generation into a single query operation.
// Every failure crossing this boundary is a *domain.RAGError.
type RAG struct {
	index     Searcher
	generator *Generator
	log       *zap.Logger
}

func New(index Searcher, generator *Generator, log *zap.Logger) *RAG {
	if log == nil {
		log = zap.NewNop()
	}
	return &RAG{index: index, generator: generator, log: log}
}

// Search retrieves the k most relevant chunks for the query.
func (r *RAG) Search(ctx context.Context, query string, k int, filter map[string]any) ([]domain.SearchResult, error) {
	results, err := r.index.Search(ctx, query, k, filter)
	if err != nil {
		return nil, wrapRAGError("search", err)
	}
	return results, nil
}

// Query runs retrieval, then generation grounded on the retrieved
// passages, and returns the answer together with the unmodified search
// results in descending relevance order. k <= 0 selects DefaultTopK.
func (r *RAG) Query(ctx context.Context, query string, k int, filter map[string]any) (domain.RAGResponse, error) {
	if k <= 0 {
		k = DefaultTopK
	}
	results, err := r.Search(ctx, query, k, filter)
	if err != nil {
		return domain.RAGResponse{}, err
	}
	if len(results) == 0 {
		r.log.Debug("no sources found", zap.String("query", query))
		return domain.RAGResponse{Answer: NoInformationFound, Sources: []domain.SearchResult{}}, nil
	}
	contexts := make([]string, len(results))
	for i, res := range results {
		contexts[i] = res.Content
	}
	answer, err := r.generator.Generate(ctx, query, contexts)
	if err != nil {
		return domain.RAGResponse{}, wrapRAGError("generate", err)
	}
	r.log.Info("query answered",
		zap.String("query", query),
		zap.Int("sources", len(results)),
	)
	return domain.RAGResponse{Answer: answer, Sources: results}, nil
}

// wrapRAGError normalizes any failure to *domain.RAGError without
// double-wrapping errors that already carry the type.
func wrapRAGError(op string, err error) error {
	var re *domain.RAGError
	if errors.As(err, &re) {
		return err
	}
	return domain.NewRAGError(op, err)
}
