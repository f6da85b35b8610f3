package domain

import "context"

// Converter turns a source file into normalized markdown text.
// It either returns non-empty markdown or a *DocumentProcessingError.
type Converter interface {
	Convert(path string) (string, error)
}

// Chunker splits markdown into bounded, overlapping text segments.
type Chunker interface {
	Split(markdown string) []string
}

// Embedder maps text into fixed-length vectors. Query and stored
// chunks must be embedded by the same implementation so they share a
// vector space.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}
