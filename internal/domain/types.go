package domain

// Document describes an uploaded source file before conversion. It is
// consumed by the processing pipeline; only the markdown artifact
// survives it.
type Document struct {
	Name      string
	Path      string
	MediaType string
}

// Chunk is a bounded text segment derived from a converted document.
// IDs are unique across the whole index, including re-ingestion of the
// same file.
type Chunk struct {
	ID       string
	Index    int
	Text     string
	Metadata map[string]any
}

// SearchResult is a retrieved chunk with a relevance score in [0, 1],
// higher meaning more relevant. Metadata always carries at least the
// "source" key.
type SearchResult struct {
	Content  string
	Metadata map[string]any
	Score    float64
}

// RAGResponse is a generated answer plus the source passages that
// grounded it, in descending relevance order.
type RAGResponse struct {
	Answer  string
	Sources []SearchResult
}
