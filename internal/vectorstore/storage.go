package vectorstore

import (
	"context"
	"fmt"
	"math"

	"docrag/internal/domain"
)

// Point is a stored chunk: its vector, text content, and metadata.
type Point struct {
	ID       string         `json:"id"`
	Vector   []float32      `json:"vector"`
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata"`
}

// Backend persists points and answers similarity queries. Upsert is
// atomic per call: either every point is stored or none is reported as
// stored. Query returns at most k results in descending relevance
// order; zero matches is an empty slice, not an error.
type Backend interface {
	Upsert(ctx context.Context, points []Point) error
	Query(ctx context.Context, vector []float32, k int, filter map[string]any) ([]domain.SearchResult, error)
	Close() error
}

// MatchesFilter reports whether metadata is a superset of filter under
// exact key/value equality. Scalar values are compared by their
// canonical string form so that numeric types surviving a JSON round
// trip still match.
func MatchesFilter(metadata, filter map[string]any) bool {
	for k, want := range filter {
		got, ok := metadata[k]
		if !ok || fmt.Sprint(got) != fmt.Sprint(want) {
			return false
		}
	}
	return true
}

// Cosine returns the cosine similarity of two vectors, 0 when either
// is zero-length or all zeros.
func Cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// Relevance maps a cosine similarity in [-1, 1] to the relevance score
// convention used throughout: [0, 1], higher is more relevant.
func Relevance(cosine float64) float64 {
	r := (1 + cosine) / 2
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}
