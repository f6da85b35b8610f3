package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"docrag/internal/domain"
	"docrag/internal/vectorstore"
)

// Store is an ephemeral vector store using brute-force cosine
// similarity. It backs tests and the "memory" config type.
type Store struct {
	mu     sync.RWMutex
	points []vectorstore.Point
}

func New() *Store { return &Store{} }

func (s *Store) Upsert(ctx context.Context, points []vectorstore.Point) error {
	if len(points) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	dim := len(points[0].Vector)
	if len(s.points) > 0 {
		dim = len(s.points[0].Vector)
	}
	for _, p := range points {
		if len(p.Vector) != dim {
			return errors.New("vector dimension mismatch")
		}
	}
	s.points = append(s.points, points...)
	return nil
}

func (s *Store) Query(ctx context.Context, vector []float32, k int, filter map[string]any) ([]domain.SearchResult, error) {
	if k <= 0 {
		return nil, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	type scored struct {
		point vectorstore.Point
		score float64
	}
	var candidates []scored
	for _, p := range s.points {
		if len(filter) > 0 && !vectorstore.MatchesFilter(p.Metadata, filter) {
			continue
		}
		candidates = append(candidates, scored{point: p, score: vectorstore.Relevance(vectorstore.Cosine(p.Vector, vector))})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].point.ID < candidates[j].point.ID
	})
	if k > len(candidates) {
		k = len(candidates)
	}
	results := make([]domain.SearchResult, 0, k)
	for i := 0; i < k; i++ {
		c := candidates[i]
		results = append(results, domain.SearchResult{
			Content:  c.point.Content,
			Metadata: c.point.Metadata,
			Score:    c.score,
		})
	}
	return results, nil
}

func (s *Store) Close() error { return nil }

// Len reports the number of stored points.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.points)
}
