package bolt

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"

	"docrag/internal/domain"
	"docrag/internal/vectorstore"
)

var pointsBucket = []byte("points")

// Store is a local persistent vector store backed by a single bbolt
// file. Points are JSON-encoded (metadata is JSON-compatible by
// contract) and queries run a brute-force cosine scan, which is
// adequate at the document-collection scale this store targets.
type Store struct {
	db *bolt.DB
}

// Open opens or creates the database file, creating parent directories
// as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(pointsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Upsert stores all points in one transaction: either all land or the
// transaction rolls back.
func (s *Store) Upsert(ctx context.Context, points []vectorstore.Point) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(pointsBucket)
		for _, p := range points {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := json.Marshal(p)
			if err != nil {
				return fmt.Errorf("encode point %s: %w", p.ID, err)
			}
			if err := b.Put([]byte(p.ID), data); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) Query(ctx context.Context, vector []float32, k int, filter map[string]any) ([]domain.SearchResult, error) {
	if k <= 0 {
		return nil, nil
	}
	type scored struct {
		id      string
		content string
		meta    map[string]any
		score   float64
	}
	var candidates []scored
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(pointsBucket).ForEach(func(key, value []byte) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var p vectorstore.Point
			if err := json.Unmarshal(value, &p); err != nil {
				return fmt.Errorf("decode point %s: %w", key, err)
			}
			if len(filter) > 0 && !vectorstore.MatchesFilter(p.Metadata, filter) {
				return nil
			}
			candidates = append(candidates, scored{
				id:      p.ID,
				content: p.Content,
				meta:    p.Metadata,
				score:   vectorstore.Relevance(vectorstore.Cosine(p.Vector, vector)),
			})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].id < candidates[j].id
	})
	if k > len(candidates) {
		k = len(candidates)
	}
	results := make([]domain.SearchResult, 0, k)
	for i := 0; i < k; i++ {
		c := candidates[i]
		results = append(results, domain.SearchResult{Content: c.content, Metadata: c.meta, Score: c.score})
	}
	return results, nil
}

func (s *Store) Close() error { return s.db.Close() }
