// Package chromem backs the memory store with chromem-go, a pure Go
// embedded vector database. It serves local runs and tests; production
// deployments use the qdrant backend.
package chromem

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	chromem "github.com/philippgille/chromem-go"

	"github.com/intellicredit/creditmemory/memory"
)

// Store implements memory.Store on an in-process chromem-go database.
type Store struct {
	db          *chromem.DB
	collections map[string]*chromem.Collection
	mu          sync.RWMutex
}

// New creates an empty embedded store.
func New() (*Store, error) {
	return &Store{
		db:          chromem.NewDB(),
		collections: make(map[string]*chromem.Collection),
	}, nil
}

// getOrCreateCollection lazily creates a named collection. chromem uses
// cosine distance by default, matching the memory contract.
func (s *Store) getOrCreateCollection(name string) (*chromem.Collection, error) {
	s.mu.RLock()
	col, exists := s.collections[name]
	s.mu.RUnlock()

	if exists {
		return col, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check after acquiring write lock
	if col, exists := s.collections[name]; exists {
		return col, nil
	}

	col, err := s.db.CreateCollection(
		name,
		nil, // no collection metadata
		nil, // no embedding func (we supply vectors)
	)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	s.collections[name] = col
	return col, nil
}

// Upsert stores a sanitized payload with its vector. The payload is
// serialized to JSON document content; the point ID keys the document, so
// re-finalizing an application replaces its record.
func (s *Store) Upsert(ctx context.Context, collection string, id string, vector []float32, payload map[string]any) error {
	col, err := s.getOrCreateCollection(collection)
	if err != nil {
		return err
	}

	content, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("serialize payload: %w", err)
	}

	doc := chromem.Document{
		ID:        id,
		Content:   string(content),
		Embedding: vector,
		Metadata:  map[string]string{"point_id": id},
	}
	if err := col.AddDocument(ctx, doc); err != nil {
		return fmt.Errorf("add document: %w", err)
	}
	return nil
}

// Query retrieves the closest stored decisions by cosine similarity.
func (s *Store) Query(ctx context.Context, collection string, vector []float32, limit int) ([]memory.Hit, error) {
	col, err := s.getOrCreateCollection(collection)
	if err != nil {
		return nil, err
	}

	// chromem-go requires nResults <= collection size; retry with smaller
	// limits until the query fits.
	var results []chromem.Result
	for currentLimit := limit; currentLimit >= 1; currentLimit-- {
		var err error
		results, err = col.QueryEmbedding(ctx, vector, currentLimit, nil, nil)
		if err == nil {
			break
		}
		if isInsufficientDocsError(err) {
			if currentLimit == 1 {
				// Collection is empty
				return nil, nil
			}
			continue
		}
		return nil, fmt.Errorf("chromem query: %w", err)
	}

	hits := make([]memory.Hit, 0, len(results))
	for _, result := range results {
		var payload map[string]any
		if err := json.Unmarshal([]byte(result.Content), &payload); err != nil {
			continue // skip undecodable records rather than failing retrieval
		}
		hits = append(hits, memory.Hit{
			Collection: collection,
			Score:      float64(result.Similarity),
			Payload:    payload,
		})
	}
	return hits, nil
}

// Health always succeeds: the database lives in-process.
func (s *Store) Health(ctx context.Context) error { return nil }

// Close releases nothing; chromem keeps everything in memory.
func (s *Store) Close() error { return nil }

// isInsufficientDocsError checks if the error is chromem's complaint about
// requesting more results than stored documents.
func isInsufficientDocsError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "nResults must be") || strings.Contains(msg, "number of documents")
}
