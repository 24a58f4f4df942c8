package memory

import (
	"context"
	"math"
)

// Collection names. These identify the two vector spaces in every backend;
// renaming one orphans all previously stored vectors.
const (
	RiskCollection  = "credit_decision_memory"
	FraudCollection = "fraud_anomaly_memory"
)

// DefaultSearchLimit is the number of twins retrieved per collection when
// the caller does not override it.
const DefaultSearchLimit = 3

// Hit is one similarity-search result: a precedent decision and how close
// it sits to the query vector. Hits are transient; they are never persisted.
type Hit struct {
	Collection string
	Score      float64
	Payload    map[string]any
}

// Store is the vector storage backend contract.
// Implementations: chromem.Store (embedded, local/tests), qdrant.Store
// (production, gRPC).
type Store interface {
	// Query returns at most limit hits ordered by descending cosine
	// similarity.
	Query(ctx context.Context, collection string, vector []float32, limit int) ([]Hit, error)

	// Upsert stores a vector with its sanitized payload under the given
	// point ID, replacing any previous record with that ID.
	Upsert(ctx context.Context, collection string, id string, vector []float32, payload map[string]any) error

	// Health reports whether the backend is reachable.
	Health(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}

// NormalizeVector replaces NaN and Inf components with 0 so a vector is
// always valid for search and storage.
func NormalizeVector(vec []float32) []float32 {
	out := make([]float32, len(vec))
	for i, v := range vec {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			out[i] = 0
			continue
		}
		out[i] = v
	}
	return out
}
