// Package qdrant backs the memory store with a Qdrant cluster over gRPC.
// This is the production backend; the two collections are created with
// cosine distance and the per-space vector sizes.
package qdrant

import (
	"context"
	"fmt"

	qdrant "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"

	"github.com/intellicredit/creditmemory/features"
	"github.com/intellicredit/creditmemory/memory"
)

// Config holds Qdrant connection settings.
type Config struct {
	Host   string
	Port   int
	APIKey string
	UseTLS bool
}

// Store implements memory.Store on a remote Qdrant instance.
type Store struct {
	client *qdrant.Client
}

// New connects to Qdrant over gRPC.
func New(cfg Config) (*Store, error) {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   cfg.Host,
		Port:   cfg.Port,
		APIKey: cfg.APIKey,
		UseTLS: cfg.UseTLS,
		GrpcOptions: []grpc.DialOption{
			grpc.WithDefaultCallOptions(grpc.MaxCallRecvMsgSize(16 << 20)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("connect to qdrant: %w", err)
	}
	return &Store{client: client}, nil
}

// EnsureCollections creates the risk and fraud collections if they do not
// exist, sized to the fixed feature orders with cosine distance.
func (s *Store) EnsureCollections(ctx context.Context) error {
	spaces := map[string]uint64{
		memory.RiskCollection:  uint64(len(features.RiskVectorFeatures)),
		memory.FraudCollection: uint64(len(features.FraudVectorFeatures)),
	}
	for name, size := range spaces {
		exists, err := s.client.CollectionExists(ctx, name)
		if err != nil {
			return fmt.Errorf("check collection %s: %w", name, err)
		}
		if exists {
			continue
		}
		err = s.client.CreateCollection(ctx, &qdrant.CreateCollection{
			CollectionName: name,
			VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
				Size:     size,
				Distance: qdrant.Distance_Cosine,
			}),
		})
		if err != nil {
			return fmt.Errorf("create collection %s: %w", name, err)
		}
	}
	return nil
}

// Query returns the closest stored decisions by cosine similarity.
func (s *Store) Query(ctx context.Context, collection string, vector []float32, limit int) ([]memory.Hit, error) {
	points, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: collection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant query on %s: %w", collection, err)
	}

	hits := make([]memory.Hit, 0, len(points))
	for _, point := range points {
		hits = append(hits, memory.Hit{
			Collection: collection,
			Score:      float64(point.GetScore()),
			Payload:    fromQdrantPayload(point.GetPayload()),
		})
	}
	return hits, nil
}

// Upsert writes a point keyed by the deterministic application UUID.
func (s *Store) Upsert(ctx context.Context, collection string, id string, vector []float32, payload map[string]any) error {
	_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: collection,
		Wait:           qdrant.PtrOf(true),
		Points: []*qdrant.PointStruct{
			{
				Id:      qdrant.NewID(id),
				Vectors: qdrant.NewVectors(vector...),
				Payload: toQdrantPayload(payload),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("qdrant upsert on %s: %w", collection, err)
	}
	return nil
}

// Health checks cluster reachability.
func (s *Store) Health(ctx context.Context) error {
	if _, err := s.client.HealthCheck(ctx); err != nil {
		return fmt.Errorf("qdrant health check: %w", err)
	}
	return nil
}

// Close tears down the gRPC connection.
func (s *Store) Close() error {
	return s.client.Close()
}
