package chromem_test

import (
	"context"
	"testing"

	"github.com/intellicredit/creditmemory/memory"
	"github.com/intellicredit/creditmemory/memory/store/chromem"
)

func TestUpsertAndQuery(t *testing.T) {
	ctx := context.Background()
	store, err := chromem.New()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	vec := []float32{1, 0, 0}
	payload := map[string]any{"customer_id": "CUST-1", "loan_status": "Approved", "cibil_score": 720.0}

	if err := store.Upsert(ctx, memory.RiskCollection, "id-1", vec, payload); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	hits, err := store.Query(ctx, memory.RiskCollection, []float32{1, 0, 0}, 3)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("hits = %d, want 1", len(hits))
	}
	if hits[0].Payload["customer_id"] != "CUST-1" {
		t.Errorf("payload round-trip lost customer_id: %v", hits[0].Payload)
	}
	if hits[0].Payload["cibil_score"] != 720.0 {
		t.Errorf("cibil_score = %v, want 720", hits[0].Payload["cibil_score"])
	}
	if hits[0].Score < 0.99 {
		t.Errorf("identical vector similarity = %v, want ~1", hits[0].Score)
	}
}

func TestQueryEmptyCollection(t *testing.T) {
	store, err := chromem.New()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	hits, err := store.Query(context.Background(), memory.FraudCollection, []float32{1, 0}, 3)
	if err != nil {
		t.Fatalf("Query on empty collection failed: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("hits = %v, want none", hits)
	}
}

func TestQueryLimitShrinks(t *testing.T) {
	ctx := context.Background()
	store, err := chromem.New()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	// One stored document, three requested: the limit must shrink instead
	// of erroring out.
	if err := store.Upsert(ctx, memory.RiskCollection, "id-1", []float32{0, 1}, map[string]any{"loan_status": "Declined"}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	hits, err := store.Query(ctx, memory.RiskCollection, []float32{0, 1}, 3)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(hits) != 1 {
		t.Errorf("hits = %d, want 1", len(hits))
	}
}

func TestUpsertReplaces(t *testing.T) {
	ctx := context.Background()
	store, err := chromem.New()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	if err := store.Upsert(ctx, memory.RiskCollection, "id-1", []float32{1, 0}, map[string]any{"loan_status": "Approved"}); err != nil {
		t.Fatalf("first Upsert failed: %v", err)
	}
	if err := store.Upsert(ctx, memory.RiskCollection, "id-1", []float32{1, 0}, map[string]any{"loan_status": "Fraudulent - Detected"}); err != nil {
		t.Fatalf("second Upsert failed: %v", err)
	}

	hits, err := store.Query(ctx, memory.RiskCollection, []float32{1, 0}, 2)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("hits = %d, want 1 after replacement", len(hits))
	}
	if hits[0].Payload["loan_status"] != "Fraudulent - Detected" {
		t.Errorf("loan_status = %v, want replaced value", hits[0].Payload["loan_status"])
	}
}
