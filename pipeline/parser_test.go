package pipeline_test

import (
	"testing"

	"github.com/intellicredit/creditmemory/core"
	"github.com/intellicredit/creditmemory/pipeline"
)

func TestParseVerdictFull(t *testing.T) {
	raw := `FINAL_STATUS: [APPROVED]
CONFIDENCE_LEVEL: 87%
EXPLANATION: The applicant closely matches two approved twins with stable balances. No fraud anomalies were retrieved. CIBIL is well above policy floor.
SUGGESTIONS:
- Verify salary slip for the last 3 months
- Confirm residential address via utility bill`

	v := pipeline.ParseVerdict(raw)
	if v.Status != core.DecisionApproved {
		t.Errorf("Status = %q, want APPROVED", v.Status)
	}
	if v.Confidence != 87 {
		t.Errorf("Confidence = %d, want 87", v.Confidence)
	}
	if v.Explanation == pipeline.DefaultExplanation {
		t.Error("Explanation fell back to default on well-formed input")
	}
	if len(v.Suggestions) != 2 {
		t.Fatalf("Suggestions = %v, want 2 entries", v.Suggestions)
	}
	if v.Suggestions[0] != "Verify salary slip for the last 3 months" {
		t.Errorf("Suggestions[0] = %q, list marker not stripped", v.Suggestions[0])
	}
}

func TestParseVerdictWithoutBrackets(t *testing.T) {
	raw := "FINAL_STATUS: REJECTED\nCONFIDENCE_LEVEL: 92%\nEXPLANATION: High fraud similarity."
	v := pipeline.ParseVerdict(raw)
	if v.Status != core.DecisionRejected {
		t.Errorf("Status = %q, want REJECTED", v.Status)
	}
	if v.Confidence != 92 {
		t.Errorf("Confidence = %d, want 92", v.Confidence)
	}
	if v.Explanation != "High fraud similarity." {
		t.Errorf("Explanation = %q", v.Explanation)
	}
	if v.Suggestions != nil {
		t.Errorf("Suggestions = %v, want none", v.Suggestions)
	}
}

func TestParseVerdictGarbage(t *testing.T) {
	// Unreadable output fails closed on every field.
	v := pipeline.ParseVerdict("Error communicating with reasoning service: connection refused")
	if v.Status != core.DecisionRejected {
		t.Errorf("Status = %q, want fail-closed REJECTED", v.Status)
	}
	if v.Confidence != pipeline.DefaultConfidence {
		t.Errorf("Confidence = %d, want default %d", v.Confidence, pipeline.DefaultConfidence)
	}
	if v.Explanation != pipeline.DefaultExplanation {
		t.Errorf("Explanation = %q, want default", v.Explanation)
	}
}

func TestParseVerdictConfidenceClamp(t *testing.T) {
	v := pipeline.ParseVerdict("FINAL_STATUS: APPROVED\nCONFIDENCE_LEVEL: 250%")
	if v.Confidence != 100 {
		t.Errorf("Confidence = %d, want clamped 100", v.Confidence)
	}
}

func TestParseVerdictEmptyExplanation(t *testing.T) {
	// A present but empty EXPLANATION tag still takes the default.
	v := pipeline.ParseVerdict("FINAL_STATUS: APPROVED\nEXPLANATION:\nSUGGESTIONS: none")
	if v.Explanation != pipeline.DefaultExplanation {
		t.Errorf("Explanation = %q, want default", v.Explanation)
	}
}
