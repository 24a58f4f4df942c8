package pipeline_test

import (
	"testing"

	"github.com/intellicredit/creditmemory/memory"
	"github.com/intellicredit/creditmemory/pipeline"
)

func TestTwinFromHit(t *testing.T) {
	hit := memory.Hit{
		Collection: memory.RiskCollection,
		Score:      0.934567,
		Payload: map[string]any{
			"customer_id":              "CUST-88",
			"loan_status":              "Approved",
			"loan_type":                "Personal Loan",
			"monthly_income":           72000.0,
			"cibil_score":              701.0,
			"essential_spending_ratio": 0.41,
			"unexpected_key":           "ignored",
		},
	}

	twin := pipeline.TwinFromHit(hit)
	if twin.CustomerID != "CUST-88" {
		t.Errorf("CustomerID = %q", twin.CustomerID)
	}
	if twin.LoanStatus != "Approved" {
		t.Errorf("LoanStatus = %q", twin.LoanStatus)
	}
	if twin.SimilarityScore != 0.93 {
		t.Errorf("SimilarityScore = %v, want 0.93", twin.SimilarityScore)
	}
	if twin.CIBILScore == nil || *twin.CIBILScore != 701 {
		t.Errorf("CIBILScore = %v, want 701", twin.CIBILScore)
	}
	if twin.MonthlyIncome == nil || *twin.MonthlyIncome != 72000 {
		t.Errorf("MonthlyIncome = %v, want 72000", twin.MonthlyIncome)
	}
	if twin.EssentialSpendRatio == nil || *twin.EssentialSpendRatio != 0.41 {
		t.Errorf("EssentialSpendRatio = %v, want 0.41", twin.EssentialSpendRatio)
	}
	if twin.FraudType != nil {
		t.Errorf("FraudType = %v, want nil for absent key", twin.FraudType)
	}
}

func TestTwinFromHitSparsePayload(t *testing.T) {
	twin := pipeline.TwinFromHit(memory.Hit{Score: 0.5, Payload: map[string]any{}})
	if twin.CustomerID != "" || twin.LoanStatus != "" {
		t.Errorf("sparse payload projected identity fields: %+v", twin)
	}
	if twin.MonthlyIncome != nil || twin.FraudFlag != nil {
		t.Error("sparse payload produced non-nil optional fields")
	}
}

func TestNormalizeFraudType(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, "N/A"},
		{0.0, "N/A"},
		{0, "N/A"},
		{"0", "N/A"},
		{"nan", "N/A"},
		{"NaN", "N/A"},
		{"", "N/A"},
		{"Income Misrepresentation", "Income Misrepresentation"},
		{"Mule Account", "Mule Account"},
	}
	for _, tc := range cases {
		if got := pipeline.NormalizeFraudType(tc.in); got != tc.want {
			t.Errorf("NormalizeFraudType(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
