package pipeline

import (
	"fmt"
	"math"
	"strings"

	"github.com/intellicredit/creditmemory/core"
	"github.com/intellicredit/creditmemory/memory"
)

// TwinFromHit projects a raw memory hit into the fixed response shape.
// Unknown payload keys are ignored and missing keys leave their field nil;
// the projection never fails.
func TwinFromHit(hit memory.Hit) core.TwinRecord {
	p := hit.Payload
	twin := core.TwinRecord{
		CustomerID:      payloadString(p, "customer_id"),
		LoanStatus:      payloadString(p, "loan_status"),
		SimilarityScore: round2(hit.Score),
	}

	twin.LoanType = stringPtr(p, "loan_type")
	twin.PurposeOfLoan = stringPtr(p, "purpose_of_loan")
	twin.MonthlyIncome = floatPtr(p, "monthly_income")
	twin.CIBILScore = intPtr(p, "cibil_score")
	twin.LoanAmountRequested = floatPtr(p, "loan_amount_requested")
	twin.EssentialSpendRatio = floatPtr(p, "essential_spending_ratio")
	twin.LifestyleSpendRatio = floatPtr(p, "lifestyle_spending_ratio")
	twin.CashFlowCoverageRatio = floatPtr(p, "cash_flow_coverage_ratio")
	twin.IncomeStabilityProxy = floatPtr(p, "income_stability_proxy")

	twin.FraudFlag = intPtr(p, "fraud_flag")
	if _, ok := p["fraud_type"]; ok {
		ft := NormalizeFraudType(p["fraud_type"])
		twin.FraudType = &ft
	}
	twin.AvgTxAmount = floatPtr(p, "avg_tx_amount")
	twin.EmploymentStatus = stringPtr(p, "employment_status")
	twin.UniqueIPs = intPtr(p, "unique_ips")
	twin.UniqueDevices = intPtr(p, "unique_devices")
	twin.MaxIPSharingScore = floatPtr(p, "max_ip_sharing_score")
	twin.MaxDeviceSharingScore = floatPtr(p, "max_device_sharing_score")
	twin.IncomeValidationRatio = floatPtr(p, "income_validation_ratio")
	twin.FailedRatio = floatPtr(p, "failed_ratio")
	twin.MidnightAppFlag = intPtr(p, "midnight_app_flag")
	twin.SuspiciousNotesCount = intPtr(p, "suspicious_notes_count")
	twin.MuleIndicatorRatio = floatPtr(p, "mule_indicator_ratio")

	return twin
}

// twinsFromHits projects a hit slice, preserving retrieval order.
func twinsFromHits(hits []memory.Hit) []core.TwinRecord {
	out := make([]core.TwinRecord, 0, len(hits))
	for _, h := range hits {
		out = append(out, TwinFromHit(h))
	}
	return out
}

// NormalizeFraudType collapses the many ways upstream systems encode "no
// fraud type" (nil, 0, "0", "nan") into the display value "N/A".
func NormalizeFraudType(v any) string {
	switch t := v.(type) {
	case nil:
		return "N/A"
	case string:
		s := strings.TrimSpace(t)
		if s == "" || s == "0" || strings.EqualFold(s, "nan") {
			return "N/A"
		}
		return s
	case float64:
		if t == 0 || math.IsNaN(t) {
			return "N/A"
		}
		return fmt.Sprint(t)
	case int:
		if t == 0 {
			return "N/A"
		}
		return fmt.Sprint(t)
	default:
		return fmt.Sprint(v)
	}
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func payloadString(p map[string]any, key string) string {
	v, ok := p[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func stringPtr(p map[string]any, key string) *string {
	v, ok := p[key]
	if !ok || v == nil {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		s = fmt.Sprint(v)
	}
	return &s
}

func floatPtr(p map[string]any, key string) *float64 {
	v, ok := p[key]
	if !ok {
		return nil
	}
	f, ok := asFloat(v)
	if !ok {
		return nil
	}
	return &f
}

func intPtr(p map[string]any, key string) *int {
	v, ok := p[key]
	if !ok {
		return nil
	}
	f, ok := asFloat(v)
	if !ok {
		return nil
	}
	n := int(f)
	return &n
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
