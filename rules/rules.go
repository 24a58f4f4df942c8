// Package rules evaluates the hard underwriting guardrails. A violation
// flags an application for the reasoning stage; it does not reject by
// itself.
package rules

import "github.com/intellicredit/creditmemory/features"

// Guardrail thresholds. These are domain constants carried over from the
// bank's underwriting policy, not derived values.
const (
	MinCIBILScore          = 300
	MaxInstallmentToIncome = 0.80
	MinApplicantAge        = 18
)

// Violation messages. The exact strings are part of the decision-context
// contract consumed by the reasoning stage and by reviewers.
const (
	ViolationCIBILBelowMinimum = "CIBIL score below absolute minimum (300)"
	ViolationDTIExceeded       = "Debt-to-Income obligations exceed 80%"
	ViolationUnderage          = "Applicant below legal age"
)

// Check evaluates every guardrail independently and returns all violations.
// It is pure and total: missing features read as 0, which only ever
// triggers the checks a zero value legitimately triggers.
func Check(m features.FeatureMap) []string {
	var violations []string
	if m.Number("cibil_score") < MinCIBILScore {
		violations = append(violations, ViolationCIBILBelowMinimum)
	}
	if m.Number("installment_to_income_ratio") > MaxInstallmentToIncome {
		violations = append(violations, ViolationDTIExceeded)
	}
	if m.Number("applicant_age") < MinApplicantAge {
		violations = append(violations, ViolationUnderage)
	}
	return violations
}
