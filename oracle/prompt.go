package oracle

import (
	"fmt"
	"strings"
)

// SystemPrompt frames the reasoning service as a forensic underwriter
// comparing the applicant against the bank's historical memory.
const SystemPrompt = "You are a Senior Forensic Underwriter and Credit Risk Specialist. " +
	"Your task is to provide a final decision on a loan application by " +
	"comparing the current applicant against the bank's 'Historical Memory'. " +
	"You must balance financial risk with behavioral fraud anomalies."

// SimilarityLabel converts a raw cosine similarity into a forensic label
// that steers the reasoning service's attention.
func SimilarityLabel(score float64) string {
	switch {
	case score >= 0.95:
		return "CRITICAL IDENTICAL MATCH"
	case score >= 0.90:
		return "HIGH SIMILARITY"
	case score >= 0.80:
		return "MODERATE SIMILARITY"
	default:
		return "LOW SIMILARITY / NEUTRAL"
	}
}

// BuildPrompt renders the decision context as the user prompt, ending with
// the strict output grammar the response parser expects.
func BuildPrompt(req Request) string {
	var b strings.Builder

	b.WriteString("### NEW APPLICANT SUMMARY\n")
	fmt.Fprintf(&b, "- CIBIL Score: %v\n", req.Applicant["cibil_score"])
	fmt.Fprintf(&b, "- Claimed Monthly Income: %v\n", req.Applicant["monthly_income"])
	fmt.Fprintf(&b, "- Loan Amount Requested: %v\n", req.Applicant["loan_amount_requested"])
	fmt.Fprintf(&b, "- Device Sharing Score: %v\n", req.Applicant["max_device_sharing_score"])
	fmt.Fprintf(&b, "- Midnight Application: %s\n", yesNo(req.Applicant["midnight_app_flag"]))

	b.WriteString("\n### HARD RULE VIOLATIONS (Pre-processed)\n")
	if len(req.Violations) > 0 {
		b.WriteString(strings.Join(req.Violations, ", "))
	} else {
		b.WriteString("None")
	}

	b.WriteString("\n\n### HISTORICAL FINANCIAL TWINS (Risk Memory)\n")
	if len(req.RiskTwins) == 0 {
		b.WriteString("No similar financial profiles found.")
	} else {
		for _, twin := range req.RiskTwins {
			score := numberOrZero(twin["similarity_score"])
			fmt.Fprintf(&b, "- Twin (Similarity: %.2f, %s): Status %v, CIBIL %v\n",
				score, SimilarityLabel(score), twin["loan_status"], twin["cibil_score"])
		}
	}

	b.WriteString("\n\n### HISTORICAL ANOMALIES (Fraud Memory)\n")
	if len(req.FraudTwins) == 0 {
		b.WriteString("No similar fraud patterns found.")
	} else {
		for _, twin := range req.FraudTwins {
			score := numberOrZero(twin["similarity_score"])
			fmt.Fprintf(&b, "- Anomaly Match (Similarity: %.2f, %s): Type %v, Outcome %v\n",
				score, SimilarityLabel(score), twin["fraud_type"], twin["loan_status"])
		}
	}

	b.WriteString(`

### DECISION LOGIC GUIDELINES
1. FRAUD OVERRIDE: If a Fraud Match similarity is > 0.90, REJECT regardless of CIBIL score.
2. LIFESTYLE CHECK: If the applicant claims high income but twins with low spend were rejected for 'Income Misrepresentation', flag it.
3. BUFFER: If Fraud Match similarity is < 0.85 and Credit Twins were 'Approved', lean towards APPROVAL.
4. DEVICE SCORE: A score of 1.0 is PERFECT and SAFE. Do NOT penalize for a score of 1.
5. SIMILARITY WEIGHT: If any Twin has a similarity > 0.95, that twin represents how this bank handles such cases.
6. STATUS CONFLICT: If twins are split between Approved and Declined, prioritize 'Approved' if the applicant's CIBIL is > 650 and Debt-to-Income is < 40%.
7. BE DECISIVE.

### REQUIRED OUTPUT FORMAT (Strict)
FINAL_STATUS: [APPROVED or REJECTED]
CONFIDENCE_LEVEL: [0-100]%
EXPLANATION: [3-5 sentences analyzing the match between current data and historical memory]
SUGGESTIONS: [List 2-3 specific verification steps for the agent]
`)

	return b.String()
}

func yesNo(v any) string {
	if numberOrZero(v) == 1 {
		return "Yes"
	}
	return "No"
}

func numberOrZero(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}
