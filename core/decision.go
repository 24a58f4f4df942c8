package core

// PipelineRequest bundles an application with its transaction history.
// This is the decision-request payload consumed from the external API layer.
type PipelineRequest struct {
	Application  LoanApplication `json:"application"`
	Transactions []Transaction   `json:"transactions"`
}

// DecisionStatus is the pipeline's recommendation for an application.
type DecisionStatus string

const (
	DecisionApproved     DecisionStatus = "APPROVED"
	DecisionRejected     DecisionStatus = "REJECTED"
	DecisionReferToFraud DecisionStatus = "REFER_TO_FRAUD"
)

// PipelineResponse is the structured result of one analyze call.
// Immutable after construction.
type PipelineResponse struct {
	ApplicationID   string         `json:"application_id"`
	DecisionStatus  DecisionStatus `json:"decision_status"`
	ConfidenceScore int            `json:"confidence_score"`
	Explanation     string         `json:"explanation"`
	Suggestions     []string       `json:"suggestions"`
	RiskTwins       []TwinRecord   `json:"risk_twins"`
	FraudMatches    []TwinRecord   `json:"fraud_matches"`
}

// TwinRecord is a historical decision retrieved by vector similarity,
// projected from an open-ended stored payload into a fixed shape. Optional
// fields stay nil when the stored payload lacks them; the projection never
// fails on unknown or missing payload keys.
type TwinRecord struct {
	CustomerID      string  `json:"customer_id"`
	LoanStatus      string  `json:"loan_status"`
	SimilarityScore float64 `json:"similarity_score"`

	// Risk-memory metadata.
	LoanType              *string  `json:"loan_type,omitempty"`
	PurposeOfLoan         *string  `json:"purpose_of_loan,omitempty"`
	MonthlyIncome         *float64 `json:"monthly_income,omitempty"`
	CIBILScore            *int     `json:"cibil_score,omitempty"`
	LoanAmountRequested   *float64 `json:"loan_amount_requested,omitempty"`
	EssentialSpendRatio   *float64 `json:"essential_spending_ratio,omitempty"`
	LifestyleSpendRatio   *float64 `json:"lifestyle_spending_ratio,omitempty"`
	CashFlowCoverageRatio *float64 `json:"cash_flow_coverage_ratio,omitempty"`
	IncomeStabilityProxy  *float64 `json:"income_stability_proxy,omitempty"`

	// Fraud-memory metadata.
	FraudFlag             *int     `json:"fraud_flag,omitempty"`
	FraudType             *string  `json:"fraud_type,omitempty"`
	AvgTxAmount           *float64 `json:"avg_tx_amount,omitempty"`
	EmploymentStatus      *string  `json:"employment_status,omitempty"`
	UniqueIPs             *int     `json:"unique_ips,omitempty"`
	UniqueDevices         *int     `json:"unique_devices,omitempty"`
	MaxIPSharingScore     *float64 `json:"max_ip_sharing_score,omitempty"`
	MaxDeviceSharingScore *float64 `json:"max_device_sharing_score,omitempty"`
	IncomeValidationRatio *float64 `json:"income_validation_ratio,omitempty"`
	FailedRatio           *float64 `json:"failed_ratio,omitempty"`
	MidnightAppFlag       *int     `json:"midnight_app_flag,omitempty"`
	SuspiciousNotesCount  *int     `json:"suspicious_notes_count,omitempty"`
	MuleIndicatorRatio    *float64 `json:"mule_indicator_ratio,omitempty"`
}

// FinalStatus values a human reviewer can attach during finalization.
// Fraud outcomes contain the FraudStatusMarker substring; the feedback loop
// keys its conditional fraud-memory write off that marker.
const (
	FinalStatusApproved        = "Approved"
	FinalStatusDeclined        = "Declined"
	FinalStatusFraudDetected   = "Fraudulent - Detected"
	FinalStatusFraudUndetected = "Fraudulent - Undetected"

	FraudStatusMarker = "Fraudulent"
)

// ReviewAction is the human-in-the-loop feedback payload.
type ReviewAction struct {
	ApplicationID string `json:"application_id"`
	ReviewerID    string `json:"reviewer_id"`
	FinalStatus   string `json:"final_status"`
	Notes         string `json:"notes"`
}
