package features

// RiskVectorFeatures is the fixed feature order of the risk memory space.
// Reordering or resizing this list invalidates every stored risk vector;
// it must only change together with a full memory migration.
var RiskVectorFeatures = []string{
	"applicant_age", "number_of_dependents", "monthly_income", "cibil_score",
	"existing_emis_monthly", "debt_to_income_ratio", "loan_amount_requested",
	"loan_tenure_months", "interest_rate_offered", "loan_to_income_ratio",
	"installment_to_income_ratio", "disposable_income", "age_at_loan_end",
	"income_per_dependent", "gender_val", "property_val", "cibil_category_val",
	"avg_monthly_balance", "balance_volatility", "min_balance_reached",
	"max_transaction_value", "avg_transaction_value", "total_monthly_burn_rate",
	"essential_spending_ratio", "lifestyle_spending_ratio", "transaction_frequency",
	"international_tx_indicator", "device_diversity_score", "ip_stability_ratio",
	"debt_indicator_ratio", "cash_dependence_ratio", "cash_flow_coverage_ratio",
	"payment_to_income_reality_check", "income_stability_proxy", "previous_application_count",
}

// FraudVectorFeatures is the fixed feature order of the fraud memory space.
// Same contract as RiskVectorFeatures.
var FraudVectorFeatures = []string{
	"applicant_age", "monthly_income", "cibil_score", "loan_amount_requested",
	"employment_risk_val", "loan_type_risk_val", "number_of_dependents",
	"avg_tx_amount", "max_tx_amount", "intl_tx_count", "unique_locations",
	"unique_ips", "unique_devices", "unique_destinations", "financial_service_spend",
	"max_ip_sharing_score", "max_device_sharing_score", "suspicious_notes_count",
	"failed_ratio", "mule_indicator_ratio", "intl_tx_ratio", "avg_tx_velocity",
	"income_validation_ratio", "loan_to_spend_ratio", "midnight_app_flag",
}

// transactionFeatures lists every transaction-derived feature name. With an
// empty history each one is written as an explicit 0, so the stored payload
// schema is identical whether or not transactions were supplied.
var transactionFeatures = []string{
	"avg_monthly_balance", "balance_volatility", "total_monthly_burn_rate",
	"essential_spending_ratio", "lifestyle_spending_ratio", "transaction_frequency",
	"international_tx_indicator", "device_diversity_score", "ip_stability_ratio",
	"debt_indicator_ratio", "cash_dependence_ratio", "min_balance_reached",
	"max_transaction_value", "avg_transaction_value",
	"avg_tx_amount", "max_tx_amount", "intl_tx_count", "unique_locations",
	"unique_ips", "unique_devices", "unique_destinations", "financial_service_spend",
	"max_ip_sharing_score", "max_device_sharing_score", "suspicious_notes_count",
	"failed_ratio", "mule_indicator_ratio", "intl_tx_ratio", "avg_tx_velocity",
	"income_validation_ratio", "loan_to_spend_ratio",
}
