package features

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/intellicredit/creditmemory/core"
)

// EMIBufferFactor pads the estimated monthly installment to account for
// rate drift over the tenure.
const EMIBufferFactor = 1.1

// Category partitions used by the spending aggregates.
var (
	essentialCategories = map[core.MerchantCategory]bool{
		core.CategoryUtilities:  true,
		core.CategoryHealthcare: true,
		core.CategoryGroceries:  true,
		core.CategoryEducation:  true,
		core.CategoryFuel:       true,
	}
	lifestyleCategories = map[core.MerchantCategory]bool{
		core.CategoryDining:         true,
		core.CategoryTravel:         true,
		core.CategoryEntertainment:  true,
		core.CategoryOnlineShopping: true,
		core.CategoryElectronics:    true,
	}
)

// suspiciousNoteTerms is the closed vocabulary flagged in free-text notes.
var suspiciousNoteTerms = []string{"test", "refund", "verify", "cash"}

// Categorical encoding tables. Closed enumerations with documented defaults
// for unmapped values; these feed the vectors directly, so the codes are
// part of the memory contract.
var (
	genderVals = map[core.Gender]float64{
		core.GenderMale: 0, core.GenderFemale: 1, core.GenderOther: 0.5,
	}
	propertyVals = map[core.PropertyStatus]float64{
		core.PropertyRented: 0, core.PropertyJointlyOwned: 0.5, core.PropertyOwned: 1,
	}
	employmentRiskVals = map[core.EmploymentStatus]float64{
		core.EmploymentSalaried:      0.2,
		core.EmploymentBusinessOwner: 0.4,
		core.EmploymentSelfEmployed:  0.6,
		core.EmploymentStudent:       0.8,
		core.EmploymentUnemployed:    1.0,
		core.EmploymentRetired:       0.1,
	}
	loanTypeRiskVals = map[core.LoanType]float64{
		core.LoanTypeHome:      0.1,
		core.LoanTypeCar:       0.2,
		core.LoanTypeEducation: 0.4,
		core.LoanTypeBusiness:  0.7,
		core.LoanTypePersonal:  0.9,
	}
)

const (
	defaultEmploymentRisk = 0.5
	defaultLoanTypeRisk   = 0.5
)

// Engine derives feature maps and scaled vectors. The scalers are loaded
// once at process start and shared read-only by all requests.
type Engine struct {
	risk  Scaler
	fraud Scaler
}

// NewEngine creates a feature engine with one pre-fitted scaler per vector
// space. Scaler dimensions must match the fixed feature orders.
func NewEngine(risk, fraud Scaler) (*Engine, error) {
	if d := risk.Dimensions(); d != len(RiskVectorFeatures) {
		return nil, fmt.Errorf("risk scaler has %d dimensions, want %d", d, len(RiskVectorFeatures))
	}
	if d := fraud.Dimensions(); d != len(FraudVectorFeatures) {
		return nil, fmt.Errorf("fraud scaler has %d dimensions, want %d", d, len(FraudVectorFeatures))
	}
	return &Engine{risk: risk, fraud: fraud}, nil
}

// Derive transforms an application plus its transaction history into the
// enriched feature map and the two scaled memory vectors. Density maps are
// collaborator-supplied; a nil or empty map means every IP/device scores 1
// (unshared). Derivation is pure: no hidden state, no clock reads.
func (e *Engine) Derive(
	app core.LoanApplication,
	txs []core.Transaction,
	ipDensity, deviceDensity map[string]float64,
) (FeatureMap, []float32, []float32, error) {
	if err := app.Validate(); err != nil {
		return nil, nil, nil, err
	}
	for i := range txs {
		if err := txs[i].Validate(); err != nil {
			return nil, nil, nil, err
		}
	}

	m := seedFromApplication(app)
	var essentialVal float64
	if len(txs) > 0 {
		essentialVal = deriveTransactional(m, txs, ipDensity, deviceDensity)
	} else {
		for _, name := range transactionFeatures {
			m[name] = 0.0
		}
	}
	deriveStatic(m, app, essentialVal)
	encodeCategoricals(m, app)

	riskVec, err := e.buildVector(m, RiskVectorFeatures, e.risk)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("risk vector: %w", err)
	}
	fraudVec, err := e.buildVector(m, FraudVectorFeatures, e.fraud)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("fraud vector: %w", err)
	}
	return m, riskVec, fraudVec, nil
}

func seedFromApplication(app core.LoanApplication) FeatureMap {
	return FeatureMap{
		"application_id":            app.ApplicationID,
		"customer_id":               app.CustomerID,
		"application_date":          app.ApplicationDate,
		"loan_type":                 string(app.LoanType),
		"loan_amount_requested":     app.LoanAmountRequested,
		"loan_tenure_months":        float64(app.LoanTenureMonths),
		"interest_rate_offered":     app.InterestRateOffered,
		"purpose_of_loan":           app.PurposeOfLoan,
		"employment_status":         string(app.EmploymentStatus),
		"monthly_income":            app.MonthlyIncome,
		"cibil_score":               float64(app.CIBILScore),
		"existing_emis_monthly":     app.ExistingEMIsMonthly,
		"debt_to_income_ratio":      app.DebtToIncomeRatio,
		"property_ownership_status": string(app.PropertyOwnership),
		"residential_address":       app.ResidentialAddress,
		"applicant_age":             float64(app.ApplicantAge),
		"gender":                    string(app.Gender),
		"number_of_dependents":      float64(app.NumberOfDependents),
	}
}

// deriveTransactional fills every transaction-derived feature and returns
// the absolute essential spend for the static reality-check ratio.
func deriveTransactional(m FeatureMap, txs []core.Transaction, ipDensity, deviceDensity map[string]float64) float64 {
	n := float64(len(txs))

	var totalSpent, maxAmount float64
	var essentialVal, lifestyleVal, debtVal, cashVal float64
	var balanceSum, minBalance float64
	var intlCount, failedCount, suspiciousCount float64

	months := map[string]bool{}
	locations := map[string]bool{}
	ips := map[string]bool{}
	devs := map[string]bool{}
	dests := map[string]bool{}

	for i, tx := range txs {
		amt := tx.TransactionAmount
		totalSpent += amt
		if i == 0 || amt > maxAmount {
			maxAmount = amt
		}
		switch {
		case essentialCategories[tx.MerchantCategory]:
			essentialVal += amt
		case lifestyleCategories[tx.MerchantCategory]:
			lifestyleVal += amt
		}
		if tx.MerchantCategory == core.CategoryFinancialSvc {
			debtVal += amt
		}
		if tx.MerchantCategory == core.CategoryCashWithdrawal {
			cashVal += amt
		}

		balanceSum += tx.BalanceAfter
		if i == 0 || tx.BalanceAfter < minBalance {
			minBalance = tx.BalanceAfter
		}
		if tx.IsInternational != 0 {
			intlCount++
		}
		if tx.TransactionStatus == core.StatusFailed {
			failedCount++
		}
		if noteIsSuspicious(tx.TransactionNotes) {
			suspiciousCount++
		}
		if ts, ok := parseDate(tx.TransactionDate); ok {
			months[ts.Format("2006-01")] = true
		}
		locations[tx.Location] = true
		ips[tx.IPAddress] = true
		devs[string(tx.DeviceUsed)] = true
		dests[tx.SourceDestination] = true
	}

	totalMonths := float64(len(months))
	if totalMonths < 1 {
		totalMonths = 1
	}
	avgTx := totalSpent / n
	avgBalance := balanceSum / n
	volatility := sampleStdDev(txs, avgBalance)
	txFrequency := n / totalMonths

	// Risk-space aggregates.
	m["avg_monthly_balance"] = avgBalance
	m["balance_volatility"] = volatility
	m["total_monthly_burn_rate"] = totalSpent / totalMonths
	m["essential_spending_ratio"] = ratio(essentialVal, totalSpent)
	m["lifestyle_spending_ratio"] = ratio(lifestyleVal, totalSpent)
	m["transaction_frequency"] = txFrequency
	m["international_tx_indicator"] = intlCount
	m["device_diversity_score"] = float64(len(devs))
	m["ip_stability_ratio"] = ratio(float64(len(ips)), txFrequency)
	m["debt_indicator_ratio"] = ratio(debtVal, totalSpent)
	m["cash_dependence_ratio"] = ratio(cashVal, totalSpent)
	m["min_balance_reached"] = minBalance
	m["max_transaction_value"] = maxAmount
	m["avg_transaction_value"] = avgTx

	// Fraud-space aggregates.
	m["avg_tx_amount"] = avgTx
	m["max_tx_amount"] = maxAmount
	m["intl_tx_count"] = intlCount
	m["unique_locations"] = float64(len(locations))
	m["unique_ips"] = float64(len(ips))
	m["unique_devices"] = float64(len(devs))
	m["unique_destinations"] = float64(len(dests))
	m["financial_service_spend"] = debtVal
	m["max_ip_sharing_score"] = maxSharingScore(txs, ipDensity, func(t core.Transaction) string { return t.IPAddress })
	m["max_device_sharing_score"] = maxSharingScore(txs, deviceDensity, func(t core.Transaction) string { return string(t.DeviceUsed) })
	m["suspicious_notes_count"] = suspiciousCount
	m["failed_ratio"] = ratio(failedCount, n)
	m["mule_indicator_ratio"] = ratio(float64(len(dests)), n)
	m["intl_tx_ratio"] = ratio(intlCount, n)
	m["avg_tx_velocity"] = n / 30
	m["income_validation_ratio"] = ratio(m.Number("monthly_income"), avgTx)
	m["loan_to_spend_ratio"] = ratio(m.Number("loan_amount_requested"), totalSpent)

	return essentialVal
}

func deriveStatic(m FeatureMap, app core.LoanApplication, essentialVal float64) {
	income := app.MonthlyIncome
	loanAmt := app.LoanAmountRequested
	tenure := float64(app.LoanTenureMonths)

	estEMI := (loanAmt / tenure) * EMIBufferFactor
	m["loan_to_income_ratio"] = ratio(loanAmt, income*12)
	m["installment_to_income_ratio"] = ratio(app.ExistingEMIsMonthly+estEMI, income)
	m["disposable_income"] = income - app.ExistingEMIsMonthly
	m["age_at_loan_end"] = float64(app.ApplicantAge) + tenure/12
	m["income_per_dependent"] = ratio(income, float64(app.NumberOfDependents))
	m["cash_flow_coverage_ratio"] = ratio(m.Number("avg_monthly_balance"), m.Number("total_monthly_burn_rate"))
	m["payment_to_income_reality_check"] = ratio(essentialVal, income)
	m["income_stability_proxy"] = ratio(m.Number("balance_volatility"), m.Number("avg_monthly_balance"))
	// Seeded at 1; the store's copy accrues across finalizations.
	m["previous_application_count"] = 1.0
}

func encodeCategoricals(m FeatureMap, app core.LoanApplication) {
	m["gender_val"] = genderVals[app.Gender]
	m["property_val"] = propertyVals[app.PropertyOwnership]
	m["cibil_category_val"] = cibilCategory(app.CIBILScore)

	if v, ok := employmentRiskVals[app.EmploymentStatus]; ok {
		m["employment_risk_val"] = v
	} else {
		m["employment_risk_val"] = defaultEmploymentRisk
	}
	if v, ok := loanTypeRiskVals[app.LoanType]; ok {
		m["loan_type_risk_val"] = v
	} else {
		m["loan_type_risk_val"] = defaultLoanTypeRisk
	}
	m["midnight_app_flag"] = midnightFlag(app.ApplicationDate)
}

// cibilCategory buckets a CIBIL score into four ordinal codes at the
// 600/700/800 thresholds.
func cibilCategory(score int) float64 {
	switch {
	case score <= 600:
		return 0
	case score <= 700:
		return 0.33
	case score <= 800:
		return 0.66
	default:
		return 1.0
	}
}

// midnightFlag is 1 when the application timestamp's hour falls in [0,5].
// An unparseable timestamp reads as daytime.
func midnightFlag(date string) float64 {
	ts, ok := parseDate(date)
	if !ok {
		return 0
	}
	if h := ts.Hour(); h >= 0 && h <= 5 {
		return 1
	}
	return 0
}

func noteIsSuspicious(note string) bool {
	lower := strings.ToLower(note)
	for _, term := range suspiciousNoteTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// maxSharingScore looks each transaction's key up in a density map and
// returns the maximum. A nil/empty map, or a key the map has never seen,
// scores 1: unshared is the safe default, higher means shared.
func maxSharingScore(txs []core.Transaction, density map[string]float64, key func(core.Transaction) string) float64 {
	max := 1.0
	if len(density) == 0 {
		return max
	}
	for _, tx := range txs {
		if score, ok := density[key(tx)]; ok && score > max {
			max = score
		}
	}
	return max
}

// sampleStdDev is the n-1 standard deviation of balance-after values.
// A single transaction has no spread and reads as 0.
func sampleStdDev(txs []core.Transaction, mean float64) float64 {
	if len(txs) < 2 {
		return 0
	}
	var sum float64
	for _, tx := range txs {
		d := tx.BalanceAfter - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(txs)-1))
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// buildVector reads each named feature in fixed order (missing, NaN and Inf
// all read as 0), applies the space's pre-fitted scaling transform, and
// returns the final vector.
func (e *Engine) buildVector(m FeatureMap, order []string, scaler Scaler) ([]float32, error) {
	raw := make([]float64, len(order))
	for i, name := range order {
		raw[i] = m.Number(name)
	}
	scaled, err := scaler.Transform(raw)
	if err != nil {
		return nil, err
	}
	vec := make([]float32, len(scaled))
	for i, v := range scaled {
		vec[i] = float32(v)
	}
	return vec, nil
}
