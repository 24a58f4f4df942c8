package features_test

import (
	"errors"
	"math"
	"testing"

	"github.com/intellicredit/creditmemory/core"
	"github.com/intellicredit/creditmemory/features"
)

func testEngine(t *testing.T) *features.Engine {
	t.Helper()
	engine, err := features.NewEngine(
		features.NewIdentityScaler(len(features.RiskVectorFeatures)),
		features.NewIdentityScaler(len(features.FraudVectorFeatures)),
	)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	return engine
}

func testApplication() core.LoanApplication {
	return core.LoanApplication{
		ApplicationID:       "APP-1",
		CustomerID:          "CUST-1",
		ApplicationDate:     "2024-03-15T10:30:00",
		LoanType:            core.LoanTypePersonal,
		LoanAmountRequested: 500000,
		LoanTenureMonths:    36,
		InterestRateOffered: 11.5,
		EmploymentStatus:    core.EmploymentSalaried,
		MonthlyIncome:       85000,
		CIBILScore:          742,
		ExistingEMIsMonthly: 12000,
		DebtToIncomeRatio:   0.27,
		PropertyOwnership:   core.PropertyRented,
		ApplicantAge:        31,
		Gender:              core.GenderFemale,
		NumberOfDependents:  1,
	}
}

func testTransactions() []core.Transaction {
	return []core.Transaction{
		{
			TransactionID:     "TXN-1",
			CustomerID:        "CUST-1",
			TransactionDate:   "2024-02-10T14:22:00",
			TransactionAmount: 3200,
			MerchantCategory:  core.CategoryGroceries,
			Location:          "Pune",
			BalanceAfter:      61800,
			DeviceUsed:        core.DeviceMobile,
			IPAddress:         "203.0.113.7",
			TransactionStatus: core.StatusSuccess,
			SourceDestination: "FreshMart",
		},
		{
			TransactionID:     "TXN-2",
			CustomerID:        "CUST-1",
			TransactionDate:   "2024-03-02T19:05:00",
			TransactionAmount: 8000,
			MerchantCategory:  core.CategoryDining,
			Location:          "Mumbai",
			BalanceAfter:      53800,
			DeviceUsed:        core.DeviceWeb,
			IPAddress:         "198.51.100.4",
			TransactionStatus: core.StatusFailed,
			TransactionNotes:  "refund pending",
			SourceDestination: "SkyDine",
		},
	}
}

func TestDeriveVectorLengths(t *testing.T) {
	engine := testEngine(t)

	_, riskVec, fraudVec, err := engine.Derive(testApplication(), testTransactions(), nil, nil)
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	if len(riskVec) != len(features.RiskVectorFeatures) {
		t.Errorf("risk vector has %d components, want %d", len(riskVec), len(features.RiskVectorFeatures))
	}
	if len(fraudVec) != len(features.FraudVectorFeatures) {
		t.Errorf("fraud vector has %d components, want %d", len(fraudVec), len(features.FraudVectorFeatures))
	}
}

func TestDeriveDeterministic(t *testing.T) {
	engine := testEngine(t)
	app := testApplication()
	txs := testTransactions()

	_, risk1, fraud1, err := engine.Derive(app, txs, nil, nil)
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	_, risk2, fraud2, err := engine.Derive(app, txs, nil, nil)
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}

	for i := range risk1 {
		if risk1[i] != risk2[i] {
			t.Fatalf("risk vector differs at %d: %v vs %v", i, risk1[i], risk2[i])
		}
	}
	for i := range fraud1 {
		if fraud1[i] != fraud2[i] {
			t.Fatalf("fraud vector differs at %d: %v vs %v", i, fraud1[i], fraud2[i])
		}
	}
}

func TestDeriveEmptyHistory(t *testing.T) {
	engine := testEngine(t)

	m, riskVec, fraudVec, err := engine.Derive(testApplication(), nil, nil, nil)
	if err != nil {
		t.Fatalf("Derive failed on empty history: %v", err)
	}

	// Every transaction-derived feature must exist and read as zero.
	for _, name := range []string{
		"avg_monthly_balance", "balance_volatility", "essential_spending_ratio",
		"avg_tx_amount", "max_ip_sharing_score", "failed_ratio", "avg_tx_velocity",
		"income_validation_ratio", "loan_to_spend_ratio",
	} {
		v, ok := m[name]
		if !ok {
			t.Errorf("feature %q missing from empty-history map", name)
			continue
		}
		if f, isFloat := v.(float64); !isFloat || f != 0 {
			t.Errorf("feature %q = %v, want 0.0", name, v)
		}
	}

	// Static features still derive normally.
	if m.Number("loan_to_income_ratio") <= 0 {
		t.Errorf("loan_to_income_ratio = %v, want > 0", m.Number("loan_to_income_ratio"))
	}
	if len(riskVec) != len(features.RiskVectorFeatures) || len(fraudVec) != len(features.FraudVectorFeatures) {
		t.Errorf("vector lengths changed on empty history: %d/%d", len(riskVec), len(fraudVec))
	}
}

func TestDeriveFinite(t *testing.T) {
	engine := testEngine(t)

	// Zero income, zero dependents: every ratio denominator is zero before
	// the +1 guard.
	app := testApplication()
	app.MonthlyIncome = 0
	app.NumberOfDependents = 0
	app.LoanAmountRequested = 0

	m, riskVec, fraudVec, err := engine.Derive(app, testTransactions(), nil, nil)
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}

	for name, v := range m {
		f, ok := v.(float64)
		if !ok {
			continue
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			t.Errorf("feature %q = %v, want finite", name, f)
		}
	}
	for i, v := range riskVec {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			t.Errorf("risk vector[%d] = %v, want finite", i, v)
		}
	}
	for i, v := range fraudVec {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			t.Errorf("fraud vector[%d] = %v, want finite", i, v)
		}
	}
}

func TestDeriveMalformedApplication(t *testing.T) {
	engine := testEngine(t)

	app := testApplication()
	app.LoanTenureMonths = 0

	_, _, _, err := engine.Derive(app, nil, nil, nil)
	var merr *core.MalformedInputError
	if !errors.As(err, &merr) {
		t.Fatalf("Derive error = %v, want MalformedInputError", err)
	}
	if merr.Field != "loan_tenure_months" {
		t.Errorf("violating field = %q, want loan_tenure_months", merr.Field)
	}
}

func TestDeriveMalformedTransaction(t *testing.T) {
	engine := testEngine(t)

	txs := testTransactions()
	txs[1].MerchantCategory = "Crypto"

	_, _, _, err := engine.Derive(testApplication(), txs, nil, nil)
	var merr *core.MalformedInputError
	if !errors.As(err, &merr) {
		t.Fatalf("Derive error = %v, want MalformedInputError", err)
	}
}

func TestCategoricalEncodings(t *testing.T) {
	engine := testEngine(t)

	app := testApplication()
	app.Gender = core.GenderFemale
	app.PropertyOwnership = core.PropertyJointlyOwned
	app.EmploymentStatus = "Freelancer" // unmapped, takes the default
	app.CIBILScore = 650

	m, _, _, err := engine.Derive(app, nil, nil, nil)
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}

	if got := m.Number("gender_val"); got != 1 {
		t.Errorf("gender_val = %v, want 1", got)
	}
	if got := m.Number("property_val"); got != 0.5 {
		t.Errorf("property_val = %v, want 0.5", got)
	}
	if got := m.Number("employment_risk_val"); got != 0.5 {
		t.Errorf("employment_risk_val = %v, want default 0.5", got)
	}
	if got := m.Number("cibil_category_val"); got != 0.33 {
		t.Errorf("cibil_category_val = %v, want 0.33", got)
	}
}

func TestMidnightFlag(t *testing.T) {
	engine := testEngine(t)

	cases := []struct {
		date string
		want float64
	}{
		{"2024-03-15T02:10:00", 1},
		{"2024-03-15T05:59:59", 1},
		{"2024-03-15T06:00:00", 0},
		{"2024-03-15T14:00:00", 0},
		{"not-a-date", 0},
	}
	for _, tc := range cases {
		app := testApplication()
		app.ApplicationDate = tc.date
		m, _, _, err := engine.Derive(app, nil, nil, nil)
		if err != nil {
			t.Fatalf("Derive failed for %q: %v", tc.date, err)
		}
		if got := m.Number("midnight_app_flag"); got != tc.want {
			t.Errorf("midnight_app_flag for %q = %v, want %v", tc.date, got, tc.want)
		}
	}
}

func TestSuspiciousNotesCount(t *testing.T) {
	engine := testEngine(t)

	txs := testTransactions()
	txs[0].TransactionNotes = "quick TEST transfer"
	// txs[1] already contains "refund"

	m, _, _, err := engine.Derive(testApplication(), txs, nil, nil)
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	if got := m.Number("suspicious_notes_count"); got != 2 {
		t.Errorf("suspicious_notes_count = %v, want 2", got)
	}
}

func TestSharingScores(t *testing.T) {
	engine := testEngine(t)
	txs := testTransactions()

	// Known IP shared by 4 customers; devices absent from the map score 1.
	ipDensity := map[string]float64{"203.0.113.7": 4}

	m, _, _, err := engine.Derive(testApplication(), txs, ipDensity, nil)
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	if got := m.Number("max_ip_sharing_score"); got != 4 {
		t.Errorf("max_ip_sharing_score = %v, want 4", got)
	}
	if got := m.Number("max_device_sharing_score"); got != 1 {
		t.Errorf("max_device_sharing_score = %v, want 1 (unshared default)", got)
	}
}

func TestFailedRatioGuard(t *testing.T) {
	engine := testEngine(t)

	m, _, _, err := engine.Derive(testApplication(), testTransactions(), nil, nil)
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	// 1 failed of 2 transactions, guarded denominator: 1/(2+1).
	want := 1.0 / 3.0
	if got := m.Number("failed_ratio"); math.Abs(got-want) > 1e-12 {
		t.Errorf("failed_ratio = %v, want %v", got, want)
	}
}

func TestScalerDimensionMismatch(t *testing.T) {
	_, err := features.NewEngine(
		features.NewIdentityScaler(10),
		features.NewIdentityScaler(len(features.FraudVectorFeatures)),
	)
	if err == nil {
		t.Fatal("NewEngine accepted a mis-sized risk scaler")
	}
}
