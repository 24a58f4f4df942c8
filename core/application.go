package core

// LoanApplication is the immutable application record received from the API
// layer. Field names in json tags double as feature names in the derived
// FeatureMap, so they must not change without migrating stored memory.
type LoanApplication struct {
	ApplicationID       string           `json:"application_id"`
	CustomerID          string           `json:"customer_id"`
	ApplicationDate     string           `json:"application_date"`
	LoanType            LoanType         `json:"loan_type"`
	LoanAmountRequested float64          `json:"loan_amount_requested"`
	LoanTenureMonths    int              `json:"loan_tenure_months"`
	InterestRateOffered float64          `json:"interest_rate_offered"`
	PurposeOfLoan       string           `json:"purpose_of_loan"`
	EmploymentStatus    EmploymentStatus `json:"employment_status"`
	MonthlyIncome       float64          `json:"monthly_income"`
	CIBILScore          int              `json:"cibil_score"`
	ExistingEMIsMonthly float64          `json:"existing_emis_monthly"`
	DebtToIncomeRatio   float64          `json:"debt_to_income_ratio"`
	PropertyOwnership   PropertyStatus   `json:"property_ownership_status"`
	ResidentialAddress  string           `json:"residential_address"`
	ApplicantAge        int              `json:"applicant_age"`
	Gender              Gender           `json:"gender"`
	NumberOfDependents  int              `json:"number_of_dependents"`
}

// Validate checks that identity fields are present and required numeric
// fields carry usable values. Tenure must be positive because EMI estimation
// divides by it.
func (a *LoanApplication) Validate() error {
	if a.ApplicationID == "" {
		return &MalformedInputError{Field: "application_id", Detail: "missing"}
	}
	if a.CustomerID == "" {
		return &MalformedInputError{Field: "customer_id", Detail: "missing"}
	}
	if a.LoanTenureMonths <= 0 {
		return &MalformedInputError{Field: "loan_tenure_months", Detail: "must be positive"}
	}
	if a.LoanAmountRequested < 0 {
		return &MalformedInputError{Field: "loan_amount_requested", Detail: "must not be negative"}
	}
	if a.MonthlyIncome < 0 {
		return &MalformedInputError{Field: "monthly_income", Detail: "must not be negative"}
	}
	if a.ApplicantAge <= 0 {
		return &MalformedInputError{Field: "applicant_age", Detail: "must be positive"}
	}
	return nil
}

// LoanType is the product the applicant is requesting.
type LoanType string

const (
	LoanTypeBusiness  LoanType = "Business Loan"
	LoanTypeCar       LoanType = "Car Loan"
	LoanTypeEducation LoanType = "Education Loan"
	LoanTypePersonal  LoanType = "Personal Loan"
	LoanTypeHome      LoanType = "Home Loan"
)

// EmploymentStatus is the applicant's declared employment situation.
type EmploymentStatus string

const (
	EmploymentRetired       EmploymentStatus = "Retired"
	EmploymentUnemployed    EmploymentStatus = "Unemployed"
	EmploymentSelfEmployed  EmploymentStatus = "Self-Employed"
	EmploymentSalaried      EmploymentStatus = "Salaried"
	EmploymentBusinessOwner EmploymentStatus = "Business Owner"
	EmploymentStudent       EmploymentStatus = "Student"
)

// PropertyStatus is the applicant's housing situation.
type PropertyStatus string

const (
	PropertyRented       PropertyStatus = "Rented"
	PropertyOwned        PropertyStatus = "Owned"
	PropertyJointlyOwned PropertyStatus = "Jointly Owned"
)

// Gender as declared on the application.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)
