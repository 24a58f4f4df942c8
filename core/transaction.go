package core

// Transaction is one entry of a customer's ordered transaction history.
// Zero transactions is a valid history; feature derivation must not fail
// on an empty sequence.
type Transaction struct {
	TransactionID     string            `json:"transaction_id"`
	CustomerID        string            `json:"customer_id"`
	TransactionDate   string            `json:"transaction_date"`
	TransactionType   TransactionType   `json:"transaction_type"`
	TransactionAmount float64           `json:"transaction_amount"`
	MerchantCategory  MerchantCategory  `json:"merchant_category"`
	MerchantName      string            `json:"merchant_name"`
	Location          string            `json:"transaction_location"`
	BalanceAfter      float64           `json:"account_balance_after_transaction"`
	IsInternational   int               `json:"is_international_transaction"`
	DeviceUsed        DeviceUsed        `json:"device_used"`
	IPAddress         string            `json:"ip_address"`
	TransactionStatus TransactionStatus `json:"transaction_status"`
	SourceDestination string            `json:"transaction_source_destination"`
	TransactionNotes  string            `json:"transaction_notes"`
	FraudFlag         int               `json:"fraud_flag"`
}

// Validate rejects transactions whose categorical fields fall outside the
// recognized enumerations. The vocabularies are closed: an unknown value is
// schema corruption, not a new category.
func (t *Transaction) Validate() error {
	if !t.MerchantCategory.Known() {
		return &MalformedInputError{Field: "merchant_category", Detail: string(t.MerchantCategory)}
	}
	if !t.DeviceUsed.Known() {
		return &MalformedInputError{Field: "device_used", Detail: string(t.DeviceUsed)}
	}
	if !t.TransactionStatus.Known() {
		return &MalformedInputError{Field: "transaction_status", Detail: string(t.TransactionStatus)}
	}
	return nil
}

// TransactionType is the channel a transaction moved through.
type TransactionType string

// MerchantCategory buckets a transaction's counterparty.
type MerchantCategory string

const (
	CategoryDining         MerchantCategory = "Dining"
	CategoryTravel         MerchantCategory = "Travel"
	CategoryEntertainment  MerchantCategory = "Entertainment"
	CategoryUtilities      MerchantCategory = "Utilities"
	CategoryElectronics    MerchantCategory = "Electronics"
	CategoryHealthcare     MerchantCategory = "Healthcare"
	CategoryCashWithdrawal MerchantCategory = "Cash Withdrawal"
	CategoryFinancialSvc   MerchantCategory = "Financial Services"
	CategoryGroceries      MerchantCategory = "Groceries"
	CategoryEducation      MerchantCategory = "Education"
	CategoryOnlineShopping MerchantCategory = "Online Shopping"
	CategoryFuel           MerchantCategory = "Fuel"
)

var merchantCategories = map[MerchantCategory]bool{
	CategoryDining: true, CategoryTravel: true, CategoryEntertainment: true,
	CategoryUtilities: true, CategoryElectronics: true, CategoryHealthcare: true,
	CategoryCashWithdrawal: true, CategoryFinancialSvc: true, CategoryGroceries: true,
	CategoryEducation: true, CategoryOnlineShopping: true, CategoryFuel: true,
}

// Known reports whether the category is part of the closed vocabulary.
func (c MerchantCategory) Known() bool { return merchantCategories[c] }

// DeviceUsed is the device class that initiated a transaction.
type DeviceUsed string

const (
	DeviceWeb    DeviceUsed = "Web"
	DeviceATM    DeviceUsed = "ATM"
	DeviceMobile DeviceUsed = "Mobile"
	DevicePOS    DeviceUsed = "POS"
)

var devices = map[DeviceUsed]bool{
	DeviceWeb: true, DeviceATM: true, DeviceMobile: true, DevicePOS: true,
}

// Known reports whether the device is part of the closed vocabulary.
func (d DeviceUsed) Known() bool { return devices[d] }

// TransactionStatus is the settlement outcome of a transaction.
type TransactionStatus string

const (
	StatusSuccess TransactionStatus = "Success"
	StatusFailed  TransactionStatus = "Failed"
)

// Known reports whether the status is part of the closed vocabulary.
func (s TransactionStatus) Known() bool {
	return s == StatusSuccess || s == StatusFailed
}
