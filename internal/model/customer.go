package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CustomerIDPrefix precedes the zero-padded ordinal of every customer id.
const CustomerIDPrefix = "CUST"

// CustomerID formats the 1-based ordinal n as CUST000001.
func CustomerID(n int) string {
	return fmt.Sprintf("%s%06d", CustomerIDPrefix, n)
}

// CustomerRecord is one synthetic telecom subscriber. Records are never
// mutated after generation.
type CustomerRecord struct {
	CustomerID      string          `json:"customer_id"`
	Tenure          int             `json:"tenure"`          // months, [1, 72]
	MonthlyCharges  decimal.Decimal `json:"monthly_charges"` // [18, 120]
	TotalCharges    decimal.Decimal `json:"total_charges"`
	ContractType    ContractType    `json:"contract_type"`
	PaymentMethod   PaymentMethod   `json:"payment_method"`
	InternetService InternetService `json:"internet_service"`
	Churn           ChurnLabel      `json:"churn"`
}

// Churned reports whether the record carries the Yes label.
func (r CustomerRecord) Churned() bool {
	return r.Churn == ChurnYes
}

// Contact is display data for a customer, kept outside CustomerRecord so the
// record stream stays independent of it.
type Contact struct {
	CustomerID string `json:"customer_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
}
