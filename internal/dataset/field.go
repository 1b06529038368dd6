package dataset

import (
	"github.com/jmehdipour/churn-insights/internal/model"
)

// CategoricalField names a field records can be grouped or filtered by.
type CategoricalField string

const (
	FieldContractType    CategoricalField = "contract_type"
	FieldPaymentMethod   CategoricalField = "payment_method"
	FieldInternetService CategoricalField = "internet_service"
	FieldChurn           CategoricalField = "churn"
	FieldTenureGroup     CategoricalField = "tenure_group"
)

var CategoricalFields = []CategoricalField{
	FieldContractType, FieldPaymentMethod, FieldInternetService, FieldChurn, FieldTenureGroup,
}

func (f CategoricalField) String() string { return string(f) }

func (f CategoricalField) Valid() bool {
	switch f {
	case FieldContractType, FieldPaymentMethod, FieldInternetService, FieldChurn, FieldTenureGroup:
		return true
	}
	return false
}

// Values lists the field's possible values in display order.
func (f CategoricalField) Values() []string {
	var out []string
	switch f {
	case FieldContractType:
		for _, v := range model.ContractTypes {
			out = append(out, v.String())
		}
	case FieldPaymentMethod:
		for _, v := range model.PaymentMethods {
			out = append(out, v.String())
		}
	case FieldInternetService:
		for _, v := range model.InternetServices {
			out = append(out, v.String())
		}
	case FieldChurn:
		for _, v := range model.ChurnLabels {
			out = append(out, v.String())
		}
	case FieldTenureGroup:
		for _, b := range TenureBands {
			out = append(out, b.Label)
		}
	}
	return out
}

func (f CategoricalField) HasValue(v string) bool {
	for _, known := range f.Values() {
		if known == v {
			return true
		}
	}
	return false
}

func (f CategoricalField) valueOf(r model.CustomerRecord) string {
	switch f {
	case FieldContractType:
		return r.ContractType.String()
	case FieldPaymentMethod:
		return r.PaymentMethod.String()
	case FieldInternetService:
		return r.InternetService.String()
	case FieldChurn:
		return r.Churn.String()
	case FieldTenureGroup:
		return TenureBandOf(r.Tenure).Label
	}
	return ""
}

// NumericField names a field that can be averaged.
type NumericField string

const (
	FieldTenure         NumericField = "tenure"
	FieldMonthlyCharges NumericField = "monthly_charges"
	FieldTotalCharges   NumericField = "total_charges"
)

var NumericFields = []NumericField{FieldTenure, FieldMonthlyCharges, FieldTotalCharges}

func (f NumericField) String() string { return string(f) }

func (f NumericField) Valid() bool {
	return f == FieldTenure || f == FieldMonthlyCharges || f == FieldTotalCharges
}

// TenureBand is a closed tenure interval in months.
type TenureBand struct {
	Label string `json:"label"`
	Min   int    `json:"min"`
	Max   int    `json:"max"`
}

// TenureBands covers [0, 72] without gaps.
var TenureBands = []TenureBand{
	{Label: "0-6 Months", Min: 0, Max: 6},
	{Label: "7-12 Months", Min: 7, Max: 12},
	{Label: "13-24 Months", Min: 13, Max: 24},
	{Label: "25-48 Months", Min: 25, Max: 48},
	{Label: "49-72 Months", Min: 49, Max: 72},
}

// TenureBandOf returns the band containing months; values above the last band
// fall into it.
func TenureBandOf(months int) TenureBand {
	for _, b := range TenureBands {
		if months <= b.Max {
			return b
		}
	}
	return TenureBands[len(TenureBands)-1]
}
