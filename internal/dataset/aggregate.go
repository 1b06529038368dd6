package dataset

import (
	"fmt"

	"github.com/jmehdipour/churn-insights/internal/model"
	"github.com/shopspring/decimal"
)

// annualize turns a monthly amount into a yearly one.
var annualize = decimal.NewFromInt(12)

func (d *Dataset) ChurnedCount() int {
	n := 0
	for _, r := range d.records {
		if r.Churned() {
			n++
		}
	}
	return n
}

// ChurnRateOverall is churned/total, or 0 for an empty view.
func (d *Dataset) ChurnRateOverall() float64 {
	if len(d.records) == 0 {
		return 0
	}
	return float64(d.ChurnedCount()) / float64(len(d.records))
}

// ChurnRateBy maps every value of field present in the view to the churn
// rate of its records.
func (d *Dataset) ChurnRateBy(field CategoricalField) (map[string]float64, error) {
	groups, err := d.Breakdown(field)
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(groups))
	for _, g := range groups {
		out[g.Value] = g.ChurnRate
	}
	return out, nil
}

// RevenueAtRisk is the annualized monthly charges of churned records.
func (d *Dataset) RevenueAtRisk() decimal.Decimal {
	sum := decimal.Zero
	for _, r := range d.records {
		if r.Churned() {
			sum = sum.Add(r.MonthlyCharges)
		}
	}
	return sum.Mul(annualize)
}

// MonthlyRevenue sums monthly charges over the view.
func (d *Dataset) MonthlyRevenue() decimal.Decimal {
	sum := decimal.Zero
	for _, r := range d.records {
		sum = sum.Add(r.MonthlyCharges)
	}
	return sum
}

// Average is the arithmetic mean of field, or 0 for an empty view.
func (d *Dataset) Average(field NumericField) (float64, error) {
	if !field.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	if len(d.records) == 0 {
		return 0, nil
	}
	n := decimal.NewFromInt(int64(len(d.records)))
	sum := decimal.Zero
	for _, r := range d.records {
		switch field {
		case FieldTenure:
			sum = sum.Add(decimal.NewFromInt(int64(r.Tenure)))
		case FieldMonthlyCharges:
			sum = sum.Add(r.MonthlyCharges)
		case FieldTotalCharges:
			sum = sum.Add(r.TotalCharges)
		}
	}
	return sum.Div(n).InexactFloat64(), nil
}

// Group is the churn breakdown of one categorical value.
type Group struct {
	Value     string  `json:"value"`
	Customers int     `json:"customers"`
	Churned   int     `json:"churned"`
	ChurnRate float64 `json:"churn_rate"`
}

// Breakdown groups the view by field. Groups follow the field's display order
// and values with no records are omitted.
func (d *Dataset) Breakdown(field CategoricalField) ([]Group, error) {
	if !field.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	counts := make(map[string]*Group)
	for _, r := range d.records {
		v := field.valueOf(r)
		g, ok := counts[v]
		if !ok {
			g = &Group{Value: v}
			counts[v] = g
		}
		g.Customers++
		if r.Churned() {
			g.Churned++
		}
	}

	out := make([]Group, 0, len(counts))
	for _, v := range field.Values() {
		g, ok := counts[v]
		if !ok {
			continue
		}
		g.ChurnRate = float64(g.Churned) / float64(g.Customers)
		out = append(out, *g)
	}
	return out, nil
}

// Summary is the headline metric set of the executive dashboard.
type Summary struct {
	TotalCustomers    int             `json:"total_customers"`
	ChurnedCustomers  int             `json:"churned_customers"`
	RetainedCustomers int             `json:"retained_customers"`
	ChurnRate         float64         `json:"churn_rate"`
	MonthlyRevenue    decimal.Decimal `json:"monthly_revenue"`
	RevenueAtRisk     decimal.Decimal `json:"revenue_at_risk"`
	AvgMonthlyCharges float64         `json:"avg_monthly_charges"`
	AvgTenure         float64         `json:"avg_tenure"`
}

func (d *Dataset) Summary() Summary {
	churned := d.ChurnedCount()
	avgCharges, _ := d.Average(FieldMonthlyCharges)
	avgTenure, _ := d.Average(FieldTenure)
	return Summary{
		TotalCustomers:    len(d.records),
		ChurnedCustomers:  churned,
		RetainedCustomers: len(d.records) - churned,
		ChurnRate:         d.ChurnRateOverall(),
		MonthlyRevenue:    d.MonthlyRevenue(),
		RevenueAtRisk:     d.RevenueAtRisk(),
		AvgMonthlyCharges: avgCharges,
		AvgTenure:         avgTenure,
	}
}

// Distribution counts records per churn label.
func (d *Dataset) Distribution() map[model.ChurnLabel]int {
	churned := d.ChurnedCount()
	return map[model.ChurnLabel]int{
		model.ChurnNo:  len(d.records) - churned,
		model.ChurnYes: churned,
	}
}
