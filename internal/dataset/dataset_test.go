package dataset

import (
	"testing"

	"github.com/jmehdipour/churn-insights/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(id int, contract model.ContractType, tenure int, monthly string, churn model.ChurnLabel) model.CustomerRecord {
	m := decimal.RequireFromString(monthly)
	return model.CustomerRecord{
		CustomerID:      model.CustomerID(id),
		Tenure:          tenure,
		MonthlyCharges:  m,
		TotalCharges:    m.Mul(decimal.NewFromInt(int64(tenure))),
		ContractType:    contract,
		PaymentMethod:   model.PaymentCreditCard,
		InternetService: model.InternetDSL,
		Churn:           churn,
	}
}

func sample() *Dataset {
	return New([]model.CustomerRecord{
		rec(1, model.ContractMonthToMonth, 3, "90.00", model.ChurnYes),
		rec(2, model.ContractMonthToMonth, 10, "50.50", model.ChurnNo),
		rec(3, model.ContractOneYear, 30, "40.00", model.ChurnYes),
		rec(4, model.ContractTwoYear, 60, "20.00", model.ChurnNo),
	}, Meta{Seed: 1})
}

func TestAggregates(t *testing.T) {
	ds := sample()

	assert.Equal(t, 4, ds.Len())
	assert.Equal(t, 2, ds.ChurnedCount())
	assert.Equal(t, 0.5, ds.ChurnRateOverall())
	assert.True(t, decimal.RequireFromString("1560").Equal(ds.RevenueAtRisk()), ds.RevenueAtRisk().String())
	assert.True(t, decimal.RequireFromString("200.50").Equal(ds.MonthlyRevenue()))

	avg, err := ds.Average(FieldTenure)
	require.NoError(t, err)
	assert.InDelta(t, 25.75, avg, 1e-9)

	avg, err = ds.Average(FieldMonthlyCharges)
	require.NoError(t, err)
	assert.InDelta(t, 50.125, avg, 1e-9)

	_, err = ds.Average(NumericField("age"))
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestChurnRateBy(t *testing.T) {
	rates, err := sample().ChurnRateBy(FieldContractType)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{
		"Month-to-Month": 0.5,
		"One Year":       1,
		"Two Year":       0,
	}, rates)

	_, err = sample().ChurnRateBy(CategoricalField("region"))
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestBreakdownOrderAndTotals(t *testing.T) {
	groups, err := sample().Breakdown(FieldTenureGroup)
	require.NoError(t, err)

	labels := make([]string, 0, len(groups))
	total := 0
	for _, g := range groups {
		labels = append(labels, g.Value)
		total += g.Customers
	}
	assert.Equal(t, []string{"0-6 Months", "7-12 Months", "25-48 Months", "49-72 Months"}, labels)
	assert.Equal(t, 4, total)
}

func TestWhereDoesNotAlterSource(t *testing.T) {
	ds := sample()
	view, err := ds.Where(FieldContractType, "Month-to-Month")
	require.NoError(t, err)

	assert.Equal(t, 2, view.Len())
	assert.Equal(t, 4, ds.Len())
	assert.Equal(t, ds.Meta(), view.Meta())
	assert.Equal(t, 0.5, view.ChurnRateOverall())

	_, err = ds.Where(FieldContractType, "Weekly")
	assert.ErrorIs(t, err, ErrUnknownValue)
	_, err = ds.Where(CategoricalField("region"), "x")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestNewCopiesInput(t *testing.T) {
	records := []model.CustomerRecord{rec(1, model.ContractOneYear, 12, "30.00", model.ChurnNo)}
	ds := New(records, Meta{})
	records[0].Churn = model.ChurnYes

	assert.Equal(t, model.ChurnNo, ds.At(0).Churn)
	assert.Equal(t, 1, ds.Meta().Records)

	out := ds.Records()
	out[0].Tenure = 99
	assert.Equal(t, 12, ds.At(0).Tenure)
}

func TestEmptyView(t *testing.T) {
	ds := New(nil, Meta{})
	assert.Equal(t, 0.0, ds.ChurnRateOverall())
	avg, err := ds.Average(FieldTotalCharges)
	require.NoError(t, err)
	assert.Equal(t, 0.0, avg)
	assert.True(t, ds.RevenueAtRisk().IsZero())
	assert.Empty(t, ds.Page(0, 10))
}

func TestPage(t *testing.T) {
	ds := sample()
	assert.Len(t, ds.Page(0, 2), 2)
	assert.Len(t, ds.Page(3, 10), 1)
	assert.Empty(t, ds.Page(4, 10))
	assert.Empty(t, ds.Page(0, 0))
	assert.Equal(t, "CUST000001", ds.Page(-5, 1)[0].CustomerID)
}

func TestSummary(t *testing.T) {
	s := sample().Summary()
	assert.Equal(t, 4, s.TotalCustomers)
	assert.Equal(t, 2, s.ChurnedCustomers)
	assert.Equal(t, 2, s.RetainedCustomers)
	assert.Equal(t, 0.5, s.ChurnRate)
	assert.InDelta(t, 25.75, s.AvgTenure, 1e-9)

	dist := sample().Distribution()
	assert.Equal(t, 2, dist[model.ChurnYes])
	assert.Equal(t, 2, dist[model.ChurnNo])
}

func TestTenureBandOf(t *testing.T) {
	tests := []struct {
		months int
		want   string
	}{
		{1, "0-6 Months"},
		{6, "0-6 Months"},
		{7, "7-12 Months"},
		{24, "13-24 Months"},
		{48, "25-48 Months"},
		{49, "49-72 Months"},
		{72, "49-72 Months"},
		{90, "49-72 Months"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TenureBandOf(tt.months).Label, tt.months)
	}
}
