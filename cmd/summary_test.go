package cmd

import (
	"bytes"
	"testing"

	"github.com/jmehdipour/churn-insights/internal/dataset"
	"github.com/jmehdipour/churn-insights/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintSummary(t *testing.T) {
	ds := dataset.New([]model.CustomerRecord{
		{CustomerID: "CUST000001", Tenure: 2, MonthlyCharges: decimal.NewFromInt(100), ContractType: model.ContractMonthToMonth, Churn: model.ChurnYes},
		{CustomerID: "CUST000002", Tenure: 40, MonthlyCharges: decimal.NewFromInt(50), ContractType: model.ContractTwoYear, Churn: model.ChurnNo},
	}, dataset.Meta{})

	var buf bytes.Buffer
	require.NoError(t, printSummary(&buf, ds, dataset.FieldContractType))
	out := buf.String()
	assert.Contains(t, out, "Total customers      2")
	assert.Contains(t, out, "Churn rate           50.0%")
	assert.Contains(t, out, "Revenue at risk      $0.00M / year")
	assert.Contains(t, out, "Month-to-Month")
	assert.Contains(t, out, "100.0%")

	assert.ErrorIs(t, printSummary(&buf, ds, "region"), dataset.ErrUnknownField)
}
