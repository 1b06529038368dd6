package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomerID(t *testing.T) {
	assert.Equal(t, "CUST000001", CustomerID(1))
	assert.Equal(t, "CUST007043", CustomerID(7043))
	assert.Equal(t, "CUST123456", CustomerID(123456))
}

func TestParseCategories(t *testing.T) {
	c, ok := ParseContractType("One Year")
	assert.True(t, ok)
	assert.Equal(t, ContractOneYear, c)

	_, ok = ParseContractType("one year")
	assert.False(t, ok)

	p, ok := ParsePaymentMethod("Electronic Check")
	assert.True(t, ok)
	assert.Equal(t, PaymentElectronicCheck, p)

	_, ok = ParseInternetService("Cable")
	assert.False(t, ok)

	l, ok := ParseChurnLabel("Yes")
	assert.True(t, ok)
	assert.True(t, CustomerRecord{Churn: l}.Churned())
	assert.False(t, CustomerRecord{Churn: ChurnNo}.Churned())
}

func TestEnumListsAreValid(t *testing.T) {
	for _, c := range ContractTypes {
		assert.True(t, c.Valid(), c)
	}
	for _, p := range PaymentMethods {
		assert.True(t, p.Valid(), p)
	}
	for _, i := range InternetServices {
		assert.True(t, i.Valid(), i)
	}
	for _, l := range ChurnLabels {
		assert.True(t, l.Valid(), l)
	}
}
