package model

type ContractType string

const (
	ContractMonthToMonth ContractType = "Month-to-Month"
	ContractOneYear      ContractType = "One Year"
	ContractTwoYear      ContractType = "Two Year"
)

// ContractTypes lists contract types in display order.
var ContractTypes = []ContractType{ContractMonthToMonth, ContractOneYear, ContractTwoYear}

func (c ContractType) String() string {
	return string(c)
}

func (c ContractType) Valid() bool {
	return c == ContractMonthToMonth || c == ContractOneYear || c == ContractTwoYear
}

type PaymentMethod string

const (
	PaymentElectronicCheck PaymentMethod = "Electronic Check"
	PaymentMailedCheck     PaymentMethod = "Mailed Check"
	PaymentBankTransfer    PaymentMethod = "Bank Transfer"
	PaymentCreditCard      PaymentMethod = "Credit Card"
)

var PaymentMethods = []PaymentMethod{PaymentElectronicCheck, PaymentMailedCheck, PaymentBankTransfer, PaymentCreditCard}

func (p PaymentMethod) String() string {
	return string(p)
}

func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentElectronicCheck, PaymentMailedCheck, PaymentBankTransfer, PaymentCreditCard:
		return true
	}
	return false
}

type InternetService string

const (
	InternetFiberOptic InternetService = "Fiber Optic"
	InternetDSL        InternetService = "DSL"
	InternetNone       InternetService = "No Internet"
)

var InternetServices = []InternetService{InternetFiberOptic, InternetDSL, InternetNone}

func (i InternetService) String() string {
	return string(i)
}

func (i InternetService) Valid() bool {
	return i == InternetFiberOptic || i == InternetDSL || i == InternetNone
}

type ChurnLabel string

const (
	ChurnYes ChurnLabel = "Yes"
	ChurnNo  ChurnLabel = "No"
)

var ChurnLabels = []ChurnLabel{ChurnNo, ChurnYes}

func (c ChurnLabel) String() string {
	return string(c)
}

func (c ChurnLabel) Valid() bool {
	return c == ChurnYes || c == ChurnNo
}

// ParseContractType accepts the display value exactly.
func ParseContractType(s string) (ContractType, bool) {
	c := ContractType(s)
	return c, c.Valid()
}

func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	p := PaymentMethod(s)
	return p, p.Valid()
}

func ParseInternetService(s string) (InternetService, bool) {
	i := InternetService(s)
	return i, i.Valid()
}

func ParseChurnLabel(s string) (ChurnLabel, bool) {
	c := ChurnLabel(s)
	return c, c.Valid()
}
