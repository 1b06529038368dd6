package generator

import (
	"fmt"
	"math"

	"github.com/jmehdipour/churn-insights/internal/model"
)

// weightTolerance bounds the rounding slack allowed when a weight table is
// checked against 1.
const weightTolerance = 1e-9

// Shape selects the family a numeric draw comes from.
type Shape string

const (
	ShapeExponential Shape = "exponential"
	ShapeNormal      Shape = "normal"
)

// Distribution is one numeric sampling rule. StdDev is ignored for the
// exponential shape. Floor raises a draw before range clipping; zero disables
// it for every numeric column.
type Distribution struct {
	Shape  Shape
	Mean   float64
	StdDev float64
	Floor  float64
}

func (d Distribution) floor(v float64) float64 {
	if d.Floor == 0 {
		return v
	}
	return math.Max(d.Floor, v)
}

func (d Distribution) validate() error {
	if !finite(d.Mean) || !finite(d.StdDev) || !finite(d.Floor) {
		return fmt.Errorf("non-finite parameter in %+v", d)
	}
	switch d.Shape {
	case ShapeExponential:
		if d.Mean <= 0 {
			return fmt.Errorf("exponential mean must be > 0, got %v", d.Mean)
		}
	case ShapeNormal:
		if d.StdDev < 0 {
			return fmt.Errorf("normal stddev must be >= 0, got %v", d.StdDev)
		}
	default:
		return fmt.Errorf("unknown shape %q", d.Shape)
	}
	return nil
}

// Range is a closed interval.
type Range struct {
	Min float64
	Max float64
}

func (r Range) validate() error {
	if math.IsNaN(r.Min) || math.IsNaN(r.Max) || r.Min > r.Max {
		return fmt.Errorf("empty range [%v, %v]", r.Min, r.Max)
	}
	return nil
}

// Weight is one entry of a categorical weight table.
type Weight[T ~string] struct {
	Value T
	P     float64
}

// WeightTable is ordered so draws are reproducible.
type WeightTable[T ~string] []Weight[T]

func (t WeightTable[T]) validate(valid func(T) bool) error {
	if len(t) == 0 {
		return fmt.Errorf("empty weight table")
	}
	seen := make(map[T]bool, len(t))
	sum := 0.0
	for _, w := range t {
		if !valid(w.Value) {
			return fmt.Errorf("unknown value %q", w.Value)
		}
		if seen[w.Value] {
			return fmt.Errorf("duplicate value %q", w.Value)
		}
		seen[w.Value] = true
		if w.P < 0 || math.IsNaN(w.P) {
			return fmt.Errorf("negative weight %v for %q", w.P, w.Value)
		}
		sum += w.P
	}
	if math.Abs(sum-1) > weightTolerance {
		return fmt.Errorf("weights sum to %v, want 1", sum)
	}
	return nil
}

// TenureRule adds Delta to the risk of tenures in [Min, Max]. The first
// matching rule wins.
type TenureRule struct {
	Min   int
	Max   int
	Delta float64
}

// RiskRules compose the churn probability of a record.
type RiskRules struct {
	Base           float64
	Contract       map[model.ContractType]float64
	Payment        map[model.PaymentMethod]float64
	Tenure         []TenureRule
	HighChargesAt  float64 // strictly above
	HighChargesAdd float64
	Cap            float64
}

// Params is the full parameter table of a generation run.
type Params struct {
	Contracts WeightTable[model.ContractType]
	Payments  WeightTable[model.PaymentMethod]
	Internet  WeightTable[model.InternetService]

	TenureByContract   map[model.ContractType]Distribution
	ChargesByInternet  map[model.InternetService]Distribution
	TenureRange        Range
	MonthlyChargeRange Range
	Jitter             Range

	Risk RiskRules
}

// DefaultParams is the canonical parameter table.
func DefaultParams() Params {
	return Params{
		Contracts: WeightTable[model.ContractType]{
			{model.ContractMonthToMonth, 0.55},
			{model.ContractOneYear, 0.25},
			{model.ContractTwoYear, 0.20},
		},
		Payments: WeightTable[model.PaymentMethod]{
			{model.PaymentElectronicCheck, 0.35},
			{model.PaymentMailedCheck, 0.20},
			{model.PaymentBankTransfer, 0.22},
			{model.PaymentCreditCard, 0.23},
		},
		Internet: WeightTable[model.InternetService]{
			{model.InternetFiberOptic, 0.45},
			{model.InternetDSL, 0.35},
			{model.InternetNone, 0.20},
		},
		TenureByContract: map[model.ContractType]Distribution{
			model.ContractMonthToMonth: {Shape: ShapeExponential, Mean: 15, Floor: 1},
			model.ContractOneYear:      {Shape: ShapeNormal, Mean: 36, StdDev: 15, Floor: 12},
			model.ContractTwoYear:      {Shape: ShapeNormal, Mean: 50, StdDev: 12, Floor: 24},
		},
		ChargesByInternet: map[model.InternetService]Distribution{
			model.InternetFiberOptic: {Shape: ShapeNormal, Mean: 85, StdDev: 15},
			model.InternetDSL:        {Shape: ShapeNormal, Mean: 55, StdDev: 12},
			model.InternetNone:       {Shape: ShapeNormal, Mean: 30, StdDev: 8},
		},
		TenureRange:        Range{Min: 1, Max: 72},
		MonthlyChargeRange: Range{Min: 18, Max: 120},
		Jitter:             Range{Min: 0.9, Max: 1.1},
		Risk: RiskRules{
			Base: 0.15,
			Contract: map[model.ContractType]float64{
				model.ContractMonthToMonth: 0.35,
				model.ContractOneYear:      0.10,
				model.ContractTwoYear:      0,
			},
			Payment: map[model.PaymentMethod]float64{
				model.PaymentElectronicCheck: 0.15,
				model.PaymentMailedCheck:     0.05,
			},
			Tenure: []TenureRule{
				{Min: math.MinInt, Max: 6, Delta: 0.20},
				{Min: 7, Max: 12, Delta: 0.10},
				{Min: 49, Max: math.MaxInt, Delta: -0.15},
			},
			HighChargesAt:  80,
			HighChargesAdd: 0.08,
			Cap:            0.85,
		},
	}
}

// Validate fails with ErrInvalidConfig when the table could produce a skewed
// or degenerate dataset.
func (p Params) Validate() error {
	if err := p.Contracts.validate(model.ContractType.Valid); err != nil {
		return invalid("contract weights", err)
	}
	if err := p.Payments.validate(model.PaymentMethod.Valid); err != nil {
		return invalid("payment weights", err)
	}
	if err := p.Internet.validate(model.InternetService.Valid); err != nil {
		return invalid("internet weights", err)
	}

	for _, w := range p.Contracts {
		d, ok := p.TenureByContract[w.Value]
		if !ok {
			return invalid("tenure rules", fmt.Errorf("no rule for %q", w.Value))
		}
		if err := d.validate(); err != nil {
			return invalid("tenure rule "+w.Value.String(), err)
		}
	}
	for _, w := range p.Internet {
		d, ok := p.ChargesByInternet[w.Value]
		if !ok {
			return invalid("charges rules", fmt.Errorf("no rule for %q", w.Value))
		}
		if err := d.validate(); err != nil {
			return invalid("charges rule "+w.Value.String(), err)
		}
	}

	if err := p.TenureRange.validate(); err != nil {
		return invalid("tenure range", err)
	}
	if err := p.MonthlyChargeRange.validate(); err != nil {
		return invalid("monthly charge range", err)
	}
	if p.MonthlyChargeRange.Min < 0 {
		return invalid("monthly charge range", fmt.Errorf("negative minimum %v", p.MonthlyChargeRange.Min))
	}
	// Total charges stay non-negative only while tenure does.
	if p.TenureRange.Min < 0 {
		return invalid("tenure range", fmt.Errorf("negative minimum %v", p.TenureRange.Min))
	}
	if err := p.Jitter.validate(); err != nil {
		return invalid("jitter", err)
	}
	if p.Jitter.Min < 0 {
		return invalid("jitter", fmt.Errorf("negative minimum %v", p.Jitter.Min))
	}

	if p.Risk.Cap < 0 || p.Risk.Cap > 1 || math.IsNaN(p.Risk.Cap) {
		return invalid("risk cap", fmt.Errorf("%v outside [0, 1]", p.Risk.Cap))
	}
	if !finite(p.Risk.Base) || !finite(p.Risk.HighChargesAt) || !finite(p.Risk.HighChargesAdd) {
		return invalid("risk rules", fmt.Errorf("non-finite base or high-charge term"))
	}
	for c, d := range p.Risk.Contract {
		if !finite(d) {
			return invalid("risk rules", fmt.Errorf("non-finite delta for %q", c))
		}
	}
	for m, d := range p.Risk.Payment {
		if !finite(d) {
			return invalid("risk rules", fmt.Errorf("non-finite delta for %q", m))
		}
	}
	for _, r := range p.Risk.Tenure {
		if r.Min > r.Max {
			return invalid("risk tenure rules", fmt.Errorf("empty range [%d, %d]", r.Min, r.Max))
		}
		if !finite(r.Delta) {
			return invalid("risk tenure rules", fmt.Errorf("non-finite delta for [%d, %d]", r.Min, r.Max))
		}
	}
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func invalid(what string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, what, err)
}
