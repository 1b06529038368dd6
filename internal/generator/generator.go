// Package generator produces the synthetic telecom customer dataset. A run is
// fully determined by its parameter table, seed and record count.
package generator

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/jmehdipour/churn-insights/internal/dataset"
	"github.com/jmehdipour/churn-insights/internal/model"
	"github.com/jmehdipour/churn-insights/internal/util"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Defaults of the canonical run.
const (
	DefaultSeed    int64 = 42
	DefaultRecords       = 7043
)

var ErrInvalidConfig = errors.New("generator: invalid configuration")

type Generator struct {
	params Params
	log    *zap.Logger
	now    func() time.Time
}

type Option func(*Generator)

func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.log = l
		}
	}
}

// New validates params and fails fast on a malformed table.
func New(params Params, opts ...Option) (*Generator, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	g := &Generator{params: params, log: zap.NewNop(), now: time.Now}
	for _, o := range opts {
		o(g)
	}
	return g, nil
}

func (g *Generator) Params() Params { return g.params }

// Generate draws n records from a PRNG seeded once with seed. The draw order
// (contracts, payments, internet, tenure, charges, jitter, churn) is fixed so
// equal inputs give equal output.
func (g *Generator) Generate(seed int64, n int) (*dataset.Dataset, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: record count must be > 0, got %d", ErrInvalidConfig, n)
	}
	p := g.params
	rng := rand.New(rand.NewSource(seed))

	contracts := make([]model.ContractType, n)
	for i := range contracts {
		contracts[i] = choose(rng, p.Contracts)
	}
	payments := make([]model.PaymentMethod, n)
	for i := range payments {
		payments[i] = choose(rng, p.Payments)
	}
	internet := make([]model.InternetService, n)
	for i := range internet {
		internet[i] = choose(rng, p.Internet)
	}

	tenure := make([]int, n)
	for i, c := range contracts {
		d := p.TenureByContract[c]
		// Truncate toward zero first so the floor sees whole months.
		months := d.floor(math.Trunc(d.sample(rng)))
		tenure[i] = int(Clip(months, p.TenureRange.Min, p.TenureRange.Max))
	}

	monthly := make([]float64, n)
	for i, s := range internet {
		d := p.ChargesByInternet[s]
		monthly[i] = Clip(d.floor(d.sample(rng)), p.MonthlyChargeRange.Min, p.MonthlyChargeRange.Max)
	}

	jitter := make([]float64, n)
	for i := range jitter {
		jitter[i] = p.Jitter.Min + rng.Float64()*(p.Jitter.Max-p.Jitter.Min)
	}

	records := make([]model.CustomerRecord, n)
	churned := 0
	for i := 0; i < n; i++ {
		_, prob := RiskScore(p.Risk, contracts[i], payments[i], tenure[i], monthly[i])
		label := model.ChurnNo
		if rng.Float64() < prob {
			label = model.ChurnYes
			churned++
		}
		records[i] = model.CustomerRecord{
			CustomerID:      model.CustomerID(i + 1),
			Tenure:          tenure[i],
			MonthlyCharges:  decimal.NewFromFloat(monthly[i]).Round(2),
			TotalCharges:    decimal.NewFromFloat(float64(tenure[i]) * monthly[i] * jitter[i]).Round(2),
			ContractType:    contracts[i],
			PaymentMethod:   payments[i],
			InternetService: internet[i],
			Churn:           label,
		}
	}

	meta := dataset.Meta{RunID: util.NewID(g.now()), Seed: seed, Records: n}
	g.log.Debug("dataset generated",
		zap.String("run_id", meta.RunID),
		zap.Int64("seed", seed),
		zap.Int("records", n),
		zap.Int("churned", churned),
	)
	return dataset.New(records, meta), nil
}

// Clip bounds v to [lo, hi]. Callers guarantee lo <= hi.
func Clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// RiskScore returns the additive churn risk of a record and the probability
// actually sampled, which is the score clamped to [0, rules.Cap].
func RiskScore(rules RiskRules, contract model.ContractType, payment model.PaymentMethod, tenure int, monthlyCharges float64) (raw, clamped float64) {
	raw = rules.Base + rules.Contract[contract] + rules.Payment[payment]
	for _, r := range rules.Tenure {
		if tenure >= r.Min && tenure <= r.Max {
			raw += r.Delta
			break
		}
	}
	if monthlyCharges > rules.HighChargesAt {
		raw += rules.HighChargesAdd
	}
	return raw, Clip(raw, 0, rules.Cap)
}

func (d Distribution) sample(rng *rand.Rand) float64 {
	switch d.Shape {
	case ShapeExponential:
		return rng.ExpFloat64() * d.Mean
	default:
		return d.Mean + rng.NormFloat64()*d.StdDev
	}
}

// choose draws from a validated table by inverting its cumulative weights.
// Rounding slack lands on the last entry with a positive weight.
func choose[T ~string](rng *rand.Rand, table WeightTable[T]) T {
	u := rng.Float64()
	acc := 0.0
	for _, w := range table {
		acc += w.P
		if u < acc {
			return w.Value
		}
	}
	return table.fallback()
}

func (t WeightTable[T]) fallback() T {
	for i := len(t) - 1; i > 0; i-- {
		if t[i].P > 0 {
			return t[i].Value
		}
	}
	return t[0].Value
}
