// Package provider owns the process-wide generated dataset. The first Get
// generates it; every later Get returns the same instance.
package provider

import (
	"context"
	"sync"
	"time"

	"github.com/jmehdipour/churn-insights/internal/dataset"
	"github.com/jmehdipour/churn-insights/internal/generator"
	"github.com/jmehdipour/churn-insights/internal/metrics"
	"github.com/jmehdipour/churn-insights/internal/model"
	"go.uber.org/zap"
)

// Snapshot is the cached output of one generation run.
type Snapshot struct {
	Dataset  *dataset.Dataset
	Contacts *generator.ContactDirectory
}

// Contact returns the contact of a customer, or a bare one carrying only
// the id when the directory has no entry.
func (s *Snapshot) Contact(customerID string) model.Contact {
	if c, ok := s.Contacts.Lookup(customerID); ok {
		return c
	}
	return model.Contact{CustomerID: customerID}
}

type Provider struct {
	gen     *generator.Generator
	seed    int64
	records int
	log     *zap.Logger

	mu   sync.Mutex
	snap *Snapshot
}

func New(gen *generator.Generator, seed int64, records int, log *zap.Logger) *Provider {
	if log == nil {
		log = zap.NewNop()
	}
	return &Provider{gen: gen, seed: seed, records: records, log: log}
}

// Get returns the cached snapshot, generating it on first use. A failed
// generation is not cached. ctx is only checked before generating; a run is
// bounded and is not interrupted.
func (p *Provider) Get(ctx context.Context) (*Snapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.snap != nil {
		return p.snap, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	ds, err := p.gen.Generate(p.seed, p.records)
	if err != nil {
		metrics.GenerationsTotal.WithLabelValues("error").Inc()
		p.log.Error("dataset generation failed", zap.Error(err))
		return nil, err
	}
	snap := &Snapshot{
		Dataset:  ds,
		Contacts: generator.NewContactDirectory(p.seed, ds),
	}
	elapsed := time.Since(start)

	metrics.GenerationsTotal.WithLabelValues("ok").Inc()
	metrics.GeneratedRecordsTotal.Add(float64(ds.Len()))
	metrics.GenerationSeconds.Observe(elapsed.Seconds())
	p.log.Info("dataset ready",
		zap.String("run_id", ds.Meta().RunID),
		zap.Int64("seed", p.seed),
		zap.Int("records", ds.Len()),
		zap.Float64("churn_rate", ds.ChurnRateOverall()),
		zap.Duration("took", elapsed),
	)

	p.snap = snap
	return snap, nil
}

// Dataset is shorthand for Get(ctx).Dataset.
func (p *Provider) Dataset(ctx context.Context) (*dataset.Dataset, error) {
	snap, err := p.Get(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Dataset, nil
}

// Params is the parameter table the provider generates with.
func (p *Provider) Params() generator.Params { return p.gen.Params() }
