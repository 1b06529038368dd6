package provider

import (
	"context"
	"sync"
	"testing"

	"github.com/jmehdipour/churn-insights/internal/generator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProvider(t *testing.T, records int) *Provider {
	t.Helper()
	g, err := generator.New(generator.DefaultParams())
	require.NoError(t, err)
	return New(g, generator.DefaultSeed, records, nil)
}

func TestGetCachesSnapshot(t *testing.T) {
	p := newProvider(t, 200)

	first, err := p.Get(context.Background())
	require.NoError(t, err)
	second, err := p.Get(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Same(t, first.Dataset, second.Dataset)
	assert.Equal(t, 200, first.Dataset.Len())
	assert.Equal(t, 200, first.Contacts.Len())

	ds, err := p.Dataset(context.Background())
	require.NoError(t, err)
	assert.Same(t, first.Dataset, ds)
}

func TestGetConcurrentCallersShareOneRun(t *testing.T) {
	p := newProvider(t, 100)

	var wg sync.WaitGroup
	got := make([]*Snapshot, 8)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := p.Get(context.Background())
			assert.NoError(t, err)
			got[i] = s
		}(i)
	}
	wg.Wait()

	for _, s := range got[1:] {
		assert.Same(t, got[0], s)
	}
}

func TestGetDoesNotCacheFailure(t *testing.T) {
	p := newProvider(t, 0)
	_, err := p.Get(context.Background())
	assert.ErrorIs(t, err, generator.ErrInvalidConfig)

	p.records = 10
	snap, err := p.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, snap.Dataset.Len())
}

func TestGetHonoursCancelledContext(t *testing.T) {
	p := newProvider(t, 10)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Get(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSnapshotContactFallback(t *testing.T) {
	p := newProvider(t, 5)
	snap, err := p.Get(context.Background())
	require.NoError(t, err)

	c := snap.Contact("CUST000001")
	assert.NotEmpty(t, c.Name)

	c = snap.Contact("CUST999999")
	assert.Equal(t, "CUST999999", c.CustomerID)
	assert.Empty(t, c.Name)
}
