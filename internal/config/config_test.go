package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmehdipour/churn-insights/internal/generator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, 5*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, int64(42), cfg.Generator.Seed)
	assert.Equal(t, 7043, cfg.Generator.Records)
	require.Len(t, cfg.Generator.Weights.Contract, 3)
	assert.Equal(t, "Month-to-Month", cfg.Generator.Weights.Contract[0].Value)
	assert.Equal(t, 0.55, cfg.Generator.Weights.Contract[0].Weight)

	p, err := cfg.Generator.Params()
	require.NoError(t, err)
	assert.Equal(t, generator.DefaultParams().Contracts, p.Contracts)
	assert.Equal(t, generator.DefaultParams().Payments, p.Payments)
	assert.Equal(t, generator.DefaultParams().Internet, p.Internet)
}

func TestLoadMergesFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
generator:
  records: 100
  weights:
    internet:
      - { value: "Fiber Optic", weight: 0.5 }
      - { value: "DSL", weight: 0.5 }
`), 0o644))
	t.Setenv("CHURN_GENERATOR_SEED", "7")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.Generator.Seed)
	assert.Equal(t, 100, cfg.Generator.Records)

	p, err := cfg.Generator.Params()
	require.NoError(t, err)
	require.Len(t, p.Internet, 2)
	assert.Equal(t, 0.5, p.Internet[0].P)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("generator:\n\tweights:\n    contract:\n      - { value: \"Month-to-Month\", weight: 1.0\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadSkipsMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 7043, cfg.Generator.Records)
}

func TestGeneratorParamsFailFast(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	bad := cfg.Generator
	bad.Weights.Payment = []WeightEntry{{Value: "Electronic Check", Weight: 0.7}}
	_, err = bad.Params()
	assert.ErrorIs(t, err, generator.ErrInvalidConfig)

	bad = cfg.Generator
	bad.Weights.Contract = []WeightEntry{{Value: "Weekly", Weight: 1}}
	_, err = bad.Params()
	assert.ErrorIs(t, err, generator.ErrInvalidConfig)

	bad = cfg.Generator
	bad.Records = 0
	_, err = bad.Params()
	assert.ErrorIs(t, err, generator.ErrInvalidConfig)
}
