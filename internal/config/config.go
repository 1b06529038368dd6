package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/jmehdipour/churn-insights/internal/generator"
	"github.com/jmehdipour/churn-insights/internal/model"
	"github.com/spf13/viper"
)

//go:embed defaults.yaml
var defaults []byte

// ---- Root ----

type Config struct {
	HTTP      HTTPConfig      `mapstructure:"http"`
	Log       LogConfig       `mapstructure:"log"`
	Redis     RedisConfig     `mapstructure:"redis"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Generator GeneratorConfig `mapstructure:"generator"`
	Export    ExportConfig    `mapstructure:"export"`
}

// ---- Leaf structs ----

type HTTPConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type LogConfig struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"` // json | console
}

type RedisConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	Addr        string        `mapstructure:"addr"`
	Password    string        `mapstructure:"password"`
	DB          int           `mapstructure:"db"`
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
}

type RateLimitConfig struct {
	RPS       int    `mapstructure:"rps"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// WeightEntry is one YAML row of a weight table. Lists keep category values
// intact; viper lowercases map keys.
type WeightEntry struct {
	Value  string  `mapstructure:"value"`
	Weight float64 `mapstructure:"weight"`
}

type WeightsConfig struct {
	Contract []WeightEntry `mapstructure:"contract"`
	Payment  []WeightEntry `mapstructure:"payment"`
	Internet []WeightEntry `mapstructure:"internet"`
}

type GeneratorConfig struct {
	Seed    int64         `mapstructure:"seed"`
	Records int           `mapstructure:"records"`
	Weights WeightsConfig `mapstructure:"weights"`
}

type ExportConfig struct {
	Dir    string `mapstructure:"dir"`
	Format string `mapstructure:"format"` // json | csv
}

// Load reads embedded defaults, merges user YAML (if provided), and applies env overrides (CHURN_*).
// A missing file is skipped; a file that cannot be parsed is an error.
func Load(path string) (Config, error) {
	v := viper.New()

	// embedded defaults
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return Config{}, err
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil && !configMissing(err) {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	// env override (CHURN_*), e.g. CHURN_GENERATOR_SEED
	v.SetEnvPrefix("CHURN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Params overlays the configured weight tables on the canonical table. An
// empty list keeps the canonical weights. The result is validated.
func (g GeneratorConfig) Params() (generator.Params, error) {
	p := generator.DefaultParams()
	if len(g.Weights.Contract) > 0 {
		p.Contracts = table[model.ContractType](g.Weights.Contract)
	}
	if len(g.Weights.Payment) > 0 {
		p.Payments = table[model.PaymentMethod](g.Weights.Payment)
	}
	if len(g.Weights.Internet) > 0 {
		p.Internet = table[model.InternetService](g.Weights.Internet)
	}
	if g.Records <= 0 {
		return generator.Params{}, fmt.Errorf("%w: generator.records must be > 0, got %d", generator.ErrInvalidConfig, g.Records)
	}
	if err := p.Validate(); err != nil {
		return generator.Params{}, err
	}
	return p, nil
}

func table[T ~string](entries []WeightEntry) generator.WeightTable[T] {
	out := make(generator.WeightTable[T], 0, len(entries))
	for _, e := range entries {
		out = append(out, generator.Weight[T]{Value: T(e.Value), P: e.Weight})
	}
	return out
}

func configMissing(err error) bool {
	var nf viper.ConfigFileNotFoundError
	return errors.Is(err, fs.ErrNotExist) || errors.As(err, &nf)
}
