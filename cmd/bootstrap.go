package cmd

import (
	"fmt"

	"github.com/jmehdipour/churn-insights/internal/config"
	"github.com/jmehdipour/churn-insights/internal/generator"
	"github.com/jmehdipour/churn-insights/internal/logger"
	"github.com/jmehdipour/churn-insights/internal/provider"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type app struct {
	cfg  config.Config
	log  *zap.Logger
	prov *provider.Provider
}

// bootstrap loads config, applies flag overrides and validates the generator
// parameters before anything is generated.
func bootstrap(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cmd.Flags().Changed("seed") {
		cfg.Generator.Seed = seed
	}
	if cmd.Flags().Changed("records") {
		cfg.Generator.Records = records
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	params, err := cfg.Generator.Params()
	if err != nil {
		return nil, err
	}
	gen, err := generator.New(params, generator.WithLogger(log))
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:  cfg,
		log:  log,
		prov: provider.New(gen, cfg.Generator.Seed, cfg.Generator.Records, log),
	}, nil
}
