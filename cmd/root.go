package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgPath string
	seed    int64
	records int
	rootCmd = &cobra.Command{
		Use:          "churn-insights",
		Short:        "Synthetic telecom churn dataset and reporting API",
		SilenceUsage: true,
	}
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "config.yaml", "path to YAML config file")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed (overrides generator.seed)")
	rootCmd.PersistentFlags().IntVar(&records, "records", 0, "record count (overrides generator.records)")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(summaryCmd)
}
