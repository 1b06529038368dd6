package cmd

import (
	"fmt"
	"io"

	"github.com/jmehdipour/churn-insights/internal/dataset"
	"github.com/spf13/cobra"
)

var summaryBy string

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print headline metrics and a churn breakdown",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = a.log.Sync() }()

		ds, err := a.prov.Dataset(cmd.Context())
		if err != nil {
			return fmt.Errorf("generate dataset: %w", err)
		}
		return printSummary(cmd.OutOrStdout(), ds, dataset.CategoricalField(summaryBy))
	},
}

func init() {
	summaryCmd.Flags().StringVar(&summaryBy, "by", string(dataset.FieldContractType), "breakdown field")
}

func printSummary(w io.Writer, ds *dataset.Dataset, by dataset.CategoricalField) error {
	groups, err := ds.Breakdown(by)
	if err != nil {
		return err
	}
	s := ds.Summary()

	fmt.Fprintf(w, "Total customers      %d\n", s.TotalCustomers)
	fmt.Fprintf(w, "Churned customers    %d\n", s.ChurnedCustomers)
	fmt.Fprintf(w, "Churn rate           %.1f%%\n", s.ChurnRate*100)
	fmt.Fprintf(w, "Revenue at risk      $%sM / year\n", s.RevenueAtRisk.Shift(-6).StringFixed(2))
	fmt.Fprintf(w, "Avg monthly revenue  $%.2f\n", s.AvgMonthlyCharges)
	fmt.Fprintf(w, "Avg tenure           %.1f months\n", s.AvgTenure)
	fmt.Fprintf(w, "\nChurn by %s\n", by)
	for _, g := range groups {
		fmt.Fprintf(w, "  %-18s %5d customers  %5.1f%%\n", g.Value, g.Customers, g.ChurnRate*100)
	}
	return nil
}
