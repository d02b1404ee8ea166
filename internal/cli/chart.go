package cli

import (
	"fmt"

	"github.com/SscSPs/property_ledger/internal/core/services"
	"github.com/SscSPs/property_ledger/internal/utils/chart"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(chartCmd)
	chartCmd.AddCommand(chartSeedCmd)

	chartSeedCmd.Flags().StringP("file", "f", "", "TOML chart file; defaults to CHART_SEED_FILE or the built-in chart")
	chartSeedCmd.Flags().Bool("replace", false, "Replace an existing chart instead of only seeding an empty one")
}

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Manage the chart of accounts",
}

var chartSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the chart of accounts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		replace, _ := cmd.Flags().GetBool("replace")
		if file == "" {
			file = cfg.ChartSeedFile
		}
		accounts, err := chart.LoadFile(file)
		if err != nil {
			return err
		}

		ctx := actorContext(cmd.Context())
		store, closeStore, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore()
		accountSvc := services.NewServiceContainer(store).Account

		if replace {
			stored, err := accountSvc.ReplaceChart(ctx, accounts, actor)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Chart replaced with %d accounts\n", len(stored))
			return nil
		}
		seeded, err := accountSvc.SeedChart(ctx, accounts, actor)
		if err != nil {
			return err
		}
		if !seeded {
			fmt.Fprintln(cmd.OutOrStdout(), "Chart already present; use --replace to overwrite")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Chart seeded with %d accounts\n", len(accounts))
		return nil
	},
}
