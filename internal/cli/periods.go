package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/SscSPs/property_ledger/internal/core/domain"
	"github.com/SscSPs/property_ledger/internal/core/services"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(periodsCmd)
	periodsCmd.AddCommand(periodsListCmd)
	periodsCmd.AddCommand(periodsCreateCmd)
	periodsCmd.AddCommand(periodsLockCmd)
	periodsCmd.AddCommand(periodsEnsureDefaultCmd)

	periodsCreateCmd.Flags().String("start", "", "First day of the period (YYYY-MM-DD)")
	periodsCreateCmd.Flags().String("end", "", "Last day of the period (YYYY-MM-DD)")
	periodsCreateCmd.Flags().String("code", "", "Period code, defaults to FY-<start year>")
	_ = periodsCreateCmd.MarkFlagRequired("start")
	_ = periodsCreateCmd.MarkFlagRequired("end")
}

var periodsCmd = &cobra.Command{
	Use:   "periods",
	Short: "Manage fiscal periods",
}

var periodsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List fiscal periods by start date",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := actorContext(cmd.Context())
		store, closeStore, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore()

		periods, err := services.NewServiceContainer(store).Period.GetFiscalPeriods(ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCODE\tSTART\tEND\tLOCKED")
		for _, p := range periods {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\n", p.ID, p.Code,
				p.StartDate.Format(domain.DateLayout), p.EndDate.Format(domain.DateLayout), p.IsLocked)
		}
		return w.Flush()
	},
}

var periodsCreateCmd = &cobra.Command{
	Use:   "create --start YYYY-MM-DD --end YYYY-MM-DD [--code CODE]",
	Short: "Open a fiscal period",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rawStart, _ := cmd.Flags().GetString("start")
		rawEnd, _ := cmd.Flags().GetString("end")
		code, _ := cmd.Flags().GetString("code")
		start, err := domain.ParseDate(rawStart)
		if err != nil {
			return fmt.Errorf("invalid --start: %w", err)
		}
		end, err := domain.ParseDate(rawEnd)
		if err != nil {
			return fmt.Errorf("invalid --end: %w", err)
		}

		ctx := actorContext(cmd.Context())
		store, closeStore, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore()

		period, err := services.NewServiceContainer(store).Period.CreateFiscalPeriod(ctx, start, end, code, actor)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created period %s (%s)\n", period.Code, period.ID)
		return nil
	},
}

var periodsLockCmd = &cobra.Command{
	Use:   "lock PERIOD_ID",
	Short: "Lock a fiscal period; there is no unlock",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := actorContext(cmd.Context())
		store, closeStore, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore()

		period, err := services.NewServiceContainer(store).Period.LockPeriod(ctx, args[0], actor)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Period %s locked\n", period.Code)
		return nil
	},
}

var periodsEnsureDefaultCmd = &cobra.Command{
	Use:   "ensure-default",
	Short: "Open a period for the current year when none exist",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := actorContext(cmd.Context())
		store, closeStore, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore()

		period, err := services.NewServiceContainer(store).Period.EnsureDefaultPeriods(ctx)
		if err != nil {
			return err
		}
		if period == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Fiscal periods already exist")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created period %s (%s)\n", period.Code, period.ID)
		return nil
	},
}
