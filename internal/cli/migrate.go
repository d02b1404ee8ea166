package cli

import (
	"fmt"
	"log/slog"

	"github.com/SscSPs/property_ledger/internal/platform/config"
	"github.com/SscSPs/property_ledger/pkg/database"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(migrateCmd)
}

var migrateCmd = &cobra.Command{
	Use:       "migrate up|down",
	Short:     "Apply or roll back Postgres schema migrations",
	Long:      `Apply all pending migrations (up) or roll back the latest one (down). Only the postgres store uses migrations.`,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{string(database.MigrateUp), string(database.MigrateDown)},
	RunE:      runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	if cfg.StoreDriver != config.DriverPostgres {
		return fmt.Errorf("migrations apply to the postgres store only; STORE_DRIVER is %q", cfg.StoreDriver)
	}
	direction := database.MigrateDirection(args[0])
	changed, err := database.RunMigrations(logger, cfg.DatabaseURL, cfg.MigrationsPath, direction)
	if err != nil {
		return err
	}
	if !changed {
		logger.Info("No new migrations to apply.")
		return nil
	}
	logger.Info("Database migrations applied successfully.", slog.String("direction", args[0]))
	return nil
}
