// Package cli holds the ledger command tree.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	portsrepo "github.com/SscSPs/property_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/property_ledger/internal/middleware"
	"github.com/SscSPs/property_ledger/internal/platform/config"
	"github.com/SscSPs/property_ledger/internal/platform/metrics"
	"github.com/SscSPs/property_ledger/internal/repositories/database/memory"
	"github.com/SscSPs/property_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/property_ledger/internal/repositories/database/sqlite"
	"github.com/SscSPs/property_ledger/pkg/database"
	"github.com/spf13/cobra"
)

// systemUser attributes writes made by the CLI and by startup seeding.
const systemUser = "system"

var (
	cfg    *config.Config
	logger *slog.Logger
	actor  string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&actor, "user", systemUser, "User id recorded in the audit trail for writes")
}

var rootCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Double-entry ledger for property management",
	Long: `ledger runs the accounting core of the property platform: the journal
engine, posting rules, fiscal periods and the audit trail. Configuration is
read from the environment and an optional .env file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.LoadConfig()
		if err != nil {
			return err
		}
		cfg = loaded
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
		slog.SetDefault(logger)
		return nil
	},
}

// actorContext carries the logger and the acting user, as the HTTP middleware does for requests.
func actorContext(ctx context.Context) context.Context {
	return middleware.WithUserID(middleware.WithLogger(ctx, logger), actor)
}

// Execute runs the command tree against os.Args.
func Execute() error {
	return rootCmd.Execute()
}

// openStore builds the store selected by STORE_DRIVER. The returned func releases it.
// Postgres schemas are migrated up first; SQLite applies its schema on open.
func openStore(ctx context.Context) (portsrepo.TxStore, func(), error) {
	observer := portsrepo.ChangeObserverFunc(metrics.ObserveStoreChange)

	switch cfg.StoreDriver {
	case config.DriverMemory:
		logger.Warn("Using the in-memory store; data is lost on exit")
		return memory.New(observer), func() {}, nil

	case config.DriverSQLite:
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("failed to create sqlite directory: %w", err)
			}
		}
		st, err := sqlite.Open(cfg.SQLitePath, observer)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("SQLite store opened", slog.String("path", cfg.SQLitePath))
		return st, func() {
			if err := st.Close(); err != nil {
				logger.Error("Error closing sqlite store", slog.String("error", err.Error()))
			}
		}, nil

	default:
		changed, err := database.RunMigrations(logger, cfg.DatabaseURL, cfg.MigrationsPath, database.MigrateUp)
		if err != nil {
			return nil, nil, err
		}
		if changed {
			logger.Info("Database migrations applied successfully.")
		}
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return pgsql.NewStore(pool, observer), func() { database.ClosePgxPool(pool) }, nil
	}
}
