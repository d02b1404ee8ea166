package services

import (
	"context"

	"github.com/SscSPs/property_ledger/internal/core/domain"
)

// AccountReaderSvc defines read operations for the chart of accounts
type AccountReaderSvc interface {
	// ListAccounts returns the full chart ordered by sort order.
	ListAccounts(ctx context.Context) ([]domain.ChartAccount, error)
}

// AccountWriterSvc defines write operations for the chart of accounts
type AccountWriterSvc interface {
	// ReplaceChart swaps the stored chart for a new snapshot supplied by the chart manager.
	ReplaceChart(ctx context.Context, accounts []domain.ChartAccount, userID string) ([]domain.ChartAccount, error)

	// SeedChart stores accounts only when the chart is empty. It reports whether it wrote anything.
	SeedChart(ctx context.Context, accounts []domain.ChartAccount, userID string) (bool, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
