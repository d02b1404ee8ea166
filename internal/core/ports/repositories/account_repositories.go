package repositories

import (
	"context"

	"github.com/SscSPs/property_ledger/internal/core/domain"
)

// AccountReader defines read operations for the chart of accounts
type AccountReader interface {
	// ListAccounts returns every account, active or not, ordered by sort order then code.
	ListAccounts(ctx context.Context) ([]domain.ChartAccount, error)
}

// AccountWriter defines write operations for the chart of accounts.
// The chart is owned by an external manager, so it is only ever replaced wholesale.
type AccountWriter interface {
	// ReplaceAccounts swaps the stored chart for the given snapshot.
	ReplaceAccounts(ctx context.Context, accounts []domain.ChartAccount) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
