package services

import (
	"context"
	"time"

	"github.com/SscSPs/property_ledger/internal/core/domain"
	"github.com/SscSPs/property_ledger/internal/dto"
	"github.com/shopspring/decimal"
)

// JournalReaderSvc defines read operations for journal entries
type JournalReaderSvc interface {
	// GetAllJournalEntries returns every entry sorted by date descending.
	GetAllJournalEntries(ctx context.Context) ([]domain.JournalEntry, error)

	// GetJournalEntry returns apperrors.ErrNotFound for an unknown id.
	GetJournalEntry(ctx context.Context, id string) (*domain.JournalEntry, error)

	// ListJournalEntries pages through GetAllJournalEntries.
	ListJournalEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error)
}

// JournalWriterSvc defines the journal engine's write paths.
// Validation failures come back as errors. Missing or superseded entries come back
// through JournalResult.Outcome with a nil error.
type JournalWriterSvc interface {
	CreateJournalEntry(ctx context.Context, input domain.JournalEntryInput, userID string) (*domain.JournalEntry, error)
	UpdateJournalEntry(ctx context.Context, id string, patch domain.JournalEntryPatch, userID string) (domain.JournalResult, error)
	ReverseJournalEntry(ctx context.Context, id string, reverseDate time.Time, userID string) (domain.JournalResult, error)
	CancelJournalEntry(ctx context.Context, id string, userID string) (domain.JournalResult, error)
}

// JournalCalculatorSvc defines balance calculations over the ledger
type JournalCalculatorSvc interface {
	// GetAccountBalance returns the signed balance of one account.
	GetAccountBalance(ctx context.Context, accountID string) (decimal.Decimal, error)

	// GetAccountBalances returns signed balances keyed by account id.
	GetAccountBalances(ctx context.Context) (map[string]decimal.Decimal, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
	JournalCalculatorSvc
}
