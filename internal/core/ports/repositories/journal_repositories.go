package repositories

import (
	"context"

	"github.com/SscSPs/property_ledger/internal/core/domain"
)

// JournalReader defines read operations for journal entries
type JournalReader interface {
	// ListJournalEntries returns all entries in storage order (newest first).
	ListJournalEntries(ctx context.Context) ([]domain.JournalEntry, error)

	// FindJournalEntryByID returns apperrors.ErrNotFound when the entry does not exist.
	FindJournalEntryByID(ctx context.Context, id string) (*domain.JournalEntry, error)
}

// JournalWriter defines write operations for journal entries.
// There is no delete: entries are reversed or cancelled instead.
type JournalWriter interface {
	// InsertJournalEntry stores a new entry at the head of the list.
	InsertJournalEntry(ctx context.Context, entry domain.JournalEntry) error

	// UpdateJournalEntry overwrites the stored entry only if its version still equals
	// expectedVersion. A mismatch returns apperrors.ErrConflict.
	UpdateJournalEntry(ctx context.Context, entry domain.JournalEntry, expectedVersion int) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
