package repositories

import "context"

// Collection names reported to change observers.
const (
	CollectionAccounts       = "accounts"
	CollectionJournalEntries = "journal_entries"
	CollectionDocuments      = "documents"
	CollectionPeriods        = "fiscal_periods"
	CollectionAuditLog       = "audit_log"
)

// ChangeObserver is notified after a write to a collection has been committed.
type ChangeObserver interface {
	OnChange(ctx context.Context, collection string)
}

// ChangeObserverFunc adapts a function to ChangeObserver.
type ChangeObserverFunc func(ctx context.Context, collection string)

// OnChange calls f.
func (f ChangeObserverFunc) OnChange(ctx context.Context, collection string) { f(ctx, collection) }

// TransactionManager runs a unit of work atomically. Implementations serialize
// concurrent units so that each read-modify-write sequence sees a stable ledger.
type TransactionManager interface {
	// WithTx executes fn against a transactional view of the store. If fn returns
	// an error every write made through the view is discarded.
	WithTx(ctx context.Context, fn func(store Store) error) error
}
