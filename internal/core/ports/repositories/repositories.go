package repositories

// Store groups the per-collection repositories the ledger core persists to.
type Store interface {
	AccountRepositoryFacade
	JournalRepositoryFacade
	DocumentRepositoryFacade
	PeriodRepositoryFacade
	AuditRepository
}

// TxStore is a Store that can also run atomic units of work.
type TxStore interface {
	Store
	TransactionManager
}
