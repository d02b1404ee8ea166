package pgsql

import (
	"context"
	"sort"
	"sync"

	portsrepo "github.com/SscSPs/property_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ledgerLockKey is the advisory lock that serializes ledger units of work across processes.
const ledgerLockKey int64 = 0x4c454447 // "LEDG"

// repositories groups the per-collection repositories over one querier.
type repositories struct {
	*PgxAccountRepository
	*PgxJournalRepository
	*PgxDocumentRepository
	*PgxPeriodRepository
	*PgxAuditRepository
}

func newRepositories(db querier, touched func(ctx context.Context, collection string)) repositories {
	base := BaseRepository{db: db, touched: touched}
	return repositories{
		PgxAccountRepository:  &PgxAccountRepository{BaseRepository: base},
		PgxJournalRepository:  &PgxJournalRepository{BaseRepository: base},
		PgxDocumentRepository: &PgxDocumentRepository{BaseRepository: base},
		PgxPeriodRepository:   &PgxPeriodRepository{BaseRepository: base},
		PgxAuditRepository:    &PgxAuditRepository{BaseRepository: base},
	}
}

// Store is the Postgres-backed ledger store.
type Store struct {
	repositories
	pool      *pgxpool.Pool
	observers []portsrepo.ChangeObserver
}

// NewStore creates a Store on pool. Observers are told about every committed write.
func NewStore(pool *pgxpool.Pool, observers ...portsrepo.ChangeObserver) *Store {
	s := &Store{pool: pool, observers: observers}
	s.repositories = newRepositories(pool, func(ctx context.Context, collection string) {
		s.notify(ctx, map[string]bool{collection: true})
	})
	return s
}

var _ portsrepo.TxStore = (*Store)(nil)

// txView is the Store seen from inside a transaction.
type txView struct {
	repositories
}

// WithTx runs fn in a transaction that first takes the ledger advisory lock, so
// concurrent writers queue up behind each other until commit or rollback.
func (s *Store) WithTx(ctx context.Context, fn func(store portsrepo.Store) error) error {
	tx, err := begin(ctx, s.pool)
	if err != nil {
		return err
	}
	defer rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, ledgerLockKey); err != nil {
		return err
	}

	var (
		mu      sync.Mutex
		changed = make(map[string]bool)
	)
	view := &txView{repositories: newRepositories(tx, func(_ context.Context, collection string) {
		mu.Lock()
		changed[collection] = true
		mu.Unlock()
	})}

	if err := fn(view); err != nil {
		return err
	}
	if err := commit(ctx, tx); err != nil {
		return err
	}
	s.notify(ctx, changed)
	return nil
}

func (s *Store) notify(ctx context.Context, changed map[string]bool) {
	if len(changed) == 0 || len(s.observers) == 0 {
		return
	}
	collections := make([]string, 0, len(changed))
	for c := range changed {
		collections = append(collections, c)
	}
	sort.Strings(collections)
	for _, c := range collections {
		for _, o := range s.observers {
			o.OnChange(ctx, c)
		}
	}
}
