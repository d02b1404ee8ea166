// Package sqlite provides a single-file Store for single-node deployments.
//
// The schema mirrors the Postgres migrations and is applied on Open. Units of
// work use immediate transactions, so writers are serialized by SQLite itself.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	portsrepo "github.com/SscSPs/property_ledger/internal/core/ports/repositories"
	"github.com/mattn/go-sqlite3"
)

const dsnOptions = "?_foreign_keys=on&_journal_mode=WAL&_txlock=immediate&_busy_timeout=5000"

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store is the SQLite-backed ledger store.
type Store struct {
	queries
	db        *sql.DB
	observers []portsrepo.ChangeObserver
}

var _ portsrepo.TxStore = (*Store)(nil)

// Open opens (creating if needed) the database at path and applies the schema.
func Open(path string, observers ...portsrepo.ChangeObserver) (*Store, error) {
	db, err := sql.Open("sqlite3", path+dsnOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	s := &Store{db: db, observers: observers}
	s.queries = queries{db: db, touched: func(ctx context.Context, collection string) {
		s.notify(ctx, map[string]bool{collection: true})
	}}

	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// WithTx runs fn in an immediate transaction and rolls back if fn fails.
func (s *Store) WithTx(ctx context.Context, fn func(store portsrepo.Store) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	defer tx.Rollback()

	var (
		mu      sync.Mutex
		changed = make(map[string]bool)
	)
	view := &queries{db: tx, touched: func(_ context.Context, collection string) {
		mu.Lock()
		changed[collection] = true
		mu.Unlock()
	}}
	if err := fn(view); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
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

func isUniqueViolation(err error) bool {
	var sqlErr sqlite3.Error
	if !errors.As(err, &sqlErr) {
		return false
	}
	return sqlErr.ExtendedCode == sqlite3.ErrConstraintUnique || sqlErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}

func (s *Store) migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS chart_accounts (
		account_id TEXT PRIMARY KEY,
		code TEXT NOT NULL,
		name_ar TEXT NOT NULL DEFAULT '',
		name_en TEXT NOT NULL DEFAULT '',
		account_type TEXT NOT NULL CHECK (account_type IN ('ASSET', 'LIABILITY', 'EQUITY', 'REVENUE', 'EXPENSE')),
		parent_id TEXT,
		is_active INTEGER NOT NULL DEFAULT 1,
		sort_order INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_chart_accounts_active_code
		ON chart_accounts(code) WHERE is_active = 1;

	CREATE TABLE IF NOT EXISTS journal_entries (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		entry_id TEXT NOT NULL UNIQUE,
		version INTEGER NOT NULL DEFAULT 1,
		serial_number TEXT NOT NULL UNIQUE,
		entry_date DATE NOT NULL,
		total_debit TEXT NOT NULL,
		total_credit TEXT NOT NULL,
		description_ar TEXT NOT NULL DEFAULT '',
		description_en TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		replaced_by TEXT,
		document_type TEXT,
		document_id TEXT,
		contact_id TEXT,
		bank_account_id TEXT,
		property_id TEXT,
		project_id TEXT,
		booking_id TEXT,
		contract_id TEXT,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_journal_entries_date ON journal_entries(entry_date);

	CREATE TABLE IF NOT EXISTS journal_lines (
		entry_id TEXT NOT NULL REFERENCES journal_entries(entry_id),
		line_no INTEGER NOT NULL,
		account_id TEXT NOT NULL,
		debit TEXT NOT NULL,
		credit TEXT NOT NULL,
		description_ar TEXT NOT NULL DEFAULT '',
		description_en TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (entry_id, line_no)
	);

	CREATE TABLE IF NOT EXISTS accounting_documents (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		document_id TEXT NOT NULL UNIQUE,
		serial_number TEXT NOT NULL,
		doc_type TEXT NOT NULL,
		status TEXT NOT NULL,
		doc_date DATE NOT NULL,
		journal_entry_id TEXT,
		payload TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS fiscal_periods (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		period_id TEXT NOT NULL UNIQUE,
		code TEXT NOT NULL,
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		is_locked INTEGER NOT NULL DEFAULT 0,
		closed_at DATETIME,
		closed_by TEXT,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	-- Append-only: the store never issues UPDATE or DELETE on this table.
	CREATE TABLE IF NOT EXISTS audit_log (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		audit_id TEXT NOT NULL UNIQUE,
		ts DATETIME NOT NULL,
		action TEXT NOT NULL,
		entity_type TEXT NOT NULL,
		entity_id TEXT NOT NULL,
		user_id TEXT,
		reason TEXT,
		previous_state TEXT,
		new_state TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_audit_log_entity ON audit_log(entity_type, entity_id);
	`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}
