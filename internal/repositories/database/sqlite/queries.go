package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	"github.com/SscSPs/property_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/property_ledger/internal/models"
	"github.com/SscSPs/property_ledger/internal/utils/mapping"
)

// queries implements every collection of the store over one querier.
type queries struct {
	db      querier
	touched func(ctx context.Context, collection string)
}

var _ portsrepo.Store = (*queries)(nil)

func (q *queries) touch(ctx context.Context, collection string) {
	if q.touched != nil {
		q.touched(ctx, collection)
	}
}

func (q *queries) ListAccounts(ctx context.Context) ([]domain.ChartAccount, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT account_id, code, name_ar, name_en, account_type, parent_id, is_active, sort_order, created_at, updated_at
		FROM chart_accounts
		ORDER BY sort_order, code`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list accounts", err)
	}
	defer rows.Close()

	accounts := make([]domain.ChartAccount, 0)
	for rows.Next() {
		var m models.ChartAccount
		if err := rows.Scan(&m.AccountID, &m.Code, &m.NameAr, &m.NameEn, &m.AccountType, &m.ParentID,
			&m.IsActive, &m.SortOrder, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account", err)
		}
		accounts = append(accounts, mapping.ToDomainChartAccount(m))
	}
	return accounts, rows.Err()
}

func (q *queries) ReplaceAccounts(ctx context.Context, accounts []domain.ChartAccount) error {
	if _, err := q.db.ExecContext(ctx, `DELETE FROM chart_accounts`); err != nil {
		return apperrors.NewAppError(500, "failed to clear chart of accounts", err)
	}
	for _, a := range accounts {
		m := mapping.ToModelChartAccount(a)
		_, err := q.db.ExecContext(ctx, `
			INSERT INTO chart_accounts (account_id, code, name_ar, name_en, account_type, parent_id, is_active, sort_order, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			m.AccountID, m.Code, m.NameAr, m.NameEn, string(m.AccountType), m.ParentID,
			m.IsActive, m.SortOrder, m.CreatedAt, m.UpdatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: account %s (%s)", apperrors.ErrDuplicate, m.AccountID, m.Code)
			}
			return apperrors.NewAppError(500, "failed to insert account "+m.AccountID, err)
		}
	}
	q.touch(ctx, portsrepo.CollectionAccounts)
	return nil
}

const entryColumns = `entry_id, version, serial_number, entry_date, total_debit, total_credit,
	description_ar, description_en, status, replaced_by,
	document_type, document_id, contact_id, bank_account_id, property_id, project_id, booking_id, contract_id,
	created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID, &m.Version, &m.SerialNumber, &m.EntryDate, &m.TotalDebit, &m.TotalCredit,
		&m.DescriptionAr, &m.DescriptionEn, &m.Status, &m.ReplacedBy,
		&m.DocumentType, &m.DocumentID, &m.ContactID, &m.BankAccountID, &m.PropertyID, &m.ProjectID, &m.BookingID, &m.ContractID,
		&m.CreatedAt, &m.UpdatedAt,
	)
	return m, err
}

func (q *queries) lines(ctx context.Context, entryID string) (map[string][]models.JournalLine, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT entry_id, line_no, account_id, debit, credit, description_ar, description_en
		FROM journal_lines
		WHERE (? = '' OR entry_id = ?)
		ORDER BY entry_id, line_no`, entryID, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal lines", err)
	}
	defer rows.Close()

	out := make(map[string][]models.JournalLine)
	for rows.Next() {
		var l models.JournalLine
		if err := rows.Scan(&l.EntryID, &l.LineNo, &l.AccountID, &l.Debit, &l.Credit, &l.DescriptionAr, &l.DescriptionEn); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal line", err)
		}
		out[l.EntryID] = append(out[l.EntryID], l)
	}
	return out, rows.Err()
}

func (q *queries) ListJournalEntries(ctx context.Context) ([]domain.JournalEntry, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+entryColumns+` FROM journal_entries ORDER BY seq DESC`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list journal entries", err)
	}
	var heads []models.JournalEntry
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			rows.Close()
			return nil, apperrors.NewAppError(500, "failed to scan journal entry", err)
		}
		heads = append(heads, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	lines, err := q.lines(ctx, "")
	if err != nil {
		return nil, err
	}
	entries := make([]domain.JournalEntry, len(heads))
	for i, h := range heads {
		entries[i] = mapping.ToDomainJournalEntry(h, lines[h.EntryID])
	}
	return entries, nil
}

func (q *queries) FindJournalEntryByID(ctx context.Context, id string) (*domain.JournalEntry, error) {
	m, err := scanEntry(q.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM journal_entries WHERE entry_id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, id)
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry "+id, err)
	}
	lines, err := q.lines(ctx, id)
	if err != nil {
		return nil, err
	}
	entry := mapping.ToDomainJournalEntry(m, lines[id])
	return &entry, nil
}

func (q *queries) insertLines(ctx context.Context, lines []models.JournalLine) error {
	for _, l := range lines {
		_, err := q.db.ExecContext(ctx, `
			INSERT INTO journal_lines (entry_id, line_no, account_id, debit, credit, description_ar, description_en)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			l.EntryID, l.LineNo, l.AccountID, l.Debit, l.Credit, l.DescriptionAr, l.DescriptionEn)
		if err != nil {
			return apperrors.NewAppError(500, "failed to insert journal line", err)
		}
	}
	return nil
}

func (q *queries) InsertJournalEntry(ctx context.Context, entry domain.JournalEntry) error {
	m, lines := mapping.ToModelJournalEntry(entry)
	_, err := q.db.ExecContext(ctx, `INSERT INTO journal_entries (`+entryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.EntryID, m.Version, m.SerialNumber, m.EntryDate, m.TotalDebit, m.TotalCredit,
		m.DescriptionAr, m.DescriptionEn, m.Status, m.ReplacedBy,
		m.DocumentType, m.DocumentID, m.ContactID, m.BankAccountID, m.PropertyID, m.ProjectID, m.BookingID, m.ContractID,
		m.CreatedAt, m.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: journal entry %s or serial %s", apperrors.ErrDuplicate, m.EntryID, m.SerialNumber)
		}
		return apperrors.NewAppError(500, "failed to insert journal entry "+m.EntryID, err)
	}
	if err := q.insertLines(ctx, lines); err != nil {
		return err
	}
	q.touch(ctx, portsrepo.CollectionJournalEntries)
	return nil
}

func (q *queries) UpdateJournalEntry(ctx context.Context, entry domain.JournalEntry, expectedVersion int) error {
	m, lines := mapping.ToModelJournalEntry(entry)
	res, err := q.db.ExecContext(ctx, `
		UPDATE journal_entries
		SET version = ?, serial_number = ?, entry_date = ?, total_debit = ?, total_credit = ?,
		    description_ar = ?, description_en = ?, status = ?, replaced_by = ?,
		    document_type = ?, document_id = ?, contact_id = ?, bank_account_id = ?,
		    property_id = ?, project_id = ?, booking_id = ?, contract_id = ?, updated_at = ?
		WHERE entry_id = ? AND version = ?`,
		m.Version, m.SerialNumber, m.EntryDate, m.TotalDebit, m.TotalCredit,
		m.DescriptionAr, m.DescriptionEn, m.Status, m.ReplacedBy,
		m.DocumentType, m.DocumentID, m.ContactID, m.BankAccountID,
		m.PropertyID, m.ProjectID, m.BookingID, m.ContractID, m.UpdatedAt,
		m.EntryID, expectedVersion)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update journal entry "+m.EntryID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var stored int
		err := q.db.QueryRowContext(ctx, `SELECT version FROM journal_entries WHERE entry_id = ?`, m.EntryID).Scan(&stored)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, m.EntryID)
		}
		if err != nil {
			return apperrors.NewAppError(500, "failed to read journal entry version", err)
		}
		return fmt.Errorf("%w: journal entry %s is at version %d, expected %d",
			apperrors.ErrConflict, m.EntryID, stored, expectedVersion)
	}

	if _, err := q.db.ExecContext(ctx, `DELETE FROM journal_lines WHERE entry_id = ?`, m.EntryID); err != nil {
		return apperrors.NewAppError(500, "failed to clear journal lines", err)
	}
	if err := q.insertLines(ctx, lines); err != nil {
		return err
	}
	q.touch(ctx, portsrepo.CollectionJournalEntries)
	return nil
}

func (q *queries) ListDocuments(ctx context.Context) ([]domain.AccountingDocument, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT document_id, payload FROM accounting_documents ORDER BY seq DESC`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list documents", err)
	}
	defer rows.Close()

	docs := make([]domain.AccountingDocument, 0)
	for rows.Next() {
		var m models.AccountingDocument
		if err := rows.Scan(&m.DocumentID, &m.Payload); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan document", err)
		}
		d, err := mapping.ToDomainDocument(m)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to decode document", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func (q *queries) FindDocumentByID(ctx context.Context, id string) (*domain.AccountingDocument, error) {
	m := models.AccountingDocument{DocumentID: id}
	err := q.db.QueryRowContext(ctx, `SELECT payload FROM accounting_documents WHERE document_id = ?`, id).Scan(&m.Payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: document %s", apperrors.ErrNotFound, id)
		}
		return nil, apperrors.NewAppError(500, "failed to find document "+id, err)
	}
	d, err := mapping.ToDomainDocument(m)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to decode document", err)
	}
	return &d, nil
}

func (q *queries) SaveDocument(ctx context.Context, doc domain.AccountingDocument) error {
	m, err := mapping.ToModelDocument(doc)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode document", err)
	}
	_, err = q.db.ExecContext(ctx, `
		INSERT INTO accounting_documents (document_id, serial_number, doc_type, status, doc_date, journal_entry_id, payload, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (document_id) DO UPDATE
		SET serial_number = excluded.serial_number, doc_type = excluded.doc_type, status = excluded.status,
		    doc_date = excluded.doc_date, journal_entry_id = excluded.journal_entry_id,
		    payload = excluded.payload, updated_at = excluded.updated_at`,
		m.DocumentID, m.SerialNumber, m.DocType, m.Status, m.DocDate, m.JournalEntryID,
		string(m.Payload), m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save document "+m.DocumentID, err)
	}
	q.touch(ctx, portsrepo.CollectionDocuments)
	return nil
}

func (q *queries) ListPeriods(ctx context.Context) ([]domain.FiscalPeriod, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT period_id, code, start_date, end_date, is_locked, closed_at, closed_by, created_at, updated_at
		FROM fiscal_periods
		ORDER BY seq`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list fiscal periods", err)
	}
	defer rows.Close()

	periods := make([]domain.FiscalPeriod, 0)
	for rows.Next() {
		var m models.FiscalPeriod
		if err := rows.Scan(&m.PeriodID, &m.Code, &m.StartDate, &m.EndDate, &m.IsLocked,
			&m.ClosedAt, &m.ClosedBy, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan fiscal period", err)
		}
		periods = append(periods, mapping.ToDomainFiscalPeriod(m))
	}
	return periods, rows.Err()
}

func (q *queries) InsertPeriod(ctx context.Context, period domain.FiscalPeriod) error {
	m := mapping.ToModelFiscalPeriod(period)
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO fiscal_periods (period_id, code, start_date, end_date, is_locked, closed_at, closed_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.PeriodID, m.Code, m.StartDate, m.EndDate, m.IsLocked, m.ClosedAt, m.ClosedBy, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: fiscal period %s", apperrors.ErrDuplicate, m.PeriodID)
		}
		return apperrors.NewAppError(500, "failed to insert fiscal period "+m.PeriodID, err)
	}
	q.touch(ctx, portsrepo.CollectionPeriods)
	return nil
}

func (q *queries) UpdatePeriod(ctx context.Context, period domain.FiscalPeriod) error {
	m := mapping.ToModelFiscalPeriod(period)
	res, err := q.db.ExecContext(ctx, `
		UPDATE fiscal_periods
		SET code = ?, start_date = ?, end_date = ?, is_locked = ?, closed_at = ?, closed_by = ?, updated_at = ?
		WHERE period_id = ?`,
		m.Code, m.StartDate, m.EndDate, m.IsLocked, m.ClosedAt, m.ClosedBy, m.UpdatedAt, m.PeriodID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update fiscal period "+m.PeriodID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: fiscal period %s", apperrors.ErrNotFound, m.PeriodID)
	}
	q.touch(ctx, portsrepo.CollectionPeriods)
	return nil
}

func nullableText(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}

func (q *queries) AppendAuditLog(ctx context.Context, entry domain.AuditLogEntry) error {
	m := mapping.ToModelAuditLog(entry)
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO audit_log (audit_id, ts, action, entity_type, entity_id, user_id, reason, previous_state, new_state)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.AuditID, m.Timestamp, m.Action, m.EntityType, m.EntityID, m.UserID, m.Reason,
		nullableText(m.PreviousState), nullableText(m.NewState))
	if err != nil {
		return apperrors.NewAppError(500, "failed to append audit log", err)
	}
	q.touch(ctx, portsrepo.CollectionAuditLog)
	return nil
}

func (q *queries) ListAuditLog(ctx context.Context) ([]domain.AuditLogEntry, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT audit_id, ts, action, entity_type, entity_id, user_id, reason, previous_state, new_state
		FROM audit_log
		ORDER BY seq`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list audit log", err)
	}
	defer rows.Close()

	entries := make([]domain.AuditLogEntry, 0)
	for rows.Next() {
		var m models.AuditLog
		if err := rows.Scan(&m.AuditID, &m.Timestamp, &m.Action, &m.EntityType, &m.EntityID,
			&m.UserID, &m.Reason, &m.PreviousState, &m.NewState); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan audit log", err)
		}
		entries = append(entries, mapping.ToDomainAuditLog(m))
	}
	return entries, rows.Err()
}
