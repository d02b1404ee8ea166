package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	"github.com/SscSPs/property_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/property_ledger/internal/models"
	"github.com/SscSPs/property_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxJournalRepository struct {
	BaseRepository
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const journalEntryColumns = `
	entry_id, version, serial_number, entry_date, total_debit, total_credit,
	description_ar, description_en, status, replaced_by,
	document_type, document_id, contact_id, bank_account_id, property_id, project_id, booking_id, contract_id,
	created_at, updated_at`

func scanJournalEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID, &m.Version, &m.SerialNumber, &m.EntryDate, &m.TotalDebit, &m.TotalCredit,
		&m.DescriptionAr, &m.DescriptionEn, &m.Status, &m.ReplacedBy,
		&m.DocumentType, &m.DocumentID, &m.ContactID, &m.BankAccountID, &m.PropertyID, &m.ProjectID, &m.BookingID, &m.ContractID,
		&m.CreatedAt, &m.UpdatedAt,
	)
	return m, err
}

// linesByEntry loads journal lines, optionally restricted to one entry, grouped by entry id in line order.
func (r *PgxJournalRepository) linesByEntry(ctx context.Context, entryID string) (map[string][]models.JournalLine, error) {
	query := `
		SELECT entry_id, line_no, account_id, debit, credit, description_ar, description_en
		FROM journal_lines
		WHERE ($1 = '' OR entry_id = $1)
		ORDER BY entry_id, line_no;
	`
	rows, err := r.db.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal lines", err)
	}
	defer rows.Close()

	lines := make(map[string][]models.JournalLine)
	for rows.Next() {
		var l models.JournalLine
		if err := rows.Scan(&l.EntryID, &l.LineNo, &l.AccountID, &l.Debit, &l.Credit, &l.DescriptionAr, &l.DescriptionEn); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal line", err)
		}
		lines[l.EntryID] = append(lines[l.EntryID], l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate journal lines", err)
	}
	return lines, nil
}

// ListJournalEntries returns all entries, most recently inserted first.
func (r *PgxJournalRepository) ListJournalEntries(ctx context.Context) ([]domain.JournalEntry, error) {
	rows, err := r.db.Query(ctx, `SELECT `+journalEntryColumns+` FROM journal_entries ORDER BY seq DESC;`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list journal entries", err)
	}
	var heads []models.JournalEntry
	for rows.Next() {
		m, err := scanJournalEntry(rows)
		if err != nil {
			rows.Close()
			return nil, apperrors.NewAppError(500, "failed to scan journal entry", err)
		}
		heads = append(heads, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate journal entries", err)
	}

	lines, err := r.linesByEntry(ctx, "")
	if err != nil {
		return nil, err
	}
	entries := make([]domain.JournalEntry, len(heads))
	for i, h := range heads {
		entries[i] = mapping.ToDomainJournalEntry(h, lines[h.EntryID])
	}
	return entries, nil
}

// FindJournalEntryByID retrieves an entry with its lines.
func (r *PgxJournalRepository) FindJournalEntryByID(ctx context.Context, id string) (*domain.JournalEntry, error) {
	m, err := scanJournalEntry(r.db.QueryRow(ctx, `SELECT `+journalEntryColumns+` FROM journal_entries WHERE entry_id = $1;`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, id)
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry "+id, err)
	}
	lines, err := r.linesByEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	entry := mapping.ToDomainJournalEntry(m, lines[id])
	return &entry, nil
}

func (r *PgxJournalRepository) insertLines(ctx context.Context, lines []models.JournalLine) error {
	batch := &pgx.Batch{}
	query := `
		INSERT INTO journal_lines (entry_id, line_no, account_id, debit, credit, description_ar, description_en)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, l := range lines {
		batch.Queue(query, l.EntryID, l.LineNo, l.AccountID, l.Debit, l.Credit, l.DescriptionAr, l.DescriptionEn)
	}
	if err := r.db.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert journal lines", err)
	}
	return nil
}

// InsertJournalEntry stores a new entry and its lines.
func (r *PgxJournalRepository) InsertJournalEntry(ctx context.Context, entry domain.JournalEntry) error {
	m, lines := mapping.ToModelJournalEntry(entry)
	query := `
		INSERT INTO journal_entries (` + journalEntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	_, err := r.db.Exec(ctx, query,
		m.EntryID, m.Version, m.SerialNumber, m.EntryDate, m.TotalDebit, m.TotalCredit,
		m.DescriptionAr, m.DescriptionEn, m.Status, m.ReplacedBy,
		m.DocumentType, m.DocumentID, m.ContactID, m.BankAccountID, m.PropertyID, m.ProjectID, m.BookingID, m.ContractID,
		m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: journal entry %s or serial %s", apperrors.ErrDuplicate, m.EntryID, m.SerialNumber)
		}
		return apperrors.NewAppError(500, "failed to insert journal entry "+m.EntryID, err)
	}
	if err := r.insertLines(ctx, lines); err != nil {
		return err
	}
	r.touch(ctx, portsrepo.CollectionJournalEntries)
	return nil
}

// UpdateJournalEntry overwrites the entry only while its stored version equals expectedVersion.
// Lines are replaced wholesale.
func (r *PgxJournalRepository) UpdateJournalEntry(ctx context.Context, entry domain.JournalEntry, expectedVersion int) error {
	m, lines := mapping.ToModelJournalEntry(entry)
	query := `
		UPDATE journal_entries
		SET version = $3, serial_number = $4, entry_date = $5, total_debit = $6, total_credit = $7,
		    description_ar = $8, description_en = $9, status = $10, replaced_by = $11,
		    document_type = $12, document_id = $13, contact_id = $14, bank_account_id = $15,
		    property_id = $16, project_id = $17, booking_id = $18, contract_id = $19, updated_at = $20
		WHERE entry_id = $1 AND version = $2;
	`
	tag, err := r.db.Exec(ctx, query,
		m.EntryID, expectedVersion,
		m.Version, m.SerialNumber, m.EntryDate, m.TotalDebit, m.TotalCredit,
		m.DescriptionAr, m.DescriptionEn, m.Status, m.ReplacedBy,
		m.DocumentType, m.DocumentID, m.ContactID, m.BankAccountID, m.PropertyID, m.ProjectID, m.BookingID, m.ContractID,
		m.UpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update journal entry "+m.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		var stored int
		err := r.db.QueryRow(ctx, `SELECT version FROM journal_entries WHERE entry_id = $1;`, m.EntryID).Scan(&stored)
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, m.EntryID)
		}
		if err != nil {
			return apperrors.NewAppError(500, "failed to read journal entry version", err)
		}
		return fmt.Errorf("%w: journal entry %s is at version %d, expected %d",
			apperrors.ErrConflict, m.EntryID, stored, expectedVersion)
	}

	if _, err := r.db.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, m.EntryID); err != nil {
		return apperrors.NewAppError(500, "failed to clear journal lines", err)
	}
	if err := r.insertLines(ctx, lines); err != nil {
		return err
	}
	r.touch(ctx, portsrepo.CollectionJournalEntries)
	return nil
}
