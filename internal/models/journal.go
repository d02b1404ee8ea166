package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry represents a row of the journal_entries table. Lines live in journal_lines.
type JournalEntry struct {
	EntryID       string          `db:"entry_id"`
	Version       int             `db:"version"`
	SerialNumber  string          `db:"serial_number"`
	EntryDate     time.Time       `db:"entry_date"`
	TotalDebit    decimal.Decimal `db:"total_debit"`
	TotalCredit   decimal.Decimal `db:"total_credit"`
	DescriptionAr string          `db:"description_ar"`
	DescriptionEn string          `db:"description_en"`
	Status        string          `db:"status"`
	ReplacedBy    sql.NullString  `db:"replaced_by"`
	EntryLinks
	Timestamps
}

// EntryLinks are the optional references from an entry to its business context.
type EntryLinks struct {
	DocumentType  sql.NullString `db:"document_type"`
	DocumentID    sql.NullString `db:"document_id"`
	ContactID     sql.NullString `db:"contact_id"`
	BankAccountID sql.NullString `db:"bank_account_id"`
	PropertyID    sql.NullString `db:"property_id"`
	ProjectID     sql.NullString `db:"project_id"`
	BookingID     sql.NullString `db:"booking_id"`
	ContractID    sql.NullString `db:"contract_id"`
}

// JournalLine represents a row of the journal_lines table. LineNo keeps the entry's line order.
type JournalLine struct {
	EntryID       string          `db:"entry_id"`
	LineNo        int             `db:"line_no"`
	AccountID     string          `db:"account_id"`
	Debit         decimal.Decimal `db:"debit"`
	Credit        decimal.Decimal `db:"credit"`
	DescriptionAr string          `db:"description_ar"`
	DescriptionEn string          `db:"description_en"`
}
