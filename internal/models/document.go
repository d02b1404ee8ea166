package models

import (
	"database/sql"
	"time"
)

// AccountingDocument represents a row of the accounting_documents table. The full
// document is kept in Payload; the other columns exist for filtering and joins.
type AccountingDocument struct {
	DocumentID     string         `db:"document_id"`
	SerialNumber   string         `db:"serial_number"`
	DocType        string         `db:"doc_type"`
	Status         string         `db:"status"`
	DocDate        time.Time      `db:"doc_date"`
	JournalEntryID sql.NullString `db:"journal_entry_id"`
	Payload        []byte         `db:"payload"`
	Timestamps
}
