package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus is the lifecycle state shared by journal entries and accounting documents.
type EntryStatus string

const (
	StatusDraft     EntryStatus = "DRAFT"
	StatusPending   EntryStatus = "PENDING"
	StatusApproved  EntryStatus = "APPROVED"
	StatusPaid      EntryStatus = "PAID"
	StatusCancelled EntryStatus = "CANCELLED"
)

// IsValid reports whether s is a known status.
func (s EntryStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusApproved, StatusPaid, StatusCancelled:
		return true
	}
	return false
}

// JournalLine is one leg of a journal entry. It never exists outside an entry.
type JournalLine struct {
	AccountID     string          `json:"accountId"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	DescriptionAr string          `json:"descriptionAr,omitempty"`
	DescriptionEn string          `json:"descriptionEn,omitempty"`
}

// Swapped returns the mirror of l with debit and credit exchanged.
func (l JournalLine) Swapped() JournalLine {
	l.Debit, l.Credit = l.Credit, l.Debit
	return l
}

// EntryLinks ties a journal entry back to its originating document and business context.
// Empty strings mean "not linked".
type EntryLinks struct {
	DocumentType  DocumentType `json:"documentType,omitempty"`
	DocumentID    string       `json:"documentId,omitempty"`
	ContactID     string       `json:"contactId,omitempty"`
	BankAccountID string       `json:"bankAccountId,omitempty"`
	PropertyID    string       `json:"propertyId,omitempty"`
	ProjectID     string       `json:"projectId,omitempty"`
	BookingID     string       `json:"bookingId,omitempty"`
	ContractID    string       `json:"contractId,omitempty"`
}

// JournalEntry is a dated, balanced group of lines. Entries are never deleted;
// they are reversed (ReplacedBy set) or cancelled (status flip).
type JournalEntry struct {
	ID            string          `json:"id"`
	Version       int             `json:"version"`
	SerialNumber  string          `json:"serialNumber"`
	Date          time.Time       `json:"date"`
	Lines         []JournalLine   `json:"lines"`
	TotalDebit    decimal.Decimal `json:"totalDebit"`
	TotalCredit   decimal.Decimal `json:"totalCredit"`
	DescriptionAr string          `json:"descriptionAr"`
	DescriptionEn string          `json:"descriptionEn"`
	Status        EntryStatus     `json:"status"`
	ReplacedBy    string          `json:"replacedBy,omitempty"`
	EntryLinks
	Timestamps
}

// IsSuperseded reports whether the entry has been reversed and is therefore frozen.
func (e JournalEntry) IsSuperseded() bool {
	return e.ReplacedBy != ""
}

// Clone returns a copy of e that shares no line storage with it.
func (e JournalEntry) Clone() JournalEntry {
	if e.Lines != nil {
		lines := make([]JournalLine, len(e.Lines))
		copy(lines, e.Lines)
		e.Lines = lines
	}
	return e
}

// JournalEntryInput carries the caller-supplied fields of a new entry.
// Id, serial, version, totals and timestamps are assigned by the engine.
type JournalEntryInput struct {
	Date          time.Time
	Lines         []JournalLine
	DescriptionAr string
	DescriptionEn string
	Status        EntryStatus
	EntryLinks
}

// JournalEntryPatch is a partial update. Nil fields are left untouched.
type JournalEntryPatch struct {
	Lines         []JournalLine
	DescriptionAr *string
	DescriptionEn *string
	Status        *EntryStatus
}

// MutationOutcome tags the result of an update, reversal or cancellation.
type MutationOutcome string

const (
	OutcomeApplied    MutationOutcome = "APPLIED"
	OutcomeNotFound   MutationOutcome = "NOT_FOUND"
	OutcomeSuperseded MutationOutcome = "SUPERSEDED"
)

// JournalResult is returned by mutations that can be "not applicable" without being an error.
// Entry is only set when Outcome is OutcomeApplied.
type JournalResult struct {
	Entry   *JournalEntry
	Outcome MutationOutcome
}

// Applied reports whether the mutation took effect.
func (r JournalResult) Applied() bool {
	return r.Outcome == OutcomeApplied && r.Entry != nil
}

// NotFound builds the result for a missing entry.
func NotFound() JournalResult { return JournalResult{Outcome: OutcomeNotFound} }

// Superseded builds the result for a frozen entry.
func Superseded() JournalResult { return JournalResult{Outcome: OutcomeSuperseded} }

// AppliedResult builds the result for a successful mutation.
func AppliedResult(e *JournalEntry) JournalResult {
	return JournalResult{Entry: e, Outcome: OutcomeApplied}
}
