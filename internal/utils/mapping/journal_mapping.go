package mapping

import (
	"github.com/SscSPs/property_ledger/internal/core/domain"
	"github.com/SscSPs/property_ledger/internal/models"
)

// ToModelJournalEntry splits a domain JournalEntry into its entry row and line rows
func ToModelJournalEntry(d domain.JournalEntry) (models.JournalEntry, []models.JournalLine) {
	entry := models.JournalEntry{
		EntryID:       d.ID,
		Version:       d.Version,
		SerialNumber:  d.SerialNumber,
		EntryDate:     d.Date,
		TotalDebit:    d.TotalDebit,
		TotalCredit:   d.TotalCredit,
		DescriptionAr: d.DescriptionAr,
		DescriptionEn: d.DescriptionEn,
		Status:        string(d.Status),
		ReplacedBy:    NullString(d.ReplacedBy),
		EntryLinks: models.EntryLinks{
			DocumentType:  NullString(string(d.DocumentType)),
			DocumentID:    NullString(d.DocumentID),
			ContactID:     NullString(d.ContactID),
			BankAccountID: NullString(d.BankAccountID),
			PropertyID:    NullString(d.PropertyID),
			ProjectID:     NullString(d.ProjectID),
			BookingID:     NullString(d.BookingID),
			ContractID:    NullString(d.ContractID),
		},
		Timestamps: ToModelTimestamps(d.Timestamps),
	}

	lines := make([]models.JournalLine, len(d.Lines))
	for i, l := range d.Lines {
		lines[i] = models.JournalLine{
			EntryID:       d.ID,
			LineNo:        i + 1,
			AccountID:     l.AccountID,
			Debit:         l.Debit,
			Credit:        l.Credit,
			DescriptionAr: l.DescriptionAr,
			DescriptionEn: l.DescriptionEn,
		}
	}
	return entry, lines
}

// ToDomainJournalEntry joins an entry row with its line rows, which must be in line order
func ToDomainJournalEntry(m models.JournalEntry, lines []models.JournalLine) domain.JournalEntry {
	out := domain.JournalEntry{
		ID:            m.EntryID,
		Version:       m.Version,
		SerialNumber:  m.SerialNumber,
		Date:          domain.NormalizeDate(m.EntryDate),
		TotalDebit:    m.TotalDebit,
		TotalCredit:   m.TotalCredit,
		DescriptionAr: m.DescriptionAr,
		DescriptionEn: m.DescriptionEn,
		Status:        domain.EntryStatus(m.Status),
		ReplacedBy:    m.ReplacedBy.String,
		EntryLinks: domain.EntryLinks{
			DocumentType:  domain.DocumentType(m.DocumentType.String),
			DocumentID:    m.DocumentID.String,
			ContactID:     m.ContactID.String,
			BankAccountID: m.BankAccountID.String,
			PropertyID:    m.PropertyID.String,
			ProjectID:     m.ProjectID.String,
			BookingID:     m.BookingID.String,
			ContractID:    m.ContractID.String,
		},
		Timestamps: ToDomainTimestamps(m.Timestamps),
		Lines:      make([]domain.JournalLine, len(lines)),
	}
	for i, l := range lines {
		out.Lines[i] = domain.JournalLine{
			AccountID:     l.AccountID,
			Debit:         l.Debit,
			Credit:        l.Credit,
			DescriptionAr: l.DescriptionAr,
			DescriptionEn: l.DescriptionEn,
		}
	}
	return out
}
