package dto

import (
	"fmt"

	"github.com/SscSPs/property_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineRequest is one leg of a journal entry in a create or update request.
type JournalLineRequest struct {
	AccountID     string          `json:"accountId" binding:"required"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	DescriptionAr string          `json:"descriptionAr"`
	DescriptionEn string          `json:"descriptionEn"`
}

// CreateJournalEntryRequest defines the data needed to create a journal entry manually.
type CreateJournalEntryRequest struct {
	Date          string               `json:"date" binding:"required,dateonly"`
	Lines         []JournalLineRequest `json:"lines" binding:"required,min=1,dive"`
	DescriptionAr string               `json:"descriptionAr"`
	DescriptionEn string               `json:"descriptionEn"`
	Status        domain.EntryStatus   `json:"status" binding:"omitempty,oneof=DRAFT PENDING APPROVED PAID CANCELLED"`
	ContactID     string               `json:"contactId"`
	BankAccountID string               `json:"bankAccountId"`
	PropertyID    string               `json:"propertyId"`
	ProjectID     string               `json:"projectId"`
	BookingID     string               `json:"bookingId"`
	ContractID    string               `json:"contractId"`
}

// UpdateJournalEntryRequest is a partial update; omitted fields are left as they are.
type UpdateJournalEntryRequest struct {
	Lines         []JournalLineRequest `json:"lines" binding:"omitempty,min=1,dive"`
	DescriptionAr *string              `json:"descriptionAr"`
	DescriptionEn *string              `json:"descriptionEn"`
	Status        *domain.EntryStatus  `json:"status" binding:"omitempty,oneof=DRAFT PENDING APPROVED PAID CANCELLED"`
}

// ReverseJournalEntryRequest carries the effective date of the reversing entry.
type ReverseJournalEntryRequest struct {
	ReverseDate string `json:"reverseDate" binding:"required,dateonly"`
}

// ListJournalEntriesParams holds paging input for listing journal entries.
type ListJournalEntriesParams struct {
	Limit     int     `form:"limit,default=50" binding:"omitempty,min=1,max=500"`
	NextToken *string `form:"nextToken"`
}

// ListJournalEntriesResponse is one page of entries, newest date first.
type ListJournalEntriesResponse struct {
	Entries   []domain.JournalEntry `json:"entries"`
	NextToken *string               `json:"nextToken,omitempty"`
}

func toDomainLines(reqs []JournalLineRequest) ([]domain.JournalLine, error) {
	lines := make([]domain.JournalLine, len(reqs))
	for i, l := range reqs {
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return nil, fmt.Errorf("line %d: debit and credit must not be negative", i+1)
		}
		lines[i] = domain.JournalLine{
			AccountID:     l.AccountID,
			Debit:         l.Debit,
			Credit:        l.Credit,
			DescriptionAr: l.DescriptionAr,
			DescriptionEn: l.DescriptionEn,
		}
	}
	return lines, nil
}

// ToDomain converts the request into engine input.
func (r CreateJournalEntryRequest) ToDomain() (domain.JournalEntryInput, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return domain.JournalEntryInput{}, fmt.Errorf("invalid date %q: %w", r.Date, err)
	}
	lines, err := toDomainLines(r.Lines)
	if err != nil {
		return domain.JournalEntryInput{}, err
	}
	return domain.JournalEntryInput{
		Date:          date,
		Lines:         lines,
		DescriptionAr: r.DescriptionAr,
		DescriptionEn: r.DescriptionEn,
		Status:        r.Status,
		EntryLinks: domain.EntryLinks{
			ContactID:     r.ContactID,
			BankAccountID: r.BankAccountID,
			PropertyID:    r.PropertyID,
			ProjectID:     r.ProjectID,
			BookingID:     r.BookingID,
			ContractID:    r.ContractID,
		},
	}, nil
}

// ToDomain converts the request into an engine patch.
func (r UpdateJournalEntryRequest) ToDomain() (domain.JournalEntryPatch, error) {
	patch := domain.JournalEntryPatch{
		DescriptionAr: r.DescriptionAr,
		DescriptionEn: r.DescriptionEn,
		Status:        r.Status,
	}
	if r.Lines != nil {
		lines, err := toDomainLines(r.Lines)
		if err != nil {
			return domain.JournalEntryPatch{}, err
		}
		patch.Lines = lines
	}
	return patch, nil
}
