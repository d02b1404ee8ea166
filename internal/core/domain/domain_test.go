package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/property_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAuditFilter_Matches(t *testing.T) {
	entry := domain.AuditLogEntry{
		Timestamp:  time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC),
		Action:     domain.ActionReverse,
		EntityType: domain.EntityJournalEntry,
		EntityID:   "je-1",
	}

	tests := []struct {
		name   string
		filter domain.AuditFilter
		want   bool
	}{
		{name: "empty filter", filter: domain.AuditFilter{}, want: true},
		{name: "matching entity", filter: domain.AuditFilter{EntityType: domain.EntityJournalEntry, EntityID: "je-1"}, want: true},
		{name: "other entity id", filter: domain.AuditFilter{EntityID: "je-2"}, want: false},
		{name: "other entity type", filter: domain.AuditFilter{EntityType: domain.EntityPeriod}, want: false},
		{name: "other action", filter: domain.AuditFilter{Action: domain.ActionCreate}, want: false},
		{name: "date-only upper bound includes the day", filter: domain.AuditFilter{ToDate: "2025-06-30"}, want: true},
		{name: "upper bound the day before", filter: domain.AuditFilter{ToDate: "2025-06-29"}, want: false},
		{name: "full timestamp upper bound", filter: domain.AuditFilter{ToDate: "2025-06-30T23:59:58.000Z"}, want: false},
		{name: "lower bound same day", filter: domain.AuditFilter{FromDate: "2025-06-30"}, want: true},
		{name: "lower bound next day", filter: domain.AuditFilter{FromDate: "2025-07-01"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(entry))
		})
	}
}

func TestAuditLogEntry_ISOTimestamp(t *testing.T) {
	loc := time.FixedZone("AST", 3*60*60)
	e := domain.AuditLogEntry{Timestamp: time.Date(2025, 1, 2, 1, 30, 0, 5_000_000, loc)}
	assert.Equal(t, "2025-01-01T22:30:00.005Z", e.ISOTimestamp())
}

func TestFiscalPeriod_Contains(t *testing.T) {
	start, end := domain.CalendarYear(2025)
	p := domain.FiscalPeriod{StartDate: start, EndDate: end}

	assert.True(t, p.Contains(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, p.Contains(time.Date(2025, 12, 31, 18, 0, 0, 0, time.UTC)), "the end date is inclusive")
	assert.False(t, p.Contains(time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC)))
	assert.False(t, p.Contains(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "FY-2025", domain.FiscalYearCode(2025))
}

func TestJournalLine_Swapped(t *testing.T) {
	line := domain.JournalLine{AccountID: "a", Debit: decimal.NewFromInt(10), Credit: decimal.Zero, DescriptionEn: "x"}
	swapped := line.Swapped()

	assert.True(t, swapped.Debit.IsZero())
	assert.True(t, swapped.Credit.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, "a", swapped.AccountID)
	assert.Equal(t, "x", swapped.DescriptionEn)
	assert.True(t, line.Debit.Equal(decimal.NewFromInt(10)), "the original line is unchanged")
}

func TestJournalEntry_Clone(t *testing.T) {
	e := domain.JournalEntry{Lines: []domain.JournalLine{{AccountID: "a"}}}
	c := e.Clone()
	c.Lines[0].AccountID = "b"
	assert.Equal(t, "a", e.Lines[0].AccountID)
	assert.False(t, e.IsSuperseded())
}

func TestParseDate(t *testing.T) {
	d, err := domain.ParseDate("2025-02-28")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), d)

	_, err = domain.ParseDate("28/02/2025")
	assert.Error(t, err)
}

func TestDocumentType_IsValid(t *testing.T) {
	assert.True(t, domain.DocPurchaseInv.IsValid())
	assert.False(t, domain.DocumentType("PURCHASE_INVOICE").IsValid())
	assert.True(t, domain.StatusPaid.IsValid())
	assert.False(t, domain.EntryStatus("VOID").IsValid())
}
