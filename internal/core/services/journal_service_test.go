package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	"github.com/SscSPs/property_ledger/internal/core/domain"
	"github.com/SscSPs/property_ledger/internal/dto"
	"github.com/stretchr/testify/suite"
)

type JournalServiceTestSuite struct {
	ledgerSuite
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_Success() {
	entry, err := suite.svc.Journal.CreateJournalEntry(suite.ctx, domain.JournalEntryInput{
		Date:          day(2025, 3, 10),
		Lines:         []domain.JournalLine{debit("acc-cash", "250.50"), credit("acc-revenue", "250.50")},
		DescriptionAr: "عمولة",
		DescriptionEn: "Commission",
		EntryLinks:    domain.EntryLinks{PropertyID: "prop-9"},
	}, testUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.NotEmpty(entry.ID)
	suite.Equal(1, entry.Version)
	suite.Equal("JRN-2025-0001", entry.SerialNumber)
	suite.Equal(domain.StatusApproved, entry.Status)
	suite.Equal("250.5", entry.TotalDebit.String())
	suite.True(entry.TotalDebit.Equal(entry.TotalCredit))
	suite.Equal("prop-9", entry.PropertyID)
	suite.Equal(suite.now, entry.CreatedAt)

	chain, err := suite.svc.Audit.GetEntityAuditChain(suite.ctx, entry.ID, domain.EntityJournalEntry)
	suite.Require().NoError(err)
	suite.Require().Len(chain, 1)
	suite.Equal(domain.ActionCreate, chain[0].Action)
	suite.Equal(testUserID, chain[0].UserID)
	suite.Contains(string(chain[0].NewState), `"serialNumber":"JRN-2025-0001"`)
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_Unbalanced() {
	_, err := suite.svc.Journal.CreateJournalEntry(suite.ctx, domain.JournalEntryInput{
		Date:  day(2025, 3, 10),
		Lines: []domain.JournalLine{debit("acc-cash", "100"), credit("acc-revenue", "99.98")},
	}, testUserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnbalancedEntry)
	var unbalanced *apperrors.UnbalancedEntryError
	suite.Require().True(errors.As(err, &unbalanced))
	suite.Equal("100", unbalanced.TotalDebit.String())
	suite.Equal("99.98", unbalanced.TotalCredit.String())

	entries, err := suite.svc.Journal.GetAllJournalEntries(suite.ctx)
	suite.Require().NoError(err)
	suite.Empty(entries)
	logs, err := suite.svc.Audit.GetAuditLog(suite.ctx, domain.AuditFilter{EntityType: domain.EntityJournalEntry})
	suite.Require().NoError(err)
	suite.Empty(logs)
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_ToleranceAndRounding() {
	entry, err := suite.svc.Journal.CreateJournalEntry(suite.ctx, domain.JournalEntryInput{
		Date:  day(2025, 3, 10),
		Lines: []domain.JournalLine{debit("acc-cash", "100.005"), credit("acc-revenue", "100")},
	}, testUserID)

	suite.Require().NoError(err)
	suite.Equal("100.01", entry.TotalDebit.StringFixed(2))
	suite.Equal("100.00", entry.TotalCredit.StringFixed(2))
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_RejectsNegativeAndEmptyLines() {
	_, err := suite.svc.Journal.CreateJournalEntry(suite.ctx, domain.JournalEntryInput{
		Date:  day(2025, 3, 10),
		Lines: []domain.JournalLine{debit("acc-cash", "-5"), credit("acc-revenue", "-5")},
	}, testUserID)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.svc.Journal.CreateJournalEntry(suite.ctx, domain.JournalEntryInput{Date: day(2025, 3, 10)}, testUserID)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestPeriodLock_BlocksCreateAndUpdate() {
	period := suite.createPeriod(day(2025, 1, 1), day(2025, 12, 31), "FY-2025")
	entry := suite.createEntry(day(2025, 3, 1), "40")

	_, err := suite.svc.Period.LockPeriod(suite.ctx, period.ID, "admin")
	suite.Require().NoError(err)

	_, err = suite.svc.Journal.CreateJournalEntry(suite.ctx, domain.JournalEntryInput{
		Date:  day(2025, 3, 2),
		Lines: []domain.JournalLine{debit("acc-cash", "10"), credit("acc-revenue", "10")},
	}, testUserID)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPeriodLocked)
	var locked *apperrors.PeriodLockedError
	suite.Require().True(errors.As(err, &locked))
	suite.Equal("FY-2025", locked.PeriodCode)

	desc := "changed"
	_, err = suite.svc.Journal.UpdateJournalEntry(suite.ctx, entry.ID, domain.JournalEntryPatch{DescriptionEn: &desc}, testUserID)
	suite.ErrorIs(err, apperrors.ErrPeriodLocked)

	_, err = suite.svc.Journal.CancelJournalEntry(suite.ctx, entry.ID, testUserID)
	suite.ErrorIs(err, apperrors.ErrPeriodLocked)

	// Dates outside every period stay postable.
	suite.createEntry(day(2026, 1, 5), "10")
}

func (suite *JournalServiceTestSuite) TestUpdateJournalEntry_RecomputesTotals() {
	entry := suite.createEntry(day(2025, 3, 1), "40")

	result, err := suite.svc.Journal.UpdateJournalEntry(suite.ctx, entry.ID, domain.JournalEntryPatch{
		Lines: []domain.JournalLine{debit("acc-bank", "75.25"), credit("acc-revenue", "75.25")},
	}, testUserID)

	suite.Require().NoError(err)
	suite.Require().True(result.Applied())
	suite.Equal(2, result.Entry.Version)
	suite.Equal("75.25", result.Entry.TotalCredit.String())
	suite.Equal(entry.SerialNumber, result.Entry.SerialNumber)
	suite.Equal([]domain.AuditAction{domain.ActionUpdate, domain.ActionCreate},
		suite.auditActions(domain.EntityJournalEntry, entry.ID))
}

func (suite *JournalServiceTestSuite) TestUpdateJournalEntry_UnbalancedLeavesEntryUntouched() {
	entry := suite.createEntry(day(2025, 3, 1), "40")

	_, err := suite.svc.Journal.UpdateJournalEntry(suite.ctx, entry.ID, domain.JournalEntryPatch{
		Lines: []domain.JournalLine{debit("acc-cash", "40"), credit("acc-revenue", "30")},
	}, testUserID)
	suite.ErrorIs(err, apperrors.ErrUnbalancedEntry)

	stored, err := suite.svc.Journal.GetJournalEntry(suite.ctx, entry.ID)
	suite.Require().NoError(err)
	suite.Equal(1, stored.Version)
	suite.Equal("40", stored.TotalCredit.String())
}

func (suite *JournalServiceTestSuite) TestMutations_UnknownIDReportNotFound() {
	desc := "x"
	result, err := suite.svc.Journal.UpdateJournalEntry(suite.ctx, "nope", domain.JournalEntryPatch{DescriptionEn: &desc}, testUserID)
	suite.Require().NoError(err)
	suite.Equal(domain.OutcomeNotFound, result.Outcome)
	suite.Nil(result.Entry)

	result, err = suite.svc.Journal.ReverseJournalEntry(suite.ctx, "nope", day(2025, 3, 1), testUserID)
	suite.Require().NoError(err)
	suite.Equal(domain.OutcomeNotFound, result.Outcome)

	result, err = suite.svc.Journal.CancelJournalEntry(suite.ctx, "nope", testUserID)
	suite.Require().NoError(err)
	suite.Equal(domain.OutcomeNotFound, result.Outcome)
}

func (suite *JournalServiceTestSuite) TestReverseJournalEntry_MirrorsLinesAndFreezesOriginal() {
	original, err := suite.svc.Journal.CreateJournalEntry(suite.ctx, domain.JournalEntryInput{
		Date: day(2025, 3, 1),
		Lines: []domain.JournalLine{
			debit("acc-cash", "105"),
			credit("acc-revenue", "100"),
			credit("acc-vat", "5"),
		},
		EntryLinks: domain.EntryLinks{ContactID: "contact-7"},
	}, testUserID)
	suite.Require().NoError(err)

	result, err := suite.svc.Journal.ReverseJournalEntry(suite.ctx, original.ID, day(2025, 4, 1), testUserID)
	suite.Require().NoError(err)
	suite.Require().True(result.Applied())
	reversal := result.Entry

	suite.Equal(day(2025, 4, 1), reversal.Date)
	suite.Equal("contact-7", reversal.ContactID)
	suite.Contains(reversal.DescriptionEn, original.SerialNumber)
	suite.Require().Len(reversal.Lines, 3)
	for i, l := range original.Lines {
		suite.Equal(l.AccountID, reversal.Lines[i].AccountID)
		suite.True(l.Debit.Equal(reversal.Lines[i].Credit))
		suite.True(l.Credit.Equal(reversal.Lines[i].Debit))
	}
	suite.True(reversal.TotalDebit.Equal(reversal.TotalCredit))

	stored, err := suite.svc.Journal.GetJournalEntry(suite.ctx, original.ID)
	suite.Require().NoError(err)
	suite.Equal(reversal.ID, stored.ReplacedBy)
	suite.Equal(2, stored.Version)

	desc := "late edit"
	frozen, err := suite.svc.Journal.UpdateJournalEntry(suite.ctx, original.ID, domain.JournalEntryPatch{DescriptionEn: &desc}, testUserID)
	suite.Require().NoError(err)
	suite.Equal(domain.OutcomeSuperseded, frozen.Outcome)

	again, err := suite.svc.Journal.ReverseJournalEntry(suite.ctx, original.ID, day(2025, 4, 2), testUserID)
	suite.Require().NoError(err)
	suite.Equal(domain.OutcomeSuperseded, again.Outcome)

	after, err := suite.svc.Journal.GetJournalEntry(suite.ctx, original.ID)
	suite.Require().NoError(err)
	suite.Equal(stored, after)

	all, err := suite.svc.Journal.GetAllJournalEntries(suite.ctx)
	suite.Require().NoError(err)
	suite.Len(all, 2)

	suite.Equal([]domain.AuditAction{domain.ActionReverse, domain.ActionCreate},
		suite.auditActions(domain.EntityJournalEntry, original.ID))
	suite.Equal([]domain.AuditAction{domain.ActionCreate},
		suite.auditActions(domain.EntityJournalEntry, reversal.ID))
}

func (suite *JournalServiceTestSuite) TestReverseJournalEntry_LockedReversalDate() {
	period := suite.createPeriod(day(2025, 1, 1), day(2025, 3, 31), "Q1-2025")
	suite.createPeriod(day(2025, 4, 1), day(2025, 6, 30), "Q2-2025")
	entry := suite.createEntry(day(2025, 4, 10), "20")

	_, err := suite.svc.Period.LockPeriod(suite.ctx, period.ID, "admin")
	suite.Require().NoError(err)

	_, err = suite.svc.Journal.ReverseJournalEntry(suite.ctx, entry.ID, day(2025, 3, 31), testUserID)
	suite.ErrorIs(err, apperrors.ErrPeriodLocked)

	stored, err := suite.svc.Journal.GetJournalEntry(suite.ctx, entry.ID)
	suite.Require().NoError(err)
	suite.False(stored.IsSuperseded())
	all, err := suite.svc.Journal.GetAllJournalEntries(suite.ctx)
	suite.Require().NoError(err)
	suite.Len(all, 1)
}

func (suite *JournalServiceTestSuite) TestSerialNumbers_StayUniqueAfterReversal() {
	first := suite.createEntry(day(2025, 2, 1), "10")
	suite.Equal("JRN-2025-0001", first.SerialNumber)

	result, err := suite.svc.Journal.ReverseJournalEntry(suite.ctx, first.ID, day(2025, 2, 2), testUserID)
	suite.Require().NoError(err)
	suite.Equal("JRN-2025-0002", result.Entry.SerialNumber)

	third := suite.createEntry(day(2025, 2, 3), "10")
	suite.Equal("JRN-2025-0003", third.SerialNumber)

	suite.now = time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC)
	nextYear := suite.createEntry(day(2026, 1, 2), "10")
	suite.Equal("JRN-2026-0001", nextYear.SerialNumber)
}

func (suite *JournalServiceTestSuite) TestCancelJournalEntry_ExcludedFromBalances() {
	keep := suite.createEntry(day(2025, 3, 1), "30")
	drop := suite.createEntry(day(2025, 3, 2), "70")

	result, err := suite.svc.Journal.CancelJournalEntry(suite.ctx, drop.ID, testUserID)
	suite.Require().NoError(err)
	suite.Require().True(result.Applied())
	suite.Equal(domain.StatusCancelled, result.Entry.Status)

	_, err = suite.svc.Journal.CreateJournalEntry(suite.ctx, domain.JournalEntryInput{
		Date:   day(2025, 3, 3),
		Lines:  []domain.JournalLine{debit("acc-cash", "500"), credit("acc-revenue", "500")},
		Status: domain.StatusDraft,
	}, testUserID)
	suite.Require().NoError(err)

	cash, err := suite.svc.Journal.GetAccountBalance(suite.ctx, "acc-cash")
	suite.Require().NoError(err)
	suite.Equal(keep.TotalDebit.String(), cash.String())

	revenue, err := suite.svc.Journal.GetAccountBalance(suite.ctx, "acc-revenue")
	suite.Require().NoError(err)
	suite.Equal("30", revenue.String())

	_, err = suite.svc.Journal.GetAccountBalance(suite.ctx, "acc-unknown")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *JournalServiceTestSuite) TestGetAllJournalEntries_SortedByDateDescending() {
	suite.createEntry(day(2025, 1, 15), "1")
	suite.createEntry(day(2025, 5, 1), "2")
	suite.createEntry(day(2025, 3, 20), "3")

	entries, err := suite.svc.Journal.GetAllJournalEntries(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Len(entries, 3)
	suite.Equal(day(2025, 5, 1), entries[0].Date)
	suite.Equal(day(2025, 3, 20), entries[1].Date)
	suite.Equal(day(2025, 1, 15), entries[2].Date)
}

func (suite *JournalServiceTestSuite) TestListJournalEntries_Pages() {
	for i := 1; i <= 5; i++ {
		suite.createEntry(day(2025, 1, i), "1")
	}

	page1, err := suite.svc.Journal.ListJournalEntries(suite.ctx, dto.ListJournalEntriesParams{Limit: 2})
	suite.Require().NoError(err)
	suite.Len(page1.Entries, 2)
	suite.Require().NotNil(page1.NextToken)
	suite.Equal(day(2025, 1, 5), page1.Entries[0].Date)

	page2, err := suite.svc.Journal.ListJournalEntries(suite.ctx, dto.ListJournalEntriesParams{Limit: 2, NextToken: page1.NextToken})
	suite.Require().NoError(err)
	suite.Len(page2.Entries, 2)
	suite.Equal(day(2025, 1, 3), page2.Entries[0].Date)

	page3, err := suite.svc.Journal.ListJournalEntries(suite.ctx, dto.ListJournalEntriesParams{Limit: 2, NextToken: page2.NextToken})
	suite.Require().NoError(err)
	suite.Len(page3.Entries, 1)
	suite.Nil(page3.NextToken)

	bad := "%%%"
	_, err = suite.svc.Journal.ListJournalEntries(suite.ctx, dto.ListJournalEntriesParams{NextToken: &bad})
	suite.ErrorIs(err, apperrors.ErrValidation)
}
