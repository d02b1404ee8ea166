package services_test

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/property_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/property_ledger/internal/core/ports/services"
	"github.com/SscSPs/property_ledger/internal/core/services"
	"github.com/SscSPs/property_ledger/internal/repositories/database/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

const testUserID = "user-1"

// ledgerSuite runs the real services over the in-memory store with a pinned clock.
type ledgerSuite struct {
	suite.Suite
	ctx    context.Context
	store  *memory.Store
	svc    *portssvc.ServiceContainer
	now    time.Time
	nextID int
}

func (suite *ledgerSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = memory.New()
	suite.now = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	suite.nextID = 0
	suite.svc = services.NewServiceContainer(suite.store,
		services.WithClock(func() time.Time { return suite.now }),
		services.WithIDGenerator(func() string {
			suite.nextID++
			return fmt.Sprintf("id-%03d", suite.nextID)
		}),
	)

	_, err := suite.svc.Account.ReplaceChart(suite.ctx, testChart(), "admin")
	suite.Require().NoError(err)
}

func testChart() []domain.ChartAccount {
	return []domain.ChartAccount{
		{ID: "acc-cash", Code: domain.CodeCash, NameEn: "Cash on hand", NameAr: "الصندوق", Type: domain.Asset, IsActive: true, SortOrder: 10},
		{ID: "acc-bank", Code: domain.CodeBank, NameEn: "Bank", NameAr: "البنك", Type: domain.Asset, IsActive: true, SortOrder: 20},
		{ID: "acc-cheques", Code: domain.CodeChequesUnderCollection, NameEn: "Cheques under collection", NameAr: "شيكات تحت التحصيل", Type: domain.Asset, IsActive: true, SortOrder: 30},
		{ID: "acc-payables", Code: domain.CodePayables, NameEn: "Payables", NameAr: "الموردون", Type: domain.Liability, IsActive: true, SortOrder: 40},
		{ID: "acc-deposits", Code: domain.CodeDepositsReceived, NameEn: "Deposits received", NameAr: "تأمينات مستلمة", Type: domain.Liability, IsActive: true, SortOrder: 50},
		{ID: "acc-vat", Code: domain.CodeVAT, NameEn: "VAT payable", NameAr: "ضريبة القيمة المضافة", Type: domain.Liability, IsActive: true, SortOrder: 60},
		{ID: "acc-equity", Code: "3000", NameEn: "Capital", NameAr: "رأس المال", Type: domain.Equity, IsActive: true, SortOrder: 70},
		{ID: "acc-revenue", Code: domain.CodeRevenue, NameEn: "Commission revenue", NameAr: "إيرادات العمولات", Type: domain.Revenue, IsActive: true, SortOrder: 80},
		{ID: "acc-revenue-alt", Code: domain.CodeRevenueAlt, NameEn: "Rental revenue", NameAr: "إيرادات الإيجار", Type: domain.Revenue, IsActive: true, SortOrder: 90},
		{ID: "acc-expense", Code: domain.CodeExpense, NameEn: "General expenses", NameAr: "مصروفات عامة", Type: domain.Expense, IsActive: true, SortOrder: 100},
		{ID: "acc-maintenance", Code: "5100", NameEn: "Maintenance", NameAr: "صيانة", Type: domain.Expense, IsActive: true, SortOrder: 110},
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func debit(accountID, amount string) domain.JournalLine {
	return domain.JournalLine{AccountID: accountID, Debit: dec(amount), Credit: decimal.Zero}
}

func credit(accountID, amount string) domain.JournalLine {
	return domain.JournalLine{AccountID: accountID, Debit: decimal.Zero, Credit: dec(amount)}
}

// createEntry books a simple cash sale on date.
func (suite *ledgerSuite) createEntry(date time.Time, amount string) *domain.JournalEntry {
	entry, err := suite.svc.Journal.CreateJournalEntry(suite.ctx, domain.JournalEntryInput{
		Date:          date,
		Lines:         []domain.JournalLine{debit("acc-cash", amount), credit("acc-revenue", amount)},
		DescriptionEn: "Commission",
	}, testUserID)
	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	return entry
}

func (suite *ledgerSuite) createPeriod(start, end time.Time, code string) *domain.FiscalPeriod {
	p, err := suite.svc.Period.CreateFiscalPeriod(suite.ctx, start, end, code, testUserID)
	suite.Require().NoError(err)
	return p
}

func (suite *ledgerSuite) auditActions(entityType domain.AuditEntityType, entityID string) []domain.AuditAction {
	chain, err := suite.svc.Audit.GetEntityAuditChain(suite.ctx, entityID, entityType)
	suite.Require().NoError(err)
	actions := make([]domain.AuditAction, len(chain))
	for i, e := range chain {
		actions[i] = e.Action
	}
	return actions
}
