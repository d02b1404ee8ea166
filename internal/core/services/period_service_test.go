package services_test

import (
	"testing"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	"github.com/SscSPs/property_ledger/internal/core/domain"
	"github.com/stretchr/testify/suite"
)

type PeriodServiceTestSuite struct {
	ledgerSuite
}

func TestPeriodServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PeriodServiceTestSuite))
}

func (suite *PeriodServiceTestSuite) TestCreateFiscalPeriod() {
	p := suite.createPeriod(day(2025, 1, 1), day(2025, 12, 31), "FY-2025")

	suite.NotEmpty(p.ID)
	suite.Equal("FY-2025", p.Code)
	suite.False(p.IsLocked)
	suite.Nil(p.ClosedAt)
	suite.Equal([]domain.AuditAction{domain.ActionCreate}, suite.auditActions(domain.EntityPeriod, p.ID))
}

func (suite *PeriodServiceTestSuite) TestCreateFiscalPeriod_DefaultCode() {
	p := suite.createPeriod(day(2024, 4, 1), day(2025, 3, 31), "")
	suite.Equal("FY-2024", p.Code)
}

func (suite *PeriodServiceTestSuite) TestCreateFiscalPeriod_EndBeforeStart() {
	p, err := suite.svc.Period.CreateFiscalPeriod(suite.ctx, day(2025, 2, 1), day(2025, 1, 1), "bad", testUserID)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(p)

	periods, err := suite.svc.Period.GetFiscalPeriods(suite.ctx)
	suite.Require().NoError(err)
	suite.Empty(periods)
}

func (suite *PeriodServiceTestSuite) TestGetFiscalPeriods_SortedByStartDate() {
	suite.createPeriod(day(2025, 7, 1), day(2025, 12, 31), "H2")
	suite.createPeriod(day(2025, 1, 1), day(2025, 6, 30), "H1")
	suite.createPeriod(day(2024, 1, 1), day(2024, 12, 31), "FY-2024")

	periods, err := suite.svc.Period.GetFiscalPeriods(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Len(periods, 3)
	suite.Equal("FY-2024", periods[0].Code)
	suite.Equal("H1", periods[1].Code)
	suite.Equal("H2", periods[2].Code)
}

func (suite *PeriodServiceTestSuite) TestGetPeriodByDate() {
	suite.createPeriod(day(2025, 1, 1), day(2025, 3, 31), "Q1")

	p, err := suite.svc.Period.GetPeriodByDate(suite.ctx, day(2025, 3, 31))
	suite.Require().NoError(err)
	suite.Require().NotNil(p)
	suite.Equal("Q1", p.Code)

	p, err = suite.svc.Period.GetPeriodByDate(suite.ctx, day(2025, 4, 1))
	suite.Require().NoError(err)
	suite.Nil(p)
}

func (suite *PeriodServiceTestSuite) TestGetPeriodByDate_OverlapReturnsEarliestStart() {
	suite.createPeriod(day(2025, 6, 1), day(2025, 6, 30), "JUN")
	suite.createPeriod(day(2025, 1, 1), day(2025, 12, 31), "FY-2025")

	p, err := suite.svc.Period.GetPeriodByDate(suite.ctx, day(2025, 6, 15))
	suite.Require().NoError(err)
	suite.Require().NotNil(p)
	suite.Equal("FY-2025", p.Code)
}

func (suite *PeriodServiceTestSuite) TestIsPeriodLocked() {
	p := suite.createPeriod(day(2025, 1, 1), day(2025, 3, 31), "Q1")

	locked, err := suite.svc.Period.IsPeriodLocked(suite.ctx, day(2025, 2, 10))
	suite.Require().NoError(err)
	suite.False(locked)

	_, err = suite.svc.Period.LockPeriod(suite.ctx, p.ID, testUserID)
	suite.Require().NoError(err)

	locked, err = suite.svc.Period.IsPeriodLocked(suite.ctx, day(2025, 2, 10))
	suite.Require().NoError(err)
	suite.True(locked)

	locked, err = suite.svc.Period.IsPeriodLocked(suite.ctx, day(2025, 4, 1))
	suite.Require().NoError(err)
	suite.False(locked, "dates outside every period are open")
}

func (suite *PeriodServiceTestSuite) TestLockPeriod_Idempotent() {
	p := suite.createPeriod(day(2025, 1, 1), day(2025, 3, 31), "Q1")

	first, err := suite.svc.Period.LockPeriod(suite.ctx, p.ID, testUserID)
	suite.Require().NoError(err)
	suite.True(first.IsLocked)
	suite.Require().NotNil(first.ClosedAt)
	suite.Equal(suite.now, *first.ClosedAt)
	suite.Equal(testUserID, first.ClosedBy)

	suite.now = suite.now.AddDate(0, 0, 1)
	second, err := suite.svc.Period.LockPeriod(suite.ctx, p.ID, "someone-else")
	suite.Require().NoError(err)
	suite.True(second.IsLocked)
	suite.Equal(*first.ClosedAt, *second.ClosedAt)
	suite.Equal(testUserID, second.ClosedBy)

	locks, err := suite.svc.Audit.GetAuditLog(suite.ctx, domain.AuditFilter{
		EntityID: p.ID,
		Action:   domain.ActionPeriodLock,
	})
	suite.Require().NoError(err)
	suite.Len(locks, 1)
	suite.Equal("Period Q1 locked", locks[0].Reason)
}

func (suite *PeriodServiceTestSuite) TestLockPeriod_UnknownID() {
	p, err := suite.svc.Period.LockPeriod(suite.ctx, "missing", testUserID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(p)
}

func (suite *PeriodServiceTestSuite) TestEnsureDefaultPeriods() {
	created, err := suite.svc.Period.EnsureDefaultPeriods(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.Equal("FY-2025", created.Code)
	suite.Equal(day(2025, 1, 1), created.StartDate)
	suite.Equal(day(2025, 12, 31), created.EndDate)

	again, err := suite.svc.Period.EnsureDefaultPeriods(suite.ctx)
	suite.Require().NoError(err)
	suite.Nil(again)

	periods, err := suite.svc.Period.GetFiscalPeriods(suite.ctx)
	suite.Require().NoError(err)
	suite.Len(periods, 1)
}

func (suite *PeriodServiceTestSuite) TestEnsureDefaultPeriods_SkipsWhenAnyPeriodExists() {
	suite.createPeriod(day(2020, 1, 1), day(2020, 12, 31), "FY-2020")

	created, err := suite.svc.Period.EnsureDefaultPeriods(suite.ctx)
	suite.Require().NoError(err)
	suite.Nil(created)
}
