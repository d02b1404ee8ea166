package services_test

import (
	"encoding/json"
	"testing"

	"github.com/SscSPs/property_ledger/internal/core/domain"
	"github.com/stretchr/testify/suite"
)

type AuditServiceTestSuite struct {
	ledgerSuite
}

func TestAuditServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuditServiceTestSuite))
}

func (suite *AuditServiceTestSuite) TestAppendAuditLog_AssignsIDAndTimestamp() {
	rec, err := suite.svc.Audit.AppendAuditLog(suite.ctx, domain.AuditLogEntry{
		ID:         "ignored",
		Action:     domain.ActionCreate,
		EntityType: domain.EntityJournalEntry,
		EntityID:   "je-1",
		NewState:   json.RawMessage(`{"a":1}`),
	})
	suite.Require().NoError(err)
	suite.NotEqual("ignored", rec.ID)
	suite.Equal(suite.now, rec.Timestamp)
}

func (suite *AuditServiceTestSuite) TestGetAuditLog_Filters() {
	suite.createEntry(day(2025, 6, 1), "10")
	suite.now = suite.now.AddDate(0, 0, 1)
	e := suite.createEntry(day(2025, 6, 2), "20")
	_, err := suite.svc.Journal.CancelJournalEntry(suite.ctx, e.ID, testUserID)
	suite.Require().NoError(err)

	all, err := suite.svc.Audit.GetAuditLog(suite.ctx, domain.AuditFilter{EntityType: domain.EntityJournalEntry})
	suite.Require().NoError(err)
	suite.Require().Len(all, 3)
	suite.Equal(domain.ActionUpdate, all[0].Action)
	for i := 1; i < len(all); i++ {
		suite.False(all[i].Timestamp.After(all[i-1].Timestamp))
	}

	day15, err := suite.svc.Audit.GetAuditLog(suite.ctx, domain.AuditFilter{
		EntityType: domain.EntityJournalEntry,
		ToDate:     "2025-06-15",
	})
	suite.Require().NoError(err)
	suite.Len(day15, 1, "a date-only upper bound includes the whole day")

	day16, err := suite.svc.Audit.GetAuditLog(suite.ctx, domain.AuditFilter{
		EntityType: domain.EntityJournalEntry,
		FromDate:   "2025-06-16",
	})
	suite.Require().NoError(err)
	suite.Len(day16, 2)

	creates, err := suite.svc.Audit.GetAuditLog(suite.ctx, domain.AuditFilter{Action: domain.ActionCreate, EntityID: e.ID})
	suite.Require().NoError(err)
	suite.Len(creates, 1)
}

func (suite *AuditServiceTestSuite) TestGetEntityAuditChain_ScopedToEntity() {
	a := suite.createEntry(day(2025, 6, 1), "10")
	suite.createEntry(day(2025, 6, 1), "10")

	chain, err := suite.svc.Audit.GetEntityAuditChain(suite.ctx, a.ID, domain.EntityJournalEntry)
	suite.Require().NoError(err)
	suite.Require().Len(chain, 1)
	suite.Equal(a.ID, chain[0].EntityID)

	chain, err = suite.svc.Audit.GetEntityAuditChain(suite.ctx, a.ID, domain.EntityDocument)
	suite.Require().NoError(err)
	suite.Empty(chain)
}
