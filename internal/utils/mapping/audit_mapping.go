package mapping

import (
	"github.com/SscSPs/property_ledger/internal/core/domain"
	"github.com/SscSPs/property_ledger/internal/models"
)

// ToModelAuditLog converts a domain AuditLogEntry to a model AuditLog
func ToModelAuditLog(d domain.AuditLogEntry) models.AuditLog {
	return models.AuditLog{
		AuditID:       d.ID,
		Timestamp:     d.Timestamp,
		Action:        string(d.Action),
		EntityType:    string(d.EntityType),
		EntityID:      d.EntityID,
		UserID:        NullString(d.UserID),
		Reason:        NullString(d.Reason),
		PreviousState: []byte(d.PreviousState),
		NewState:      []byte(d.NewState),
	}
}

// ToDomainAuditLog converts a model AuditLog to a domain AuditLogEntry
func ToDomainAuditLog(m models.AuditLog) domain.AuditLogEntry {
	return domain.AuditLogEntry{
		ID:            m.AuditID,
		Timestamp:     m.Timestamp.UTC(),
		Action:        domain.AuditAction(m.Action),
		EntityType:    domain.AuditEntityType(m.EntityType),
		EntityID:      m.EntityID,
		UserID:        m.UserID.String,
		Reason:        m.Reason.String,
		PreviousState: RawJSON(m.PreviousState),
		NewState:      RawJSON(m.NewState),
	}
}
