package services

import (
	"context"

	"github.com/SscSPs/property_ledger/internal/core/domain"
)

// AuditSvc is the append-only audit trail.
type AuditSvc interface {
	// AppendAuditLog assigns id and timestamp and stores the record.
	AppendAuditLog(ctx context.Context, entry domain.AuditLogEntry) (*domain.AuditLogEntry, error)

	// GetAuditLog returns matching records, newest first.
	GetAuditLog(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditLogEntry, error)

	// GetEntityAuditChain returns everything recorded against one entity, newest first.
	GetEntityAuditChain(ctx context.Context, entityID string, entityType domain.AuditEntityType) ([]domain.AuditLogEntry, error)
}
