package repositories

import (
	"context"

	"github.com/SscSPs/property_ledger/internal/core/domain"
)

// AuditRepository is the append-only audit sink. It deliberately has no update or delete.
type AuditRepository interface {
	AppendAuditLog(ctx context.Context, entry domain.AuditLogEntry) error
	// ListAuditLog returns entries in append order.
	ListAuditLog(ctx context.Context) ([]domain.AuditLogEntry, error)
}
