package services

import (
	"context"
	"log/slog"
	"sort"

	"github.com/SscSPs/property_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/property_ledger/internal/core/ports/services"
)

type auditService struct {
	BaseService
}

// NewAuditService creates the append-only audit trail.
func NewAuditService(store portsrepo.TxStore, opts ...Option) portssvc.AuditSvc {
	return &auditService{BaseService: newBaseService(store, opts...)}
}

var _ portssvc.AuditSvc = (*auditService)(nil)

func (s *auditService) AppendAuditLog(ctx context.Context, entry domain.AuditLogEntry) (*domain.AuditLogEntry, error) {
	entry.ID = s.newID()
	entry.Timestamp = s.now().UTC()

	if err := s.repo(ctx).AppendAuditLog(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to append audit log",
			slog.String("action", string(entry.Action)),
			slog.String("entity_type", string(entry.EntityType)),
			slog.String("entity_id", entry.EntityID))
		return nil, err
	}
	return &entry, nil
}

func (s *auditService) GetAuditLog(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditLogEntry, error) {
	all, err := s.repo(ctx).ListAuditLog(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list audit log")
		return nil, err
	}

	// Walk backwards so entries sharing a timestamp keep newest-appended-first order.
	matched := make([]domain.AuditLogEntry, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		if filter.Matches(all[i]) {
			matched = append(matched, all[i])
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Timestamp.After(matched[j].Timestamp)
	})
	return matched, nil
}

func (s *auditService) GetEntityAuditChain(ctx context.Context, entityID string, entityType domain.AuditEntityType) ([]domain.AuditLogEntry, error) {
	return s.GetAuditLog(ctx, domain.AuditFilter{EntityID: entityID, EntityType: entityType})
}
