package pgsql

import (
	"context"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	"github.com/SscSPs/property_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/property_ledger/internal/models"
	"github.com/SscSPs/property_ledger/internal/utils/mapping"
)

type PgxAuditRepository struct {
	BaseRepository
}

var _ portsrepo.AuditRepository = (*PgxAuditRepository)(nil)

// jsonArg passes absent state as SQL NULL rather than an empty jsonb document.
func jsonArg(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}

func (r *PgxAuditRepository) AppendAuditLog(ctx context.Context, entry domain.AuditLogEntry) error {
	m := mapping.ToModelAuditLog(entry)
	query := `
		INSERT INTO audit_log (audit_id, ts, action, entity_type, entity_id, user_id, reason, previous_state, new_state)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.db.Exec(ctx, query, m.AuditID, m.Timestamp, m.Action, m.EntityType, m.EntityID,
		m.UserID, m.Reason, jsonArg(m.PreviousState), jsonArg(m.NewState))
	if err != nil {
		return apperrors.NewAppError(500, "failed to append audit log", err)
	}
	r.touch(ctx, portsrepo.CollectionAuditLog)
	return nil
}

// ListAuditLog returns entries in append order.
func (r *PgxAuditRepository) ListAuditLog(ctx context.Context) ([]domain.AuditLogEntry, error) {
	query := `
		SELECT audit_id, ts, action, entity_type, entity_id, user_id, reason, previous_state::text, new_state::text
		FROM audit_log
		ORDER BY seq;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list audit log", err)
	}
	defer rows.Close()

	entries := make([]domain.AuditLogEntry, 0)
	for rows.Next() {
		var (
			m             models.AuditLog
			prev, current *string
		)
		if err := rows.Scan(&m.AuditID, &m.Timestamp, &m.Action, &m.EntityType, &m.EntityID,
			&m.UserID, &m.Reason, &prev, &current); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan audit log", err)
		}
		if prev != nil {
			m.PreviousState = []byte(*prev)
		}
		if current != nil {
			m.NewState = []byte(*current)
		}
		entries = append(entries, mapping.ToDomainAuditLog(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate audit log", err)
	}
	return entries, nil
}
