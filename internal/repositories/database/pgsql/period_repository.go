package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	"github.com/SscSPs/property_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/property_ledger/internal/models"
	"github.com/SscSPs/property_ledger/internal/utils/mapping"
)

type PgxPeriodRepository struct {
	BaseRepository
}

var _ portsrepo.PeriodRepositoryFacade = (*PgxPeriodRepository)(nil)

// ListPeriods returns periods in insertion order.
func (r *PgxPeriodRepository) ListPeriods(ctx context.Context) ([]domain.FiscalPeriod, error) {
	query := `
		SELECT period_id, code, start_date, end_date, is_locked, closed_at, closed_by, created_at, updated_at
		FROM fiscal_periods
		ORDER BY seq;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list fiscal periods", err)
	}
	defer rows.Close()

	periods := make([]domain.FiscalPeriod, 0)
	for rows.Next() {
		var m models.FiscalPeriod
		if err := rows.Scan(&m.PeriodID, &m.Code, &m.StartDate, &m.EndDate, &m.IsLocked,
			&m.ClosedAt, &m.ClosedBy, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan fiscal period", err)
		}
		periods = append(periods, mapping.ToDomainFiscalPeriod(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate fiscal periods", err)
	}
	return periods, nil
}

func (r *PgxPeriodRepository) InsertPeriod(ctx context.Context, period domain.FiscalPeriod) error {
	m := mapping.ToModelFiscalPeriod(period)
	query := `
		INSERT INTO fiscal_periods (period_id, code, start_date, end_date, is_locked, closed_at, closed_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.db.Exec(ctx, query, m.PeriodID, m.Code, m.StartDate, m.EndDate, m.IsLocked,
		m.ClosedAt, m.ClosedBy, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: fiscal period %s", apperrors.ErrDuplicate, m.PeriodID)
		}
		return apperrors.NewAppError(500, "failed to insert fiscal period "+m.PeriodID, err)
	}
	r.touch(ctx, portsrepo.CollectionPeriods)
	return nil
}

func (r *PgxPeriodRepository) UpdatePeriod(ctx context.Context, period domain.FiscalPeriod) error {
	m := mapping.ToModelFiscalPeriod(period)
	query := `
		UPDATE fiscal_periods
		SET code = $2, start_date = $3, end_date = $4, is_locked = $5, closed_at = $6, closed_by = $7, updated_at = $8
		WHERE period_id = $1;
	`
	tag, err := r.db.Exec(ctx, query, m.PeriodID, m.Code, m.StartDate, m.EndDate, m.IsLocked,
		m.ClosedAt, m.ClosedBy, m.UpdatedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update fiscal period "+m.PeriodID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: fiscal period %s", apperrors.ErrNotFound, m.PeriodID)
	}
	r.touch(ctx, portsrepo.CollectionPeriods)
	return nil
}
