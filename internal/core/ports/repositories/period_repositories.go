package repositories

import (
	"context"

	"github.com/SscSPs/property_ledger/internal/core/domain"
)

// PeriodReader defines read operations for fiscal periods
type PeriodReader interface {
	// ListPeriods returns periods in insertion order. Callers sort as needed.
	ListPeriods(ctx context.Context) ([]domain.FiscalPeriod, error)
}

// PeriodWriter defines write operations for fiscal periods
type PeriodWriter interface {
	InsertPeriod(ctx context.Context, period domain.FiscalPeriod) error
	// UpdatePeriod returns apperrors.ErrNotFound when the period does not exist.
	UpdatePeriod(ctx context.Context, period domain.FiscalPeriod) error
}

// PeriodRepositoryFacade combines all period-related repository interfaces
type PeriodRepositoryFacade interface {
	PeriodReader
	PeriodWriter
}
