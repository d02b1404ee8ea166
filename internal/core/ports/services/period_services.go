package services

import (
	"context"
	"time"

	"github.com/SscSPs/property_ledger/internal/core/domain"
)

// PeriodReaderSvc defines read operations for fiscal periods
type PeriodReaderSvc interface {
	// GetFiscalPeriods returns all periods sorted by start date ascending.
	GetFiscalPeriods(ctx context.Context) ([]domain.FiscalPeriod, error)

	// GetPeriodByDate returns the first period containing date, or nil.
	GetPeriodByDate(ctx context.Context, date time.Time) (*domain.FiscalPeriod, error)

	// IsPeriodLocked is false when no period covers date.
	IsPeriodLocked(ctx context.Context, date time.Time) (bool, error)
}

// PeriodWriterSvc defines write operations for fiscal periods. There is no unlock.
type PeriodWriterSvc interface {
	// LockPeriod is idempotent: locking a locked period returns it unchanged and writes no audit record.
	LockPeriod(ctx context.Context, periodID string, userID string) (*domain.FiscalPeriod, error)

	// CreateFiscalPeriod does not check for overlaps with existing periods.
	CreateFiscalPeriod(ctx context.Context, startDate, endDate time.Time, code string, userID string) (*domain.FiscalPeriod, error)

	// EnsureDefaultPeriods creates a period for the current calendar year when none exist.
	// It returns the created period, or nil when periods were already present.
	EnsureDefaultPeriods(ctx context.Context) (*domain.FiscalPeriod, error)
}

// PeriodSvcFacade combines all period-related service interfaces
type PeriodSvcFacade interface {
	PeriodReaderSvc
	PeriodWriterSvc
}
