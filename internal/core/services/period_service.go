package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	"github.com/SscSPs/property_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/property_ledger/internal/core/ports/services"
	"github.com/SscSPs/property_ledger/internal/platform/metrics"
)

type periodStateSnapshot struct {
	Code      string     `json:"code"`
	StartDate string     `json:"startDate"`
	EndDate   string     `json:"endDate"`
	IsLocked  bool       `json:"isLocked"`
	ClosedAt  *time.Time `json:"closedAt,omitempty"`
	ClosedBy  string     `json:"closedBy,omitempty"`
}

func periodState(p domain.FiscalPeriod) periodStateSnapshot {
	return periodStateSnapshot{
		Code:      p.Code,
		StartDate: p.StartDate.Format(domain.DateLayout),
		EndDate:   p.EndDate.Format(domain.DateLayout),
		IsLocked:  p.IsLocked,
		ClosedAt:  p.ClosedAt,
		ClosedBy:  p.ClosedBy,
	}
}

type periodService struct {
	BaseService
	audit portssvc.AuditSvc
}

// NewPeriodService creates the fiscal period registry.
func NewPeriodService(store portsrepo.TxStore, audit portssvc.AuditSvc, opts ...Option) portssvc.PeriodSvcFacade {
	return &periodService{
		BaseService: newBaseService(store, opts...),
		audit:       audit,
	}
}

var _ portssvc.PeriodSvcFacade = (*periodService)(nil)

func (s *periodService) GetFiscalPeriods(ctx context.Context) ([]domain.FiscalPeriod, error) {
	periods, err := s.repo(ctx).ListPeriods(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list fiscal periods")
		return nil, err
	}
	sort.SliceStable(periods, func(i, j int) bool {
		return periods[i].StartDate.Before(periods[j].StartDate)
	})
	return periods, nil
}

func (s *periodService) GetPeriodByDate(ctx context.Context, date time.Time) (*domain.FiscalPeriod, error) {
	periods, err := s.GetFiscalPeriods(ctx)
	if err != nil {
		return nil, err
	}
	for i := range periods {
		if periods[i].Contains(date) {
			p := periods[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (s *periodService) IsPeriodLocked(ctx context.Context, date time.Time) (bool, error) {
	p, err := s.GetPeriodByDate(ctx, date)
	if err != nil {
		return false, err
	}
	return p != nil && p.IsLocked, nil
}

func (s *periodService) LockPeriod(ctx context.Context, periodID string, userID string) (*domain.FiscalPeriod, error) {
	var (
		result    *domain.FiscalPeriod
		lockedNow bool
	)
	err := s.runInTx(ctx, func(ctx context.Context, st portsrepo.Store) error {
		periods, err := st.ListPeriods(ctx)
		if err != nil {
			return err
		}
		var current *domain.FiscalPeriod
		for i := range periods {
			if periods[i].ID == periodID {
				current = &periods[i]
				break
			}
		}
		if current == nil {
			return fmt.Errorf("%w: fiscal period %s", apperrors.ErrNotFound, periodID)
		}
		if current.IsLocked {
			result = current
			return nil
		}

		before := periodState(*current)
		now := s.now().UTC()
		locked := *current
		locked.IsLocked = true
		locked.ClosedAt = &now
		locked.ClosedBy = userID
		locked.UpdatedAt = now
		if err := st.UpdatePeriod(ctx, locked); err != nil {
			return err
		}

		if _, err := s.audit.AppendAuditLog(ctx, domain.AuditLogEntry{
			Action:        domain.ActionPeriodLock,
			EntityType:    domain.EntityPeriod,
			EntityID:      locked.ID,
			UserID:        userID,
			Reason:        fmt.Sprintf("Period %s locked", locked.Code),
			PreviousState: snapshot(before),
			NewState:      snapshot(periodState(locked)),
		}); err != nil {
			return err
		}
		result = &locked
		lockedNow = true
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to lock fiscal period", slog.String("period_id", periodID))
		return nil, err
	}

	if lockedNow {
		metrics.PeriodLocks.Inc()
		s.LogInfo(ctx, "Fiscal period locked",
			slog.String("period_id", result.ID),
			slog.String("code", result.Code),
			slog.String("user_id", userID))
	}
	return result, nil
}

func (s *periodService) CreateFiscalPeriod(ctx context.Context, startDate, endDate time.Time, code string, userID string) (*domain.FiscalPeriod, error) {
	start, end := domain.NormalizeDate(startDate), domain.NormalizeDate(endDate)
	if start.IsZero() || end.IsZero() {
		return nil, fmt.Errorf("%w: start and end dates are required", apperrors.ErrValidation)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date %s is before start date %s",
			apperrors.ErrValidation, end.Format(domain.DateLayout), start.Format(domain.DateLayout))
	}
	if code == "" {
		code = domain.FiscalYearCode(start.Year())
	}

	var created domain.FiscalPeriod
	err := s.runInTx(ctx, func(ctx context.Context, st portsrepo.Store) error {
		now := s.now().UTC()
		created = domain.FiscalPeriod{
			ID:         s.newID(),
			Code:       code,
			StartDate:  start,
			EndDate:    end,
			Timestamps: domain.Timestamps{CreatedAt: now, UpdatedAt: now},
		}
		if err := st.InsertPeriod(ctx, created); err != nil {
			return err
		}
		_, err := s.audit.AppendAuditLog(ctx, domain.AuditLogEntry{
			Action:     domain.ActionCreate,
			EntityType: domain.EntityPeriod,
			EntityID:   created.ID,
			UserID:     userID,
			NewState:   snapshot(periodState(created)),
		})
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create fiscal period", slog.String("code", code))
		return nil, err
	}

	s.LogInfo(ctx, "Fiscal period created",
		slog.String("period_id", created.ID),
		slog.String("code", created.Code))
	return &created, nil
}

func (s *periodService) EnsureDefaultPeriods(ctx context.Context) (*domain.FiscalPeriod, error) {
	var created *domain.FiscalPeriod
	err := s.runInTx(ctx, func(ctx context.Context, st portsrepo.Store) error {
		periods, err := st.ListPeriods(ctx)
		if err != nil {
			return err
		}
		if len(periods) > 0 {
			return nil
		}
		year := s.now().UTC().Year()
		start, end := domain.CalendarYear(year)
		created, err = s.CreateFiscalPeriod(ctx, start, end, domain.FiscalYearCode(year), "")
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
