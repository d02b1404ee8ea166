package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	"github.com/SscSPs/property_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/property_ledger/internal/core/ports/services"
)

// chartEntityID is the audit entity id used for whole-chart replacements.
const chartEntityID = "chart-of-accounts"

type chartState struct {
	Accounts int      `json:"accounts"`
	Active   int      `json:"active"`
	Codes    []string `json:"codes"`
}

func chartStateOf(accounts []domain.ChartAccount) chartState {
	st := chartState{Accounts: len(accounts), Codes: make([]string, 0, len(accounts))}
	for _, a := range accounts {
		if a.IsActive {
			st.Active++
		}
		st.Codes = append(st.Codes, a.Code)
	}
	return st
}

type accountService struct {
	BaseService
	audit portssvc.AuditSvc
}

// NewAccountService creates the chart-of-accounts service.
func NewAccountService(store portsrepo.TxStore, audit portssvc.AuditSvc, opts ...Option) portssvc.AccountSvcFacade {
	return &accountService{
		BaseService: newBaseService(store, opts...),
		audit:       audit,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func sortAccounts(accounts []domain.ChartAccount) {
	sort.SliceStable(accounts, func(i, j int) bool {
		if accounts[i].SortOrder != accounts[j].SortOrder {
			return accounts[i].SortOrder < accounts[j].SortOrder
		}
		return accounts[i].Code < accounts[j].Code
	})
}

func (s *accountService) ListAccounts(ctx context.Context) ([]domain.ChartAccount, error) {
	accounts, err := s.repo(ctx).ListAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, err
	}
	sortAccounts(accounts)
	return accounts, nil
}

// validateChart enforces that every account is well formed and that active codes are unique.
func validateChart(accounts []domain.ChartAccount) error {
	activeCodes := make(map[string]bool, len(accounts))
	ids := make(map[string]bool, len(accounts))
	for i, a := range accounts {
		if a.Code == "" {
			return fmt.Errorf("%w: account %d has no code", apperrors.ErrValidation, i+1)
		}
		if !a.Type.IsValid() {
			return fmt.Errorf("%w: account %s has unknown type %q", apperrors.ErrValidation, a.Code, a.Type)
		}
		if a.ID != "" {
			if ids[a.ID] {
				return fmt.Errorf("%w: account id %s appears twice", apperrors.ErrDuplicate, a.ID)
			}
			ids[a.ID] = true
		}
		if !a.IsActive {
			continue
		}
		if activeCodes[a.Code] {
			return fmt.Errorf("%w: active account code %s appears twice", apperrors.ErrDuplicate, a.Code)
		}
		activeCodes[a.Code] = true
	}
	return nil
}

func (s *accountService) replace(ctx context.Context, st portsrepo.Store, accounts []domain.ChartAccount, userID string) ([]domain.ChartAccount, error) {
	if err := validateChart(accounts); err != nil {
		return nil, err
	}
	previous, err := st.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	createdAt := make(map[string]domain.Timestamps, len(previous))
	for _, p := range previous {
		createdAt[p.ID] = p.Timestamps
	}

	now := s.now().UTC()
	next := make([]domain.ChartAccount, len(accounts))
	for i, a := range accounts {
		if a.ID == "" {
			a.ID = s.newID()
		}
		a.CreatedAt = now
		if ts, ok := createdAt[a.ID]; ok {
			a.CreatedAt = ts.CreatedAt
		}
		a.UpdatedAt = now
		next[i] = a
	}
	sortAccounts(next)

	if err := st.ReplaceAccounts(ctx, next); err != nil {
		return nil, err
	}
	if _, err := s.audit.AppendAuditLog(ctx, domain.AuditLogEntry{
		Action:        domain.ActionUpdate,
		EntityType:    domain.EntityAccount,
		EntityID:      chartEntityID,
		UserID:        userID,
		Reason:        "Chart of accounts replaced",
		PreviousState: snapshot(chartStateOf(previous)),
		NewState:      snapshot(chartStateOf(next)),
	}); err != nil {
		return nil, err
	}
	return next, nil
}

func (s *accountService) ReplaceChart(ctx context.Context, accounts []domain.ChartAccount, userID string) ([]domain.ChartAccount, error) {
	var result []domain.ChartAccount
	err := s.runInTx(ctx, func(ctx context.Context, st portsrepo.Store) error {
		var err error
		result, err = s.replace(ctx, st, accounts, userID)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to replace chart of accounts")
		return nil, err
	}
	s.LogInfo(ctx, "Chart of accounts replaced", slog.Int("accounts", len(result)))
	return result, nil
}

func (s *accountService) SeedChart(ctx context.Context, accounts []domain.ChartAccount, userID string) (bool, error) {
	seeded := false
	err := s.runInTx(ctx, func(ctx context.Context, st portsrepo.Store) error {
		existing, err := st.ListAccounts(ctx)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return nil
		}
		if _, err := s.replace(ctx, st, accounts, userID); err != nil {
			return err
		}
		seeded = true
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to seed chart of accounts")
		return false, err
	}
	if seeded {
		s.LogInfo(ctx, "Chart of accounts seeded", slog.Int("accounts", len(accounts)))
	}
	return seeded, nil
}
