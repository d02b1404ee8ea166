package services

import (
	"context"
	"time"

	"github.com/SscSPs/property_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/property_ledger/internal/core/ports/services"
	"github.com/SscSPs/property_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// analyticsService only reads. Every figure it returns is advisory.
type analyticsService struct {
	BaseService
	balances portssvc.JournalCalculatorSvc
}

// NewAnalyticsService creates the analytics service.
func NewAnalyticsService(store portsrepo.TxStore, balances portssvc.JournalCalculatorSvc, opts ...Option) portssvc.AnalyticsSvc {
	return &analyticsService{
		BaseService: newBaseService(store, opts...),
		balances:    balances,
	}
}

var _ portssvc.AnalyticsSvc = (*analyticsService)(nil)

func (s *analyticsService) accountsAndBalances(ctx context.Context) ([]domain.ChartAccount, map[string]decimal.Decimal, error) {
	accounts, err := s.repo(ctx).ListAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts for analytics")
		return nil, nil, err
	}
	balances, err := s.balances.GetAccountBalances(ctx)
	if err != nil {
		return nil, nil, err
	}
	return accounts, balances, nil
}

func (s *analyticsService) DetectLedgerAnomalies(ctx context.Context) ([]domain.AnomalyAlert, error) {
	accounts, balances, err := s.accountsAndBalances(ctx)
	if err != nil {
		return nil, err
	}
	sortAccounts(accounts)
	return accounting.DetectAnomalies(accounts, func(id string) decimal.Decimal {
		return balances[id]
	}), nil
}

func (s *analyticsService) LedgerLiquidity(ctx context.Context) (*domain.FinancialRatio, error) {
	accounts, balances, err := s.accountsAndBalances(ctx)
	if err != nil {
		return nil, err
	}
	assets, liabilities := decimal.Zero, decimal.Zero
	for _, a := range accounts {
		switch a.Type {
		case domain.Asset:
			assets = assets.Add(balances[a.ID])
		case domain.Liability:
			liabilities = liabilities.Add(balances[a.ID])
		}
	}
	ratio := accounting.CalculateLiquidityRatio(assets, liabilities)
	return &ratio, nil
}

// receivableOutstanding reports whether an invoice still has money to collect.
func receivableOutstanding(d domain.AccountingDocument) bool {
	if d.Type != domain.DocInvoice || d.DueDate == nil {
		return false
	}
	switch d.Status {
	case domain.StatusPaid, domain.StatusCancelled, domain.StatusDraft:
		return false
	}
	return true
}

func (s *analyticsService) AgeReceivables(ctx context.Context, asOf time.Time) ([]domain.AgingBucket, error) {
	docs, err := s.repo(ctx).ListDocuments(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list documents for aging")
		return nil, err
	}
	items := make([]domain.AgingItem, 0, len(docs))
	for _, d := range docs {
		if receivableOutstanding(d) {
			items = append(items, domain.AgingItem{Amount: d.TotalAmount, DueDate: *d.DueDate})
		}
	}
	return accounting.CalculateAging(items, asOf), nil
}

func (s *analyticsService) SuggestAccount(ctx context.Context, description string) (*domain.ChartAccount, error) {
	accounts, err := s.repo(ctx).ListAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts for suggestion")
		return nil, err
	}
	return accounting.SuggestAccount(description, accounts), nil
}
