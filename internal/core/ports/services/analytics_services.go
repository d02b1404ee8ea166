package services

import (
	"context"
	"time"

	"github.com/SscSPs/property_ledger/internal/core/domain"
)

// AnalyticsSvc computes advisory figures from ledger state. It never mutates anything.
type AnalyticsSvc interface {
	// DetectLedgerAnomalies runs the anomaly rules over current account balances.
	DetectLedgerAnomalies(ctx context.Context) ([]domain.AnomalyAlert, error)

	// LedgerLiquidity compares total asset balances with total liability balances.
	LedgerLiquidity(ctx context.Context) (*domain.FinancialRatio, error)

	// AgeReceivables buckets open invoices by days overdue at asOf.
	AgeReceivables(ctx context.Context, asOf time.Time) ([]domain.AgingBucket, error)

	// SuggestAccount maps a free-text description to a likely active account, or nil.
	SuggestAccount(ctx context.Context, description string) (*domain.ChartAccount, error)
}
