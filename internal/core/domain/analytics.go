package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AlertSeverity ranks an anomaly alert.
type AlertSeverity string

const (
	SeverityHigh   AlertSeverity = "HIGH"
	SeverityMedium AlertSeverity = "MEDIUM"
	SeverityLow    AlertSeverity = "LOW"
)

// AlertType classifies an anomaly alert.
type AlertType string

const AlertNegativeBalance AlertType = "NEGATIVE_BALANCE"

// AnomalyAlert is an advisory finding for a human to review. It never triggers action by itself.
type AnomalyAlert struct {
	Type        AlertType       `json:"type"`
	Severity    AlertSeverity   `json:"severity"`
	AccountID   string          `json:"accountId"`
	AccountCode string          `json:"accountCode"`
	Balance     decimal.Decimal `json:"balance"`
	MessageAr   string          `json:"messageAr"`
	MessageEn   string          `json:"messageEn"`
}

// FinancialRatio is a computed ratio with a qualitative band.
type FinancialRatio struct {
	Name           string          `json:"name"`
	Value          decimal.Decimal `json:"value"`
	Interpretation string          `json:"interpretation"`
}

// AgingItem is an outstanding amount with its due date.
type AgingItem struct {
	Amount  decimal.Decimal `json:"amount"`
	DueDate time.Time       `json:"dueDate"`
}

// AgingBucket sums the items whose days overdue fall in its range.
type AgingBucket struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
	Count  int             `json:"count"`
}
