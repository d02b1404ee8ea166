package accounting

import (
	"fmt"
	"math"
	"regexp"
	"time"

	"github.com/SscSPs/property_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	negativeThreshold = decimal.New(-1, -2)
	strongLiquidity   = decimal.NewFromFloat(1.5)
	adequateLiquidity = decimal.NewFromInt(1)
)

// DetectAnomalies flags ASSET accounts (HIGH) and LIABILITY accounts (MEDIUM) whose balance
// is below -0.01. Other account types are not sign-checked.
func DetectAnomalies(accounts []domain.ChartAccount, getBalance func(accountID string) decimal.Decimal) []domain.AnomalyAlert {
	alerts := make([]domain.AnomalyAlert, 0)
	for _, acc := range accounts {
		var severity domain.AlertSeverity
		switch acc.Type {
		case domain.Asset:
			severity = domain.SeverityHigh
		case domain.Liability:
			severity = domain.SeverityMedium
		default:
			continue
		}

		balance := getBalance(acc.ID)
		if !balance.LessThan(negativeThreshold) {
			continue
		}
		alerts = append(alerts, domain.AnomalyAlert{
			Type:        domain.AlertNegativeBalance,
			Severity:    severity,
			AccountID:   acc.ID,
			AccountCode: acc.Code,
			Balance:     RoundMoney(balance),
			MessageAr:   fmt.Sprintf("رصيد سالب غير متوقع في الحساب %s - %s", acc.Code, acc.NameAr),
			MessageEn:   fmt.Sprintf("Unexpected negative balance on account %s - %s", acc.Code, acc.NameEn),
		})
	}
	return alerts
}

// CalculateLiquidityRatio divides current assets by current liabilities. The ratio is 0 when
// there are no liabilities.
func CalculateLiquidityRatio(currentAssets, currentLiabilities decimal.Decimal) domain.FinancialRatio {
	ratio := decimal.Zero
	if !currentLiabilities.IsZero() {
		ratio = currentAssets.Div(currentLiabilities)
	}

	interpretation := "Weak"
	switch {
	case ratio.GreaterThanOrEqual(strongLiquidity):
		interpretation = "Strong"
	case ratio.GreaterThanOrEqual(adequateLiquidity):
		interpretation = "Adequate"
	}

	return domain.FinancialRatio{
		Name:           "Liquidity Ratio",
		Value:          RoundMoney(ratio),
		Interpretation: interpretation,
	}
}

// Aging bucket labels, in report order.
const (
	AgingCurrent = "current"
	Aging1To30   = "1-30"
	Aging31To60  = "31-60"
	Aging61To90  = "61-90"
	AgingOver90  = "90+"
)

const millisPerDay = int64(24 * time.Hour / time.Millisecond)

// DaysOverdue is the whole-day floor of asOf minus dueDate.
func DaysOverdue(dueDate, asOf time.Time) int {
	ms := asOf.UnixMilli() - dueDate.UnixMilli()
	return int(math.Floor(float64(ms) / float64(millisPerDay)))
}

// CalculateAging sums items into the five fixed overdue buckets.
func CalculateAging(items []domain.AgingItem, asOf time.Time) []domain.AgingBucket {
	buckets := make([]domain.AgingBucket, 0, 5)
	for _, label := range []string{AgingCurrent, Aging1To30, Aging31To60, Aging61To90, AgingOver90} {
		buckets = append(buckets, domain.AgingBucket{Label: label, Amount: decimal.Zero})
	}

	for _, item := range items {
		days := DaysOverdue(item.DueDate, asOf)
		var idx int
		switch {
		case days <= 0:
			idx = 0
		case days <= 30:
			idx = 1
		case days <= 60:
			idx = 2
		case days <= 90:
			idx = 3
		default:
			idx = 4
		}
		buckets[idx].Amount = buckets[idx].Amount.Add(item.Amount)
		buckets[idx].Count++
	}
	return buckets
}

type keywordRule struct {
	pattern *regexp.Regexp
	code    string
}

// Checked in order; the first rule that matches and resolves to an active account wins.
var suggestionRules = []keywordRule{
	{regexp.MustCompile(`(?i)cheque|check|شيك`), domain.CodeChequesUnderCollection},
	{regexp.MustCompile(`(?i)cash|نقد|صندوق|كاش`), domain.CodeCash},
	{regexp.MustCompile(`(?i)bank|transfer|بنك|مصرف|تحويل`), domain.CodeBank},
	{regexp.MustCompile(`(?i)\bvat\b|tax|ضريبة|القيمة المضافة`), domain.CodeVAT},
	{regexp.MustCompile(`(?i)deposit|تأمين|عربون|وديعة`), domain.CodeDepositsReceived},
	{regexp.MustCompile(`(?i)supplier|vendor|payable|مورد|دائن`), domain.CodePayables},
	{regexp.MustCompile(`(?i)rent|commission|sale|revenue|income|إيجار|ايجار|عمولة|مبيعات|إيراد|ايراد`), domain.CodeRevenue},
	{regexp.MustCompile(`(?i)expense|maintenance|salar|utilit|مصروف|مصاريف|صيانة|رواتب|كهرباء`), domain.CodeExpense},
}

// SuggestAccount maps free text to a likely account. It is a classification aid, not a validator.
func SuggestAccount(description string, accounts []domain.ChartAccount) *domain.ChartAccount {
	if description == "" {
		return nil
	}
	chart := NewChart(accounts)
	for _, rule := range suggestionRules {
		if !rule.pattern.MatchString(description) {
			continue
		}
		if acc := chart.FindByCode(rule.code); acc != nil {
			return acc
		}
	}
	return nil
}
