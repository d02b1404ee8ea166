package accounting_test

import (
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	"github.com/SscSPs/property_ledger/internal/core/domain"
	"github.com/SscSPs/property_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func line(account, debit, credit string) domain.JournalLine {
	return domain.JournalLine{AccountID: account, Debit: d(debit), Credit: d(credit)}
}

func TestValidateJournalBalance(t *testing.T) {
	tests := []struct {
		name       string
		lines      []domain.JournalLine
		wantDebit  string
		wantErr    error
		unbalanced bool
	}{
		{
			name:      "balanced",
			lines:     []domain.JournalLine{line("a", "100", "0"), line("b", "0", "100")},
			wantDebit: "100",
		},
		{
			name:      "within tolerance",
			lines:     []domain.JournalLine{line("a", "100.005", "0"), line("b", "0", "100")},
			wantDebit: "100.01",
		},
		{
			name:       "just over tolerance",
			lines:      []domain.JournalLine{line("a", "100.02", "0"), line("b", "0", "100")},
			wantErr:    apperrors.ErrUnbalancedEntry,
			unbalanced: true,
		},
		{
			name:    "negative amount",
			lines:   []domain.JournalLine{line("a", "-5", "0"), line("b", "0", "-5")},
			wantErr: apperrors.ErrValidation,
		},
		{
			name:    "missing account",
			lines:   []domain.JournalLine{line("", "5", "0"), line("b", "0", "5")},
			wantErr: apperrors.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			debit, credit, err := accounting.ValidateJournalBalance(tt.lines)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				var ue *apperrors.UnbalancedEntryError
				assert.Equal(t, tt.unbalanced, errors.As(err, &ue))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDebit, debit.String())
			assert.True(t, credit.LessThanOrEqual(debit))
		})
	}
}

func TestRoundMoney_HalfAwayFromZero(t *testing.T) {
	assert.Equal(t, "0.13", accounting.RoundMoney(d("0.125")).String())
	assert.Equal(t, "-0.13", accounting.RoundMoney(d("-0.125")).String())
	assert.Equal(t, "10", accounting.RoundMoney(d("9.999")).String())
}

func TestCalculateSignedAmount(t *testing.T) {
	l := line("a", "30", "10")
	for _, typ := range []domain.AccountType{domain.Asset, domain.Expense} {
		got, err := accounting.CalculateSignedAmount(l, typ)
		require.NoError(t, err)
		assert.Equal(t, "20", got.String(), string(typ))
	}
	for _, typ := range []domain.AccountType{domain.Liability, domain.Equity, domain.Revenue} {
		got, err := accounting.CalculateSignedAmount(l, typ)
		require.NoError(t, err)
		assert.Equal(t, "-20", got.String(), string(typ))
	}
	_, err := accounting.CalculateSignedAmount(l, "OTHER")
	assert.Error(t, err)
}

func TestCountsTowardBalance(t *testing.T) {
	assert.False(t, accounting.CountsTowardBalance(domain.StatusDraft))
	assert.False(t, accounting.CountsTowardBalance(domain.StatusCancelled))
	assert.True(t, accounting.CountsTowardBalance(domain.StatusPending))
	assert.True(t, accounting.CountsTowardBalance(domain.StatusApproved))
	assert.True(t, accounting.CountsTowardBalance(domain.StatusPaid))
}

func TestChart_Lookups(t *testing.T) {
	chart := accounting.NewChart([]domain.ChartAccount{
		{ID: "late", Code: "1000", IsActive: true, SortOrder: 20},
		{ID: "early", Code: "1000", IsActive: true, SortOrder: 10},
		{ID: "off", Code: "1100", IsActive: false},
	})

	acc := chart.FindByCode("1000")
	require.NotNil(t, acc)
	assert.Equal(t, "early", acc.ID)
	assert.Nil(t, chart.FindByCode("1100"), "inactive accounts are invisible")
	assert.Nil(t, chart.FirstOf("1100", "9999"))
	assert.Equal(t, "early", chart.FirstOf("1100", "1000").ID)
	assert.Len(t, chart.Accounts(), 2)
}

func TestDetectAnomalies(t *testing.T) {
	accounts := []domain.ChartAccount{
		{ID: "cash", Code: "1000", Type: domain.Asset},
		{ID: "payables", Code: "2000", Type: domain.Liability},
		{ID: "revenue", Code: "4000", Type: domain.Revenue},
		{ID: "bank", Code: "1100", Type: domain.Asset},
	}
	balances := map[string]decimal.Decimal{
		"cash":     d("-0.02"),
		"payables": d("-5"),
		"revenue":  d("-100"),
		"bank":     d("-0.01"),
	}

	alerts := accounting.DetectAnomalies(accounts, func(id string) decimal.Decimal { return balances[id] })
	require.Len(t, alerts, 2)
	assert.Equal(t, "cash", alerts[0].AccountID)
	assert.Equal(t, domain.SeverityHigh, alerts[0].Severity)
	assert.Equal(t, "payables", alerts[1].AccountID)
	assert.Equal(t, domain.SeverityMedium, alerts[1].Severity)
	assert.Contains(t, alerts[1].MessageEn, "2000")
}

func TestCalculateLiquidityRatio(t *testing.T) {
	tests := []struct {
		assets, liabilities string
		wantValue, wantBand string
	}{
		{"150", "100", "1.5", "Strong"},
		{"100", "100", "1", "Adequate"},
		{"99", "100", "0.99", "Weak"},
		{"100", "0", "0", "Weak"},
	}
	for _, tt := range tests {
		got := accounting.CalculateLiquidityRatio(d(tt.assets), d(tt.liabilities))
		assert.Equal(t, tt.wantValue, got.Value.String(), tt.assets+"/"+tt.liabilities)
		assert.Equal(t, tt.wantBand, got.Interpretation, tt.assets+"/"+tt.liabilities)
	}
}

func TestCalculateAging_Boundaries(t *testing.T) {
	asOf := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	due := func(y int, m time.Month, day int) time.Time { return time.Date(y, m, day, 0, 0, 0, 0, time.UTC) }

	buckets := accounting.CalculateAging([]domain.AgingItem{
		{Amount: d("1"), DueDate: due(2025, 6, 30)},
		{Amount: d("2"), DueDate: due(2025, 5, 31)},
		{Amount: d("4"), DueDate: due(2025, 5, 30)},
		{Amount: d("8"), DueDate: due(2025, 4, 1)},
		{Amount: d("16"), DueDate: due(2025, 3, 1)},
	}, asOf)

	require.Len(t, buckets, 5)
	want := []struct {
		label  string
		amount string
	}{
		{accounting.AgingCurrent, "1"},
		{accounting.Aging1To30, "2"},
		{accounting.Aging31To60, "4"},
		{accounting.Aging61To90, "8"},
		{accounting.AgingOver90, "16"},
	}
	for i, w := range want {
		assert.Equal(t, w.label, buckets[i].Label)
		assert.Equal(t, w.amount, buckets[i].Amount.String(), w.label)
		assert.Equal(t, 1, buckets[i].Count, w.label)
	}
}

func TestDaysOverdue_FloorsPartialDays(t *testing.T) {
	due := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, accounting.DaysOverdue(due, due.Add(23*time.Hour)))
	assert.Equal(t, 1, accounting.DaysOverdue(due, due.Add(25*time.Hour)))
	assert.Equal(t, -1, accounting.DaysOverdue(due, due.Add(-time.Hour)))
}

func TestSuggestAccount(t *testing.T) {
	accounts := []domain.ChartAccount{
		{ID: "cash", Code: domain.CodeCash, IsActive: true},
		{ID: "bank", Code: domain.CodeBank, IsActive: true},
		{ID: "exp", Code: domain.CodeExpense, IsActive: true},
	}
	tests := map[string]string{
		"Cash sale":              "cash",
		"تحويل بنكي":             "bank",
		"Elevator maintenance":   "exp",
		"cheque from tenant":     "",
		"":                       "",
		"completely unknown foo": "",
	}
	for desc, want := range tests {
		got := accounting.SuggestAccount(desc, accounts)
		if want == "" {
			assert.Nil(t, got, desc)
			continue
		}
		require.NotNil(t, got, desc)
		assert.Equal(t, want, got.ID, desc)
	}
}
