package accounting

import (
	"fmt"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	"github.com/SscSPs/property_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of decimal places stored for monetary totals.
const MoneyPlaces = 2

// BalanceTolerance is the largest absolute debit/credit difference accepted as balanced.
var BalanceTolerance = decimal.New(1, -MoneyPlaces)

// RoundMoney rounds d to 2 places, half away from zero.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// SumLines returns the raw debit and credit totals of lines.
func SumLines(lines []domain.JournalLine) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, l := range lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	return debit, credit
}

// ValidateJournalBalance checks the double-entry invariant and returns the rounded totals.
// Negative amounts and lines without an account are validation errors.
func ValidateJournalBalance(lines []domain.JournalLine) (decimal.Decimal, decimal.Decimal, error) {
	for i, l := range lines {
		if l.AccountID == "" {
			return decimal.Zero, decimal.Zero, fmt.Errorf("%w: line %d has no account", apperrors.ErrValidation, i+1)
		}
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return decimal.Zero, decimal.Zero, fmt.Errorf("%w: line %d has a negative amount", apperrors.ErrValidation, i+1)
		}
	}

	debit, credit := SumLines(lines)
	if debit.Sub(credit).Abs().GreaterThan(BalanceTolerance) {
		return decimal.Zero, decimal.Zero, &apperrors.UnbalancedEntryError{TotalDebit: debit, TotalCredit: credit}
	}
	return RoundMoney(debit), RoundMoney(credit), nil
}

// CalculateSignedAmount returns the effect of a line on its account's natural balance.
// ASSET and EXPENSE accounts grow with debits; LIABILITY, EQUITY and REVENUE grow with credits.
func CalculateSignedAmount(line domain.JournalLine, accountType domain.AccountType) (decimal.Decimal, error) {
	net := line.Debit.Sub(line.Credit)
	switch accountType {
	case domain.Asset, domain.Expense:
		return net, nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return net.Neg(), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s' encountered for account ID %s", accountType, line.AccountID)
	}
}

// CountsTowardBalance reports whether entries in status s affect account balances.
func CountsTowardBalance(s domain.EntryStatus) bool {
	return s != domain.StatusDraft && s != domain.StatusCancelled
}
