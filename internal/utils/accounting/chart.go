package accounting

import (
	"sort"

	"github.com/SscSPs/property_ledger/internal/core/domain"
)

// Chart is an ordered, active-only view of the chart of accounts used for code lookups.
type Chart struct {
	active []domain.ChartAccount
}

// NewChart keeps the active accounts and orders them by sort order. Code lookups return
// the first match in that order.
func NewChart(accounts []domain.ChartAccount) Chart {
	active := make([]domain.ChartAccount, 0, len(accounts))
	for _, a := range accounts {
		if a.IsActive {
			active = append(active, a)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].SortOrder < active[j].SortOrder
	})
	return Chart{active: active}
}

// FindByCode returns the first active account with code, or nil.
func (c Chart) FindByCode(code string) *domain.ChartAccount {
	for i := range c.active {
		if c.active[i].Code == code {
			acc := c.active[i]
			return &acc
		}
	}
	return nil
}

// FirstOf returns the first code in codes that resolves to an account.
func (c Chart) FirstOf(codes ...string) *domain.ChartAccount {
	for _, code := range codes {
		if acc := c.FindByCode(code); acc != nil {
			return acc
		}
	}
	return nil
}

// Accounts returns the active accounts in lookup order.
func (c Chart) Accounts() []domain.ChartAccount {
	out := make([]domain.ChartAccount, len(c.active))
	copy(out, c.active)
	return out
}
