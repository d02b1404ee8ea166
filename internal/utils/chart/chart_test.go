package chart_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	"github.com/SscSPs/property_ledger/internal/core/domain"
	"github.com/SscSPs/property_ledger/internal/utils/chart"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_HasPostingCodes(t *testing.T) {
	accounts, err := chart.Default()
	require.NoError(t, err)
	require.Len(t, accounts, 10)

	codes := make(map[string]domain.AccountType)
	for _, a := range accounts {
		assert.True(t, a.IsActive, a.Code)
		codes[a.Code] = a.Type
	}
	for code, typ := range map[string]domain.AccountType{
		domain.CodeCash:                   domain.Asset,
		domain.CodeBank:                   domain.Asset,
		domain.CodeChequesUnderCollection: domain.Asset,
		domain.CodePayables:               domain.Liability,
		domain.CodeDepositsReceived:       domain.Liability,
		domain.CodeVAT:                    domain.Liability,
		"3000":                            domain.Equity,
		domain.CodeRevenue:                domain.Revenue,
		domain.CodeRevenueAlt:             domain.Revenue,
		domain.CodeExpense:                domain.Expense,
	} {
		assert.Equal(t, typ, codes[code], code)
	}
}

func TestParse(t *testing.T) {
	accounts, err := chart.Parse(strings.NewReader(`
[[account]]
code = "6000"
name_en = "Marketing"
type = "expense"
active = false
sort_order = 5
`))
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "acc-6000", accounts[0].ID)
	assert.Equal(t, domain.Expense, accounts[0].Type)
	assert.False(t, accounts[0].IsActive)
	assert.Equal(t, 5, accounts[0].SortOrder)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty", ``},
		{"syntax", `[[account]`},
		{"unknown key", "[[account]]\ncode = \"1\"\ntype = \"ASSET\"\ncolour = \"red\"\n"},
		{"missing code", "[[account]]\ntype = \"ASSET\"\n"},
		{"bad type", "[[account]]\ncode = \"1\"\ntype = \"INCOME\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := chart.Parse(strings.NewReader(tt.body))
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestLoadFile(t *testing.T) {
	accounts, err := chart.LoadFile("")
	require.NoError(t, err)
	assert.Len(t, accounts, 10)

	path := filepath.Join(t.TempDir(), "chart.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[account]]\nid = \"x\"\ncode = \"1000\"\ntype = \"ASSET\"\n"), 0o600))
	accounts, err = chart.LoadFile(path)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "x", accounts[0].ID)

	_, err = chart.LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
