// Package chart loads chart-of-accounts snapshots from TOML.
package chart

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/SscSPs/property_ledger/internal/apperrors"
	"github.com/SscSPs/property_ledger/internal/core/domain"
)

//go:embed default_chart.toml
var defaultChart string

type file struct {
	Accounts []account `toml:"account"`
}

type account struct {
	ID        string `toml:"id"`
	Code      string `toml:"code"`
	NameAr    string `toml:"name_ar"`
	NameEn    string `toml:"name_en"`
	Type      string `toml:"type"`
	ParentID  string `toml:"parent_id"`
	Active    *bool  `toml:"active"`
	SortOrder int    `toml:"sort_order"`
}

// Default returns the embedded chart.
func Default() ([]domain.ChartAccount, error) {
	return Parse(strings.NewReader(defaultChart))
}

// LoadFile reads a chart from path. An empty path yields the embedded default.
func LoadFile(path string) ([]domain.ChartAccount, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open chart file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes a TOML chart. Accounts are active unless they say otherwise.
func Parse(r io.Reader) ([]domain.ChartAccount, error) {
	var f file
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid chart file: %v", apperrors.ErrValidation, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: unknown chart keys %v", apperrors.ErrValidation, undecoded)
	}
	if len(f.Accounts) == 0 {
		return nil, fmt.Errorf("%w: chart file defines no accounts", apperrors.ErrValidation)
	}

	accounts := make([]domain.ChartAccount, 0, len(f.Accounts))
	for i, a := range f.Accounts {
		acc := domain.ChartAccount{
			ID:        a.ID,
			Code:      a.Code,
			NameAr:    a.NameAr,
			NameEn:    a.NameEn,
			Type:      domain.AccountType(strings.ToUpper(a.Type)),
			ParentID:  a.ParentID,
			IsActive:  a.Active == nil || *a.Active,
			SortOrder: a.SortOrder,
		}
		if acc.ID == "" {
			acc.ID = "acc-" + acc.Code
		}
		if acc.Code == "" {
			return nil, fmt.Errorf("%w: account #%d has no code", apperrors.ErrValidation, i+1)
		}
		if !acc.Type.IsValid() {
			return nil, fmt.Errorf("%w: account %s has unknown type %q", apperrors.ErrValidation, acc.Code, a.Type)
		}
		accounts = append(accounts, acc)
	}
	return accounts, nil
}
