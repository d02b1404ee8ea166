package dto

import "github.com/SscSPs/property_ledger/internal/core/domain"

// ChartAccountRequest is one account of a chart snapshot.
type ChartAccountRequest struct {
	ID        string             `json:"id"`
	Code      string             `json:"code" binding:"required,accountcode"`
	NameAr    string             `json:"nameAr" binding:"required"`
	NameEn    string             `json:"nameEn" binding:"required"`
	Type      domain.AccountType `json:"type" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	ParentID  string             `json:"parentId"`
	IsActive  *bool              `json:"isActive"`
	SortOrder int                `json:"sortOrder"`
}

// ReplaceChartRequest carries a full chart-of-accounts snapshot.
type ReplaceChartRequest struct {
	Accounts []ChartAccountRequest `json:"accounts" binding:"required,min=1,dive"`
}

// ToDomain converts the snapshot. Accounts default to active.
func (r ReplaceChartRequest) ToDomain() []domain.ChartAccount {
	accounts := make([]domain.ChartAccount, len(r.Accounts))
	for i, a := range r.Accounts {
		active := true
		if a.IsActive != nil {
			active = *a.IsActive
		}
		accounts[i] = domain.ChartAccount{
			ID:        a.ID,
			Code:      a.Code,
			NameAr:    a.NameAr,
			NameEn:    a.NameEn,
			Type:      a.Type,
			ParentID:  a.ParentID,
			IsActive:  active,
			SortOrder: a.SortOrder,
		}
	}
	return accounts
}

// AccountBalanceResponse pairs an account with its signed balance.
type AccountBalanceResponse struct {
	Account domain.ChartAccount `json:"account"`
	Balance string              `json:"balance"`
}

// SuggestAccountRequest carries free text to classify.
type SuggestAccountRequest struct {
	Description string `json:"description" binding:"required"`
}
