package dto

import "github.com/SscSPs/property_ledger/internal/core/domain"

// CreateFiscalPeriodRequest defines the data needed to open a fiscal period.
type CreateFiscalPeriodRequest struct {
	StartDate string `json:"startDate" binding:"required,dateonly"`
	EndDate   string `json:"endDate" binding:"required,dateonly"`
	Code      string `json:"code"`
}

// PeriodLookupResponse answers "which period covers this date and is it locked".
type PeriodLookupResponse struct {
	Date     string               `json:"date"`
	Period   *domain.FiscalPeriod `json:"period"`
	IsLocked bool                 `json:"isLocked"`
}
