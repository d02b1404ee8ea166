package mapping

import (
	"github.com/SscSPs/property_ledger/internal/core/domain"
	"github.com/SscSPs/property_ledger/internal/models"
)

// ToModelFiscalPeriod converts a domain FiscalPeriod to a model FiscalPeriod
func ToModelFiscalPeriod(d domain.FiscalPeriod) models.FiscalPeriod {
	return models.FiscalPeriod{
		PeriodID:   d.ID,
		Code:       d.Code,
		StartDate:  d.StartDate,
		EndDate:    d.EndDate,
		IsLocked:   d.IsLocked,
		ClosedAt:   NullTime(d.ClosedAt),
		ClosedBy:   NullString(d.ClosedBy),
		Timestamps: ToModelTimestamps(d.Timestamps),
	}
}

// ToDomainFiscalPeriod converts a model FiscalPeriod to a domain FiscalPeriod
func ToDomainFiscalPeriod(m models.FiscalPeriod) domain.FiscalPeriod {
	return domain.FiscalPeriod{
		ID:         m.PeriodID,
		Code:       m.Code,
		StartDate:  domain.NormalizeDate(m.StartDate),
		EndDate:    domain.NormalizeDate(m.EndDate),
		IsLocked:   m.IsLocked,
		ClosedAt:   TimePtr(m.ClosedAt),
		ClosedBy:   m.ClosedBy.String,
		Timestamps: ToDomainTimestamps(m.Timestamps),
	}
}
