package mapping

import (
	"github.com/SscSPs/property_ledger/internal/core/domain"
	"github.com/SscSPs/property_ledger/internal/models"
)

// ToModelChartAccount converts a domain ChartAccount to a model ChartAccount
func ToModelChartAccount(d domain.ChartAccount) models.ChartAccount {
	return models.ChartAccount{
		AccountID:   d.ID,
		Code:        d.Code,
		NameAr:      d.NameAr,
		NameEn:      d.NameEn,
		AccountType: models.AccountType(d.Type),
		ParentID:    NullString(d.ParentID),
		IsActive:    d.IsActive,
		SortOrder:   d.SortOrder,
		Timestamps:  ToModelTimestamps(d.Timestamps),
	}
}

// ToDomainChartAccount converts a model ChartAccount to a domain ChartAccount
func ToDomainChartAccount(m models.ChartAccount) domain.ChartAccount {
	return domain.ChartAccount{
		ID:         m.AccountID,
		Code:       m.Code,
		NameAr:     m.NameAr,
		NameEn:     m.NameEn,
		Type:       domain.AccountType(m.AccountType),
		ParentID:   m.ParentID.String,
		IsActive:   m.IsActive,
		SortOrder:  m.SortOrder,
		Timestamps: ToDomainTimestamps(m.Timestamps),
	}
}

// ToModelTimestamps converts domain Timestamps to model Timestamps
func ToModelTimestamps(d domain.Timestamps) models.Timestamps {
	return models.Timestamps{CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt}
}

// ToDomainTimestamps converts model Timestamps to domain Timestamps in UTC
func ToDomainTimestamps(m models.Timestamps) domain.Timestamps {
	return domain.Timestamps{CreatedAt: m.CreatedAt.UTC(), UpdatedAt: m.UpdatedAt.UTC()}
}
