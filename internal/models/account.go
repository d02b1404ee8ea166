package models

import "database/sql"

// AccountType defines the fundamental accounting type of an account.
type AccountType string

// ChartAccount represents a row of the chart_accounts table.
type ChartAccount struct {
	AccountID   string         `db:"account_id"`
	Code        string         `db:"code"`
	NameAr      string         `db:"name_ar"`
	NameEn      string         `db:"name_en"`
	AccountType AccountType    `db:"account_type"`
	ParentID    sql.NullString `db:"parent_id"` // Nullable
	IsActive    bool           `db:"is_active"`
	SortOrder   int            `db:"sort_order"`
	Timestamps
}
