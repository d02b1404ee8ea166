package models

import (
	"database/sql"
	"time"
)

// FiscalPeriod represents a row of the fiscal_periods table.
type FiscalPeriod struct {
	PeriodID  string         `db:"period_id"`
	Code      string         `db:"code"`
	StartDate time.Time      `db:"start_date"`
	EndDate   time.Time      `db:"end_date"`
	IsLocked  bool           `db:"is_locked"`
	ClosedAt  sql.NullTime   `db:"closed_at"`
	ClosedBy  sql.NullString `db:"closed_by"`
	Timestamps
}
