package domain

import (
	"fmt"
	"time"
)

// FiscalPeriod is a date range with a one-way lock. Locked periods reject journal writes.
type FiscalPeriod struct {
	ID        string     `json:"id"`
	Code      string     `json:"code"`
	StartDate time.Time  `json:"startDate"`
	EndDate   time.Time  `json:"endDate"`
	IsLocked  bool       `json:"isLocked"`
	ClosedAt  *time.Time `json:"closedAt,omitempty"`
	ClosedBy  string     `json:"closedBy,omitempty"`
	Timestamps
}

// Contains reports whether date falls inside [StartDate, EndDate], compared by calendar day.
func (p FiscalPeriod) Contains(date time.Time) bool {
	d := NormalizeDate(date)
	return !d.Before(NormalizeDate(p.StartDate)) && !d.After(NormalizeDate(p.EndDate))
}

// CalendarYear returns the Jan 1 .. Dec 31 bounds of year.
func CalendarYear(year int) (time.Time, time.Time) {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
}

// FiscalYearCode formats the code given to an auto-created calendar-year period.
func FiscalYearCode(year int) string {
	return fmt.Sprintf("FY-%d", year)
}
