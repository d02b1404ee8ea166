package models

import "time"

// Timestamps are the bookkeeping columns every ledger table carries.
type Timestamps struct {
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
