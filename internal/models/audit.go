package models

import (
	"database/sql"
	"time"
)

// AuditLog represents a row of the append-only audit_log table.
// State columns hold raw JSON and are nil when absent.
type AuditLog struct {
	AuditID       string         `db:"audit_id"`
	Timestamp     time.Time      `db:"ts"`
	Action        string         `db:"action"`
	EntityType    string         `db:"entity_type"`
	EntityID      string         `db:"entity_id"`
	UserID        sql.NullString `db:"user_id"`
	Reason        sql.NullString `db:"reason"`
	PreviousState []byte         `db:"previous_state"`
	NewState      []byte         `db:"new_state"`
}
