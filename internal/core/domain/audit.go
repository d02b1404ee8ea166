package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// AuditAction is the kind of mutation an audit record describes.
type AuditAction string

const (
	ActionCreate      AuditAction = "CREATE"
	ActionUpdate      AuditAction = "UPDATE"
	ActionCancel      AuditAction = "CANCEL"
	ActionReverse     AuditAction = "REVERSE"
	ActionPeriodClose AuditAction = "PERIOD_CLOSE"
	ActionPeriodLock  AuditAction = "PERIOD_LOCK"
)

// AuditEntityType is the kind of record an audit entry refers to.
type AuditEntityType string

const (
	EntityAccount      AuditEntityType = "ACCOUNT"
	EntityJournalEntry AuditEntityType = "JOURNAL_ENTRY"
	EntityDocument     AuditEntityType = "DOCUMENT"
	EntityPeriod       AuditEntityType = "PERIOD"
)

// AuditTimestampLayout renders audit timestamps as sortable ISO-8601 strings in UTC.
const AuditTimestampLayout = "2006-01-02T15:04:05.000Z"

// AuditLogEntry is an immutable record of one action. It is never updated or deleted.
type AuditLogEntry struct {
	ID            string          `json:"id"`
	Timestamp     time.Time       `json:"timestamp"`
	Action        AuditAction     `json:"action"`
	EntityType    AuditEntityType `json:"entityType"`
	EntityID      string          `json:"entityId"`
	UserID        string          `json:"userId,omitempty"`
	Reason        string          `json:"reason,omitempty"`
	PreviousState json.RawMessage `json:"previousState,omitempty"`
	NewState      json.RawMessage `json:"newState,omitempty"`
}

// ISOTimestamp returns the timestamp in the layout used for range filtering.
func (e AuditLogEntry) ISOTimestamp() string {
	return e.Timestamp.UTC().Format(AuditTimestampLayout)
}

// AuditFilter narrows an audit query. Zero fields match everything.
// FromDate and ToDate are ISO strings; a shorter bound such as "2025-06-30"
// matches every timestamp that starts with it.
type AuditFilter struct {
	EntityType AuditEntityType
	EntityID   string
	Action     AuditAction
	FromDate   string
	ToDate     string
}

// Matches reports whether e passes every set criterion of f.
func (f AuditFilter) Matches(e AuditLogEntry) bool {
	if f.EntityType != "" && e.EntityType != f.EntityType {
		return false
	}
	if f.EntityID != "" && e.EntityID != f.EntityID {
		return false
	}
	if f.Action != "" && e.Action != f.Action {
		return false
	}
	ts := e.ISOTimestamp()
	if f.FromDate != "" && ts < f.FromDate {
		return false
	}
	if f.ToDate != "" {
		upper := ts
		if len(f.ToDate) < len(ts) {
			upper = ts[:len(f.ToDate)]
		}
		if strings.Compare(upper, f.ToDate) > 0 {
			return false
		}
	}
	return true
}
