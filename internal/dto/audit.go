package dto

// AuditLogQuery holds the query-string filters of the audit log endpoint.
type AuditLogQuery struct {
	EntityType string `form:"entityType" binding:"omitempty,oneof=ACCOUNT JOURNAL_ENTRY DOCUMENT PERIOD"`
	EntityID   string `form:"entityId"`
	Action     string `form:"action" binding:"omitempty,oneof=CREATE UPDATE CANCEL REVERSE PERIOD_CLOSE PERIOD_LOCK"`
	FromDate   string `form:"fromDate"`
	ToDate     string `form:"toDate"`
}
