package services

// ServiceContainer holds instances of all the application services.
// Handlers and commands reach the ledger only through it.
type ServiceContainer struct {
	Account   AccountSvcFacade
	Journal   JournalSvcFacade
	Period    PeriodSvcFacade
	Audit     AuditSvc
	Posting   PostingSvc
	Document  DocumentSvcFacade
	Analytics AnalyticsSvc
}
