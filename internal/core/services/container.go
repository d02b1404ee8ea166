package services

import (
	portsrepo "github.com/SscSPs/property_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/property_ledger/internal/core/ports/services"
)

// NewServiceContainer wires every ledger service over one transactional store.
// Options apply to all services so they share a clock and id generator.
func NewServiceContainer(store portsrepo.TxStore, opts ...Option) *portssvc.ServiceContainer {
	audit := NewAuditService(store, opts...)
	period := NewPeriodService(store, audit, opts...)
	journal := NewJournalService(store, period, audit, opts...)
	posting := NewPostingService(store, journal, opts...)

	return &portssvc.ServiceContainer{
		Account:   NewAccountService(store, audit, opts...),
		Journal:   journal,
		Period:    period,
		Audit:     audit,
		Posting:   posting,
		Document:  NewDocumentService(store, posting, journal, audit, opts...),
		Analytics: NewAnalyticsService(store, journal, opts...),
	}
}
