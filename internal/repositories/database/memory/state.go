package memory

import (
	"encoding/json"
	"time"

	"github.com/SscSPs/property_ledger/internal/core/domain"
)

type state struct {
	accounts  []domain.ChartAccount
	entries   []domain.JournalEntry // newest first
	documents []domain.AccountingDocument
	periods   []domain.FiscalPeriod
	audit     []domain.AuditLogEntry
}

func (s state) clone() state {
	out := state{
		accounts:  append([]domain.ChartAccount(nil), s.accounts...),
		entries:   make([]domain.JournalEntry, len(s.entries)),
		documents: make([]domain.AccountingDocument, len(s.documents)),
		periods:   make([]domain.FiscalPeriod, len(s.periods)),
		audit:     make([]domain.AuditLogEntry, len(s.audit)),
	}
	for i, e := range s.entries {
		out.entries[i] = e.Clone()
	}
	for i, d := range s.documents {
		out.documents[i] = cloneDocument(d)
	}
	for i, p := range s.periods {
		out.periods[i] = clonePeriod(p)
	}
	for i, a := range s.audit {
		out.audit[i] = cloneAudit(a)
	}
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func cloneDocument(d domain.AccountingDocument) domain.AccountingDocument {
	d.DueDate = cloneTime(d.DueDate)
	if d.Items != nil {
		d.Items = append([]domain.DocumentItem(nil), d.Items...)
	}
	if d.Attachments != nil {
		d.Attachments = append([]string(nil), d.Attachments...)
	}
	if d.ChequeDetails != nil {
		cd := *d.ChequeDetails
		cd.DueDate = cloneTime(cd.DueDate)
		d.ChequeDetails = &cd
	}
	return d
}

func clonePeriod(p domain.FiscalPeriod) domain.FiscalPeriod {
	p.ClosedAt = cloneTime(p.ClosedAt)
	return p
}

func cloneRaw(r json.RawMessage) json.RawMessage {
	if r == nil {
		return nil
	}
	return append(json.RawMessage(nil), r...)
}

func cloneAudit(a domain.AuditLogEntry) domain.AuditLogEntry {
	a.PreviousState = cloneRaw(a.PreviousState)
	a.NewState = cloneRaw(a.NewState)
	return a
}
