package memory

import (
	"context"
	"fmt"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	"github.com/SscSPs/property_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger/internal/core/ports/repositories"
)

// view operates on state without locking. The owner of the state holds the lock.
type view struct {
	data    *state
	changed map[string]bool
}

func newView(data *state) *view {
	return &view{data: data, changed: make(map[string]bool)}
}

var _ portsrepo.Store = (*view)(nil)

func (v *view) ListAccounts(_ context.Context) ([]domain.ChartAccount, error) {
	return append([]domain.ChartAccount{}, v.data.accounts...), nil
}

func (v *view) ReplaceAccounts(_ context.Context, accounts []domain.ChartAccount) error {
	v.data.accounts = append([]domain.ChartAccount{}, accounts...)
	v.changed[portsrepo.CollectionAccounts] = true
	return nil
}

func (v *view) ListJournalEntries(_ context.Context) ([]domain.JournalEntry, error) {
	out := make([]domain.JournalEntry, len(v.data.entries))
	for i, e := range v.data.entries {
		out[i] = e.Clone()
	}
	return out, nil
}

func (v *view) entryIndex(id string) int {
	for i := range v.data.entries {
		if v.data.entries[i].ID == id {
			return i
		}
	}
	return -1
}

func (v *view) FindJournalEntryByID(_ context.Context, id string) (*domain.JournalEntry, error) {
	i := v.entryIndex(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, id)
	}
	e := v.data.entries[i].Clone()
	return &e, nil
}

func (v *view) InsertJournalEntry(_ context.Context, entry domain.JournalEntry) error {
	if v.entryIndex(entry.ID) >= 0 {
		return fmt.Errorf("%w: journal entry %s", apperrors.ErrDuplicate, entry.ID)
	}
	v.data.entries = append([]domain.JournalEntry{entry.Clone()}, v.data.entries...)
	v.changed[portsrepo.CollectionJournalEntries] = true
	return nil
}

func (v *view) UpdateJournalEntry(_ context.Context, entry domain.JournalEntry, expectedVersion int) error {
	i := v.entryIndex(entry.ID)
	if i < 0 {
		return fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, entry.ID)
	}
	if v.data.entries[i].Version != expectedVersion {
		return fmt.Errorf("%w: journal entry %s is at version %d, expected %d",
			apperrors.ErrConflict, entry.ID, v.data.entries[i].Version, expectedVersion)
	}
	v.data.entries[i] = entry.Clone()
	v.changed[portsrepo.CollectionJournalEntries] = true
	return nil
}

func (v *view) ListDocuments(_ context.Context) ([]domain.AccountingDocument, error) {
	out := make([]domain.AccountingDocument, len(v.data.documents))
	for i, d := range v.data.documents {
		out[i] = cloneDocument(d)
	}
	return out, nil
}

func (v *view) FindDocumentByID(_ context.Context, id string) (*domain.AccountingDocument, error) {
	for _, d := range v.data.documents {
		if d.ID == id {
			c := cloneDocument(d)
			return &c, nil
		}
	}
	return nil, fmt.Errorf("%w: document %s", apperrors.ErrNotFound, id)
}

func (v *view) SaveDocument(_ context.Context, doc domain.AccountingDocument) error {
	v.changed[portsrepo.CollectionDocuments] = true
	for i := range v.data.documents {
		if v.data.documents[i].ID == doc.ID {
			v.data.documents[i] = cloneDocument(doc)
			return nil
		}
	}
	v.data.documents = append([]domain.AccountingDocument{cloneDocument(doc)}, v.data.documents...)
	return nil
}

func (v *view) ListPeriods(_ context.Context) ([]domain.FiscalPeriod, error) {
	out := make([]domain.FiscalPeriod, len(v.data.periods))
	for i, p := range v.data.periods {
		out[i] = clonePeriod(p)
	}
	return out, nil
}

func (v *view) InsertPeriod(_ context.Context, period domain.FiscalPeriod) error {
	for _, p := range v.data.periods {
		if p.ID == period.ID {
			return fmt.Errorf("%w: fiscal period %s", apperrors.ErrDuplicate, period.ID)
		}
	}
	v.data.periods = append(v.data.periods, clonePeriod(period))
	v.changed[portsrepo.CollectionPeriods] = true
	return nil
}

func (v *view) UpdatePeriod(_ context.Context, period domain.FiscalPeriod) error {
	for i := range v.data.periods {
		if v.data.periods[i].ID == period.ID {
			v.data.periods[i] = clonePeriod(period)
			v.changed[portsrepo.CollectionPeriods] = true
			return nil
		}
	}
	return fmt.Errorf("%w: fiscal period %s", apperrors.ErrNotFound, period.ID)
}

func (v *view) AppendAuditLog(_ context.Context, entry domain.AuditLogEntry) error {
	v.data.audit = append(v.data.audit, cloneAudit(entry))
	v.changed[portsrepo.CollectionAuditLog] = true
	return nil
}

func (v *view) ListAuditLog(_ context.Context) ([]domain.AuditLogEntry, error) {
	out := make([]domain.AuditLogEntry, len(v.data.audit))
	for i, a := range v.data.audit {
		out[i] = cloneAudit(a)
	}
	return out, nil
}
