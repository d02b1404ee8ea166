package memory

import (
	"context"

	"github.com/SscSPs/property_ledger/internal/core/domain"
)

func (m *Store) ListAccounts(ctx context.Context) (out []domain.ChartAccount, err error) {
	err = m.read(func(v *view) error {
		out, err = v.ListAccounts(ctx)
		return err
	})
	return out, err
}

func (m *Store) ReplaceAccounts(ctx context.Context, accounts []domain.ChartAccount) error {
	return m.write(ctx, func(v *view) error { return v.ReplaceAccounts(ctx, accounts) })
}

func (m *Store) ListJournalEntries(ctx context.Context) (out []domain.JournalEntry, err error) {
	err = m.read(func(v *view) error {
		out, err = v.ListJournalEntries(ctx)
		return err
	})
	return out, err
}

func (m *Store) FindJournalEntryByID(ctx context.Context, id string) (out *domain.JournalEntry, err error) {
	err = m.read(func(v *view) error {
		out, err = v.FindJournalEntryByID(ctx, id)
		return err
	})
	return out, err
}

func (m *Store) InsertJournalEntry(ctx context.Context, entry domain.JournalEntry) error {
	return m.write(ctx, func(v *view) error { return v.InsertJournalEntry(ctx, entry) })
}

func (m *Store) UpdateJournalEntry(ctx context.Context, entry domain.JournalEntry, expectedVersion int) error {
	return m.write(ctx, func(v *view) error { return v.UpdateJournalEntry(ctx, entry, expectedVersion) })
}

func (m *Store) ListDocuments(ctx context.Context) (out []domain.AccountingDocument, err error) {
	err = m.read(func(v *view) error {
		out, err = v.ListDocuments(ctx)
		return err
	})
	return out, err
}

func (m *Store) FindDocumentByID(ctx context.Context, id string) (out *domain.AccountingDocument, err error) {
	err = m.read(func(v *view) error {
		out, err = v.FindDocumentByID(ctx, id)
		return err
	})
	return out, err
}

func (m *Store) SaveDocument(ctx context.Context, doc domain.AccountingDocument) error {
	return m.write(ctx, func(v *view) error { return v.SaveDocument(ctx, doc) })
}

func (m *Store) ListPeriods(ctx context.Context) (out []domain.FiscalPeriod, err error) {
	err = m.read(func(v *view) error {
		out, err = v.ListPeriods(ctx)
		return err
	})
	return out, err
}

func (m *Store) InsertPeriod(ctx context.Context, period domain.FiscalPeriod) error {
	return m.write(ctx, func(v *view) error { return v.InsertPeriod(ctx, period) })
}

func (m *Store) UpdatePeriod(ctx context.Context, period domain.FiscalPeriod) error {
	return m.write(ctx, func(v *view) error { return v.UpdatePeriod(ctx, period) })
}

func (m *Store) AppendAuditLog(ctx context.Context, entry domain.AuditLogEntry) error {
	return m.write(ctx, func(v *view) error { return v.AppendAuditLog(ctx, entry) })
}

func (m *Store) ListAuditLog(ctx context.Context) (out []domain.AuditLogEntry, err error) {
	err = m.read(func(v *view) error {
		out, err = v.ListAuditLog(ctx)
		return err
	})
	return out, err
}
