package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	"github.com/SscSPs/property_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/property_ledger/internal/core/services"
	"github.com/SscSPs/property_ledger/internal/repositories/database/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T, observers ...portsrepo.ChangeObserver) *sqlite.Store {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "ledger.db"), observers...)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleEntry(id, serial string) domain.JournalEntry {
	created := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	return domain.JournalEntry{
		ID:           id,
		Version:      1,
		SerialNumber: serial,
		Date:         time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Lines: []domain.JournalLine{
			{AccountID: "cash", Debit: decimal.RequireFromString("10.50"), Credit: decimal.Zero, DescriptionEn: "in"},
			{AccountID: "rev", Debit: decimal.Zero, Credit: decimal.RequireFromString("10.50")},
		},
		TotalDebit:    decimal.RequireFromString("10.50"),
		TotalCredit:   decimal.RequireFromString("10.50"),
		DescriptionEn: "Commission",
		Status:        domain.StatusApproved,
		EntryLinks:    domain.EntryLinks{DocumentType: domain.DocReceipt, DocumentID: "doc-1"},
		Timestamps:    domain.Timestamps{CreatedAt: created, UpdatedAt: created},
	}
}

func TestJournalEntries_RoundTripNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	require.NoError(t, store.InsertJournalEntry(ctx, sampleEntry("a", "JRN-2025-0001")))
	require.NoError(t, store.InsertJournalEntry(ctx, sampleEntry("b", "JRN-2025-0002")))

	entries, err := store.ListJournalEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "b", entries[0].ID)
	assert.Equal(t, "a", entries[1].ID)

	got, err := store.FindJournalEntryByID(ctx, "a")
	require.NoError(t, err)
	require.Len(t, got.Lines, 2)
	assert.Equal(t, "cash", got.Lines[0].AccountID)
	assert.True(t, got.Lines[0].Debit.Equal(decimal.RequireFromString("10.5")))
	assert.Equal(t, "in", got.Lines[0].DescriptionEn)
	assert.Equal(t, "2025-03-01", got.Date.Format(domain.DateLayout))
	assert.Equal(t, domain.DocReceipt, got.DocumentType)
	assert.Equal(t, "doc-1", got.DocumentID)
	assert.Empty(t, got.ContactID)

	err = store.InsertJournalEntry(ctx, sampleEntry("c", "JRN-2025-0001"))
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	_, err = store.FindJournalEntryByID(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdateJournalEntry_VersionCompareAndSwap(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	require.NoError(t, store.InsertJournalEntry(ctx, sampleEntry("a", "JRN-2025-0001")))

	updated := sampleEntry("a", "JRN-2025-0001")
	updated.Version = 2
	updated.Status = domain.StatusCancelled
	updated.Lines = updated.Lines[:1]
	require.NoError(t, store.UpdateJournalEntry(ctx, updated, 1))

	err := store.UpdateJournalEntry(ctx, updated, 1)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	got, err := store.FindJournalEntryByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Version)
	assert.Equal(t, domain.StatusCancelled, got.Status)
	assert.Len(t, got.Lines, 1)

	err = store.UpdateJournalEntry(ctx, sampleEntry("missing", "JRN-2025-0009"), 1)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	var notified []string
	store := openStore(t, portsrepo.ChangeObserverFunc(func(_ context.Context, collection string) {
		notified = append(notified, collection)
	}))

	boom := errors.New("boom")
	err := store.WithTx(ctx, func(st portsrepo.Store) error {
		require.NoError(t, st.InsertJournalEntry(ctx, sampleEntry("a", "JRN-2025-0001")))
		require.NoError(t, st.AppendAuditLog(ctx, domain.AuditLogEntry{
			ID: "log-1", Timestamp: time.Now(), Action: domain.ActionCreate,
			EntityType: domain.EntityJournalEntry, EntityID: "a",
		}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	entries, err := store.ListJournalEntries(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
	logs, err := store.ListAuditLog(ctx)
	require.NoError(t, err)
	assert.Empty(t, logs)
	assert.Empty(t, notified)

	err = store.WithTx(ctx, func(st portsrepo.Store) error {
		return st.InsertJournalEntry(ctx, sampleEntry("a", "JRN-2025-0001"))
	})
	require.NoError(t, err)
	assert.Equal(t, []string{portsrepo.CollectionJournalEntries}, notified)
}

func TestAuditLog_KeepsStatesAndOrder(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	ts := time.Date(2025, 6, 15, 10, 0, 0, 123000000, time.UTC)

	require.NoError(t, store.AppendAuditLog(ctx, domain.AuditLogEntry{
		ID: "log-1", Timestamp: ts, Action: domain.ActionUpdate, EntityType: domain.EntityJournalEntry,
		EntityID: "a", UserID: "user-1", Reason: "fix",
		PreviousState: []byte(`{"status":"DRAFT"}`), NewState: []byte(`{"status":"APPROVED"}`),
	}))
	require.NoError(t, store.AppendAuditLog(ctx, domain.AuditLogEntry{
		ID: "log-2", Timestamp: ts.Add(time.Second), Action: domain.ActionCreate,
		EntityType: domain.EntityPeriod, EntityID: "p1",
	}))

	logs, err := store.ListAuditLog(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "log-1", logs[0].ID)
	assert.Equal(t, "user-1", logs[0].UserID)
	assert.Equal(t, "fix", logs[0].Reason)
	assert.JSONEq(t, `{"status":"DRAFT"}`, string(logs[0].PreviousState))
	assert.JSONEq(t, `{"status":"APPROVED"}`, string(logs[0].NewState))
	assert.Equal(t, "2025-06-15T10:00:00.123Z", logs[0].ISOTimestamp())
	assert.Empty(t, logs[1].PreviousState)
	assert.Empty(t, logs[1].UserID)
}

func TestPeriods_InsertUpdateAndLock(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	start, end := domain.CalendarYear(2025)

	require.NoError(t, store.InsertPeriod(ctx, domain.FiscalPeriod{ID: "p1", Code: "FY-2025", StartDate: start, EndDate: end}))
	err := store.InsertPeriod(ctx, domain.FiscalPeriod{ID: "p1", Code: "dup", StartDate: start, EndDate: end})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	closed := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
	require.NoError(t, store.UpdatePeriod(ctx, domain.FiscalPeriod{
		ID: "p1", Code: "FY-2025", StartDate: start, EndDate: end,
		IsLocked: true, ClosedAt: &closed, ClosedBy: "user-1",
	}))
	err = store.UpdatePeriod(ctx, domain.FiscalPeriod{ID: "p2"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	periods, err := store.ListPeriods(ctx)
	require.NoError(t, err)
	require.Len(t, periods, 1)
	assert.True(t, periods[0].IsLocked)
	require.NotNil(t, periods[0].ClosedAt)
	assert.True(t, closed.Equal(*periods[0].ClosedAt))
	assert.Equal(t, "user-1", periods[0].ClosedBy)
	assert.True(t, periods[0].Contains(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)))
}

func TestServicesOverSQLite_PostAndCancelDocument(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	svc := services.NewServiceContainer(store,
		services.WithClock(func() time.Time { return time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC) }))

	_, err := svc.Account.ReplaceChart(ctx, []domain.ChartAccount{
		{ID: "acc-cash", Code: domain.CodeCash, NameEn: "Cash", Type: domain.Asset, IsActive: true, SortOrder: 1},
		{ID: "acc-revenue", Code: domain.CodeRevenue, NameEn: "Revenue", Type: domain.Revenue, IsActive: true, SortOrder: 2},
	}, "admin")
	require.NoError(t, err)

	doc, err := svc.Document.CreateDocument(ctx, domain.AccountingDocument{
		Type:          domain.DocReceipt,
		Status:        domain.StatusApproved,
		Date:          time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Amount:        decimal.NewFromInt(250),
		PaymentMethod: domain.PaymentCash,
	}, "user-1")
	require.NoError(t, err)

	posted, entry, err := svc.Document.PostStoredDocument(ctx, doc.ID, "user-1")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, entry.ID, posted.JournalEntryID)
	assert.Equal(t, "JRN-2025-0001", entry.SerialNumber)

	balance, err := svc.Journal.GetAccountBalance(ctx, "acc-cash")
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(250)), balance.String())

	_, err = svc.Document.CancelDocument(ctx, doc.ID, "user-1")
	require.NoError(t, err)
	balance, err = svc.Journal.GetAccountBalance(ctx, "acc-cash")
	require.NoError(t, err)
	assert.True(t, balance.IsZero(), balance.String())

	stored, err := store.FindDocumentByID(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, stored.Status)
}
