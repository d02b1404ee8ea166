package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	"github.com/SscSPs/property_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/property_ledger/internal/core/ports/services"
	"github.com/SscSPs/property_ledger/internal/dto"
	"github.com/SscSPs/property_ledger/internal/platform/metrics"
	"github.com/SscSPs/property_ledger/internal/utils/accounting"
	"github.com/SscSPs/property_ledger/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

const (
	serialPrefix       = "JRN"
	defaultPageSize    = 50
	reversalPrefixAr   = "عكس القيد"
	reversalPrefixEn   = "Reversal of"
	reversalReasonText = "Reversed by"
)

// entryTotals is the audit snapshot of a journal entry.
type entryTotals struct {
	SerialNumber string             `json:"serialNumber"`
	TotalDebit   decimal.Decimal    `json:"totalDebit"`
	TotalCredit  decimal.Decimal    `json:"totalCredit"`
	Status       domain.EntryStatus `json:"status"`
	Version      int                `json:"version"`
	ReplacedBy   string             `json:"replacedBy,omitempty"`
}

func totalsOf(e domain.JournalEntry) entryTotals {
	return entryTotals{
		SerialNumber: e.SerialNumber,
		TotalDebit:   e.TotalDebit,
		TotalCredit:  e.TotalCredit,
		Status:       e.Status,
		Version:      e.Version,
		ReplacedBy:   e.ReplacedBy,
	}
}

// journalService is the only writer of journal entries.
type journalService struct {
	BaseService
	periods portssvc.PeriodReaderSvc
	audit   portssvc.AuditSvc
}

// NewJournalService creates a new JournalService.
func NewJournalService(store portsrepo.TxStore, periods portssvc.PeriodReaderSvc, audit portssvc.AuditSvc, opts ...Option) portssvc.JournalSvcFacade {
	return &journalService{
		BaseService: newBaseService(store, opts...),
		periods:     periods,
		audit:       audit,
	}
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// ensurePeriodOpen fails with a PeriodLockedError when date falls inside a locked period.
func (s *journalService) ensurePeriodOpen(ctx context.Context, date time.Time) error {
	p, err := s.periods.GetPeriodByDate(ctx, date)
	if err != nil {
		return err
	}
	if p != nil && p.IsLocked {
		metrics.JournalRejections.WithLabelValues("period_locked").Inc()
		return &apperrors.PeriodLockedError{Date: domain.NormalizeDate(date), PeriodCode: p.Code}
	}
	return nil
}

// validateLines checks the double-entry invariant and returns rounded totals.
func validateLines(lines []domain.JournalLine) (decimal.Decimal, decimal.Decimal, error) {
	if len(lines) == 0 {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: journal entry must have at least one line", apperrors.ErrValidation)
	}
	debit, credit, err := accounting.ValidateJournalBalance(lines)
	if errors.Is(err, apperrors.ErrUnbalancedEntry) {
		metrics.JournalRejections.WithLabelValues("unbalanced").Inc()
	}
	return debit, credit, err
}

// nextVersion returns the version a write stores. Legacy records without a version count as 1.
func nextVersion(stored int) int {
	if stored < 1 {
		return 2
	}
	return stored + 1
}

// nextSerialNumber numbers entries per calendar year of creation. Superseded entries do not
// count, and a number already taken that year is skipped past.
func nextSerialNumber(entries []domain.JournalEntry, createdAt time.Time) string {
	year := createdAt.Year()
	prefix := fmt.Sprintf("%s-%d-", serialPrefix, year)

	count, maxSeq := 0, 0
	taken := make(map[int]bool)
	for _, e := range entries {
		if e.CreatedAt.Year() == year && !e.IsSuperseded() {
			count++
		}
		if !strings.HasPrefix(e.SerialNumber, prefix) {
			continue
		}
		seq, err := strconv.Atoi(strings.TrimPrefix(e.SerialNumber, prefix))
		if err != nil {
			continue
		}
		taken[seq] = true
		if seq > maxSeq {
			maxSeq = seq
		}
	}

	n := count + 1
	if taken[n] {
		n = maxSeq + 1
	}
	return fmt.Sprintf("%s%04d", prefix, n)
}

func (s *journalService) CreateJournalEntry(ctx context.Context, input domain.JournalEntryInput, userID string) (*domain.JournalEntry, error) {
	status := input.Status
	if status == "" {
		status = domain.StatusApproved
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, status)
	}
	if input.Date.IsZero() {
		return nil, fmt.Errorf("%w: entry date is required", apperrors.ErrValidation)
	}
	date := domain.NormalizeDate(input.Date)

	var created domain.JournalEntry
	err := s.runInTx(ctx, func(ctx context.Context, st portsrepo.Store) error {
		if err := s.ensurePeriodOpen(ctx, date); err != nil {
			return err
		}
		totalDebit, totalCredit, err := validateLines(input.Lines)
		if err != nil {
			return err
		}

		existing, err := st.ListJournalEntries(ctx)
		if err != nil {
			return err
		}
		now := s.now().UTC()
		lines := make([]domain.JournalLine, len(input.Lines))
		copy(lines, input.Lines)

		created = domain.JournalEntry{
			ID:            s.newID(),
			Version:       1,
			SerialNumber:  nextSerialNumber(existing, now),
			Date:          date,
			Lines:         lines,
			TotalDebit:    totalDebit,
			TotalCredit:   totalCredit,
			DescriptionAr: input.DescriptionAr,
			DescriptionEn: input.DescriptionEn,
			Status:        status,
			EntryLinks:    input.EntryLinks,
			Timestamps:    domain.Timestamps{CreatedAt: now, UpdatedAt: now},
		}
		if err := st.InsertJournalEntry(ctx, created); err != nil {
			return err
		}

		_, err = s.audit.AppendAuditLog(ctx, domain.AuditLogEntry{
			Action:     domain.ActionCreate,
			EntityType: domain.EntityJournalEntry,
			EntityID:   created.ID,
			UserID:     userID,
			NewState:   snapshot(totalsOf(created)),
		})
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create journal entry",
			slog.String("date", date.Format(domain.DateLayout)),
			slog.String("user_id", userID))
		return nil, err
	}

	metrics.JournalWrites.WithLabelValues("create").Inc()
	s.LogInfo(ctx, "Journal entry created",
		slog.String("entry_id", created.ID),
		slog.String("serial_number", created.SerialNumber),
		slog.String("total", created.TotalDebit.StringFixed(2)))
	return &created, nil
}

func (s *journalService) UpdateJournalEntry(ctx context.Context, id string, patch domain.JournalEntryPatch, userID string) (domain.JournalResult, error) {
	if patch.Status != nil && !patch.Status.IsValid() {
		return domain.JournalResult{}, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, *patch.Status)
	}

	var result domain.JournalResult
	err := s.runInTx(ctx, func(ctx context.Context, st portsrepo.Store) error {
		existing, err := st.FindJournalEntryByID(ctx, id)
		if errors.Is(err, apperrors.ErrNotFound) {
			result = domain.NotFound()
			return nil
		}
		if err != nil {
			return err
		}
		if existing.IsSuperseded() {
			result = domain.Superseded()
			return nil
		}
		if err := s.ensurePeriodOpen(ctx, existing.Date); err != nil {
			return err
		}

		updated := existing.Clone()
		if patch.Lines != nil {
			updated.Lines = make([]domain.JournalLine, len(patch.Lines))
			copy(updated.Lines, patch.Lines)
		}
		if patch.DescriptionAr != nil {
			updated.DescriptionAr = *patch.DescriptionAr
		}
		if patch.DescriptionEn != nil {
			updated.DescriptionEn = *patch.DescriptionEn
		}
		if patch.Status != nil {
			updated.Status = *patch.Status
		}

		updated.TotalDebit, updated.TotalCredit, err = validateLines(updated.Lines)
		if err != nil {
			return err
		}
		updated.Version = nextVersion(existing.Version)
		updated.UpdatedAt = s.now().UTC()

		if err := st.UpdateJournalEntry(ctx, updated, existing.Version); err != nil {
			return err
		}

		if _, err := s.audit.AppendAuditLog(ctx, domain.AuditLogEntry{
			Action:        domain.ActionUpdate,
			EntityType:    domain.EntityJournalEntry,
			EntityID:      updated.ID,
			UserID:        userID,
			PreviousState: snapshot(totalsOf(*existing)),
			NewState:      snapshot(totalsOf(updated)),
		}); err != nil {
			return err
		}
		result = domain.AppliedResult(&updated)
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update journal entry", slog.String("entry_id", id))
		return domain.JournalResult{}, err
	}

	if result.Applied() {
		metrics.JournalWrites.WithLabelValues("update").Inc()
		s.LogInfo(ctx, "Journal entry updated",
			slog.String("entry_id", id),
			slog.Int("version", result.Entry.Version))
	} else {
		s.LogDebug(ctx, "Journal entry update not applicable",
			slog.String("entry_id", id),
			slog.String("outcome", string(result.Outcome)))
	}
	return result, nil
}

func (s *journalService) ReverseJournalEntry(ctx context.Context, id string, reverseDate time.Time, userID string) (domain.JournalResult, error) {
	if reverseDate.IsZero() {
		return domain.JournalResult{}, fmt.Errorf("%w: reversal date is required", apperrors.ErrValidation)
	}

	var result domain.JournalResult
	err := s.runInTx(ctx, func(ctx context.Context, st portsrepo.Store) error {
		original, err := st.FindJournalEntryByID(ctx, id)
		if errors.Is(err, apperrors.ErrNotFound) {
			result = domain.NotFound()
			return nil
		}
		if err != nil {
			return err
		}
		if original.IsSuperseded() {
			result = domain.Superseded()
			return nil
		}
		if err := s.ensurePeriodOpen(ctx, reverseDate); err != nil {
			return err
		}

		mirrored := make([]domain.JournalLine, len(original.Lines))
		for i, l := range original.Lines {
			mirrored[i] = l.Swapped()
		}
		reversal, err := s.CreateJournalEntry(ctx, domain.JournalEntryInput{
			Date:          reverseDate,
			Lines:         mirrored,
			DescriptionAr: fmt.Sprintf("%s %s", reversalPrefixAr, original.SerialNumber),
			DescriptionEn: fmt.Sprintf("%s %s", reversalPrefixEn, original.SerialNumber),
			Status:        domain.StatusApproved,
			EntryLinks:    original.EntryLinks,
		}, userID)
		if err != nil {
			return err
		}

		superseded := original.Clone()
		superseded.ReplacedBy = reversal.ID
		superseded.Version = nextVersion(original.Version)
		superseded.UpdatedAt = s.now().UTC()
		if err := st.UpdateJournalEntry(ctx, superseded, original.Version); err != nil {
			return err
		}

		if _, err := s.audit.AppendAuditLog(ctx, domain.AuditLogEntry{
			Action:        domain.ActionReverse,
			EntityType:    domain.EntityJournalEntry,
			EntityID:      original.ID,
			UserID:        userID,
			Reason:        fmt.Sprintf("%s %s", reversalReasonText, reversal.SerialNumber),
			PreviousState: snapshot(totalsOf(*original)),
			NewState:      snapshot(totalsOf(superseded)),
		}); err != nil {
			return err
		}
		result = domain.AppliedResult(reversal)
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to reverse journal entry", slog.String("entry_id", id))
		return domain.JournalResult{}, err
	}

	if result.Applied() {
		metrics.JournalWrites.WithLabelValues("reverse").Inc()
		s.LogInfo(ctx, "Journal entry reversed",
			slog.String("entry_id", id),
			slog.String("reversal_id", result.Entry.ID),
			slog.String("reversal_serial", result.Entry.SerialNumber))
	}
	return result, nil
}

func (s *journalService) CancelJournalEntry(ctx context.Context, id string, userID string) (domain.JournalResult, error) {
	cancelled := domain.StatusCancelled
	result, err := s.UpdateJournalEntry(ctx, id, domain.JournalEntryPatch{Status: &cancelled}, userID)
	if err == nil && result.Applied() {
		metrics.JournalWrites.WithLabelValues("cancel").Inc()
	}
	return result, err
}

func (s *journalService) GetAllJournalEntries(ctx context.Context) ([]domain.JournalEntry, error) {
	entries, err := s.repo(ctx).ListJournalEntries(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries")
		return nil, err
	}
	for i := range entries {
		if entries[i].Version < 1 {
			entries[i].Version = 1
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
	return entries, nil
}

func (s *journalService) GetJournalEntry(ctx context.Context, id string) (*domain.JournalEntry, error) {
	entry, err := s.repo(ctx).FindJournalEntryByID(ctx, id)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal entry", slog.String("entry_id", id))
		}
		return nil, err
	}
	if entry.Version < 1 {
		entry.Version = 1
	}
	return entry, nil
}

func (s *journalService) ListJournalEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}

	entries, err := s.GetAllJournalEntries(ctx)
	if err != nil {
		return nil, err
	}

	start := 0
	if params.NextToken != nil && *params.NextToken != "" {
		afterDate, afterID, err := pagination.DecodeToken(*params.NextToken)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		start = len(entries)
		for i, e := range entries {
			if e.ID == afterID {
				start = i + 1
				break
			}
			// The cursor entry may have been re-dated; resume at the first older date.
			if e.Date.Before(afterDate) {
				start = i
				break
			}
		}
	}

	end := start + limit
	if end > len(entries) {
		end = len(entries)
	}
	resp := &dto.ListJournalEntriesResponse{Entries: entries[start:end]}
	if end < len(entries) {
		last := entries[end-1]
		token := pagination.EncodeToken(last.Date, last.ID)
		resp.NextToken = &token
	}
	return resp, nil
}

// accountTypes maps every chart account id, active or not, to its type.
func (s *journalService) accountTypes(ctx context.Context) (map[string]domain.AccountType, error) {
	accounts, err := s.repo(ctx).ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	types := make(map[string]domain.AccountType, len(accounts))
	for _, a := range accounts {
		types[a.ID] = a.Type
	}
	return types, nil
}

func (s *journalService) GetAccountBalances(ctx context.Context) (map[string]decimal.Decimal, error) {
	types, err := s.accountTypes(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load chart of accounts for balances")
		return nil, err
	}
	entries, err := s.repo(ctx).ListJournalEntries(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries for balances")
		return nil, err
	}

	balances := make(map[string]decimal.Decimal, len(types))
	for id := range types {
		balances[id] = decimal.Zero
	}
	for _, e := range entries {
		if !accounting.CountsTowardBalance(e.Status) {
			continue
		}
		for _, line := range e.Lines {
			accType, ok := types[line.AccountID]
			if !ok {
				s.LogDebug(ctx, "Skipping line on unknown account",
					slog.String("entry_id", e.ID),
					slog.String("account_id", line.AccountID))
				continue
			}
			signed, err := accounting.CalculateSignedAmount(line, accType)
			if err != nil {
				s.LogError(ctx, err, "Skipping line with invalid account type", slog.String("entry_id", e.ID))
				continue
			}
			balances[line.AccountID] = balances[line.AccountID].Add(signed)
		}
	}
	for id, b := range balances {
		balances[id] = accounting.RoundMoney(b)
	}
	return balances, nil
}

func (s *journalService) GetAccountBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	balances, err := s.GetAccountBalances(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	b, ok := balances[accountID]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	return b, nil
}
