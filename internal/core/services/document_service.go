package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	"github.com/SscSPs/property_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/property_ledger/internal/core/ports/services"
	"github.com/SscSPs/property_ledger/internal/dto"
)

type documentState struct {
	SerialNumber   string              `json:"serialNumber"`
	Type           domain.DocumentType `json:"type"`
	Status         domain.EntryStatus  `json:"status"`
	TotalAmount    string              `json:"totalAmount"`
	JournalEntryID string              `json:"journalEntryId,omitempty"`
}

func documentStateOf(d domain.AccountingDocument) documentState {
	return documentState{
		SerialNumber:   d.SerialNumber,
		Type:           d.Type,
		Status:         d.Status,
		TotalAmount:    d.TotalAmount.StringFixed(2),
		JournalEntryID: d.JournalEntryID,
	}
}

// documentService stores upstream documents and drives them through posting and cancellation.
type documentService struct {
	BaseService
	posting portssvc.PostingSvc
	journal portssvc.JournalWriterSvc
	audit   portssvc.AuditSvc
}

// NewDocumentService creates the stored-document workflow.
func NewDocumentService(store portsrepo.TxStore, posting portssvc.PostingSvc, journal portssvc.JournalWriterSvc, audit portssvc.AuditSvc, opts ...Option) portssvc.DocumentSvcFacade {
	return &documentService{
		BaseService: newBaseService(store, opts...),
		posting:     posting,
		journal:     journal,
		audit:       audit,
	}
}

var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

func (s *documentService) GetDocument(ctx context.Context, id string) (*domain.AccountingDocument, error) {
	doc, err := s.repo(ctx).FindDocumentByID(ctx, id)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find document", slog.String("document_id", id))
		}
		return nil, err
	}
	return doc, nil
}

func (s *documentService) ListDocuments(ctx context.Context, params dto.ListDocumentsParams) ([]domain.AccountingDocument, error) {
	docs, err := s.repo(ctx).ListDocuments(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list documents")
		return nil, err
	}
	filtered := make([]domain.AccountingDocument, 0, len(docs))
	for _, d := range docs {
		if params.Type != "" && string(d.Type) != params.Type {
			continue
		}
		if params.Status != "" && string(d.Status) != params.Status {
			continue
		}
		filtered = append(filtered, d)
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Date.After(filtered[j].Date)
	})
	return filtered, nil
}

// documentSerial numbers documents per type and year of the document date.
func documentSerial(existing []domain.AccountingDocument, doc domain.AccountingDocument) string {
	n := 1
	for _, d := range existing {
		if d.Type == doc.Type && d.Date.Year() == doc.Date.Year() {
			n++
		}
	}
	return fmt.Sprintf("%s-%d-%04d", doc.Type, doc.Date.Year(), n)
}

func (s *documentService) CreateDocument(ctx context.Context, doc domain.AccountingDocument, userID string) (*domain.AccountingDocument, error) {
	if !doc.Type.IsValid() {
		return nil, fmt.Errorf("%w: unknown document type %q", apperrors.ErrValidation, doc.Type)
	}
	if doc.Status == "" {
		doc.Status = domain.StatusDraft
	}
	if !doc.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, doc.Status)
	}
	if doc.Date.IsZero() {
		return nil, fmt.Errorf("%w: document date is required", apperrors.ErrValidation)
	}
	if doc.Amount.IsNegative() || doc.VATAmount.IsNegative() || doc.TotalAmount.IsNegative() {
		return nil, fmt.Errorf("%w: document amounts must not be negative", apperrors.ErrValidation)
	}
	if doc.JournalEntryID != "" {
		return nil, fmt.Errorf("%w: a new document cannot reference a journal entry", apperrors.ErrValidation)
	}
	doc.Date = domain.NormalizeDate(doc.Date)
	if doc.TotalAmount.IsZero() {
		doc.TotalAmount = doc.Amount.Add(doc.VATAmount)
	}

	err := s.runInTx(ctx, func(ctx context.Context, st portsrepo.Store) error {
		if doc.ID == "" {
			doc.ID = s.newID()
		} else if _, err := st.FindDocumentByID(ctx, doc.ID); err == nil {
			return fmt.Errorf("%w: document %s", apperrors.ErrDuplicate, doc.ID)
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}

		if doc.SerialNumber == "" {
			existing, err := st.ListDocuments(ctx)
			if err != nil {
				return err
			}
			doc.SerialNumber = documentSerial(existing, doc)
		}
		now := s.now().UTC()
		doc.Timestamps = domain.Timestamps{CreatedAt: now, UpdatedAt: now}
		if err := st.SaveDocument(ctx, doc); err != nil {
			return err
		}
		_, err := s.audit.AppendAuditLog(ctx, domain.AuditLogEntry{
			Action:     domain.ActionCreate,
			EntityType: domain.EntityDocument,
			EntityID:   doc.ID,
			UserID:     userID,
			NewState:   snapshot(documentStateOf(doc)),
		})
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create document", slog.String("document_type", string(doc.Type)))
		return nil, err
	}

	s.LogInfo(ctx, "Document created",
		slog.String("document_id", doc.ID),
		slog.String("serial_number", doc.SerialNumber))
	return &doc, nil
}

func (s *documentService) PostStoredDocument(ctx context.Context, id string, userID string) (*domain.AccountingDocument, *domain.JournalEntry, error) {
	var (
		doc   *domain.AccountingDocument
		entry *domain.JournalEntry
	)
	err := s.runInTx(ctx, func(ctx context.Context, st portsrepo.Store) error {
		var err error
		doc, err = st.FindDocumentByID(ctx, id)
		if err != nil {
			return err
		}
		if doc.IsPosted() {
			return fmt.Errorf("%w: document %s is already posted as journal entry %s",
				apperrors.ErrConflict, doc.ID, doc.JournalEntryID)
		}

		entry, err = s.posting.PostDocument(ctx, *doc, userID)
		if err != nil || entry == nil {
			return err
		}

		before := documentStateOf(*doc)
		doc.JournalEntryID = entry.ID
		doc.UpdatedAt = s.now().UTC()
		if err := st.SaveDocument(ctx, *doc); err != nil {
			return err
		}
		_, err = s.audit.AppendAuditLog(ctx, domain.AuditLogEntry{
			Action:        domain.ActionUpdate,
			EntityType:    domain.EntityDocument,
			EntityID:      doc.ID,
			UserID:        userID,
			Reason:        fmt.Sprintf("Posted as %s", entry.SerialNumber),
			PreviousState: snapshot(before),
			NewState:      snapshot(documentStateOf(*doc)),
		})
		return err
	})
	if err != nil {
		if !apperrors.IsClientError(err) {
			s.LogError(ctx, err, "Failed to post document", slog.String("document_id", id))
		}
		return nil, nil, err
	}
	return doc, entry, nil
}

func (s *documentService) CancelDocument(ctx context.Context, id string, userID string) (*domain.AccountingDocument, error) {
	var doc *domain.AccountingDocument
	err := s.runInTx(ctx, func(ctx context.Context, st portsrepo.Store) error {
		var err error
		doc, err = st.FindDocumentByID(ctx, id)
		if err != nil {
			return err
		}
		if doc.Status == domain.StatusCancelled {
			return nil
		}

		before := documentStateOf(*doc)
		reason := "Document cancelled"
		if doc.IsPosted() {
			result, err := s.journal.ReverseJournalEntry(ctx, doc.JournalEntryID, s.now().UTC(), userID)
			if err != nil {
				return err
			}
			if result.Applied() {
				reason = fmt.Sprintf("Document cancelled; entry reversed by %s", result.Entry.SerialNumber)
			}
		}

		doc.Status = domain.StatusCancelled
		doc.UpdatedAt = s.now().UTC()
		if err := st.SaveDocument(ctx, *doc); err != nil {
			return err
		}
		_, err = s.audit.AppendAuditLog(ctx, domain.AuditLogEntry{
			Action:        domain.ActionCancel,
			EntityType:    domain.EntityDocument,
			EntityID:      doc.ID,
			UserID:        userID,
			Reason:        reason,
			PreviousState: snapshot(before),
			NewState:      snapshot(documentStateOf(*doc)),
		})
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to cancel document", slog.String("document_id", id))
		return nil, err
	}
	return doc, nil
}
