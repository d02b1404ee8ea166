package services

import (
	"context"

	"github.com/SscSPs/property_ledger/internal/core/domain"
	"github.com/SscSPs/property_ledger/internal/dto"
)

// DocumentReaderSvc defines read operations for stored accounting documents
type DocumentReaderSvc interface {
	GetDocument(ctx context.Context, id string) (*domain.AccountingDocument, error)
	ListDocuments(ctx context.Context, params dto.ListDocumentsParams) ([]domain.AccountingDocument, error)
}

// DocumentWriterSvc defines the stored-document workflow
type DocumentWriterSvc interface {
	CreateDocument(ctx context.Context, doc domain.AccountingDocument, userID string) (*domain.AccountingDocument, error)

	// PostStoredDocument posts a stored document once and links the entry back to it.
	// A document that already carries a journal entry id is rejected with ErrConflict.
	PostStoredDocument(ctx context.Context, id string, userID string) (*domain.AccountingDocument, *domain.JournalEntry, error)

	// CancelDocument flips the document to CANCELLED and reverses its entry if it was posted.
	CancelDocument(ctx context.Context, id string, userID string) (*domain.AccountingDocument, error)
}

// DocumentSvcFacade combines all document-related service interfaces
type DocumentSvcFacade interface {
	DocumentReaderSvc
	DocumentWriterSvc
}
