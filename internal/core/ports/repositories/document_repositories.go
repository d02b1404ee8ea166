package repositories

import (
	"context"

	"github.com/SscSPs/property_ledger/internal/core/domain"
)

// DocumentReader defines read operations for accounting documents
type DocumentReader interface {
	ListDocuments(ctx context.Context) ([]domain.AccountingDocument, error)
	// FindDocumentByID returns apperrors.ErrNotFound when the document does not exist.
	FindDocumentByID(ctx context.Context, id string) (*domain.AccountingDocument, error)
}

// DocumentWriter defines write operations for accounting documents
type DocumentWriter interface {
	// SaveDocument inserts the document or replaces the stored one with the same id.
	SaveDocument(ctx context.Context, doc domain.AccountingDocument) error
}

// DocumentRepositoryFacade combines all document-related repository interfaces
type DocumentRepositoryFacade interface {
	DocumentReader
	DocumentWriter
}
