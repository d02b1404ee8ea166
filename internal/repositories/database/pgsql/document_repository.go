package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	"github.com/SscSPs/property_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/property_ledger/internal/models"
	"github.com/SscSPs/property_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxDocumentRepository struct {
	BaseRepository
}

var _ portsrepo.DocumentRepositoryFacade = (*PgxDocumentRepository)(nil)

// ListDocuments returns documents most recently created first.
func (r *PgxDocumentRepository) ListDocuments(ctx context.Context) ([]domain.AccountingDocument, error) {
	rows, err := r.db.Query(ctx, `SELECT document_id, payload FROM accounting_documents ORDER BY seq DESC;`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list documents", err)
	}
	defer rows.Close()

	docs := make([]domain.AccountingDocument, 0)
	for rows.Next() {
		var m models.AccountingDocument
		if err := rows.Scan(&m.DocumentID, &m.Payload); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan document", err)
		}
		d, err := mapping.ToDomainDocument(m)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to decode document", err)
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate documents", err)
	}
	return docs, nil
}

func (r *PgxDocumentRepository) FindDocumentByID(ctx context.Context, id string) (*domain.AccountingDocument, error) {
	m := models.AccountingDocument{DocumentID: id}
	err := r.db.QueryRow(ctx, `SELECT payload FROM accounting_documents WHERE document_id = $1;`, id).Scan(&m.Payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: document %s", apperrors.ErrNotFound, id)
		}
		return nil, apperrors.NewAppError(500, "failed to find document "+id, err)
	}
	d, err := mapping.ToDomainDocument(m)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to decode document", err)
	}
	return &d, nil
}

// SaveDocument upserts by id. An update keeps the original insertion position.
func (r *PgxDocumentRepository) SaveDocument(ctx context.Context, doc domain.AccountingDocument) error {
	m, err := mapping.ToModelDocument(doc)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode document", err)
	}
	query := `
		INSERT INTO accounting_documents (document_id, serial_number, doc_type, status, doc_date, journal_entry_id, payload, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (document_id) DO UPDATE
		SET serial_number = EXCLUDED.serial_number, doc_type = EXCLUDED.doc_type, status = EXCLUDED.status,
		    doc_date = EXCLUDED.doc_date, journal_entry_id = EXCLUDED.journal_entry_id,
		    payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at;
	`
	_, err = r.db.Exec(ctx, query,
		m.DocumentID, m.SerialNumber, m.DocType, m.Status, m.DocDate, m.JournalEntryID,
		string(m.Payload), m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save document "+m.DocumentID, err)
	}
	r.touch(ctx, portsrepo.CollectionDocuments)
	return nil
}
