package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/property_ledger/internal/core/domain"
	"github.com/SscSPs/property_ledger/internal/models"
)

// ToModelDocument converts a domain AccountingDocument to a model AccountingDocument
func ToModelDocument(d domain.AccountingDocument) (models.AccountingDocument, error) {
	payload, err := json.Marshal(d)
	if err != nil {
		return models.AccountingDocument{}, fmt.Errorf("failed to encode document %s: %w", d.ID, err)
	}
	return models.AccountingDocument{
		DocumentID:     d.ID,
		SerialNumber:   d.SerialNumber,
		DocType:        string(d.Type),
		Status:         string(d.Status),
		DocDate:        d.Date,
		JournalEntryID: NullString(d.JournalEntryID),
		Payload:        payload,
		Timestamps:     ToModelTimestamps(d.Timestamps),
	}, nil
}

// ToDomainDocument decodes the stored payload of a model AccountingDocument
func ToDomainDocument(m models.AccountingDocument) (domain.AccountingDocument, error) {
	var d domain.AccountingDocument
	if err := json.Unmarshal(m.Payload, &d); err != nil {
		return domain.AccountingDocument{}, fmt.Errorf("failed to decode document %s: %w", m.DocumentID, err)
	}
	d.Date = d.Date.UTC()
	return d, nil
}
