package dto

import (
	"fmt"
	"time"

	"github.com/SscSPs/property_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DocumentItemRequest is one line of a document.
type DocumentItemRequest struct {
	Description string          `json:"description" jsonschema:"description=Free-text label of the line"`
	Quantity    decimal.Decimal `json:"quantity" jsonschema:"type=number"`
	UnitPrice   decimal.Decimal `json:"unitPrice" jsonschema:"type=number"`
	Amount      decimal.Decimal `json:"amount" jsonschema:"type=number"`
	AccountID   string          `json:"accountId,omitempty" jsonschema:"description=Chart account id the amount is posted to (purchase invoices)"`
}

// ChequeDetailsRequest describes a cheque attached to a document.
type ChequeDetailsRequest struct {
	ChequeNumber string `json:"chequeNumber" binding:"required"`
	BankName     string `json:"bankName,omitempty"`
	DueDate      string `json:"dueDate,omitempty" binding:"omitempty,dateonly" jsonschema:"format=date"`
}

// CreateDocumentRequest defines an accounting document submitted by an upstream workflow.
type CreateDocumentRequest struct {
	SerialNumber    string                `json:"serialNumber,omitempty"`
	Type            domain.DocumentType   `json:"type" binding:"required,oneof=INVOICE RECEIPT PAYMENT DEPOSIT PURCHASE_INV QUOTE CREDIT_NOTE DEBIT_NOTE PURCHASE_ORDER JOURNAL OTHER" jsonschema:"enum=INVOICE,enum=RECEIPT,enum=PAYMENT,enum=DEPOSIT,enum=PURCHASE_INV,enum=QUOTE,enum=CREDIT_NOTE,enum=DEBIT_NOTE,enum=PURCHASE_ORDER,enum=JOURNAL,enum=OTHER"`
	Category        string                `json:"category,omitempty" binding:"omitempty,oneof=SALES PURCHASE" jsonschema:"enum=SALES,enum=PURCHASE"`
	Status          domain.EntryStatus    `json:"status" binding:"required,oneof=DRAFT PENDING APPROVED PAID CANCELLED" jsonschema:"enum=DRAFT,enum=PENDING,enum=APPROVED,enum=PAID,enum=CANCELLED"`
	Date            string                `json:"date" binding:"required,dateonly" jsonschema:"format=date"`
	DueDate         string                `json:"dueDate,omitempty" binding:"omitempty,dateonly" jsonschema:"format=date"`
	ContactID       string                `json:"contactId,omitempty"`
	BankAccountID   string                `json:"bankAccountId,omitempty"`
	PropertyID      string                `json:"propertyId,omitempty"`
	ProjectID       string                `json:"projectId,omitempty"`
	BookingID       string                `json:"bookingId,omitempty"`
	ContractID      string                `json:"contractId,omitempty"`
	Amount          decimal.Decimal       `json:"amount" jsonschema:"type=number,description=Pre-tax amount"`
	Currency        string                `json:"currency" binding:"required,len=3"`
	VATRate         decimal.Decimal       `json:"vatRate" jsonschema:"type=number"`
	VATAmount       decimal.Decimal       `json:"vatAmount" jsonschema:"type=number"`
	TotalAmount     decimal.Decimal       `json:"totalAmount" jsonschema:"type=number,description=Amount including VAT"`
	DescriptionAr   string                `json:"descriptionAr,omitempty"`
	DescriptionEn   string                `json:"descriptionEn,omitempty"`
	Items           []DocumentItemRequest `json:"items,omitempty" binding:"omitempty,dive"`
	PaymentMethod   domain.PaymentMethod  `json:"paymentMethod,omitempty" binding:"omitempty,oneof=CASH BANK_TRANSFER CHEQUE" jsonschema:"enum=CASH,enum=BANK_TRANSFER,enum=CHEQUE"`
	ReferenceNumber string                `json:"referenceNumber,omitempty"`
	ChequeDetails   *ChequeDetailsRequest `json:"chequeDetails,omitempty"`
	Notes           string                `json:"notes,omitempty"`
	Attachments     []string              `json:"attachments,omitempty"`
	PurchaseOrderNo string                `json:"purchaseOrderNumber,omitempty"`
	Reference       string                `json:"reference,omitempty"`
	Branch          string                `json:"branch,omitempty"`
}

// ListDocumentsParams filters the document list.
type ListDocumentsParams struct {
	Type   string `form:"type"`
	Status string `form:"status"`
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := domain.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ToDomain converts the request into a document. Id and timestamps are left for the service.
func (r CreateDocumentRequest) ToDomain() (domain.AccountingDocument, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return domain.AccountingDocument{}, fmt.Errorf("invalid date %q: %w", r.Date, err)
	}
	dueDate, err := parseOptionalDate(r.DueDate)
	if err != nil {
		return domain.AccountingDocument{}, fmt.Errorf("invalid dueDate %q: %w", r.DueDate, err)
	}

	doc := domain.AccountingDocument{
		SerialNumber:    r.SerialNumber,
		Type:            r.Type,
		Category:        domain.DocumentCategory(r.Category),
		Status:          r.Status,
		Date:            date,
		DueDate:         dueDate,
		ContactID:       r.ContactID,
		BankAccountID:   r.BankAccountID,
		PropertyID:      r.PropertyID,
		ProjectID:       r.ProjectID,
		BookingID:       r.BookingID,
		ContractID:      r.ContractID,
		Amount:          r.Amount,
		Currency:        r.Currency,
		VATRate:         r.VATRate,
		VATAmount:       r.VATAmount,
		TotalAmount:     r.TotalAmount,
		DescriptionAr:   r.DescriptionAr,
		DescriptionEn:   r.DescriptionEn,
		PaymentMethod:   r.PaymentMethod,
		ReferenceNumber: r.ReferenceNumber,
		Notes:           r.Notes,
		Attachments:     r.Attachments,
		PurchaseOrderNo: r.PurchaseOrderNo,
		Reference:       r.Reference,
		Branch:          r.Branch,
	}
	for _, it := range r.Items {
		doc.Items = append(doc.Items, domain.DocumentItem{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Amount:      it.Amount,
			AccountID:   it.AccountID,
		})
	}
	if r.ChequeDetails != nil {
		chequeDue, err := parseOptionalDate(r.ChequeDetails.DueDate)
		if err != nil {
			return domain.AccountingDocument{}, fmt.Errorf("invalid cheque dueDate %q: %w", r.ChequeDetails.DueDate, err)
		}
		doc.ChequeDetails = &domain.ChequeDetails{
			ChequeNumber: r.ChequeDetails.ChequeNumber,
			BankName:     r.ChequeDetails.BankName,
			DueDate:      chequeDue,
		}
	}
	return doc, nil
}

// PostDocumentResponse reports the outcome of posting a stored document.
type PostDocumentResponse struct {
	Posted       bool                       `json:"posted"`
	Document     *domain.AccountingDocument `json:"document"`
	JournalEntry *domain.JournalEntry       `json:"journalEntry,omitempty"`
}
