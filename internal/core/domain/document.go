package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentType identifies the business event an accounting document records.
type DocumentType string

const (
	DocInvoice       DocumentType = "INVOICE"
	DocReceipt       DocumentType = "RECEIPT"
	DocPayment       DocumentType = "PAYMENT"
	DocDeposit       DocumentType = "DEPOSIT"
	DocPurchaseInv   DocumentType = "PURCHASE_INV"
	DocQuote         DocumentType = "QUOTE"
	DocCreditNote    DocumentType = "CREDIT_NOTE"
	DocDebitNote     DocumentType = "DEBIT_NOTE"
	DocPurchaseOrder DocumentType = "PURCHASE_ORDER"
	DocJournal       DocumentType = "JOURNAL"
	DocOther         DocumentType = "OTHER"
)

// IsValid reports whether t is a known document type.
func (t DocumentType) IsValid() bool {
	switch t {
	case DocInvoice, DocReceipt, DocPayment, DocDeposit, DocPurchaseInv, DocQuote,
		DocCreditNote, DocDebitNote, DocPurchaseOrder, DocJournal, DocOther:
		return true
	}
	return false
}

// DocumentCategory groups documents into the sales or purchase side.
type DocumentCategory string

const (
	CategorySales    DocumentCategory = "SALES"
	CategoryPurchase DocumentCategory = "PURCHASE"
)

// PaymentMethod is how money moved for a receipt, payment or deposit.
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "CASH"
	PaymentBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentCheque       PaymentMethod = "CHEQUE"
)

// DocumentItem is one line of a document. AccountID optionally routes the amount
// to a specific chart account when the document is posted.
type DocumentItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Amount      decimal.Decimal `json:"amount"`
	AccountID   string          `json:"accountId,omitempty"`
}

// ChequeDetails describes a cheque received or issued.
type ChequeDetails struct {
	ChequeNumber string     `json:"chequeNumber"`
	BankName     string     `json:"bankName,omitempty"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
}

// AccountingDocument is the source business event that the posting rules translate into a journal entry.
type AccountingDocument struct {
	ID              string           `json:"id"`
	SerialNumber    string           `json:"serialNumber"`
	Type            DocumentType     `json:"type"`
	Category        DocumentCategory `json:"category,omitempty"`
	Status          EntryStatus      `json:"status"`
	Date            time.Time        `json:"date"`
	DueDate         *time.Time       `json:"dueDate,omitempty"`
	ContactID       string           `json:"contactId,omitempty"`
	BankAccountID   string           `json:"bankAccountId,omitempty"`
	PropertyID      string           `json:"propertyId,omitempty"`
	ProjectID       string           `json:"projectId,omitempty"`
	BookingID       string           `json:"bookingId,omitempty"`
	ContractID      string           `json:"contractId,omitempty"`
	Amount          decimal.Decimal  `json:"amount"`
	Currency        string           `json:"currency"`
	VATRate         decimal.Decimal  `json:"vatRate"`
	VATAmount       decimal.Decimal  `json:"vatAmount"`
	TotalAmount     decimal.Decimal  `json:"totalAmount"`
	DescriptionAr   string           `json:"descriptionAr,omitempty"`
	DescriptionEn   string           `json:"descriptionEn,omitempty"`
	Items           []DocumentItem   `json:"items,omitempty"`
	JournalEntryID  string           `json:"journalEntryId,omitempty"`
	PaymentMethod   PaymentMethod    `json:"paymentMethod,omitempty"`
	ReferenceNumber string           `json:"referenceNumber,omitempty"`
	ChequeDetails   *ChequeDetails   `json:"chequeDetails,omitempty"`
	Notes           string           `json:"notes,omitempty"`
	Attachments     []string         `json:"attachments,omitempty"`
	PurchaseOrderNo string           `json:"purchaseOrderNumber,omitempty"`
	Reference       string           `json:"reference,omitempty"`
	Branch          string           `json:"branch,omitempty"`
	Timestamps
}

// IsPosted reports whether a journal entry has already been produced from d.
func (d AccountingDocument) IsPosted() bool {
	return d.JournalEntryID != ""
}

// Links copies the document's cross references into entry links.
func (d AccountingDocument) Links() EntryLinks {
	return EntryLinks{
		DocumentType:  d.Type,
		DocumentID:    d.ID,
		ContactID:     d.ContactID,
		BankAccountID: d.BankAccountID,
		PropertyID:    d.PropertyID,
		ProjectID:     d.ProjectID,
		BookingID:     d.BookingID,
		ContractID:    d.ContractID,
	}
}
