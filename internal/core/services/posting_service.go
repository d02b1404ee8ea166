package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	"github.com/SscSPs/property_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/property_ledger/internal/core/ports/services"
	"github.com/SscSPs/property_ledger/internal/platform/metrics"
	"github.com/SscSPs/property_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

type postingService struct {
	BaseService
	journal portssvc.JournalWriterSvc
}

// NewPostingService creates the posting rules engine on top of the journal engine.
func NewPostingService(store portsrepo.TxStore, journal portssvc.JournalWriterSvc, opts ...Option) portssvc.PostingSvc {
	return &postingService{
		BaseService: newBaseService(store, opts...),
		journal:     journal,
	}
}

var _ portssvc.PostingSvc = (*postingService)(nil)

func (s *postingService) chart(ctx context.Context) (accounting.Chart, error) {
	accounts, err := s.repo(ctx).ListAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load chart of accounts")
		return accounting.Chart{}, err
	}
	return accounting.NewChart(accounts), nil
}

// effectivePaymentMethod treats an unset method with a bank account as a bank transfer.
func effectivePaymentMethod(doc domain.AccountingDocument) domain.PaymentMethod {
	if doc.PaymentMethod == "" && doc.BankAccountID != "" {
		return domain.PaymentBankTransfer
	}
	return doc.PaymentMethod
}

// receiptAccountCodes lists the codes tried, in order, for the money-in side of doc.
// A cheque without a cheques-under-collection account falls through to the bank.
func receiptAccountCodes(doc domain.AccountingDocument) []string {
	switch effectivePaymentMethod(doc) {
	case domain.PaymentCheque:
		return []string{domain.CodeChequesUnderCollection, domain.CodeBank}
	case domain.PaymentBankTransfer:
		return []string{domain.CodeBank}
	default:
		return []string{domain.CodeCash}
	}
}

func (s *postingService) ResolveDebitAccountForReceipt(ctx context.Context, doc domain.AccountingDocument) (*domain.ChartAccount, error) {
	chart, err := s.chart(ctx)
	if err != nil {
		return nil, err
	}
	return chart.FirstOf(receiptAccountCodes(doc)...), nil
}

func debitLine(acc *domain.ChartAccount, amount decimal.Decimal, doc domain.AccountingDocument) domain.JournalLine {
	return domain.JournalLine{
		AccountID:     acc.ID,
		Debit:         amount,
		Credit:        decimal.Zero,
		DescriptionAr: doc.DescriptionAr,
		DescriptionEn: doc.DescriptionEn,
	}
}

func creditLine(acc *domain.ChartAccount, amount decimal.Decimal, doc domain.AccountingDocument) domain.JournalLine {
	return domain.JournalLine{
		AccountID:     acc.ID,
		Debit:         decimal.Zero,
		Credit:        amount,
		DescriptionAr: doc.DescriptionAr,
		DescriptionEn: doc.DescriptionEn,
	}
}

// missing returns a MissingAccountError naming codes, or nil when every account resolved.
func missing(doc domain.AccountingDocument, required map[string]*domain.ChartAccount, order ...string) error {
	var codes []string
	for _, code := range order {
		if required[code] == nil {
			codes = append(codes, code)
		}
	}
	if len(codes) == 0 {
		return nil
	}
	return &apperrors.MissingAccountError{DocumentType: string(doc.Type), Codes: codes}
}

func (s *postingService) GeneratePostingLines(ctx context.Context, doc domain.AccountingDocument) ([]domain.JournalLine, error) {
	if doc.Status == domain.StatusDraft || doc.Status == domain.StatusCancelled {
		return []domain.JournalLine{}, nil
	}

	switch doc.Type {
	case domain.DocReceipt, domain.DocInvoice, domain.DocDeposit, domain.DocPayment, domain.DocPurchaseInv:
	default:
		// Quotes and purchase orders only post after conversion upstream; journals and others never post.
		return []domain.JournalLine{}, nil
	}

	chart, err := s.chart(ctx)
	if err != nil {
		return nil, err
	}

	var lines []domain.JournalLine
	switch doc.Type {
	case domain.DocReceipt, domain.DocInvoice:
		lines, err = receiptLines(chart, doc)
	case domain.DocPayment:
		lines, err = paymentLines(chart, doc)
	case domain.DocDeposit:
		lines, err = depositLines(chart, doc)
	case domain.DocPurchaseInv:
		lines, err = purchaseInvoiceLines(chart, doc)
	}
	if err != nil {
		s.LogError(ctx, err, "Cannot generate posting lines",
			slog.String("document_id", doc.ID),
			slog.String("document_type", string(doc.Type)))
		return nil, err
	}
	return lines, nil
}

// receiptLines debits money-in for the gross total and credits revenue for the net amount,
// plus output VAT when a VAT account exists.
func receiptLines(chart accounting.Chart, doc domain.AccountingDocument) ([]domain.JournalLine, error) {
	receiptCodes := receiptAccountCodes(doc)
	debitAcc := chart.FirstOf(receiptCodes...)
	revenueAcc := chart.FirstOf(domain.CodeRevenue, domain.CodeRevenueAlt)

	debitKey := strings.Join(receiptCodes, "|")
	revenueKey := domain.CodeRevenue + "|" + domain.CodeRevenueAlt
	if err := missing(doc, map[string]*domain.ChartAccount{debitKey: debitAcc, revenueKey: revenueAcc}, debitKey, revenueKey); err != nil {
		return nil, err
	}

	lines := []domain.JournalLine{
		debitLine(debitAcc, doc.TotalAmount, doc),
		creditLine(revenueAcc, doc.Amount, doc),
	}
	if doc.VATAmount.IsPositive() {
		if vatAcc := chart.FindByCode(domain.CodeVAT); vatAcc != nil {
			lines = append(lines, creditLine(vatAcc, doc.VATAmount, doc))
		}
	}
	return lines, nil
}

// paymentLines debits expense and credits cash, or bank when the document names a bank account.
func paymentLines(chart accounting.Chart, doc domain.AccountingDocument) ([]domain.JournalLine, error) {
	sourceCode := domain.CodeCash
	if doc.BankAccountID != "" {
		sourceCode = domain.CodeBank
	}
	expenseAcc := chart.FindByCode(domain.CodeExpense)
	sourceAcc := chart.FindByCode(sourceCode)
	if err := missing(doc, map[string]*domain.ChartAccount{domain.CodeExpense: expenseAcc, sourceCode: sourceAcc},
		domain.CodeExpense, sourceCode); err != nil {
		return nil, err
	}
	return []domain.JournalLine{
		debitLine(expenseAcc, doc.TotalAmount, doc),
		creditLine(sourceAcc, doc.TotalAmount, doc),
	}, nil
}

// depositLines books money received as a liability; deposits never touch revenue.
func depositLines(chart accounting.Chart, doc domain.AccountingDocument) ([]domain.JournalLine, error) {
	receiptCodes := receiptAccountCodes(doc)
	debitAcc := chart.FirstOf(receiptCodes...)
	depositAcc := chart.FindByCode(domain.CodeDepositsReceived)

	debitKey := strings.Join(receiptCodes, "|")
	if err := missing(doc, map[string]*domain.ChartAccount{debitKey: debitAcc, domain.CodeDepositsReceived: depositAcc},
		debitKey, domain.CodeDepositsReceived); err != nil {
		return nil, err
	}
	return []domain.JournalLine{
		debitLine(debitAcc, doc.TotalAmount, doc),
		creditLine(depositAcc, doc.TotalAmount, doc),
	}, nil
}

// purchaseInvoiceLines credits payables for the gross total. Items with an account are debited
// to it, the unallocated remainder of the net amount goes to expense, and input VAT is debited.
func purchaseInvoiceLines(chart accounting.Chart, doc domain.AccountingDocument) ([]domain.JournalLine, error) {
	payablesAcc := chart.FindByCode(domain.CodePayables)
	expenseAcc := chart.FindByCode(domain.CodeExpense)
	if err := missing(doc, map[string]*domain.ChartAccount{domain.CodePayables: payablesAcc, domain.CodeExpense: expenseAcc},
		domain.CodePayables, domain.CodeExpense); err != nil {
		return nil, err
	}

	lines := make([]domain.JournalLine, 0, len(doc.Items)+3)
	allocated := decimal.Zero
	for _, item := range doc.Items {
		if item.AccountID == "" {
			continue
		}
		lines = append(lines, domain.JournalLine{
			AccountID:     item.AccountID,
			Debit:         item.Amount,
			Credit:        decimal.Zero,
			DescriptionAr: item.Description,
			DescriptionEn: item.Description,
		})
		allocated = allocated.Add(item.Amount)
	}

	if remainder := doc.Amount.Sub(allocated); remainder.IsPositive() {
		lines = append(lines, debitLine(expenseAcc, remainder, doc))
	}
	if doc.VATAmount.IsPositive() {
		if vatAcc := chart.FindByCode(domain.CodeVAT); vatAcc != nil {
			lines = append(lines, debitLine(vatAcc, doc.VATAmount, doc))
		}
	}
	lines = append(lines, creditLine(payablesAcc, doc.TotalAmount, doc))
	return lines, nil
}

func (s *postingService) PostDocument(ctx context.Context, doc domain.AccountingDocument, userID string) (*domain.JournalEntry, error) {
	lines, err := s.GeneratePostingLines(ctx, doc)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		s.LogDebug(ctx, "Document produces no postings",
			slog.String("document_id", doc.ID),
			slog.String("document_type", string(doc.Type)),
			slog.String("status", string(doc.Status)))
		return nil, nil
	}

	fallback := fmt.Sprintf("%s %s", doc.Type, doc.SerialNumber)
	descAr, descEn := doc.DescriptionAr, doc.DescriptionEn
	if descAr == "" {
		descAr = fallback
	}
	if descEn == "" {
		descEn = fallback
	}

	entry, err := s.journal.CreateJournalEntry(ctx, domain.JournalEntryInput{
		Date:          doc.Date,
		Lines:         lines,
		DescriptionAr: descAr,
		DescriptionEn: descEn,
		Status:        domain.StatusApproved,
		EntryLinks:    doc.Links(),
	}, userID)
	if err != nil {
		return nil, err
	}

	metrics.DocumentPostings.WithLabelValues(string(doc.Type)).Inc()
	s.LogInfo(ctx, "Document posted",
		slog.String("document_id", doc.ID),
		slog.String("document_type", string(doc.Type)),
		slog.String("entry_id", entry.ID),
		slog.String("serial_number", entry.SerialNumber))
	return entry, nil
}
