package services

import (
	"context"

	"github.com/SscSPs/property_ledger/internal/core/domain"
)

// PostingSvc translates accounting documents into journal lines and posts them.
type PostingSvc interface {
	// ResolveDebitAccountForReceipt picks the money-in account for doc from the active chart.
	// It returns nil when none of the candidate codes exist.
	ResolveDebitAccountForReceipt(ctx context.Context, doc domain.AccountingDocument) (*domain.ChartAccount, error)

	// GeneratePostingLines returns no lines for DRAFT and CANCELLED documents and for
	// non-posting types. A missing required account is an ErrIncompleteChart error.
	GeneratePostingLines(ctx context.Context, doc domain.AccountingDocument) ([]domain.JournalLine, error)

	// PostDocument creates an APPROVED journal entry for doc. It returns nil when there
	// is nothing to post. It does not check whether doc was posted before.
	PostDocument(ctx context.Context, doc domain.AccountingDocument, userID string) (*domain.JournalEntry, error)
}
