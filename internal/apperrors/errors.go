package apperrors

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates a concurrent modification or a state that forbids the action.
var ErrConflict = errors.New("conflict")

// ErrForbidden indicates that the caller may not perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrInternal indicates an infrastructure failure.
var ErrInternal = errors.New("internal error")

var (
	// ErrPeriodLocked is returned when a write targets a date inside a locked fiscal period.
	ErrPeriodLocked = errors.New("fiscal period is locked")
	// ErrUnbalancedEntry is returned when total debits and credits differ by more than 0.01.
	ErrUnbalancedEntry = errors.New("journal entry is unbalanced")
	// ErrIncompleteChart is returned when a posting rule needs an account code the chart does not have.
	ErrIncompleteChart = errors.New("incomplete chart of accounts")
)

// AppError wraps an infrastructure error with an HTTP-ish status code and message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	if e.Err == nil && e.Code >= 500 {
		return ErrInternal
	}
	return e.Err
}

// PeriodLockedError identifies the date and period that rejected a write.
type PeriodLockedError struct {
	Date       time.Time
	PeriodCode string
}

func (e *PeriodLockedError) Error() string {
	return fmt.Sprintf("fiscal period %s is locked for date %s", e.PeriodCode, e.Date.Format("2006-01-02"))
}

func (e *PeriodLockedError) Unwrap() error { return ErrPeriodLocked }

// UnbalancedEntryError carries the totals that failed the balance check.
type UnbalancedEntryError struct {
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

func (e *UnbalancedEntryError) Error() string {
	return fmt.Sprintf("journal entry is unbalanced: debits %s, credits %s, difference %s",
		e.TotalDebit.StringFixed(2), e.TotalCredit.StringFixed(2),
		e.TotalDebit.Sub(e.TotalCredit).Abs().StringFixed(2))
}

func (e *UnbalancedEntryError) Unwrap() error { return ErrUnbalancedEntry }

// MissingAccountError names the chart codes a document type needed but could not find.
type MissingAccountError struct {
	DocumentType string
	Codes        []string
}

func (e *MissingAccountError) Error() string {
	return fmt.Sprintf("incomplete chart of accounts: %s posting requires account code(s) %s",
		e.DocumentType, strings.Join(e.Codes, ", "))
}

func (e *MissingAccountError) Unwrap() error { return ErrIncompleteChart }

// IsClientError reports whether err was caused by the caller's input or state rather than infrastructure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrDuplicate) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrPeriodLocked) ||
		errors.Is(err, ErrUnbalancedEntry) ||
		errors.Is(err, ErrIncompleteChart)
}
