package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	"github.com/SscSPs/property_ledger/internal/core/domain"
	"github.com/SscSPs/property_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrUnbalancedEntry),
		errors.Is(err, apperrors.ErrIncompleteChart):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrPeriodLocked),
		errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as JSON. Server errors hide their detail behind "Failed to <action>".
func respondError(c *gin.Context, err error, action string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": "Failed to " + action})
		return
	}

	logger.Warn("Rejected request to "+action, slog.String("error", err.Error()), slog.Int("status", status))
	body := gin.H{"error": err.Error()}
	var missing *apperrors.MissingAccountError
	if errors.As(err, &missing) {
		body["missingCodes"] = missing.Codes
	}
	var locked *apperrors.PeriodLockedError
	if errors.As(err, &locked) {
		body["periodCode"] = locked.PeriodCode
	}
	c.JSON(status, body)
}

// respondBadRequest reports malformed input that never reached a service.
func respondBadRequest(c *gin.Context, err error, what string) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Invalid "+what, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + what + ": " + err.Error()})
}

// respondResult writes a journal mutation outcome. Only applied results carry an entry.
func respondResult(c *gin.Context, result domain.JournalResult, status int) {
	switch result.Outcome {
	case domain.OutcomeApplied:
		c.JSON(status, result.Entry)
	case domain.OutcomeSuperseded:
		c.JSON(http.StatusConflict, gin.H{"error": "Journal entry has been reversed and can no longer change", "outcome": result.Outcome})
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "Journal entry not found", "outcome": domain.OutcomeNotFound})
	}
}

// requireUserID returns the authenticated subject or writes a 401.
func requireUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
	return userID, ok
}
