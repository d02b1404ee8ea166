package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/property_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/property_ledger/internal/core/ports/services"
	"github.com/SscSPs/property_ledger/internal/dto"
	"github.com/SscSPs/property_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests related to journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(js portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{
		journalService: js,
	}
}

// registerJournalRoutes registers journal entry routes
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	entries := rg.Group("/journal-entries")
	{
		entries.GET("", h.listJournalEntries)
		entries.POST("", h.createJournalEntry)
		entries.GET("/:id", h.getJournalEntry)
		entries.PATCH("/:id", h.updateJournalEntry)
		entries.POST("/:id/reverse", h.reverseJournalEntry)
		entries.POST("/:id/cancel", h.cancelJournalEntry)
	}
}

// listJournalEntries returns one page of entries, newest date first.
func (h *journalHandler) listJournalEntries(c *gin.Context) {
	var params dto.ListJournalEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBadRequest(c, err, "query parameters")
		return
	}

	resp, err := h.journalService.ListJournalEntries(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "list journal entries")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *journalHandler) createJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err, "request format")
		return
	}
	input, err := req.ToDomain()
	if err != nil {
		respondBadRequest(c, err, "journal entry")
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	entry, err := h.journalService.CreateJournalEntry(c.Request.Context(), input, userID)
	if err != nil {
		respondError(c, err, "create journal entry")
		return
	}

	logger.Info("Journal entry created", slog.String("entry_id", entry.ID), slog.String("serial_number", entry.SerialNumber))
	c.JSON(http.StatusCreated, entry)
}

func (h *journalHandler) getJournalEntry(c *gin.Context) {
	entry, err := h.journalService.GetJournalEntry(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "retrieve journal entry")
		return
	}
	c.JSON(http.StatusOK, entry)
}

// updateJournalEntry applies a partial update. Reversed entries answer 409.
func (h *journalHandler) updateJournalEntry(c *gin.Context) {
	var req dto.UpdateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err, "request format")
		return
	}
	patch, err := req.ToDomain()
	if err != nil {
		respondBadRequest(c, err, "journal entry")
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	result, err := h.journalService.UpdateJournalEntry(c.Request.Context(), c.Param("id"), patch, userID)
	if err != nil {
		respondError(c, err, "update journal entry")
		return
	}
	respondResult(c, result, http.StatusOK)
}

// reverseJournalEntry responds with the new reversing entry.
func (h *journalHandler) reverseJournalEntry(c *gin.Context) {
	var req dto.ReverseJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err, "request format")
		return
	}
	reverseDate, err := domain.ParseDate(req.ReverseDate)
	if err != nil {
		respondBadRequest(c, err, "reverseDate")
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	result, err := h.journalService.ReverseJournalEntry(c.Request.Context(), c.Param("id"), reverseDate, userID)
	if err != nil {
		respondError(c, err, "reverse journal entry")
		return
	}
	respondResult(c, result, http.StatusCreated)
}

func (h *journalHandler) cancelJournalEntry(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	result, err := h.journalService.CancelJournalEntry(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "cancel journal entry")
		return
	}
	respondResult(c, result, http.StatusOK)
}
