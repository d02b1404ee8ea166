package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/property_ledger/internal/core/ports/services"
	"github.com/SscSPs/property_ledger/internal/dto"
	"github.com/SscSPs/property_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to the chart of accounts.
type accountHandler struct {
	accountService   portssvc.AccountSvcFacade
	journalService   portssvc.JournalCalculatorSvc
	analyticsService portssvc.AnalyticsSvc
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade, js portssvc.JournalCalculatorSvc, an portssvc.AnalyticsSvc) *accountHandler {
	return &accountHandler{
		accountService:   as,
		journalService:   js,
		analyticsService: an,
	}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade, journalService portssvc.JournalCalculatorSvc, analyticsService portssvc.AnalyticsSvc) {
	h := newAccountHandler(accountService, journalService, analyticsService)

	accounts := rg.Group("/accounts")
	{
		accounts.GET("", h.listAccounts)
		accounts.PUT("", h.replaceChart)
		accounts.GET("/balances", h.listBalances)
		accounts.POST("/suggest", h.suggestAccount)
	}
}

func (h *accountHandler) listAccounts(c *gin.Context) {
	accounts, err := h.accountService.ListAccounts(c.Request.Context())
	if err != nil {
		respondError(c, err, "list accounts")
		return
	}
	c.JSON(http.StatusOK, accounts)
}

// replaceChart swaps in a full chart snapshot from the chart manager.
func (h *accountHandler) replaceChart(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ReplaceChartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err, "request format")
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	accounts, err := h.accountService.ReplaceChart(c.Request.Context(), req.ToDomain(), userID)
	if err != nil {
		respondError(c, err, "replace chart of accounts")
		return
	}

	logger.Info("Chart of accounts replaced", slog.Int("accounts", len(accounts)))
	c.JSON(http.StatusOK, accounts)
}

// listBalances returns every account with its signed balance, in chart order.
func (h *accountHandler) listBalances(c *gin.Context) {
	ctx := c.Request.Context()
	accounts, err := h.accountService.ListAccounts(ctx)
	if err != nil {
		respondError(c, err, "list account balances")
		return
	}
	balances, err := h.journalService.GetAccountBalances(ctx)
	if err != nil {
		respondError(c, err, "list account balances")
		return
	}

	resp := make([]dto.AccountBalanceResponse, len(accounts))
	for i, a := range accounts {
		resp[i] = dto.AccountBalanceResponse{Account: a, Balance: balances[a.ID].StringFixed(2)}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *accountHandler) suggestAccount(c *gin.Context) {
	var req dto.SuggestAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err, "request format")
		return
	}

	account, err := h.analyticsService.SuggestAccount(c.Request.Context(), req.Description)
	if err != nil {
		respondError(c, err, "suggest account")
		return
	}
	c.JSON(http.StatusOK, gin.H{"account": account})
}
