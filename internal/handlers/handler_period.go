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

// periodHandler handles HTTP requests related to fiscal periods.
type periodHandler struct {
	periodService portssvc.PeriodSvcFacade
}

func registerPeriodRoutes(rg *gin.RouterGroup, periodService portssvc.PeriodSvcFacade) {
	h := &periodHandler{periodService: periodService}

	periods := rg.Group("/fiscal-periods")
	{
		periods.GET("", h.listPeriods)
		periods.POST("", h.createPeriod)
		periods.GET("/lookup", h.lookupPeriod)
		periods.POST("/:id/lock", h.lockPeriod)
	}
}

func (h *periodHandler) listPeriods(c *gin.Context) {
	periods, err := h.periodService.GetFiscalPeriods(c.Request.Context())
	if err != nil {
		respondError(c, err, "list fiscal periods")
		return
	}
	c.JSON(http.StatusOK, periods)
}

func (h *periodHandler) createPeriod(c *gin.Context) {
	var req dto.CreateFiscalPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err, "request format")
		return
	}
	start, err := domain.ParseDate(req.StartDate)
	if err != nil {
		respondBadRequest(c, err, "startDate")
		return
	}
	end, err := domain.ParseDate(req.EndDate)
	if err != nil {
		respondBadRequest(c, err, "endDate")
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	period, err := h.periodService.CreateFiscalPeriod(c.Request.Context(), start, end, req.Code, userID)
	if err != nil {
		respondError(c, err, "create fiscal period")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Fiscal period created",
		slog.String("period_id", period.ID), slog.String("code", period.Code))
	c.JSON(http.StatusCreated, period)
}

// lockPeriod is idempotent; locking a locked period returns it unchanged.
func (h *periodHandler) lockPeriod(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	period, err := h.periodService.LockPeriod(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "lock fiscal period")
		return
	}
	c.JSON(http.StatusOK, period)
}

func (h *periodHandler) lookupPeriod(c *gin.Context) {
	raw := c.Query("date")
	date, err := domain.ParseDate(raw)
	if err != nil {
		respondBadRequest(c, err, "date")
		return
	}

	ctx := c.Request.Context()
	period, err := h.periodService.GetPeriodByDate(ctx, date)
	if err != nil {
		respondError(c, err, "look up fiscal period")
		return
	}
	locked, err := h.periodService.IsPeriodLocked(ctx, date)
	if err != nil {
		respondError(c, err, "look up fiscal period")
		return
	}
	c.JSON(http.StatusOK, dto.PeriodLookupResponse{
		Date:     date.Format(domain.DateLayout),
		Period:   period,
		IsLocked: locked,
	})
}
