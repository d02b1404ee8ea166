package handlers

import (
	"net/http"
	"time"

	"github.com/SscSPs/property_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/property_ledger/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

type analyticsHandler struct {
	analyticsService portssvc.AnalyticsSvc
	now              func() time.Time
}

func registerAnalyticsRoutes(rg *gin.RouterGroup, analyticsService portssvc.AnalyticsSvc) {
	h := &analyticsHandler{analyticsService: analyticsService, now: time.Now}

	analytics := rg.Group("/analytics")
	{
		analytics.GET("/anomalies", h.anomalies)
		analytics.GET("/liquidity", h.liquidity)
		analytics.GET("/aging", h.aging)
	}
}

func (h *analyticsHandler) anomalies(c *gin.Context) {
	alerts, err := h.analyticsService.DetectLedgerAnomalies(c.Request.Context())
	if err != nil {
		respondError(c, err, "detect anomalies")
		return
	}
	c.JSON(http.StatusOK, alerts)
}

func (h *analyticsHandler) liquidity(c *gin.Context) {
	ratio, err := h.analyticsService.LedgerLiquidity(c.Request.Context())
	if err != nil {
		respondError(c, err, "compute liquidity ratio")
		return
	}
	c.JSON(http.StatusOK, ratio)
}

// aging buckets open receivables; asOf defaults to today.
func (h *analyticsHandler) aging(c *gin.Context) {
	asOf := domain.NormalizeDate(h.now().UTC())
	if raw := c.Query("asOf"); raw != "" {
		d, err := domain.ParseDate(raw)
		if err != nil {
			respondBadRequest(c, err, "asOf")
			return
		}
		asOf = d
	}

	buckets, err := h.analyticsService.AgeReceivables(c.Request.Context(), asOf)
	if err != nil {
		respondError(c, err, "age receivables")
		return
	}
	c.JSON(http.StatusOK, gin.H{"asOf": asOf.Format(domain.DateLayout), "buckets": buckets})
}
