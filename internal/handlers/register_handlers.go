package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/property_ledger/internal/core/ports/services"
	"github.com/SscSPs/property_ledger/internal/middleware"
	"github.com/SscSPs/property_ledger/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// rateLimiter may be nil, in which case /api/v1 is not rate limited.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	rateLimiter *limiter.Limiter,
) {
	if err := RegisterValidators(); err != nil {
		slog.Error("Failed to register custom validators", slog.String("error", err.Error()))
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	if cfg.EnableMetrics {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	setupAPIV1Routes(r, cfg, services, rateLimiter)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	rateLimiter *limiter.Limiter,
) {
	// Auth runs first so the limiter can key on the user.
	chain := []gin.HandlerFunc{middleware.MetricsMiddleware(), middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer)}
	if rateLimiter != nil {
		chain = append(chain, middleware.RateLimit(rateLimiter))
	}
	v1 := r.Group("/api/v1", chain...)

	registerJournalRoutes(v1, service.Journal)
	registerPeriodRoutes(v1, service.Period)
	registerAuditRoutes(v1, service.Audit)
	registerAccountRoutes(v1, service.Account, service.Journal, service.Analytics)
	registerDocumentRoutes(v1, service.Document, service.Posting)
	registerAnalyticsRoutes(v1, service.Analytics)
	registerSchemaRoutes(v1)
}
