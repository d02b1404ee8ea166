package handlers

import (
	"net/http"
	"strings"

	"github.com/SscSPs/property_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/property_ledger/internal/core/ports/services"
	"github.com/SscSPs/property_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

type auditHandler struct {
	auditService portssvc.AuditSvc
}

func registerAuditRoutes(rg *gin.RouterGroup, auditService portssvc.AuditSvc) {
	h := &auditHandler{auditService: auditService}

	audit := rg.Group("/audit-log")
	{
		audit.GET("", h.queryAuditLog)
		audit.GET("/:entityType/:entityId", h.entityAuditChain)
	}
}

// queryAuditLog filters the trail. Dates compare as ISO prefixes, so "2025-06" is a valid bound.
func (h *auditHandler) queryAuditLog(c *gin.Context) {
	var q dto.AuditLogQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBadRequest(c, err, "query parameters")
		return
	}

	entries, err := h.auditService.GetAuditLog(c.Request.Context(), domain.AuditFilter{
		EntityType: domain.AuditEntityType(q.EntityType),
		EntityID:   q.EntityID,
		Action:     domain.AuditAction(q.Action),
		FromDate:   q.FromDate,
		ToDate:     q.ToDate,
	})
	if err != nil {
		respondError(c, err, "query audit log")
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *auditHandler) entityAuditChain(c *gin.Context) {
	entityType := domain.AuditEntityType(strings.ToUpper(c.Param("entityType")))
	entries, err := h.auditService.GetEntityAuditChain(c.Request.Context(), c.Param("entityId"), entityType)
	if err != nil {
		respondError(c, err, "retrieve audit chain")
		return
	}
	c.JSON(http.StatusOK, entries)
}
