package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/property_ledger/internal/core/ports/services"
	"github.com/SscSPs/property_ledger/internal/dto"
	"github.com/SscSPs/property_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// documentHandler handles HTTP requests for accounting documents and their postings.
type documentHandler struct {
	documentService portssvc.DocumentSvcFacade
	postingService  portssvc.PostingSvc
}

func registerDocumentRoutes(rg *gin.RouterGroup, documentService portssvc.DocumentSvcFacade, postingService portssvc.PostingSvc) {
	h := &documentHandler{documentService: documentService, postingService: postingService}

	documents := rg.Group("/documents")
	{
		documents.POST("", h.createDocument)
		documents.GET("", h.listDocuments)
		documents.POST("/preview-postings", h.previewPostings)
		documents.GET("/:id", h.getDocument)
		documents.POST("/:id/post", h.postDocument)
		documents.POST("/:id/cancel", h.cancelDocument)
	}
}

func (h *documentHandler) createDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err, "request format")
		return
	}
	doc, err := req.ToDomain()
	if err != nil {
		respondBadRequest(c, err, "document")
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	created, err := h.documentService.CreateDocument(c.Request.Context(), doc, userID)
	if err != nil {
		respondError(c, err, "create document")
		return
	}

	logger.Info("Document created",
		slog.String("document_id", created.ID),
		slog.String("document_type", string(created.Type)),
		slog.String("serial_number", created.SerialNumber))
	c.JSON(http.StatusCreated, created)
}

func (h *documentHandler) listDocuments(c *gin.Context) {
	var params dto.ListDocumentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBadRequest(c, err, "query parameters")
		return
	}

	docs, err := h.documentService.ListDocuments(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "list documents")
		return
	}
	c.JSON(http.StatusOK, docs)
}

func (h *documentHandler) getDocument(c *gin.Context) {
	doc, err := h.documentService.GetDocument(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "retrieve document")
		return
	}
	c.JSON(http.StatusOK, doc)
}

// postDocument posts a stored document once. A document that produces no lines
// (draft, or a non-posting type) answers 200 with posted=false.
func (h *documentHandler) postDocument(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	doc, entry, err := h.documentService.PostStoredDocument(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "post document")
		return
	}
	c.JSON(http.StatusOK, dto.PostDocumentResponse{
		Posted:       entry != nil,
		Document:     doc,
		JournalEntry: entry,
	})
}

func (h *documentHandler) cancelDocument(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	doc, err := h.documentService.CancelDocument(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "cancel document")
		return
	}
	c.JSON(http.StatusOK, doc)
}

// previewPostings runs the posting rules without storing anything.
func (h *documentHandler) previewPostings(c *gin.Context) {
	var req dto.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err, "request format")
		return
	}
	doc, err := req.ToDomain()
	if err != nil {
		respondBadRequest(c, err, "document")
		return
	}
	if doc.TotalAmount.IsZero() {
		doc.TotalAmount = doc.Amount.Add(doc.VATAmount)
	}

	lines, err := h.postingService.GeneratePostingLines(c.Request.Context(), doc)
	if err != nil {
		respondError(c, err, "generate posting lines")
		return
	}
	c.JSON(http.StatusOK, gin.H{"lines": lines})
}
