package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/epeers/fundboard/internal/models"
	"github.com/epeers/fundboard/internal/services"
)

// DocumentHandler serves the dashboard Document
type DocumentHandler struct {
	documentSvc *services.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(documentSvc *services.DocumentService) *DocumentHandler {
	return &DocumentHandler{
		documentSvc: documentSvc,
	}
}

// Get handles GET /api/data
// @Summary Get the dashboard document
// @Description Returns the stored dashboard Document as written by the last save or ingestion
// @Tags data
// @Produce json
// @Success 200 {object} object
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/data [get]
func (h *DocumentHandler) Get(c *gin.Context) {
	doc, err := h.documentSvc.GetDocument(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	body, err := doc.Encode()
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// Save handles POST /api/data
// @Summary Replace the dashboard document
// @Description Stores the request body as the new dashboard Document. The body must be a JSON object.
// @Tags data
// @Accept json
// @Produce json
// @Param document body object true "Dashboard document"
// @Success 200 {object} models.SaveResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/data [post]
func (h *DocumentHandler) Save(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		respondError(c, err)
		return
	}

	doc, err := models.ParseDocument(body)
	if err != nil {
		badRequest(c, "invalid_request", "body must be a JSON object: "+err.Error())
		return
	}

	resp, err := h.documentSvc.SaveDocument(c.Request.Context(), doc)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListArchives handles GET /api/archives
// @Summary List ingested archives
// @Description Returns the blob keys of every archive stored by a non-dry-run upload
// @Tags data
// @Produce json
// @Success 200 {object} map[string][]string
// @Failure 500 {object} models.ErrorResponse
// @Router /api/archives [get]
func (h *DocumentHandler) ListArchives(c *gin.Context) {
	keys, err := h.documentSvc.ListArchives(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if keys == nil {
		keys = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"archives": keys})
}

// GetFile handles GET /files/*key
// @Summary Download a stored file
// @Description Serves any stored blob (archives, PDF documents, the Document itself) with its content type
// @Tags files
// @Produce octet-stream
// @Param key path string true "Blob key, e.g. documents/newsletter.pdf"
// @Success 200 {file} file
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /files/{key} [get]
func (h *DocumentHandler) GetFile(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	blob, err := h.documentSvc.GetBlob(c.Request.Context(), key)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Last-Modified", blob.UpdatedAt.UTC().Format(http.TimeFormat))
	c.Data(http.StatusOK, blob.ContentType, blob.Content)
}
