package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	"github.com/epeers/fundboard/internal/services"
)

const (
	mimeZip = "application/zip"
	mimePDF = "application/pdf"
)

// UploadHandler handles archive and PDF uploads
type UploadHandler struct {
	documentSvc *services.DocumentService
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(documentSvc *services.DocumentService) *UploadHandler {
	return &UploadHandler{
		documentSvc: documentSvc,
	}
}

// UploadArchive handles POST /api/upload
// @Summary Ingest a zip of fund extracts
// @Description Runs the ingestion pipeline on the uploaded archive against the stored Document.
// @Description With dry_run=true the merged Document is returned without being saved.
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Zip archive with nav.csv, metrics.csv, performance_ratio.csv, asset_class_exposure.csv, balance.csv"
// @Param dry_run query bool false "Return the merge result without saving it"
// @Success 200 {object} models.IngestResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 413 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Failure 429 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/upload [post]
func (h *UploadHandler) UploadArchive(c *gin.Context) {
	dryRun, err := strconv.ParseBool(c.DefaultQuery("dry_run", "false"))
	if err != nil {
		badRequest(c, "invalid_request", "dry_run must be a boolean")
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		if isTooLarge(err) {
			respondError(c, err)
			return
		}
		badRequest(c, "invalid_request", "multipart field \"file\" is required")
		return
	}
	f, err := fh.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		respondError(c, err)
		return
	}
	if !isKind(data, mimeZip) {
		badRequest(c, "invalid_archive", "uploaded file is not a zip archive")
		return
	}

	ctx, wc := services.NewWarningContext(c.Request.Context())
	resp, err := h.documentSvc.IngestArchive(ctx, data, dryRun)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.Warnings = wc.GetWarnings()

	c.JSON(http.StatusOK, resp)
}

// UploadPDF handles POST /api/upload-pdf
// @Summary Upload a PDF document
// @Description Stores the raw request body under documents/<filename>, replacing any previous file
// @Tags upload
// @Accept application/pdf
// @Produce json
// @Param filename query string false "Target file name" default(newsletter.pdf)
// @Success 200 {object} models.SaveResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 413 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/upload-pdf [post]
func (h *UploadHandler) UploadPDF(c *gin.Context) {
	data, err := c.GetRawData()
	if err != nil {
		respondError(c, err)
		return
	}
	if !isKind(data, mimePDF) {
		badRequest(c, "invalid_request", "request body is not a PDF")
		return
	}

	resp, err := h.documentSvc.SavePDF(c.Request.Context(), c.Query("filename"), data)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// isKind reports whether data sniffs as mime or a format derived from it
// (a docx still counts as a zip).
func isKind(data []byte, mime string) bool {
	for m := mimetype.Detect(data); m != nil; m = m.Parent() {
		if m.Is(mime) {
			return true
		}
	}
	return false
}

func isTooLarge(err error) bool {
	var tooLarge *http.MaxBytesError
	return errors.As(err, &tooLarge)
}
