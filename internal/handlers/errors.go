package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/epeers/fundboard/internal/ingest"
	"github.com/epeers/fundboard/internal/models"
	"github.com/epeers/fundboard/internal/repository"
	"github.com/epeers/fundboard/internal/services"
)

// respondError maps service and pipeline errors to an ErrorResponse
func respondError(c *gin.Context, err error) {
	var (
		archiveErr *ingest.ArchiveReadError
		parseErr   *ingest.ParseError
		docErr     *ingest.DocumentError
		tooLarge   *http.MaxBytesError
	)

	status, code := http.StatusInternalServerError, "internal_error"
	switch {
	case errors.As(err, &tooLarge):
		status, code = http.StatusRequestEntityTooLarge, "too_large"
	case errors.As(err, &archiveErr):
		status, code = http.StatusBadRequest, "invalid_archive"
	case errors.As(err, &parseErr):
		status, code = http.StatusUnprocessableEntity, "parse_error"
	case errors.As(err, &docErr):
		status, code = http.StatusConflict, "document_error"
	case errors.Is(err, services.ErrDocumentNotFound), errors.Is(err, repository.ErrBlobNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, services.ErrInvalidFilename), errors.Is(err, repository.ErrInvalidKey):
		status, code = http.StatusBadRequest, "invalid_request"
	}

	if status == http.StatusInternalServerError {
		log.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, models.ErrorResponse{
		Error:   code,
		Message: err.Error(),
	})
}

func badRequest(c *gin.Context, code, message string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   code,
		Message: message,
	})
}
