package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/epeers/fundboard/internal/middleware"
	"github.com/epeers/fundboard/internal/services"
)

// RouterOptions are the request limits applied to upload routes
type RouterOptions struct {
	MaxUploadBytes   int64
	UploadRatePerMin int
}

// NewRouter registers the health check, Document API, upload and file routes
func NewRouter(documentSvc *services.DocumentService, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.MaxMultipartMemory = opts.MaxUploadBytes

	documentHandler := NewDocumentHandler(documentSvc)
	uploadHandler := NewUploadHandler(documentSvc)

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	api.GET("/data", documentHandler.Get)
	api.POST("/data", middleware.MaxBodySize(opts.MaxUploadBytes), documentHandler.Save)
	api.GET("/archives", documentHandler.ListArchives)

	uploads := api.Group("", middleware.RateLimit(opts.UploadRatePerMin), middleware.MaxBodySize(opts.MaxUploadBytes))
	uploads.POST("/upload", uploadHandler.UploadArchive)
	uploads.POST("/upload-pdf", uploadHandler.UploadPDF)

	router.GET("/files/*key", documentHandler.GetFile)

	return router
}
