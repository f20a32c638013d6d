package services

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/epeers/fundboard/internal/cache"
	"github.com/epeers/fundboard/internal/ingest"
	"github.com/epeers/fundboard/internal/models"
	"github.com/epeers/fundboard/internal/repository"
)

// Blob key prefixes
const (
	ArchivePrefix  = "archives/"
	DocumentPrefix = "documents/"

	DefaultPDFName = "newsletter.pdf"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrInvalidFilename  = errors.New("invalid filename")
)

// DocumentService owns the dashboard Document and the files uploaded next to it.
// Writes to the Document are serialized within the process; a second process
// writing the same store (the ingest command) is only seen by GetDocument once
// the cached copy expires.
type DocumentService struct {
	mu          sync.Mutex
	blobs       repository.BlobRepository
	cache       *cache.DocumentCache
	documentKey string
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(blobs repository.BlobRepository, docCache *cache.DocumentCache, documentKey string) *DocumentService {
	return &DocumentService{
		blobs:       blobs,
		cache:       docCache,
		documentKey: documentKey,
	}
}

// DocumentKey returns the blob key the Document is stored under
func (s *DocumentService) DocumentKey() string {
	return s.documentKey
}

// GetDocument loads the stored Document
func (s *DocumentService) GetDocument(ctx context.Context) (models.Document, error) {
	if doc, ok := s.cache.Get(s.documentKey); ok {
		return doc, nil
	}
	return s.loadDocument(ctx)
}

// loadDocument reads the Document from the store, bypassing the cache
func (s *DocumentService) loadDocument(ctx context.Context) (models.Document, error) {
	blob, err := s.blobs.Get(ctx, s.documentKey)
	if errors.Is(err, repository.ErrBlobNotFound) {
		return models.Document{}, ErrDocumentNotFound
	}
	if err != nil {
		return models.Document{}, fmt.Errorf("failed to load document: %w", err)
	}

	doc, err := models.ParseDocument(blob.Content)
	if err != nil {
		return models.Document{}, fmt.Errorf("failed to parse stored document %s: %w", s.documentKey, err)
	}
	s.cache.Set(s.documentKey, doc)
	return doc, nil
}

// SaveDocument replaces the stored Document
func (s *DocumentService) SaveDocument(ctx context.Context, doc models.Document) (*models.SaveResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveDocument(ctx, doc)
}

func (s *DocumentService) saveDocument(ctx context.Context, doc models.Document) (*models.SaveResponse, error) {
	content, err := doc.Encode()
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}

	resp, err := s.put(ctx, s.documentKey, models.ContentTypeJSON, content)
	// the store may hold a partial state after a failed write
	s.cache.Invalidate(s.documentKey)
	if err != nil {
		return nil, err
	}
	s.cache.Set(s.documentKey, doc)
	return resp, nil
}

// IngestArchive applies an uploaded archive to the stored Document. Pipeline
// warnings go to the collector in ctx. Unless dryRun is set, the merged
// Document is saved and then the archive is kept under ArchivePrefix; a dry
// run only returns the merge result. The merge always starts from the stored
// Document, not the cached one.
func (s *DocumentService) IngestArchive(ctx context.Context, archive []byte, dryRun bool) (*models.IngestResponse, error) {
	defer TrackTime("IngestArchive", time.Now(), log.Fields{"bytes": len(archive), "dry_run": dryRun})

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.loadDocument(ctx)
	if errors.Is(err, ErrDocumentNotFound) {
		AddWarning(ctx, models.Warning{
			Code:    models.WarnNoStoredDocument,
			Message: fmt.Sprintf("%s does not exist yet, starting from an empty document", s.documentKey),
		})
		current = models.NewDocument()
	} else if err != nil {
		return nil, err
	}

	result, err := ingest.Run(archive, current)
	if err != nil {
		return nil, err
	}
	AddWarning(ctx, result.Warnings...)

	resp := &models.IngestResponse{
		Document: result.Document,
		Extracts: result.Extracts,
		DryRun:   dryRun,
	}
	if resp.Extracts == nil {
		resp.Extracts = []string{}
	}
	if dryRun {
		return resp, nil
	}

	if _, err := s.saveDocument(ctx, result.Document); err != nil {
		return nil, err
	}

	archiveKey := ArchivePrefix + uuid.NewString() + ".zip"
	if _, err := s.put(ctx, archiveKey, models.ContentTypeZip, archive); err != nil {
		log.WithError(err).Errorf("document saved but archive %s was not kept", archiveKey)
		AddWarning(ctx, models.Warning{
			Code:    models.WarnArchiveNotStored,
			Message: fmt.Sprintf("document saved, but the uploaded archive could not be kept: %v", err),
		})
		return resp, nil
	}
	resp.ArchiveKey = archiveKey

	log.WithFields(log.Fields{
		"archive":  archiveKey,
		"extracts": result.Extracts,
	}).Info("archive ingested")
	return resp, nil
}

// SavePDF stores a PDF under DocumentPrefix, replacing any file of the same name
func (s *DocumentService) SavePDF(ctx context.Context, filename string, content []byte) (*models.SaveResponse, error) {
	if filename == "" {
		filename = DefaultPDFName
	}
	if filename != path.Base(filename) || filename == "." || filename == ".." {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFilename, filename)
	}
	return s.put(ctx, DocumentPrefix+filename, models.ContentTypePDF, content)
}

// GetBlob returns any stored blob by key
func (s *DocumentService) GetBlob(ctx context.Context, key string) (*models.Blob, error) {
	return s.blobs.Get(ctx, key)
}

// ListArchives returns the keys of stored archives
func (s *DocumentService) ListArchives(ctx context.Context) ([]string, error) {
	return s.blobs.List(ctx, ArchivePrefix)
}

func (s *DocumentService) put(ctx context.Context, key, contentType string, content []byte) (*models.SaveResponse, error) {
	blob := &models.Blob{Key: key, ContentType: contentType, Content: content}
	if err := s.blobs.Put(ctx, blob); err != nil {
		return nil, fmt.Errorf("failed to store %s: %w", key, err)
	}
	return &models.SaveResponse{
		Key:         key,
		ContentType: contentType,
		Size:        len(content),
		UpdatedAt:   time.Now().UTC(),
	}, nil
}
