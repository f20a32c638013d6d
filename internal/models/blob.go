package models

import "time"

// Content types stored alongside blobs.
const (
	ContentTypeJSON = "application/json"
	ContentTypeZip  = "application/zip"
	ContentTypePDF  = "application/pdf"
)

// Blob is one keyed object of the blob store.
type Blob struct {
	Key         string
	ContentType string
	Content     []byte
	UpdatedAt   time.Time
}
