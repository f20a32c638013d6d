package models

import "time"

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// IngestResponse is returned by the archive upload endpoint.
type IngestResponse struct {
	Document   Document  `json:"document" swaggertype:"object"`
	Extracts   []string  `json:"extracts"`
	Warnings   []Warning `json:"warnings"`
	ArchiveKey string    `json:"archive_key,omitempty"`
	DryRun     bool      `json:"dry_run"`
}

// SaveResponse is returned after a blob or Document has been written.
type SaveResponse struct {
	Key         string    `json:"key"`
	ContentType string    `json:"content_type"`
	Size        int       `json:"size"`
	UpdatedAt   time.Time `json:"updated_at"`
}
