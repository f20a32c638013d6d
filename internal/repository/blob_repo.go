package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/epeers/fundboard/internal/models"
)

// ErrBlobNotFound is returned when no blob is stored under a key
var ErrBlobNotFound = errors.New("blob not found")

// ErrInvalidKey is returned for keys that are empty or escape the store root
var ErrInvalidKey = errors.New("invalid blob key")

// BlobRepository stores keyed blobs: the dashboard Document, uploaded archives
// and PDF documents. Put overwrites whatever is stored under the key.
type BlobRepository interface {
	Get(ctx context.Context, key string) (*models.Blob, error)
	Put(ctx context.Context, blob *models.Blob) error
	List(ctx context.Context, prefix string) ([]string, error)
}

// ValidateKey checks that a key is a relative slash-separated path without
// empty, "." or ".." segments.
func ValidateKey(key string) error {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	for _, part := range strings.Split(key, "/") {
		if part == "" || part == "." || part == ".." {
			return fmt.Errorf("%w: %q", ErrInvalidKey, key)
		}
	}
	return nil
}
