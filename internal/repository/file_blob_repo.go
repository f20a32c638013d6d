package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/epeers/fundboard/internal/models"
)

// FileBlobRepository keeps blobs as plain files under a root directory. The
// content type is derived from the file extension on read.
type FileBlobRepository struct {
	root string
}

// NewFileBlobRepository creates a FileBlobRepository rooted at dir
func NewFileBlobRepository(dir string) *FileBlobRepository {
	return &FileBlobRepository{root: dir}
}

func (r *FileBlobRepository) path(key string) string {
	return filepath.Join(r.root, filepath.FromSlash(key))
}

// Get reads the blob stored under key
func (r *FileBlobRepository) Get(ctx context.Context, key string) (*models.Blob, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	p := r.path(key)
	info, err := os.Stat(p)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && info.IsDir()) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat blob %s: %w", key, err)
	}
	content, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("failed to read blob %s: %w", key, err)
	}
	return &models.Blob{
		Key:         key,
		ContentType: contentTypeOf(key),
		Content:     content,
		UpdatedAt:   info.ModTime().UTC(),
	}, nil
}

// Put writes the blob to a temporary file and renames it into place, so
// readers never see a partial write.
func (r *FileBlobRepository) Put(ctx context.Context, blob *models.Blob) error {
	if err := ValidateKey(blob.Key); err != nil {
		return err
	}
	p := r.path(blob.Key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", blob.Key, err)
	}
	return WriteFileAtomic(p, blob.Content)
}

// List returns the keys that start with prefix, sorted
func (r *FileBlobRepository) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	err := filepath.WalkDir(r.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		rel, err := filepath.Rel(r.root, p)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list blobs: %w", err)
	}
	sort.Strings(keys)
	return keys, nil
}

// WriteFileAtomic writes data next to path and renames it over path
func WriteFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

func contentTypeOf(key string) string {
	switch strings.ToLower(filepath.Ext(key)) {
	case ".json":
		return models.ContentTypeJSON
	case ".zip":
		return models.ContentTypeZip
	case ".pdf":
		return models.ContentTypePDF
	}
	if ct := mime.TypeByExtension(filepath.Ext(key)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
