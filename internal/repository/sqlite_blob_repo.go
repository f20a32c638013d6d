package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/epeers/fundboard/internal/models"
)

// SQLiteBlobRepository handles blob storage in a SQLite database
type SQLiteBlobRepository struct {
	db *sql.DB
}

// NewSQLiteBlobRepository creates a new SQLiteBlobRepository
func NewSQLiteBlobRepository(db *sql.DB) *SQLiteBlobRepository {
	return &SQLiteBlobRepository{db: db}
}

// Get retrieves a blob by key
func (r *SQLiteBlobRepository) Get(ctx context.Context, key string) (*models.Blob, error) {
	query := `SELECT key, content_type, content, updated_at FROM blobs WHERE key = ?`

	b := &models.Blob{}
	var updatedAt string
	err := r.db.QueryRowContext(ctx, query, key).Scan(&b.Key, &b.ContentType, &b.Content, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get blob: %w", err)
	}
	b.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse updated_at of %s: %w", key, err)
	}
	return b, nil
}

// Put inserts or replaces a blob
func (r *SQLiteBlobRepository) Put(ctx context.Context, blob *models.Blob) error {
	if err := ValidateKey(blob.Key); err != nil {
		return err
	}
	query := `
		INSERT INTO blobs (key, content_type, content, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (key) DO UPDATE
		SET content_type = excluded.content_type,
		    content = excluded.content,
		    updated_at = excluded.updated_at
	`
	now := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := r.db.ExecContext(ctx, query, blob.Key, blob.ContentType, blob.Content, now); err != nil {
		return fmt.Errorf("failed to put blob: %w", err)
	}
	return nil
}

// List returns the keys that start with prefix, sorted
func (r *SQLiteBlobRepository) List(ctx context.Context, prefix string) ([]string, error) {
	query := `SELECT key FROM blobs WHERE substr(key, 1, length(?)) = ? ORDER BY key`

	rows, err := r.db.QueryContext(ctx, query, prefix, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list blobs: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan blob key: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}
