package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/epeers/fundboard/internal/models"
)

// PostgresBlobRepository handles blob storage in the blobs table
type PostgresBlobRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresBlobRepository creates a new PostgresBlobRepository
func NewPostgresBlobRepository(pool *pgxpool.Pool) *PostgresBlobRepository {
	return &PostgresBlobRepository{pool: pool}
}

// Get retrieves a blob by key
func (r *PostgresBlobRepository) Get(ctx context.Context, key string) (*models.Blob, error) {
	query := `
		SELECT key, content_type, content, updated_at
		FROM blobs
		WHERE key = $1
	`
	b := &models.Blob{}
	err := r.pool.QueryRow(ctx, query, key).Scan(&b.Key, &b.ContentType, &b.Content, &b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get blob: %w", err)
	}
	return b, nil
}

// Put inserts or replaces a blob
func (r *PostgresBlobRepository) Put(ctx context.Context, blob *models.Blob) error {
	if err := ValidateKey(blob.Key); err != nil {
		return err
	}
	query := `
		INSERT INTO blobs (key, content_type, content, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (key) DO UPDATE
		SET content_type = EXCLUDED.content_type,
		    content = EXCLUDED.content,
		    updated_at = EXCLUDED.updated_at
	`
	if _, err := r.pool.Exec(ctx, query, blob.Key, blob.ContentType, blob.Content); err != nil {
		return fmt.Errorf("failed to put blob: %w", err)
	}
	return nil
}

// List returns the keys that start with prefix, sorted
func (r *PostgresBlobRepository) List(ctx context.Context, prefix string) ([]string, error) {
	query := `
		SELECT key FROM blobs
		WHERE starts_with(key, $1)
		ORDER BY key
	`
	rows, err := r.pool.Query(ctx, query, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list blobs: %w", err)
	}
	keys, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan blob keys: %w", err)
	}
	return keys, nil
}
