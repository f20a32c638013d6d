package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epeers/fundboard/internal/database"
	"github.com/epeers/fundboard/internal/models"
)

// testBlobRepository exercises the behavior every backend shares.
func testBlobRepository(t *testing.T, repo BlobRepository) {
	ctx := context.Background()

	_, err := repo.Get(ctx, "data.json")
	assert.ErrorIs(t, err, ErrBlobNotFound)

	require.NoError(t, repo.Put(ctx, &models.Blob{Key: "data.json", ContentType: models.ContentTypeJSON, Content: []byte(`{"a":1}`)}))
	require.NoError(t, repo.Put(ctx, &models.Blob{Key: "archives/b.zip", ContentType: models.ContentTypeZip, Content: []byte("PK")}))
	require.NoError(t, repo.Put(ctx, &models.Blob{Key: "archives/a.zip", ContentType: models.ContentTypeZip, Content: []byte("PK")}))

	blob, err := repo.Get(ctx, "data.json")
	require.NoError(t, err)
	assert.Equal(t, "data.json", blob.Key)
	assert.Equal(t, models.ContentTypeJSON, blob.ContentType)
	assert.Equal(t, `{"a":1}`, string(blob.Content))
	assert.False(t, blob.UpdatedAt.IsZero())

	require.NoError(t, repo.Put(ctx, &models.Blob{Key: "data.json", ContentType: models.ContentTypeJSON, Content: []byte(`{"a":2}`)}))
	blob, err = repo.Get(ctx, "data.json")
	require.NoError(t, err)
	assert.Equal(t, `{"a":2}`, string(blob.Content))

	keys, err := repo.List(ctx, "archives/")
	require.NoError(t, err)
	assert.Equal(t, []string{"archives/a.zip", "archives/b.zip"}, keys)

	keys, err = repo.List(ctx, "documents/")
	require.NoError(t, err)
	assert.Empty(t, keys)

	for _, key := range []string{"", "/etc/passwd", "../data.json", "a//b", "a/./b"} {
		err := repo.Put(ctx, &models.Blob{Key: key, Content: []byte("x")})
		assert.ErrorIs(t, err, ErrInvalidKey, key)
	}
}

func TestFileBlobRepository(t *testing.T) {
	dir := t.TempDir()
	repo := NewFileBlobRepository(dir)
	testBlobRepository(t, repo)

	content, err := os.ReadFile(filepath.Join(dir, "archives", "a.zip"))
	require.NoError(t, err)
	assert.Equal(t, "PK", string(content))

	matches, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, matches, "no temp files left behind")

	_, err = repo.Get(context.Background(), "archives")
	assert.ErrorIs(t, err, ErrBlobNotFound)
}

func TestFileBlobRepository_MissingRoot(t *testing.T) {
	repo := NewFileBlobRepository(filepath.Join(t.TempDir(), "nope"))

	keys, err := repo.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestSQLiteBlobRepository(t *testing.T) {
	db, err := database.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "blobs.db"))
	require.NoError(t, err)
	defer db.Close()

	testBlobRepository(t, NewSQLiteBlobRepository(db))
}

func TestPostgresBlobRepository(t *testing.T) {
	pgURL := os.Getenv("PG_URL")
	if pgURL == "" {
		t.Skip("PG_URL environment variable not set, skipping integration test")
	}

	ctx := context.Background()
	db, err := database.New(ctx, pgURL)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Pool.Exec(ctx, `DELETE FROM blobs WHERE key = 'data.json' OR key LIKE 'archives/%'`)
	require.NoError(t, err)

	testBlobRepository(t, NewPostgresBlobRepository(db.Pool))
}

func TestValidateKey(t *testing.T) {
	assert.NoError(t, ValidateKey("documents/newsletter.pdf"))
	assert.NoError(t, ValidateKey("data.json"))
	assert.ErrorIs(t, ValidateKey("documents/"), ErrInvalidKey)
	assert.ErrorIs(t, ValidateKey(`a\b`), ErrInvalidKey)
}
