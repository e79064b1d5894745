package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocalStore(t *testing.T) *LocalStore {
	t.Helper()
	store, err := NewLocalStore(t.TempDir(), "http://localhost:3001/files")
	require.NoError(t, err)
	return store
}

func TestLocalStoreRoundTrip(t *testing.T) {
	store := newTestLocalStore(t)
	ctx := context.Background()

	content := []byte("%PDF-1.4\nsome file content")
	url, err := store.Upload(ctx, "doc-1/pat-1/abc123.pdf", content, "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3001/files/doc-1/pat-1/abc123.pdf", url)

	// Uploaded bytes read back unchanged
	stored, err := os.ReadFile(filepath.Join(store.baseDir, "doc-1", "pat-1", "abc123.pdf"))
	require.NoError(t, err)
	assert.Equal(t, content, stored)

	exists, err := store.Exists(ctx, "doc-1/pat-1/abc123.pdf")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestLocalStoreOverwriteSamePath(t *testing.T) {
	store := newTestLocalStore(t)
	ctx := context.Background()

	_, err := store.Upload(ctx, "d/p/hash.pdf", []byte("same bytes"), "application/pdf")
	require.NoError(t, err)
	_, err = store.Upload(ctx, "d/p/hash.pdf", []byte("same bytes"), "application/pdf")
	require.NoError(t, err, "re-uploading to the same derived path must succeed")
}

func TestLocalStoreRemove(t *testing.T) {
	store := newTestLocalStore(t)
	ctx := context.Background()

	_, err := store.Upload(ctx, "d/p/hash.pdf", []byte("bytes"), "application/pdf")
	require.NoError(t, err)

	require.NoError(t, store.Remove(ctx, "d/p/hash.pdf"))

	exists, err := store.Exists(ctx, "d/p/hash.pdf")
	require.NoError(t, err)
	assert.False(t, exists)

	// Removing an already-removed blob is not an error
	assert.NoError(t, store.Remove(ctx, "d/p/hash.pdf"))
}

func TestLocalStoreRejectsTraversal(t *testing.T) {
	store := newTestLocalStore(t)

	_, err := store.Upload(context.Background(), "../outside.txt", []byte("x"), "text/plain")
	assert.Error(t, err)
}

func TestLocalStoreCancelledContext(t *testing.T) {
	store := newTestLocalStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Upload(ctx, "d/p/hash.pdf", []byte("bytes"), "application/pdf")
	assert.Error(t, err)
}
