package local

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docstore-backend/internal/shared/storage/object"
)

func TestStorePutGetList(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	err := store.Put(ctx, "documents/2-b.txt", []byte("hello"), "text/plain", map[string]string{"DocumentValueCode": "A1"})
	require.NoError(t, err)
	err = store.Put(ctx, "documents/1-a.pdf", []byte("%PDF-1.4"), "application/pdf", nil)
	require.NoError(t, err)
	err = store.Put(ctx, "archive/3-c.pdf", []byte("%PDF-1.4"), "application/pdf", nil)
	require.NoError(t, err)

	obj, err := store.Get(ctx, "documents/2-b.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), obj.Data)
	assert.Equal(t, "text/plain", obj.ContentType)
	assert.Equal(t, "A1", obj.Metadata["documentvaluecode"])

	infos, err := store.List(ctx, "documents/")
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "documents/1-a.pdf", infos[0].Key)
	assert.Equal(t, "documents/2-b.txt", infos[1].Key)
	assert.EqualValues(t, 5, infos[1].Size)
	assert.False(t, infos[0].LastModified.IsZero())
}

func TestStoreGetMissing(t *testing.T) {
	store := New(t.TempDir())
	_, err := store.Get(context.Background(), "documents/nope.pdf")
	require.ErrorIs(t, err, object.ErrNotFound)

	// A key naming a directory is not an object.
	require.NoError(t, store.Put(context.Background(), "documents/1-a.pdf", []byte("a"), "application/pdf", nil))
	_, err = store.Get(context.Background(), "documents")
	require.ErrorIs(t, err, object.ErrNotFound)
}

func TestStoreCanceledContext(t *testing.T) {
	store := New(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, store.Put(ctx, "documents/1-a.pdf", []byte("a"), "application/pdf", nil), object.ErrWrite)
	_, err := store.List(ctx, "documents/")
	require.ErrorIs(t, err, object.ErrRead)
	_, err = store.Get(ctx, "documents/1-a.pdf")
	require.ErrorIs(t, err, object.ErrRead)
}

func TestStoreGetSniffsWithoutSidecar(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "documents"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "documents", "1-x.pdf"), []byte("%PDF-1.4\n%âãÏÓ\n"), 0o644))

	obj, err := New(dir).Get(context.Background(), "documents/1-x.pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", obj.ContentType)
	assert.Empty(t, obj.Metadata)
}

func TestStoreRejectsTraversal(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	err := store.Put(ctx, "../escape.txt", []byte("x"), "text/plain", nil)
	require.ErrorIs(t, err, object.ErrWrite)

	_, err = store.Get(ctx, "../escape.txt")
	require.ErrorIs(t, err, object.ErrRead)
}

func TestStoreListEmptyBaseDir(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "missing"))
	infos, err := store.List(context.Background(), "documents/")
	require.NoError(t, err)
	assert.Empty(t, infos)
}
