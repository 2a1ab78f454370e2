package badger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/docquery/core"
	"github.com/poiesic/docquery/storage"
)

func newTestStore(t *testing.T) storage.DocumentStore {
	t.Helper()
	store, backend, err := NewMemoryStore()
	require.NoError(t, err)
	t.Cleanup(func() {
		store.Close()
		backend.Close()
	})
	return store
}

func testDocument(name string, content string) *core.StoredDocument {
	return &core.StoredDocument{
		Name:    name,
		Format:  core.FormatText,
		Content: []byte(content),
	}
}

func TestPutAndGetDocument(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	put, err := store.PutDocument(ctx, testDocument("notes.txt", "A cat sat."))
	require.NoError(t, err)
	assert.False(t, put.UploadedAt.IsZero())
	assert.False(t, put.UpdatedAt.IsZero())
	assert.NotZero(t, put.ContentHash)

	got, err := store.GetDocument(ctx, "notes.txt")
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", got.Name)
	assert.Equal(t, core.FormatText, got.Format)
	assert.Equal(t, []byte("A cat sat."), got.Content)
	assert.Equal(t, put.ContentHash, got.ContentHash)
	assert.True(t, put.UploadedAt.Equal(got.UploadedAt))
}

func TestPutDocument_OverwritePreservesUploadedAt(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	first, err := store.PutDocument(ctx, testDocument("notes.txt", "first version"))
	require.NoError(t, err)

	second, err := store.PutDocument(ctx, testDocument("notes.txt", "second version"))
	require.NoError(t, err)

	assert.True(t, first.UploadedAt.Equal(second.UploadedAt))
	assert.NotEqual(t, first.ContentHash, second.ContentHash)

	got, err := store.GetDocument(ctx, "notes.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("second version"), got.Content)
}

func TestPutDocument_InvalidName(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.PutDocument(ctx, testDocument("", "content"))
	assert.ErrorIs(t, err, core.ErrEmptyDocumentName)
}

func TestGetDocument_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetDocument(context.Background(), "missing.txt")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestListDocuments_SortedByName(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.PutDocument(ctx, testDocument("b.txt", "bee"))
	require.NoError(t, err)
	_, err = store.PutDocument(ctx, testDocument("a.txt", "ay"))
	require.NoError(t, err)

	infos, err := store.ListDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "a.txt", infos[0].Name)
	assert.Equal(t, "b.txt", infos[1].Name)
	assert.Equal(t, core.FormatText, infos[0].Format)
}

func TestDocumentExists(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	exists, err := store.DocumentExists(ctx, "notes.txt")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = store.PutDocument(ctx, testDocument("notes.txt", "content"))
	require.NoError(t, err)

	exists, err = store.DocumentExists(ctx, "notes.txt")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestDeleteDocument(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.PutDocument(ctx, testDocument("notes.txt", "content"))
	require.NoError(t, err)

	require.NoError(t, store.DeleteDocument(ctx, "notes.txt"))

	_, err = store.GetDocument(ctx, "notes.txt")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	err = store.DeleteDocument(ctx, "notes.txt")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
