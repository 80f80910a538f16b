package blobstore

import (
	"context"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.Open(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	data := []byte("1,2\n3,4\n")
	require.NoError(t, store.Put(ctx, "b/points.csv", data))
	data[0] = 'x'

	blob, err := store.Open(ctx, "b/points.csv")
	require.NoError(t, err)
	assert.Equal(t, int64(8), blob.Size())

	r, err := NewReader(ctx, blob)
	require.NoError(t, err)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "1,2\n3,4\n", string(got))

	buf := make([]byte, 4)
	n, err := blob.ReadAt(ctx, buf, 6)
	assert.Equal(t, 2, n)
	assert.Equal(t, io.EOF, err)

	w, err := store.Create(ctx, "a/centroids.csv")
	require.NoError(t, err)
	_, err = w.Write([]byte("2,3\n"))
	require.NoError(t, err)

	_, ok := store.Bytes("a/centroids.csv")
	assert.False(t, ok, "blob must not be visible before Close")

	require.NoError(t, w.Close())
	_, err = w.Write([]byte("more"))
	assert.ErrorIs(t, err, os.ErrClosed)

	out, ok := store.Bytes("a/centroids.csv")
	require.True(t, ok)
	assert.Equal(t, "2,3\n", string(out))

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a/centroids.csv", "b/points.csv"}, names)

	require.NoError(t, store.Delete(ctx, "a/centroids.csv"))
	names, err = store.List(ctx, "a/")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestMemoryStore_Abort(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	w, err := store.Create(ctx, "partial")
	require.NoError(t, err)
	_, err = w.Write([]byte("junk"))
	require.NoError(t, err)
	require.NoError(t, Abort(w))

	_, ok := store.Bytes("partial")
	assert.False(t, ok)
}
