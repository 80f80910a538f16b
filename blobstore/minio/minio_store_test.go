package minio

import (
	"context"
	"io"
	"testing"

	"github.com/hupe1980/lloyd/blobstore"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Key(t *testing.T) {
	s := NewStore(nil, "bucket", "kmeans/")
	assert.Equal(t, "kmeans/points.csv", s.key("points.csv"))
	assert.Equal(t, "kmeans", s.key(""))
}

// TestMinioStore_Integration requires a running MinIO instance.
// Skip if not available.
func TestMinioStore_Integration(t *testing.T) {
	bucket := "test-lloyd"

	store, err := Dial(Config{
		Endpoint:  "localhost:9000",
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
	}, bucket, "test-prefix/")
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx := context.Background()
	if _, err := store.client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	exists, err := store.client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, store.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	data := []byte("0,0\n1,1\n")
	require.NoError(t, store.Put(ctx, "points.csv", data))

	blob, err := store.Open(ctx, "points.csv")
	require.NoError(t, err)
	require.Equal(t, int64(len(data)), blob.Size())

	r, err := blobstore.NewReader(ctx, blob)
	require.NoError(t, err)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	assert.Equal(t, data, got)

	w, err := store.Create(ctx, "centroids.csv")
	require.NoError(t, err)
	_, err = w.Write([]byte("0.5,0.5\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, names, "points.csv")
	assert.Contains(t, names, "centroids.csv")

	require.NoError(t, store.Delete(ctx, "points.csv"))
	require.NoError(t, store.Delete(ctx, "centroids.csv"))

	_, err = store.Open(ctx, "points.csv")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
