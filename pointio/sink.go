package pointio

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/hupe1980/lloyd/blobstore"
	"github.com/hupe1980/lloyd/kmeans"
)

// Sink writes centroids to a blob.
type Sink struct {
	store blobstore.BlobStore
	name  string
	opts  options
}

// NewSink returns a Sink writing to the named blob.
func NewSink(store blobstore.BlobStore, name string, optFns ...Option) *Sink {
	return &Sink{
		store: store,
		name:  name,
		opts:  newOptions(optFns),
	}
}

// Name returns the blob name.
func (s *Sink) Name() string { return s.name }

// Write encodes the centroids and publishes the blob. A failed write
// leaves no partial blob behind.
func (s *Sink) Write(ctx context.Context, centroids kmeans.CentroidSet) error {
	format, compression := Detect(s.name, s.opts.format, s.opts.compression)

	return writeBlob(ctx, s.store, s.name, compression, s.opts, func(w io.Writer) error {
		switch format {
		case FormatJSON:
			data, err := encodeJSON(s.opts.codec, centroids)
			if err != nil {
				return err
			}
			_, err = w.Write(data)
			return err
		default:
			return encodeCSV(w, centroids)
		}
	})
}

// WritePoints writes points in the input format read by Source.
func WritePoints(ctx context.Context, store blobstore.BlobStore, name string, points []kmeans.Point, optFns ...Option) error {
	opts := newOptions(optFns)
	format, compression := Detect(name, opts.format, opts.compression)

	return writeBlob(ctx, store, name, compression, opts, func(w io.Writer) error {
		switch format {
		case FormatJSON:
			data, err := encodePointsJSON(opts.codec, points)
			if err != nil {
				return err
			}
			_, err = w.Write(data)
			return err
		default:
			return encodeCSV(w, kmeans.CentroidSet(points))
		}
	})
}

func writeBlob(ctx context.Context, store blobstore.BlobStore, name string, c Compression, opts options, encode func(io.Writer) error) error {
	blob, err := store.Create(ctx, name)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}

	zw, err := compress(opts.rc.Writer(ctx, blob), c)
	if err != nil {
		_ = blobstore.Abort(blob)
		return fmt.Errorf("%s: %w", name, err)
	}

	if err := encode(zw); err != nil {
		_ = zw.Close()
		_ = blobstore.Abort(blob)
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := zw.Close(); err != nil {
		_ = blobstore.Abort(blob)
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := blob.Close(); err != nil {
		return fmt.Errorf("close %s: %w", name, err)
	}
	return nil
}

// Collector is an in-memory ResultSink.
type Collector struct {
	mu        sync.Mutex
	centroids kmeans.CentroidSet
	writes    int
}

// Write stores a copy of the centroids.
func (c *Collector) Write(_ context.Context, centroids kmeans.CentroidSet) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.centroids = centroids.Clone()
	c.writes++
	return nil
}

// Centroids returns the last written centroids.
func (c *Collector) Centroids() kmeans.CentroidSet {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.centroids.Clone()
}

// Writes returns how many times Write was called.
func (c *Collector) Writes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writes
}
