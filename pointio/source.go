package pointio

import (
	"context"
	"fmt"
	"io"

	"github.com/hupe1980/lloyd/blobstore"
	"github.com/hupe1980/lloyd/kmeans"
)

// Source loads points from a blob.
type Source struct {
	store blobstore.BlobStore
	name  string
	dim   int
	count int
	opts  options
}

// NewSource returns a Source reading count points of dim coordinates from
// the named blob. A count of 0 reads every point in the blob.
func NewSource(store blobstore.BlobStore, name string, dim, count int, optFns ...Option) *Source {
	return &Source{
		store: store,
		name:  name,
		dim:   dim,
		count: count,
		opts:  newOptions(optFns),
	}
}

// Name returns the blob name.
func (s *Source) Name() string { return s.name }

// Load reads and decodes the points.
func (s *Source) Load(ctx context.Context) ([]kmeans.Point, error) {
	blob, err := s.store.Open(ctx, s.name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.name, err)
	}
	defer blob.Close()

	raw, err := blobstore.NewReader(ctx, blob)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.name, err)
	}
	defer raw.Close()

	format, compression := Detect(s.name, s.opts.format, s.opts.compression)

	r, err := decompress(s.opts.rc.Reader(ctx, raw), compression)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.name, err)
	}
	defer r.Close()

	var points []kmeans.Point
	switch format {
	case FormatJSON:
		var data []byte
		data, err = io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", s.name, err)
		}
		points, err = decodeJSON(s.opts.codec, data, s.dim, s.count)
	default:
		points, err = decodeCSV(r, s.dim, s.count)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.name, err)
	}
	return points, nil
}

// StaticSource serves points held in memory.
type StaticSource []kmeans.Point

// Load returns a copy of the points.
func (s StaticSource) Load(_ context.Context) ([]kmeans.Point, error) {
	out := make([]kmeans.Point, len(s))
	for i, p := range s {
		out[i] = append(kmeans.Point(nil), p...)
	}
	return out, nil
}
