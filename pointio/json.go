package pointio

import (
	"fmt"
	"math"

	"github.com/hupe1980/lloyd/codec"
	"github.com/hupe1980/lloyd/kmeans"
)

type centroidDocument struct {
	Centroids [][]*float64 `json:"centroids"`
}

func decodeJSON(c codec.Codec, data []byte, dim, count int) ([]kmeans.Point, error) {
	var raw [][]*float64
	if err := c.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode %s points: %w", c.Name(), err)
	}

	if count == 0 {
		count = len(raw)
	}
	if len(raw) < count {
		return nil, fmt.Errorf("%w: want %d, got %d", ErrShortInput, count, len(raw))
	}
	if dim == 0 && count > 0 {
		dim = len(raw[0])
	}

	coords := make([]float64, dim*count)
	points := make([]kmeans.Point, count)
	for i := range points {
		if len(raw[i]) != dim {
			return nil, &ParseError{Point: i, Err: fmt.Errorf("expected %d coordinates, got %d", dim, len(raw[i]))}
		}
		p := coords[i*dim : (i+1)*dim : (i+1)*dim]
		for j, v := range raw[i] {
			if v == nil {
				p[j] = math.NaN()
			} else {
				p[j] = *v
			}
		}
		points[i] = p
	}
	return points, nil
}

// nullable maps NaN to null. JSON has no infinity, and null already means
// NaN, so infinite coordinates are rejected.
func nullable(p kmeans.Point) ([]*float64, error) {
	row := make([]*float64, len(p))
	for j := range p {
		v := p[j]
		if math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: coordinate %d is %v", ErrInfinite, j, v)
		}
		if !math.IsNaN(v) {
			row[j] = &v
		}
	}
	return row, nil
}

func encodePointsJSON(c codec.Codec, points []kmeans.Point) ([]byte, error) {
	rows := make([][]*float64, len(points))
	for i, p := range points {
		row, err := nullable(p)
		if err != nil {
			return nil, &ParseError{Point: i, Err: err}
		}
		rows[i] = row
	}
	return c.Marshal(rows)
}

// encodeJSON writes NaN coordinates as null and fails on infinite ones.
func encodeJSON(c codec.Codec, centroids kmeans.CentroidSet) ([]byte, error) {
	doc := centroidDocument{Centroids: make([][]*float64, len(centroids))}
	for i, centroid := range centroids {
		row, err := nullable(centroid)
		if err != nil {
			return nil, fmt.Errorf("centroid %d: %w", i, err)
		}
		doc.Centroids[i] = row
	}
	return c.Marshal(doc)
}

// DecodeCentroids parses a JSON centroid document as written by a Sink.
func DecodeCentroids(c codec.Codec, data []byte) (kmeans.CentroidSet, error) {
	var doc centroidDocument
	if err := c.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	out := make(kmeans.CentroidSet, len(doc.Centroids))
	for i, row := range doc.Centroids {
		out[i] = make(kmeans.Point, len(row))
		for j, v := range row {
			if v == nil {
				out[i][j] = math.NaN()
			} else {
				out[i][j] = *v
			}
		}
	}
	return out, nil
}
