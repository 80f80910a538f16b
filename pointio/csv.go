package pointio

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hupe1980/lloyd/kmeans"
)

// decodeCSV reads up to count points (all points when count is 0).
// A dim of 0 takes the dimensionality from the first line.
func decodeCSV(r io.Reader, dim, count int) ([]kmeans.Point, error) {
	cr := csv.NewReader(bufio.NewReaderSize(r, 64<<10))
	cr.FieldsPerRecord = dim
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	var coords []float64
	if dim > 0 && count > 0 {
		coords = make([]float64, 0, dim*count)
	}

	n := 0
	for count == 0 || n < count {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			line := 0
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				line = perr.Line
				err = perr.Err
			}
			return nil, &ParseError{Point: n, Line: line, Err: err}
		}
		line, _ := cr.FieldPos(0)
		for i, field := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, &ParseError{Point: n, Line: line, Err: fmt.Errorf("coordinate %d: %w", i, err)}
			}
			coords = append(coords, v)
		}
		if dim == 0 {
			dim = len(record)
		}
		n++
	}

	if count > 0 && n < count {
		return nil, fmt.Errorf("%w: want %d, got %d", ErrShortInput, count, n)
	}

	points := make([]kmeans.Point, n)
	for i := range points {
		points[i] = coords[i*dim : (i+1)*dim : (i+1)*dim]
	}
	return points, nil
}

// encodeCSV writes one centroid per line with six decimals per coordinate.
func encodeCSV(w io.Writer, centroids kmeans.CentroidSet) error {
	cw := csv.NewWriter(w)
	var record []string
	for _, c := range centroids {
		record = record[:0]
		for _, v := range c {
			record = append(record, strconv.FormatFloat(v, 'f', 6, 64))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
