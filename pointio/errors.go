package pointio

import (
	"errors"
	"fmt"
)

// ErrShortInput is returned when a blob holds fewer points than requested.
var ErrShortInput = errors.New("not enough points in input")

// ErrInfinite is returned when an infinite coordinate is encoded as JSON.
var ErrInfinite = errors.New("infinite coordinate has no JSON representation")

// ParseError reports a malformed point.
type ParseError struct {
	// Point is the zero-based index of the offending point.
	Point int
	// Line is the one-based input line, or 0 for JSON input.
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("point %d (line %d): %v", e.Point, e.Line, e.Err)
	}
	return fmt.Sprintf("point %d: %v", e.Point, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
