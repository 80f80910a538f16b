package lloyd

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimension is returned when the configured dimension is not positive.
	ErrInvalidDimension = errors.New("wrong number of dimensions")

	// ErrInvalidPointCount is returned when the configured point count is not positive.
	ErrInvalidPointCount = errors.New("wrong number of points")

	// ErrInvalidK is returned when the cluster count is not positive.
	ErrInvalidK = errors.New("wrong number of clusters")
)

// ErrDimensionMismatch indicates a loaded point with the wrong number of coordinates.
type ErrDimensionMismatch struct {
	Index    int
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("point %d: dimension mismatch: expected %d, got %d", e.Index, e.Expected, e.Actual)
}

// ErrPointCountMismatch indicates a source that returned the wrong number of points.
type ErrPointCountMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrPointCountMismatch) Error() string {
	return fmt.Sprintf("point count mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// Stages reported by StageError.
const (
	StageReserve        = "reserve memory"
	StageLoad           = "load points"
	StageWriteCentroids = "write centroids"
	StageWriteMembers   = "write members"
)

// StageError reports which stage of a run failed.
//
// The original underlying error can be accessed via errors.Unwrap.
type StageError struct {
	Stage string
	cause error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.cause)
}

func (e *StageError) Unwrap() error { return e.cause }

func stageError(stage string, err error) error {
	if err == nil {
		return nil
	}
	return &StageError{Stage: stage, cause: err}
}
