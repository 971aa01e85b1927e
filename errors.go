package nabo

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCloud is returned when an index is built over a cloud with no
	// points (or points with no coordinates).
	ErrEmptyCloud = errors.New("nabo: point cloud must contain at least one point")

	// ErrInvalidK is returned when fewer than one neighbour is requested.
	ErrInvalidK = errors.New("nabo: k must be >= 1")

	// ErrDimensionMismatch matches every *DimensionMismatchError with errors.Is.
	ErrDimensionMismatch = errors.New("nabo: dimension mismatch")

	// ErrUnknownKind is returned for a Config.Kind this package does not build.
	ErrUnknownKind = errors.New("nabo: unknown index kind")
)

// DimensionMismatchError reports a query whose length differs from the
// dimension of the indexed cloud.
type DimensionMismatchError struct {
	Expected int
	Actual   int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("nabo: query has dimension %d, cloud has dimension %d", e.Actual, e.Expected)
}

func (e *DimensionMismatchError) Is(target error) bool { return target == ErrDimensionMismatch }

func invalidK(k int) error {
	return fmt.Errorf("%w, got %d", ErrInvalidK, k)
}
