package grid

import (
	"errors"
	"fmt"
)

var (
	// ErrShapeMismatch is returned when two ranks or shapes which must agree
	// do not, e.g. a coordinate with the wrong number of components.
	ErrShapeMismatch = errors.New("shape mismatch")
	// ErrUnsupportedDims is returned when a grid's rank is outside the range
	// supported by an operation.
	ErrUnsupportedDims = errors.New("unsupported dimensionality")
	// ErrInvalidSize is returned when an extent or target size is below 1.
	ErrInvalidSize = errors.New("invalid size")
	// ErrOutOfBounds is returned for coordinates which fall outside a grid.
	ErrOutOfBounds = errors.New("out of bounds")
)

// CheckShape returns an error if any extent in shape is below 1.
func CheckShape(shape []int) error {
	for d, n := range shape {
		if n < 1 {
			return fmt.Errorf(
				"%w: axis %d of shape %v has extent %d", ErrInvalidSize, d, shape, n,
			)
		}
	}
	return nil
}
