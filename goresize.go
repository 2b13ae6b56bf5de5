/*package goresize resizes batched, multi-channel N-dimensional content with
multilinear interpolation.

Content has shape [batch, d0, ..., dN-1, channels]. Every (batch, channel)
slice is resized independently by an interpolate.Resizer and the results are
reassembled into a grid of shape [batch, size..., channels].
*/
package goresize

import (
	"fmt"

	"github.com/phil-mansfield/goresize/grid"
	"github.com/phil-mansfield/goresize/math/interpolate"
)

// ResizeMultilinear resizes the spatial axes of content to size with
// interpolate.Multilinear.
func ResizeMultilinear[T grid.Number](
	content *grid.Grid[T], size []int,
) (*grid.Grid[T], error) {
	return ResizeWith[T](content, size, &interpolate.Multilinear[T]{})
}

// ResizeWith resizes the spatial axes of content to size using r for each
// (batch, channel) slice. Batch and channel extents are unchanged.
func ResizeWith[T grid.Number](
	content *grid.Grid[T], size []int, r interpolate.Resizer[T],
) (*grid.Grid[T], error) {
	if err := checkContent(content.Shape, size); err != nil {
		return nil, err
	}

	batches, err := content.Unstack(0)
	if err != nil {
		return nil, err
	}

	for b := range batches {
		channelAxis := batches[b].Rank() - 1
		channels, err := batches[b].Unstack(channelAxis)
		if err != nil {
			return nil, err
		}

		for c := range channels {
			channels[c], err = r.Resize(channels[c], size)
			if err != nil {
				return nil, fmt.Errorf("batch %d, channel %d: %w", b, c, err)
			}
		}

		batches[b], err = grid.Stack(channels, channelAxis)
		if err != nil {
			return nil, err
		}
	}

	return grid.Stack(batches, 0)
}

// SpatialShape returns the shape of a resized content grid: batch and channel
// extents of shape with the spatial extents replaced by size.
func SpatialShape(shape, size []int) ([]int, error) {
	if err := checkContent(shape, size); err != nil {
		return nil, err
	}
	out := make([]int, 0, len(shape))
	out = append(out, shape[0])
	out = append(out, size...)
	out = append(out, shape[len(shape)-1])
	return out, nil
}

func checkContent(shape, size []int) error {
	if len(shape) < 3 {
		return fmt.Errorf(
			"%w: content of rank %d has no spatial axes", grid.ErrShapeMismatch,
			len(shape),
		)
	} else if len(shape) != len(size)+2 {
		return fmt.Errorf(
			"%w: content has %d spatial axes, but %d sizes were given",
			grid.ErrShapeMismatch, len(shape)-2, len(size),
		)
	}

	for d, n := range size {
		if n < 1 {
			return fmt.Errorf(
				"%w: size %d on spatial axis %d", grid.ErrInvalidSize, n, d,
			)
		}
	}
	return nil
}
