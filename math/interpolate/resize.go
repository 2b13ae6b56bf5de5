package interpolate

import (
	"fmt"
	"sync"

	"github.com/phil-mansfield/goresize/grid"
	"github.com/unixpickle/essentials"
)

// Options controls how Resize runs.
type Options struct {
	// Workers is the number of goroutines used. Zero or less means
	// GOMAXPROCS.
	Workers int
	// SinglePrecision rounds each source coordinate to a float32 and carries
	// out the weighting in single precision. This reproduces the output of
	// implementations which store positions as float32.
	SinglePrecision bool
}

// Scales returns the per-axis ratio of source extent to target size. An output
// index times its axis's scale is a source coordinate.
func Scales(src, size []int) []float64 {
	scale := make([]float64, len(src))
	for d := range src {
		scale[d] = float64(src[d]) / float64(size[d])
	}
	return scale
}

// Resize returns a new grid with shape size whose samples are the multilinear
// interpolation of g at the corresponding source coordinates. Only the first
// Options value is used.
//
// No output is returned if any cell fails to evaluate.
func Resize[T grid.Number](
	g *grid.Grid[T], size []int, opts ...Options,
) (*grid.Grid[T], error) {
	opt := Options{}
	if len(opts) > 0 {
		opt = opts[0]
	}
	if opt.Workers < 0 {
		opt.Workers = 0
	}

	if err := checkResize(g.Shape, size); err != nil {
		return nil, err
	}
	scale := Scales(g.Shape, size)

	out, err := grid.New[T](size...)
	if err != nil {
		return nil, err
	}

	var (
		errOnce  sync.Once
		firstErr error
	)

	essentials.StatefulConcurrentMap(opt.Workers, out.Len(), func() func(i int) {
		cs := &CornerSet{}
		idx := make([]int, len(size))
		coord := make([]float64, len(size))
		corner := make([]int, len(size))

		return func(i int) {
			out.Coords(i, idx)
			for d := range idx {
				coord[d] = float64(idx[d]) * scale[d]
				if opt.SinglePrecision {
					coord[d] = float64(float32(coord[d]))
				}
			}

			if err := cs.Locate(g.Shape, coord); err != nil {
				errOnce.Do(func() { firstErr = err })
				return
			}

			if opt.SinglePrecision {
				out.Data[i] = toSample[T](float64(roundHalfUp32(sumCorners32(g, cs, corner))))
			} else {
				out.Data[i] = toSample[T](RoundHalfUp(sumCorners(g, cs, corner)))
			}
		}
	})

	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

// checkResize validates the source shape and the target size of a resize.
func checkResize(shape, size []int) error {
	if len(size) != len(shape) {
		return fmt.Errorf(
			"%w: %d target sizes given for a grid of rank %d",
			grid.ErrShapeMismatch, len(size), len(shape),
		)
	}
	if err := checkRank(len(shape)); err != nil {
		return err
	}
	for d, n := range size {
		if n < 1 {
			return fmt.Errorf(
				"%w: target size %d on axis %d", grid.ErrInvalidSize, n, d,
			)
		}
	}
	return nil
}
