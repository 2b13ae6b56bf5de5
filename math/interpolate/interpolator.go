/*package interpolate implements multilinear resampling of N-dimensional grids.

Evaluate computes the value at a single fractional coordinate and Resize
builds a whole grid of new resolution from it. AxisDecomposition is an
alternative Resizer which cascades 2D bilinear passes instead of weighting all
2^N corners jointly; its results are close to, but not always identical to,
those of Multilinear.
*/
package interpolate

import (
	"github.com/phil-mansfield/goresize/grid"
)

// Resizer resamples a grid to a new shape of the same rank.
type Resizer[T grid.Number] interface {
	// Resize returns a new grid with shape size. The input is not modified.
	Resize(g *grid.Grid[T], size []int) (*grid.Grid[T], error)
}

var (
	_ Resizer[float64] = &Multilinear[float64]{}
	_ Resizer[uint8]   = &Multilinear[uint8]{}
	_ Resizer[float64] = &AxisDecomposition[float64]{}
	_ Resizer[uint8]   = &AxisDecomposition[uint8]{}
)

// Multilinear is the Resizer that weights all 2^N corners around each
// source coordinate at once.
type Multilinear[T grid.Number] struct {
	Options
}

// Resize resamples g to size. See the package-level Resize.
func (m *Multilinear[T]) Resize(g *grid.Grid[T], size []int) (*grid.Grid[T], error) {
	return Resize(g, size, m.Options)
}
