package interpolate

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/phil-mansfield/goresize/grid"
)

const (
	// MaxRank is the largest dimensionality Evaluate and Resize accept. Each
	// evaluation visits 1 << rank corners.
	MaxRank = 24
)

//////////////////////////////
// CornerSet Implementation //
//////////////////////////////

// CornerSet holds the 2^N lattice points surrounding a fractional coordinate.
// Corner mask selects Lo[d] on axis d when bit d of mask is 0 and Hi[d] when
// it is 1.
type CornerSet struct {
	Lo, Hi []int
	Frac   []float64
}

// NewCornerSet returns the CornerSet of coord inside a grid with the given
// shape.
func NewCornerSet(shape []int, coord []float64) (*CornerSet, error) {
	cs := &CornerSet{}
	if err := cs.Locate(shape, coord); err != nil {
		return nil, err
	}
	return cs, nil
}

// Locate moves cs to surround coord, reusing its buffers where possible.
//
// On the last index of an axis Hi collapses onto Lo, so coordinates in
// [extent - 1, extent) evaluate to the boundary sample.
func (cs *CornerSet) Locate(shape []int, coord []float64) error {
	if len(coord) != len(shape) {
		return fmt.Errorf(
			"%w: coordinate has %d components, but grid has rank %d",
			grid.ErrShapeMismatch, len(coord), len(shape),
		)
	}

	if len(cs.Lo) != len(coord) {
		cs.Lo = make([]int, len(coord))
		cs.Hi = make([]int, len(coord))
		cs.Frac = make([]float64, len(coord))
	}

	for d, x := range coord {
		if math.IsNaN(x) || x < 0 || x >= float64(shape[d]) {
			return fmt.Errorf(
				"%w: component %d of coordinate %v is outside [0, %d)",
				grid.ErrOutOfBounds, d, coord, shape[d],
			)
		}

		lo := math.Floor(x)
		cs.Lo[d] = int(lo)
		cs.Frac[d] = x - lo
		cs.Hi[d] = cs.Lo[d] + 1
		if cs.Hi[d] > shape[d]-1 {
			cs.Hi[d] = shape[d] - 1
		}
	}

	return nil
}

// Rank returns the dimensionality of the coordinate.
func (cs *CornerSet) Rank() int { return len(cs.Lo) }

// Len returns the number of corners, 2^Rank().
func (cs *CornerSet) Len() int { return 1 << uint(len(cs.Lo)) }

// Weight returns the interpolation weight of the corner given by mask.
func (cs *CornerSet) Weight(mask int) float64 {
	w := 1.0
	for d, t := range cs.Frac {
		// Explicit conversions keep the products from being fused.
		if mask>>uint(d)&1 == 0 {
			w = float64(w * (1 - t))
		} else {
			w = float64(w * t)
		}
	}
	return w
}

// weight32 is Weight carried out in single precision.
func (cs *CornerSet) weight32(mask int) float32 {
	w := float32(1)
	for d, t := range cs.Frac {
		t32 := float32(t)
		if mask>>uint(d)&1 == 0 {
			w = float32(w * (1 - t32))
		} else {
			w = float32(w * t32)
		}
	}
	return w
}

// Corner writes the grid coordinates of the corner given by mask into out
// and returns it. If out is nil, a new slice is allocated.
func (cs *CornerSet) Corner(mask int, out []int) []int {
	if out == nil {
		out = make([]int, len(cs.Lo))
	}
	for d := range cs.Lo {
		if mask>>uint(d)&1 == 0 {
			out[d] = cs.Lo[d]
		} else {
			out[d] = cs.Hi[d]
		}
	}
	return out
}

// Weights returns the weights of every corner surrounding coord, indexed by
// corner mask. They sum to 1.
func Weights(shape []int, coord []float64) ([]float64, error) {
	cs, err := NewCornerSet(shape, coord)
	if err != nil {
		return nil, err
	}
	ws := make([]float64, cs.Len())
	for mask := range ws {
		ws[mask] = cs.Weight(mask)
	}
	return ws, nil
}

////////////////////////////////////
// Point Evaluator Implementation //
////////////////////////////////////

// RoundHalfUp rounds x to the nearest integer, breaking ties upwards:
// RoundHalfUp(2.5) = 3 and RoundHalfUp(-2.5) = -2.
func RoundHalfUp(x float64) float64 { return math.Floor(x + 0.5) }

func roundHalfUp32(x float32) float32 {
	return float32(math.Floor(float64(float32(x + 0.5))))
}

// toSample converts a rounded sum to T. Integer types saturate at their
// bounds instead of wrapping around.
func toSample[T grid.Number](x float64) T {
	one, zero := T(1), T(0)
	if one/2 != zero {
		return T(x)
	}

	bits := 8 * int(unsafe.Sizeof(zero))
	lo, hi := 0.0, math.Ldexp(1, bits)
	if zero-one < zero {
		lo, hi = -math.Ldexp(1, bits-1), math.Ldexp(1, bits-1)
	}

	switch {
	case x < lo:
		return T(lo)
	case x >= hi:
		// T(lo) - 1 wraps to the largest value of T.
		return T(lo) - one
	}
	return T(x)
}

// Evaluate returns the multilinear interpolation of g at coord, rounded half
// up to g's element type. Interpolation is carried out in float64, so integer
// samples with magnitudes above 2^53 lose their low bits, and results outside
// the range of an integer element type saturate at its bounds.
func Evaluate[T grid.Number](g *grid.Grid[T], coord []float64) (T, error) {
	x, err := EvaluateRaw(g, coord)
	if err != nil {
		return 0, err
	}
	return toSample[T](RoundHalfUp(x)), nil
}

// EvaluateRaw returns the multilinear interpolation of g at coord without
// rounding.
func EvaluateRaw[T grid.Number](g *grid.Grid[T], coord []float64) (float64, error) {
	if err := checkRank(g.Rank()); err != nil {
		return 0, err
	}
	cs, err := NewCornerSet(g.Shape, coord)
	if err != nil {
		return 0, err
	}
	return sumCorners(g, cs, make([]int, g.Rank())), nil
}

// sumCorners accumulates weight * value over every corner of cs in mask
// order. corner is a buffer of length g.Rank().
func sumCorners[T grid.Number](g *grid.Grid[T], cs *CornerSet, corner []int) float64 {
	sum := 0.0
	for mask, n := 0, cs.Len(); mask < n; mask++ {
		w := cs.Weight(mask)
		x := g.Data[g.Idx(cs.Corner(mask, corner))]
		sum += float64(w * float64(x))
	}
	return sum
}

// sumCorners32 is sumCorners carried out in single precision.
func sumCorners32[T grid.Number](g *grid.Grid[T], cs *CornerSet, corner []int) float32 {
	sum := float32(0)
	for mask, n := 0, cs.Len(); mask < n; mask++ {
		w := cs.weight32(mask)
		x := g.Data[g.Idx(cs.Corner(mask, corner))]
		sum += float32(w * float32(x))
	}
	return sum
}

func checkRank(n int) error {
	if n < 1 || n > MaxRank {
		return fmt.Errorf(
			"%w: rank %d is outside [1, %d]", grid.ErrUnsupportedDims, n, MaxRank,
		)
	}
	return nil
}
