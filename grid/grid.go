/*package grid provides an N-dimensional grid of numeric samples stored in a
flat, row-major slice.
*/
package grid

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Number is the set of element types a Grid can hold.
type Number interface {
	constraints.Integer | constraints.Float
}

// Grid provides an interface for reasoning over a 1D slice as if it were an
// N-dimensional grid. The last axis varies fastest.
type Grid[T Number] struct {
	Shape   []int
	Strides []int
	Data    []T
}

// New returns a zeroed Grid with the given shape.
func New[T Number](shape ...int) (*Grid[T], error) {
	if err := CheckShape(shape); err != nil {
		return nil, err
	}
	g := &Grid[T]{}
	g.init(shape)
	g.Data = make([]T, Volume(shape))
	return g, nil
}

// FromSlice wraps data in a Grid with the given shape. data is not copied.
func FromSlice[T Number](data []T, shape ...int) (*Grid[T], error) {
	if err := CheckShape(shape); err != nil {
		return nil, err
	}
	if vol := Volume(shape); vol != len(data) {
		return nil, fmt.Errorf(
			"%w: len(data) = %d, but shape %v holds %d samples",
			ErrShapeMismatch, len(data), shape, vol,
		)
	}
	g := &Grid[T]{Data: data}
	g.init(shape)
	return g, nil
}

// MustFromSlice is FromSlice, but panics on error.
func MustFromSlice[T Number](data []T, shape ...int) *Grid[T] {
	g, err := FromSlice(data, shape...)
	if err != nil {
		panic(err.Error())
	}
	return g
}

func (g *Grid[T]) init(shape []int) {
	g.Shape = append([]int{}, shape...)
	g.Strides = make([]int, len(shape))
	stride := 1
	for d := len(shape) - 1; d >= 0; d-- {
		g.Strides[d] = stride
		stride *= shape[d]
	}
}

// Volume returns the number of samples in a grid with the given shape.
func Volume(shape []int) int {
	vol := 1
	for _, n := range shape {
		vol *= n
	}
	return vol
}

// Rank returns the number of axes in the grid.
func (g *Grid[T]) Rank() int { return len(g.Shape) }

// Len returns the total number of samples in the grid.
func (g *Grid[T]) Len() int { return len(g.Data) }

// Extent returns the number of samples along axis d.
func (g *Grid[T]) Extent(d int) int { return g.Shape[d] }

// Idx returns the flat index corresponding to a set of coordinates. No bounds
// checking is done beyond the rank.
func (g *Grid[T]) Idx(coords []int) int {
	if len(coords) != len(g.Shape) {
		panic(fmt.Sprintf(
			"len(coords) = %d, but grid has rank %d", len(coords), len(g.Shape),
		))
	}
	idx := 0
	for d, x := range coords {
		idx += x * g.Strides[d]
	}
	return idx
}

// IdxCheck returns an index and true if the given coordinates are valid and
// false otherwise.
func (g *Grid[T]) IdxCheck(coords []int) (idx int, ok bool) {
	if !g.BoundsCheck(coords) {
		return -1, false
	}
	return g.Idx(coords), true
}

// BoundsCheck returns true if the given coordinates are within the Grid and
// false otherwise.
func (g *Grid[T]) BoundsCheck(coords []int) bool {
	if len(coords) != len(g.Shape) {
		return false
	}
	for d, x := range coords {
		if x < 0 || x >= g.Shape[d] {
			return false
		}
	}
	return true
}

// Coords writes the coordinates of a flat index into out and returns it. If
// out is nil, a new slice is allocated.
func (g *Grid[T]) Coords(idx int, out []int) []int {
	if out == nil {
		out = make([]int, len(g.Shape))
	}
	for d, stride := range g.Strides {
		out[d] = idx / stride
		idx -= out[d] * stride
	}
	return out
}

// At returns the sample at the given coordinates.
func (g *Grid[T]) At(coords ...int) T { return g.Data[g.Idx(coords)] }

// Set sets the sample at the given coordinates.
func (g *Grid[T]) Set(x T, coords ...int) { g.Data[g.Idx(coords)] = x }

// Clone returns a deep copy of the grid.
func (g *Grid[T]) Clone() *Grid[T] {
	out := &Grid[T]{Data: append([]T{}, g.Data...)}
	out.init(g.Shape)
	return out
}

// Reshape returns a Grid which shares g's samples but has a different shape
// with the same volume.
func (g *Grid[T]) Reshape(shape ...int) (*Grid[T], error) {
	return FromSlice(g.Data, shape...)
}

// Map applies f to every sample of g and returns the results in a new grid of
// the same shape.
func Map[T, U Number](g *Grid[T], f func(T) U) *Grid[U] {
	out := &Grid[U]{Data: make([]U, len(g.Data))}
	out.init(g.Shape)
	for i, x := range g.Data {
		out.Data[i] = f(x)
	}
	return out
}

// Convert returns a copy of g with every sample converted to U.
func Convert[T, U Number](g *Grid[T]) *Grid[U] {
	return Map(g, func(x T) U { return U(x) })
}
