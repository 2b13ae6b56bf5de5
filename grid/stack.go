package grid

import (
	"fmt"
)

// Unstack splits g along axis into Shape[axis] grids of rank Rank() - 1. The
// samples are copied.
func (g *Grid[T]) Unstack(axis int) ([]*Grid[T], error) {
	if g.Rank() < 2 {
		return nil, fmt.Errorf(
			"%w: cannot unstack a grid of rank %d", ErrUnsupportedDims, g.Rank(),
		)
	} else if axis < 0 || axis >= g.Rank() {
		return nil, fmt.Errorf(
			"%w: axis %d of a grid with rank %d", ErrOutOfBounds, axis, g.Rank(),
		)
	}

	shape := make([]int, 0, g.Rank()-1)
	shape = append(shape, g.Shape[:axis]...)
	shape = append(shape, g.Shape[axis+1:]...)

	n := g.Shape[axis]
	inner := g.Strides[axis]
	outer := len(g.Data) / (n * inner)

	out := make([]*Grid[T], n)
	for i := range out {
		out[i] = &Grid[T]{Data: make([]T, outer*inner)}
		out[i].init(shape)

		for o := 0; o < outer; o++ {
			src := g.Data[o*n*inner+i*inner : o*n*inner+(i+1)*inner]
			copy(out[i].Data[o*inner:(o+1)*inner], src)
		}
	}

	return out, nil
}

// Stack joins grids of identical shape along a new axis inserted at position
// axis. It is the inverse of Unstack.
func Stack[T Number](gs []*Grid[T], axis int) (*Grid[T], error) {
	if len(gs) == 0 {
		return nil, fmt.Errorf("%w: no grids to stack", ErrInvalidSize)
	}
	sub := gs[0].Shape
	if axis < 0 || axis > len(sub) {
		return nil, fmt.Errorf(
			"%w: axis %d when stacking grids of rank %d",
			ErrOutOfBounds, axis, len(sub),
		)
	}
	for i, g := range gs {
		if !sameShape(g.Shape, sub) {
			return nil, fmt.Errorf(
				"%w: grid %d has shape %v, but grid 0 has shape %v",
				ErrShapeMismatch, i, g.Shape, sub,
			)
		}
	}

	n := len(gs)
	shape := make([]int, 0, len(sub)+1)
	shape = append(shape, sub[:axis]...)
	shape = append(shape, n)
	shape = append(shape, sub[axis:]...)

	inner := Volume(sub[axis:])
	outer := Volume(sub[:axis])

	out := &Grid[T]{Data: make([]T, n*Volume(sub))}
	out.init(shape)
	for i, g := range gs {
		for o := 0; o < outer; o++ {
			dst := out.Data[o*n*inner+i*inner : o*n*inner+(i+1)*inner]
			copy(dst, g.Data[o*inner:(o+1)*inner])
		}
	}

	return out, nil
}

func sameShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
