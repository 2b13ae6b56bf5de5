package interpolate

import (
	"errors"
	"math"
	"testing"

	"github.com/phil-mansfield/goresize/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAxisDecomposition2D(t *testing.T) {
	g := grid.MustFromSlice([]int{0, 10, 20, 30}, 2, 2)
	ad := &AxisDecomposition[int]{}

	out, err := ad.Resize(g, []int{4, 4})
	require.NoError(t, err)

	joint, err := Resize(g, []int{4, 4})
	require.NoError(t, err)
	assert.Equal(t, joint.Data, out.Data)
}

func TestAxisDecompositionMatchesJoint(t *testing.T) {
	table := []struct {
		shape, size []int
	}{
		{[]int{3, 4, 5}, []int{6, 7, 2}},
		{[]int{4, 2, 3}, []int{4, 5, 3}},
		{[]int{2, 3, 2, 3}, []int{5, 4, 3, 6}},
	}

	for i, test := range table {
		g, _ := grid.New[int](test.shape...)
		buf := make([]int, len(test.shape))
		for j := range g.Data {
			c := g.Coords(j, buf)
			sum := 0
			for d, x := range c {
				sum += (d + 2) * 3 * x
			}
			g.Data[j] = sum
		}

		ad := &AxisDecomposition[int]{Workers: 2}
		out, err := ad.Resize(g, test.size)
		require.NoError(t, err)
		joint, err := Resize(g, test.size)
		require.NoError(t, err)

		assert.Equal(t, test.size, out.Shape, "%d) shape", i+1)
		for j := range out.Data {
			assert.InDelta(t, joint.Data[j], out.Data[j], 1, "%d) cell %d", i+1, j)
		}
	}
}

func TestAxisDecompositionIdentity(t *testing.T) {
	g := rampGrid(3, 5, 4)
	ad := &AxisDecomposition[int]{}
	out, err := ad.Resize(g, []int{3, 5, 4})
	require.NoError(t, err)
	assert.Equal(t, g.Data, out.Data)
}

func TestAxisDecompositionSaturates(t *testing.T) {
	g := grid.MustFromSlice([]int64{
		math.MaxInt64, math.MaxInt64, math.MaxInt64, math.MaxInt64,
	}, 2, 2)
	out, err := (&AxisDecomposition[int64]{}).Resize(g, []int{3, 3})
	require.NoError(t, err)
	for i, x := range out.Data {
		assert.Equal(t, int64(math.MaxInt64), x, "sample %d", i)
	}
}

func TestAxisDecompositionRanks(t *testing.T) {
	line := grid.MustFromSlice([]float64{0, 1}, 2)
	_, err := (&AxisDecomposition[float64]{}).Resize(line, []int{4})
	assert.True(t, errors.Is(err, grid.ErrUnsupportedDims))

	g5, _ := grid.New[float64](2, 2, 2, 2, 2)
	_, err = (&AxisDecomposition[float64]{}).Resize(g5, []int{3, 3, 3, 3, 3})
	assert.True(t, errors.Is(err, grid.ErrUnsupportedDims))

	g2, _ := grid.New[float64](2, 2)
	_, err = (&AxisDecomposition[float64]{}).Resize(g2, []int{3, 3, 3})
	assert.True(t, errors.Is(err, grid.ErrShapeMismatch))
}
