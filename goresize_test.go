package goresize

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/phil-mansfield/goresize/grid"
	"github.com/phil-mansfield/goresize/math/interpolate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResizeMultilinearSingleSlice(t *testing.T) {
	content := grid.MustFromSlice([]int{0, 10, 20, 30}, 1, 2, 2, 1)
	out, err := ResizeMultilinear(content, []int{4, 4})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 4, 4, 1}, out.Shape)

	slice := grid.MustFromSlice([]int{0, 10, 20, 30}, 2, 2)
	want, err := interpolate.Resize(slice, []int{4, 4})
	require.NoError(t, err)

	if diff := cmp.Diff(want.Data, out.Data); diff != "" {
		t.Errorf("content mismatch (-want +got):\n%s", diff)
	}
}

func TestResizeMultilinearBatchChannels(t *testing.T) {
	batches, rows, cols, channels := 2, 3, 2, 3
	content, _ := grid.New[int](batches, rows, cols, channels)
	for b := 0; b < batches; b++ {
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				for c := 0; c < channels; c++ {
					content.Set(100*b+10*c+4*i+j, b, i, j, c)
				}
			}
		}
	}

	size := []int{5, 4}
	out, err := ResizeMultilinear(content, size)
	require.NoError(t, err)
	assert.Equal(t, []int{batches, 5, 4, channels}, out.Shape)

	for b := 0; b < batches; b++ {
		for c := 0; c < channels; c++ {
			slice, _ := grid.New[int](rows, cols)
			for i := 0; i < rows; i++ {
				for j := 0; j < cols; j++ {
					slice.Set(content.At(b, i, j, c), i, j)
				}
			}
			want, err := interpolate.Resize(slice, size)
			require.NoError(t, err)

			for i := 0; i < size[0]; i++ {
				for j := 0; j < size[1]; j++ {
					assert.Equal(t, want.At(i, j), out.At(b, i, j, c),
						"batch %d, channel %d, (%d, %d)", b, c, i, j)
				}
			}
		}
	}
}

func TestResizeWithDecomposition(t *testing.T) {
	content, _ := grid.New[float32](1, 2, 3, 2, 2)
	for i := range content.Data {
		content.Data[i] = float32(i)
	}
	out, err := ResizeWith[float32](
		content, []int{3, 3, 3}, &interpolate.AxisDecomposition[float32]{},
	)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 3, 3, 2}, out.Shape)

	_, err = ResizeWith[float32](
		content, []int{3, 3, 3}, &interpolate.Multilinear[float32]{},
	)
	require.NoError(t, err)
}

func TestResizeMultilinearErrors(t *testing.T) {
	content, _ := grid.New[int](1, 2, 2, 1)

	table := []struct {
		size []int
		err  error
	}{
		{[]int{4}, grid.ErrShapeMismatch},
		{[]int{4, 4, 4}, grid.ErrShapeMismatch},
		{[]int{4, 0}, grid.ErrInvalidSize},
	}
	for i, test := range table {
		_, err := ResizeMultilinear(content, test.size)
		if !errors.Is(err, test.err) {
			t.Errorf("%d) Expected %v for size %v. Got %v.", i+1, test.err, test.size, err)
		}
	}

	flat, _ := grid.New[int](2, 2)
	_, err := ResizeMultilinear(flat, []int{})
	assert.True(t, errors.Is(err, grid.ErrShapeMismatch))

	// The decomposition backend's rank limit surfaces through the driver.
	line, _ := grid.New[int](1, 4, 1)
	_, err = ResizeWith[int](line, []int{8}, &interpolate.AxisDecomposition[int]{})
	assert.True(t, errors.Is(err, grid.ErrUnsupportedDims))
}

func TestSpatialShape(t *testing.T) {
	shape, err := SpatialShape([]int{2, 3, 4, 5, 6}, []int{7, 8, 9})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 7, 8, 9, 6}, shape)
}
