package io

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExampleResizeFile(t *testing.T) {
	con, err := ParseResizeConfig(ExampleResizeFile)
	require.NoError(t, err)

	assert.Equal(t, "path/to/input.gtet", con.Input)
	assert.Equal(t, "path/to/output.gtet", con.Output)
	assert.Equal(t, []int{256, 256, 64}, con.Size)
	assert.False(t, con.IsTableInput())
	assert.False(t, con.IsDecomposition())
	assert.False(t, con.Batched)
	assert.False(t, con.ValidLogFile())
}

func TestReadResizeConfig(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "resize.txt")
	text := `[Resize]
Input = in.txt
Output = out.gtet
InputFormat = Table
Shape = 2
Shape = 2
TableColumn = 2
Size = 4
Size = 4
Backend = AxisDecomposition
SinglePrecision = true
PlotFile = profile.png
PlotAxis = 1`
	require.NoError(t, os.WriteFile(fname, []byte(text), 0644))

	con, err := ReadResizeConfig(fname)
	require.NoError(t, err)
	assert.True(t, con.IsTableInput())
	assert.False(t, con.IsTableOutput())
	assert.True(t, con.IsDecomposition())
	assert.True(t, con.SinglePrecision)
	assert.Equal(t, []int{2, 2}, con.Shape)
	assert.Equal(t, 2, con.TableColumn)
	assert.Equal(t, 1, con.PlotAxis)
}

func TestResizeConfigCheckInit(t *testing.T) {
	table := []string{
		"[Resize]\nOutput = b\nSize = 2",
		"[Resize]\nInput = a\nSize = 2",
		"[Resize]\nInput = a\nOutput = b",
		"[Resize]\nInput = a\nOutput = b\nSize = 0",
		"[Resize]\nInput = a\nOutput = b\nSize = 2\nInputFormat = HDF5",
		"[Resize]\nInput = a\nOutput = b\nSize = 2\nInputFormat = Table",
		"[Resize]\nInput = a\nOutput = b\nSize = 2\nBackend = Bicubic",
		"[Resize]\nInput = a\nOutput = b\nSize = 2\nPlotFile = p.png\nPlotAxis = 1",
	}

	for i, text := range table {
		if _, err := ParseResizeConfig(text); err == nil {
			t.Errorf("%d) Expected an error for config:\n%s", i+1, text)
		}
	}
}
