package io

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/phil-mansfield/goresize/grid"
	"github.com/phil-mansfield/table"
)

// ReadTable reads the samples of a grid with the given shape from column col
// of the whitespace-separated text file fname. Rows are taken in row-major
// order.
func ReadTable(fname string, shape []int, col int) (*grid.Grid[float64], error) {
	if err := grid.CheckShape(shape); err != nil {
		return nil, err
	} else if col < 0 {
		return nil, fmt.Errorf("Table column must be non-negative, not %d.", col)
	}

	cols, err := table.ReadTable(fname, []int{col}, nil)
	if err != nil {
		return nil, err
	}

	vals := cols[0]
	if vol := grid.Volume(shape); len(vals) != vol {
		return nil, fmt.Errorf(
			"%w: table '%s' has %d rows, but shape %v holds %d samples",
			grid.ErrShapeMismatch, fname, len(vals), shape, vol,
		)
	}
	return grid.FromSlice(vals, shape...)
}

// WriteTable writes g to wr as a text table with one row per sample. Each
// row holds the sample's coordinates followed by its value, so the values can
// be read back from column g.Rank().
func WriteTable[T grid.Number](wr io.Writer, g *grid.Grid[T]) error {
	bw := bufio.NewWriter(wr)
	coords := make([]int, g.Rank())
	for i, x := range g.Data {
		g.Coords(i, coords)
		for _, c := range coords {
			if _, err := fmt.Fprintf(bw, "%d ", c); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(bw, "%v\n", x); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteTableFile writes g as a text table to the file fname.
func WriteTableFile[T grid.Number](fname string, g *grid.Grid[T]) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	if err := WriteTable(f, g); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
