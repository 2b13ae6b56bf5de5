package main

import (
	"fmt"

	"github.com/phil-mansfield/goresize/grid"
	plt "github.com/phil-mansfield/pyplot"
)

// line returns the samples of g along axis, with every other coordinate
// fixed at zero.
func line[T grid.Number](g *grid.Grid[T], axis int) []float64 {
	coords := make([]int, g.Rank())
	ys := make([]float64, g.Shape[axis])
	for i := range ys {
		coords[axis] = i
		ys[i] = float64(g.At(coords...))
	}
	return ys
}

// plotProfile plots the line through the origin of src along a spatial axis
// against the same line in the resized grid out. Both lines are plotted in
// the source grid's index space.
func plotProfile[T grid.Number](
	fname string, axis int, batched bool, src, out *grid.Grid[T],
) error {
	if batched {
		// Skip the batch axis.
		axis++
	}
	if axis >= src.Rank() || axis >= out.Rank() {
		return fmt.Errorf(
			"Cannot plot axis %d of a grid with rank %d.", axis, src.Rank(),
		)
	}

	srcYs, outYs := line(src, axis), line(out, axis)
	scale := float64(src.Shape[axis]) / float64(out.Shape[axis])

	srcXs := make([]float64, len(srcYs))
	for i := range srcXs {
		srcXs[i] = float64(i)
	}
	outXs := make([]float64, len(outYs))
	for i := range outXs {
		outXs[i] = float64(i) * scale
	}

	plt.Figure()
	plt.Plot(outXs, outYs, "r", plt.LW(2))
	plt.Plot(srcXs, srcYs, "ok")
	plt.Title(fmt.Sprintf(
		"Axis %d: %d samples resized to %d", axis, len(srcYs), len(outYs),
	))
	plt.XLabel("Source index", plt.FontSize(16))
	plt.YLabel("Value", plt.FontSize(16))
	plt.Grid(plt.Axis("y"))
	plt.SaveFig(fname)
	plt.Execute()

	return nil
}
