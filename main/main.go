package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"strings"

	"github.com/phil-mansfield/goresize"
	"github.com/phil-mansfield/goresize/grid"
	"github.com/phil-mansfield/goresize/io"
	"github.com/phil-mansfield/goresize/math/interpolate"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// FileGroup contains utility files for logging and writing profiles to.
type FileGroup struct {
	log, prof *os.File
}

// Close closes the files inside FileGroup.
func (fg *FileGroup) Close() {
	if fg.log != nil {
		err := fg.log.Close()
		if err != nil {
			log.Fatal(err.Error())
		}
	}

	if fg.prof != nil {
		pprof.StopCPUProfile()
		err := fg.prof.Close()
		if err != nil {
			log.Fatal(err.Error())
		}
	}
}

// NewFileGroup opens the log and profile files requested by con, if any.
func NewFileGroup(con *io.SharedConfig) (*FileGroup, error) {
	fg := &FileGroup{}
	var err error

	if con.ValidLogFile() {
		fg.log, err = os.Create(con.LogFile)
		if err != nil {
			return nil, err
		}
		log.SetOutput(fg.log)
	}

	if con.ValidProfileFile() {
		fg.prof, err = os.Create(con.ProfileFile)
		if err != nil {
			return nil, err
		}
		if err = pprof.StartCPUProfile(fg.prof); err != nil {
			return nil, err
		}
	}

	return fg, nil
}

var threads int

func main() {
	// The main function manages input sanitization and calls the secondary
	// main functions for each mode.

	var (
		resizeStr, exampleConfig string
	)
	vars := map[string]*string{
		"Resize":        &resizeStr,
		"ExampleConfig": &exampleConfig,
	}

	flag.IntVar(
		&threads, "Threads", runtime.NumCPU(),
		"Number of threads used. Default is the number of logical cores.",
	)
	flag.StringVar(
		&resizeStr, "Resize", "",
		"Configuration file for [Resize] mode.",
	)
	flag.StringVar(
		&exampleConfig,
		"ExampleConfig", "", "Prints an example configuration file of the "+
			"specified type to stdout. The only accepted argument is 'Resize'.",
	)

	flag.Parse()

	modeName, err := getModeName(vars)
	if err != nil {
		log.Fatal(err.Error())
	}

	switch modeName {
	case "Resize":
		con, err := io.ReadResizeConfig(resizeStr)
		if err != nil {
			log.Fatal(err.Error())
		}
		if threads <= 0 {
			log.Fatalf("'Threads' must be positive, but is %d.", threads)
		}

		fg, err := NewFileGroup(&con.SharedConfig)
		if err != nil {
			log.Fatal(err.Error())
		}
		defer fg.Close()

		if err := resizeMain(con); err != nil {
			log.Fatal(err.Error())
		}

	case "ExampleConfig":
		switch exampleConfig {
		case "Resize":
			fmt.Println(io.ExampleResizeFile)
		default:
			log.Fatal(
				"Unrecognized 'ExampleConfig' argument. The only recognized " +
					"argument is 'Resize'.",
			)
		}
	default:
		panic("Impossible")
	}
}

// getModeName returns the name of the mode and fails with a descriptive error
// if the user provided less or more than one mode flag.
func getModeName(vars map[string]*string) (string, error) {
	setNames := []string{}

	for name, varPtr := range vars {
		if *varPtr != "" {
			setNames = append(setNames, name)
		}
	}

	if len(setNames) == 0 {
		return "", fmt.Errorf("No flags have been set.")
	}

	if len(setNames) > 1 {
		return "", fmt.Errorf(
			"The following flags were set: %s, but goresize "+
				"only accepts one flag at a time.",
			strings.Join(setNames, ", "),
		)
	}

	return setNames[0], nil
}

// resizeMain reads the input grid and dispatches on its sample type.
func resizeMain(con *io.ResizeConfig) error {
	if con.IsTableInput() {
		g, err := io.ReadTable(con.Input, con.Shape, con.TableColumn)
		if err != nil {
			return err
		}
		return resizeGrid(con, g)
	}

	hd, err := io.ReadGridHeaderFile(con.Input)
	if err != nil {
		return err
	}
	log.Printf("Reading %s grid with shape %v from %s", hd.Type, hd.Shape, con.Input)

	switch hd.Type {
	case io.Int64:
		return readAndResize[int64](con)
	case io.Int32:
		return readAndResize[int32](con)
	case io.Uint8:
		return readAndResize[uint8](con)
	case io.Float32:
		return readAndResize[float32](con)
	case io.Float64:
		return readAndResize[float64](con)
	}
	panic("Impossible")
}

func readAndResize[T grid.Number](con *io.ResizeConfig) error {
	g, err := io.ReadGridFile[T](con.Input)
	if err != nil {
		return err
	}
	return resizeGrid(con, g)
}

// resizeGrid resizes g according to con and writes the result.
func resizeGrid[T grid.Number](con *io.ResizeConfig, g *grid.Grid[T]) error {
	content, size := g, con.Size
	if !con.Batched {
		// A plain grid is content with one batch and one channel.
		shape := append(append([]int{1}, g.Shape...), 1)
		var err error
		content, err = g.Reshape(shape...)
		if err != nil {
			return err
		}
	}

	var r interpolate.Resizer[T]
	if con.IsDecomposition() {
		r = &interpolate.AxisDecomposition[T]{Workers: threads}
	} else {
		r = &interpolate.Multilinear[T]{Options: interpolate.Options{
			Workers:         threads,
			SinglePrecision: con.SinglePrecision,
		}}
	}

	logSummary("Input", content)
	out, err := goresize.ResizeWith(content, size, r)
	if err != nil {
		return err
	}
	logSummary("Output", out)

	if !con.Batched {
		out, err = out.Reshape(size...)
		if err != nil {
			return err
		}
	}

	log.Printf("Writing to %s", con.Output)
	if con.IsTableOutput() {
		err = io.WriteTableFile(con.Output, out)
	} else {
		err = io.WriteGridFile(con.Output, out)
	}
	if err != nil {
		return err
	}

	if con.ValidPlotFile() {
		src := content
		if !con.Batched {
			src = g
		}
		log.Printf("Plotting axis %d to %s", con.PlotAxis, con.PlotFile)
		return plotProfile(con.PlotFile, con.PlotAxis, con.Batched, src, out)
	}
	return nil
}

// logSummary logs the shape and basic statistics of a grid.
func logSummary[T grid.Number](name string, g *grid.Grid[T]) {
	xs := grid.Convert[T, float64](g).Data
	mean, std := stat.MeanStdDev(xs, nil)
	log.Printf(
		"%s: shape %v, min %.4g, max %.4g, mean %.4g, std %.4g",
		name, g.Shape, floats.Min(xs), floats.Max(xs), mean, std,
	)
}
