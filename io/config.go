package io

import (
	"fmt"
	"strings"

	"gopkg.in/gcfg.v1"
)

const (
	ExampleResizeFile = `[Resize]

#######################
# Required Parameters #
#######################

# File containing the grid which will be resized.
Input = path/to/input.gtet
# File which the resized grid will be written to.
Output = path/to/output.gtet

# The new extent of each spatial axis. Give one Size line per axis, in order.
# If Batched is set, the batch and channel axes are not included.
Size = 256
Size = 256
Size = 64

#######################
# Optional Parameters #
#######################

# Format of the input and output files. Must be one of [ Grid | Table ].
# Grid files are the binary format written by this program. Table files are
# whitespace-separated text with one sample per row. Default is Grid.
# InputFormat = Grid
# OutputFormat = Grid

# Table input has no header, so its shape must be given with one Shape line
# per axis. TableColumn is the column the samples are read from.
# Shape = 128
# Shape = 128
# Shape = 32
# TableColumn = 0

# If set, the input is interpreted as [batch, spatial axes..., channels] and
# every batch and channel is resized separately.
# Batched = false

# The interpolation backend. Must be one of [ Multilinear | AxisDecomposition ].
# AxisDecomposition chains 2D bilinear passes and only supports 2 to 4 spatial
# axes. Its results can differ from Multilinear by one unit. Default is
# Multilinear.
# Backend = Multilinear

# Carry out coordinate and weight arithmetic in single precision.
# SinglePrecision = false

# Writes a plot comparing a line of the input grid to the same line of the
# resized grid along axis PlotAxis.
# PlotFile = profile.png
# PlotAxis = 0

# Output files which are useful for profiling and debugging. Generally, there
# isn't a reason to use these unless something goes wrong.
# ProfileFile = prof.out
# LogFile = log.out`
)

var (
	formats  = []string{"Grid", "Table"}
	backends = []string{"Multilinear", "AxisDecomposition"}
)

type SharedConfig struct {
	// Required
	Input, Output string
	// Optional
	LogFile, ProfileFile string
}

func (con *SharedConfig) ValidInput() bool {
	return con.Input != ""
}
func (con *SharedConfig) ValidOutput() bool {
	return con.Output != ""
}
func (con *SharedConfig) ValidLogFile() bool {
	return con.LogFile != ""
}
func (con *SharedConfig) ValidProfileFile() bool {
	return con.ProfileFile != ""
}

type ResizeConfig struct {
	SharedConfig

	// Required
	Size []int

	// Optional
	InputFormat, OutputFormat string
	Shape                     []int
	TableColumn               int
	Batched                   bool
	Backend                   string
	SinglePrecision           bool
	PlotFile                  string
	PlotAxis                  int
}

type ResizeWrapper struct {
	Resize ResizeConfig
}

func DefaultResizeWrapper() *ResizeWrapper {
	con := ResizeConfig{}
	con.InputFormat = "Grid"
	con.OutputFormat = "Grid"
	con.Backend = "Multilinear"
	return &ResizeWrapper{con}
}

func (con *ResizeConfig) ValidSize() bool {
	return len(con.Size) > 0 && positive(con.Size)
}
func (con *ResizeConfig) ValidInputFormat() bool {
	return oneOf(con.InputFormat, formats)
}
func (con *ResizeConfig) ValidOutputFormat() bool {
	return oneOf(con.OutputFormat, formats)
}
func (con *ResizeConfig) ValidShape() bool {
	return len(con.Shape) > 0 && positive(con.Shape)
}
func (con *ResizeConfig) ValidTableColumn() bool {
	return con.TableColumn >= 0
}
func (con *ResizeConfig) ValidBackend() bool {
	return oneOf(con.Backend, backends)
}
func (con *ResizeConfig) ValidPlotFile() bool {
	return con.PlotFile != ""
}
func (con *ResizeConfig) ValidPlotAxis() bool {
	return con.PlotAxis >= 0 && con.PlotAxis < len(con.Size)
}

// IsTableInput returns true if the input file is a text table.
func (con *ResizeConfig) IsTableInput() bool {
	return strings.EqualFold(con.InputFormat, "Table")
}

// IsTableOutput returns true if the output file is a text table.
func (con *ResizeConfig) IsTableOutput() bool {
	return strings.EqualFold(con.OutputFormat, "Table")
}

// IsDecomposition returns true if the AxisDecomposition backend was
// requested.
func (con *ResizeConfig) IsDecomposition() bool {
	return strings.EqualFold(con.Backend, "AxisDecomposition")
}

// CheckInit returns a descriptive error for the first invalid parameter.
func (con *ResizeConfig) CheckInit() error {
	switch {
	case !con.ValidInput():
		return fmt.Errorf("Invalid/non-existent 'Input' value.")
	case !con.ValidOutput():
		return fmt.Errorf("Invalid/non-existent 'Output' value.")
	case !con.ValidSize():
		return fmt.Errorf(
			"Invalid/non-existent 'Size' value, %v. Every Size must be "+
				"positive.", con.Size,
		)
	case !con.ValidInputFormat():
		return fmt.Errorf(
			"'InputFormat' must be one of [%s], not '%s'.",
			strings.Join(formats, " | "), con.InputFormat,
		)
	case !con.ValidOutputFormat():
		return fmt.Errorf(
			"'OutputFormat' must be one of [%s], not '%s'.",
			strings.Join(formats, " | "), con.OutputFormat,
		)
	case con.IsTableInput() && !con.ValidShape():
		return fmt.Errorf(
			"Table input needs a valid 'Shape', but it is %v.", con.Shape,
		)
	case con.IsTableInput() && !con.ValidTableColumn():
		return fmt.Errorf("Invalid 'TableColumn' value, %d.", con.TableColumn)
	case !con.ValidBackend():
		return fmt.Errorf(
			"'Backend' must be one of [%s], not '%s'.",
			strings.Join(backends, " | "), con.Backend,
		)
	case con.ValidPlotFile() && !con.ValidPlotAxis():
		return fmt.Errorf(
			"'PlotAxis' must be in range [0, %d), but is %d.",
			len(con.Size), con.PlotAxis,
		)
	}
	return nil
}

// ReadResizeConfig reads and checks the [Resize] config file fname.
func ReadResizeConfig(fname string) (*ResizeConfig, error) {
	wrap := DefaultResizeWrapper()
	if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nil, err
	}
	if err := wrap.Resize.CheckInit(); err != nil {
		return nil, err
	}
	return &wrap.Resize, nil
}

// ParseResizeConfig is ReadResizeConfig for a config held in a string.
func ParseResizeConfig(str string) (*ResizeConfig, error) {
	wrap := DefaultResizeWrapper()
	if err := gcfg.ReadStringInto(wrap, str); err != nil {
		return nil, err
	}
	if err := wrap.Resize.CheckInit(); err != nil {
		return nil, err
	}
	return &wrap.Resize, nil
}

func positive(xs []int) bool {
	for _, x := range xs {
		if x <= 0 {
			return false
		}
	}
	return true
}

func oneOf(s string, opts []string) bool {
	for _, opt := range opts {
		if strings.EqualFold(s, opt) {
			return true
		}
	}
	return false
}
