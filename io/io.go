package io

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/phil-mansfield/goresize/grid"
	"github.com/phil-mansfield/goresize/math/interpolate"
)

// MaxFileRank is the largest rank a grid file header may declare: a batch
// axis, a channel axis and interpolate.MaxRank spatial axes.
const MaxFileRank = interpolate.MaxRank + 2

/*
The binary format used for grid files is as follows:
    |-- 1 --||-- 2 --||-- 3 --||-- 4 --||-- ... 5 ... --||-- ... 6 ... --|

    1 - (int64) Flag indicating the endianness of the file. 0 indicates a big
        endian byte ordering and -1 indicates a little endian byte order.
    2 - (int64) Size of the fixed header (fields 1-4). Should be checked for
        consistency.
    3 - (int64) GridType of the samples.
    4 - (int64) Rank of the grid.
    5 - ([]int64) Extent of each axis.
    6 - ([]GridType) Samples in row-major order: the last axis varies fastest.

Files are always written little endian, but files of either endianness can be
read.
*/

// GridType identifies the element type of a grid file.
type GridType int64

const (
	Int64 GridType = iota
	Int32
	Uint8
	Float32
	Float64
	EndGridType
)

var gridTypeNames = [...]string{
	"Int64", "Int32", "Uint8", "Float32", "Float64",
}

func (t GridType) String() string {
	if t < 0 || t >= EndGridType {
		return fmt.Sprintf("GridType(%d)", int64(t))
	}
	return gridTypeNames[t]
}

const (
	littleEndianFlag int64 = -1
	bigEndianFlag    int64 = 0
)

var end = binary.LittleEndian

// typeInfo is the fixed-size part of the header.
type typeInfo struct {
	Endianness int64
	HeaderSize int64
	GridType   GridType
	Rank       int64
}

// GridHeader describes the contents of a grid file.
type GridHeader struct {
	Type  GridType
	Shape []int

	order binary.ByteOrder
}

// GridTypeOf returns the GridType used to store samples of type T.
func GridTypeOf[T grid.Number]() (GridType, error) {
	var x T
	switch any(x).(type) {
	case int64:
		return Int64, nil
	case int32:
		return Int32, nil
	case uint8:
		return Uint8, nil
	case float32:
		return Float32, nil
	case float64:
		return Float64, nil
	}
	return -1, fmt.Errorf("Grid files cannot hold samples of type %T.", x)
}

// WriteGrid writes g to wr in the grid file format.
func WriteGrid[T grid.Number](wr io.Writer, g *grid.Grid[T]) error {
	flag, err := GridTypeOf[T]()
	if err != nil {
		return err
	}

	info := typeInfo{}
	if end == binary.LittleEndian {
		info.Endianness = littleEndianFlag
	} else {
		info.Endianness = bigEndianFlag
	}
	info.HeaderSize = int64(binary.Size(&info))
	info.GridType = flag
	info.Rank = int64(g.Rank())

	shape := make([]int64, g.Rank())
	for i, n := range g.Shape {
		shape[i] = int64(n)
	}

	bw := bufio.NewWriter(wr)
	if err := binary.Write(bw, end, &info); err != nil {
		return err
	}
	if err := binary.Write(bw, end, shape); err != nil {
		return err
	}
	if err := binary.Write(bw, end, g.Data); err != nil {
		return err
	}
	return bw.Flush()
}

// WriteGridFile writes g to the file fname, creating or truncating it.
func WriteGridFile[T grid.Number](fname string, g *grid.Grid[T]) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	if err := WriteGrid(f, g); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadGridHeader reads the header at the start of a grid file.
func ReadGridHeader(rd io.Reader) (*GridHeader, error) {
	var flag int64
	// The flag reads the same in both byte orders.
	if err := binary.Read(rd, end, &flag); err != nil {
		return nil, err
	}

	hd := &GridHeader{}
	switch flag {
	case littleEndianFlag:
		hd.order = binary.LittleEndian
	case bigEndianFlag:
		hd.order = binary.BigEndian
	default:
		return nil, fmt.Errorf("Unrecognized endianness flag, %d.", flag)
	}

	info := typeInfo{Endianness: flag}
	rest := []interface{}{&info.HeaderSize, &info.GridType, &info.Rank}
	for _, x := range rest {
		if err := binary.Read(rd, hd.order, x); err != nil {
			return nil, err
		}
	}

	if size := int64(binary.Size(&info)); info.HeaderSize != size {
		return nil, fmt.Errorf(
			"Header size is %d, but expected %d. Is this a grid file?",
			info.HeaderSize, size,
		)
	} else if info.GridType < 0 || info.GridType >= EndGridType {
		return nil, fmt.Errorf("Unrecognized grid type, %d.", info.GridType)
	} else if info.Rank < 1 {
		return nil, fmt.Errorf("Grid file has non-positive rank, %d.", info.Rank)
	} else if info.Rank > MaxFileRank {
		return nil, fmt.Errorf(
			"Grid file has rank %d, but the largest supported rank is %d. "+
				"Is the header corrupt?", info.Rank, MaxFileRank,
		)
	}

	shape := make([]int64, info.Rank)
	if err := binary.Read(rd, hd.order, shape); err != nil {
		return nil, err
	}

	hd.Type = info.GridType
	hd.Shape = make([]int, info.Rank)
	for i, n := range shape {
		hd.Shape[i] = int(n)
	}
	if err := grid.CheckShape(hd.Shape); err != nil {
		return nil, err
	}

	return hd, nil
}

// ReadGridHeaderFile reads the header of the grid file fname.
func ReadGridHeaderFile(fname string) (*GridHeader, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadGridHeader(f)
}

// ReadGrid reads a grid file from rd. The file's GridType must match T.
func ReadGrid[T grid.Number](rd io.Reader) (*grid.Grid[T], error) {
	br := bufio.NewReader(rd)
	hd, err := ReadGridHeader(br)
	if err != nil {
		return nil, err
	}

	flag, err := GridTypeOf[T]()
	if err != nil {
		return nil, err
	} else if flag != hd.Type {
		return nil, fmt.Errorf(
			"Grid file holds %s samples, but %s samples were requested.",
			hd.Type, flag,
		)
	}

	g, err := grid.New[T](hd.Shape...)
	if err != nil {
		return nil, err
	}
	if err := binary.Read(br, hd.order, g.Data); err != nil {
		return nil, err
	}
	return g, nil
}

// ReadGridFile reads the grid file fname.
func ReadGridFile[T grid.Number](fname string) (*grid.Grid[T], error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadGrid[T](f)
}
