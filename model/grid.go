package model

import (
	"crypto/md5"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Cell is the state of a single grid position, either Dead or Alive.
type Cell = uint8

const (
	Dead  Cell = 0
	Alive Cell = 1
)

// ErrInvalidArgument is returned when a grid or a simulation parameter is out of range.
var ErrInvalidArgument = errors.New("invalid argument")

// Grid is a fixed-size toroidal board of cells stored in row-major order.
// Dimensions never change after construction.
type Grid struct {
	rows  int
	cols  int
	cells []Cell
}

// NewGrid creates an all-dead grid with the specified dimensions
func NewGrid(rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "[NewGrid] non-positive dimensions %dx%d", rows, cols)
	}
	return &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]Cell, rows*cols),
	}, nil
}

// FromRows builds a grid from a rectangular slice of 0/1 rows
func FromRows(data [][]Cell) (*Grid, error) {
	if len(data) == 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "[FromRows] no rows")
	}
	g, err := NewGrid(len(data), len(data[0]))
	if err != nil {
		return nil, errors.Wrap(err, "[FromRows] failed to allocate grid")
	}
	for r, row := range data {
		if len(row) != g.cols {
			return nil, errors.Wrapf(ErrInvalidArgument, "[FromRows] row %d has %d cells, want %d", r, len(row), g.cols)
		}
		for c, v := range row {
			if v != Dead && v != Alive {
				return nil, errors.Wrapf(ErrInvalidArgument, "[FromRows] cell (%d,%d) has state %d", r, c, v)
			}
			g.cells[r*g.cols+c] = v
		}
	}
	return g, nil
}

// Rows returns the number of rows of the grid
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns the number of columns of the grid
func (g *Grid) Cols() int {
	return g.cols
}

// Validate reports whether g is usable by the engine.
func (g *Grid) Validate() error {
	if g == nil {
		return errors.Wrap(ErrInvalidArgument, "[Validate] nil grid")
	}
	if g.rows <= 0 || g.cols <= 0 || len(g.cells) != g.rows*g.cols {
		return errors.Wrapf(ErrInvalidArgument, "[Validate] malformed grid %dx%d", g.rows, g.cols)
	}
	return nil
}

// Wrap maps any coordinate onto the torus.
func (g *Grid) Wrap(row, col int) (int, int) {
	row = (row%g.rows + g.rows) % g.rows
	col = (col%g.cols + g.cols) % g.cols
	return row, col
}

func (g *Grid) index(row, col int) int {
	row, col = g.Wrap(row, col)
	return row*g.cols + col
}

// Get returns the state of a cell, wrapping out-of-range coordinates
func (g *Grid) Get(row, col int) Cell {
	return g.cells[g.index(row, col)]
}

// Alive reports whether the cell at (row, col) is alive
func (g *Grid) Alive(row, col int) bool {
	return g.Get(row, col) == Alive
}

// Set sets a cell to alive (true) or dead (false), wrapping out-of-range coordinates.
// Grids already handed to a Sequence must not be modified.
func (g *Grid) Set(row, col int, alive bool) {
	v := Dead
	if alive {
		v = Alive
	}
	g.cells[g.index(row, col)] = v
}

// Clone returns a deep copy of the grid
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return &Grid{rows: g.rows, cols: g.cols, cells: cells}
}

// Equal reports whether both grids have the same dimensions and cell states
func (g *Grid) Equal(other *Grid) bool {
	if g == nil || other == nil {
		return g == other
	}
	if g.rows != other.rows || g.cols != other.cols {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// CountLiving returns the total number of living cells
func (g *Grid) CountLiving() (count int) {
	for _, v := range g.cells {
		count += int(v)
	}
	return
}

// Hash returns an MD5 digest of the dimensions and cell states
func (g *Grid) Hash() string {
	h := md5.New()
	fmt.Fprintf(h, "%dx%d:", g.rows, g.cols)
	h.Write(g.cells)
	return fmt.Sprintf("%x", h.Sum(nil))
}

// String renders the grid with '#' for live cells and '.' for dead ones
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow(g.rows * (g.cols + 1))
	for r := range g.rows {
		for c := range g.cols {
			if g.cells[r*g.cols+c] == Alive {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
