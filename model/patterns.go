package model

// Pattern is a named set of live-cell offsets relative to a top-left anchor.
type Pattern struct {
	Name  string
	Cells [][2]int // {row, col}
}

var (
	// Glider travels one cell down and one cell right every four generations.
	Glider = Pattern{
		Name:  "glider",
		Cells: [][2]int{{0, 1}, {1, 2}, {2, 0}, {2, 1}, {2, 2}},
	}
	// Blinker is a horizontal period-2 oscillator.
	Blinker = Pattern{
		Name:  "blinker",
		Cells: [][2]int{{0, 0}, {0, 1}, {0, 2}},
	}
	// Block is a 2x2 still life.
	Block = Pattern{
		Name:  "block",
		Cells: [][2]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
	}
)

var patterns = map[string]Pattern{
	Glider.Name:  Glider,
	Blinker.Name: Blinker,
	Block.Name:   Block,
}

// PatternByName looks up one of the built-in patterns
func PatternByName(name string) (Pattern, bool) {
	p, ok := patterns[name]
	return p, ok
}

// Stamp sets the pattern's cells alive with its anchor at (row, col).
// Coordinates wrap around the torus.
func (g *Grid) Stamp(p Pattern, row, col int) {
	for _, off := range p.Cells {
		g.Set(row+off[0], col+off[1], true)
	}
}
