package model

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

const (
	gridPosBlock = "██"
	gridPosEmpty = "  "
)

// TerminalRenderer prints generations as text frames
type TerminalRenderer struct {
	Out io.Writer
}

// Display renders a single grid to the output
func (r *TerminalRenderer) Display(g *Grid) error {
	w := bufio.NewWriter(r.Out)
	writeGrid(w, g)
	return errors.Wrap(w.Flush(), "[Display] failed to write grid")
}

// Render prints every generation of seq under a 1-based "Generation k" heading
func (r *TerminalRenderer) Render(seq Sequence) error {
	w := bufio.NewWriter(r.Out)
	for i, g := range seq {
		fmt.Fprintf(w, "Generation %d | Living: %d\n", i+1, g.CountLiving())
		writeGrid(w, g)
		w.WriteByte('\n')
	}
	return errors.Wrap(w.Flush(), "[Render] failed to write sequence")
}

func writeGrid(w *bufio.Writer, g *Grid) {
	for row := range g.rows {
		for col := range g.cols {
			if g.cells[row*g.cols+col] == Alive {
				w.WriteString(gridPosBlock)
			} else {
				w.WriteString(gridPosEmpty)
			}
		}
		w.WriteByte('\n')
	}
}
