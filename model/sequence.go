package model

// Sequence is the ordered list of generations produced by a simulation.
// Index 0 is the initial grid; index i is the grid after i steps.
type Sequence []*Grid

// Len returns the number of generations
func (s Sequence) Len() int {
	return len(s)
}

// At returns the grid of generation i (0-based)
func (s Sequence) At(i int) *Grid {
	return s[i]
}

// Dims returns the shared dimensions of the sequence, or zeros when empty
func (s Sequence) Dims() (rows, cols int) {
	if len(s) == 0 {
		return 0, 0
	}
	return s[0].Rows(), s[0].Cols()
}

// Populations returns the live-cell count of every generation
func (s Sequence) Populations() []int {
	out := make([]int, len(s))
	for i, g := range s {
		out[i] = g.CountLiving()
	}
	return out
}
