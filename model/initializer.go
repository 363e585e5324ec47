package model

import (
	"math/rand/v2"

	"github.com/pkg/errors"
)

// Initializer produces the starting grid of a simulation.
type Initializer interface {
	Initialize(rows, cols int) (*Grid, error)
}

// RandomInitializer sets every cell alive independently with probability Density.
// The same Seed always yields the same grid.
type RandomInitializer struct {
	Density float64
	Seed    int64
}

// NewRandomInitializer returns an initializer with an even alive/dead split
func NewRandomInitializer(seed int64) *RandomInitializer {
	return &RandomInitializer{Density: 0.5, Seed: seed}
}

// Initialize fills a new grid using a PCG source seeded from r.Seed
func (r *RandomInitializer) Initialize(rows, cols int) (*Grid, error) {
	if r.Density < 0 || r.Density > 1 {
		return nil, errors.Wrapf(ErrInvalidArgument, "[RandomInitializer.Initialize] density %v outside [0,1]", r.Density)
	}
	g, err := NewGrid(rows, cols)
	if err != nil {
		return nil, errors.Wrap(err, "[RandomInitializer.Initialize] failed to allocate grid")
	}

	rng := rand.New(rand.NewPCG(uint64(r.Seed), 0))
	for i := range g.cells {
		if rng.Float64() < r.Density {
			g.cells[i] = Alive
		}
	}
	return g, nil
}

// Placement positions a pattern with its top-left corner at (Row, Col).
type Placement struct {
	Pattern Pattern
	Row     int
	Col     int
}

// PatternInitializer stamps a fixed list of patterns onto an empty grid.
type PatternInitializer struct {
	Placements []Placement
}

// Initialize returns an all-dead grid with every placement stamped in order
func (p *PatternInitializer) Initialize(rows, cols int) (*Grid, error) {
	g, err := NewGrid(rows, cols)
	if err != nil {
		return nil, errors.Wrap(err, "[PatternInitializer.Initialize] failed to allocate grid")
	}
	for _, pl := range p.Placements {
		g.Stamp(pl.Pattern, pl.Row, pl.Col)
	}
	return g, nil
}
