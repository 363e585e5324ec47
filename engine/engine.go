// Package engine advances toroidal Game of Life grids one generation at a time.
package engine

import (
	"io"
	"log/slog"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/gol-tiles/model"
	"github.com/sheikhrachel/gol-tiles/rules"
)

// ErrInvalidArgument is returned for nil or malformed grids and generation counts below one.
var ErrInvalidArgument = model.ErrInvalidArgument

// neighborOffsets are the eight {row, col} offsets around a cell.
var neighborOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Engine applies Conway's rules to grids. It keeps no grid state and is safe for concurrent use.
type Engine struct {
	workers int
	logger  *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers sets how many goroutines share the rows of a step. Values below one are ignored.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithLogger sets the logger used for simulation progress.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an engine using one worker per CPU by default
func New(opts ...Option) *Engine {
	e := &Engine{
		workers: runtime.NumCPU(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CountLiveNeighbors sums the live cells among the eight wrapped neighbors of (row, col).
// The cell itself is never counted.
func CountLiveNeighbors(g *model.Grid, row, col int) int {
	count := 0
	for _, off := range neighborOffsets {
		count += int(g.Get(row+off[0], col+off[1]))
	}
	return count
}

// Step computes the next generation into a fresh grid. The input is only read.
func (e *Engine) Step(g *model.Grid) (*model.Grid, error) {
	if err := g.Validate(); err != nil {
		return nil, errors.Wrap(err, "[Step] invalid grid")
	}

	next, err := model.NewGrid(g.Rows(), g.Cols())
	if err != nil {
		return nil, errors.Wrap(err, "[Step] failed to allocate next grid")
	}

	var (
		eg            errgroup.Group
		rows, cols    = g.Rows(), g.Cols()
		numWorkers    = min(e.workers, rows)
		rowsPerWorker = (rows + numWorkers - 1) / numWorkers // Ceiling division
	)

	for i := range numWorkers {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, rows)
		)
		if startRow >= rows {
			break
		}

		// Each worker owns rows [startRow, endRow) of next.
		eg.Go(func() error {
			for row := startRow; row < endRow; row++ {
				for col := range cols {
					if rules.ApplyConwayRules(CountLiveNeighbors(g, row, col), g.Alive(row, col)) {
						next.Set(row, col, true)
					}
				}
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, errors.Wrap(err, "[Step] parallel update failed")
	}
	return next, nil
}

// Simulate returns generationCount generations starting from a copy of initial.
// Element 0 equals initial and element i is Step applied i times.
func (e *Engine) Simulate(initial *model.Grid, generationCount int) (model.Sequence, error) {
	if generationCount < 1 {
		return nil, errors.Wrapf(ErrInvalidArgument, "[Simulate] generation count %d below 1", generationCount)
	}
	if err := initial.Validate(); err != nil {
		return nil, errors.Wrap(err, "[Simulate] invalid initial grid")
	}

	e.logger.Debug("simulation started",
		"rows", initial.Rows(),
		"cols", initial.Cols(),
		"generations", generationCount,
		"workers", e.workers,
	)

	seq := make(model.Sequence, 0, generationCount)
	seq = append(seq, initial.Clone())
	for gen := 1; gen < generationCount; gen++ {
		next, err := e.Step(seq[gen-1])
		if err != nil {
			return nil, errors.Wrapf(err, "[Simulate] step %d failed", gen)
		}
		seq = append(seq, next)
	}

	e.logger.Debug("simulation finished",
		"generations", len(seq),
		"final_population", seq[len(seq)-1].CountLiving(),
	)
	return seq, nil
}
