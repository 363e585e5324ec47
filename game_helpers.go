package main

import (
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"

	"github.com/sheikhrachel/gol-tiles/engine"
	"github.com/sheikhrachel/gol-tiles/model"
	"github.com/sheikhrachel/gol-tiles/render"
	"github.com/sheikhrachel/gol-tiles/utils"
)

// runOptions are the per-invocation switches that do not belong in a config file
type runOptions struct {
	Print      bool
	MetricsOut string
	Placements []model.Placement
}

// resolveConfig loads the optional config file and applies explicitly set flags on top
func resolveConfig(flags *pflag.FlagSet) (utils.Config, error) {
	config := utils.DefaultConfig()
	if path, _ := flags.GetString("config"); path != "" {
		var err error
		if config, err = utils.LoadConfig(path); err != nil {
			return config, err
		}
	}

	if flags.Changed("rows") {
		config.Rows, _ = flags.GetInt("rows")
	}
	if flags.Changed("cols") {
		config.Cols, _ = flags.GetInt("cols")
	}
	if flags.Changed("generations") {
		config.Generations, _ = flags.GetInt("generations")
	}
	if flags.Changed("density") {
		config.Density, _ = flags.GetFloat64("density")
	}
	if flags.Changed("seed") {
		config.Seed, _ = flags.GetInt64("seed")
	}
	if flags.Changed("workers") {
		config.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("columns") {
		config.ColumnsPerRow, _ = flags.GetInt("columns")
	}
	if flags.Changed("cell-size") {
		config.CellSize, _ = flags.GetInt("cell-size")
	}
	if flags.Changed("out") {
		config.Output, _ = flags.GetString("out")
	}
	if flags.Changed("log-level") {
		config.LogLevel, _ = flags.GetString("log-level")
	}

	return config, config.Validate()
}

// resolveRunOptions reads the flags that only make sense on the command line
func resolveRunOptions(flags *pflag.FlagSet) (runOptions, error) {
	var opts runOptions
	opts.Print, _ = flags.GetBool("print")
	opts.MetricsOut, _ = flags.GetString("metrics-out")

	args, _ := flags.GetStringArray("pattern")
	for _, arg := range args {
		p, err := parsePlacement(arg)
		if err != nil {
			return opts, err
		}
		opts.Placements = append(opts.Placements, p)
	}
	return opts, nil
}

// parsePlacement parses "name@row,col", e.g. "glider@2,3"
func parsePlacement(arg string) (model.Placement, error) {
	name, at, ok := strings.Cut(arg, "@")
	if !ok {
		return model.Placement{}, errors.Errorf("[parsePlacement] %q is not name@row,col", arg)
	}
	pattern, ok := model.PatternByName(name)
	if !ok {
		return model.Placement{}, errors.Errorf("[parsePlacement] unknown pattern %q", name)
	}
	rowStr, colStr, ok := strings.Cut(at, ",")
	if !ok {
		return model.Placement{}, errors.Errorf("[parsePlacement] %q is not name@row,col", arg)
	}
	row, err := strconv.Atoi(strings.TrimSpace(rowStr))
	if err != nil {
		return model.Placement{}, errors.Wrapf(err, "[parsePlacement] bad row in %q", arg)
	}
	col, err := strconv.Atoi(strings.TrimSpace(colStr))
	if err != nil {
		return model.Placement{}, errors.Wrapf(err, "[parsePlacement] bad column in %q", arg)
	}
	return model.Placement{Pattern: pattern, Row: row, Col: col}, nil
}

// initializeRun builds the initializer and engine for a run
func initializeRun(config utils.Config, opts runOptions, logger *slog.Logger) (model.Initializer, *engine.Engine) {
	var initializer model.Initializer = &model.RandomInitializer{Density: config.Density, Seed: config.Seed}
	if len(opts.Placements) > 0 {
		initializer = &model.PatternInitializer{Placements: opts.Placements}
	}

	eng := engine.New(engine.WithWorkers(config.Workers), engine.WithLogger(logger))
	return initializer, eng
}

// runSimulation produces the generation sequence and hands it to every configured output
func runSimulation(config utils.Config, opts runOptions, stdout io.Writer, logger *slog.Logger) error {
	initializer, eng := initializeRun(config, opts, logger)

	grid, err := initializer.Initialize(config.Rows, config.Cols)
	if err != nil {
		return errors.Wrap(err, "[runSimulation] failed to initialize grid")
	}

	reg := prometheus.NewRegistry()
	stats, err := utils.NewStats(reg)
	if err != nil {
		return err
	}

	start := time.Now()
	seq, err := eng.Simulate(grid, config.Generations)
	if err != nil {
		return errors.Wrap(err, "[runSimulation] simulation failed")
	}
	stats.Observe(seq, time.Since(start))

	logger.Info("simulation complete",
		"rows", config.Rows,
		"cols", config.Cols,
		"generations", seq.Len(),
		"initial_population", seq.At(0).CountLiving(),
		"final_population", seq.At(seq.Len()-1).CountLiving(),
		"peak_population", stats.PeakPopulation,
		"avg_population", stats.AveragePopulation,
	)
	if cycle, ok := utils.DetectPeriod(seq); ok {
		logger.Info("cycle detected", "start_generation", cycle.Start+1, "period", cycle.Period)
	}

	if opts.Print {
		if err := (&model.TerminalRenderer{Out: stdout}).Render(seq); err != nil {
			return err
		}
	}

	if config.Output != "" {
		if err := writeSheet(config, seq); err != nil {
			return err
		}
		logger.Info("wrote generation sheet", "path", config.Output)
	}

	if opts.MetricsOut != "" {
		if err := writeMetricsFile(opts.MetricsOut, reg); err != nil {
			return err
		}
	}
	return nil
}

// writeSheet renders seq as a tiled PNG at config.Output
func writeSheet(config utils.Config, seq model.Sequence) (err error) {
	tiler := render.NewTiler()
	tiler.ColumnsPerRow = config.ColumnsPerRow
	tiler.CellSize = config.CellSize

	f, err := os.Create(config.Output)
	if err != nil {
		return errors.Wrapf(err, "[writeSheet] failed to create file: %+v", config.Output)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "[writeSheet] failed to close file: %+v", config.Output)
		}
	}()

	return tiler.WritePNG(f, seq)
}

// writeMetricsFile dumps the run's metrics in the Prometheus text format
func writeMetricsFile(path string, reg *prometheus.Registry) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "[writeMetricsFile] failed to create file: %+v", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "[writeMetricsFile] failed to close file: %+v", path)
		}
	}()

	return utils.WriteMetrics(f, reg)
}
