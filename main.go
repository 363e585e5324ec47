package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sheikhrachel/gol-tiles/internal/logging"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "gol",
	Short: "gol simulates Conway's Game of Life on a torus",
	Long: `gol runs a toroidal Game of Life for a fixed number of generations and
renders every generation as a captioned tile on a single PNG sheet.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate and render a run",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := resolveConfig(cmd.Flags())
		if err != nil {
			return err
		}
		opts, err := resolveRunOptions(cmd.Flags())
		if err != nil {
			return err
		}
		level, _ := config.Level()
		return runSimulation(config, opts, cmd.OutOrStdout(), logging.New(level))
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gol",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "gol version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(runCmd, versionCmd)
	bindRunFlags(runCmd.Flags())
}

// bindRunFlags declares the run flags; zero defaults defer to the config file
func bindRunFlags(f *pflag.FlagSet) {
	f.StringP("config", "c", "", "YAML configuration file")
	f.Int("rows", 0, "grid rows")
	f.Int("cols", 0, "grid columns")
	f.IntP("generations", "n", 0, "number of generations, including the initial grid")
	f.Float64("density", 0, "probability that a cell starts alive")
	f.Int64("seed", 0, "seed for the random initial grid")
	f.Int("workers", 0, "goroutines per step (0 = one per CPU)")
	f.Int("columns", 0, "tiles per row of the output sheet")
	f.Int("cell-size", 0, "pixels per cell edge")
	f.StringP("out", "o", "", "PNG output path (empty disables the image)")
	f.String("log-level", "", "debug, info, warn or error")
	f.StringArray("pattern", nil, "stamp a pattern instead of random fill, as name@row,col (repeatable)")
	f.Bool("print", false, "also print every generation to stdout")
	f.String("metrics-out", "", "write Prometheus text metrics to this file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logging.New(slog.LevelInfo).Error("gol failed", "error", err)
		os.Exit(1)
	}
}
