package utils

import (
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned by Validate for out-of-range settings.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the configuration for a simulation run
type Config struct {
	Rows          int     `yaml:"rows"`
	Cols          int     `yaml:"cols"`
	Generations   int     `yaml:"generations"`
	Density       float64 `yaml:"density"`
	Seed          int64   `yaml:"seed"`
	Workers       int     `yaml:"workers"` // 0 means one per CPU
	ColumnsPerRow int     `yaml:"columns_per_row"`
	CellSize      int     `yaml:"cell_size"`
	Output        string  `yaml:"output"`
	LogLevel      string  `yaml:"log_level"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Rows:          32,
		Cols:          32,
		Generations:   10,
		Density:       0.5,
		Seed:          42,
		Workers:       0,
		ColumnsPerRow: 5,
		CellSize:      6,
		Output:        "generations.png",
		LogLevel:      "info",
	}
}

// LoadConfig loads configuration from a YAML file on top of the defaults
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = yaml.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// Validate checks every field that would otherwise fail deep inside a run
func (c Config) Validate() error {
	switch {
	case c.Rows <= 0 || c.Cols <= 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] grid must be positive, got %dx%d", c.Rows, c.Cols)
	case c.Generations < 1:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] generations must be at least 1, got %d", c.Generations)
	case c.Density < 0 || c.Density > 1:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] density must be within [0,1], got %v", c.Density)
	case c.Workers < 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] workers must not be negative, got %d", c.Workers)
	case c.ColumnsPerRow < 1:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] columns_per_row must be at least 1, got %d", c.ColumnsPerRow)
	case c.CellSize < 1:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] cell_size must be at least 1, got %d", c.CellSize)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel into a slog level
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, errors.Wrapf(ErrInvalidConfig, "[Level] unknown log level %q", c.LogLevel)
	}
	return level, nil
}
