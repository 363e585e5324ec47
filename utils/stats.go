package utils

import (
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sheikhrachel/gol-tiles/model"
)

const metricsNamespace = "gol"

// Stats for simulation monitoring. Counters and gauges are exported through
// the registry passed to NewStats; the summary fields are kept for logging.
type Stats struct {
	generations prometheus.Counter
	births      prometheus.Counter
	deaths      prometheus.Counter
	population  prometheus.Gauge
	duration    prometheus.Histogram

	AveragePopulation float64
	PeakPopulation    int
	TotalGenerations  int
	StartTime         time.Time
}

// NewStats creates the collectors and registers them with reg
func NewStats(reg prometheus.Registerer) (*Stats, error) {
	s := &Stats{
		StartTime: time.Now(),
		generations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "generations_total",
			Help:      "Generations observed across simulations.",
		}),
		births: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "births_total",
			Help:      "Cells that turned alive between consecutive generations.",
		}),
		deaths: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "deaths_total",
			Help:      "Cells that died between consecutive generations.",
		}),
		population: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "population",
			Help:      "Living cells in the most recently observed generation.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "simulation_duration_seconds",
			Help:      "Wall time spent producing a generation sequence.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}),
	}

	for _, c := range []prometheus.Collector{s.generations, s.births, s.deaths, s.population, s.duration} {
		if err := reg.Register(c); err != nil {
			return nil, errors.Wrap(err, "[NewStats] failed to register collector")
		}
	}
	return s, nil
}

// Observe records every generation of seq and the time it took to produce it
func (s *Stats) Observe(seq model.Sequence, elapsed time.Duration) {
	s.duration.Observe(elapsed.Seconds())

	for i, g := range seq {
		population := g.CountLiving()
		s.update(population)

		if i > 0 {
			born, died := Transitions(seq[i-1], g)
			s.births.Add(float64(born))
			s.deaths.Add(float64(died))
		}
	}
}

func (s *Stats) update(population int) {
	s.TotalGenerations++
	s.generations.Inc()
	s.population.Set(float64(population))
	s.PeakPopulation = max(s.PeakPopulation, population)

	// Simple moving average for population
	if s.TotalGenerations == 1 {
		s.AveragePopulation = float64(population)
	} else {
		s.AveragePopulation = (s.AveragePopulation * 0.9) + (float64(population) * 0.1)
	}
}

// Transitions counts cells that were born and cells that died going from prev to next.
// Both grids must share dimensions.
func Transitions(prev, next *model.Grid) (born, died int) {
	for r := range prev.Rows() {
		for c := range prev.Cols() {
			was, is := prev.Alive(r, c), next.Alive(r, c)
			switch {
			case !was && is:
				born++
			case was && !is:
				died++
			}
		}
	}
	return
}
