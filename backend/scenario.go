package backend

import (
	"fmt"
	"math/rand"

	"git.sr.ht/~whereswaldon/cichart/chart"
	"git.sr.ht/~whereswaldon/cichart/config"
)

// DefaultHistogram is charted when no histogram file is given.
func DefaultHistogram() chart.Bins {
	return chart.BinsOf(0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100)
}

// Scenario is everything needed to start charting: the histogram, the true
// mean drawn as the reference line and a simulator sampling the histogram.
type Scenario struct {
	Config    config.Config
	Histogram chart.Bins
	TrueMean  float64
	Simulator *Simulator
}

// NewScenario loads the histogram at histogramPath, or uses DefaultHistogram
// for an empty path. The true mean comes from cfg when set and from the
// population otherwise.
func NewScenario(cfg config.Config, histogramPath string) (Scenario, error) {
	bins := DefaultHistogram()
	if histogramPath != "" {
		var err error
		bins, err = LoadHistogramFile(histogramPath)
		if err != nil {
			return Scenario{}, err
		}
	}
	pop, err := PopulationOf(bins, cfg.Simulation.Weights)
	if err != nil {
		return Scenario{}, fmt.Errorf("failed building population: %w", err)
	}
	trueMean := pop.Mean()
	if cfg.HasTrueMean {
		trueMean = cfg.TrueMean
	}
	return Scenario{
		Config:    cfg,
		Histogram: bins,
		TrueMean:  trueMean,
		Simulator: &Simulator{
			Population: pop,
			SampleSize: cfg.Simulation.SampleSize,
			Confidence: cfg.Simulation.Confidence,
			Rows:       cfg.Layout.MaxRows,
			Interval:   cfg.Simulation.Interval.Duration,
			Rand:       rand.New(rand.NewSource(cfg.Simulation.Seed)),
		},
	}, nil
}
