package backend

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"git.sr.ht/~whereswaldon/cichart/chart"
	"gonum.org/v1/gonum/stat/distuv"
)

// criticalValue returns the multiplier of the standard error for a two-sided
// interval at the given confidence with df degrees of freedom. Without
// degrees of freedom the normal quantile is used.
func criticalValue(confidence float64, df int) float64 {
	p := (1 + confidence) / 2
	if df < 1 {
		return distuv.UnitNormal.Quantile(p)
	}
	return distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(df)}.Quantile(p)
}

// CI computes a confidence interval around the mean of values using the
// sample standard deviation. Fewer than two values yield a zero-width
// interval.
func CI(values []float64, confidence float64) chart.Interval {
	n := len(values)
	if n == 0 {
		return chart.Interval{}
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(n)
	if n < 2 {
		return chart.Interval{Left: mean, Mean: mean, Right: mean}
	}
	var sq float64
	for _, v := range values {
		sq += (v - mean) * (v - mean)
	}
	sem := math.Sqrt(sq/float64(n-1)) / math.Sqrt(float64(n))
	half := criticalValue(confidence, n-1) * sem
	return chart.Interval{Left: mean - half, Mean: mean, Right: mean + half}
}

// Population is a discrete parent distribution over histogram bin values.
type Population struct {
	values     []float64
	cumulative []float64
	mean       float64
}

// NewPopulation weights each value by the matching entry of weights. A nil
// weights slice weights every value equally.
func NewPopulation(values, weights []float64) (Population, error) {
	if len(values) == 0 {
		return Population{}, errors.New("population has no values")
	}
	if weights != nil && len(weights) != len(values) {
		return Population{}, fmt.Errorf("population has %d values but %d weights", len(values), len(weights))
	}
	p := Population{
		values:     values,
		cumulative: make([]float64, len(values)),
	}
	var total, weighted float64
	for i, v := range values {
		w := 1.0
		if weights != nil {
			w = weights[i]
		}
		if w < 0 || math.IsNaN(w) {
			return Population{}, fmt.Errorf("invalid weight %v for value %v", w, v)
		}
		total += w
		weighted += w * v
		p.cumulative[i] = total
	}
	if total == 0 {
		return Population{}, errors.New("population weights sum to zero")
	}
	p.mean = weighted / total
	return p, nil
}

// PopulationOf parses histogram bin values into a population. Weights are
// handled as by NewPopulation.
func PopulationOf(h chart.Histogram, weights []float64) (Population, error) {
	values := make([]float64, 0, h.NumberOfBins())
	for _, s := range h.Values() {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return Population{}, fmt.Errorf("bin value %q: %w", s, err)
		}
		values = append(values, v)
	}
	return NewPopulation(values, weights)
}

// Mean is the true mean of the population.
func (p Population) Mean() float64 {
	return p.mean
}

// Draw picks one value according to the population's weights.
func (p Population) Draw(rng *rand.Rand) float64 {
	target := rng.Float64() * p.cumulative[len(p.cumulative)-1]
	idx := sort.SearchFloat64s(p.cumulative, target)
	// A target landing exactly on a boundary belongs to the next bin.
	for idx < len(p.cumulative)-1 && p.cumulative[idx] <= target {
		idx++
	}
	return p.values[idx]
}

// Sample draws n values.
func (p Population) Sample(rng *rand.Rand, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = p.Draw(rng)
	}
	return out
}

// Simulator repeatedly samples a population and reports the resulting
// confidence intervals.
type Simulator struct {
	Population Population
	SampleSize int
	Confidence float64
	// Rows is the number of intervals per batch.
	Rows     int
	Interval time.Duration
	Rand     *rand.Rand

	// mu guards Rand, which streams restarted by the UI may share briefly.
	mu sync.Mutex
}

// Next returns a fresh batch of intervals.
func (s *Simulator) Next() []chart.Interval {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]chart.Interval, s.Rows)
	for i := range out {
		out[i] = CI(s.Population.Sample(s.Rand, s.SampleSize), s.Confidence)
	}
	return out
}

// Stream emits a batch immediately and then once per Interval until ctx is
// cancelled.
func (s *Simulator) Stream(ctx context.Context) <-chan Batch {
	out := make(chan Batch)
	go func() {
		defer close(out)
		ticker := time.NewTicker(s.Interval)
		defer ticker.Stop()
		for {
			select {
			case out <- Batch{Samples: chart.Flatten(s.Next())}:
			case <-ctx.Done():
				return
			}
			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
