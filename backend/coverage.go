package backend

import (
	"fmt"

	"git.sr.ht/~whereswaldon/cichart/chart"
)

// Coverage counts how many intervals of a batch contain the true mean.
type Coverage struct {
	Hits, Total int
}

// CoverageOf tallies the complete (left, mean, right) triples in samples.
// Triples the chart would refuse to draw, with any value that is not a
// finite number, are not counted.
func CoverageOf(samples []string, trueMean float64) Coverage {
	var c Coverage
	for i := 0; i+2 < len(samples); i += 3 {
		left, ok := chart.ParseValue(samples[i])
		if !ok {
			continue
		}
		if _, ok := chart.ParseValue(samples[i+1]); !ok {
			continue
		}
		right, ok := chart.ParseValue(samples[i+2])
		if !ok {
			continue
		}
		c.Total++
		if left <= trueMean && trueMean <= right {
			c.Hits++
		}
	}
	return c
}

// Rate is the fraction of intervals containing the true mean, or zero for
// an empty tally.
func (c Coverage) Rate() float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(c.Hits) / float64(c.Total)
}

func (c Coverage) String() string {
	return fmt.Sprintf("%d/%d intervals contain the true mean (%.0f%%)", c.Hits, c.Total, c.Rate()*100)
}
