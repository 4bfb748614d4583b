package chart

import (
	"fmt"
	"image"
	"math"
	"strconv"
	"strings"
)

// Histogram describes the bins the chart's horizontal axis is built from.
type Histogram interface {
	NumberOfBins() int
	// Values returns the bin boundary labels in ascending order. The first
	// and last entries define the axis range.
	Values() []string
}

// Bins is a Histogram backed by a slice of boundary labels.
type Bins []string

var _ Histogram = Bins(nil)

func (b Bins) NumberOfBins() int { return len(b) }
func (b Bins) Values() []string { return b }

// BinsOf formats each value with the shortest representation that
// round-trips.
func BinsOf(values ...float64) Bins {
	out := make(Bins, len(values))
	for i, v := range values {
		out[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return out
}

// Interval is one confidence interval around a sample mean.
type Interval struct {
	Left, Mean, Right float64
}

// Flatten converts intervals into the flat (left, mean, right) text sequence
// accepted by DrawCIs.
func Flatten(intervals []Interval) []string {
	out := make([]string, 0, len(intervals)*3)
	for _, iv := range intervals {
		out = append(out,
			strconv.FormatFloat(iv.Left, 'f', -1, 64),
			strconv.FormatFloat(iv.Mean, 'f', -1, 64),
			strconv.FormatFloat(iv.Right, 'f', -1, 64),
		)
	}
	return out
}

// Container supplies the pixel size and page position of a chart.
type Container interface {
	Size() image.Point
	Offset() image.Point
}

// Region adapts a rectangle to the Container interface.
type Region image.Rectangle

func (r Region) Size() image.Point { return image.Rectangle(r).Size() }
func (r Region) Offset() image.Point { return r.Min }

// ParseValue parses a bin or sample value the way the chart does: surrounding
// space is ignored and only finite numbers are accepted.
func ParseValue(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// axis maps data values onto the plot's horizontal pixel range.
type axis struct {
	min, max, span float64
	// width is the total plot width in pixels and left the pixel offset of
	// the axis minimum.
	width, left int
}

func newAxis(h Histogram) (axis, error) {
	n := h.NumberOfBins()
	values := h.Values()
	if n < 1 || len(values) < n {
		return axis{}, ErrNoBins
	}
	lo, ok := ParseValue(values[0])
	if !ok {
		return axis{}, fmt.Errorf("axis minimum %q: %w", values[0], ErrNonNumericAxis)
	}
	hi, ok := ParseValue(values[n-1])
	if !ok {
		return axis{}, fmt.Errorf("axis maximum %q: %w", values[n-1], ErrNonNumericAxis)
	}
	if hi == lo {
		return axis{}, fmt.Errorf("axis spans [%v, %v]: %w", lo, hi, ErrZeroAxisRange)
	}
	return axis{min: lo, max: hi, span: hi - lo}, nil
}

// point returns the fractional position of v along the axis. Values inside
// the axis range map into [0,1].
func (a axis) point(v float64) float64 {
	return (v - a.min) / a.span
}

// x converts a fractional axis position into a pixel column.
func (a axis) x(point float64) float32 {
	return float32(floor(point*float64(a.width)) + float64(a.left))
}
