package chart

import (
	"image/color"
	"math"

	"golang.org/x/exp/constraints"
)

// Layout holds the geometry and styling constants of a chart.
type Layout struct {
	TopInset, BottomInset, LeftInset int
	// TickHeight is the length of the bin tick marks below the baseline.
	TickHeight int
	// GlyphSize is the height of CI ticks and the reach of the off-scale
	// chevrons.
	GlyphSize int
	// MaxRows bounds how many intervals are stacked per pass. Three sample
	// values are consumed per row.
	MaxRows int
	// LabelCount is the number of axis labels, including both ends.
	LabelCount int
	// LabelOffset is the distance from the bottom inset to the label
	// baseline.
	LabelOffset int
	LabelSize   float32

	AxisColor color.NRGBA
	AxisWidth float32
	CIColor   color.NRGBA
	CIWidth   float32
	TextColor color.NRGBA
}

// DefaultLayout returns the layout the chart was designed around.
func DefaultLayout() Layout {
	return Layout{
		TopInset:    16,
		BottomInset: 16,
		LeftInset:   45,
		TickHeight:  5,
		GlyphSize:   4,
		MaxRows:     10,
		LabelCount:  9,
		LabelOffset: 12,
		LabelSize:   9,
		AxisColor:   color.NRGBA{A: 0xff},
		AxisWidth:   1,
		CIColor:     color.NRGBA{B: 0xff, A: 0xff},
		CIWidth:     2,
		TextColor:   color.NRGBA{A: 0xff},
	}
}

// MaxSamples is the number of sample values consumed per DrawCIs pass.
func (l Layout) MaxSamples() int {
	return l.MaxRows * 3
}

func floor[T constraints.Integer | constraints.Float](a T) T {
	return T(math.Floor(float64(a)))
}

func round[T constraints.Integer | constraints.Float](a T) T {
	return T(math.Round(float64(a)))
}
