// Package chart draws confidence intervals over the axis of a histogram.
//
// A Chart owns no pixels of its own. It issues path and text commands to a
// Surface, which makes the coordinate mapping testable with a DisplayList
// and lets the canvas package replay the result with Gio.
package chart

import (
	"errors"
	"fmt"
	"image"

	"gioui.org/f32"
	"gioui.org/text"
)

var (
	// ErrNoBins is returned for a histogram without any bins.
	ErrNoBins = errors.New("histogram has no bins")
	// ErrNonNumericAxis is returned when the first or last bin boundary is
	// not a finite number.
	ErrNonNumericAxis = errors.New("non-numeric axis value")
	// ErrZeroAxisRange is returned when the axis minimum equals its maximum.
	ErrZeroAxisRange = errors.New("zero-width axis range")
	// ErrNonNumericSample is returned when a confidence interval value is not
	// a finite number.
	ErrNonNumericSample = errors.New("non-numeric sample value")
)

// Chart renders confidence intervals against a histogram's axis. It is not
// safe for concurrent use.
type Chart struct {
	surface Surface
	layout  Layout

	title    string
	titlePos image.Point
	offset   image.Point
	width    int
	height   int

	contentWidth int
	columnWidth  int

	histogram Histogram
	trueMean  float64
	samples   []string
}

// Option configures a Chart at construction.
type Option func(*Chart)

// WithLayout replaces the default layout constants.
func WithLayout(l Layout) Option {
	return func(c *Chart) {
		c.layout = l
	}
}

// New builds a chart sized to the container's current dimensions and draws
// its axes. Later changes to the container's size are not tracked.
func New(container Container, surface Surface, title string, histogram Histogram, trueMean float64, opts ...Option) (*Chart, error) {
	size := container.Size()
	c := &Chart{
		surface:   surface,
		layout:    DefaultLayout(),
		title:     title,
		offset:    container.Offset(),
		width:     size.X,
		height:    size.Y,
		histogram: histogram,
		trueMean:  trueMean,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.titlePos = c.offset.Add(image.Pt(c.layout.LeftInset, 0))
	c.computeColumns()
	if err := c.DrawAxes(trueMean); err != nil {
		return nil, fmt.Errorf("failed drawing axes: %w", err)
	}
	return c, nil
}

func (c *Chart) computeColumns() {
	c.contentWidth = c.width - c.layout.LeftInset
	c.columnWidth = 0
	if n := c.histogram.NumberOfBins(); n > 0 {
		c.columnWidth = int(floor(float64(c.contentWidth) / float64(n)))
	}
}

// Title returns the chart title and the position of its label, relative to
// the page rather than the container.
func (c *Chart) Title() (string, image.Point) {
	return c.title, c.titlePos
}

// ContentArea is the region between the insets, relative to the container.
// Nothing is drawn into it by the chart itself.
func (c *Chart) ContentArea() image.Rectangle {
	return image.Rect(c.layout.LeftInset-1, c.layout.TopInset, c.width, c.height-c.layout.BottomInset)
}

func (c *Chart) Size() image.Point { return image.Pt(c.width, c.height) }
func (c *Chart) Offset() image.Point { return c.offset }
func (c *Chart) Layout() Layout { return c.layout }
func (c *Chart) Histogram() Histogram { return c.histogram }
func (c *Chart) TrueMean() float64 { return c.trueMean }
func (c *Chart) Samples() []string { return c.samples }
func (c *Chart) ColumnWidth() int { return c.columnWidth }
func (c *Chart) PlotWidth() int { return c.columnWidth * c.histogram.NumberOfBins() }
func (c *Chart) baselineY() float32 { return float32(c.height-c.layout.BottomInset) - 0.5 }
func (c *Chart) leftInset() float32 { return float32(c.layout.LeftInset) }
func (c *Chart) topInset() float32 { return float32(c.layout.TopInset) }
func (c *Chart) plotRight() float32 { return float32(c.PlotWidth() + c.layout.LeftInset) }
func (c *Chart) currentAxis() (axis, error) { return c.axisFor(c.histogram) }

func (c *Chart) axisFor(h Histogram) (axis, error) {
	a, err := newAxis(h)
	if err != nil {
		return a, err
	}
	a.width = c.columnWidth * h.NumberOfBins()
	a.left = c.layout.LeftInset
	return a, nil
}

// DrawAxes draws the reference line at trueMean, the baseline, one tick per
// bin and the axis labels. It draws on top of whatever is already on the
// surface. A trueMean outside the axis range is drawn outside the plot.
func (c *Chart) DrawAxes(trueMean float64) error {
	a, err := c.currentAxis()
	if err != nil {
		return err
	}
	n := c.histogram.NumberOfBins()
	bottom := float32(c.height - c.layout.BottomInset)
	baseline := c.baselineY()
	s := c.surface

	s.BeginPath()
	trueX := a.x(a.point(trueMean))
	s.MoveTo(f32.Pt(trueX, c.topInset()))
	s.LineTo(f32.Pt(trueX, baseline))

	s.MoveTo(f32.Pt(c.leftInset()-0.5, baseline))
	s.LineTo(f32.Pt(c.plotRight(), baseline))

	for i := 0; i < n; i++ {
		x := float32(i*c.columnWidth) - 0.5 + c.leftInset()
		s.MoveTo(f32.Pt(x, bottom))
		s.LineTo(f32.Pt(x, bottom+float32(c.layout.TickHeight)))
	}
	s.Stroke(c.layout.AxisColor, c.layout.AxisWidth)

	c.drawLabels()
	return nil
}

// drawLabels spreads LabelCount boundary labels evenly across the plot
// width, always including the first and last boundary.
func (c *Chart) drawLabels() {
	count := c.layout.LabelCount
	if count < 1 {
		return
	}
	n := c.histogram.NumberOfBins()
	values := c.histogram.Values()
	style := TextStyle{
		Size:      c.layout.LabelSize,
		Color:     c.layout.TextColor,
		Alignment: text.Middle,
	}
	y := float32(c.height - c.layout.BottomInset + c.layout.LabelOffset)
	if count == 1 {
		c.surface.FillText(values[0], f32.Pt(c.leftInset(), y), style)
		return
	}
	steps := count - 1
	width := float64(c.PlotWidth())
	for k := 0; k <= steps; k++ {
		var idx int
		switch k {
		case 0:
			idx = 0
		case steps:
			idx = n - 1
		default:
			idx = int(floor(float64(n) / float64(steps) * float64(k)))
		}
		x := float32(round(float64(k)*width/float64(steps))) + c.leftInset()
		c.surface.FillText(values[idx], f32.Pt(x, y), style)
	}
}

// DrawCIs draws up to MaxRows intervals from the flat (left, mean, right)
// sequence, one row per interval from the top down. Trailing values that do
// not complete a triple are ignored. Nothing is drawn if any used value
// fails to parse.
func (c *Chart) DrawCIs(sampleCIs []string) error {
	a, err := c.currentAxis()
	if err != nil {
		return err
	}
	used := min(c.layout.MaxSamples(), len(sampleCIs))
	used -= used % 3
	points := make([]float64, used)
	for i := range points {
		v, ok := ParseValue(sampleCIs[i])
		if !ok {
			return fmt.Errorf("sample %d (%q): %w", i, sampleCIs[i], ErrNonNumericSample)
		}
		points[i] = a.point(v)
	}

	rows := max(c.layout.MaxRows, 1)
	ciShift := floor((float64(c.height-c.layout.BottomInset)-0.5+float64(c.layout.TopInset))/float64(rows)) - 1
	g := float32(c.layout.GlyphSize)
	left := c.leftInset()
	right := c.plotRight()
	s := c.surface

	s.BeginPath()
	for row := 0; row*3 < used; row++ {
		leftPoint, meanPoint, rightPoint := points[row*3], points[row*3+1], points[row*3+2]
		y := c.topInset() + float32(float64(row)*ciShift)

		if leftPoint < 0 {
			s.MoveTo(f32.Pt(left+g, y-g))
			s.LineTo(f32.Pt(left, y))
			s.LineTo(f32.Pt(left+g, y+g))
			s.MoveTo(f32.Pt(left, y))
		} else {
			x := a.x(leftPoint)
			s.MoveTo(f32.Pt(x, y-g))
			s.LineTo(f32.Pt(x, y))
		}

		if meanPoint >= 0 && meanPoint <= 1 {
			x := a.x(meanPoint)
			s.LineTo(f32.Pt(x, y))
			s.LineTo(f32.Pt(x, y-g))
			s.MoveTo(f32.Pt(x, y))
		}

		if rightPoint > 1 {
			s.LineTo(f32.Pt(right, y))
			s.LineTo(f32.Pt(right-g, y-g))
			s.MoveTo(f32.Pt(right, y))
			s.LineTo(f32.Pt(right-g, y+g))
		} else {
			x := a.x(rightPoint)
			s.LineTo(f32.Pt(x, y))
			s.LineTo(f32.Pt(x, y-g))
		}
	}
	s.Stroke(c.layout.CIColor, c.layout.CIWidth)
	return nil
}

// ClearCanvas erases the whole surface.
func (c *Chart) ClearCanvas() {
	c.surface.Clear()
}

// Redraw clears the surface and draws the axes for trueMean followed by the
// given intervals. The stored histogram and samples are left alone.
func (c *Chart) Redraw(sampleCIs []string, trueMean float64) error {
	c.trueMean = trueMean
	c.ClearCanvas()
	if err := c.DrawAxes(trueMean); err != nil {
		return err
	}
	return c.DrawCIs(sampleCIs)
}

// ResetChart replaces the histogram and samples, recomputes the column
// layout for the new bin count and redraws. An invalid histogram leaves the
// chart untouched.
func (c *Chart) ResetChart(histogram Histogram, sampleCIs []string, trueMean float64) error {
	if _, err := newAxis(histogram); err != nil {
		return fmt.Errorf("failed resetting chart: %w", err)
	}
	c.histogram = histogram
	c.samples = sampleCIs
	c.computeColumns()
	return c.Redraw(sampleCIs, trueMean)
}
