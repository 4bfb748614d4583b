package chart

import (
	"image/color"

	"gioui.org/f32"
	"gioui.org/text"
)

// Surface is the drawing capability a Chart renders onto. Paths are built
// with BeginPath, MoveTo and LineTo and become visible once stroked.
type Surface interface {
	BeginPath()
	MoveTo(p f32.Point)
	LineTo(p f32.Point)
	Stroke(c color.NRGBA, width float32)
	FillText(s string, at f32.Point, style TextStyle)
	// Clear erases everything drawn so far.
	Clear()
}

// TextStyle controls how FillText renders a label. The anchor point passed
// to FillText sits on the text baseline.
type TextStyle struct {
	Size      float32
	Color     color.NRGBA
	Alignment text.Alignment
}

// PathOpKind distinguishes the commands that make up a recorded path.
type PathOpKind uint8

const (
	OpMoveTo PathOpKind = iota
	OpLineTo
)

func (k PathOpKind) String() string {
	switch k {
	case OpMoveTo:
		return "move"
	case OpLineTo:
		return "line"
	default:
		return "?"
	}
}

type PathOp struct {
	Kind PathOpKind
	Pt   f32.Point
}

// Segment is one straight line of a stroked path.
type Segment struct {
	From, To f32.Point
}

// Item is an element of a DisplayList.
type Item interface {
	isItem()
}

// StrokeItem is a path stroked in a single colour and width.
type StrokeItem struct {
	Path  []PathOp
	Color color.NRGBA
	Width float32
}

// TextItem is a label anchored at a baseline point.
type TextItem struct {
	Text  string
	At    f32.Point
	Style TextStyle
}

func (StrokeItem) isItem() {}
func (TextItem) isItem() {}

// Segments returns the line segments drawn by the path. A LineTo with no
// preceding MoveTo starts from its own point, as canvas paths do.
func (s StrokeItem) Segments() []Segment {
	var (
		out    []Segment
		pen    f32.Point
		hasPen bool
	)
	for _, op := range s.Path {
		switch op.Kind {
		case OpMoveTo:
			pen, hasPen = op.Pt, true
		case OpLineTo:
			if hasPen {
				out = append(out, Segment{From: pen, To: op.Pt})
			}
			pen, hasPen = op.Pt, true
		}
	}
	return out
}

// DisplayList is a Surface that records drawing commands so they can be
// inspected or replayed onto a real renderer.
type DisplayList struct {
	Items []Item
	path  []PathOp
}

var _ Surface = (*DisplayList)(nil)

func (d *DisplayList) BeginPath() {
	d.path = d.path[:0]
}

func (d *DisplayList) MoveTo(p f32.Point) {
	d.path = append(d.path, PathOp{Kind: OpMoveTo, Pt: p})
}

func (d *DisplayList) LineTo(p f32.Point) {
	d.path = append(d.path, PathOp{Kind: OpLineTo, Pt: p})
}

// Stroke records the current path. The path stays current, so stroking it
// again records it a second time.
func (d *DisplayList) Stroke(c color.NRGBA, width float32) {
	path := make([]PathOp, len(d.path))
	copy(path, d.path)
	d.Items = append(d.Items, StrokeItem{Path: path, Color: c, Width: width})
}

func (d *DisplayList) FillText(s string, at f32.Point, style TextStyle) {
	d.Items = append(d.Items, TextItem{Text: s, At: at, Style: style})
}

func (d *DisplayList) Clear() {
	d.Items = nil
}

// Strokes returns the stroked paths in drawing order.
func (d *DisplayList) Strokes() []StrokeItem {
	var out []StrokeItem
	for _, item := range d.Items {
		if s, ok := item.(StrokeItem); ok {
			out = append(out, s)
		}
	}
	return out
}

// Texts returns the labels in drawing order.
func (d *DisplayList) Texts() []TextItem {
	var out []TextItem
	for _, item := range d.Items {
		if t, ok := item.(TextItem); ok {
			out = append(out, t)
		}
	}
	return out
}
