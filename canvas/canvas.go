// Package canvas renders charts drawn onto a chart.DisplayList with Gio.
package canvas

import (
	"image"
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"git.sr.ht/~whereswaldon/cichart/chart"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

// NewTheme returns a material theme using only the bundled Go fonts, so
// rendering does not depend on the fonts installed on the host.
func NewTheme() *material.Theme {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()), text.NoSystemFonts())
	return th
}

// Widget lays out a chart and the display list it draws onto.
type Widget struct {
	Chart *chart.Chart
	List  *chart.DisplayList
	// ContentFill tints the chart's content area beneath the drawing. A
	// transparent colour disables it.
	ContentFill color.NRGBA
}

// Layout replays the chart's drawing and its title label. The widget always
// occupies the chart's fixed size.
func (w Widget) Layout(gtx C, th *material.Theme) D {
	size := w.Chart.Size()
	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	if w.ContentFill.A != 0 {
		paint.FillShape(gtx.Ops, w.ContentFill, clip.Rect(w.Chart.ContentArea()).Op())
	}
	Replay(gtx, th, w.List.Items)

	title, pos := w.Chart.Title()
	if title != "" {
		gtx := gtx
		gtx.Constraints = layout.Constraints{Max: size}
		stack := op.Offset(pos.Sub(w.Chart.Offset())).Push(gtx.Ops)
		material.Body1(th, title).Layout(gtx)
		stack.Pop()
	}
	return D{Size: size}
}

// Replay draws display list items in order.
func Replay(gtx C, th *material.Theme, items []chart.Item) {
	for _, item := range items {
		switch item := item.(type) {
		case chart.StrokeItem:
			strokePath(gtx.Ops, item)
		case chart.TextItem:
			drawText(gtx, th, item)
		}
	}
}

func strokePath(ops *op.Ops, s chart.StrokeItem) {
	if len(s.Path) == 0 {
		return
	}
	var p clip.Path
	p.Begin(ops)
	for _, pathOp := range s.Path {
		switch pathOp.Kind {
		case chart.OpMoveTo:
			p.MoveTo(pathOp.Pt)
		case chart.OpLineTo:
			p.LineTo(pathOp.Pt)
		}
	}
	paint.FillShape(ops, s.Color, clip.Stroke{
		Path:  p.End(),
		Width: s.Width,
	}.Op())
}

func drawText(gtx C, th *material.Theme, t chart.TextItem) {
	label := material.Label(th, unit.Sp(t.Style.Size), t.Text)
	label.Color = t.Style.Color
	label.MaxLines = 1

	gtx.Constraints = layout.Constraints{Max: image.Pt(1<<16, 1<<16)}
	macro := op.Record(gtx.Ops)
	dims := label.Layout(gtx)
	call := macro.Stop()

	defer op.Offset(labelOrigin(t.At, t.Style.Alignment, dims)).Push(gtx.Ops).Pop()
	call.Add(gtx.Ops)
}

// labelOrigin returns the top-left corner for a label of the given
// dimensions whose baseline is anchored at the given point.
func labelOrigin(at f32.Point, align text.Alignment, dims D) image.Point {
	x := at.X
	switch align {
	case text.Middle:
		x -= float32(dims.Size.X) / 2
	case text.End:
		x -= float32(dims.Size.X)
	}
	y := at.Y - float32(dims.Size.Y-dims.Baseline)
	return image.Pt(int(math.Floor(float64(x))), int(math.Floor(float64(y))))
}
