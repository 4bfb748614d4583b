package canvas

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"gioui.org/gpu/headless"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"
)

// Background is painted beneath exported charts.
var Background = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// Frame records the widget onto a white background at one pixel per dp.
func Frame(ops *op.Ops, th *material.Theme, w Widget) {
	size := w.Chart.Size()
	gtx := layout.Context{
		Ops:         ops,
		Constraints: layout.Exact(size),
		Metric:      unit.Metric{PxPerDp: 1, PxPerSp: 1},
	}
	paint.Fill(ops, Background)
	w.Layout(gtx, th)
}

// Export renders the widget offscreen and writes it to dst as a PNG.
func Export(dst io.Writer, th *material.Theme, w Widget) error {
	size := w.Chart.Size()
	win, err := headless.NewWindow(size.X, size.Y)
	if err != nil {
		return fmt.Errorf("failed creating headless window: %w", err)
	}
	defer win.Release()

	var ops op.Ops
	Frame(&ops, th, w)
	if err := win.Frame(&ops); err != nil {
		return fmt.Errorf("failed rendering frame: %w", err)
	}
	img := image.NewRGBA(image.Rectangle{Max: size})
	if err := win.Screenshot(img); err != nil {
		return fmt.Errorf("failed reading rendered pixels: %w", err)
	}
	if err := png.Encode(dst, img); err != nil {
		return fmt.Errorf("failed encoding png: %w", err)
	}
	return nil
}
