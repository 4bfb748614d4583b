package canvas

import (
	"image"
	"testing"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/text"
	"git.sr.ht/~whereswaldon/cichart/chart"
)

func TestLabelOrigin(t *testing.T) {
	dims := layout.Dimensions{Size: image.Pt(20, 12), Baseline: 3}
	type testcase struct {
		name  string
		align text.Alignment
		want  image.Point
	}
	for _, tc := range []testcase{
		{name: "start", align: text.Start, want: image.Pt(100, 41)},
		{name: "middle", align: text.Middle, want: image.Pt(90, 41)},
		{name: "end", align: text.End, want: image.Pt(80, 41)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := labelOrigin(f32.Pt(100, 50), tc.align, dims)
			if got != tc.want {
				t.Errorf("expected origin %v, got %v", tc.want, got)
			}
		})
	}
}

func TestFrameOccupiesChartSize(t *testing.T) {
	var dl chart.DisplayList
	c, err := chart.New(chart.Region(image.Rect(0, 0, 375, 200)), &dl, "Sample means", chart.BinsOf(0, 50, 100), 50)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.DrawCIs([]string{"10", "40", "120"}); err != nil {
		t.Fatal(err)
	}
	var ops op.Ops
	gtx := layout.Context{
		Ops:         &ops,
		Constraints: layout.Exact(image.Pt(800, 600)),
	}
	dims := Widget{Chart: c, List: &dl}.Layout(gtx, NewTheme())
	if dims.Size != c.Size() {
		t.Errorf("expected widget size %v, got %v", c.Size(), dims.Size)
	}
}
