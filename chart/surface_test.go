package chart

import (
	"image/color"
	"testing"

	"gioui.org/f32"
	"github.com/google/go-cmp/cmp"
)

func TestDisplayListRecordsPaths(t *testing.T) {
	var dl DisplayList
	black := color.NRGBA{A: 0xff}
	dl.BeginPath()
	dl.LineTo(f32.Pt(1, 1))
	dl.LineTo(f32.Pt(2, 1))
	dl.MoveTo(f32.Pt(5, 5))
	dl.LineTo(f32.Pt(5, 9))
	dl.Stroke(black, 1)
	// Further path commands must not leak into the recorded stroke.
	dl.LineTo(f32.Pt(7, 7))
	dl.FillText("x", f32.Pt(3, 4), TextStyle{Size: 9})

	strokes := dl.Strokes()
	if len(strokes) != 1 {
		t.Fatalf("expected one stroke, got %d", len(strokes))
	}
	want := []Segment{
		{From: f32.Pt(1, 1), To: f32.Pt(2, 1)},
		{From: f32.Pt(5, 5), To: f32.Pt(5, 9)},
	}
	if diff := cmp.Diff(want, strokes[0].Segments()); diff != "" {
		t.Errorf("segments mismatch (-want +got):\n%s", diff)
	}
	if texts := dl.Texts(); len(texts) != 1 || texts[0].Text != "x" {
		t.Errorf("expected one label \"x\", got %v", texts)
	}

	dl.Clear()
	if len(dl.Items) != 0 {
		t.Errorf("expected clear to drop all items, got %d", len(dl.Items))
	}
}

func TestBeginPathDiscardsUnstroked(t *testing.T) {
	var dl DisplayList
	dl.BeginPath()
	dl.MoveTo(f32.Pt(0, 0))
	dl.LineTo(f32.Pt(9, 9))
	dl.BeginPath()
	dl.MoveTo(f32.Pt(1, 0))
	dl.LineTo(f32.Pt(1, 2))
	dl.Stroke(color.NRGBA{}, 1)
	got := dl.Strokes()[0].Segments()
	want := []Segment{{From: f32.Pt(1, 0), To: f32.Pt(1, 2)}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("segments mismatch (-want +got):\n%s", diff)
	}
}

func TestFlattenAndBins(t *testing.T) {
	got := Flatten([]Interval{{Left: -1.5, Mean: 0, Right: 2.25}})
	if diff := cmp.Diff([]string{"-1.5", "0", "2.25"}, got); diff != "" {
		t.Errorf("flatten mismatch (-want +got):\n%s", diff)
	}
	bins := BinsOf(0.1, 10, 1e6)
	if diff := cmp.Diff(Bins{"0.1", "10", "1000000"}, bins); diff != "" {
		t.Errorf("bins mismatch (-want +got):\n%s", diff)
	}
	if bins.NumberOfBins() != 3 {
		t.Errorf("expected 3 bins, got %d", bins.NumberOfBins())
	}
}
