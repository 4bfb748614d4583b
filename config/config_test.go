package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"git.sr.ht/~whereswaldon/cichart/chart"
	"github.com/google/go-cmp/cmp"
)

func TestDefaultMatchesChartLayout(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config is invalid: %v", err)
	}
	if diff := cmp.Diff(chart.DefaultLayout(), cfg.ChartLayout()); diff != "" {
		t.Errorf("layout mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.toml")
	data := `
title = "Heights"
true_mean = 172.5

[layout]
max_rows = 5
ci_color = "#ff000080"

[simulation]
sample_size = 10
confidence = 0.9
interval = "250ms"
seed = 42
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Title != "Heights" || cfg.TrueMean != 172.5 || !cfg.HasTrueMean {
		t.Errorf("unexpected top-level settings: %+v", cfg)
	}
	want := Simulation{
		SampleSize: 10,
		Confidence: 0.9,
		Interval:   Duration{250 * time.Millisecond},
		Seed:       42,
	}
	if diff := cmp.Diff(want, cfg.Simulation); diff != "" {
		t.Errorf("simulation mismatch (-want +got):\n%s", diff)
	}
	l := cfg.ChartLayout()
	if l.MaxRows != 5 {
		t.Errorf("expected 5 rows, got %d", l.MaxRows)
	}
	if l.CIColor != (color.NRGBA{R: 0xff, A: 0x80}) {
		t.Errorf("unexpected ci color %v", l.CIColor)
	}
	// Unset keys keep their defaults.
	if l.LeftInset != chart.DefaultLayout().LeftInset {
		t.Errorf("expected default left inset, got %d", l.LeftInset)
	}
}

func TestTrueMeanUnset(t *testing.T) {
	cfg, err := Parse(`title = "x"`)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.HasTrueMean {
		t.Errorf("expected no true mean")
	}
}

func TestParseErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		data string
	}{
		{name: "bad color", data: "[layout]\nci_color = \"blue\""},
		{name: "bad hex digits", data: "[layout]\naxis_color = \"#gg0000\""},
		{name: "confidence too high", data: "[simulation]\nconfidence = 1.0"},
		{name: "confidence zero", data: "[simulation]\nconfidence = 0.0"},
		{name: "sample size", data: "[simulation]\nsample_size = 1"},
		{name: "no rows", data: "[layout]\nmax_rows = 0"},
		{name: "negative inset", data: "[layout]\nleft_inset = -1"},
		{name: "negative top inset", data: "[layout]\ntop_inset = -16"},
		{name: "negative label count", data: "[layout]\nlabel_count = -2"},
		{name: "negative glyph size", data: "[layout]\nglyph_size = -4"},
		{name: "zero axis width", data: "[layout]\naxis_width = 0.0"},
		{name: "negative ci width", data: "[layout]\nci_width = -2.0"},
		{name: "zero label size", data: "[layout]\nlabel_size = 0.0"},
		{name: "bad duration", data: "[simulation]\ninterval = \"soon\""},
		{name: "unknown key", data: "colour = \"red\""},
		{name: "syntax", data: "title = "},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse(tc.data); err == nil {
				t.Errorf("expected an error")
			}
		})
	}
}

func TestParseAcceptsZeroInsets(t *testing.T) {
	cfg, err := Parse("[layout]\ntop_inset = 0\nleft_inset = 0\nlabel_count = 0")
	if err != nil {
		t.Fatal(err)
	}
	if l := cfg.ChartLayout(); l.TopInset != 0 || l.LeftInset != 0 || l.LabelCount != 0 {
		t.Errorf("expected zero insets and labels, got %+v", l)
	}
}

func TestParseHex(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want color.NRGBA
	}{
		{in: "#000000", want: color.NRGBA{A: 0xff}},
		{in: "0000ff", want: color.NRGBA{B: 0xff, A: 0xff}},
		{in: "#11223344", want: color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0x44}},
	} {
		got, err := parseHex(tc.in)
		if err != nil {
			t.Errorf("%s: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%s: expected %v, got %v", tc.in, tc.want, got)
		}
		if back, _ := parseHex(formatHex(got)); back != got {
			t.Errorf("%s: formatting did not read back: %v", tc.in, back)
		}
	}
}
