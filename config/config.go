// Package config loads chart and simulation settings from TOML files.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"git.sr.ht/~whereswaldon/cichart/chart"
	"github.com/BurntSushi/toml"
)

type Config struct {
	Title    string  `toml:"title"`
	TrueMean float64 `toml:"true_mean"`
	// HasTrueMean is set when the file provides true_mean. Otherwise the
	// mean of the simulated population is used.
	HasTrueMean bool       `toml:"-"`
	Layout      Layout     `toml:"layout"`
	Simulation  Simulation `toml:"simulation"`
}

type Layout struct {
	TopInset    int     `toml:"top_inset"`
	BottomInset int     `toml:"bottom_inset"`
	LeftInset   int     `toml:"left_inset"`
	TickHeight  int     `toml:"tick_height"`
	GlyphSize   int     `toml:"glyph_size"`
	MaxRows     int     `toml:"max_rows"`
	LabelCount  int     `toml:"label_count"`
	LabelOffset int     `toml:"label_offset"`
	LabelSize   float32 `toml:"label_size"`
	AxisColor   string  `toml:"axis_color"`
	AxisWidth   float32 `toml:"axis_width"`
	CIColor     string  `toml:"ci_color"`
	CIWidth     float32 `toml:"ci_width"`
	TextColor   string  `toml:"text_color"`
}

type Simulation struct {
	SampleSize int      `toml:"sample_size"`
	Confidence float64  `toml:"confidence"`
	Interval   Duration `toml:"interval"`
	Seed       int64    `toml:"seed"`
	// Weights optionally weights each histogram bin of the parent
	// distribution.
	Weights []float64 `toml:"weights"`
}

// Duration decodes TOML strings such as "1s" or "250ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file is given.
func Default() Config {
	l := chart.DefaultLayout()
	return Config{
		Title: "Confidence intervals",
		Layout: Layout{
			TopInset:    l.TopInset,
			BottomInset: l.BottomInset,
			LeftInset:   l.LeftInset,
			TickHeight:  l.TickHeight,
			GlyphSize:   l.GlyphSize,
			MaxRows:     l.MaxRows,
			LabelCount:  l.LabelCount,
			LabelOffset: l.LabelOffset,
			LabelSize:   l.LabelSize,
			AxisColor:   formatHex(l.AxisColor),
			AxisWidth:   l.AxisWidth,
			CIColor:     formatHex(l.CIColor),
			CIWidth:     l.CIWidth,
			TextColor:   formatHex(l.TextColor),
		},
		Simulation: Simulation{
			SampleSize: 25,
			Confidence: 0.95,
			Interval:   Duration{time.Second},
			Seed:       1,
		},
	}
}

// Load reads the file at path over the defaults. An empty path yields the
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed decoding config %q: %w", path, err)
	}
	return finish(cfg, md)
}

// Parse decodes configuration text over the defaults.
func Parse(data string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed decoding config: %w", err)
	}
	return finish(cfg, md)
}

func finish(cfg Config, md toml.MetaData) (Config, error) {
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	cfg.HasTrueMean = md.IsDefined("true_mean")
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings the chart or simulator cannot work with.
func (c Config) Validate() error {
	var errs []error
	if c.Layout.MaxRows < 1 {
		errs = append(errs, fmt.Errorf("layout.max_rows must be positive, got %d", c.Layout.MaxRows))
	}
	for _, f := range []struct {
		name  string
		value int
	}{
		{"layout.top_inset", c.Layout.TopInset},
		{"layout.bottom_inset", c.Layout.BottomInset},
		{"layout.left_inset", c.Layout.LeftInset},
		{"layout.tick_height", c.Layout.TickHeight},
		{"layout.glyph_size", c.Layout.GlyphSize},
		{"layout.label_count", c.Layout.LabelCount},
	} {
		if f.value < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %d", f.name, f.value))
		}
	}
	for _, f := range []struct {
		name  string
		value float32
	}{
		{"layout.label_size", c.Layout.LabelSize},
		{"layout.axis_width", c.Layout.AxisWidth},
		{"layout.ci_width", c.Layout.CIWidth},
	} {
		if !(f.value > 0) {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", f.name, f.value))
		}
	}
	for name, hex := range map[string]string{
		"layout.axis_color": c.Layout.AxisColor,
		"layout.ci_color":   c.Layout.CIColor,
		"layout.text_color": c.Layout.TextColor,
	} {
		if _, err := parseHex(hex); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	if c.Simulation.SampleSize < 2 {
		errs = append(errs, fmt.Errorf("simulation.sample_size must be at least 2, got %d", c.Simulation.SampleSize))
	}
	if c.Simulation.Confidence <= 0 || c.Simulation.Confidence >= 1 {
		errs = append(errs, fmt.Errorf("simulation.confidence must lie in (0,1), got %v", c.Simulation.Confidence))
	}
	if c.Simulation.Interval.Duration <= 0 {
		errs = append(errs, fmt.Errorf("simulation.interval must be positive, got %v", c.Simulation.Interval))
	}
	return errors.Join(errs...)
}

// ChartLayout converts the layout section for use with chart.WithLayout. The
// configuration must have been validated.
func (c Config) ChartLayout() chart.Layout {
	l := c.Layout
	axis, _ := parseHex(l.AxisColor)
	ci, _ := parseHex(l.CIColor)
	txt, _ := parseHex(l.TextColor)
	return chart.Layout{
		TopInset:    l.TopInset,
		BottomInset: l.BottomInset,
		LeftInset:   l.LeftInset,
		TickHeight:  l.TickHeight,
		GlyphSize:   l.GlyphSize,
		MaxRows:     l.MaxRows,
		LabelCount:  l.LabelCount,
		LabelOffset: l.LabelOffset,
		LabelSize:   l.LabelSize,
		AxisColor:   axis,
		AxisWidth:   l.AxisWidth,
		CIColor:     ci,
		CIWidth:     l.CIWidth,
		TextColor:   txt,
	}
}

func parseHex(s string) (color.NRGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 && len(s) != 8 {
		return color.NRGBA{}, fmt.Errorf("color %q is not #rrggbb or #rrggbbaa", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	if len(s) == 6 {
		v = v<<8 | 0xff
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

func formatHex(c color.NRGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
