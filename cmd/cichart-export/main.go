package main

import (
	"flag"
	"fmt"
	"image"
	"io"
	"log"
	"os"

	"git.sr.ht/~whereswaldon/cichart/backend"
	"git.sr.ht/~whereswaldon/cichart/canvas"
	"git.sr.ht/~whereswaldon/cichart/chart"
	"git.sr.ht/~whereswaldon/cichart/config"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `%[1]s: render a confidence interval chart to png
Usage:

 %[1]s -samples intervals.csv -o chart.png

OR, to chart one simulated batch and keep its intervals:

 %[1]s -save-samples intervals.csv -o chart.png

`, os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	configPath := flag.String("config", "", "TOML file with chart and simulation settings")
	histogramPath := flag.String("histogram", "", "CSV file with a value column listing the histogram bins")
	samplesPath := flag.String("samples", "", "CSV file of left,mean,right intervals (simulated when empty)")
	saveSamples := flag.String("save-samples", "", "Write the charted intervals to this CSV file")
	title := flag.String("title", "", "chart title (overrides the config)")
	trueMean := flag.Float64("true-mean", 0, "position of the reference line (defaults to the histogram mean)")
	width := flag.Int("width", 375, "image width in pixels")
	height := flag.Int("height", 200, "image height in pixels")
	outputName := flag.String("o", "-", "Output file for the png")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			cfg.Title = *title
		case "true-mean":
			cfg.TrueMean, cfg.HasTrueMean = *trueMean, true
		}
	})
	scenario, err := backend.NewScenario(cfg, *histogramPath)
	if err != nil {
		log.Fatal(err)
	}

	var samples []string
	if *samplesPath != "" {
		samples, err = backend.LoadIntervalsFile(*samplesPath)
		if err != nil {
			log.Fatal(err)
		}
	} else {
		intervals := scenario.Simulator.Next()
		samples = chart.Flatten(intervals)
		if *saveSamples != "" {
			if err := saveIntervals(*saveSamples, intervals); err != nil {
				log.Fatal(err)
			}
		}
	}

	var list chart.DisplayList
	c, err := chart.New(chart.Region{Max: image.Pt(*width, *height)}, &list, cfg.Title,
		scenario.Histogram, scenario.TrueMean, chart.WithLayout(cfg.ChartLayout()))
	if err != nil {
		log.Fatal(err)
	}
	if err := c.ResetChart(scenario.Histogram, samples, scenario.TrueMean); err != nil {
		log.Fatal(err)
	}

	var output io.WriteCloser
	if *outputName == "-" {
		output = os.Stdout
	} else {
		f, err := os.Create(*outputName)
		if err != nil {
			log.Fatalf("failed opening output file %q: %v", *outputName, err)
		}
		output = f
	}
	if err := canvas.Export(output, canvas.NewTheme(), canvas.Widget{Chart: c, List: &list}); err != nil {
		output.Close()
		log.Fatal(err)
	}
	if err := output.Close(); err != nil {
		log.Fatalf("failed closing output: %v", err)
	}
}

func saveIntervals(path string, intervals []chart.Interval) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed creating %q: %w", path, err)
	}
	if err := backend.WriteIntervals(f, intervals); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
