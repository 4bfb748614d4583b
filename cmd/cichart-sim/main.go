package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"git.sr.ht/~whereswaldon/cichart/backend"
	"git.sr.ht/~whereswaldon/cichart/config"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `%[1]s: write simulated confidence intervals as csv
Usage:

 %[1]s -output intervals.csv &
 cichart -samples intervals.csv

OR

 %[1]s -count 20 > intervals.csv

`, os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	configPath := flag.String("config", "", "TOML file with simulation settings")
	histogramPath := flag.String("histogram", "", "CSV file with a value column listing the histogram bins")
	outputName := flag.String("output", "-", "Output file for CSV interval data")
	count := flag.Int("count", 0, "Stop after this many intervals (0 runs until interrupted)")
	dur := flag.Duration("interval", 0, "Interval between new rows (overrides the config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *dur > 0 {
		cfg.Simulation.Interval.Duration = *dur
	}
	scenario, err := backend.NewScenario(cfg, *histogramPath)
	if err != nil {
		log.Fatal(err)
	}
	sim := scenario.Simulator
	sim.Rows = 1

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
	defer func() {
		if err := output.Close(); err != nil {
			log.Printf("failed closing output: %v", err)
		}
	}()
	log.Printf("sampling %d values per interval from a population with mean %v", sim.SampleSize, sim.Population.Mean())

	// The header is written alone so a tailing reader sees it immediately.
	if err := backend.WriteIntervals(output, nil); err != nil {
		log.Printf("failed writing header: %v", err)
		return
	}
	ticker := time.NewTicker(sim.Interval)
	defer ticker.Stop()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	for written := 0; *count == 0 || written < *count; written++ {
		if written > 0 {
			select {
			case <-sigChan:
				// We've gotten an interrupt; shut down.
				return
			case <-ticker.C:
			}
		}
		if err := backend.AppendIntervals(output, sim.Next()); err != nil {
			log.Printf("failed writing interval: %v", err)
			return
		}
	}
}
