package main

import (
	"context"
	"flag"
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/op"
	"gioui.org/unit"
	"gioui.org/x/explorer"
	"git.sr.ht/~whereswaldon/cichart/backend"
	"git.sr.ht/~whereswaldon/cichart/config"
)

func main() {
	configPath := flag.String("config", "", "TOML file with chart and simulation settings")
	histogramPath := flag.String("histogram", "", "CSV file with a value column listing the histogram bins")
	samplesPath := flag.String("samples", "", "CSV file of left,mean,right intervals to follow instead of simulating")
	title := flag.String("title", "", "chart title (overrides the config)")
	trueMean := flag.Float64("true-mean", 0, "position of the reference line (defaults to the histogram mean)")
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

	go func() {
		w := app.NewWindow(app.Title("CI Chart"), app.Size(unit.Dp(640), unit.Dp(420)))
		if err := loop(w, scenario, *samplesPath); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

func loop(w *app.Window, scenario backend.Scenario, samplesPath string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	bundle := backend.NewBundle(backend.NewDatasource(scenario.Config.Layout.MaxRows), scenario.Simulator)
	ws := backend.NewWindowState(ctx, bundle, w)
	expl := explorer.NewExplorer(w)
	ui := NewUI(w, ws, expl, scenario)
	if samplesPath != "" {
		ui.Follow(samplesPath)
	}
	var ops op.Ops
	for {
		ev := w.NextEvent()
		expl.ListenEvents(ev)
		switch ev := ev.(type) {
		case app.DestroyEvent:
			return ev.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, ev)
			ui.Layout(gtx)
			ev.Frame(gtx.Ops)
			ws.Controller.Sweep()
		}
	}
}
