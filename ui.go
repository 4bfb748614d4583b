package main

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"os"
	"strconv"
	"strings"

	"gioui.org/app"
	"gioui.org/layout"
	"gioui.org/text"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/component"
	"gioui.org/x/explorer"
	"git.sr.ht/~gioverse/skel/stream"
	"git.sr.ht/~whereswaldon/cichart/backend"
	"git.sr.ht/~whereswaldon/cichart/canvas"
	"git.sr.ht/~whereswaldon/cichart/chart"
	"golang.org/x/exp/shiny/materialdesign/icons"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

var pauseIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.AVPause)
	return icon
}()

var playIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.AVPlayArrow)
	return icon
}()

var contentFill = color.NRGBA{R: 0xf4, G: 0xf4, B: 0xf8, A: 0xff}

const sourceSimulation = "simulation"

// UI is responsible for holding the state of and drawing the top-level UI.
type UI struct {
	w        *app.Window
	ws       backend.WindowState
	expl     *explorer.Explorer
	th       *material.Theme
	scenario backend.Scenario

	chart    *chart.Chart
	list     chart.DisplayList
	size     image.Point
	trueMean float64
	samples  []string
	errMsg   string

	batches *stream.Stream[backend.Batch]
	source  string
	paused  bool
	picked  chan string

	pauseBtn  widget.Clickable
	openBtn   widget.Clickable
	simBtn    widget.Clickable
	resetBtn  widget.Clickable
	meanField component.TextField
}

func NewUI(w *app.Window, ws backend.WindowState, expl *explorer.Explorer, scenario backend.Scenario) *UI {
	ui := &UI{
		w:        w,
		ws:       ws,
		expl:     expl,
		th:       canvas.NewTheme(),
		scenario: scenario,
		trueMean: scenario.TrueMean,
		picked:   make(chan string, 1),
	}
	ui.meanField.SingleLine = true
	ui.meanField.SetText(strconv.FormatFloat(scenario.TrueMean, 'g', -1, 64))
	ui.simulate()
	return ui
}

// Follow switches the chart to the intervals in the CSV file at path.
func (ui *UI) Follow(path string) {
	ui.source = path
	ui.samples = nil
	ui.errMsg = ""
	ui.batches = stream.New(ui.ws.Controller, ui.ws.Bundle.TailStream(path))
	ui.redraw()
}

func (ui *UI) simulate() {
	ui.source = sourceSimulation
	ui.samples = nil
	ui.errMsg = ""
	ui.batches = stream.New(ui.ws.Controller, ui.ws.Bundle.Simulator.Stream)
	ui.redraw()
}

// chooseFile blocks on the file dialog, so it runs off the event loop.
func (ui *UI) chooseFile() {
	f, err := ui.expl.ChooseFile(".csv")
	if err != nil {
		log.Printf("failed browsing for file: %v", err)
		return
	}
	defer f.Close()
	osFile, ok := f.(*os.File)
	if !ok {
		log.Printf("selected file of unexpected type: %T", f)
		return
	}
	ui.picked <- osFile.Name()
	ui.w.Invalidate()
}

// Update the state of the UI in response to input and new batches.
func (ui *UI) Update(gtx C) {
	ui.meanField.Update(gtx, ui.th, "True mean")
	select {
	case path := <-ui.picked:
		ui.Follow(path)
	default:
	}
	if ui.openBtn.Clicked(gtx) {
		go ui.chooseFile()
	}
	if ui.simBtn.Clicked(gtx) && ui.source != sourceSimulation {
		ui.simulate()
	}
	if ui.pauseBtn.Clicked(gtx) {
		ui.paused = !ui.paused
	}
	if ui.resetBtn.Clicked(gtx) {
		ui.reset()
	}
	// A paused stream is not read, which lets the controller stop it.
	if ui.paused {
		return
	}
	batch, isNew := ui.batches.ReadNew(gtx)
	if !isNew {
		return
	}
	if batch.Err != nil {
		ui.errMsg = batch.Err.Error()
		return
	}
	ui.samples = batch.Samples
	ui.redraw()
}

// reset applies the true mean typed into the text field and clears the
// intervals.
func (ui *UI) reset() {
	mean, err := strconv.ParseFloat(strings.TrimSpace(ui.meanField.Text()), 64)
	if err != nil {
		ui.errMsg = fmt.Sprintf("invalid true mean %q", ui.meanField.Text())
		return
	}
	ui.trueMean = mean
	ui.samples = nil
	ui.errMsg = ""
	if ui.chart == nil {
		return
	}
	if err := ui.chart.ResetChart(ui.scenario.Histogram, nil, mean); err != nil {
		ui.errMsg = err.Error()
	}
}

func (ui *UI) redraw() {
	if ui.chart == nil {
		return
	}
	if err := ui.chart.Redraw(ui.samples, ui.trueMean); err != nil {
		ui.errMsg = err.Error()
	}
}

// ensureChart builds the chart for the available space. Charts have a fixed
// size, so a resized window gets a new one.
func (ui *UI) ensureChart(size image.Point) {
	if ui.size == size {
		return
	}
	ui.size = size
	ui.list = chart.DisplayList{}
	c, err := chart.New(chart.Region{Max: size}, &ui.list, ui.scenario.Config.Title,
		ui.scenario.Histogram, ui.trueMean, chart.WithLayout(ui.scenario.Config.ChartLayout()))
	if err != nil {
		ui.chart = nil
		ui.errMsg = err.Error()
		return
	}
	ui.chart = c
	if err := c.DrawCIs(ui.samples); err != nil {
		ui.errMsg = err.Error()
	}
}

func (ui *UI) layoutToolbar(gtx C) D {
	inset := layout.UniformInset(4)
	return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			icon := pauseIcon
			if ui.paused {
				icon = playIcon
			}
			return inset.Layout(gtx, func(gtx C) D {
				gtx.Constraints = layout.Exact(image.Pt(gtx.Dp(32), gtx.Dp(32)))
				return material.Clickable(gtx, &ui.pauseBtn, func(gtx C) D {
					return layout.Center.Layout(gtx, func(gtx C) D {
						return icon.Layout(gtx, ui.th.Fg)
					})
				})
			})
		}),
		layout.Rigid(func(gtx C) D {
			return inset.Layout(gtx, material.Button(ui.th, &ui.openBtn, "Open CSV").Layout)
		}),
		layout.Rigid(func(gtx C) D {
			if ui.source == sourceSimulation {
				gtx = gtx.Disabled()
			}
			return inset.Layout(gtx, material.Button(ui.th, &ui.simBtn, "Simulate").Layout)
		}),
		layout.Flexed(1, func(gtx C) D {
			return inset.Layout(gtx, func(gtx C) D {
				return ui.meanField.Layout(gtx, ui.th, "True mean")
			})
		}),
		layout.Rigid(func(gtx C) D {
			return inset.Layout(gtx, material.Button(ui.th, &ui.resetBtn, "Reset").Layout)
		}),
	)
}

func (ui *UI) layoutStatus(gtx C) D {
	msg := "Source: " + ui.source
	if len(ui.samples) > 0 {
		msg += ", " + backend.CoverageOf(ui.samples, ui.trueMean).String()
	}
	if ui.paused {
		msg += " (paused)"
	}
	l := material.Body2(ui.th, msg)
	if ui.errMsg != "" {
		l.Text = ui.errMsg
		l.Color = color.NRGBA{R: 150, A: 255}
	}
	l.MaxLines = 1
	l.Alignment = text.Start
	return layout.UniformInset(4).Layout(gtx, l.Layout)
}

// Layout the UI into the provided context.
func (ui *UI) Layout(gtx C) D {
	ui.Update(gtx)
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(ui.layoutToolbar),
		layout.Flexed(1, func(gtx C) D {
			ui.ensureChart(gtx.Constraints.Max)
			if ui.chart == nil {
				return D{Size: gtx.Constraints.Max}
			}
			return canvas.Widget{Chart: ui.chart, List: &ui.list, ContentFill: contentFill}.Layout(gtx, ui.th)
		}),
		layout.Rigid(ui.layoutStatus),
	)
}
