// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

// Package initapp bootstraps the demo application: it loads the global
// configuration, opens a Gio window and mounts a chart view fed with
// generated sample data.
package initapp

import (
	"context"
	"log"
	"os"
	"time"

	"stockchart/chartval"
	"stockchart/chartviz"
	"stockchart/config"
	"stockchart/indcache"
	"stockchart/widgets"

	"gioui.org/app"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/x/haptic"
)

const (
	sampleReserveDays = 2000
	sampleInitialDays = 300
	sampleOlderChunk  = 200
	tickInterval      = time.Second
)

type InitApp struct {
	window       *app.Window
	config       config.Config
	view         *chartviz.ChartView
	buzzer       *haptic.Buzzer
	feed         *sampleFeed
	tickChan     chan chartval.Bar
	olderPending bool
	windowSize   widgets.DpPoint
}

func NewInitApp(c config.Config) *InitApp {
	return &InitApp{
		config:   c,
		feed:     newSampleFeed(time.Now().UnixNano(), sampleReserveDays, sampleInitialDays),
		tickChan: make(chan chartval.Bar, 1),
	}
}

func (a *InitApp) Run(ctx context.Context) {
	appConfig, err := a.config.Copy()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	wc := appConfig.WindowConfig[0]
	a.windowSize = widgets.DpPoint{X: unit.Dp(wc.Size.X), Y: unit.Dp(wc.Size.Y)}

	a.view, err = chartviz.New(a.demoOptions(wc.Chart), indcache.NewStore(a.config.GetAppName()))
	if err != nil {
		log.Fatalf("failed to create chart: %v", err)
	}
	a.view.SetNeedOlderData(func(currentOldestTime int64, requestedCount int) {
		// Serviced on the next frame; the callback must not block.
		a.olderPending = true
	})

	a.createWindow()
	a.buzzer = haptic.NewBuzzer(a.window)
	a.view.SetBuzzer(func() { a.buzzer.Buzz() })

	go a.streamTicks(ctx)

	err = a.handleEvents()
	if err != nil {
		log.Printf("terminating with error: %v", err)
	}
	a.terminate()
	os.Exit(0)
}

// demoOptions fills the persisted chart options with sample data and, on a
// fresh configuration, a couple of indicator plots.
func (a *InitApp) demoOptions(options config.ChartOptions) config.ChartOptions {
	if len(options.Plots) == 0 {
		options.Plots = config.NewMainPlotConfig()
	}
	onlyMainAndVolume := len(options.Plots) == 2
	if onlyMainAndVolume {
		options.Plots = append(options.Plots,
			config.PlotConfig{
				ID:       "ema20",
				Type:     config.PlotLine,
				Overlay:  true,
				TargetID: config.MainPlotID,
				KeyLabel: "EMA 20",
				Indicator: &config.IndicatorRef{
					ID:       "ema20",
					Name:     chartviz.IndicatorEMA,
					Settings: map[string]float64{"period": 20},
				},
			},
			config.PlotConfig{
				ID:          "rsi14",
				Type:        config.PlotLine,
				HeightRatio: 1,
				KeyLabel:    "RSI 14",
				Indicator: &config.IndicatorRef{
					ID:       "rsi14",
					Name:     chartviz.IndicatorRSI,
					Settings: map[string]float64{"period": 14},
				},
			},
		)
	}
	bars := a.feed.Bars()
	for i := range options.Plots {
		p := &options.Plots[i]
		if p.Indicator == nil {
			p.Data = bars
		}
	}
	if options.ChartName.Name == "" {
		options.ChartName = config.ChartName{Name: "Sample Data", Code: "SMPL"}
	}
	return options
}

func (a *InitApp) createWindow() {
	size := a.windowSize
	if size.X <= 0 || size.Y <= 0 {
		size.X = 1280
		size.Y = 800
	}
	a.window = app.NewWindow(
		app.Title(a.config.GetAppName()),
		app.Size(size.X, size.Y),
	)
	a.window.Perform(system.ActionCenter)
}

// streamTicks simulates a live quote stream on the most recent bar.
func (a *InitApp) streamTicks(ctx context.Context) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			select {
			case a.tickChan <- a.feed.Tick():
				a.window.Invalidate()
			default:
			}
		}
	}
}

func (a *InitApp) handleEvents() error {
	var ops op.Ops
	th := widgets.NewDarkMaterialTheme()

	for e := range a.window.Events() {
		switch e := e.(type) {
		case system.FrameEvent:
			a.applyPendingData()
			gtx := layout.NewContext(&ops, e)
			a.windowSize = widgets.DpPoint{
				X: e.Metric.PxToDp(e.Size.X),
				Y: e.Metric.PxToDp(e.Size.Y),
			}
			paint.Fill(gtx.Ops, th.Bg)
			a.view.Layout(gtx, th)
			e.Frame(gtx.Ops)
		case system.DestroyEvent:
			return e.Err
		}
	}
	return nil
}

// applyPendingData streams queued live ticks and services an older-data
// request before the frame is laid out.
func (a *InitApp) applyPendingData() {
	select {
	case bar := <-a.tickChan:
		a.view.ApplyBarUpdate(bar, true)
	default:
	}
	if a.olderPending {
		a.olderPending = false
		if a.feed.RevealOlder(sampleOlderChunk) {
			err := a.view.UpdateStockData(a.demoOptions(a.view.Options()).Plots)
			if err != nil {
				log.Printf("failed to extend chart history: %v", err)
			}
		}
	}
}

func (a *InitApp) terminate() {
	appConfig, err := a.config.Lock()
	if err != nil {
		log.Printf("error loading configuration for saving: %v", err)
		return
	}
	appConfig.WindowConfig[0].Size.X = int(a.windowSize.X)
	appConfig.WindowConfig[0].Size.Y = int(a.windowSize.Y)
	appConfig.WindowConfig[0].Chart = a.view.Options()
	err = a.config.Unlock(appConfig)
	if err != nil {
		log.Printf("error saving configuration: %v", err)
	}
}
