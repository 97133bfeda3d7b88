// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

// Package chartviz exposes the embeddable chart view: a chartplot.Chart
// plus plot configuration, indicator recomputation, drawing tools and the
// host facing operations.
package chartviz

import (
	"fmt"
	"log"
	"time"

	"gioui.org/layout"
	"gioui.org/widget/material"

	"stockchart/calendar"
	"stockchart/chartplot"
	"stockchart/chartval"
	"stockchart/config"
	"stockchart/drawings"
	"stockchart/indcache"
	"stockchart/viewport"
	"stockchart/widgets"
)

// ChartView owns one chart and implements the public chart operations.
// All methods are called from the UI event loop.
type ChartView struct {
	chart   *chartplot.Chart
	options config.ChartOptions
	cache   *indcache.Store
	cal     calendar.BankCalendar
	toolbar drawingToolbar
	runners map[string]*indicatorRunner
}

// New validates the options and builds the view. An invalid plot set is a
// configuration fault and rejects the call.
func New(options config.ChartOptions, cache *indcache.Store) (*ChartView, error) {
	if err := config.ValidatePlots(options.Plots); err != nil {
		return nil, fmt.Errorf("invalid chart configuration: %w", err)
	}
	if cache == nil {
		cache = indcache.NewMemoryStore()
	}
	v := &ChartView{
		options: options,
		cache:   cache,
		cal:     calendar.NewUSBankCalendar(),
		chart:   chartplot.NewChart(options.ResolveTheme(), options.InitialVisibleCandles),
		runners: make(map[string]*indicatorRunner),
	}
	v.chart.Name = options.ChartName
	if err := v.applyPlots(options.Plots); err != nil {
		return nil, err
	}
	return v, nil
}

// Chart exposes the composed chart, mainly for the host window layout.
func (v *ChartView) Chart() *chartplot.Chart {
	return v.chart
}

// applyPlots recomputes derived series and installs the plot set.
func (v *ChartView) applyPlots(plots []config.PlotConfig) error {
	main := mainDataOf(plots)
	clear(v.runners)
	for i := range plots {
		p := &plots[i]
		if p.Indicator == nil {
			continue
		}
		if runner := v.restoreRunner(p, main); runner != nil {
			v.runners[p.ID] = runner
			continue
		}
		data, runner, err := computeIndicatorSeries(p.Indicator, p.Type, main)
		if err != nil {
			return err
		}
		p.Data = data
		v.runners[p.ID] = runner
		v.saveIndicatorState(p)
	}
	v.chart.SetPlots(plots)
	return nil
}

// restoreRunner warm-starts a streaming indicator from the cache when the
// host supplied the derived series itself and a state snapshot exists for
// the exact last bar, avoiding a full replay.
func (v *ChartView) restoreRunner(p *config.PlotConfig, main []chartval.Bar) *indicatorRunner {
	if len(main) == 0 || len(p.Data) != len(main) {
		return nil
	}
	lastBarTime := main[len(main)-1].Time
	state, ok := v.cache.Load(indcache.Key(p.Indicator), lastBarTime)
	if !ok {
		return nil
	}
	runner, err := restoreIndicatorRunner(p.Indicator, p.Type, state)
	if err != nil {
		log.Printf("cannot restore indicator %q from cache: %v", p.ID, err)
		return nil
	}
	return runner
}

func mainDataOf(plots []config.PlotConfig) []chartval.Bar {
	for i := range plots {
		if !plots[i].Overlay && plots[i].ID == config.MainPlotID {
			return plots[i].Data
		}
	}
	return nil
}

func (v *ChartView) saveIndicatorState(p *config.PlotConfig) {
	runner := v.runners[p.ID]
	if runner == nil || len(p.Data) == 0 {
		return
	}
	state, err := runner.snapshot()
	if err != nil {
		log.Printf("cannot snapshot indicator %q: %v", p.ID, err)
		return
	}
	v.cache.Save(indcache.Key(p.Indicator), p.Data[len(p.Data)-1].Time, state)
}

// UpdateStockData atomically replaces all plot data, resets the viewport
// to the most recent bars and clears all drawings.
func (v *ChartView) UpdateStockData(plots []config.PlotConfig) error {
	if err := config.ValidatePlots(plots); err != nil {
		return fmt.Errorf("invalid plot data: %w", err)
	}
	if err := v.applyPlots(plots); err != nil {
		return err
	}
	v.options.Plots = plots
	v.chart.Drawings().Clear()
	return nil
}

// Options returns the current chart options, e.g. for persisting.
func (v *ChartView) Options() config.ChartOptions {
	return v.options
}

// ApplyBarUpdate streams one bar into the main plot and all derived
// series. With samePeriod the in-progress bar is revised in place,
// otherwise a new period starts.
func (v *ChartView) ApplyBarUpdate(bar chartval.Bar, samePeriod bool) {
	plots := v.chart.Plots()
	var main []chartval.Bar
	for i := range plots {
		p := &plots[i]
		if !p.Overlay && p.ID == config.MainPlotID {
			p.Data = appendOrReplace(p.Data, bar, samePeriod)
			main = p.Data
			v.chart.UpdatePlotData(p.ID, p.Data)
			break
		}
	}
	if main == nil {
		return
	}
	for i := range plots {
		p := &plots[i]
		if !p.Overlay && p.ID == config.MainPlotID {
			continue
		}
		runner := v.runners[p.ID]
		if runner == nil {
			// Raw panes (e.g. volume) mirror the main-plot bars.
			p.Data = appendOrReplace(p.Data, bar, samePeriod)
			v.chart.UpdatePlotData(p.ID, p.Data)
			continue
		}
		derived := chartval.Bar{Time: bar.Time, Value: runner.update(bar, samePeriod)}
		p.Data = appendOrReplace(p.Data, derived, samePeriod)
		v.chart.UpdatePlotData(p.ID, p.Data)
		v.saveIndicatorState(p)
	}
}

func appendOrReplace(data []chartval.Bar, bar chartval.Bar, samePeriod bool) []chartval.Bar {
	if samePeriod && len(data) > 0 {
		data[len(data)-1] = bar
		return data
	}
	return append(data, bar)
}

// UpdateChartName replaces the title block.
func (v *ChartView) UpdateChartName(name config.ChartName) {
	v.options.ChartName = name
	v.chart.Name = name
}

// ApplyTheme switches between the named themes or a custom one. Applying
// the same theme twice is a no-op.
func (v *ChartView) ApplyTheme(name string, custom *widgets.PlotTheme) {
	v.options.Theme = name
	v.options.CustomTheme = custom
	v.chart.Theme = v.options.ResolveTheme()
}

// SetDrawingTool arms a drawing tool by its id; an empty id disarms.
func (v *ChartView) SetDrawingTool(toolID string) error {
	if toolID == "" {
		v.chart.Drawings().SetTool("")
		return nil
	}
	kind := drawings.Kind(toolID)
	switch kind {
	case drawings.KindLine, drawings.KindHorizontalLine, drawings.KindVerticalLine,
		drawings.KindRect, drawings.KindFibRetracement, drawings.KindFibTimeZones:
		v.chart.Drawings().SetTool(kind)
		return nil
	}
	return fmt.Errorf("unknown drawing tool %q", toolID)
}

func (v *ChartView) ClearDrawings() {
	v.chart.Drawings().Clear()
}

func (v *ChartView) ExportDrawings() (string, error) {
	return v.chart.Drawings().Export()
}

func (v *ChartView) ImportDrawings(text string) error {
	return v.chart.Drawings().Import(text)
}

// CenterOnDate positions the viewport so the bar nearest the timestamp
// (in milliseconds) is centered, optionally marking it with a vertical
// reference line.
func (v *ChartView) CenterOnDate(timestampMs int64, showReferenceLine bool) {
	v.chart.CenterOnTime(timestampMs/1000, showReferenceLine)
}

// SetNeedOlderData installs the host observer for left-edge zoom-out.
func (v *ChartView) SetNeedOlderData(f viewport.NeedOlderDataFunc) {
	v.chart.SetNeedOlderData(f)
}

// SetBuzzer installs the haptic feedback hook for the touch crosshair.
func (v *ChartView) SetBuzzer(buzz func()) {
	v.chart.Buzzer = buzz
}

// Layout draws the toolbar (when enabled) and the chart.
func (v *ChartView) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	v.refreshTradingState(gtx.Now)
	if !v.options.DrawingToolbarVisible() {
		return v.chart.Layout(gtx, th)
	}
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return v.toolbar.Layout(gtx, th, v.chart.Theme, v.chart.Drawings())
		}),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return v.chart.Layout(gtx, th)
		}),
	)
}

// refreshTradingState annotates the title block with the current market
// phase.
func (v *ChartView) refreshTradingState(now time.Time) {
	meta := v.options.ChartName.MetaString
	if state := v.cal.TradingState(now); state != "" {
		if meta != "" {
			meta += " · "
		}
		meta += state
	}
	name := v.options.ChartName
	name.MetaString = meta
	v.chart.Name = name
}
