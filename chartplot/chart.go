// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

// Package chartplot renders one interactive chart: stacked sub-plots over a
// shared bar axis, with pan/zoom, crosshair, drawings and axis labels.
// X values are projected per bar index, not per unixtime, so series with
// irregular spacing (weekends, banking holidays) render without gaps.
package chartplot

import (
	"image"
	"time"

	"gioui.org/f32"
	"gioui.org/unit"

	"stockchart/chartval"
	"stockchart/config"
	"stockchart/drawings"
	"stockchart/plotlayout"
	"stockchart/viewport"
	"stockchart/widgets"
)

// Padding to the right of the newest bar, in bar slots.
const rightPaddingBars = 5

type EventArea int

const (
	EventAreaPlot EventArea = iota
	EventAreaYaxis
	EventAreaSplitter
)

type ChartTag struct {
	a      EventArea
	c      *Chart
	plotID string
}

// Chart composes the viewport, layout, drawing engine and renderer for one
// canvas. All methods are called from the UI event loop.
type Chart struct {
	Theme *widgets.PlotTheme
	Name  config.ChartName

	// Buzzer triggers haptic feedback when the touch crosshair engages.
	// Optional.
	Buzzer func()

	plots         []config.PlotConfig
	view          *viewport.Viewport
	engine        *drawings.Engine
	needOlderData viewport.NeedOlderDataFunc

	verticalScale map[string]float64
	referenceTime *int64

	initialVisibleCandles int
	requestFocus          bool

	pointerPressPos f32.Point
	dragPlotID      string
	splitterDragged bool

	lastYAxisClick   time.Time
	lastYAxisClickID string

	pressAt      time.Time
	pressPlotID  string
	pressIsTouch bool
	pressMoved   bool

	pinch pinchTracker

	crosshair struct {
		visible bool
		sticky  bool
		pos     f32.Point
		plotID  string
	}

	frame frameState
}

type frameState struct {
	totalPxSize    image.Point
	layoutFrame    plotlayout.Frame
	rects          []plotlayout.PlotRect
	projections    map[string]viewport.Projection
	ranges         map[string]priceRange
	textSizePx     image.Point
	nextTextSizePx image.Point
}

func NewChart(theme *widgets.PlotTheme, initialVisibleCandles int) *Chart {
	if initialVisibleCandles <= 0 {
		initialVisibleCandles = config.DefaultInitialVisibleCandles
	}
	c := &Chart{
		Theme:                 theme,
		engine:                drawings.NewEngine(),
		verticalScale:         make(map[string]float64),
		initialVisibleCandles: initialVisibleCandles,
	}
	c.frame.projections = make(map[string]viewport.Projection)
	c.frame.ranges = make(map[string]priceRange)
	c.SetPlots(config.NewMainPlotConfig())
	return c
}

// SetPlots replaces the plot set and resets the viewport to the most recent
// bars. The caller validates the plot set beforehand.
func (c *Chart) SetPlots(plots []config.PlotConfig) {
	c.plots = plots
	main := c.mainPlot()
	var data []chartval.Bar
	if main != nil {
		data = main.Data
	}
	c.view = viewport.New(data, c.initialVisibleCandles, rightPaddingBars)
	c.view.SetNeedOlderDataFunc(c.needOlderData)
	c.referenceTime = nil
}

// Plots returns the current plot set.
func (c *Chart) Plots() []config.PlotConfig {
	return c.plots
}

// UpdatePlotData swaps the data of one plot without resetting the viewport,
// used for indicator recomputation. Main-plot data additionally updates the
// viewport backing array.
func (c *Chart) UpdatePlotData(id string, data []chartval.Bar) {
	for i := range c.plots {
		if c.plots[i].ID == id {
			c.plots[i].Data = data
			if id == config.MainPlotID {
				c.view.UpdateData(data)
			}
			return
		}
	}
}

func (c *Chart) Viewport() *viewport.Viewport {
	return c.view
}

func (c *Chart) Drawings() *drawings.Engine {
	return c.engine
}

// SetNeedOlderData installs the observer signalled when zooming out at the
// left data edge.
func (c *Chart) SetNeedOlderData(f viewport.NeedOlderDataFunc) {
	c.needOlderData = f
	c.view.SetNeedOlderDataFunc(f)
}

// CenterOnTime scrolls the viewport so the bar nearest t is centered,
// optionally marking it with a vertical reference line.
func (c *Chart) CenterOnTime(t int64, showReference bool) {
	main := c.mainPlot()
	if main == nil || len(main.Data) == 0 {
		return
	}
	proj := drawings.NewProjector(main.Data, viewport.Projection{})
	index := chartval.Clamp(proj.IndexForTime(t), 0, len(main.Data)-1)
	c.view.CenterOn(index)
	if showReference {
		refTime := main.Data[index].Time
		c.referenceTime = &refTime
	} else {
		c.referenceTime = nil
	}
}

// VerticalScale returns the per-plot price axis scale, default 1.
func (c *Chart) VerticalScale(plotID string) float64 {
	if s, ok := c.verticalScale[plotID]; ok {
		return s
	}
	return 1
}

func (c *Chart) setVerticalScale(plotID string, s float64) {
	c.verticalScale[plotID] = chartval.Clamp(s, MinVerticalScale, MaxVerticalScale)
}

func (c *Chart) mainPlot() *config.PlotConfig {
	for i := range c.plots {
		if !c.plots[i].Overlay && c.plots[i].ID == config.MainPlotID {
			return &c.plots[i]
		}
	}
	return nil
}

func (c *Chart) plotByID(id string) *config.PlotConfig {
	for i := range c.plots {
		if c.plots[i].ID == id {
			return &c.plots[i]
		}
	}
	return nil
}

// rangePlotID resolves the plot whose price range applies: overlays share
// the range of their target so their values align with the target's axis.
func rangePlotID(p *config.PlotConfig) string {
	if p.Overlay {
		return p.TargetID
	}
	return p.ID
}

func (c *Chart) rectByID(id string) (image.Rectangle, bool) {
	for i := range c.frame.rects {
		if c.frame.rects[i].ID == id {
			return c.frame.rects[i].Rect, true
		}
	}
	return image.Rectangle{}, false
}

func (c *Chart) plotIDAt(pos f32.Point) string {
	pt := pos.Round()
	for i := range c.frame.rects {
		if !c.frame.rects[i].Overlay && pt.In(c.frame.rects[i].Rect) {
			return c.frame.rects[i].ID
		}
	}
	return ""
}

// mainProjector builds the anchor projector of the main plot for the
// current frame geometry.
func (c *Chart) mainProjector() *drawings.Projector {
	main := c.mainPlot()
	if main == nil {
		return nil
	}
	proj, ok := c.frame.projections[config.MainPlotID]
	if !ok {
		return nil
	}
	return drawings.NewProjector(main.Data, proj)
}

// computeFrameGeometry recomputes layout rectangles, price ranges and
// projections after input handling. Ranges are solved once per non-overlay
// plot and shared with its overlays.
func (c *Chart) computeFrameGeometry(totalPxSize image.Point, metricDp func(unit.Dp) int) {
	c.frame.totalPxSize = totalPxSize
	if c.frame.nextTextSizePx.X > c.frame.textSizePx.X {
		c.frame.textSizePx.X = c.frame.nextTextSizePx.X
	}
	if c.frame.nextTextSizePx.Y > c.frame.textSizePx.Y {
		c.frame.textSizePx.Y = c.frame.nextTextSizePx.Y
	}
	c.frame.nextTextSizePx = image.Point{}
	c.frame.layoutFrame = plotlayout.Frame{
		Canvas:         totalPxSize,
		YAxisWidth:     c.frame.textSizePx.X + metricDp(c.Theme.YAxisPadding),
		XAxisHeight:    max(metricDp(c.Theme.XAxisHeight), c.frame.textSizePx.Y+metricDp(c.Theme.TextMargin.Y)),
		SplitterHeight: metricDp(c.Theme.SplitterHeight),
	}
	c.frame.rects = plotlayout.Layout(c.frame.layoutFrame, c.plots)

	visible := c.view.VisibleSlice()
	startIndex := c.view.StartIndex()
	visibleCount := c.view.VisibleCount()

	clear(c.frame.ranges)
	for i := range c.plots {
		p := &c.plots[i]
		if p.Overlay {
			continue
		}
		slice := visibleSliceOf(p.Data, startIndex, visibleCount)
		if p.ID == config.MainPlotID {
			slice = visible
		}
		c.frame.ranges[p.ID] = solvePriceRange(p.Type, slice, c.VerticalScale(p.ID))
	}

	clear(c.frame.projections)
	for i := range c.plots {
		p := &c.plots[i]
		rect, ok := c.rectByID(p.ID)
		if !ok {
			continue
		}
		r := c.frame.ranges[rangePlotID(p)]
		c.frame.projections[p.ID] = viewport.NewProjection(startIndex, visibleCount, rect, r.Min, r.Max)
	}
}

// visibleSliceOf applies the viewport window to a secondary data array,
// which may be shorter than the main one.
func visibleSliceOf(data []chartval.Bar, startIndex, visibleCount int) []chartval.Bar {
	if startIndex >= len(data) {
		return nil
	}
	end := startIndex + visibleCount
	if end > len(data) {
		end = len(data)
	}
	return data[startIndex:end]
}
