// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chartplot

import (
	"image"
	"math"
	"time"

	"gioui.org/f32"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"

	"stockchart/config"
	"stockchart/drawings"
	"stockchart/plotlayout"
)

const (
	wheelZoomStep      = 1.25
	verticalWheelStep  = 1.1
	verticalDragFactor = 0.005
	pinchSmoothing     = 0.3
	pinchDeadBand      = 0.002
	longPressDelay     = time.Second
	longPressCancelPx  = 10
	doubleClickDelay   = 400 * time.Millisecond
)

// pinchTracker follows two touch pointers and converts their distance
// changes into zoom factors. The gesture axis is fixed when the second
// finger lands: fingers separated mostly vertically scale the price axis,
// otherwise the time axis. The distance is exponentially smoothed and
// small changes inside a dead band are dropped to avoid jitter.
type pinchTracker struct {
	ids          [2]pointer.ID
	pos          [2]f32.Point
	set          [2]bool
	active       bool
	vertical     bool
	initialDist  float64
	smoothedDist float64
}

func (p *pinchTracker) press(id pointer.ID, pos f32.Point) {
	for i := range p.set {
		if !p.set[i] {
			p.ids[i] = id
			p.pos[i] = pos
			p.set[i] = true
			break
		}
	}
	if p.set[0] && p.set[1] && !p.active {
		p.active = true
		p.vertical = math.Abs(float64(p.pos[0].Y-p.pos[1].Y)) > math.Abs(float64(p.pos[0].X-p.pos[1].X))
		p.initialDist = p.dist()
		p.smoothedDist = p.initialDist
	}
}

func (p *pinchTracker) release(id pointer.ID) {
	for i := range p.set {
		if p.set[i] && p.ids[i] == id {
			p.set[i] = false
		}
	}
	if !p.set[0] || !p.set[1] {
		p.active = false
	}
}

func (p *pinchTracker) dist() float64 {
	dx := float64(p.pos[0].X - p.pos[1].X)
	dy := float64(p.pos[0].Y - p.pos[1].Y)
	return math.Hypot(dx, dy)
}

// move updates one pointer and returns the zoom factor and pinch center,
// or ok=false while inactive or inside the dead band.
func (p *pinchTracker) move(id pointer.ID, pos f32.Point) (factor float64, center f32.Point, ok bool) {
	found := false
	for i := range p.set {
		if p.set[i] && p.ids[i] == id {
			p.pos[i] = pos
			found = true
		}
	}
	if !found || !p.active || p.initialDist <= 0 {
		return 0, f32.Point{}, false
	}
	next := p.smoothedDist + pinchSmoothing*(p.dist()-p.smoothedDist)
	if math.Abs(next-p.smoothedDist) < pinchDeadBand*p.initialDist {
		return 0, f32.Point{}, false
	}
	factor = next / p.smoothedDist
	p.smoothedDist = next
	center = f32.Pt((p.pos[0].X+p.pos[1].X)/2, (p.pos[0].Y+p.pos[1].Y)/2)
	return factor, center, true
}

func (c *Chart) handleInput(gtx layout.Context) {
	for i := range c.frame.rects {
		r := &c.frame.rects[i]
		if r.Overlay {
			continue
		}
		c.handlePlotEvents(gtx, r.ID)
		c.handleYAxisEvents(gtx, r.ID)
		if r.HasSplitter {
			c.handleSplitterEvents(gtx, r.ID)
		}
	}
	c.handleKeyEvents(gtx)
	c.checkLongPress(gtx)
}

func (c *Chart) handlePlotEvents(gtx layout.Context, plotID string) {
	for _, gtxEvent := range gtx.Events(ChartTag{a: EventAreaPlot, c: c, plotID: plotID}) {
		e, ok := gtxEvent.(pointer.Event)
		if !ok {
			continue
		}
		c.requestFocus = true
		switch e.Kind {
		case pointer.Press:
			c.onPlotPress(gtx, plotID, e)
		case pointer.Drag:
			c.onPlotDrag(gtx, plotID, e)
		case pointer.Move:
			if e.Source == pointer.Mouse {
				c.crosshair.visible = true
				c.crosshair.pos = e.Position
				c.crosshair.plotID = plotID
			}
		case pointer.Release, pointer.Cancel:
			c.onPlotRelease(e)
		case pointer.Scroll:
			c.onPlotScroll(gtx, plotID, e)
		}
	}
}

func (c *Chart) onPlotPress(gtx layout.Context, plotID string, e pointer.Event) {
	c.engine.UseTouchHitRadius(e.Source == pointer.Touch)
	if e.Source == pointer.Touch {
		c.pinch.press(e.PointerID, e.Position)
		if c.pinch.active {
			// Second finger down stops any pending long press.
			c.pressMoved = true
			return
		}
	}
	if plotID == config.MainPlotID {
		proj := c.mainProjector()
		if proj != nil && c.engine.PointerDown(e.Position, proj) {
			return
		}
	}
	c.pointerPressPos = e.Position
	c.dragPlotID = plotID
	c.pressAt = gtx.Now
	c.pressPlotID = plotID
	c.pressIsTouch = e.Source == pointer.Touch
	c.pressMoved = false
	if c.pressIsTouch {
		op.InvalidateOp{At: gtx.Now.Add(longPressDelay)}.Add(gtx.Ops)
	}
}

func (c *Chart) onPlotDrag(gtx layout.Context, plotID string, e pointer.Event) {
	if e.Source == pointer.Touch {
		if factor, center, ok := c.pinch.move(e.PointerID, e.Position); ok {
			if !c.engine.Frozen() {
				if c.pinch.vertical {
					id := c.plotIDAt(center)
					if id == "" {
						id = plotID
					}
					c.setVerticalScale(id, c.VerticalScale(id)*factor)
				} else {
					c.zoomAt(center, factor)
				}
			}
			return
		}
	}
	if c.engine.State() != drawings.StateIdle {
		proj := c.mainProjector()
		if proj != nil {
			c.engine.PointerMove(e.Position, proj)
		}
		return
	}
	moved := math.Hypot(
		float64(e.Position.X-c.pointerPressPos.X),
		float64(e.Position.Y-c.pointerPressPos.Y),
	)
	if moved > longPressCancelPx {
		c.pressMoved = true
	}
	if c.crosshair.sticky {
		c.crosshair.pos = e.Position
		c.crosshair.plotID = plotID
		return
	}
	if c.engine.Frozen() {
		return
	}
	// Pan by whole bars, carrying the fractional remainder in press pos.
	proj, ok := c.frame.projections[plotID]
	if !ok || proj.BarWidth() <= 0 {
		return
	}
	deltaBars := int(float64(c.pointerPressPos.X-e.Position.X) / proj.BarWidth())
	if deltaBars != 0 {
		c.view.Scroll(deltaBars)
		c.pointerPressPos.X -= float32(float64(deltaBars) * proj.BarWidth())
		c.pointerPressPos.Y = e.Position.Y
	}
}

func (c *Chart) onPlotRelease(e pointer.Event) {
	if e.Source == pointer.Touch {
		c.pinch.release(e.PointerID)
		if !c.pinch.set[0] && !c.pinch.set[1] && c.crosshair.sticky {
			// Crosshair stays engaged until all fingers lift.
			c.crosshair.sticky = false
			c.crosshair.visible = false
		}
	}
	c.engine.PointerUp()
	c.pressAt = time.Time{}
}

func (c *Chart) onPlotScroll(gtx layout.Context, plotID string, e pointer.Event) {
	if e.Modifiers.Contain(key.ModCtrl) {
		// Modifier wheel adjusts the vertical price scale of this plot.
		s := c.VerticalScale(plotID)
		if e.Scroll.Y < 0 {
			s *= verticalWheelStep
		} else {
			s /= verticalWheelStep
		}
		c.setVerticalScale(plotID, s)
		return
	}
	if c.engine.Frozen() {
		return
	}
	factor := wheelZoomStep
	if e.Scroll.Y > 0 {
		factor = 1 / wheelZoomStep
	}
	c.zoomAt(e.Position, factor)
}

// zoomAt zooms the viewport keeping the bar under the given pixel position
// stationary.
func (c *Chart) zoomAt(pos f32.Point, factor float64) {
	plotID := c.plotIDAt(pos)
	if plotID == "" {
		plotID = config.MainPlotID
	}
	proj, ok := c.frame.projections[plotID]
	if !ok {
		return
	}
	anchorIndex := proj.IndexAt(float64(pos.X)) - c.view.StartIndex()
	if anchorIndex < 0 {
		anchorIndex = 0
	}
	if anchorIndex >= c.view.VisibleCount() {
		anchorIndex = c.view.VisibleCount() - 1
	}
	c.view.Zoom(factor, anchorIndex)
}

func (c *Chart) handleYAxisEvents(gtx layout.Context, plotID string) {
	for _, gtxEvent := range gtx.Events(ChartTag{a: EventAreaYaxis, c: c, plotID: plotID}) {
		e, ok := gtxEvent.(pointer.Event)
		if !ok {
			continue
		}
		c.requestFocus = true
		switch e.Kind {
		case pointer.Press:
			if c.lastYAxisClickID == plotID && gtx.Now.Sub(c.lastYAxisClick) < doubleClickDelay {
				c.setVerticalScale(plotID, 1)
			}
			c.lastYAxisClick = gtx.Now
			c.lastYAxisClickID = plotID
			c.pointerPressPos = e.Position
		case pointer.Drag:
			deltaY := float64(e.Position.Y - c.pointerPressPos.Y)
			c.setVerticalScale(plotID, c.VerticalScale(plotID)*math.Exp(deltaY*verticalDragFactor))
			c.pointerPressPos = e.Position
		}
	}
}

func (c *Chart) handleSplitterEvents(gtx layout.Context, plotID string) {
	for _, gtxEvent := range gtx.Events(ChartTag{a: EventAreaSplitter, c: c, plotID: plotID}) {
		e, ok := gtxEvent.(pointer.Event)
		if !ok {
			continue
		}
		switch e.Kind {
		case pointer.Press:
			c.pointerPressPos = e.Position
			c.splitterDragged = true
		case pointer.Drag:
			if !c.splitterDragged {
				continue
			}
			deltaPx := float64(e.Position.Y - c.pointerPressPos.Y)
			perPx := plotlayout.RatioPerPixel(c.frame.layoutFrame, c.plots)
			c.transferRatio(plotID, deltaPx*perPx)
			c.pointerPressPos = e.Position
		case pointer.Release, pointer.Cancel:
			c.splitterDragged = false
		}
	}
}

// transferRatio moves height between the plot above the splitter and the
// next non-overlay plot below it.
func (c *Chart) transferRatio(upperID string, delta float64) {
	upper := -1
	for i := range c.plots {
		if c.plots[i].Overlay {
			continue
		}
		if c.plots[i].ID == upperID {
			upper = i
			continue
		}
		if upper >= 0 {
			newUpper, newLower := plotlayout.TransferRatio(c.plots[upper].HeightRatio, c.plots[i].HeightRatio, delta)
			c.plots[upper].HeightRatio = newUpper
			c.plots[i].HeightRatio = newLower
			return
		}
	}
}

func (c *Chart) handleKeyEvents(gtx layout.Context) {
	for _, gtxEvent := range gtx.Events(ChartTag{a: EventAreaPlot, c: c}) {
		e, ok := gtxEvent.(key.Event)
		if !ok || e.State != key.Press {
			continue
		}
		switch e.Name {
		case key.NameDeleteForward, key.NameDeleteBackward:
			c.engine.DeleteSelected()
		}
	}
}

// checkLongPress engages the sticky touch crosshair after a one second
// hold without significant movement.
func (c *Chart) checkLongPress(gtx layout.Context) {
	if !c.pressIsTouch || c.pressAt.IsZero() || c.pressMoved || c.crosshair.sticky {
		return
	}
	if gtx.Now.Sub(c.pressAt) < longPressDelay {
		return
	}
	c.crosshair.sticky = true
	c.crosshair.visible = true
	c.crosshair.pos = c.pointerPressPos
	c.crosshair.plotID = c.pressPlotID
	if c.Buzzer != nil {
		c.Buzzer()
	}
}

func (c *Chart) registerInputOps(gtx layout.Context) {
	ops := gtx.Ops
	keyTag := ChartTag{a: EventAreaPlot, c: c}
	key.InputOp{
		Tag:  keyTag,
		Keys: key.NameDeleteForward + "|" + key.NameDeleteBackward,
	}.Add(ops)
	if c.requestFocus {
		key.FocusOp{Tag: keyTag}.Add(ops)
		c.requestFocus = false
	}

	for i := range c.frame.rects {
		r := &c.frame.rects[i]
		if r.Overlay {
			continue
		}
		plotArea := clip.Rect(r.Rect).Push(ops)
		pointer.InputOp{
			Tag:   ChartTag{a: EventAreaPlot, c: c, plotID: r.ID},
			Kinds: pointer.Press | pointer.Release | pointer.Drag | pointer.Move | pointer.Scroll,
			ScrollBounds: image.Rectangle{
				Min: image.Point{X: 0, Y: math.MinInt},
				Max: image.Point{X: 0, Y: math.MaxInt},
			},
		}.Add(ops)
		plotArea.Pop()

		yAxisArea := clip.Rect(image.Rectangle{
			Min: image.Point{X: r.Rect.Max.X, Y: r.Rect.Min.Y},
			Max: image.Point{X: c.frame.totalPxSize.X, Y: r.Rect.Max.Y},
		}).Push(ops)
		pointer.InputOp{
			Tag:   ChartTag{a: EventAreaYaxis, c: c, plotID: r.ID},
			Kinds: pointer.Press | pointer.Release | pointer.Drag,
		}.Add(ops)
		pointer.CursorRowResize.Add(ops)
		yAxisArea.Pop()

		if r.HasSplitter {
			splitterArea := clip.Rect(r.Splitter).Push(ops)
			pointer.InputOp{
				Tag:   ChartTag{a: EventAreaSplitter, c: c, plotID: r.ID},
				Kinds: pointer.Press | pointer.Release | pointer.Drag,
			}.Add(ops)
			pointer.CursorRowResize.Add(ops)
			splitterArea.Pop()
		}
	}
}
