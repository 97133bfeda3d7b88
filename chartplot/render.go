// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chartplot

import (
	"image"
	"image/color"
	"math"
	"time"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"

	// The builtin gio stroke has a lot of issues, one being that horizontal and vertical lines
	// may have different thickness, even if the same width is specified.
	// We use the "x/stroke" extension instead, it works like a charm.
	"gioui.org/x/stroke"

	"stockchart/chartval"
	"stockchart/config"
	"stockchart/viewport"
	"stockchart/widgets"
)

// Layout handles pending input, recomputes frame geometry and paints one
// full frame.
func (c *Chart) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	c.handleInput(gtx)
	c.computeFrameGeometry(gtx.Constraints.Max, gtx.Dp)

	paint.FillShape(gtx.Ops, c.Theme.Background, clip.Rect(image.Rectangle{Max: c.frame.totalPxSize}).Op())

	if c.view.Len() == 0 {
		c.paintNoData(gtx, th)
	} else {
		for i := range c.plots {
			c.paintPlot(gtx, th, &c.plots[i])
		}
		c.paintXAxisText(gtx, th)
		c.paintDrawings(gtx, th)
		c.paintReferenceLine(gtx)
		c.paintCrosshair(gtx, th)
	}
	c.paintTitle(gtx, th)
	c.registerInputOps(gtx)
	return layout.Dimensions{Size: c.frame.totalPxSize}
}

func (c *Chart) paintNoData(gtx layout.Context, th *material.Theme) {
	rect, ok := c.rectByID(config.MainPlotID)
	if !ok {
		return
	}
	paint.FillShape(gtx.Ops, c.Theme.ChartAreaBackground, clip.Rect(rect).Op())
	call, textSize := recordLabelText("No data", c.Theme.TextColor, c.Theme.TitleFontSize, gtx, th)
	center := rect.Min.Add(rect.Size().Div(2)).Sub(textSize.Div(2))
	stack := op.Offset(center).Push(gtx.Ops)
	call.Add(gtx.Ops)
	stack.Pop()
}

func (c *Chart) paintPlot(gtx layout.Context, th *material.Theme, p *config.PlotConfig) {
	proj, ok := c.frame.projections[p.ID]
	if !ok {
		return
	}
	rect := proj.Rect()
	if !p.Overlay {
		paint.FillShape(gtx.Ops, c.Theme.ChartAreaBackground, clip.Rect(rect).Op())
		c.paintPlotBorder(gtx, rect)
		if r, ok := c.splitterByID(p.ID); ok {
			paint.FillShape(gtx.Ops, c.Theme.BorderColor, clip.Rect(r).Op())
		}
		c.paintGridAndYLabels(gtx, th, p, proj)
	}

	area := clip.Rect(rect).Push(gtx.Ops)
	switch p.Type {
	case config.PlotCandlestick:
		c.paintCandles(gtx, p, proj)
	case config.PlotLine:
		c.paintLine(gtx, p, proj)
	case config.PlotVolume:
		c.paintVolume(gtx, p, proj)
	case config.PlotHistogram:
		c.paintHistogram(gtx, p, proj)
	case config.PlotSignal:
		c.paintSignals(gtx, p, proj)
	}
	area.Pop()
}

func (c *Chart) splitterByID(id string) (image.Rectangle, bool) {
	for i := range c.frame.rects {
		if c.frame.rects[i].ID == id && c.frame.rects[i].HasSplitter {
			return c.frame.rects[i].Splitter, true
		}
	}
	return image.Rectangle{}, false
}

func (c *Chart) paintPlotBorder(gtx layout.Context, rect image.Rectangle) {
	var path stroke.Path
	path.Segments = []stroke.Segment{
		stroke.MoveTo(f32.Pt(float32(rect.Max.X), float32(rect.Min.Y))),
		stroke.LineTo(f32.Pt(float32(rect.Max.X), float32(rect.Max.Y))),
		stroke.MoveTo(f32.Pt(float32(rect.Min.X), float32(rect.Max.Y))),
		stroke.LineTo(f32.Pt(float32(rect.Max.X), float32(rect.Max.Y))),
	}
	paint.FillShape(gtx.Ops, c.Theme.BorderColor, stroke.Stroke{Path: path, Width: 1}.Op(gtx.Ops))
}

// niceGridStep rounds a raw step to a 1/2/5 decade multiple.
func niceGridStep(raw float64) float64 {
	if raw <= 0 || math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 1
	}
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	norm := raw / mag
	switch {
	case norm <= 1:
		return mag
	case norm <= 2:
		return 2 * mag
	case norm <= 5:
		return 5 * mag
	}
	return 10 * mag
}

func (c *Chart) paintGridAndYLabels(gtx layout.Context, th *material.Theme, p *config.PlotConfig, proj viewport.Projection) {
	rect := proj.Rect()
	minPrice, maxPrice := proj.PriceRange()
	if maxPrice <= minPrice {
		return
	}
	step := niceGridStep((maxPrice - minPrice) / 5)
	first := math.Ceil(minPrice/step) * step

	var path stroke.Path
	maxTextSizeX := 0
	for v := first; v <= maxPrice; v += step {
		y := float32(proj.YPos(v))
		path.Segments = append(path.Segments,
			stroke.MoveTo(f32.Pt(float32(rect.Min.X), y)),
			stroke.LineTo(f32.Pt(float32(rect.Max.X), y)),
		)
		call, textSize := recordLabelText(chartval.FormatPrice(v), c.Theme.TextColor, c.Theme.AxesFontSize, gtx, th)
		if textSize.X > maxTextSizeX {
			maxTextSizeX = textSize.X
		}
		stack := op.Offset(image.Point{
			X: rect.Max.X + gtx.Dp(c.Theme.TextMargin.X),
			Y: int(y) - textSize.Y/2,
		}).Push(gtx.Ops)
		call.Add(gtx.Ops)
		stack.Pop()
	}
	if maxTextSizeX > c.frame.nextTextSizePx.X {
		c.frame.nextTextSizePx.X = maxTextSizeX
	}
	if len(path.Segments) > 0 {
		area := clip.Rect(rect).Push(gtx.Ops)
		paint.FillShape(gtx.Ops, c.Theme.GridColor, stroke.Stroke{Path: path, Width: 1}.Op(gtx.Ops))
		area.Pop()
	}
}

func (c *Chart) paintCandles(gtx layout.Context, p *config.PlotConfig, proj viewport.Projection) {
	startIndex := c.view.StartIndex()
	visibleCount := c.view.VisibleCount()
	candleWidth, wickWidth, borderWidth := getCandleWidth(proj.BarWidth(), gtx.Dp(2))

	var greenWicks, redWicks []stroke.Segment
	end := min(startIndex+visibleCount, len(p.Data))
	for i := startIndex; i < end; i++ {
		bar := &p.Data[i]
		green := chartval.IsGreenCandle(bar.Open, bar.Close)
		bodyColor, borderColor := c.Theme.GetCandleColors(green)
		xc := float32(proj.XCenter(i))

		wick := []stroke.Segment{
			stroke.MoveTo(f32.Pt(xc, float32(proj.YPos(bar.High)))),
			stroke.LineTo(f32.Pt(xc, float32(proj.YPos(bar.Low)))),
		}
		if green {
			greenWicks = append(greenWicks, wick...)
		} else {
			redWicks = append(redWicks, wick...)
		}

		top := proj.YPos(math.Max(bar.Open, bar.Close))
		bottom := proj.YPos(math.Min(bar.Open, bar.Close))
		body := image.Rect(
			int(xc)-candleWidth/2, int(top),
			int(xc)+candleWidth/2, int(bottom),
		)
		if body.Dy() < 1 {
			body.Max.Y = body.Min.Y + 1
		}
		paint.FillShape(gtx.Ops, bodyColor, clip.Rect(body).Op())
		if borderColor != bodyColor && borderWidth > 0 {
			var border stroke.Path
			border.Segments = []stroke.Segment{
				stroke.MoveTo(f32.Pt(float32(body.Min.X), float32(body.Min.Y))),
				stroke.LineTo(f32.Pt(float32(body.Max.X), float32(body.Min.Y))),
				stroke.LineTo(f32.Pt(float32(body.Max.X), float32(body.Max.Y))),
				stroke.LineTo(f32.Pt(float32(body.Min.X), float32(body.Max.Y))),
				stroke.LineTo(f32.Pt(float32(body.Min.X), float32(body.Min.Y))),
			}
			paint.FillShape(gtx.Ops, borderColor, stroke.Stroke{Path: border, Width: float32(borderWidth)}.Op(gtx.Ops))
		}
	}
	c.strokeSegments(gtx, greenWicks, c.Theme.CandleUp, float32(wickWidth))
	c.strokeSegments(gtx, redWicks, c.Theme.CandleDown, float32(wickWidth))
}

func (c *Chart) strokeSegments(gtx layout.Context, segments []stroke.Segment, col color.NRGBA, width float32) {
	if len(segments) == 0 {
		return
	}
	paint.FillShape(gtx.Ops, col, stroke.Stroke{Path: stroke.Path{Segments: segments}, Width: width}.Op(gtx.Ops))
}

// lineSample returns the plotted value of a bar and whether it belongs to
// the polyline. Null and zero values restart the line.
func lineSample(bar *chartval.Bar) (float64, bool) {
	v := bar.LineValue()
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func (c *Chart) paintLine(gtx layout.Context, p *config.PlotConfig, proj viewport.Projection) {
	startIndex := c.view.StartIndex()
	visibleCount := c.view.VisibleCount()
	lineColor := widgets.ParseHexColor(p.Style.LineColor, c.Theme.LineColor)
	lineWidth := float32(gtx.Dp(unit.Dp(1)))
	if p.Style.LineWidth > 0 {
		lineWidth = float32(gtx.Dp(unit.Dp(p.Style.LineWidth)))
	}

	var segments []stroke.Segment
	penDown := false
	end := min(startIndex+visibleCount, len(p.Data))
	for i := startIndex; i < end; i++ {
		v, ok := lineSample(&p.Data[i])
		if !ok {
			penDown = false
			continue
		}
		pt := f32.Pt(float32(proj.XCenter(i)), float32(proj.YPos(v)))
		if penDown {
			segments = append(segments, stroke.LineTo(pt))
		} else {
			segments = append(segments, stroke.MoveTo(pt))
			penDown = true
		}
	}
	c.strokeSegments(gtx, segments, lineColor, lineWidth)
}

func (c *Chart) paintVolume(gtx layout.Context, p *config.PlotConfig, proj viewport.Projection) {
	startIndex := c.view.StartIndex()
	visibleCount := c.view.VisibleCount()
	rect := proj.Rect()
	candleWidth, _, _ := getCandleWidth(proj.BarWidth(), gtx.Dp(2))
	positiveColor := widgets.ParseHexColor(p.Style.PositiveColor, c.Theme.PositiveColor)
	negativeColor := widgets.ParseHexColor(p.Style.NegativeColor, c.Theme.NegativeColor)

	var greenRects, redRects []image.Rectangle
	end := min(startIndex+visibleCount, len(p.Data))
	for i := startIndex; i < end; i++ {
		bar := &p.Data[i]
		if bar.Volume <= 0 {
			continue
		}
		xc := int(proj.XCenter(i))
		r := image.Rect(xc-candleWidth/2, int(proj.YPos(bar.Volume)), xc+candleWidth/2, rect.Max.Y)
		if chartval.IsGreenCandle(bar.Open, bar.Close) {
			greenRects = append(greenRects, r)
		} else {
			redRects = append(redRects, r)
		}
	}
	var green clip.Path
	green.Begin(gtx.Ops)
	addRects(&green, greenRects)
	paint.FillShape(gtx.Ops, positiveColor, clip.Outline{Path: green.End()}.Op())
	var red clip.Path
	red.Begin(gtx.Ops)
	addRects(&red, redRects)
	paint.FillShape(gtx.Ops, negativeColor, clip.Outline{Path: red.End()}.Op())
}

// addRects appends axis-aligned rectangles to one clip path so each color
// group fills with a single batched shape.
func addRects(p *clip.Path, rects []image.Rectangle) {
	for _, r := range rects {
		p.MoveTo(f32.Pt(float32(r.Min.X), float32(r.Min.Y)))
		p.LineTo(f32.Pt(float32(r.Max.X), float32(r.Min.Y)))
		p.LineTo(f32.Pt(float32(r.Max.X), float32(r.Max.Y)))
		p.LineTo(f32.Pt(float32(r.Min.X), float32(r.Max.Y)))
		p.Close()
	}
}

func (c *Chart) paintHistogram(gtx layout.Context, p *config.PlotConfig, proj viewport.Projection) {
	startIndex := c.view.StartIndex()
	visibleCount := c.view.VisibleCount()
	candleWidth, _, _ := getCandleWidth(proj.BarWidth(), gtx.Dp(2))
	positiveColor := widgets.ParseHexColor(p.Style.PositiveColor, c.Theme.PositiveColor)
	negativeColor := widgets.ParseHexColor(p.Style.NegativeColor, c.Theme.NegativeColor)
	zeroY := int(proj.YPos(0))

	var posRects, negRects []image.Rectangle
	end := min(startIndex+visibleCount, len(p.Data))
	for i := startIndex; i < end; i++ {
		bar := &p.Data[i]
		if bar.Value == nil {
			continue
		}
		v := *bar.Value
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		xc := int(proj.XCenter(i))
		r := image.Rect(xc-candleWidth/2, int(proj.YPos(v)), xc+candleWidth/2, zeroY).Canon()
		if v >= 0 {
			posRects = append(posRects, r)
		} else {
			negRects = append(negRects, r)
		}
	}
	var pos clip.Path
	pos.Begin(gtx.Ops)
	addRects(&pos, posRects)
	paint.FillShape(gtx.Ops, positiveColor, clip.Outline{Path: pos.End()}.Op())
	var neg clip.Path
	neg.Begin(gtx.Ops)
	addRects(&neg, negRects)
	paint.FillShape(gtx.Ops, negativeColor, clip.Outline{Path: neg.End()}.Op())
}

func (c *Chart) paintSignals(gtx layout.Context, p *config.PlotConfig, proj viewport.Projection) {
	startIndex := c.view.StartIndex()
	visibleCount := c.view.VisibleCount()
	rect := proj.Rect()
	positiveColor := widgets.ParseHexColor(p.Style.PositiveColor, c.Theme.PositiveColor)
	negativeColor := widgets.ParseHexColor(p.Style.NegativeColor, c.Theme.NegativeColor)

	// Signal blocks fill the bar slot over the full plot height, one
	// batched path per color.
	var posRects, negRects []image.Rectangle
	end := min(startIndex+visibleCount, len(p.Data))
	for i := startIndex; i < end; i++ {
		bar := &p.Data[i]
		if bar.Signal == nil || bar.Signal.Value == 0 {
			continue
		}
		x0 := int(proj.XPos(i))
		x1 := int(proj.XPos(i + 1))
		r := image.Rect(x0, rect.Min.Y, x1, rect.Max.Y)
		if bar.Signal.Value > 0 {
			posRects = append(posRects, r)
		} else {
			negRects = append(negRects, r)
		}
	}
	var pos clip.Path
	pos.Begin(gtx.Ops)
	addRects(&pos, posRects)
	paint.FillShape(gtx.Ops, positiveColor, clip.Outline{Path: pos.End()}.Op())
	var neg clip.Path
	neg.Begin(gtx.Ops)
	addRects(&neg, negRects)
	paint.FillShape(gtx.Ops, negativeColor, clip.Outline{Path: neg.End()}.Op())
}

// xLabelFormat picks a time format matching the data granularity.
func xLabelFormat(data []chartval.Bar) string {
	if len(data) < 2 {
		return "2006-01-02"
	}
	spacing := data[len(data)-1].Time - data[len(data)-2].Time
	switch {
	case spacing >= 28*24*3600:
		return "2006-01"
	case spacing >= 24*3600:
		return "2006-01-02"
	default:
		return "15:04"
	}
}

func (c *Chart) paintXAxisText(gtx layout.Context, th *material.Theme) {
	main := c.mainPlot()
	if main == nil || len(main.Data) == 0 {
		return
	}
	proj, ok := c.frame.projections[config.MainPlotID]
	if !ok {
		return
	}
	format := xLabelFormat(main.Data)
	sample := time.Unix(main.Data[len(main.Data)-1].Time, 0).UTC().Format(format)
	_, sampleSize := recordLabelText(sample, c.Theme.TextColor, c.Theme.AxesFontSize, gtx, th)
	step := adaptiveLabelStep(proj.BarWidth(), sampleSize.X)

	textPosY := c.frame.totalPxSize.Y - c.frame.layoutFrame.XAxisHeight + gtx.Dp(c.Theme.TextMargin.Y)
	maxTextSizeY := 0
	startIndex := c.view.StartIndex()
	end := min(startIndex+c.view.VisibleCount(), len(main.Data))
	first := firstLabelIndex(startIndex, step)
	for i := first; i < end; i += step {
		label := time.Unix(main.Data[i].Time, 0).UTC().Format(format)
		call, textSize := recordLabelText(label, c.Theme.TextColor, c.Theme.AxesFontSize, gtx, th)
		if textSize.Y > maxTextSizeY {
			maxTextSizeY = textSize.Y
		}
		stack := op.Offset(image.Point{
			X: int(proj.XCenter(i)) - textSize.X/2,
			Y: textPosY,
		}).Push(gtx.Ops)
		call.Add(gtx.Ops)
		stack.Pop()
	}
	if maxTextSizeY > c.frame.nextTextSizePx.Y {
		c.frame.nextTextSizePx.Y = maxTextSizeY
	}
}

func (c *Chart) paintTitle(gtx layout.Context, th *material.Theme) {
	titleText := c.Name.Name
	if c.Name.Code != "" {
		if titleText != "" {
			titleText += " · "
		}
		titleText += c.Name.Code
	}
	if titleText == "" {
		return
	}
	margin := c.Theme.TextMargin.Dp(gtx)
	call, textSize := recordLabelText(titleText, c.Theme.OverlayTextColor, c.Theme.TitleFontSize, gtx, th)
	stack := op.Offset(image.Point{X: margin.X, Y: margin.Y}).Push(gtx.Ops)
	call.Add(gtx.Ops)
	stack.Pop()
	if c.Name.MetaString != "" {
		metaCall, _ := recordLabelText(c.Name.MetaString, c.Theme.TextColor, c.Theme.AxesFontSize, gtx, th)
		metaStack := op.Offset(image.Point{X: margin.X, Y: margin.Y + textSize.Y}).Push(gtx.Ops)
		metaCall.Add(gtx.Ops)
		metaStack.Pop()
	}
}

func (c *Chart) paintDrawings(gtx layout.Context, th *material.Theme) {
	proj := c.mainProjector()
	if proj == nil {
		return
	}
	c.engine.Render(gtx, th, c.Theme, proj)
}

// paintReferenceLine marks the bar selected by CenterOnTime.
func (c *Chart) paintReferenceLine(gtx layout.Context) {
	if c.referenceTime == nil {
		return
	}
	proj := c.mainProjector()
	if proj == nil {
		return
	}
	rect := proj.Projection().Rect()
	x := proj.XForIndex(proj.IndexForTime(*c.referenceTime))
	if x < float32(rect.Min.X) || x > float32(rect.Max.X) {
		return
	}
	area := clip.Rect(rect).Push(gtx.Ops)
	var path stroke.Path
	path.Segments = []stroke.Segment{
		stroke.MoveTo(f32.Pt(x, float32(rect.Min.Y))),
		stroke.LineTo(f32.Pt(x, float32(rect.Max.Y))),
	}
	paint.FillShape(
		gtx.Ops,
		c.Theme.CrosshairColor,
		stroke.Stroke{Path: path, Width: float32(gtx.Dp(1)), Dashes: stroke.Dashes{Dashes: c.Theme.CrosshairDashPattern}}.Op(gtx.Ops),
	)
	area.Pop()
}

func (c *Chart) paintCrosshair(gtx layout.Context, th *material.Theme) {
	if !c.crosshair.visible {
		return
	}
	hoverRect, ok := c.rectByID(c.crosshair.plotID)
	if !ok {
		return
	}
	pos := c.crosshair.pos
	dashes := stroke.Dashes{Dashes: c.Theme.CrosshairDashPattern}
	width := float32(gtx.Dp(1))

	// Vertical line across every plot area, horizontal line only in the
	// hovered plot.
	for i := range c.frame.rects {
		r := &c.frame.rects[i]
		if r.Overlay {
			continue
		}
		area := clip.Rect(r.Rect).Push(gtx.Ops)
		var path stroke.Path
		path.Segments = []stroke.Segment{
			stroke.MoveTo(f32.Pt(pos.X, float32(r.Rect.Min.Y))),
			stroke.LineTo(f32.Pt(pos.X, float32(r.Rect.Max.Y))),
		}
		if r.ID == c.crosshair.plotID {
			path.Segments = append(path.Segments,
				stroke.MoveTo(f32.Pt(float32(r.Rect.Min.X), pos.Y)),
				stroke.LineTo(f32.Pt(float32(r.Rect.Max.X), pos.Y)),
			)
		}
		paint.FillShape(gtx.Ops, c.Theme.CrosshairColor, stroke.Stroke{Path: path, Width: width, Dashes: dashes}.Op(gtx.Ops))
		area.Pop()
	}

	c.paintCrosshairOverlay(gtx, th, hoverRect, pos)
}

func (c *Chart) paintCrosshairOverlay(gtx layout.Context, th *material.Theme, hoverRect image.Rectangle, pos f32.Point) {
	main := c.mainPlot()
	mainProj, ok := c.frame.projections[config.MainPlotID]
	if main == nil || !ok || len(main.Data) == 0 {
		return
	}
	index := chartval.Clamp(mainProj.IndexAt(float64(pos.X)), 0, len(main.Data)-1)
	margin := c.Theme.TextMargin.Dp(gtx)

	// Per-plot value read-out on the top right of each plot.
	for i := range c.plots {
		p := &c.plots[i]
		proj, ok := c.frame.projections[p.ID]
		if !ok || index >= len(p.Data) {
			continue
		}
		bar := &p.Data[index]
		var label string
		switch p.Type {
		case config.PlotCandlestick:
			label = "O " + chartval.FormatPrice(bar.Open) +
				"  H " + chartval.FormatPrice(bar.High) +
				"  L " + chartval.FormatPrice(bar.Low) +
				"  C " + chartval.FormatPrice(bar.Close)
		case config.PlotVolume:
			label = "Vol " + chartval.FormatPrice(bar.Volume)
		default:
			if bar.Value == nil {
				continue
			}
			label = p.KeyLabel
			if label != "" {
				label += " "
			}
			label += chartval.FormatPrice(*bar.Value)
		}
		call, textSize := recordLabelText(label, c.Theme.OverlayTextColor, c.Theme.AxesFontSize, gtx, th)
		offsetY := margin.Y
		if p.Overlay {
			// Stack overlay read-outs below the target's.
			offsetY += textSize.Y * overlayDepth(c.plots, i)
		}
		stack := op.Offset(image.Point{
			X: proj.Rect().Max.X - textSize.X - margin.X,
			Y: proj.Rect().Min.Y + offsetY,
		}).Push(gtx.Ops)
		call.Add(gtx.Ops)
		stack.Pop()
	}

	// Current y value next to the axis of the hovered plot.
	if hoverProj, ok := c.frame.projections[c.crosshair.plotID]; ok {
		price := hoverProj.PriceAt(float64(pos.Y))
		call, textSize := recordLabelText(chartval.FormatPrice(price), c.Theme.OverlayTextColor, c.Theme.AxesFontSize, gtx, th)
		stack := op.Offset(image.Point{
			X: hoverRect.Max.X + margin.X,
			Y: int(pos.Y) - textSize.Y/2,
		}).Push(gtx.Ops)
		call.Add(gtx.Ops)
		stack.Pop()
	}

	// Current date below the x axis.
	dateLabel := time.Unix(main.Data[index].Time, 0).UTC().Format("2006-01-02 15:04")
	call, textSize := recordLabelText(dateLabel, c.Theme.OverlayTextColor, c.Theme.AxesFontSize, gtx, th)
	stack := op.Offset(image.Point{
		X: int(pos.X) - textSize.X/2,
		Y: c.frame.totalPxSize.Y - textSize.Y,
	}).Push(gtx.Ops)
	call.Add(gtx.Ops)
	stack.Pop()
}

// overlayDepth counts how many overlays precede plot i on the same target.
func overlayDepth(plots []config.PlotConfig, i int) int {
	depth := 1
	for j := 0; j < i; j++ {
		if plots[j].Overlay && plots[j].TargetID == plots[i].TargetID {
			depth++
		}
	}
	return depth
}

func recordLabelText(labelText string, c color.NRGBA, fontSize int, gtx layout.Context, th *material.Theme) (op.CallOp, image.Point) {
	macro := op.Record(gtx.Ops)
	lbl := material.Label(
		th,
		unit.Sp(fontSize),
		labelText,
	)
	lbl.Color = c
	lbl.Alignment = text.Start
	dims := lbl.Layout(gtx)
	return macro.Stop(), dims.Size
}
