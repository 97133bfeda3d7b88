// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package drawings

import (
	"image"
	"image/color"
	"strconv"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"gioui.org/x/stroke"

	"stockchart/widgets"
)

const controlPointSize = 4

// Render paints all committed drawings, the in-progress preview and the
// control points of the selected drawing on top of the plot content.
func (e *Engine) Render(gtx layout.Context, th *material.Theme, theme *widgets.PlotTheme, proj *Projector) {
	defer clip.Rect(proj.Projection().Rect()).Push(gtx.Ops).Pop()
	for i := range e.list {
		renderDrawing(&e.list[i], gtx, th, theme, proj)
		if i == e.selected {
			renderControlPoints(&e.list[i], gtx, theme, proj)
		}
	}
	if e.current != nil && len(e.current.Points) >= 2 {
		renderDrawing(e.current, gtx, th, theme, proj)
		renderControlPoints(e.current, gtx, theme, proj)
	}
}

func renderDrawing(d *Drawing, gtx layout.Context, th *material.Theme, theme *widgets.PlotTheme, proj *Projector) {
	if len(d.Points) < 2 {
		return
	}
	strokeColor := widgets.ParseHexColor(d.Style.StrokeColor, theme.DrawingColor)
	lineWidth := float32(gtx.Dp(unit.Dp(1)))
	if d.Style.LineWidth > 0 {
		lineWidth = float32(gtx.Dp(unit.Dp(d.Style.LineWidth)))
	}
	rect := proj.Projection().Rect()
	p0 := proj.Pixel(d.Points[0])
	p1 := proj.Pixel(d.Points[1])

	switch d.Kind {
	case KindLine:
		strokeClippedLine(gtx, p0, p1, rect, strokeColor, lineWidth, nil)
	case KindHorizontalLine:
		a := f32.Pt(float32(rect.Min.X), p0.Y)
		b := f32.Pt(float32(rect.Max.X), p0.Y)
		strokeClippedLine(gtx, a, b, rect, strokeColor, lineWidth, nil)
	case KindVerticalLine:
		a := f32.Pt(p0.X, float32(rect.Min.Y))
		b := f32.Pt(p0.X, float32(rect.Max.Y))
		strokeClippedLine(gtx, a, b, rect, strokeColor, lineWidth, nil)
	case KindRect:
		renderRect(gtx, p0, p1, d, theme, strokeColor, lineWidth)
	case KindFibRetracement:
		renderFibRetracement(gtx, th, theme, proj, d, strokeColor, lineWidth)
	case KindFibTimeZones:
		renderFibTimeZones(gtx, th, theme, proj, d, strokeColor, lineWidth)
	}
}

func strokeClippedLine(gtx layout.Context, a, b f32.Point, rect image.Rectangle, c color.NRGBA, width float32, dashes []float32) {
	a, b, visible := ClipLine(a, b, rect)
	if !visible {
		return
	}
	var path stroke.Path
	path.Segments = []stroke.Segment{
		stroke.MoveTo(a),
		stroke.LineTo(b),
	}
	paint.FillShape(
		gtx.Ops,
		c,
		stroke.Stroke{Path: path, Width: width, Dashes: stroke.Dashes{Dashes: dashes}}.Op(gtx.Ops),
	)
}

func renderRect(gtx layout.Context, p0, p1 f32.Point, d *Drawing, theme *widgets.PlotTheme, strokeColor color.NRGBA, lineWidth float32) {
	bounds := image.Rect(int(p0.X), int(p0.Y), int(p1.X), int(p1.Y)).Canon()
	fillColor := widgets.ParseHexColor(d.Style.FillColor, color.NRGBA{R: strokeColor.R, G: strokeColor.G, B: strokeColor.B, A: 40})
	paint.FillShape(gtx.Ops, fillColor, clip.Rect(bounds).Op())
	var path stroke.Path
	path.Segments = []stroke.Segment{
		stroke.MoveTo(f32.Pt(float32(bounds.Min.X), float32(bounds.Min.Y))),
		stroke.LineTo(f32.Pt(float32(bounds.Max.X), float32(bounds.Min.Y))),
		stroke.LineTo(f32.Pt(float32(bounds.Max.X), float32(bounds.Max.Y))),
		stroke.LineTo(f32.Pt(float32(bounds.Min.X), float32(bounds.Max.Y))),
		stroke.LineTo(f32.Pt(float32(bounds.Min.X), float32(bounds.Min.Y))),
	}
	paint.FillShape(
		gtx.Ops,
		strokeColor,
		stroke.Stroke{Path: path, Width: lineWidth}.Op(gtx.Ops),
	)
}

func renderFibRetracement(gtx layout.Context, th *material.Theme, theme *widgets.PlotTheme, proj *Projector, d *Drawing, strokeColor color.NRGBA, lineWidth float32) {
	rect := proj.Projection().Rect()
	price0 := d.Points[0].Price
	price1 := d.Points[1].Price
	priceRange := price1 - price0
	if priceRange < 0 {
		priceRange = -priceRange
	}
	direction := 1.0
	if price1 < price0 {
		direction = -1
	}
	for _, ratio := range FibRetracementLevels {
		price := price0 + direction*priceRange*ratio
		y := float32(proj.Projection().YPos(price))
		a := f32.Pt(float32(rect.Min.X), y)
		b := f32.Pt(float32(rect.Max.X), y)
		strokeClippedLine(gtx, a, b, rect, strokeColor, lineWidth, theme.DrawingDashPattern)

		call, textSize := recordOverlayText(FibLevelLabel(ratio), strokeColor, theme.AxesFontSize, gtx, th)
		textArea := op.Offset(image.Point{
			X: rect.Min.X + gtx.Dp(theme.TextMargin.X),
			Y: int(y) - textSize.Y,
		}).Push(gtx.Ops)
		call.Add(gtx.Ops)
		textArea.Pop()
	}
}

func renderFibTimeZones(gtx layout.Context, th *material.Theme, theme *widgets.PlotTheme, proj *Projector, d *Drawing, strokeColor color.NRGBA, lineWidth float32) {
	rect := proj.Projection().Rect()
	i0 := proj.IndexForTime(d.Points[0].Time)
	i1 := proj.IndexForTime(d.Points[1].Time)
	baseBarCount := i1 - i0
	if baseBarCount < 0 {
		baseBarCount = -baseBarCount
	}
	if baseBarCount < 1 {
		baseBarCount = 1
	}
	direction := 1
	if i1 < i0 {
		direction = -1
	}
	for _, f := range FibSequence(12) {
		index := i0 + direction*f*baseBarCount
		x := proj.XForIndex(index)
		if x < float32(rect.Min.X)-1 || x > float32(rect.Max.X)+1 {
			continue
		}
		a := f32.Pt(x, float32(rect.Min.Y))
		b := f32.Pt(x, float32(rect.Max.Y))
		strokeClippedLine(gtx, a, b, rect, strokeColor, lineWidth, theme.DrawingDashPattern)

		label := strconv.Itoa(f) + " (" + strconv.Itoa(f*baseBarCount) + ")"
		call, textSize := recordOverlayText(label, strokeColor, theme.AxesFontSize, gtx, th)
		textArea := op.Offset(image.Point{
			X: int(x) + gtx.Dp(theme.TextMargin.X),
			Y: rect.Max.Y - textSize.Y - gtx.Dp(theme.TextMargin.Y),
		}).Push(gtx.Ops)
		call.Add(gtx.Ops)
		textArea.Pop()
	}
}

func renderControlPoints(d *Drawing, gtx layout.Context, theme *widgets.PlotTheme, proj *Projector) {
	size := gtx.Dp(controlPointSize)
	for i := range d.Points {
		p := proj.Pixel(d.Points[i])
		bounds := image.Rect(int(p.X)-size, int(p.Y)-size, int(p.X)+size, int(p.Y)+size)
		paint.FillShape(gtx.Ops, theme.ControlPointColor, clip.Rect(bounds).Op())
	}
}

func recordOverlayText(labelText string, c color.NRGBA, fontSize int, gtx layout.Context, th *material.Theme) (op.CallOp, image.Point) {
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
