// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package widgets

import (
	"image"
	"image/color"

	"gioui.org/layout"
	"gioui.org/unit"
)

type DpPoint struct {
	X unit.Dp
	Y unit.Dp
}

func (p *DpPoint) Dp(gtx layout.Context) image.Point {
	return image.Point{
		X: gtx.Dp(p.X),
		Y: gtx.Dp(p.Y),
	}
}

// PlotTheme holds all colors and metrics of a chart.
type PlotTheme struct {
	Background              color.NRGBA
	ChartAreaBackground     color.NRGBA
	BorderColor             color.NRGBA
	GridColor               color.NRGBA
	TextColor               color.NRGBA
	CandleUp                color.NRGBA
	CandleDown              color.NRGBA
	CandleBorderColor       color.NRGBA
	BorderColorUseBodyColor bool
	LineColor               color.NRGBA
	CrosshairColor          color.NRGBA
	OverlayTextColor        color.NRGBA
	PositiveColor           color.NRGBA
	NegativeColor           color.NRGBA
	VolumeColor             color.NRGBA
	DrawingColor            color.NRGBA
	ControlPointColor       color.NRGBA

	AxesFontSize         int
	TitleFontSize        int
	TextMargin           DpPoint
	XAxisHeight          unit.Dp
	YAxisPadding         unit.Dp
	SplitterHeight       unit.Dp
	CrosshairDashPattern []float32
	DrawingDashPattern   []float32
}

func NewDarkPlotTheme() *PlotTheme {
	return &PlotTheme{
		Background:              color.NRGBA{R: 20, G: 20, B: 24, A: 255},
		ChartAreaBackground:     color.NRGBA{R: 26, G: 26, B: 32, A: 255},
		BorderColor:             color.NRGBA{R: 70, G: 70, B: 80, A: 255},
		GridColor:               color.NRGBA{R: 60, G: 60, B: 60, A: 255},
		TextColor:               color.NRGBA{R: 220, G: 220, B: 220, A: 255},
		CandleUp:                color.NRGBA{R: 0, G: 200, B: 100, A: 255},
		CandleDown:              color.NRGBA{R: 230, G: 60, B: 60, A: 255},
		CandleBorderColor:       color.NRGBA{R: 200, G: 200, B: 200, A: 255},
		BorderColorUseBodyColor: true,
		LineColor:               color.NRGBA{R: 80, G: 160, B: 255, A: 255},
		CrosshairColor:          color.NRGBA{R: 180, G: 180, B: 180, A: 255},
		OverlayTextColor:        color.NRGBA{R: 240, G: 240, B: 240, A: 255},
		PositiveColor:           color.NRGBA{R: 0, G: 200, B: 100, A: 255},
		NegativeColor:           color.NRGBA{R: 230, G: 60, B: 60, A: 255},
		VolumeColor:             color.NRGBA{R: 100, G: 100, B: 160, A: 255},
		DrawingColor:            color.NRGBA{R: 255, G: 200, B: 40, A: 255},
		ControlPointColor:       color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		AxesFontSize:            14,
		TitleFontSize:           16,
		TextMargin:              DpPoint{X: 7, Y: 7},
		XAxisHeight:             24,
		YAxisPadding:            8,
		SplitterHeight:          6,
		CrosshairDashPattern:    []float32{4, 4},
		DrawingDashPattern:      []float32{6, 6},
	}
}

func NewLightPlotTheme() *PlotTheme {
	return &PlotTheme{
		Background:              color.NRGBA{R: 250, G: 250, B: 250, A: 255},
		ChartAreaBackground:     color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		BorderColor:             color.NRGBA{R: 200, G: 200, B: 200, A: 255},
		GridColor:               color.NRGBA{R: 230, G: 230, B: 230, A: 255},
		TextColor:               color.NRGBA{R: 40, G: 40, B: 40, A: 255},
		CandleUp:                color.NRGBA{R: 0, G: 160, B: 80, A: 255},
		CandleDown:              color.NRGBA{R: 210, G: 40, B: 40, A: 255},
		CandleBorderColor:       color.NRGBA{R: 60, G: 60, B: 60, A: 255},
		BorderColorUseBodyColor: false,
		LineColor:               color.NRGBA{R: 40, G: 110, B: 220, A: 255},
		CrosshairColor:          color.NRGBA{R: 90, G: 90, B: 90, A: 255},
		OverlayTextColor:        color.NRGBA{R: 30, G: 30, B: 30, A: 255},
		PositiveColor:           color.NRGBA{R: 0, G: 160, B: 80, A: 255},
		NegativeColor:           color.NRGBA{R: 210, G: 40, B: 40, A: 255},
		VolumeColor:             color.NRGBA{R: 140, G: 140, B: 190, A: 255},
		DrawingColor:            color.NRGBA{R: 200, G: 140, B: 0, A: 255},
		ControlPointColor:       color.NRGBA{R: 0, G: 0, B: 0, A: 255},
		AxesFontSize:            14,
		TitleFontSize:           16,
		TextMargin:              DpPoint{X: 7, Y: 7},
		XAxisHeight:             24,
		YAxisPadding:            8,
		SplitterHeight:          6,
		CrosshairDashPattern:    []float32{4, 4},
		DrawingDashPattern:      []float32{6, 6},
	}
}

// ParseHexColor parses "#rgb", "#rrggbb" or "#rrggbbaa". The fallback is
// returned for empty or malformed input.
func ParseHexColor(s string, fallback color.NRGBA) color.NRGBA {
	if len(s) == 0 || s[0] != '#' {
		return fallback
	}
	hexVal := func(c byte) (uint8, bool) {
		switch {
		case c >= '0' && c <= '9':
			return c - '0', true
		case c >= 'a' && c <= 'f':
			return c - 'a' + 10, true
		case c >= 'A' && c <= 'F':
			return c - 'A' + 10, true
		}
		return 0, false
	}
	digits := make([]uint8, 0, 8)
	for i := 1; i < len(s); i++ {
		v, ok := hexVal(s[i])
		if !ok {
			return fallback
		}
		digits = append(digits, v)
	}
	switch len(digits) {
	case 3:
		return color.NRGBA{R: digits[0] * 17, G: digits[1] * 17, B: digits[2] * 17, A: 255}
	case 6:
		return color.NRGBA{R: digits[0]<<4 | digits[1], G: digits[2]<<4 | digits[3], B: digits[4]<<4 | digits[5], A: 255}
	case 8:
		return color.NRGBA{R: digits[0]<<4 | digits[1], G: digits[2]<<4 | digits[3], B: digits[4]<<4 | digits[5], A: digits[6]<<4 | digits[7]}
	}
	return fallback
}

// GetCandleColors returns body and border colors for a candle direction.
func (th *PlotTheme) GetCandleColors(isGreenCandle bool) (candleColor, borderColor color.NRGBA) {
	if isGreenCandle {
		candleColor = th.CandleUp
	} else {
		candleColor = th.CandleDown
	}
	if th.BorderColorUseBodyColor {
		borderColor = candleColor
	} else {
		borderColor = th.CandleBorderColor
	}
	return
}
