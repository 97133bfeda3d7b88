// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chartplot

import (
	"math"

	"stockchart/chartval"
	"stockchart/config"
)

// Vertical scale limits applied by y-axis dragging.
const (
	MinVerticalScale = 0.1
	MaxVerticalScale = 10.0
)

const rangePadding = 0.1

type priceRange struct {
	Min float64
	Max float64
}

// solvePriceRange computes the y bounds of one plot from its visible bars.
// Volume plots are anchored at zero, value plots pad the observed extremes,
// candlesticks span low to high. The per-plot vertical scale widens or
// compresses the result around its midpoint.
func solvePriceRange(plotType config.PlotType, visible []chartval.Bar, verticalScale float64) priceRange {
	var r priceRange
	switch plotType {
	case config.PlotVolume:
		r = volumeRange(visible)
	case config.PlotLine, config.PlotHistogram, config.PlotSignal:
		r = valueRange(visible, plotType == config.PlotHistogram)
	default:
		r = candleRange(visible)
	}
	return applyVerticalScale(r, verticalScale)
}

func volumeRange(visible []chartval.Bar) priceRange {
	maxVol := 0.0
	for i := range visible {
		if visible[i].Volume > maxVol {
			maxVol = visible[i].Volume
		}
	}
	if maxVol == 0 {
		maxVol = 1
	}
	return priceRange{Min: 0, Max: maxVol}
}

func valueRange(visible []chartval.Bar, includeZero bool) priceRange {
	minVal := math.Inf(1)
	maxVal := math.Inf(-1)
	for i := range visible {
		v := visible[i].LineValue()
		if visible[i].Signal != nil {
			v = visible[i].Signal.Value
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if minVal > maxVal {
		return priceRange{Min: 0, Max: 1}
	}
	if includeZero {
		// Histogram bars grow from the zero line.
		minVal = math.Min(minVal, 0)
		maxVal = math.Max(maxVal, 0)
	}
	pad := (maxVal - minVal) * rangePadding
	return priceRange{Min: minVal - pad, Max: maxVal + pad}
}

func candleRange(visible []chartval.Bar) priceRange {
	minVal := math.Inf(1)
	maxVal := math.Inf(-1)
	for i := range visible {
		minVal = math.Min(minVal, visible[i].Low)
		maxVal = math.Max(maxVal, visible[i].High)
	}
	if minVal > maxVal {
		return priceRange{Min: 0, Max: 1}
	}
	pad := (maxVal - minVal) * rangePadding
	return priceRange{Min: minVal - pad, Max: maxVal + pad}
}

func applyVerticalScale(r priceRange, scale float64) priceRange {
	scale = chartval.Clamp(scale, MinVerticalScale, MaxVerticalScale)
	if scale == 1 {
		return r
	}
	mid := (r.Min + r.Max) / 2
	half := (r.Max - r.Min) / 2
	return priceRange{Min: mid - half/scale, Max: mid + half/scale}
}
