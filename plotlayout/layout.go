// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

// Package plotlayout stacks ratio-weighted sub-plots inside a canvas. The
// layout is a pure function of the canvas size, the plot set and the axis
// gutter sizes, and is recomputed from scratch every frame.
package plotlayout

import (
	"image"

	"stockchart/chartval"
	"stockchart/config"
)

// Frame describes the available canvas and gutter sizes in pixels. The
// y-axis gutter width is dynamic; the renderer measures the widest price
// label each frame and feeds it back here.
type Frame struct {
	Canvas         image.Point
	YAxisWidth     int
	XAxisHeight    int
	SplitterHeight int
}

// PlotRect is the computed placement of one plot, in config order.
type PlotRect struct {
	ID          string
	Rect        image.Rectangle
	Splitter    image.Rectangle
	HasSplitter bool
	Overlay     bool
}

// MinRatioShare is the smallest share either side of a splitter may keep
// of the pair's combined height ratio.
const MinRatioShare = 0.1

// Layout computes plot rectangles for all plots. Non-overlay plots are
// stacked top to bottom with splitter strips between adjacent pairs;
// overlay plots copy the rectangle of their target. Zero or negative
// canvas dimensions saturate to an empty layout.
func Layout(frame Frame, plots []config.PlotConfig) []PlotRect {
	usableWidth := max(0, frame.Canvas.X-frame.YAxisWidth)
	var ratioSum float64
	var numSplitters int
	for i := range plots {
		if plots[i].Overlay {
			continue
		}
		ratioSum += plots[i].HeightRatio
		numSplitters++
	}
	numSplitters = max(0, numSplitters-1)
	usableHeight := max(0, frame.Canvas.Y-frame.XAxisHeight-numSplitters*frame.SplitterHeight)

	out := make([]PlotRect, len(plots))
	byID := make(map[string]image.Rectangle, len(plots))
	y := 0.0
	remainingSplitters := numSplitters
	for i := range plots {
		p := &plots[i]
		out[i].ID = p.ID
		out[i].Overlay = p.Overlay
		if p.Overlay {
			continue
		}
		height := 0.0
		if ratioSum > chartval.NearZero {
			height = float64(usableHeight) * p.HeightRatio / ratioSum
		}
		rect := image.Rect(0, int(y), usableWidth, int(y+height))
		out[i].Rect = rect
		byID[p.ID] = rect
		y += height
		if remainingSplitters > 0 {
			out[i].Splitter = image.Rect(0, rect.Max.Y, usableWidth, rect.Max.Y+frame.SplitterHeight)
			out[i].HasSplitter = true
			y += float64(frame.SplitterHeight)
			remainingSplitters--
		}
	}
	for i := range plots {
		if plots[i].Overlay {
			out[i].Rect = byID[plots[i].TargetID]
		}
	}
	return out
}

// TransferRatio moves height ratio between the two sides of a splitter.
// delta is in ratio units, positive growing the upper plot. Neither side
// may shrink below MinRatioShare of the combined ratio.
func TransferRatio(upper, lower float64, delta float64) (float64, float64) {
	sum := upper + lower
	minRatio := MinRatioShare * sum
	newUpper := chartval.Clamp(upper+delta, minRatio, sum-minRatio)
	return newUpper, sum - newUpper
}

// RatioPerPixel converts a pixel drag distance into ratio units for the
// given layout.
func RatioPerPixel(frame Frame, plots []config.PlotConfig) float64 {
	var ratioSum float64
	var numPlots int
	for i := range plots {
		if !plots[i].Overlay {
			ratioSum += plots[i].HeightRatio
			numPlots++
		}
	}
	usableHeight := frame.Canvas.Y - frame.XAxisHeight - max(0, numPlots-1)*frame.SplitterHeight
	if usableHeight <= 0 || ratioSum <= chartval.NearZero {
		return 0
	}
	return ratioSum / float64(usableHeight)
}
