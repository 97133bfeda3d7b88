// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package plotlayout

import (
	"image"
	"testing"

	"stockchart/config"

	"github.com/stretchr/testify/assert"
)

func testFrame() Frame {
	return Frame{
		Canvas:         image.Pt(860, 636),
		YAxisWidth:     60,
		XAxisHeight:    30,
		SplitterHeight: 6,
	}
}

func testPlots() []config.PlotConfig {
	return []config.PlotConfig{
		{ID: "main", Type: config.PlotCandlestick, HeightRatio: 3},
		{ID: "sma", Type: config.PlotLine, Overlay: true, TargetID: "main"},
		{ID: "volume", Type: config.PlotVolume, HeightRatio: 1},
	}
}

func TestLayoutStacksByRatio(t *testing.T) {
	rects := Layout(testFrame(), testPlots())

	// usable height: 636 - 30 - 6 = 600, split 450/150
	assert.Equal(t, image.Rect(0, 0, 800, 450), rects[0].Rect)
	assert.Equal(t, image.Rect(0, 456, 800, 606), rects[2].Rect)
}

func TestLayoutSplitterBetweenAdjacentPlots(t *testing.T) {
	rects := Layout(testFrame(), testPlots())

	assert.True(t, rects[0].HasSplitter)
	assert.Equal(t, image.Rect(0, 450, 800, 456), rects[0].Splitter)
	assert.False(t, rects[2].HasSplitter)
}

func TestLayoutOverlayCopiesTargetRect(t *testing.T) {
	rects := Layout(testFrame(), testPlots())

	assert.True(t, rects[1].Overlay)
	assert.Equal(t, rects[0].Rect, rects[1].Rect)
}

func TestLayoutZeroCanvasSaturates(t *testing.T) {
	frame := testFrame()
	frame.Canvas = image.Pt(0, 0)

	rects := Layout(frame, testPlots())

	for _, r := range rects {
		assert.LessOrEqual(t, r.Rect.Dx(), 0)
	}
}

func TestTransferRatioRespectsFloor(t *testing.T) {
	upper, lower := TransferRatio(3, 1, 5)
	assert.InDelta(t, 3.6, upper, 1e-9)
	assert.InDelta(t, 0.4, lower, 1e-9)

	upper, lower = TransferRatio(3, 1, -5)
	assert.InDelta(t, 0.4, upper, 1e-9)
	assert.InDelta(t, 3.6, lower, 1e-9)

	upper, lower = TransferRatio(3, 1, 0.5)
	assert.InDelta(t, 3.5, upper, 1e-9)
	assert.InDelta(t, 0.5, lower, 1e-9)
}

func TestRatioPerPixel(t *testing.T) {
	perPx := RatioPerPixel(testFrame(), testPlots())
	assert.InDelta(t, 4.0/600.0, perPx, 1e-9)
}
