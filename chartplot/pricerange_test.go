// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chartplot

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"stockchart/chartval"
	"stockchart/config"
)

func floatPtr(v float64) *float64 {
	return &v
}

func TestVolumeRangeAnchoredAtZero(t *testing.T) {
	bars := []chartval.Bar{
		{Volume: 100}, {Volume: 350}, {Volume: 200},
	}

	r := solvePriceRange(config.PlotVolume, bars, 1)

	assert.Equal(t, 0.0, r.Min)
	assert.Equal(t, 350.0, r.Max)
}

func TestVolumeRangeAllZeroFallsBackToOne(t *testing.T) {
	r := solvePriceRange(config.PlotVolume, []chartval.Bar{{}, {}}, 1)

	assert.Equal(t, 0.0, r.Min)
	assert.Equal(t, 1.0, r.Max)
}

func TestLineRangeSkipsNonFiniteAndPads(t *testing.T) {
	bars := []chartval.Bar{
		{Value: floatPtr(10)},
		{Value: floatPtr(math.NaN())},
		{Value: floatPtr(math.Inf(1))},
		{Value: floatPtr(30)},
	}

	r := solvePriceRange(config.PlotLine, bars, 1)

	assert.InDelta(t, 8, r.Min, 1e-9)
	assert.InDelta(t, 32, r.Max, 1e-9)
}

func TestCandleRangeSpansLowHigh(t *testing.T) {
	bars := []chartval.Bar{
		{Open: 10, High: 20, Low: 8, Close: 15},
		{Open: 15, High: 28, Low: 12, Close: 25},
	}

	r := solvePriceRange(config.PlotCandlestick, bars, 1)

	// 8..28 padded by 10% of the span.
	assert.InDelta(t, 6, r.Min, 1e-9)
	assert.InDelta(t, 30, r.Max, 1e-9)
}

func TestHistogramRangeIncludesZero(t *testing.T) {
	bars := []chartval.Bar{
		{Value: floatPtr(5)},
		{Value: floatPtr(12)},
	}

	r := solvePriceRange(config.PlotHistogram, bars, 1)

	assert.LessOrEqual(t, r.Min, 0.0)
	assert.Greater(t, r.Max, 12.0)
}

func TestVerticalScaleCompressesAroundMidpoint(t *testing.T) {
	bars := []chartval.Bar{
		{Open: 100, High: 120, Low: 80, Close: 110},
	}

	base := solvePriceRange(config.PlotCandlestick, bars, 1)
	scaled := solvePriceRange(config.PlotCandlestick, bars, 2)

	baseMid := (base.Min + base.Max) / 2
	scaledMid := (scaled.Min + scaled.Max) / 2
	assert.InDelta(t, baseMid, scaledMid, 1e-9)
	assert.InDelta(t, (base.Max-base.Min)/2, scaled.Max-scaled.Min, 1e-9)
}

func TestVerticalScaleClamped(t *testing.T) {
	bars := []chartval.Bar{{Open: 100, High: 120, Low: 80, Close: 110}}

	tiny := solvePriceRange(config.PlotCandlestick, bars, 0.001)
	limit := solvePriceRange(config.PlotCandlestick, bars, MinVerticalScale)

	assert.Equal(t, limit, tiny)
}

func TestEmptyVisibleSliceYieldsUnitRange(t *testing.T) {
	r := solvePriceRange(config.PlotCandlestick, nil, 1)
	assert.Equal(t, priceRange{Min: 0, Max: 1}, r)

	r = solvePriceRange(config.PlotLine, nil, 1)
	assert.Equal(t, priceRange{Min: 0, Max: 1}, r)
}
