// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chartviz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockchart/chartval"
	"stockchart/config"
	"stockchart/drawings"
	"stockchart/indcache"
	"stockchart/indcore"
)

func testBars(n int) []chartval.Bar {
	bars := make([]chartval.Bar, n)
	price := 100.0
	for i := range bars {
		if i%3 == 0 {
			price += 2
		} else {
			price -= 1
		}
		bars[i] = chartval.Bar{
			Time:   int64(i * 86400),
			Open:   price - 1,
			High:   price + 2,
			Low:    price - 2,
			Close:  price,
			Volume: 1000,
		}
	}
	return bars
}

func testOptions(n int) config.ChartOptions {
	options := config.NewChartOptions()
	options.Plots[0].Data = testBars(n)
	options.Plots[1].Data = options.Plots[0].Data
	options.Plots = append(options.Plots, config.PlotConfig{
		ID:       "sma20",
		Type:     config.PlotLine,
		Overlay:  true,
		TargetID: config.MainPlotID,
		Indicator: &config.IndicatorRef{
			ID:       "sma20",
			Name:     IndicatorSMA,
			Settings: map[string]float64{"period": 20},
		},
	})
	return options
}

func TestNewRejectsInvalidPlots(t *testing.T) {
	options := config.NewChartOptions()
	options.Plots = []config.PlotConfig{{ID: "volume", Type: config.PlotVolume, HeightRatio: 1}}

	_, err := New(options, nil)
	assert.Error(t, err)
}

func TestNewComputesIndicatorSeries(t *testing.T) {
	v, err := New(testOptions(60), nil)
	require.NoError(t, err)

	var sma *config.PlotConfig
	for i := range v.chart.Plots() {
		if v.chart.Plots()[i].ID == "sma20" {
			sma = &v.chart.Plots()[i]
		}
	}
	require.NotNil(t, sma)
	require.Len(t, sma.Data, 60)

	// Warm-up emits nil, afterwards the streaming SMA matches a direct run.
	ref := indcore.NewSMA(20)
	bars := testBars(60)
	for i := range bars {
		want, ok := ref.Update(bars[i].Close, false)
		if !ok {
			assert.Nil(t, sma.Data[i].Value, "bar %d", i)
			continue
		}
		require.NotNil(t, sma.Data[i].Value, "bar %d", i)
		assert.InDelta(t, want, *sma.Data[i].Value, 1e-9)
	}
}

func TestApplyBarUpdateSamePeriodMatchesReplay(t *testing.T) {
	bars := testBars(40)

	// Stream: 39 bars, then a new bar revised twice in place.
	streamed, err := New(testOptionsWith(bars[:39]), nil)
	require.NoError(t, err)
	newBar := bars[39]
	newBar.Close = 90
	streamed.ApplyBarUpdate(newBar, false)
	newBar.Close = 95
	streamed.ApplyBarUpdate(newBar, true)
	newBar.Close = bars[39].Close
	streamed.ApplyBarUpdate(newBar, true)

	// Replay: all 40 bars at once.
	replayed, err := New(testOptionsWith(bars), nil)
	require.NoError(t, err)

	streamedSMA := plotData(streamed, "sma20")
	replayedSMA := plotData(replayed, "sma20")
	require.Len(t, streamedSMA, len(replayedSMA))
	last := len(replayedSMA) - 1
	require.NotNil(t, streamedSMA[last].Value)
	require.NotNil(t, replayedSMA[last].Value)
	assert.InDelta(t, *replayedSMA[last].Value, *streamedSMA[last].Value, 1e-9)
}

func testOptionsWith(bars []chartval.Bar) config.ChartOptions {
	options := testOptions(0)
	options.Plots[0].Data = bars
	options.Plots[1].Data = bars
	return options
}

func plotData(v *ChartView, id string) []chartval.Bar {
	for i := range v.chart.Plots() {
		if v.chart.Plots()[i].ID == id {
			return v.chart.Plots()[i].Data
		}
	}
	return nil
}

func TestCachedStateSkipsReplayForHostSuppliedSeries(t *testing.T) {
	bars := testBars(60)
	cache := indcache.NewMemoryStore()

	// First view computes the series and saves its state snapshot.
	first, err := New(testOptionsWith(bars), cache)
	require.NoError(t, err)
	computed := plotData(first, "sma20")

	// Second view supplies the derived series itself; a marker value shows
	// whether the engine kept it instead of recomputing.
	marker := 42.0
	supplied := make([]chartval.Bar, len(computed))
	for i := range supplied {
		supplied[i] = chartval.Bar{Time: computed[i].Time, Value: &marker}
	}
	options := testOptionsWith(bars)
	options.Plots[2].Data = supplied

	second, err := New(options, cache)
	require.NoError(t, err)
	require.NotNil(t, plotData(second, "sma20")[0].Value)
	assert.Equal(t, marker, *plotData(second, "sma20")[0].Value)

	// The restored state continues streaming exactly where it left off.
	next := bars[len(bars)-1]
	next.Time += 86400
	next.Close += 1
	first.ApplyBarUpdate(next, false)
	second.ApplyBarUpdate(next, false)
	firstSMA := plotData(first, "sma20")
	secondSMA := plotData(second, "sma20")
	require.NotNil(t, firstSMA[len(firstSMA)-1].Value)
	require.NotNil(t, secondSMA[len(secondSMA)-1].Value)
	assert.InDelta(t, *firstSMA[len(firstSMA)-1].Value, *secondSMA[len(secondSMA)-1].Value, 1e-9)
}

func TestUpdateStockDataResetsViewportAndDrawings(t *testing.T) {
	v, err := New(testOptions(200), nil)
	require.NoError(t, err)
	v.chart.Viewport().Scroll(-50)
	require.NoError(t, v.ImportDrawings(`[{"type":"line","points":[{"time":0,"price":1},{"time":86400,"price":2}]}]`))
	require.Len(t, v.chart.Drawings().List(), 1)

	require.NoError(t, v.UpdateStockData(testOptions(100).Plots))

	assert.Empty(t, v.chart.Drawings().List())
	assert.Equal(t, 100, v.chart.Viewport().Len())
	// Viewport shows the most recent bars again.
	expectedStart := 100 - v.chart.Viewport().VisibleCount() + v.chart.Viewport().RightPadding()
	assert.Equal(t, expectedStart, v.chart.Viewport().StartIndex())
}

func TestDrawingsRoundTripThroughView(t *testing.T) {
	v, err := New(testOptions(50), nil)
	require.NoError(t, err)
	text := `[{"type":"fib-retracement","points":[{"time":86400,"price":100},{"time":864000,"price":120}],"style":{"strokeColor":"#ff0000"}}]`
	require.NoError(t, v.ImportDrawings(text))

	exported, err := v.ExportDrawings()
	require.NoError(t, err)
	list, err := drawings.Import(exported)
	require.NoError(t, err)
	assert.Equal(t, v.chart.Drawings().List(), list)
}

func TestApplyThemeIdempotent(t *testing.T) {
	v, err := New(testOptions(50), nil)
	require.NoError(t, err)

	v.ApplyTheme("light", nil)
	first := v.chart.Theme
	v.ApplyTheme("light", nil)

	assert.Equal(t, first, v.chart.Theme)
}

func TestCenterOnDateUsesMilliseconds(t *testing.T) {
	v, err := New(testOptions(200), nil)
	require.NoError(t, err)

	v.CenterOnDate(100*86400*1000, false)

	visible := v.chart.Viewport().VisibleCount()
	assert.Equal(t, 100-visible/2, v.chart.Viewport().StartIndex())
}

func TestSetDrawingToolValidation(t *testing.T) {
	v, err := New(testOptions(50), nil)
	require.NoError(t, err)

	assert.NoError(t, v.SetDrawingTool("fib-time-zones"))
	assert.Equal(t, drawings.KindFibTimeZones, v.chart.Drawings().Tool())
	assert.Error(t, v.SetDrawingTool("circle"))
	assert.NoError(t, v.SetDrawingTool(""))
	assert.Equal(t, drawings.Kind(""), v.chart.Drawings().Tool())
}
