// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePlotsDefaultSet(t *testing.T) {
	assert.NoError(t, ValidatePlots(NewMainPlotConfig()))
}

func TestValidatePlotsRequiresMain(t *testing.T) {
	plots := []PlotConfig{
		{ID: "volume", Type: PlotVolume, HeightRatio: 1},
	}
	assert.Error(t, ValidatePlots(plots))
}

func TestValidatePlotsRejectsDuplicateIds(t *testing.T) {
	plots := NewMainPlotConfig()
	plots = append(plots, PlotConfig{ID: MainPlotID, Type: PlotLine, HeightRatio: 1})
	assert.Error(t, ValidatePlots(plots))
}

func TestValidatePlotsRejectsNonPositiveRatio(t *testing.T) {
	plots := []PlotConfig{
		{ID: MainPlotID, Type: PlotCandlestick, HeightRatio: 0},
	}
	assert.Error(t, ValidatePlots(plots))
}

func TestValidatePlotsOverlayTarget(t *testing.T) {
	plots := NewMainPlotConfig()
	plots = append(plots, PlotConfig{ID: "ema", Type: PlotLine, Overlay: true, TargetID: MainPlotID})
	assert.NoError(t, ValidatePlots(plots))

	plots[len(plots)-1].TargetID = "nonsense"
	assert.Error(t, ValidatePlots(plots))

	// An overlay must not target another overlay.
	plots = append(plots[:len(plots)-1],
		PlotConfig{ID: "a", Type: PlotLine, Overlay: true, TargetID: MainPlotID},
		PlotConfig{ID: "b", Type: PlotLine, Overlay: true, TargetID: "a"},
	)
	assert.Error(t, ValidatePlots(plots))
}

func TestChartOptionsSanitize(t *testing.T) {
	var o ChartOptions
	o.sanitize()
	assert.Equal(t, DefaultInitialVisibleCandles, o.InitialVisibleCandles)
	assert.NotEmpty(t, o.Plots)
	assert.Equal(t, "dark", o.Theme)
	assert.True(t, o.DrawingToolbarVisible())
}
