// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package config

import (
	"fmt"

	"stockchart/chartval"
)

type PlotType string

const (
	PlotCandlestick PlotType = "candlestick"
	PlotLine        PlotType = "line"
	PlotVolume      PlotType = "volume"
	PlotHistogram   PlotType = "histogram"
	PlotSignal      PlotType = "signal"
)

// MainPlotID is the id of the mandatory primary price plot.
const MainPlotID = "main"

// PlotStyle configures per-plot colors and line width. Empty colors fall
// back to the theme.
type PlotStyle struct {
	LineColor     string  `yaml:"lineColor,omitempty" json:"lineColor,omitempty"`
	LineWidth     float64 `yaml:"lineWidth,omitempty" json:"lineWidth,omitempty"`
	PositiveColor string  `yaml:"positiveColor,omitempty" json:"positiveColor,omitempty"`
	NegativeColor string  `yaml:"negativeColor,omitempty" json:"negativeColor,omitempty"`
	FillColor     string  `yaml:"fillColor,omitempty" json:"fillColor,omitempty"`
}

// IndicatorRef records the provenance of a derived plot so it can be
// recomputed when the backing data is replaced.
type IndicatorRef struct {
	ID       string             `yaml:"id" json:"id"`
	Name     string             `yaml:"name,omitempty" json:"name,omitempty"`
	Settings map[string]float64 `yaml:"settings,omitempty" json:"settings,omitempty"`
}

// PlotConfig describes one sub-plot of a chart.
type PlotConfig struct {
	ID          string         `yaml:"id" json:"id"`
	Type        PlotType       `yaml:"type" json:"type"`
	Data        []chartval.Bar `yaml:"-" json:"-"`
	HeightRatio float64        `yaml:"heightRatio,omitempty" json:"heightRatio,omitempty"`
	Overlay     bool           `yaml:"overlay,omitempty" json:"overlay,omitempty"`
	TargetID    string         `yaml:"targetId,omitempty" json:"targetId,omitempty"`
	Style       PlotStyle      `yaml:"style,omitempty" json:"style,omitempty"`
	KeyLabel    string         `yaml:"keyLabel,omitempty" json:"keyLabel,omitempty"`
	Indicator   *IndicatorRef  `yaml:"indicator,omitempty" json:"indicator,omitempty"`
}

// NewMainPlotConfig returns a valid default plot set.
func NewMainPlotConfig() []PlotConfig {
	return []PlotConfig{
		{ID: MainPlotID, Type: PlotCandlestick, HeightRatio: 3},
		{ID: "volume", Type: PlotVolume, HeightRatio: 1},
	}
}

// ValidatePlots checks the structural invariants of a plot set: exactly one
// non-overlay plot with id "main", positive height ratios on non-overlay
// plots, unique ids, and overlay plots referencing existing non-overlay
// targets.
func ValidatePlots(plots []PlotConfig) error {
	ids := make(map[string]bool, len(plots))
	nonOverlay := make(map[string]bool, len(plots))
	var mainCount int
	for i := range plots {
		p := &plots[i]
		if p.ID == "" {
			return fmt.Errorf("plot %d: missing id", i)
		}
		if ids[p.ID] {
			return fmt.Errorf("plot %q: duplicate id", p.ID)
		}
		ids[p.ID] = true
		if p.Overlay {
			continue
		}
		nonOverlay[p.ID] = true
		if p.ID == MainPlotID {
			mainCount++
		}
		if p.HeightRatio <= 0 {
			return fmt.Errorf("plot %q: heightRatio must be positive", p.ID)
		}
	}
	if mainCount != 1 {
		return fmt.Errorf("plot set requires exactly one non-overlay plot with id %q", MainPlotID)
	}
	for i := range plots {
		p := &plots[i]
		if p.Overlay && !nonOverlay[p.TargetID] {
			return fmt.Errorf("overlay plot %q: unknown target %q", p.ID, p.TargetID)
		}
	}
	return nil
}
