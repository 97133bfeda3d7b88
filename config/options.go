// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package config

import (
	"stockchart/widgets"
)

// DefaultInitialVisibleCandles is the visible bar count of a fresh chart.
const DefaultInitialVisibleCandles = 100

// ChartName labels the top-left info block of a chart.
type ChartName struct {
	Name       string `yaml:"name,omitempty" json:"name,omitempty"`
	Code       string `yaml:"code,omitempty" json:"code,omitempty"`
	MetaString string `yaml:"metaString,omitempty" json:"metaString,omitempty"`
}

// ChartOptions configures one chart instance.
type ChartOptions struct {
	// "light", "dark", or empty when CustomTheme is set.
	Theme                 string             `yaml:"theme,omitempty" json:"theme,omitempty"`
	CustomTheme           *widgets.PlotTheme `yaml:"customTheme,omitempty" json:"customTheme,omitempty"`
	Plots                 []PlotConfig       `yaml:"plots,omitempty" json:"plots,omitempty"`
	InitialVisibleCandles int                `yaml:"initialVisibleCandles,omitempty" json:"initialVisibleCandles,omitempty"`
	ShowDrawingToolbar    *bool              `yaml:"showDrawingToolbar,omitempty" json:"showDrawingToolbar,omitempty"`
	ChartName             ChartName          `yaml:"chartName,omitempty" json:"chartName,omitempty"`
}

func NewChartOptions() ChartOptions {
	return ChartOptions{
		Theme:                 "dark",
		Plots:                 NewMainPlotConfig(),
		InitialVisibleCandles: DefaultInitialVisibleCandles,
	}
}

func (o *ChartOptions) sanitize() {
	if o.InitialVisibleCandles <= 0 {
		o.InitialVisibleCandles = DefaultInitialVisibleCandles
	}
	if len(o.Plots) == 0 {
		o.Plots = NewMainPlotConfig()
	}
	if o.Theme == "" && o.CustomTheme == nil {
		o.Theme = "dark"
	}
}

// DrawingToolbarVisible defaults to true when unset.
func (o *ChartOptions) DrawingToolbarVisible() bool {
	return o.ShowDrawingToolbar == nil || *o.ShowDrawingToolbar
}

// ResolveTheme maps the theme choice to a concrete plot theme.
func (o *ChartOptions) ResolveTheme() *widgets.PlotTheme {
	if o.CustomTheme != nil {
		return o.CustomTheme
	}
	if o.Theme == "light" {
		return widgets.NewLightPlotTheme()
	}
	return widgets.NewDarkPlotTheme()
}
