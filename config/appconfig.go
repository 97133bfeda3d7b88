// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package config

import (
	"image"

	"github.com/barkimedes/go-deepcopy"
)

type AppConfig struct {
	WindowConfig []WindowConfig
}

type WindowConfig struct {
	Size  image.Point `yaml:",omitempty"`
	Chart ChartOptions
}

func NewAppConfig() AppConfig {
	return AppConfig{
		WindowConfig: []WindowConfig{NewWindowConfig()},
	}
}

func NewWindowConfig() WindowConfig {
	return WindowConfig{
		Chart: NewChartOptions(),
	}
}

func (a *AppConfig) Sanitize() {
	if len(a.WindowConfig) == 0 {
		a.WindowConfig = []WindowConfig{NewWindowConfig()}
	}
	for i := range a.WindowConfig {
		a.WindowConfig[i].Chart.sanitize()
	}
}

func (a *AppConfig) deepCopy() AppConfig {
	c, err := deepcopy.Anything(a)
	if err != nil {
		panic(err)
	}
	return *c.(*AppConfig)
}
