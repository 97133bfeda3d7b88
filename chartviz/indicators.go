// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chartviz

import (
	"fmt"

	"stockchart/chartval"
	"stockchart/config"
	"stockchart/indcore"
)

// Indicator names accepted in a plot's indicator reference.
const (
	IndicatorSMA       = "sma"
	IndicatorEMA       = "ema"
	IndicatorRSI       = "rsi"
	IndicatorMACD      = "macd"
	IndicatorBollinger = "bollinger"
	IndicatorDeMarker  = "demarker"
)

// Bollinger band selector in the settings map.
const (
	bandUpper = 1
	bandLower = -1
)

// indicatorRunner feeds bars through one streaming indicator state and
// yields the plotted value, nil while warming up.
type indicatorRunner struct {
	update   func(bar chartval.Bar, samePeriod bool) *float64
	snapshot func() (string, error)
}

func settingOr(settings map[string]float64, name string, fallback float64) float64 {
	if v, ok := settings[name]; ok {
		return v
	}
	return fallback
}

// newIndicatorRunner builds a fresh streaming state for an indicator
// reference.
func newIndicatorRunner(ref *config.IndicatorRef, plotType config.PlotType) (*indicatorRunner, error) {
	return buildIndicatorRunner(ref, plotType, "")
}

// restoreIndicatorRunner rebuilds a runner from a serialized state snapshot
// so streaming continues exactly where the snapshot left off.
func restoreIndicatorRunner(ref *config.IndicatorRef, plotType config.PlotType, snapshot string) (*indicatorRunner, error) {
	return buildIndicatorRunner(ref, plotType, snapshot)
}

// buildIndicatorRunner wires the update and snapshot closures for one
// indicator. The plot type selects the MACD output: histogram plots get the
// histogram, anything else the MACD line.
func buildIndicatorRunner(ref *config.IndicatorRef, plotType config.PlotType, snapshot string) (*indicatorRunner, error) {
	switch ref.Name {
	case IndicatorSMA:
		s := indcore.NewSMA(int(settingOr(ref.Settings, "period", 20)))
		if snapshot != "" {
			var err error
			if s, err = indcore.DeserializeSMA(snapshot); err != nil {
				return nil, err
			}
		}
		return &indicatorRunner{
			update: func(bar chartval.Bar, samePeriod bool) *float64 {
				return validValue(s.Update(bar.Close, samePeriod))
			},
			snapshot: func() (string, error) { return indcore.Serialize(s) },
		}, nil
	case IndicatorEMA:
		s := indcore.NewEMA(int(settingOr(ref.Settings, "period", 20)))
		if snapshot != "" {
			var err error
			if s, err = indcore.DeserializeEMA(snapshot); err != nil {
				return nil, err
			}
		}
		return &indicatorRunner{
			update: func(bar chartval.Bar, samePeriod bool) *float64 {
				return validValue(s.Update(bar.Close, samePeriod))
			},
			snapshot: func() (string, error) { return indcore.Serialize(s) },
		}, nil
	case IndicatorRSI:
		s := indcore.NewRSI(int(settingOr(ref.Settings, "period", 14)))
		if snapshot != "" {
			var err error
			if s, err = indcore.DeserializeRSI(snapshot); err != nil {
				return nil, err
			}
		}
		return &indicatorRunner{
			update: func(bar chartval.Bar, samePeriod bool) *float64 {
				return validValue(s.Update(bar.Close, samePeriod))
			},
			snapshot: func() (string, error) { return indcore.Serialize(s) },
		}, nil
	case IndicatorMACD:
		s := indcore.NewMACD(
			int(settingOr(ref.Settings, "fast", 12)),
			int(settingOr(ref.Settings, "slow", 26)),
			int(settingOr(ref.Settings, "signal", 9)),
		)
		if snapshot != "" {
			var err error
			if s, err = indcore.DeserializeMACD(snapshot); err != nil {
				return nil, err
			}
		}
		histogram := plotType == config.PlotHistogram
		return &indicatorRunner{
			update: func(bar chartval.Bar, samePeriod bool) *float64 {
				v, ok := s.Update(bar.Close, samePeriod)
				if !ok {
					return nil
				}
				if histogram {
					if !v.SignalValid {
						return nil
					}
					h := v.Histogram
					return &h
				}
				m := v.MACD
				return &m
			},
			snapshot: func() (string, error) { return indcore.Serialize(s) },
		}, nil
	case IndicatorBollinger:
		s := indcore.NewBollinger(
			int(settingOr(ref.Settings, "period", 20)),
			settingOr(ref.Settings, "multiplier", 2),
		)
		if snapshot != "" {
			var err error
			if s, err = indcore.DeserializeBollinger(snapshot); err != nil {
				return nil, err
			}
		}
		band := int(settingOr(ref.Settings, "band", 0))
		return &indicatorRunner{
			update: func(bar chartval.Bar, samePeriod bool) *float64 {
				v, ok := s.Update(bar.Close, samePeriod)
				if !ok {
					return nil
				}
				var out float64
				switch band {
				case bandUpper:
					out = v.Upper
				case bandLower:
					out = v.Lower
				default:
					out = v.Middle
				}
				return &out
			},
			snapshot: func() (string, error) { return indcore.Serialize(s) },
		}, nil
	case IndicatorDeMarker:
		s := indcore.NewDeMarker(int(settingOr(ref.Settings, "period", 14)))
		if snapshot != "" {
			var err error
			if s, err = indcore.DeserializeDeMarker(snapshot); err != nil {
				return nil, err
			}
		}
		return &indicatorRunner{
			update: func(bar chartval.Bar, samePeriod bool) *float64 {
				return validValue(s.Update(bar.High, bar.Low, samePeriod))
			},
			snapshot: func() (string, error) { return indcore.Serialize(s) },
		}, nil
	}
	return nil, fmt.Errorf("unknown indicator %q", ref.Name)
}

func validValue(v float64, ok bool) *float64 {
	if !ok {
		return nil
	}
	return &v
}

// computeIndicatorSeries replays the source bars through a fresh indicator
// state and returns the derived series plus the runner for incremental
// continuation.
func computeIndicatorSeries(ref *config.IndicatorRef, plotType config.PlotType, source []chartval.Bar) ([]chartval.Bar, *indicatorRunner, error) {
	runner, err := newIndicatorRunner(ref, plotType)
	if err != nil {
		return nil, nil, err
	}
	out := make([]chartval.Bar, len(source))
	for i := range source {
		out[i] = chartval.Bar{
			Time:  source[i].Time,
			Value: runner.update(source[i], false),
		}
	}
	return out, runner, nil
}
