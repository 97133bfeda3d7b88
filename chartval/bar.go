// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chartval

// Bar is a single OHLCV sample. Time is in seconds since epoch.
// Bars within a series are in ascending time order; the engine never re-sorts.
type Bar struct {
	Time   int64   `json:"time" yaml:"time"`
	Open   float64 `json:"open" yaml:"open"`
	High   float64 `json:"high" yaml:"high"`
	Low    float64 `json:"low" yaml:"low"`
	Close  float64 `json:"close" yaml:"close"`
	Volume float64 `json:"volume,omitempty" yaml:"volume,omitempty"`

	// Derived plots carry a plain value instead of OHLC.
	Value *float64 `json:"value,omitempty" yaml:"value,omitempty"`
	// Signal plots carry a typed marker value.
	Signal *SignalValue `json:"signal,omitempty" yaml:"signal,omitempty"`

	// Optional auxiliary data attached to main-plot bars.
	Signals        []SignalValue   `json:"signals,omitempty" yaml:"signals,omitempty"`
	ReferenceLines []ReferenceLine `json:"referenceLines,omitempty" yaml:"referenceLines,omitempty"`
	SafeMargins    []float64       `json:"safeMargins,omitempty" yaml:"safeMargins,omitempty"`
	FiboZoneLines  []float64       `json:"fiboZoneLines,omitempty" yaml:"fiboZoneLines,omitempty"`
}

type SignalValue struct {
	Type  string  `json:"type" yaml:"type"`
	Value float64 `json:"value" yaml:"value"`
}

type ReferenceLine struct {
	Label string  `json:"label,omitempty" yaml:"label,omitempty"`
	Price float64 `json:"price" yaml:"price"`
}

// LineValue is the sample used for line plots: the derived value if present,
// otherwise the close price.
func (b Bar) LineValue() float64 {
	if b.Value != nil {
		return *b.Value
	}
	return b.Close
}

// For sorting
type BarList []Bar

func (x BarList) Len() int           { return len(x) }
func (x BarList) Less(i, j int) bool { return x[i].Time < x[j].Time }
func (x BarList) Swap(i, j int)      { x[i], x[j] = x[j], x[i] }
