// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

// Package drawings implements user-placed chart annotations. Anchor points
// are stored in data coordinates (time, price), never pixels, so drawings
// keep their place across pan, zoom and data updates.
package drawings

import (
	"encoding/json"
	"fmt"
)

type Kind string

const (
	KindLine           Kind = "line"
	KindHorizontalLine Kind = "horizontal-line"
	KindVerticalLine   Kind = "vertical-line"
	KindRect           Kind = "rectangle"
	KindFibRetracement Kind = "fib-retracement"
	KindFibTimeZones   Kind = "fib-time-zones"
)

// Anchor is a data coordinate. Time is in seconds since epoch.
type Anchor struct {
	Time  int64   `json:"time"`
	Price float64 `json:"price"`
}

// Style overrides the theme drawing color per annotation. Empty fields fall
// back to the theme.
type Style struct {
	StrokeColor string  `json:"strokeColor,omitempty"`
	LineWidth   float64 `json:"lineWidth,omitempty"`
	FillColor   string  `json:"fillColor,omitempty"`
}

// Drawing is a tagged variant over the annotation kinds. All kinds carry
// two anchors once complete.
type Drawing struct {
	Kind   Kind     `json:"type"`
	Points []Anchor `json:"points"`
	Style  Style    `json:"style,omitempty"`
}

// FibRetracementLevels are the retracement and extension ratios, drawn as
// horizontal levels between and beyond the two anchor prices.
var FibRetracementLevels = []float64{0, 0.236, 0.382, 0.618, 1, 1.618, 2, 2.618, 3.618, 4.236}

// FibLevelLabel formats a retracement ratio the way it is shown next to its
// level line.
func FibLevelLabel(ratio float64) string {
	return fmt.Sprintf("%.1f%%", ratio*100)
}

// FibSequence returns the first n Fibonacci numbers starting 0, 1, 1, 2.
func FibSequence(n int) []int {
	seq := make([]int, 0, n)
	a, b := 0, 1
	for i := 0; i < n; i++ {
		seq = append(seq, a)
		a, b = b, a+b
	}
	return seq
}

// Export serializes a drawing list to a lossless textual form.
func Export(list []Drawing) (string, error) {
	if list == nil {
		list = []Drawing{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return "", fmt.Errorf("failed to serialize drawings: %v", err)
	}
	return string(data), nil
}

// Import parses a drawing list previously produced by Export. Entries with
// an unknown kind or fewer than two anchors are rejected so a malformed
// document never replaces a valid list.
func Import(text string) ([]Drawing, error) {
	var list []Drawing
	err := json.Unmarshal([]byte(text), &list)
	if err != nil {
		return nil, fmt.Errorf("failed to parse drawings: %v", err)
	}
	for i := range list {
		if !list[i].Kind.valid() {
			return nil, fmt.Errorf("drawing %d: unknown type %q", i, list[i].Kind)
		}
		if len(list[i].Points) < 2 {
			return nil, fmt.Errorf("drawing %d: requires at least two points", i)
		}
	}
	if list == nil {
		list = []Drawing{}
	}
	return list, nil
}

func (k Kind) valid() bool {
	switch k {
	case KindLine, KindHorizontalLine, KindVerticalLine, KindRect, KindFibRetracement, KindFibTimeZones:
		return true
	}
	return false
}
