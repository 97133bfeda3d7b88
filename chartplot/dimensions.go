// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chartplot

import (
	"math"
)

func getCandleWidth(barWidth float64, maxBorderWidth int) (candleWidth, lineWidth, borderWidth int) {
	const minCandleWidth = 1
	const minLineWidth = 1
	const defaultCandleMultiplier = 0.8

	candleWidth = int(math.Abs(barWidth) * defaultCandleMultiplier)
	if candleWidth < minCandleWidth {
		candleWidth = minCandleWidth
	}
	lineWidth = candleWidth / 16
	if lineWidth < minLineWidth {
		lineWidth = minLineWidth
	}
	borderWidth = candleWidth / 5
	if borderWidth < 1 {
		borderWidth = 1
	}
	if borderWidth > maxBorderWidth {
		borderWidth = maxBorderWidth
	}
	return
}

// firstLabelIndex is the lowest step-aligned bar index at or after
// startIndex. Overscroll to the left starts labeling at bar zero.
func firstLabelIndex(startIndex, step int) int {
	if startIndex <= 0 {
		return 0
	}
	return (startIndex + step - 1) / step * step
}

// adaptiveLabelStep widens the x label interval until labels no longer
// overlap for the given label width.
func adaptiveLabelStep(barWidth float64, labelWidthPx int) int {
	if barWidth <= 0 {
		return 1
	}
	step := 1
	for float64(step)*barWidth < float64(labelWidthPx)*1.5 {
		step *= 2
	}
	return step
}
