// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

// Package viewport maintains the contiguous window of the full bar array
// which is currently rendered, and the pure projection between bar indices,
// prices and pixels.
package viewport

import (
	"math"

	"stockchart/chartval"
)

// MinVisible is the smallest number of bar slots a viewport may show.
const MinVisible = 10

// NeedOlderDataFunc is notified when a zoom-out hits the left data edge.
// It must not block; the host may asynchronously prepend bars and call
// UpdateData.
type NeedOlderDataFunc func(currentOldestTime int64, requestedCount int)

type Viewport struct {
	data          []chartval.Bar
	startIndex    int
	visibleCount  int
	rightPadding  int
	needOlderData NeedOlderDataFunc
}

// New clamps the initial visible count against the data length plus right
// padding and positions the window so the most recent bars are visible.
func New(data []chartval.Bar, initialVisibleCount, rightPadding int) *Viewport {
	v := &Viewport{data: data, rightPadding: rightPadding}
	v.visibleCount = chartval.Clamp(min(initialVisibleCount, len(data)+rightPadding), MinVisible, v.maxVisible())
	v.ScrollToEnd()
	return v
}

func (v *Viewport) SetNeedOlderDataFunc(f NeedOlderDataFunc) {
	v.needOlderData = f
}

func (v *Viewport) StartIndex() int   { return v.startIndex }
func (v *Viewport) VisibleCount() int { return v.visibleCount }
func (v *Viewport) RightPadding() int { return v.rightPadding }
func (v *Viewport) Len() int          { return len(v.data) }
func (v *Viewport) Data() []chartval.Bar {
	return v.data
}

func (v *Viewport) maxVisible() int {
	return max(len(v.data), MinVisible)
}

func (v *Viewport) maxStart() int {
	return max(0, len(v.data)-v.visibleCount+v.rightPadding)
}

// Bounded overscroll beyond the strict window limits, for perceptual
// inertia.
func (v *Viewport) overscroll() int {
	return int(math.Min(0.1*float64(v.visibleCount), 0.1*float64(len(v.data))))
}

// VisibleSlice returns the contiguous sub-array of the backing data which
// is inside the window. It may be shorter than VisibleCount when right
// padding or overscroll leave empty slots.
func (v *Viewport) VisibleSlice() []chartval.Bar {
	if len(v.data) == 0 {
		return nil
	}
	start := chartval.Clamp(v.startIndex, 0, len(v.data))
	end := min(start+v.visibleCount, len(v.data))
	return v.data[start:end]
}

// Scroll shifts the window start, saturating at the legal boundaries plus
// overscroll.
func (v *Viewport) Scroll(delta int) {
	v.startIndex = chartval.Clamp(v.startIndex+delta, 0, v.maxStart()+v.overscroll())
}

// ScrollToEnd positions the window at the most recent bars.
func (v *Viewport) ScrollToEnd() {
	v.startIndex = v.maxStart()
}

// CenterOn positions the window so the bar at the given data index is in
// the middle of the visible range.
func (v *Viewport) CenterOn(index int) {
	v.startIndex = chartval.Clamp(index-v.visibleCount/2, 0, v.maxStart()+v.overscroll())
}

// Zoom narrows (factor > 1) or widens (factor < 1) the window. The bar at
// startIndex+anchorIndex keeps its fractional position within the visible
// range. Widening at the left data edge notifies the NeedOlderData
// observer and still performs the bounded widen.
func (v *Viewport) Zoom(factor float64, anchorIndex int) {
	if factor <= 0 {
		return
	}
	oldVisible := v.visibleCount
	newVisible := chartval.Clamp(int(math.Round(float64(oldVisible)/factor)), MinVisible, v.maxVisible())
	if newVisible == oldVisible {
		return
	}
	if factor < 1 && v.startIndex == 0 && v.needOlderData != nil && len(v.data) > 0 {
		v.needOlderData(v.data[0].Time, newVisible-oldVisible)
	}
	anchor := v.startIndex + anchorIndex
	frac := float64(anchorIndex) / float64(oldVisible)
	v.visibleCount = newVisible
	v.startIndex = chartval.Clamp(anchor-int(math.Round(frac*float64(newVisible))), 0, v.maxStart()+v.overscroll())
}

// UpdateData replaces the backing array, clamping the window if the array
// shrank.
func (v *Viewport) UpdateData(data []chartval.Bar) {
	v.data = data
	v.visibleCount = chartval.Clamp(v.visibleCount, MinVisible, v.maxVisible())
	v.startIndex = chartval.Clamp(v.startIndex, 0, v.maxStart()+v.overscroll())
}
