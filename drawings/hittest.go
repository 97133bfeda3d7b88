// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package drawings

import (
	"math"

	"gioui.org/f32"
)

// Hit thresholds in pixels. Touch input gets a larger grab area.
const (
	DesktopHitRadius float32 = 10
	TouchHitRadius   float32 = 20
)

func pointSegmentDistance(p, a, b f32.Point) float64 {
	abx := float64(b.X - a.X)
	aby := float64(b.Y - a.Y)
	apx := float64(p.X - a.X)
	apy := float64(p.Y - a.Y)
	lenSq := abx*abx + aby*aby
	t := 0.0
	if lenSq > 0 {
		t = math.Max(0, math.Min(1, (apx*abx+apy*aby)/lenSq))
	}
	dx := apx - t*abx
	dy := apy - t*aby
	return math.Hypot(dx, dy)
}

// Hit reports whether a cursor position lies on the drawing. Line-like
// kinds use point-to-segment distance against their rendered extent,
// rectangles test containment of their bounding box.
func (d *Drawing) Hit(pt f32.Point, proj *Projector, radius float32) bool {
	if len(d.Points) < 2 {
		return false
	}
	p0 := proj.Pixel(d.Points[0])
	p1 := proj.Pixel(d.Points[1])
	rect := proj.Projection().Rect()
	switch d.Kind {
	case KindHorizontalLine:
		// Rendered across the full plot width.
		p0 = f32.Pt(float32(rect.Min.X), p0.Y)
		p1 = f32.Pt(float32(rect.Max.X), p0.Y)
	case KindVerticalLine:
		p1 = f32.Pt(p0.X, float32(rect.Max.Y))
		p0 = f32.Pt(p0.X, float32(rect.Min.Y))
	case KindRect:
		minX, maxX := min(p0.X, p1.X), max(p0.X, p1.X)
		minY, maxY := min(p0.Y, p1.Y), max(p0.Y, p1.Y)
		return pt.X >= minX && pt.X <= maxX && pt.Y >= minY && pt.Y <= maxY
	}
	return pointSegmentDistance(pt, p0, p1) <= float64(radius)
}

// HitAnchor returns the index of the control point under the cursor.
// Fib time zone anchors extend vertically, so only the x distance counts.
func (d *Drawing) HitAnchor(pt f32.Point, proj *Projector, radius float32) (int, bool) {
	for i := range d.Points {
		ap := proj.Pixel(d.Points[i])
		if d.Kind == KindFibTimeZones {
			if math.Abs(float64(pt.X-ap.X)) <= float64(radius) {
				return i, true
			}
			continue
		}
		if math.Hypot(float64(pt.X-ap.X), float64(pt.Y-ap.Y)) <= float64(radius) {
			return i, true
		}
	}
	return 0, false
}
