// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package drawings

import (
	"image"

	"gioui.org/f32"
)

// ClipLine clips the segment p0-p1 to a rectangle using the Liang-Barsky
// parametric algorithm. The third return value is false if the segment lies
// fully outside.
func ClipLine(p0, p1 f32.Point, rect image.Rectangle) (f32.Point, f32.Point, bool) {
	dx := float64(p1.X - p0.X)
	dy := float64(p1.Y - p0.Y)
	t0, t1 := 0.0, 1.0

	edges := [4][2]float64{
		{-dx, float64(p0.X) - float64(rect.Min.X)},
		{dx, float64(rect.Max.X) - float64(p0.X)},
		{-dy, float64(p0.Y) - float64(rect.Min.Y)},
		{dy, float64(rect.Max.Y) - float64(p0.Y)},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return f32.Point{}, f32.Point{}, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return f32.Point{}, f32.Point{}, false
			}
			if r > t0 {
				t0 = r
			}
		} else {
			if r < t0 {
				return f32.Point{}, f32.Point{}, false
			}
			if r < t1 {
				t1 = r
			}
		}
	}
	c0 := f32.Pt(p0.X+float32(t0*dx), p0.Y+float32(t0*dy))
	c1 := f32.Pt(p0.X+float32(t1*dx), p0.Y+float32(t1*dy))
	return c0, c1, true
}
