// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package drawings

import (
	"sort"

	"gioui.org/f32"

	"stockchart/chartval"
	"stockchart/viewport"
)

// Projector converts anchors to pixels and back for one plot rectangle. It
// combines the frame projection with the bar data so anchor times outside
// the data range map to extrapolated bar slots.
type Projector struct {
	data []chartval.Bar
	proj viewport.Projection
}

func NewProjector(data []chartval.Bar, proj viewport.Projection) *Projector {
	return &Projector{data: data, proj: proj}
}

// barSpacing estimates the time step between bars, used to extrapolate
// beyond the ends of the data.
func (p *Projector) barSpacing() int64 {
	n := len(p.data)
	if n >= 2 {
		spacing := p.data[n-1].Time - p.data[n-2].Time
		if spacing > 0 {
			return spacing
		}
	}
	return 1
}

// IndexForTime maps a timestamp to a bar index. Times between bars round
// down to the earlier bar; times outside the data extrapolate by the bar
// spacing.
func (p *Projector) IndexForTime(t int64) int {
	n := len(p.data)
	if n == 0 {
		return 0
	}
	spacing := p.barSpacing()
	if t < p.data[0].Time {
		return -int((p.data[0].Time - t + spacing - 1) / spacing)
	}
	if t > p.data[n-1].Time {
		return n - 1 + int((t-p.data[n-1].Time)/spacing)
	}
	i := sort.Search(n, func(i int) bool { return p.data[i].Time > t })
	return i - 1
}

// TimeForIndex maps a bar index to its timestamp, extrapolating a synthetic
// time beyond either end of the data.
func (p *Projector) TimeForIndex(index int) int64 {
	n := len(p.data)
	if n == 0 {
		return 0
	}
	if index < 0 {
		return p.data[0].Time + int64(index)*p.barSpacing()
	}
	if index >= n {
		return p.data[n-1].Time + int64(index-n+1)*p.barSpacing()
	}
	return p.data[index].Time
}

// Pixel projects an anchor into the plot, at the center of its bar slot.
func (p *Projector) Pixel(a Anchor) f32.Point {
	return f32.Pt(
		float32(p.proj.XCenter(p.IndexForTime(a.Time))),
		float32(p.proj.YPos(a.Price)),
	)
}

// AnchorAt inverts Pixel for a cursor position, snapping to the nearest
// bar center.
func (p *Projector) AnchorAt(pt f32.Point) Anchor {
	return Anchor{
		Time:  p.TimeForIndex(p.proj.IndexAt(float64(pt.X))),
		Price: p.proj.PriceAt(float64(pt.Y)),
	}
}

// XForIndex maps a bar index to the pixel center of its slot. The mapping
// is affine and valid beyond the data bounds.
func (p *Projector) XForIndex(index int) float32 {
	return float32(p.proj.XCenter(index))
}

func (p *Projector) Projection() viewport.Projection {
	return p.proj
}
