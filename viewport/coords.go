// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package viewport

import (
	"image"
	"math"

	"stockchart/chartval"
)

// Pure pixel mapping. The X mapping is left-anchored: the left edge of bar
// startIndex is at plot x zero, the center of a bar is half a bar width to
// the right.

// BarWidth returns the pixel width of one bar slot.
func BarWidth(visibleCount int, plotWidth float64) float64 {
	if visibleCount <= 0 {
		return 0
	}
	return plotWidth / float64(visibleCount)
}

// XPixel maps a data index to the left edge of its bar slot.
func XPixel(index, startIndex, visibleCount int, plotWidth float64) float64 {
	return float64(index-startIndex) * BarWidth(visibleCount, plotWidth)
}

// XPixelCenter maps a data index to the center of its bar slot.
func XPixelCenter(index, startIndex, visibleCount int, plotWidth float64) float64 {
	return XPixel(index, startIndex, visibleCount, plotWidth) + 0.5*BarWidth(visibleCount, plotWidth)
}

// YPixel maps a price into a plot rectangle. A degenerate price range maps
// to the vertical middle of the plot.
func YPixel(price, minPrice, maxPrice, plotY, plotHeight float64) float64 {
	if maxPrice == minPrice {
		return plotY + plotHeight/2
	}
	return plotY + plotHeight*(1-(price-minPrice)/(maxPrice-minPrice))
}

// PriceFromY is the inverse of YPixel.
func PriceFromY(y, plotY, plotHeight, minPrice, maxPrice float64) float64 {
	if plotHeight == 0 || maxPrice == minPrice {
		return minPrice
	}
	return minPrice + (maxPrice-minPrice)*(1-(y-plotY)/plotHeight)
}

// NearestIndexFromX rounds a pixel position to the nearest bar center. The
// result is a visible index, clamped to [0, visibleCount-1].
func NearestIndexFromX(x, plotX, plotWidth float64, visibleCount int) int {
	if visibleCount <= 0 {
		return 0
	}
	barWidth := BarWidth(visibleCount, plotWidth)
	if barWidth == 0 {
		return 0
	}
	idx := int(math.Round((x-plotX)/barWidth - 0.5))
	return chartval.Clamp(idx, 0, visibleCount-1)
}

// Projection f(v)=m*v+b for one plot rectangle and price range, in the
// style of a precomputed linear map per frame.
type Projection struct {
	mX, bX float64
	mY, bY float64
	rect   image.Rectangle
	minP   float64
	maxP   float64
}

func NewProjection(startIndex, visibleCount int, rect image.Rectangle, minPrice, maxPrice float64) Projection {
	p := Projection{rect: rect, minP: minPrice, maxP: maxPrice}
	width := float64(rect.Dx())
	p.mX = BarWidth(visibleCount, width)
	p.bX = float64(rect.Min.X) - p.mX*float64(startIndex)
	if maxPrice > minPrice {
		p.mY = -float64(rect.Dy()) / (maxPrice - minPrice)
		p.bY = float64(rect.Max.Y) - p.mY*minPrice
	} else {
		p.mY = 0
		p.bY = float64(rect.Min.Y) + float64(rect.Dy())/2
	}
	return p
}

// BarWidth is the pixel width of one bar slot.
func (p Projection) BarWidth() float64 {
	return p.mX
}

// XPos maps a data index to the left edge of its bar slot.
func (p Projection) XPos(index int) float64 {
	return p.mX*float64(index) + p.bX
}

// XCenter maps a data index to the center of its bar slot.
func (p Projection) XCenter(index int) float64 {
	return p.XPos(index) + 0.5*p.mX
}

func (p Projection) YPos(price float64) float64 {
	return p.mY*price + p.bY
}

// PriceAt inverts YPos; a degenerate range yields the lower bound.
func (p Projection) PriceAt(y float64) float64 {
	if p.mY == 0 {
		return p.minP
	}
	return (y - p.bY) / p.mY
}

// IndexAt returns the data index of the bar whose slot contains x, rounded
// to the nearest bar center.
func (p Projection) IndexAt(x float64) int {
	if p.mX == 0 {
		return 0
	}
	return int(math.Round((x-p.bX)/p.mX - 0.5))
}

func (p Projection) Rect() image.Rectangle {
	return p.rect
}

func (p Projection) PriceRange() (float64, float64) {
	return p.minP, p.maxP
}
