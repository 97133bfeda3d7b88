// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package drawings

import (
	"image"
	"testing"

	"gioui.org/f32"
	"github.com/stretchr/testify/assert"
)

func TestClipLineCrossingBothEdges(t *testing.T) {
	rect := image.Rect(0, 0, 800, 400)

	a, b, visible := ClipLine(f32.Pt(-100, 200), f32.Pt(1000, 200), rect)

	assert.True(t, visible)
	assert.Equal(t, f32.Pt(0, 200), a)
	assert.Equal(t, f32.Pt(800, 200), b)
}

func TestClipLineFullyInside(t *testing.T) {
	rect := image.Rect(0, 0, 800, 400)

	a, b, visible := ClipLine(f32.Pt(10, 10), f32.Pt(700, 300), rect)

	assert.True(t, visible)
	assert.Equal(t, f32.Pt(10, 10), a)
	assert.Equal(t, f32.Pt(700, 300), b)
}

func TestClipLineFullyOutside(t *testing.T) {
	rect := image.Rect(0, 0, 800, 400)

	_, _, visible := ClipLine(f32.Pt(-100, -50), f32.Pt(-10, -5), rect)
	assert.False(t, visible)

	_, _, visible = ClipLine(f32.Pt(900, 100), f32.Pt(1000, 300), rect)
	assert.False(t, visible)
}

func TestClipLineDiagonalThroughCorner(t *testing.T) {
	rect := image.Rect(0, 0, 100, 100)

	a, b, visible := ClipLine(f32.Pt(-50, -50), f32.Pt(150, 150), rect)

	assert.True(t, visible)
	assert.InDelta(t, 0, float64(a.X), 0.001)
	assert.InDelta(t, 0, float64(a.Y), 0.001)
	assert.InDelta(t, 100, float64(b.X), 0.001)
	assert.InDelta(t, 100, float64(b.Y), 0.001)
}

func TestClipLineVertical(t *testing.T) {
	rect := image.Rect(0, 0, 800, 400)

	a, b, visible := ClipLine(f32.Pt(300, -1000), f32.Pt(300, 1000), rect)

	assert.True(t, visible)
	assert.Equal(t, f32.Pt(300, 0), a)
	assert.Equal(t, f32.Pt(300, 400), b)
}
