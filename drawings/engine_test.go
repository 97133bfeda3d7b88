// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package drawings

import (
	"image"
	"testing"

	"gioui.org/f32"
	"github.com/stretchr/testify/assert"

	"stockchart/chartval"
	"stockchart/viewport"
)

// 100 minute bars over an 800x400 plot, prices 0..100, all bars visible.
func testProjector() *Projector {
	data := make([]chartval.Bar, 100)
	for i := range data {
		data[i] = chartval.Bar{Time: int64(i * 60), Open: 50, High: 55, Low: 45, Close: 50}
	}
	proj := viewport.NewProjection(0, 100, image.Rect(0, 0, 800, 400), 0, 100)
	return NewProjector(data, proj)
}

func TestEngineDrawLineCommits(t *testing.T) {
	e := NewEngine()
	proj := testProjector()
	e.SetTool(KindLine)

	assert.True(t, e.PointerDown(f32.Pt(100, 300), proj))
	assert.Equal(t, StateDrawing, e.State())
	assert.True(t, e.Frozen())

	e.PointerMove(f32.Pt(400, 100), proj)
	e.PointerUp()

	assert.Equal(t, StateIdle, e.State())
	assert.Equal(t, Kind(""), e.Tool())
	if assert.Len(t, e.List(), 1) {
		d := e.List()[0]
		assert.Equal(t, KindLine, d.Kind)
		assert.Len(t, d.Points, 2)
	}
}

func TestEngineDiscardsSingleAnchorDrawing(t *testing.T) {
	e := NewEngine()
	proj := testProjector()
	e.SetTool(KindLine)

	e.PointerDown(f32.Pt(100, 300), proj)
	e.PointerUp()

	assert.Empty(t, e.List())
	assert.Equal(t, StateIdle, e.State())
}

func TestEngineHorizontalLineLocksPrice(t *testing.T) {
	e := NewEngine()
	proj := testProjector()
	e.SetTool(KindHorizontalLine)

	e.PointerDown(f32.Pt(100, 300), proj)
	e.PointerMove(f32.Pt(500, 50), proj)
	e.PointerUp()

	d := e.List()[0]
	assert.Equal(t, d.Points[0].Price, d.Points[1].Price)
}

func TestEngineVerticalLineLocksTime(t *testing.T) {
	e := NewEngine()
	proj := testProjector()
	e.SetTool(KindVerticalLine)

	e.PointerDown(f32.Pt(100, 300), proj)
	e.PointerMove(f32.Pt(500, 50), proj)
	e.PointerUp()

	d := e.List()[0]
	assert.Equal(t, d.Points[0].Time, d.Points[1].Time)
}

func TestEngineIgnoresToolOutsidePlot(t *testing.T) {
	e := NewEngine()
	proj := testProjector()
	e.SetTool(KindLine)

	assert.False(t, e.PointerDown(f32.Pt(900, 500), proj))
	assert.Equal(t, StateIdle, e.State())
}

func TestEngineEditAnchor(t *testing.T) {
	e := NewEngine()
	proj := testProjector()
	e.SetTool(KindLine)
	e.PointerDown(f32.Pt(100, 300), proj)
	e.PointerMove(f32.Pt(400, 100), proj)
	e.PointerUp()

	// Grab the second anchor and move it.
	p1 := proj.Pixel(e.List()[0].Points[1])
	assert.True(t, e.PointerDown(p1, proj))
	assert.Equal(t, StateEditing, e.State())
	assert.Equal(t, 0, e.Selected())

	e.PointerMove(f32.Pt(600, 200), proj)
	e.PointerUp()

	// Selection is kept after releasing the anchor.
	assert.Equal(t, 0, e.Selected())
	assert.True(t, e.Frozen())
	moved := proj.Pixel(e.List()[0].Points[1])
	assert.InDelta(t, 600, float64(moved.X), proj.Projection().BarWidth())
	assert.InDelta(t, 200, float64(moved.Y), 0.5)
}

func TestEngineTouchHitRadiusGrabsFartherAnchors(t *testing.T) {
	e := NewEngine()
	proj := testProjector()
	e.SetTool(KindLine)
	e.PointerDown(f32.Pt(100, 300), proj)
	e.PointerMove(f32.Pt(400, 100), proj)
	e.PointerUp()

	// 15px beyond the first endpoint: outside the desktop radius,
	// inside the touch radius.
	press := proj.Pixel(e.List()[0].Points[0])
	press.X -= 15

	e.UseTouchHitRadius(false)
	assert.False(t, e.PointerDown(press, proj))
	assert.Equal(t, StateIdle, e.State())
	e.PointerUp()

	e.UseTouchHitRadius(true)
	assert.True(t, e.PointerDown(press, proj))
	assert.Equal(t, StateEditing, e.State())
	assert.Equal(t, 0, e.Selected())
	e.PointerUp()
}

func TestEngineClickAwayClearsSelection(t *testing.T) {
	e := NewEngine()
	proj := testProjector()
	e.SetTool(KindLine)
	e.PointerDown(f32.Pt(100, 300), proj)
	e.PointerMove(f32.Pt(200, 300), proj)
	e.PointerUp()

	p0 := proj.Pixel(e.List()[0].Points[0])
	e.PointerDown(p0, proj)
	e.PointerUp()
	assert.Equal(t, 0, e.Selected())

	assert.False(t, e.PointerDown(f32.Pt(700, 50), proj))
	assert.Equal(t, -1, e.Selected())
	assert.False(t, e.Frozen())
}

func TestEngineDeleteSelected(t *testing.T) {
	e := NewEngine()
	proj := testProjector()
	e.SetTool(KindLine)
	e.PointerDown(f32.Pt(100, 300), proj)
	e.PointerMove(f32.Pt(400, 100), proj)
	e.PointerUp()

	p0 := proj.Pixel(e.List()[0].Points[0])
	e.PointerDown(p0, proj)
	e.PointerUp()

	assert.True(t, e.DeleteSelected())
	assert.Empty(t, e.List())
	assert.Equal(t, -1, e.Selected())
	assert.False(t, e.DeleteSelected())
}

func TestEngineExportImportRoundTrip(t *testing.T) {
	e := NewEngine()
	proj := testProjector()
	e.SetTool(KindFibRetracement)
	e.PointerDown(f32.Pt(100, 300), proj)
	e.PointerMove(f32.Pt(400, 100), proj)
	e.PointerUp()

	text, err := e.Export()
	assert.NoError(t, err)

	restored := NewEngine()
	assert.NoError(t, restored.Import(text))
	assert.Equal(t, e.List(), restored.List())
}

func TestEngineImportMalformedKeepsList(t *testing.T) {
	e := NewEngine()
	proj := testProjector()
	e.SetTool(KindLine)
	e.PointerDown(f32.Pt(100, 300), proj)
	e.PointerMove(f32.Pt(400, 100), proj)
	e.PointerUp()

	assert.Error(t, e.Import("not json"))
	assert.Len(t, e.List(), 1)

	assert.Error(t, e.Import(`[{"type":"line","points":[{"time":1,"price":2}]}]`))
	assert.Len(t, e.List(), 1)

	assert.Error(t, e.Import(`[{"type":"nonsense","points":[{"time":1,"price":2},{"time":2,"price":3}]}]`))
	assert.Len(t, e.List(), 1)
}

func TestEngineClear(t *testing.T) {
	e := NewEngine()
	proj := testProjector()
	e.SetTool(KindRect)
	e.PointerDown(f32.Pt(100, 300), proj)
	e.PointerMove(f32.Pt(400, 100), proj)
	e.PointerUp()

	e.Clear()
	assert.Empty(t, e.List())
	assert.False(t, e.Frozen())
}
