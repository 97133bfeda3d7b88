// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package drawings

import (
	"log"

	"gioui.org/f32"
)

type State int

const (
	StateIdle State = iota
	StateDrawing
	StateEditing
)

// Engine owns the drawing list and the drawing/editing session state. All
// methods are called from the UI event loop; the engine is not thread safe.
type Engine struct {
	list       []Drawing
	activeTool Kind
	state      State
	current    *Drawing
	selected   int
	editPoint  int
	hitRadius  float32
}

func NewEngine() *Engine {
	return &Engine{
		selected:  -1,
		hitRadius: DesktopHitRadius,
	}
}

// SetTool arms a drawing tool for the next pointer press. An empty kind
// disarms.
func (e *Engine) SetTool(k Kind) {
	e.activeTool = k
}

func (e *Engine) Tool() Kind {
	return e.activeTool
}

// UseTouchHitRadius widens the grab area for touch input.
func (e *Engine) UseTouchHitRadius(touch bool) {
	if touch {
		e.hitRadius = TouchHitRadius
	} else {
		e.hitRadius = DesktopHitRadius
	}
}

func (e *Engine) State() State {
	return e.state
}

// Frozen reports whether pan and zoom must be suppressed because a drawing
// interaction is in progress or a drawing is selected.
func (e *Engine) Frozen() bool {
	return e.state != StateIdle || e.selected >= 0
}

// Current returns the in-progress drawing during a Drawing session, for
// preview rendering.
func (e *Engine) Current() *Drawing {
	return e.current
}

// Selected returns the index of the selected drawing, or -1.
func (e *Engine) Selected() int {
	return e.selected
}

func (e *Engine) List() []Drawing {
	return e.list
}

// PointerDown starts a new drawing if a tool is armed, otherwise tries to
// grab a control point or select a drawing. It reports whether the event
// was consumed.
func (e *Engine) PointerDown(pt f32.Point, proj *Projector) bool {
	if e.activeTool != "" {
		if !pt.Round().In(proj.Projection().Rect()) {
			return false
		}
		e.current = &Drawing{
			Kind:   e.activeTool,
			Points: []Anchor{proj.AnchorAt(pt)},
		}
		e.state = StateDrawing
		return true
	}
	// Topmost drawing wins the grab.
	for i := len(e.list) - 1; i >= 0; i-- {
		if pointIndex, ok := e.list[i].HitAnchor(pt, proj, e.hitRadius); ok {
			e.selected = i
			e.editPoint = pointIndex
			e.state = StateEditing
			return true
		}
	}
	if e.selected >= 0 && e.list[e.selected].Hit(pt, proj, e.hitRadius) {
		return true
	}
	e.selected = -1
	return false
}

// PointerMove updates the trailing anchor while drawing or the grabbed
// anchor while editing.
func (e *Engine) PointerMove(pt f32.Point, proj *Projector) {
	switch e.state {
	case StateDrawing:
		a := proj.AnchorAt(pt)
		applyKindLock(e.current.Kind, e.current.Points[0], &a)
		if len(e.current.Points) < 2 {
			e.current.Points = append(e.current.Points, a)
		} else {
			e.current.Points[len(e.current.Points)-1] = a
		}
	case StateEditing:
		d := &e.list[e.selected]
		a := proj.AnchorAt(pt)
		other := d.Points[1-e.editPoint]
		applyKindLock(d.Kind, other, &a)
		d.Points[e.editPoint] = a
	}
}

// applyKindLock constrains the moving anchor so horizontal lines stay
// horizontal and vertical lines stay vertical.
func applyKindLock(k Kind, fixed Anchor, moving *Anchor) {
	switch k {
	case KindHorizontalLine:
		moving.Price = fixed.Price
	case KindVerticalLine:
		moving.Time = fixed.Time
	}
}

// PointerUp completes a drawing session. A drawing with fewer than two
// anchors is discarded silently. Completing a drawing disarms the tool;
// releasing an edited anchor keeps the selection.
func (e *Engine) PointerUp() {
	switch e.state {
	case StateDrawing:
		if len(e.current.Points) >= 2 {
			e.list = append(e.list, *e.current)
		}
		e.current = nil
		e.activeTool = ""
		e.state = StateIdle
	case StateEditing:
		e.state = StateIdle
	}
}

// DeleteSelected removes the selected drawing. It reports whether one was
// removed.
func (e *Engine) DeleteSelected() bool {
	if e.selected < 0 {
		return false
	}
	e.list = append(e.list[:e.selected], e.list[e.selected+1:]...)
	e.selected = -1
	e.state = StateIdle
	return true
}

// Clear removes all drawings and aborts any session.
func (e *Engine) Clear() {
	e.list = nil
	e.current = nil
	e.selected = -1
	e.state = StateIdle
}

// Export serializes the drawing list.
func (e *Engine) Export() (string, error) {
	return Export(e.list)
}

// Import replaces the drawing list. A malformed document is logged and the
// current list is left intact.
func (e *Engine) Import(text string) error {
	list, err := Import(text)
	if err != nil {
		log.Printf("ignoring drawing import: %v", err)
		return err
	}
	e.list = list
	e.current = nil
	e.selected = -1
	e.state = StateIdle
	return nil
}
