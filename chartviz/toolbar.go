// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chartviz

import (
	"gioui.org/layout"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"stockchart/drawings"
	"stockchart/widgets"
)

type toolButton struct {
	kind    drawings.Kind
	label   string
	clicker widget.Clickable
}

// drawingToolbar is the row of tool buttons above the chart.
type drawingToolbar struct {
	buttons []toolButton
	clear   widget.Clickable
}

func (t *drawingToolbar) ensureButtons() {
	if t.buttons != nil {
		return
	}
	t.buttons = []toolButton{
		{kind: drawings.KindLine, label: "Line"},
		{kind: drawings.KindHorizontalLine, label: "H-Line"},
		{kind: drawings.KindVerticalLine, label: "V-Line"},
		{kind: drawings.KindRect, label: "Rect"},
		{kind: drawings.KindFibRetracement, label: "Fib"},
		{kind: drawings.KindFibTimeZones, label: "Fib Zones"},
	}
}

func (t *drawingToolbar) Layout(gtx layout.Context, th *material.Theme, theme *widgets.PlotTheme, engine *drawings.Engine) layout.Dimensions {
	t.ensureButtons()
	for i := range t.buttons {
		b := &t.buttons[i]
		if b.clicker.Clicked(gtx) {
			if engine.Tool() == b.kind {
				// Clicking the active tool disarms it.
				engine.SetTool("")
			} else {
				engine.SetTool(b.kind)
			}
		}
	}
	if t.clear.Clicked(gtx) {
		engine.Clear()
	}

	children := make([]layout.FlexChild, 0, len(t.buttons)+1)
	for i := range t.buttons {
		b := &t.buttons[i]
		children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.UniformInset(unit.Dp(2)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				btn := material.Button(th, &b.clicker, b.label)
				if engine.Tool() == b.kind {
					btn.Background = th.ContrastBg
				} else {
					btn.Background = th.Bg
					btn.Color = th.Fg
				}
				return btn.Layout(gtx)
			})
		}))
	}
	children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
		return layout.UniformInset(unit.Dp(2)).Layout(gtx, material.Button(th, &t.clear, "Clear").Layout)
	}))
	frame := widgets.Frame{
		OuterMargin: unit.Dp(2),
		InnerMargin: unit.Dp(2),
		BorderWidth: unit.Dp(1),
		BorderColor: theme.BorderColor,
	}
	return frame.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal}.Layout(gtx, children...)
	})
}
