package dyntable

import (
	"time"

	"github.com/gdamore/tcell/v3"
)

// DoubleClickInterval is the longest gap between two clicks of the left button
// that still counts as a double click.
var DoubleClickInterval = 500 * time.Millisecond

// MouseAction is what the mouse is logically doing, derived from the raw
// button state tcell reports.
type MouseAction int16

const (
	MouseMove MouseAction = iota
	MouseLeftDown
	MouseLeftUp
	MouseLeftClick
	MouseLeftDoubleClick
	MouseScrollUp
	MouseScrollDown
	MouseScrollLeft
	MouseScrollRight
)

var wheelActions = []struct {
	button tcell.ButtonMask
	action MouseAction
}{
	{tcell.WheelUp, MouseScrollUp},
	{tcell.WheelDown, MouseScrollDown},
	{tcell.WheelLeft, MouseScrollLeft},
	{tcell.WheelRight, MouseScrollRight},
}

// mouseState remembers enough of the previous reports to turn button
// transitions into clicks.
type mouseState struct {
	x, y         int
	downX, downY int
	buttons      tcell.ButtonMask
	lastClick    time.Time
}

// actions returns the actions for a report of the pointer at (x, y) with
// buttons held at time now, and records the report.
func (m *mouseState) actions(x, y int, buttons tcell.ButtonMask, now time.Time) []MouseAction {
	var out []MouseAction
	if x != m.x || y != m.y {
		out = append(out, MouseMove)
		m.x, m.y = x, y
	}

	if (buttons^m.buttons)&tcell.ButtonPrimary != 0 {
		if buttons&tcell.ButtonPrimary != 0 {
			out = append(out, MouseLeftDown)
			m.downX, m.downY = x, y
		} else {
			out = append(out, MouseLeftUp)
			if x == m.downX && y == m.downY {
				if now.Sub(m.lastClick) > DoubleClickInterval {
					out = append(out, MouseLeftClick)
					m.lastClick = now
				} else {
					out = append(out, MouseLeftDoubleClick)
					m.lastClick = time.Time{}
				}
			}
		}
	}

	for _, w := range wheelActions {
		if buttons&w.button != 0 {
			out = append(out, w.action)
		}
	}
	m.buttons = buttons
	return out
}
