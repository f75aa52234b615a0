package dyntable

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v3"
	"github.com/stretchr/testify/assert"
)

func TestMouseClicks(t *testing.T) {
	var m mouseState
	start := time.Now()
	at := func(d time.Duration) time.Time { return start.Add(d) }

	assert.Equal(t, []MouseAction{MouseMove, MouseLeftDown}, m.actions(1, 1, tcell.ButtonPrimary, at(0)))
	assert.Equal(t, []MouseAction{MouseLeftUp, MouseLeftClick}, m.actions(1, 1, tcell.ButtonNone, at(10*time.Millisecond)))

	assert.Equal(t, []MouseAction{MouseLeftDown}, m.actions(1, 1, tcell.ButtonPrimary, at(50*time.Millisecond)))
	assert.Equal(t, []MouseAction{MouseLeftUp, MouseLeftDoubleClick}, m.actions(1, 1, tcell.ButtonNone, at(100*time.Millisecond)))

	// A third press starts over instead of chaining double clicks.
	m.actions(1, 1, tcell.ButtonPrimary, at(150*time.Millisecond))
	assert.Equal(t, []MouseAction{MouseLeftUp, MouseLeftClick}, m.actions(1, 1, tcell.ButtonNone, at(200*time.Millisecond)))
}

func TestMouseDragIsNotAClick(t *testing.T) {
	var m mouseState
	now := time.Now()

	m.actions(1, 1, tcell.ButtonPrimary, now)
	assert.Equal(t, []MouseAction{MouseMove, MouseLeftUp}, m.actions(3, 1, tcell.ButtonNone, now))
}

func TestMouseWheelRepeats(t *testing.T) {
	var m mouseState
	now := time.Now()

	assert.Equal(t, []MouseAction{MouseScrollDown}, m.actions(0, 0, tcell.WheelDown, now))
	assert.Equal(t, []MouseAction{MouseScrollDown}, m.actions(0, 0, tcell.WheelDown, now))
	assert.Empty(t, m.actions(0, 0, tcell.ButtonNone, now))
}
