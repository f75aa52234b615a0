package dyntable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newClockedApplication returns an application whose clock only moves when
// the returned function is called.
func newClockedApplication(t *testing.T) (*Application, func(time.Duration)) {
	t.Helper()
	a := NewApplication()
	now := a.epoch
	a.now = func() time.Time { return now }
	t.Cleanup(func() {
		if a.timer != nil {
			a.timer.Stop()
		}
		a.Stop()
	})
	return a, func(d time.Duration) { now = now.Add(d) }
}

func TestApplicationAfterKeepsScheduleOrder(t *testing.T) {
	a, advance := newClockedApplication(t)

	var got []string
	for _, name := range []string{"a", "b", "c"} {
		a.After(50*time.Millisecond, func() { got = append(got, name) })
	}
	a.After(10*time.Millisecond, func() { got = append(got, "first") })
	require.NotNil(t, a.timer)

	a.runTimers()
	assert.Empty(t, got, "nothing is due yet")

	advance(50 * time.Millisecond)
	a.runTimers()
	assert.Equal(t, []string{"first", "a", "b", "c"}, got)
	assert.Zero(t, a.timers.Len())
}

func TestApplicationAfterFromCallback(t *testing.T) {
	a, advance := newClockedApplication(t)

	var frames []time.Duration
	var frame func()
	frame = func() {
		frames = append(frames, a.elapsed())
		if len(frames) < 3 {
			a.After(20*time.Millisecond, frame)
		}
	}
	a.After(20*time.Millisecond, frame)

	for range 3 {
		advance(20 * time.Millisecond)
		a.runTimers()
	}
	assert.Equal(t, []time.Duration{20 * time.Millisecond, 40 * time.Millisecond, 60 * time.Millisecond}, frames)
}

func TestApplicationExecuteCommand(t *testing.T) {
	a := NewApplication()
	box := NewBox()

	assert.False(t, a.executeCommand(nil))
	assert.True(t, a.executeCommand(RedrawCommand{}))
	assert.True(t, a.executeCommand(SetFocusCommand{Target: box}))
	assert.True(t, box.HasFocus())
	assert.False(t, a.executeCommand(SetFocusCommand{Target: box}), "already focused")
	assert.True(t, a.executeCommand(BatchCommand{nil, RedrawCommand{}}))

	a.executeCommand(QuitCommand{})
	select {
	case <-a.done:
	default:
		t.Fatal("quit did not stop the application")
	}
}
