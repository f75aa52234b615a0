package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQueueOrdersByDeadlineThenSchedule(t *testing.T) {
	q := NewQueue()
	var got []string
	q.After(20*time.Millisecond, func() { got = append(got, "b") })
	q.After(10*time.Millisecond, func() { got = append(got, "a") })
	q.After(20*time.Millisecond, func() { got = append(got, "c") })

	q.Advance(15 * time.Millisecond)
	assert.Equal(t, []string{"a"}, got)
	assert.Equal(t, 15*time.Millisecond, q.Now())

	q.Advance(5 * time.Millisecond)
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Zero(t, q.Len())
}

func TestQueueNeverRunsInsideAfter(t *testing.T) {
	q := NewQueue()
	ran := false
	q.After(0, func() { ran = true })
	assert.False(t, ran)
	q.RunPending()
	assert.True(t, ran)
}

func TestQueueRunsNestedSchedules(t *testing.T) {
	q := NewQueue()
	var ticks int
	var tick func()
	tick = func() {
		ticks++
		if ticks < 4 {
			q.After(10*time.Millisecond, tick)
		}
	}
	q.After(10*time.Millisecond, tick)

	q.Advance(25 * time.Millisecond)
	assert.Equal(t, 2, ticks)
	q.Advance(time.Second)
	assert.Equal(t, 4, ticks)
}

func TestQueueFlush(t *testing.T) {
	q := NewQueue()
	var ran int
	var again func()
	again = func() {
		ran++
		q.After(time.Hour, again)
	}
	q.After(0, again)

	assert.Equal(t, 3, q.Flush(3))
	assert.Equal(t, 3, ran)
	assert.Equal(t, 2*time.Hour, q.Now())
	assert.Equal(t, 1, q.Len())
}

func TestQueueNext(t *testing.T) {
	q := NewQueue()
	_, ok := q.Next()
	assert.False(t, ok)

	q.After(30*time.Millisecond, func() {})
	q.After(10*time.Millisecond, func() {})
	at, ok := q.Next()
	assert.True(t, ok)
	assert.Equal(t, 10*time.Millisecond, at)

	q.Advance(10 * time.Millisecond)
	at, _ = q.Next()
	assert.Equal(t, 30*time.Millisecond, at)
}
