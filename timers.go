package dyntable

import "time"

// After implements reconcile.Scheduler. It must be called on the event loop,
// where f runs too. Callbacks run in deadline order, and callbacks with equal
// deadlines run in the order they were scheduled. The screen is redrawn once
// after every batch of due callbacks.
func (a *Application) After(d time.Duration, f func()) {
	elapsed := a.elapsed()
	// The queue clock only moves when callbacks run, so the delay is taken
	// from the queue's present rather than the wall clock's.
	a.timers.After(elapsed-a.timers.Now()+max(d, 0), f)
	a.armTimer(elapsed)
}

func (a *Application) elapsed() time.Duration {
	return a.now().Sub(a.epoch)
}

// armTimer makes the wall-clock timer fire at the earliest deadline.
func (a *Application) armTimer(elapsed time.Duration) {
	next, ok := a.timers.Next()
	if !ok {
		return
	}
	delay := max(next-elapsed, 0)
	if a.timer == nil {
		a.timer = time.AfterFunc(delay, a.timerFired)
		return
	}
	a.timer.Reset(delay)
}

// timerFired runs on the timer goroutine and hands over to the event loop.
func (a *Application) timerFired() {
	select {
	case a.updates <- queuedUpdate{f: a.runTimers}:
	case <-a.done:
	}
}

// runTimers runs every callback that is due and re-arms the timer.
func (a *Application) runTimers() {
	elapsed := a.elapsed()
	next, pending := a.timers.Next()
	a.timers.Advance(elapsed - a.timers.Now())
	a.armTimer(elapsed)
	if pending && next <= elapsed {
		a.draw()
	}
}
