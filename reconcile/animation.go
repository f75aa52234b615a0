package reconcile

import "time"

// animateIn fades e from transparent to opaque over the appear duration and
// then reports DidDisplay exactly once. The first frame runs on a later tick,
// never inside the current pass. Frames keep running after a teardown; they
// only touch the detached view.
func (r *Reconciler[V]) animateIn(e *entry[V]) {
	duration, frame := r.duration, r.frame
	if duration <= 0 {
		r.scheduler.After(0, func() { r.finishAppear(e) })
		return
	}

	var (
		elapsed time.Duration
		step    func()
	)
	step = func() {
		elapsed += frame
		if elapsed >= duration {
			r.finishAppear(e)
			return
		}
		r.setAlpha(e, float64(elapsed)/float64(duration))
		if e.attached {
			r.changed()
		}
		r.scheduler.After(frame, step)
	}
	r.scheduler.After(min(frame, duration), step)
}

func (r *Reconciler[V]) finishAppear(e *entry[V]) {
	r.setAlpha(e, 1)
	if e.attached {
		r.changed()
	}
	r.observer.DidDisplay(e.row.Index, e.view)
}

func (r *Reconciler[V]) setAlpha(e *entry[V], alpha float64) {
	e.alpha = alpha
	if f, ok := any(e.view).(Fader); ok {
		f.SetAlpha(alpha)
	}
}
