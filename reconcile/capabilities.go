// Package reconcile keeps the set of materialized rows in step with a
// viewport.
//
// A Reconciler owns the geometry table, the visible set and the pending
// layout set. It is single-threaded: every method must be called from the
// goroutine that runs the Scheduler's callbacks.
package reconcile

// Provider supplies rows. Count is read once per reload and ViewFor is called
// whenever a row is materialized.
type Provider[V any] interface {
	Count() int
	ViewFor(index int) V
}

// Heights reports row heights. A false second result selects the configured
// default height.
type Heights interface {
	HeightFor(index int) (float64, bool)
}

// HeightsFunc adapts a function to Heights.
type HeightsFunc func(index int) (float64, bool)

// HeightFor implements Heights.
func (f HeightsFunc) HeightFor(index int) (float64, bool) {
	return f(index)
}

// Observer receives display lifecycle notifications.
//
// WillDisplay fires before a view is attached, DidDisplay once its appear
// animation has finished and DidEndDisplay after it was detached. DidDisplay
// still fires when the row was detached while animating; observers should
// treat that as a no-op.
type Observer[V any] interface {
	WillDisplay(index int, view V)
	DidDisplay(index int, view V)
	DidEndDisplay(index int, view V)
}

// ObserverFuncs implements Observer with optional callbacks.
type ObserverFuncs[V any] struct {
	OnWillDisplay   func(index int, view V)
	OnDidDisplay    func(index int, view V)
	OnDidEndDisplay func(index int, view V)
}

// WillDisplay implements Observer.
func (o ObserverFuncs[V]) WillDisplay(index int, view V) {
	if o.OnWillDisplay != nil {
		o.OnWillDisplay(index, view)
	}
}

// DidDisplay implements Observer.
func (o ObserverFuncs[V]) DidDisplay(index int, view V) {
	if o.OnDidDisplay != nil {
		o.OnDidDisplay(index, view)
	}
}

// DidEndDisplay implements Observer.
func (o ObserverFuncs[V]) DidEndDisplay(index int, view V) {
	if o.OnDidEndDisplay != nil {
		o.OnDidEndDisplay(index, view)
	}
}

// Fader is implemented by views that render partial opacity.
type Fader interface {
	SetAlpha(alpha float64)
}
