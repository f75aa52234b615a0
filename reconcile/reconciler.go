package reconcile

import (
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ayn2op/dyntable/geometry"
)

const (
	// DefaultRowHeight is used when no height is reported for a row.
	DefaultRowHeight = 100
	// DefaultAppearDuration is the length of the appear animation.
	DefaultAppearDuration = 350 * time.Millisecond
	// DefaultFrameInterval is the step between two appear animation frames.
	DefaultFrameInterval = 50 * time.Millisecond
)

type entry[V any] struct {
	row      geometry.Row
	view     V
	alpha    float64
	attached bool
}

// Reconciler materializes the rows intersecting a viewport and tears down the
// rows that leave it.
type Reconciler[V any] struct {
	provider  Provider[V]
	heights   Heights
	observer  Observer[V]
	scheduler Scheduler
	logger    *log.Logger

	table    geometry.Table
	visible  map[int]*entry[V]
	pending  map[int]struct{}
	viewport geometry.Rect
	length   float64

	width         float64
	spacing       float64
	defaultHeight float64
	duration      time.Duration
	frame         time.Duration

	lengthChanged func(length float64)
	redraw        func()
}

// New returns a reconciler for the given provider. A nil scheduler selects a
// private Queue which never runs on its own; hosts that animate rows must pass
// their event loop.
func New[V any](provider Provider[V], scheduler Scheduler) *Reconciler[V] {
	if scheduler == nil {
		scheduler = NewQueue()
	}
	return &Reconciler[V]{
		provider:      provider,
		observer:      ObserverFuncs[V]{},
		scheduler:     scheduler,
		logger:        log.Default(),
		visible:       make(map[int]*entry[V]),
		pending:       make(map[int]struct{}),
		defaultHeight: DefaultRowHeight,
		duration:      DefaultAppearDuration,
		frame:         DefaultFrameInterval,
	}
}

// SetProvider replaces the row provider. It takes effect on the next Reload.
func (r *Reconciler[V]) SetProvider(provider Provider[V]) *Reconciler[V] {
	r.provider = provider
	return r
}

// SetHeights sets the height capability. Nil selects the default height for
// every row.
func (r *Reconciler[V]) SetHeights(heights Heights) *Reconciler[V] {
	r.heights = heights
	return r
}

// SetObserver sets the lifecycle observer.
func (r *Reconciler[V]) SetObserver(observer Observer[V]) *Reconciler[V] {
	if observer == nil {
		observer = ObserverFuncs[V]{}
	}
	r.observer = observer
	return r
}

// SetScheduler sets the scheduler used for appear animations.
func (r *Reconciler[V]) SetScheduler(scheduler Scheduler) *Reconciler[V] {
	if scheduler != nil {
		r.scheduler = scheduler
	}
	return r
}

// SetLogger sets the logger used for logic warnings.
func (r *Reconciler[V]) SetLogger(logger *log.Logger) *Reconciler[V] {
	if logger != nil {
		r.logger = logger
	}
	return r
}

// SetSpacing sets the gap between two rows.
func (r *Reconciler[V]) SetSpacing(spacing float64) *Reconciler[V] {
	r.spacing = max(spacing, 0)
	return r
}

// Spacing returns the gap between two rows.
func (r *Reconciler[V]) Spacing() float64 {
	return r.spacing
}

// SetDefaultHeight sets the height of rows without a reported height.
func (r *Reconciler[V]) SetDefaultHeight(height float64) *Reconciler[V] {
	r.defaultHeight = max(height, 0)
	return r
}

// DefaultHeight returns the height of rows without a reported height.
func (r *Reconciler[V]) DefaultHeight() float64 {
	return r.defaultHeight
}

// SetAppearDuration sets the length of the appear animation.
func (r *Reconciler[V]) SetAppearDuration(d time.Duration) *Reconciler[V] {
	r.duration = max(d, 0)
	return r
}

// AppearDuration returns the length of the appear animation.
func (r *Reconciler[V]) AppearDuration() time.Duration {
	return r.duration
}

// SetFrameInterval sets the step between two animation frames.
func (r *Reconciler[V]) SetFrameInterval(d time.Duration) *Reconciler[V] {
	if d > 0 {
		r.frame = d
	}
	return r
}

// SetContentLengthFunc sets a handler called whenever the total content
// length changes.
func (r *Reconciler[V]) SetContentLengthFunc(handler func(length float64)) *Reconciler[V] {
	r.lengthChanged = handler
	return r
}

// SetRedrawFunc sets a handler called whenever the materialized rows or their
// opacity change.
func (r *Reconciler[V]) SetRedrawFunc(handler func()) *Reconciler[V] {
	r.redraw = handler
	return r
}

// SetWidth pins the width of every row to the container width.
func (r *Reconciler[V]) SetWidth(width float64) {
	width = max(width, 0)
	if width == r.width {
		return
	}
	r.width = width
	r.table.SetWidth(width)
	for _, e := range r.visible {
		e.row.Rect.Width = width
	}
	r.Reconcile()
}

// Width returns the container width.
func (r *Reconciler[V]) Width() float64 {
	return r.width
}

// SetViewport moves the viewport and reconciles.
func (r *Reconciler[V]) SetViewport(viewport geometry.Rect) {
	r.viewport = viewport
	r.Reconcile()
}

// Viewport returns the current viewport.
func (r *Reconciler[V]) Viewport() geometry.Rect {
	return r.viewport
}

// Reload tears down every row, rebuilds the geometry from the provider's
// current count and reconciles.
func (r *Reconciler[V]) Reload() {
	r.clear()

	count := 0
	if r.provider != nil {
		count = r.provider.Count()
	}
	table, length := geometry.Build(count, r.width, r.heightFunc(), r.defaultHeight, r.spacing)
	r.table = table
	r.setLength(length)
	r.Reconcile()
}

// ReloadRow forces the row at index to be re-measured and rebuilt the next
// time it is reconciled, then reconciles.
func (r *Reconciler[V]) ReloadRow(index int) {
	if index < 0 || index >= len(r.table) {
		r.logger.Warn("reload of unknown row ignored", "index", index, "rows", len(r.table))
		return
	}
	r.pending[index] = struct{}{}
	r.Reconcile()
}

// Close tears down every row and forgets the geometry.
func (r *Reconciler[V]) Close() {
	r.clear()
	r.setLength(0)
}

func (r *Reconciler[V]) clear() {
	for _, index := range r.VisibleIndices() {
		r.teardown(index)
	}
	r.table = nil
	clear(r.pending)
}

// Reconcile synchronizes the visible set with the viewport. Passes restart
// whenever a forced layout or a stale row changes the geometry; the number of
// restarts is bounded by the stale and pending rows.
func (r *Reconciler[V]) Reconcile() {
	limit := len(r.table) + len(r.pending) + 2
	for range limit {
		if !r.pass() {
			return
		}
	}
	r.logger.Error("reconcile did not converge; row heights changed during the pass", "passes", limit)
}

// pass runs one diff and reports whether it has to be restarted.
func (r *Reconciler[V]) pass() bool {
	previous := make(map[int]struct{}, len(r.visible))
	for index := range r.visible {
		previous[index] = struct{}{}
	}

	for _, g := range geometry.Intersecting(r.table, r.viewport) {
		if _, ok := r.pending[g.Index]; ok {
			delete(r.pending, g.Index)
			if r.relayout(g.Index) {
				return true
			}
		}

		e, shown := r.visible[g.Index]
		switch {
		case g.Valid && shown:
			e.row = g
			delete(previous, g.Index)
		case g.Valid:
			r.materialize(g)
		default:
			if shown {
				r.teardown(g.Index)
			}
			g.Valid = true
			r.table[g.Index] = g
			r.materialize(g)
			return true
		}
	}

	gone := make([]int, 0, len(previous))
	for index := range previous {
		gone = append(gone, index)
	}
	slices.Sort(gone)
	for _, index := range gone {
		r.teardown(index)
	}
	return false
}

// relayout rebuilds a materialized row after re-measuring it and shifts the
// rows below it. It reports false when the row is not materialized.
func (r *Reconciler[V]) relayout(index int) bool {
	e, ok := r.visible[index]
	if !ok {
		r.logger.Warn("forced re-layout of a row that is not displayed", "index", index)
		return false
	}

	height := r.heightOf(index)
	rect := geometry.Rect{X: e.row.Rect.X, Y: e.row.Rect.Y, Width: r.width, Height: height}

	r.teardown(index)
	r.table = geometry.InvalidateFrom(r.table, index, rect, r.spacing)
	r.materialize(r.table[index])
	r.setLength(r.table.Length())
	return true
}

func (r *Reconciler[V]) materialize(g geometry.Row) {
	view := r.provider.ViewFor(g.Index)
	r.observer.WillDisplay(g.Index, view)

	e := &entry[V]{row: g, view: view, attached: true}
	r.visible[g.Index] = e
	r.setAlpha(e, 0)
	r.animateIn(e)
	r.changed()
}

func (r *Reconciler[V]) teardown(index int) {
	e, ok := r.visible[index]
	if !ok {
		return
	}
	delete(r.visible, index)
	e.attached = false
	r.observer.DidEndDisplay(index, e.view)
	r.changed()
}

func (r *Reconciler[V]) heightOf(index int) float64 {
	var (
		h  float64
		ok bool
	)
	if r.heights != nil {
		h, ok = r.heights.HeightFor(index)
	}
	return geometry.Length(h, ok, r.defaultHeight)
}

func (r *Reconciler[V]) heightFunc() geometry.HeightFunc {
	if r.heights == nil {
		return nil
	}
	return r.heights.HeightFor
}

func (r *Reconciler[V]) setLength(length float64) {
	if length == r.length {
		return
	}
	r.length = length
	if r.lengthChanged != nil {
		r.lengthChanged(length)
	}
}

func (r *Reconciler[V]) changed() {
	if r.redraw != nil {
		r.redraw()
	}
}
