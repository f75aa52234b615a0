package reconcile

import (
	"slices"

	"github.com/ayn2op/dyntable/geometry"
)

// VisibleIndices returns the materialized row indices in ascending order.
func (r *Reconciler[V]) VisibleIndices() []int {
	out := make([]int, 0, len(r.visible))
	for index := range r.visible {
		out = append(out, index)
	}
	slices.Sort(out)
	return out
}

// Materialized returns the geometry of every materialized row as it was when
// the row was attached, in ascending order.
func (r *Reconciler[V]) Materialized() []geometry.Row {
	out := make([]geometry.Row, 0, len(r.visible))
	for _, index := range r.VisibleIndices() {
		out = append(out, r.visible[index].row)
	}
	return out
}

// Each calls fn for every materialized row in ascending order.
func (r *Reconciler[V]) Each(fn func(row geometry.Row, view V, alpha float64)) {
	for _, index := range r.VisibleIndices() {
		e := r.visible[index]
		fn(e.row, e.view, e.alpha)
	}
}

// IsVisible reports whether the row at index is materialized.
func (r *Reconciler[V]) IsVisible(index int) bool {
	_, ok := r.visible[index]
	return ok
}

// View returns the view materialized for the row at index.
func (r *Reconciler[V]) View(index int) (V, bool) {
	e, ok := r.visible[index]
	if !ok {
		var zero V
		return zero, false
	}
	return e.view, true
}

// Alpha returns the current opacity of the materialized row at index.
func (r *Reconciler[V]) Alpha(index int) (float64, bool) {
	e, ok := r.visible[index]
	if !ok {
		return 0, false
	}
	return e.alpha, true
}

// Rows returns a copy of the geometry table.
func (r *Reconciler[V]) Rows() geometry.Table {
	return slices.Clone(r.table)
}

// Count returns the number of rows in the geometry table.
func (r *Reconciler[V]) Count() int {
	return len(r.table)
}

// RowRect returns the rectangle of the row at index.
func (r *Reconciler[V]) RowRect(index int) (geometry.Rect, bool) {
	row, ok := r.table.At(index)
	return row.Rect, ok
}

// Pending returns the rows waiting for a forced layout, in ascending order.
func (r *Reconciler[V]) Pending() []int {
	out := make([]int, 0, len(r.pending))
	for index := range r.pending {
		out = append(out, index)
	}
	slices.Sort(out)
	return out
}

// ContentLength returns the total length of the laid out rows.
func (r *Reconciler[V]) ContentLength() float64 {
	return r.length
}

// RowAt returns the materialized row containing the content point.
func (r *Reconciler[V]) RowAt(x, y float64) (int, bool) {
	return geometry.HitTest(r.Materialized(), x, y)
}

// AboveViewport returns the materialized rows ordered before the rows that
// intersect target.
func (r *Reconciler[V]) AboveViewport(target geometry.Rect) []geometry.Row {
	return geometry.Above(r.table, r.Materialized(), target)
}

// BelowViewport returns the materialized rows ordered after the rows that
// intersect target.
func (r *Reconciler[V]) BelowViewport(target geometry.Rect) []geometry.Row {
	return geometry.Below(r.table, r.Materialized(), target)
}

// AroundViewport returns AboveViewport followed by BelowViewport.
func (r *Reconciler[V]) AroundViewport(target geometry.Rect) []geometry.Row {
	return geometry.Around(r.table, r.Materialized(), target)
}
