package dyntable

import "github.com/ayn2op/dyntable/reconcile"

// DataSource supplies the rows of a DynamicTable. RowCount is read once per
// ReloadData. RowView is called each time a row scrolls into view and may
// return a fresh primitive every time; a nil view is replaced by an empty box.
type DataSource interface {
	RowCount() int
	RowView(t *DynamicTable, index int) Primitive
}

// Delegate receives layout queries and display notifications. Embed
// BaseDelegate to implement only the methods you need.
type Delegate interface {
	// RowHeight returns the height of the row in content units. A false
	// second result selects the table's default row height.
	RowHeight(t *DynamicTable, index int) (float64, bool)
	// WillDisplayRow is called before the view is attached.
	WillDisplayRow(t *DynamicTable, index int, view Primitive)
	// DidDisplayRow is called once the appear animation finished. It is also
	// called when the row was detached while animating.
	DidDisplayRow(t *DynamicTable, index int, view Primitive)
	// DidEndDisplayRow is called after the view was detached.
	DidEndDisplayRow(t *DynamicTable, index int, view Primitive)
	// SelectRow is called when a row is clicked.
	SelectRow(t *DynamicTable, index int)
}

// BaseDelegate implements every Delegate method as a no-op.
type BaseDelegate struct{}

func (BaseDelegate) RowHeight(*DynamicTable, int) (float64, bool)  { return 0, false }
func (BaseDelegate) WillDisplayRow(*DynamicTable, int, Primitive)   {}
func (BaseDelegate) DidDisplayRow(*DynamicTable, int, Primitive)    {}
func (BaseDelegate) DidEndDisplayRow(*DynamicTable, int, Primitive) {}
func (BaseDelegate) SelectRow(*DynamicTable, int)                   {}

// tableRows adapts the table's data source and delegate to the reconciler.
type tableRows struct {
	t *DynamicTable
}

var (
	_ reconcile.Provider[Primitive] = tableRows{}
	_ reconcile.Heights             = tableRows{}
	_ reconcile.Observer[Primitive] = tableRows{}
)

func (r tableRows) Count() int {
	if r.t.source == nil {
		return 0
	}
	return max(r.t.source.RowCount(), 0)
}

func (r tableRows) ViewFor(index int) Primitive {
	var view Primitive
	if r.t.source != nil {
		view = r.t.source.RowView(r.t, index)
	}
	if view == nil {
		view = NewBox().SetBackgroundColor(Styles.PlaceholderColor)
	}
	return view
}

func (r tableRows) HeightFor(index int) (float64, bool) {
	return r.t.delegate.RowHeight(r.t, index)
}

func (r tableRows) WillDisplay(index int, view Primitive) {
	r.t.delegate.WillDisplayRow(r.t, index, view)
}

func (r tableRows) DidDisplay(index int, view Primitive) {
	r.t.delegate.DidDisplayRow(r.t, index, view)
}

func (r tableRows) DidEndDisplay(index int, view Primitive) {
	r.t.delegate.DidEndDisplayRow(r.t, index, view)
}
