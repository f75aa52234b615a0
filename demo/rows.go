package demo

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v3"
	"github.com/gdamore/tcell/v3/color"
	"github.com/google/uuid"

	"github.com/ayn2op/dyntable"
)

const loadingText = "loading…"

// Rows shows the items of one kind in a DynamicTable. It is both the table's
// data source and its delegate.
//
// Text and file items are resolved when their row is first measured. Remote
// items are fetched when their row is about to be displayed and the row is
// re-measured once the document arrives. Rows near the edges of the visible
// area are prefetched after each row finished appearing.
type Rows struct {
	source   *Source
	kind     Kind
	prefetch int
	ctx      context.Context
	logger   *log.Logger

	// post runs f on the goroutine owning the table. It must not run f before
	// returning.
	post     func(f func())
	selected func(index int, item Item)

	// loads maps a displayed view to the item whose load it started. Indices
	// shift when items are inserted or removed, IDs do not.
	loads map[dyntable.Primitive]uuid.UUID

	prefetching atomic.Bool
}

var (
	_ dyntable.DataSource = (*Rows)(nil)
	_ dyntable.Delegate   = (*Rows)(nil)
)

// NewRows returns rows showing the source's items of kind. Loads started by
// the rows are bound to ctx.
func NewRows(ctx context.Context, source *Source, kind Kind, post func(f func())) *Rows {
	return &Rows{
		source: source,
		kind:   kind,
		ctx:    ctx,
		logger: log.Default(),
		post:   post,
		loads:  make(map[dyntable.Primitive]uuid.UUID),
	}
}

// SetKind switches to the items of kind. Call ReloadData on the table
// afterwards.
func (r *Rows) SetKind(kind Kind) *Rows {
	r.source.CancelAll()
	r.kind = kind
	return r
}

// Kind returns the kind shown.
func (r *Rows) Kind() Kind {
	return r.kind
}

// SetPrefetch sets how many rows beyond each edge of the visible area are
// loaded ahead. Zero disables prefetching.
func (r *Rows) SetPrefetch(depth int) *Rows {
	r.prefetch = max(depth, 0)
	return r
}

// SetLogger sets the logger.
func (r *Rows) SetLogger(logger *log.Logger) *Rows {
	if logger != nil {
		r.logger = logger
	}
	return r
}

// SetSelectedFunc sets a handler called when a row is clicked.
func (r *Rows) SetSelectedFunc(handler func(index int, item Item)) *Rows {
	r.selected = handler
	return r
}

// Remove deletes the item at index and reloads the table.
func (r *Rows) Remove(t *dyntable.DynamicTable, index int) error {
	if _, err := r.source.Remove(r.kind, index); err != nil {
		return err
	}
	t.ReloadData()
	return nil
}

// Insert adds an item before index and reloads the table.
func (r *Rows) Insert(t *dyntable.DynamicTable, index int, value string) error {
	if _, err := r.source.Insert(r.kind, index, value); err != nil {
		return err
	}
	t.ReloadData()
	return nil
}

// RowCount implements dyntable.DataSource.
func (r *Rows) RowCount() int {
	return r.source.Count(r.kind)
}

// RowView implements dyntable.DataSource.
func (r *Rows) RowView(t *dyntable.DynamicTable, index int) dyntable.Primitive {
	return r.view(index)
}

// RowHeight implements dyntable.Delegate. Rows are measured at the table's
// row width; before the first draw the width is unknown and the default
// height is used.
func (r *Rows) RowHeight(t *dyntable.DynamicTable, index int) (float64, bool) {
	width := int(math.Floor(t.RowWidth()))
	if width <= 0 {
		return 0, false
	}
	return float64(r.view(index).Height(width)), true
}

// WillDisplayRow implements dyntable.Delegate.
func (r *Rows) WillDisplayRow(t *dyntable.DynamicTable, index int, view dyntable.Primitive) {
	if r.kind != KindRemote {
		return
	}
	if _, ok := r.source.Cached(r.kind, index); ok {
		return
	}
	it, err := r.source.Item(r.kind, index)
	if err != nil {
		return
	}
	r.loads[view] = it.ID

	kind := r.kind
	err = r.source.Load(r.ctx, kind, index, func(res Result) {
		r.post(func() {
			if r.kind != kind {
				return
			}
			// The row may have moved while the document was loading.
			if index := r.source.IndexOf(kind, res.ID); index >= 0 {
				if _, shown := t.ViewForRow(index); shown {
					t.ReloadRow(index)
				}
			}
		})
	})
	if err != nil {
		r.logger.Warn("load failed to start", "index", index, "err", err)
	}
}

// DidDisplayRow implements dyntable.Delegate. A row whose measured height no
// longer fits its content is laid out again, then the rows around the
// visible area are prefetched.
func (r *Rows) DidDisplayRow(t *dyntable.DynamicTable, index int, view dyntable.Primitive) {
	current, ok := t.ViewForRow(index)
	if !ok || current != view {
		return
	}

	if row, ok := view.(*dyntable.TextRow); ok {
		rect, _ := t.RowRect(index)
		width := int(math.Floor(t.RowWidth()))
		if width > 0 && float64(row.Height(width)) != rect.Height {
			t.ReloadRow(index)
			return
		}
	}

	r.startPrefetch(t)
}

// DidEndDisplayRow implements dyntable.Delegate. The load the view started is
// cancelled by item, since index may no longer point at the same item.
func (r *Rows) DidEndDisplayRow(t *dyntable.DynamicTable, index int, view dyntable.Primitive) {
	if id, ok := r.loads[view]; ok {
		delete(r.loads, view)
		r.source.CancelItem(id)
	}
}

// SelectRow implements dyntable.Delegate.
func (r *Rows) SelectRow(t *dyntable.DynamicTable, index int) {
	it, err := r.source.Item(r.kind, index)
	if err != nil {
		r.logger.Warn("selected row has no item", "index", index, "err", err)
		return
	}
	r.logger.Debug("row selected", "index", index, "id", it.ID)
	if r.selected != nil {
		r.selected(index, it)
	}
}

// startPrefetch loads the rows returned by PrefetchRows in the background.
// At most one prefetch runs at a time.
func (r *Rows) startPrefetch(t *dyntable.DynamicTable) {
	if r.prefetch == 0 {
		return
	}
	indices := t.PrefetchRows(r.prefetch)
	if len(indices) == 0 || !r.prefetching.CompareAndSwap(false, true) {
		return
	}
	kind := r.kind
	go func() {
		defer r.prefetching.Store(false)
		if err := r.source.Prefetch(r.ctx, kind, indices); err != nil {
			r.logger.Debug("prefetch incomplete", "kind", kind, "err", err)
		}
	}()
}

// view builds the view of the row at index from what is loaded so far.
func (r *Rows) view(index int) *dyntable.TextRow {
	it, err := r.source.Item(r.kind, index)
	if err != nil {
		return errorRow(err)
	}
	if r.kind != KindRemote {
		// Local items resolve synchronously and cache their result.
		if err := r.source.Load(r.ctx, r.kind, index, func(Result) {}); err != nil {
			return errorRow(err)
		}
	}

	row := dyntable.NewTextRow(loadingText)
	row.SetBorderPadding(0, 0, 1, 1)
	if r.kind == KindText {
		row.SetCaption(fmt.Sprintf("#%d", index+1))
	} else {
		row.SetCaption(it.Value)
	}

	res, ok := r.source.Cached(r.kind, index)
	switch {
	case !ok:
		row.SetTextStyle(tcell.StyleDefault.Foreground(dyntable.Styles.PlaceholderColor).Background(dyntable.Styles.PrimitiveBackgroundColor))
	case res.Err != nil:
		row.SetText(res.Err.Error()).
			SetTextStyle(tcell.StyleDefault.Foreground(color.Red).Background(dyntable.Styles.PrimitiveBackgroundColor))
	default:
		row.SetText(res.Text)
	}
	return row
}

func errorRow(err error) *dyntable.TextRow {
	return dyntable.NewTextRow(err.Error()).
		SetTextStyle(tcell.StyleDefault.Foreground(color.Red).Background(dyntable.Styles.PrimitiveBackgroundColor))
}
