package dyntable

import (
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v3"

	"github.com/ayn2op/dyntable/geometry"
	"github.com/ayn2op/dyntable/keybind"
	"github.com/ayn2op/dyntable/reconcile"
)

const (
	// DefaultMinZoom and DefaultMaxZoom bound the zoom scale.
	DefaultMinZoom = 1
	DefaultMaxZoom = 5

	zoomStep  = 0.5
	wheelStep = 3
)

// DynamicTable is a vertically scrolling list of variable-height rows. Only
// the rows that intersect the visible area are asked for a view; rows that
// scroll out of view are detached and handed back through the Delegate.
//
// Row geometry is measured once per ReloadData in content units, where one
// unit is one cell at zoom 1. ReloadRow re-measures a single row and shifts
// every row below it.
//
// All methods must be called from the goroutine running the Application
// event loop.
type DynamicTable struct {
	*Box

	source   DataSource
	delegate Delegate
	rows     *reconcile.Reconciler[Primitive]
	keys     TableKeys

	zoom, minZoom, maxZoom float64

	// Scroll offset in cells of the zoomed content. Only the whole part
	// reaches the reconciler.
	offsetX, offsetY float64

	scrollBar     *ScrollBar
	showScrollBar bool

	selected      int
	contentLength func(length float64)
}

// NewDynamicTable returns an empty table. Set a DataSource and call
// ReloadData to fill it.
func NewDynamicTable() *DynamicTable {
	t := &DynamicTable{
		Box:           NewBox(),
		delegate:      BaseDelegate{},
		keys:          DefaultTableKeys(),
		zoom:          1,
		minZoom:       DefaultMinZoom,
		maxZoom:       DefaultMaxZoom,
		scrollBar:     NewScrollBar(),
		showScrollBar: true,
		selected:      -1,
	}
	adapter := tableRows{t: t}
	t.rows = reconcile.New[Primitive](adapter, nil).
		SetHeights(adapter).
		SetObserver(adapter).
		SetContentLengthFunc(t.contentLengthChanged)
	return t
}

// SetDataSource sets the row supplier. It takes effect on the next
// ReloadData.
func (t *DynamicTable) SetDataSource(source DataSource) *DynamicTable {
	t.source = source
	return t
}

// SetDelegate sets the receiver of layout queries and display notifications.
func (t *DynamicTable) SetDelegate(delegate Delegate) *DynamicTable {
	if delegate == nil {
		delegate = BaseDelegate{}
	}
	t.delegate = delegate
	return t
}

// SetScheduler sets the scheduler driving appear animations, usually the
// Application.
func (t *DynamicTable) SetScheduler(scheduler reconcile.Scheduler) *DynamicTable {
	t.rows.SetScheduler(scheduler)
	return t
}

// SetLogger sets the logger used for layout warnings.
func (t *DynamicTable) SetLogger(logger *log.Logger) *DynamicTable {
	t.rows.SetLogger(logger)
	return t
}

// SetSpacing sets the gap between rows in content units.
func (t *DynamicTable) SetSpacing(spacing float64) *DynamicTable {
	t.rows.SetSpacing(spacing)
	return t
}

// SetDefaultRowHeight sets the height of rows the delegate does not measure.
func (t *DynamicTable) SetDefaultRowHeight(height float64) *DynamicTable {
	t.rows.SetDefaultHeight(height)
	return t
}

// SetAppearDuration sets how long a row takes to fade in. Zero disables the
// animation.
func (t *DynamicTable) SetAppearDuration(d time.Duration) *DynamicTable {
	t.rows.SetAppearDuration(d)
	return t
}

// SetKeys replaces the key bindings.
func (t *DynamicTable) SetKeys(keys TableKeys) *DynamicTable {
	t.keys = keys
	return t
}

// Keys returns the key bindings.
func (t *DynamicTable) Keys() TableKeys {
	return t.keys
}

// SetScrollBarVisible shows or hides the scroll bar in the rightmost column.
func (t *DynamicTable) SetScrollBarVisible(visible bool) *DynamicTable {
	t.showScrollBar = visible
	return t
}

// ScrollBar returns the scroll bar so it can be styled.
func (t *DynamicTable) ScrollBar() *ScrollBar {
	return t.scrollBar
}

// SetContentLengthFunc sets a handler called whenever the total content
// length changes.
func (t *DynamicTable) SetContentLengthFunc(handler func(length float64)) *DynamicTable {
	t.contentLength = handler
	return t
}

// ReloadData detaches every row, measures all rows again and shows the rows
// in the visible area.
func (t *DynamicTable) ReloadData() *DynamicTable {
	t.selected = -1
	_, _, width, _ := t.contentRect()
	t.rows.SetWidth(float64(width))
	t.rows.Reload()
	t.syncViewport()
	return t
}

// ReloadRow re-measures the row at index and rebuilds its view the next time
// it is visible. Rows below it move accordingly.
func (t *DynamicTable) ReloadRow(index int) *DynamicTable {
	t.rows.ReloadRow(index)
	t.syncViewport()
	return t
}

// Close detaches every row.
func (t *DynamicTable) Close() {
	t.rows.Close()
}

// VisibleRows returns the indices of the attached rows in ascending order.
func (t *DynamicTable) VisibleRows() []int {
	return t.rows.VisibleIndices()
}

// ViewForRow returns the attached view of the row at index.
func (t *DynamicTable) ViewForRow(index int) (Primitive, bool) {
	return t.rows.View(index)
}

// RowRect returns the content rectangle of the row at index.
func (t *DynamicTable) RowRect(index int) (geometry.Rect, bool) {
	return t.rows.RowRect(index)
}

// RowCount returns the number of rows measured by the last reload.
func (t *DynamicTable) RowCount() int {
	return t.rows.Count()
}

// RowWidth returns the width every row is laid out at, in content units. It
// is zero until the table has been drawn once.
func (t *DynamicTable) RowWidth() float64 {
	return t.rows.Width()
}

// ContentLength returns the total height of the rows in content units.
func (t *DynamicTable) ContentLength() float64 {
	return t.rows.ContentLength()
}

// Selected returns the index of the last clicked row, or -1.
func (t *DynamicTable) Selected() int {
	return t.selected
}

// SetZoomBounds sets the smallest and largest zoom scale. The current zoom is
// clamped into the new bounds.
func (t *DynamicTable) SetZoomBounds(minZoom, maxZoom float64) *DynamicTable {
	if !(minZoom > 0) || math.IsInf(minZoom, 0) {
		minZoom = DefaultMinZoom
	}
	t.minZoom, t.maxZoom = minZoom, max(maxZoom, minZoom)
	t.SetZoom(t.zoom)
	return t
}

// ZoomBounds returns the smallest and largest zoom scale.
func (t *DynamicTable) ZoomBounds() (float64, float64) {
	return t.minZoom, t.maxZoom
}

// SetZoom scales the content. The top left content point stays in place.
func (t *DynamicTable) SetZoom(zoom float64) *DynamicTable {
	if math.IsNaN(zoom) {
		return t
	}
	zoom = min(max(zoom, t.minZoom), t.maxZoom)
	if zoom == t.zoom {
		return t
	}
	t.offsetX = t.offsetX / t.zoom * zoom
	t.offsetY = t.offsetY / t.zoom * zoom
	t.zoom = zoom
	t.clampOffsets()
	t.rows.SetViewport(t.viewport())
	return t
}

// Zoom returns the current zoom scale.
func (t *DynamicTable) Zoom() float64 {
	return t.zoom
}

// SetOffset scrolls to the given offset in cells of the zoomed content. The
// offset is clamped to the scrollable range. Rows are only reconciled when
// the offset crosses a whole cell.
func (t *DynamicTable) SetOffset(x, y float64) *DynamicTable {
	before := t.viewport()
	t.offsetX, t.offsetY = x, y
	t.clampOffsets()
	if viewport := t.viewport(); viewport != before {
		t.rows.SetViewport(viewport)
	}
	return t
}

// Offset returns the scroll offset.
func (t *DynamicTable) Offset() (float64, float64) {
	return t.offsetX, t.offsetY
}

// ScrollBy moves the offset by the given deltas.
func (t *DynamicTable) ScrollBy(dx, dy float64) *DynamicTable {
	return t.SetOffset(t.offsetX+dx, t.offsetY+dy)
}

// ScrollToRow scrolls so that the row at index starts at the top.
func (t *DynamicTable) ScrollToRow(index int) *DynamicTable {
	rect, ok := t.rows.RowRect(index)
	if !ok {
		return t
	}
	return t.SetOffset(t.offsetX, rect.Y*t.zoom)
}

// RowAt returns the row drawn at the screen position.
func (t *DynamicTable) RowAt(x, y int) (int, bool) {
	cx, cy, width, height := t.contentRect()
	if x < cx || x >= cx+width || y < cy || y >= cy+height {
		return -1, false
	}
	contentX := (float64(x-cx) + math.Floor(t.offsetX)) / t.zoom
	contentY := (float64(y-cy) + math.Floor(t.offsetY)) / t.zoom
	return t.rows.RowAt(contentX, contentY)
}

// SelectRowAt selects the row drawn at the screen position and reports it to
// the delegate.
func (t *DynamicTable) SelectRowAt(x, y int) bool {
	index, ok := t.RowAt(x, y)
	if !ok {
		return false
	}
	t.selected = index
	t.delegate.SelectRow(t, index)
	return true
}

// PrefetchRows returns up to depth row indices on each side of the attached
// rows, nearest first. Rows at the edges of the viewport are the ones outside
// its middle band; their neighbours are the next to scroll into view.
func (t *DynamicTable) PrefetchRows(depth int) []int {
	visible := t.rows.VisibleIndices()
	if depth <= 0 || len(visible) == 0 {
		return nil
	}

	v := t.viewport()
	band := geometry.Rect{X: v.X, Y: v.Y + v.Height/3, Width: v.Width, Height: v.Height / 3}
	first, last := visible[0], visible[len(visible)-1]
	if above := t.rows.AboveViewport(band); len(above) > 0 {
		first = above[0].Index
	}
	if below := t.rows.BelowViewport(band); len(below) > 0 {
		last = below[len(below)-1].Index
	}

	var out []int
	for k := 1; k <= depth; k++ {
		if first-k >= 0 {
			out = append(out, first-k)
		}
		if last+k < t.rows.Count() {
			out = append(out, last+k)
		}
	}
	return out
}

// Draw draws the attached rows at their zoomed positions.
func (t *DynamicTable) Draw(screen tcell.Screen) {
	t.DrawForSubclass(screen, t)
	t.layout()

	x, y, width, height := t.contentRect()
	if width <= 0 || height <= 0 {
		return
	}

	clip := newRowScreen(screen, x, y, width, height)
	ox, oy := math.Floor(t.offsetX), math.Floor(t.offsetY)
	t.rows.Each(func(row geometry.Row, view Primitive, alpha float64) {
		top := int(math.Floor(row.Rect.Y*t.zoom - oy))
		bottom := int(math.Floor(row.Rect.Bottom()*t.zoom - oy))
		left := int(math.Floor(row.Rect.X*t.zoom - ox))
		right := int(math.Floor(row.Rect.Right()*t.zoom - ox))
		if bottom <= top || right <= left {
			return
		}
		view.SetRect(x+left, y+top, right-left, bottom-top)

		target := clip
		if _, ok := view.(reconcile.Fader); !ok {
			if alpha <= 0 {
				return
			}
			target.dim = alpha < 1
		}
		view.Draw(target)
	})

	if t.scrollBarShown() {
		t.scrollBar.SetRect(x+width, y, 1, height)
		t.scrollBar.SetPosition(int(math.Ceil(t.rows.ContentLength()*t.zoom)), height, int(oy))
		t.scrollBar.Draw(screen)
	}
}

// InputHandler scrolls and zooms according to the table's key bindings.
func (t *DynamicTable) InputHandler(event *tcell.EventKey) Command {
	_, _, _, height := t.contentRect()
	page := float64(max(height-1, 1))

	switch {
	case keybind.Matches(event, t.keys.LineUp):
		t.ScrollBy(0, -1)
	case keybind.Matches(event, t.keys.LineDown):
		t.ScrollBy(0, 1)
	case keybind.Matches(event, t.keys.PageUp):
		t.ScrollBy(0, -page)
	case keybind.Matches(event, t.keys.PageDown):
		t.ScrollBy(0, page)
	case keybind.Matches(event, t.keys.Top):
		t.SetOffset(t.offsetX, 0)
	case keybind.Matches(event, t.keys.Bottom):
		t.SetOffset(t.offsetX, math.Inf(1))
	case keybind.Matches(event, t.keys.Left):
		t.ScrollBy(-1, 0)
	case keybind.Matches(event, t.keys.Right):
		t.ScrollBy(1, 0)
	case keybind.Matches(event, t.keys.ZoomIn):
		t.SetZoom(t.zoom + zoomStep)
	case keybind.Matches(event, t.keys.ZoomOut):
		t.SetZoom(t.zoom - zoomStep)
	case keybind.Matches(event, t.keys.ZoomReset):
		t.SetZoom(1)
	default:
		return nil
	}
	return RedrawCommand{}
}

// MouseHandler scrolls on wheel events and selects rows on click.
func (t *DynamicTable) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	x, y := event.Position()
	if !t.InRect(x, y) {
		return nil, nil
	}

	switch action {
	case MouseScrollUp:
		t.ScrollBy(0, -wheelStep)
	case MouseScrollDown:
		t.ScrollBy(0, wheelStep)
	case MouseScrollLeft:
		t.ScrollBy(-wheelStep, 0)
	case MouseScrollRight:
		t.ScrollBy(wheelStep, 0)
	case MouseLeftDown:
		return nil, SetFocusCommand{Target: t}
	case MouseLeftClick:
		if !t.SelectRowAt(x, y) {
			return nil, nil
		}
	default:
		return nil, nil
	}
	return nil, RedrawCommand{}
}

// layout pins the content width to the table's width and reconciles the
// viewport.
func (t *DynamicTable) layout() {
	_, _, width, _ := t.contentRect()
	t.rows.SetWidth(float64(width))
	t.syncViewport()
}

func (t *DynamicTable) syncViewport() {
	t.clampOffsets()
	t.rows.SetViewport(t.viewport())
}

// viewport converts the whole-cell scroll offset and the zoom into the
// content rectangle on screen.
func (t *DynamicTable) viewport() geometry.Rect {
	_, _, width, height := t.contentRect()
	return geometry.Rect{
		X:      math.Floor(t.offsetX),
		Y:      math.Floor(t.offsetY),
		Width:  float64(width),
		Height: float64(height),
	}.Scale(t.zoom)
}

func (t *DynamicTable) contentRect() (int, int, int, int) {
	x, y, width, height := t.GetInnerRect()
	if t.showScrollBar && width > 1 {
		width--
	}
	return x, y, width, height
}

func (t *DynamicTable) scrollBarShown() bool {
	_, _, width, _ := t.GetInnerRect()
	return t.showScrollBar && width > 1
}

func (t *DynamicTable) clampOffsets() {
	_, _, width, height := t.contentRect()
	maxX := max(float64(width)*t.zoom-float64(width), 0)
	maxY := max(t.rows.ContentLength()*t.zoom-float64(height), 0)
	t.offsetX = clamp(t.offsetX, maxX)
	t.offsetY = clamp(t.offsetY, maxY)
}

func (t *DynamicTable) contentLengthChanged(length float64) {
	t.clampOffsets()
	if t.contentLength != nil {
		t.contentLength(length)
	}
}

func clamp(value, upper float64) float64 {
	if math.IsNaN(value) {
		return 0
	}
	return min(max(value, 0), upper)
}

var _ Primitive = &DynamicTable{}
