package dyntable

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v3"
	"github.com/gdamore/tcell/v3/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayn2op/dyntable/reconcile"
)

var rowColors = []tcell.Color{color.Red, color.Green, color.Blue, color.Yellow}

func rowColor(index int) tcell.Color {
	return rowColors[index%len(rowColors)]
}

// testSource is both data source and delegate. Rows are boxes filled with a
// color derived from their index.
type testSource struct {
	BaseDelegate

	count    int
	height   float64
	heights  map[int]float64
	made     int
	events   []string
	selected []int
}

func (s *testSource) RowCount() int {
	return s.count
}

func (s *testSource) RowView(_ *DynamicTable, index int) Primitive {
	s.made++
	return NewBox().SetBackgroundColor(rowColor(index))
}

func (s *testSource) RowHeight(_ *DynamicTable, index int) (float64, bool) {
	if h, ok := s.heights[index]; ok {
		return h, true
	}
	return s.height, s.height > 0
}

func (s *testSource) WillDisplayRow(_ *DynamicTable, index int, _ Primitive) {
	s.events = append(s.events, fmt.Sprintf("will:%d", index))
}

func (s *testSource) DidDisplayRow(_ *DynamicTable, index int, _ Primitive) {
	s.events = append(s.events, fmt.Sprintf("did:%d", index))
}

func (s *testSource) DidEndDisplayRow(_ *DynamicTable, index int, _ Primitive) {
	s.events = append(s.events, fmt.Sprintf("end:%d", index))
}

func (s *testSource) SelectRow(_ *DynamicTable, index int) {
	s.selected = append(s.selected, index)
}

func (s *testSource) take() []string {
	events := s.events
	s.events = nil
	return events
}

// newTestTable returns a 20x10 table without scroll bar showing count rows
// of height 3.
func newTestTable(t *testing.T, count int) (*DynamicTable, *testSource, *reconcile.Queue) {
	t.Helper()
	source := &testSource{count: count, height: 3, heights: make(map[int]float64)}
	queue := reconcile.NewQueue()
	table := NewDynamicTable().
		SetDataSource(source).
		SetDelegate(source).
		SetScheduler(queue).
		SetLogger(log.New(&bytes.Buffer{})).
		SetScrollBarVisible(false)
	table.SetRect(0, 0, 20, 10)
	table.ReloadData()
	return table, source, queue
}

func TestDynamicTableShowsRowsInViewport(t *testing.T) {
	table, source, queue := newTestTable(t, 100)

	assert.Equal(t, []int{0, 1, 2, 3}, table.VisibleRows())
	assert.Equal(t, []string{"will:0", "will:1", "will:2", "will:3"}, source.take())
	assert.Equal(t, 300.0, table.ContentLength())
	assert.Equal(t, 100, table.RowCount())
	assert.Equal(t, 20.0, table.RowWidth())

	queue.Advance(time.Second)
	assert.Equal(t, []string{"did:0", "did:1", "did:2", "did:3"}, source.take())
}

func TestDynamicTableSubCellScrollDoesNotReconcile(t *testing.T) {
	table, source, _ := newTestTable(t, 100)
	source.take()
	made := source.made

	table.SetOffset(0, 0.9)
	x, y := table.Offset()
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 0.9, y)
	assert.Equal(t, made, source.made)
	assert.Empty(t, source.take())

	table.ScrollBy(0, 2.5)
	assert.Equal(t, []int{1, 2, 3, 4}, table.VisibleRows())
	assert.Equal(t, []string{"will:4", "end:0"}, source.take())
}

func TestDynamicTableClampsOffset(t *testing.T) {
	table, _, _ := newTestTable(t, 100)

	table.SetOffset(7, 1e9)
	x, y := table.Offset()
	assert.Equal(t, 0.0, x, "no horizontal scrolling at zoom 1")
	assert.Equal(t, 290.0, y)
	assert.Equal(t, []int{96, 97, 98, 99}, table.VisibleRows())

	table.SetOffset(-4, -4)
	x, y = table.Offset()
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 0.0, y)
}

func TestDynamicTableZoomKeepsTopLeft(t *testing.T) {
	table, _, _ := newTestTable(t, 100)
	table.SetOffset(0, 30)

	table.SetZoom(2)
	_, y := table.Offset()
	assert.Equal(t, 60.0, y)
	assert.Equal(t, []int{10, 11}, table.VisibleRows())

	table.SetOffset(100, 60)
	x, _ := table.Offset()
	assert.Equal(t, 20.0, x)

	table.SetZoom(9)
	assert.Equal(t, float64(DefaultMaxZoom), table.Zoom())
	table.SetZoom(0.5)
	assert.Equal(t, float64(DefaultMinZoom), table.Zoom())
}

func TestDynamicTableZoomBounds(t *testing.T) {
	table, _, _ := newTestTable(t, 10)
	table.SetZoom(4)

	table.SetZoomBounds(2, 3)
	assert.Equal(t, 3.0, table.Zoom())
	minZoom, maxZoom := table.ZoomBounds()
	assert.Equal(t, 2.0, minZoom)
	assert.Equal(t, 3.0, maxZoom)

	table.SetZoomBounds(-1, 0)
	minZoom, maxZoom = table.ZoomBounds()
	assert.Equal(t, float64(DefaultMinZoom), minZoom)
	assert.Equal(t, float64(DefaultMinZoom), maxZoom)
	assert.Equal(t, 1.0, table.Zoom())
}

func TestDynamicTableRowAt(t *testing.T) {
	table, _, _ := newTestTable(t, 100)

	index, ok := table.RowAt(5, 4)
	require.True(t, ok)
	assert.Equal(t, 1, index)

	_, ok = table.RowAt(20, 0)
	assert.False(t, ok)

	table.SetZoom(2)
	index, ok = table.RowAt(0, 7)
	require.True(t, ok)
	assert.Equal(t, 1, index)
}

func TestDynamicTableSelectRowAt(t *testing.T) {
	table, source, _ := newTestTable(t, 100)
	assert.Equal(t, -1, table.Selected())

	assert.True(t, table.SelectRowAt(3, 7))
	assert.Equal(t, 2, table.Selected())
	assert.Equal(t, []int{2}, source.selected)

	assert.False(t, table.SelectRowAt(3, 50))
	assert.Equal(t, []int{2}, source.selected)

	table.ReloadData()
	assert.Equal(t, -1, table.Selected())
}

func TestDynamicTableReloadRowShiftsRowsBelow(t *testing.T) {
	table, source, _ := newTestTable(t, 100)
	source.take()

	source.heights[1] = 6
	table.ReloadRow(1)

	rect, ok := table.RowRect(2)
	require.True(t, ok)
	assert.Equal(t, 9.0, rect.Y)
	assert.Equal(t, 303.0, table.ContentLength())
	assert.Equal(t, []int{0, 1, 2}, table.VisibleRows())

	events := source.take()
	assert.Contains(t, events, "end:1")
	assert.Contains(t, events, "will:1")
	assert.Contains(t, events, "end:3")
}

func TestDynamicTableReloadDataRebuildsRows(t *testing.T) {
	table, source, _ := newTestTable(t, 100)
	var lengths []float64
	table.SetContentLengthFunc(func(length float64) { lengths = append(lengths, length) })
	table.SetOffset(0, 200)
	source.take()

	source.count = 5
	table.ReloadData()

	assert.Equal(t, []float64{15}, lengths)
	_, y := table.Offset()
	assert.Equal(t, 5.0, y)
	assert.Equal(t, []int{1, 2, 3, 4}, table.VisibleRows())
	assert.Contains(t, source.take(), "end:66")
}

func TestDynamicTablePrefetchRows(t *testing.T) {
	table, _, _ := newTestTable(t, 100)

	assert.Nil(t, table.PrefetchRows(0))
	assert.Equal(t, []int{4, 5}, table.PrefetchRows(2))

	table.SetOffset(0, 30)
	assert.Equal(t, []int{9, 14, 8, 15}, table.PrefetchRows(2))
}

func TestDynamicTableDrawsRowsAtZoomedPositions(t *testing.T) {
	table, _, queue := newTestTable(t, 100)
	queue.Advance(time.Second)

	screen := newTestScreen(20, 10)
	table.Draw(screen)
	assert.Equal(t, rowColor(0), screen.background(0, 0))
	assert.Equal(t, rowColor(0), screen.background(19, 2))
	assert.Equal(t, rowColor(1), screen.background(0, 3))
	assert.Equal(t, rowColor(3), screen.background(0, 9))

	table.SetZoom(2)
	queue.Advance(time.Second)
	screen = newTestScreen(20, 10)
	table.Draw(screen)
	assert.Equal(t, rowColor(0), screen.background(0, 5))
	assert.Equal(t, rowColor(1), screen.background(0, 6))
}

func TestDynamicTableDimsAppearingRows(t *testing.T) {
	table, _, queue := newTestTable(t, 100)

	screen := newTestScreen(20, 10)
	table.Draw(screen)
	assert.Equal(t, Styles.PrimitiveBackgroundColor, screen.background(0, 0), "transparent rows are not drawn")

	queue.Advance(100 * time.Millisecond)
	table.Draw(screen)
	assert.Equal(t, rowColor(0), screen.background(0, 0))
	assert.True(t, screen.dim(0, 0))

	queue.Advance(time.Second)
	table.Draw(screen)
	assert.False(t, screen.dim(0, 0))
}

func TestDynamicTableScrollBar(t *testing.T) {
	table, _, queue := newTestTable(t, 100)
	table.SetScrollBarVisible(true)
	queue.Advance(time.Second)

	screen := newTestScreen(20, 10)
	table.Draw(screen)
	assert.Equal(t, 19.0, table.RowWidth())
	assert.Equal(t, rowColor(0), screen.background(18, 0))
	assert.NotEqual(t, rowColor(0), screen.background(19, 0))
}

func TestTextRowHeight(t *testing.T) {
	row := NewTextRow("one\ntwo\nthree")
	assert.Equal(t, 3, row.Height(10))

	row.SetCaption("caption")
	assert.Equal(t, 4, row.Height(10))

	row.SetBorders(BordersAll)
	assert.Equal(t, 6, row.Height(10))

	assert.Equal(t, 1, NewTextRow("").Height(10))
}

func TestTextRowDraw(t *testing.T) {
	row := NewTextRow("hello")
	row.SetCaption("cap")
	row.SetRect(0, 0, 10, 3)

	screen := newTestScreen(10, 3)
	row.Draw(screen)
	assert.Equal(t, "cap", screen.line(0))
	assert.Equal(t, "hello", screen.line(1))
	assert.False(t, screen.dim(0, 1))

	row.SetAlpha(0)
	screen = newTestScreen(10, 3)
	row.Draw(screen)
	assert.Equal(t, "", screen.line(1))

	row.SetAlpha(0.5)
	row.Draw(screen)
	assert.Equal(t, "hello", screen.line(1))
	assert.True(t, screen.dim(0, 1))

	row.SetAlpha(7)
	assert.Equal(t, 1.0, row.Alpha())
}

func TestStackSharesRemainingLines(t *testing.T) {
	top, middle, bottom := NewBox(), NewBox(), NewBox()
	stack := NewStack().
		AddItem(top, 0, true).
		AddItem(middle, 0, false).
		AddItem(bottom, 2, false)
	stack.SetRect(0, 0, 10, 11)
	stack.Draw(newTestScreen(10, 11))

	_, y, _, h := top.GetRect()
	assert.Equal(t, []int{0, 5}, []int{y, h})
	_, y, _, h = middle.GetRect()
	assert.Equal(t, []int{5, 4}, []int{y, h})
	_, y, _, h = bottom.GetRect()
	assert.Equal(t, []int{9, 2}, []int{y, h})

	var focused Primitive
	stack.Focus(func(p Primitive) { focused = p })
	assert.Same(t, top, focused)
	assert.Equal(t, 3, stack.ItemCount())
}
