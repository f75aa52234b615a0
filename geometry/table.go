package geometry

import "fmt"

// Row is the geometry of one logical row.
//
// Valid is false when Rect was computed before an earlier row was resized and
// must be confirmed before it is treated as authoritative. Rows compare
// structurally.
type Row struct {
	Rect  Rect
	Index int
	Valid bool
}

func (r Row) String() string {
	return fmt.Sprintf("row %d %s valid=%t", r.Index, r.Rect, r.Valid)
}

// Table holds one Row per logical row. Position i always holds the row with
// Index i.
type Table []Row

// HeightFunc reports the height of the row at index. A false second result
// means the collaborator has no opinion and the default applies.
type HeightFunc func(index int) (float64, bool)

// Build lays out count rows top to bottom. Each row gets heightOf(i), or
// defaultHeight when heightOf is nil or reports nothing, and rows are separated
// by spacing. It returns the table and the total content length, which is zero
// for an empty table.
func Build(count int, width float64, heightOf HeightFunc, defaultHeight, spacing float64) (Table, float64) {
	if count <= 0 {
		return Table{}, 0
	}

	t := make(Table, count)
	var y float64
	for i := range count {
		var (
			h  float64
			ok bool
		)
		if heightOf != nil {
			h, ok = heightOf(i)
		}
		h = Length(h, ok, defaultHeight)
		t[i] = Row{
			Rect:  Rect{X: 0, Y: y, Width: width, Height: h},
			Index: i,
			Valid: true,
		}
		y += h + spacing
	}
	return t, max(y-spacing, 0)
}

// InvalidateFrom returns a copy of t in which row start takes rect (keeping
// its current y origin) and every following row is shifted to follow it.
// Row start becomes valid; every row after it is marked stale. An out of range
// start returns an unchanged copy.
func InvalidateFrom(t Table, start int, rect Rect, spacing float64) Table {
	out := make(Table, len(t))
	copy(out, t)
	if start < 0 || start >= len(out) {
		return out
	}

	rect.Y = out[start].Rect.Y
	out[start] = Row{Rect: rect, Index: start, Valid: true}

	y := rect.Bottom() + spacing
	for i := start + 1; i < len(out); i++ {
		r := out[i].Rect
		r.Y = y
		out[i] = Row{Rect: r, Index: i, Valid: false}
		y += r.Height + spacing
	}
	return out
}

// Length returns the total content length of the table.
func (t Table) Length() float64 {
	if len(t) == 0 {
		return 0
	}
	return max(t[len(t)-1].Rect.Bottom(), 0)
}

// SetWidth pins the width of every row. Validity is unaffected.
func (t Table) SetWidth(width float64) {
	for i := range t {
		t[i].Rect.Width = width
	}
}

// At returns the row at index.
func (t Table) At(index int) (Row, bool) {
	if index < 0 || index >= len(t) {
		return Row{}, false
	}
	return t[index], true
}
