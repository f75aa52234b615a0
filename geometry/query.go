package geometry

import "slices"

// Intersecting returns the rows whose rectangle intersects r, ordered by
// index.
func Intersecting(rows []Row, r Rect) []Row {
	var out []Row
	for _, row := range rows {
		if r.Intersects(row.Rect) {
			out = append(out, row)
		}
	}
	sortByIndex(out)
	return out
}

// Above returns the materialized rows ordered before the first row of t that
// intersects r. It returns nothing when r selects no rows.
func Above(t Table, materialized []Row, r Rect) []Row {
	inRect := Intersecting(t, r)
	if len(inRect) == 0 {
		return nil
	}
	top := inRect[0].Index

	var out []Row
	for _, row := range materialized {
		if row.Index < top {
			out = append(out, row)
		}
	}
	sortByIndex(out)
	return out
}

// Below returns the materialized rows ordered after the last row of t that
// intersects r. It returns nothing when r selects no rows.
func Below(t Table, materialized []Row, r Rect) []Row {
	inRect := Intersecting(t, r)
	if len(inRect) == 0 {
		return nil
	}
	bottom := inRect[len(inRect)-1].Index

	var out []Row
	for _, row := range materialized {
		if row.Index > bottom {
			out = append(out, row)
		}
	}
	sortByIndex(out)
	return out
}

// Around returns Above followed by Below.
func Around(t Table, materialized []Row, r Rect) []Row {
	return append(Above(t, materialized, r), Below(t, materialized, r)...)
}

// HitTest returns the index of the row containing the content point.
func HitTest(rows []Row, x, y float64) (int, bool) {
	for _, row := range rows {
		if row.Rect.Contains(x, y) {
			return row.Index, true
		}
	}
	return -1, false
}

func sortByIndex(rows []Row) {
	slices.SortFunc(rows, func(a, b Row) int {
		return a.Index - b.Index
	})
}
