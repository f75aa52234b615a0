package dyntable

import (
	"github.com/gdamore/tcell/v3"
	"github.com/rivo/uniseg"
)

// rowScreen is the screen row views draw on. Writes outside the table's
// content rect are dropped so partly visible rows are cut at the edges, and
// every write is dimmed while dim is set.
type rowScreen struct {
	tcell.Screen
	left, top, right, bottom int
	dim                      bool
}

func newRowScreen(screen tcell.Screen, x, y, width, height int) rowScreen {
	return rowScreen{Screen: screen, left: x, top: y, right: x + width, bottom: y + height}
}

func (s rowScreen) contains(x, y int) bool {
	return x >= s.left && x < s.right && y >= s.top && y < s.bottom
}

func (s rowScreen) style(style tcell.Style) tcell.Style {
	if s.dim {
		return style.Dim(true)
	}
	return style
}

func (s rowScreen) SetContent(x, y int, primary rune, combining []rune, style tcell.Style) {
	if s.contains(x, y) {
		s.Screen.SetContent(x, y, primary, combining, s.style(style))
	}
}

func (s rowScreen) Put(x, y int, str string, style tcell.Style) (string, int) {
	if !s.contains(x, y) {
		return str, 0
	}
	return s.Screen.Put(x, y, str, s.style(style))
}

func (s rowScreen) PutStr(x, y int, str string) {
	s.PutStrStyled(x, y, str, tcell.StyleDefault)
}

// PutStrStyled writes whole grapheme clusters only; a wide cluster crossing
// the right edge is dropped.
func (s rowScreen) PutStrStyled(x, y int, str string, style tcell.Style) {
	g := uniseg.NewGraphemes(str)
	for g.Next() && x < s.right {
		width := max(g.Width(), 1)
		if x+width <= s.right {
			s.Put(x, y, g.Str(), style)
		}
		x += width
	}
}

func (s rowScreen) ShowCursor(x, y int) {
	if s.contains(x, y) {
		s.Screen.ShowCursor(x, y)
		return
	}
	s.Screen.ShowCursor(-1, -1)
}
