package dyntable

import (
	"strings"

	"github.com/gdamore/tcell/v3"
	"github.com/rivo/uniseg"
)

type testCell struct {
	str   string
	style tcell.Style
}

// testScreen records the cells written by Draw. Only the methods the
// primitives in this package call are implemented.
type testScreen struct {
	tcell.Screen
	width, height int
	cells         map[[2]int]testCell
}

func newTestScreen(width, height int) *testScreen {
	return &testScreen{width: width, height: height, cells: make(map[[2]int]testCell)}
}

func (s *testScreen) Size() (int, int) {
	return s.width, s.height
}

func (s *testScreen) Put(x int, y int, str string, style tcell.Style) (string, int) {
	cluster, rest, width, _ := uniseg.FirstGraphemeClusterInString(str, -1)
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return rest, width
	}
	s.cells[[2]int{x, y}] = testCell{str: cluster, style: style}
	return rest, width
}

func (s *testScreen) PutStr(x int, y int, str string) {
	s.PutStrStyled(x, y, str, tcell.StyleDefault)
}

func (s *testScreen) PutStrStyled(x int, y int, str string, style tcell.Style) {
	for str != "" {
		var width int
		str, width = s.Put(x, y, str, style)
		x += max(width, 1)
	}
}

func (s *testScreen) SetContent(x int, y int, primary rune, combining []rune, style tcell.Style) {
	s.Put(x, y, string(append([]rune{primary}, combining...)), style)
}

func (s *testScreen) Get(x int, y int) (string, tcell.Style, int) {
	c, ok := s.cells[[2]int{x, y}]
	if !ok {
		return " ", tcell.StyleDefault, 1
	}
	return c.str, c.style, 1
}

func (s *testScreen) ShowCursor(int, int) {}

// line returns row y with trailing blanks removed.
func (s *testScreen) line(y int) string {
	var b strings.Builder
	for x := range s.width {
		str, _, _ := s.Get(x, y)
		b.WriteString(str)
	}
	return strings.TrimRight(b.String(), " ")
}

func (s *testScreen) background(x, y int) tcell.Color {
	_, style, _ := s.Get(x, y)
	return style.GetBackground()
}

func (s *testScreen) dim(x, y int) bool {
	_, style, _ := s.Get(x, y)
	return style.HasDim()
}
