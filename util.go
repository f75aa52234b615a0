package dyntable

import (
	"github.com/gdamore/tcell/v3"
	"github.com/rivo/uniseg"
)

const ellipsis = "…"

// Alignment positions text within the width it is printed into.
type Alignment int

const (
	AlignmentLeft Alignment = iota
	AlignmentCenter
	AlignmentRight
)

type cluster struct {
	text  string
	width int
}

func clusters(text string) (out []cluster, width int) {
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		c := cluster{text: g.Str(), width: g.Width()}
		out = append(out, c)
		width += c.width
	}
	return out, width
}

// Print writes text on line y into the width cells starting at x and returns
// the number of cells written and whether all of text fit. Text that is too
// long loses its end when left aligned, its start when right aligned and both
// when centered. A style without a background keeps the background already
// on screen.
func Print(screen tcell.Screen, text string, x, y, width int, alignment Alignment, style tcell.Style) (int, bool) {
	_, screenHeight := screen.Size()
	if width <= 0 || y < 0 || y >= screenHeight {
		return 0, text == ""
	}

	cs, total := clusters(text)
	fit := total <= width
	switch alignment {
	case AlignmentRight:
		for total > width && len(cs) > 0 {
			total -= cs[0].width
			cs = cs[1:]
		}
		x += width - total
	case AlignmentCenter:
		for cut := (total - width) / 2; cut > 0 && len(cs) > 0; {
			cut -= cs[0].width
			total -= cs[0].width
			cs = cs[1:]
		}
		if total < width {
			x += (width - total) / 2
		}
	}

	used := 0
	for _, c := range cs {
		if c.width == 0 {
			continue
		}
		if used+c.width > width {
			break
		}
		cellStyle := style
		if style.GetBackground() == tcell.ColorDefault {
			_, existing, _ := screen.Get(x+used, y)
			cellStyle = style.Background(existing.GetBackground())
		}
		// Fill the trailing cells of a wide cluster first so the cluster
		// itself is written last.
		for i := c.width - 1; i > 0; i-- {
			screen.Put(x+used+i, y, " ", cellStyle)
		}
		screen.Put(x+used, y, c.text, cellStyle)
		used += c.width
	}
	return used, fit
}
