// Package help draws the bindings of a KeyMap, either on one line or as
// columns of groups.
package help

import (
	"strings"

	"github.com/gdamore/tcell/v3"
	"github.com/rivo/uniseg"

	"github.com/ayn2op/dyntable"
	"github.com/ayn2op/dyntable/keybind"
)

const (
	shortSeparator = " • "
	fullSeparator  = "    "
	ellipsis       = "…"
)

// KeyMap is implemented by anything with bindings worth listing.
type KeyMap interface {
	// ShortHelp returns the bindings shown on the single line.
	ShortHelp() []keybind.Keybind
	// FullHelp returns groups of bindings, one column each.
	FullHelp() [][]keybind.Keybind
}

// Help shows a KeyMap. Disabled bindings and bindings without help text are
// left out.
type Help struct {
	*dyntable.Box
	Styles Styles

	keyMap  KeyMap
	showAll bool
}

func New() *Help {
	return &Help{
		Box:    dyntable.NewBox(),
		Styles: DefaultStyles(),
	}
}

func (h *Help) SetKeyMap(keyMap KeyMap) *Help {
	h.keyMap = keyMap
	return h
}

// ShowAll reports whether the columns are shown instead of the single line.
func (h *Help) ShowAll() bool {
	return h.showAll
}

// Toggle switches between the single line and the columns.
func (h *Help) Toggle() *Help {
	h.showAll = !h.showAll
	return h
}

// Height returns the number of lines Draw needs at the given width.
func (h *Help) Height(width int) int {
	if h.keyMap == nil {
		return 0
	}
	return max(len(h.lines(width)), 1)
}

func (h *Help) Draw(screen tcell.Screen) {
	h.DrawForSubclass(screen, h)

	x, y, width, height := h.GetInnerRect()
	for i, l := range h.lines(width) {
		if i >= height {
			break
		}
		cursor := x
		for _, s := range l {
			used, _ := dyntable.Print(screen, s.text, cursor, y+i, x+width-cursor, dyntable.AlignmentLeft, s.style)
			cursor += used
		}
	}
}

type span struct {
	text  string
	style tcell.Style
}

type line []span

func (l line) width() int {
	w := 0
	for _, s := range l {
		w += uniseg.StringWidth(s.text)
	}
	return w
}

func (l line) String() string {
	var b strings.Builder
	for _, s := range l {
		b.WriteString(s.text)
	}
	return b.String()
}

// trimRight drops the blank spans a short column leaves at the end.
func (l line) trimRight() line {
	for len(l) > 0 && strings.TrimSpace(l[len(l)-1].text) == "" {
		l = l[:len(l)-1]
	}
	return l
}

func (h *Help) lines(width int) []line {
	switch {
	case h.keyMap == nil:
		return nil
	case h.showAll:
		return h.columns(h.keyMap.FullHelp(), width)
	}
	return []line{h.bar(h.keyMap.ShortHelp(), width)}
}

// entries returns the help of the bindings worth showing.
func entries(bindings []keybind.Keybind) []keybind.Help {
	var out []keybind.Help
	for _, kb := range bindings {
		if help := kb.Help(); kb.Enabled() && (help.Key != "" || help.Desc != "") {
			out = append(out, help)
		}
	}
	return out
}

func (h *Help) ellipsize(l line, width int) line {
	tail := span{" " + ellipsis, h.Styles.EllipsisStyle}
	if len(l) == 0 {
		tail.text = ellipsis
	}
	if l.width()+uniseg.StringWidth(tail.text) > width {
		return l
	}
	return append(l, tail)
}

// bar lists bindings until the next one would not fit, then ends with an
// ellipsis.
func (h *Help) bar(bindings []keybind.Keybind, width int) line {
	var out line
	for i, e := range entries(bindings) {
		var item line
		if i > 0 {
			item = append(item, span{shortSeparator, h.Styles.ShortSeparatorStyle})
		}
		item = append(item, span{e.Key, h.Styles.ShortKeyStyle})
		if e.Key != "" && e.Desc != "" {
			item = append(item, span{" ", h.Styles.ShortDescStyle})
		}
		item = append(item, span{e.Desc, h.Styles.ShortDescStyle})

		if out.width()+item.width() > width {
			return h.ellipsize(out, width)
		}
		out = append(out, item...)
	}
	return out
}

type column struct {
	entries  []keybind.Help
	keyWidth int
	width    int
}

// columns lays the groups out side by side, keys aligned within a column.
// Columns that do not fit are dropped and the first line ends with an
// ellipsis.
func (h *Help) columns(groups [][]keybind.Keybind, width int) []line {
	var (
		cols      []column
		used      int
		truncated bool
	)
	for _, group := range groups {
		c := column{entries: entries(group)}
		if len(c.entries) == 0 {
			continue
		}
		for _, e := range c.entries {
			c.keyWidth = max(c.keyWidth, uniseg.StringWidth(e.Key))
		}
		for _, e := range c.entries {
			c.width = max(c.width, c.keyWidth+1+uniseg.StringWidth(e.Desc))
		}

		need := c.width
		if len(cols) > 0 {
			need += len(fullSeparator)
		}
		if used+need > width {
			truncated = true
			break
		}
		used += need
		cols = append(cols, c)
	}

	rows := 0
	for _, c := range cols {
		rows = max(rows, len(c.entries))
	}
	out := make([]line, rows)
	for r := range out {
		for i, c := range cols {
			if i > 0 {
				out[r] = append(out[r], span{fullSeparator, h.Styles.FullSeparatorStyle})
			}
			var cell line
			if r < len(c.entries) {
				e := c.entries[r]
				pad := strings.Repeat(" ", c.keyWidth-uniseg.StringWidth(e.Key))
				cell = line{{e.Key + pad, h.Styles.FullKeyStyle}, {" " + e.Desc, h.Styles.FullDescStyle}}
			}
			// Pad every column but the last so the separators line up.
			if i < len(cols)-1 {
				cell = append(cell, span{strings.Repeat(" ", c.width-cell.width()), h.Styles.FullDescStyle})
			}
			out[r] = append(out[r], cell...)
		}
		out[r] = out[r].trimRight()
	}

	if truncated {
		if len(out) == 0 {
			return []line{h.ellipsize(nil, width)}
		}
		out[0] = h.ellipsize(out[0], width)
	}
	return out
}
