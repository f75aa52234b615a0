package dyntable

import "github.com/gdamore/tcell/v3"

// lowerEighths[n-1] fills the bottom n eighths of a cell and upperEighths[n-1]
// the top n.
var (
	lowerEighths = [8]string{"▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"}
	upperEighths = [8]string{"▔", "🮂", "🮃", "▀", "🮄", "🮅", "🮆", "█"}
)

// ScrollBar shows which part of the content is in view. The thumb moves in
// eighths of a cell. Nothing is drawn while all of the content fits.
type ScrollBar struct {
	*Box

	content, viewport, offset int

	trackStyle tcell.Style
	thumbStyle tcell.Style
}

// NewScrollBar returns a scroll bar with nothing to scroll.
func NewScrollBar() *ScrollBar {
	return &ScrollBar{
		Box:        NewBox(),
		trackStyle: tcell.StyleDefault.Background(Styles.PrimitiveBackgroundColor),
		thumbStyle: tcell.StyleDefault.Foreground(Styles.SecondaryTextColor).Background(Styles.PrimitiveBackgroundColor),
	}
}

// SetPosition sets the content length, the visible length and the offset of
// the first visible line, all in lines.
func (s *ScrollBar) SetPosition(content, viewport, offset int) *ScrollBar {
	s.content, s.viewport, s.offset = max(content, 0), max(viewport, 0), max(offset, 0)
	return s
}

// SetThumbStyle sets the style of the thumb glyphs.
func (s *ScrollBar) SetThumbStyle(style tcell.Style) *ScrollBar {
	s.thumbStyle = style
	return s
}

// thumb returns the start and length of the thumb, in eighths, on a track
// of the given number of cells.
func (s *ScrollBar) thumb(cells int) (start, length int) {
	track := cells * 8
	viewport := min(max(s.viewport, 1), s.content)
	scrollable := s.content - viewport
	if scrollable <= 0 {
		return 0, track
	}
	length = min(max(track*viewport/s.content, 8), track)
	start = (track - length) * min(s.offset, scrollable) / scrollable
	return start, length
}

// Draw draws the track and the thumb.
func (s *ScrollBar) Draw(screen tcell.Screen) {
	s.DrawForSubclass(screen, s)

	x, y, _, height := s.GetInnerRect()
	if height <= 0 || s.content <= s.viewport {
		return
	}

	start, length := s.thumb(height)
	end := start + length
	for cell := range height {
		top := cell * 8
		covered := min(end, top+8) - max(start, top)
		glyph, style := " ", s.trackStyle
		switch {
		case covered >= 8:
			glyph, style = lowerEighths[7], s.thumbStyle
		case covered > 0 && start <= top:
			glyph, style = upperEighths[covered-1], s.thumbStyle
		case covered > 0:
			glyph, style = lowerEighths[covered-1], s.thumbStyle
		}
		screen.Put(x, y+cell, glyph, style)
	}
}

var _ Primitive = &ScrollBar{}
