package dyntable

import "github.com/gdamore/tcell/v3"

// TextRow is a row view showing word-wrapped text under an optional caption.
// It fades in on its own: until fully opaque it is drawn dimmed, and at zero
// opacity only its background is drawn.
type TextRow struct {
	*Box

	text      string
	caption   string
	textStyle tcell.Style
	alpha     float64
}

// NewTextRow returns a text row. It starts fully opaque so it can be used
// outside a table.
func NewTextRow(text string) *TextRow {
	return &TextRow{
		Box:       NewBox(),
		text:      text,
		textStyle: tcell.StyleDefault.Foreground(Styles.PrimaryTextColor).Background(Styles.PrimitiveBackgroundColor),
		alpha:     1,
	}
}

// SetText replaces the text.
func (r *TextRow) SetText(text string) *TextRow {
	r.text = text
	return r
}

// GetText returns the text.
func (r *TextRow) GetText() string {
	return r.text
}

// SetCaption sets a caption printed in the row's first line.
func (r *TextRow) SetCaption(caption string) *TextRow {
	r.caption = caption
	return r
}

// SetTextStyle sets the style of the text.
func (r *TextRow) SetTextStyle(style tcell.Style) *TextRow {
	r.textStyle = style
	return r
}

// SetAlpha implements reconcile.Fader.
func (r *TextRow) SetAlpha(alpha float64) {
	r.alpha = min(max(alpha, 0), 1)
}

// Alpha returns the current opacity.
func (r *TextRow) Alpha() float64 {
	return r.alpha
}

// Height returns the number of lines the row needs at the given outer width,
// including its frame and caption.
func (r *TextRow) Height(width int) int {
	frameWidth, frameHeight := r.FrameSize()
	lines := len(WrapLines(r.text, width-frameWidth))
	if r.caption != "" {
		lines++
	}
	return max(lines, 1) + frameHeight
}

// Draw draws the caption and the wrapped text.
func (r *TextRow) Draw(screen tcell.Screen) {
	r.DrawForSubclass(screen, r)
	if r.alpha <= 0 {
		return
	}

	x, y, width, height := r.GetInnerRect()
	style := r.textStyle
	if r.alpha < 1 {
		style = style.Dim(true)
	}

	line := 0
	if r.caption != "" && height > 0 {
		caption := style.Foreground(Styles.SecondaryTextColor).Bold(true)
		Print(screen, r.caption, x, y, width, AlignmentLeft, caption)
		line++
	}
	for _, text := range WrapLines(r.text, width) {
		if line >= height {
			break
		}
		Print(screen, text, x, y+line, width, AlignmentLeft, style)
		line++
	}
}

var _ Primitive = &TextRow{}
