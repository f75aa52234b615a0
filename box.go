package dyntable

import "github.com/gdamore/tcell/v3"

// Box is an empty primitive with a background, an optional border and an
// optional title. Other primitives embed it for their rect and focus
// handling and draw their content inside GetInnerRect.
type Box struct {
	x, y, width, height int

	// Padding inside the border.
	padTop, padBottom, padLeft, padRight int

	background  tcell.Color
	borders     Borders
	borderSet   BorderSet
	borderStyle tcell.Style
	title       string
	titleStyle  tcell.Style

	hasFocus bool
}

// NewBox returns a 15x10 box without a border.
func NewBox() *Box {
	plain, _ := BorderSetByName("plain")
	return &Box{
		width:       15,
		height:      10,
		background:  Styles.PrimitiveBackgroundColor,
		borderSet:   plain,
		borderStyle: tcell.StyleDefault.Foreground(Styles.BorderColor).Background(Styles.PrimitiveBackgroundColor),
		titleStyle:  tcell.StyleDefault.Foreground(Styles.TitleColor),
	}
}

// SetBorderPadding sets the space between the border and the content.
func (b *Box) SetBorderPadding(top, bottom, left, right int) *Box {
	b.padTop, b.padBottom, b.padLeft, b.padRight = top, bottom, left, right
	return b
}

// SetBackgroundColor sets the color the box is filled with.
func (b *Box) SetBackgroundColor(color tcell.Color) *Box {
	b.background = color
	b.borderStyle = b.borderStyle.Background(color)
	return b
}

// SetBorders selects the sides that get a border.
func (b *Box) SetBorders(sides Borders) *Box {
	b.borders = sides
	return b
}

// SetBorderSet sets the border glyphs.
func (b *Box) SetBorderSet(set BorderSet) *Box {
	b.borderSet = set
	return b
}

// GetTitle returns the title.
func (b *Box) GetTitle() string {
	return b.title
}

// SetTitle sets the title shown centered in the top line. A title takes the
// top line even without a border.
func (b *Box) SetTitle(title string) *Box {
	b.title = title
	return b
}

// insets returns the cells taken by the frame on each side.
func (b *Box) insets() (top, bottom, left, right int) {
	top, bottom, left, right = b.padTop, b.padBottom, b.padLeft, b.padRight
	if b.title != "" || b.borders.Has(BordersTop) {
		top++
	}
	if b.borders.Has(BordersBottom) {
		bottom++
	}
	if b.borders.Has(BordersLeft) {
		left++
	}
	if b.borders.Has(BordersRight) {
		right++
	}
	return top, bottom, left, right
}

// FrameSize returns the columns and lines the border, title and padding take
// from the rect.
func (b *Box) FrameSize() (int, int) {
	top, bottom, left, right := b.insets()
	return left + right, top + bottom
}

func (b *Box) GetRect() (int, int, int, int) {
	return b.x, b.y, b.width, b.height
}

func (b *Box) SetRect(x, y, width, height int) {
	b.x, b.y, b.width, b.height = x, y, width, height
}

// GetInnerRect returns the rect left for content. Its size is never negative.
func (b *Box) GetInnerRect() (int, int, int, int) {
	top, bottom, left, right := b.insets()
	return b.x + left, b.y + top, max(b.width-left-right, 0), max(b.height-top-bottom, 0)
}

// InRect reports whether (x, y) is inside the box.
func (b *Box) InRect(x, y int) bool {
	return x >= b.x && x < b.x+b.width && y >= b.y && y < b.y+b.height
}

func (b *Box) InputHandler(*tcell.EventKey) Command {
	return nil
}

// MouseHandler takes the focus when the box is pressed.
func (b *Box) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	if action == MouseLeftDown && b.InRect(event.Position()) {
		return nil, SetFocusCommand{Target: b}
	}
	return nil, nil
}

func (b *Box) Focus(func(p Primitive)) {
	b.hasFocus = true
}

func (b *Box) Blur() {
	b.hasFocus = false
}

func (b *Box) HasFocus() bool {
	return b.hasFocus
}

// Draw fills the box and draws its frame.
func (b *Box) Draw(screen tcell.Screen) {
	b.DrawForSubclass(screen, b)
}

// DrawForSubclass draws the box for the primitive p embedding it. The border
// is bold while p has focus.
func (b *Box) DrawForSubclass(screen tcell.Screen, p Primitive) {
	if b.width <= 0 || b.height <= 0 {
		return
	}

	fill := tcell.StyleDefault.Background(b.background)
	for y := b.y; y < b.y+b.height; y++ {
		for x := b.x; x < b.x+b.width; x++ {
			screen.Put(x, y, " ", fill)
		}
	}

	if b.borders != BordersNone && b.width >= 2 && b.height >= 2 {
		style := b.borderStyle
		if p.HasFocus() {
			style = style.Bold(true)
		}
		b.drawBorder(screen, style)
	}
	b.drawTitle(screen)
}

func (b *Box) drawBorder(screen tcell.Screen, style tcell.Style) {
	left, top := b.x, b.y
	right, bottom := b.x+b.width-1, b.y+b.height-1
	set := b.borderSet

	for x := left + 1; x < right; x++ {
		if b.borders.Has(BordersTop) {
			screen.Put(x, top, set.Horizontal, style)
		}
		if b.borders.Has(BordersBottom) {
			screen.Put(x, bottom, set.Horizontal, style)
		}
	}
	for y := top + 1; y < bottom; y++ {
		if b.borders.Has(BordersLeft) {
			screen.Put(left, y, set.Vertical, style)
		}
		if b.borders.Has(BordersRight) {
			screen.Put(right, y, set.Vertical, style)
		}
	}

	corners := []struct {
		sides Borders
		x, y  int
		glyph string
	}{
		{BordersTop | BordersLeft, left, top, set.TopLeft},
		{BordersTop | BordersRight, right, top, set.TopRight},
		{BordersBottom | BordersLeft, left, bottom, set.BottomLeft},
		{BordersBottom | BordersRight, right, bottom, set.BottomRight},
	}
	for _, c := range corners {
		if b.borders.Has(c.sides) {
			screen.Put(c.x, c.y, c.glyph, style)
		}
	}
}

// drawTitle centers the title between the corners and ends it with an
// ellipsis when it is cut.
func (b *Box) drawTitle(screen tcell.Screen) {
	if b.title == "" || b.width < 4 {
		return
	}
	width := b.width - 2
	if _, fit := Print(screen, b.title, b.x+1, b.y, width, AlignmentCenter, b.titleStyle); !fit {
		Print(screen, ellipsis, b.x+width, b.y, 1, AlignmentLeft, b.titleStyle)
	}
}
