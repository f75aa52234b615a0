package dyntable

import "github.com/gdamore/tcell/v3"

// Primitive is anything that can be laid out and drawn, from the table itself
// to the views its DataSource returns for rows. Embedding *Box gives a type
// every method except the ones it wants to override.
type Primitive interface {
	// Draw renders into the rect last passed to SetRect.
	Draw(screen tcell.Screen)
	GetRect() (x, y, width, height int)
	SetRect(x, y, width, height int)

	// InputHandler is called with key events while the primitive has focus.
	InputHandler(event *tcell.EventKey) Command
	// MouseHandler is called with every mouse action. A non-nil capture
	// receives the following actions until it returns nil itself.
	MouseHandler(action MouseAction, event *tcell.EventMouse) (capture Primitive, cmd Command)

	// HasFocus also reports true when a child has focus.
	HasFocus() bool
	// Focus may pass the focus on to a child by calling delegate.
	Focus(delegate func(p Primitive))
	Blur()
}
