package dyntable

// Command is returned by input and mouse handlers and carried out by the
// Application once the handler returns. A nil Command does nothing.
type Command any

// BatchCommand carries out each of its commands in order. The screen is
// redrawn if any of them asks for it.
type BatchCommand []Command

// RedrawCommand asks for the screen to be redrawn.
type RedrawCommand struct{}

// QuitCommand stops the Application.
type QuitCommand struct{}

// SetFocusCommand focuses Target. It redraws when the focus moves.
type SetFocusCommand struct {
	Target Primitive
}
