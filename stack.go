package dyntable

import "github.com/gdamore/tcell/v3"

type stackItem struct {
	item   Primitive
	height int // Fixed height, or 0 to share the remaining space.
	focus  bool
}

// Stack lays out primitives top to bottom. Items with a fixed height get
// exactly that many lines; the remaining lines are shared equally between the
// other items.
type Stack struct {
	*Box

	items []stackItem
}

// NewStack returns an empty stack.
func NewStack() *Stack {
	return &Stack{Box: NewBox()}
}

// AddItem appends an item. A height of 0 makes the item share the space left
// by fixed-height items. If focus is true, the item receives focus when the
// stack does.
func (s *Stack) AddItem(item Primitive, height int, focus bool) *Stack {
	s.items = append(s.items, stackItem{item: item, height: max(height, 0), focus: focus})
	return s
}

// ItemCount returns the number of items.
func (s *Stack) ItemCount() int {
	return len(s.items)
}

// SetItemHeight changes the fixed height of item.
func (s *Stack) SetItemHeight(item Primitive, height int) *Stack {
	for i := range s.items {
		if s.items[i].item == item {
			s.items[i].height = max(height, 0)
		}
	}
	return s
}

func (s *Stack) layout() {
	x, y, width, height := s.GetInnerRect()

	fixed, flexible := 0, 0
	for _, it := range s.items {
		if it.height > 0 {
			fixed += it.height
		} else {
			flexible++
		}
	}
	remaining := max(height-fixed, 0)

	used := 0
	for _, it := range s.items {
		h := it.height
		if h == 0 {
			// Earlier items take the leftover lines.
			h = (remaining + flexible - 1) / flexible
			remaining -= h
			flexible--
		}
		h = min(h, height-used)
		it.item.SetRect(x, y+used, width, h)
		used += h
	}
}

// Draw draws every item.
func (s *Stack) Draw(screen tcell.Screen) {
	s.DrawForSubclass(screen, s)
	s.layout()
	for _, it := range s.items {
		it.item.Draw(screen)
	}
}

// Focus passes the focus to the first item added with focus set.
func (s *Stack) Focus(delegate func(p Primitive)) {
	for _, it := range s.items {
		if it.focus {
			delegate(it.item)
			return
		}
	}
	s.Box.Focus(delegate)
}

// HasFocus reports whether the stack or one of its items has focus.
func (s *Stack) HasFocus() bool {
	for _, it := range s.items {
		if it.item.HasFocus() {
			return true
		}
	}
	return s.Box.HasFocus()
}

// InputHandler passes the event to the focused item.
func (s *Stack) InputHandler(event *tcell.EventKey) Command {
	for _, it := range s.items {
		if it.item.HasFocus() {
			return it.item.InputHandler(event)
		}
	}
	return nil
}

// MouseHandler passes the event to the item under the pointer.
func (s *Stack) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	if !s.InRect(event.Position()) {
		return nil, nil
	}
	for _, it := range s.items {
		if capture, cmd := it.item.MouseHandler(action, event); capture != nil || cmd != nil {
			return capture, cmd
		}
	}
	return nil, nil
}

var _ Primitive = &Stack{}
