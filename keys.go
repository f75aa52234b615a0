package dyntable

import "github.com/ayn2op/dyntable/keybind"

// TableKeys holds the key bindings of a DynamicTable. It also serves as the
// key map of a help bar.
type TableKeys struct {
	LineUp    keybind.Keybind
	LineDown  keybind.Keybind
	PageUp    keybind.Keybind
	PageDown  keybind.Keybind
	Top       keybind.Keybind
	Bottom    keybind.Keybind
	Left      keybind.Keybind
	Right     keybind.Keybind
	ZoomIn    keybind.Keybind
	ZoomOut   keybind.Keybind
	ZoomReset keybind.Keybind
}

// DefaultTableKeys returns vi-style bindings next to the arrow keys.
func DefaultTableKeys() TableKeys {
	return TableKeys{
		LineUp:    keybind.NewKeybind(keybind.WithKeys("up", "k"), keybind.WithHelp("↑/k", "up")),
		LineDown:  keybind.NewKeybind(keybind.WithKeys("down", "j"), keybind.WithHelp("↓/j", "down")),
		PageUp:    keybind.NewKeybind(keybind.WithKeys("pgup", "ctrl+b"), keybind.WithHelp("pgup", "page up")),
		PageDown:  keybind.NewKeybind(keybind.WithKeys("pgdn", "ctrl+f"), keybind.WithHelp("pgdn", "page down")),
		Top:       keybind.NewKeybind(keybind.WithKeys("home", "g"), keybind.WithHelp("g", "top")),
		Bottom:    keybind.NewKeybind(keybind.WithKeys("end", "G"), keybind.WithHelp("G", "bottom")),
		Left:      keybind.NewKeybind(keybind.WithKeys("left", "h"), keybind.WithHelp("←/h", "left")),
		Right:     keybind.NewKeybind(keybind.WithKeys("right", "l"), keybind.WithHelp("→/l", "right")),
		ZoomIn:    keybind.NewKeybind(keybind.WithKeys("=", "]"), keybind.WithHelp("=", "zoom in")),
		ZoomOut:   keybind.NewKeybind(keybind.WithKeys("-", "["), keybind.WithHelp("-", "zoom out")),
		ZoomReset: keybind.NewKeybind(keybind.WithKeys("0"), keybind.WithHelp("0", "reset zoom")),
	}
}

// ShortHelp returns the bindings shown in a single-line help bar.
func (k TableKeys) ShortHelp() []keybind.Keybind {
	return []keybind.Keybind{k.LineUp, k.LineDown, k.PageDown, k.ZoomIn, k.ZoomOut}
}

// FullHelp returns the bindings grouped by concern.
func (k TableKeys) FullHelp() [][]keybind.Keybind {
	return [][]keybind.Keybind{
		{k.LineUp, k.LineDown, k.PageUp, k.PageDown},
		{k.Top, k.Bottom, k.Left, k.Right},
		{k.ZoomIn, k.ZoomOut, k.ZoomReset},
	}
}
