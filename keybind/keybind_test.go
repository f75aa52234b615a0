package keybind

import (
	"testing"

	"github.com/gdamore/tcell/v3"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"j":                  "j",
		"G":                  "G",
		"Ctrl+D":             "ctrl+d",
		"ctrl-x":             "ctrl+x",
		"PageUp":             "pgup",
		"return":             "enter",
		"backtab":            "shift+tab",
		"Rune[a]":            "a",
		"alt+ctrl+K":         "ctrl+alt+k",
		"meta+shift+ctrl+up": "ctrl+shift+meta+up",
		"  ":                 "",
		"ctrl+":              "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Normalize(in), "Normalize(%q)", in)
	}
}

func TestKeybindEnabled(t *testing.T) {
	kb := NewKeybind(WithKeys("a", " ", "A"), WithHelp("a", "act"))
	assert.True(t, kb.Enabled())
	assert.Equal(t, []string{"a", "A"}, kb.Keys())
	assert.Equal(t, Help{Key: "a", Desc: "act"}, kb.Help())

	kb.SetEnabled(false)
	assert.False(t, kb.Enabled())

	assert.False(t, NewKeybind().Enabled())
	assert.False(t, NewKeybind(WithKeys("a"), WithDisabled()).Enabled())
	assert.False(t, Matches(nil, kb))
}

func TestMatches(t *testing.T) {
	down := NewKeybind(WithKeys("down", "j"))
	bottom := NewKeybind(WithKeys("G"))
	zoom := NewKeybind(WithKeys("alt+ctrl+z"))

	assert.True(t, Matches(tcell.NewEventKey(tcell.KeyDown, "", tcell.ModNone), down))
	assert.True(t, Matches(tcell.NewEventKey(tcell.KeyRune, "j", tcell.ModNone), bottom, down))
	assert.False(t, Matches(tcell.NewEventKey(tcell.KeyRune, "g", tcell.ModNone), bottom))
	assert.True(t, Matches(tcell.NewEventKey(tcell.KeyRune, "G", tcell.ModShift), bottom))
	assert.True(t, Matches(tcell.NewEventKey(tcell.KeyRune, "z", tcell.ModCtrl|tcell.ModAlt), zoom))

	down.SetEnabled(false)
	assert.False(t, Matches(tcell.NewEventKey(tcell.KeyDown, "", tcell.ModNone), down))
}
