// Package keybind matches tcell key events against configurable key names
// such as "down", "j" or "ctrl+d".
//
// Key names are case sensitive for single characters without modifiers, so
// "g" and "G" differ. Modifiers are written before the key and always come
// out in the order ctrl, alt, shift, meta.
package keybind

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v3"
)

// Keybind is a set of equivalent keys plus the help text describing them.
// The zero value matches nothing.
type Keybind struct {
	keys     []string
	help     Help
	disabled bool
}

// Help is what a help view shows for a Keybind.
type Help struct {
	Key  string
	Desc string
}

type Option func(*Keybind)

func NewKeybind(options ...Option) Keybind {
	var kb Keybind
	for _, option := range options {
		option(&kb)
	}
	return kb
}

// WithKeys sets the keys. Names Normalize rejects are dropped.
func WithKeys(keys ...string) Option {
	return func(kb *Keybind) { kb.SetKeys(keys...) }
}

func WithHelp(key, desc string) Option {
	return func(kb *Keybind) { kb.SetHelp(key, desc) }
}

// WithDisabled creates the keybind disabled.
func WithDisabled() Option {
	return func(kb *Keybind) { kb.disabled = true }
}

func (kb Keybind) Keys() []string {
	return kb.keys
}

func (kb *Keybind) SetKeys(keys ...string) {
	kb.keys = nil
	for _, key := range keys {
		if key = Normalize(key); key != "" {
			kb.keys = append(kb.keys, key)
		}
	}
}

func (kb Keybind) Help() Help {
	return kb.help
}

func (kb *Keybind) SetHelp(key, desc string) {
	kb.help = Help{Key: key, Desc: desc}
}

// Enabled reports whether the keybind matches events and shows up in help.
func (kb Keybind) Enabled() bool {
	return !kb.disabled && len(kb.keys) > 0
}

func (kb *Keybind) SetEnabled(enabled bool) {
	kb.disabled = !enabled
}

// Matches reports whether event matches any of the enabled keybinds.
func Matches(event *tcell.EventKey, keybinds ...Keybind) bool {
	if event == nil {
		return false
	}
	key := eventKey(event)
	return slices.ContainsFunc(keybinds, func(kb Keybind) bool {
		return kb.Enabled() && slices.Contains(kb.keys, key)
	})
}

type modifier uint8

const (
	modCtrl modifier = 1 << iota
	modAlt
	modShift
	modMeta
)

var modifierNames = []struct {
	mod  modifier
	name string
}{
	{modCtrl, "ctrl"},
	{modAlt, "alt"},
	{modShift, "shift"},
	{modMeta, "meta"},
}

var modifierAliases = map[string]modifier{
	"ctrl":    modCtrl,
	"control": modCtrl,
	"alt":     modAlt,
	"shift":   modShift,
	"meta":    modMeta,
}

var keyAliases = map[string]string{
	"escape":   "esc",
	"return":   "enter",
	"pageup":   "pgup",
	"pagedown": "pgdn",
}

var keyNames = map[tcell.Key]string{
	tcell.KeyEnter:      "enter",
	tcell.KeyEscape:     "esc",
	tcell.KeyTab:        "tab",
	tcell.KeyHome:       "home",
	tcell.KeyEnd:        "end",
	tcell.KeyUp:         "up",
	tcell.KeyDown:       "down",
	tcell.KeyLeft:       "left",
	tcell.KeyRight:      "right",
	tcell.KeyPgUp:       "pgup",
	tcell.KeyPgDn:       "pgdn",
	tcell.KeyDelete:     "delete",
	tcell.KeyBackspace:  "backspace",
	tcell.KeyBackspace2: "backspace",
	tcell.KeyInsert:     "insert",
}

// Normalize returns the canonical form of a key name, or "" when the name is
// not usable. Configuration uses it to reject bad bindings early.
func Normalize(key string) string {
	var (
		mods modifier
		name string
	)
	for part := range strings.SplitSeq(key, "+") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lower := strings.ToLower(part)
		if mod, ok := modifierAliases[lower]; ok {
			mods |= mod
			continue
		}

		switch {
		case strings.HasPrefix(part, "Rune[") && strings.HasSuffix(part, "]") && len(part) > len("Rune[]"):
			name = part[len("Rune[") : len(part)-1]
		case lower == "backtab":
			mods |= modShift
			name = "tab"
		case strings.HasPrefix(lower, "ctrl-") && len(lower) > len("ctrl-"):
			mods |= modCtrl
			name = lower[len("ctrl-"):]
		case utf8.RuneCountInString(part) == 1:
			name = part
		default:
			name = lower
			if alias, ok := keyAliases[lower]; ok {
				name = alias
			}
		}
	}
	if name == "" {
		return ""
	}
	return format(mods, name)
}

func format(mods modifier, name string) string {
	if mods == 0 {
		return name
	}
	if utf8.RuneCountInString(name) == 1 {
		name = strings.ToLower(name)
	}

	var b strings.Builder
	for _, m := range modifierNames {
		if mods&m.mod != 0 {
			b.WriteString(m.name)
			b.WriteByte('+')
		}
	}
	b.WriteString(name)
	return b.String()
}

// eventKey names event the way Normalize names keys.
func eventKey(event *tcell.EventKey) string {
	key := event.Key()
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		return format(modCtrl, string(rune('a'+(key-tcell.KeyCtrlA))))
	}

	var mods modifier
	m := event.Modifiers()
	if m&tcell.ModCtrl != 0 {
		mods |= modCtrl
	}
	if m&tcell.ModAlt != 0 {
		mods |= modAlt
	}
	if m&tcell.ModShift != 0 {
		mods |= modShift
	}
	if m&tcell.ModMeta != 0 {
		mods |= modMeta
	}

	switch {
	case key == tcell.KeyBacktab:
		return format(mods|modShift, "tab")
	case key == tcell.KeyRune:
		// The rune already carries shift: "G" is not "shift+g".
		return format(mods&^modShift, event.Str())
	}
	if name, ok := keyNames[key]; ok {
		return format(mods, name)
	}
	return Normalize(event.Name())
}
