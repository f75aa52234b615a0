package help

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayn2op/dyntable/keybind"
)

type testKeys struct {
	up, down, quit keybind.Keybind
}

func (k testKeys) ShortHelp() []keybind.Keybind {
	return []keybind.Keybind{k.up, k.down, k.quit}
}

func (k testKeys) FullHelp() [][]keybind.Keybind {
	return [][]keybind.Keybind{{k.up, k.down}, {k.quit}}
}

func newTestKeys() testKeys {
	return testKeys{
		up:   keybind.NewKeybind(keybind.WithKeys("k"), keybind.WithHelp("k", "up")),
		down: keybind.NewKeybind(keybind.WithKeys("j"), keybind.WithHelp("j", "down")),
		quit: keybind.NewKeybind(keybind.WithKeys("q"), keybind.WithHelp("q", "quit")),
	}
}

func strs(lines []line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.String()
	}
	return out
}

func TestHelpHeight(t *testing.T) {
	h := New()
	assert.Equal(t, 0, h.Height(80), "no key map")

	h.SetKeyMap(newTestKeys())
	assert.Equal(t, 1, h.Height(80))

	h.Toggle()
	assert.True(t, h.ShowAll())
	assert.Equal(t, 2, h.Height(80))

	h.Toggle()
	assert.False(t, h.ShowAll())
}

func TestHelpBar(t *testing.T) {
	h := New().SetKeyMap(newTestKeys())

	assert.Equal(t, []string{"k up • j down • q quit"}, strs(h.lines(80)))
	assert.Equal(t, []string{"k up …"}, strs(h.lines(12)))
	assert.Equal(t, []string{"…"}, strs(h.lines(2)))
}

func TestHelpColumns(t *testing.T) {
	keys := newTestKeys()
	h := New().SetKeyMap(keys).Toggle()

	assert.Equal(t, []string{
		"k up      q quit",
		"j down",
	}, strs(h.lines(80)))

	keys.down.SetEnabled(false)
	h.SetKeyMap(keys)
	assert.Equal(t, []string{"k up    q quit"}, strs(h.lines(80)))

	lines := strs(h.lines(8))
	require.Len(t, lines, 1)
	assert.Equal(t, "k up …", lines[0])
}
