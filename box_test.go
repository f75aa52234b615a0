package dyntable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRoundBox(t *testing.T, title string) *Box {
	t.Helper()
	round, ok := BorderSetByName("round")
	require.True(t, ok)
	box := NewBox().SetBorders(BordersAll).SetBorderSet(round).SetTitle(title)
	box.SetRect(0, 0, 8, 3)
	return box
}

func TestBoxTitle(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"ab", "╭──ab──╮"},
		{"a long title", "╭ong t…╮"},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			screen := newTestScreen(8, 3)
			newRoundBox(t, tt.title).Draw(screen)
			assert.Equal(t, tt.want, screen.line(0))
			assert.Equal(t, "│      │", screen.line(1))
			assert.Equal(t, "╰──────╯", screen.line(2))
		})
	}
}

func TestBoxFrame(t *testing.T) {
	box := newRoundBox(t, "")
	x, y, width, height := box.GetInnerRect()
	assert.Equal(t, []int{1, 1, 6, 1}, []int{x, y, width, height})
	frameWidth, frameHeight := box.FrameSize()
	assert.Equal(t, 2, frameWidth)
	assert.Equal(t, 2, frameHeight)

	// A title takes the top line without a border.
	bare := NewBox().SetTitle("t")
	bare.SetRect(0, 0, 8, 3)
	_, y, _, height = bare.GetInnerRect()
	assert.Equal(t, 1, y)
	assert.Equal(t, 2, height)

	box.SetRect(0, 0, 1, 1)
	_, _, width, height = box.GetInnerRect()
	assert.Zero(t, width)
	assert.Zero(t, height)
}
