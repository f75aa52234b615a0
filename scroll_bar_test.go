package dyntable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScrollBarThumb(t *testing.T) {
	tests := []struct {
		name   string
		offset int
		want   []string
	}{
		{"top", 0, []string{"█", " ", " ", " ", " ", " ", " ", " ", " ", " "}},
		{"bottom", 90, []string{" ", " ", " ", " ", " ", " ", " ", " ", " ", "█"}},
		{"between cells", 45, []string{" ", " ", " ", " ", "▄", "▀", " ", " ", " ", " "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := NewScrollBar().SetPosition(100, 10, tt.offset)
			bar.SetRect(0, 0, 1, 10)
			screen := newTestScreen(1, 10)
			bar.Draw(screen)

			var got []string
			for y := range 10 {
				str, _, _ := screen.Get(0, y)
				got = append(got, str)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScrollBarHiddenWhenContentFits(t *testing.T) {
	bar := NewScrollBar().SetPosition(5, 10, 0)
	bar.SetRect(0, 0, 1, 10)
	screen := newTestScreen(1, 10)
	bar.Draw(screen)
	assert.Empty(t, screen.line(0))
}
