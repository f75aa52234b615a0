package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func heights(hs ...float64) HeightFunc {
	return func(i int) (float64, bool) {
		if i < len(hs) {
			return hs[i], true
		}
		return 0, false
	}
}

func TestBuild(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		table, length := Build(0, 80, nil, 100, 10)
		assert.Empty(t, table)
		assert.Zero(t, length)
	})

	t.Run("offsets follow heights and spacing", func(t *testing.T) {
		hs := []float64{3, 7, 1, 4}
		spacing := 2.0
		table, length := Build(len(hs), 40, heights(hs...), 100, spacing)
		require.Len(t, table, len(hs))

		var sum float64
		for i, row := range table {
			assert.Equal(t, i, row.Index)
			assert.True(t, row.Valid)
			assert.Equal(t, sum+float64(i)*spacing, row.Rect.Y)
			assert.Equal(t, hs[i], row.Rect.Height)
			assert.Equal(t, 40.0, row.Rect.Width)
			assert.Zero(t, row.Rect.X)
			sum += hs[i]
		}
		assert.Equal(t, 3+7+1+4+3*spacing, length)
		assert.Equal(t, length, table.Length())
	})

	t.Run("missing heights use default", func(t *testing.T) {
		table, length := Build(3, 10, heights(5), 100, 0)
		assert.Equal(t, 5.0, table[0].Rect.Height)
		assert.Equal(t, 100.0, table[1].Rect.Height)
		assert.Equal(t, 100.0, table[2].Rect.Height)
		assert.Equal(t, 205.0, length)
	})

	t.Run("nil height func", func(t *testing.T) {
		_, length := Build(2, 10, nil, 4, 1)
		assert.Equal(t, 9.0, length)
	})

	t.Run("invalid heights fall back", func(t *testing.T) {
		if failFast {
			t.Skip("invalid lengths panic in debug builds")
		}
		table, _ := Build(3, 10, heights(-1, math.NaN(), math.Inf(1)), 6, 0)
		for _, row := range table {
			assert.Equal(t, 6.0, row.Rect.Height)
		}
	})
}

func TestInvalidateFrom(t *testing.T) {
	const (
		n = 6
		h = 100.0
		k = 2
	)
	table, _ := Build(n, 50, nil, h, 0)

	resized := InvalidateFrom(table, k, Rect{X: 0, Y: 999, Width: 50, Height: 160}, 0)
	require.Len(t, resized, n)

	for i := 0; i < k; i++ {
		assert.Equal(t, table[i], resized[i], "row %d must not change", i)
	}

	assert.Equal(t, table[k].Rect.Y, resized[k].Rect.Y, "origin is preserved")
	assert.Equal(t, 160.0, resized[k].Rect.Height)
	assert.True(t, resized[k].Valid)

	for i := k + 1; i < n; i++ {
		assert.Equal(t, table[i].Rect.Y+60, resized[i].Rect.Y, "row %d shifts by the delta", i)
		assert.Equal(t, h, resized[i].Rect.Height)
		assert.False(t, resized[i].Valid)
		assert.Equal(t, i, resized[i].Index)
	}

	assert.Equal(t, float64(n)*h+60, resized.Length())
	assert.True(t, table[k+1].Valid, "input table is not mutated")
}

func TestInvalidateFromSpacing(t *testing.T) {
	table, _ := Build(3, 10, nil, 10, 5)
	resized := InvalidateFrom(table, 0, Rect{Width: 10, Height: 20}, 5)
	assert.Equal(t, 25.0, resized[1].Rect.Y)
	assert.Equal(t, 40.0, resized[2].Rect.Y)
	assert.Equal(t, 50.0, resized.Length())
}

func TestInvalidateFromOutOfRange(t *testing.T) {
	table, _ := Build(2, 10, nil, 10, 0)
	assert.Equal(t, table, InvalidateFrom(table, 5, Rect{Height: 1}, 0))
	assert.Equal(t, table, InvalidateFrom(table, -1, Rect{Height: 1}, 0))
}

func TestSetWidth(t *testing.T) {
	table, _ := Build(3, 10, nil, 10, 0)
	table[1].Valid = false
	table.SetWidth(33)
	for _, row := range table {
		assert.Equal(t, 33.0, row.Rect.Width)
	}
	assert.False(t, table[1].Valid)
}
