package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlope(t *testing.T) {
	testCases := []struct {
		name     string
		a, b     Point
		expected float64
		ok       bool
	}{
		{name: "rising diagonal", a: Pt(0, 0), b: Pt(10, 10), expected: 1, ok: true},
		{name: "falling diagonal", a: Pt(0, 10), b: Pt(10, 0), expected: -1, ok: true},
		{name: "horizontal", a: Pt(3, 4), b: Pt(9, 4), expected: 0, ok: true},
		{name: "reversed endpoints give same slope", a: Pt(10, 10), b: Pt(0, 0), expected: 1, ok: true},
		{name: "vertical", a: Pt(5, 0), b: Pt(5, 10), ok: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			slope, ok := Slope(tc.a, tc.b)
			require.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.expected, slope)
			}
		})
	}
}

func TestCrossing(t *testing.T) {
	t.Run("diagonals cross at the centre", func(t *testing.T) {
		p, ok := Crossing(Pt(0, 0), 1, Pt(0, 10), -1)
		require.True(t, ok)
		assert.Equal(t, Pt(5, 5), p)
	})

	t.Run("crossing outside both segments is still reported", func(t *testing.T) {
		// y = x and y = -x + 100 meet at (50, 50), far from either short segment.
		p, ok := Crossing(Pt(0, 0), 1, Pt(90, 10), -1)
		require.True(t, ok)
		assert.Equal(t, Pt(50, 50), p)
	})

	t.Run("crossing is truncated onto the grid", func(t *testing.T) {
		// y = x meets y = -x + 5 at (2.5, 2.5).
		p, ok := Crossing(Pt(0, 0), 1, Pt(0, 5), -1)
		require.True(t, ok)
		assert.Equal(t, Pt(2, 2), p)
	})
}

func TestWithinBounds(t *testing.T) {
	a, b := Pt(10, 0), Pt(0, 10)

	assert.True(t, WithinBounds(Pt(5, 5), a, b))
	assert.True(t, WithinBounds(Pt(0, 0), a, b), "corners are inside the closed rectangle")
	assert.True(t, WithinBounds(Pt(10, 10), a, b))
	assert.False(t, WithinBounds(Pt(11, 5), a, b))
	assert.False(t, WithinBounds(Pt(5, -1), a, b))
	assert.True(t, WithinBounds(Pt(-3, -1), Pt(-5, 0), Pt(0, -2)), "negative coordinates are ordinary points")
}

func TestPoint_DistanceTo(t *testing.T) {
	assert.InDelta(t, 5.0, Pt(0, 0).DistanceTo(Pt(3, 4)), 1e-9)
	assert.Equal(t, "(3, -4)", Pt(3, -4).String())
}

func TestPath_Clone(t *testing.T) {
	p := Path{Pt(1, 2), Pt(3, 4)}
	c := p.Clone()
	c[0] = Pt(9, 9)

	assert.Equal(t, Pt(1, 2), p[0])
	assert.Nil(t, Path(nil).Clone())
	assert.Equal(t, 3, CountPoints([]Path{p, {Pt(0, 0)}}))
}
