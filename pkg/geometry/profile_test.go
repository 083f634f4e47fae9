package geometry

import (
	"math"
	"testing"

	v2 "github.com/deadsy/sdfx/vec/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vec(x, y float64) v2.Vec { return v2.Vec{X: x, Y: y} }

func assertNear(t *testing.T, want, got v2.Vec) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-9, "x of %v", got)
	assert.InDelta(t, want.Y, got.Y, 1e-9, "y of %v", got)
}

func TestBuilderSkipsZeroLengthSegments(t *testing.T) {
	s, err := NewBuilder(vec(0, 0)).
		LineTo(vec(1, 0)).
		LineTo(vec(1, 0)).
		ArcTo(vec(1, 0), vec(1, 1), true).
		LineTo(vec(1, 2)).
		Shape()
	require.NoError(t, err)
	require.Len(t, s.Segments, 2)

	pts := s.Points()
	require.Len(t, pts, 3)
	assertNear(t, vec(0, 0), pts[0])
	assertNear(t, vec(1, 0), pts[1])
	assertNear(t, vec(1, 2), pts[2])
	assert.False(t, s.Closed())
}

func TestBuilderEmpty(t *testing.T) {
	_, err := NewBuilder(vec(3, 3)).LineTo(vec(3, 3)).Shape()
	assert.ErrorIs(t, err, ErrEmptyShape)
}

func TestBuilderArcErrorSticks(t *testing.T) {
	_, err := NewBuilder(vec(0, 0)).
		ArcTo(vec(5, 0), vec(0, 1), false).
		LineTo(vec(9, 9)).
		Shape()
	assert.Error(t, err)
}

func TestRect(t *testing.T) {
	s, err := Rect(vec(0, 0), vec(4, 2))
	require.NoError(t, err)
	assert.True(t, s.Closed())
	assert.Len(t, s.Segments, 4)
	assert.InDelta(t, 12, s.Length(), 1e-12)
}

func TestArcSweepAndRasterize(t *testing.T) {
	// Quarter circle from the bottom to the left of a unit circle, clockwise.
	arc, err := NewArc(vec(0, -1), vec(-1, 0), vec(0, 0), true)
	require.NoError(t, err)
	assert.InDelta(t, math.Pi/2, arc.Sweep(), 1e-12)
	assert.InDelta(t, math.Pi/2, arc.Length(), 1e-12)

	pts := arc.Rasterize(0.1)
	assert.Len(t, pts, int(math.Ceil((math.Pi/2)/0.1)))
	assertNear(t, vec(-1, 0), pts[len(pts)-1])
	for _, p := range pts {
		assert.InDelta(t, 1, p.Length(), 1e-9)
		assert.LessOrEqual(t, p.X, 1e-9, "clockwise arc must stay in the left half")
	}

	// The same end points counter-clockwise take the long way round.
	ccw := ArcSegment{P0: vec(0, -1), P1: vec(-1, 0), Center: vec(0, 0)}
	assert.InDelta(t, 3*math.Pi/2, ccw.Sweep(), 1e-12)
}

func TestMirrorFlipsArcOrientation(t *testing.T) {
	arc := ArcSegment{P0: vec(0, -1), P1: vec(-1, 0), Center: vec(0, 0), Clockwise: true}
	m, ok := arc.MirrorX().(ArcSegment)
	require.True(t, ok)
	assert.False(t, m.Clockwise)
	assertNear(t, vec(1, 0), m.P1)
	assert.InDelta(t, arc.Sweep(), m.Sweep(), 1e-12)
}

func TestShapeTranslate(t *testing.T) {
	s, err := NewBuilder(vec(0, 0)).LineTo(vec(1, 1)).Shape()
	require.NoError(t, err)
	moved := s.Translate(vec(-2, 3))
	pts := moved.Points()
	assertNear(t, vec(-2, 3), pts[0])
	assertNear(t, vec(-1, 4), pts[1])
	// The original is unchanged.
	assertNear(t, vec(0, 0), s.Points()[0])
}

func TestProfileBoundsAndRasterize(t *testing.T) {
	left, err := Rect(vec(-3, 0), vec(-1, 2))
	require.NoError(t, err)
	p := NewProfile(left, left.MirrorX())
	assert.Equal(t, DefaultUnits, p.Units)
	assert.False(t, p.Empty())

	lo, hi := p.Bounds()
	assertNear(t, vec(-3, 0), lo)
	assertNear(t, vec(3, 2), hi)

	lines := p.Rasterize(0.5)
	require.Len(t, lines, 2)
	// 2x2 rectangle sides of length 2 and 2 split into 0.5 steps: 4+4+4+4 points + start.
	assert.Len(t, lines[0], 17)

	assert.True(t, NewProfile().Empty())
}

func TestLineRasterizeNonPositiveResolution(t *testing.T) {
	l := LineSegment{P0: vec(0, 0), P1: vec(10, 0)}
	pts := l.Rasterize(0)
	require.Len(t, pts, 1)
	assertNear(t, vec(10, 0), pts[0])
}
