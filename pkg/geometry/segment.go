package geometry

import (
	"fmt"
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Tolerance is the distance in profile units below which two points are
// considered coincident.
const Tolerance = 1e-9

// Segment is one piece of a shape boundary. Implementations are immutable.
type Segment interface {
	Start() v2.Vec
	End() v2.Vec
	Length() float64
	// Rasterize returns points along the segment spaced at most res apart,
	// excluding the start point and including the end point.
	Rasterize(res float64) []v2.Vec
	Translate(d v2.Vec) Segment
	// MirrorX reflects the segment across the line x = 0.
	MirrorX() Segment
}

// ---------------------------------------------------------------------------
// Line
// ---------------------------------------------------------------------------

// LineSegment is a straight segment from P0 to P1.
type LineSegment struct {
	P0, P1 v2.Vec
}

func (l LineSegment) Start() v2.Vec { return l.P0 }
func (l LineSegment) End() v2.Vec   { return l.P1 }

func (l LineSegment) Length() float64 {
	return l.P1.Sub(l.P0).Length()
}

func (l LineSegment) Rasterize(res float64) []v2.Vec {
	n := steps(l.Length(), res)
	pts := make([]v2.Vec, 0, n)
	d := l.P1.Sub(l.P0)
	for i := 1; i < n; i++ {
		pts = append(pts, l.P0.Add(d.MulScalar(float64(i)/float64(n))))
	}
	return append(pts, l.P1)
}

func (l LineSegment) Translate(d v2.Vec) Segment {
	return LineSegment{P0: l.P0.Add(d), P1: l.P1.Add(d)}
}

func (l LineSegment) MirrorX() Segment {
	return LineSegment{P0: mirrorX(l.P0), P1: mirrorX(l.P1)}
}

// ---------------------------------------------------------------------------
// Arc
// ---------------------------------------------------------------------------

// ArcSegment is a circular arc from P0 to P1 around Center. The arc runs
// clockwise when Clockwise is set, counter-clockwise otherwise, and always
// sweeps less than a full turn.
type ArcSegment struct {
	P0, P1    v2.Vec
	Center    v2.Vec
	Clockwise bool
}

// NewArc checks that both end points lie on the same circle around center.
func NewArc(p0, p1, center v2.Vec, clockwise bool) (ArcSegment, error) {
	r0 := p0.Sub(center).Length()
	r1 := p1.Sub(center).Length()
	if math.Abs(r0-r1) > 1e-6*math.Max(1, r0) {
		return ArcSegment{}, fmt.Errorf("arc end points are not equidistant from center (%g vs %g)", r0, r1)
	}
	return ArcSegment{P0: p0, P1: p1, Center: center, Clockwise: clockwise}, nil
}

func (a ArcSegment) Start() v2.Vec { return a.P0 }
func (a ArcSegment) End() v2.Vec   { return a.P1 }

// Radius is the distance from the center to the start point.
func (a ArcSegment) Radius() float64 {
	return a.P0.Sub(a.Center).Length()
}

// Sweep returns the unsigned swept angle in radians, in [0, 2π).
func (a ArcSegment) Sweep() float64 {
	a0 := angleOf(a.P0.Sub(a.Center))
	a1 := angleOf(a.P1.Sub(a.Center))
	var s float64
	if a.Clockwise {
		s = a0 - a1
	} else {
		s = a1 - a0
	}
	s = math.Mod(s, 2*math.Pi)
	if s < 0 {
		s += 2 * math.Pi
	}
	return s
}

func (a ArcSegment) Length() float64 {
	return a.Radius() * a.Sweep()
}

func (a ArcSegment) Rasterize(res float64) []v2.Vec {
	n := steps(a.Length(), res)
	r := a.Radius()
	a0 := angleOf(a.P0.Sub(a.Center))
	sweep := a.Sweep()
	if a.Clockwise {
		sweep = -sweep
	}
	pts := make([]v2.Vec, 0, n)
	for i := 1; i < n; i++ {
		phi := a0 + sweep*float64(i)/float64(n)
		pts = append(pts, a.Center.Add(v2.Vec{X: r * math.Cos(phi), Y: r * math.Sin(phi)}))
	}
	return append(pts, a.P1)
}

func (a ArcSegment) Translate(d v2.Vec) Segment {
	return ArcSegment{P0: a.P0.Add(d), P1: a.P1.Add(d), Center: a.Center.Add(d), Clockwise: a.Clockwise}
}

// MirrorX reflects the arc; reflection flips the orientation.
func (a ArcSegment) MirrorX() Segment {
	return ArcSegment{
		P0:        mirrorX(a.P0),
		P1:        mirrorX(a.P1),
		Center:    mirrorX(a.Center),
		Clockwise: !a.Clockwise,
	}
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func mirrorX(p v2.Vec) v2.Vec {
	return v2.Vec{X: -p.X, Y: p.Y}
}

func angleOf(d v2.Vec) float64 {
	return math.Atan2(d.Y, d.X)
}

// steps returns the number of pieces a path of the given length is split
// into for resolution res. A non-positive res yields a single piece.
func steps(length, res float64) int {
	if res <= 0 || length <= res {
		return 1
	}
	return int(math.Ceil(length / res))
}

// Near reports whether two points coincide within Tolerance.
func Near(a, b v2.Vec) bool {
	return a.Sub(b).Length() <= Tolerance
}
