// Package geometry provides the 2D boundary representation used for groove
// cross sections: shapes made of line and arc segments, grouped into
// profiles. All values are immutable; transformations return new values.
package geometry

import (
	"errors"
	"fmt"
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// DefaultUnits is the length unit of profile coordinates.
const DefaultUnits = "mm"

// Shape is an ordered, connected sequence of segments.
type Shape struct {
	Segments []Segment
}

// Points returns the ordered vertex sequence: the start of the first
// segment followed by the end of every segment.
func (s Shape) Points() []v2.Vec {
	if len(s.Segments) == 0 {
		return nil
	}
	pts := make([]v2.Vec, 0, len(s.Segments)+1)
	pts = append(pts, s.Segments[0].Start())
	for _, seg := range s.Segments {
		pts = append(pts, seg.End())
	}
	return pts
}

// Rasterize returns the boundary as a polyline with arcs interpolated at
// resolution res.
func (s Shape) Rasterize(res float64) []v2.Vec {
	if len(s.Segments) == 0 {
		return nil
	}
	pts := []v2.Vec{s.Segments[0].Start()}
	for _, seg := range s.Segments {
		pts = append(pts, seg.Rasterize(res)...)
	}
	return pts
}

// Closed reports whether the shape ends where it starts.
func (s Shape) Closed() bool {
	if len(s.Segments) == 0 {
		return false
	}
	return Near(s.Segments[0].Start(), s.Segments[len(s.Segments)-1].End())
}

// Translate returns the shape moved by d.
func (s Shape) Translate(d v2.Vec) Shape {
	out := Shape{Segments: make([]Segment, len(s.Segments))}
	for i, seg := range s.Segments {
		out.Segments[i] = seg.Translate(d)
	}
	return out
}

// MirrorX returns the shape reflected across x = 0.
func (s Shape) MirrorX() Shape {
	out := Shape{Segments: make([]Segment, len(s.Segments))}
	for i, seg := range s.Segments {
		out.Segments[i] = seg.MirrorX()
	}
	return out
}

// Length returns the total boundary length.
func (s Shape) Length() float64 {
	var l float64
	for _, seg := range s.Segments {
		l += seg.Length()
	}
	return l
}

// Profile is a cross section made of one or more shapes, typically one per
// workpiece.
type Profile struct {
	Shapes []Shape
	Units  string
}

// NewProfile bundles shapes into a profile in DefaultUnits.
func NewProfile(shapes ...Shape) *Profile {
	return &Profile{Shapes: shapes, Units: DefaultUnits}
}

// Empty reports whether the profile has no segments at all.
func (p *Profile) Empty() bool {
	for _, s := range p.Shapes {
		if len(s.Segments) > 0 {
			return false
		}
	}
	return true
}

// Points returns the vertex sequence of every shape.
func (p *Profile) Points() [][]v2.Vec {
	out := make([][]v2.Vec, 0, len(p.Shapes))
	for _, s := range p.Shapes {
		out = append(out, s.Points())
	}
	return out
}

// Rasterize returns one polyline per shape.
func (p *Profile) Rasterize(res float64) [][]v2.Vec {
	out := make([][]v2.Vec, 0, len(p.Shapes))
	for _, s := range p.Shapes {
		out = append(out, s.Rasterize(res))
	}
	return out
}

// Bounds returns the axis-aligned bounding box of all vertices and arc
// extremes at a fine resolution. An empty profile yields zero vectors.
func (p *Profile) Bounds() (min, max v2.Vec) {
	first := true
	for _, s := range p.Shapes {
		for _, pt := range s.Rasterize(0.01) {
			if first {
				min, max = pt, pt
				first = false
				continue
			}
			min = v2.Vec{X: math.Min(min.X, pt.X), Y: math.Min(min.Y, pt.Y)}
			max = v2.Vec{X: math.Max(max.X, pt.X), Y: math.Max(max.Y, pt.Y)}
		}
	}
	return min, max
}

// ---------------------------------------------------------------------------
// Builder
// ---------------------------------------------------------------------------

// ErrEmptyShape is returned when a builder produced no segments.
var ErrEmptyShape = errors.New("shape has no segments")

// Builder assembles a Shape segment by segment. Zero-length segments are
// dropped so that degenerate parameters (zero root face, zero radius) yield
// valid shapes. The first error sticks and is reported by Shape.
type Builder struct {
	start v2.Vec
	cur   v2.Vec
	segs  []Segment
	err   error
}

// NewBuilder starts a shape at p.
func NewBuilder(p v2.Vec) *Builder {
	return &Builder{start: p, cur: p}
}

// Current returns the current end point.
func (b *Builder) Current() v2.Vec {
	return b.cur
}

// LineTo appends a straight segment to p.
func (b *Builder) LineTo(p v2.Vec) *Builder {
	if b.err != nil || Near(b.cur, p) {
		return b
	}
	b.segs = append(b.segs, LineSegment{P0: b.cur, P1: p})
	b.cur = p
	return b
}

// ArcTo appends an arc to p around center.
func (b *Builder) ArcTo(p, center v2.Vec, clockwise bool) *Builder {
	if b.err != nil || Near(b.cur, p) {
		return b
	}
	arc, err := NewArc(b.cur, p, center, clockwise)
	if err != nil {
		b.err = fmt.Errorf("segment %d: %w", len(b.segs), err)
		return b
	}
	b.segs = append(b.segs, arc)
	b.cur = p
	return b
}

// Close appends a line back to the start point.
func (b *Builder) Close() *Builder {
	return b.LineTo(b.start)
}

// Shape returns the built shape.
func (b *Builder) Shape() (Shape, error) {
	if b.err != nil {
		return Shape{}, b.err
	}
	if len(b.segs) == 0 {
		return Shape{}, ErrEmptyShape
	}
	segs := make([]Segment, len(b.segs))
	copy(segs, b.segs)
	return Shape{Segments: segs}, nil
}

// Rect returns a closed axis-aligned rectangle with corners lo and hi.
func Rect(lo, hi v2.Vec) (Shape, error) {
	return NewBuilder(lo).
		LineTo(v2.Vec{X: hi.X, Y: lo.Y}).
		LineTo(hi).
		LineTo(v2.Vec{X: lo.X, Y: hi.Y}).
		Close().
		Shape()
}

// Quad returns the closed polygon through four corners.
func Quad(a, b, c, d v2.Vec) (Shape, error) {
	return NewBuilder(a).LineTo(b).LineTo(c).LineTo(d).Close().Shape()
}
