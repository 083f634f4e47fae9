package groove

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/weldgroove/pkg/geometry"
	"github.com/chazu/weldgroove/pkg/quantity"
)

// Plate outlines are drawn for the left workpiece with the prepared edge at
// x = 0, bottom face at y = 0 and top face at y = t. Assembly shifts the left
// plate by half the root gap and mirrors it across x = 0.

func pt(x, y float64) v2.Vec { return v2.Vec{X: x, Y: y} }

// conv converts quantities to millimetres and radians, keeping the first
// error.
type conv struct {
	typ Type
	err error
}

func (c *conv) mm(q quantity.Quantity) float64 {
	v, err := q.Millimeters()
	if err != nil && c.err == nil {
		c.err = invalidf(c.typ, "%v", err)
	}
	return v
}

func (c *conv) rad(q quantity.Quantity) float64 {
	v, err := q.Radians()
	if err != nil && c.err == nil {
		c.err = invalidf(c.typ, "%v", err)
	}
	return v
}

// optMM returns the converted value and whether it was present.
func (c *conv) optMM(q *quantity.Quantity) (float64, bool) {
	if q == nil {
		return 0, false
	}
	return c.mm(*q), true
}

// symmetric places the left plate and its mirror image around the gap.
func symmetric(left geometry.Shape, gap float64) *geometry.Profile {
	l := left.Translate(pt(-gap/2, 0))
	return geometry.NewProfile(l, l.MirrorX())
}

// oneSided pairs a prepared left plate with an unprepared square right plate
// reaching as far out as the left one.
func oneSided(typ Type, left geometry.Shape, t, reach, gap float64) (*geometry.Profile, error) {
	right, err := squareEdge(typ, t, reach)
	if err != nil {
		return nil, err
	}
	shift := pt(-gap/2, 0)
	return geometry.NewProfile(left.Translate(shift), right.Translate(shift).MirrorX()), nil
}

// edge closes a plate outline. Degenerate outlines are invalid arguments of
// the groove being built.
func edge(typ Type, b *geometry.Builder) (geometry.Shape, error) {
	sh, err := b.Shape()
	if err != nil {
		return geometry.Shape{}, invalidf(typ, "%v", err)
	}
	return sh, nil
}

// squareEdge is an unprepared plate edge of thickness t.
func squareEdge(typ Type, t, reach float64) (geometry.Shape, error) {
	return edge(typ, geometry.NewBuilder(pt(-reach, 0)).
		LineTo(pt(0, 0)).
		LineTo(pt(0, t)).
		LineTo(pt(-reach, t)))
}

// bevelEdge is a straight bevel of horizontal run s above a root face c.
func bevelEdge(typ Type, t, c, s, width float64) (geometry.Shape, float64, error) {
	reach := s + width
	sh, err := edge(typ, geometry.NewBuilder(pt(-reach, 0)).
		LineTo(pt(0, 0)).
		LineTo(pt(0, c)).
		LineTo(pt(-s, t)).
		LineTo(pt(-reach, t)))
	return sh, reach, err
}

// upperArc returns the end point of a U bottom of radius r starting at
// (0, y0) and sweeping clockwise up to the flank at bevel angle beta, plus
// the x where that flank meets the top face t.
func upperArc(y0, r, beta, t float64) (end v2.Vec, center v2.Vec, xTop float64) {
	center = pt(0, y0+r)
	end = pt(-r*math.Cos(beta), center.Y-r*math.Sin(beta))
	xTop = end.X - (t-end.Y)*math.Tan(beta)
	return end, center, xTop
}

// lowerArc is upperArc mirrored vertically: a U bottom of radius r ending at
// (0, y0), opening downwards to the bottom face.
func lowerArc(y0, r, beta float64) (start v2.Vec, center v2.Vec, xBottom float64) {
	center = pt(0, y0-r)
	start = pt(-r*math.Cos(beta), center.Y+r*math.Sin(beta))
	xBottom = start.X - start.Y*math.Tan(beta)
	return start, center, xBottom
}

// uEdge is a U preparation above root face c.
func uEdge(typ Type, t, beta, r, c, width float64) (geometry.Shape, float64, error) {
	if c > t {
		return geometry.Shape{}, 0, invalidf(typ, "root face %g mm exceeds thickness %g mm", c, t)
	}
	end, center, xTop := upperArc(c, r, beta, t)
	if end.Y > t+geometry.Tolerance {
		return geometry.Shape{}, 0, invalidf(typ, "bevel radius %g mm leaves the plate", r)
	}
	reach := -xTop + width
	sh, err := edge(typ, geometry.NewBuilder(pt(-reach, 0)).
		LineTo(pt(0, 0)).
		LineTo(pt(0, c)).
		ArcTo(end, center, true).
		LineTo(pt(xTop, t)).
		LineTo(pt(-reach, t)))
	return sh, reach, err
}

// splitHeights resolves the upper (h1) and lower (h2) preparation heights
// of a double-sided groove. Missing heights split t - c evenly or take the
// remainder.
func splitHeights(typ Type, t, c float64, h1, h2 *float64) (upper, lower float64, err error) {
	rest := t - c
	switch {
	case h1 == nil && h2 == nil:
		upper, lower = rest/2, rest/2
	case h2 == nil:
		upper, lower = *h1, rest-*h1
	case h1 == nil:
		upper, lower = rest-*h2, *h2
	default:
		upper, lower = *h1, *h2
		if math.Abs(upper+lower+c-t) > geometry.Tolerance*math.Max(1, t) {
			return 0, 0, invalidf(typ, "h1 + h2 + c = %g mm does not match thickness %g mm", upper+lower+c, t)
		}
	}
	if upper < 0 || lower < 0 {
		return 0, 0, invalidf(typ, "root face %g mm leaves no room in thickness %g mm", c, t)
	}
	return upper, lower, nil
}

// doubleBevelEdge is a double-sided straight preparation: a lower bevel of
// run s2 over height h2, the root face c, and an upper bevel of run s1.
func doubleBevelEdge(typ Type, t, c, h2, s1, s2, width float64) (geometry.Shape, float64, error) {
	reach := math.Max(s1, s2) + width
	sh, err := edge(typ, geometry.NewBuilder(pt(-reach, 0)).
		LineTo(pt(-s2, 0)).
		LineTo(pt(0, h2)).
		LineTo(pt(0, h2+c)).
		LineTo(pt(-s1, t)).
		LineTo(pt(-reach, t)))
	return sh, reach, err
}

// doubleUEdge is a double-sided U preparation with radius r1 and angle
// beta1 above the root face and r2, beta2 below it.
func doubleUEdge(typ Type, t, c, h2, beta1, beta2, r1, r2, width float64) (geometry.Shape, float64, error) {
	upEnd, upCenter, xTop := upperArc(h2+c, r1, beta1, t)
	if upEnd.Y > t+geometry.Tolerance {
		return geometry.Shape{}, 0, invalidf(typ, "bevel radius %g mm leaves the plate", r1)
	}
	loStart, loCenter, xBottom := lowerArc(h2, r2, beta2)
	if loStart.Y < -geometry.Tolerance {
		return geometry.Shape{}, 0, invalidf(typ, "bevel radius %g mm leaves the plate", r2)
	}
	reach := math.Max(-xTop, -xBottom) + width
	sh, err := edge(typ, geometry.NewBuilder(pt(-reach, 0)).
		LineTo(pt(xBottom, 0)).
		LineTo(loStart).
		ArcTo(pt(0, h2), loCenter, true).
		LineTo(pt(0, h2+c)).
		ArcTo(upEnd, upCenter, true).
		LineTo(pt(xTop, t)).
		LineTo(pt(-reach, t)))
	return sh, reach, err
}

func checkBevel(typ Type, name string, beta float64) error {
	if beta >= math.Pi/2-geometry.Tolerance {
		return invalidf(typ, "%s must be below 90 deg", name)
	}
	return nil
}

func checkGrooveAngle(typ Type, name string, alpha float64) error {
	if alpha >= math.Pi-geometry.Tolerance {
		return invalidf(typ, "%s must be below 180 deg", name)
	}
	return nil
}
