package groove

import (
	"math"
	"slices"

	"github.com/chazu/weldgroove/pkg/geometry"
	"github.com/chazu/weldgroove/pkg/quantity"
)

func init() {
	register(variant{
		typ: TypeVGroove,
		params: []ParamSpec{
			length("t", WorkpieceThickness),
			angle("alpha", GrooveAngle),
			length("c", RootFace),
			rootGap(),
		},
		codes: []string{"1.3", "1.5"}, defaults: 2,
		build: func(v values, codes []string) Groove {
			return VGroove{T: v.req("t"), Alpha: v.req("alpha"), C: v.req("c"), B: v.req("b"), Code: codes}
		},
	})
	register(variant{
		typ: TypeVVGroove,
		params: []ParamSpec{
			length("t", WorkpieceThickness),
			angle("alpha", GrooveAngle),
			angle("beta", BevelAngle),
			length("c", RootFace),
			length("h", RootFace2),
			rootGap(),
		},
		codes: []string{"1.7"}, defaults: 1,
		build: func(v values, codes []string) Groove {
			return VVGroove{
				T: v.req("t"), Alpha: v.req("alpha"), Beta: v.req("beta"),
				C: v.req("c"), H: v.req("h"), B: v.req("b"), Code: codes,
			}
		},
	})
	register(variant{
		typ: TypeUVGroove,
		params: []ParamSpec{
			length("t", WorkpieceThickness),
			angle("alpha", GrooveAngle),
			angle("beta", BevelAngle),
			length("R", BevelRadius),
			length("h", RootFace),
			rootGap(),
		},
		codes: []string{"1.6"}, defaults: 1,
		build: func(v values, codes []string) Groove {
			return UVGroove{
				T: v.req("t"), Alpha: v.req("alpha"), Beta: v.req("beta"),
				R: v.req("R"), H: v.req("h"), B: v.req("b"), Code: codes,
			}
		},
	})
	register(variant{
		typ: TypeUGroove,
		params: []ParamSpec{
			length("t", WorkpieceThickness),
			angle("beta", BevelAngle),
			length("R", BevelRadius),
			length("c", RootFace),
			rootGap(),
		},
		codes: []string{"1.8"}, defaults: 1,
		build: func(v values, codes []string) Groove {
			return UGroove{T: v.req("t"), Beta: v.req("beta"), R: v.req("R"), C: v.req("c"), B: v.req("b"), Code: codes}
		},
	})
	register(variant{
		typ: TypeIGroove,
		params: []ParamSpec{
			length("t", WorkpieceThickness),
			rootGap(),
		},
		codes: []string{"1.2.1", "1.2.2", "2.1"}, defaults: 3,
		build: func(v values, codes []string) Groove {
			return IGroove{T: v.req("t"), B: v.req("b"), Code: codes}
		},
	})
	register(variant{
		typ: TypeHVGroove,
		params: []ParamSpec{
			length("t", WorkpieceThickness),
			angle("beta", BevelAngle),
			length("c", RootFace),
			rootGap(),
		},
		codes: []string{"1.9.1", "1.9.2", "2.8"}, defaults: 3,
		build: func(v values, codes []string) Groove {
			return HVGroove{T: v.req("t"), Beta: v.req("beta"), C: v.req("c"), B: v.req("b"), Code: codes}
		},
	})
	register(variant{
		typ: TypeHUGroove,
		params: []ParamSpec{
			length("t", WorkpieceThickness),
			angle("beta", BevelAngle),
			length("R", BevelRadius),
			length("c", RootFace),
			rootGap(),
		},
		codes: []string{"1.11", "2.10"}, defaults: 2,
		build: func(v values, codes []string) Groove {
			return HUGroove{T: v.req("t"), Beta: v.req("beta"), R: v.req("R"), C: v.req("c"), B: v.req("b"), Code: codes}
		},
	})
}

func specsOf(t Type) []ParamSpec { return registry[t].params }

// VGroove is a symmetric single V preparation.
type VGroove struct {
	T     quantity.Quantity // workpiece thickness
	Alpha quantity.Quantity // groove angle
	C     quantity.Quantity // root face
	B     quantity.Quantity // root gap
	Code  []string
}

func (g VGroove) Type() Type      { return TypeVGroove }
func (g VGroove) Codes() []string { return slices.Clone(g.Code) }
func (g VGroove) Params() []Param {
	return bind(specsOf(TypeVGroove), &g.T, &g.Alpha, &g.C, &g.B)
}

func (g VGroove) ToProfile(opts ...ProfileOption) (*geometry.Profile, error) {
	w, err := resolveWidth(TypeVGroove, opts)
	if err != nil {
		return nil, err
	}
	c := conv{typ: TypeVGroove}
	t, alpha, rf, b := c.mm(g.T), c.rad(g.Alpha), c.mm(g.C), c.mm(g.B)
	if c.err != nil {
		return nil, c.err
	}
	if rf > t {
		return nil, invalidf(TypeVGroove, "root face %s exceeds thickness %s", g.C, g.T)
	}
	if err := checkGrooveAngle(TypeVGroove, "alpha", alpha); err != nil {
		return nil, err
	}
	left, _, err := bevelEdge(TypeVGroove, t, rf, math.Tan(alpha/2)*(t-rf), w)
	if err != nil {
		return nil, err
	}
	return symmetric(left, b), nil
}

// VVGroove is a V preparation on top of a steep bevel of height h.
type VVGroove struct {
	T     quantity.Quantity // workpiece thickness
	Alpha quantity.Quantity // groove angle
	Beta  quantity.Quantity // bevel angle
	C     quantity.Quantity // root face
	H     quantity.Quantity // height of the lower bevel
	B     quantity.Quantity // root gap
	Code  []string
}

func (g VVGroove) Type() Type      { return TypeVVGroove }
func (g VVGroove) Codes() []string { return slices.Clone(g.Code) }
func (g VVGroove) Params() []Param {
	return bind(specsOf(TypeVVGroove), &g.T, &g.Alpha, &g.Beta, &g.C, &g.H, &g.B)
}

func (g VVGroove) ToProfile(opts ...ProfileOption) (*geometry.Profile, error) {
	w, err := resolveWidth(TypeVVGroove, opts)
	if err != nil {
		return nil, err
	}
	c := conv{typ: TypeVVGroove}
	t, alpha, beta, rf, h, b := c.mm(g.T), c.rad(g.Alpha), c.rad(g.Beta), c.mm(g.C), c.mm(g.H), c.mm(g.B)
	if c.err != nil {
		return nil, c.err
	}
	switch {
	case rf > h:
		return nil, invalidf(TypeVVGroove, "root face %s exceeds bevel height %s", g.C, g.H)
	case h > t:
		return nil, invalidf(TypeVVGroove, "bevel height %s exceeds thickness %s", g.H, g.T)
	}
	if err := checkGrooveAngle(TypeVVGroove, "alpha", alpha); err != nil {
		return nil, err
	}
	if err := checkBevel(TypeVVGroove, "beta", beta); err != nil {
		return nil, err
	}
	s1 := math.Tan(beta) * (h - rf)
	s2 := math.Tan(alpha/2) * (t - h)
	reach := s1 + s2 + w
	left, err := edge(TypeVVGroove, geometry.NewBuilder(pt(-reach, 0)).
		LineTo(pt(0, 0)).
		LineTo(pt(0, rf)).
		LineTo(pt(-s1, h)).
		LineTo(pt(-s1-s2, t)).
		LineTo(pt(-reach, t)))
	if err != nil {
		return nil, err
	}
	return symmetric(left, b), nil
}

// UVGroove is a V root of height h continued by a U of radius R.
type UVGroove struct {
	T     quantity.Quantity // workpiece thickness
	Alpha quantity.Quantity // groove angle of the V root
	Beta  quantity.Quantity // bevel angle of the U flank
	R     quantity.Quantity // bevel radius
	H     quantity.Quantity // height of the V root
	B     quantity.Quantity // root gap
	Code  []string
}

func (g UVGroove) Type() Type      { return TypeUVGroove }
func (g UVGroove) Codes() []string { return slices.Clone(g.Code) }
func (g UVGroove) Params() []Param {
	return bind(specsOf(TypeUVGroove), &g.T, &g.Alpha, &g.Beta, &g.R, &g.H, &g.B)
}

func (g UVGroove) ToProfile(opts ...ProfileOption) (*geometry.Profile, error) {
	w, err := resolveWidth(TypeUVGroove, opts)
	if err != nil {
		return nil, err
	}
	c := conv{typ: TypeUVGroove}
	t, alpha, beta, r, h, b := c.mm(g.T), c.rad(g.Alpha), c.rad(g.Beta), c.mm(g.R), c.mm(g.H), c.mm(g.B)
	if c.err != nil {
		return nil, c.err
	}
	if h > t {
		return nil, invalidf(TypeUVGroove, "root height %s exceeds thickness %s", g.H, g.T)
	}
	if err := checkGrooveAngle(TypeUVGroove, "alpha", alpha); err != nil {
		return nil, err
	}
	if err := checkBevel(TypeUVGroove, "beta", beta); err != nil {
		return nil, err
	}
	x1 := math.Tan(alpha/2) * h
	if r < x1 {
		return nil, invalidf(TypeUVGroove, "bevel radius %s is smaller than the V opening %g mm", g.R, x1)
	}
	center := pt(0, h+math.Sqrt(r*r-x1*x1))
	end := pt(-r*math.Cos(beta), center.Y-r*math.Sin(beta))
	if end.Y < h-geometry.Tolerance {
		return nil, invalidf(TypeUVGroove, "bevel angle %s turns the arc below the V root", g.Beta)
	}
	if end.Y > t+geometry.Tolerance {
		return nil, invalidf(TypeUVGroove, "bevel radius %s leaves the plate", g.R)
	}
	xTop := end.X - (t-end.Y)*math.Tan(beta)
	reach := -xTop + w
	left, err := edge(TypeUVGroove, geometry.NewBuilder(pt(-reach, 0)).
		LineTo(pt(0, 0)).
		LineTo(pt(-x1, h)).
		ArcTo(end, center, true).
		LineTo(pt(xTop, t)).
		LineTo(pt(-reach, t)))
	if err != nil {
		return nil, err
	}
	return symmetric(left, b), nil
}

// UGroove is a symmetric single U preparation.
type UGroove struct {
	T    quantity.Quantity // workpiece thickness
	Beta quantity.Quantity // bevel angle
	R    quantity.Quantity // bevel radius
	C    quantity.Quantity // root face
	B    quantity.Quantity // root gap
	Code []string
}

func (g UGroove) Type() Type      { return TypeUGroove }
func (g UGroove) Codes() []string { return slices.Clone(g.Code) }
func (g UGroove) Params() []Param {
	return bind(specsOf(TypeUGroove), &g.T, &g.Beta, &g.R, &g.C, &g.B)
}

func (g UGroove) ToProfile(opts ...ProfileOption) (*geometry.Profile, error) {
	w, err := resolveWidth(TypeUGroove, opts)
	if err != nil {
		return nil, err
	}
	c := conv{typ: TypeUGroove}
	t, beta, r, rf, b := c.mm(g.T), c.rad(g.Beta), c.mm(g.R), c.mm(g.C), c.mm(g.B)
	if c.err != nil {
		return nil, c.err
	}
	if err := checkBevel(TypeUGroove, "beta", beta); err != nil {
		return nil, err
	}
	left, _, err := uEdge(TypeUGroove, t, beta, r, rf, w)
	if err != nil {
		return nil, err
	}
	return symmetric(left, b), nil
}

// IGroove is a square butt preparation.
type IGroove struct {
	T    quantity.Quantity // workpiece thickness
	B    quantity.Quantity // root gap
	Code []string
}

func (g IGroove) Type() Type      { return TypeIGroove }
func (g IGroove) Codes() []string { return slices.Clone(g.Code) }
func (g IGroove) Params() []Param {
	return bind(specsOf(TypeIGroove), &g.T, &g.B)
}

func (g IGroove) ToProfile(opts ...ProfileOption) (*geometry.Profile, error) {
	w, err := resolveWidth(TypeIGroove, opts)
	if err != nil {
		return nil, err
	}
	c := conv{typ: TypeIGroove}
	t, b := c.mm(g.T), c.mm(g.B)
	if c.err != nil {
		return nil, c.err
	}
	left, err := squareEdge(TypeIGroove, t, w)
	if err != nil {
		return nil, err
	}
	return symmetric(left, b), nil
}

// HVGroove is a single bevel on the left plate against a square right plate.
type HVGroove struct {
	T    quantity.Quantity // workpiece thickness
	Beta quantity.Quantity // bevel angle
	C    quantity.Quantity // root face
	B    quantity.Quantity // root gap
	Code []string
}

func (g HVGroove) Type() Type      { return TypeHVGroove }
func (g HVGroove) Codes() []string { return slices.Clone(g.Code) }
func (g HVGroove) Params() []Param {
	return bind(specsOf(TypeHVGroove), &g.T, &g.Beta, &g.C, &g.B)
}

func (g HVGroove) ToProfile(opts ...ProfileOption) (*geometry.Profile, error) {
	w, err := resolveWidth(TypeHVGroove, opts)
	if err != nil {
		return nil, err
	}
	c := conv{typ: TypeHVGroove}
	t, beta, rf, b := c.mm(g.T), c.rad(g.Beta), c.mm(g.C), c.mm(g.B)
	if c.err != nil {
		return nil, c.err
	}
	if rf > t {
		return nil, invalidf(TypeHVGroove, "root face %s exceeds thickness %s", g.C, g.T)
	}
	if err := checkBevel(TypeHVGroove, "beta", beta); err != nil {
		return nil, err
	}
	left, reach, err := bevelEdge(TypeHVGroove, t, rf, math.Tan(beta)*(t-rf), w)
	if err != nil {
		return nil, err
	}
	return oneSided(TypeHVGroove, left, t, reach, b)
}

// HUGroove is a single U on the left plate against a square right plate.
type HUGroove struct {
	T    quantity.Quantity // workpiece thickness
	Beta quantity.Quantity // bevel angle
	R    quantity.Quantity // bevel radius
	C    quantity.Quantity // root face
	B    quantity.Quantity // root gap
	Code []string
}

func (g HUGroove) Type() Type      { return TypeHUGroove }
func (g HUGroove) Codes() []string { return slices.Clone(g.Code) }
func (g HUGroove) Params() []Param {
	return bind(specsOf(TypeHUGroove), &g.T, &g.Beta, &g.R, &g.C, &g.B)
}

func (g HUGroove) ToProfile(opts ...ProfileOption) (*geometry.Profile, error) {
	w, err := resolveWidth(TypeHUGroove, opts)
	if err != nil {
		return nil, err
	}
	c := conv{typ: TypeHUGroove}
	t, beta, r, rf, b := c.mm(g.T), c.rad(g.Beta), c.mm(g.R), c.mm(g.C), c.mm(g.B)
	if c.err != nil {
		return nil, c.err
	}
	if err := checkBevel(TypeHUGroove, "beta", beta); err != nil {
		return nil, err
	}
	left, reach, err := uEdge(TypeHUGroove, t, beta, r, rf, w)
	if err != nil {
		return nil, err
	}
	return oneSided(TypeHUGroove, left, t, reach, b)
}
