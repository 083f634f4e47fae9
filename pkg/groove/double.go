package groove

import (
	"math"
	"slices"

	"github.com/chazu/weldgroove/pkg/geometry"
	"github.com/chazu/weldgroove/pkg/quantity"
)

func init() {
	register(variant{
		typ: TypeDVGroove,
		params: []ParamSpec{
			length("t", WorkpieceThickness),
			angle("alpha_1", GrooveAngle),
			angle("alpha_2", GrooveAngle2),
			length("c", RootFace),
			optional(length("h1", RootFace2)),
			optional(length("h2", RootFace3)),
			rootGap(),
		},
		codes: []string{"2.4", "2.5.1", "2.5.2"}, defaults: 3,
		build: func(v values, codes []string) Groove {
			return DVGroove{
				T: v.req("t"), Alpha1: v.req("alpha_1"), Alpha2: v.req("alpha_2"), C: v.req("c"),
				H1: v.opt("h1"), H2: v.opt("h2"), B: v.req("b"), Code: codes,
			}
		},
	})
	register(variant{
		typ: TypeDUGroove,
		params: []ParamSpec{
			length("t", WorkpieceThickness),
			angle("beta_1", BevelAngle),
			angle("beta_2", BevelAngle2),
			length("R", BevelRadius),
			length("R2", BevelRadius2),
			length("c", RootFace),
			optional(length("h1", RootFace2)),
			optional(length("h2", RootFace3)),
			rootGap(),
		},
		codes: []string{"2.7"}, defaults: 1,
		build: func(v values, codes []string) Groove {
			return DUGroove{
				T: v.req("t"), Beta1: v.req("beta_1"), Beta2: v.req("beta_2"),
				R: v.req("R"), R2: v.req("R2"), C: v.req("c"),
				H1: v.opt("h1"), H2: v.opt("h2"), B: v.req("b"), Code: codes,
			}
		},
	})
	register(variant{
		typ: TypeDHVGroove,
		params: []ParamSpec{
			length("t", WorkpieceThickness),
			angle("beta_1", BevelAngle),
			angle("beta_2", BevelAngle2),
			length("c", RootFace),
			optional(length("h1", RootFace2)),
			optional(length("h2", RootFace3)),
			rootGap(),
		},
		codes: []string{"2.9.1", "2.9.2"}, defaults: 2,
		build: func(v values, codes []string) Groove {
			return DHVGroove{
				T: v.req("t"), Beta1: v.req("beta_1"), Beta2: v.req("beta_2"), C: v.req("c"),
				H1: v.opt("h1"), H2: v.opt("h2"), B: v.req("b"), Code: codes,
			}
		},
	})
	register(variant{
		typ: TypeDHUGroove,
		params: []ParamSpec{
			length("t", WorkpieceThickness),
			angle("beta_1", BevelAngle),
			angle("beta_2", BevelAngle2),
			length("R", BevelRadius),
			length("R2", BevelRadius2),
			length("c", RootFace),
			optional(length("h1", RootFace2)),
			optional(length("h2", RootFace3)),
			rootGap(),
		},
		codes: []string{"2.11"}, defaults: 1,
		build: func(v values, codes []string) Groove {
			return DHUGroove{
				T: v.req("t"), Beta1: v.req("beta_1"), Beta2: v.req("beta_2"),
				R: v.req("R"), R2: v.req("R2"), C: v.req("c"),
				H1: v.opt("h1"), H2: v.opt("h2"), B: v.req("b"), Code: codes,
			}
		},
	})
}

// heights converts and resolves the optional upper and lower heights.
func heights(c *conv, t, rf float64, h1, h2 *quantity.Quantity) (float64, float64, error) {
	var p1, p2 *float64
	if v, ok := c.optMM(h1); ok {
		p1 = &v
	}
	if v, ok := c.optMM(h2); ok {
		p2 = &v
	}
	if c.err != nil {
		return 0, 0, c.err
	}
	return splitHeights(c.typ, t, rf, p1, p2)
}

// DVGroove is a double V (X) preparation. Alpha1 opens the upper V of
// height H1, Alpha2 the lower V of height H2.
type DVGroove struct {
	T      quantity.Quantity // workpiece thickness
	Alpha1 quantity.Quantity // upper groove angle
	Alpha2 quantity.Quantity // lower groove angle
	C      quantity.Quantity // root face
	H1     *quantity.Quantity
	H2     *quantity.Quantity
	B      quantity.Quantity // root gap
	Code   []string
}

func (g DVGroove) Type() Type      { return TypeDVGroove }
func (g DVGroove) Codes() []string { return slices.Clone(g.Code) }
func (g DVGroove) Params() []Param {
	return bind(specsOf(TypeDVGroove), &g.T, &g.Alpha1, &g.Alpha2, &g.C, g.H1, g.H2, &g.B)
}

func (g DVGroove) ToProfile(opts ...ProfileOption) (*geometry.Profile, error) {
	w, err := resolveWidth(TypeDVGroove, opts)
	if err != nil {
		return nil, err
	}
	c := conv{typ: TypeDVGroove}
	t, a1, a2, rf, b := c.mm(g.T), c.rad(g.Alpha1), c.rad(g.Alpha2), c.mm(g.C), c.mm(g.B)
	if c.err != nil {
		return nil, c.err
	}
	if err := checkGrooveAngle(TypeDVGroove, "alpha_1", a1); err != nil {
		return nil, err
	}
	if err := checkGrooveAngle(TypeDVGroove, "alpha_2", a2); err != nil {
		return nil, err
	}
	h1, h2, err := heights(&c, t, rf, g.H1, g.H2)
	if err != nil {
		return nil, err
	}
	left, _, err := doubleBevelEdge(TypeDVGroove, t, rf, h2, math.Tan(a1/2)*h1, math.Tan(a2/2)*h2, w)
	if err != nil {
		return nil, err
	}
	return symmetric(left, b), nil
}

// DUGroove is a double U preparation. Beta1 and R shape the upper U, Beta2
// and R2 the lower one.
type DUGroove struct {
	T     quantity.Quantity // workpiece thickness
	Beta1 quantity.Quantity // upper bevel angle
	Beta2 quantity.Quantity // lower bevel angle
	R     quantity.Quantity // upper bevel radius
	R2    quantity.Quantity // lower bevel radius
	C     quantity.Quantity // root face
	H1    *quantity.Quantity
	H2    *quantity.Quantity
	B     quantity.Quantity // root gap
	Code  []string
}

func (g DUGroove) Type() Type      { return TypeDUGroove }
func (g DUGroove) Codes() []string { return slices.Clone(g.Code) }
func (g DUGroove) Params() []Param {
	return bind(specsOf(TypeDUGroove), &g.T, &g.Beta1, &g.Beta2, &g.R, &g.R2, &g.C, g.H1, g.H2, &g.B)
}

func (g DUGroove) ToProfile(opts ...ProfileOption) (*geometry.Profile, error) {
	left, _, b, err := doubleU(TypeDUGroove, opts, g.T, g.Beta1, g.Beta2, g.R, g.R2, g.C, g.H1, g.H2, g.B)
	if err != nil {
		return nil, err
	}
	return symmetric(left, b), nil
}

// DHVGroove is a double bevel (K) on the left plate against a square right
// plate.
type DHVGroove struct {
	T     quantity.Quantity // workpiece thickness
	Beta1 quantity.Quantity // upper bevel angle
	Beta2 quantity.Quantity // lower bevel angle
	C     quantity.Quantity // root face
	H1    *quantity.Quantity
	H2    *quantity.Quantity
	B     quantity.Quantity // root gap
	Code  []string
}

func (g DHVGroove) Type() Type      { return TypeDHVGroove }
func (g DHVGroove) Codes() []string { return slices.Clone(g.Code) }
func (g DHVGroove) Params() []Param {
	return bind(specsOf(TypeDHVGroove), &g.T, &g.Beta1, &g.Beta2, &g.C, g.H1, g.H2, &g.B)
}

func (g DHVGroove) ToProfile(opts ...ProfileOption) (*geometry.Profile, error) {
	w, err := resolveWidth(TypeDHVGroove, opts)
	if err != nil {
		return nil, err
	}
	c := conv{typ: TypeDHVGroove}
	t, b1, b2, rf, b := c.mm(g.T), c.rad(g.Beta1), c.rad(g.Beta2), c.mm(g.C), c.mm(g.B)
	if c.err != nil {
		return nil, c.err
	}
	if err := checkBevel(TypeDHVGroove, "beta_1", b1); err != nil {
		return nil, err
	}
	if err := checkBevel(TypeDHVGroove, "beta_2", b2); err != nil {
		return nil, err
	}
	h1, h2, err := heights(&c, t, rf, g.H1, g.H2)
	if err != nil {
		return nil, err
	}
	left, reach, err := doubleBevelEdge(TypeDHVGroove, t, rf, h2, math.Tan(b1)*h1, math.Tan(b2)*h2, w)
	if err != nil {
		return nil, err
	}
	return oneSided(TypeDHVGroove, left, t, reach, b)
}

// DHUGroove is a double U on the left plate against a square right plate.
type DHUGroove struct {
	T     quantity.Quantity // workpiece thickness
	Beta1 quantity.Quantity // upper bevel angle
	Beta2 quantity.Quantity // lower bevel angle
	R     quantity.Quantity // upper bevel radius
	R2    quantity.Quantity // lower bevel radius
	C     quantity.Quantity // root face
	H1    *quantity.Quantity
	H2    *quantity.Quantity
	B     quantity.Quantity // root gap
	Code  []string
}

func (g DHUGroove) Type() Type      { return TypeDHUGroove }
func (g DHUGroove) Codes() []string { return slices.Clone(g.Code) }
func (g DHUGroove) Params() []Param {
	return bind(specsOf(TypeDHUGroove), &g.T, &g.Beta1, &g.Beta2, &g.R, &g.R2, &g.C, g.H1, g.H2, &g.B)
}

func (g DHUGroove) ToProfile(opts ...ProfileOption) (*geometry.Profile, error) {
	left, reach, b, err := doubleU(TypeDHUGroove, opts, g.T, g.Beta1, g.Beta2, g.R, g.R2, g.C, g.H1, g.H2, g.B)
	if err != nil {
		return nil, err
	}
	t, _ := g.T.Millimeters()
	return oneSided(TypeDHUGroove, left, t, reach, b)
}

// doubleU builds the left plate shared by DUGroove and DHUGroove and returns
// it with its reach and the root gap in mm.
func doubleU(typ Type, opts []ProfileOption, tq, beta1q, beta2q, r1q, r2q, cq quantity.Quantity, h1q, h2q *quantity.Quantity, bq quantity.Quantity) (geometry.Shape, float64, float64, error) {
	w, err := resolveWidth(typ, opts)
	if err != nil {
		return geometry.Shape{}, 0, 0, err
	}
	c := conv{typ: typ}
	t, b1, b2, r1, r2, rf, b := c.mm(tq), c.rad(beta1q), c.rad(beta2q), c.mm(r1q), c.mm(r2q), c.mm(cq), c.mm(bq)
	if c.err != nil {
		return geometry.Shape{}, 0, 0, c.err
	}
	if err := checkBevel(typ, "beta_1", b1); err != nil {
		return geometry.Shape{}, 0, 0, err
	}
	if err := checkBevel(typ, "beta_2", b2); err != nil {
		return geometry.Shape{}, 0, 0, err
	}
	_, h2, err := heights(&c, t, rf, h1q, h2q)
	if err != nil {
		return geometry.Shape{}, 0, 0, err
	}
	left, reach, err := doubleUEdge(typ, t, rf, h2, b1, b2, r1, r2, w)
	if err != nil {
		return geometry.Shape{}, 0, 0, err
	}
	return left, reach, b, nil
}
