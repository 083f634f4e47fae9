package groove

import (
	"math"

	"github.com/chazu/weldgroove/pkg/geometry"
	"github.com/chazu/weldgroove/pkg/quantity"
)

func init() {
	register(variant{
		typ: TypeFFGroove,
		params: []ParamSpec{
			length("t_1", WorkpieceThickness),
			optional(length("t_2", WorkpieceThickness2)),
			optional(angle("alpha", GrooveAngle)),
			optional(length("b", RootGap)),
			optional(length("e", SpecialDepth)),
		},
		codes: []string{
			"1.12", "1.13", "2.12",
			"3.1.1", "3.1.2", "3.1.3",
			"4.1.1", "4.1.2", "4.1.3",
		},
		defaults:   1,
		singleCode: true,
		build: func(v values, codes []string) Groove {
			return FFGroove{
				T1: v.req("t_1"), T2: v.opt("t_2"), Alpha: v.opt("alpha"),
				B: v.opt("b"), E: v.opt("e"), Code: codes[0],
			}
		},
	})
}

// FFGroove is a frontal face joint: plates meeting at their faces rather
// than at prepared edges. Code selects the arrangement and is checked when
// the profile is built.
type FFGroove struct {
	T1    quantity.Quantity  // thickness of the first plate
	T2    *quantity.Quantity // thickness of the second plate
	Alpha *quantity.Quantity // angle between the plates
	B     *quantity.Quantity // root gap
	E     *quantity.Quantity // overlap
	Code  string
}

func (g FFGroove) Type() Type      { return TypeFFGroove }
func (g FFGroove) Codes() []string { return []string{g.Code} }
func (g FFGroove) Params() []Param {
	return bind(specsOf(TypeFFGroove), &g.T1, g.T2, g.Alpha, g.B, g.E)
}

func (g FFGroove) ToProfile(opts ...ProfileOption) (*geometry.Profile, error) {
	w, err := resolveWidth(TypeFFGroove, opts)
	if err != nil {
		return nil, err
	}
	c := conv{typ: TypeFFGroove}
	t1 := c.mm(g.T1)
	t2, hasT2 := c.optMM(g.T2)
	b, _ := c.optMM(g.B)
	e, hasE := c.optMM(g.E)
	var alpha float64
	hasAlpha := g.Alpha != nil
	if hasAlpha {
		alpha = c.rad(*g.Alpha)
	}
	if c.err != nil {
		return nil, c.err
	}

	need := func(ok bool, name string) error {
		if !ok {
			return invalidf(TypeFFGroove, "%s %s requires %s", CodeNumberField, g.Code, name)
		}
		return nil
	}
	needAngle := func() error {
		if err := need(hasAlpha, "alpha"); err != nil {
			return err
		}
		if alpha <= 0 || alpha >= math.Pi-geometry.Tolerance {
			return invalidf(TypeFFGroove, "alpha %s must lie strictly between 0 and 180 deg", g.Alpha)
		}
		return nil
	}

	switch g.Code {
	case "1.12", "1.13", "2.12":
		if !hasT2 {
			t2 = t1
		}
		l := math.Max(t1, t2) + w
		return rects(
			[2][2]float64{{0, 0}, {l, t1}},
			[2][2]float64{{0, t1}, {l, t1 + t2}},
		)
	case "3.1.1":
		if err := need(hasT2, "t_2"); err != nil {
			return nil, err
		}
		if err := needAngle(); err != nil {
			return nil, err
		}
		l := math.Max(t1, t2) + w
		base, err := geometry.Rect(pt(-l, -t1), pt(l, 0))
		if err != nil {
			return nil, err
		}
		standing, err := leaningPlate(0, b, t2, l, alpha)
		if err != nil {
			return nil, err
		}
		return geometry.NewProfile(base, standing), nil
	case "3.1.2":
		if err := need(hasT2, "t_2"); err != nil {
			return nil, err
		}
		l := math.Max(t1, t2) + w
		return rects(
			[2][2]float64{{0, -t1}, {l, 0}},
			[2][2]float64{{l - t2, b}, {l, b + l}},
		)
	case "3.1.3", "4.1.1":
		if err := need(hasT2, "t_2"); err != nil {
			return nil, err
		}
		l := math.Max(t1, t2) + w
		return rects(
			[2][2]float64{{0, 0}, {l, t1}},
			[2][2]float64{{l / 2, t1 + b}, {l/2 + l, t1 + b + t2}},
		)
	case "4.1.2":
		if err := need(hasT2, "t_2"); err != nil {
			return nil, err
		}
		if err := needAngle(); err != nil {
			return nil, err
		}
		l := math.Max(t1, t2) + w
		base, err := geometry.Rect(pt(0, -t1), pt(l, 0))
		if err != nil {
			return nil, err
		}
		corner, err := leaningPlate(l-t2, b, t2, l, alpha)
		if err != nil {
			return nil, err
		}
		return geometry.NewProfile(base, corner), nil
	case "4.1.3":
		if err := need(hasT2, "t_2"); err != nil {
			return nil, err
		}
		if err := need(hasE, "e"); err != nil {
			return nil, err
		}
		l := math.Max(math.Max(t1, t2), e) + w
		return rects(
			[2][2]float64{{0, 0}, {l, t1}},
			[2][2]float64{{l - e, t1 + b}, {2*l - e, t1 + b + t2}},
		)
	default:
		return nil, invalidf(TypeFFGroove, "%s %q not valid (valid: %v)", CodeNumberField, g.Code, registry[TypeFFGroove].codes)
	}
}

// rects builds one closed rectangle per corner pair.
func rects(corners ...[2][2]float64) (*geometry.Profile, error) {
	p := geometry.NewProfile()
	for _, c := range corners {
		s, err := geometry.Rect(pt(c[0][0], c[0][1]), pt(c[1][0], c[1][1]))
		if err != nil {
			return nil, invalidf(TypeFFGroove, "%v", err)
		}
		p.Shapes = append(p.Shapes, s)
	}
	return p, nil
}

// leaningPlate is a plate of thickness t and length l standing at angle
// alpha on the face y = 0 with its lower corner at x0, lifted by gap and
// by as much as needed to keep its foot above the face.
func leaningPlate(x0, gap, t, l, alpha float64) (geometry.Shape, error) {
	dir := pt(math.Cos(alpha), math.Sin(alpha))
	normal := pt(math.Sin(alpha), -math.Cos(alpha))
	p0 := pt(x0, gap+math.Max(0, t*math.Cos(alpha)))
	p1 := p0.Add(normal.MulScalar(t))
	s, err := geometry.Quad(p0, p1, p1.Add(dir.MulScalar(l)), p0.Add(dir.MulScalar(l)))
	if err != nil {
		return geometry.Shape{}, invalidf(TypeFFGroove, "%v", err)
	}
	return s, nil
}
