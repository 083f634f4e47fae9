package groove

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/samber/lo"

	"github.com/chazu/weldgroove/pkg/geometry"
	"github.com/chazu/weldgroove/pkg/quantity"
)

// Type is the registry name of a groove variant.
type Type string

const (
	TypeVGroove   Type = "VGroove"
	TypeVVGroove  Type = "VVGroove"
	TypeUVGroove  Type = "UVGroove"
	TypeUGroove   Type = "UGroove"
	TypeIGroove   Type = "IGroove"
	TypeHVGroove  Type = "HVGroove"
	TypeHUGroove  Type = "HUGroove"
	TypeDVGroove  Type = "DoubleVGroove"
	TypeDUGroove  Type = "DoubleUGroove"
	TypeDHVGroove Type = "DoubleHVGroove"
	TypeDHUGroove Type = "DoubleHUGroove"
	TypeFFGroove  Type = "FrontalFaceGroove"

	// TypeBase names the unspecialized groove. It is not registered.
	TypeBase Type = "BaseGroove"
)

// Groove is one ISO 9692-1 groove instance.
type Groove interface {
	// Type returns the registry name.
	Type() Type
	// Params returns every declared parameter in declaration order,
	// including absent optional ones with a nil Value.
	Params() []Param
	// Codes returns the ISO 9692-1 code numbers. FFGroove returns its
	// single selected code.
	Codes() []string
	// ToProfile builds the cross section in millimetres.
	ToProfile(opts ...ProfileOption) (*geometry.Profile, error)
}

// Base is the unspecialized groove. It carries no parameters and cannot
// build a profile.
type Base struct{}

func (Base) Type() Type      { return TypeBase }
func (Base) Params() []Param { return nil }
func (Base) Codes() []string { return nil }

func (Base) ToProfile(...ProfileOption) (*geometry.Profile, error) {
	return nil, fmt.Errorf("%w: %s has no profile", ErrUnsupportedOperation, TypeBase)
}

// ---------------------------------------------------------------------------
// Registry
// ---------------------------------------------------------------------------

// variant describes one registered groove type.
type variant struct {
	typ    Type
	params []ParamSpec
	// codes lists the valid code numbers; the first entries up to
	// defaults form the default code list.
	codes    []string
	defaults int
	// singleCode marks FFGroove: one code, checked at profile time.
	singleCode bool
	build      func(v values, codes []string) Groove
}

func (v variant) spec(name string) (ParamSpec, bool) {
	return lo.Find(v.params, func(s ParamSpec) bool { return s.Name == name })
}

func (v variant) specByKey(k Key) (ParamSpec, bool) {
	return lo.Find(v.params, func(s ParamSpec) bool { return s.Key == k })
}

var registry = map[Type]variant{}

func register(v variant) {
	if _, dup := registry[v.typ]; dup {
		panic("groove: duplicate registration of " + string(v.typ))
	}
	registry[v.typ] = v
}

// Names returns the registered groove type names in sorted order.
func Names() []string {
	names := lo.Map(lo.Keys(registry), func(t Type, _ int) string { return string(t) })
	sort.Strings(names)
	return names
}

// Specs returns the declared parameters of a registered groove type.
func Specs(grooveType string) ([]ParamSpec, error) {
	v, ok := registry[Type(grooveType)]
	if !ok {
		return nil, unknownType(grooveType)
	}
	return slices.Clone(v.params), nil
}

// ValidCodes returns the code numbers a registered groove type accepts.
func ValidCodes(grooveType string) ([]string, error) {
	v, ok := registry[Type(grooveType)]
	if !ok {
		return nil, unknownType(grooveType)
	}
	return slices.Clone(v.codes), nil
}

func unknownType(name string) error {
	return fmt.Errorf("%w: unknown groove type %q (known: %v)", ErrInvalidArgument, name, Names())
}

// Get constructs a groove by registry name from construction keywords. An
// empty code selects the variant's default code numbers.
func Get(grooveType string, params Params, code string) (Groove, error) {
	v, ok := registry[Type(grooveType)]
	if !ok {
		return nil, unknownType(grooveType)
	}
	vals := make(values, len(params))
	for k, q := range params {
		s, ok := v.specByKey(k)
		if !ok {
			return nil, invalidf(v.typ, "parameter %q not supported", k)
		}
		vals[s.Name] = q
	}
	var codes []string
	if code != "" {
		codes = []string{code}
	}
	return construct(v, vals, codes)
}

// construct validates values and codes and builds the instance.
func construct(v variant, vals values, codes []string) (Groove, error) {
	for _, s := range v.params {
		q, ok := vals[s.Name]
		if !ok {
			if s.Required && s.Default == nil {
				return nil, invalidf(v.typ, "missing parameter %s (%s)", s.Name, s.Key)
			}
			if s.Default != nil {
				vals[s.Name] = *s.Default
			}
			continue
		}
		if err := checkValue(v.typ, s, q); err != nil {
			return nil, err
		}
	}
	codes, err := resolveCodes(v, codes)
	if err != nil {
		return nil, err
	}
	return v.build(vals, codes), nil
}

func resolveCodes(v variant, codes []string) ([]string, error) {
	if len(codes) == 0 {
		return slices.Clone(v.codes[:v.defaults]), nil
	}
	if v.singleCode {
		if len(codes) != 1 {
			return nil, invalidf(v.typ, "%s takes a single code, got %v", CodeNumberField, codes)
		}
		return slices.Clone(codes), nil
	}
	for _, c := range codes {
		if !slices.Contains(v.codes, c) {
			return nil, invalidf(v.typ, "%s %q not valid (valid: %v)", CodeNumberField, c, v.codes)
		}
	}
	return slices.Clone(codes), nil
}

// Validate checks a groove's parameter values and code numbers against its
// registered declaration. Grooves returned by Get and Decode always
// validate; hand-built literals may not.
func Validate(g Groove) error {
	v, ok := registry[g.Type()]
	if !ok {
		return unknownType(string(g.Type()))
	}
	for _, p := range g.Params() {
		if p.Value == nil {
			if p.Required {
				return invalidf(v.typ, "missing parameter %s (%s)", p.Name, p.Key)
			}
			continue
		}
		if err := checkValue(v.typ, p.ParamSpec, *p.Value); err != nil {
			return err
		}
	}
	codes := g.Codes()
	if len(codes) == 0 {
		return invalidf(v.typ, "no %s", CodeNumberField)
	}
	_, err := resolveCodes(v, codes)
	return err
}

// ParamStrings returns "symbol=value unit" for every present parameter in
// declaration order.
func ParamStrings(g Groove) []string {
	return lo.FilterMap(g.Params(), func(p Param, _ int) (string, bool) {
		if p.Value == nil {
			return "", false
		}
		return fmt.Sprintf("%s=%s", p.Name, p.Value), true
	})
}

// Equal reports whether a and b are the same variant with structurally
// equal parameters (magnitude and unit) and code numbers.
func Equal(a, b Groove) bool {
	if a.Type() != b.Type() {
		return false
	}
	pa, pb := a.Params(), b.Params()
	if len(pa) != len(pb) {
		return false
	}
	for i := range pa {
		if (pa[i].Value == nil) != (pb[i].Value == nil) {
			return false
		}
		if pa[i].Value != nil && *pa[i].Value != *pb[i].Value {
			return false
		}
	}
	return slices.Equal(a.Codes(), b.Codes())
}

// ---------------------------------------------------------------------------
// Profile options
// ---------------------------------------------------------------------------

// DefaultWidth is the default plate extension beyond the prepared edge.
var DefaultWidth = quantity.Q(2, "mm")

// ProfileOption configures ToProfile.
type ProfileOption func(*profileOptions)

type profileOptions struct {
	width quantity.Quantity
}

// WithWidth sets how far each plate extends beyond the prepared edge.
func WithWidth(w quantity.Quantity) ProfileOption {
	return func(o *profileOptions) { o.width = w }
}

func resolveWidth(t Type, opts []ProfileOption) (float64, error) {
	o := profileOptions{width: DefaultWidth}
	for _, opt := range opts {
		opt(&o)
	}
	w, err := o.width.Millimeters()
	if err != nil {
		return 0, invalidf(t, "width: %v", err)
	}
	if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
		return 0, invalidf(t, "width %s must be finite and non-negative", o.width)
	}
	return w, nil
}
