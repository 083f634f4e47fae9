package groove

import (
	"fmt"
	"math"
	"strings"

	"github.com/samber/lo"

	"github.com/chazu/weldgroove/pkg/quantity"
)

// Key is a construction keyword accepted by Get.
type Key string

const (
	WorkpieceThickness  Key = "workpiece_thickness"
	WorkpieceThickness2 Key = "workpiece_thickness2"
	RootGap             Key = "root_gap"
	RootFace            Key = "root_face"
	RootFace2           Key = "root_face2"
	RootFace3           Key = "root_face3"
	BevelRadius         Key = "bevel_radius"
	BevelRadius2        Key = "bevel_radius2"
	BevelAngle          Key = "bevel_angle"
	BevelAngle2         Key = "bevel_angle2"
	GrooveAngle         Key = "groove_angle"
	GrooveAngle2        Key = "groove_angle2"
	SpecialDepth        Key = "special_depth"
)

// CodeNumberField is the tree field and DSL keyword carrying code numbers.
const CodeNumberField = "code_number"

// Params are construction parameters keyed by keyword.
type Params map[Key]quantity.Quantity

// ParamSpec declares one parameter of a groove variant.
type ParamSpec struct {
	Name     string             // tree field and parameter-string symbol
	Key      Key                // construction keyword
	Dim      quantity.Dimension // required dimension
	Required bool
	// Default is used when a required parameter is omitted. Nil means the
	// parameter must be given.
	Default *quantity.Quantity
}

// Param is a declared parameter bound to an instance. Value is nil for
// absent optional parameters.
type Param struct {
	ParamSpec
	Value *quantity.Quantity
}

// KeyOf resolves a user supplied parameter name against specs. The name
// may be the construction keyword in snake or kebab case (root_face,
// root-face) or the parameter symbol (c).
func KeyOf(specs []ParamSpec, name string) (Key, bool) {
	snake := strings.ReplaceAll(name, "-", "_")
	s, ok := lo.Find(specs, func(s ParamSpec) bool {
		return string(s.Key) == snake || s.Name == name
	})
	return s.Key, ok
}

func length(name string, key Key) ParamSpec {
	return ParamSpec{Name: name, Key: key, Dim: quantity.Length, Required: true}
}

func angle(name string, key Key) ParamSpec {
	return ParamSpec{Name: name, Key: key, Dim: quantity.Angle, Required: true}
}

func optional(p ParamSpec) ParamSpec {
	p.Required = false
	return p
}

func withDefault(p ParamSpec, q quantity.Quantity) ParamSpec {
	p.Default = &q
	return p
}

// rootGap is optional on every list-coded variant and defaults to 0 mm.
func rootGap() ParamSpec {
	return withDefault(length("b", RootGap), quantity.Q(0, "mm"))
}

// values holds resolved parameter values by field name.
type values map[string]quantity.Quantity

func (v values) req(name string) quantity.Quantity {
	return v[name]
}

func (v values) opt(name string) *quantity.Quantity {
	q, ok := v[name]
	if !ok {
		return nil
	}
	return &q
}

// bind pairs a variant's specs with instance fields in declaration order.
// Fields are given as pointers; nil marks an absent optional value.
func bind(specs []ParamSpec, fields ...*quantity.Quantity) []Param {
	if len(specs) != len(fields) {
		panic(fmt.Sprintf("groove: %d specs bound to %d fields", len(specs), len(fields)))
	}
	out := make([]Param, len(specs))
	for i, s := range specs {
		out[i] = Param{ParamSpec: s}
		if fields[i] != nil {
			q := *fields[i]
			out[i].Value = &q
		}
	}
	return out
}

// checkValue validates one parameter value against its spec.
func checkValue(t Type, s ParamSpec, q quantity.Quantity) error {
	dim, err := q.Dimension()
	if err != nil {
		return invalidf(t, "parameter %s: %v", s.Name, err)
	}
	if dim != s.Dim {
		return invalidf(t, "parameter %s: %s has dimension %s, want %s", s.Name, q, dim, s.Dim)
	}
	if math.IsNaN(q.Value) || math.IsInf(q.Value, 0) {
		return invalidf(t, "parameter %s: %s is not a finite value", s.Name, q)
	}
	if q.Value < 0 {
		return invalidf(t, "parameter %s: %s is negative", s.Name, q)
	}
	return nil
}
