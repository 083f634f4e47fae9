package engine

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/weldgroove/pkg/design"
	"github.com/chazu/weldgroove/pkg/groove"
	"github.com/chazu/weldgroove/pkg/quantity"
)

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpQuantity wraps a quantity.Quantity returned by qty, mm, deg and rad.
type sexpQuantity struct {
	q quantity.Quantity
}

func (s *sexpQuantity) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(qty %v %q)", s.q.Value, s.q.Unit)
}
func (s *sexpQuantity) Type() *zygo.RegisteredType { return nil }

// sexpGroove wraps a groove instance returned by groove and defgroove.
type sexpGroove struct {
	g    groove.Groove
	name string // set once the groove is added to the design
}

func (s *sexpGroove) SexpString(ps *zygo.PrintState) string {
	if s.name != "" {
		return fmt.Sprintf("(groove %q %q)", s.g.Type(), s.name)
	}
	return fmt.Sprintf("(groove %q %s)", s.g.Type(), strings.Join(groove.ParamStrings(s.g), " "))
}
func (s *sexpGroove) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	order      []string // keywords in call order
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if !ok {
			result.positional = append(result.positional, args[i])
			i++
			continue
		}
		if _, seen := result.kw[name]; !seen {
			result.order = append(result.order, name)
		}
		if i+1 < len(args) {
			result.kw[name] = args[i+1]
			i += 2
		} else {
			// Keyword at end with no value: treat as flag with nil.
			result.kw[name] = zygo.SexpNull
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a plain (non-keyword) string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return "", fmt.Errorf("expected string, got keyword :%s", str.S[len(kwPrefix):])
	}
	return str.S, nil
}

// toQuantity accepts a quantity value or a string such as "9 mm".
func toQuantity(s zygo.Sexp) (quantity.Quantity, error) {
	switch v := s.(type) {
	case *sexpQuantity:
		return v.q, nil
	case *zygo.SexpStr:
		str, err := toString(v)
		if err != nil {
			return quantity.Quantity{}, err
		}
		return quantity.Parse(str)
	case *zygo.SexpInt, *zygo.SexpFloat:
		return quantity.Quantity{}, fmt.Errorf("bare number %s has no unit; use (mm x), (deg x) or (qty x \"unit\")", s.SexpString(nil))
	}
	return quantity.Quantity{}, fmt.Errorf("expected quantity, got %T (%s)", s, s.SexpString(nil))
}

// toGroove extracts a groove from a sexpGroove.
func toGroove(s zygo.Sexp) (*sexpGroove, error) {
	if g, ok := s.(*sexpGroove); ok {
		return g, nil
	}
	return nil, fmt.Errorf("expected groove, got %T (%s)", s, s.SexpString(nil))
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the groove DSL builtins into a zygomys
// environment. The builtins populate d during evaluation.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, d *design.Design) {

	// -----------------------------------------------------------------------
	// (qty 9 "mm")
	// -----------------------------------------------------------------------
	env.AddFunction("qty", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("qty requires a value and a unit, got %d arguments", len(args))
		}
		v, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("qty: value: %w", err)
		}
		unit, err := toString(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("qty: unit: %w", err)
		}
		q, err := quantity.New(v, unit)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("qty: %w", err)
		}
		return &sexpQuantity{q: q}, nil
	})

	// -----------------------------------------------------------------------
	// (mm 9) (deg 50) (rad 0.5)
	// -----------------------------------------------------------------------
	for _, unit := range []string{"mm", "deg", "rad"} {
		unit := unit
		env.AddFunction(unit, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) != 1 {
				return zygo.SexpNull, fmt.Errorf("%s requires exactly 1 argument, got %d", unit, len(args))
			}
			v, err := toFloat64(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", unit, err)
			}
			return &sexpQuantity{q: quantity.Q(v, unit)}, nil
		})
	}

	// -----------------------------------------------------------------------
	// (groove "VGroove" :workpiece-thickness (mm 9) :groove-angle (deg 50)
	//         :root-face (mm 4) :root-gap "2 mm" :code-number "1.3")
	// -----------------------------------------------------------------------
	env.AddFunction("groove", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("groove requires exactly one groove type name")
		}
		typ, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("groove: type: %w", err)
		}
		specs, err := groove.Specs(typ)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("groove: %w", err)
		}

		params := groove.Params{}
		var code string
		for _, kw := range pa.order {
			v := pa.kw[kw]
			if strings.ReplaceAll(kw, "-", "_") == groove.CodeNumberField {
				c, err := toString(v)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("groove: %s: %w", kw, err)
				}
				code = c
				continue
			}
			key, ok := groove.KeyOf(specs, kw)
			if !ok {
				return zygo.SexpNull, fmt.Errorf("groove: %s does not take :%s", typ, kw)
			}
			q, err := toQuantity(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("groove: %s: %w", kw, err)
			}
			params[key] = q
		}

		g, err := groove.Get(typ, params, code)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("groove: %w", err)
		}
		return &sexpGroove{g: g}, nil
	})

	// -----------------------------------------------------------------------
	// (defgroove "root-pass" (groove ...))
	// -----------------------------------------------------------------------
	env.AddFunction("defgroove", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("defgroove requires a name and a groove expression")
		}
		grooveName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defgroove: name: %w", err)
		}
		sg, err := toGroove(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defgroove: %w", err)
		}
		d.AddGroove(grooveName, sg.g)
		return &sexpGroove{g: sg.g, name: grooveName}, nil
	})

	// -----------------------------------------------------------------------
	// (workpiece "plate" :geometry "two 10 mm plates")
	// -----------------------------------------------------------------------
	env.AddFunction("workpiece", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("workpiece requires a name argument")
		}
		wpName, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("workpiece: name: %w", err)
		}
		var w design.Workpiece
		for _, kw := range pa.order {
			if kw != "geometry" {
				return zygo.SexpNull, fmt.Errorf("workpiece: unknown keyword :%s", kw)
			}
			geom, err := toString(pa.kw[kw])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("workpiece: geometry: %w", err)
			}
			w.Geometry = geom
		}
		d.AddWorkpiece(wpName, w)
		return &zygo.SexpStr{S: wpName}, nil
	})

	// -----------------------------------------------------------------------
	// (groove-names)
	// -----------------------------------------------------------------------
	env.AddFunction("groove_names", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 0 {
			return zygo.SexpNull, fmt.Errorf("groove-names takes no arguments")
		}
		names := groove.Names()
		items := make([]zygo.Sexp, len(names))
		for i, n := range names {
			items[i] = &zygo.SexpStr{S: n}
		}
		return zygo.MakeList(items), nil
	})
}
