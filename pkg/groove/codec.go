package groove

import (
	"fmt"

	"github.com/chazu/weldgroove/pkg/quantity"
)

// Tree is the field-name keyed form of a groove used by the tagged tree
// serializer. Parameter fields hold quantity.Quantity values; the
// code_number field holds []string, or a string for FFGroove.
type Tree map[string]any

// Encode maps a groove to its tree. Absent optional parameters are omitted.
func Encode(g Groove) Tree {
	tree := Tree{}
	for _, p := range g.Params() {
		if p.Value != nil {
			tree[p.Name] = *p.Value
		}
	}
	if ff, ok := g.(FFGroove); ok {
		tree[CodeNumberField] = ff.Code
	} else if codes := g.Codes(); codes != nil {
		tree[CodeNumberField] = codes
	}
	return tree
}

// Decode rebuilds a groove of the given registry name from its tree. It
// validates like Get.
func Decode(grooveType string, tree Tree) (Groove, error) {
	v, ok := registry[Type(grooveType)]
	if !ok {
		return nil, unknownType(grooveType)
	}
	vals := make(values, len(tree))
	var codes []string
	for name, raw := range tree {
		if name == CodeNumberField {
			c, err := decodeCodes(v.typ, raw)
			if err != nil {
				return nil, err
			}
			codes = c
			continue
		}
		if _, ok := v.spec(name); !ok {
			return nil, invalidf(v.typ, "unknown field %q", name)
		}
		q, err := decodeQuantity(raw)
		if err != nil {
			return nil, invalidf(v.typ, "field %s: %v", name, err)
		}
		vals[name] = q
	}
	return construct(v, vals, codes)
}

func decodeQuantity(raw any) (quantity.Quantity, error) {
	switch q := raw.(type) {
	case quantity.Quantity:
		return q, nil
	case *quantity.Quantity:
		if q == nil {
			return quantity.Quantity{}, fmt.Errorf("nil quantity")
		}
		return *q, nil
	case string:
		return quantity.Parse(q)
	default:
		return quantity.Quantity{}, fmt.Errorf("%T is not a quantity", raw)
	}
}

func decodeCodes(t Type, raw any) ([]string, error) {
	switch c := raw.(type) {
	case string:
		return []string{c}, nil
	case []string:
		return c, nil
	case []any:
		out := make([]string, len(c))
		for i, e := range c {
			s, ok := e.(string)
			if !ok {
				return nil, invalidf(t, "%s entry %v is %T, want string", CodeNumberField, e, e)
			}
			out[i] = s
		}
		return out, nil
	default:
		return nil, invalidf(t, "%s is %T, want string or list of strings", CodeNumberField, raw)
	}
}
