package tagtree

import (
	"fmt"

	"github.com/chazu/weldgroove/pkg/groove"
	"github.com/chazu/weldgroove/pkg/quantity"
)

const (
	GrooveTag    = "tag:weldx.bam.de:weldx/core/iso_groove-1.0.0"
	WorkpieceTag = "tag:weldx.bam.de:weldx/aws/design/workpiece-1.0.0"
	QuantityTag  = "tag:stsci.edu:asdf/unit/quantity-1.1.0"
)

// QuantityConverter maps quantity.Quantity to {value, unit}.
type QuantityConverter struct{}

func (QuantityConverter) Tag() string { return QuantityTag }

func (QuantityConverter) Match(v any) bool {
	_, ok := v.(quantity.Quantity)
	return ok
}

func (QuantityConverter) ToTree(v any) (map[string]any, error) {
	q := v.(quantity.Quantity)
	return map[string]any{"value": q.Value, "unit": q.Unit}, nil
}

func (QuantityConverter) FromTree(tree map[string]any) (any, error) {
	value, err := Float(tree["value"])
	if err != nil {
		return nil, fmt.Errorf("value: %w", err)
	}
	unit, ok := tree["unit"].(string)
	if !ok {
		return nil, fmt.Errorf("unit is %T, want string", tree["unit"])
	}
	return quantity.New(value, unit)
}

// Float converts a decoded YAML number to float64. Integral values decode
// as int.
func Float(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("%w: %T is not a number", ErrUnsupportedValue, v)
	}
}

// GrooveConverter maps every registered groove variant to
// {type, components}.
type GrooveConverter struct{}

func (GrooveConverter) Tag() string { return GrooveTag }

func (GrooveConverter) Match(v any) bool {
	_, ok := v.(groove.Groove)
	return ok
}

func (GrooveConverter) ToTree(v any) (map[string]any, error) {
	g := v.(groove.Groove)
	if g.Type() == groove.TypeBase {
		return nil, fmt.Errorf("%w: %s", groove.ErrUnsupportedOperation, g.Type())
	}
	return map[string]any{
		"type":       string(g.Type()),
		"components": map[string]any(groove.Encode(g)),
	}, nil
}

func (GrooveConverter) FromTree(tree map[string]any) (any, error) {
	typ, ok := tree["type"].(string)
	if !ok {
		return nil, fmt.Errorf("type is %T, want string", tree["type"])
	}
	components, ok := tree["components"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("components is %T, want mapping", tree["components"])
	}
	return groove.Decode(typ, groove.Tree(components))
}
