package groove

import (
	"fmt"

	"github.com/chazu/weldgroove/pkg/quantity"
)

// CatalogEntry is a named reference groove.
type CatalogEntry struct {
	Name   string
	Groove Groove
}

// Catalog returns one reference instance of every variant, with the double
// V in all three height configurations and the frontal face joint in every
// arrangement.
func Catalog() []CatalogEntry {
	mm := func(v float64) quantity.Quantity { return quantity.Q(v, "mm") }
	deg := func(v float64) quantity.Quantity { return quantity.Q(v, "deg") }

	return []CatalogEntry{
		{"v_groove", mustGet(TypeVGroove, Params{
			WorkpieceThickness: mm(10), GrooveAngle: deg(50), RootFace: mm(1), RootGap: mm(2),
		}, "1.3")},
		{"u_groove", mustGet(TypeUGroove, Params{
			WorkpieceThickness: mm(15), BevelAngle: deg(9), BevelRadius: mm(6), RootFace: mm(3), RootGap: mm(1),
		}, "1.8")},
		{"i_groove", mustGet(TypeIGroove, Params{
			WorkpieceThickness: mm(4), RootGap: mm(4),
		}, "1.2.1")},
		{"uv_groove", mustGet(TypeUVGroove, Params{
			WorkpieceThickness: mm(12), GrooveAngle: deg(60), BevelAngle: deg(11),
			BevelRadius: mm(6), RootFace: mm(4), RootGap: mm(2),
		}, "1.6")},
		{"vv_groove", mustGet(TypeVVGroove, Params{
			WorkpieceThickness: mm(12), GrooveAngle: deg(70), BevelAngle: deg(5),
			RootFace: mm(1), RootFace2: mm(5), RootGap: mm(1),
		}, "1.7")},
		{"hv_groove", mustGet(TypeHVGroove, Params{
			WorkpieceThickness: mm(9), BevelAngle: deg(55), RootFace: mm(2), RootGap: mm(1),
		}, "1.9.1")},
		{"hu_groove", mustGet(TypeHUGroove, Params{
			WorkpieceThickness: mm(18), BevelAngle: deg(15), BevelRadius: mm(8), RootFace: mm(2), RootGap: mm(2),
		}, "1.11")},
		{"dv_groove", mustGet(TypeDVGroove, Params{
			WorkpieceThickness: mm(19), GrooveAngle: deg(40), GrooveAngle2: deg(60), RootFace: mm(3), RootGap: mm(2),
		}, "2.4")},
		{"dv_groove2", mustGet(TypeDVGroove, Params{
			WorkpieceThickness: mm(19), GrooveAngle: deg(40), GrooveAngle2: deg(60), RootFace: mm(3),
			RootFace2: mm(7), RootGap: mm(2),
		}, "2.4")},
		{"dv_groove3", mustGet(TypeDVGroove, Params{
			WorkpieceThickness: mm(19), GrooveAngle: deg(40), GrooveAngle2: deg(60), RootFace: mm(3),
			RootFace3: mm(7), RootGap: mm(2),
		}, "2.4")},
		{"du_groove", mustGet(TypeDUGroove, Params{
			WorkpieceThickness: mm(33), BevelAngle: deg(8), BevelAngle2: deg(12),
			BevelRadius: mm(6), BevelRadius2: mm(5), RootFace: mm(3), RootGap: mm(1),
		}, "2.7")},
		{"dhv_groove", mustGet(TypeDHVGroove, Params{
			WorkpieceThickness: mm(11), BevelAngle: deg(35), BevelAngle2: deg(60), RootFace: mm(1), RootGap: mm(1),
		}, "2.9.1")},
		{"dhu_groove", mustGet(TypeDHUGroove, Params{
			WorkpieceThickness: mm(32), BevelAngle: deg(10), BevelAngle2: deg(20),
			BevelRadius: mm(8), BevelRadius2: mm(8), RootFace: mm(2), RootGap: mm(2),
		}, "2.11")},
		{"ff_groove0", mustGet(TypeFFGroove, Params{
			WorkpieceThickness: mm(5),
		}, "1.12")},
		{"ff_groove1", mustGet(TypeFFGroove, Params{
			WorkpieceThickness: mm(5), WorkpieceThickness2: mm(7), GrooveAngle: deg(80), RootGap: mm(1),
		}, "3.1.1")},
		{"ff_groove2", mustGet(TypeFFGroove, Params{
			WorkpieceThickness: mm(5), WorkpieceThickness2: mm(7), RootGap: mm(1),
		}, "3.1.2")},
		{"ff_groove3", mustGet(TypeFFGroove, Params{
			WorkpieceThickness: mm(5), WorkpieceThickness2: mm(7), RootGap: mm(1),
		}, "3.1.3")},
		{"ff_groove4", mustGet(TypeFFGroove, Params{
			WorkpieceThickness: mm(5), WorkpieceThickness2: mm(7), RootGap: mm(1),
		}, "4.1.1")},
		{"ff_groove5", mustGet(TypeFFGroove, Params{
			WorkpieceThickness: mm(5), WorkpieceThickness2: mm(7), GrooveAngle: deg(80), RootGap: mm(1),
		}, "4.1.2")},
		{"ff_groove6", mustGet(TypeFFGroove, Params{
			WorkpieceThickness: mm(5), WorkpieceThickness2: mm(7), SpecialDepth: mm(3), RootGap: mm(1),
		}, "4.1.3")},
	}
}

func mustGet(t Type, p Params, code string) Groove {
	g, err := Get(string(t), p, code)
	if err != nil {
		panic(fmt.Sprintf("groove: catalog entry %s: %v", t, err))
	}
	return g
}
