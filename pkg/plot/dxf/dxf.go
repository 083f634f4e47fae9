// Package dxf implements plot.Surface with the DXF writer from
// github.com/deadsy/sdfx/render.
package dxf

import (
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/weldgroove/pkg/plot"
)

// Compile-time interface check.
var _ plot.Surface = (*Surface)(nil)

// Surface writes each polyline segment as a DXF LINE entity. Coordinates
// stay in mm. Axis labels are not supported and are ignored.
type Surface struct {
	path     string
	d        *render.DXF
	segments int
}

// New returns a surface that saves to path.
func New(path string) *Surface {
	return &Surface{path: path, d: render.NewDXF(path)}
}

// Polyline adds one LINE per consecutive point pair.
func (s *Surface) Polyline(pts []v2.Vec) {
	for i := 1; i < len(pts); i++ {
		s.d.Line(&sdf.Line2{pts[i-1], pts[i]})
		s.segments++
	}
}

// AxisLabels is a no-op.
func (s *Surface) AxisLabels(x, y string) {}

// Segments returns the number of LINE entities written so far.
func (s *Surface) Segments() int { return s.segments }

// Save writes the DXF file.
func (s *Surface) Save() error {
	if err := s.d.Save(); err != nil {
		return fmt.Errorf("dxf: save %s: %w", s.path, err)
	}
	return nil
}
