// Package tessellate walks a weld design and produces rasterized groove
// outlines, one per groove in design order, and seam meshes swept from
// them with a geometry kernel.
package tessellate

import (
	"fmt"

	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/weldgroove/pkg/design"
	"github.com/chazu/weldgroove/pkg/groove"
	"github.com/chazu/weldgroove/pkg/kernel"
)

// DefaultResolution is the arc rasterization step in mm.
const DefaultResolution = 0.25

// Outline is the rasterized cross-section of one named groove. Each
// polyline is the closed boundary of one workpiece shape.
type Outline struct {
	Name      string
	Type      groove.Type
	Polylines [][]v2.Vec
}

// Options control outline generation.
type Options struct {
	Resolution float64                // arc step in mm; <= 0 selects DefaultResolution
	Profile    []groove.ProfileOption // passed to each groove's ToProfile
}

// Tessellate builds the profile of every groove in d and rasterizes it.
// The tessellator is read-only and never mutates the design. A groove
// whose profile cannot be built aborts the walk.
func Tessellate(d *design.Design, opts Options) ([]Outline, error) {
	if d == nil {
		return nil, nil
	}
	res := opts.Resolution
	if res <= 0 {
		res = DefaultResolution
	}

	var outlines []Outline
	for _, e := range d.Entries {
		o, ok, err := handleEntry(e, res, opts.Profile)
		if err != nil {
			return nil, fmt.Errorf("tessellate: entry %q: %w", e.Name, err)
		}
		if ok {
			outlines = append(outlines, o)
		}
	}
	return outlines, nil
}

// handleEntry rasterizes groove entries; other kinds carry no outline.
func handleEntry(e *design.Entry, res float64, popts []groove.ProfileOption) (Outline, bool, error) {
	switch data := e.Data.(type) {
	case design.GrooveData:
		o, err := Groove(e.Name, data.Groove, res, popts...)
		return o, err == nil, err
	case design.Workpiece:
		return Outline{}, false, nil
	default:
		return Outline{}, false, fmt.Errorf("unsupported entry data %T", e.Data)
	}
}

// Groove rasterizes a single groove.
func Groove(name string, g groove.Groove, res float64, popts ...groove.ProfileOption) (Outline, error) {
	if res <= 0 {
		res = DefaultResolution
	}
	p, err := g.ToProfile(popts...)
	if err != nil {
		return Outline{}, err
	}
	return Outline{Name: name, Type: g.Type(), Polylines: p.Rasterize(res)}, nil
}

// Extrude sweeps an outline along a seam of the given length in mm and
// joins its plates into one solid.
func Extrude(o Outline, k kernel.Kernel, length float64) (kernel.Solid, error) {
	var solid kernel.Solid
	for i, pl := range o.Polylines {
		s, err := k.Extrude(pl, length)
		if err != nil {
			return nil, fmt.Errorf("tessellate: %s shape %d: %w", o.Name, i, err)
		}
		if solid == nil {
			solid = s
		} else {
			solid = k.Union(solid, s)
		}
	}
	if solid == nil {
		return nil, fmt.Errorf("tessellate: %s has no shapes", o.Name)
	}
	return solid, nil
}

// Seams meshes every groove in d as a seam of the given length. Meshes are
// named after their design entries.
func Seams(d *design.Design, k kernel.Kernel, length float64, opts Options) ([]*kernel.Mesh, error) {
	outlines, err := Tessellate(d, opts)
	if err != nil {
		return nil, err
	}
	meshes := make([]*kernel.Mesh, 0, len(outlines))
	for _, o := range outlines {
		s, err := Extrude(o, k, length)
		if err != nil {
			return nil, err
		}
		m, err := k.ToMesh(s)
		if err != nil {
			return nil, fmt.Errorf("tessellate: ToMesh failed for %s: %w", o.Name, err)
		}
		m.Name = o.Name
		meshes = append(meshes, m)
	}
	return meshes, nil
}
