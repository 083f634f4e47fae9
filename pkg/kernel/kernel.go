// Package kernel defines the solid geometry interface used to sweep groove
// cross-sections along a seam. The sdfx package provides the
// implementation; callers depend only on this interface.
package kernel

import v2 "github.com/deadsy/sdfx/vec/v2"

// Solid is an opaque handle to a kernel solid.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel builds seam solids from 2D outlines. Outline coordinates are in
// the groove's cross-section plane (x across the joint, y through the
// thickness); the seam runs along +z.
type Kernel interface {
	// Extrude sweeps a closed outline from z = 0 to z = length.
	Extrude(outline []v2.Vec, length float64) (Solid, error)
	Union(a, b Solid) Solid

	// Output
	ToMesh(s Solid) (*Mesh, error)
	SaveSTL(s Solid, path string) error
	SaveMeshSTL(m *Mesh, path string) error
}
