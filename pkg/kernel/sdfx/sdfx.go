// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library.
package sdfx

import (
	"errors"
	"fmt"
	"os"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/weldgroove/pkg/geometry"
	"github.com/chazu/weldgroove/pkg/kernel"
)

// Compile-time interface check.
var _ kernel.Kernel = (*SdfxKernel)(nil)

// DefaultMeshCells controls marching cubes tessellation resolution along
// the longest bounding box axis.
const DefaultMeshCells = 200

// sdfxSolid wraps an sdf.SDF3 to implement kernel.Solid.
type sdfxSolid struct {
	s sdf.SDF3
}

// BoundingBox returns the axis-aligned bounding box.
func (s *sdfxSolid) BoundingBox() (min, max [3]float64) {
	bb := s.s.BoundingBox()
	min = [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}
	max = [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
	return min, max
}

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct {
	cells int
}

// New returns a kernel meshing with the given number of marching cubes
// cells. A non-positive count selects DefaultMeshCells.
func New(cells int) *SdfxKernel {
	if cells <= 0 {
		cells = DefaultMeshCells
	}
	return &SdfxKernel{cells: cells}
}

func unwrap(s kernel.Solid) sdf.SDF3 {
	return s.(*sdfxSolid).s
}

func wrap(s sdf.SDF3) kernel.Solid {
	return &sdfxSolid{s: s}
}

// Extrude sweeps a closed outline along z. sdf.Extrude3D centers the solid
// on z = 0, so it is shifted up by half the length.
func (k *SdfxKernel) Extrude(outline []v2.Vec, length float64) (kernel.Solid, error) {
	if length <= 0 {
		return nil, fmt.Errorf("extrude: length must be positive, got %v", length)
	}
	pts := outline
	if n := len(pts); n > 1 && geometry.Near(pts[0], pts[n-1]) {
		pts = pts[:n-1]
	}
	if len(pts) < 3 {
		return nil, errors.New("extrude: outline needs at least 3 distinct points")
	}
	s2, err := sdf.Polygon2D(pts)
	if err != nil {
		return nil, fmt.Errorf("extrude: %w", err)
	}
	s3 := sdf.Extrude3D(s2, length)
	m := sdf.Translate3d(v3.Vec{Z: length / 2})
	return wrap(sdf.Transform3D(s3, m)), nil
}

// Union returns the union of two solids.
func (k *SdfxKernel) Union(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Union3D(unwrap(a), unwrap(b)))
}

// ToMesh converts a solid to a triangle mesh using marching cubes.
func (k *SdfxKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	renderer := render.NewMarchingCubesUniform(k.cells)
	triangles := render.ToTriangles(unwrap(s), renderer)

	numVerts := len(triangles) * 3
	vertices := make([]float32, 0, numVerts*3)
	normals := make([]float32, 0, numVerts*3)
	indices := make([]uint32, 0, numVerts)

	for i, tri := range triangles {
		n := tri.Normal()
		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, float32(n.X), float32(n.Y), float32(n.Z))
			indices = append(indices, uint32(i*3+j))
		}
	}

	return &kernel.Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
	}, nil
}

// SaveSTL renders a solid to an STL file.
func (k *SdfxKernel) SaveSTL(s kernel.Solid, path string) error {
	render.ToSTL(unwrap(s), path, render.NewMarchingCubesUniform(k.cells))
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("stl: %w", err)
	}
	return nil
}

// SaveMeshSTL writes an already tessellated mesh to an STL file.
func (k *SdfxKernel) SaveMeshSTL(m *kernel.Mesh, path string) error {
	if m.IsEmpty() {
		return fmt.Errorf("stl: mesh %q is empty", m.Name)
	}
	tris := make([]*sdf.Triangle3, 0, m.TriangleCount())
	vertex := func(i uint32) v3.Vec {
		return v3.Vec{X: float64(m.Vertices[3*i]), Y: float64(m.Vertices[3*i+1]), Z: float64(m.Vertices[3*i+2])}
	}
	for i := 0; i+2 < len(m.Indices); i += 3 {
		tris = append(tris, &sdf.Triangle3{vertex(m.Indices[i]), vertex(m.Indices[i+1]), vertex(m.Indices[i+2])})
	}
	if err := render.SaveSTL(path, tris); err != nil {
		return fmt.Errorf("stl: %w", err)
	}
	return nil
}
