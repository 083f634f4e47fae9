package kernel

import "math"

// Mesh is a triangle mesh of one seam solid.
// All arrays are flat: vertices has 3 floats per vertex (x,y,z),
// normals has 3 floats per vertex, indices has 3 uint32s per triangle.
type Mesh struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
	Name     string    `json:"name"` // design entry the mesh was built from
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Bounds returns the extent of the vertices. An empty mesh yields zeros.
func (m *Mesh) Bounds() (min, max [3]float64) {
	if m.IsEmpty() {
		return min, max
	}
	for i := range 3 {
		min[i], max[i] = math.Inf(1), math.Inf(-1)
	}
	for i, v := range m.Vertices {
		axis := i % 3
		min[axis] = math.Min(min[axis], float64(v))
		max[axis] = math.Max(max[axis], float64(v))
	}
	return min, max
}
