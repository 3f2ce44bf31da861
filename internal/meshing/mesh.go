package meshing

import (
	"github.com/go-gl/mathgl/mgl32"
)

// VertexStride is number of float32 per vertex (pos.xyz + normal.xyz)
const VertexStride = 6

// Mesh is a multi-group triangle mesh over a single vertex pool.
type Mesh struct {
	Vertices  []mgl32.Vec3
	Normals   []mgl32.Vec3
	Submeshes [NumGroups][]uint32

	// Min and Max bound all vertices; both are zero for an empty mesh.
	Min, Max mgl32.Vec3
}

// Assemble takes ownership of the surface buffers, builds the mesh and
// recomputes its normals. A nil or empty surface gives an empty mesh.
func Assemble(s *Surface) *Mesh {
	m := &Mesh{}
	if s == nil {
		return m
	}
	m.Vertices = s.Vertices
	m.Submeshes = s.Groups
	m.RecalculateNormals()
	m.RecalculateBounds()
	return m
}

// RecalculateNormals accumulates area-weighted face normals per vertex and
// normalises them. Vertices of degenerate triangles keep a zero normal.
func (m *Mesh) RecalculateNormals() {
	normals := make([]mgl32.Vec3, len(m.Vertices))
	for _, idx := range m.Submeshes {
		for t := 0; t+2 < len(idx); t += 3 {
			a, b, c := idx[t], idx[t+1], idx[t+2]
			// The cross product length is twice the triangle area.
			face := m.Vertices[b].Sub(m.Vertices[a]).Cross(m.Vertices[c].Sub(m.Vertices[a]))
			normals[a] = normals[a].Add(face)
			normals[b] = normals[b].Add(face)
			normals[c] = normals[c].Add(face)
		}
	}
	for i, n := range normals {
		if l := n.Len(); l > 0 {
			normals[i] = n.Mul(1 / l)
		}
	}
	m.Normals = normals
}

// RecalculateBounds updates Min and Max from the vertex pool.
func (m *Mesh) RecalculateBounds() {
	if len(m.Vertices) == 0 {
		m.Min, m.Max = mgl32.Vec3{}, mgl32.Vec3{}
		return
	}
	lo, hi := m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		for i := range 3 {
			lo[i] = min(lo[i], v[i])
			hi[i] = max(hi[i], v[i])
		}
	}
	m.Min, m.Max = lo, hi
}

// TriangleCount returns the number of triangles over all submeshes.
func (m *Mesh) TriangleCount() int {
	n := 0
	for g := range m.Submeshes {
		n += m.GroupTriangleCount(Group(g))
	}
	return n
}

// GroupTriangleCount returns the number of triangles in one submesh.
func (m *Mesh) GroupTriangleCount(g Group) int {
	return len(m.Submeshes[g]) / 3
}

// Triangle returns the corner positions of triangle t of group g.
func (m *Mesh) Triangle(g Group, t int) (a, b, c mgl32.Vec3) {
	idx := m.Submeshes[g][t*3 : t*3+3]
	return m.Vertices[idx[0]], m.Vertices[idx[1]], m.Vertices[idx[2]]
}

// Interleaved flattens one submesh into a triangle list of pos+normal
// floats, VertexStride floats per vertex.
func (m *Mesh) Interleaved(g Group) []float32 {
	idx := m.Submeshes[g]
	out := make([]float32, 0, len(idx)*VertexStride)
	for _, i := range idx {
		p, n := m.Vertices[i], m.Normals[i]
		out = append(out, p[0], p[1], p[2], n[0], n[1], n[2])
	}
	return out
}
