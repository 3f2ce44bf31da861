package meshing

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleNil(t *testing.T) {
	m := Assemble(nil)
	assert.Zero(t, m.TriangleCount())
	assert.Empty(t, m.Vertices)
	assert.Empty(t, m.Normals)
}

func TestRecalculateNormalsSingleTriangle(t *testing.T) {
	s := &Surface{Vertices: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}}
	s.Groups[GroupDirt] = []uint32{0, 1, 2}
	m := Assemble(s)

	require.Len(t, m.Normals, 3)
	for _, n := range m.Normals {
		assert.True(t, n.ApproxEqual(mgl32.Vec3{0, 0, 1}), "normal %v", n)
	}
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, m.Min)
	assert.Equal(t, mgl32.Vec3{1, 1, 0}, m.Max)
	assert.Equal(t, 1, m.GroupTriangleCount(GroupDirt))
}

func TestRecalculateNormalsDegenerate(t *testing.T) {
	s := &Surface{Vertices: []mgl32.Vec3{{1, 1, 1}, {1, 1, 1}, {1, 1, 1}}}
	s.Groups[GroupCore] = []uint32{0, 1, 2}
	m := Assemble(s)
	for _, n := range m.Normals {
		assert.Equal(t, mgl32.Vec3{}, n)
	}
}

func TestAssemblePlanetNormalsAreUnit(t *testing.T) {
	s, err := Extract(planetVolume(t, 24), 0.5)
	require.NoError(t, err)
	triangles := s.TriangleCount()

	m := Assemble(s)
	assert.Equal(t, triangles, m.TriangleCount())
	require.Len(t, m.Normals, len(m.Vertices))
	for i, n := range m.Normals {
		l := n.Len()
		if l != 0 && math.Abs(float64(l)-1) > 1e-4 {
			t.Fatalf("normal %d has length %v", i, l)
		}
	}
	for _, v := range m.Vertices {
		for axis := range 3 {
			assert.GreaterOrEqual(t, v[axis], m.Min[axis])
			assert.LessOrEqual(t, v[axis], m.Max[axis])
		}
	}
}

func TestInterleaved(t *testing.T) {
	s := &Surface{Vertices: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}}
	s.Groups[GroupGrass] = []uint32{0, 1, 2}
	m := Assemble(s)

	out := m.Interleaved(GroupGrass)
	require.Len(t, out, 3*VertexStride)
	assert.Equal(t, []float32{1, 0, 0, 0, 0, 1}, out[VertexStride:2*VertexStride])
	assert.Empty(t, m.Interleaved(GroupCore))

	a, b, c := m.Triangle(GroupGrass, 0)
	assert.Equal(t, []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, []mgl32.Vec3{a, b, c})
}
