package meshcache

import (
	"bytes"
	"log/slog"
	"testing"

	"planetgen/internal/config"
	"planetgen/internal/meshing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMesh() *meshing.Mesh {
	s := &meshing.Surface{Vertices: []mgl32.Vec3{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {0, 1, 1},
	}}
	s.Groups[meshing.GroupCore] = []uint32{0, 1, 2}
	s.Groups[meshing.GroupDirt] = []uint32{3, 4, 5}
	s.Groups[meshing.GroupGrass] = []uint32{}
	return meshing.Assemble(s)
}

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := OpenInMemory(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCacheMissPutHit(t *testing.T) {
	c := openTestCache(t)
	s := config.Default()

	m, ok, err := c.Get(s)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, m)

	want := sampleMesh()
	require.NoError(t, c.Put(s, want))

	got, ok, err := c.Get(s)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want.Vertices, got.Vertices)
	assert.Equal(t, want.Submeshes, got.Submeshes)
	assert.Equal(t, want.Normals, got.Normals)
	assert.Equal(t, want.Min, got.Min)
	assert.Equal(t, want.Max, got.Max)

	other := s
	other.Seed = 1
	_, ok, err = c.Get(other)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCacheOnDisk(t *testing.T) {
	dir := t.TempDir()
	s := config.Default()

	c, err := Open(dir, nil)
	require.NoError(t, err)
	require.NoError(t, c.Put(s, sampleMesh()))
	require.NoError(t, c.Close())

	c, err = Open(dir, nil)
	require.NoError(t, err)
	defer c.Close()
	got, ok, err := c.Get(s)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2, got.TriangleCount())
}

func TestCacheClosed(t *testing.T) {
	c := openTestCache(t)
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	_, _, err := c.Get(config.Default())
	assert.Error(t, err)
	assert.Error(t, c.Put(config.Default(), sampleMesh()))
}

func TestKey(t *testing.T) {
	a, err := Key(config.Default())
	require.NoError(t, err)
	b, err := Key(config.Default())
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.True(t, bytes.HasPrefix(a, []byte("mesh/")))

	s := config.Default()
	s.Offset[2] = 0.5
	c, err := Key(s)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestKeyDefaultNoise(t *testing.T) {
	implicit := config.Default()
	implicit.Noise = ""
	explicit := config.Default()
	explicit.Noise = config.NoisePerlin

	a, err := Key(implicit)
	require.NoError(t, err)
	b, err := Key(explicit)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	explicit.Noise = config.NoiseValue
	c, err := Key(explicit)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)

	cache := openTestCache(t)
	require.NoError(t, cache.Put(implicit, sampleMesh()))
	_, ok, err := cache.Get(config.Default())
	require.NoError(t, err)
	assert.True(t, ok)
}
