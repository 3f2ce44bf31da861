package planet

import (
	"bytes"
	"log/slog"
	"testing"

	"planetgen/internal/config"
	"planetgen/internal/meshing"
	"planetgen/internal/profiling"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestGenerateDefault(t *testing.T) {
	profiling.Reset()
	m, err := Generate(config.Default(), Options{Logger: quiet()})
	require.NoError(t, err)

	assert.NotZero(t, m.TriangleCount())
	assert.NotZero(t, m.GroupTriangleCount(meshing.GroupDirt))
	assert.Len(t, m.Normals, len(m.Vertices))

	// Recentring puts the planet around the origin.
	for _, v := range m.Vertices {
		require.Less(t, v.Len(), float32(12))
	}

	ss := profiling.Snapshot()
	for _, stage := range []string{"world.BuildVolume", "meshing.Extract", "meshing.Assemble"} {
		assert.Contains(t, ss, stage)
	}
}

func TestGenerateDeterministicAcrossWorkers(t *testing.T) {
	s := config.Default()
	s.ChunkSize = 24
	s.Seed = 99

	serial, err := Generate(s, Options{Workers: 1, Logger: quiet()})
	require.NoError(t, err)
	parallel, err := Generate(s, Options{Workers: 6, Logger: quiet()})
	require.NoError(t, err)

	assert.Equal(t, serial.Vertices, parallel.Vertices)
	assert.Equal(t, serial.Submeshes, parallel.Submeshes)
	assert.Equal(t, serial.Normals, parallel.Normals)
}

func TestGenerateSeedAndNoise(t *testing.T) {
	s := config.Default()
	s.ChunkSize = 24
	a, err := Generate(s, Options{Logger: quiet()})
	require.NoError(t, err)

	s.Noise = config.NoiseValue
	b, err := Generate(s, Options{Logger: quiet()})
	require.NoError(t, err)

	assert.NotEqual(t, a.Vertices, b.Vertices)

	s.Noise = config.NoiseImproved
	c, err := Generate(s, Options{Logger: quiet()})
	require.NoError(t, err)
	assert.NotZero(t, c.TriangleCount())
}

func TestGenerateEmptyAndInvalid(t *testing.T) {
	s := config.Default()
	s.ChunkSize = 0
	m, err := Generate(s, Options{Logger: quiet()})
	require.NoError(t, err)
	assert.Zero(t, m.TriangleCount())

	s.ChunkSize = -4
	_, err = Generate(s, Options{Logger: quiet()})
	assert.ErrorIs(t, err, config.ErrInvalidSettings)
}

func TestVolumeParams(t *testing.T) {
	s := config.Default()
	s.Offset = [3]float32{1, 2, 3}
	p := VolumeParams(s, 3)
	assert.Equal(t, 32, p.Resolution)
	assert.Equal(t, 3, p.Workers)
	assert.Equal(t, float32(2), p.Offset[1])
}
