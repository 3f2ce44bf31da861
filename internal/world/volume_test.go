package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVolumeIndexLayout(t *testing.T) {
	v := newVolume(3) // side 4
	assert.Equal(t, 1+4*2+16*3, v.Index(1, 2, 3))
	assert.Equal(t, v.Len()-1, v.Index(3, 3, 3), "last point should map to the last slot")
}

func TestVolumeOutOfRange(t *testing.T) {
	v := newVolume(2)
	assert.Equal(t, DensityOpen, v.Density(-1, 0, 0))
	assert.Equal(t, DensityOpen, v.Density(0, 3, 0))
	assert.Equal(t, MaterialRock, v.Material(0, 0, 9))
	assert.False(t, v.InBounds(3, 0, 0))
	assert.True(t, v.InBounds(2, 2, 2))
}

func TestNewVolumeFromFields(t *testing.T) {
	density := make([]float32, 8)
	material := make([]Material, 8)
	density[7] = 1
	material[7] = MaterialGrass

	v, err := NewVolumeFromFields(1, density, material)
	require.NoError(t, err)
	assert.Equal(t, float32(1), v.Density(1, 1, 1))
	assert.Equal(t, MaterialGrass, v.Material(1, 1, 1))

	density[7] = 0
	assert.Equal(t, float32(1), v.Density(1, 1, 1), "volume should not alias caller buffers")

	_, err = NewVolumeFromFields(1, density[:7], material)
	assert.ErrorIs(t, err, ErrFieldSize)
	_, err = NewVolumeFromFields(-2, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidResolution)
}

func TestMaterialString(t *testing.T) {
	names := map[Material]string{
		MaterialCore:  "core",
		MaterialRock:  "rock",
		MaterialDirt:  "dirt",
		MaterialGrass: "grass",
		Material(42):  "unknown",
	}
	for m, want := range names {
		assert.Equal(t, want, m.String())
	}
}
