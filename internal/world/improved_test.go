package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImprovedNoiseRangeAndDeterminism(t *testing.T) {
	a := NewImprovedNoise(12345)
	b := NewImprovedNoise(12345)

	hasVariation := false
	first := a.Noise2D(0.3, 0.7)
	for i := 0; i < 200; i++ {
		x, y := float64(i)*0.37-30, float64(i)*0.11+5
		v := a.Noise2D(x, y)
		require.True(t, v >= 0 && v <= 1, "Noise2D(%v,%v) = %v", x, y, v)
		require.Equal(t, v, b.Noise2D(x, y), "same seed at (%v,%v)", x, y)
		if v != first {
			hasVariation = true
		}
	}
	assert.True(t, hasVariation, "expected noise to vary")
}

func TestImprovedNoiseSeedsDiffer(t *testing.T) {
	a, b := NewImprovedNoise(1), NewImprovedNoise(2)
	same := 0
	for i := 0; i < 50; i++ {
		x, y := float64(i)*0.9+0.25, float64(i)*0.4+0.5
		if a.Noise2D(x, y) == b.Noise2D(x, y) {
			same++
		}
	}
	assert.Less(t, same, 50, "different seeds produced identical noise")
}

func TestFloorToInt(t *testing.T) {
	cases := map[float64]int{0: 0, 1.5: 1, -0.5: -1, -2: -2, -2.1: -3}
	for in, want := range cases {
		assert.Equal(t, want, floorToInt(in), "floorToInt(%v)", in)
	}
}
