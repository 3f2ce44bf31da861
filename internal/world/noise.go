package world

import (
	"math"

	"github.com/aquilax/go-perlin"
)

// Noise2D is a seeded 2D noise primitive returning values in [0,1].
type Noise2D interface {
	Noise2D(x, y float64) float64
}

// Perlin parameters: amplitude falloff 2, frequency gain 2, three octaves.
const (
	perlinAlpha   = 2.0
	perlinBeta    = 2.0
	perlinOctaves = int32(3)
)

// PerlinNoise is a gradient noise primitive backed by go-perlin.
type PerlinNoise struct {
	p *perlin.Perlin
}

// NewPerlinNoise creates a gradient noise primitive for the given seed.
func NewPerlinNoise(seed int64) *PerlinNoise {
	return &PerlinNoise{p: perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, seed)}
}

// Noise2D maps go-perlin's [-1,1] output to [0,1].
func (n *PerlinNoise) Noise2D(x, y float64) float64 {
	return clamp01((n.p.Noise2D(x, y) + 1.0) / 2.0)
}

// ValueNoise is hashed lattice value noise with smoothstep fading.
type ValueNoise struct {
	seed int64
}

// NewValueNoise creates a value noise primitive for the given seed.
func NewValueNoise(seed int64) *ValueNoise {
	return &ValueNoise{seed: seed}
}

// Noise2D returns value noise in [0,1].
func (n *ValueNoise) Noise2D(x, y float64) float64 {
	return valueNoise2D(x, y, n.seed)
}

// NoiseField approximates isotropic 3D noise by averaging a 2D primitive
// over every ordered pair of axes.
type NoiseField struct {
	src Noise2D
}

// NewNoiseField wraps a 2D primitive. A nil primitive falls back to Perlin
// noise with seed 0.
func NewNoiseField(src Noise2D) *NoiseField {
	if src == nil {
		src = NewPerlinNoise(0)
	}
	return &NoiseField{src: src}
}

// Sample returns the mean of the six pairwise evaluations, in [0,1].
// Each unordered pair is evaluated in both orders, so the result does not
// depend on the order of x, y and z.
func (f *NoiseField) Sample(x, y, z float64) float64 {
	ab := f.src.Noise2D(x, y)
	bc := f.src.Noise2D(y, z)
	ac := f.src.Noise2D(x, z)

	ba := f.src.Noise2D(y, x)
	cb := f.src.Noise2D(z, y)
	ca := f.src.Noise2D(z, x)

	return (ab + bc + ac + ba + cb + ca) / 6.0
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// fade is the quintic smoothstep 6t^5 - 15t^4 + 10t^3.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func hash2(x int64, y int64, seed int64) uint64 {
	// SplitMix64 style integer hash, stable across runs for same inputs
	v := uint64(x) + (uint64(y) << 1) + uint64(seed)*0x9E3779B97F4A7C15
	v += 0x9E3779B97F4A7C15
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	v = v ^ (v >> 31)
	return v
}

func latticeValue(x int64, y int64, seed int64) float64 {
	h := hash2(x, y, seed)
	return float64(h&0xFFFFFFFF) / float64(0xFFFFFFFF)
}

func valueNoise2D(x float64, y float64, seed int64) float64 {
	x0 := math.Floor(x)
	y0 := math.Floor(y)
	x1 := x0 + 1
	y1 := y0 + 1

	fx := fade(x - x0)
	fy := fade(y - y0)

	v00 := latticeValue(int64(x0), int64(y0), seed)
	v10 := latticeValue(int64(x1), int64(y0), seed)
	v01 := latticeValue(int64(x0), int64(y1), seed)
	v11 := latticeValue(int64(x1), int64(y1), seed)

	i0 := lerp(v00, v10, fx)
	i1 := lerp(v01, v11, fx)
	return lerp(i0, i1, fy) // [0,1]
}
