package world

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/alitto/pond/v2"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrInvalidResolution is returned for a negative grid resolution.
	ErrInvalidResolution = errors.New("world: resolution must not be negative")
	// ErrFieldSize is returned when supplied fields do not match the grid.
	ErrFieldSize = errors.New("world: field length does not match resolution")
)

// VolumeParams describes the layered planet to synthesise.
type VolumeParams struct {
	Resolution      int
	CoreRadius      float32
	PlanetRadius    float32
	DirtThreshold   float32
	GrassThreshold  float32
	DirtNoiseScale  float32
	GrassNoiseScale float32
	Offset          mgl32.Vec3

	// Workers is the number of goroutines evaluating k-slabs. Values below
	// 2 run on the calling goroutine.
	Workers int
}

// Center returns the planet center in grid coordinates. The division
// truncates, so for odd resolutions the center sits half a cell off the
// geometric middle of the grid.
func (p VolumeParams) Center() mgl32.Vec3 {
	c := float32((p.Resolution + 1) / 2)
	return mgl32.Vec3{c, c, c}
}

// Classify returns the material and density of a point at the given
// distance from the center, given the two noise samples taken there.
func (p VolumeParams) Classify(distance float32, dirtNoise, grassNoise float64) (Material, float32) {
	switch {
	case distance < p.CoreRadius:
		return MaterialCore, DensitySolid
	case distance < p.PlanetRadius:
		if dirtNoise > float64(p.DirtThreshold) {
			return MaterialDirt, DensitySolid
		}
		if grassNoise > float64(p.GrassThreshold) {
			return MaterialGrass, DensitySolid
		}
		return MaterialRock, DensityOpen
	default:
		return MaterialRock, DensityOpen
	}
}

// BuildVolume evaluates every grid point and returns a fully populated
// volume. The output does not depend on the worker count.
func BuildVolume(p VolumeParams, noise *NoiseField) (*Volume, error) {
	if p.Resolution < 0 {
		return nil, ErrInvalidResolution
	}
	if noise == nil {
		noise = NewNoiseField(nil)
	}

	v := newVolume(p.Resolution)
	b := &volumeBuilder{params: p, noise: noise, volume: v, center: p.Center()}

	workers := p.Workers
	if workers > runtime.NumCPU() {
		workers = runtime.NumCPU()
	}
	if workers < 2 || v.side < 2 {
		for k := 0; k < v.side; k++ {
			b.fillSlab(k)
		}
		return v, nil
	}

	pool := pond.NewPool(workers)
	defer pool.StopAndWait()

	group := pool.NewGroup()
	for k := 0; k < v.side; k++ {
		group.Submit(func() {
			b.fillSlab(k)
		})
	}
	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("build volume slabs: %w", err)
	}
	return v, nil
}

type volumeBuilder struct {
	params VolumeParams
	noise  *NoiseField
	volume *Volume
	center mgl32.Vec3
}

// fillSlab populates every point with the given k. Slabs cover disjoint
// ranges of the flat buffers.
func (b *volumeBuilder) fillSlab(k int) {
	p := b.params
	v := b.volume
	off := p.Offset

	for j := 0; j < v.side; j++ {
		for i := 0; i < v.side; i++ {
			pos := mgl32.Vec3{float32(i), float32(j), float32(k)}
			distance := pos.Sub(b.center).Len()

			dirtNoise := b.noise.Sample(
				float64(float32(i)*p.DirtNoiseScale+off[0]),
				float64(float32(j)*p.DirtNoiseScale+off[1]),
				float64(float32(k)*p.DirtNoiseScale+off[2]),
			)
			grassNoise := b.noise.Sample(
				float64(float32(i)*p.GrassNoiseScale+off[0]),
				float64(float32(j)*p.GrassNoiseScale+off[1]),
				float64(float32(k)*p.GrassNoiseScale+off[2]),
			)

			idx := v.Index(i, j, k)
			v.material[idx], v.density[idx] = p.Classify(distance, dirtNoise, grassNoise)
		}
	}
}
