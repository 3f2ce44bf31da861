// Package planet wires the generation pipeline: volume synthesis, surface
// extraction and mesh assembly, run back to back on the caller's goroutine.
package planet

import (
	"fmt"
	"log/slog"

	"planetgen/internal/config"
	"planetgen/internal/meshing"
	"planetgen/internal/profiling"
	"planetgen/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// Options controls how a run executes, not what it produces.
type Options struct {
	// Workers parallelises the two inner loops; the output is the same for
	// any value. Zero uses config.GetWorkers.
	Workers int
	Logger  *slog.Logger
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return config.GetWorkers()
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// VolumeParams converts settings into builder parameters.
func VolumeParams(s config.PlanetSettings, workers int) world.VolumeParams {
	return world.VolumeParams{
		Resolution:      s.ChunkSize,
		CoreRadius:      s.CoreRadius,
		PlanetRadius:    s.PlanetRadius,
		DirtThreshold:   s.DirtThreshold,
		GrassThreshold:  s.GrassThreshold,
		DirtNoiseScale:  s.DirtNoiseScale,
		GrassNoiseScale: s.GrassNoiseScale,
		Offset:          mgl32.Vec3(s.Offset),
		Workers:         workers,
	}
}

// NoiseField builds the noise field selected by the settings.
func NoiseField(s config.PlanetSettings) *world.NoiseField {
	switch s.Noise {
	case config.NoiseValue:
		return world.NewNoiseField(world.NewValueNoise(s.Seed))
	case config.NoiseImproved:
		return world.NewNoiseField(world.NewImprovedNoise(s.Seed))
	default:
		return world.NewNoiseField(world.NewPerlinNoise(s.Seed))
	}
}

// BuildVolume is the first pipeline step. It always allocates a new volume.
func BuildVolume(s config.PlanetSettings, opts Options) (*world.Volume, error) {
	defer profiling.Track("world.BuildVolume")()

	v, err := world.BuildVolume(VolumeParams(s, opts.workers()), NoiseField(s))
	if err != nil {
		return nil, fmt.Errorf("build volume: %w", err)
	}
	return v, nil
}

// ExtractSurface is the second pipeline step: marching cubes followed by
// mesh assembly.
func ExtractSurface(v *world.Volume, s config.PlanetSettings, opts Options) (*meshing.Mesh, error) {
	stop := profiling.Track("meshing.Extract")
	surface, err := meshing.Extract(v, s.TerrainSurface, meshing.WithWorkers(opts.workers()))
	stop()
	if err != nil {
		return nil, fmt.Errorf("extract surface: %w", err)
	}

	defer profiling.Track("meshing.Assemble")()
	return meshing.Assemble(surface), nil
}

// Generate validates the settings and runs both steps.
func Generate(s config.PlanetSettings, opts Options) (*meshing.Mesh, error) {
	log := opts.logger()
	if err := s.Validate(log); err != nil {
		return nil, err
	}

	v, err := BuildVolume(s, opts)
	if err != nil {
		return nil, err
	}
	log.Debug("volume built",
		"resolution", v.Resolution(),
		"core", v.CountMaterial(world.MaterialCore),
		"rock", v.CountMaterial(world.MaterialRock),
		"dirt", v.CountMaterial(world.MaterialDirt),
		"grass", v.CountMaterial(world.MaterialGrass))

	mesh, err := ExtractSurface(v, s, opts)
	if err != nil {
		return nil, err
	}
	log.Info("mesh generated",
		"vertices", len(mesh.Vertices),
		"triangles", mesh.TriangleCount(),
		"core", mesh.GroupTriangleCount(meshing.GroupCore),
		"dirt", mesh.GroupTriangleCount(meshing.GroupDirt),
		"grass", mesh.GroupTriangleCount(meshing.GroupGrass))
	return mesh, nil
}
