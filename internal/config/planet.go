package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable consulted by Load when no
// path is given.
const EnvConfigPath = "PLANETGEN_CONFIG"

// ErrInvalidSettings wraps settings that cannot produce a mesh.
var ErrInvalidSettings = errors.New("config: invalid planet settings")

// Noise primitive names.
const (
	NoisePerlin   = "perlin"
	NoiseValue    = "value"
	NoiseImproved = "improved"
)

// PlanetSettings is the full parameter surface of one generation run.
type PlanetSettings struct {
	ChunkSize      int     `yaml:"chunk_size"`
	PlanetRadius   float32 `yaml:"planet_radius"`
	CoreRadius     float32 `yaml:"core_radius"`
	TerrainSurface float32 `yaml:"terrain_surface"`

	// NoiseScale is accepted for compatibility but not read by the
	// classifier.
	NoiseScale float32 `yaml:"noise_scale"`

	DirtThreshold   float32    `yaml:"dirt_threshold"`
	GrassThreshold  float32    `yaml:"grass_threshold"`
	DirtNoiseScale  float32    `yaml:"dirt_noise_scale"`
	GrassNoiseScale float32    `yaml:"grass_noise_scale"`
	Offset          [3]float32 `yaml:"offset,flow"`

	Seed  int64  `yaml:"seed"`
	Noise string `yaml:"noise"`
}

// Default returns the stock planet: a 32^3 grid, radius 10 with a 2.5 core.
func Default() PlanetSettings {
	return PlanetSettings{
		ChunkSize:       32,
		PlanetRadius:    10,
		CoreRadius:      2.5,
		TerrainSurface:  0.5,
		NoiseScale:      0.1,
		DirtThreshold:   0.3,
		GrassThreshold:  0.6,
		DirtNoiseScale:  0.1,
		GrassNoiseScale: 0.15,
		Noise:           NoisePerlin,
	}
}

// Load reads YAML settings on top of Default. If path is empty the
// PLANETGEN_CONFIG variable is used; with neither, defaults are returned.
func Load(path string) (PlanetSettings, error) {
	s := Default()
	if path == "" {
		path = os.Getenv(EnvConfigPath)
		if path == "" {
			return s, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("could not read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("could not parse config %s: %w", path, err)
	}
	return s, nil
}

// Validate rejects settings that cannot run and warns about degenerate ones
// that still produce a (possibly empty) mesh. A nil logger uses slog.Default.
func (s PlanetSettings) Validate(logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	if s.ChunkSize < 0 {
		return fmt.Errorf("%w: chunk_size %d is negative", ErrInvalidSettings, s.ChunkSize)
	}
	switch s.Noise {
	case "", NoisePerlin, NoiseValue, NoiseImproved:
	default:
		return fmt.Errorf("%w: unknown noise %q", ErrInvalidSettings, s.Noise)
	}

	if s.ChunkSize == 0 {
		logger.Warn("chunk_size is zero, the mesh will be empty")
	}
	if s.CoreRadius >= s.PlanetRadius {
		logger.Warn("core radius reaches the planet radius, no dirt or grass band",
			"core_radius", s.CoreRadius, "planet_radius", s.PlanetRadius)
	}
	thresholds := []struct {
		name  string
		value float32
	}{
		{"terrain_surface", s.TerrainSurface},
		{"dirt_threshold", s.DirtThreshold},
		{"grass_threshold", s.GrassThreshold},
	}
	for _, th := range thresholds {
		if th.value < 0 || th.value > 1 {
			logger.Warn("threshold outside [0,1]", "name", th.name, "value", th.value)
		}
	}
	return nil
}
