package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"planetgen/internal/config"
	"planetgen/internal/export"
	"planetgen/internal/meshcache"
	"planetgen/internal/meshing"
	"planetgen/internal/planet"
	"planetgen/internal/profiling"
	"planetgen/pkg/palette"

	"github.com/xlab/closer"
)

type flags struct {
	configPath  string
	objPath     string
	thumbPath   string
	paletteDir  string
	paletteName string
	cacheDir    string
	metricsPath string
	workers     int
	size        int
	seed        int64
	thumbSize   int
	verbose     bool
}

func parseFlags() flags {
	var f flags
	flag.StringVar(&f.configPath, "config", "", "YAML planet settings (default $"+config.EnvConfigPath+")")
	flag.StringVar(&f.objPath, "out", "planet.obj", "OBJ output path, .zst suffix compresses; empty to skip")
	flag.StringVar(&f.thumbPath, "thumb", "", "PNG thumbnail output path")
	flag.StringVar(&f.paletteDir, "palette-dir", "palettes", "directory holding palette JSON files")
	flag.StringVar(&f.paletteName, "palette", "", "palette name inside -palette-dir (default built-in)")
	flag.StringVar(&f.cacheDir, "cache", "", "BadgerDB mesh cache directory")
	flag.StringVar(&f.metricsPath, "metrics", "", "write stage metrics in textfile format to this path")
	flag.IntVar(&f.workers, "workers", 1, "goroutines per pipeline pass")
	flag.IntVar(&f.size, "size", -1, "override chunk_size")
	flag.Int64Var(&f.seed, "seed", 0, "override noise seed (0 keeps the config value)")
	flag.IntVar(&f.thumbSize, "thumb-size", config.GetThumbnailSize(), "thumbnail edge length in pixels")
	flag.BoolVar(&f.verbose, "v", false, "debug logging")
	flag.Parse()
	return f
}

func main() {
	defer closer.Close()

	f := parseFlags()

	level := slog.LevelInfo
	if f.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := run(f, logger); err != nil {
		closer.Fatalln(err)
	}
}

func run(f flags, logger *slog.Logger) error {
	settings, err := config.Load(f.configPath)
	if err != nil {
		return err
	}
	if f.size >= 0 {
		settings.ChunkSize = f.size
	}
	if f.seed != 0 {
		settings.Seed = f.seed
	}
	config.SetWorkers(f.workers)
	config.SetThumbnailSize(f.thumbSize)

	if f.metricsPath != "" {
		closer.Bind(func() {
			if err := profiling.WriteTextfile(f.metricsPath); err != nil {
				logger.Error("write metrics", "path", f.metricsPath, "err", err)
			}
		})
	}

	mesh, err := loadOrGenerate(f, settings, logger)
	if err != nil {
		return err
	}

	if f.objPath != "" {
		stop := profiling.Track("export.OBJ")
		err := export.WriteOBJFile(f.objPath, mesh)
		stop()
		if err != nil {
			return err
		}
		logger.Info("wrote mesh", "path", f.objPath)
	}

	if f.thumbPath != "" {
		pal, err := loadPalette(f)
		if err != nil {
			return err
		}
		opts := export.DefaultThumbnailOptions(config.GetThumbnailSize())
		opts.Palette = pal
		opts.Caption = fmt.Sprintf("%d^3  core %d  dirt %d  grass %d", settings.ChunkSize,
			mesh.GroupTriangleCount(meshing.GroupCore),
			mesh.GroupTriangleCount(meshing.GroupDirt),
			mesh.GroupTriangleCount(meshing.GroupGrass))

		stop := profiling.Track("export.Thumbnail")
		err = export.WriteThumbnail(f.thumbPath, mesh, opts)
		stop()
		if err != nil {
			return err
		}
		logger.Info("wrote thumbnail", "path", f.thumbPath)
	}

	logger.Info("done", "timings", profiling.TopN(6))
	return nil
}

func loadOrGenerate(f flags, settings config.PlanetSettings, logger *slog.Logger) (*meshing.Mesh, error) {
	opts := planet.Options{Logger: logger}
	if f.cacheDir == "" {
		return planet.Generate(settings, opts)
	}

	cache, err := meshcache.Open(f.cacheDir, logger)
	if err != nil {
		return nil, err
	}
	closer.Bind(func() {
		if err := cache.Close(); err != nil {
			logger.Error("close cache", "err", err)
		}
	})

	if mesh, ok, err := cache.Get(settings); err != nil {
		logger.Warn("ignoring unreadable cache entry", "err", err)
	} else if ok {
		logger.Info("mesh loaded from cache", "vertices", len(mesh.Vertices), "triangles", mesh.TriangleCount())
		return mesh, nil
	}

	mesh, err := planet.Generate(settings, opts)
	if err != nil {
		return nil, err
	}
	if err := cache.Put(settings, mesh); err != nil {
		logger.Warn("could not cache mesh", "err", err)
	}
	return mesh, nil
}

func loadPalette(f flags) (*palette.Palette, error) {
	if f.paletteName == "" {
		return palette.Default(), nil
	}
	return palette.NewLoader(f.paletteDir).Load(f.paletteName)
}
