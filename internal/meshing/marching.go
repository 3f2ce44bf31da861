package meshing

import (
	"planetgen/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// Group is a material partition of the output triangles.
type Group int

const (
	GroupCore Group = iota
	GroupDirt
	GroupGrass

	NumGroups = 3
)

// String returns the group name used for submesh and material labels.
func (g Group) String() string {
	switch g {
	case GroupCore:
		return "core"
	case GroupDirt:
		return "dirt"
	case GroupGrass:
		return "grass"
	default:
		return "unknown"
	}
}

// Surface is the raw output of the extractor: a shared vertex pool and one
// triangle index list per group. Vertices are never shared between
// triangles.
type Surface struct {
	Vertices []mgl32.Vec3
	Groups   [NumGroups][]uint32
}

// TriangleCount returns the total number of triangles over all groups.
func (s *Surface) TriangleCount() int {
	n := 0
	for _, g := range s.Groups {
		n += len(g) / 3
	}
	return n
}

// append merges o into s, shifting o's indices past s's vertices.
func (s *Surface) append(o *Surface) {
	base := uint32(len(s.Vertices))
	s.Vertices = append(s.Vertices, o.Vertices...)
	for g := range s.Groups {
		for _, idx := range o.Groups[g] {
			s.Groups[g] = append(s.Groups[g], base+idx)
		}
	}
}

type extractConfig struct {
	tables  Tables
	workers int
}

// ExtractOption configures Extract.
type ExtractOption func(*extractConfig)

// WithWorkers splits the cell walk into x-slabs processed by a WorkerPool.
// The merged output is identical to the serial walk.
func WithWorkers(n int) ExtractOption {
	return func(c *extractConfig) {
		c.workers = n
	}
}

// WithTables replaces the built-in lookup tables.
func WithTables(t Tables) ExtractOption {
	return func(c *extractConfig) {
		c.tables = t
	}
}

// Extract runs Marching Cubes over every cell of v. A corner is inside when
// its density exceeds surface. Vertices sit on edge midpoints and the grid is
// re-centered on the origin.
func Extract(v *world.Volume, surface float32, opts ...ExtractOption) (*Surface, error) {
	cfg := extractConfig{tables: DefaultTables(), workers: 1}
	for _, opt := range opts {
		opt(&cfg)
	}

	tables := cfg.tables.clone()
	if err := ValidateTables(tables); err != nil {
		return nil, err
	}

	out := &Surface{}
	if v == nil || v.Resolution() <= 0 {
		return out, nil
	}

	m := &marcher{volume: v, surface: surface, tables: tables}
	n := v.Resolution()

	if cfg.workers < 2 || n < 2 {
		for x := 0; x < n; x++ {
			m.marchSlab(x, out)
		}
		return out, nil
	}

	pool := NewWorkerPool(cfg.workers, n)
	defer pool.Shutdown()

	results := make(chan SlabResult, n)
	for x := 0; x < n; x++ {
		pool.SubmitJobBlocking(SlabJob{Marcher: m, X: x, ResultChan: results})
	}

	slabs := make([]*Surface, n)
	for range n {
		r := <-results
		slabs[r.X] = r.Surface
	}
	for _, s := range slabs {
		out.append(s)
	}
	return out, nil
}

// marcher holds the read-only inputs of one extraction.
type marcher struct {
	volume  *world.Volume
	surface float32
	tables  Tables
}

// marchSlab emits geometry for every cell with origin x, in y then z order.
func (m *marcher) marchSlab(x int, out *Surface) {
	n := m.volume.Resolution()
	half := float32(n) / 2
	for y := 0; y < n; y++ {
		for z := 0; z < n; z++ {
			origin := mgl32.Vec3{float32(x) - half, float32(y) - half, float32(z) - half}
			m.marchCell(x, y, z, origin, out)
		}
	}
}

func (m *marcher) marchCell(x, y, z int, origin mgl32.Vec3, out *Surface) {
	var materials [8]world.Material
	config := 0
	for i, c := range m.tables.Corners {
		cx, cy, cz := x+c[0], y+c[1], z+c[2]
		if m.volume.Density(cx, cy, cz) > m.surface {
			config |= 1 << i
		}
		materials[i] = m.volume.Material(cx, cy, cz)
	}
	if config == 0 || config == 255 {
		return
	}

	group := groupFor(materials)
	row := &m.tables.Triangulation[config]
	for slot := 0; slot < 15; slot++ {
		edge := row[slot]
		if edge == NoEdge {
			return
		}
		ends := m.tables.Edges[edge]
		a := mgl32.Vec3{float32(ends[0][0]), float32(ends[0][1]), float32(ends[0][2])}
		b := mgl32.Vec3{float32(ends[1][0]), float32(ends[1][1]), float32(ends[1][2])}

		out.Vertices = append(out.Vertices, origin.Add(a.Add(b).Mul(0.5)))
		out.Groups[group] = append(out.Groups[group], uint32(len(out.Vertices)-1))
	}
}

// groupFor picks the cell's group: grass wins over dirt, everything else
// (core and rock) lands in the core group.
func groupFor(materials [8]world.Material) Group {
	hasDirt := false
	for _, mat := range materials {
		switch mat {
		case world.MaterialGrass:
			return GroupGrass
		case world.MaterialDirt:
			hasDirt = true
		}
	}
	if hasDirt {
		return GroupDirt
	}
	return GroupCore
}

// CellConfiguration returns the configuration index of the cell at (x,y,z),
// numbering corners by t.Corners. A nil Corners table uses CornerOffsets.
func CellConfiguration(v *world.Volume, x, y, z int, surface float32, t Tables) int {
	corners := t.Corners
	if corners == nil {
		corners = &CornerOffsets
	}
	config := 0
	for i, c := range corners {
		if v.Density(x+c[0], y+c[1], z+c[2]) > surface {
			config |= 1 << i
		}
	}
	return config
}
