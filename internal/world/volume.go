package world

// Volume is a cubic sample grid of Resolution+1 points per axis holding a
// density field and a parallel material field. Both live in flat buffers
// indexed by i + side*j + side*side*k. A Volume is read-only once built.
type Volume struct {
	resolution int
	side       int
	density    []float32
	material   []Material
}

func newVolume(resolution int) *Volume {
	side := resolution + 1
	n := side * side * side
	return &Volume{
		resolution: resolution,
		side:       side,
		density:    make([]float32, n),
		material:   make([]Material, n),
	}
}

// NewVolumeFromFields builds a volume from caller-supplied fields. Both
// slices must hold (resolution+1)^3 entries; they are copied.
func NewVolumeFromFields(resolution int, density []float32, material []Material) (*Volume, error) {
	if resolution < 0 {
		return nil, ErrInvalidResolution
	}
	v := newVolume(resolution)
	if len(density) != len(v.density) || len(material) != len(v.material) {
		return nil, ErrFieldSize
	}
	copy(v.density, density)
	copy(v.material, material)
	return v, nil
}

// Resolution returns the number of cells per axis.
func (v *Volume) Resolution() int {
	return v.resolution
}

// Side returns the number of sample points per axis.
func (v *Volume) Side() int {
	return v.side
}

// Index converts grid coordinates to a flat buffer index.
func (v *Volume) Index(i, j, k int) int {
	return i + v.side*j + v.side*v.side*k
}

// InBounds reports whether (i,j,k) is a sample point of the grid.
func (v *Volume) InBounds(i, j, k int) bool {
	return i >= 0 && i < v.side && j >= 0 && j < v.side && k >= 0 && k < v.side
}

// Density returns the density at (i,j,k). Out of range points read as open.
func (v *Volume) Density(i, j, k int) float32 {
	if !v.InBounds(i, j, k) {
		return DensityOpen
	}
	return v.density[v.Index(i, j, k)]
}

// Material returns the material at (i,j,k). Out of range points read as rock.
func (v *Volume) Material(i, j, k int) Material {
	if !v.InBounds(i, j, k) {
		return MaterialRock
	}
	return v.material[v.Index(i, j, k)]
}

// Len returns the number of sample points.
func (v *Volume) Len() int {
	return len(v.density)
}

// CountMaterial returns how many points carry material m.
func (v *Volume) CountMaterial(m Material) int {
	n := 0
	for _, got := range v.material {
		if got == m {
			n++
		}
	}
	return n
}
