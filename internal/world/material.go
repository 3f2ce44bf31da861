package world

// Material identifies the substance a grid point was classified as.
type Material uint8

const (
	MaterialCore Material = iota
	MaterialRock
	MaterialDirt
	MaterialGrass
)

// String returns the lower-case material name.
func (m Material) String() string {
	switch m {
	case MaterialCore:
		return "core"
	case MaterialRock:
		return "rock"
	case MaterialDirt:
		return "dirt"
	case MaterialGrass:
		return "grass"
	default:
		return "unknown"
	}
}

// Density values written by the classifier.
const (
	DensitySolid float32 = 0
	DensityOpen  float32 = 1
)
