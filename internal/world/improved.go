package world

import "math/rand"

// 2D gradient lookup tables, indexed by hash & 15.
var (
	grad2X = [16]float64{1, -1, 1, -1, 1, -1, 1, -1, 0, 0, 0, 0, 1, 0, -1, 0}
	grad2Y = [16]float64{0, 0, 0, 0, 1, 1, -1, -1, 1, 1, -1, -1, 0, 1, 0, -1}
)

// ImprovedNoise is Ken Perlin's improved noise over a seeded permutation,
// with the lattice shifted by a seeded random offset.
type ImprovedNoise struct {
	permutations [512]int
	xCoord       float64
	yCoord       float64
}

// NewImprovedNoise creates an improved noise primitive for the given seed.
func NewImprovedNoise(seed int64) *ImprovedNoise {
	rnd := rand.New(rand.NewSource(seed))
	n := &ImprovedNoise{
		xCoord: rnd.Float64() * 256.0,
		yCoord: rnd.Float64() * 256.0,
	}

	for i := 0; i < 256; i++ {
		n.permutations[i] = i
	}
	for i := 0; i < 256; i++ {
		j := rnd.Intn(256-i) + i
		n.permutations[i], n.permutations[j] = n.permutations[j], n.permutations[i]
		n.permutations[i+256] = n.permutations[i]
	}
	return n
}

func grad2d(hash int, x, y float64) float64 {
	i := hash & 15
	return grad2X[i]*x + grad2Y[i]*y
}

// floorToInt floors d, also for negative values.
func floorToInt(d float64) int {
	i := int(d)
	if d < float64(i) {
		i--
	}
	return i
}

// Noise2D returns improved noise in [0,1].
func (n *ImprovedNoise) Noise2D(x, y float64) float64 {
	fx := x + n.xCoord
	flx := floorToInt(fx)
	permX := flx & 255
	fx -= float64(flx)

	fy := y + n.yCoord
	fly := floorToInt(fy)
	permY := fly & 255
	fy -= float64(fly)

	a := n.permutations[permX] + permY
	b := n.permutations[permX+1] + permY

	d0 := lerp(grad2d(n.permutations[a], fx, fy), grad2d(n.permutations[b], fx-1, fy), fade(fx))
	d1 := lerp(grad2d(n.permutations[a+1], fx, fy-1), grad2d(n.permutations[b+1], fx-1, fy-1), fade(fx))
	return clamp01((lerp(d0, d1, fade(fy)) + 1.0) / 2.0)
}
