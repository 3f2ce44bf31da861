package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"sort"

	"planetgen/internal/meshing"
	"planetgen/pkg/palette"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// ThumbnailOptions configures RenderThumbnail.
type ThumbnailOptions struct {
	Size int
	// Yaw and Pitch rotate the mesh (radians) before the orthographic
	// projection down the -Z axis.
	Yaw, Pitch float32
	Palette    *palette.Palette
	Caption    string
}

// DefaultThumbnailOptions views the planet slightly from above.
func DefaultThumbnailOptions(size int) ThumbnailOptions {
	return ThumbnailOptions{
		Size:    size,
		Yaw:     mgl32.DegToRad(35),
		Pitch:   mgl32.DegToRad(-25),
		Palette: palette.Default(),
	}
}

var fallbackColors = [meshing.NumGroups]color.RGBA{
	{0xd9, 0x54, 0x2b, 0xff},
	{0x8b, 0x5a, 0x2b, 0xff},
	{0x4f, 0x9a, 0x3a, 0xff},
}

type projected struct {
	pts   [3]mgl32.Vec2
	depth float32
	col   color.RGBA
}

// RenderThumbnail rasterises m with flat two-sided Lambert shading, drawing
// triangles back to front.
func RenderThumbnail(m *meshing.Mesh, opts ThumbnailOptions) *image.RGBA {
	size := opts.Size
	if size <= 0 {
		size = 256
	}
	pal := opts.Palette
	if pal == nil {
		pal = palette.Default()
	}

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	bg := pal.Color(palette.KeyBackground, color.RGBA{0x10, 0x14, 0x1c, 0xff})
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	light := mgl32.Vec3{0.4, 0.7, 0.6}
	if pal.Light != nil {
		light = mgl32.Vec3(*pal.Light)
	}
	if light.Len() > 0 {
		light = light.Normalize()
	}

	rot := mgl32.Rotate3DX(opts.Pitch).Mul3(mgl32.Rotate3DY(opts.Yaw))

	// The bounding sphere keeps the scale stable under rotation.
	center := m.Min.Add(m.Max).Mul(0.5)
	radius := m.Max.Sub(m.Min).Len() / 2
	if radius == 0 {
		radius = 1
	}
	scale := float32(size) * 0.45 / radius
	half := float32(size) / 2

	tris := make([]projected, 0, m.TriangleCount())
	for g := range meshing.NumGroups {
		group := meshing.Group(g)
		base := pal.Color(group.String(), fallbackColors[g])
		for t := range m.GroupTriangleCount(group) {
			a, b, c := m.Triangle(group, t)
			ra := rot.Mul3x1(a.Sub(center))
			rb := rot.Mul3x1(b.Sub(center))
			rc := rot.Mul3x1(c.Sub(center))

			n := rb.Sub(ra).Cross(rc.Sub(ra))
			if n.Len() == 0 {
				continue
			}
			lambert := float32(math.Abs(float64(n.Normalize().Dot(rot.Mul3x1(light)))))

			tris = append(tris, projected{
				pts: [3]mgl32.Vec2{
					{half + ra[0]*scale, half - ra[1]*scale},
					{half + rb[0]*scale, half - rb[1]*scale},
					{half + rc[0]*scale, half - rc[1]*scale},
				},
				depth: (ra[2] + rb[2] + rc[2]) / 3,
				col:   shade(base, 0.3+0.7*lambert),
			})
		}
	}

	// Smaller z is further from a viewer looking down -Z.
	sort.SliceStable(tris, func(i, j int) bool { return tris[i].depth < tris[j].depth })

	z := vector.NewRasterizer(1, 1)
	for _, t := range tris {
		fillTriangle(z, img, t)
	}

	if opts.Caption != "" {
		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(color.RGBA{0xee, 0xee, 0xee, 0xff}),
			Face: basicfont.Face7x13,
			Dot:  fixed.P(8, size-8),
		}
		d.DrawString(opts.Caption)
	}
	return img
}

// fillTriangle rasterises t inside its own bounding box so the cost scales
// with the triangle, not the image.
func fillTriangle(z *vector.Rasterizer, img *image.RGBA, t projected) {
	minX, minY := t.pts[0][0], t.pts[0][1]
	maxX, maxY := minX, minY
	for _, p := range t.pts[1:] {
		minX, maxX = min(minX, p[0]), max(maxX, p[0])
		minY, maxY = min(minY, p[1]), max(maxY, p[1])
	}
	r := image.Rect(int(math.Floor(float64(minX))), int(math.Floor(float64(minY))),
		int(math.Ceil(float64(maxX)))+1, int(math.Ceil(float64(maxY)))+1)
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return
	}

	ox, oy := float32(r.Min.X), float32(r.Min.Y)
	z.Reset(r.Dx(), r.Dy())
	z.MoveTo(t.pts[0][0]-ox, t.pts[0][1]-oy)
	z.LineTo(t.pts[1][0]-ox, t.pts[1][1]-oy)
	z.LineTo(t.pts[2][0]-ox, t.pts[2][1]-oy)
	z.ClosePath()
	z.Draw(img, r, image.NewUniform(t.col), image.Point{})
}

func shade(c color.RGBA, k float32) color.RGBA {
	k = min(max(k, 0), 1)
	return color.RGBA{
		R: uint8(float32(c.R) * k),
		G: uint8(float32(c.G) * k),
		B: uint8(float32(c.B) * k),
		A: c.A,
	}
}

// WriteThumbnail renders m and saves it as a PNG.
func WriteThumbnail(path string, m *meshing.Mesh, opts ThumbnailOptions) (err error) {
	img := RenderThumbnail(m, opts)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
