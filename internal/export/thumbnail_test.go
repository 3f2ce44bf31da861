package export

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"planetgen/internal/meshing"
	"planetgen/pkg/palette"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func facingTriangle(g meshing.Group) *meshing.Mesh {
	s := &meshing.Surface{Vertices: []mgl32.Vec3{{-1, -1, 0}, {1, -1, 0}, {0, 1, 0}}}
	s.Groups[g] = []uint32{0, 1, 2}
	return meshing.Assemble(s)
}

func TestRenderThumbnailBackgroundAndFill(t *testing.T) {
	opts := ThumbnailOptions{Size: 64, Palette: palette.Default()}
	img := RenderThumbnail(facingTriangle(meshing.GroupCore), opts)

	require.Equal(t, 64, img.Bounds().Dx())
	bg := color.RGBA{0x10, 0x14, 0x1c, 0xff}
	assert.Equal(t, bg, img.RGBAAt(0, 0))

	c := img.RGBAAt(32, 32)
	assert.NotEqual(t, bg, c)
	// Core is the reddest colour in the palette.
	assert.Greater(t, c.R, c.G)
}

func TestRenderThumbnailEmptyMesh(t *testing.T) {
	img := RenderThumbnail(meshing.Assemble(nil), ThumbnailOptions{Caption: "empty"})
	assert.Equal(t, 256, img.Bounds().Dx())
	assert.Equal(t, color.RGBA{0x10, 0x14, 0x1c, 0xff}, img.RGBAAt(128, 128))
}

func TestShadeClamps(t *testing.T) {
	c := color.RGBA{200, 100, 50, 255}
	assert.Equal(t, c, shade(c, 2))
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, shade(c, -1))
	assert.Equal(t, color.RGBA{100, 50, 25, 255}, shade(c, 0.5))
}

func TestWriteThumbnail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planet.png")
	opts := DefaultThumbnailOptions(96)
	opts.Caption = "core 1"
	require.NoError(t, WriteThumbnail(path, facingTriangle(meshing.GroupGrass), opts))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 96, img.Bounds().Dx())
}
