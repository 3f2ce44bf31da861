package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"planetgen/internal/meshing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoTriangles() *meshing.Mesh {
	s := &meshing.Surface{Vertices: []mgl32.Vec3{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {0, 1.5, 1},
	}}
	s.Groups[meshing.GroupCore] = []uint32{0, 1, 2}
	s.Groups[meshing.GroupGrass] = []uint32{3, 4, 5}
	return meshing.Assemble(s)
}

func countPrefix(text, prefix string) int {
	n := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, prefix) {
			n++
		}
	}
	return n
}

func TestWriteOBJ(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOBJ(&buf, twoTriangles()))
	out := buf.String()

	assert.Equal(t, 6, countPrefix(out, "v "))
	assert.Equal(t, 6, countPrefix(out, "vn "))
	assert.Equal(t, 3, countPrefix(out, "g "))
	assert.Equal(t, 2, countPrefix(out, "f "))
	assert.Contains(t, out, "v 0 1.5 1\n")
	assert.Contains(t, out, "g grass\nusemtl grass\nf 4//4 5//5 6//6\n")
	assert.Contains(t, out, "g dirt\nusemtl dirt\ng grass")
}

func TestWriteOBJFileCompressed(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "planet.obj")
	packed := filepath.Join(dir, "planet.obj.zst")

	m := twoTriangles()
	require.NoError(t, WriteOBJFile(plain, m))
	require.NoError(t, WriteOBJFile(packed, m))

	want, err := os.ReadFile(plain)
	require.NoError(t, err)
	raw, err := os.ReadFile(packed)
	require.NoError(t, err)

	dec, err := zstd.NewReader(nil)
	require.NoError(t, err)
	defer dec.Close()
	got, err := dec.DecodeAll(raw, nil)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))
}

func TestWriteOBJFileBadPath(t *testing.T) {
	err := WriteOBJFile(filepath.Join(t.TempDir(), "missing", "planet.obj"), twoTriangles())
	assert.Error(t, err)
}
