package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"planetgen/internal/meshing"

	"github.com/klauspost/compress/zstd"
)

// WriteOBJ writes m as Wavefront OBJ: one position and one normal per
// vertex, then one group with its own material name per submesh. Empty
// submeshes still get a group line so consumers see all three.
func WriteOBJ(w io.Writer, m *meshing.Mesh) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# planetgen mesh: %d vertices, %d triangles\n", len(m.Vertices), m.TriangleCount())
	fmt.Fprintln(bw, "o planet")
	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "v %s %s %s\n", formatFloat(v[0]), formatFloat(v[1]), formatFloat(v[2]))
	}
	for _, n := range m.Normals {
		fmt.Fprintf(bw, "vn %s %s %s\n", formatFloat(n[0]), formatFloat(n[1]), formatFloat(n[2]))
	}

	for g := range meshing.NumGroups {
		name := meshing.Group(g).String()
		fmt.Fprintf(bw, "g %s\nusemtl %s\n", name, name)
		idx := m.Submeshes[g]
		for t := 0; t+2 < len(idx); t += 3 {
			// OBJ indices are 1-based.
			a, b, c := idx[t]+1, idx[t+1]+1, idx[t+2]+1
			fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n", a, a, b, b, c, c)
		}
	}
	return bw.Flush()
}

// WriteOBJFile writes m to path, zstd-compressed when path ends in ".zst".
func WriteOBJFile(path string, m *meshing.Mesh) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	if !strings.HasSuffix(path, ".zst") {
		return WriteOBJ(f, m)
	}

	enc, err := zstd.NewWriter(f)
	if err != nil {
		return fmt.Errorf("zstd writer: %w", err)
	}
	if err := WriteOBJ(enc, m); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

func formatFloat(v float32) string {
	return strconv.FormatFloat(float64(v), 'f', -1, 32)
}
