package meshcache

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"planetgen/internal/meshing"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrCorrupt is returned for payloads that do not decode to a mesh.
var ErrCorrupt = errors.New("meshcache: corrupt payload")

var magic = [4]byte{'P', 'G', 'M', '1'}

// Encode serialises positions and submesh indices, little-endian. Normals
// and bounds are derived data and are recomputed by Decode.
func Encode(m *meshing.Mesh) []byte {
	size := 4 + 4*(1+meshing.NumGroups) + 12*len(m.Vertices)
	for _, g := range m.Submeshes {
		size += 4 * len(g)
	}
	buf := make([]byte, 0, size)

	buf = append(buf, magic[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(m.Vertices)))
	for _, g := range m.Submeshes {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(g)))
	}
	for _, v := range m.Vertices {
		for _, c := range v {
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(c))
		}
	}
	for _, g := range m.Submeshes {
		for _, idx := range g {
			buf = binary.LittleEndian.AppendUint32(buf, idx)
		}
	}
	return buf
}

// Decode is the inverse of Encode. Every index is checked against the
// vertex count.
func Decode(data []byte) (*meshing.Mesh, error) {
	if len(data) < 4 || !bytes.Equal(data[:4], magic[:]) {
		return nil, fmt.Errorf("%w: bad magic", ErrCorrupt)
	}
	r := data[4:]
	next := func() (uint32, bool) {
		if len(r) < 4 {
			return 0, false
		}
		v := binary.LittleEndian.Uint32(r)
		r = r[4:]
		return v, true
	}

	nv, ok := next()
	if !ok {
		return nil, fmt.Errorf("%w: truncated header", ErrCorrupt)
	}
	var lens [meshing.NumGroups]uint32
	total := uint64(3) * uint64(nv)
	for g := range lens {
		if lens[g], ok = next(); !ok {
			return nil, fmt.Errorf("%w: truncated header", ErrCorrupt)
		}
		if lens[g]%3 != 0 {
			return nil, fmt.Errorf("%w: group %d has %d indices", ErrCorrupt, g, lens[g])
		}
		total += uint64(lens[g])
	}
	if uint64(len(r)) != 4*total {
		return nil, fmt.Errorf("%w: expected %d payload bytes, got %d", ErrCorrupt, 4*total, len(r))
	}

	s := &meshing.Surface{Vertices: make([]mgl32.Vec3, nv)}
	for i := range s.Vertices {
		for c := range 3 {
			bits, _ := next()
			s.Vertices[i][c] = math.Float32frombits(bits)
		}
	}
	for g := range s.Groups {
		s.Groups[g] = make([]uint32, lens[g])
		for i := range s.Groups[g] {
			idx, _ := next()
			if idx >= nv {
				return nil, fmt.Errorf("%w: index %d out of range", ErrCorrupt, idx)
			}
			s.Groups[g][i] = idx
		}
	}
	return meshing.Assemble(s), nil
}
