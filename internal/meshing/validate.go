package meshing

import (
	"errors"
	"fmt"
)

// ErrMalformedTable reports lookup data the extractor cannot trust.
var ErrMalformedTable = errors.New("meshing: malformed lookup table")

// ValidateTables checks that corners are distinct unit-cube corners, every
// edge joins two adjacent corners, and every triangulation row holds whole
// triangles of edge indices followed only by NoEdge.
func ValidateTables(t Tables) error {
	if t.Corners == nil || t.Edges == nil || t.Triangulation == nil {
		return fmt.Errorf("%w: missing table", ErrMalformedTable)
	}

	seen := make(map[[3]int]bool, 8)
	for i, c := range t.Corners {
		if !isUnitCorner(c) {
			return fmt.Errorf("%w: corner %d = %v outside unit cube", ErrMalformedTable, i, c)
		}
		if seen[c] {
			return fmt.Errorf("%w: corner %d = %v repeated", ErrMalformedTable, i, c)
		}
		seen[c] = true
	}

	for e, pair := range t.Edges {
		a, b := pair[0], pair[1]
		if !isUnitCorner(a) || !isUnitCorner(b) {
			return fmt.Errorf("%w: edge %d endpoints %v-%v outside unit cube", ErrMalformedTable, e, a, b)
		}
		diff := 0
		for axis := range 3 {
			if a[axis] != b[axis] {
				diff++
			}
		}
		if diff != 1 {
			return fmt.Errorf("%w: edge %d endpoints %v-%v are not adjacent", ErrMalformedTable, e, a, b)
		}
	}

	for cfg, row := range t.Triangulation {
		n := 0
		for n < len(row) && row[n] != NoEdge {
			if row[n] < 0 || int(row[n]) >= len(t.Edges) {
				return fmt.Errorf("%w: configuration %d slot %d = %d", ErrMalformedTable, cfg, n, row[n])
			}
			n++
		}
		if n%3 != 0 || n > 15 {
			return fmt.Errorf("%w: configuration %d has %d edge slots", ErrMalformedTable, cfg, n)
		}
		for s := n; s < len(row); s++ {
			if row[s] != NoEdge {
				return fmt.Errorf("%w: configuration %d slot %d follows terminator", ErrMalformedTable, cfg, s)
			}
		}
	}
	return nil
}

func isUnitCorner(c [3]int) bool {
	for _, v := range c {
		if v != 0 && v != 1 {
			return false
		}
	}
	return true
}
