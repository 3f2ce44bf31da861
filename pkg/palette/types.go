package palette

import (
	"fmt"
	"image/color"
	"strings"
)

// Palette maps submesh and scene names to colours. A colour is either a hex
// string ("#8b5a2b") or a reference to another key ("@dirt").
type Palette struct {
	Parent string            `json:"parent"`
	Colors map[string]string `json:"colors"`
	// Light is the direction towards the light used for shading.
	Light *[3]float32 `json:"light"`
}

// Well-known palette keys.
const (
	KeyCore       = "core"
	KeyDirt       = "dirt"
	KeyGrass      = "grass"
	KeyBackground = "background"
)

// Default is the built-in palette.
func Default() *Palette {
	return &Palette{
		Colors: map[string]string{
			KeyCore:       "#d9542b",
			KeyDirt:       "#8b5a2b",
			KeyGrass:      "#4f9a3a",
			KeyBackground: "#10141c",
		},
		Light: &[3]float32{0.4, 0.7, 0.6},
	}
}

// Color returns the colour stored under key, falling back to fallback when
// the key is missing or cannot be parsed.
func (p *Palette) Color(key string, fallback color.RGBA) color.RGBA {
	if p == nil {
		return fallback
	}
	c, err := ParseHex(p.Colors[key])
	if err != nil {
		return fallback
	}
	return c
}

// ParseHex parses "#rrggbb" or "#rgb".
func ParseHex(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(s, "#")
	var r, g, b uint8
	switch len(s) {
	case 6:
		if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
			return color.RGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
		}
	case 3:
		if _, err := fmt.Sscanf(s, "%1x%1x%1x", &r, &g, &b); err != nil {
			return color.RGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
		}
		r, g, b = r*17, g*17, b*17
	default:
		return color.RGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}
