package palette

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Loader reads palettes from <dir>/<name>.json and caches them by name.
type Loader struct {
	dir   string
	cache map[string]*Palette
}

func NewLoader(dir string) *Loader {
	return &Loader{
		dir:   dir,
		cache: make(map[string]*Palette),
	}
}

// Load returns the named palette with its parent chain merged in and all
// "@key" references resolved. The parent "builtin" refers to Default.
func (l *Loader) Load(name string) (*Palette, error) {
	return l.load(name, 0)
}

func (l *Loader) load(name string, depth int) (*Palette, error) {
	if depth > 16 {
		return nil, fmt.Errorf("palette '%s': parent chain too deep", name)
	}
	if p, ok := l.cache[name]; ok {
		return p, nil
	}

	path := filepath.Join(l.dir, name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read palette file: %w", err)
	}

	var p Palette
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("could not unmarshal palette json: %w", err)
	}
	if p.Colors == nil {
		p.Colors = make(map[string]string)
	}

	if p.Parent != "" {
		var parent *Palette
		if p.Parent == "builtin" {
			parent = Default()
		} else {
			parent, err = l.load(p.Parent, depth+1)
			if err != nil {
				return nil, fmt.Errorf("could not load parent palette '%s': %w", p.Parent, err)
			}
		}
		for key, val := range parent.Colors {
			if _, ok := p.Colors[key]; !ok {
				p.Colors[key] = val
			}
		}
		if p.Light == nil {
			p.Light = parent.Light
		}
	}

	for key, val := range p.Colors {
		p.Colors[key] = Resolve(val, &p)
	}
	l.cache[name] = &p
	return &p, nil
}

// Resolve follows "@key" references through p, giving up after ten hops.
func Resolve(value string, p *Palette) string {
	for i := 0; i < 10 && strings.HasPrefix(value, "@"); i++ {
		key := strings.TrimPrefix(value, "@")
		resolved, ok := p.Colors[key]
		if !ok {
			break
		}
		value = resolved
	}
	return value
}
