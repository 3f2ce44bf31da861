package palette

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".json"), []byte(content), 0644))
}

func TestLoadSimplePalette(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "mono", `{ "colors": { "core": "#ffffff", "dirt": "#000" } }`)

	p, err := NewLoader(dir).Load("mono")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, p.Color(KeyCore, color.RGBA{}))
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, p.Color(KeyDirt, color.RGBA{1, 2, 3, 255}))

	fallback := color.RGBA{9, 9, 9, 255}
	assert.Equal(t, fallback, p.Color(KeyGrass, fallback), "missing grass should fall back")
}

func TestLoadChildPalette(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "base", `{ "colors": { "core": "#102030", "grass": "#00ff00" }, "light": [0, 1, 0] }`)
	writeTestFile(t, dir, "child", `{ "parent": "base", "colors": { "grass": "#0000ff" } }`)

	p, err := NewLoader(dir).Load("child")
	require.NoError(t, err)
	assert.Equal(t, "#102030", p.Colors[KeyCore], "core should be inherited")
	assert.Equal(t, "#0000ff", p.Colors[KeyGrass], "grass should be overridden")
	require.NotNil(t, p.Light, "light should be inherited")
	assert.Equal(t, [3]float32{0, 1, 0}, *p.Light)
}

func TestBuiltinParentAndReferences(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "ref", `{ "parent": "builtin", "colors": { "grass": "@dirt" } }`)

	p, err := NewLoader(dir).Load("ref")
	require.NoError(t, err)
	assert.Equal(t, Default().Colors[KeyDirt], p.Colors[KeyGrass], "grass should resolve to builtin dirt")
}

func TestCache(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "mono", `{ "colors": { "core": "#fff" } }`)
	l := NewLoader(dir)

	p1, err := l.Load("mono")
	require.NoError(t, err)
	p2, err := l.Load("mono")
	require.NoError(t, err)
	assert.Same(t, p1, p2, "expected the cached palette instance")
}

func TestMissingParent(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "orphan", `{ "parent": "nowhere" }`)

	_, err := NewLoader(dir).Load("orphan")
	assert.Error(t, err)
}

func TestParseHex(t *testing.T) {
	cases := map[string]color.RGBA{
		"#ff8000": {255, 128, 0, 255},
		"f80":     {255, 136, 0, 255},
	}
	for in, want := range cases {
		got, err := ParseHex(in)
		if assert.NoError(t, err, in) {
			assert.Equal(t, want, got, in)
		}
	}
	_, err := ParseHex("#12")
	assert.Error(t, err, "short colour")
}
