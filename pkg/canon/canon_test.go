package canon

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/twisty/pkg/assemble"
	"github.com/chazu/twisty/pkg/mjcf"
)

func raw(t *testing.T) *mjcf.Document {
	t.Helper()
	r, err := assemble.Build(assemble.DefaultOptions())
	require.NoError(t, err)
	return r.Document
}

func TestCanonicalizeTextures(t *testing.T) {
	c, err := Canonicalize(raw(t), DefaultOptions())
	require.NoError(t, err)

	for _, tex := range c.Asset.Textures() {
		assert.Empty(t, tex.Name)
		assert.Empty(t, tex.File.Digest)
	}
	files := map[string]bool{}
	for _, tex := range c.Asset.Textures() {
		files[tex.File.String()] = true
	}
	assert.True(t, files["blue_red.png"])
	assert.True(t, files["red.png"])
	assert.True(t, files["green_orange_yellow.png"])
	assert.False(t, files["white_yellow.png"])
}

func TestCanonicalizeStripsNames(t *testing.T) {
	c, err := Canonicalize(raw(t), DefaultOptions())
	require.NoError(t, err)

	for _, l := range c.Worldbody.Lights {
		assert.Empty(t, l.Name)
	}
	for _, b := range mjcf.Bodies(c) {
		assert.NotEmpty(t, b.Name)
		for _, g := range b.Geoms {
			assert.Empty(t, g.Name)
		}
		for _, j := range b.Joints {
			assert.Equal(t, b.Name, j.Name)
		}
	}
}

func TestCanonicalizeHoistsSyntheticClass(t *testing.T) {
	c, err := Canonicalize(raw(t), DefaultOptions())
	require.NoError(t, err)

	top := c.Default
	assert.Empty(t, top.Class)
	require.NotNil(t, top.Geom)
	assert.InDelta(t, assemble.TotalMass/assemble.BodyCount, *top.Geom.Mass, 1e-15)
	require.NotNil(t, top.Motor)
	require.Len(t, top.Children, 2)
	assert.Equal(t, "cubelet", top.Children[0].Class)
	assert.Equal(t, "core", top.Children[1].Class)
	assert.Nil(t, top.Find(mjcf.SyntheticClass))

	out, err := mjcf.Marshal(c, mjcf.DefaultFormat)
	require.NoError(t, err)
	assert.NotContains(t, string(out), `class="/"`)
}

func TestCanonicalizeOrdersAssets(t *testing.T) {
	c, err := Canonicalize(raw(t), DefaultOptions())
	require.NoError(t, err)

	rank := map[mjcf.Kind]int{mjcf.KindTexture: 0, mjcf.KindMaterial: 1, mjcf.KindMesh: 2}
	last := 0
	for _, it := range c.Asset.Items {
		r := rank[it.Kind()]
		assert.GreaterOrEqual(t, r, last, "%s declared after a later band", it.Kind())
		last = r
	}

	textures := c.Asset.Textures()
	assert.Equal(t, "skybox", textures[0].Type)
	materials := c.Asset.Materials()
	for i, m := range materials {
		assert.Equal(t, textures[i+1].Identity(), m.Texture, "bands keep declaration order")
	}
}

func TestCanonicalizeKeepsInput(t *testing.T) {
	d := raw(t)
	before, err := mjcf.Marshal(d, mjcf.DefaultFormat)
	require.NoError(t, err)

	_, err = Canonicalize(d, DefaultOptions())
	require.NoError(t, err)

	after, err := mjcf.Marshal(d, mjcf.DefaultFormat)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestCanonicalizeIsIdempotent(t *testing.T) {
	once, err := Canonicalize(raw(t), DefaultOptions())
	require.NoError(t, err)
	twice, err := Canonicalize(once, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, once, twice)

	text, err := Render(once, DefaultOptions())
	require.NoError(t, err)
	parsed, err := mjcf.Unmarshal(text)
	require.NoError(t, err)
	again, err := Render(parsed, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, string(text), string(again))
}

func TestRenderFromRawText(t *testing.T) {
	rawText, err := mjcf.Marshal(raw(t), mjcf.DefaultFormat)
	require.NoError(t, err)
	assert.Contains(t, string(rawText), `class="/"`)

	parsed, err := mjcf.Unmarshal(rawText)
	require.NoError(t, err)
	fromText, err := Render(parsed, DefaultOptions())
	require.NoError(t, err)

	direct, err := Render(raw(t), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, string(direct), string(fromText))
}

func TestRenderIsDeterministic(t *testing.T) {
	a, err := Render(raw(t), DefaultOptions())
	require.NoError(t, err)
	b, err := Render(raw(t), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRenderContent(t *testing.T) {
	out, err := Render(raw(t), DefaultOptions())
	require.NoError(t, err)
	s := string(out)

	for _, want := range []string{
		`<mujoco model="Cube 3x3x3">`,
		`<compiler autolimits="true" angle="radian" texturedir="assets"/>`,
		`<option timestep="0.01" integrator="implicitfast"/>`,
		`<size memory="600K"/>`,
		`<headlight diffuse="0.6 0.6 0.6" ambient="0.3 0.3 0.3" specular="0 0 0"/>`,
		`<global azimuth="180" elevation="-20"/>`,
		`<geom mass="0.00253704"/>`,
		`<motor ctrlrange="-0.05 0.05"/>`,
		`<joint type="ball" armature="0.0001" damping="0.0005" frictionloss="0.001"/>`,
		`<texture type="skybox" builtin="gradient" width="512" height="512"/>`,
		`<texture file="blue_red.png" gridsize="3 4" gridlayout=".....RD....." rgb1="0 0 0"/>`,
		`<material name="blue_red" texture="blue_red"/>`,
		`<light pos="0 0 1"/>`,
		`<body name="pX">`,
		`<joint name="pX" type="hinge" axis="1 0 0"/>`,
		`<geom material="red" pos="0.019 0 0"/>`,
		`<motor name="red" joint="pX"/>`,
	} {
		assert.Contains(t, s, want)
	}
	assert.NotContains(t, s, "unnamed")
	assert.NotContains(t, s, "cubelet_pX")
	assert.Less(t, strings.Index(s, "<texture"), strings.Index(s, "<material"))
	assert.Less(t, strings.LastIndex(s, "<material"), strings.Index(s, "<mesh"))
}

func TestCanonicalizeMalformed(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*mjcf.Document)
	}{
		{"no compiler", func(d *mjcf.Document) { d.Compiler = nil }},
		{"no default", func(d *mjcf.Document) { d.Default = nil }},
		{"no asset", func(d *mjcf.Document) { d.Asset = nil }},
		{"nested wrapper", func(d *mjcf.Document) {
			w := d.Default.Children[0]
			w.Children[0].Children = append(w.Children[0].Children, &mjcf.Default{Class: mjcf.SyntheticClass})
		}},
		{"conflicting geom default", func(d *mjcf.Document) {
			d.Default.Geom = &mjcf.Geom{Mass: mjcf.Float(1)}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := raw(t)
			tt.mutate(d)
			_, err := Canonicalize(d, DefaultOptions())
			assert.ErrorIs(t, err, ErrMalformedDocument)
		})
	}

	_, err := Canonicalize(nil, DefaultOptions())
	assert.ErrorIs(t, err, ErrMalformedDocument)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cube.xml")

	require.NoError(t, WriteFile(path, raw(t), DefaultOptions()))
	got, err := os.ReadFile(path)
	require.NoError(t, err)

	want, err := Render(raw(t), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, want, got)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")
}

func TestWriteFileMalformedLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cube.xml")

	d := raw(t)
	d.Asset = nil
	err := WriteFile(path, d, DefaultOptions())
	require.ErrorIs(t, err, ErrMalformedDocument)

	_, statErr := os.Stat(path)
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}

func TestWriteFileMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "cube.xml")
	err := WriteFile(path, raw(t), DefaultOptions())
	assert.ErrorIs(t, err, ErrResourceWrite)
}

func TestCanonicalizeTextureDir(t *testing.T) {
	tests := []struct {
		name   string
		docDir string
		opts   string
		want   string
	}{
		{"options win", "old", "tex", "tex"},
		{"document kept", "tex", "", "tex"},
		{"both empty", "", "", "assets"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := raw(t)
			d.Compiler.TextureDir = tt.docDir
			c, err := Canonicalize(d, Options{AssetsDir: tt.opts, Format: mjcf.DefaultFormat})
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Compiler.TextureDir)
		})
	}
}
