package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/twisty/pkg/engine"
	"github.com/chazu/twisty/pkg/mjcf"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	o := Default()
	require.NoError(t, o.Validate())
	assert.Equal(t, "Cube 3x3x3", o.Name)
	assert.Equal(t, "cube_3x3x3.xml", o.Output)
	assert.Equal(t, "assets", o.AssetsDir)
	assert.True(t, o.Actuators)
	assert.Equal(t, mjcf.DefaultFormat, o.Canon().Format)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "cube.yaml", `
name: Speed Cube
actuators: false
precision: 8
`)
	o, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Speed Cube", o.Name)
	assert.False(t, o.Actuators)
	assert.Equal(t, 8, o.Precision)
	assert.Equal(t, "cube_3x3x3.xml", o.Output, "unset fields keep defaults")
}

func TestLoadEmptyYAML(t *testing.T) {
	o, err := Load(writeFile(t, "empty.yml", ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), o)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "cube.toml", `
output = "build/cube.xml"
assets_dir = "tex"
zero_threshold = 1e-9
texture_resolution = 64
`)
	o, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "build/cube.xml", o.Output)
	assert.Equal(t, "tex", o.AssetsDir)
	assert.Equal(t, 1e-9, o.ZeroThreshold)
	assert.Equal(t, 64, o.TextureResolution)
	assert.Equal(t, "tex", o.Canon().AssetsDir)
	assert.Equal(t, "tex", o.Assemble().AssetsDir)
}

func TestLoadRecipe(t *testing.T) {
	path := writeFile(t, "cube.zy", `(cube :name "Scripted" :actuators false)`)
	o, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Scripted", o.Name)
	assert.False(t, o.Assemble().Actuators)
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"unknown yaml field", "a.yaml", "colour: red\n"},
		{"unknown toml field", "a.toml", "colour = \"red\"\n"},
		{"bad yaml", "a.yaml", "name: [\n"},
		{"precision too high", "a.yaml", "precision: 30\n"},
		{"negative threshold", "a.toml", "zero_threshold = -1.0\n"},
		{"output not xml", "a.yaml", "output: cube.txt\n"},
		{"empty name", "a.yaml", "name: \"\"\n"},
		{"bad recipe", "a.zy", "(cube :bogus 1)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	_, err := Load(writeFile(t, "cube.json", "{}"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestApplyRecipe(t *testing.T) {
	o := Default()
	o.ApplyRecipe(nil)
	assert.Equal(t, Default(), o)

	res := 32
	o.ApplyRecipe(&engine.Recipe{TextureResolution: &res})
	assert.Equal(t, 32, o.TextureResolution)
	assert.Equal(t, Default().Name, o.Name)
}

func TestLoadShippedExamples(t *testing.T) {
	y, err := Load(filepath.Join("..", "..", "examples", "twisty.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), y)

	z, err := Load(filepath.Join("..", "..", "examples", "cube.zy"))
	require.NoError(t, err)
	assert.False(t, z.Actuators)
	assert.Equal(t, "cube_passive.xml", z.Output)
	assert.Equal(t, 64, z.TextureResolution)
	assert.Equal(t, 1e-6, z.ZeroThreshold)
}
