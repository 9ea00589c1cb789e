package assemble

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/twisty/pkg/mjcf"
)

func build(t *testing.T, opts Options) Result {
	t.Helper()
	r, err := Build(opts)
	require.NoError(t, err)
	require.NotNil(t, r.Document)
	return r
}

func TestBuildDeclaresEveryResourceOnce(t *testing.T) {
	r := build(t, DefaultOptions())

	assert.Equal(t, 26, r.Catalog.Len())
	assert.Len(t, r.Document.Asset.Textures(), 27) // skybox + 26
	assert.Len(t, r.Document.Asset.Materials(), 26)
	assert.Len(t, r.Document.Asset.Meshes(), 1)

	for _, key := range []string{"white_yellow", "orange_red", "blue_green", "orange_red_white", "blue_green_yellow"} {
		assert.False(t, r.Catalog.Has(key), "forbidden resource %s declared", key)
	}
	assert.True(t, r.Catalog.Has("blue_red"))
	assert.True(t, r.Catalog.Has("green_orange_yellow"))
}

func TestBuildIsStructurallyValid(t *testing.T) {
	r := build(t, DefaultOptions())
	assert.Empty(t, mjcf.Validate(r.Document))
}

func TestBuildMass(t *testing.T) {
	r := build(t, DefaultOptions())
	bodies := mjcf.Bodies(r.Document)
	assert.Len(t, bodies, BodyCount)

	total, err := r.Document.TotalMass()
	require.NoError(t, err)
	assert.InDelta(t, TotalMass, total, 1e-9)
	assert.Equal(t, math.Round(TotalMass*1e6), math.Round(total*1e6))
}

func TestBuildActuators(t *testing.T) {
	r := build(t, DefaultOptions())
	require.Len(t, r.Document.Actuator, 6)
	wrapper := r.Document.Default.Children[0]
	require.NotNil(t, wrapper.Motor)
	assert.Equal(t, [2]float64{-CtrlLimit, CtrlLimit}, *wrapper.Motor.CtrlRange)

	opts := DefaultOptions()
	opts.Actuators = false
	r = build(t, opts)
	assert.Empty(t, r.Document.Actuator)
	assert.Nil(t, r.Document.Default.Children[0].Motor)
}

func TestBuildRawForm(t *testing.T) {
	r := build(t, DefaultOptions())
	d := r.Document

	require.Len(t, d.Default.Children, 1)
	assert.Equal(t, mjcf.SyntheticClass, d.Default.Children[0].Class)
	assert.Equal(t, lightName, d.Worldbody.Lights[0].Name)

	_, isMesh := d.Asset.Items[0].(*mjcf.Mesh)
	assert.True(t, isMesh, "mesh is declared first")

	for _, tex := range d.Asset.Textures()[1:] {
		assert.NotEmpty(t, tex.Name)
		assert.NotEmpty(t, tex.File.Digest)
		assert.True(t, strings.HasPrefix(tex.File.String(), tex.Name+"-"))
	}
}

func TestBuildJointTypes(t *testing.T) {
	r := build(t, DefaultOptions())
	d := r.Document
	for _, p := range mjcf.Placements(d) {
		for _, j := range p.Body.Joints {
			want := "ball"
			if len(j.Name) == 2 {
				want = "hinge"
			}
			assert.Equal(t, want, d.JointType(j, p.Class), "joint %s", j.Name)
		}
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	a := build(t, DefaultOptions())
	b := build(t, DefaultOptions())
	xa, err := mjcf.Marshal(a.Document, mjcf.DefaultFormat)
	require.NoError(t, err)
	xb, err := mjcf.Marshal(b.Document, mjcf.DefaultFormat)
	require.NoError(t, err)
	assert.Equal(t, string(xa), string(xb))
}
