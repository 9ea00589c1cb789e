// Package assemble composes the generated cubelet tree, its resources and
// the global simulation settings into one raw document.
//
// The raw document mirrors what a generic MJCF builder emits before
// cleanup: textures carry a name and a digest-suffixed file, the light and
// geoms are named, ungrouped defaults sit in a synthetic "/" class and
// assets are interleaved. pkg/canon turns it into the stable form.
package assemble

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/twisty/pkg/cubelet"
	"github.com/chazu/twisty/pkg/hull"
	"github.com/chazu/twisty/pkg/mjcf"
	"github.com/chazu/twisty/pkg/palette"
)

const (
	// TotalMass is the mass of the physical cube in kg.
	TotalMass = 0.0685
	// BodyCount is the number of bodies sharing TotalMass, core included.
	BodyCount = 27
	// CtrlLimit bounds the torque of every center motor.
	CtrlLimit = 0.05
	// TextureExt is the file extension of texture images.
	TextureExt = ".png"

	skyboxName = "//unnamed_texture_0"
	lightName  = "//unnamed_light_0"
)

// Options control assembly.
type Options struct {
	Name      string
	AssetsDir string
	Actuators bool
}

// DefaultOptions returns the options of the reference model.
func DefaultOptions() Options {
	return Options{Name: "Cube 3x3x3", AssetsDir: "assets", Actuators: true}
}

// Result is an assembled document with the resources it declares.
type Result struct {
	Document *mjcf.Document
	Catalog  *palette.Catalog
}

// Build generates the cubelets and assembles the raw document.
func Build(opts Options) (Result, error) {
	root, frag, err := cubelet.Generate(cubelet.Settings{Pitch: cubelet.Pitch, Actuators: opts.Actuators})
	if err != nil {
		return Result{}, fmt.Errorf("assemble: generate: %w", err)
	}

	catalog := palette.NewCatalog()
	for _, t := range frag.Materials {
		if _, err := catalog.Declare(t); err != nil {
			return Result{}, fmt.Errorf("assemble: declare %s: %w", t.Key(), err)
		}
	}

	doc := &mjcf.Document{
		Model: opts.Name,
		Compiler: &mjcf.Compiler{
			Autolimits: true,
			Angle:      "radian",
			TextureDir: opts.AssetsDir,
		},
		Option: &mjcf.Option{Timestep: 0.01, Integrator: "implicitfast"},
		Size:   &mjcf.Size{Memory: "600K"},
		Visual: &mjcf.Visual{
			Headlight: &mjcf.Headlight{
				Diffuse: v3.Vec{X: 0.6, Y: 0.6, Z: 0.6},
				Ambient: v3.Vec{X: 0.3, Y: 0.3, Z: 0.3},
			},
			Global: &mjcf.VisualGlobal{Azimuth: 180, Elevation: -20},
		},
		Statistic: &mjcf.Statistic{Extent: 0.1, Meansize: 0.0087},
		Default:   Defaults(opts.Actuators),
		Asset:     Assets(catalog),
		Worldbody: mjcf.Worldbody{
			Lights: []*mjcf.Light{{Name: lightName, Pos: mjcf.Vec(v3.Vec{Z: 1})}},
			Bodies: []*mjcf.Body{root},
		},
		Actuator: frag.Motors,
	}
	return Result{Document: doc, Catalog: catalog}, nil
}

// Defaults builds the default tree: a synthetic wrapper class holding the
// shared geom mass and motor range, with the cubelet and core classes
// below it.
func Defaults(actuators bool) *mjcf.Default {
	wrapper := &mjcf.Default{
		Class: mjcf.SyntheticClass,
		Geom:  &mjcf.Geom{Mass: mjcf.Float(TotalMass / BodyCount)},
		Children: []*mjcf.Default{
			{
				Class: cubelet.CubeletClass,
				Joint: &mjcf.Joint{
					Type:         "ball",
					Armature:     mjcf.Float(1e-4),
					Damping:      mjcf.Float(5e-4),
					Frictionloss: mjcf.Float(1e-3),
				},
				Geom: &mjcf.Geom{Type: "mesh", Mesh: cubelet.MeshName, Condim: mjcf.Int(1)},
			},
			{
				Class: cubelet.CoreClass,
				Geom: &mjcf.Geom{
					Type:        "sphere",
					Size:        []float64{0.01},
					Contype:     mjcf.Int(0),
					Conaffinity: mjcf.Int(0),
					Group:       mjcf.Int(4),
				},
			},
		},
	}
	if actuators {
		wrapper.Motor = &mjcf.Motor{CtrlRange: &[2]float64{-CtrlLimit, CtrlLimit}}
	}
	return &mjcf.Default{Children: []*mjcf.Default{wrapper}}
}

// Assets declares the cubelet mesh, the skybox and one texture/material
// pair per catalog resource, in that order.
func Assets(c *palette.Catalog) *mjcf.AssetSection {
	a := &mjcf.AssetSection{}
	a.Items = append(a.Items,
		&mjcf.Mesh{Name: cubelet.MeshName, Vertex: hull.Flatten(hull.Vertices())},
		&mjcf.Texture{Name: skyboxName, Type: "skybox", Builtin: "gradient", Width: 512, Height: 512},
	)
	for _, r := range c.Resources() {
		a.Items = append(a.Items,
			&mjcf.Texture{
				Name:       r.Key,
				File:       mjcf.FileRef{Stem: r.Key, Digest: r.Digest(), Ext: TextureExt},
				GridSize:   palette.GridSize,
				GridLayout: r.Layout,
				RGB1:       mjcf.Vec(v3.Vec{}),
			},
			&mjcf.Material{Name: r.Key, Texture: r.Key},
		)
	}
	return a
}
