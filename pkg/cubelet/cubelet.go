// Package cubelet enumerates the sub-parts of a 3x3x3 cube and builds one
// body per sub-part. Every generation step is pure: it returns a Fragment
// and the fragments are merged by folding.
package cubelet

import (
	"fmt"

	"github.com/chazu/twisty/pkg/direction"
	"github.com/chazu/twisty/pkg/mjcf"
	"github.com/chazu/twisty/pkg/palette"
)

// Names shared between the generator and the document defaults.
const (
	RootName     = "core"
	CubeletClass = "cubelet"
	CoreClass    = "core"
	MeshName     = "cubelet"
	GeomPrefix   = "cubelet_"
)

// Pitch is the distance between the centers of neighbouring cubelets,
// which equals the cubelet edge length.
const Pitch = 0.019

// Settings control generation.
type Settings struct {
	Pitch     float64
	Actuators bool
}

// DefaultSettings returns the settings of the physical cube with actuated
// center faces.
func DefaultSettings() Settings {
	return Settings{Pitch: Pitch, Actuators: true}
}

// Fragment is the output of one generation step.
type Fragment struct {
	Bodies    []*mjcf.Body
	Materials []palette.Tuple // material keys referenced by Bodies, in body order
	Motors    []*mjcf.Motor
}

// Merge appends g to f and returns the result. Neither input is modified.
func (f Fragment) Merge(g Fragment) Fragment {
	return Fragment{
		Bodies:    append(append([]*mjcf.Body(nil), f.Bodies...), g.Bodies...),
		Materials: append(append([]palette.Tuple(nil), f.Materials...), g.Materials...),
		Motors:    append(append([]*mjcf.Motor(nil), f.Motors...), g.Motors...),
	}
}

// Root returns the fixed core body with its decorative, non-colliding
// marker geom. Child cubelets are attached by Generate.
func Root() *mjcf.Body {
	return &mjcf.Body{
		Name:       RootName,
		ChildClass: CubeletClass,
		Geoms:      []*mjcf.Geom{{Class: CoreClass}},
	}
}

// body builds the body, default joint and geom for one direction set.
func body(s direction.Set, pitch float64) (*mjcf.Body, palette.Tuple, error) {
	tuple, err := palette.MaterialKey(s)
	if err != nil {
		return nil, nil, err
	}
	if !palette.IsPhysicallyValid(tuple) {
		return nil, nil, fmt.Errorf("cubelet %s: %w: %s", s, palette.ErrImpossibleCombination, tuple.Key())
	}
	key := s.Key()
	return &mjcf.Body{
		Name:   key,
		Joints: []*mjcf.Joint{{Name: key}},
		Geoms: []*mjcf.Geom{{
			Name:     GeomPrefix + key,
			Material: tuple.Key(),
			Pos:      mjcf.Vec(s.Offset(pitch)),
		}},
	}, tuple, nil
}

// Centers builds the six face centers. Each gets a hinge about its own
// direction and, when actuation is enabled, a motor named by its color.
func Centers(cfg Settings) (Fragment, error) {
	var f Fragment
	for _, s := range direction.Singles() {
		b, tuple, err := body(s, cfg.Pitch)
		if err != nil {
			return Fragment{}, err
		}
		axis, err := direction.Vector(s.Tokens()[0])
		if err != nil {
			return Fragment{}, err
		}
		b.Joints[0].Type = "hinge"
		b.Joints[0].Axis = mjcf.Vec(axis)

		f.Bodies = append(f.Bodies, b)
		f.Materials = append(f.Materials, tuple)
		if cfg.Actuators {
			f.Motors = append(f.Motors, &mjcf.Motor{Name: tuple.Key(), Joint: b.Name})
		}
	}
	return f, nil
}

// Edges builds the twelve edge cubelets. Their joint inherits the class
// default ball joint.
func Edges(cfg Settings) (Fragment, error) {
	return cubelets(direction.Pairs(), cfg)
}

// Corners builds the eight corner cubelets with the class default joint.
func Corners(cfg Settings) (Fragment, error) {
	return cubelets(direction.Triples(), cfg)
}

func cubelets(sets []direction.Set, cfg Settings) (Fragment, error) {
	var f Fragment
	for _, s := range sets {
		b, tuple, err := body(s, cfg.Pitch)
		if err != nil {
			return Fragment{}, err
		}
		f.Bodies = append(f.Bodies, b)
		f.Materials = append(f.Materials, tuple)
	}
	return f, nil
}

// Generate runs every step in order (centers, edges, corners) and attaches
// the resulting bodies to a fresh root. The returned fragment carries the
// referenced material keys and motors.
func Generate(cfg Settings) (*mjcf.Body, Fragment, error) {
	var all Fragment
	for _, step := range []func(Settings) (Fragment, error){Centers, Edges, Corners} {
		f, err := step(cfg)
		if err != nil {
			return nil, Fragment{}, err
		}
		all = all.Merge(f)
	}
	root := Root()
	root.Bodies = all.Bodies
	return root, all, nil
}
