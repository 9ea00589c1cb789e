// Package sdfx backs kernel.Kernel with github.com/deadsy/sdfx signed
// distance functions. Only bounding boxes are ever queried, so no meshing
// happens here.
package sdfx

import (
	"fmt"

	"github.com/chazu/twisty/pkg/kernel"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

var _ kernel.Kernel = (*Kernel)(nil)

type solid struct {
	sdf sdf.SDF3
}

func (s *solid) BoundingBox() (lo, hi [3]float64) {
	bb := s.sdf.BoundingBox()
	return [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}, [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
}

// Kernel is the sdfx geometry kernel. The zero value is ready to use.
type Kernel struct{}

// New returns a Kernel.
func New() *Kernel {
	return &Kernel{}
}

func sdfOf(s kernel.Solid) sdf.SDF3 {
	return s.(*solid).sdf
}

// Box returns a sharp box of the given size centered at the origin.
func (k *Kernel) Box(x, y, z float64) (kernel.Solid, error) {
	b, err := sdf.Box3D(v3.Vec{X: x, Y: y, Z: z}, 0)
	if err != nil {
		return nil, fmt.Errorf("sdfx: box %gx%gx%g: %w", x, y, z, err)
	}
	return &solid{sdf: b}, nil
}

// Union joins solids into one.
func (k *Kernel) Union(solids ...kernel.Solid) kernel.Solid {
	parts := make([]sdf.SDF3, len(solids))
	for i, s := range solids {
		parts[i] = sdfOf(s)
	}
	return &solid{sdf: sdf.Union3D(parts...)}
}

// Translate returns s moved by (x, y, z).
func (k *Kernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	return &solid{sdf: sdf.Transform3D(sdfOf(s), sdf.Translate3d(v3.Vec{X: x, Y: y, Z: z}))}
}
