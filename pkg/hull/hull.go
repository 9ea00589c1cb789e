// Package hull holds the convex hull of a single cubelet: a chamfered cube
// given as 24 vertices in meters, centered at the origin.
package hull

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// ErrContract is returned when a vertex list violates the hull contract.
var ErrContract = errors.New("hull contract violation")

const (
	// Extent is the edge length of a cubelet along every axis.
	Extent = 0.019
	// Inset is the half-width of each flat face after chamfering.
	Inset = 0.008075
	// SignificantDigits is the precision vertices are rounded to.
	SignificantDigits = 6
	// VertexCount is the number of hull vertices, four per face.
	VertexCount = 24
)

// tolerance absorbs float noise when comparing rounded coordinates.
const tolerance = 1e-12

// table is the vertex order produced by the mesh extraction tool.
var table = [VertexCount][3]float64{
	{0.008075, 0.0095, -0.008075},
	{-0.008075, 0.0095, -0.008075},
	{0.008075, 0.0095, 0.008075},
	{-0.008075, 0.0095, 0.008075},
	{-0.0095, 0.008075, -0.008075},
	{-0.0095, -0.008075, -0.008075},
	{-0.0095, 0.008075, 0.008075},
	{-0.0095, -0.008075, 0.008075},
	{0.008075, -0.0095, -0.008075},
	{0.008075, -0.0095, 0.008075},
	{-0.008075, -0.0095, -0.008075},
	{-0.008075, -0.0095, 0.008075},
	{0.0095, 0.008075, 0.008075},
	{0.0095, -0.008075, 0.008075},
	{0.0095, 0.008075, -0.008075},
	{0.0095, -0.008075, -0.008075},
	{0.008075, 0.008075, 0.0095},
	{-0.008075, 0.008075, 0.0095},
	{0.008075, -0.008075, 0.0095},
	{-0.008075, -0.008075, 0.0095},
	{0.008075, -0.008075, -0.0095},
	{-0.008075, -0.008075, -0.0095},
	{0.008075, 0.008075, -0.0095},
	{-0.008075, 0.008075, -0.0095},
}

// Vertices returns the cubelet hull in its fixed order.
func Vertices() []v3.Vec {
	out := make([]v3.Vec, len(table))
	for i, p := range table {
		out[i] = v3.Vec{X: p[0], Y: p[1], Z: p[2]}
	}
	return out
}

// Flatten returns vs as x0 y0 z0 x1 y1 z1 ...
func Flatten(vs []v3.Vec) []float64 {
	out := make([]float64, 0, 3*len(vs))
	for _, v := range vs {
		out = append(out, v.X, v.Y, v.Z)
	}
	return out
}

// Chamfered builds a chamfered cube of the given extent whose flat faces
// span [-inset, inset]. Faces are emitted +X, -X, +Y, -Y, +Z, -Z.
func Chamfered(extent, inset float64) []v3.Vec {
	h := extent / 2
	corners := [4][2]float64{{inset, inset}, {inset, -inset}, {-inset, inset}, {-inset, -inset}}
	out := make([]v3.Vec, 0, VertexCount)
	for axis := 0; axis < 3; axis++ {
		for _, s := range []float64{1, -1} {
			for _, c := range corners {
				p := [3]float64{}
				p[axis] = s * h
				p[(axis+1)%3] = c[0]
				p[(axis+2)%3] = c[1]
				out = append(out, v3.Vec{X: p[0], Y: p[1], Z: p[2]})
			}
		}
	}
	return out
}

// RoundSignificant rounds v to the given number of significant digits.
func RoundSignificant(v float64, digits int) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'g', digits, 64), 64)
	return r
}

// Bounds returns the axis-aligned box enclosing vs.
func Bounds(vs []v3.Vec) sdf.Box3 {
	set := v3.VecSet(vs)
	return sdf.Box3{Min: set.Min(), Max: set.Max()}
}

// Validate checks vs against the hull contract: exactly VertexCount
// vertices, each coordinate already rounded to SignificantDigits, centered
// at the origin, spanning extent along every axis.
func Validate(vs []v3.Vec, extent float64) error {
	if len(vs) != VertexCount {
		return fmt.Errorf("%w: got %d vertices, want %d", ErrContract, len(vs), VertexCount)
	}
	for i, v := range vs {
		for _, c := range []float64{v.X, v.Y, v.Z} {
			if c != RoundSignificant(c, SignificantDigits) {
				return fmt.Errorf("%w: vertex %d component %v exceeds %d significant digits",
					ErrContract, i, c, SignificantDigits)
			}
		}
	}
	bb := Bounds(vs)
	center, size := bb.Center(), bb.Size()
	for i, c := range []float64{center.X, center.Y, center.Z} {
		if math.Abs(c) > tolerance {
			return fmt.Errorf("%w: not centered, axis %d center %g", ErrContract, i, c)
		}
	}
	for i, s := range []float64{size.X, size.Y, size.Z} {
		if math.Abs(s-extent) > tolerance {
			return fmt.Errorf("%w: axis %d extent %g, want %g", ErrContract, i, s, extent)
		}
	}
	return nil
}
