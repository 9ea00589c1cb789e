// Package kernel defines the abstract geometry kernel interface used to
// reason about cubelet solids. The sdfx implementation lives in the sdfx
// subpackage.
package kernel

// Solid is an opaque handle to a geometry kernel solid.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Box returns an axis-aligned box centered at the origin.
	Box(x, y, z float64) (Solid, error)

	Union(solids ...Solid) Solid
	Translate(s Solid, x, y, z float64) Solid
}
