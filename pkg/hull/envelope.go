package hull

import (
	"fmt"

	"github.com/chazu/twisty/pkg/kernel"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Envelope unions one extent-sized box per center and returns the bounding
// box of the assembly. Centers closer than extent along every axis would
// overlap; the caller checks positions separately.
func Envelope(k kernel.Kernel, centers []v3.Vec, extent float64) (min, max [3]float64, err error) {
	if len(centers) == 0 {
		return min, max, fmt.Errorf("hull: no centers")
	}
	box, err := k.Box(extent, extent, extent)
	if err != nil {
		return min, max, err
	}
	solids := make([]kernel.Solid, len(centers))
	for i, c := range centers {
		solids[i] = k.Translate(box, c.X, c.Y, c.Z)
	}
	min, max = k.Union(solids...).BoundingBox()
	return min, max, nil
}
