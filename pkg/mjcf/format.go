package mjcf

import (
	"math"
	"strconv"
	"strings"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Format controls how numbers are printed. Values whose magnitude is below
// ZeroThreshold print as exactly 0.
type Format struct {
	Precision     int     // significant digits
	ZeroThreshold float64 // clamp threshold
}

// DefaultFormat prints 6 significant digits and clamps below 1e-6.
var DefaultFormat = Format{Precision: 6, ZeroThreshold: 1e-6}

// Float formats a single value.
func (f Format) Float(v float64) string {
	if math.Abs(v) < f.ZeroThreshold || v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'g', f.Precision, 64)
}

// Floats formats values separated by single spaces.
func (f Format) Floats(vs ...float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = f.Float(v)
	}
	return strings.Join(parts, " ")
}

// Vec formats a 3-vector.
func (f Format) Vec(v v3.Vec) string {
	return f.Floats(v.X, v.Y, v.Z)
}

// ParseFloats parses a whitespace separated list of numbers.
func ParseFloats(s string) ([]float64, error) {
	fields := strings.Fields(s)
	out := make([]float64, len(fields))
	for i, fld := range fields {
		v, err := strconv.ParseFloat(fld, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
