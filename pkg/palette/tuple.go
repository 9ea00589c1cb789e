package palette

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/chazu/twisty/pkg/direction"
)

// ErrImpossibleCombination is returned when a color tuple holds two colors
// from opposite faces. Such a cubelet does not exist on the physical cube.
var ErrImpossibleCombination = errors.New("impossible color combination")

// Layout constants for the texture net: 3 rows by 4 columns, stickers
// placed from the sixth cell onward.
const (
	GridSize      = "3 4"
	gridCells     = 12
	gridFirstCell = 5
)

// opposites holds the color pairs that never share a cubelet.
var opposites = [][2]Color{
	{White, Yellow},
	{Red, Orange},
	{Blue, Green},
}

// Tuple is a sorted list of distinct colors.
type Tuple []Color

// NewTuple sorts a copy of cs.
func NewTuple(cs ...Color) Tuple {
	t := append(Tuple(nil), cs...)
	sort.Slice(t, func(i, j int) bool { return t[i] < t[j] })
	return t
}

// MaterialKey maps each token of s to its color and sorts the result.
func MaterialKey(s direction.Set) (Tuple, error) {
	cs := make([]Color, 0, s.Len())
	for _, tok := range s.Tokens() {
		c, err := ColorOf(tok)
		if err != nil {
			return nil, err
		}
		cs = append(cs, c)
	}
	return NewTuple(cs...), nil
}

// ParseTuple splits a key produced by Tuple.Key.
func ParseTuple(key string) (Tuple, error) {
	if key == "" {
		return nil, fmt.Errorf("palette: empty key")
	}
	parts := strings.Split(key, "_")
	cs := make([]Color, len(parts))
	for i, p := range parts {
		c := Color(p)
		if !c.valid() {
			return nil, fmt.Errorf("palette: unknown color %q in key %q", p, key)
		}
		cs[i] = c
	}
	return NewTuple(cs...), nil
}

// Key joins the colors with underscores, e.g. "blue_red".
func (t Tuple) Key() string {
	names := make([]string, len(t))
	for i, c := range t {
		names[i] = string(c)
	}
	return strings.Join(names, "_")
}

// IsPhysicallyValid reports whether no two colors of t lie on opposite
// faces of the cube.
func IsPhysicallyValid(t Tuple) bool {
	has := make(map[Color]bool, len(t))
	for _, c := range t {
		has[c] = true
	}
	for _, o := range opposites {
		if has[o[0]] && has[o[1]] {
			return false
		}
	}
	return true
}

// GridLayout returns the texture net layout for t: one face letter per
// color, in tuple order, at the cells following the first five.
func GridLayout(t Tuple) (string, error) {
	b := []byte(strings.Repeat(".", gridCells))
	for i, c := range t {
		tok, ok := TokenOf(c)
		if !ok {
			return "", fmt.Errorf("palette: unknown color %q", string(c))
		}
		b[gridFirstCell+i] = faceByToken[tok]
	}
	return string(b), nil
}
