// Package palette maps cube directions to face colors and keeps the catalog
// of texture/material resources keyed by sorted color tuples.
package palette

import (
	"fmt"
	"image/color"

	"github.com/chazu/twisty/pkg/direction"
)

// Color names a sticker color.
type Color string

const (
	White  Color = "white"
	Yellow Color = "yellow"
	Red    Color = "red"
	Orange Color = "orange"
	Blue   Color = "blue"
	Green  Color = "green"
)

// Colors lists the six sticker colors.
var Colors = []Color{White, Yellow, Red, Orange, Blue, Green}

var colorByToken = map[direction.Token]Color{
	direction.PZ: White,
	direction.NZ: Yellow,
	direction.PX: Red,
	direction.NX: Orange,
	direction.PY: Blue,
	direction.NY: Green,
}

// faceByToken is the letter of each face in the texture net layout.
var faceByToken = map[direction.Token]byte{
	direction.PX: 'D',
	direction.NX: 'U',
	direction.PY: 'R',
	direction.NY: 'L',
	direction.PZ: 'F',
	direction.NZ: 'B',
}

var rgbByColor = map[Color]color.RGBA{
	White:  {R: 255, G: 255, B: 255, A: 255},
	Red:    {R: 137, G: 18, B: 20, A: 255},
	Blue:   {R: 13, G: 72, B: 172, A: 255},
	Orange: {R: 255, G: 85, B: 37, A: 255},
	Green:  {R: 25, G: 155, B: 76, A: 255},
	Yellow: {R: 254, G: 213, B: 47, A: 255},
}

// ColorOf returns the sticker color of the face t points at.
func ColorOf(t direction.Token) (Color, error) {
	c, ok := colorByToken[t]
	if !ok {
		return "", &direction.InvalidDirectionError{Token: t.String()}
	}
	return c, nil
}

// TokenOf returns the direction a color is bound to.
func TokenOf(c Color) (direction.Token, bool) {
	for t, cc := range colorByToken {
		if cc == c {
			return t, true
		}
	}
	return 0, false
}

// RGB returns the display color used when rasterizing textures.
func (c Color) RGB() (color.RGBA, error) {
	rgb, ok := rgbByColor[c]
	if !ok {
		return color.RGBA{}, fmt.Errorf("palette: unknown color %q", string(c))
	}
	return rgb, nil
}

func (c Color) valid() bool {
	_, ok := rgbByColor[c]
	return ok
}
