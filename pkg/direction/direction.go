// Package direction models the six signed axis directions of the cube and
// the direction sets that identify each cubelet.
package direction

import (
	"errors"
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// ErrInvalidDirection is returned when a value outside the six canonical
// tokens reaches the direction algebra.
var ErrInvalidDirection = errors.New("invalid direction")

// InvalidDirectionError carries the offending token text.
type InvalidDirectionError struct {
	Token string
}

func (e *InvalidDirectionError) Error() string {
	return fmt.Sprintf("%s: %q", ErrInvalidDirection, e.Token)
}

func (e *InvalidDirectionError) Is(target error) bool {
	return target == ErrInvalidDirection
}

// Axis is one of the three coordinate axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// Token is a signed unit axis. The declaration order is the enumeration
// order used by the generator.
type Token uint8

const (
	PX Token = iota // +X
	NX              // -X
	PY              // +Y
	NY              // -Y
	PZ              // +Z
	NZ              // -Z
	numTokens
)

// Tokens lists every direction in enumeration order.
var Tokens = [...]Token{PX, NX, PY, NY, PZ, NZ}

var tokenNames = [...]string{"pX", "nX", "pY", "nY", "pZ", "nZ"}

// Valid reports whether t is one of the six canonical tokens.
func (t Token) Valid() bool {
	return t < numTokens
}

func (t Token) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Token(%d)", uint8(t))
	}
	return tokenNames[t]
}

// Axis returns the axis the token lies on.
func (t Token) Axis() Axis {
	return Axis(t / 2)
}

// Sign returns +1 for positive tokens and -1 for negative ones.
func (t Token) Sign() float64 {
	if t%2 == 0 {
		return 1
	}
	return -1
}

// Opposite returns the token on the same axis with the other sign.
func (t Token) Opposite() Token {
	return t ^ 1
}

// Parse converts a token name such as "pX" back into a Token.
func Parse(s string) (Token, error) {
	for i, name := range tokenNames {
		if name == s {
			return Token(i), nil
		}
	}
	return 0, &InvalidDirectionError{Token: s}
}

// Vector returns the unit vector of t.
func Vector(t Token) (v3.Vec, error) {
	if !t.Valid() {
		return v3.Vec{}, &InvalidDirectionError{Token: t.String()}
	}
	s := t.Sign()
	switch t.Axis() {
	case AxisX:
		return v3.Vec{X: s}, nil
	case AxisY:
		return v3.Vec{Y: s}, nil
	default:
		return v3.Vec{Z: s}, nil
	}
}
