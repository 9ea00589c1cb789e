package direction

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// KeySeparator joins token names inside a set key.
const KeySeparator = "_"

// ErrSharedAxis is returned when a set would face two directions along the
// same axis.
var ErrSharedAxis = errors.New("directions share an axis")

// Class is the structural class of a cubelet, derived from the size of its
// direction set.
type Class int

const (
	ClassCore Class = iota
	ClassCenter
	ClassEdge
	ClassCorner
)

func (c Class) String() string {
	switch c {
	case ClassCore:
		return "core"
	case ClassCenter:
		return "center"
	case ClassEdge:
		return "edge"
	case ClassCorner:
		return "corner"
	default:
		return "unknown"
	}
}

// Set is an ordered set of up to three tokens with pairwise distinct axes.
// Tokens are held in canonical order.
type Set struct {
	tokens []Token
}

// DistinctAxes reports whether no two tokens lie on the same axis.
func DistinctAxes(ts ...Token) bool {
	var seen [3]bool
	for _, t := range ts {
		a := t.Axis()
		if a < AxisX || a > AxisZ || seen[a] {
			return false
		}
		seen[a] = true
	}
	return true
}

// NewSet validates ts and returns it as a canonical Set.
func NewSet(ts ...Token) (Set, error) {
	for _, t := range ts {
		if !t.Valid() {
			return Set{}, &InvalidDirectionError{Token: t.String()}
		}
	}
	if !DistinctAxes(ts...) {
		return Set{}, fmt.Errorf("%w: %v", ErrSharedAxis, ts)
	}
	sorted := append([]Token(nil), ts...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].String() < sorted[j].String()
	})
	return Set{tokens: sorted}, nil
}

// ParseKey is the inverse of Key.
func ParseKey(key string) (Set, error) {
	if key == "" {
		return Set{}, nil
	}
	parts := strings.Split(key, KeySeparator)
	ts := make([]Token, 0, len(parts))
	for _, p := range parts {
		t, err := Parse(p)
		if err != nil {
			return Set{}, err
		}
		ts = append(ts, t)
	}
	return NewSet(ts...)
}

// Tokens returns the tokens in canonical order.
func (s Set) Tokens() []Token {
	return append([]Token(nil), s.tokens...)
}

// Len returns the number of tokens.
func (s Set) Len() int {
	return len(s.tokens)
}

// Class returns the cubelet class the set identifies.
func (s Set) Class() Class {
	return Class(len(s.tokens))
}

// Key joins the canonical token names, e.g. "nX_pY". The empty set has an
// empty key.
func (s Set) Key() string {
	names := make([]string, len(s.tokens))
	for i, t := range s.tokens {
		names[i] = t.String()
	}
	return strings.Join(names, KeySeparator)
}

func (s Set) String() string {
	if len(s.tokens) == 0 {
		return "{}"
	}
	return "{" + s.Key() + "}"
}

// Offset sums the unit vectors of the set scaled by step.
func (s Set) Offset(step float64) v3.Vec {
	var p v3.Vec
	for _, t := range s.tokens {
		u, _ := Vector(t) // tokens are validated by NewSet
		p = p.Add(u.MulScalar(step))
	}
	return p
}

// Pairs enumerates every unordered pair of tokens with distinct axes in
// enumeration order. Same-axis pairs are never produced.
func Pairs() []Set {
	var out []Set
	for i := 0; i < len(Tokens); i++ {
		for j := i + 1; j < len(Tokens); j++ {
			if !DistinctAxes(Tokens[i], Tokens[j]) {
				continue
			}
			s, _ := NewSet(Tokens[i], Tokens[j])
			out = append(out, s)
		}
	}
	return out
}

// Triples enumerates every unordered triple of tokens with pairwise
// distinct axes in enumeration order.
func Triples() []Set {
	var out []Set
	for i := 0; i < len(Tokens); i++ {
		for j := i + 1; j < len(Tokens); j++ {
			if !DistinctAxes(Tokens[i], Tokens[j]) {
				continue
			}
			for k := j + 1; k < len(Tokens); k++ {
				if !DistinctAxes(Tokens[i], Tokens[j], Tokens[k]) {
					continue
				}
				s, _ := NewSet(Tokens[i], Tokens[j], Tokens[k])
				out = append(out, s)
			}
		}
	}
	return out
}

// Singles returns one set per token in enumeration order.
func Singles() []Set {
	out := make([]Set, 0, len(Tokens))
	for _, t := range Tokens {
		out = append(out, Set{tokens: []Token{t}})
	}
	return out
}
