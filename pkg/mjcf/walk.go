package mjcf

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// SyntheticClass is the class name of the wrapper default that raw
// documents use to hold ungrouped default values.
const SyntheticClass = "/"

// translationStack accumulates body offsets during traversal.
type translationStack struct {
	translations []v3.Vec
}

func (ts *translationStack) push(v v3.Vec) {
	ts.translations = append(ts.translations, v)
}

func (ts *translationStack) pop() {
	if len(ts.translations) > 0 {
		ts.translations = ts.translations[:len(ts.translations)-1]
	}
}

func (ts *translationStack) accumulated() v3.Vec {
	var sum v3.Vec
	for _, t := range ts.translations {
		sum = sum.Add(t)
	}
	return sum
}

// Placement is a geom located in world coordinates with its resolved class.
type Placement struct {
	Body  *Body
	Geom  *Geom
	Class string
	World v3.Vec
}

// BodyVisitor is called for every body with its world origin and the class
// its elements inherit.
type BodyVisitor func(b *Body, origin v3.Vec, class string) error

// Walk visits all bodies depth-first in document order. It never mutates
// the document.
func Walk(d *Document, fn BodyVisitor) error {
	ts := &translationStack{}
	for _, b := range d.Worldbody.Bodies {
		if err := walkBody(b, "", ts, fn); err != nil {
			return err
		}
	}
	return nil
}

func walkBody(b *Body, class string, ts *translationStack, fn BodyVisitor) error {
	var pos v3.Vec
	if b.Pos != nil {
		pos = *b.Pos
	}
	ts.push(pos)
	defer ts.pop()

	if b.ChildClass != "" {
		class = b.ChildClass
	}
	if err := fn(b, ts.accumulated(), class); err != nil {
		return err
	}
	for _, c := range b.Bodies {
		if err := walkBody(c, class, ts, fn); err != nil {
			return err
		}
	}
	return nil
}

// Placements lists every body geom in world coordinates.
func Placements(d *Document) []Placement {
	var out []Placement
	_ = Walk(d, func(b *Body, origin v3.Vec, class string) error {
		for _, g := range b.Geoms {
			p := Placement{Body: b, Geom: g, Class: class, World: origin}
			if g.Class != "" {
				p.Class = g.Class
			}
			if g.Pos != nil {
				p.World = origin.Add(*g.Pos)
			}
			out = append(out, p)
		}
		return nil
	})
	return out
}

// Bodies returns every body in depth-first document order.
func Bodies(d *Document) []*Body {
	var out []*Body
	_ = Walk(d, func(b *Body, _ v3.Vec, _ string) error {
		out = append(out, b)
		return nil
	})
	return out
}

// ClassChain returns the default classes that apply to class, most
// specific first, ending at the top-level default. An empty class resolves
// to the top-level default, or to the synthetic wrapper when one is present.
func (d *Document) ClassChain(class string) []*Default {
	if d.Default == nil {
		return nil
	}
	if class == "" {
		if w := d.Default.childClass(SyntheticClass); w != nil {
			return []*Default{w, d.Default}
		}
		return []*Default{d.Default}
	}
	var path []*Default
	if !findPath(d.Default, class, &path) {
		return nil
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func (d *Default) childClass(class string) *Default {
	for _, c := range d.Children {
		if c.Class == class {
			return c
		}
	}
	return nil
}

func findPath(d *Default, class string, path *[]*Default) bool {
	*path = append(*path, d)
	if d.Class == class {
		return true
	}
	for _, c := range d.Children {
		if findPath(c, class, path) {
			return true
		}
	}
	*path = (*path)[:len(*path)-1]
	return false
}

// GeomMass returns the explicit mass of g, or the nearest default mass in
// its class chain.
func (d *Document) GeomMass(g *Geom, class string) (float64, error) {
	if g.Mass != nil {
		return *g.Mass, nil
	}
	for _, c := range d.ClassChain(class) {
		if c.Geom != nil && c.Geom.Mass != nil {
			return *c.Geom.Mass, nil
		}
	}
	return 0, fmt.Errorf("mjcf: geom %q in class %q has no mass", g.Name, class)
}

// JointType returns the explicit type of j, or the nearest default type.
// MuJoCo's own default is "hinge".
func (d *Document) JointType(j *Joint, class string) string {
	if j.Type != "" {
		return j.Type
	}
	for _, c := range d.ClassChain(class) {
		if c.Joint != nil && c.Joint.Type != "" {
			return c.Joint.Type
		}
	}
	return "hinge"
}

// TotalMass sums the mass of every body geom.
func (d *Document) TotalMass() (float64, error) {
	var total float64
	for _, p := range Placements(d) {
		m, err := d.GeomMass(p.Geom, p.Class)
		if err != nil {
			return 0, err
		}
		total += m
	}
	return total, nil
}
