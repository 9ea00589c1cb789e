package mjcf

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// IndentSpaces is the indentation width of rendered documents.
const IndentSpaces = 2

// Marshal renders d as indented XML using format f.
func Marshal(d *Document, f Format) ([]byte, error) {
	x, err := Encode(d, f)
	if err != nil {
		return nil, err
	}
	x.Indent(IndentSpaces)
	var buf bytes.Buffer
	if _, err := x.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("mjcf: write: %w", err)
	}
	return buf.Bytes(), nil
}

// Encode converts d into an etree document without indentation.
func Encode(d *Document, f Format) (*etree.Document, error) {
	if d == nil {
		return nil, fmt.Errorf("mjcf: nil document")
	}
	e := encoder{f: f}
	x := etree.NewDocument()
	root := x.CreateElement("mujoco")
	e.attr(root, "model", d.Model)

	if c := d.Compiler; c != nil {
		el := root.CreateElement("compiler")
		if c.Autolimits {
			el.CreateAttr("autolimits", "true")
		}
		e.attr(el, "angle", c.Angle)
		e.attr(el, "texturedir", c.TextureDir)
	}
	if o := d.Option; o != nil {
		el := root.CreateElement("option")
		e.float(el, "timestep", &o.Timestep)
		e.attr(el, "integrator", o.Integrator)
	}
	if s := d.Size; s != nil {
		el := root.CreateElement("size")
		e.attr(el, "memory", s.Memory)
	}
	if v := d.Visual; v != nil {
		el := root.CreateElement("visual")
		if h := v.Headlight; h != nil {
			hl := el.CreateElement("headlight")
			e.vec(hl, "diffuse", &h.Diffuse)
			e.vec(hl, "ambient", &h.Ambient)
			e.vec(hl, "specular", &h.Specular)
		}
		if g := v.Global; g != nil {
			gl := el.CreateElement("global")
			e.float(gl, "azimuth", &g.Azimuth)
			e.float(gl, "elevation", &g.Elevation)
		}
	}
	if s := d.Statistic; s != nil {
		el := root.CreateElement("statistic")
		e.float(el, "extent", &s.Extent)
		e.float(el, "meansize", &s.Meansize)
	}
	if d.Default != nil {
		e.defaultClass(root, d.Default)
	}
	if d.Asset != nil {
		el := root.CreateElement("asset")
		for _, it := range d.Asset.Items {
			if err := e.asset(el, it); err != nil {
				return nil, err
			}
		}
	}
	wb := root.CreateElement("worldbody")
	for _, l := range d.Worldbody.Lights {
		ll := wb.CreateElement("light")
		e.attr(ll, "name", l.Name)
		e.vec(ll, "pos", l.Pos)
	}
	for _, b := range d.Worldbody.Bodies {
		e.body(wb, b)
	}
	if len(d.Actuator) > 0 {
		el := root.CreateElement("actuator")
		for _, m := range d.Actuator {
			e.motor(el, m)
		}
	}
	return x, nil
}

type encoder struct {
	f Format
}

func (e encoder) attr(el *etree.Element, key, val string) {
	if val != "" {
		el.CreateAttr(key, val)
	}
}

func (e encoder) float(el *etree.Element, key string, v *float64) {
	if v != nil {
		el.CreateAttr(key, e.f.Float(*v))
	}
}

func (e encoder) floats(el *etree.Element, key string, vs []float64) {
	if len(vs) > 0 {
		el.CreateAttr(key, e.f.Floats(vs...))
	}
}

func (e encoder) vec(el *etree.Element, key string, v *v3.Vec) {
	if v != nil {
		el.CreateAttr(key, e.f.Vec(*v))
	}
}

func (e encoder) integer(el *etree.Element, key string, v *int) {
	if v != nil {
		el.CreateAttr(key, strconv.Itoa(*v))
	}
}

func (e encoder) defaultClass(parent *etree.Element, d *Default) {
	el := parent.CreateElement("default")
	e.attr(el, "class", d.Class)
	if d.Joint != nil {
		e.joint(el, d.Joint)
	}
	if d.Geom != nil {
		e.geom(el, d.Geom)
	}
	if d.Motor != nil {
		e.motor(el, d.Motor)
	}
	for _, c := range d.Children {
		e.defaultClass(el, c)
	}
}

func (e encoder) asset(parent *etree.Element, a Asset) error {
	switch v := a.(type) {
	case *Texture:
		el := parent.CreateElement("texture")
		e.attr(el, "name", v.Name)
		e.attr(el, "type", v.Type)
		e.attr(el, "builtin", v.Builtin)
		if v.Width > 0 {
			el.CreateAttr("width", strconv.Itoa(v.Width))
		}
		if v.Height > 0 {
			el.CreateAttr("height", strconv.Itoa(v.Height))
		}
		e.attr(el, "file", v.File.String())
		e.attr(el, "gridsize", v.GridSize)
		e.attr(el, "gridlayout", v.GridLayout)
		e.vec(el, "rgb1", v.RGB1)
	case *Material:
		el := parent.CreateElement("material")
		e.attr(el, "name", v.Name)
		e.attr(el, "texture", v.Texture)
	case *Mesh:
		el := parent.CreateElement("mesh")
		e.attr(el, "name", v.Name)
		e.floats(el, "vertex", v.Vertex)
	default:
		return fmt.Errorf("mjcf: unsupported asset %T", a)
	}
	return nil
}

func (e encoder) body(parent *etree.Element, b *Body) {
	el := parent.CreateElement("body")
	e.attr(el, "name", b.Name)
	e.attr(el, "childclass", b.ChildClass)
	e.vec(el, "pos", b.Pos)
	if b.FreeJoint {
		el.CreateElement("freejoint")
	}
	for _, j := range b.Joints {
		e.joint(el, j)
	}
	for _, g := range b.Geoms {
		e.geom(el, g)
	}
	for _, c := range b.Bodies {
		e.body(el, c)
	}
}

func (e encoder) joint(parent *etree.Element, j *Joint) {
	el := parent.CreateElement("joint")
	e.attr(el, "name", j.Name)
	e.attr(el, "type", j.Type)
	e.vec(el, "axis", j.Axis)
	e.float(el, "armature", j.Armature)
	e.float(el, "damping", j.Damping)
	e.float(el, "frictionloss", j.Frictionloss)
}

func (e encoder) geom(parent *etree.Element, g *Geom) {
	el := parent.CreateElement("geom")
	e.attr(el, "name", g.Name)
	e.attr(el, "class", g.Class)
	e.attr(el, "type", g.Type)
	e.floats(el, "size", g.Size)
	e.attr(el, "mesh", g.Mesh)
	e.attr(el, "material", g.Material)
	e.vec(el, "pos", g.Pos)
	e.float(el, "mass", g.Mass)
	e.integer(el, "condim", g.Condim)
	e.integer(el, "contype", g.Contype)
	e.integer(el, "conaffinity", g.Conaffinity)
	e.integer(el, "group", g.Group)
}

func (e encoder) motor(parent *etree.Element, m *Motor) {
	el := parent.CreateElement("motor")
	e.attr(el, "name", m.Name)
	e.attr(el, "joint", m.Joint)
	if m.CtrlRange != nil {
		el.CreateAttr("ctrlrange", e.f.Floats(m.CtrlRange[0], m.CtrlRange[1]))
	}
}
