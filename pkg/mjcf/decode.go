package mjcf

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// ErrUnsupported is returned when a document uses an element or attribute
// outside the subset this package models.
var ErrUnsupported = errors.New("unsupported MJCF construct")

// Unmarshal parses an XML document into the typed model.
func Unmarshal(data []byte) (*Document, error) {
	x := etree.NewDocument()
	if err := x.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("mjcf: parse: %w", err)
	}
	return Decode(x)
}

// Decode converts a parsed etree document into the typed model.
func Decode(x *etree.Document) (*Document, error) {
	root := x.Root()
	if root == nil || root.Tag != "mujoco" {
		return nil, fmt.Errorf("mjcf: root element must be <mujoco>")
	}
	dec := &decoder{}
	d := dec.document(root)
	if dec.err != nil {
		return nil, dec.err
	}
	return d, nil
}

type decoder struct {
	err error
}

func (dec *decoder) fail(err error) {
	if dec.err == nil {
		dec.err = err
	}
}

// known rejects attributes of el outside keys.
func (dec *decoder) known(el *etree.Element, keys ...string) {
	for _, a := range el.Attr {
		ok := false
		for _, k := range keys {
			if a.Key == k {
				ok = true
				break
			}
		}
		if !ok {
			dec.fail(fmt.Errorf("mjcf: %w: attribute %q on <%s>", ErrUnsupported, a.Key, el.Tag))
		}
	}
}

func (dec *decoder) unknown(el *etree.Element) {
	dec.fail(fmt.Errorf("mjcf: %w: element <%s>", ErrUnsupported, el.Tag))
}

func (dec *decoder) float(el *etree.Element, key string) *float64 {
	s := el.SelectAttrValue(key, "")
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		dec.fail(fmt.Errorf("mjcf: <%s %s=%q>: %w", el.Tag, key, s, err))
		return nil
	}
	return &v
}

func (dec *decoder) floatOr(el *etree.Element, key string) float64 {
	if v := dec.float(el, key); v != nil {
		return *v
	}
	return 0
}

func (dec *decoder) floats(el *etree.Element, key string, n int) []float64 {
	s := el.SelectAttrValue(key, "")
	if s == "" {
		return nil
	}
	vs, err := ParseFloats(s)
	if err != nil {
		dec.fail(fmt.Errorf("mjcf: <%s %s>: %w", el.Tag, key, err))
		return nil
	}
	if n > 0 && len(vs) != n {
		dec.fail(fmt.Errorf("mjcf: <%s %s>: want %d values, got %d", el.Tag, key, n, len(vs)))
		return nil
	}
	return vs
}

func (dec *decoder) vec(el *etree.Element, key string) *v3.Vec {
	vs := dec.floats(el, key, 3)
	if vs == nil {
		return nil
	}
	return &v3.Vec{X: vs[0], Y: vs[1], Z: vs[2]}
}

func (dec *decoder) integer(el *etree.Element, key string) *int {
	s := el.SelectAttrValue(key, "")
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		dec.fail(fmt.Errorf("mjcf: <%s %s=%q>: %w", el.Tag, key, s, err))
		return nil
	}
	return &v
}

func (dec *decoder) document(root *etree.Element) *Document {
	dec.known(root, "model")
	d := &Document{Model: root.SelectAttrValue("model", "")}
	for _, el := range root.ChildElements() {
		switch el.Tag {
		case "compiler":
			dec.known(el, "autolimits", "angle", "texturedir")
			d.Compiler = &Compiler{
				Autolimits: el.SelectAttrValue("autolimits", "") == "true",
				Angle:      el.SelectAttrValue("angle", ""),
				TextureDir: el.SelectAttrValue("texturedir", ""),
			}
		case "option":
			dec.known(el, "timestep", "integrator")
			d.Option = &Option{
				Timestep:   dec.floatOr(el, "timestep"),
				Integrator: el.SelectAttrValue("integrator", ""),
			}
		case "size":
			dec.known(el, "memory")
			d.Size = &Size{Memory: el.SelectAttrValue("memory", "")}
		case "visual":
			d.Visual = dec.visual(el)
		case "statistic":
			dec.known(el, "extent", "meansize")
			d.Statistic = &Statistic{
				Extent:   dec.floatOr(el, "extent"),
				Meansize: dec.floatOr(el, "meansize"),
			}
		case "default":
			d.Default = dec.defaultClass(el)
		case "asset":
			d.Asset = dec.assets(el)
		case "worldbody":
			dec.worldbody(el, &d.Worldbody)
		case "actuator":
			for _, m := range el.ChildElements() {
				if m.Tag != "motor" {
					dec.unknown(m)
					continue
				}
				d.Actuator = append(d.Actuator, dec.motor(m))
			}
		default:
			dec.unknown(el)
		}
	}
	return d
}

func (dec *decoder) visual(el *etree.Element) *Visual {
	v := &Visual{}
	for _, c := range el.ChildElements() {
		switch c.Tag {
		case "headlight":
			dec.known(c, "diffuse", "ambient", "specular")
			h := &Headlight{}
			if p := dec.vec(c, "diffuse"); p != nil {
				h.Diffuse = *p
			}
			if p := dec.vec(c, "ambient"); p != nil {
				h.Ambient = *p
			}
			if p := dec.vec(c, "specular"); p != nil {
				h.Specular = *p
			}
			v.Headlight = h
		case "global":
			dec.known(c, "azimuth", "elevation")
			v.Global = &VisualGlobal{
				Azimuth:   dec.floatOr(c, "azimuth"),
				Elevation: dec.floatOr(c, "elevation"),
			}
		default:
			dec.unknown(c)
		}
	}
	return v
}

func (dec *decoder) defaultClass(el *etree.Element) *Default {
	dec.known(el, "class")
	d := &Default{Class: el.SelectAttrValue("class", "")}
	for _, c := range el.ChildElements() {
		switch c.Tag {
		case "geom":
			d.Geom = dec.geom(c)
		case "joint":
			d.Joint = dec.joint(c)
		case "motor":
			d.Motor = dec.motor(c)
		case "default":
			d.Children = append(d.Children, dec.defaultClass(c))
		default:
			dec.unknown(c)
		}
	}
	return d
}

func (dec *decoder) assets(el *etree.Element) *AssetSection {
	a := &AssetSection{}
	for _, c := range el.ChildElements() {
		switch c.Tag {
		case "texture":
			dec.known(c, "name", "type", "builtin", "width", "height", "file", "gridsize", "gridlayout", "rgb1")
			t := &Texture{
				Name:       c.SelectAttrValue("name", ""),
				Type:       c.SelectAttrValue("type", ""),
				Builtin:    c.SelectAttrValue("builtin", ""),
				File:       ParseFileRef(c.SelectAttrValue("file", "")),
				GridSize:   c.SelectAttrValue("gridsize", ""),
				GridLayout: c.SelectAttrValue("gridlayout", ""),
				RGB1:       dec.vec(c, "rgb1"),
			}
			if w := dec.integer(c, "width"); w != nil {
				t.Width = *w
			}
			if h := dec.integer(c, "height"); h != nil {
				t.Height = *h
			}
			a.Items = append(a.Items, t)
		case "material":
			dec.known(c, "name", "texture")
			a.Items = append(a.Items, &Material{
				Name:    c.SelectAttrValue("name", ""),
				Texture: c.SelectAttrValue("texture", ""),
			})
		case "mesh":
			dec.known(c, "name", "vertex")
			a.Items = append(a.Items, &Mesh{
				Name:   c.SelectAttrValue("name", ""),
				Vertex: dec.floats(c, "vertex", 0),
			})
		default:
			dec.unknown(c)
		}
	}
	return a
}

func (dec *decoder) worldbody(el *etree.Element, wb *Worldbody) {
	dec.known(el)
	for _, c := range el.ChildElements() {
		switch c.Tag {
		case "light":
			dec.known(c, "name", "pos")
			wb.Lights = append(wb.Lights, &Light{
				Name: c.SelectAttrValue("name", ""),
				Pos:  dec.vec(c, "pos"),
			})
		case "body":
			wb.Bodies = append(wb.Bodies, dec.body(c))
		default:
			dec.unknown(c)
		}
	}
}

func (dec *decoder) body(el *etree.Element) *Body {
	dec.known(el, "name", "childclass", "pos")
	b := &Body{
		Name:       el.SelectAttrValue("name", ""),
		ChildClass: el.SelectAttrValue("childclass", ""),
		Pos:        dec.vec(el, "pos"),
	}
	for _, c := range el.ChildElements() {
		switch c.Tag {
		case "freejoint":
			dec.known(c)
			b.FreeJoint = true
		case "joint":
			b.Joints = append(b.Joints, dec.joint(c))
		case "geom":
			b.Geoms = append(b.Geoms, dec.geom(c))
		case "body":
			b.Bodies = append(b.Bodies, dec.body(c))
		default:
			dec.unknown(c)
		}
	}
	return b
}

func (dec *decoder) joint(el *etree.Element) *Joint {
	dec.known(el, "name", "type", "axis", "armature", "damping", "frictionloss")
	return &Joint{
		Name:         el.SelectAttrValue("name", ""),
		Type:         el.SelectAttrValue("type", ""),
		Axis:         dec.vec(el, "axis"),
		Armature:     dec.float(el, "armature"),
		Damping:      dec.float(el, "damping"),
		Frictionloss: dec.float(el, "frictionloss"),
	}
}

func (dec *decoder) geom(el *etree.Element) *Geom {
	dec.known(el, "name", "class", "type", "size", "mesh", "material", "pos",
		"mass", "condim", "contype", "conaffinity", "group")
	return &Geom{
		Name:        el.SelectAttrValue("name", ""),
		Class:       el.SelectAttrValue("class", ""),
		Type:        el.SelectAttrValue("type", ""),
		Size:        dec.floats(el, "size", 0),
		Mesh:        el.SelectAttrValue("mesh", ""),
		Material:    el.SelectAttrValue("material", ""),
		Pos:         dec.vec(el, "pos"),
		Mass:        dec.float(el, "mass"),
		Condim:      dec.integer(el, "condim"),
		Contype:     dec.integer(el, "contype"),
		Conaffinity: dec.integer(el, "conaffinity"),
		Group:       dec.integer(el, "group"),
	}
}

func (dec *decoder) motor(el *etree.Element) *Motor {
	dec.known(el, "name", "joint", "ctrlrange")
	m := &Motor{
		Name:  el.SelectAttrValue("name", ""),
		Joint: el.SelectAttrValue("joint", ""),
	}
	if r := dec.floats(el, "ctrlrange", 2); r != nil {
		m.CtrlRange = &[2]float64{r[0], r[1]}
	}
	return m
}
