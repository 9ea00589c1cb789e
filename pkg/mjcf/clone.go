package mjcf

// Clone returns a deep copy of d.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	c := &Document{Model: d.Model}
	if d.Compiler != nil {
		cc := *d.Compiler
		c.Compiler = &cc
	}
	if d.Option != nil {
		o := *d.Option
		c.Option = &o
	}
	if d.Size != nil {
		s := *d.Size
		c.Size = &s
	}
	if d.Visual != nil {
		v := Visual{}
		if d.Visual.Headlight != nil {
			h := *d.Visual.Headlight
			v.Headlight = &h
		}
		if d.Visual.Global != nil {
			g := *d.Visual.Global
			v.Global = &g
		}
		c.Visual = &v
	}
	if d.Statistic != nil {
		s := *d.Statistic
		c.Statistic = &s
	}
	c.Default = d.Default.Clone()
	if d.Asset != nil {
		a := &AssetSection{Items: make([]Asset, 0, len(d.Asset.Items))}
		for _, it := range d.Asset.Items {
			a.Items = append(a.Items, cloneAsset(it))
		}
		c.Asset = a
	}
	for _, l := range d.Worldbody.Lights {
		c.Worldbody.Lights = append(c.Worldbody.Lights, l.Clone())
	}
	for _, b := range d.Worldbody.Bodies {
		c.Worldbody.Bodies = append(c.Worldbody.Bodies, b.Clone())
	}
	for _, m := range d.Actuator {
		c.Actuator = append(c.Actuator, m.Clone())
	}
	return c
}

// Clone returns a deep copy of d and its child classes.
func (d *Default) Clone() *Default {
	if d == nil {
		return nil
	}
	c := &Default{
		Class: d.Class,
		Geom:  d.Geom.Clone(),
		Joint: d.Joint.Clone(),
		Motor: d.Motor.Clone(),
	}
	for _, ch := range d.Children {
		c.Children = append(c.Children, ch.Clone())
	}
	return c
}

// Clone returns a deep copy of b and its subtree.
func (b *Body) Clone() *Body {
	if b == nil {
		return nil
	}
	c := &Body{
		Name:       b.Name,
		ChildClass: b.ChildClass,
		Pos:        cloneVec(b.Pos),
		FreeJoint:  b.FreeJoint,
	}
	for _, j := range b.Joints {
		c.Joints = append(c.Joints, j.Clone())
	}
	for _, g := range b.Geoms {
		c.Geoms = append(c.Geoms, g.Clone())
	}
	for _, ch := range b.Bodies {
		c.Bodies = append(c.Bodies, ch.Clone())
	}
	return c
}

func (j *Joint) Clone() *Joint {
	if j == nil {
		return nil
	}
	c := *j
	c.Axis = cloneVec(j.Axis)
	c.Armature = cloneFloat(j.Armature)
	c.Damping = cloneFloat(j.Damping)
	c.Frictionloss = cloneFloat(j.Frictionloss)
	return &c
}

func (g *Geom) Clone() *Geom {
	if g == nil {
		return nil
	}
	c := *g
	c.Size = append([]float64(nil), g.Size...)
	c.Pos = cloneVec(g.Pos)
	c.Mass = cloneFloat(g.Mass)
	c.Condim = cloneInt(g.Condim)
	c.Contype = cloneInt(g.Contype)
	c.Conaffinity = cloneInt(g.Conaffinity)
	c.Group = cloneInt(g.Group)
	return &c
}

func (l *Light) Clone() *Light {
	if l == nil {
		return nil
	}
	return &Light{Name: l.Name, Pos: cloneVec(l.Pos)}
}

func (m *Motor) Clone() *Motor {
	if m == nil {
		return nil
	}
	c := *m
	if m.CtrlRange != nil {
		r := *m.CtrlRange
		c.CtrlRange = &r
	}
	return &c
}

func cloneAsset(a Asset) Asset {
	switch v := a.(type) {
	case *Texture:
		c := *v
		c.RGB1 = cloneVec(v.RGB1)
		return &c
	case *Material:
		c := *v
		return &c
	case *Mesh:
		return &Mesh{Name: v.Name, Vertex: append([]float64(nil), v.Vertex...)}
	default:
		return a
	}
}
