package mjcf

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Kind enumerates the element kinds of the document.
type Kind int

const (
	KindBody Kind = iota
	KindJoint
	KindGeom
	KindLight
	KindTexture
	KindMaterial
	KindMesh
	KindDefault
	KindMotor
)

func (k Kind) String() string {
	switch k {
	case KindBody:
		return "body"
	case KindJoint:
		return "joint"
	case KindGeom:
		return "geom"
	case KindLight:
		return "light"
	case KindTexture:
		return "texture"
	case KindMaterial:
		return "material"
	case KindMesh:
		return "mesh"
	case KindDefault:
		return "default"
	case KindMotor:
		return "motor"
	default:
		return "unknown"
	}
}

// Element is implemented by every typed element.
type Element interface {
	Kind() Kind
}

// Float returns a pointer to v, for optional numeric attributes.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v, for optional integer attributes.
func Int(v int) *int { return &v }

// Vec returns a pointer to v.
func Vec(v v3.Vec) *v3.Vec { return &v }

// Document is the root <mujoco> element.
type Document struct {
	Model     string
	Compiler  *Compiler
	Option    *Option
	Size      *Size
	Visual    *Visual
	Statistic *Statistic
	Default   *Default
	Asset     *AssetSection
	Worldbody Worldbody
	Actuator  []*Motor
}

// Compiler holds <compiler> settings.
type Compiler struct {
	Autolimits bool
	Angle      string
	TextureDir string
}

// Option holds <option> solver settings.
type Option struct {
	Timestep   float64
	Integrator string
}

// Size holds <size> settings.
type Size struct {
	Memory string
}

// Visual holds <visual> settings.
type Visual struct {
	Headlight *Headlight
	Global    *VisualGlobal
}

// Headlight holds <visual><headlight> colors.
type Headlight struct {
	Diffuse  v3.Vec
	Ambient  v3.Vec
	Specular v3.Vec
}

// VisualGlobal holds the free camera orientation.
type VisualGlobal struct {
	Azimuth   float64
	Elevation float64
}

// Statistic holds <statistic> overrides.
type Statistic struct {
	Extent   float64
	Meansize float64
}

// Default is a default class. The unnamed top-level <default> has an
// empty Class.
type Default struct {
	Class    string
	Geom     *Geom
	Joint    *Joint
	Motor    *Motor
	Children []*Default
}

func (*Default) Kind() Kind { return KindDefault }

// Find returns the class named class in the subtree rooted at d.
func (d *Default) Find(class string) *Default {
	if d == nil {
		return nil
	}
	if d.Class == class {
		return d
	}
	for _, c := range d.Children {
		if f := c.Find(class); f != nil {
			return f
		}
	}
	return nil
}

// Worldbody is the <worldbody> element.
type Worldbody struct {
	Lights []*Light
	Bodies []*Body
}

// Body is a rigid body with its joints, geoms and child bodies.
type Body struct {
	Name       string
	ChildClass string
	Pos        *v3.Vec
	FreeJoint  bool
	Joints     []*Joint
	Geoms      []*Geom
	Bodies     []*Body
}

func (*Body) Kind() Kind { return KindBody }

// Joint is a <joint>. An empty Type inherits the class default.
type Joint struct {
	Name         string
	Type         string
	Axis         *v3.Vec
	Armature     *float64
	Damping      *float64
	Frictionloss *float64
}

func (*Joint) Kind() Kind { return KindJoint }

// Geom is a <geom>.
type Geom struct {
	Name        string
	Class       string
	Type        string
	Size        []float64
	Mesh        string
	Material    string
	Pos         *v3.Vec
	Mass        *float64
	Condim      *int
	Contype     *int
	Conaffinity *int
	Group       *int
}

func (*Geom) Kind() Kind { return KindGeom }

// Light is a <light>.
type Light struct {
	Name string
	Pos  *v3.Vec
}

func (*Light) Kind() Kind { return KindLight }

// Motor is an actuator <motor>, also used inside default classes.
type Motor struct {
	Name      string
	Joint     string
	CtrlRange *[2]float64
}

func (*Motor) Kind() Kind { return KindMotor }
