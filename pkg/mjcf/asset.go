package mjcf

import (
	"regexp"
	"strings"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Asset is a declared resource inside <asset>.
type Asset interface {
	Element
	asset() // marker method restricting implementations to this package
}

// AssetSection is the ordered <asset> element.
type AssetSection struct {
	Items []Asset
}

// Textures returns the texture declarations in order.
func (a *AssetSection) Textures() []*Texture {
	var out []*Texture
	for _, it := range a.Items {
		if t, ok := it.(*Texture); ok {
			out = append(out, t)
		}
	}
	return out
}

// Materials returns the material declarations in order.
func (a *AssetSection) Materials() []*Material {
	var out []*Material
	for _, it := range a.Items {
		if m, ok := it.(*Material); ok {
			out = append(out, m)
		}
	}
	return out
}

// Meshes returns the mesh declarations in order.
func (a *AssetSection) Meshes() []*Mesh {
	var out []*Mesh
	for _, it := range a.Items {
		if m, ok := it.(*Mesh); ok {
			out = append(out, m)
		}
	}
	return out
}

// FileRef is a texture file reference. Digest is a deduplication suffix
// carried by raw documents ("blue_red-<digest>.png"); canonical references
// have none.
type FileRef struct {
	Stem   string
	Digest string
	Ext    string
}

// IsZero reports whether the reference is unset.
func (f FileRef) IsZero() bool {
	return f.Stem == "" && f.Digest == "" && f.Ext == ""
}

func (f FileRef) String() string {
	if f.IsZero() {
		return ""
	}
	if f.Digest == "" {
		return f.Stem + f.Ext
	}
	return f.Stem + "-" + f.Digest + f.Ext
}

var suffixedFile = regexp.MustCompile(`^([a-zA-Z]+(?:_[a-zA-Z]+)*)-(\w+)(\.png)$`)

// ParseFileRef splits a file name back into stem, digest and extension.
func ParseFileRef(s string) FileRef {
	if s == "" {
		return FileRef{}
	}
	if m := suffixedFile.FindStringSubmatch(s); m != nil {
		return FileRef{Stem: m[1], Digest: m[2], Ext: m[3]}
	}
	if i := strings.LastIndexByte(s, '.'); i > 0 {
		return FileRef{Stem: s[:i], Ext: s[i:]}
	}
	return FileRef{Stem: s}
}

// Texture is a <texture>. Name is an optional identifier; without one the
// texture is addressed by its file stem.
type Texture struct {
	Name       string
	Type       string
	Builtin    string
	Width      int
	Height     int
	File       FileRef
	GridSize   string
	GridLayout string
	RGB1       *v3.Vec
}

func (*Texture) Kind() Kind { return KindTexture }
func (*Texture) asset()     {}

// Identity returns the name materials use to refer to t.
func (t *Texture) Identity() string {
	if t.Name != "" {
		return t.Name
	}
	return t.File.Stem
}

// Material is a <material> bound to a texture.
type Material struct {
	Name    string
	Texture string
}

func (*Material) Kind() Kind { return KindMaterial }
func (*Material) asset()     {}

// Mesh is a <mesh> given by inline vertices.
type Mesh struct {
	Name   string
	Vertex []float64
}

func (*Mesh) Kind() Kind { return KindMesh }
func (*Mesh) asset()     {}
