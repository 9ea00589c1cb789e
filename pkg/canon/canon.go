// Package canon normalizes a raw document into its stable serialized form.
package canon

import (
	"errors"
	"fmt"

	"github.com/chazu/twisty/pkg/mjcf"
)

// ErrMalformedDocument is returned when a required section is missing.
var ErrMalformedDocument = errors.New("malformed document")

// Options control canonicalization.
type Options struct {
	AssetsDir string
	Format    mjcf.Format
}

// DefaultOptions returns the settings of the reference output.
func DefaultOptions() Options {
	return Options{AssetsDir: "assets", Format: mjcf.DefaultFormat}
}

// Canonicalize returns a normalized copy of d. The input is not modified
// and canonicalizing a canonical document returns an equal document.
func Canonicalize(d *mjcf.Document, opts Options) (*mjcf.Document, error) {
	if d == nil {
		return nil, fmt.Errorf("%w: nil document", ErrMalformedDocument)
	}
	switch {
	case d.Compiler == nil:
		return nil, fmt.Errorf("%w: missing compiler section", ErrMalformedDocument)
	case d.Default == nil:
		return nil, fmt.Errorf("%w: missing default section", ErrMalformedDocument)
	case d.Asset == nil:
		return nil, fmt.Errorf("%w: missing asset section", ErrMalformedDocument)
	}

	out := d.Clone()
	switch {
	case opts.AssetsDir != "":
		out.Compiler.TextureDir = opts.AssetsDir
	case out.Compiler.TextureDir == "":
		out.Compiler.TextureDir = DefaultOptions().AssetsDir
	}
	normalizeTextures(out.Asset)
	stripNames(out)
	if err := hoistSynthetic(out); err != nil {
		return nil, err
	}
	reorderAssets(out.Asset)
	return out, nil
}

// normalizeTextures drops the deduplication digest from file references
// and the name attribute, leaving the file as the texture's identity.
// Named textures without a file (the skybox) only lose their name.
func normalizeTextures(a *mjcf.AssetSection) {
	for _, t := range a.Textures() {
		t.File.Digest = ""
		t.Name = ""
	}
}

// stripNames removes generation-only identifiers from lights and geoms.
func stripNames(d *mjcf.Document) {
	for _, l := range d.Worldbody.Lights {
		l.Name = ""
	}
	for _, b := range mjcf.Bodies(d) {
		for _, g := range b.Geoms {
			g.Name = ""
		}
	}
}

// hoistSynthetic replaces the synthetic wrapper class by its content: the
// wrapper's own geom, joint and motor defaults move onto the top-level
// default and its child classes take its place.
func hoistSynthetic(d *mjcf.Document) error {
	top := d.Default
	var children []*mjcf.Default
	for _, c := range top.Children {
		if c.Class != mjcf.SyntheticClass {
			children = append(children, c)
			continue
		}
		if err := merge(top, c); err != nil {
			return err
		}
		children = append(children, c.Children...)
	}
	top.Children = children
	if top.Find(mjcf.SyntheticClass) != nil {
		return fmt.Errorf("%w: nested %q default class", ErrMalformedDocument, mjcf.SyntheticClass)
	}
	return nil
}

func merge(top, w *mjcf.Default) error {
	if w.Geom != nil {
		if top.Geom != nil {
			return fmt.Errorf("%w: geom defaults set both inside and outside %q", ErrMalformedDocument, mjcf.SyntheticClass)
		}
		top.Geom = w.Geom
	}
	if w.Joint != nil {
		if top.Joint != nil {
			return fmt.Errorf("%w: joint defaults set both inside and outside %q", ErrMalformedDocument, mjcf.SyntheticClass)
		}
		top.Joint = w.Joint
	}
	if w.Motor != nil {
		if top.Motor != nil {
			return fmt.Errorf("%w: motor defaults set both inside and outside %q", ErrMalformedDocument, mjcf.SyntheticClass)
		}
		top.Motor = w.Motor
	}
	return nil
}

// reorderAssets groups declarations into textures, materials and meshes,
// keeping declaration order within each group.
func reorderAssets(a *mjcf.AssetSection) {
	items := make([]mjcf.Asset, 0, len(a.Items))
	for _, k := range []mjcf.Kind{mjcf.KindTexture, mjcf.KindMaterial, mjcf.KindMesh} {
		for _, it := range a.Items {
			if it.Kind() == k {
				items = append(items, it)
			}
		}
	}
	a.Items = items
}

// Render canonicalizes d and serializes it.
func Render(d *mjcf.Document, opts Options) ([]byte, error) {
	c, err := Canonicalize(d, opts)
	if err != nil {
		return nil, err
	}
	return mjcf.Marshal(c, opts.Format)
}
