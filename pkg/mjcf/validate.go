package mjcf

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// ValidationSeverity indicates whether a finding makes the document unusable
// or is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // document is unusable
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	Kind     Kind   // element kind the finding is about
	Name     string // element name, empty for document-level findings
	Message  string
	Severity ValidationSeverity
}

func (e ValidationError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] %s %q: %s", e.Severity, e.Kind, e.Name, e.Message)
}

// Errors returns only the findings with SeverityError.
func Errors(findings []ValidationError) []ValidationError {
	var out []ValidationError
	for _, f := range findings {
		if f.Severity == SeverityError {
			out = append(out, f)
		}
	}
	return out
}

// Validate runs all structural checks and returns the findings. An empty
// result means the document is consistent. Validate never mutates d.
func Validate(d *Document) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateSections(d)...)
	errs = append(errs, validateNames(d)...)
	errs = append(errs, validateReferences(d)...)
	errs = append(errs, validateOrphans(d)...)
	errs = append(errs, validatePlacements(d)...)
	return errs
}

func docError(msg string, args ...any) ValidationError {
	return ValidationError{Message: fmt.Sprintf(msg, args...), Severity: SeverityError}
}

func elemError(k Kind, name, msg string, args ...any) ValidationError {
	return ValidationError{Kind: k, Name: name, Message: fmt.Sprintf(msg, args...), Severity: SeverityError}
}

// validateSections checks that the required top-level sections exist.
func validateSections(d *Document) []ValidationError {
	var errs []ValidationError
	if d.Compiler == nil {
		errs = append(errs, docError("missing <compiler> section"))
	}
	if d.Default == nil {
		errs = append(errs, docError("missing <default> section"))
	}
	if d.Asset == nil {
		errs = append(errs, docError("missing <asset> section"))
	}
	if len(d.Worldbody.Bodies) == 0 {
		errs = append(errs, ValidationError{Message: "worldbody has no bodies", Severity: SeverityWarning})
	}
	return errs
}

// validateNames checks that named elements are unique within their kind.
func validateNames(d *Document) []ValidationError {
	var errs []ValidationError
	seen := map[Kind]map[string]bool{}
	check := func(k Kind, name string) {
		if name == "" {
			return
		}
		if seen[k] == nil {
			seen[k] = map[string]bool{}
		}
		if seen[k][name] {
			errs = append(errs, elemError(k, name, "duplicate name"))
		}
		seen[k][name] = true
	}

	for _, b := range Bodies(d) {
		check(KindBody, b.Name)
		for _, j := range b.Joints {
			check(KindJoint, j.Name)
		}
		for _, g := range b.Geoms {
			check(KindGeom, g.Name)
		}
	}
	if d.Asset != nil {
		for _, t := range d.Asset.Textures() {
			check(KindTexture, t.Identity())
		}
		for _, m := range d.Asset.Materials() {
			check(KindMaterial, m.Name)
		}
		for _, m := range d.Asset.Meshes() {
			check(KindMesh, m.Name)
		}
	}
	for _, m := range d.Actuator {
		check(KindMotor, m.Name)
	}
	classes := map[string]bool{}
	var walk func(*Default)
	walk = func(c *Default) {
		if c.Class != "" {
			if classes[c.Class] {
				errs = append(errs, elemError(KindDefault, c.Class, "duplicate class"))
			}
			classes[c.Class] = true
		}
		for _, ch := range c.Children {
			walk(ch)
		}
	}
	if d.Default != nil {
		walk(d.Default)
	}
	return errs
}

// validateReferences checks that every name reference resolves.
func validateReferences(d *Document) []ValidationError {
	var errs []ValidationError

	materials, textures, meshes := map[string]bool{}, map[string]bool{}, map[string]bool{}
	if d.Asset != nil {
		for _, m := range d.Asset.Materials() {
			materials[m.Name] = true
		}
		for _, t := range d.Asset.Textures() {
			textures[t.Identity()] = true
		}
		for _, m := range d.Asset.Meshes() {
			meshes[m.Name] = true
		}
		for _, m := range d.Asset.Materials() {
			if m.Texture != "" && !textures[m.Texture] {
				errs = append(errs, elemError(KindMaterial, m.Name, "references unknown texture %q", m.Texture))
			}
		}
	}

	checkGeom := func(g *Geom, owner string) {
		if g.Material != "" && !materials[g.Material] {
			errs = append(errs, elemError(KindGeom, owner, "references unknown material %q", g.Material))
		}
		if g.Mesh != "" && !meshes[g.Mesh] {
			errs = append(errs, elemError(KindGeom, owner, "references unknown mesh %q", g.Mesh))
		}
		if g.Class != "" && d.Default.Find(g.Class) == nil {
			errs = append(errs, elemError(KindGeom, owner, "references unknown class %q", g.Class))
		}
	}

	var walkDefaults func(*Default)
	walkDefaults = func(c *Default) {
		if c.Geom != nil {
			checkGeom(c.Geom, "default "+c.Class)
		}
		for _, ch := range c.Children {
			walkDefaults(ch)
		}
	}
	if d.Default != nil {
		walkDefaults(d.Default)
	}

	joints := map[string]bool{}
	for _, b := range Bodies(d) {
		if b.ChildClass != "" && d.Default.Find(b.ChildClass) == nil {
			errs = append(errs, elemError(KindBody, b.Name, "references unknown class %q", b.ChildClass))
		}
		for _, j := range b.Joints {
			joints[j.Name] = true
		}
		for _, g := range b.Geoms {
			owner := g.Name
			if owner == "" {
				owner = b.Name
			}
			checkGeom(g, owner)
		}
	}
	for _, m := range d.Actuator {
		if !joints[m.Joint] {
			errs = append(errs, elemError(KindMotor, m.Name, "references unknown joint %q", m.Joint))
		}
	}
	return errs
}

// validateOrphans checks that every material is used by a geom and every
// file texture is used by a material.
func validateOrphans(d *Document) []ValidationError {
	if d.Asset == nil {
		return nil
	}
	var errs []ValidationError

	usedMaterials := map[string]bool{}
	for _, p := range Placements(d) {
		usedMaterials[p.Geom.Material] = true
	}
	usedTextures := map[string]bool{}
	for _, m := range d.Asset.Materials() {
		usedTextures[m.Texture] = true
		if !usedMaterials[m.Name] {
			errs = append(errs, elemError(KindMaterial, m.Name, "not referenced by any geom"))
		}
	}
	for _, t := range d.Asset.Textures() {
		if t.File.IsZero() {
			continue // builtin textures such as the skybox stand alone
		}
		if !usedTextures[t.Identity()] {
			errs = append(errs, elemError(KindTexture, t.Identity(), "not referenced by any material"))
		}
	}
	return errs
}

// validatePlacements checks that no two geoms share a world position.
func validatePlacements(d *Document) []ValidationError {
	var errs []ValidationError
	seen := map[v3.Vec]string{}
	for _, p := range Placements(d) {
		if prev, ok := seen[p.World]; ok {
			errs = append(errs, elemError(KindBody, p.Body.Name, "geom overlaps body %q at %v", prev, p.World))
			continue
		}
		seen[p.World] = p.Body.Name
	}
	return errs
}
