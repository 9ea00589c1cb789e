// Package config holds the generation options and loads them from YAML,
// TOML or recipe files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/chazu/twisty/pkg/assemble"
	"github.com/chazu/twisty/pkg/canon"
	"github.com/chazu/twisty/pkg/engine"
	"github.com/chazu/twisty/pkg/mjcf"
	"github.com/chazu/twisty/pkg/texture"
)

// ErrUnsupportedFormat is returned for config files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Options configure one generation run.
type Options struct {
	Name              string  `yaml:"name" toml:"name" validate:"required"`
	Output            string  `yaml:"output" toml:"output" validate:"required,xmlfile"`
	AssetsDir         string  `yaml:"assets_dir" toml:"assets_dir" validate:"required"`
	Actuators         bool    `yaml:"actuators" toml:"actuators"`
	Precision         int     `yaml:"precision" toml:"precision" validate:"gte=1,lte=17"`
	ZeroThreshold     float64 `yaml:"zero_threshold" toml:"zero_threshold" validate:"gte=0,lt=1"`
	TextureResolution int     `yaml:"texture_resolution" toml:"texture_resolution" validate:"gte=8,lte=4096"`
}

// Default returns the options that reproduce the reference model.
func Default() Options {
	return Options{
		Name:              "Cube 3x3x3",
		Output:            "cube_3x3x3.xml",
		AssetsDir:         "assets",
		Actuators:         true,
		Precision:         mjcf.DefaultFormat.Precision,
		ZeroThreshold:     mjcf.DefaultFormat.ZeroThreshold,
		TextureResolution: texture.DefaultResolution,
	}
}

// optionsValidate is shared by all Validate calls.
var optionsValidate *validator.Validate

func init() {
	optionsValidate = validator.New()
	_ = optionsValidate.RegisterValidation("xmlfile", validateXMLFile)
}

// validateXMLFile checks that a path names an .xml file.
func validateXMLFile(fl validator.FieldLevel) bool {
	p := fl.Field().String()
	return strings.EqualFold(filepath.Ext(p), ".xml") && filepath.Base(p) != ".xml"
}

// Validate checks field ranges.
func (o Options) Validate() error {
	if err := optionsValidate.Struct(o); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Load reads path over the defaults and validates the result. The format
// follows the extension: .yaml/.yml, .toml or .zy recipes. Fields the file
// does not mention keep their default.
func Load(path string) (Options, error) {
	o := Default()
	if err := o.Merge(path); err != nil {
		return Options{}, err
	}
	if err := o.Validate(); err != nil {
		return Options{}, err
	}
	return o, nil
}

// Merge overlays the settings in path onto o without validating.
func (o *Options) Merge(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".zy" {
		r, err := engine.NewEngine().EvaluateFile(path)
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		o.ApplyRecipe(r)
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	switch ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(o); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("config: %s: %w", path, err)
		}
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(o); err != nil {
			return fmt.Errorf("config: %s: %w", path, err)
		}
	default:
		return fmt.Errorf("config: %s: %w %q", path, ErrUnsupportedFormat, ext)
	}
	return nil
}

// ApplyRecipe copies every field the recipe sets.
func (o *Options) ApplyRecipe(r *engine.Recipe) {
	if r == nil {
		return
	}
	if r.Name != nil {
		o.Name = *r.Name
	}
	if r.Output != nil {
		o.Output = *r.Output
	}
	if r.AssetsDir != nil {
		o.AssetsDir = *r.AssetsDir
	}
	if r.Actuators != nil {
		o.Actuators = *r.Actuators
	}
	if r.Precision != nil {
		o.Precision = *r.Precision
	}
	if r.ZeroThreshold != nil {
		o.ZeroThreshold = *r.ZeroThreshold
	}
	if r.TextureResolution != nil {
		o.TextureResolution = *r.TextureResolution
	}
}

// Assemble returns the assembler settings.
func (o Options) Assemble() assemble.Options {
	return assemble.Options{Name: o.Name, AssetsDir: o.AssetsDir, Actuators: o.Actuators}
}

// Canon returns the canonicalization settings.
func (o Options) Canon() canon.Options {
	return canon.Options{
		AssetsDir: o.AssetsDir,
		Format:    mjcf.Format{Precision: o.Precision, ZeroThreshold: o.ZeroThreshold},
	}
}
