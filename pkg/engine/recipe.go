package engine

import (
	"fmt"
	"sort"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"
)

// Recipe holds the generation settings a script sets. Nil fields were not
// mentioned and keep whatever value the caller already has.
type Recipe struct {
	Name              *string
	Output            *string
	AssetsDir         *string
	Actuators         *bool
	Precision         *int
	ZeroThreshold     *float64
	TextureResolution *int
}

// IsZero reports whether the recipe sets nothing.
func (r *Recipe) IsZero() bool {
	return r == nil || *r == Recipe{}
}

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// isKW reports whether s is a preprocessed keyword and returns its name.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok || !strings.HasPrefix(str.S, kwPrefix) {
		return "", false
	}
	return str.S[len(kwPrefix):], true
}

// kwArgs holds a call's keyword and positional arguments.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates keyword arguments from positional ones. A keyword at
// the end of the list is bound to nil.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		if !ok {
			result.positional = append(result.positional, args[i])
			continue
		}
		if i+1 < len(args) {
			result.kw[name] = args[i+1]
			i++
		} else {
			result.kw[name] = zygo.SexpNull
		}
	}
	return result
}

// only rejects keywords outside allowed.
func (a kwArgs) only(fn string, allowed ...string) error {
	var extra []string
	for k := range a.kw {
		found := false
		for _, al := range allowed {
			if k == al {
				found = true
				break
			}
		}
		if !found {
			extra = append(extra, ":"+k)
		}
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		return fmt.Errorf("%s: unknown keyword %s", fn, strings.Join(extra, ", "))
	}
	if len(a.positional) > 0 {
		return fmt.Errorf("%s: unexpected positional argument %s", fn, a.positional[0].SexpString(nil))
	}
	return nil
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		if _, kw := isKW(s); !kw {
			return str.S, nil
		}
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

func toBool(s zygo.Sexp) (bool, error) {
	if b, ok := s.(*zygo.SexpBool); ok {
		return b.Val, nil
	}
	return false, fmt.Errorf("expected true or false, got %T (%s)", s, s.SexpString(nil))
}

// setter binds one keyword to a recipe field.
type setter func(zygo.Sexp) error

func stringField(dst **string) setter {
	return func(s zygo.Sexp) error {
		v, err := toString(s)
		if err != nil {
			return err
		}
		*dst = &v
		return nil
	}
}

func intField(dst **int) setter {
	return func(s zygo.Sexp) error {
		v, err := toInt(s)
		if err != nil {
			return err
		}
		*dst = &v
		return nil
	}
}

func floatField(dst **float64) setter {
	return func(s zygo.Sexp) error {
		v, err := toFloat64(s)
		if err != nil {
			return err
		}
		*dst = &v
		return nil
	}
}

func boolField(dst **bool) setter {
	return func(s zygo.Sexp) error {
		v, err := toBool(s)
		if err != nil {
			return err
		}
		*dst = &v
		return nil
	}
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the recipe forms. Each form writes the keywords
// it is given into r; a later form overrides an earlier one.
//
//	(cube :name "Cube 3x3x3" :actuators true :assets "assets")
//	(render :output "cube_3x3x3.xml" :precision 6 :zero-threshold 0.000001)
//	(textures :resolution 256)
func registerBuiltins(env *zygo.Zlisp, r *Recipe) {
	forms := map[string]map[string]setter{
		"cube": {
			"name":      stringField(&r.Name),
			"actuators": boolField(&r.Actuators),
			"assets":    stringField(&r.AssetsDir),
		},
		"render": {
			"output":         stringField(&r.Output),
			"precision":      intField(&r.Precision),
			"zero-threshold": floatField(&r.ZeroThreshold),
		},
		"textures": {
			"resolution": intField(&r.TextureResolution),
		},
	}
	for form, fields := range forms {
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		env.AddFunction(form, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			pa := parseArgs(args)
			if err := pa.only(name, keys...); err != nil {
				return zygo.SexpNull, err
			}
			for k, v := range pa.kw {
				if err := fields[k](v); err != nil {
					return zygo.SexpNull, fmt.Errorf("%s: %s: %w", name, k, err)
				}
			}
			return zygo.SexpNull, nil
		})
	}
}
