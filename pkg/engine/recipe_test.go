package engine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// Preprocessing tests
// ---------------------------------------------------------------------------

func TestPreprocessKeywords(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "simple keyword",
			input:  `(cube :name "Cube")`,
			expect: `(cube "__kw_name" "Cube")`,
		},
		{
			name:   "multiple keywords",
			input:  `(render :precision 6 :output "x.xml")`,
			expect: `(render "__kw_precision" 6 "__kw_output" "x.xml")`,
		},
		{
			name:   "keyword in string preserved",
			input:  `"thing with :keyword inside"`,
			expect: `"thing with :keyword inside"`,
		},
		{
			name:   "escaped quote in string",
			input:  `"a \" :b" :c`,
			expect: `"a \" :b" "__kw_c"`,
		},
		{
			name:   "backtick string preserved",
			input:  "`raw :text`",
			expect: "`raw :text`",
		},
		{
			name:   "assignment operator preserved",
			input:  `(def x := 10)`,
			expect: `(def x := 10)`,
		},
		{
			name:   "kebab-case identifier",
			input:  `(my-form :zero-threshold 1)`,
			expect: `(my_form "__kw_zero-threshold" 1)`,
		},
		{
			name:   "minus operator preserved",
			input:  `(- 10 5)`,
			expect: `(- 10 5)`,
		},
		{
			name:   "negative number after identifier",
			input:  `(- x-1)`,
			expect: `(- x-1)`,
		},
		{
			name:   "comment converted to // style",
			input:  `;; comment with :keyword`,
			expect: `// comment with :keyword`,
		},
		{
			name:   "single semicolon comment",
			input:  "; simple comment\n(cube)",
			expect: "// simple comment\n(cube)",
		},
		{
			name:   "unterminated string",
			input:  `"open :kw`,
			expect: `"open :kw`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := preprocessSource(tt.input)
			if got != tt.expect {
				t.Errorf("preprocessSource(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Recipe forms
// ---------------------------------------------------------------------------

func evalRecipe(t *testing.T, source string) *Recipe {
	t.Helper()
	r, evalErrs, err := NewEngine().Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	if r == nil {
		t.Fatal("expected non-nil recipe")
	}
	return r
}

func TestFullRecipe(t *testing.T) {
	r := evalRecipe(t, `
; reference cube
(cube :name "Cube 3x3x3" :actuators false :assets "textures")
(render :output "out/cube.xml" :precision 8 :zero-threshold 0.0001)
(textures :resolution 128)
`)
	if r.Name == nil || *r.Name != "Cube 3x3x3" {
		t.Errorf("name = %v", r.Name)
	}
	if r.Actuators == nil || *r.Actuators {
		t.Errorf("actuators = %v, want false", r.Actuators)
	}
	if r.AssetsDir == nil || *r.AssetsDir != "textures" {
		t.Errorf("assets = %v", r.AssetsDir)
	}
	if r.Output == nil || *r.Output != "out/cube.xml" {
		t.Errorf("output = %v", r.Output)
	}
	if r.Precision == nil || *r.Precision != 8 {
		t.Errorf("precision = %v", r.Precision)
	}
	if r.ZeroThreshold == nil || *r.ZeroThreshold != 0.0001 {
		t.Errorf("zero-threshold = %v", r.ZeroThreshold)
	}
	if r.TextureResolution == nil || *r.TextureResolution != 128 {
		t.Errorf("resolution = %v", r.TextureResolution)
	}
}

func TestPartialRecipe(t *testing.T) {
	r := evalRecipe(t, `(cube :actuators true)`)
	if r.Actuators == nil || !*r.Actuators {
		t.Errorf("actuators = %v, want true", r.Actuators)
	}
	if r.Name != nil || r.Output != nil || r.Precision != nil {
		t.Errorf("unset fields should stay nil: %+v", r)
	}
}

func TestLaterFormOverrides(t *testing.T) {
	r := evalRecipe(t, `
(cube :name "first")
(cube :name "second")
`)
	if *r.Name != "second" {
		t.Errorf("name = %q, want second", *r.Name)
	}
}

func TestVariableReference(t *testing.T) {
	r := evalRecipe(t, `
(def res 64)
(textures :resolution (* res 2))
`)
	if *r.TextureResolution != 128 {
		t.Errorf("resolution = %d, want 128", *r.TextureResolution)
	}
}

func TestIntegerAcceptedAsFloat(t *testing.T) {
	r := evalRecipe(t, `(render :zero-threshold 0)`)
	if r.ZeroThreshold == nil || *r.ZeroThreshold != 0 {
		t.Errorf("zero-threshold = %v", r.ZeroThreshold)
	}
}

func TestRecipeErrors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		wantMsg string
	}{
		{"unknown keyword", `(cube :colour "red")`, ":colour"},
		{"wrong type", `(cube :name 5)`, "expected string"},
		{"bool expected", `(cube :actuators "yes")`, "expected true or false"},
		{"integer expected", `(render :precision 6.5)`, "expected integer"},
		{"positional argument", `(textures 256)`, "positional"},
		{"keyword as value", `(cube :name :assets)`, "expected string"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, evalErrs, err := NewEngine().Evaluate(tt.source)
			if err != nil {
				t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
			}
			if r != nil {
				t.Fatalf("expected nil recipe, got %+v", r)
			}
			if len(evalErrs) == 0 {
				t.Fatal("expected an eval error")
			}
			if !strings.Contains(evalErrs[0].Message, tt.wantMsg) {
				t.Errorf("message = %q, want containing %q", evalErrs[0].Message, tt.wantMsg)
			}
		})
	}
}

func TestEvaluateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cube.zy")
	if err := os.WriteFile(path, []byte(`(cube :name "file")`), 0o644); err != nil {
		t.Fatal(err)
	}
	r, err := NewEngine().EvaluateFile(path)
	if err != nil {
		t.Fatalf("EvaluateFile: %v", err)
	}
	if *r.Name != "file" {
		t.Errorf("name = %q", *r.Name)
	}

	bad := filepath.Join(t.TempDir(), "bad.zy")
	if err := os.WriteFile(bad, []byte(`(cube :nope 1)`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewEngine().EvaluateFile(bad); err == nil || !strings.Contains(err.Error(), "bad.zy") {
		t.Errorf("expected error naming the file, got %v", err)
	}

	if _, err := NewEngine().EvaluateFile(filepath.Join(t.TempDir(), "missing.zy")); err == nil {
		t.Error("expected error for missing file")
	}
}
