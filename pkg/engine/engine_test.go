package engine

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestEvaluateBlankSource(t *testing.T) {
	for _, src := range []string{"", "   \n\t  \n  "} {
		r, evalErrs, err := NewEngine().Evaluate(src)
		if err != nil || len(evalErrs) > 0 {
			t.Fatalf("Evaluate(%q): err=%v evalErrs=%v", src, err, evalErrs)
		}
		if r == nil || !r.IsZero() {
			t.Errorf("Evaluate(%q) = %+v, want empty recipe", src, r)
		}
	}
}

func TestEvaluatePlainLispRecordsNothing(t *testing.T) {
	r, evalErrs, err := NewEngine().Evaluate("(def pitch 19)\n(* pitch 3)")
	if err != nil || len(evalErrs) > 0 {
		t.Fatalf("err=%v evalErrs=%v", err, evalErrs)
	}
	if r == nil || !r.IsZero() {
		t.Errorf("got %+v, want empty recipe", r)
	}
}

func TestEvaluateFailures(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"unclosed form", `(cube :name "x"`},
		{"undefined symbol", "(cube :actuators no-such-symbol)"},
		{"second line", "(textures :resolution 64)\n(render :output"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, evalErrs, err := NewEngine().Evaluate(tt.source)
			if err != nil {
				t.Fatalf("want eval errors, got fatal %v", err)
			}
			if r != nil {
				t.Errorf("want nil recipe, got %+v", r)
			}
			if len(evalErrs) == 0 || evalErrs[0].Message == "" {
				t.Fatalf("want a described eval error, got %v", evalErrs)
			}
		})
	}
}

func TestEvaluateUsesFreshSandbox(t *testing.T) {
	eng := NewEngine()
	if _, _, err := eng.Evaluate("(def res 64)\n(textures :resolution res)"); err != nil {
		t.Fatal(err)
	}
	r, evalErrs, err := eng.Evaluate("(textures :resolution res)")
	if err != nil {
		t.Fatal(err)
	}
	if r != nil || len(evalErrs) == 0 {
		t.Errorf("definition leaked between evaluations: recipe=%+v", r)
	}
}

func TestAwait(t *testing.T) {
	t.Run("result", func(t *testing.T) {
		ch := make(chan evalResult, 1)
		want := &Recipe{}
		ch <- evalResult{recipe: want}
		got, _, err := await(context.Background(), ch)
		if err != nil || got != want {
			t.Errorf("await = %v, %v", got, err)
		}
	})
	t.Run("deadline", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		_, _, err := await(ctx, make(chan evalResult))
		if !errors.Is(err, ErrTimeout) {
			t.Errorf("err = %v, want ErrTimeout", err)
		}
	})
	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, _, err := await(ctx, make(chan evalResult))
		if !errors.Is(err, context.Canceled) {
			t.Errorf("err = %v, want context.Canceled", err)
		}
	})
}

func TestZeroTimeoutFallsBackToDefault(t *testing.T) {
	r, _, err := (&Engine{}).Evaluate("(cube :name \"Zero\")")
	if err != nil {
		t.Fatal(err)
	}
	if r == nil || r.Name == nil || *r.Name != "Zero" {
		t.Errorf("got %+v", r)
	}
}

func TestEvalErrorString(t *testing.T) {
	if s := (EvalError{Line: 5, Message: "bad form"}).Error(); s != "line 5: bad form" {
		t.Errorf("Error() = %q", s)
	}
	if s := (EvalError{Message: "no location"}).Error(); s != "no location" {
		t.Errorf("Error() = %q", s)
	}
}

func TestParseZygomysError(t *testing.T) {
	tests := []struct {
		msg      string
		wantLine int
		wantMsg  string
	}{
		{"Error on line 5: unexpected token\n", 5, "unexpected token"},
		{"error on line 12: missing paren", 12, "missing paren"},
		{"line 3: cube: unknown keyword :bogus", 3, "unknown keyword"},
		{"some generic error", 0, "some generic error"},
	}
	for _, tt := range tests {
		errs := parseZygomysError(errors.New(tt.msg))
		if len(errs) != 1 {
			t.Fatalf("%q: got %d errors", tt.msg, len(errs))
		}
		if errs[0].Line != tt.wantLine || !strings.Contains(errs[0].Message, tt.wantMsg) {
			t.Errorf("%q: got %+v", tt.msg, errs[0])
		}
	}
}

func TestEvaluateAbandonsRunawayRecipe(t *testing.T) {
	eng := &Engine{Timeout: 50 * time.Millisecond}
	start := time.Now()
	_, _, err := eng.Evaluate("(for [(def i 0) true (set i (+ i 1))] i)")
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("err = %v, want ErrTimeout", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("returned after %s, want about the engine timeout", elapsed)
	}
}
