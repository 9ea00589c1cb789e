package sdfx

import (
	"math"
	"testing"
)

const eps = 1e-12

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestBoxIsCentered(t *testing.T) {
	k := New()
	box, err := k.Box(0.019, 0.019, 0.019)
	if err != nil {
		t.Fatalf("Box failed: %v", err)
	}
	min, max := box.BoundingBox()
	for i := 0; i < 3; i++ {
		if !near(min[i], -0.0095) || !near(max[i], 0.0095) {
			t.Fatalf("axis %d: bbox [%g, %g], want [-0.0095, 0.0095]", i, min[i], max[i])
		}
	}
}

func TestBoxRejectsNegativeSize(t *testing.T) {
	k := New()
	if _, err := k.Box(-1, 1, 1); err == nil {
		t.Fatal("expected error for negative size")
	}
}

func TestTranslate(t *testing.T) {
	k := New()
	box, err := k.Box(2, 2, 2)
	if err != nil {
		t.Fatalf("Box failed: %v", err)
	}
	moved := k.Translate(box, 10, 0, -5)
	min, max := moved.BoundingBox()
	want := [2][3]float64{{9, -1, -6}, {11, 1, -4}}
	for i := 0; i < 3; i++ {
		if !near(min[i], want[0][i]) || !near(max[i], want[1][i]) {
			t.Fatalf("axis %d: bbox [%g, %g], want [%g, %g]", i, min[i], max[i], want[0][i], want[1][i])
		}
	}
}

func TestUnion(t *testing.T) {
	k := New()
	a, _ := k.Box(1, 1, 1)
	b, _ := k.Box(1, 1, 1)
	u := k.Union(a, k.Translate(b, 3, 0, 0))
	min, max := u.BoundingBox()
	if !near(min[0], -0.5) || !near(max[0], 3.5) {
		t.Fatalf("x extent [%g, %g], want [-0.5, 3.5]", min[0], max[0])
	}
	if !near(max[1]-min[1], 1) {
		t.Fatalf("y size %g, want 1", max[1]-min[1])
	}
}
