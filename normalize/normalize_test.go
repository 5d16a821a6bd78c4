package normalize

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/dreamfast/planner"
	"github.com/mogaika/dreamfast/sketch"
)

func planTugboat(t *testing.T) *sketch.Assembly {
	t.Helper()
	b, err := sketch.Allocate(10, 0)
	if err != nil {
		t.Fatal(err)
	}
	a, err := planner.Plan(planner.ObjectDescription{Name: "Tugboat"}, b)
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func TestNormalizeCanonicalVolume(t *testing.T) {
	a := planTugboat(t)
	n, err := Normalize(a)
	if err != nil {
		t.Fatalf("Normalize() = %v", err)
	}

	const eps = 1e-4
	if d := n.Bounds.LargestDim(); d < CanonicalSize-eps || d > CanonicalSize+eps {
		t.Errorf("largest extent = %v; expected %v", d, float32(CanonicalSize))
	}
	c := n.Bounds.Center()
	if mgl32.Abs(c.X()) > eps || mgl32.Abs(c.Y()) > eps {
		t.Errorf("center = %v; expected X/Y centered", c)
	}
	if mgl32.Abs(n.Bounds.Min.Z()) > eps {
		t.Errorf("min z = %v; expected resting on ground", n.Bounds.Min.Z())
	}
}

func TestNormalizePreservesAspect(t *testing.T) {
	a := planTugboat(t)
	before, err := sketch.WorldBounds(a.Parts)
	if err != nil {
		t.Fatal(err)
	}
	n, err := Normalize(a)
	if err != nil {
		t.Fatalf("Normalize() = %v", err)
	}

	bs, ns := before.Size(), n.Bounds.Size()
	ratioBefore := bs.X() / bs.Z()
	ratioAfter := ns.X() / ns.Z()
	if mgl32.Abs(ratioBefore-ratioAfter) > 1e-3 {
		t.Errorf("aspect ratio changed: %v -> %v", ratioBefore, ratioAfter)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	a := planTugboat(t)
	once, err := Normalize(a)
	if err != nil {
		t.Fatalf("Normalize() = %v", err)
	}
	twice, err := Normalize(once)
	if err != nil {
		t.Fatalf("Normalize(Normalize()) = %v", err)
	}
	for i := range once.Parts {
		d := once.Parts[i].Local.Translation.Sub(twice.Parts[i].Local.Translation).Len()
		if d > 1e-4 {
			t.Errorf("part %d moved on second normalize by %v", i, d)
		}
	}
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	a := planTugboat(t)
	rootBefore := a.Parts[0].Local
	if _, err := Normalize(a); err != nil {
		t.Fatalf("Normalize() = %v", err)
	}
	if a.Parts[0].Local != rootBefore {
		t.Error("input assembly mutated")
	}
}

func TestNormalizeRejectsEmpty(t *testing.T) {
	if _, err := Normalize(&sketch.Assembly{Name: "empty"}); err == nil {
		t.Error("Normalize() accepted empty assembly")
	}
}

func TestNormalizeRejectsDegenerate(t *testing.T) {
	a := &sketch.Assembly{
		Name: "dot",
		Parts: []sketch.Part{{
			Name:   "P",
			Prim:   sketch.Primitive{Kind: sketch.KindPlane, Dimensions: mgl32.Vec3{0, 0, 0}},
			Local:  sketch.Transform{Scale: mgl32.Vec3{1, 1, 1}},
			Parent: sketch.NoParent,
		}},
	}
	if _, err := Normalize(a); err == nil {
		t.Error("Normalize() accepted degenerate bounds")
	}
}
