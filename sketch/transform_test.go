package sketch

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestTransformMat4(t *testing.T) {
	tr := Transform{
		Translation:     mgl32.Vec3{1, 2, 3},
		RotationDegrees: mgl32.Vec3{0, 0, 90},
		Scale:           mgl32.Vec3{2, 2, 2},
	}
	// local +X under a 90deg Z rotation and scale 2 lands at +2Y
	got := mgl32.TransformCoordinate(mgl32.Vec3{1, 0, 0}, tr.Mat4())
	want := mgl32.Vec3{1, 4, 3}
	if !got.ApproxEqualThreshold(want, 1e-5) {
		t.Errorf("transformed point = %v; expected %v", got, want)
	}
}

func TestTransformIsIdentity(t *testing.T) {
	if !IdentityTransform().IsIdentity() {
		t.Error("IdentityTransform() not identity")
	}
	tr := IdentityTransform()
	tr.Translation = mgl32.Vec3{0.1, 0, 0}
	if tr.IsIdentity() {
		t.Error("translated transform reported as identity")
	}
}

func TestComposeWorldChain(t *testing.T) {
	parts := []Part{
		{
			Name:   "Root",
			Prim:   Primitive{Kind: KindBox, Dimensions: mgl32.Vec3{1, 1, 1}},
			Local:  Transform{Translation: mgl32.Vec3{0, 0, 1}, Scale: mgl32.Vec3{1, 1, 1}},
			Parent: NoParent,
		},
		{
			Name:   "Child",
			Prim:   Primitive{Kind: KindBox, Dimensions: mgl32.Vec3{1, 1, 1}},
			Local:  Transform{Translation: mgl32.Vec3{2, 0, 0}, Scale: mgl32.Vec3{1, 1, 1}},
			Parent: 0,
		},
	}
	world, err := ComposeWorld(parts)
	if err != nil {
		t.Fatalf("ComposeWorld() = %v", err)
	}
	got := world[1].Col(3).Vec3()
	want := mgl32.Vec3{2, 0, 1}
	if !got.ApproxEqualThreshold(want, 1e-5) {
		t.Errorf("child world position = %v; expected %v", got, want)
	}
}

func TestComposeWorldRejectsForwardParent(t *testing.T) {
	parts := []Part{
		{Name: "Root", Local: IdentityTransform(), Parent: NoParent},
		{Name: "Bad", Local: IdentityTransform(), Parent: 1},
	}
	if _, err := ComposeWorld(parts); err == nil {
		t.Error("ComposeWorld() accepted self-parent")
	}
}

func TestComposeWorldRejectsSecondRoot(t *testing.T) {
	parts := []Part{
		{Name: "Root", Local: IdentityTransform(), Parent: NoParent},
		{Name: "Another", Local: IdentityTransform(), Parent: NoParent},
	}
	if _, err := ComposeWorld(parts); err == nil {
		t.Error("ComposeWorld() accepted second root")
	}
}

func TestWorldBounds(t *testing.T) {
	parts := []Part{
		{
			Name:   "Root",
			Prim:   Primitive{Kind: KindBox, Dimensions: mgl32.Vec3{2, 2, 2}},
			Local:  Transform{Translation: mgl32.Vec3{0, 0, 1}, Scale: mgl32.Vec3{1, 1, 1}},
			Parent: NoParent,
		},
	}
	box, err := WorldBounds(parts)
	if err != nil {
		t.Fatalf("WorldBounds() = %v", err)
	}
	if !box.Min.ApproxEqualThreshold(mgl32.Vec3{-1, -1, 0}, 1e-5) ||
		!box.Max.ApproxEqualThreshold(mgl32.Vec3{1, 1, 2}, 1e-5) {
		t.Errorf("bounds = %v..%v; expected [-1,-1,0]..[1,1,2]", box.Min, box.Max)
	}
}
