package sketch

import (
	"github.com/go-gl/mathgl/mgl32"
)

func IdentityTransform() Transform {
	return Transform{Scale: mgl32.Vec3{1, 1, 1}}
}

// Quat returns the rotation as a unit quaternion (XYZ euler order).
func (t Transform) Quat() mgl32.Quat {
	r := t.RotationDegrees
	return mgl32.AnglesToQuat(
		mgl32.DegToRad(r.X()),
		mgl32.DegToRad(r.Y()),
		mgl32.DegToRad(r.Z()), mgl32.XYZ)
}

// Mat4 returns the affine matrix translate * rotate * scale.
func (t Transform) Mat4() mgl32.Mat4 {
	translate := mgl32.Translate3D(t.Translation.X(), t.Translation.Y(), t.Translation.Z())
	rotate := t.Quat().Mat4()
	scale := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())
	return translate.Mul4(rotate).Mul4(scale)
}

// IsIdentity reports whether the transform is (numerically) the neutral
// element of composition.
func (t Transform) IsIdentity() bool {
	const eps = 1e-6
	return t.Translation.Len() < eps &&
		t.RotationDegrees.Len() < eps &&
		t.Scale.Sub(mgl32.Vec3{1, 1, 1}).Len() < eps
}
