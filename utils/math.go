package utils

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// QuatToEulerDegrees converts a unit quaternion to XYZ euler angles in
// degrees.
func QuatToEulerDegrees(q mgl32.Quat) mgl32.Vec3 {
	var e mgl32.Vec3

	sinrCosp := float64(2 * (q.W*q.X() + q.Y()*q.Z()))
	cosrCosp := float64(1 - 2*(q.X()*q.X()+q.Y()*q.Y()))
	e[0] = float32(math.Atan2(sinrCosp, cosrCosp))

	sinp := float64(2 * (q.W*q.Y() - q.Z()*q.X()))
	if math.Abs(sinp) >= 1 {
		e[1] = math.Pi / 2
		if sinp < 0 {
			e[1] *= -1
		}
	} else {
		e[1] = float32(math.Asin(sinp))
	}

	sinyCosp := float64(2 * (q.W*q.Z() + q.X()*q.Y()))
	cosyCosp := float64(1 - 2*(q.Y()*q.Y()+q.Z()*q.Z()))
	e[2] = float32(math.Atan2(sinyCosp, cosyCosp))

	return mgl32.Vec3{
		mgl32.RadToDeg(e[0]),
		mgl32.RadToDeg(e[1]),
		mgl32.RadToDeg(e[2]),
	}
}

// EulerDegreesToQuat converts XYZ euler degrees to a unit quaternion.
func EulerDegreesToQuat(v mgl32.Vec3) mgl32.Quat {
	return mgl32.AnglesToQuat(
		mgl32.DegToRad(v.X()),
		mgl32.DegToRad(v.Y()),
		mgl32.DegToRad(v.Z()), mgl32.XYZ)
}

func IsFinite32(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func Vec3To64(v mgl32.Vec3) []float64 {
	return []float64{float64(v.X()), float64(v.Y()), float64(v.Z())}
}
