package sketch

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Box is an axis aligned bounding box in whatever frame it was computed in.
type Box struct {
	Min mgl32.Vec3 `json:"min"`
	Max mgl32.Vec3 `json:"max"`
}

func EmptyBox() Box {
	inf := float32(math.Inf(1))
	return Box{
		Min: mgl32.Vec3{inf, inf, inf},
		Max: mgl32.Vec3{-inf, -inf, -inf},
	}
}

func (b Box) IsEmpty() bool {
	return b.Min.X() > b.Max.X()
}

func (b Box) ExtendPoint(p mgl32.Vec3) Box {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
	return b
}

func (b Box) Size() mgl32.Vec3 {
	if b.IsEmpty() {
		return mgl32.Vec3{}
	}
	return b.Max.Sub(b.Min)
}

func (b Box) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// LargestDim returns the largest extent across the three axes.
func (b Box) LargestDim() float32 {
	s := b.Size()
	d := s.X()
	if s.Y() > d {
		d = s.Y()
	}
	if s.Z() > d {
		d = s.Z()
	}
	return d
}

// LocalBox returns the primitive's bounding box in its own frame.
// Dimensions are full extents on each axis, centered at the origin.
func (p Primitive) LocalBox() Box {
	h := p.Dimensions.Mul(0.5)
	return Box{Min: mgl32.Vec3{-h.X(), -h.Y(), -h.Z()}, Max: h}
}

// TransformedBox returns the world AABB of a local box pushed through an
// affine matrix, by transforming all eight corners.
func TransformedBox(m mgl32.Mat4, local Box) Box {
	out := EmptyBox()
	for i := 0; i < 8; i++ {
		c := mgl32.Vec3{local.Min.X(), local.Min.Y(), local.Min.Z()}
		if i&1 != 0 {
			c[0] = local.Max.X()
		}
		if i&2 != 0 {
			c[1] = local.Max.Y()
		}
		if i&4 != 0 {
			c[2] = local.Max.Z()
		}
		out = out.ExtendPoint(mgl32.TransformCoordinate(c, m))
	}
	return out
}
