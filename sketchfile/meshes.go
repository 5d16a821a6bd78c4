package sketchfile

import (
	"math"

	"github.com/mogaika/dreamfast/sketch"
)

// Unit meshes for every primitive kind, extent 1 on each axis and centered
// at the origin; part dimensions and scale are applied on the glTF node.
// Z is up, matching the planner's frame.

type meshData struct {
	positions [][3]float32
	normals   [][3]float32
	indices   []uint32
}

const (
	sphereRings    = 16
	sphereSegments = 24
	latheSegments = 24
	torusMajorSegs = 24
	torusMinorSegs = 12
)

func kindMesh(kind sketch.Kind) meshData {
	switch kind {
	case sketch.KindBox:
		return boxMesh()
	case sketch.KindSphere:
		return sphereMesh(0.5, 0)
	case sketch.KindCapsule:
		// sphere with the hemispheres pulled apart along Z
		return sphereMesh(0.25, 0.25)
	case sketch.KindCylinder:
		return lathedMesh(0.5, 0.5)
	case sketch.KindCone:
		return lathedMesh(0.5, 0)
	case sketch.KindPlane:
		return planeMesh()
	case sketch.KindTorus:
		return torusMesh(0.35, 0.15)
	}
	return boxMesh()
}

func boxMesh() meshData {
	var m meshData
	faces := [6]struct {
		normal  [3]float32
		corners [4][3]float32
	}{
		{[3]float32{0, 0, 1}, [4][3]float32{{-.5, -.5, .5}, {.5, -.5, .5}, {.5, .5, .5}, {-.5, .5, .5}}},
		{[3]float32{0, 0, -1}, [4][3]float32{{-.5, .5, -.5}, {.5, .5, -.5}, {.5, -.5, -.5}, {-.5, -.5, -.5}}},
		{[3]float32{1, 0, 0}, [4][3]float32{{.5, -.5, -.5}, {.5, .5, -.5}, {.5, .5, .5}, {.5, -.5, .5}}},
		{[3]float32{-1, 0, 0}, [4][3]float32{{-.5, -.5, .5}, {-.5, .5, .5}, {-.5, .5, -.5}, {-.5, -.5, -.5}}},
		{[3]float32{0, 1, 0}, [4][3]float32{{-.5, .5, -.5}, {-.5, .5, .5}, {.5, .5, .5}, {.5, .5, -.5}}},
		{[3]float32{0, -1, 0}, [4][3]float32{{.5, -.5, -.5}, {.5, -.5, .5}, {-.5, -.5, .5}, {-.5, -.5, -.5}}},
	}
	for _, f := range faces {
		base := uint32(len(m.positions))
		for _, c := range f.corners {
			m.positions = append(m.positions, c)
			m.normals = append(m.normals, f.normal)
		}
		m.indices = append(m.indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}

// sphereMesh builds a UV sphere; zStretch pulls the upper and lower halves
// apart, which turns the sphere into a capsule.
func sphereMesh(radius, zStretch float32) meshData {
	var m meshData
	for ring := 0; ring <= sphereRings; ring++ {
		phi := math.Pi * float64(ring) / sphereRings
		z := float32(math.Cos(phi)) * radius
		r := float32(math.Sin(phi)) * radius
		for seg := 0; seg <= sphereSegments; seg++ {
			theta := 2 * math.Pi * float64(seg) / sphereSegments
			x := r * float32(math.Cos(theta))
			y := r * float32(math.Sin(theta))
			zOut := z
			if zStretch > 0 {
				if z >= 0 {
					zOut = z + zStretch
				} else {
					zOut = z - zStretch
				}
			}
			m.positions = append(m.positions, [3]float32{x, y, zOut})
			n := normalize3(x, y, z)
			m.normals = append(m.normals, n)
		}
	}
	stride := uint32(sphereSegments + 1)
	for ring := uint32(0); ring < sphereRings; ring++ {
		for seg := uint32(0); seg < sphereSegments; seg++ {
			a := ring*stride + seg
			b := a + stride
			m.indices = append(m.indices, a, b, a+1, a+1, b, b+1)
		}
	}
	return m
}

// lathedMesh builds a capped surface of revolution around Z from the bottom
// radius to the top radius: a cylinder, or a cone when topR is 0.
func lathedMesh(bottomR, topR float32) meshData {
	var m meshData
	const h = 0.5
	for seg := 0; seg <= latheSegments; seg++ {
		theta := 2 * math.Pi * float64(seg) / latheSegments
		c, s := float32(math.Cos(theta)), float32(math.Sin(theta))
		// side normal tilts with the slope
		n := normalize3(c, s, (bottomR-topR)/(2*h))
		m.positions = append(m.positions, [3]float32{bottomR * c, bottomR * s, -h})
		m.normals = append(m.normals, n)
		m.positions = append(m.positions, [3]float32{topR * c, topR * s, h})
		m.normals = append(m.normals, n)
	}
	for seg := uint32(0); seg < latheSegments; seg++ {
		a := seg * 2
		m.indices = append(m.indices, a, a+2, a+1, a+1, a+2, a+3)
	}

	// caps
	addCap := func(radius, z float32, up bool) {
		if radius <= 0 {
			return
		}
		nz := float32(1)
		if !up {
			nz = -1
		}
		center := uint32(len(m.positions))
		m.positions = append(m.positions, [3]float32{0, 0, z})
		m.normals = append(m.normals, [3]float32{0, 0, nz})
		for seg := 0; seg <= latheSegments; seg++ {
			theta := 2 * math.Pi * float64(seg) / latheSegments
			m.positions = append(m.positions, [3]float32{radius * float32(math.Cos(theta)), radius * float32(math.Sin(theta)), z})
			m.normals = append(m.normals, [3]float32{0, 0, nz})
		}
		for seg := uint32(0); seg < latheSegments; seg++ {
			a := center + 1 + seg
			if up {
				m.indices = append(m.indices, center, a, a+1)
			} else {
				m.indices = append(m.indices, center, a+1, a)
			}
		}
	}
	addCap(topR, h, true)
	addCap(bottomR, -h, false)
	return m
}

func planeMesh() meshData {
	return meshData{
		positions: [][3]float32{{-.5, -.5, 0}, {.5, -.5, 0}, {.5, .5, 0}, {-.5, .5, 0}},
		normals:   [][3]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
		indices:   []uint32{0, 1, 2, 0, 2, 3},
	}
}

func torusMesh(major, minor float32) meshData {
	var m meshData
	for i := 0; i <= torusMajorSegs; i++ {
		u := 2 * math.Pi * float64(i) / torusMajorSegs
		cu, su := float32(math.Cos(u)), float32(math.Sin(u))
		for j := 0; j <= torusMinorSegs; j++ {
			v := 2 * math.Pi * float64(j) / torusMinorSegs
			cv, sv := float32(math.Cos(v)), float32(math.Sin(v))
			r := major + minor*cv
			m.positions = append(m.positions, [3]float32{r * cu, r * su, minor * sv})
			m.normals = append(m.normals, [3]float32{cv * cu, cv * su, sv})
		}
	}
	stride := uint32(torusMinorSegs + 1)
	for i := uint32(0); i < torusMajorSegs; i++ {
		for j := uint32(0); j < torusMinorSegs; j++ {
			a := i*stride + j
			b := a + stride
			m.indices = append(m.indices, a, b, a+1, a+1, b, b+1)
		}
	}
	return m
}

func normalize3(x, y, z float32) [3]float32 {
	l := float32(math.Sqrt(float64(x*x + y*y + z*z)))
	if l < 1e-9 {
		return [3]float32{0, 0, 1}
	}
	return [3]float32{x / l, y / l, z / l}
}
