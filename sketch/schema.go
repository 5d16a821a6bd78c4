package sketch

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Numeric bounds for the schema. Sizes are meters; anything outside is a
// sign of a broken or hostile payload rather than a big object.
const (
	DimMin         = 0.05
	DimMax         = 50.0
	ScaleMin       = 0.05
	ScaleMax       = 50.0
	TranslationMax = 100.0
)

// PartCandidate is an untrusted part description arriving from the
// extractor, a preset, or a loaded sketch file. Nothing in it is believed
// until Validate accepts it.
type PartCandidate struct {
	Name            string    `json:"name" yaml:"name"`
	Kind            string    `json:"type" yaml:"kind"`
	Dimensions      []float64 `json:"dimensions" yaml:"dimensions"`
	Location        []float64 `json:"location" yaml:"location"`
	RotationDegrees []float64 `json:"rotation_degrees" yaml:"rotation_degrees"`
	Scale           []float64 `json:"scale" yaml:"scale"`
	Color           *Color    `json:"color" yaml:"color"`

	// Parent names another candidate of the same object; empty attaches
	// to the assembly root. Rank orders candidates by visual importance.
	Parent string `json:"parent,omitempty" yaml:"parent"`
	Rank   int    `json:"rank,omitempty" yaml:"rank"`
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// vec3From converts an optional 3-element slice, substituting def when the
// slice is absent. Returns false on wrong arity or non-finite values.
func vec3From(vals []float64, def mgl32.Vec3) (mgl32.Vec3, bool) {
	if len(vals) == 0 {
		return def, true
	}
	if len(vals) != 3 {
		return mgl32.Vec3{}, false
	}
	var out mgl32.Vec3
	for i, v := range vals {
		if !isFinite(v) {
			return mgl32.Vec3{}, false
		}
		out[i] = float32(v)
	}
	return out, true
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// wrapDegrees folds an angle into (-360, 360). Lossless for rotation, so
// the schema wraps instead of rejecting.
func wrapDegrees(v float32) float32 {
	return float32(math.Mod(float64(v), 360))
}

// Validate checks a candidate against the primitive schema and returns a
// Part ready to be attached to an assembly (Parent/Ordinal are assigned by
// the planner). It is total and side effect free: either the whole
// candidate is accepted or a SchemaError describes the first violation.
func Validate(c PartCandidate) (Part, error) {
	var p Part

	if c.Name == "" {
		return p, schemaErrorf("(unnamed)", "missing name")
	}
	kind, ok := CanonicalKind(c.Kind)
	if !ok {
		return p, schemaErrorf(c.Name, "unknown primitive kind %q", c.Kind)
	}

	dims, ok := vec3From(c.Dimensions, mgl32.Vec3{1, 1, 1})
	if !ok {
		return p, schemaErrorf(c.Name, "malformed dimensions %v", c.Dimensions)
	}
	for i := 0; i < 3; i++ {
		// planes are flat on one axis, everything else must have volume
		if kind == KindPlane && i == 2 {
			if dims[i] < 0 || dims[i] > DimMax {
				return p, schemaErrorf(c.Name, "dimension %d out of range: %v", i, dims[i])
			}
			continue
		}
		if dims[i] < DimMin || dims[i] > DimMax {
			return p, schemaErrorf(c.Name, "dimension %d out of range: %v", i, dims[i])
		}
	}

	loc, ok := vec3From(c.Location, mgl32.Vec3{})
	if !ok {
		return p, schemaErrorf(c.Name, "malformed location %v", c.Location)
	}
	for i := 0; i < 3; i++ {
		if loc[i] < -TranslationMax || loc[i] > TranslationMax {
			return p, schemaErrorf(c.Name, "translation %d out of range: %v", i, loc[i])
		}
	}

	rot, ok := vec3From(c.RotationDegrees, mgl32.Vec3{})
	if !ok {
		return p, schemaErrorf(c.Name, "malformed rotation %v", c.RotationDegrees)
	}
	for i := 0; i < 3; i++ {
		rot[i] = wrapDegrees(rot[i])
	}

	scale, ok := vec3From(c.Scale, mgl32.Vec3{1, 1, 1})
	if !ok {
		return p, schemaErrorf(c.Name, "malformed scale %v", c.Scale)
	}
	for i := 0; i < 3; i++ {
		if scale[i] < ScaleMin || scale[i] > ScaleMax {
			return p, schemaErrorf(c.Name, "scale %d out of range: %v", i, scale[i])
		}
	}

	var color *Color
	if c.Color != nil {
		if !isFinite(float64(c.Color.R)) || !isFinite(float64(c.Color.G)) || !isFinite(float64(c.Color.B)) {
			return p, schemaErrorf(c.Name, "malformed color %+v", *c.Color)
		}
		color = &Color{R: clamp01(c.Color.R), G: clamp01(c.Color.G), B: clamp01(c.Color.B)}
	}

	// planes serve as ground/water; keep them horizontal
	if kind == KindPlane {
		rot = mgl32.Vec3{}
		if math.Abs(float64(loc.Z())) < 0.01 {
			loc[2] = 0
		}
	}

	p = Part{
		Name: c.Name,
		Prim: Primitive{
			Kind:       kind,
			Dimensions: dims,
			Color:      color,
		},
		Local: Transform{
			Translation:     loc,
			RotationDegrees: rot,
			Scale:           scale,
		},
		Parent: NoParent,
	}
	return p, nil
}
