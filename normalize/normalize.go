// Package normalize rescales and recenters raw planner assemblies so every
// sketch lands in the same canonical volume regardless of the units the
// planner (or the LLM) picked.
package normalize

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/dreamfast/sketch"
)

// CanonicalSize is the target largest extent of a normalized assembly.
const CanonicalSize = 1.0

const eps = 1e-5

// Normalize applies a single corrective transform at the root so that the
// assembly's bounding box is centered on X/Y, rests on z=0, and its largest
// extent equals CanonicalSize. Only uniform scale is used, so aspect ratio
// is preserved. Normalizing an already normalized assembly is a no-op
// (fixed point).
func Normalize(a *sketch.Assembly) (*sketch.Assembly, error) {
	if len(a.Parts) == 0 {
		return nil, sketch.AssemblyErrorf("cannot normalize empty assembly %q", a.Name)
	}

	bounds, err := sketch.WorldBounds(a.Parts)
	if err != nil {
		return nil, err
	}

	out := *a
	out.Parts = make([]sketch.Part, len(a.Parts))
	copy(out.Parts, a.Parts)

	largest := bounds.LargestDim()
	if largest < eps {
		return nil, sketch.AssemblyErrorf("assembly %q has degenerate bounds", a.Name)
	}

	scale := float32(CanonicalSize) / largest
	center := bounds.Center()
	offset := mgl32.Vec3{-center.X(), -center.Y(), -bounds.Min.Z()}

	// Fold the correction into the root part's local transform. With a
	// uniform scale this stays representable as TRS: the corrective scale
	// commutes with the root rotation.
	root := &out.Parts[0]
	root.Local.Translation = root.Local.Translation.Add(offset).Mul(scale)
	root.Local.Scale = root.Local.Scale.Mul(scale)

	newBounds, err := sketch.WorldBounds(out.Parts)
	if err != nil {
		return nil, err
	}
	out.Bounds = newBounds
	return &out, nil
}
