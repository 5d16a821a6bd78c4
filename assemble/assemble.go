// Package assemble resolves relative part transforms into the absolute
// frame handed to viewers and persistence. The internal parent-relative
// representation never crosses that boundary.
package assemble

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/dreamfast/sketch"
)

// Assemble walks the part tree in pre-order (children visited in sibling
// ordinal order) and materializes a flat sequence of parts with absolute
// transforms. The traversal order is deterministic for identical input.
//
// The tree is checked defensively: compiler output cannot contain cycles,
// but an externally edited sketch file can.
func Assemble(a *sketch.Assembly) (*sketch.FlatAssembly, error) {
	if len(a.Parts) == 0 {
		return nil, sketch.AssemblyErrorf("assembly %q has no parts", a.Name)
	}

	children := make(map[int16][]int)
	rootCount := 0
	for i := range a.Parts {
		p := &a.Parts[i]
		if p.Parent == sketch.NoParent {
			rootCount++
			continue
		}
		if int(p.Parent) < 0 || int(p.Parent) >= len(a.Parts) {
			return nil, sketch.AssemblyErrorf("part %d %q: dangling parent index %d", i, p.Name, p.Parent)
		}
		if int(p.Parent) == i {
			return nil, sketch.AssemblyErrorf("part %d %q is its own parent", i, p.Name)
		}
		children[p.Parent] = append(children[p.Parent], i)
	}
	if rootCount != 1 {
		return nil, sketch.AssemblyErrorf("assembly %q has %d roots, want exactly one", a.Name, rootCount)
	}
	if a.Parts[0].Parent != sketch.NoParent {
		return nil, sketch.AssemblyErrorf("assembly %q root is not the first part", a.Name)
	}
	for parent := range children {
		c := children[parent]
		sort.SliceStable(c, func(i, j int) bool {
			return a.Parts[c[i]].Ordinal < a.Parts[c[j]].Ordinal
		})
	}

	out := &sketch.FlatAssembly{
		ID:     a.ID,
		Name:   a.Name,
		Budget: a.Budget,
		Parts:  make([]sketch.FlatPart, 0, len(a.Parts)),
	}

	type frame struct {
		index int
		world mgl32.Mat4
		rot   mgl32.Quat
		scale mgl32.Vec3
	}

	visited := make([]bool, len(a.Parts))
	stack := []frame{{
		index: 0,
		world: a.Parts[0].Local.Mat4(),
		rot:   a.Parts[0].Local.Quat(),
		scale: a.Parts[0].Local.Scale,
	}}

	bounds := sketch.EmptyBox()
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[f.index] {
			return nil, sketch.AssemblyErrorf("cycle detected at part %d %q", f.index, a.Parts[f.index].Name)
		}
		visited[f.index] = true

		p := &a.Parts[f.index]
		color := sketch.DefaultColor
		if p.Prim.Color != nil {
			color = *p.Prim.Color
		}
		out.Parts = append(out.Parts, sketch.FlatPart{
			Name:        p.Name,
			Kind:        p.Prim.Kind,
			Dimensions:  p.Prim.Dimensions,
			Color:       color,
			World:       f.world,
			Translation: f.world.Col(3).Vec3(),
			Rotation:    f.rot,
			Scale:       f.scale,
		})
		b := sketch.TransformedBox(f.world, p.Prim.LocalBox())
		bounds = bounds.ExtendPoint(b.Min)
		bounds = bounds.ExtendPoint(b.Max)

		// push in reverse so the lowest ordinal pops first
		c := children[int16(f.index)]
		for i := len(c) - 1; i >= 0; i-- {
			child := &a.Parts[c[i]]
			stack = append(stack, frame{
				index: c[i],
				world: f.world.Mul4(child.Local.Mat4()),
				rot:   f.rot.Mul(child.Local.Quat()),
				scale: mulVec3(f.scale, child.Local.Scale),
			})
		}
	}
	for i, seen := range visited {
		if !seen {
			return nil, sketch.AssemblyErrorf("part %d %q is unreachable from the root (cycle?)", i, a.Parts[i].Name)
		}
	}

	out.Bounds = bounds
	return out, nil
}

// mulVec3 accumulates scale down the chain. Exact only while non-uniform
// scales are not interleaved with rotations; FlatPart.World stays the
// ground truth either way.
func mulVec3(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a.X() * b.X(), a.Y() * b.Y(), a.Z() * b.Z()}
}
