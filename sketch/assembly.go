package sketch

import (
	"github.com/go-gl/mathgl/mgl32"
)

// ComposeWorld resolves every part's transform into the assembly frame.
// Parts are stored parents-first (the planner only attaches children to
// already emitted parts), so a single forward pass suffices. A parent index
// that is out of range or not strictly earlier in the arena is a structural
// violation.
func ComposeWorld(parts []Part) ([]mgl32.Mat4, error) {
	world := make([]mgl32.Mat4, len(parts))
	for i := range parts {
		p := &parts[i]
		local := p.Local.Mat4()
		if p.Parent == NoParent {
			if i != 0 {
				return nil, AssemblyErrorf("part %d %q is a second root", i, p.Name)
			}
			world[i] = local
			continue
		}
		if int(p.Parent) < 0 || int(p.Parent) >= i {
			return nil, AssemblyErrorf("part %d %q has invalid parent index %d", i, p.Name, p.Parent)
		}
		world[i] = world[p.Parent].Mul4(local)
	}
	return world, nil
}

// WorldBounds is the union AABB of all parts in the assembly frame.
func WorldBounds(parts []Part) (Box, error) {
	world, err := ComposeWorld(parts)
	if err != nil {
		return Box{}, err
	}
	box := EmptyBox()
	for i := range parts {
		b := TransformedBox(world[i], parts[i].Prim.LocalBox())
		box = box.ExtendPoint(b.Min)
		box = box.ExtendPoint(b.Max)
	}
	return box, nil
}
