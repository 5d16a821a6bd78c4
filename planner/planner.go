package planner

import (
	"log"
	"sort"

	"github.com/google/uuid"

	"github.com/mogaika/dreamfast/sketch"
)

// ObjectDescription is one extracted object to sketch. Parts, when present,
// are candidate primitives already derived for this object (e.g. by the LLM
// kitbash call); they are untrusted and go through the schema like
// everything else. When Parts is empty the preset library is consulted.
type ObjectDescription struct {
	Name     string                 `json:"name"`
	Category string                 `json:"category"`
	Color    *sketch.Color          `json:"color,omitempty"`
	Parts    []sketch.PartCandidate `json:"parts,omitempty"`
}

// Plan greedily assigns primitives to ranked candidate sub-parts until the
// budget is exhausted. It never returns an empty assembly: when nothing
// resolves, a single placeholder box stands in for the object.
func Plan(desc ObjectDescription, budget sketch.Budget) (*sketch.Assembly, error) {
	if budget.MaxParts < 1 {
		return nil, &sketch.ConfigError{Reason: "budget was not allocated"}
	}

	name := desc.Name
	if name == "" {
		name = "Object"
	}

	a := &sketch.Assembly{
		ID:     uuid.New(),
		Name:   name,
		Budget: budget,
	}

	// reality factor 0 always yields the placeholder box, never a kitbash
	if budget.Source == sketch.BudgetDerived && budget.RealityFactor == 0 {
		a.Parts = []sketch.Part{placeholderPart(name, desc.Color)}
		a.Budget.Truncation = sketch.TruncationNone
		bounds, err := sketch.WorldBounds(a.Parts)
		if err != nil {
			return nil, err
		}
		a.Bounds = bounds
		return a, nil
	}

	candidates := desc.Parts
	if len(candidates) == 0 {
		candidates = CandidatesFor(name, desc.Category)
	}
	// stable: equal ranks keep derivation order
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Rank < candidates[j].Rank
	})

	indexByName := make(map[string]int16)
	siblingCount := make(map[int16]int)
	capped := false

	for _, c := range candidates {
		if len(a.Parts) >= budget.MaxParts {
			capped = true
			break
		}
		part, err := sketch.Validate(c)
		if err != nil {
			log.Printf("[planner] dropped candidate %q: %v", c.Name, err)
			a.Diagnostics = append(a.Diagnostics, sketch.Rejection{
				Candidate: c.Name,
				Reason:    err.Error(),
			})
			continue
		}
		if len(a.Parts) == 0 {
			part.Parent = sketch.NoParent
		} else {
			parent := int16(0)
			if idx, ok := indexByName[c.Parent]; ok && c.Parent != "" {
				parent = idx
			}
			part.Parent = parent
		}
		part.Ordinal = siblingCount[part.Parent]
		siblingCount[part.Parent]++
		indexByName[part.Name] = int16(len(a.Parts))
		a.Parts = append(a.Parts, part)
	}

	if len(a.Parts) == 0 {
		a.Parts = []sketch.Part{placeholderPart(name, desc.Color)}
		a.Budget.Truncation = sketch.TruncationNone
	} else if capped {
		a.Budget.Truncation = sketch.TruncationCapped
	} else {
		a.Budget.Truncation = sketch.TruncationExhausted
	}

	if desc.Color != nil {
		applyBaseColor(a.Parts, *desc.Color)
	}

	bounds, err := sketch.WorldBounds(a.Parts)
	if err != nil {
		return nil, err
	}
	a.Bounds = bounds
	return a, nil
}

func placeholderPart(name string, color *sketch.Color) sketch.Part {
	c := sketch.DefaultColor
	if color != nil {
		c = *color
	}
	return sketch.Part{
		Name: name + "_Placeholder",
		Prim: sketch.Primitive{
			Kind:       sketch.KindBox,
			Dimensions: [3]float32{1, 1, 1},
			Color:      &c,
		},
		Local: sketch.Transform{
			Translation: [3]float32{0, 0, 0.5},
			Scale:       [3]float32{1, 1, 1},
		},
		Parent: sketch.NoParent,
	}
}

// applyBaseColor paints every part with the object's requested color,
// matching the original behavior where an extracted color wins over
// per-part colors.
func applyBaseColor(parts []sketch.Part, c sketch.Color) {
	for i := range parts {
		parts[i].Prim.Color = &c
	}
}
