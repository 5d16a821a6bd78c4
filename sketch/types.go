package sketch

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// Kind is a primitive shape kind. The set is closed; anything else is
// rejected at the schema boundary.
type Kind string

const (
	KindBox      Kind = "box"
	KindSphere   Kind = "sphere"
	KindCylinder Kind = "cylinder"
	KindCone     Kind = "cone"
	KindCapsule  Kind = "capsule"
	KindPlane    Kind = "plane"
	KindTorus    Kind = "torus"
)

// CanonicalKind maps external spellings to a schema kind.
// "cube" is accepted as an alias of "box" since LLM output uses it.
func CanonicalKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindBox, KindSphere, KindCylinder, KindCone, KindCapsule, KindPlane, KindTorus:
		return Kind(s), true
	}
	if s == "cube" {
		return KindBox, true
	}
	return "", false
}

type Color struct {
	R float32 `json:"r"`
	G float32 `json:"g"`
	B float32 `json:"b"`
}

// DefaultColor is the neutral gray used when a part carries no color.
var DefaultColor = Color{R: 0.7, G: 0.7, B: 0.7}

// Transform is a local TRS transform relative to the parent frame.
// Rotation is stored as XYZ euler degrees; quaternion form is derived.
type Transform struct {
	Translation     mgl32.Vec3 `json:"translation"`
	RotationDegrees mgl32.Vec3 `json:"rotation_degrees"`
	Scale           mgl32.Vec3 `json:"scale"`
}

type Primitive struct {
	Kind       Kind       `json:"kind"`
	Dimensions mgl32.Vec3 `json:"dimensions"`
	Color      *Color     `json:"color,omitempty"`
}

// NoParent marks the root part of an assembly.
const NoParent = int16(-1)

// Part is one primitive in the assembly arena. Parent is an index into
// Assembly.Parts (never a pointer), Ordinal is the insertion order among
// siblings and fixes the traversal order.
type Part struct {
	Name    string    `json:"name"`
	Prim    Primitive `json:"primitive"`
	Local   Transform `json:"local"`
	Parent  int16     `json:"parent"`
	Ordinal int       `json:"ordinal"`
}

type BudgetSource string

const (
	BudgetDerived  BudgetSource = "derived"
	BudgetOverride BudgetSource = "override"
)

type Truncation string

const (
	TruncationNone      Truncation = "n/a"
	TruncationExhausted Truncation = "exhausted"
	TruncationCapped    Truncation = "capped"
)

// Budget is the resolved part budget for one object plus the outcome record
// filled in by the planner.
type Budget struct {
	RealityFactor float64      `json:"reality_factor"`
	MaxParts      int          `json:"max_parts"`
	Source        BudgetSource `json:"source"`
	Truncation    Truncation   `json:"truncation"`
}

// Rejection records one candidate dropped at the schema boundary.
type Rejection struct {
	Candidate string `json:"candidate"`
	Reason    string `json:"reason"`
}

// Assembly is one object's part tree. Parts[0] is the root; every other
// part's Parent index points at an earlier entry.
type Assembly struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Parts       []Part      `json:"parts"`
	Bounds      Box         `json:"bounds"`
	Budget      Budget      `json:"budget"`
	Diagnostics []Rejection `json:"diagnostics,omitempty"`
}

// FlatPart is one primitive in absolute coordinates, the only form exposed
// to viewers and persistence.
type FlatPart struct {
	Name       string     `json:"name"`
	Kind       Kind       `json:"kind"`
	Dimensions mgl32.Vec3 `json:"dimensions"`
	Color      Color      `json:"color"`

	World       mgl32.Mat4 `json:"world"`
	Translation mgl32.Vec3 `json:"translation"`
	Rotation    mgl32.Quat `json:"rotation"`
	Scale       mgl32.Vec3 `json:"scale"`
}

// FlatAssembly is the final immutable output of the scene assembler.
type FlatAssembly struct {
	ID     uuid.UUID  `json:"id"`
	Name   string     `json:"name"`
	Parts  []FlatPart `json:"parts"`
	Bounds Box        `json:"bounds"`
	Budget Budget     `json:"budget"`
}
