package sketch

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func validCandidate() PartCandidate {
	return PartCandidate{
		Name:       "Hull",
		Kind:       "box",
		Dimensions: []float64{4, 2, 1.2},
		Location:   []float64{0, 0, 0.6},
	}
}

func TestValidateAccepts(t *testing.T) {
	p, err := Validate(validCandidate())
	if err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if p.Prim.Kind != KindBox {
		t.Errorf("kind = %v; expected box", p.Prim.Kind)
	}
	if p.Parent != NoParent {
		t.Errorf("parent = %v; expected NoParent", p.Parent)
	}
	if p.Local.Scale != (mgl32.Vec3{1, 1, 1}) {
		t.Errorf("default scale = %v; expected [1,1,1]", p.Local.Scale)
	}
}

func TestValidateDefaults(t *testing.T) {
	p, err := Validate(PartCandidate{Name: "Thing", Kind: "sphere"})
	if err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if p.Prim.Dimensions != (mgl32.Vec3{1, 1, 1}) {
		t.Errorf("default dimensions = %v; expected [1,1,1]", p.Prim.Dimensions)
	}
	if p.Local.Translation.Len() != 0 {
		t.Errorf("default translation = %v; expected origin", p.Local.Translation)
	}
	if p.Prim.Color != nil {
		t.Errorf("default color = %+v; expected nil", p.Prim.Color)
	}
}

var rejectTests = []struct {
	name   string
	mutate func(*PartCandidate)
}{
	{"missing name", func(c *PartCandidate) { c.Name = "" }},
	{"unknown kind", func(c *PartCandidate) { c.Kind = "dodecahedron" }},
	{"wrong dim arity", func(c *PartCandidate) { c.Dimensions = []float64{1, 2} }},
	{"dim too small", func(c *PartCandidate) { c.Dimensions = []float64{0.01, 1, 1} }},
	{"dim too big", func(c *PartCandidate) { c.Dimensions = []float64{1, 51, 1} }},
	{"dim nan", func(c *PartCandidate) { c.Dimensions = []float64{math.NaN(), 1, 1} }},
	{"dim inf", func(c *PartCandidate) { c.Dimensions = []float64{math.Inf(1), 1, 1} }},
	{"location out of range", func(c *PartCandidate) { c.Location = []float64{0, -101, 0} }},
	{"scale zero", func(c *PartCandidate) { c.Scale = []float64{0, 1, 1} }},
	{"scale negative", func(c *PartCandidate) { c.Scale = []float64{1, -1, 1} }},
	{"color nan", func(c *PartCandidate) { c.Color = &Color{R: float32(math.NaN())} }},
}

func TestValidateRejects(t *testing.T) {
	for _, test := range rejectTests {
		c := validCandidate()
		test.mutate(&c)
		if _, err := Validate(c); err == nil {
			t.Errorf("%s: Validate() accepted %+v", test.name, c)
		} else if _, ok := err.(*SchemaError); !ok {
			t.Errorf("%s: error type %T; expected *SchemaError", test.name, err)
		}
	}
}

func TestValidateCubeAlias(t *testing.T) {
	c := validCandidate()
	c.Kind = "cube"
	p, err := Validate(c)
	if err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if p.Prim.Kind != KindBox {
		t.Errorf("kind = %v; expected box", p.Prim.Kind)
	}
}

func TestValidateRotationWraps(t *testing.T) {
	c := validCandidate()
	c.RotationDegrees = []float64{450, -720, 0}
	p, err := Validate(c)
	if err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if got := p.Local.RotationDegrees; got.X() != 90 || got.Y() != 0 || got.Z() != 0 {
		t.Errorf("rotation = %v; expected [90,0,0]", got)
	}
}

func TestValidateColorClamps(t *testing.T) {
	c := validCandidate()
	c.Color = &Color{R: 1.5, G: -0.2, B: 0.5}
	p, err := Validate(c)
	if err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if *p.Prim.Color != (Color{R: 1, G: 0, B: 0.5}) {
		t.Errorf("color = %+v; expected clamped {1,0,0.5}", *p.Prim.Color)
	}
}

func TestValidatePlane(t *testing.T) {
	c := PartCandidate{
		Name:            "Ground",
		Kind:            "plane",
		Dimensions:      []float64{20, 20, 0},
		Location:        []float64{0, 0, 0.005},
		RotationDegrees: []float64{30, 0, 0},
	}
	p, err := Validate(c)
	if err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if p.Local.RotationDegrees.Len() != 0 {
		t.Errorf("plane rotation = %v; expected horizontal", p.Local.RotationDegrees)
	}
	if p.Local.Translation.Z() != 0 {
		t.Errorf("plane z = %v; expected snapped to 0", p.Local.Translation.Z())
	}
	if p.Prim.Dimensions.Z() != 0 {
		t.Errorf("plane thickness = %v; expected 0 allowed", p.Prim.Dimensions.Z())
	}
}
