package planner

import (
	"io/ioutil"
	"log"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/mogaika/dreamfast/sketch"
)

// Preset is a hand built kitbash for a recognizable object category. Parts
// are ordered by visual importance (Rank): big silhouette volumes first,
// accents last, so budget truncation withholds the least important parts.
type Preset struct {
	Name  string                 `yaml:"name"`
	Match []string               `yaml:"match"`
	Parts []sketch.PartCandidate `yaml:"parts"`
}

var presets = builtinPresets()

// RegisterPreset adds a preset to the library. Later registrations win over
// earlier ones with the same match tokens.
func RegisterPreset(p Preset) {
	presets = append([]Preset{p}, presets...)
}

// LoadPresetsDir registers every *.yaml preset found in dir. A missing dir
// is not an error; a malformed file is skipped with a warning.
func LoadPresetsDir(dir string) error {
	entries, err := ioutil.ReadDir(dir)
	if err != nil {
		return nil
	}
	for _, fi := range entries {
		ext := filepath.Ext(fi.Name())
		if fi.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(dir, fi.Name())
		data, err := ioutil.ReadFile(path)
		if err != nil {
			return errors.Wrapf(err, "Cannot read preset %q", path)
		}
		var p Preset
		if err := yaml.Unmarshal(data, &p); err != nil {
			log.Printf("[planner] skipping malformed preset %q: %v", path, err)
			continue
		}
		if p.Name == "" {
			p.Name = strings.TrimSuffix(fi.Name(), ext)
		}
		RegisterPreset(p)
		log.Printf("[planner] loaded preset %q (%d parts)", p.Name, len(p.Parts))
	}
	return nil
}

// CandidatesFor returns the ranked candidate parts for an object, prefixing
// part names with the object name. Returns nil when no preset matches; the
// planner then falls back to the placeholder.
func CandidatesFor(name, category string) []sketch.PartCandidate {
	n := strings.ToLower(name)
	c := strings.ToLower(category)
	for _, p := range presets {
		for _, tok := range p.Match {
			if tok == "" {
				continue
			}
			if strings.Contains(c, tok) || strings.Contains(n, tok) {
				out := make([]sketch.PartCandidate, len(p.Parts))
				for i, part := range p.Parts {
					part.Name = name + "_" + part.Name
					if part.Parent != "" {
						part.Parent = name + "_" + part.Parent
					}
					out[i] = part
				}
				return out
			}
		}
	}
	return nil
}

func rgb(r, g, b float32) *sketch.Color {
	return &sketch.Color{R: r, G: g, B: b}
}

// builtinPresets ports the original preset library. Locations are relative
// to the parent part; the first part is the root.
func builtinPresets() []Preset {
	return []Preset{
		{
			Name:  "tugboat",
			Match: []string{"tugboat", "tug", "boat"},
			Parts: []sketch.PartCandidate{
				{Name: "Hull", Kind: "box", Dimensions: []float64{4, 2, 1.2},
					Location: []float64{0, 0, 0.6}, Color: rgb(0.63, 0.19, 0.15), Rank: 0},
				{Name: "Cabin", Kind: "box", Parent: "Hull", Dimensions: []float64{1.6, 1.4, 1},
					Location: []float64{-0.6, 0, 1.1}, Color: rgb(0.85, 0.85, 0.8), Rank: 1},
				{Name: "Bow", Kind: "cone", Parent: "Hull", Dimensions: []float64{0.8, 1.8, 0.8},
					Location: []float64{2.2, 0, 0.2}, RotationDegrees: []float64{0, 90, 0},
					Color: rgb(0.63, 0.19, 0.15), Rank: 2},
				{Name: "Stack", Kind: "cylinder", Parent: "Cabin", Dimensions: []float64{0.5, 0.5, 1.2},
					Location: []float64{0.8, 0, 1.1}, Color: rgb(0.2, 0.2, 0.2), Rank: 3},
				{Name: "FenderPort", Kind: "sphere", Parent: "Hull", Dimensions: []float64{0.4, 0.4, 0.4},
					Location: []float64{0, -1.15, 0}, Color: rgb(0.1, 0.1, 0.1), Rank: 4},
				{Name: "FenderStarboard", Kind: "sphere", Parent: "Hull", Dimensions: []float64{0.4, 0.4, 0.4},
					Location: []float64{0, 1.15, 0}, Color: rgb(0.1, 0.1, 0.1), Rank: 4},
			},
		},
		{
			Name:  "house",
			Match: []string{"house", "home"},
			Parts: []sketch.PartCandidate{
				{Name: "Body", Kind: "box", Dimensions: []float64{4, 4, 2},
					Location: []float64{0, 0, 1}, Color: rgb(0.75, 0.72, 0.68), Rank: 0},
				{Name: "Roof", Kind: "cone", Parent: "Body", Dimensions: []float64{4.5, 4.5, 1.5},
					Location: []float64{0, 0, 1.75}, Color: rgb(0.5, 0.15, 0.12), Rank: 1},
				{Name: "Door", Kind: "box", Parent: "Body", Dimensions: []float64{1, 0.15, 1.6},
					Location: []float64{0, -2.01, -0.2}, Color: rgb(0.3, 0.2, 0.1), Rank: 2},
				{Name: "WindowL", Kind: "box", Parent: "Body", Dimensions: []float64{0.8, 0.1, 0.8},
					Location: []float64{-1, -2.01, 0.5}, Color: rgb(0.6, 0.85, 1), Rank: 3},
				{Name: "WindowR", Kind: "box", Parent: "Body", Dimensions: []float64{0.8, 0.1, 0.8},
					Location: []float64{1, -2.01, 0.5}, Color: rgb(0.6, 0.85, 1), Rank: 3},
			},
		},
		{
			Name:  "box",
			Match: []string{"cube", "box", "crate"},
			Parts: []sketch.PartCandidate{
				{Name: "Body", Kind: "box", Dimensions: []float64{1, 1, 1},
					Location: []float64{0, 0, 0.5}, Color: rgb(0.8, 0.2, 0.2), Rank: 0},
			},
		},
	}
}
