package extract

import (
	"context"
	"strings"

	"github.com/mogaika/dreamfast/sketch"
)

// Mock is an offline extractor for tests and -mock runs. It scans the
// prompt for known object words instead of calling the API and never
// synthesizes parts, leaving the preset library as the candidate source.
type Mock struct{}

var mockVocabulary = []struct {
	word     string
	category string
}{
	{"tugboat", "tugboat"},
	{"boat", "boat"},
	{"house", "house"},
	{"home", "house"},
	{"apple", "apple"},
	{"cube", "cube"},
	{"box", "box"},
	{"crate", "box"},
	{"ball", "sphere"},
	{"sphere", "sphere"},
}

var mockColors = map[string]sketch.Color{
	"red":    {R: 0.8, G: 0.1, B: 0.1},
	"green":  {R: 0.1, G: 0.7, B: 0.2},
	"blue":   {R: 0.15, G: 0.3, B: 0.8},
	"yellow": {R: 0.9, G: 0.85, B: 0.1},
	"white":  {R: 0.95, G: 0.95, B: 0.95},
	"black":  {R: 0.05, G: 0.05, B: 0.05},
	"gray":   sketch.DefaultColor,
}

func (Mock) ExtractObjects(ctx context.Context, prompt string) ([]ObjectRef, error) {
	words := strings.Fields(strings.ToLower(prompt))

	var color *sketch.Color
	for _, w := range words {
		if c, ok := mockColors[strings.Trim(w, ",.")]; ok {
			cc := c
			color = &cc
			break
		}
	}

	var out []ObjectRef
	for _, w := range words {
		w = strings.Trim(w, ",.!?")
		for _, v := range mockVocabulary {
			if w == v.word || w == v.word+"s" {
				out = append(out, ObjectRef{
					Name:     strings.Title(v.word),
					Category: v.category,
					Color:    color,
				})
			}
		}
	}
	return Dedup(out), nil
}

func (Mock) SynthesizeParts(ctx context.Context, obj ObjectRef, realityFactor, maxParts int) ([]sketch.PartCandidate, error) {
	return nil, nil
}
