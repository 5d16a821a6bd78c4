// Package extract talks to the language model that turns a free-text scene
// prompt into named object descriptions and, optionally, per-object
// primitive parts. Everything returned here is untrusted text shaped like
// structure; it only becomes a Part through sketch.Validate.
package extract

import (
	"context"
	"strings"

	"github.com/mogaika/dreamfast/sketch"
)

// ObjectRef is one object the model found in the prompt.
type ObjectRef struct {
	Name     string        `json:"name"`
	Category string        `json:"category"`
	Color    *sketch.Color `json:"color,omitempty"`
}

// Extractor is the external collaborator boundary. Implementations:
// OpenAI (network) and Mock (offline keyword scan).
type Extractor interface {
	// ExtractObjects lists the objects mentioned in a scene prompt.
	ExtractObjects(ctx context.Context, prompt string) ([]ObjectRef, error)
	// SynthesizeParts asks for kitbash parts for one object under the
	// given budget. May return nil, in which case the preset library is
	// the only candidate source.
	SynthesizeParts(ctx context.Context, obj ObjectRef, realityFactor, maxParts int) ([]sketch.PartCandidate, error)
}

// Dedup removes near-duplicate objects by normalized singular name,
// falling back to category, keeping first occurrence order.
func Dedup(objects []ObjectRef) []ObjectRef {
	seen := make(map[string]struct{})
	out := make([]ObjectRef, 0, len(objects))
	for _, o := range objects {
		key := normalizeName(o.Name)
		if key == "" {
			key = strings.ToLower(strings.TrimSpace(o.Category))
		}
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, o)
	}
	return out
}

// normalizeName lowercases and naively singularizes ("books" -> "book").
func normalizeName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	if len(s) > 3 && strings.HasSuffix(s, "s") {
		s = s[:len(s)-1]
	}
	return s
}
