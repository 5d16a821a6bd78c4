// Package pipeline runs the per-object compile chain: plan -> normalize ->
// assemble. Each object is self contained, so multiple objects from one
// prompt compile in parallel without locking.
package pipeline

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/mogaika/dreamfast/assemble"
	"github.com/mogaika/dreamfast/normalize"
	"github.com/mogaika/dreamfast/planner"
	"github.com/mogaika/dreamfast/sketch"
)

// Compile produces the final flattened assembly for one object description.
// Nothing partial is ever returned: on error the caller gets nil.
func Compile(desc planner.ObjectDescription, budget sketch.Budget) (*sketch.FlatAssembly, error) {
	raw, err := planner.Plan(desc, budget)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to plan %q", desc.Name)
	}
	normalized, err := normalize.Normalize(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to normalize %q", desc.Name)
	}
	flat, err := assemble.Assemble(normalized)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to assemble %q", desc.Name)
	}
	return flat, nil
}

// Result pairs one object description with its compile outcome.
type Result struct {
	Desc planner.ObjectDescription
	Flat *sketch.FlatAssembly
	Err  error
}

// CompileAll compiles every object independently and concurrently. Results
// keep the input order regardless of goroutine scheduling.
func CompileAll(descs []planner.ObjectDescription, budget sketch.Budget) []Result {
	results := make([]Result, len(descs))
	var wg sync.WaitGroup
	for i := range descs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i].Desc = descs[i]
			results[i].Flat, results[i].Err = Compile(descs[i], budget)
		}(i)
	}
	wg.Wait()
	return results
}
