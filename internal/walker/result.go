package walker

import (
	"github.com/fbkclanna/wsrun/internal/project"
)

// Success records a project whose action returned without error.
type Success[T any] struct {
	Project *project.Project
	Batch   int
	Value   T
}

// Failure records a project whose action returned an error or panicked.
type Failure struct {
	Project *project.Project
	Batch   int
	Err     error
}

// Result aggregates the outcomes of a walk. Both lists are in completion
// order; every walked project appears in exactly one of them.
type Result[T any] struct {
	Results []Success[T]
	Errors  []Failure
}

// HasErrors reports whether any action failed.
func (r *Result[T]) HasErrors() bool {
	return len(r.Errors) > 0
}

// Len returns the number of projects processed.
func (r *Result[T]) Len() int {
	return len(r.Results) + len(r.Errors)
}

// Failed returns the names of the failed projects in completion order.
func (r *Result[T]) Failed() []string {
	out := make([]string, len(r.Errors))
	for i, f := range r.Errors {
		out[i] = f.Project.Name()
	}
	return out
}

// Succeeded returns the names of the successful projects in completion order.
func (r *Result[T]) Succeeded() []string {
	out := make([]string, len(r.Results))
	for i, s := range r.Results {
		out[i] = s.Project.Name()
	}
	return out
}
