package graph

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/fbkclanna/wsrun/internal/project"
)

// ErrCycle is matched by every CycleError.
var ErrCycle = errors.New("dependency cycle detected")

// CycleError reports the projects that could not be scheduled because they
// depend on each other, directly or through other unscheduled projects.
type CycleError struct {
	Projects []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%s among projects: %s", ErrCycle, strings.Join(e.Projects, ", "))
}

// Is makes errors.Is(err, ErrCycle) hold for a *CycleError.
func (e *CycleError) Is(target error) bool { return target == ErrCycle }

// Batches returns the projects grouped into dependency layers. Every project
// appears in exactly one batch, after all batches holding its dependencies.
// Projects within a batch are sorted by name. If the graph has a cycle, no
// batches are returned and the error is a *CycleError.
func (g *Graph) Batches() ([][]*project.Project, error) {
	indeg := make([]int, len(g.nodes))
	for i := range g.nodes {
		indeg[i] = len(g.deps[i])
	}

	var ready []int
	for i, d := range indeg {
		if d == 0 {
			ready = append(ready, i)
		}
	}

	var batches [][]*project.Project
	retired := 0
	for len(ready) > 0 {
		batch := make([]*project.Project, len(ready))
		for k, i := range ready {
			batch[k] = g.nodes[i]
		}
		slices.SortFunc(batch, func(a, b *project.Project) int {
			return strings.Compare(a.Name(), b.Name())
		})
		batches = append(batches, batch)
		retired += len(ready)

		var next []int
		for _, i := range ready {
			for _, j := range g.rdeps[i] {
				indeg[j]--
				if indeg[j] == 0 {
					next = append(next, j)
				}
			}
		}
		ready = next
	}

	if retired != len(g.nodes) {
		var stuck []string
		for i, d := range indeg {
			if d > 0 {
				stuck = append(stuck, g.nodes[i].Name())
			}
		}
		slices.Sort(stuck)
		return nil, &CycleError{Projects: stuck}
	}
	return batches, nil
}

// Linear returns the projects in a single valid dependency order: the
// concatenation of Batches.
func (g *Graph) Linear() ([]*project.Project, error) {
	batches, err := g.Batches()
	if err != nil {
		return nil, err
	}
	out := make([]*project.Project, 0, len(g.nodes))
	for _, b := range batches {
		out = append(out, b...)
	}
	return out, nil
}
