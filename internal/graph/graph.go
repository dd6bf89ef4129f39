package graph

import (
	"slices"

	"github.com/fbkclanna/wsrun/internal/project"
)

// Graph is an immutable dependency graph over a set of projects. Nodes are
// addressed by their index in the input order.
type Graph struct {
	nodes   []*project.Project
	index   map[string]int
	deps    [][]int // node -> dependencies, ascending
	rdeps   [][]int // node -> dependents, ascending
	include Include
}

// Build constructs the graph for projects using the dependency kinds selected
// by include. The first project with a given name wins; later duplicates are
// ignored. Build never fails: cycles are reported by Batches.
func Build(projects []*project.Project, include Include) *Graph {
	g := &Graph{
		index:   make(map[string]int, len(projects)),
		include: include,
	}
	for _, p := range projects {
		if _, dup := g.index[p.Name()]; dup {
			continue
		}
		g.index[p.Name()] = len(g.nodes)
		g.nodes = append(g.nodes, p)
	}

	g.deps = make([][]int, len(g.nodes))
	g.rdeps = make([][]int, len(g.nodes))
	for i, p := range g.nodes {
		seen := make(map[int]bool)
		for _, kind := range project.Kinds {
			if !include.Has(kind) {
				continue
			}
			for _, name := range p.DependencyNames(kind) {
				j, ok := g.index[name]
				if !ok || seen[j] {
					continue
				}
				seen[j] = true
				g.deps[i] = append(g.deps[i], j)
				g.rdeps[j] = append(g.rdeps[j], i)
			}
		}
		slices.Sort(g.deps[i])
	}
	for j := range g.rdeps {
		slices.Sort(g.rdeps[j])
	}
	return g
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// Include returns the dependency kinds the graph was built with.
func (g *Graph) Include() Include { return g.include }

// Projects returns the nodes in input order.
func (g *Graph) Projects() []*project.Project {
	return slices.Clone(g.nodes)
}

// Has reports whether a project named name is a node.
func (g *Graph) Has(name string) bool {
	_, ok := g.index[name]
	return ok
}

// DependenciesOf returns the names of the workspace projects name depends on.
func (g *Graph) DependenciesOf(name string) []string {
	i, ok := g.index[name]
	if !ok {
		return nil
	}
	return g.names(g.deps[i])
}

// DependentsOf returns the names of the workspace projects depending on name.
func (g *Graph) DependentsOf(name string) []string {
	i, ok := g.index[name]
	if !ok {
		return nil
	}
	return g.names(g.rdeps[i])
}

func (g *Graph) names(idx []int) []string {
	out := make([]string, len(idx))
	for k, i := range idx {
		out[k] = g.nodes[i].Name()
	}
	slices.Sort(out)
	return out
}
