package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fbkclanna/wsrun/internal/graph"
	"github.com/fbkclanna/wsrun/internal/project"
	"github.com/fbkclanna/wsrun/internal/ui"
	"github.com/fbkclanna/wsrun/internal/workspace"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List workspace projects",
		RunE:  runList,
	}
	cmd.Flags().Bool("json", false, "Output as JSON")
	cmd.Flags().Bool("graph", false, "Show dependency order as batches")
	cmd.Flags().StringSlice("order-kinds", nil, "Dependency kinds used by --graph (default all)")
	cmd.Flags().StringSlice("only", nil, "Only list projects matching these names or globs")
	cmd.Flags().StringSlice("skip", nil, "Skip projects matching these names or globs")
	return cmd
}

type projectEntry struct {
	Name         string   `json:"name"`
	Version      string   `json:"version,omitempty"`
	Path         string   `json:"path"`
	Private      bool     `json:"private,omitempty"`
	Scripts      []string `json:"scripts,omitempty"`
	Dependencies []string `json:"dependencies,omitempty"`
	Dependents   []string `json:"dependents,omitempty"`
	Batch        int      `json:"batch,omitempty"`
}

func runList(cmd *cobra.Command, _ []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	showGraph, _ := cmd.Flags().GetBool("graph")
	only, _ := cmd.Flags().GetStringSlice("only")
	skip, _ := cmd.Flags().GetStringSlice("skip")

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	projects, err := s.ws.Projects()
	if err != nil {
		return err
	}
	filter, err := workspace.NewNameFilter(only, skip)
	if err != nil {
		return err
	}

	include, err := s.cfg.Include()
	if err != nil {
		return err
	}
	if include == nil {
		all := graph.All()
		include = &all
	}
	g := graph.Build(projects, *include)

	entries := make([]projectEntry, 0, len(projects))
	for _, p := range workspace.FilterByNames(projects, filter) {
		entries = append(entries, projectEntry{
			Name:         p.Name(),
			Version:      p.Version(),
			Path:         s.ws.ProjectDir(p),
			Private:      p.Private(),
			Scripts:      p.ScriptNames(),
			Dependencies: g.DependenciesOf(p.Name()),
			Dependents:   g.DependentsOf(p.Name()),
		})
	}

	out := cmd.OutOrStdout()

	if showGraph {
		batches, err := g.Batches()
		if err != nil {
			return err
		}
		if asJSON {
			setBatches(entries, batches)
			return writeJSON(out, entries)
		}
		for i, b := range batches {
			var names []string
			for _, p := range b {
				if filter.Match(p) {
					names = append(names, p.Name())
				}
			}
			if len(names) == 0 {
				continue
			}
			_, _ = fmt.Fprintf(out, "batch %d: %s\n", i+1, strings.Join(names, ", "))
		}
		return nil
	}

	if asJSON {
		return writeJSON(out, entries)
	}

	tbl := ui.NewTable(out, "NAME", "VERSION", "PATH", "SCRIPTS")
	for _, e := range entries {
		tbl.Row(e.Name, e.Version, e.Path, e.Scripts)
	}
	return tbl.Flush()
}

func setBatches(entries []projectEntry, batches [][]*project.Project) {
	index := make(map[string]int)
	for i, b := range batches {
		for _, p := range b {
			index[p.Name()] = i + 1
		}
	}
	for i := range entries {
		entries[i].Batch = index[entries[i].Name]
	}
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
