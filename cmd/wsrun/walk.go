package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fbkclanna/wsrun/internal/project"
	"github.com/fbkclanna/wsrun/internal/report"
	"github.com/fbkclanna/wsrun/internal/shell"
	"github.com/fbkclanna/wsrun/internal/ui"
	"github.com/fbkclanna/wsrun/internal/walker"
	"github.com/fbkclanna/wsrun/internal/workspace"
	"github.com/spf13/cobra"
)

// addWalkFlags registers the flags shared by commands that walk projects.
func addWalkFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Bool("parallel", true, "Run independent projects concurrently")
	f.Int("jobs", 0, "Maximum concurrent projects per batch (0 = unlimited)")
	f.Bool("order", false, "Run projects in dependency order")
	f.StringSlice("order-kinds", nil, "Order only by these dependency kinds: runtime, dev, peer, optional")
	f.StringSlice("only", nil, "Only run projects matching these names or globs")
	f.StringSlice("skip", nil, "Skip projects matching these names or globs")
	f.String("since", "", "Only run projects with changes since this git ref")
	f.String("report", "", "Write a YAML run report to this file")
	f.Bool("no-prefix", false, "Do not prefix output lines with the project name")
}

// walkOptions builds walker options from config and the filter flags.
func (s *session) walkOptions(cmd *cobra.Command) (walker.Options, error) {
	include, err := s.cfg.Include()
	if err != nil {
		return walker.Options{}, err
	}
	opts := walker.Options{
		Parallel: s.cfg.Parallel,
		Jobs:     s.cfg.Jobs,
		Order:    include,
		Logger:   s.log,
	}

	only, _ := cmd.Flags().GetStringSlice("only")
	skip, _ := cmd.Flags().GetStringSlice("skip")
	since, _ := cmd.Flags().GetString("since")

	filter, err := workspace.NewNameFilter(only, skip)
	if err != nil {
		return walker.Options{}, err
	}
	var changed map[string]bool
	if since != "" {
		if changed, err = s.ws.ChangedSince(since); err != nil {
			return walker.Options{}, err
		}
	}
	if !filter.Empty() || changed != nil {
		opts.Select = func(p *project.Project) bool {
			if changed != nil && !changed[p.Name()] {
				return false
			}
			return filter.Match(p)
		}
	}
	return opts, nil
}

// runWalk plans and executes action over the workspace, printing progress
// and a summary. It fails when any project failed.
func runWalk(cmd *cobra.Command, s *session, label string, action func(r *shell.Runner) walker.Action[shell.Outcome]) error {
	projects, err := s.ws.Projects()
	if err != nil {
		return err
	}
	opts, err := s.walkOptions(cmd)
	if err != nil {
		return err
	}
	reportPath, _ := cmd.Flags().GetString("report")

	out := s.stdout
	color := colorOutput(cmd.OutOrStdout())

	r := shell.NewRunner(out, s.stderr)
	r.Prefix = s.cfg.Prefix
	r.Color = color
	r.WorkspaceRoot = s.ws.Root

	batches, err := walker.Plan(projects, opts)
	if err != nil {
		return err
	}
	total := walker.Count(batches)
	if total == 0 {
		_, _ = fmt.Fprintln(out, "No projects selected.")
		return nil
	}
	s.log.Info("walking projects", "command", label, "projects", total, "batches", len(batches))

	progress := ui.NewProgress(out, total).WithColor(color)
	progress.Log("%s: %d projects in %d batches", label, total, len(batches))
	opts.OnSettle = func(st walker.Settled) {
		progress.Settled(st.Project.Name(), st.Err, st.Duration)
	}
	res := walker.Execute(cmd.Context(), batches, action(r), opts)

	succeeded, skipped := 0, 0
	for _, sr := range res.Results {
		if sr.Value.Skipped {
			skipped++
		} else {
			succeeded++
		}
	}
	failures := make([]ui.FailureLine, 0, len(res.Errors))
	for _, f := range res.Errors {
		failures = append(failures, ui.FailureLine{Name: f.Project.Name(), Err: f.Err})
	}
	ui.Summary(out, color, succeeded, skipped, failures)

	if reportPath != "" {
		rf := report.FromResult(label, version, res, s.relPath)
		if err := report.Save(reportPath, rf); err != nil {
			return err
		}
		s.log.Debug("wrote report", "path", reportPath)
	}

	if res.HasErrors() {
		return fmt.Errorf("%d of %d projects failed: %s", len(res.Errors), res.Len(), strings.Join(res.Failed(), ", "))
	}
	return nil
}

func (s *session) relPath(root string) string {
	rel, err := filepath.Rel(s.ws.Root, root)
	if err != nil {
		return root
	}
	return filepath.ToSlash(rel)
}
