package main

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/fbkclanna/wsrun/internal/project"
	"github.com/fbkclanna/wsrun/internal/shell"
	"github.com/fbkclanna/wsrun/internal/walker"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [script]",
		Short: "Run a package.json script in every project",
		Long: `Run a package.json script in every project that declares it.

The pre<script> and post<script> scripts run around it when present.
Projects without the script are reported as skipped. When no script is
given on a terminal, wsrun asks for one.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRun,
	}
	addWalkFlags(cmd)
	return cmd
}

func runRun(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}

	var script string
	if len(args) == 1 {
		script = strings.TrimSpace(args[0])
	}
	if script == "" {
		if !isTerminal(os.Stdin) || !isTerminal(cmd.OutOrStdout()) {
			return fmt.Errorf("usage: wsrun run <script>")
		}
		projects, err := s.ws.Projects()
		if err != nil {
			return err
		}
		if script, err = promptScript(scriptNames(projects)); err != nil {
			return err
		}
	}

	return runWalk(cmd, s, "run "+script, func(r *shell.Runner) walker.Action[shell.Outcome] {
		return func(ctx context.Context, p *project.Project) (shell.Outcome, error) {
			return r.RunScript(ctx, p, script)
		}
	})
}

// scriptNames returns the sorted union of script names across projects,
// leaving out lifecycle hooks that only wrap another script.
func scriptNames(projects []*project.Project) []string {
	seen := make(map[string]bool)
	for _, p := range projects {
		for _, name := range p.ScriptNames() {
			seen[name] = true
		}
	}
	var names []string
	for name := range seen {
		if isHook(name, seen) {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func isHook(name string, all map[string]bool) bool {
	for _, prefix := range []string{"pre", "post"} {
		if base, ok := strings.CutPrefix(name, prefix); ok && all[base] {
			return true
		}
	}
	return false
}
