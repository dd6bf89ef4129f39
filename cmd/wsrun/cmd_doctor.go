package main

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strings"

	"github.com/fbkclanna/wsrun/internal/git"
	"github.com/fbkclanna/wsrun/internal/graph"
	"github.com/spf13/cobra"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the environment and workspace for common issues",
		RunE:  runDoctor,
	}
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	ok := true

	shellName := "sh"
	if runtime.GOOS == "windows" {
		shellName = "cmd"
	}
	_, _ = fmt.Fprintf(out, "Checking %s... ", shellName)
	if p, err := exec.LookPath(shellName); err != nil {
		_, _ = fmt.Fprintln(out, "NOT FOUND")
		_, _ = fmt.Fprintln(out, "  a shell is required to run scripts and commands")
		ok = false
	} else {
		_, _ = fmt.Fprintf(out, "found at %s\n", p)
	}

	// git is only needed for --since.
	_, _ = fmt.Fprint(out, "Checking git... ")
	if !git.IsGitInstalled() {
		_, _ = fmt.Fprintln(out, "not found (--since is unavailable)")
	} else if v, err := exec.Command("git", "version").Output(); err != nil {
		_, _ = fmt.Fprintln(out, "ERROR")
	} else {
		_, _ = fmt.Fprintln(out, strings.TrimSpace(string(v)))
	}

	if !checkWorkspace(cmd, out) {
		ok = false
	}

	if ok {
		_, _ = fmt.Fprintln(out, "\nAll checks passed.")
		return nil
	}
	_, _ = fmt.Fprintln(out, "\nSome checks failed. See above for details.")
	return fmt.Errorf("doctor checks failed")
}

// checkWorkspace loads the workspace, discovers its projects and checks that
// the full dependency graph can be scheduled.
func checkWorkspace(cmd *cobra.Command, out io.Writer) bool {
	_, _ = fmt.Fprint(out, "Checking workspace... ")
	s, err := openSession(cmd)
	if err != nil {
		_, _ = fmt.Fprintln(out, "FAILED")
		_, _ = fmt.Fprintf(out, "  %v\n", err)
		return false
	}
	_, _ = fmt.Fprintf(out, "%s (%s)\n", s.ws.Root, describeSource(s))

	if git.IsRepo(s.ws.Root) {
		top, _ := git.TopLevel(s.ws.Root)
		head, _ := git.HeadCommit(s.ws.Root)
		_, _ = fmt.Fprintf(out, "  git repository %s at %s\n", top, head)
	}

	_, _ = fmt.Fprint(out, "Checking projects... ")
	projects, err := s.ws.Projects()
	if err != nil {
		_, _ = fmt.Fprintln(out, "FAILED")
		_, _ = fmt.Fprintf(out, "  %v\n", err)
		return false
	}
	_, _ = fmt.Fprintf(out, "%d found\n", len(projects))

	_, _ = fmt.Fprint(out, "Checking dependency graph... ")
	batches, err := graph.Build(projects, graph.All()).Batches()
	if err != nil {
		_, _ = fmt.Fprintln(out, "FAILED")
		var cycle *graph.CycleError
		if errors.As(err, &cycle) {
			_, _ = fmt.Fprintf(out, "  cycle among: %s\n", strings.Join(cycle.Projects, ", "))
		} else {
			_, _ = fmt.Fprintf(out, "  %v\n", err)
		}
		return false
	}
	_, _ = fmt.Fprintf(out, "acyclic, %d batches\n", len(batches))
	return true
}

func describeSource(s *session) string {
	if s.ws.Manifest.Standalone() {
		return "single project"
	}
	return fmt.Sprintf("%d patterns from %s", len(s.ws.Manifest.Patterns), s.ws.Manifest.Source)
}
