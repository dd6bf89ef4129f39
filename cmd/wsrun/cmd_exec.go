package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/fbkclanna/wsrun/internal/project"
	"github.com/fbkclanna/wsrun/internal/shell"
	"github.com/fbkclanna/wsrun/internal/walker"
	"github.com/spf13/cobra"
)

func newExecCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exec -- <command...>",
		Short: "Run a shell command in every project",
		Long: `Run a shell command in the root directory of every project.

A single argument is passed to the shell as is, so it may contain pipes
and other shell syntax. Multiple arguments are quoted and joined.`,
		RunE: runExec,
	}
	addWalkFlags(cmd)
	return cmd
}

func runExec(cmd *cobra.Command, args []string) error {
	command := shellJoin(args)
	if strings.TrimSpace(command) == "" {
		return fmt.Errorf("usage: wsrun exec -- <command...>")
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	return runWalk(cmd, s, "exec "+command, func(r *shell.Runner) walker.Action[shell.Outcome] {
		return func(ctx context.Context, p *project.Project) (shell.Outcome, error) {
			return r.Exec(ctx, p, command)
		}
	})
}

// shellJoin turns command-line arguments into one shell command.
func shellJoin(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = shellQuote(a)
	}
	return strings.Join(quoted, " ")
}

func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, " \t\n'\"\\$`|&;<>()*?[]{}~#!") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
