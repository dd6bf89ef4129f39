package main

import (
	"io"
	"os"

	"github.com/fbkclanna/wsrun/internal/config"
	"github.com/fbkclanna/wsrun/internal/logging"
	"github.com/fbkclanna/wsrun/internal/shell"
	"github.com/fbkclanna/wsrun/internal/workspace"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "wsrun",
		Short:         "Run scripts and commands across the projects of a JavaScript monorepo",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("root", ".", "Workspace root directory")
	cmd.PersistentFlags().String("config", "", "Config file (default <root>/"+config.FileName+")")
	cmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn, error")
	cmd.PersistentFlags().String("log-format", "text", "Log format: text, json")

	cmd.AddCommand(
		newListCmd(),
		newRunCmd(),
		newExecCmd(),
		newDoctorCmd(),
	)

	return cmd
}

// session is the state every workspace command starts from.
type session struct {
	cfg *config.Config
	log *logging.Logger
	ws  *workspace.Context

	// stdout and stderr are shared by every concurrent writer: command
	// output, progress lines and the logger. They are the same writer when
	// the command's out and err streams are.
	stdout *shell.SyncWriter
	stderr *shell.SyncWriter
}

func openSession(cmd *cobra.Command) (*session, error) {
	root, _ := cmd.Flags().GetString("root")
	configFile, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(root, configFile, cmd.Flags())
	if err != nil {
		return nil, err
	}
	stdout := shell.NewSyncWriter(cmd.OutOrStdout())
	stderr := stdout
	if cmd.ErrOrStderr() != cmd.OutOrStdout() {
		stderr = shell.NewSyncWriter(cmd.ErrOrStderr())
	}
	log := logging.New(stderr, cfg.Log.Level, cfg.Log.Format)

	ws, err := workspace.Load(root, workspace.WithLogger(log))
	if err != nil {
		return nil, err
	}
	log.Debug("loaded workspace", "root", ws.Root, "source", ws.Manifest.Source)
	return &session{cfg: cfg, log: log, ws: ws, stdout: stdout, stderr: stderr}, nil
}

// isTerminal reports whether w is a terminal.
func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// colorOutput reports whether styled output should be written to w.
func colorOutput(w io.Writer) bool {
	return os.Getenv("NO_COLOR") == "" && isTerminal(w)
}
