package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fbkclanna/wsrun/internal/testutil"
	"github.com/spf13/cobra"
)

// setupWorkspace creates a workspace where app depends on core and docs
// stands alone. Each build script appends the project name to the file
// named by $WSRUN_TEST_OUT.
func setupWorkspace(t *testing.T) (wsDir, outFile string) {
	t.Helper()
	wsDir = t.TempDir()
	outFile = filepath.Join(t.TempDir(), "out.txt")
	t.Setenv("WSRUN_TEST_OUT", outFile)

	testutil.WriteWorkspace(t, wsDir, []string{"packages/*"},
		testutil.Package{
			Dir:     "packages/core",
			Name:    "core",
			Scripts: map[string]string{"build": `echo core >> "$WSRUN_TEST_OUT"`},
		},
		testutil.Package{
			Dir:          "packages/app",
			Name:         "app",
			Dependencies: map[string]string{"core": "workspace:*", "react": "^18.0.0"},
			Scripts: map[string]string{
				"prebuild": `echo pre-app >> "$WSRUN_TEST_OUT"`,
				"build":    `echo app >> "$WSRUN_TEST_OUT"`,
				"test":     "exit 3",
			},
		},
		testutil.Package{
			Dir:  "packages/docs",
			Name: "docs",
		},
	)
	return wsDir, outFile
}

// execute runs the root command with args and returns everything written to
// stdout and stderr.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	root := newRootCmd()
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatal(err)
	}
	return strings.Fields(string(data))
}

// newTestCmd returns a parsed subcommand rooted at wsDir, for calling helpers
// that take a *cobra.Command directly.
func newTestCmd(t *testing.T, wsDir string) *cobra.Command {
	t.Helper()
	root := newRootCmd()
	cmd, _, err := root.Find([]string{"list"})
	if err != nil {
		t.Fatal(err)
	}
	if err := cmd.ParseFlags([]string{"--root", wsDir}); err != nil {
		t.Fatal(err)
	}
	return cmd
}
