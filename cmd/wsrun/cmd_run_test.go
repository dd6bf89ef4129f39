package main

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/fbkclanna/wsrun/internal/report"
)

func TestRunRun_orderedWithHooks(t *testing.T) {
	wsDir, outFile := setupWorkspace(t)

	out, err := execute(t, "--root", wsDir, "run", "build", "--order")
	if err != nil {
		t.Fatalf("run build failed: %v\n%s", err, out)
	}

	got := readLines(t, outFile)
	want := []string{"core", "pre-app", "app"}
	if !slices.Equal(got, want) {
		t.Errorf("execution order = %v, want %v", got, want)
	}
	if !strings.Contains(out, "2 succeeded, 1 skipped.") {
		t.Errorf("summary missing from output:\n%s", out)
	}
	if !strings.Contains(out, "[3/3]") {
		t.Errorf("progress missing from output:\n%s", out)
	}
}

func TestRunRun_unordered(t *testing.T) {
	wsDir, outFile := setupWorkspace(t)

	if out, err := execute(t, "--root", wsDir, "run", "build"); err != nil {
		t.Fatalf("run build failed: %v\n%s", err, out)
	}
	got := readLines(t, outFile)
	slices.Sort(got)
	if want := []string{"app", "core", "pre-app"}; !slices.Equal(got, want) {
		t.Errorf("ran %v, want %v", got, want)
	}
}

func TestRunRun_configFileOrder(t *testing.T) {
	wsDir, outFile := setupWorkspace(t)
	cfg := "order: true\nparallel: false\n"
	if err := os.WriteFile(filepath.Join(wsDir, ".wsrun.yaml"), []byte(cfg), 0600); err != nil {
		t.Fatal(err)
	}

	if out, err := execute(t, "--root", wsDir, "run", "build"); err != nil {
		t.Fatalf("run build failed: %v\n%s", err, out)
	}
	if got, want := readLines(t, outFile), []string{"core", "pre-app", "app"}; !slices.Equal(got, want) {
		t.Errorf("execution order = %v, want %v", got, want)
	}
}

func TestRunRun_failure(t *testing.T) {
	wsDir, _ := setupWorkspace(t)

	out, err := execute(t, "--root", wsDir, "run", "test")
	if err == nil {
		t.Fatal("expected error when a script fails")
	}
	if !strings.Contains(err.Error(), "1 of 3 projects failed") {
		t.Errorf("error = %v", err)
	}
	if !strings.Contains(out, "0 succeeded, 2 skipped, 1 failed:") {
		t.Errorf("summary missing from output:\n%s", out)
	}
	if !strings.Contains(out, "exited with code 3") {
		t.Errorf("exit code missing from output:\n%s", out)
	}
}

func TestRunRun_report(t *testing.T) {
	wsDir, _ := setupWorkspace(t)
	reportPath := filepath.Join(t.TempDir(), "report.yaml")

	if out, err := execute(t, "--root", wsDir, "run", "build", "--order", "--report", reportPath); err != nil {
		t.Fatalf("run build failed: %v\n%s", err, out)
	}

	f, err := report.Load(reportPath)
	if err != nil {
		t.Fatalf("loading report: %v", err)
	}
	if f.Command != "run build" || f.Failed != 0 {
		t.Errorf("report header = %q failed=%d", f.Command, f.Failed)
	}
	app := f.Projects["app"]
	if app == nil || app.Status != report.StatusSucceeded || app.Batch != 2 {
		t.Fatalf("app entry = %+v", app)
	}
	if !slices.Equal(app.Steps, []string{"prebuild", "build"}) {
		t.Errorf("app steps = %v", app.Steps)
	}
	if app.Path != "packages/app" {
		t.Errorf("app path = %q", app.Path)
	}
	if docs := f.Projects["docs"]; docs == nil || docs.Status != report.StatusSkipped {
		t.Errorf("docs entry = %+v, want skipped", docs)
	}
}

func TestRunRun_skipFilter(t *testing.T) {
	wsDir, outFile := setupWorkspace(t)

	if out, err := execute(t, "--root", wsDir, "run", "build", "--order", "--skip", "core"); err != nil {
		t.Fatalf("run build failed: %v\n%s", err, out)
	}
	if got, want := readLines(t, outFile), []string{"pre-app", "app"}; !slices.Equal(got, want) {
		t.Errorf("ran %v, want %v", got, want)
	}
}

func TestRunRun_cycle(t *testing.T) {
	wsDir, outFile := setupWorkspace(t)
	// Make core depend on app to close a cycle.
	core := `{"name": "core", "dependencies": {"app": "*"}, "scripts": {"build": "echo core >> \"$WSRUN_TEST_OUT\""}}`
	if err := os.WriteFile(filepath.Join(wsDir, "packages", "core", "package.json"), []byte(core), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := execute(t, "--root", wsDir, "run", "build", "--order")
	if err == nil || !strings.Contains(err.Error(), "cycle") {
		t.Fatalf("expected cycle error, got %v", err)
	}
	if got := readLines(t, outFile); len(got) != 0 {
		t.Errorf("nothing should run on a cycle, ran %v", got)
	}
}

func TestRunRun_noScriptNonInteractive(t *testing.T) {
	wsDir, _ := setupWorkspace(t)
	if _, err := execute(t, "--root", wsDir, "run"); err == nil {
		t.Fatal("expected error when no script is given without a terminal")
	}
}

func TestRunRun_invalidJobs(t *testing.T) {
	wsDir, _ := setupWorkspace(t)
	if _, err := execute(t, "--root", wsDir, "run", "build", "--jobs", "-2"); err == nil {
		t.Fatal("expected validation error for negative --jobs")
	}
}

func TestScriptNames(t *testing.T) {
	wsDir, _ := setupWorkspace(t)
	s, err := openSession(newTestCmd(t, wsDir))
	if err != nil {
		t.Fatal(err)
	}
	projects, err := s.ws.Projects()
	if err != nil {
		t.Fatal(err)
	}
	got := scriptNames(projects)
	if want := []string{"build", "test"}; !slices.Equal(got, want) {
		t.Errorf("scriptNames() = %v, want %v", got, want)
	}
}
