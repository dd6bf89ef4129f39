package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunDoctor_healthyWorkspace(t *testing.T) {
	wsDir, _ := setupWorkspace(t)

	out, err := execute(t, "--root", wsDir, "doctor")
	if err != nil {
		t.Fatalf("doctor failed: %v\n%s", err, out)
	}
	for _, want := range []string{"3 found", "acyclic, 2 batches", "All checks passed."} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunDoctor_cycle(t *testing.T) {
	wsDir, _ := setupWorkspace(t)
	core := `{"name": "core", "devDependencies": {"app": "*"}}`
	if err := os.WriteFile(filepath.Join(wsDir, "packages", "core", "package.json"), []byte(core), 0600); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "--root", wsDir, "doctor")
	if err == nil {
		t.Fatal("expected doctor to fail on a cycle")
	}
	if !strings.Contains(out, "cycle among: app, core") {
		t.Errorf("cycle not reported:\n%s", out)
	}
}

func TestRunDoctor_duplicateNames(t *testing.T) {
	wsDir, _ := setupWorkspace(t)
	dup := `{"name": "core"}`
	if err := os.WriteFile(filepath.Join(wsDir, "packages", "docs", "package.json"), []byte(dup), 0600); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "--root", wsDir, "doctor")
	if err == nil {
		t.Fatal("expected doctor to fail on duplicate names")
	}
	if !strings.Contains(out, "duplicate project name") {
		t.Errorf("duplicate not reported:\n%s", out)
	}
}

func TestRunDoctor_noWorkspace(t *testing.T) {
	out, err := execute(t, "--root", t.TempDir(), "doctor")
	if err == nil {
		t.Fatal("expected doctor to fail without a workspace")
	}
	if !strings.Contains(out, "Checking workspace... FAILED") {
		t.Errorf("workspace failure not reported:\n%s", out)
	}
}
