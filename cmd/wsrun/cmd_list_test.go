package main

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestRunList_table(t *testing.T) {
	wsDir, _ := setupWorkspace(t)

	out, err := execute(t, "--root", wsDir, "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got:\n%s", out)
	}
	if !strings.HasPrefix(lines[0], "NAME") {
		t.Errorf("header = %q", lines[0])
	}
	for i, name := range []string{"app", "core", "docs"} {
		if !strings.HasPrefix(lines[i+1], name+" ") {
			t.Errorf("row %d = %q, want %s first", i+1, lines[i+1], name)
		}
	}
	if !strings.Contains(lines[1], "packages/app") || !strings.Contains(lines[1], "build,prebuild,test") {
		t.Errorf("app row = %q", lines[1])
	}
}

func TestRunList_json(t *testing.T) {
	wsDir, _ := setupWorkspace(t)

	out, err := execute(t, "--root", wsDir, "list", "--json")
	if err != nil {
		t.Fatalf("list --json failed: %v", err)
	}

	var entries []projectEntry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	app := entries[0]
	if app.Name != "app" || app.Path != "packages/app" {
		t.Errorf("entries[0] = %+v", app)
	}
	// react is external and never becomes a dependency edge.
	if len(app.Dependencies) != 1 || app.Dependencies[0] != "core" {
		t.Errorf("app dependencies = %v, want [core]", app.Dependencies)
	}
	if core := entries[1]; len(core.Dependents) != 1 || core.Dependents[0] != "app" {
		t.Errorf("core dependents = %v, want [app]", core.Dependents)
	}
}

func TestRunList_graph(t *testing.T) {
	wsDir, _ := setupWorkspace(t)

	out, err := execute(t, "--root", wsDir, "list", "--graph")
	if err != nil {
		t.Fatalf("list --graph failed: %v", err)
	}
	want := "batch 1: core, docs\nbatch 2: app\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestRunList_graphDevOnly(t *testing.T) {
	wsDir, _ := setupWorkspace(t)

	out, err := execute(t, "--root", wsDir, "list", "--graph", "--order-kinds", "dev")
	if err != nil {
		t.Fatalf("list --graph failed: %v", err)
	}
	if want := "batch 1: app, core, docs\n"; out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestRunList_only(t *testing.T) {
	wsDir, _ := setupWorkspace(t)

	out, err := execute(t, "--root", wsDir, "list", "--json", "--only", "c*")
	if err != nil {
		t.Fatal(err)
	}
	var entries []projectEntry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name != "core" {
		t.Errorf("entries = %+v, want only core", entries)
	}
}

func TestRunList_noWorkspace(t *testing.T) {
	if _, err := execute(t, "--root", t.TempDir(), "list"); err == nil {
		t.Fatal("expected error without a root package.json")
	}
}
