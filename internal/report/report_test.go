package report

import (
	"errors"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/fbkclanna/wsrun/internal/project"
	"github.com/fbkclanna/wsrun/internal/shell"
	"github.com/fbkclanna/wsrun/internal/walker"
)

func TestParse_valid(t *testing.T) {
	data := []byte(`
version: 1
command: run build
generated_at: "2026-02-15T12:34:56+09:00"
tool_version: "0.1.0"
failed: 1
projects:
  core:
    path: packages/core
    batch: 1
    status: succeeded
    steps: [prebuild, build]
    duration: 1.2s
  web:
    path: packages/web
    batch: 2
    status: failed
    error: boom
`)
	f, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Command != "run build" {
		t.Errorf("command = %q", f.Command)
	}
	if f.Failed != 1 {
		t.Errorf("failed = %d, want 1", f.Failed)
	}
	web := f.Projects["web"]
	if web == nil || web.Status != StatusFailed || web.Error != "boom" {
		t.Errorf("web = %+v", web)
	}
	if !slices.Equal(f.Projects["core"].Steps, []string{"prebuild", "build"}) {
		t.Errorf("core steps = %v", f.Projects["core"].Steps)
	}
}

func TestParse_invalid(t *testing.T) {
	if _, err := Parse([]byte("projects: [")); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestFromResultSaveAndLoad(t *testing.T) {
	core := project.New("core", "/ws/packages/core", nil, nil)
	docs := project.New("docs", "/ws/packages/docs", nil, nil)
	web := project.New("web", "/ws/packages/web", nil, nil)
	res := &walker.Result[shell.Outcome]{
		Results: []walker.Success[shell.Outcome]{
			{Project: core, Batch: 0, Value: shell.Outcome{Steps: []string{"build"}, Duration: 1500 * time.Millisecond}},
			{Project: docs, Batch: 0, Value: shell.Outcome{Skipped: true}},
		},
		Errors: []walker.Failure{
			{Project: web, Batch: 1, Err: errors.New("exit 1")},
		},
	}

	f := FromResult("run build", "dev", res, func(root string) string {
		return strings.TrimPrefix(root, "/ws/")
	})
	path := filepath.Join(t.TempDir(), "report.yaml")
	if err := Save(path, f); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if loaded.Failed != 1 {
		t.Errorf("failed = %d, want 1", loaded.Failed)
	}
	tests := []struct {
		name   string
		status string
		batch  int
		path   string
	}{
		{"core", StatusSucceeded, 1, "packages/core"},
		{"docs", StatusSkipped, 1, "packages/docs"},
		{"web", StatusFailed, 2, "packages/web"},
	}
	for _, tt := range tests {
		p := loaded.Projects[tt.name]
		if p == nil {
			t.Fatalf("project %s missing", tt.name)
		}
		if p.Status != tt.status || p.Batch != tt.batch || p.Path != tt.path {
			t.Errorf("%s = %+v, want status %s batch %d path %s", tt.name, p, tt.status, tt.batch, tt.path)
		}
	}
	if loaded.Projects["core"].Duration != "1.5s" {
		t.Errorf("core duration = %q, want 1.5s", loaded.Projects["core"].Duration)
	}
	if loaded.Projects["web"].Error != "exit 1" {
		t.Errorf("web error = %q", loaded.Projects["web"].Error)
	}
}
