package workspace

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/fbkclanna/wsrun/internal/git"
	"github.com/fbkclanna/wsrun/internal/project"
	"github.com/fbkclanna/wsrun/internal/testutil"
)

func TestFilterByNames(t *testing.T) {
	projects := []*project.Project{
		project.New("@acme/core", "/ws/core", nil, nil),
		project.New("@acme/web", "/ws/web", nil, nil),
		project.New("tools", "/ws/tools", nil, nil),
	}
	tests := []struct {
		name string
		only []string
		skip []string
		want []string
	}{
		{"no filter", nil, nil, []string{"@acme/core", "@acme/web", "tools"}},
		{"only exact", []string{"tools"}, nil, []string{"tools"}},
		{"only glob", []string{"@acme/*"}, nil, []string{"@acme/core", "@acme/web"}},
		{"skip", nil, []string{"@acme/web"}, []string{"@acme/core", "tools"}},
		{"only and skip", []string{"@acme/*"}, []string{"*web"}, []string{"@acme/core"}},
		{"blank entries ignored", []string{" "}, nil, []string{"@acme/core", "@acme/web", "tools"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewNameFilter(tt.only, tt.skip)
			if err != nil {
				t.Fatal(err)
			}
			if got := names(FilterByNames(projects, f)); !slices.Equal(got, tt.want) {
				t.Errorf("FilterByNames() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewNameFilter_invalid(t *testing.T) {
	if _, err := NewNameFilter([]string{"[a"}, nil); err == nil {
		t.Fatal("expected error for invalid pattern")
	}
}

func TestChangedSince(t *testing.T) {
	if !git.IsGitInstalled() {
		t.Skip("git not installed")
	}
	src := t.TempDir()
	testutil.WriteWorkspace(t, src, []string{"packages/*"},
		testutil.Package{Dir: "packages/a", Name: "a"},
		testutil.Package{Dir: "packages/ab", Name: "ab"},
		testutil.Package{Dir: "packages/b", Name: "b"},
	)
	files := map[string]string{}
	err := filepath.WalkDir(src, func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, _ := filepath.Rel(src, p)
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	dir := testutil.CreateRepo(t, files)

	// Touch only packages/a.
	testutil.WriteFiles(t, dir, map[string]string{"packages/a/index.js": "x\n"})

	ctx, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	changed, err := ctx.ChangedSince("HEAD")
	if err != nil {
		t.Fatalf("ChangedSince() error: %v", err)
	}
	if !changed["a"] {
		t.Error("expected a to be changed")
	}
	if changed["ab"] || changed["b"] {
		t.Errorf("unexpected changed projects: %v", changed)
	}
}
