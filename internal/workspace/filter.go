package workspace

import (
	"fmt"
	"path"
	"strings"

	"github.com/fbkclanna/wsrun/internal/git"
	"github.com/fbkclanna/wsrun/internal/project"
	"github.com/gobwas/glob"
)

// NameFilter selects projects by name for --only / --skip flags. Entries may
// be exact names or globs such as "@acme/*".
type NameFilter struct {
	only []glob.Glob
	skip []glob.Glob
}

// NewNameFilter compiles only/skip name patterns.
func NewNameFilter(only, skip []string) (*NameFilter, error) {
	f := &NameFilter{}
	var err error
	if f.only, err = compileNames(only); err != nil {
		return nil, err
	}
	if f.skip, err = compileNames(skip); err != nil {
		return nil, err
	}
	return f, nil
}

func compileNames(patterns []string) ([]glob.Glob, error) {
	var out []glob.Glob
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid project filter %q: %w", p, err)
		}
		out = append(out, g)
	}
	return out, nil
}

// Empty reports whether the filter selects every project.
func (f *NameFilter) Empty() bool {
	return f == nil || (len(f.only) == 0 && len(f.skip) == 0)
}

// Match reports whether the project passes the filter.
func (f *NameFilter) Match(p *project.Project) bool {
	if f.Empty() {
		return true
	}
	if len(f.only) > 0 && !matchAny(f.only, p.Name()) {
		return false
	}
	return !matchAny(f.skip, p.Name())
}

func matchAny(globs []glob.Glob, s string) bool {
	for _, g := range globs {
		if g.Match(s) {
			return true
		}
	}
	return false
}

// FilterByNames returns the projects passing the filter, preserving order.
func FilterByNames(projects []*project.Project, f *NameFilter) []*project.Project {
	if f.Empty() {
		return projects
	}
	var result []*project.Project
	for _, p := range projects {
		if f.Match(p) {
			result = append(result, p)
		}
	}
	return result
}

// ChangedSince returns the names of projects containing files that differ
// from ref in the workspace's git repository.
func (c *Context) ChangedSince(ref string) (map[string]bool, error) {
	projects, err := c.Projects()
	if err != nil {
		return nil, err
	}
	files, err := git.ChangedFiles(c.Root, ref)
	if err != nil {
		return nil, err
	}

	changed := make(map[string]bool)
	for _, p := range projects {
		dir := c.ProjectDir(p)
		for _, f := range files {
			if containsPath(dir, f) {
				changed[p.Name()] = true
				break
			}
		}
	}
	c.log.Debug("changed projects", "ref", ref, "files", len(files), "projects", len(changed))
	return changed, nil
}

func containsPath(dir, file string) bool {
	if dir == "." {
		return true
	}
	dir = path.Clean(dir)
	return file == dir || strings.HasPrefix(file, dir+"/")
}
