package workspace

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/fbkclanna/wsrun/internal/logging"
	"github.com/fbkclanna/wsrun/internal/manifest"
	"github.com/fbkclanna/wsrun/internal/project"
)

// ErrDuplicateProject is returned when two members declare the same name.
var ErrDuplicateProject = errors.New("duplicate project name")

// Context holds the resolved root and manifest of a workspace and caches the
// discovered projects.
type Context struct {
	Root     string
	Manifest *manifest.Workspace

	log *logging.Logger

	once     sync.Once
	projects []*project.Project
	err      error
}

// Option configures a Context.
type Option func(*Context)

// WithLogger sets the logger used for discovery diagnostics.
func WithLogger(l *logging.Logger) Option {
	return func(c *Context) { c.log = l }
}

// Load resolves the workspace root and reads its manifest. A missing or
// malformed root descriptor is fatal.
func Load(root string, opts ...Option) (*Context, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving workspace root: %w", err)
	}

	ws, err := manifest.Load(root)
	if err != nil {
		return nil, err
	}

	ctx := &Context{Root: root, Manifest: ws}
	for _, opt := range opts {
		opt(ctx)
	}
	return ctx, nil
}

// Projects discovers the workspace's projects, sorted by name. Discovery runs
// once; later calls return the cached result (or error) without touching disk.
func (c *Context) Projects() ([]*project.Project, error) {
	c.once.Do(func() {
		c.projects, c.err = c.discover()
	})
	return c.projects, c.err
}

// ProjectDir returns a project's root relative to the workspace root.
func (c *Context) ProjectDir(p *project.Project) string {
	rel, err := filepath.Rel(c.Root, p.Root())
	if err != nil {
		return p.Root()
	}
	return filepath.ToSlash(rel)
}

func (c *Context) discover() ([]*project.Project, error) {
	if c.Manifest.Standalone() {
		p, err := project.Load(c.Root)
		if err != nil {
			return nil, err
		}
		c.log.Debug("standalone project", "name", p.Name())
		return []*project.Project{p}, nil
	}

	mg, err := compileMembers(c.Manifest)
	if err != nil {
		return nil, err
	}
	dirs, err := mg.expand(c.Root)
	if err != nil {
		return nil, err
	}

	var projects []*project.Project
	seen := make(map[string]string, len(dirs))
	for _, rel := range dirs {
		dir := filepath.Join(c.Root, filepath.FromSlash(rel))
		if !project.Exists(dir) {
			c.log.Debug("skipping candidate without descriptor", "dir", rel)
			continue
		}
		p, err := project.Load(dir)
		if err != nil {
			return nil, err
		}
		if prev, ok := seen[p.Name()]; ok {
			return nil, fmt.Errorf("%w: %q declared by %s and %s", ErrDuplicateProject, p.Name(), prev, rel)
		}
		seen[p.Name()] = rel
		projects = append(projects, p)
	}

	slices.SortStableFunc(projects, func(a, b *project.Project) int {
		return strings.Compare(a.Name(), b.Name())
	})
	c.log.Debug("discovered projects", "count", len(projects), "patterns", c.Manifest.Patterns)
	return projects, nil
}
