package manifest

import "strings"

// Source names the file a workspace's member patterns were read from.
type Source string

const (
	SourceNone          Source = ""
	SourceWorkspaces    Source = "package.json#workspaces"
	SourceWorkspacesPkg Source = "package.json#workspaces.packages"
	SourcePnpm          Source = "pnpm-workspace.yaml"
)

// Workspace describes the member layout declared by a workspace root.
type Workspace struct {
	Root     string
	Name     string
	Patterns []string
	Source   Source
}

// pnpmWorkspace represents pnpm-workspace.yaml.
type pnpmWorkspace struct {
	Packages []string `yaml:"packages"`
}

// Standalone reports whether the root declares no member patterns, in which
// case the root project is the only project.
func (w *Workspace) Standalone() bool {
	return len(w.Patterns) == 0
}

// Includes returns the patterns that select members.
func (w *Workspace) Includes() []string {
	var out []string
	for _, p := range w.Patterns {
		if !strings.HasPrefix(p, "!") {
			out = append(out, p)
		}
	}
	return out
}

// Excludes returns the negated patterns with the leading "!" removed.
func (w *Workspace) Excludes() []string {
	var out []string
	for _, p := range w.Patterns {
		if strings.HasPrefix(p, "!") {
			out = append(out, strings.TrimPrefix(p, "!"))
		}
	}
	return out
}
