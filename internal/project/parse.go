package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrNotFound is returned when a root has no descriptor file.
	ErrNotFound = errors.New("project descriptor not found")
	// ErrMalformed is returned when a descriptor cannot be parsed.
	ErrMalformed = errors.New("malformed project descriptor")
)

// Exists reports whether dir contains a descriptor file.
func Exists(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, DescriptorFile))
	return err == nil && !info.IsDir()
}

// Load reads and validates the descriptor at root.
func Load(root string) (*Project, error) {
	path := filepath.Join(root, DescriptorFile)
	data, err := os.ReadFile(path) //nolint:gosec // path is a workspace member descriptor
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading descriptor: %w", err)
	}
	return Parse(root, data)
}

// Parse parses descriptor content for a project rooted at root.
func Parse(root string, data []byte) (*Project, error) {
	var d descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, filepath.Join(root, DescriptorFile), err)
	}
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return nil, fmt.Errorf("%w: %s: name is required", ErrMalformed, filepath.Join(root, DescriptorFile))
	}
	return &Project{root: root, desc: d}, nil
}

// New builds a Project in memory. It is intended for callers that assemble
// workspaces without touching disk, such as tests and planners.
func New(name, root string, deps map[Kind]map[string]string, scripts map[string]string) *Project {
	d := descriptor{
		Name:                 name,
		Dependencies:         maps.Clone(deps[Runtime]),
		DevDependencies:      maps.Clone(deps[Dev]),
		PeerDependencies:     maps.Clone(deps[Peer]),
		OptionalDependencies: maps.Clone(deps[Optional]),
		Scripts:              maps.Clone(scripts),
	}
	return &Project{root: root, desc: d}
}
