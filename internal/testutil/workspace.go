package testutil

import (
	"encoding/json"
	"path"
	"testing"
)

// Package describes a package.json written by WriteWorkspace.
type Package struct {
	Dir                  string
	Name                 string
	Dependencies         map[string]string
	DevDependencies      map[string]string
	PeerDependencies     map[string]string
	OptionalDependencies map[string]string
	Scripts              map[string]string
}

// WriteWorkspace writes a root package.json declaring patterns as workspaces,
// followed by one package.json per member.
func WriteWorkspace(t *testing.T, dir string, patterns []string, pkgs ...Package) {
	t.Helper()
	root := map[string]any{"name": "root", "private": true}
	if len(patterns) > 0 {
		root["workspaces"] = patterns
	}
	files := map[string]string{"package.json": mustJSON(t, root)}
	for _, p := range pkgs {
		desc := map[string]any{"name": p.Name, "version": "0.0.0"}
		setIfAny(desc, "dependencies", p.Dependencies)
		setIfAny(desc, "devDependencies", p.DevDependencies)
		setIfAny(desc, "peerDependencies", p.PeerDependencies)
		setIfAny(desc, "optionalDependencies", p.OptionalDependencies)
		setIfAny(desc, "scripts", p.Scripts)
		files[path.Join(p.Dir, "package.json")] = mustJSON(t, desc)
	}
	WriteFiles(t, dir, files)
}

func setIfAny(m map[string]any, key string, v map[string]string) {
	if len(v) > 0 {
		m[key] = v
	}
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		t.Fatalf("marshaling package.json: %v", err)
	}
	return string(data)
}
