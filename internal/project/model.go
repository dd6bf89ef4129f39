package project

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// DescriptorFile is the file name a project root must contain.
const DescriptorFile = "package.json"

// Kind identifies one of the four dependency maps of a descriptor.
type Kind int

const (
	Runtime Kind = iota
	Dev
	Peer
	Optional
)

// Kinds lists every dependency kind in descriptor order.
var Kinds = []Kind{Runtime, Dev, Peer, Optional}

func (k Kind) String() string {
	switch k {
	case Runtime:
		return "runtime"
	case Dev:
		return "dev"
	case Peer:
		return "peer"
	case Optional:
		return "optional"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind parses a dependency kind name. Both the short names and the
// package.json field names are accepted.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "runtime", "prod", "dependencies":
		return Runtime, nil
	case "dev", "devdependencies":
		return Dev, nil
	case "peer", "peerdependencies":
		return Peer, nil
	case "optional", "optionaldependencies":
		return Optional, nil
	default:
		return 0, fmt.Errorf("unknown dependency kind: %q (must be runtime, dev, peer, or optional)", s)
	}
}

// descriptor mirrors the package.json fields the walker reads.
type descriptor struct {
	Name                 string            `json:"name"`
	Version              string            `json:"version,omitempty"`
	Private              bool              `json:"private,omitempty"`
	Dependencies         map[string]string `json:"dependencies,omitempty"`
	DevDependencies      map[string]string `json:"devDependencies,omitempty"`
	PeerDependencies     map[string]string `json:"peerDependencies,omitempty"`
	OptionalDependencies map[string]string `json:"optionalDependencies,omitempty"`
	Scripts              map[string]string `json:"scripts,omitempty"`
}

// Project is a loaded project descriptor rooted at a directory.
type Project struct {
	root string
	desc descriptor
}

// Name returns the project name.
func (p *Project) Name() string { return p.desc.Name }

// Root returns the directory containing the descriptor.
func (p *Project) Root() string { return p.root }

// Version returns the declared version, if any.
func (p *Project) Version() string { return p.desc.Version }

// Private reports whether the project is marked private.
func (p *Project) Private() bool { return p.desc.Private }

// Dependencies returns a copy of the dependency map for kind.
// Absent maps yield an empty, non-nil map.
func (p *Project) Dependencies(kind Kind) map[string]string {
	src := p.deps(kind)
	out := make(map[string]string, len(src))
	maps.Copy(out, src)
	return out
}

// DependencyNames returns the sorted dependency names for kind.
func (p *Project) DependencyNames(kind Kind) []string {
	return slices.Sorted(maps.Keys(p.deps(kind)))
}

func (p *Project) deps(kind Kind) map[string]string {
	switch kind {
	case Runtime:
		return p.desc.Dependencies
	case Dev:
		return p.desc.DevDependencies
	case Peer:
		return p.desc.PeerDependencies
	case Optional:
		return p.desc.OptionalDependencies
	default:
		return nil
	}
}

// Scripts returns a copy of the script table.
func (p *Project) Scripts() map[string]string {
	out := make(map[string]string, len(p.desc.Scripts))
	maps.Copy(out, p.desc.Scripts)
	return out
}

// ScriptNames returns the sorted script names.
func (p *Project) ScriptNames() []string {
	return slices.Sorted(maps.Keys(p.desc.Scripts))
}

// Script returns the body of the named script.
func (p *Project) Script(name string) (string, bool) {
	body, ok := p.desc.Scripts[strings.TrimSpace(name)]
	return body, ok
}

// HasScript reports whether the project declares the named script.
func (p *Project) HasScript(name string) bool {
	_, ok := p.Script(name)
	return ok
}

func (p *Project) String() string {
	return p.desc.Name
}
