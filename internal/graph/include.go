package graph

import (
	"strings"

	"github.com/fbkclanna/wsrun/internal/project"
)

// Include selects which dependency kinds become graph edges. The zero value
// includes none.
type Include struct {
	Runtime  bool
	Dev      bool
	Peer     bool
	Optional bool
}

// All includes every dependency kind.
func All() Include {
	return Include{Runtime: true, Dev: true, Peer: true, Optional: true}
}

// Kinds builds an Include from a list of kinds.
func Kinds(kinds ...project.Kind) Include {
	var inc Include
	for _, k := range kinds {
		switch k {
		case project.Runtime:
			inc.Runtime = true
		case project.Dev:
			inc.Dev = true
		case project.Peer:
			inc.Peer = true
		case project.Optional:
			inc.Optional = true
		}
	}
	return inc
}

// ParseKinds builds an Include from kind names such as "runtime" or "dev".
func ParseKinds(names []string) (Include, error) {
	kinds := make([]project.Kind, 0, len(names))
	for _, n := range names {
		k, err := project.ParseKind(n)
		if err != nil {
			return Include{}, err
		}
		kinds = append(kinds, k)
	}
	return Kinds(kinds...), nil
}

// Has reports whether kind is selected.
func (i Include) Has(kind project.Kind) bool {
	switch kind {
	case project.Runtime:
		return i.Runtime
	case project.Dev:
		return i.Dev
	case project.Peer:
		return i.Peer
	case project.Optional:
		return i.Optional
	default:
		return false
	}
}

// None reports whether no kind is selected.
func (i Include) None() bool {
	return i == Include{}
}

func (i Include) String() string {
	var parts []string
	for _, k := range project.Kinds {
		if i.Has(k) {
			parts = append(parts, k.String())
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ",")
}
