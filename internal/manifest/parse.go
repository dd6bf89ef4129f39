package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/fbkclanna/wsrun/internal/project"
	"gopkg.in/yaml.v3"
)

// PnpmFile is the pnpm workspace file consulted when package.json declares no members.
const PnpmFile = "pnpm-workspace.yaml"

// ErrInvalidGlob is returned when a member pattern cannot be used.
var ErrInvalidGlob = errors.New("invalid workspace glob")

// rootDescriptor is the subset of the root package.json read for membership.
type rootDescriptor struct {
	Name       string          `json:"name"`
	Workspaces json.RawMessage `json:"workspaces"`
}

// Load reads the workspace root descriptor and collects its member patterns.
// The first non-empty source wins: the workspaces array, then
// workspaces.packages, then pnpm-workspace.yaml.
func Load(root string) (*Workspace, error) {
	descPath := filepath.Join(root, project.DescriptorFile)
	data, err := os.ReadFile(descPath) //nolint:gosec // path is the workspace root descriptor
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", project.ErrNotFound, descPath)
		}
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	ws, err := Parse(data)
	if err != nil {
		return nil, err
	}
	ws.Root = root

	if ws.Standalone() {
		pnpm, err := loadPnpm(filepath.Join(root, PnpmFile))
		if err != nil {
			return nil, err
		}
		if len(pnpm) > 0 {
			ws.Patterns = pnpm
			ws.Source = SourcePnpm
		}
	}

	if err := validate(ws); err != nil {
		return nil, err
	}
	return ws, nil
}

// Parse parses root package.json content. It does not consult pnpm-workspace.yaml.
func Parse(data []byte) (*Workspace, error) {
	var rd rootDescriptor
	if err := json.Unmarshal(data, &rd); err != nil {
		return nil, fmt.Errorf("%w: parsing manifest: %v", project.ErrMalformed, err)
	}
	ws := &Workspace{Name: strings.TrimSpace(rd.Name)}

	raw := rd.Workspaces
	if len(raw) == 0 || string(raw) == "null" {
		return ws, nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		if len(list) > 0 {
			ws.Patterns = list
			ws.Source = SourceWorkspaces
		}
		return ws, nil
	}

	var nested struct {
		Packages []string `json:"packages"`
	}
	if err := json.Unmarshal(raw, &nested); err != nil {
		return nil, fmt.Errorf("%w: workspaces must be a list or an object with packages", project.ErrMalformed)
	}
	if len(nested.Packages) > 0 {
		ws.Patterns = nested.Packages
		ws.Source = SourceWorkspacesPkg
	}
	return ws, nil
}

func loadPnpm(p string) ([]string, error) {
	data, err := os.ReadFile(p) //nolint:gosec // path is the workspace pnpm file
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", PnpmFile, err)
	}
	var pw pnpmWorkspace
	if err := yaml.Unmarshal(data, &pw); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", project.ErrMalformed, PnpmFile, err)
	}
	return pw.Packages, nil
}

func validate(ws *Workspace) error {
	for i, p := range ws.Patterns {
		label := fmt.Sprintf("%s[%d]", ws.Source, i)
		if err := validatePattern(strings.TrimPrefix(p, "!"), label); err != nil {
			return err
		}
	}
	return nil
}

// validatePattern ensures a pattern is relative and does not escape the workspace.
func validatePattern(p, label string) error {
	if strings.TrimSpace(p) == "" {
		return fmt.Errorf("%w: %s: empty pattern", ErrInvalidGlob, label)
	}
	if filepath.IsAbs(p) || strings.HasPrefix(p, "/") {
		return fmt.Errorf("%w: %s: absolute path is not allowed: %s", ErrInvalidGlob, label, p)
	}
	cleaned := path.Clean(filepath.ToSlash(p))
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return fmt.Errorf("%w: %s: pattern must not escape workspace (contains ..): %s", ErrInvalidGlob, label, p)
	}
	return nil
}

// Normalize returns the slash-separated, cleaned form of a pattern with any
// leading "./" and trailing "/" removed.
func Normalize(p string) string {
	p = path.Clean(filepath.ToSlash(strings.TrimSpace(p)))
	return strings.TrimPrefix(p, "./")
}
