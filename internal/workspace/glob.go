package workspace

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fbkclanna/wsrun/internal/manifest"
	"github.com/gobwas/glob"
)

// skipDirs are never descended into while expanding member globs.
var skipDirs = map[string]bool{
	"node_modules": true,
}

type memberGlobs struct {
	include  []glob.Glob
	exclude  []glob.Glob
	maxDepth int // -1 when a pattern contains "**"
}

func compileMembers(ws *manifest.Workspace) (*memberGlobs, error) {
	mg := &memberGlobs{}
	for _, p := range ws.Includes() {
		g, err := compilePattern(p)
		if err != nil {
			return nil, err
		}
		mg.include = append(mg.include, g)
		mg.maxDepth = deeper(mg.maxDepth, patternDepth(manifest.Normalize(p)))
	}
	for _, p := range ws.Excludes() {
		g, err := compilePattern(p)
		if err != nil {
			return nil, err
		}
		mg.exclude = append(mg.exclude, g)
	}
	return mg, nil
}

func compilePattern(p string) (glob.Glob, error) {
	g, err := glob.Compile(manifest.Normalize(p), '/')
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", manifest.ErrInvalidGlob, p, err)
	}
	return g, nil
}

// patternDepth returns the number of path segments a pattern can match, or -1
// when it contains a "**" segment and may match at any depth.
func patternDepth(p string) int {
	if p == "." {
		return 0
	}
	if strings.Contains(p, "**") {
		return -1
	}
	return strings.Count(p, "/") + 1
}

func deeper(a, b int) int {
	if a < 0 || b < 0 {
		return -1
	}
	return max(a, b)
}

func (mg *memberGlobs) match(rel string) bool {
	matched := false
	for _, g := range mg.include {
		if g.Match(rel) {
			matched = true
			break
		}
	}
	if !matched {
		return false
	}
	for _, g := range mg.exclude {
		if g.Match(rel) {
			return false
		}
	}
	return true
}

// expand returns the directories under root (as slash-separated relative
// paths, in lexical walk order) that match the member globs.
func (mg *memberGlobs) expand(root string) ([]string, error) {
	base, err := filepath.EvalSymlinks(root)
	if err != nil {
		return nil, fmt.Errorf("resolving workspace root: %w", err)
	}
	var dirs []string
	err = filepath.WalkDir(base, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		// Symlinked directories are candidates but are not descended into.
		link := d.Type()&fs.ModeSymlink != 0
		if link && !isDir(p) {
			return nil
		}
		if !link && !d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(base, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel != "." {
			name := d.Name()
			if skipDirs[name] || strings.HasPrefix(name, ".") {
				if link {
					return nil
				}
				return filepath.SkipDir
			}
		}
		if mg.match(rel) {
			dirs = append(dirs, rel)
		}
		if link {
			return nil
		}
		if mg.maxDepth >= 0 && depth(rel) >= mg.maxDepth {
			return filepath.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("expanding workspace globs: %w", err)
	}
	return dirs, nil
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}

func depth(rel string) int {
	if rel == "." {
		return 0
	}
	return strings.Count(rel, "/") + 1
}
