package report

import (
	"time"

	"github.com/fbkclanna/wsrun/internal/shell"
	"github.com/fbkclanna/wsrun/internal/walker"
)

// Status values recorded per project.
const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
	StatusSkipped   = "skipped"
)

// File represents a run report.
type File struct {
	Version     int                 `yaml:"version"`
	Command     string              `yaml:"command"`
	GeneratedAt string              `yaml:"generated_at"`
	ToolVersion string              `yaml:"tool_version"`
	Failed      int                 `yaml:"failed"`
	Projects    map[string]*Project `yaml:"projects"`
}

// Project records how a single project settled.
type Project struct {
	Path     string   `yaml:"path"`
	Batch    int      `yaml:"batch"`
	Status   string   `yaml:"status"`
	Steps    []string `yaml:"steps,omitempty"`
	Duration string   `yaml:"duration,omitempty"`
	Error    string   `yaml:"error,omitempty"`
}

// FromResult builds a report from a walk result. relPath maps a project root
// to the path stored in the report.
func FromResult(command, toolVersion string, res *walker.Result[shell.Outcome], relPath func(root string) string) *File {
	f := &File{
		Version:     1,
		Command:     command,
		GeneratedAt: time.Now().Format(time.RFC3339),
		ToolVersion: toolVersion,
		Failed:      len(res.Errors),
		Projects:    make(map[string]*Project, res.Len()),
	}
	for _, s := range res.Results {
		status := StatusSucceeded
		if s.Value.Skipped {
			status = StatusSkipped
		}
		f.Projects[s.Project.Name()] = &Project{
			Path:     relPath(s.Project.Root()),
			Batch:    s.Batch + 1,
			Status:   status,
			Steps:    s.Value.Steps,
			Duration: formatDuration(s.Value.Duration),
		}
	}
	for _, e := range res.Errors {
		f.Projects[e.Project.Name()] = &Project{
			Path:   relPath(e.Project.Root()),
			Batch:  e.Batch + 1,
			Status: StatusFailed,
			Error:  e.Err.Error(),
		}
	}
	return f
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return ""
	}
	return d.Round(time.Millisecond).String()
}
