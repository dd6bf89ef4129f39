package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/fbkclanna/wsrun/internal/project"
)

// ExitError reports a command that ran but exited non-zero.
type ExitError struct {
	Command string
	Code    int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command %q exited with code %d", e.Command, e.Code)
}

// Outcome describes a settled command or script run.
type Outcome struct {
	// Skipped is set when the project has no such script.
	Skipped  bool
	Steps    []string
	Duration time.Duration
}

// Runner executes commands inside project directories.
type Runner struct {
	// Stdout and Stderr receive command output. Pass the same *SyncWriter
	// for both, and to any other producer, when they share a destination.
	Stdout io.Writer
	Stderr io.Writer
	// Prefix tags every output line with the project name.
	Prefix bool
	// Color renders prefixes with a per-project color.
	Color bool
	// WorkspaceRoot, when set, contributes its node_modules/.bin to PATH for scripts.
	WorkspaceRoot string
	// Env is appended to the inherited environment.
	Env []string

	once   sync.Once
	stdout *SyncWriter
	stderr *SyncWriter
}

// NewRunner creates a Runner writing to stdout and stderr.
func NewRunner(stdout, stderr io.Writer) *Runner {
	return &Runner{Stdout: stdout, Stderr: stderr, Prefix: true}
}

// Exec runs a shell command in the project's root directory.
func (r *Runner) Exec(ctx context.Context, p *project.Project, command string) (Outcome, error) {
	start := time.Now()
	err := r.run(ctx, p, command, nil)
	return Outcome{Steps: []string{command}, Duration: time.Since(start)}, err
}

// RunScript runs the named package.json script of p, preceded by its
// pre<name> script and followed by its post<name> script when declared.
// A project without the script settles as skipped.
func (r *Runner) RunScript(ctx context.Context, p *project.Project, name string) (Outcome, error) {
	name = strings.TrimSpace(name)
	if !p.HasScript(name) {
		return Outcome{Skipped: true}, nil
	}

	start := time.Now()
	var out Outcome
	for _, step := range []string{"pre" + name, name, "post" + name} {
		body, ok := p.Script(step)
		if !ok {
			continue
		}
		out.Steps = append(out.Steps, step)
		if err := r.run(ctx, p, body, r.scriptEnv(p, step)); err != nil {
			out.Duration = time.Since(start)
			return out, fmt.Errorf("script %q: %w", step, err)
		}
	}
	out.Duration = time.Since(start)
	return out, nil
}

func (r *Runner) run(ctx context.Context, p *project.Project, command string, env []string) error {
	if strings.TrimSpace(command) == "" {
		return fmt.Errorf("empty command")
	}

	cmd := shellCommand(ctx, command)
	cmd.Dir = p.Root()
	cmd.Env = append(append(os.Environ(), r.Env...), env...)

	stdout, stderr := r.writers(p.Name())
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	err := cmd.Run()
	if f, ok := stdout.(*prefixWriter); ok {
		f.Flush()
	}
	if f, ok := stderr.(*prefixWriter); ok {
		f.Flush()
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
			return &ExitError{Command: command, Code: exitErr.ExitCode()}
		}
		return fmt.Errorf("running %q: %w", command, err)
	}
	return nil
}

// writers returns the destinations for one command. Every command shares the
// same synchronized writers, prefixed or not, so concurrent projects never
// write to Stdout or Stderr at the same time.
func (r *Runner) writers(name string) (io.Writer, io.Writer) {
	r.once.Do(func() {
		r.stdout = NewSyncWriter(r.Stdout)
		r.stderr = NewSyncWriter(r.Stderr)
	})
	if !r.Prefix {
		return r.stdout, r.stderr
	}
	label := name + ": "
	if r.Color {
		label = prefixStyle(name).Render(name) + ": "
	}
	return &prefixWriter{out: r.stdout, prefix: []byte(label)},
		&prefixWriter{out: r.stderr, prefix: []byte(label)}
}

// scriptEnv mirrors the environment a package manager gives lifecycle scripts.
func (r *Runner) scriptEnv(p *project.Project, step string) []string {
	bins := []string{filepath.Join(p.Root(), "node_modules", ".bin")}
	if r.WorkspaceRoot != "" && filepath.Clean(r.WorkspaceRoot) != filepath.Clean(p.Root()) {
		bins = append(bins, filepath.Join(r.WorkspaceRoot, "node_modules", ".bin"))
	}
	path := strings.Join(append(bins, os.Getenv("PATH")), string(os.PathListSeparator))
	return []string{
		"PATH=" + path,
		"npm_lifecycle_event=" + step,
		"npm_package_name=" + p.Name(),
		"npm_package_version=" + p.Version(),
	}
}

func shellCommand(ctx context.Context, command string) *exec.Cmd {
	if runtime.GOOS == "windows" {
		return exec.CommandContext(ctx, "cmd", "/C", command)
	}
	return exec.CommandContext(ctx, "sh", "-c", command)
}

func orDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}
