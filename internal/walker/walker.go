package walker

import (
	"context"
	"sync"
	"time"

	"github.com/fbkclanna/wsrun/internal/graph"
	"github.com/fbkclanna/wsrun/internal/logging"
	"github.com/fbkclanna/wsrun/internal/project"
	"github.com/fbkclanna/wsrun/internal/shell"
	"github.com/sourcegraph/conc/panics"
	"github.com/sourcegraph/conc/pool"
)

// Action is run once per project. A returned error marks the project failed.
type Action[T any] func(ctx context.Context, p *project.Project) (T, error)

// Settled describes one finished action for progress reporting.
type Settled struct {
	Project  *project.Project
	Batch    int
	Err      error
	Duration time.Duration
}

// Options controls planning and execution of a walk.
type Options struct {
	// Parallel runs the projects of a batch concurrently. When false every
	// project runs on its own, one after another.
	Parallel bool
	// Jobs caps concurrent actions within a batch; values <= 0 mean no cap.
	Jobs int
	// Order enables dependency ordering over the selected kinds. Nil disables
	// ordering and the registry order is used as is.
	Order *graph.Include
	// Select, when set, limits which planned projects are executed. It is
	// applied after scheduling so the order among selected projects still
	// honors dependencies through unselected ones.
	Select func(*project.Project) bool
	// OnSettle is called after each action settles. Calls may be concurrent.
	OnSettle func(Settled)
	Logger   *logging.Logger
}

// OrderAll selects every dependency kind, the plain "order by dependencies" form.
func OrderAll() *graph.Include {
	inc := graph.All()
	return &inc
}

// OrderKinds selects only the given dependency kinds.
func OrderKinds(kinds ...project.Kind) *graph.Include {
	inc := graph.Kinds(kinds...)
	return &inc
}

// Plan groups projects into the batches Execute runs. Scheduling errors such
// as dependency cycles are returned before anything runs. An Order selecting
// no kinds behaves like no ordering and keeps the input order.
func Plan(projects []*project.Project, opts Options) ([][]*project.Project, error) {
	unordered := opts.Order == nil || opts.Order.None()
	var batches [][]*project.Project
	switch {
	case unordered && opts.Parallel:
		if len(projects) > 0 {
			batches = [][]*project.Project{projects}
		}
	case unordered:
		batches = singletons(projects)
	default:
		g := graph.Build(projects, *opts.Order)
		if opts.Parallel {
			var err error
			if batches, err = g.Batches(); err != nil {
				return nil, err
			}
		} else {
			linear, err := g.Linear()
			if err != nil {
				return nil, err
			}
			batches = singletons(linear)
		}
	}
	return selectProjects(batches, opts.Select), nil
}

func singletons(projects []*project.Project) [][]*project.Project {
	out := make([][]*project.Project, len(projects))
	for i, p := range projects {
		out[i] = []*project.Project{p}
	}
	return out
}

func selectProjects(batches [][]*project.Project, keep func(*project.Project) bool) [][]*project.Project {
	if keep == nil {
		return batches
	}
	var out [][]*project.Project
	for _, b := range batches {
		var kept []*project.Project
		for _, p := range b {
			if keep(p) {
				kept = append(kept, p)
			}
		}
		if len(kept) > 0 {
			out = append(out, kept)
		}
	}
	return out
}

// Count returns the number of projects across batches.
func Count(batches [][]*project.Project) int {
	n := 0
	for _, b := range batches {
		n += len(b)
	}
	return n
}

// Execute runs action for every project, batch by batch. All actions of a
// batch are started together (bounded by Jobs) and every one of them settles
// before the next batch starts. Errors and panics are recorded per project;
// Execute never retries and never skips later batches, even when every
// project of an earlier batch failed.
func Execute[T any](ctx context.Context, batches [][]*project.Project, action Action[T], opts Options) *Result[T] {
	res := &Result[T]{}
	var mu sync.Mutex

	for bi, batch := range batches {
		log := opts.Logger.With("batch", bi+1)
		log.Debug("starting batch", "projects", len(batch))

		p := pool.New()
		if opts.Jobs > 0 {
			p = p.WithMaxGoroutines(opts.Jobs)
		}
		for _, proj := range batch {
			p.Go(func() {
				start := time.Now()
				value, err := settle(ctx, proj, action)
				elapsed := time.Since(start)

				mu.Lock()
				if err != nil {
					res.Errors = append(res.Errors, Failure{Project: proj, Batch: bi, Err: err})
				} else {
					res.Results = append(res.Results, Success[T]{Project: proj, Batch: bi, Value: value})
				}
				mu.Unlock()

				plog := log.WithProject(proj.Name())
				if err != nil {
					plog.Warn("project failed", "err", err, "duration", elapsed)
				} else {
					plog.Debug("project succeeded", "duration", elapsed)
				}
				if opts.OnSettle != nil {
					opts.OnSettle(Settled{Project: proj, Batch: bi, Err: err, Duration: elapsed})
				}
			})
		}
		p.Wait()
	}
	return res
}

// settle runs action, converting a panic into an error.
func settle[T any](ctx context.Context, p *project.Project, action Action[T]) (value T, err error) {
	var pc panics.Catcher
	pc.Try(func() {
		value, err = action(ctx, p)
	})
	if r := pc.Recovered(); r != nil {
		var zero T
		return zero, r.AsError()
	}
	return value, err
}

// Walk plans and executes action over projects. A planning error aborts the
// walk before any action runs.
func Walk[T any](ctx context.Context, projects []*project.Project, action Action[T], opts Options) (*Result[T], error) {
	batches, err := Plan(projects, opts)
	if err != nil {
		return nil, err
	}
	opts.Logger.Debug("planned walk", "batches", len(batches), "projects", Count(batches), "parallel", opts.Parallel)
	return Execute(ctx, batches, action, opts), nil
}

// Exec runs a shell command in every project.
func Exec(ctx context.Context, projects []*project.Project, r *shell.Runner, command string, opts Options) (*Result[shell.Outcome], error) {
	return Walk(ctx, projects, func(ctx context.Context, p *project.Project) (shell.Outcome, error) {
		return r.Exec(ctx, p, command)
	}, opts)
}

// RunScript runs a package.json script in every project. Projects without
// the script stay in the plan and settle as skipped successes.
func RunScript(ctx context.Context, projects []*project.Project, r *shell.Runner, script string, opts Options) (*Result[shell.Outcome], error) {
	return Walk(ctx, projects, func(ctx context.Context, p *project.Project) (shell.Outcome, error) {
		return r.RunScript(ctx, p, script)
	}, opts)
}
