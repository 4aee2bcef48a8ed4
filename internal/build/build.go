package build

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"golang.org/x/sync/semaphore"

	"github.com/defmake/defmake/internal/paths"
	"github.com/defmake/defmake/internal/plan"
	"github.com/defmake/defmake/internal/tool"
)

// Name of the lock file guarding the output directory.
const lockFileName = ".defmake.lock"

// Retry interval while waiting for the output directory lock.
const lockRetryDelay = 250 * time.Millisecond

// Controls a build run.
type Options struct {
	Layout  plan.Layout    // Path conventions for sources, artifacts, and markers.
	Targets []*plan.Target // Targets to consider, typically Plan.All or Plan.TopLevel.
	Jobs    int            // Parallelism degree. Values below 1 mean serial execution.
	Image   tool.Tool      // External image builder.
	Env     tool.Tool      // External environment creator.
	Runner  tool.Runner    // Command executor. Defaults to a real exec runner.
}

// Summarizes a build run.
type Result struct {
	Built   []string // Targets rebuilt this run.
	Skipped []string // Targets already up to date.
	Failed  []string // Targets whose build failed.
}

// Executes all stale targets, bounded by the parallelism degree.
//
// Targets have no dependencies on one another, so stale targets run
// concurrently. A failing target is recorded and reported but never stops
// its siblings; the returned error is non-nil when any target failed.
// Cancelling the context terminates in-flight tool invocations and leaves
// partial outputs for the next run's staleness check.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Runner == nil {
		opts.Runner = &tool.ExecRunner{}
	}
	jobs := opts.Jobs
	if jobs < 1 {
		jobs = 1
	}

	if err := os.MkdirAll(opts.Layout.OutputDir(), paths.DefaultDirMode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileSystemOperation, err)
	}

	unlock, err := lockOutput(ctx, opts.Layout)
	if err != nil {
		return nil, err
	}
	defer unlock()

	res := &Result{}
	stale := make([]*plan.Target, 0, len(opts.Targets))
	for _, t := range opts.Targets {
		rebuild, err := opts.Layout.Stale(t)
		if err != nil {
			slog.Error("cannot plan target", "target", t.Name, "error", err)
			res.Failed = append(res.Failed, t.Name)
			continue
		}
		if !rebuild {
			slog.Debug("target up to date", "target", t.Name)
			res.Skipped = append(res.Skipped, t.Name)
			continue
		}
		stale = append(stale, t)
	}

	slog.Info("executing build plan",
		"targets", len(opts.Targets),
		"stale", len(stale),
		"jobs", jobs,
	)

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		sem = semaphore.NewWeighted(int64(jobs))
	)
	for _, t := range stale {
		if err := sem.Acquire(ctx, 1); err != nil {
			mu.Lock()
			res.Failed = append(res.Failed, t.Name)
			mu.Unlock()
			continue
		}

		wg.Add(1)
		go func(t *plan.Target) {
			defer wg.Done()
			defer sem.Release(1)

			err := buildTarget(ctx, opts, t)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				slog.Error("target failed", "target", t.Name, "error", err)
				res.Failed = append(res.Failed, t.Name)
				return
			}
			res.Built = append(res.Built, t.Name)
		}(t)
	}
	wg.Wait()

	sort.Strings(res.Built)
	sort.Strings(res.Skipped)
	sort.Strings(res.Failed)

	if len(res.Failed) > 0 {
		return res, fmt.Errorf("%w: %d target(s): %s",
			ErrBuild, len(res.Failed), strings.Join(res.Failed, ", "))
	}
	return res, nil
}

// Builds a single target by invoking the appropriate external tool.
//
// Image targets are stamped by the artifact the tool produces; environment
// targets get a zero-byte completion marker written after the tool exits
// successfully.
func buildTarget(ctx context.Context, opts Options, t *plan.Target) error {
	var inv tool.Invocation
	switch t.Kind {
	case plan.KindImage:
		inv = opts.Image.ImageInvocation(opts.Layout.OutputPath(t), opts.Layout.SourceFile(t))
	case plan.KindEnvironment:
		inv = opts.Env.EnvInvocation(opts.Layout.OutputPath(t), opts.Layout.SourceFile(t))
	default:
		return fmt.Errorf("%w: unknown target kind %q", ErrBuild, t.Kind)
	}

	slog.Info("building target", "target", t.Name, "source", t.Source)
	slog.Debug("exec", "command", inv.String())

	result, err := opts.Runner.Run(ctx, inv)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCommandFailed, err)
	}
	if result.ExitCode != 0 {
		return fmt.Errorf("%w: exit code %d: %s",
			ErrCommandFailed, result.ExitCode, strings.TrimSpace(result.Stderr))
	}

	if t.Kind == plan.KindEnvironment {
		if err := writeMarker(opts.Layout.MarkerPath(t)); err != nil {
			return err
		}
	}
	return nil
}

// Writes the zero-byte completion marker for an environment target.
func writeMarker(path string) error {
	if err := os.WriteFile(path, nil, paths.DefaultFileMode); err != nil {
		return fmt.Errorf("%w: %w", ErrFileSystemOperation, err)
	}
	return nil
}

// Acquires the lock file guarding the output directory.
//
// Concurrent defmake runs against the same output directory would race on
// artifacts and markers; the lock serializes them. Waits until the lock is
// free or the context is cancelled.
func lockOutput(ctx context.Context, layout plan.Layout) (func(), error) {
	lock := flock.New(filepath.Join(layout.OutputDir(), lockFileName))
	ok, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOutputLocked, err)
	}
	if !ok {
		return nil, ErrOutputLocked
	}
	return func() { _ = lock.Unlock() }, nil
}
