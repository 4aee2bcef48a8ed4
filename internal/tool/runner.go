package tool

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
)

// A single external command execution.
type Invocation struct {
	Path string   // Binary name or path.
	Args []string // Arguments, excluding the binary itself.
}

// Returns the invocation as a shell-style command line, for logs.
func (i Invocation) String() string {
	return strings.Join(append([]string{i.Path}, i.Args...), " ")
}

// Outcome of an external command execution.
type ExecResult struct {
	ExitCode int    // Exit code of the process.
	Stderr   string // Captured standard error.
}

// Executes external commands. The exec-backed implementation is the only
// one used in production; tests inject fakes to observe dispatch without
// running real tools.
type Runner interface {
	Run(ctx context.Context, inv Invocation) (*ExecResult, error)
}

// Runs invocations as real child processes.
//
// The child's stdout is streamed to Out (the tool's own progress output);
// stderr is captured for error reporting. Cancelling the context kills the
// in-flight child, leaving any partial outputs in place for the next run's
// staleness check to pick up.
type ExecRunner struct {
	Out io.Writer // Destination for child stdout. Defaults to os.Stdout.
}

// Runs the invocation and waits for it to exit.
//
// A non-zero exit code is not treated as an error; the caller decides how
// to handle it. An error is returned only when the process could not be
// started or was killed by the context.
func (r *ExecRunner) Run(ctx context.Context, inv Invocation) (*ExecResult, error) {
	out := r.Out
	if out == nil {
		out = os.Stdout
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, inv.Path, inv.Args...)
	cmd.Stdout = out
	cmd.Stderr = &stderr

	err := cmd.Run()

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && ctx.Err() == nil {
		return &ExecResult{ExitCode: exitErr.ExitCode(), Stderr: stderr.String()}, nil
	}
	if err != nil {
		return nil, err
	}

	return &ExecResult{ExitCode: 0, Stderr: stderr.String()}, nil
}
