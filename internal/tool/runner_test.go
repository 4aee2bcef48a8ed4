//go:build unix

package tool

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestExecRunnerSuccess(t *testing.T) {
	var out bytes.Buffer
	r := &ExecRunner{Out: &out}

	res, err := r.Run(context.Background(), Invocation{
		Path: "sh", Args: []string{"-c", "echo hello"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ExitCode != 0 {
		t.Fatalf("exit code = %d, want 0", res.ExitCode)
	}
	if got := strings.TrimSpace(out.String()); got != "hello" {
		t.Fatalf("stdout = %q, want hello", got)
	}
}

func TestExecRunnerNonZeroExit(t *testing.T) {
	r := &ExecRunner{Out: &bytes.Buffer{}}

	res, err := r.Run(context.Background(), Invocation{
		Path: "sh", Args: []string{"-c", "echo boom >&2; exit 3"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ExitCode != 3 {
		t.Fatalf("exit code = %d, want 3", res.ExitCode)
	}
	if !strings.Contains(res.Stderr, "boom") {
		t.Fatalf("stderr = %q, want to contain boom", res.Stderr)
	}
}

func TestExecRunnerMissingBinary(t *testing.T) {
	r := &ExecRunner{Out: &bytes.Buffer{}}

	if _, err := r.Run(context.Background(), Invocation{Path: "defmake-no-such-binary"}); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestExecRunnerCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &ExecRunner{Out: &bytes.Buffer{}}
	if _, err := r.Run(ctx, Invocation{Path: "sh", Args: []string{"-c", "sleep 10"}}); err == nil {
		t.Fatal("expected error, got nil")
	}
}
