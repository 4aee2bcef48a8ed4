package build

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/defmake/defmake/internal/plan"
)

// Removes the entire output directory tree.
//
// Idempotent: succeeds when the directory is already absent. Planning is
// independent of build state, so a subsequent list shows the same targets.
// Takes the output directory lock first so a concurrent build run cannot
// have its artifacts deleted out from under it.
func Clean(ctx context.Context, layout plan.Layout) error {
	dir := layout.OutputDir()
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	unlock, err := lockOutput(ctx, layout)
	if err != nil {
		return err
	}
	defer unlock()

	slog.Info("removing output directory", "dir", dir)

	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("%w: %w", ErrFileSystemOperation, err)
	}
	return nil
}
