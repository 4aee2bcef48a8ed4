package plan

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Addresses every file a build reads or writes.
//
// All filesystem queries for sources, artifacts, and markers go through the
// layout so that path conventions live in one place instead of ambient
// os.Stat calls scattered through execution.
type Layout struct {
	Root   string // Scan root directory.
	Output string // Output directory name under the root (e.g., "build").
}

// Absolute path of the output directory.
func (l Layout) OutputDir() string {
	return filepath.Join(l.Root, l.Output)
}

// Path of the target's output under the output directory.
func (l Layout) OutputPath(t *Target) string {
	return filepath.Join(l.OutputDir(), t.Name)
}

// Path of the zero-byte completion marker for an environment target.
//
// Environment targets produce a directory, which carries no useful
// timestamp of its own; the marker is the completion stamp instead.
func (l Layout) MarkerPath(t *Target) string {
	return l.OutputPath(t) + ".marker"
}

// Path of the target's source definition file.
func (l Layout) SourceFile(t *Target) string {
	return filepath.Join(l.Root, filepath.FromSlash(t.Source))
}

// Path of the file whose timestamp signals target completion.
//
// Image targets use the produced artifact itself; environment targets use
// the completion marker.
func (l Layout) StampPath(t *Target) string {
	if t.Kind == KindImage {
		return l.OutputPath(t)
	}
	return l.MarkerPath(t)
}

// Reports whether the target must be rebuilt.
//
// A target is stale when its completion stamp is absent or older than its
// source definition file. A missing source is a planning error, returned
// as [ErrMissingSource].
func (l Layout) Stale(t *Target) (bool, error) {
	src, err := os.Stat(l.SourceFile(t))
	if errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("%w: %s", ErrMissingSource, t.Source)
	}
	if err != nil {
		return false, err
	}

	stamp, err := os.Stat(l.StampPath(t))
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, err
	}

	return stamp.ModTime().Before(src.ModTime()), nil
}
