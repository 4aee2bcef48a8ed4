package cli

import (
	"context"
	"path/filepath"

	"github.com/defmake/defmake/internal/build"
	"github.com/defmake/defmake/internal/plan"
)

// Represents the 'defmake clean' command.
type CleanCmd struct{}

// Executes the clean command.
//
// Removes the entire output directory; succeeds when it is already absent.
func (c *CleanCmd) Run(ctx context.Context) error {
	root, err := filepath.Abs(RootCmd.Chdir)
	if err != nil {
		return err
	}
	return build.Clean(ctx, plan.Layout{Root: root, Output: RootCmd.Output})
}
