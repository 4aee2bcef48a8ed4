package cli

import (
	"context"
	"log/slog"

	"github.com/defmake/defmake/internal/build"
	"github.com/defmake/defmake/internal/plan"
)

// Represents the 'defmake all' command.
type AllCmd struct{}

// Executes the all command.
//
// Builds every discovered target: the root base image and all environment
// targets, nested ones included.
func (c *AllCmd) Run(ctx context.Context) error {
	p, layout, err := loadPlan()
	if err != nil {
		return err
	}
	return runBuild(ctx, layout, p.All())
}

// Represents the 'defmake root' command.
type TopLevelCmd struct{}

// Executes the root command.
//
// Builds the root base image and top-level environment targets only;
// definitions in subdirectories are left alone.
func (c *TopLevelCmd) Run(ctx context.Context) error {
	p, layout, err := loadPlan()
	if err != nil {
		return err
	}
	return runBuild(ctx, layout, p.TopLevel())
}

// Dispatches the selected targets to the build package.
func runBuild(ctx context.Context, layout plan.Layout, targets []*plan.Target) error {
	image, err := RootCmd.ImageTool()
	if err != nil {
		return err
	}
	env, err := RootCmd.EnvTool()
	if err != nil {
		return err
	}

	result, err := build.Run(ctx, build.Options{
		Layout:  layout,
		Targets: targets,
		Jobs:    RootCmd.Jobs,
		Image:   image,
		Env:     env,
	})
	if result != nil {
		slog.Info("build finished",
			"built", len(result.Built),
			"skipped", len(result.Skipped),
			"failed", len(result.Failed),
		)
	}
	return err
}
