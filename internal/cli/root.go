package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	kongyaml "github.com/alecthomas/kong-yaml"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"

	"github.com/defmake/defmake/internal"
	"github.com/defmake/defmake/internal/config"
	"github.com/defmake/defmake/internal/paths"
	"github.com/defmake/defmake/internal/plan"
	"github.com/defmake/defmake/internal/scan"
)

// Represents the root command for defmake.
var RootCmd struct {
	Quiet   bool   `short:"q" help:"Suppress informational output."`
	Verbose bool   `short:"v" help:"Enable verbose output."`
	Debug   bool   `short:"d" help:"Enable debug output."`
	Chdir   string `short:"C" help:"Source root directory to operate in." default:"." placeholder:"DIR" env:"DEFMAKE_ROOT"`

	config.Settings `embed:""`

	All     AllCmd      `cmd:"" default:"1" help:"Build every discovered target."`
	Root    TopLevelCmd `cmd:"" help:"Build only the root image and top-level targets."`
	List    ListCmd     `cmd:"" help:"Print planned targets without building."`
	Clean   CleanCmd    `cmd:"" help:"Remove the output directory."`
	Help    HelpCmd     `cmd:"" help:"Print usage text."`
	Version VersionCmd  `cmd:"" help:"Show version information."`
}

// Parses arguments, configures logging, and runs the selected subcommand.
//
// Flag values resolve from the command line, DEFMAKE_* environment
// variables, and the user configuration file, in that order.
func Execute() error {

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	kongCtx := kong.Parse(&RootCmd,
		kong.Name(internal.Name),
		kong.Description("Incremental builder for container definition trees.\n\nDiscovers *.def files and drives the image and environment tools to keep the output directory up to date."),
		kong.UsageOnError(),
		kong.Vars{
			"version": internal.VersionString(),
		},
		kong.BindTo(ctx, (*context.Context)(nil)),
		kong.Configuration(kongyaml.Loader, configFiles()...),
	)

	configureLogger()

	return kongCtx.Run()
}

// Returns the configuration file candidates, most specific first.
func configFiles() []string {
	if path := os.Getenv("DEFMAKE_CONFIG"); path != "" {
		return []string{path, paths.ConfigFile()}
	}
	return []string{paths.ConfigFile()}
}

// Configures the global logger based on CLI flags.
func configureLogger() {
	level := slog.LevelInfo
	if RootCmd.Debug {
		level = slog.LevelDebug
	} else if RootCmd.Quiet {
		level = slog.LevelWarn
	}

	handler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
		AddSource:  RootCmd.Verbose,
		TimeFormat: "15:04:05",
	})

	slog.SetDefault(slog.New(handler))
}

// Scans the source tree and compiles the build plan.
//
// Shared by every subcommand: the plan is recomputed from a fresh scan on
// each invocation, independent of build state.
func loadPlan() (*plan.Plan, plan.Layout, error) {
	root, err := filepath.Abs(RootCmd.Chdir)
	if err != nil {
		return nil, plan.Layout{}, err
	}

	layout := plan.Layout{Root: root, Output: RootCmd.Output}

	defs, err := scan.Definitions(root, RootCmd.Output)
	if err != nil {
		return nil, plan.Layout{}, err
	}
	slog.Debug("scanned source tree", "root", root, "definitions", len(defs))

	p, err := plan.Compile(defs)
	if err != nil {
		return nil, plan.Layout{}, err
	}

	return p, layout, nil
}
