// Package config holds the runtime settings shared by every defmake
// command: the output directory, the parallelism degree, and the words
// used to invoke the two external tools.
//
// Each field resolves from, in increasing precedence: built-in default,
// the user configuration file, a DEFMAKE_* environment variable, and the
// command-line flag.
package config

import (
	"fmt"
	"strings"

	"github.com/defmake/defmake/internal/tool"
)

// Runtime settings, bound as kong flags by the CLI.
type Settings struct {
	Output string `help:"Output directory name under the source root." default:"build" env:"DEFMAKE_OUTPUT"`
	Jobs   int    `short:"j" help:"Number of targets built in parallel." default:"1" env:"DEFMAKE_JOBS"`

	ImageCmd    string `help:"Image build command." default:"apptainer" env:"DEFMAKE_IMAGE_CMD"`
	ImageSubcmd string `help:"Image build subcommand." default:"build" env:"DEFMAKE_IMAGE_SUBCMD"`
	ImageFlags  string `help:"Extra flags passed to the image build command." env:"DEFMAKE_IMAGE_FLAGS"`

	EnvCmd    string `help:"Environment creation command." default:"conda" env:"DEFMAKE_ENV_CMD"`
	EnvSubcmd string `help:"Environment creation subcommand." default:"env create" env:"DEFMAKE_ENV_SUBCMD"`
	EnvFlags  string `help:"Extra flags passed to the environment creation command." env:"DEFMAKE_ENV_FLAGS"`
}

// Checks settings for coherence after flag resolution.
func (s *Settings) Validate() error {
	if s.Jobs < 1 {
		return fmt.Errorf("--jobs must be at least 1 (got %d)", s.Jobs)
	}
	if strings.TrimSpace(s.Output) == "" {
		return fmt.Errorf("--output cannot be empty")
	}
	if strings.ContainsAny(s.Output, `/\`) {
		return fmt.Errorf("--output must be a directory name, not a path (got %q)", s.Output)
	}
	if strings.TrimSpace(s.ImageCmd) == "" {
		return fmt.Errorf("image command cannot be empty")
	}
	if strings.TrimSpace(s.EnvCmd) == "" {
		return fmt.Errorf("environment command cannot be empty")
	}
	return nil
}

// Builds the image tool template from the settings.
func (s *Settings) ImageTool() (tool.Tool, error) {
	return tool.New(s.ImageCmd, s.ImageSubcmd, s.ImageFlags)
}

// Builds the environment tool template from the settings.
func (s *Settings) EnvTool() (tool.Tool, error) {
	return tool.New(s.EnvCmd, s.EnvSubcmd, s.EnvFlags)
}
