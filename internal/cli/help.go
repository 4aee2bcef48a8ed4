package cli

import "github.com/alecthomas/kong"

// Represents the 'defmake help' command.
type HelpCmd struct{}

// Executes the help command.
func (c *HelpCmd) Run(kctx *kong.Context) error {
	return kctx.PrintUsage(false)
}
