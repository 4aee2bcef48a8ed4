package tool

import (
	"fmt"

	shellwords "github.com/mattn/go-shellwords"
)

// An external command template: the binary, its subcommand tokens, and any
// user-supplied extra flags. Argument order for each invocation kind is
// fixed by the tool contracts; only the words themselves are configurable.
type Tool struct {
	Command    string   // Binary name or path (e.g., "apptainer").
	Subcommand []string // Subcommand tokens (e.g., ["build"] or ["env", "create"]).
	Extra      []string // Extra flags appended per the contract.
}

// Builds a [Tool] from configuration strings.
//
// The subcommand and extra flags are single strings split with shell word
// rules, so values like "env create" or "--fakeroot --force" configure
// multiple tokens.
func New(command, subcommand, extra string) (Tool, error) {
	sub, err := shellwords.Parse(subcommand)
	if err != nil {
		return Tool{}, fmt.Errorf("parse subcommand %q: %w", subcommand, err)
	}
	flags, err := shellwords.Parse(extra)
	if err != nil {
		return Tool{}, fmt.Errorf("parse extra flags %q: %w", extra, err)
	}
	return Tool{Command: command, Subcommand: sub, Extra: flags}, nil
}

// Builds the argv for an image build:
//
//	<command> <subcommand...> <artifact> <extra...> <definition>
//
// The image tool must create the artifact file on success.
func (t Tool) ImageInvocation(artifact, definition string) Invocation {
	args := append([]string{}, t.Subcommand...)
	args = append(args, artifact)
	args = append(args, t.Extra...)
	args = append(args, definition)
	return Invocation{Path: t.Command, Args: args}
}

// Builds the argv for an environment creation:
//
//	<command> <subcommand...> <target> -f <definition> <extra...>
//
// The environment tool must create or update the target directory on
// success; the orchestrator writes the completion marker afterwards.
func (t Tool) EnvInvocation(target, definition string) Invocation {
	args := append([]string{}, t.Subcommand...)
	args = append(args, target, "-f", definition)
	args = append(args, t.Extra...)
	return Invocation{Path: t.Command, Args: args}
}
