package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/defmake/defmake/internal/plan"
)

// Represents the 'defmake list' command.
type ListCmd struct {
	Format string `short:"o" help:"Output format." enum:"text,json,yaml" default:"text"`
}

// One row of list output.
type listEntry struct {
	Target   string `json:"target" yaml:"target"`
	Path     string `json:"path" yaml:"path"`
	Kind     string `json:"kind" yaml:"kind"`
	Source   string `json:"source" yaml:"source"`
	Stale    bool   `json:"stale" yaml:"stale"`
	TopLevel bool   `json:"topLevel" yaml:"topLevel"`
}

// Executes the list command.
//
// Pure read-only enumeration of what 'all' would build; entries marked
// top-level are the subset 'root' would build. Nothing is written.
func (c *ListCmd) Run(ctx context.Context) error {
	p, layout, err := loadPlan()
	if err != nil {
		return err
	}

	entries := make([]listEntry, 0, len(p.Envs)+1)
	for _, t := range p.All() {
		stale, err := layout.Stale(t)
		if err != nil {
			return err
		}
		entries = append(entries, listEntry{
			Target:   t.Name,
			Path:     layout.OutputPath(t),
			Kind:     string(t.Kind),
			Source:   t.Source,
			Stale:    stale,
			TopLevel: t.Kind == plan.KindImage || !t.Nested(),
		})
	}

	switch c.Format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		if err := enc.Encode(entries); err != nil {
			return err
		}
		return enc.Close()
	default:
		return printEntries(entries)
	}
}

// Renders list entries as an aligned, optionally colored table.
func printEntries(entries []listEntry) error {
	stale := color.New(color.FgYellow).SprintFunc()
	fresh := color.New(color.FgGreen).SprintFunc()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, e := range entries {
		state := fresh("up to date")
		if e.Stale {
			state = stale("stale")
		}
		set := ""
		if !e.TopLevel {
			set = "(all only)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", e.Target, e.Kind, e.Source, state, set)
	}
	return w.Flush()
}
