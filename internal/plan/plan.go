package plan

import (
	"fmt"
	"sort"
	"strings"

	"github.com/opencontainers/go-digest"
)

const (

	// Reserved name of the distinguished root base definition.
	RootBaseName = "base_image.def"

	// Artifact name produced by the root base definition.
	RootArtifactName = "base_image.sif"
)

// Classifies what a target produces and which external tool builds it.
type Kind string

const (
	KindImage       Kind = "image"       // SIF image built by the image tool.
	KindEnvironment Kind = "environment" // Environment directory plus completion marker.
)

// A planned build output derived from exactly one definition file.
type Target struct {
	Name   string        // Output name directly under the output directory.
	Kind   Kind          // What the target produces.
	Source string        // Definition file path relative to the scan root, slash-separated.
	Digest digest.Digest // Content address of the source path, registry key material.
}

// Whether the target's definition lives in a subdirectory.
func (t *Target) Nested() bool {
	return strings.Contains(t.Source, "/")
}

// Maps discovered definition files to build targets.
//
// The registry is the single source of truth for target naming: every
// lookup and staleness query goes through it rather than through ad-hoc
// filesystem probes.
type Plan struct {
	Root *Target   // Root base image target, nil when base_image.def is absent.
	Envs []*Target // Environment targets, sorted by name.

	byName map[string]*Target
}

// Compiles discovered definition paths into a plan.
//
// Exactly the file named base_image.def at the tree root is the root base
// definition; every other path becomes an environment target. The name
// transform must be bijective over the discovered set: a path whose flat
// name does not round-trip, or two paths flattening to the same name, fail
// compilation with [ErrNameCollision].
func Compile(defs []string) (*Plan, error) {
	p := &Plan{byName: make(map[string]*Target, len(defs))}

	for _, rel := range defs {
		if rel == RootBaseName {
			t := &Target{
				Name:   RootArtifactName,
				Kind:   KindImage,
				Source: rel,
				Digest: digest.FromString(rel),
			}
			// The root artifact occupies a name in the output directory like
			// any other target, so it joins the registry and collides with
			// any definition flattening to the same name.
			if prev, ok := p.byName[RootArtifactName]; ok {
				return nil, fmt.Errorf("%w: %q and %q both map to target %q", ErrNameCollision, prev.Source, rel, RootArtifactName)
			}
			p.byName[RootArtifactName] = t
			p.Root = t
			continue
		}

		name := TargetName(rel)
		if name == "" {
			return nil, fmt.Errorf("%w: %q produces an empty target name", ErrInvalidName, rel)
		}
		if SourcePath(name) != rel {
			return nil, fmt.Errorf("%w: %q does not round-trip through target name %q", ErrNameCollision, rel, name)
		}
		if prev, ok := p.byName[name]; ok {
			return nil, fmt.Errorf("%w: %q and %q both map to target %q", ErrNameCollision, prev.Source, rel, name)
		}

		t := &Target{
			Name:   name,
			Kind:   KindEnvironment,
			Source: rel,
			Digest: digest.FromString(rel),
		}
		p.byName[name] = t
		p.Envs = append(p.Envs, t)
	}

	sort.Slice(p.Envs, func(i, j int) bool { return p.Envs[i].Name < p.Envs[j].Name })
	return p, nil
}

// Returns the target registered under the given name, or nil.
func (p *Plan) Lookup(name string) *Target {
	return p.byName[name]
}

// Returns every target: the root image (when present) followed by all
// environment targets.
func (p *Plan) All() []*Target {
	targets := make([]*Target, 0, len(p.Envs)+1)
	if p.Root != nil {
		targets = append(targets, p.Root)
	}
	return append(targets, p.Envs...)
}

// Returns the root image (when present) and only top-level environment
// targets; definitions in subdirectories are excluded.
func (p *Plan) TopLevel() []*Target {
	targets := make([]*Target, 0, len(p.Envs)+1)
	if p.Root != nil {
		targets = append(targets, p.Root)
	}
	for _, t := range p.Envs {
		if !t.Nested() {
			targets = append(targets, t)
		}
	}
	return targets
}
