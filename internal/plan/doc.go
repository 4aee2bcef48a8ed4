// Package plan turns discovered definition files into build targets.
//
// Classification distinguishes the single root base definition
// (base_image.def at the tree root, built into a SIF image) from
// environment definitions, whose names are flattened with double-dashes
// when nested. The transform is checked to be bijective over the
// discovered set at compile time; colliding names fail loudly rather
// than silently overwriting outputs.
//
// A Layout centralizes all path conventions and answers staleness queries
// by comparing a target's completion stamp against its source definition's
// modification time.
package plan
