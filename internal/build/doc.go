// Package build executes a compiled plan against the external tools.
//
// Each target depends solely on its own definition file, so stale targets
// run concurrently up to the configured parallelism degree. The run first
// partitions targets into stale and up-to-date using the layout's staleness
// check, then dispatches each stale target to the image builder or the
// environment creator. Environment targets are stamped with a zero-byte
// completion marker; image targets are stamped by the artifact itself.
//
// Failures stay local to their target. Siblings keep running, the failing
// targets are collected, and the run's error reports them all at once.
// A file lock on the output directory serializes concurrent invocations.
//
// Example usage:
//
//	result, err := build.Run(ctx, build.Options{
//	    Layout:  layout,
//	    Targets: p.All(),
//	    Jobs:    4,
//	    Image:   imageTool,
//	    Env:     envTool,
//	})
package build
