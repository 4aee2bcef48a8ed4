// Package tool models the external image and environment builders as typed
// command templates.
//
// The orchestrator itself never links tool internals; both collaborators are
// plain argv-level invocations. A Tool holds the configurable words (binary,
// subcommand tokens, extra flags) and produces Invocations with the fixed
// argument order each contract requires. A Runner executes Invocations;
// tests substitute fakes for the exec-backed implementation.
package tool
