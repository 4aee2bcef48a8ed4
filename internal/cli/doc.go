// Parses flags and dispatches defmake subcommands.
//
// The tool accepts the following commands:
//
//	all       Build every discovered target (default).
//	root      Build the root image and top-level targets only.
//	list      Print planned targets without building.
//	clean     Remove the output directory.
//	help      Print usage text.
//	version   Show version information.
//
// Global flags select the source root (-C), the output directory name, the
// parallelism degree (-j), and the external tool command words. Every flag
// can also be set through a DEFMAKE_* environment variable or the user
// configuration file; flags win over both. After parsing, the global logger
// is reconfigured to reflect the final level before any command runs.
package cli
