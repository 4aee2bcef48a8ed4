package plan

import (
	"strings"

	"github.com/defmake/defmake/internal/scan"
)

// Separator used to flatten directory levels into a single target name.
const nameSep = "--"

// Derives the target name for a definition file path.
//
// The extension is stripped and every directory separator is replaced by a
// literal double-dash, so nested definitions map to flat names directly
// under the output directory (e.g., "ubuntu20/code-server.def" becomes
// "ubuntu20--code-server").
func TargetName(rel string) string {
	name := strings.TrimSuffix(rel, scan.DefExt)
	return strings.ReplaceAll(name, "/", nameSep)
}

// Recovers the definition file path for a target name.
//
// Exact inverse of [TargetName]: double-dashes become directory separators
// and the extension is restored.
func SourcePath(name string) string {
	return strings.ReplaceAll(name, nameSep, "/") + scan.DefExt
}
