package scan

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Extension that marks a file as a definition file.
const DefExt = ".def"

// Recursively enumerates definition files under root.
//
// Returns paths relative to root, sorted for reproducible logs. The output
// directory and .git are skipped entirely. An empty tree yields an empty
// slice, not an error.
func Definitions(root, outputDir string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	var defs []string
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if d.IsDir() {
			if d.Name() == ".git" {
				return fs.SkipDir
			}
			// The output directory only shadows definitions at the top level.
			if outputDir != "" && path == filepath.Join(absRoot, outputDir) {
				return fs.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(d.Name(), DefExt) {
			return nil
		}

		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			return err
		}
		defs = append(defs, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(defs)
	return defs, nil
}
