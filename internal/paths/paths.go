package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (

	// Name used for directory and file naming.
	toolName = "defmake"

	// Default permission mode for directories.
	DefaultDirMode os.FileMode = 0755

	// Default permission mode for files.
	DefaultFileMode os.FileMode = 0644
)

// Default path to the user configuration file.
//
//	Linux:   ~/.config/defmake/config.yaml
//	macOS:   ~/Library/Application Support/defmake/config.yaml
func ConfigFile() string {
	return filepath.Join(xdg.ConfigHome, toolName, "config.yaml")
}
