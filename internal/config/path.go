package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/behavioral-data/Data-Assistant-Interface/internal/eventlog"
)

// ResolveLogDir turns dir into an absolute, clean path. An empty dir means
// eventlog.DefaultDir; "~/" expands to the user's home directory; other
// relative paths are taken against the current working directory, once, so
// a later chdir cannot move the logs.
func ResolveLogDir(dir string) (string, error) {
	if dir == "" {
		dir = eventlog.DefaultDir
	}
	if dir == "~" || strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, strings.TrimPrefix(dir, "~"))
	}
	return filepath.Abs(dir)
}
