package config

import (
	"os"
	"path/filepath"
	"strings"
)

// PicturesDir returns the user's pictures directory: $XDG_PICTURES_DIR when
// set, otherwise ~/Pictures.
func PicturesDir() string {
	if dir := strings.TrimSpace(os.Getenv("XDG_PICTURES_DIR")); dir != "" {
		return mustExpand(dir)
	}
	return mustExpand("~/Pictures")
}

// StateDir returns the directory holding state that survives restarts:
// $XDG_STATE_HOME/slideproj, or ~/.local/state/slideproj.
func StateDir() string {
	if dir := strings.TrimSpace(os.Getenv("XDG_STATE_HOME")); dir != "" {
		return filepath.Join(mustExpand(dir), appName)
	}
	return filepath.Join(mustExpand("~/.local/state"), appName)
}
