package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// RejectSymlinkPath fails if path, or any directory above it, is a symlink or
// a reparse point. Components that do not exist yet are accepted, so the
// check also works for files about to be created.
func RejectSymlinkPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("path is empty")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	volume := filepath.VolumeName(abs)
	current := volume + string(os.PathSeparator)
	rest := strings.TrimLeft(abs[len(volume):], string(os.PathSeparator))
	if rest == "" {
		return nil
	}

	for _, part := range strings.Split(rest, string(os.PathSeparator)) {
		if part == "" {
			continue
		}
		current = filepath.Join(current, part)
		info, err := os.Lstat(current)
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("inspect %s: %w", current, err)
		}
		if info.Mode()&os.ModeSymlink != 0 {
			return fmt.Errorf("refusing to write through symlink %s (target %s)", current, path)
		}
		reparse, err := isReparsePoint(current)
		if err != nil {
			return fmt.Errorf("inspect %s: %w", current, err)
		}
		if reparse {
			return fmt.Errorf("refusing to write through reparse point %s (target %s)", current, path)
		}
	}
	return nil
}
