package files

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/oukeidos/slideproj/internal/logger"
)

const tempPattern = ".slideproj-*.tmp"

// AtomicWrite replaces path with data. Readers see either the old content or
// the new content, never a partial file.
func AtomicWrite(path string, data []byte, perms os.FileMode) error {
	if err := RejectSymlinkPath(path); err != nil {
		return err
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, tempPattern)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if err := tmp.Chmod(perms); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := renameAtomic(tmpPath, path); err != nil {
		return fmt.Errorf("move temp file into place: %w", err)
	}
	committed = true

	if err := syncDir(dir); err != nil {
		logger.Debug("Directory sync failed", "path", dir, "error", err)
	}
	return nil
}

// WriteNew writes data next to path without replacing an existing file. It
// returns the path actually written.
func WriteNew(path string, data []byte, perms os.FileMode) (string, error) {
	target, changed, err := SafePath(path)
	if err != nil {
		return "", err
	}
	if changed {
		logger.Info("Output exists, writing to a new file", "requested", path, "path", target)
	}
	if err := AtomicWrite(target, data, perms); err != nil {
		return "", err
	}
	return target, nil
}

func syncDir(dir string) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}
