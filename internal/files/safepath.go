package files

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const maxNumberedCandidates = 9

// SafePath returns path if nothing exists there. Otherwise it tries
// name_1.ext to name_9.ext and finally a name with a UUID suffix. The bool
// reports whether the returned path differs from path.
func SafePath(path string) (string, bool, error) {
	if strings.TrimSpace(path) == "" {
		return "", false, fmt.Errorf("path is empty")
	}
	free, err := isFree(path)
	if err != nil {
		return "", false, err
	}
	if free {
		return path, false, nil
	}

	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	for i := 1; i <= maxNumberedCandidates; i++ {
		candidate := fmt.Sprintf("%s_%d%s", base, i, ext)
		free, err := isFree(candidate)
		if err != nil {
			return "", false, err
		}
		if free {
			return candidate, true, nil
		}
	}

	suffix := uuid.NewString()
	if u, err := uuid.NewV7(); err == nil {
		suffix = u.String()
	}
	return fmt.Sprintf("%s_%s%s", base, suffix, ext), true, nil
}

// isFree reports whether nothing, not even a dangling symlink, exists at path.
func isFree(path string) (bool, error) {
	_, err := os.Lstat(path)
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, fs.ErrNotExist):
		return true, nil
	default:
		return false, fmt.Errorf("check %s: %w", path, err)
	}
}
