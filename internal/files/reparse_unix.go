//go:build !windows

package files

// Symlinks are caught by Lstat; other platforms have no reparse points.
func isReparsePoint(string) (bool, error) {
	return false, nil
}
