// Package collector builds the slide list: it walks input directories,
// filters the files found and sorts them by their metadata.
package collector

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/oukeidos/slideproj/internal/apperrors"
	"github.com/oukeidos/slideproj/internal/glob"
	"github.com/oukeidos/slideproj/internal/logger"
	"github.com/oukeidos/slideproj/internal/pixels"
	"github.com/oukeidos/slideproj/internal/slideshow"
)

// DefaultInclude lists the patterns used when none are configured.
var DefaultInclude = []string{"*.jpg", "*.jpeg", "*.png", "*.gif", "*.bmp", "*.tif", "*.tiff", "*.webp"}

// DefaultMaxPixelCount rejects images larger than about 100 megapixels.
const DefaultMaxPixelCount int64 = 100_000_000

// DimensionFunc returns the size of the image at path.
type DimensionFunc func(path string) (pixels.Rect, error)

// Filter decides which files become slides.
type Filter struct {
	// Include patterns are matched against the full path.
	Include []glob.Pattern
	// MaxPixelCount rejects larger images. Zero disables the limit.
	MaxPixelCount int64
	// Dimensions probes image sizes. Nil accepts any matching file without
	// probing it.
	Dimensions DimensionFunc
}

// Accepts reports whether path matches an include pattern and, when a
// dimension probe is set, has a non-empty size within MaxPixelCount.
func (f Filter) Accepts(path string) bool {
	if !glob.MatchAny(f.Include, path) {
		return false
	}
	if f.Dimensions == nil {
		return true
	}
	rect, err := f.Dimensions(path)
	if err != nil {
		logger.Debug("Skipping unreadable image", "path", path, "error", err)
		return false
	}
	count := int64(rect.Width) * int64(rect.Height)
	if count <= 0 {
		return false
	}
	if f.MaxPixelCount > 0 && count > f.MaxPixelCount {
		logger.Debug("Skipping oversized image", "path", path, "pixels", count)
		return false
	}
	return true
}

// Collect walks dirs in order and returns every regular file the filter
// accepts. Subtrees that cannot be read are skipped; a directory that does not
// exist is an error.
func Collect(ctx context.Context, dirs []string, filter Filter) (*slideshow.FileList, error) {
	list := &slideshow.FileList{}
	seen := make(map[string]bool)

	for _, dir := range dirs {
		info, err := os.Stat(dir)
		if err != nil {
			return nil, apperrors.New(apperrors.KindScan, "cannot open image directory", err)
		}
		if !info.IsDir() {
			return nil, apperrors.New(apperrors.KindScan, "not a directory", fmt.Errorf("%s", dir))
		}

		before := list.Len()
		err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if err != nil {
				if errors.Is(err, fs.ErrPermission) {
					logger.Warn("Skipping unreadable directory", "path", path)
					if d != nil && d.IsDir() {
						return fs.SkipDir
					}
					return nil
				}
				return err
			}
			if !d.Type().IsRegular() {
				return nil
			}
			abs, err := filepath.Abs(path)
			if err != nil {
				abs = path
			}
			if seen[abs] {
				return nil
			}
			if filter.Accepts(path) {
				seen[abs] = true
				list.Append(path)
			}
			return nil
		})
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			return nil, apperrors.New(apperrors.KindScan, "", err)
		}
		logger.Info("Scanned directory", "dir", dir, "files", list.Len()-before)
	}
	return list, nil
}
