package imageloader

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rwcarlsen/goexif/exif"

	"github.com/oukeidos/slideproj/internal/slideshow"
)

// LoadMetadata reads the caption, group and timestamp of the image at path.
// The caption is the EXIF image description, or the file name without its
// extension. The group is the parent directory. The timestamp is the EXIF
// capture time, or the modification time of the file.
func LoadMetadata(path string) slideshow.Metadata {
	md := slideshow.Metadata{
		Caption: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Group:   filepath.Dir(path),
	}

	var x *exif.Exif
	if f, err := os.Open(path); err == nil {
		x, _ = exif.Decode(f)
		f.Close()
	}
	if x != nil {
		if tag, err := x.Get(exif.ImageDescription); err == nil {
			if desc, err := tag.StringVal(); err == nil && strings.TrimSpace(desc) != "" {
				md.Caption = strings.TrimSpace(desc)
			}
		}
		if ts, err := x.DateTime(); err == nil {
			md.Timestamp = ts
		}
	}
	if md.Timestamp.IsZero() {
		if info, err := os.Stat(path); err == nil {
			md.Timestamp = info.ModTime()
		}
	}
	return md
}

// MetadataRepository memoizes LoadMetadata per file id. It is safe for
// concurrent use.
type MetadataRepository struct {
	mu    sync.Mutex
	cache map[slideshow.FileID]slideshow.Metadata
	load  func(path string) slideshow.Metadata
}

// NewMetadataRepository returns an empty repository.
func NewMetadataRepository() *MetadataRepository {
	return &MetadataRepository{
		cache: make(map[slideshow.FileID]slideshow.Metadata),
		load:  LoadMetadata,
	}
}

// Metadata returns the metadata of f, loading it on first use.
func (r *MetadataRepository) Metadata(f slideshow.SourceFile) slideshow.Metadata {
	r.mu.Lock()
	md, ok := r.cache[f.ID()]
	r.mu.Unlock()
	if ok {
		return md
	}

	md = r.load(f.Path())
	r.mu.Lock()
	r.cache[f.ID()] = md
	r.mu.Unlock()
	return md
}

// Len returns the number of memoized entries.
func (r *MetadataRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.cache)
}
