// Package slideshow defines the ordered list of slides and the cursor moving
// over it.
package slideshow

import (
	"sort"
	"sync/atomic"
	"time"
)

// NoSlide is the index of an entry that does not exist.
const NoSlide = -1

// FileID identifies a source file for the lifetime of the process.
type FileID uint64

var lastFileID atomic.Uint64

func nextFileID() FileID {
	return FileID(lastFileID.Add(1))
}

// SourceFile is an immutable (id, path) pair.
type SourceFile struct {
	id   FileID
	path string
}

// NewSourceFile assigns a fresh id to path.
func NewSourceFile(path string) SourceFile {
	return SourceFile{id: nextFileID(), path: path}
}

func (f SourceFile) ID() FileID   { return f.id }
func (f SourceFile) Path() string { return f.path }

// Metadata describes a source file for sorting and captions.
type Metadata struct {
	Caption   string
	Group     string
	Timestamp time.Time
}

// FileList is an ordered list of source files.
type FileList struct {
	entries []SourceFile
}

// Append adds path with a new id.
func (l *FileList) Append(path string) *FileList {
	l.entries = append(l.entries, NewSourceFile(path))
	return l
}

// Len returns the number of files.
func (l *FileList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.entries)
}

// At returns the file at index. The index must be valid.
func (l *FileList) At(index int) SourceFile {
	return l.entries[index]
}

// Files returns a copy of the entries.
func (l *FileList) Files() []SourceFile {
	return append([]SourceFile(nil), l.entries...)
}

// Sort orders the list with less, keeping equal elements in their original
// order.
func (l *FileList) Sort(less func(a, b SourceFile) bool) *FileList {
	sort.SliceStable(l.entries, func(i, j int) bool {
		return less(l.entries[i], l.entries[j])
	})
	return l
}

// IndexOf returns the index of the first file with path, or NoSlide.
func (l *FileList) IndexOf(path string) int {
	if l == nil {
		return NoSlide
	}
	for i, f := range l.entries {
		if f.path == path {
			return i
		}
	}
	return NoSlide
}

// Entry is a slide looked up relative to the cursor.
type Entry struct {
	Index  int
	Source SourceFile
}

// Valid reports whether the entry refers to a slide.
func (e Entry) Valid() bool {
	return e.Index != NoSlide
}

// Slideshow is a cursor over a FileList.
type Slideshow struct {
	files   *FileList
	current int
}

// New returns a slideshow over files positioned at startAt, clamped to the
// list.
func New(files *FileList, startAt int) *Slideshow {
	s := &Slideshow{files: files}
	s.SetCurrentIndex(startAt)
	return s
}

// Len returns the number of slides.
func (s *Slideshow) Len() int {
	return s.files.Len()
}

// Empty reports whether there are no slides.
func (s *Slideshow) Empty() bool {
	return s.Len() == 0
}

// CurrentIndex returns the cursor position, NoSlide for an empty slideshow.
func (s *Slideshow) CurrentIndex() int {
	return s.current
}

// SetCurrentIndex moves the cursor, clamping to the valid range.
func (s *Slideshow) SetCurrentIndex(index int) {
	last := s.Len() - 1
	switch {
	case last < 0:
		s.current = NoSlide
	case index < 0:
		s.current = 0
	case index > last:
		s.current = last
	default:
		s.current = index
	}
}

// Step moves the cursor by delta, clamped, and returns the index it had
// before.
func (s *Slideshow) Step(delta int) int {
	before := s.current
	s.SetCurrentIndex(s.current + delta)
	return before
}

// GoToBegin moves to the first slide.
func (s *Slideshow) GoToBegin() {
	s.SetCurrentIndex(0)
}

// GoToEnd moves to the last slide.
func (s *Slideshow) GoToEnd() {
	s.SetCurrentIndex(s.Len() - 1)
}

// EntryAt returns the slide at index, or an invalid entry.
func (s *Slideshow) EntryAt(index int) Entry {
	if index < 0 || index >= s.Len() {
		return Entry{Index: NoSlide}
	}
	return Entry{Index: index, Source: s.files.At(index)}
}

// Entry returns the slide offset positions from the cursor. Offsets past
// either end yield an invalid entry; they do not wrap.
func (s *Slideshow) Entry(offset int) Entry {
	if s.current == NoSlide {
		return Entry{Index: NoSlide}
	}
	return s.EntryAt(s.current + offset)
}
