// Package resume remembers the last slide shown for each set of input
// directories so the next run can start where the previous one stopped.
package resume

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/oukeidos/slideproj/internal/apperrors"
	"github.com/oukeidos/slideproj/internal/config"
	"github.com/oukeidos/slideproj/internal/files"
	"github.com/oukeidos/slideproj/internal/slideshow"
)

const CurrentStateVersion = 1

// Position is the last slide shown for one set of directories.
type Position struct {
	Path    string    `json:"path"`
	Index   int       `json:"index"`
	Updated time.Time `json:"updated"`
}

type stateFile struct {
	StateVersion int                 `json:"state_version"`
	Positions    map[string]Position `json:"positions"`
}

// Validate checks that a loaded position can be used.
func (p Position) Validate() error {
	if p.Path == "" {
		return fmt.Errorf("path is empty")
	}
	if p.Index < 0 {
		return fmt.Errorf("invalid index: %d", p.Index)
	}
	return nil
}

// Store holds positions in memory and persists them as JSON. It is safe for
// concurrent use.
type Store struct {
	path string

	mu        sync.Mutex
	positions map[string]Position
	dirty     bool
}

// DefaultPath returns the state file location under config.StateDir.
func DefaultPath() string {
	return filepath.Join(config.StateDir(), "resume.json")
}

// Open loads the store at path. A missing file yields an empty store. A
// corrupt or unsupported file also yields an empty store, together with a
// state error describing the problem.
func Open(path string) (*Store, error) {
	s := &Store{path: path, positions: make(map[string]Position)}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return s, apperrors.New(apperrors.KindState, "cannot read resume state", err)
	}

	var state stateFile
	if err := json.Unmarshal(data, &state); err != nil {
		return s, apperrors.New(apperrors.KindState, "cannot parse resume state", err)
	}
	if state.StateVersion != CurrentStateVersion {
		return s, apperrors.New(apperrors.KindState, "", fmt.Errorf("unsupported state_version: %d", state.StateVersion))
	}
	for key, pos := range state.Positions {
		if pos.Validate() == nil {
			s.positions[key] = pos
		}
	}
	return s, nil
}

// Key identifies a set of directories independently of their order.
func Key(dirs []string) string {
	cleaned := make([]string, 0, len(dirs))
	for _, d := range dirs {
		if abs, err := filepath.Abs(d); err == nil {
			d = abs
		}
		cleaned = append(cleaned, filepath.Clean(d))
	}
	sort.Strings(cleaned)
	sum := sha256.Sum256([]byte(strings.Join(cleaned, "\x00")))
	return "sha256:" + hex.EncodeToString(sum[:])
}

// Lookup returns the position recorded for dirs.
func (s *Store) Lookup(dirs []string) (Position, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pos, ok := s.positions[Key(dirs)]
	return pos, ok
}

// Record remembers that f, at index, is being shown for dirs.
func (s *Store) Record(dirs []string, f slideshow.SourceFile, index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := Key(dirs)
	if cur, ok := s.positions[key]; ok && cur.Path == f.Path() && cur.Index == index {
		return
	}
	s.positions[key] = Position{Path: f.Path(), Index: index, Updated: time.Now().UTC()}
	s.dirty = true
}

// Save writes the store if anything changed since it was opened or saved.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return nil
	}

	data, err := json.MarshalIndent(stateFile{
		StateVersion: CurrentStateVersion,
		Positions:    s.positions,
	}, "", "  ")
	if err != nil {
		return apperrors.New(apperrors.KindState, "cannot encode resume state", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return apperrors.New(apperrors.KindState, "cannot create state directory", err)
	}
	if err := files.AtomicWrite(s.path, data, 0o600); err != nil {
		return apperrors.New(apperrors.KindState, "cannot write resume state", err)
	}
	s.dirty = false
	return nil
}

// StartIndex returns where a slideshow over list should begin: the recorded
// file if it is still in the list, otherwise the recorded index clamped to
// the list.
func StartIndex(list *slideshow.FileList, pos Position) int {
	if i := list.IndexOf(pos.Path); i != slideshow.NoSlide {
		return i
	}
	if list.Len() == 0 {
		return 0
	}
	return min(max(pos.Index, 0), list.Len()-1)
}
