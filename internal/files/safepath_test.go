package files

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestSafePath(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		want     string
	}{
		{"free", nil, "slides.txt"},
		{"taken", []string{"slides.txt"}, "slides_1.txt"},
		{"first two taken", []string{"slides.txt", "slides_1.txt"}, "slides_2.txt"},
		{"no extension", []string{"slides"}, "slides_1"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, name := range tc.existing {
				if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600); err != nil {
					t.Fatalf("WriteFile: %v", err)
				}
			}
			requested := filepath.Join(dir, strings.TrimSuffix(tc.want, "_1"+filepath.Ext(tc.want)))
			if len(tc.existing) > 0 {
				requested = filepath.Join(dir, tc.existing[0])
			}

			got, changed, err := SafePath(requested)
			if err != nil {
				t.Fatalf("SafePath() error = %v", err)
			}
			if want := filepath.Join(dir, tc.want); got != want {
				t.Fatalf("SafePath() = %q, want %q", got, want)
			}
			if changed != (len(tc.existing) > 0) {
				t.Fatalf("SafePath() changed = %v, want %v", changed, len(tc.existing) > 0)
			}
		})
	}
}

func TestSafePath_FallsBackToUUID(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "slides.txt")
	if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	for i := 1; i <= maxNumberedCandidates; i++ {
		name := filepath.Join(dir, fmt.Sprintf("slides_%d.txt", i))
		if err := os.WriteFile(name, []byte("x"), 0o600); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}

	got, changed, err := SafePath(path)
	if err != nil {
		t.Fatalf("SafePath() error = %v", err)
	}
	if !changed || !strings.HasPrefix(filepath.Base(got), "slides_") || filepath.Ext(got) != ".txt" {
		t.Fatalf("SafePath() = %q, %v, want a new slides_<uuid>.txt path", got, changed)
	}
	if _, err := os.Stat(got); !os.IsNotExist(err) {
		t.Fatalf("SafePath() returned an existing path %q", got)
	}
}

func TestSafePath_DanglingSymlinkIsTaken(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink not permitted on Windows")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "slides.txt")
	if err := os.Symlink(filepath.Join(dir, "missing"), path); err != nil {
		t.Fatalf("Symlink: %v", err)
	}
	got, _, err := SafePath(path)
	if err != nil {
		t.Fatalf("SafePath() error = %v", err)
	}
	if want := filepath.Join(dir, "slides_1.txt"); got != want {
		t.Fatalf("SafePath() = %q, want %q", got, want)
	}
}

func TestSafePath_Empty(t *testing.T) {
	if _, _, err := SafePath("  "); err == nil {
		t.Fatalf("SafePath(\"  \") error = nil, want error")
	}
}
