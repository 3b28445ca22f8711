package files

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestRejectSymlinkPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink not permitted on Windows")
	}
	tmp := t.TempDir()
	real := filepath.Join(tmp, "real", "nested")
	if err := os.MkdirAll(real, 0o700); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	target := filepath.Join(tmp, "target.json")
	if err := os.WriteFile(target, []byte("{}"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.Symlink(target, filepath.Join(tmp, "file-link.json")); err != nil {
		t.Fatalf("Symlink: %v", err)
	}
	if err := os.Symlink(filepath.Join(tmp, "real"), filepath.Join(tmp, "dir-link")); err != nil {
		t.Fatalf("Symlink: %v", err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"regular file", target, false},
		{"new file in real dir", filepath.Join(real, "resume.json"), false},
		{"new file in missing dir", filepath.Join(tmp, "missing", "resume.json"), false},
		{"symlinked file", filepath.Join(tmp, "file-link.json"), true},
		{"symlinked parent", filepath.Join(tmp, "dir-link", "resume.json"), true},
		{"symlinked ancestor", filepath.Join(tmp, "dir-link", "nested", "resume.json"), true},
		{"empty", " ", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := RejectSymlinkPath(tc.path)
			if (err != nil) != tc.wantErr {
				t.Fatalf("RejectSymlinkPath(%q) = %v, want error %v", tc.path, err, tc.wantErr)
			}
		})
	}
}
