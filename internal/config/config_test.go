package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/oukeidos/slideproj/internal/apperrors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_PICTURES_DIR", "")

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("Load() mismatch (-want +got):\n%s", diff)
	}
	if want := filepath.Join(home, "Pictures"); len(cfg.Dirs) != 1 || cfg.Dirs[0] != want {
		t.Fatalf("Dirs = %v, want [%s]", cfg.Dirs, want)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLoad_ParsesConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := writeConfig(t, `
dirs = ["  ~/photos  ", "/srv/pictures"]
include = ["*.JPG"]
sort_by = ["caption"]
locale = "sv"
loop = true
autoplay = false
step_delay = "2.5s"
transition = "300ms"
max_pixel_count = 2000
cache_exponent = 4
prefetch_radius = 5
resume = false
fullscreen = true
log_level = "debug"
log_file = "~/slideproj.log"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	want := Config{
		Dirs:               []string{filepath.Join(home, "photos"), "/srv/pictures"},
		Include:            []string{"*.JPG"},
		SortBy:             []string{"caption"},
		Locale:             "sv",
		Loop:               true,
		Autoplay:           false,
		StepDelay:          2500 * time.Millisecond,
		TransitionDuration: 300 * time.Millisecond,
		MaxPixelCount:      2000,
		CacheExponent:      4,
		PrefetchRadius:     5,
		Resume:             false,
		Fullscreen:         true,
		LogLevel:           "debug",
		LogFile:            filepath.Join(home, "slideproj.log"),
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := writeConfig(t, `
dirs = ["   "]
include = []
step_delay = ""
log_level = "  "
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	def := Default()
	if diff := cmp.Diff(def.Include, cfg.Include); diff != "" {
		t.Fatalf("Include mismatch (-want +got):\n%s", diff)
	}
	if cfg.StepDelay != def.StepDelay || cfg.LogLevel != def.LogLevel {
		t.Fatalf("defaults not kept: step delay %v, log level %q", cfg.StepDelay, cfg.LogLevel)
	}
	if len(cfg.Dirs) != 1 || cfg.Dirs[0] != PicturesDir() {
		t.Fatalf("Dirs = %v, want the pictures directory", cfg.Dirs)
	}
}

func TestLoad_Rejects(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{"bad toml", `loop = `, "parse config"},
		{"bad duration", `step_delay = "soon"`, "step_delay"},
		{"zero step delay", `step_delay = "0s"`, "step delay"},
		{"negative transition", `transition = "-1s"`, "transition"},
		{"radius too large", "cache_exponent = 2\nprefetch_radius = 2", "prefetch radius"},
		{"cache too large", `cache_exponent = 20`, "cache exponent"},
		{"negative pixels", `max_pixel_count = -1`, "max pixel count"},
		{"bad log level", `log_level = "chatty"`, "log level"},
		{"bad locale", `locale = "not a locale!"`, "locale"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.content))
			if err == nil {
				t.Fatalf("Load() error = nil, want error")
			}
			if kind, ok := apperrors.KindOf(err); !ok || kind != apperrors.KindConfig {
				t.Fatalf("Load() error kind = (%q, %v), want config", kind, ok)
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Fatalf("Load() error = %q, want it to mention %q", err, tc.wantMsg)
			}
		})
	}
}

func TestDirs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	t.Setenv("XDG_STATE_HOME", "")
	if got, want := StateDir(), filepath.Join(home, ".local", "state", "slideproj"); got != want {
		t.Fatalf("StateDir() = %q, want %q", got, want)
	}
	state := t.TempDir()
	t.Setenv("XDG_STATE_HOME", state)
	if got, want := StateDir(), filepath.Join(state, "slideproj"); got != want {
		t.Fatalf("StateDir() = %q, want %q", got, want)
	}

	t.Setenv("XDG_PICTURES_DIR", "~/Bilder")
	if got, want := PicturesDir(), filepath.Join(home, "Bilder"); got != want {
		t.Fatalf("PicturesDir() = %q, want %q", got, want)
	}
}

func TestDefaultPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	if got, want := DefaultPath(), filepath.Join(home, ".config", "slideproj", "config.toml"); got != want {
		t.Fatalf("DefaultPath() = %q, want %q", got, want)
	}
}
