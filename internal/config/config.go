package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"github.com/oukeidos/slideproj/internal/apperrors"
	"github.com/oukeidos/slideproj/internal/collector"
	"github.com/oukeidos/slideproj/internal/logger"
)

// Config holds the viewer settings.
type Config struct {
	Dirs               []string
	Include            []string
	SortBy             []string
	Locale             string
	Loop               bool
	Autoplay           bool
	StepDelay          time.Duration
	TransitionDuration time.Duration
	MaxPixelCount      int64
	CacheExponent      uint
	PrefetchRadius     int
	Resume             bool
	Fullscreen         bool
	LogLevel           string
	LogFile            string
}

const (
	appName           = "slideproj"
	defaultConfigPath = "~/.config/slideproj/config.toml"
	maxCacheExponent  = 16
)

// Default returns the settings used when no config file exists.
func Default() Config {
	return Config{
		Dirs:               []string{PicturesDir()},
		Include:            append([]string(nil), collector.DefaultInclude...),
		SortBy:             []string{"in_group", "timestamp"},
		Locale:             "und",
		Autoplay:           true,
		StepDelay:          6 * time.Second,
		TransitionDuration: time.Second,
		MaxPixelCount:      collector.DefaultMaxPixelCount,
		CacheExponent:      3,
		PrefetchRadius:     3,
		Resume:             true,
		LogLevel:           "info",
	}
}

type rawConfig struct {
	Dirs               []string `toml:"dirs"`
	Include            []string `toml:"include"`
	SortBy             []string `toml:"sort_by"`
	Locale             string   `toml:"locale"`
	Loop               *bool    `toml:"loop"`
	Autoplay           *bool    `toml:"autoplay"`
	StepDelay          string   `toml:"step_delay"`
	TransitionDuration string   `toml:"transition"`
	MaxPixelCount      *int64   `toml:"max_pixel_count"`
	CacheExponent      *uint    `toml:"cache_exponent"`
	PrefetchRadius     *int     `toml:"prefetch_radius"`
	Resume             *bool    `toml:"resume"`
	Fullscreen         *bool    `toml:"fullscreen"`
	LogLevel           string   `toml:"log_level"`
	LogFile            string   `toml:"log_file"`
}

// Load reads the config file at path, or at the default location when path
// is empty. A missing file yields Default. Values left out of the file keep
// their defaults.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, apperrors.Config(err)
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Debug("No config file, using defaults", "config", resolved)
			return cfg, nil
		}
		return Config{}, apperrors.Config(fmt.Errorf("open config: %w", err))
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, apperrors.Config(fmt.Errorf("read config: %w", err))
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, apperrors.Config(fmt.Errorf("parse config: %w", err))
	}
	if err := raw.apply(&cfg); err != nil {
		return Config{}, apperrors.Config(err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	logger.Debug("Loaded config", "config", resolved)
	return cfg, nil
}

func (raw rawConfig) apply(cfg *Config) error {
	if dirs := trimAll(raw.Dirs); len(dirs) > 0 {
		cfg.Dirs = dirs
	}
	if include := trimAll(raw.Include); len(include) > 0 {
		cfg.Include = include
	}
	if sortBy := trimAll(raw.SortBy); len(sortBy) > 0 {
		cfg.SortBy = sortBy
	}
	if v := strings.TrimSpace(raw.Locale); v != "" {
		cfg.Locale = v
	}
	if raw.Loop != nil {
		cfg.Loop = *raw.Loop
	}
	if raw.Autoplay != nil {
		cfg.Autoplay = *raw.Autoplay
	}
	if raw.Resume != nil {
		cfg.Resume = *raw.Resume
	}
	if raw.Fullscreen != nil {
		cfg.Fullscreen = *raw.Fullscreen
	}
	if raw.MaxPixelCount != nil {
		cfg.MaxPixelCount = *raw.MaxPixelCount
	}
	if raw.CacheExponent != nil {
		cfg.CacheExponent = *raw.CacheExponent
	}
	if raw.PrefetchRadius != nil {
		cfg.PrefetchRadius = *raw.PrefetchRadius
	}
	if v := strings.TrimSpace(raw.StepDelay); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("step_delay: %w", err)
		}
		cfg.StepDelay = d
	}
	if v := strings.TrimSpace(raw.TransitionDuration); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("transition: %w", err)
		}
		cfg.TransitionDuration = d
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	for i, dir := range cfg.Dirs {
		cfg.Dirs[i] = mustExpand(dir)
	}
	return nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case len(c.Dirs) == 0:
		return apperrors.New(apperrors.KindConfig, "no image directories configured", nil)
	case len(c.Include) == 0:
		return apperrors.New(apperrors.KindConfig, "no include patterns configured", nil)
	case c.StepDelay <= 0:
		return apperrors.New(apperrors.KindConfig, fmt.Sprintf("step delay must be positive, got %v", c.StepDelay), nil)
	case c.TransitionDuration < 0:
		return apperrors.New(apperrors.KindConfig, fmt.Sprintf("transition must not be negative, got %v", c.TransitionDuration), nil)
	case c.MaxPixelCount < 0:
		return apperrors.New(apperrors.KindConfig, fmt.Sprintf("max pixel count must not be negative, got %d", c.MaxPixelCount), nil)
	case c.CacheExponent > maxCacheExponent:
		return apperrors.New(apperrors.KindConfig, fmt.Sprintf("cache exponent must be at most %d, got %d", maxCacheExponent, c.CacheExponent), nil)
	case c.PrefetchRadius < 0 || 1<<c.CacheExponent <= 2*c.PrefetchRadius:
		return apperrors.New(apperrors.KindConfig, fmt.Sprintf("prefetch radius %d does not fit a cache of %d slides", c.PrefetchRadius, 1<<c.CacheExponent), nil)
	}
	if _, err := language.Parse(c.Locale); err != nil {
		return apperrors.New(apperrors.KindConfig, fmt.Sprintf("unknown locale %q", c.Locale), err)
	}
	if _, ok := logger.ParseLevel(c.LogLevel); !ok {
		return apperrors.New(apperrors.KindConfig, fmt.Sprintf("unknown log level %q", c.LogLevel), nil)
	}
	return nil
}

// DefaultPath returns where Load looks when no path is given.
func DefaultPath() string {
	return mustExpand(defaultConfigPath)
}

func trimAll(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
