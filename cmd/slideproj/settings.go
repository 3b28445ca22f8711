package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/text/language"

	"github.com/oukeidos/slideproj/internal/apperrors"
	"github.com/oukeidos/slideproj/internal/cleanup"
	"github.com/oukeidos/slideproj/internal/collector"
	"github.com/oukeidos/slideproj/internal/config"
	"github.com/oukeidos/slideproj/internal/files"
	"github.com/oukeidos/slideproj/internal/glob"
	"github.com/oukeidos/slideproj/internal/imageloader"
	"github.com/oukeidos/slideproj/internal/logger"
	"github.com/oukeidos/slideproj/internal/slideshow"
)

type rootOptions struct {
	configPath string
	include    []string
	sortBy     []string
	locale     string
	maxPixels  int64
	logLevel   string
	logFile    string

	loop       bool
	autoplay   bool
	transition time.Duration
	stepDelay  time.Duration
	noResume   bool
	fullscreen bool
}

// addCommonFlags registers the flags shared by the viewer and list.
func addCommonFlags(fs *pflag.FlagSet, opts *rootOptions) {
	fs.StringVar(&opts.configPath, "config", "", "Path to config file (default ~/.config/slideproj/config.toml)")
	fs.StringArrayVar(&opts.include, "include", nil, "Wildcard a file path must match (repeatable, * matches any text)")
	fs.StringSliceVar(&opts.sortBy, "sort-by", nil, "Sort fields: in_group, timestamp, caption")
	fs.StringVar(&opts.locale, "locale", "", "Locale used to order captions and groups (e.g. sv, de)")
	fs.Int64Var(&opts.maxPixels, "max-pixels", 0, "Skip images with more pixels than this (0: no limit)")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.StringVar(&opts.logFile, "log-file", "", "Path to save machine-readable JSONL logs")
}

func addViewerFlags(fs *pflag.FlagSet, opts *rootOptions) {
	fs.BoolVar(&opts.loop, "loop", false, "Wrap around at the first and last slide")
	fs.BoolVar(&opts.autoplay, "autoplay", true, "Advance slides automatically")
	fs.DurationVar(&opts.transition, "transition", 0, "Cross-fade duration (e.g. 500ms)")
	fs.DurationVar(&opts.stepDelay, "step-delay", 0, "Time a slide stays on screen during auto-play")
	fs.BoolVar(&opts.noResume, "no-resume", false, "Start at the first slide instead of the last one shown")
	fs.BoolVar(&opts.fullscreen, "fullscreen", false, "Start in full screen")
}

// loadSettings reads the config file and lets flags given on the command line
// override it. Non-empty dirs replace the configured directories.
func loadSettings(flags *pflag.FlagSet, opts *rootOptions, dirs []string) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, err
	}

	if len(dirs) > 0 {
		cfg.Dirs = nil
		for _, d := range dirs {
			abs, err := filepath.Abs(d)
			if err != nil {
				return config.Config{}, apperrors.Config(fmt.Errorf("resolve %s: %w", d, err))
			}
			cfg.Dirs = append(cfg.Dirs, abs)
		}
	}
	if flags.Changed("include") {
		cfg.Include = opts.include
	}
	if flags.Changed("sort-by") {
		cfg.SortBy = opts.sortBy
	}
	if flags.Changed("locale") {
		cfg.Locale = opts.locale
	}
	if flags.Changed("max-pixels") {
		cfg.MaxPixelCount = opts.maxPixels
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if flags.Changed("log-file") {
		cfg.LogFile = opts.logFile
	}
	if flags.Changed("loop") {
		cfg.Loop = opts.loop
	}
	if flags.Changed("autoplay") {
		cfg.Autoplay = opts.autoplay
	}
	if flags.Changed("transition") {
		cfg.TransitionDuration = opts.transition
	}
	if flags.Changed("step-delay") {
		cfg.StepDelay = opts.stepDelay
	}
	if flags.Changed("no-resume") {
		cfg.Resume = !opts.noResume
	}
	if flags.Changed("fullscreen") {
		cfg.Fullscreen = opts.fullscreen
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	if _, err := collector.ParseFields(cfg.SortBy); err != nil {
		return config.Config{}, apperrors.Config(err)
	}
	return cfg, nil
}

// initLogging points the global logger at the configured level and log file.
func initLogging(cfg config.Config) error {
	level, ok := logger.ParseLevel(cfg.LogLevel)
	if !ok {
		return apperrors.New(apperrors.KindConfig, fmt.Sprintf("unknown log level %q", cfg.LogLevel), nil)
	}
	var logFileW io.Writer
	if cfg.LogFile != "" {
		if err := files.RejectSymlinkPath(cfg.LogFile); err != nil {
			return err
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		cleanup.Register(f.Close)
		logFileW = f
	}
	logger.Init(level, logFileW)
	return nil
}

// collectSlides scans the configured directories and sorts the result. The
// returned repository already holds the metadata of every listed file.
func collectSlides(ctx context.Context, cfg config.Config) (*slideshow.FileList, *imageloader.MetadataRepository, error) {
	filter := collector.Filter{
		Include:       glob.CompileAll(cfg.Include),
		MaxPixelCount: cfg.MaxPixelCount,
		Dimensions:    imageloader.Dimensions,
	}
	list, err := collector.Collect(ctx, cfg.Dirs, filter)
	if err != nil {
		return nil, nil, err
	}

	fields, err := collector.ParseFields(cfg.SortBy)
	if err != nil {
		return nil, nil, apperrors.Config(err)
	}
	tag, err := language.Parse(cfg.Locale)
	if err != nil {
		return nil, nil, apperrors.Config(err)
	}
	repo := imageloader.NewMetadataRepository()
	collector.Sort(list, fields, repo, collector.LocaleCompare(tag))
	logger.Info("Slides collected", "slides", list.Len(), "sort", fields)
	return list, repo, nil
}

func signalContext() (context.Context, func()) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			logger.Warn("Cancellation requested")
			cancel()
		case <-ctx.Done():
		}
	}()
	stop := func() {
		signal.Stop(sigCh)
		cancel()
	}
	return ctx, stop
}
