package main

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"

	"github.com/oukeidos/slideproj/internal/apperrors"
	"github.com/oukeidos/slideproj/internal/cleanup"
	"github.com/oukeidos/slideproj/internal/config"
	"github.com/oukeidos/slideproj/internal/imageloader"
	"github.com/oukeidos/slideproj/internal/logger"
	"github.com/oukeidos/slideproj/internal/presenter"
	"github.com/oukeidos/slideproj/internal/resume"
	"github.com/oukeidos/slideproj/internal/slidecache"
	"github.com/oukeidos/slideproj/internal/slideshow"
	"github.com/oukeidos/slideproj/internal/taskqueue"
)

const (
	appID             = "io.github.oukeidos.slideproj"
	frameInterval     = 16 * time.Millisecond
	queueCloseTimeout = 2 * time.Second
)

func runViewer(cmd *cobra.Command, args []string, opts *rootOptions) error {
	cfg, err := loadSettings(cmd.Flags(), opts, args)
	if err != nil {
		return err
	}
	if err := initLogging(cfg); err != nil {
		return err
	}

	ctx, stop := signalContext()
	list, repo, err := collectSlides(ctx, cfg)
	stop()
	if err != nil {
		return err
	}
	if list.Len() == 0 {
		return apperrors.New(apperrors.KindScan, "no images found", fmt.Errorf("searched %s", strings.Join(cfg.Dirs, ", ")))
	}

	var store *resume.Store
	start := 0
	if cfg.Resume {
		store, start = openResume(cfg.Dirs, list)
		cleanup.Register(store.Save)
	}

	v, err := newViewer(app.NewWithID(appID), cfg, list, repo, store, start)
	if err != nil {
		return err
	}
	v.run()
	return nil
}

// openResume returns the resume store and the index to start at. A damaged
// state file is logged and replaced on the next save.
func openResume(dirs []string, list *slideshow.FileList) (*resume.Store, int) {
	store, err := resume.Open(resume.DefaultPath())
	if err != nil {
		logger.Warn("Ignoring saved position", "state", resume.DefaultPath(), "error", err)
	}
	pos, ok := store.Lookup(dirs)
	if !ok {
		return store, 0
	}
	start := resume.StartIndex(list, pos)
	logger.Info("Resuming slideshow", "index", start, "path", pos.Path)
	return store, start
}

type viewer struct {
	cfg      config.Config
	window   fyne.Window
	view     *slideView
	queue    *taskqueue.Queue
	ctl      *presenter.Controller
	playback *presenter.Playback
	show     *slideshow.Slideshow
	started  bool

	stop            chan struct{}
	stopOnce        sync.Once
	panicNoticeOnce sync.Once
}

func newViewer(a fyne.App, cfg config.Config, list *slideshow.FileList, repo *imageloader.MetadataRepository, store *resume.Store, start int) (*viewer, error) {
	v := &viewer{
		cfg:      cfg,
		window:   a.NewWindow(appName),
		queue:    taskqueue.New(),
		playback: presenter.NewPlayback(cfg.StepDelay),
		show:     slideshow.New(list, start),
		stop:     make(chan struct{}),
	}
	cleanup.Register(v.closeQueue)

	v.view = newSlideView(
		func() { v.ctl.StepBackward() },
		func() { v.ctl.StepForward() },
	)
	if !cfg.Autoplay {
		v.playback.TogglePause()
	}

	opts := presenter.Options{
		TransitionDuration: cfg.TransitionDuration,
		Loop:               cfg.Loop,
		CacheExponent:      slidecache.PowerOfTwo(cfg.CacheExponent),
		PrefetchRadius:     cfg.PrefetchRadius,
	}
	if store != nil {
		dirs := cfg.Dirs
		opts.OnPresent = func(f slideshow.SourceFile) {
			store.Record(dirs, f, v.ctl.CurrentIndex())
		}
	}

	ctl, err := presenter.New(presenter.Deps{
		Queue:    v.queue,
		Display:  v.view,
		Title:    &windowTitle{window: v.window, limit: titleLimit},
		Metadata: repo,
		Decoder:  imageloader.NewLoader(),
		Events:   v.playback,
	}, opts)
	if err != nil {
		return nil, err
	}
	v.ctl = ctl
	return v, nil
}

func (v *viewer) run() {
	w := v.window
	w.SetMaster()
	w.SetPadded(false)
	w.SetContent(v.view)
	w.Resize(fyne.NewSize(1024, 768))
	w.CenterOnScreen()
	if v.cfg.Fullscreen {
		w.SetFullScreen(true)
	}

	w.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		v.handleKey(ev.Name)
	})
	w.SetCloseIntercept(func() {
		v.stopFrames()
		w.SetCloseIntercept(nil)
		w.Close()
	})

	v.safeGo("viewer.frames", v.runFrames)
	w.ShowAndRun()
	v.stopFrames()
}

func (v *viewer) handleKey(name fyne.KeyName) {
	switch actionForKey(name) {
	case actionForward:
		v.ctl.StepForward()
	case actionBackward:
		v.ctl.StepBackward()
	case actionBegin:
		v.ctl.GoToBegin()
	case actionEnd:
		v.ctl.GoToEnd()
	case actionTogglePlayback:
		v.playback.TogglePause()
		logger.Info("Auto-play toggled", "paused", v.playback.Paused())
	case actionToggleLoop:
		v.ctl.SetLoop(!v.ctl.Loop())
		logger.Info("Looping toggled", "loop", v.ctl.Loop())
	case actionFullScreen:
		v.window.SetFullScreen(!v.window.FullScreen())
	case actionQuit:
		v.window.Close()
	}
}

// runFrames wakes the UI goroutine on every frame tick and whenever a decoded
// slide is ready.
func (v *viewer) runFrames() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	for {
		select {
		case <-v.stop:
			return
		case <-v.queue.Ready():
		case <-ticker.C:
		}
		v.safeDo("viewer.frame", v.frame)
	}
}

// frame runs on the UI goroutine. The slideshow starts once the window has a
// size, so the first slides are decoded for the real window.
func (v *viewer) frame() {
	if rect := v.view.pixelSize(); !rect.Empty() {
		v.ctl.SetWindowSize(rect)
		if !v.started {
			v.started = true
			v.ctl.StartSlideshow(v.show)
		}
	}
	v.queue.Drain()
	v.ctl.UpdateClock(time.Now())
}

func (v *viewer) stopFrames() {
	v.stopOnce.Do(func() { close(v.stop) })
}

func (v *viewer) closeQueue() error {
	ctx, cancel := context.WithTimeout(context.Background(), queueCloseTimeout)
	defer cancel()
	return v.queue.Close(ctx)
}
