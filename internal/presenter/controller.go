// Package presenter drives what is on screen: it moves through a slideshow,
// decodes slides in the background, keeps the neighbours of the current slide
// cached and animates the transition between slides.
//
// A Controller is not safe for concurrent use. Every method, and every
// completion it submits to its task queue, must run on the goroutine that
// owns the display.
package presenter

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/oukeidos/slideproj/internal/logger"
	"github.com/oukeidos/slideproj/internal/pixels"
	"github.com/oukeidos/slideproj/internal/slidecache"
	"github.com/oukeidos/slideproj/internal/slideshow"
	"github.com/oukeidos/slideproj/internal/taskqueue"
)

// ImageDisplay receives decoded slides.
type ImageDisplay interface {
	ShowImage(img image.Image)
	// SetTransitionParam reports cross-fade progress in [0, 1]; 1 means the
	// latest image is fully visible.
	SetTransitionParam(t float32)
}

// TitleDisplay receives the caption of the slide on screen.
type TitleDisplay interface {
	SetTitle(title string)
}

// MetadataProvider describes source files.
type MetadataProvider interface {
	Metadata(f slideshow.SourceFile) slideshow.Metadata
}

// Decoder loads a file scaled to fit a rectangle. It is called from the task
// queue worker.
type Decoder interface {
	Decode(path string, rect pixels.Rect) (image.Image, error)
}

// TaskQueue runs jobs in the background. Completions must be delivered on the
// controller's goroutine.
type TaskQueue interface {
	Submit(fn taskqueue.Func) error
	Clear()
}

// Deps are the collaborators of a Controller. Title and Events are optional.
type Deps struct {
	Queue    TaskQueue
	Display  ImageDisplay
	Title    TitleDisplay
	Metadata MetadataProvider
	Decoder  Decoder
	Events   EventHandler
}

// Options tune a Controller.
type Options struct {
	TransitionDuration time.Duration
	Loop               bool
	CacheExponent      slidecache.PowerOfTwo
	PrefetchRadius     int
	// OnPresent, if set, is called with every slide put on screen.
	OnPresent func(f slideshow.SourceFile)
	// Now replaces time.Now.
	Now func() time.Time
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		TransitionDuration: time.Second,
		CacheExponent:      3,
		PrefetchRadius:     3,
	}
}

type loadedImage struct {
	index  int
	source slideshow.SourceFile
	image  image.Image
	rect   pixels.Rect
}

// Controller is the presentation state machine.
type Controller struct {
	queue    TaskQueue
	display  ImageDisplay
	title    TitleDisplay
	metadata MetadataProvider
	decoder  Decoder
	events   EventHandler
	opts     Options
	now      func() time.Time

	show    *slideshow.Slideshow
	rect    pixels.Rect
	cache   *slidecache.Ring[loadedImage]
	pending *slidecache.Pending[slideshow.FileID]
	ticket  uint64

	transitionStart time.Time
	transitioning   bool

	runID string
	log   *slog.Logger
}

// New validates deps and opts and returns an idle controller.
func New(deps Deps, opts Options) (*Controller, error) {
	switch {
	case deps.Queue == nil:
		return nil, errors.New("presenter: task queue is required")
	case deps.Display == nil:
		return nil, errors.New("presenter: image display is required")
	case deps.Metadata == nil:
		return nil, errors.New("presenter: metadata provider is required")
	case deps.Decoder == nil:
		return nil, errors.New("presenter: decoder is required")
	}
	if opts.TransitionDuration < 0 {
		return nil, fmt.Errorf("presenter: negative transition duration %v", opts.TransitionDuration)
	}
	if opts.CacheExponent > slidecache.MaxExponent {
		return nil, fmt.Errorf("presenter: cache exponent %d exceeds %d", opts.CacheExponent, slidecache.MaxExponent)
	}
	if err := slidecache.CheckRadius(opts.CacheExponent.Value(), opts.PrefetchRadius); err != nil {
		return nil, fmt.Errorf("presenter: %w", err)
	}

	c := &Controller{
		queue:    deps.Queue,
		display:  deps.Display,
		title:    deps.Title,
		metadata: deps.Metadata,
		decoder:  deps.Decoder,
		events:   deps.Events,
		opts:     opts,
		now:      opts.Now,
		cache:    slidecache.New[loadedImage](opts.CacheExponent),
		pending:  slidecache.NewPending[slideshow.FileID](),
		log:      logger.With(),
	}
	if c.events == nil {
		c.events = nopEventHandler{}
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c, nil
}

// StartSlideshow replaces the active slideshow. Queued fetches, the cache and
// the pending table are discarded before the current slide is presented.
func (c *Controller) StartSlideshow(show *slideshow.Slideshow) {
	c.runID = uuid.NewString()
	c.log = logger.With("run", c.runID)
	if show != nil {
		c.log.Info("Slideshow loaded", "slides", show.Len(), "index", show.CurrentIndex())
	}
	c.restart(show)
}

func (c *Controller) restart(show *slideshow.Slideshow) {
	c.queue.Clear()
	c.cache.Clear()
	c.pending.Clear()
	c.show = show
	if show == nil {
		return
	}

	c.transitioning = false
	c.display.SetTransitionParam(1)
	c.events.HandleStep(c, StepEvent{Direction: DirectionNone})

	c.PresentImage(c.show.Entry(0))
	c.prefetchAround(DirectionForward)
	c.prefetchAround(DirectionBackward)
}

// SetWindowSize changes the rectangle slides are decoded for. Every cached
// slide was decoded for the previous rectangle, so an active slideshow is
// restarted.
func (c *Controller) SetWindowSize(rect pixels.Rect) {
	if rect == c.rect {
		return
	}
	c.rect = rect
	if c.show != nil {
		c.log.Debug("Window resized", "rect", rect)
		c.restart(c.show)
	}
}

// StepForward moves to the next slide, wrapping to the first one when
// looping at the end. Without looping, a step at the end does nothing.
func (c *Controller) StepForward() {
	c.step(DirectionForward)
}

// StepBackward moves to the previous slide, wrapping to the last one when
// looping at the beginning.
func (c *Controller) StepBackward() {
	c.step(DirectionBackward)
}

func (c *Controller) step(dir StepDirection) {
	if c.show == nil {
		return
	}
	delta := 1
	if dir == DirectionBackward {
		delta = -1
	}
	if before := c.show.Step(delta); c.show.CurrentIndex() == before {
		if !c.opts.Loop {
			return
		}
		if dir == DirectionForward {
			c.show.GoToBegin()
		} else {
			c.show.GoToEnd()
		}
	}
	c.events.HandleStep(c, StepEvent{Direction: dir})

	c.PresentImage(c.show.Entry(0))
	c.prefetchAround(dir)
}

// GoToBegin jumps to the first slide.
func (c *Controller) GoToBegin() {
	if c.show == nil {
		return
	}
	c.events.HandleStep(c, StepEvent{Direction: DirectionBackward})

	c.show.GoToBegin()
	c.PresentImage(c.show.Entry(0))
	c.prefetchAround(DirectionForward)
}

// GoToEnd jumps to the last slide.
func (c *Controller) GoToEnd() {
	if c.show == nil {
		return
	}
	c.events.HandleStep(c, StepEvent{Direction: DirectionForward})

	c.show.GoToEnd()
	c.PresentImage(c.show.Entry(0))
	c.prefetchAround(DirectionBackward)
}

func (c *Controller) prefetchAround(dir StepDirection) {
	sign := 1
	if dir == DirectionBackward {
		sign = -1
	}
	for k := 1; k <= c.opts.PrefetchRadius; k++ {
		c.PrefetchImage(sign * k)
	}
}

func (c *Controller) cached(entry slideshow.Entry) (loadedImage, bool) {
	img, ok := c.cache.Get(entry.Index)
	if !ok || img.source.ID() != entry.Source.ID() || img.rect != c.rect {
		return loadedImage{}, false
	}
	return img, true
}

// PresentImage shows entry, fetching it first when it is not cached. A fetch
// already in flight for the same file is reused.
func (c *Controller) PresentImage(entry slideshow.Entry) {
	if !entry.Valid() {
		return
	}
	if img, ok := c.cached(entry); ok {
		c.present(img)
		return
	}
	ticket := c.nextTicket()
	if c.pending.RequestPresent(entry.Source.ID(), ticket) {
		c.log.Debug("Slide not loaded, fetching first", "index", entry.Index)
		c.submit(entry, ticket)
		return
	}
	c.log.Debug("Waiting for slide to load", "index", entry.Index)
}

// PrefetchImage starts decoding the slide offset positions from the current
// one unless it is cached or already being fetched.
func (c *Controller) PrefetchImage(offset int) {
	if c.show == nil {
		return
	}
	entry := c.show.Entry(offset)
	if !entry.Valid() {
		return
	}
	if _, ok := c.cached(entry); ok {
		return
	}
	ticket := c.nextTicket()
	if c.pending.RequestPrefetch(entry.Source.ID(), ticket) {
		c.submit(entry, ticket)
	}
}

// FetchImage submits a decode of entry for the current rectangle. It does
// nothing while a fetch for the same file is in flight.
func (c *Controller) FetchImage(entry slideshow.Entry) {
	if !entry.Valid() {
		return
	}
	if _, ok := c.pending.Lookup(entry.Source.ID()); ok {
		c.log.Debug("Slide already being fetched", "index", entry.Index)
		return
	}
	ticket := c.nextTicket()
	c.pending.Reassign(entry.Source.ID(), ticket)
	c.submit(entry, ticket)
}

func (c *Controller) nextTicket() uint64 {
	c.ticket++
	return c.ticket
}

func (c *Controller) submit(entry slideshow.Entry, ticket uint64) {
	rect := c.rect
	decoder := c.decoder
	path := entry.Source.Path()

	job := taskqueue.Job[image.Image]{
		Function: func() (image.Image, error) {
			return decodeOrPlaceholder(decoder, path, rect), nil
		},
		OnCompleted: func(img image.Image) {
			c.onFetched(entry, ticket, rect, img)
		},
	}
	if err := c.queue.Submit(job.Func()); err != nil {
		c.log.Warn("Could not schedule slide", "index", entry.Index, "error", err)
		if f, ok := c.pending.Lookup(entry.Source.ID()); ok && f.Ticket == ticket {
			c.pending.Remove(entry.Source.ID())
		}
	}
}

func decodeOrPlaceholder(decoder Decoder, path string, rect pixels.Rect) (img image.Image) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Decoder panicked", "path", path, "panic", r)
			img = pixels.ErrorImage()
		}
	}()
	img, err := decoder.Decode(path, rect)
	if err != nil {
		logger.Warn("Failed to decode image", "path", path, "error", err)
		return pixels.ErrorImage()
	}
	if img == nil || img.Bounds().Empty() {
		logger.Warn("Decoded image is empty", "path", path)
		return pixels.ErrorImage()
	}
	return img
}

func (c *Controller) onFetched(entry slideshow.Entry, ticket uint64, rect pixels.Rect, img image.Image) {
	id := entry.Source.ID()
	if !c.holds(entry) {
		c.log.Debug("Slide no longer in slideshow", "index", entry.Index)
		return
	}
	f, ok := c.pending.Lookup(id)
	if ok && f.Ticket != ticket {
		c.log.Debug("Slide fetch superseded", "index", entry.Index)
		return
	}
	if rect != c.rect {
		c.log.Debug("Slide loaded, but window size changed", "index", entry.Index)
		next := c.nextTicket()
		c.pending.Reassign(id, next)
		c.submit(entry, next)
		return
	}

	c.log.Debug("Slide loaded", "index", entry.Index)
	loaded := loadedImage{index: entry.Index, source: entry.Source, image: img, rect: rect}
	c.cache.Put(entry.Index, loaded)
	if !ok {
		return
	}
	if f.Intent == slidecache.PresentImmediately && c.isCurrent(entry) {
		c.present(loaded)
	}
	c.pending.Remove(id)
}

// holds reports whether the active slideshow still has entry's file at
// entry's index.
func (c *Controller) holds(entry slideshow.Entry) bool {
	if c.show == nil {
		return false
	}
	at := c.show.EntryAt(entry.Index)
	return at.Valid() && at.Source.ID() == entry.Source.ID()
}

func (c *Controller) isCurrent(entry slideshow.Entry) bool {
	return c.show != nil && c.show.CurrentIndex() == entry.Index
}

func (c *Controller) present(img loadedImage) {
	c.log.Debug("Showing slide", "index", img.index)
	c.display.SetTransitionParam(0)
	c.display.ShowImage(img.image)
	c.transitionStart = c.now()
	c.transitioning = true

	if c.title != nil {
		c.title.SetTitle(c.metadata.Metadata(img.source).Caption)
	}
	if c.opts.OnPresent != nil {
		c.opts.OnPresent(img.source)
	}
}

// UpdateClock advances the transition to now and notifies the event handler.
func (c *Controller) UpdateClock(now time.Time) {
	if c.transitioning {
		elapsed := now.Sub(c.transitionStart)
		d := c.opts.TransitionDuration
		if elapsed >= d || d <= 0 {
			c.transitioning = false
			c.display.SetTransitionParam(1)
			c.events.HandleTransitionEnd(c, TransitionEndEvent{When: now})
		} else {
			c.display.SetTransitionParam(float32(max(elapsed, 0).Seconds() / d.Seconds()))
		}
	}
	c.events.HandleTime(c, TimeEvent{When: now})
}

// Slideshow returns the active slideshow, or nil.
func (c *Controller) Slideshow() *slideshow.Slideshow {
	return c.show
}

// CurrentIndex returns the index of the current slide, or slideshow.NoSlide.
func (c *Controller) CurrentIndex() int {
	if c.show == nil {
		return slideshow.NoSlide
	}
	return c.show.CurrentIndex()
}

// WindowSize returns the rectangle slides are decoded for.
func (c *Controller) WindowSize() pixels.Rect {
	return c.rect
}

// Transitioning reports whether a cross-fade is running.
func (c *Controller) Transitioning() bool {
	return c.transitioning
}

// PendingFetches returns the number of files being fetched.
func (c *Controller) PendingFetches() int {
	return c.pending.Len()
}

// Loop reports whether stepping wraps at either end.
func (c *Controller) Loop() bool {
	return c.opts.Loop
}

// SetLoop switches wrapping at either end on or off.
func (c *Controller) SetLoop(loop bool) {
	c.opts.Loop = loop
}

// RunID identifies the current slideshow in logs.
func (c *Controller) RunID() string {
	return c.runID
}
