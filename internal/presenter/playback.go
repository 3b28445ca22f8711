package presenter

import (
	"time"

	"github.com/oukeidos/slideproj/internal/logger"
)

// DefaultStepDelay is how long a slide stays on screen during auto-play.
const DefaultStepDelay = 6 * time.Second

// Playback advances the slideshow automatically. After a transition ends it
// waits StepDelay and then steps in the direction of the last manual step.
type Playback struct {
	stepDelay time.Duration

	direction      StepDirection
	savedDirection StepDirection

	transitionEnd time.Time
	ended         bool
}

// NewPlayback returns a playback controller that starts playing forward. A
// non-positive stepDelay selects DefaultStepDelay.
func NewPlayback(stepDelay time.Duration) *Playback {
	if stepDelay <= 0 {
		stepDelay = DefaultStepDelay
	}
	return &Playback{
		stepDelay:      stepDelay,
		direction:      DirectionForward,
		savedDirection: DirectionForward,
	}
}

func (p *Playback) HandleStep(_ Navigator, ev StepEvent) {
	if ev.Direction != DirectionNone {
		p.direction = ev.Direction
	}
	p.ended = false
}

func (p *Playback) HandleTransitionEnd(_ Navigator, ev TransitionEndEvent) {
	p.transitionEnd = ev.When
	p.ended = true
}

func (p *Playback) HandleTime(nav Navigator, ev TimeEvent) {
	if !p.ended || p.direction == DirectionNone {
		return
	}
	if ev.When.Sub(p.transitionEnd) < p.stepDelay {
		return
	}
	logger.Debug("Slide expired", "direction", p.direction)
	// The next step waits for another transition. A step that cannot move
	// starts none, so auto-play stops at an end without looping.
	p.ended = false
	switch p.direction {
	case DirectionForward:
		nav.StepForward()
	case DirectionBackward:
		nav.StepBackward()
	}
}

// TogglePause stops auto-play, or resumes it in the direction it had.
func (p *Playback) TogglePause() {
	if p.direction == DirectionNone {
		p.direction = p.savedDirection
		return
	}
	p.savedDirection = p.direction
	p.direction = DirectionNone
}

// Paused reports whether auto-play is stopped.
func (p *Playback) Paused() bool {
	return p.direction == DirectionNone
}

// Direction returns the direction auto-play steps in.
func (p *Playback) Direction() StepDirection {
	return p.direction
}
