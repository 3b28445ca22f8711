package presenter

import "time"

// StepDirection is the direction of a navigation step.
type StepDirection int

const (
	DirectionNone StepDirection = iota
	DirectionForward
	DirectionBackward
)

func (d StepDirection) String() string {
	switch d {
	case DirectionForward:
		return "forward"
	case DirectionBackward:
		return "backward"
	default:
		return "none"
	}
}

// StepEvent is emitted before the controller moves to another slide.
type StepEvent struct {
	Direction StepDirection
}

// TransitionEndEvent is emitted once a cross-fade has completed.
type TransitionEndEvent struct {
	When time.Time
}

// TimeEvent is emitted on every clock update.
type TimeEvent struct {
	When time.Time
}

// Navigator moves through the active slideshow.
type Navigator interface {
	StepForward()
	StepBackward()
	GoToBegin()
	GoToEnd()
}

// EventHandler observes the controller. Handlers may navigate in response.
type EventHandler interface {
	HandleStep(nav Navigator, ev StepEvent)
	HandleTransitionEnd(nav Navigator, ev TransitionEndEvent)
	HandleTime(nav Navigator, ev TimeEvent)
}

type nopEventHandler struct{}

func (nopEventHandler) HandleStep(Navigator, StepEvent)                   {}
func (nopEventHandler) HandleTransitionEnd(Navigator, TransitionEndEvent) {}
func (nopEventHandler) HandleTime(Navigator, TimeEvent)                   {}
