// Package taskqueue runs jobs on a single background worker and hands their
// completions back to the goroutine that owns the queue.
//
// The worker executes jobs one at a time in submission order. It never runs a
// completion itself: finished completions are buffered until the owner calls
// Drain, which runs them on the calling goroutine in the order the worker
// finished them. Submit and Drain never block on the worker.
package taskqueue

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/oukeidos/slideproj/internal/logger"
)

// ErrClosed is returned by Submit after Close.
var ErrClosed = errors.New("task queue closed")

// Func is the unit of work. It runs on the worker and returns the completion
// to run on the owning goroutine. A non-nil error drops the completion.
type Func func() (complete func(), err error)

// Job pairs a function run on the worker with a completion consuming its
// result on the owning goroutine.
type Job[T any] struct {
	Function    func() (T, error)
	OnCompleted func(T)
}

// Func binds the job into an untyped Func.
func (j Job[T]) Func() Func {
	return func() (func(), error) {
		result, err := j.Function()
		if err != nil {
			return nil, err
		}
		onCompleted := j.OnCompleted
		return func() {
			if onCompleted != nil {
				onCompleted(result)
			}
		}, nil
	}
}

// SubmitJob submits a typed job.
func SubmitJob[T any](q *Queue, job Job[T]) error {
	return q.Submit(job.Func())
}

// State is the dispatch state of a queue.
type State int

const (
	StateRunning State = iota
	StateSuspended
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateSuspended:
		return "suspended"
	case StateTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

type pendingJob struct {
	seq uint64
	fn  Func
}

// Queue is a single-worker job queue. The zero value is not usable; call New.
type Queue struct {
	mu      sync.Mutex
	cond    *sync.Cond
	jobs    []pendingJob
	state   State
	nextSeq uint64

	completedMu sync.Mutex
	completed   []func()

	ready chan struct{}
	done  chan struct{}
}

// New starts the worker goroutine and returns the queue.
func New() *Queue {
	q := &Queue{
		ready: make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
	q.cond = sync.NewCond(&q.mu)
	go q.run()
	return q
}

// Submit enqueues fn and returns immediately.
func (q *Queue) Submit(fn Func) error {
	if fn == nil {
		return errors.New("nil job")
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.state == StateTerminated {
		return ErrClosed
	}
	q.nextSeq++
	q.jobs = append(q.jobs, pendingJob{seq: q.nextSeq, fn: fn})
	q.cond.Signal()
	return nil
}

// Drain runs every buffered completion on the calling goroutine and returns
// how many ran. Completions submitted by the worker while Drain runs are
// picked up in the same call.
func (q *Queue) Drain() int {
	n := 0
	for {
		q.completedMu.Lock()
		if len(q.completed) == 0 {
			q.completedMu.Unlock()
			return n
		}
		complete := q.completed[0]
		q.completed[0] = nil
		q.completed = q.completed[1:]
		q.completedMu.Unlock()

		complete()
		n++
	}
}

// Ready is signalled whenever the worker buffers a completion. Signals are
// coalesced; a receive means Drain has at least one completion to run unless
// a concurrent Drain or Clear took it first.
func (q *Queue) Ready() <-chan struct{} {
	return q.ready
}

// Clear discards every job that has not started and every buffered
// completion. A job already running is not interrupted and its completion is
// still delivered.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.state == StateTerminated {
		return
	}
	q.state = StateSuspended
	dropped := len(q.jobs)
	q.jobs = nil

	q.completedMu.Lock()
	droppedCompletions := len(q.completed)
	q.completed = nil
	q.completedMu.Unlock()

	q.state = StateRunning
	q.cond.Signal()
	if dropped > 0 || droppedCompletions > 0 {
		logger.Debug("Task queue cleared", "jobs", dropped, "completions", droppedCompletions)
	}
}

// Pending returns the number of jobs waiting for the worker.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.jobs)
}

// State returns the current dispatch state.
func (q *Queue) State() State {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.state
}

// Close stops accepting jobs, discards the ones not started and waits for the
// worker to exit. If a running job outlives ctx, Close returns ctx.Err() and
// the worker exits once that job returns.
func (q *Queue) Close(ctx context.Context) error {
	q.mu.Lock()
	if q.state != StateTerminated {
		q.state = StateTerminated
		q.jobs = nil
		q.cond.Broadcast()
	}
	q.mu.Unlock()

	select {
	case <-q.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *Queue) run() {
	defer close(q.done)
	for {
		q.mu.Lock()
		for q.state != StateTerminated && (q.state == StateSuspended || len(q.jobs) == 0) {
			q.cond.Wait()
		}
		if q.state == StateTerminated {
			q.mu.Unlock()
			return
		}
		job := q.jobs[0]
		q.jobs[0] = pendingJob{}
		q.jobs = q.jobs[1:]
		q.mu.Unlock()

		complete, err := execute(job.fn)
		if err != nil {
			logger.Error("Job failed", "job", job.seq, "error", err)
			continue
		}
		if complete == nil {
			continue
		}

		q.completedMu.Lock()
		q.completed = append(q.completed, complete)
		q.completedMu.Unlock()

		select {
		case q.ready <- struct{}{}:
		default:
		}
	}
}

func execute(fn Func) (complete func(), err error) {
	defer func() {
		if r := recover(); r != nil {
			complete = nil
			err = fmt.Errorf("job panicked: %v", r)
		}
	}()
	return fn()
}
