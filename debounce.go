package localesync

import (
	"sync"
	"time"
)

// DebouncedTask coalesces many Schedule calls into one delayed action. Each Schedule restarts
// the quiet period; the action runs once the quiet period elapses without another Schedule,
// with the arguments of the latest call. Executions of one task never overlap.
type DebouncedTask[T any] struct {
	mu         sync.Mutex
	running    sync.Mutex
	quiet      time.Duration
	action     func(T)
	timer      *time.Timer
	generation uint64
	args       T
	closed     bool
}

func NewDebouncedTask[T any](quiet time.Duration, action func(T)) *DebouncedTask[T] {
	return &DebouncedTask[T]{quiet: quiet, action: action}
}

func (d *DebouncedTask[T]) Schedule(args T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.args = args
	d.generation++
	if d.timer != nil {
		d.timer.Stop()
	}
	generation := d.generation
	d.timer = time.AfterFunc(d.quiet, func() {
		d.fire(generation)
	})
}

func (d *DebouncedTask[T]) fire(generation uint64) {
	d.running.Lock()
	defer d.running.Unlock()

	d.mu.Lock()
	// a timer that lost the race with Stop still runs; its generation is stale by then
	if d.closed || generation != d.generation {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	args := d.args
	var zero T
	d.args = zero
	d.mu.Unlock()

	d.action(args)
}

// Pending reports whether an execution is armed.
func (d *DebouncedTask[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Cancel drops the armed execution, if any. The task stays usable.
func (d *DebouncedTask[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
}

func (d *DebouncedTask[T]) cancelLocked() {
	d.generation++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	var zero T
	d.args = zero
}

// Close prevents any further execution and waits for one already in progress.
func (d *DebouncedTask[T]) Close() {
	d.mu.Lock()
	d.closed = true
	d.cancelLocked()
	d.mu.Unlock()

	// an execution past its generation check holds running until it returns
	d.running.Lock()
	d.running.Unlock()
}
