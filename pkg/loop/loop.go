// Package loop provides a single-goroutine event loop for the widget engine.
//
// All widget state transitions run on one goroutine, mirroring the
// cooperative dispatch model of UI toolkits: event handlers and timer
// callbacks never run concurrently with each other, so widget state needs
// no locking.
//
// # Usage
//
// Create a loop and submit work:
//
//	l := loop.New()
//	defer l.Close()
//
//	l.Do(func() { /* runs on the loop goroutine, blocks until done */ })
//	l.Post(func() { /* runs on the loop goroutine, fire and forget */ })
//
// Timers deliver their callbacks onto the loop and can be cancelled:
//
//	t := l.After(200*time.Millisecond, show)
//	t.Stop()
//
// NextTick defers a callback until after the currently-dispatching batch of
// work, which is how the engine arms outside-click listeners without
// reacting to the click that opened the popover.
//
// Callbacks must not call Do; they already run on the loop goroutine and
// can invoke engine internals directly. Post and NextTick are safe from
// anywhere, including from inside callbacks.
package loop

import (
	"sync"
	"sync/atomic"
	"time"
)

// Loop serializes callbacks onto a single goroutine.
type Loop struct {
	ops       chan queued
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

type queued struct {
	fn   func()
	done chan struct{}
}

// New creates a loop and starts its dispatch goroutine.
func New() *Loop {
	l := &Loop{
		ops:  make(chan queued, 64),
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *Loop) run() {
	defer close(l.done)
	for {
		select {
		case q := <-l.ops:
			q.fn()
			if q.done != nil {
				close(q.done)
			}
		case <-l.quit:
			return
		}
	}
}

// Post enqueues fn to run on the loop goroutine and returns immediately.
// After Close, Post is a no-op.
func (l *Loop) Post(fn func()) {
	select {
	case l.ops <- queued{fn: fn}:
	case <-l.quit:
	}
}

// NextTick enqueues fn to run on the next turn of the loop, after the
// currently-dispatching callback and everything already queued. It is the
// mechanism for "react to the next event, not the one being handled now".
func (l *Loop) NextTick(fn func()) {
	l.Post(fn)
}

// Do runs fn on the loop goroutine and blocks until it has completed.
// It must not be called from a loop callback (that would deadlock);
// callbacks already run on the loop and should call directly.
// After Close, Do returns without running fn.
func (l *Loop) Do(fn func()) {
	done := make(chan struct{})
	select {
	case l.ops <- queued{fn: fn, done: done}:
	case <-l.quit:
		return
	}
	select {
	case <-done:
	case <-l.done:
	}
}

// Close stops the loop and waits for the dispatch goroutine to exit.
// Queued work that has not started is discarded. Close is idempotent.
func (l *Loop) Close() {
	l.closeOnce.Do(func() { close(l.quit) })
	<-l.done
}

// Timer is a cancellable handle to a callback scheduled with After.
type Timer struct {
	stopped atomic.Bool
	timer   *time.Timer
}

// After schedules fn to run on the loop goroutine once d has elapsed.
// The returned Timer can cancel delivery with Stop.
func (l *Loop) After(d time.Duration, fn func()) *Timer {
	t := &Timer{}
	t.timer = time.AfterFunc(d, func() {
		l.Post(func() {
			if !t.stopped.Load() {
				fn()
			}
		})
	})
	return t
}

// Stop cancels the timer. A callback that has not yet run on the loop will
// be suppressed even if the underlying timer already fired.
func (t *Timer) Stop() {
	if t == nil {
		return
	}
	t.stopped.Store(true)
	t.timer.Stop()
}
