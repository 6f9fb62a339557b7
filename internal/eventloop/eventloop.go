package eventloop

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// ErrPanic wraps a value recovered from a panicking task.
var ErrPanic = errors.New("task panicked")

// Loop serializes callbacks onto a single dispatch context.
type Loop interface {
	Post(fn func())
}

// Handle cancels a scheduled callback.
type Handle interface {
	Cancel()
}

// Scheduler runs callbacks on a [Loop] after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Handle
}

// Go runs work on its own goroutine and posts done with the outcome onto loop.
//
// A panic inside work is recovered and delivered to done as an error wrapping [ErrPanic].
func Go[T any](loop Loop, work func() (T, error), done func(T, error)) {
	go func() {
		var (
			v   T
			err error
		)

		func() {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%w: %v", ErrPanic, r)
				}
			}()
			v, err = work()
		}()

		loop.Post(func() { done(v, err) })
	}()
}

// Queue is an unbounded FIFO [Loop]. Post never blocks, so callbacks may post to their own loop.
type Queue struct {
	mu     sync.Mutex
	items  []func()
	signal chan struct{}
}

var _ Loop = (*Queue)(nil)

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{signal: make(chan struct{}, 1)}
}

// Post appends fn to the queue.
func (q *Queue) Post(fn func()) {
	q.mu.Lock()
	q.items = append(q.items, fn)
	q.mu.Unlock()

	select {
	case q.signal <- struct{}{}:
	default:
	}
}

// Len returns the number of queued callbacks.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Pop blocks until a callback is available or ctx is done.
func (q *Queue) Pop(ctx context.Context) (func(), error) {
	for {
		q.mu.Lock()
		if len(q.items) > 0 {
			fn := q.items[0]
			q.items[0] = nil
			q.items = q.items[1:]
			q.mu.Unlock()
			return fn, nil
		}
		q.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-q.signal:
		}
	}
}

// Run executes queued callbacks in order until ctx is done.
func (q *Queue) Run(ctx context.Context) error {
	for {
		fn, err := q.Pop(ctx)
		if err != nil {
			return err
		}
		fn()
	}
}

// TimerScheduler schedules callbacks with [time.AfterFunc] and delivers them through a [Loop].
type TimerScheduler struct {
	loop Loop
}

var _ Scheduler = (*TimerScheduler)(nil)

// NewTimerScheduler creates a scheduler that posts fired callbacks onto loop.
func NewTimerScheduler(loop Loop) *TimerScheduler {
	return &TimerScheduler{loop: loop}
}

type timerHandle struct {
	timer     *time.Timer
	cancelled atomic.Bool
}

func (h *timerHandle) Cancel() {
	h.cancelled.Store(true)
	h.timer.Stop()
}

// AfterFunc implements [Scheduler].
func (s *TimerScheduler) AfterFunc(d time.Duration, fn func()) Handle {
	h := &timerHandle{}
	h.timer = time.AfterFunc(d, func() {
		s.loop.Post(func() {
			if h.cancelled.Load() {
				return
			}
			fn()
		})
	})
	return h
}
