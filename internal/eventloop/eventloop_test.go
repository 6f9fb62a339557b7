package eventloop

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func runQueue(t *testing.T) (*Queue, context.CancelFunc) {
	t.Helper()
	q := NewQueue()
	ctx, cancel := context.WithCancel(context.Background())
	go q.Run(ctx)
	return q, cancel
}

func TestQueue(t *testing.T) {
	t.Run("Runs Callbacks In Order", func(t *testing.T) {
		q, cancel := runQueue(t)
		defer cancel()

		done := make(chan []int, 1)
		var got []int
		for i := range 5 {
			q.Post(func() { got = append(got, i) })
		}
		q.Post(func() { done <- got })

		select {
		case order := <-done:
			for i, v := range order {
				if v != i {
					t.Fatalf("expected in-order execution, got %v", order)
				}
			}
		case <-time.After(time.Second):
			t.Fatal("timed out")
		}
	})

	t.Run("Post From Callback Does Not Block", func(t *testing.T) {
		q, cancel := runQueue(t)
		defer cancel()

		done := make(chan struct{})
		q.Post(func() {
			q.Post(func() { close(done) })
		})

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("nested post never ran")
		}
	})

	t.Run("Pop Honors Context", func(t *testing.T) {
		q := NewQueue()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		if _, err := q.Pop(ctx); !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("expected deadline exceeded, got %v", err)
		}
	})

	t.Run("Len", func(t *testing.T) {
		q := NewQueue()
		q.Post(func() {})
		q.Post(func() {})
		if q.Len() != 2 {
			t.Errorf("expected 2 queued callbacks, got %d", q.Len())
		}
	})
}

func TestGo(t *testing.T) {
	t.Run("Delivers Result On Loop", func(t *testing.T) {
		q := NewQueue()
		Go(q, func() (string, error) { return "ok", nil }, func(v string, err error) {
			if v != "ok" || err != nil {
				t.Errorf("unexpected result (%q, %v)", v, err)
			}
		})

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		fn, err := q.Pop(ctx)
		if err != nil {
			t.Fatalf("expected completion to be posted, got %v", err)
		}
		fn()
	})

	t.Run("Recovers Panics", func(t *testing.T) {
		q := NewQueue()
		var gotErr error
		Go(q, func() (int, error) { panic("boom") }, func(_ int, err error) { gotErr = err })

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		fn, err := q.Pop(ctx)
		if err != nil {
			t.Fatalf("expected completion to be posted, got %v", err)
		}
		fn()

		if !errors.Is(gotErr, ErrPanic) {
			t.Errorf("expected ErrPanic, got %v", gotErr)
		}
	})
}

func TestTimerScheduler(t *testing.T) {
	t.Run("Fires On Loop", func(t *testing.T) {
		q, cancel := runQueue(t)
		defer cancel()

		fired := make(chan struct{})
		NewTimerScheduler(q).AfterFunc(5*time.Millisecond, func() { close(fired) })

		select {
		case <-fired:
		case <-time.After(time.Second):
			t.Fatal("timer never fired")
		}
	})

	t.Run("Cancel Before Fire", func(t *testing.T) {
		q, cancel := runQueue(t)
		defer cancel()

		var fired atomic.Bool
		h := NewTimerScheduler(q).AfterFunc(20*time.Millisecond, func() { fired.Store(true) })
		h.Cancel()

		time.Sleep(60 * time.Millisecond)
		if fired.Load() {
			t.Error("cancelled timer fired")
		}
	})

	t.Run("Cancel After Fire But Before Dispatch", func(t *testing.T) {
		q := NewQueue()
		var fired bool
		h := NewTimerScheduler(q).AfterFunc(time.Millisecond, func() { fired = true })

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		fn, err := q.Pop(ctx)
		if err != nil {
			t.Fatalf("expected timer to post, got %v", err)
		}

		h.Cancel()
		fn()
		if fired {
			t.Error("callback ran after Cancel")
		}
	})
}
