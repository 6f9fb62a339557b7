// package fakes provides deterministic doubles for the event loop and the book service
package fakes

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/desertthunder/bookx/internal/eventloop"
	"github.com/desertthunder/bookx/internal/services"
)

// StepTimeout bounds how long [ManualLoop.Step] waits for a posted callback.
const StepTimeout = 2 * time.Second

// ManualLoop queues posted callbacks until the test runs them with Step or Drain.
//
// The test goroutine plays the role of the dispatch context.
type ManualLoop struct {
	mu     sync.Mutex
	queue  []func()
	signal chan struct{}
}

var _ eventloop.Loop = (*ManualLoop)(nil)

func NewManualLoop() *ManualLoop {
	return &ManualLoop{signal: make(chan struct{}, 1)}
}

func (l *ManualLoop) Post(fn func()) {
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.signal <- struct{}{}:
	default:
	}
}

func (l *ManualLoop) pop() (func(), bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.queue) == 0 {
		return nil, false
	}
	fn := l.queue[0]
	l.queue = l.queue[1:]
	return fn, true
}

// Step waits for one callback and runs it, failing the test after [StepTimeout].
func (l *ManualLoop) Step(t *testing.T) {
	t.Helper()
	deadline := time.After(StepTimeout)
	for {
		if fn, ok := l.pop(); ok {
			fn()
			return
		}
		select {
		case <-l.signal:
		case <-deadline:
			t.Fatal("timed out waiting for a posted callback")
		}
	}
}

// Drain runs every callback queued right now without waiting.
func (l *ManualLoop) Drain() int {
	n := 0
	for {
		fn, ok := l.pop()
		if !ok {
			return n
		}
		fn()
		n++
	}
}

// Pending returns the number of queued callbacks.
func (l *ManualLoop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

type manualTimer struct {
	at        time.Duration
	order     int
	fn        func()
	cancelled bool
	fired     bool
}

func (m *manualTimer) Cancel() { m.cancelled = true }

// ManualScheduler fires callbacks when virtual time is advanced past their deadline.
//
// Callbacks run synchronously inside Advance, on the calling goroutine.
type ManualScheduler struct {
	now    time.Duration
	next   int
	timers []*manualTimer
}

var _ eventloop.Scheduler = (*ManualScheduler)(nil)

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (s *ManualScheduler) AfterFunc(d time.Duration, fn func()) eventloop.Handle {
	s.next++
	tm := &manualTimer{at: s.now + d, order: s.next, fn: fn}
	s.timers = append(s.timers, tm)
	return tm
}

// Now returns the virtual time elapsed since creation.
func (s *ManualScheduler) Now() time.Duration { return s.now }

// Advance moves virtual time forward by d, firing due timers in deadline order.
//
// Timers scheduled by a firing callback also fire if they fall inside the window.
func (s *ManualScheduler) Advance(d time.Duration) {
	target := s.now + d
	for {
		tm := s.due(target)
		if tm == nil {
			break
		}
		s.now = tm.at
		tm.fired = true
		tm.fn()
	}
	s.now = target
}

func (s *ManualScheduler) due(target time.Duration) *manualTimer {
	live := s.timers[:0]
	for _, tm := range s.timers {
		if !tm.cancelled && !tm.fired {
			live = append(live, tm)
		}
	}
	s.timers = live

	sort.SliceStable(s.timers, func(i, j int) bool {
		if s.timers[i].at == s.timers[j].at {
			return s.timers[i].order < s.timers[j].order
		}
		return s.timers[i].at < s.timers[j].at
	})

	if len(s.timers) == 0 || s.timers[0].at > target {
		return nil
	}
	return s.timers[0]
}

// Active returns the number of timers that are neither fired nor cancelled.
func (s *ManualScheduler) Active() int {
	n := 0
	for _, tm := range s.timers {
		if !tm.cancelled && !tm.fired {
			n++
		}
	}
	return n
}

// BookService is a [services.BookService] whose behavior comes from optional funcs.
//
// Unset funcs return successful empty results. Calls are counted per method.
type BookService struct {
	LoginFunc       func(ctx context.Context, username, password string) (*services.StatusResult, error)
	RegisterFunc    func(ctx context.Context, username, email, password string) (*services.StatusResult, error)
	LogoutFunc      func(ctx context.Context) (int, error)
	SearchFunc      func(ctx context.Context, query string) ([]string, error)
	RecommendFunc   func(ctx context.Context, bookName string, n int) (*services.RecommendResult, error)
	AddFavoriteFunc func(ctx context.Context, title string) (*services.StatusResult, error)
	FavoritesFunc   func(ctx context.Context) (*services.FavoritesResult, error)

	mu    sync.Mutex
	calls map[string][]string
}

var _ services.BookService = (*BookService)(nil)

func (f *BookService) record(method string, arg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = make(map[string][]string)
	}
	f.calls[method] = append(f.calls[method], arg)
}

// Calls returns the number of times method was invoked.
func (f *BookService) Calls(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls[method])
}

// Args returns the primary argument of each call to method, in call order.
func (f *BookService) Args(method string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls[method]...)
}

func (f *BookService) Login(ctx context.Context, username, password string) (*services.StatusResult, error) {
	f.record("Login", username)
	if f.LoginFunc != nil {
		return f.LoginFunc(ctx, username, password)
	}
	return &services.StatusResult{Success: true, Message: "Login successful"}, nil
}

func (f *BookService) Register(ctx context.Context, username, email, password string) (*services.StatusResult, error) {
	f.record("Register", username)
	if f.RegisterFunc != nil {
		return f.RegisterFunc(ctx, username, email, password)
	}
	return &services.StatusResult{Success: true, Message: "Registration successful"}, nil
}

func (f *BookService) Logout(ctx context.Context) (int, error) {
	f.record("Logout", "")
	if f.LogoutFunc != nil {
		return f.LogoutFunc(ctx)
	}
	return 200, nil
}

func (f *BookService) Search(ctx context.Context, query string) ([]string, error) {
	f.record("Search", query)
	if f.SearchFunc != nil {
		return f.SearchFunc(ctx, query)
	}
	return []string{}, nil
}

func (f *BookService) Recommend(ctx context.Context, bookName string, n int) (*services.RecommendResult, error) {
	f.record("Recommend", bookName)
	if f.RecommendFunc != nil {
		return f.RecommendFunc(ctx, bookName, n)
	}
	return &services.RecommendResult{Success: true, Book: bookName}, nil
}

func (f *BookService) AddFavorite(ctx context.Context, title string) (*services.StatusResult, error) {
	f.record("AddFavorite", title)
	if f.AddFavoriteFunc != nil {
		return f.AddFavoriteFunc(ctx, title)
	}
	return &services.StatusResult{Success: true, Message: "Added to favorites"}, nil
}

func (f *BookService) Favorites(ctx context.Context) (*services.FavoritesResult, error) {
	f.record("Favorites", "")
	if f.FavoritesFunc != nil {
		return f.FavoritesFunc(ctx)
	}
	return &services.FavoritesResult{Success: true}, nil
}
