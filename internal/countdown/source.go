package countdown

import (
	"context"
	"sync"
	"time"
)

// TickSource schedules the periodic callback that drives an Engine.
// Start replaces any schedule already active; Stop is idempotent.
// Implementations must invoke fn on the thread that owns the engine.
type TickSource interface {
	Start(interval time.Duration, fn func())
	Stop()
}

// Ticker is a TickSource backed by time.Ticker. Each tick is handed to
// dispatch, which must marshal fn onto the engine's thread (for example
// tea.Program.Send or Loop.Post).
type Ticker struct {
	mu       sync.Mutex
	dispatch func(fn func())
	stopCh   chan struct{}
}

// NewTicker creates a Ticker that delivers ticks through dispatch.
func NewTicker(dispatch func(fn func())) *Ticker {
	return &Ticker{dispatch: dispatch}
}

// Start begins delivering fn every interval.
func (t *Ticker) Start(interval time.Duration, fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopCh != nil {
		close(t.stopCh)
	}
	stopCh := make(chan struct{})
	t.stopCh = stopCh

	go t.run(interval, fn, stopCh)
}

// Stop halts tick delivery. A tick already handed to dispatch may still
// arrive; the engine discards it.
func (t *Ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopCh != nil {
		close(t.stopCh)
		t.stopCh = nil
	}
}

// Active reports whether the ticker is scheduled.
func (t *Ticker) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopCh != nil
}

func (t *Ticker) run(interval time.Duration, fn func(), stopCh <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			// Re-check so a stop that raced with the tick wins.
			select {
			case <-stopCh:
				return
			default:
			}
			t.dispatch(fn)
		}
	}
}

// ManualSource is a TickSource fired explicitly with Fire. It is used to
// drive an engine deterministically.
type ManualSource struct {
	mu       sync.Mutex
	fn       func()
	interval time.Duration
	starts   int
	stops    int
}

// Start records fn as the scheduled callback.
func (s *ManualSource) Start(interval time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fn = fn
	s.interval = interval
	s.starts++
}

// Stop clears the scheduled callback.
func (s *ManualSource) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fn != nil {
		s.stops++
	}
	s.fn = nil
}

// Fire invokes the scheduled callback once. It reports false when nothing
// is scheduled.
func (s *ManualSource) Fire() bool {
	s.mu.Lock()
	fn := s.fn
	s.mu.Unlock()

	if fn == nil {
		return false
	}
	fn()
	return true
}

// Captured returns the scheduled callback without firing it, or nil.
func (s *ManualSource) Captured() func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fn
}

// Active reports whether a callback is scheduled.
func (s *ManualSource) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fn != nil
}

// Interval returns the interval of the last Start.
func (s *ManualSource) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

// Counts returns how many times the source was started and stopped.
func (s *ManualSource) Counts() (starts, stops int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.starts, s.stops
}

// Loop is a single-goroutine event loop. Functions posted to it run one at a
// time on the goroutine that called Run, which makes it the owner thread for
// an Engine outside a UI toolkit.
type Loop struct {
	queue chan func()
	done  chan struct{}
	once  sync.Once
}

// NewLoop creates a loop with a queue of the given size.
func NewLoop(size int) *Loop {
	if size < 1 {
		size = 1
	}
	return &Loop{
		queue: make(chan func(), size),
		done:  make(chan struct{}),
	}
}

// Post queues fn. It is dropped if the loop has quit.
func (l *Loop) Post(fn func()) {
	select {
	case l.queue <- fn:
	case <-l.done:
	}
}

// Quit stops Run after the function currently executing returns.
func (l *Loop) Quit() {
	l.once.Do(func() { close(l.done) })
}

// Run executes posted functions until Quit is called or ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			l.Quit()
			return ctx.Err()
		case <-l.done:
			return nil
		case fn := <-l.queue:
			fn()
		}
	}
}
