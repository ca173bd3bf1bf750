package countdown

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"
)

// Fixed countdown parameters.
const (
	DefaultDuration = 30 * time.Second
	DefaultInterval = 100 * time.Millisecond
)

// State is the engine state.
type State int

const (
	StateIdle State = iota
	StateRunning
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Engine errors.
var (
	ErrAlreadyRunning  = errors.New("countdown already running")
	ErrInvalidDuration = errors.New("duration must be greater than 0")
	ErrInvalidInterval = errors.New("tick interval must be greater than 0")
)

// Listener receives engine events. Both methods are called on the thread
// that delivers ticks.
type Listener interface {
	// OnTick reports the time left in the running countdown.
	OnTick(remaining time.Duration)
	// OnFinish fires once when the countdown reaches zero without being stopped.
	OnFinish()
}

// ListenerFuncs adapts plain functions to a Listener. Nil fields are skipped.
type ListenerFuncs struct {
	Tick   func(remaining time.Duration)
	Finish func()
}

// OnTick implements Listener.
func (f ListenerFuncs) OnTick(remaining time.Duration) {
	if f.Tick != nil {
		f.Tick(remaining)
	}
}

// OnFinish implements Listener.
func (f ListenerFuncs) OnFinish() {
	if f.Finish != nil {
		f.Finish()
	}
}

// Engine is a single countdown timer. It is not safe for concurrent use:
// Start, Stop, Toggle and tick delivery must all happen on one thread.
type Engine struct {
	listener Listener
	source   TickSource
	clock    Clock
	logger   *slog.Logger

	state     State
	id        string
	deadline  time.Time
	duration  time.Duration
	interval  time.Duration
	remaining time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the clock used to compute remaining time.
func WithClock(c Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine creates an idle engine that reports to listener and is driven
// by source.
func NewEngine(listener Listener, source TickSource, opts ...Option) *Engine {
	if listener == nil {
		listener = ListenerFuncs{}
	}

	e := &Engine{
		listener: listener,
		source:   source,
		clock:    SystemClock{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

// Start begins counting down from duration, ticking every interval.
// An immediate tick reports the full duration. It returns the ID of the new
// countdown.
func (e *Engine) Start(duration, interval time.Duration) (string, error) {
	if duration <= 0 {
		return "", ErrInvalidDuration
	}
	if interval <= 0 {
		return "", ErrInvalidInterval
	}
	if e.state == StateRunning {
		return "", ErrAlreadyRunning
	}

	id, err := ulid.New(ulid.Timestamp(e.clock.Now()), rand.Reader)
	if err != nil {
		return "", fmt.Errorf("failed to generate countdown ID: %w", err)
	}

	e.id = id.String()
	e.state = StateRunning
	e.duration = duration
	e.interval = interval
	e.remaining = duration
	e.deadline = e.clock.Now().Add(duration)

	e.source.Start(interval, e.tickFunc(e.id))
	e.logger.Debug("countdown started", "countdown_id", e.id, "duration", duration, "interval", interval)

	e.listener.OnTick(duration)
	return e.id, nil
}

// Stop halts the running countdown and discards the remaining time.
// It reports whether a countdown was running.
func (e *Engine) Stop() bool {
	if e.state != StateRunning {
		return false
	}

	e.source.Stop()
	e.logger.Debug("countdown stopped", "countdown_id", e.id, "remaining", e.remaining)
	e.reset()
	return true
}

// Toggle stops a running countdown or starts a new one, and returns the
// state after the toggle.
func (e *Engine) Toggle(duration, interval time.Duration) (State, error) {
	if e.state == StateRunning {
		e.Stop()
		return e.state, nil
	}
	if _, err := e.Start(duration, interval); err != nil {
		return e.state, err
	}
	return e.state, nil
}

// tickFunc binds a tick callback to the countdown that scheduled it.
func (e *Engine) tickFunc(id string) func() {
	return func() {
		e.Tick(id)
	}
}

// Tick advances the countdown identified by id. Ticks for a countdown that
// is no longer current are ignored.
func (e *Engine) Tick(id string) {
	if e.state != StateRunning || id != e.id {
		return
	}

	remaining := e.deadline.Sub(e.clock.Now())
	if remaining > 0 {
		if remaining < e.remaining {
			e.remaining = remaining
		}
		e.listener.OnTick(e.remaining)
		return
	}

	e.source.Stop()
	e.logger.Debug("countdown finished", "countdown_id", e.id, "duration", e.duration)
	e.reset()
	e.listener.OnFinish()
}

func (e *Engine) reset() {
	e.state = StateIdle
	e.id = ""
	e.remaining = 0
	e.deadline = time.Time{}
}

// State returns the current state.
func (e *Engine) State() State {
	return e.state
}

// Running reports whether a countdown is in progress.
func (e *Engine) Running() bool {
	return e.state == StateRunning
}

// ID returns the ID of the running countdown, or "" when idle.
func (e *Engine) ID() string {
	return e.id
}

// Remaining returns the time left as of the last tick.
func (e *Engine) Remaining() time.Duration {
	return e.remaining
}

// Duration returns the length of the current or most recent countdown.
func (e *Engine) Duration() time.Duration {
	return e.duration
}
