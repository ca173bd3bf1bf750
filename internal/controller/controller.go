// Package controller wires the countdown engine to a display and the alarm.
// Every frontend (terminal, GTK, headless) drives the same Controller and
// only supplies a Display and a tick source.
package controller

import (
	"log/slog"
	"time"

	"github.com/jmylchreest/countdown/internal/countdown"
)

// Display is the presentation layer: a textual readout and a two-state
// toggle control.
type Display interface {
	SetReadout(text string)
	SetRunning(running bool)
}

// Alarm is the visibility-scoped sound player (alert.Visibility).
type Alarm interface {
	Show() error
	Hide()
	Play() bool
}

// Notifier posts a desktop notification.
type Notifier interface {
	Notify(summary, body string) error
}

// Finish notification text.
const (
	FinishSummary = "Time's up"
	FinishBody    = "The countdown has finished."
)

// Options configures a Controller.
type Options struct {
	Source   countdown.TickSource
	Alarm    Alarm
	Notifier Notifier
	Clock    countdown.Clock
	Logger   *slog.Logger
}

// Controller handles toggle presses and engine events for one screen.
// Like the engine it is confined to the thread that delivers ticks.
type Controller struct {
	engine   *countdown.Engine
	display  Display
	alarm    Alarm
	notifier Notifier
	logger   *slog.Logger

	// progress mirrors the readout as a fraction of the full duration.
	progress float64
}

// New creates a controller and paints the initial readout.
func New(display Display, opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Controller{
		display:  display,
		alarm:    opts.Alarm,
		notifier: opts.Notifier,
		logger:   logger,
		progress: 1,
	}

	engineOpts := []countdown.Option{countdown.WithLogger(logger)}
	if opts.Clock != nil {
		engineOpts = append(engineOpts, countdown.WithClock(opts.Clock))
	}
	c.engine = countdown.NewEngine(c, opts.Source, engineOpts...)

	display.SetReadout(countdown.Format(countdown.DefaultDuration))
	display.SetRunning(false)
	return c
}

// Toggle starts or stops the countdown and updates the toggle control to
// the resulting state.
func (c *Controller) Toggle() countdown.State {
	state, err := c.engine.Toggle(countdown.DefaultDuration, countdown.DefaultInterval)
	if err != nil {
		c.logger.Error("failed to toggle countdown", "error", err)
	}
	c.display.SetRunning(state == countdown.StateRunning)
	return state
}

// Stop halts the countdown if running.
func (c *Controller) Stop() {
	if c.engine.Stop() {
		c.display.SetRunning(false)
	}
}

// OnTick implements countdown.Listener.
func (c *Controller) OnTick(remaining time.Duration) {
	c.progress = countdown.Fraction(remaining, c.engine.Duration())
	c.display.SetReadout(countdown.Format(remaining))
}

// OnFinish implements countdown.Listener.
func (c *Controller) OnFinish() {
	c.progress = 0
	c.display.SetReadout(countdown.Format(0))
	c.display.SetRunning(false)

	if c.alarm != nil {
		c.alarm.Play()
	}
	if c.notifier != nil {
		if err := c.notifier.Notify(FinishSummary, FinishBody); err != nil {
			c.logger.Warn("failed to send desktop notification", "error", err)
		}
	}
}

// Show marks the screen visible and acquires the alarm. A failure leaves
// the countdown working with a silent alarm.
func (c *Controller) Show() {
	if c.alarm == nil {
		return
	}
	if err := c.alarm.Show(); err != nil {
		c.logger.Warn("alarm unavailable", "error", err)
	}
}

// Hide marks the screen hidden and releases the alarm. The countdown keeps
// running.
func (c *Controller) Hide() {
	if c.alarm != nil {
		c.alarm.Hide()
	}
}

// Close stops the countdown and releases the alarm.
func (c *Controller) Close() {
	c.Stop()
	c.Hide()
}

// Running reports whether a countdown is in progress.
func (c *Controller) Running() bool {
	return c.engine.Running()
}

// Progress returns the fraction of the countdown shown on the readout.
func (c *Controller) Progress() float64 {
	return c.progress
}

// Engine returns the underlying engine.
func (c *Controller) Engine() *countdown.Engine {
	return c.engine
}
