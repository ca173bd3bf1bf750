package gui

import (
	"time"

	"github.com/diamondburned/gotk4/pkg/core/glib"
)

// TimeoutSource is a countdown.TickSource backed by a GLib timeout on the
// default main context. Callbacks run on the GTK main thread.
type TimeoutSource struct {
	handle glib.SourceHandle
	active bool
	gen    uint64
}

// Start schedules fn every interval, replacing any previous schedule.
func (s *TimeoutSource) Start(interval time.Duration, fn func()) {
	s.Stop()

	s.gen++
	gen := s.gen
	s.handle = glib.TimeoutAdd(uint(interval.Milliseconds()), func() bool {
		if s.gen != gen {
			return false
		}
		fn()
		// fn may have stopped or restarted the source.
		return s.active && s.gen == gen
	})
	s.active = true
}

// Stop removes the scheduled timeout. It is safe to call from inside the
// tick callback.
func (s *TimeoutSource) Stop() {
	if !s.active {
		return
	}
	s.active = false
	s.gen++
	glib.SourceRemove(s.handle)
}

// Active reports whether a timeout is scheduled.
func (s *TimeoutSource) Active() bool {
	return s.active
}
