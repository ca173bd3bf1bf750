package alert

import (
	"errors"
	"sync"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

// Output is the audio device the player streams to. Close stops playback,
// and Open may be called again after Close.
type Output interface {
	Open(sampleRate beep.SampleRate, bufferSize int) error
	Play(s ...beep.Streamer)
	Clear()
	Close() error
}

// device is the raw process-wide speaker. Init succeeds at most once per
// process and the device is never torn down, only suspended.
type device interface {
	Init(sampleRate beep.SampleRate, bufferSize int) error
	Play(s ...beep.Streamer)
	Clear()
	Suspend() error
	Resume() error
}

// beepSpeaker forwards to the beep speaker package.
type beepSpeaker struct{}

func (beepSpeaker) Init(sampleRate beep.SampleRate, bufferSize int) error {
	return speaker.Init(sampleRate, bufferSize)
}

func (beepSpeaker) Play(s ...beep.Streamer) { speaker.Play(s...) }
func (beepSpeaker) Clear()                  { speaker.Clear() }
func (beepSpeaker) Suspend() error          { return speaker.Suspend() }
func (beepSpeaker) Resume() error           { return speaker.Resume() }

// ErrOutputOpen is returned by Open when the output is already open.
var ErrOutputOpen = errors.New("audio output already open")

// Speaker is the Output backed by a speaker device. The device is
// initialized on the first Open; later Opens resume it and Close suspends
// it. The format of the first Open is kept for the life of the process.
type Speaker struct {
	dev device

	mu          sync.Mutex
	once        sync.Once
	initErr     error
	open        bool
	initialized bool
}

var systemSpeaker = &Speaker{dev: beepSpeaker{}}

// SystemSpeaker returns the Output for the process-wide beep speaker.
func SystemSpeaker() *Speaker {
	return systemSpeaker
}

// Open initializes or resumes the device.
func (s *Speaker) Open(sampleRate beep.SampleRate, bufferSize int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.open {
		return ErrOutputOpen
	}

	if !s.initialized {
		s.once.Do(func() {
			s.initErr = s.dev.Init(sampleRate, bufferSize)
		})
		if s.initErr != nil {
			return s.initErr
		}
		s.initialized = true
	} else if err := s.dev.Resume(); err != nil {
		return err
	}

	s.open = true
	return nil
}

// Play starts streaming.
func (s *Speaker) Play(streamers ...beep.Streamer) {
	s.dev.Play(streamers...)
}

// Clear drops everything queued on the device.
func (s *Speaker) Clear() {
	s.dev.Clear()
}

// Close clears the queue and suspends the device.
func (s *Speaker) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return nil
	}
	s.open = false
	s.dev.Clear()
	return s.dev.Suspend()
}
