package alert

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
)

// Playback pool parameters.
const (
	// DefaultSampleRate is the speaker rate; clips at other rates are resampled.
	DefaultSampleRate = beep.SampleRate(44100)

	// DefaultLatency sizes the speaker buffer.
	DefaultLatency = 100 * time.Millisecond

	// MaxStreams is the number of sounds that may play at once. A new sound
	// preempts the one playing.
	MaxStreams = 1

	// Usage is the audio routing class of the pool.
	Usage = "alarm"
)

// ErrNotAcquired is returned by Load when the playback resource is not held.
var ErrNotAcquired = errors.New("playback resource not acquired")

// Handle identifies a loaded sound. The zero Handle is never valid, and
// handles are not reused across acquisitions.
type Handle uint64

// Player is a single-stream sound pool. The resource must be acquired
// before sounds are loaded and is released to free the audio device.
type Player struct {
	mu     sync.Mutex
	logger *slog.Logger
	output Output

	sampleRate beep.SampleRate
	latency    time.Duration

	acquired bool
	sounds   map[Handle]*beep.Buffer
	next     Handle
}

// NewPlayer creates a player writing to output. A nil output uses the
// system speaker.
func NewPlayer(output Output, logger *slog.Logger) *Player {
	if output == nil {
		output = SystemSpeaker()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Player{
		logger:     logger,
		output:     output,
		sampleRate: DefaultSampleRate,
		latency:    DefaultLatency,
	}
}

// Acquire allocates the playback resource. It is a no-op when already held.
func (p *Player) Acquire() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.acquired {
		return nil
	}

	bufferSize := p.sampleRate.N(p.latency)
	if err := p.output.Open(p.sampleRate, bufferSize); err != nil {
		return fmt.Errorf("failed to open speaker: %w", err)
	}

	p.acquired = true
	p.sounds = make(map[Handle]*beep.Buffer)
	p.logger.Debug("playback resource acquired",
		"sample_rate", p.sampleRate, "streams", MaxStreams, "usage", Usage)
	return nil
}

// Load decodes asset and returns a handle for Play.
func (p *Player) Load(asset Asset) (Handle, error) {
	if !p.Acquired() {
		return 0, ErrNotAcquired
	}

	buffer, err := asset.Buffer()
	if err != nil {
		return 0, fmt.Errorf("failed to load %s: %w", asset.Name(), err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// Released while decoding.
	if !p.acquired {
		return 0, ErrNotAcquired
	}

	p.next++
	h := p.next
	p.sounds[h] = buffer

	p.logger.Debug("loaded sound", "asset", asset.Name(), "handle", h,
		"length", buffer.Format().SampleRate.D(buffer.Len()))
	return h, nil
}

// Play plays the sound once at full volume and normal speed, cutting off
// anything already playing. It is a silent no-op, returning false, when the
// resource is not held or the handle is unknown.
func (p *Player) Play(h Handle) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.acquired {
		p.logger.Debug("play ignored, playback resource not acquired", "handle", h)
		return false
	}
	buffer, ok := p.sounds[h]
	if !ok {
		p.logger.Debug("play ignored, unknown handle", "handle", h)
		return false
	}

	var streamer beep.Streamer = buffer.Streamer(0, buffer.Len())
	if buffer.Format().SampleRate != p.sampleRate {
		streamer = beep.Resample(4, buffer.Format().SampleRate, p.sampleRate, streamer)
	}

	p.output.Clear()
	p.output.Play(streamer)
	return true
}

// Length returns the playing time of a loaded sound, or 0 if the handle is
// not valid.
func (p *Player) Length(h Handle) time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	buffer, ok := p.sounds[h]
	if !ok {
		return 0
	}
	return buffer.Format().SampleRate.D(buffer.Len())
}

// Release stops playback and frees the resource. All handles become invalid.
func (p *Player) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.acquired {
		return
	}

	if err := p.output.Close(); err != nil {
		p.logger.Warn("failed to suspend speaker", "error", err)
	}
	p.acquired = false
	p.sounds = nil
	p.logger.Debug("playback resource released")
}

// Acquired reports whether the resource is held.
func (p *Player) Acquired() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.acquired
}
