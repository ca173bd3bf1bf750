package alert

import (
	"log/slog"
	"sync"
	"time"
)

// Session holds the player's resource with one sound loaded. Close
// releases it; a Session is not reusable.
type Session struct {
	player *Player
	handle Handle
	asset  string
	once   sync.Once
}

// Open acquires the player and loads asset. On load failure the resource
// is released again before returning.
func (p *Player) Open(asset Asset) (*Session, error) {
	if err := p.Acquire(); err != nil {
		return nil, err
	}

	h, err := p.Load(asset)
	if err != nil {
		p.Release()
		return nil, err
	}

	return &Session{player: p, handle: h, asset: asset.Name()}, nil
}

// Play plays the session's sound.
func (s *Session) Play() bool {
	return s.player.Play(s.handle)
}

// Handle returns the handle of the loaded sound.
func (s *Session) Handle() Handle {
	return s.handle
}

// Length returns the playing time of the loaded sound.
func (s *Session) Length() time.Duration {
	return s.player.Length(s.handle)
}

// Close releases the player. Only the first call has an effect.
func (s *Session) Close() {
	s.once.Do(s.player.Release)
}

// WithSession opens a session, runs fn, and releases the player however fn
// returns.
func WithSession(p *Player, asset Asset, fn func(*Session) error) error {
	s, err := p.Open(asset)
	if err != nil {
		return err
	}
	defer s.Close()

	return fn(s)
}

// Visibility ties a session to the visible lifetime of a screen: Show
// opens it, Hide closes it, and Play is a no-op while hidden.
type Visibility struct {
	mu      sync.Mutex
	logger  *slog.Logger
	player  *Player
	asset   Asset
	session *Session
}

// NewVisibility creates a hidden Visibility for asset.
func NewVisibility(player *Player, asset Asset, logger *slog.Logger) *Visibility {
	if logger == nil {
		logger = slog.Default()
	}
	return &Visibility{
		logger: logger,
		player: player,
		asset:  asset,
	}
}

// Show acquires the player and loads the asset. It is a no-op when already
// visible.
func (v *Visibility) Show() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.session != nil {
		return nil
	}

	s, err := v.player.Open(v.asset)
	if err != nil {
		return err
	}
	v.session = s
	v.logger.Debug("alert visible", "asset", v.asset.Name())
	return nil
}

// Hide releases the player. It is safe to call repeatedly.
func (v *Visibility) Hide() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.session == nil {
		return
	}
	v.session.Close()
	v.session = nil
	v.logger.Debug("alert hidden")
}

// Visible reports whether a session is open.
func (v *Visibility) Visible() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.session != nil
}

// Play rings the alarm if visible.
func (v *Visibility) Play() bool {
	v.mu.Lock()
	s := v.session
	v.mu.Unlock()

	if s == nil {
		v.logger.Debug("alarm suppressed, not visible")
		return false
	}
	return s.Play()
}

// Length returns the playing time of the loaded clip, or 0 while hidden.
func (v *Visibility) Length() time.Duration {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.session == nil {
		return 0
	}
	return v.session.Length()
}
