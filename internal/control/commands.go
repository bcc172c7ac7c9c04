package control

import (
	"errors"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/jscyril/golang_video_player/api"
	"github.com/jscyril/golang_video_player/internal/media"
	playerrors "github.com/jscyril/golang_video_player/pkg/errors"
)

// Option configures Commands
type Option func(*Commands)

// WithLogger sets where rejected requests are reported.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Commands) { c.logger = logger }
}

// Commands translates user intents into mutations of the element held by a
// Ref. Every command is a no-op while the Ref is empty.
//
// Play and fullscreen requests are not awaited; their outcome is only logged.
// Concurrent toggles are not de-duplicated.
type Commands struct {
	ref     *media.Ref
	surface api.Surface
	logger  *slog.Logger
	pending sync.WaitGroup
}

// New creates the command surface. surface may be nil, in which case
// fullscreen toggling does nothing.
func New(ref *media.Ref, surface api.Surface, opts ...Option) *Commands {
	c := &Commands{
		ref:     ref,
		surface: surface,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TogglePlay requests play when paused and pauses when playing.
func (c *Commands) TogglePlay() {
	el, ok := c.ref.Load()
	if !ok {
		return
	}

	if el.Paused() {
		c.observe("play", el.Source(), playerrors.ErrPlayRejected, el.Play())
		return
	}
	el.Pause()
}

// SeekTo moves playback to t, saturating at 0 and the duration.
// With an unknown duration the target is 0.
func (c *Commands) SeekTo(t time.Duration) {
	el, ok := c.ref.Load()
	if !ok {
		return
	}

	duration, known := el.Duration()
	if !known {
		duration = 0
	}
	el.SetCurrentTime(clampDuration(t, 0, duration))
}

// SeekBy moves playback by delta from the current position.
func (c *Commands) SeekBy(delta time.Duration) {
	el, ok := c.ref.Load()
	if !ok {
		return
	}
	c.SeekTo(el.CurrentTime() + delta)
}

// SeekFraction moves playback to fraction f of the duration.
func (c *Commands) SeekFraction(f float64) {
	el, ok := c.ref.Load()
	if !ok {
		return
	}

	duration, _ := el.Duration()
	f = clamp(f, 0, 1)
	c.SeekTo(time.Duration(math.Round(f * float64(duration))))
}

// ToggleMute flips the mute flag.
func (c *Commands) ToggleMute() {
	el, ok := c.ref.Load()
	if !ok {
		return
	}
	el.SetMuted(!el.Muted())
}

// SetVolume sets the level, saturating at 0 and 1. Any audible level also
// clears mute.
func (c *Commands) SetVolume(v float64) {
	el, ok := c.ref.Load()
	if !ok {
		return
	}

	v = clamp(v, 0, 1)
	el.SetVolume(v)
	if v > 0 {
		el.SetMuted(false)
	}
}

// ChangeVolume adjusts the level by delta.
func (c *Commands) ChangeVolume(delta float64) {
	el, ok := c.ref.Load()
	if !ok {
		return
	}
	c.SetVolume(el.Volume() + delta)
}

// ToggleFullscreen leaves fullscreen when in it, otherwise asks the surface
// to enter it.
func (c *Commands) ToggleFullscreen() {
	el, ok := c.ref.Load()
	if !ok || c.surface == nil {
		return
	}

	if c.surface.IsFullscreen() {
		c.observe("exit_fullscreen", el.Source(), playerrors.ErrFullscreenRejected, c.surface.ExitFullscreen())
		return
	}
	c.observe("request_fullscreen", el.Source(), playerrors.ErrFullscreenRejected, c.surface.RequestFullscreen())
}

// Wait blocks until every outstanding request has settled and been logged.
func (c *Commands) Wait() {
	c.pending.Wait()
}

// observe logs the outcome of an asynchronous request without blocking.
func (c *Commands) observe(op, source string, kind error, result <-chan error) {
	c.pending.Add(1)
	go func() {
		defer c.pending.Done()

		err, ok := <-result
		if !ok || err == nil {
			return
		}
		if !errors.Is(err, kind) {
			err = playerrors.Rejected(kind, err)
		}
		c.logger.Warn("request rejected", "op", op, "source", source, "error", err)
	}()
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

func clampDuration(t, lo, hi time.Duration) time.Duration {
	if t < lo {
		return lo
	}
	if t > hi {
		return hi
	}
	return t
}
