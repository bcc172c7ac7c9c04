package state

import (
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/jscyril/golang_video_player/api"
	"github.com/jscyril/golang_video_player/internal/media"
)

// mirroredEvents are the notifications that feed the snapshot.
var mirroredEvents = []api.EventType{
	api.EventMetadataLoaded,
	api.EventTimeUpdate,
	api.EventPlay,
	api.EventPause,
	api.EventVolumeChange,
}

// Option configures a Mirror
type Option func(*Mirror)

// WithLogger sets the mirror's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Mirror) { m.logger = logger }
}

// WithOnChange registers fn to receive every new snapshot. fn runs on the
// mirror's delivery goroutine and must not call Detach.
func WithOnChange(fn func(api.PlaybackSnapshot)) Option {
	return func(m *Mirror) { m.onChange = fn }
}

// Mirror keeps a PlaybackSnapshot in sync with the element held by a Ref.
type Mirror struct {
	ref      *media.Ref
	logger   *slog.Logger
	onChange func(api.PlaybackSnapshot)

	mu       sync.RWMutex
	snapshot api.PlaybackSnapshot
	attached bool
	sub      api.Subscription
	done     chan struct{}
}

// NewMirror creates a detached mirror reading from ref.
func NewMirror(ref *media.Ref, opts ...Option) *Mirror {
	m := &Mirror{
		ref:    ref,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Attach subscribes to the element currently held by the ref and takes an
// initial reading. It reports false, doing nothing, when the ref is empty.
// A previous attachment is released first.
func (m *Mirror) Attach() bool {
	el, ok := m.ref.Load()
	if !ok {
		return false
	}
	m.Detach()

	// Subscribe before reading so nothing between the two is lost.
	sub := el.Subscribe(mirroredEvents...)
	initial := read(el)

	m.mu.Lock()
	m.snapshot = initial
	m.attached = true
	m.sub = sub
	m.done = make(chan struct{})
	done := m.done
	m.mu.Unlock()

	m.logger.Debug("mirror attached", "source", el.Source())
	m.publish(initial)

	go m.pump(sub, done)
	return true
}

// Detach releases the subscription. No snapshot change happens after it
// returns. Calling Detach on a detached mirror does nothing.
func (m *Mirror) Detach() {
	m.mu.Lock()
	if !m.attached {
		m.mu.Unlock()
		return
	}
	m.attached = false
	sub, done := m.sub, m.done
	m.sub, m.done = nil, nil
	m.mu.Unlock()

	sub.Unsubscribe()
	<-done
	m.logger.Debug("mirror detached")
}

// Attached reports whether the mirror is receiving notifications.
func (m *Mirror) Attached() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.attached
}

// Snapshot returns the last published snapshot.
func (m *Mirror) Snapshot() api.PlaybackSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}

func (m *Mirror) pump(sub api.Subscription, done chan struct{}) {
	defer close(done)

	for ev := range sub.Events() {
		m.mu.Lock()
		if !m.attached || m.sub != sub {
			m.mu.Unlock()
			continue
		}
		next, ok := apply(m.snapshot, ev)
		if !ok {
			m.mu.Unlock()
			m.logger.Debug("ignoring notification", "event", ev.Type.String(), "payload", ev.Payload)
			continue
		}
		m.snapshot = next
		m.mu.Unlock()

		m.publish(next)
	}
}

func (m *Mirror) publish(s api.PlaybackSnapshot) {
	if m.onChange != nil {
		m.onChange(s)
	}
}

// read takes a full reading of el.
func read(el api.MediaElement) api.PlaybackSnapshot {
	duration, known := el.Duration()
	return api.PlaybackSnapshot{
		Playing:       !el.Paused(),
		CurrentTime:   nonNegative(el.CurrentTime()),
		Duration:      nonNegative(duration),
		DurationKnown: known,
		Muted:         el.Muted(),
		Volume:        clampVolume(el.Volume()),
	}
}

// apply merges a single notification into s, touching only the fields that
// notification reports.
func apply(s api.PlaybackSnapshot, ev api.MediaEvent) (api.PlaybackSnapshot, bool) {
	switch ev.Type {
	case api.EventMetadataLoaded:
		d, ok := ev.Payload.(time.Duration)
		if !ok {
			return s, false
		}
		s.Duration = nonNegative(d)
		s.DurationKnown = true
	case api.EventTimeUpdate:
		t, ok := ev.Payload.(time.Duration)
		if !ok {
			return s, false
		}
		s.CurrentTime = nonNegative(t)
	case api.EventPlay:
		s.Playing = true
	case api.EventPause:
		s.Playing = false
	case api.EventVolumeChange:
		v, ok := ev.Payload.(api.VolumeState)
		if !ok {
			return s, false
		}
		s.Volume = clampVolume(v.Volume)
		s.Muted = v.Muted
	default:
		return s, false
	}
	return s, true
}

func clampVolume(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}

func nonNegative(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}
