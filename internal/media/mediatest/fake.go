// Package mediatest provides an in-memory media element for tests.
package mediatest

import (
	"sync"
	"time"

	"github.com/jscyril/golang_video_player/api"
	"github.com/jscyril/golang_video_player/pkg/events"
)

var _ api.MediaElement = (*Element)(nil)

// Element is a scriptable media element. Mutators update its state and emit
// the same notifications a real element would. Play settles with PlayErr.
type Element struct {
	Bus *events.EventBus

	mu            sync.Mutex
	src           string
	duration      time.Duration
	durationKnown bool
	currentTime   time.Duration
	paused        bool
	muted         bool
	volume        float64

	// PlayErr is the rejection returned by the next Play calls, if any.
	PlayErr error
	// Calls records mutator invocations in order, e.g. "play", "seek".
	Calls []string
}

// NewElement returns a paused element at full volume with unknown duration.
func NewElement(src string) *Element {
	return &Element{
		Bus:    events.NewEventBus(),
		src:    src,
		paused: true,
		volume: 1,
	}
}

func (e *Element) record(call string) {
	e.Calls = append(e.Calls, call)
}

// CallLog returns a copy of the recorded mutator calls.
func (e *Element) CallLog() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.Calls...)
}

func (e *Element) Source() string { return e.src }

func (e *Element) Duration() (time.Duration, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.duration, e.durationKnown
}

func (e *Element) CurrentTime() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentTime
}

func (e *Element) Paused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.paused
}

func (e *Element) Muted() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.muted
}

func (e *Element) Volume() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.volume
}

func (e *Element) Play() <-chan error {
	result := make(chan error, 1)

	e.mu.Lock()
	e.record("play")
	err := e.PlayErr
	started := err == nil && e.paused
	if err == nil {
		e.paused = false
	}
	e.mu.Unlock()

	if started {
		e.Bus.Publish(api.MediaEvent{Type: api.EventPlay})
	}
	result <- err
	return result
}

func (e *Element) Pause() {
	e.mu.Lock()
	e.record("pause")
	changed := !e.paused
	e.paused = true
	e.mu.Unlock()

	if changed {
		e.Bus.Publish(api.MediaEvent{Type: api.EventPause})
	}
}

func (e *Element) SetCurrentTime(position time.Duration) {
	e.mu.Lock()
	e.record("seek")
	e.currentTime = position
	e.mu.Unlock()

	e.Bus.Publish(api.MediaEvent{Type: api.EventTimeUpdate, Payload: position})
}

func (e *Element) SetMuted(muted bool) {
	e.mu.Lock()
	e.record("mute")
	e.muted = muted
	state := api.VolumeState{Volume: e.volume, Muted: e.muted}
	e.mu.Unlock()

	e.Bus.Publish(api.MediaEvent{Type: api.EventVolumeChange, Payload: state})
}

func (e *Element) SetVolume(level float64) {
	e.mu.Lock()
	e.record("volume")
	e.volume = level
	state := api.VolumeState{Volume: e.volume, Muted: e.muted}
	e.mu.Unlock()

	e.Bus.Publish(api.MediaEvent{Type: api.EventVolumeChange, Payload: state})
}

func (e *Element) Subscribe(types ...api.EventType) api.Subscription {
	return e.Bus.Subscribe(types...)
}

// LoadMetadata makes the duration known and emits EventMetadataLoaded.
func (e *Element) LoadMetadata(duration time.Duration) {
	e.mu.Lock()
	e.duration = duration
	e.durationKnown = true
	e.mu.Unlock()

	e.Bus.Publish(api.MediaEvent{Type: api.EventMetadataLoaded, Payload: duration})
}

// Preset sets state without emitting notifications, as if it changed
// before anyone subscribed.
func (e *Element) Preset(playing bool, current time.Duration, volume float64, muted bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.paused = !playing
	e.currentTime = current
	e.volume = volume
	e.muted = muted
}

// PresetDuration sets a known duration without emitting notifications.
func (e *Element) PresetDuration(duration time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.duration = duration
	e.durationKnown = true
}
