package api

import "time"

// PlaybackSnapshot is a point-in-time view of a media element's playback status.
// It is a value type: every change produces a new copy.
type PlaybackSnapshot struct {
	Playing       bool          `json:"playing"`
	CurrentTime   time.Duration `json:"current_time"`
	Duration      time.Duration `json:"duration"`
	DurationKnown bool          `json:"duration_known"`
	Muted         bool          `json:"muted"`
	Volume        float64       `json:"volume"`
}

// VolumeState is the payload of EventVolumeChange.
type VolumeState struct {
	Volume float64 `json:"volume"`
	Muted  bool    `json:"muted"`
}

// EventType identifies a media element notification.
type EventType int

const (
	EventMetadataLoaded EventType = iota
	EventTimeUpdate
	EventPlay
	EventPause
	EventVolumeChange
	EventEnded
	EventError
)

// String returns the notification name.
func (t EventType) String() string {
	switch t {
	case EventMetadataLoaded:
		return "loadedmetadata"
	case EventTimeUpdate:
		return "timeupdate"
	case EventPlay:
		return "play"
	case EventPause:
		return "pause"
	case EventVolumeChange:
		return "volumechange"
	case EventEnded:
		return "ended"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// AllEvents lists every notification an element can emit.
func AllEvents() []EventType {
	return []EventType{
		EventMetadataLoaded,
		EventTimeUpdate,
		EventPlay,
		EventPause,
		EventVolumeChange,
		EventEnded,
		EventError,
	}
}

// MediaEvent is a notification emitted by a media element.
//
// Payload depends on Type: time.Duration for EventMetadataLoaded and
// EventTimeUpdate, VolumeState for EventVolumeChange, error for EventError,
// nil otherwise.
type MediaEvent struct {
	Type    EventType
	Payload interface{}
}

// Subscription is a live set of notification registrations.
// Unsubscribe releases all of them and closes Events.
type Subscription interface {
	Events() <-chan MediaEvent
	Unsubscribe()
}

// MediaElement is the host-provided playable media object.
// It owns decode and playback state and is authoritative for it.
type MediaElement interface {
	Source() string

	Duration() (time.Duration, bool)
	CurrentTime() time.Duration
	Paused() bool
	Muted() bool
	Volume() float64

	// Play requests playback. The returned channel receives exactly one
	// value: nil when playback started, or the rejection reason.
	Play() <-chan error
	Pause()
	SetCurrentTime(position time.Duration)
	SetMuted(muted bool)
	SetVolume(level float64)

	Subscribe(types ...EventType) Subscription
}

// Surface is the visual surface media is presented on.
// Requests resolve asynchronously like MediaElement.Play.
type Surface interface {
	IsFullscreen() bool
	RequestFullscreen() <-chan error
	ExitFullscreen() <-chan error
}
