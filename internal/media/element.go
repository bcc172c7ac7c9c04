package media

import (
	"context"
	"log/slog"
	"math"
	"os"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
	"github.com/jscyril/golang_video_player/api"
	playerrors "github.com/jscyril/golang_video_player/pkg/errors"
	"github.com/jscyril/golang_video_player/pkg/events"
)

// Ensure Element implements MediaElement interface at compile time
var _ api.MediaElement = (*Element)(nil)

const defaultTimeUpdateInterval = 250 * time.Millisecond

// Output is the sink an element plays into.
type Output interface {
	Init(sampleRate beep.SampleRate, bufferSize int) error
	Play(s beep.Streamer)
	Lock()
	Unlock()
	Clear()
}

// speakerOutput plays through the system audio device.
type speakerOutput struct{}

func (speakerOutput) Init(sr beep.SampleRate, bufferSize int) error { return speaker.Init(sr, bufferSize) }
func (speakerOutput) Play(s beep.Streamer)                          { speaker.Play(s) }
func (speakerOutput) Lock()                                         { speaker.Lock() }
func (speakerOutput) Unlock()                                       { speaker.Unlock() }
func (speakerOutput) Clear()                                        { speaker.Clear() }

// ElementOption configures an Element
type ElementOption func(*Element)

// WithLogger sets the element's logger.
func WithLogger(logger *slog.Logger) ElementOption {
	return func(e *Element) { e.logger = logger }
}

// WithOutput replaces the system speaker.
func WithOutput(out Output) ElementOption {
	return func(e *Element) { e.output = out }
}

// WithTimeUpdateInterval sets how often EventTimeUpdate fires while playing.
func WithTimeUpdateInterval(d time.Duration) ElementOption {
	return func(e *Element) { e.interval = d }
}

// Element is a playable media object backed by beep. It decodes the source,
// owns the playback pipeline and emits change notifications on its bus.
//
// Lock order is e.mu, then the output lock.
type Element struct {
	src      string
	bus      *events.EventBus
	output   Output
	logger   *slog.Logger
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	mu          sync.Mutex
	streamer    beep.StreamSeekCloser
	format      beep.Format
	ctrl        *beep.Ctrl
	volume      *effects.Volume
	level       float64
	muted       bool
	paused      bool
	loaded      bool
	outputReady bool
	queued      bool
	closed      bool
}

// NewElement creates an element for src. Nothing is read until Load.
func NewElement(src string, opts ...ElementOption) *Element {
	ctx, cancel := context.WithCancel(context.Background())
	e := &Element{
		src:      src,
		bus:      events.NewEventBus(),
		output:   speakerOutput{},
		logger:   slog.Default(),
		interval: defaultTimeUpdateInterval,
		ctx:      ctx,
		cancel:   cancel,
		level:    1,
		paused:   true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Source returns the source locator the element was created with.
func (e *Element) Source() string {
	return e.src
}

// Subscribe registers for the given notification types.
func (e *Element) Subscribe(types ...api.EventType) api.Subscription {
	return e.bus.Subscribe(types...)
}

// Load opens and decodes the source, then announces its duration.
func (e *Element) Load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e.mu.Lock()
	if e.loaded || e.closed {
		e.mu.Unlock()
		return nil
	}
	e.mu.Unlock()

	file, err := os.Open(e.src)
	if err != nil {
		return playerrors.NewMediaError("open", e.src, err)
	}

	streamer, format, err := DecodeAudio(file, e.src)
	if err != nil {
		file.Close()
		return playerrors.NewMediaError("decode", e.src, err)
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		streamer.Close()
		return nil
	}
	e.streamer = streamer
	e.format = format
	e.ctrl = &beep.Ctrl{Streamer: streamer, Paused: true}
	e.volume = &effects.Volume{
		Streamer: e.ctrl,
		Base:     2,
		Volume:   gain(e.level),
		Silent:   e.muted || e.level == 0,
	}
	e.loaded = true
	duration := format.SampleRate.D(streamer.Len())
	e.mu.Unlock()

	e.logger.Debug("media loaded", "source", e.src, "duration", duration, "sample_rate", int(format.SampleRate))
	e.bus.Publish(api.MediaEvent{Type: api.EventMetadataLoaded, Payload: duration})

	go e.trackPosition()
	return nil
}

// trackPosition emits time updates periodically while playing
func (e *Element) trackPosition() {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-e.ctx.Done():
			return
		case <-ticker.C:
			if e.Paused() {
				continue
			}
			e.bus.Publish(api.MediaEvent{Type: api.EventTimeUpdate, Payload: e.CurrentTime()})
		}
	}
}

// Duration returns the media length once metadata is loaded.
func (e *Element) Duration() (time.Duration, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.loaded {
		return 0, false
	}
	return e.format.SampleRate.D(e.streamer.Len()), true
}

// CurrentTime returns the playback position.
func (e *Element) CurrentTime() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.loaded {
		return 0
	}
	e.output.Lock()
	pos := e.streamer.Position()
	e.output.Unlock()
	return e.format.SampleRate.D(pos)
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
	return e.level
}

// Play requests playback without blocking. Playback that reached the end
// restarts from the beginning.
func (e *Element) Play() <-chan error {
	result := make(chan error, 1)
	go func() {
		result <- e.play()
	}()
	return result
}

func (e *Element) play() error {
	e.mu.Lock()
	if e.closed || !e.loaded {
		e.mu.Unlock()
		return playerrors.Rejected(playerrors.ErrPlayRejected, playerrors.ErrNotLoaded)
	}

	if !e.outputReady {
		sr := e.format.SampleRate
		if err := e.output.Init(sr, sr.N(time.Second/10)); err != nil {
			e.mu.Unlock()
			return playerrors.Rejected(playerrors.ErrPlayRejected, playerrors.NewMediaError("speaker_init", e.src, err))
		}
		e.outputReady = true
	}

	e.output.Lock()
	if e.streamer.Position() >= e.streamer.Len() {
		if err := e.streamer.Seek(0); err != nil {
			e.output.Unlock()
			e.mu.Unlock()
			return playerrors.Rejected(playerrors.ErrPlayRejected, playerrors.NewMediaError("rewind", e.src, err))
		}
	}
	e.ctrl.Paused = false
	e.output.Unlock()

	if !e.queued {
		e.output.Play(beep.Seq(e.volume, beep.Callback(e.streamEnded)))
		e.queued = true
	}

	wasPaused := e.paused
	e.paused = false
	e.mu.Unlock()

	if wasPaused {
		e.bus.Publish(api.MediaEvent{Type: api.EventPlay})
	}
	return nil
}

// streamEnded runs on the output goroutine with the output lock held, so the
// bookkeeping happens elsewhere.
func (e *Element) streamEnded() {
	go e.finish()
}

func (e *Element) finish() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.queued = false
	e.output.Lock()
	e.ctrl.Paused = true
	e.output.Unlock()
	wasPaused := e.paused
	e.paused = true
	e.mu.Unlock()

	if !wasPaused {
		e.bus.Publish(api.MediaEvent{Type: api.EventPause})
	}
	e.bus.Publish(api.MediaEvent{Type: api.EventEnded})
}

// Pause halts playback, keeping the position.
func (e *Element) Pause() {
	e.mu.Lock()
	if e.paused {
		e.mu.Unlock()
		return
	}
	if e.ctrl != nil {
		e.output.Lock()
		e.ctrl.Paused = true
		e.output.Unlock()
	}
	e.paused = true
	e.mu.Unlock()

	e.bus.Publish(api.MediaEvent{Type: api.EventPause})
}

// SetCurrentTime moves the playback position, saturating at the media bounds.
// It is ignored until metadata is loaded.
func (e *Element) SetCurrentTime(position time.Duration) {
	e.mu.Lock()
	if !e.loaded || e.closed {
		e.mu.Unlock()
		return
	}

	sr := e.format.SampleRate
	n := sr.N(position)
	if n < 0 {
		n = 0
	}
	if n > e.streamer.Len() {
		n = e.streamer.Len()
	}

	e.output.Lock()
	err := e.streamer.Seek(n)
	e.output.Unlock()
	e.mu.Unlock()

	if err != nil {
		e.logger.Warn("seek failed", "source", e.src, "position", position, "error", err)
		return
	}
	e.bus.Publish(api.MediaEvent{Type: api.EventTimeUpdate, Payload: sr.D(n)})
}

// SetMuted sets the mute flag.
func (e *Element) SetMuted(muted bool) {
	e.mu.Lock()
	if e.muted == muted {
		e.mu.Unlock()
		return
	}
	e.muted = muted
	e.applyVolume()
	state := api.VolumeState{Volume: e.level, Muted: e.muted}
	e.mu.Unlock()

	e.bus.Publish(api.MediaEvent{Type: api.EventVolumeChange, Payload: state})
}

// SetVolume sets the volume level, saturating at 0 and 1.
func (e *Element) SetVolume(level float64) {
	level = math.Max(0, math.Min(1, level))

	e.mu.Lock()
	if e.level == level {
		e.mu.Unlock()
		return
	}
	e.level = level
	e.applyVolume()
	state := api.VolumeState{Volume: e.level, Muted: e.muted}
	e.mu.Unlock()

	e.bus.Publish(api.MediaEvent{Type: api.EventVolumeChange, Payload: state})
}

// applyVolume pushes level and mute into the pipeline. Caller holds e.mu.
func (e *Element) applyVolume() {
	if e.volume == nil {
		return
	}
	e.output.Lock()
	e.volume.Volume = gain(e.level)
	e.volume.Silent = e.muted || e.level == 0
	e.output.Unlock()
}

// Close stops playback and releases the source. Subscriptions are closed.
func (e *Element) Close() error {
	e.cancel()

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	if e.queued {
		e.output.Clear()
		e.queued = false
	}
	var err error
	if e.streamer != nil {
		err = e.streamer.Close()
	}
	e.mu.Unlock()

	e.bus.Close()
	return err
}

// gain maps a linear level in (0,1] to beep's base-2 volume scale.
func gain(level float64) float64 {
	if level <= 0 {
		return 0
	}
	return math.Log2(level)
}
