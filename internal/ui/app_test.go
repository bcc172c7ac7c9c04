package ui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jscyril/golang_video_player/api"
	"github.com/jscyril/golang_video_player/internal/control"
	"github.com/jscyril/golang_video_player/internal/media"
	"github.com/jscyril/golang_video_player/internal/media/mediatest"
	"github.com/jscyril/golang_video_player/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loaderFunc func(ctx context.Context) error

func (f loaderFunc) Load(ctx context.Context) error { return f(ctx) }

type fixture struct {
	el     *mediatest.Element
	mirror *state.Mirror
	screen *Screen
	sent   chanSender
	model  Model
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	el := mediatest.NewElement("clip.mp3")
	el.PresetDuration(120 * time.Second)
	el.Preset(false, 30*time.Second, 0.5, false)

	ref := media.NewRef()
	ref.Set(el)

	feed := NewFeed()
	mirror := state.NewMirror(ref, state.WithOnChange(feed.Push))
	require.True(t, mirror.Attach())
	t.Cleanup(mirror.Detach)

	screen, sent := terminalScreen(true)
	commands := control.New(ref, screen)
	t.Cleanup(commands.Wait)
	t.Cleanup(screen.Close)

	model := NewModel(Options{
		Source:     "clip.mp3",
		SeekStep:   5 * time.Second,
		VolumeStep: 0.1,
		Fade:       200 * time.Millisecond,
		Accent:     "#ff87d7",
	}, Deps{
		Loader:   loaderFunc(func(context.Context) error { return nil }),
		Mirror:   mirror,
		Commands: commands,
		Screen:   screen,
		Feed:     feed,
	})

	return &fixture{el: el, mirror: mirror, screen: screen, sent: sent, model: model}
}

func (f *fixture) update(msg tea.Msg) tea.Cmd {
	next, cmd := f.model.Update(msg)
	f.model = next.(Model)
	return cmd
}

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModelShowsInitialSnapshot(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, 30*time.Second, f.model.snapshot.CurrentTime)
	assert.Equal(t, "0:30/2:00", f.model.playerView.TimeLabel())
}

func TestKeysDriveCommands(t *testing.T) {
	f := newFixture(t)

	f.update(key(" "))
	assert.False(t, f.el.Paused())

	f.update(key("right"))
	assert.Equal(t, 35*time.Second, f.el.CurrentTime())

	f.update(key("left"))
	f.update(key("left"))
	assert.Equal(t, 25*time.Second, f.el.CurrentTime())

	f.update(key("5"))
	assert.Equal(t, 60*time.Second, f.el.CurrentTime())

	f.update(key("m"))
	assert.True(t, f.el.Muted())

	f.update(key("up"))
	assert.InDelta(t, 0.6, f.el.Volume(), 1e-9)
	assert.False(t, f.el.Muted(), "raising the volume unmutes")

	f.update(key("down"))
	assert.InDelta(t, 0.5, f.el.Volume(), 1e-9)
}

func TestSnapshotMsgUpdatesView(t *testing.T) {
	f := newFixture(t)

	cmd := f.update(SnapshotMsg{Snapshot: api.PlaybackSnapshot{
		Playing:       true,
		CurrentTime:   75 * time.Second,
		Duration:      120 * time.Second,
		DurationKnown: true,
		Volume:        0.8,
		Muted:         true,
	}})
	assert.NotNil(t, cmd, "keeps listening for snapshots")

	assert.Equal(t, "1:15/2:00", f.model.playerView.TimeLabel())
	assert.Equal(t, 0.0, f.model.playerView.VolumeBar.Level, "muted shows zero")
	assert.Equal(t, 75*time.Second, f.model.playerView.SeekBar.Position)
}

func TestUnknownDurationLabel(t *testing.T) {
	f := newFixture(t)

	f.update(SnapshotMsg{Snapshot: api.PlaybackSnapshot{CurrentTime: 3 * time.Second}})
	assert.Equal(t, "0:03/0:00", f.model.playerView.TimeLabel())
	assert.Equal(t, time.Duration(0), f.model.playerView.SeekBar.Position)
}

func TestMirrorFeedReachesModel(t *testing.T) {
	f := newFixture(t)
	listen := f.model.deps.Feed.listen(context.Background())

	f.el.SetCurrentTime(90 * time.Second)

	require.Eventually(t, func() bool {
		return f.mirror.Snapshot().CurrentTime == 90*time.Second
	}, time.Second, 5*time.Millisecond)

	var msg tea.Msg
	for {
		msg = listen()
		if s, ok := msg.(SnapshotMsg); ok && s.Snapshot.CurrentTime == 90*time.Second {
			break
		}
	}
	f.update(msg)
	assert.Equal(t, "1:30/2:00", f.model.playerView.TimeLabel())
}

func TestHoverFadesControls(t *testing.T) {
	f := newFixture(t)
	assert.False(t, f.model.playerView.Fade.Visible())

	cmd := f.update(tea.MouseMsg{X: 2, Y: 2, Action: tea.MouseActionMotion})
	require.NotNil(t, cmd, "hover starts the fade")
	assert.True(t, f.model.hovered)

	// A second motion while fading schedules nothing new.
	assert.Nil(t, f.update(tea.MouseMsg{X: 3, Y: 2, Action: tea.MouseActionMotion}))

	for i := 0; i < 3; i++ {
		require.NotNil(t, f.update(fadeTickMsg(time.Now())))
	}
	assert.Nil(t, f.update(fadeTickMsg(time.Now())), "fade settles after four frames")
	assert.Equal(t, 1.0, f.model.playerView.Fade.Level)
	assert.Contains(t, f.model.View(), "0:30/2:00")

	cmd = f.update(tea.MouseMsg{X: 500, Y: 500, Action: tea.MouseActionMotion})
	require.NotNil(t, cmd)
	assert.False(t, f.model.hovered)
	for i := 0; i < 4; i++ {
		f.update(fadeTickMsg(time.Now()))
	}
	assert.False(t, f.model.playerView.Fade.Visible())
	assert.NotContains(t, f.model.View(), "0:30/2:00")
}

func TestMouseClickAndWheel(t *testing.T) {
	f := newFixture(t)

	f.update(tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.False(t, f.el.Paused())

	f.update(tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	assert.InDelta(t, 0.6, f.el.Volume(), 1e-9)

	f.update(tea.MouseMsg{X: 500, Y: 500, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	assert.InDelta(t, 0.6, f.el.Volume(), 1e-9, "wheel outside the player is ignored")
}

func TestFullscreenKeyRoundTrip(t *testing.T) {
	f := newFixture(t)

	f.update(key("f"))
	msg := receive(t, f.sent)

	cmd := f.update(msg)
	assert.NotNil(t, cmd, "switches to the alternate screen")
	assert.True(t, f.screen.IsFullscreen())
	assert.True(t, f.model.playerView.Fullscreen)

	f.update(key("f"))
	f.update(receive(t, f.sent))
	assert.False(t, f.screen.IsFullscreen())
}

func TestLoadErrorIsShown(t *testing.T) {
	f := newFixture(t)

	f.update(loadedMsg{err: errors.New("decode failed")})
	assert.Contains(t, f.model.View(), "decode failed")
}

func TestMetadataReplacesTitle(t *testing.T) {
	f := newFixture(t)

	f.update(metadataMsg{metadata: media.Metadata{Title: "Big Buck Bunny", Artist: "Blender"}})
	view := f.model.View()
	assert.Contains(t, view, "Big Buck Bunny")
	assert.Contains(t, view, "Blender")
}

func TestQuitDetachesMirror(t *testing.T) {
	f := newFixture(t)

	cmd := f.update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.False(t, f.mirror.Attached())

	last := f.mirror.Snapshot()
	f.el.SetCurrentTime(100 * time.Second)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, last, f.mirror.Snapshot())
}

func TestViewIncludesHelp(t *testing.T) {
	f := newFixture(t)
	assert.True(t, strings.Contains(f.model.View(), "[f] Fullscreen"))
}
