package ui

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jscyril/golang_video_player/api"
	"github.com/jscyril/golang_video_player/internal/control"
	"github.com/jscyril/golang_video_player/internal/media"
	"github.com/jscyril/golang_video_player/internal/state"
	"github.com/jscyril/golang_video_player/internal/ui/components"
	"github.com/jscyril/golang_video_player/internal/ui/views"
)

// fadeFrame is the interval between fade steps
const fadeFrame = 50 * time.Millisecond

// Loader prepares the media element for playback
type Loader interface {
	Load(ctx context.Context) error
}

// Options are the overlay's presentation settings
type Options struct {
	Source     string
	SeekStep   time.Duration
	VolumeStep float64
	Fade       time.Duration
	Accent     string
}

// Deps are the collaborators the overlay drives
type Deps struct {
	Loader   Loader
	Mirror   *state.Mirror
	Commands *control.Commands
	Screen   *Screen
	Feed     *Feed
	Logger   *slog.Logger
}

// Model is the main bubbletea model
type Model struct {
	// Dimensions
	width  int
	height int

	opts Options
	deps Deps

	playerView views.PlayerView
	snapshot   api.PlaybackSnapshot

	// Local presentation state
	hovered bool
	fade    components.Fade
	fading  bool

	ctx    context.Context
	cancel context.CancelFunc
}

// fadeTickMsg advances the control layer's fade
type fadeTickMsg time.Time

// loadedMsg reports the outcome of loading the media
type loadedMsg struct {
	err error
}

// metadataMsg carries the title shown above the controls
type metadataMsg struct {
	metadata media.Metadata
}

// NewModel creates a new application model
func NewModel(opts Options, deps Deps) Model {
	ctx, cancel := context.WithCancel(context.Background())
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	m := Model{
		width:  80,
		height: 24,
		opts:   opts,
		deps:   deps,
		fade:   components.NewFade(opts.Fade, fadeFrame),
		ctx:    ctx,
		cancel: cancel,
	}
	m.playerView = views.NewPlayerView(m.width, opts.Accent)
	m.playerView.Title = opts.Source
	if deps.Mirror != nil {
		m.setSnapshot(deps.Mirror.Snapshot())
	}

	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.deps.Feed.listen(m.ctx),
		m.loadCmd(),
		m.metadataCmd(),
	)
}

// loadCmd loads the media in the background
func (m Model) loadCmd() tea.Cmd {
	if m.deps.Loader == nil {
		return nil
	}
	return func() tea.Msg {
		return loadedMsg{err: m.deps.Loader.Load(m.ctx)}
	}
}

// metadataCmd reads the source's tags in the background
func (m Model) metadataCmd() tea.Cmd {
	source := m.opts.Source
	return func() tea.Msg {
		md, err := media.ReadMetadata(source)
		if err != nil {
			return nil
		}
		return metadataMsg{metadata: md}
	}
}

// fadeCmd schedules the next fade step
func fadeCmd() tea.Cmd {
	return tea.Tick(fadeFrame, func(t time.Time) tea.Msg {
		return fadeTickMsg(t)
	})
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.playerView.SetWidth(msg.Width)

	case SnapshotMsg:
		m.setSnapshot(msg.Snapshot)
		return m, m.deps.Feed.listen(m.ctx)

	case loadedMsg:
		if msg.err != nil {
			m.deps.Logger.Error("load media", "source", m.opts.Source, "error", msg.err)
			m.playerView.Err = msg.err
		}

	case metadataMsg:
		m.playerView.Title = msg.metadata.Title
		m.playerView.Artist = msg.metadata.Artist

	case fullscreenMsg:
		cmd := m.deps.Screen.apply(msg)
		m.playerView.Fullscreen = m.deps.Screen.IsFullscreen()
		return m, cmd

	case fadeTickMsg:
		m.fade = m.fade.Advance(m.hovered)
		m.playerView.Fade = m.fade
		if m.fade.Settled(m.hovered) {
			m.fading = false
			return m, nil
		}
		return m, fadeCmd()

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	c := m.deps.Commands

	switch key := msg.String(); key {
	case "q", "ctrl+c":
		if m.deps.Mirror != nil {
			m.deps.Mirror.Detach()
		}
		m.cancel()
		return m, tea.Quit

	case " ", "k":
		c.TogglePlay()
	case "left", "h":
		c.SeekBy(-m.opts.SeekStep)
	case "right", "l":
		c.SeekBy(m.opts.SeekStep)
	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9":
		c.SeekFraction(float64(key[0]-'0') / 10)
	case "m":
		c.ToggleMute()
	case "up":
		c.ChangeVolume(m.opts.VolumeStep)
	case "down":
		c.ChangeVolume(-m.opts.VolumeStep)
	case "f":
		c.ToggleFullscreen()
	}

	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	inside := m.inPlayer(msg.X, msg.Y)

	if inside && msg.Action == tea.MouseActionPress {
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.deps.Commands.TogglePlay()
		case tea.MouseButtonWheelUp:
			m.deps.Commands.ChangeVolume(m.opts.VolumeStep)
		case tea.MouseButtonWheelDown:
			m.deps.Commands.ChangeVolume(-m.opts.VolumeStep)
		}
	}

	return m.setHovered(inside)
}

// setHovered records the pointer state and starts the fade if needed
func (m Model) setHovered(hovered bool) (tea.Model, tea.Cmd) {
	m.hovered = hovered
	if m.fading || m.fade.Settled(hovered) {
		return m, nil
	}
	m.fading = true
	return m, fadeCmd()
}

// inPlayer reports whether a cell lies inside the player box
func (m Model) inPlayer(x, y int) bool {
	box := m.playerView.View()
	return x >= 0 && y >= 0 && x < lipgloss.Width(box) && y < lipgloss.Height(box)
}

func (m *Model) setSnapshot(s api.PlaybackSnapshot) {
	m.snapshot = s
	m.playerView.SetSnapshot(s)
}

// View renders the UI
func (m Model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.playerView.View(),
		m.playerView.Help(),
	)
}

// NewProgram creates the program and binds the screen to it
func NewProgram(m Model) *tea.Program {
	p := tea.NewProgram(m, tea.WithMouseAllMotion())
	if m.deps.Screen != nil {
		m.deps.Screen.Bind(p)
	}
	return p
}
