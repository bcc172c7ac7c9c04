package views

import (
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jscyril/golang_video_player/api"
	"github.com/jscyril/golang_video_player/internal/ui/components"
)

// hiddenColor is what faded-out controls blend from.
const hiddenColor = "#1c1c1c"

// controlRows is the height of the control layer, kept when hidden so the
// layout does not jump.
const controlRows = 3

// PlayerView displays the media title and the overlay controls
type PlayerView struct {
	Width      int
	Title      string
	Artist     string
	Snapshot   api.PlaybackSnapshot
	Fade       components.Fade
	Fullscreen bool
	Err        error
	Accent     string

	SeekBar   components.SeekBar
	VolumeBar components.VolumeBar

	// Styles
	TitleStyle  lipgloss.Style
	ArtistStyle lipgloss.Style
	HelpStyle   lipgloss.Style
	ErrorStyle  lipgloss.Style
	BorderStyle lipgloss.Style
}

// NewPlayerView creates a new player view
func NewPlayerView(width int, accent string) PlayerView {
	seekBar := components.NewSeekBar(width - 8)
	seekBar.ShowTime = false

	return PlayerView{
		Width:     width,
		Accent:    accent,
		SeekBar:   seekBar,
		VolumeBar: components.NewVolumeBar(),
		TitleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(accent)),
		ArtistStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")),
		HelpStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
		ErrorStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),
		BorderStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2),
	}
}

// SetSnapshot updates the playback state shown
func (v *PlayerView) SetSnapshot(s api.PlaybackSnapshot) {
	v.Snapshot = s
	v.SeekBar.SetProgress(components.SeekPosition(s), s.Duration)
	v.VolumeBar.Level = components.VolumeLevel(s)
	v.VolumeBar.Muted = s.Muted
}

// SetWidth resizes the view and its bars
func (v *PlayerView) SetWidth(width int) {
	v.Width = width
	v.SeekBar.Width = width - 8
}

// Update handles messages
func (v PlayerView) Update(msg tea.Msg) (PlayerView, tea.Cmd) {
	return v, nil
}

// TimeLabel renders "current/duration".
func (v PlayerView) TimeLabel() string {
	duration := math.NaN()
	if v.Snapshot.DurationKnown {
		duration = v.Snapshot.Duration.Seconds()
	}
	return components.FormatTime(v.Snapshot.CurrentTime.Seconds()) + "/" + components.FormatTime(duration)
}

// View renders the player view
func (v PlayerView) View() string {
	var sb strings.Builder

	title := v.Title
	if title == "" {
		title = "Loading…"
	}
	sb.WriteString(v.TitleStyle.Render("▣ " + title))
	sb.WriteString("\n")
	sb.WriteString(v.ArtistStyle.Render(v.Artist))
	sb.WriteString("\n\n")

	if v.Err != nil {
		sb.WriteString(v.ErrorStyle.Render("Error: " + v.Err.Error()))
		sb.WriteString("\n")
	}

	sb.WriteString(v.controls())

	return v.BorderStyle.Width(v.Width - 4).Render(sb.String())
}

// Help renders the key legend shown under the player
func (v PlayerView) Help() string {
	return v.HelpStyle.Render(
		"[Space] Play/Pause  [←/→] Seek  [0-9] Jump  [m] Mute  [↑/↓] Volume  [f] Fullscreen  [q] Quit",
	)
}

// controls renders the faded control layer
func (v PlayerView) controls() string {
	if !v.Fade.Visible() {
		return strings.Repeat("\n", controlRows-1)
	}

	color := v.Fade.Blend(hiddenColor, v.Accent)
	dim := v.Fade.Blend(hiddenColor, "#585858")

	seek := v.SeekBar
	seek.FilledStyle = lipgloss.NewStyle().Foreground(color)
	seek.EmptyStyle = lipgloss.NewStyle().Foreground(dim)

	volume := v.VolumeBar
	volume.FilledStyle = lipgloss.NewStyle().Foreground(color)
	volume.EmptyStyle = lipgloss.NewStyle().Foreground(dim)

	text := lipgloss.NewStyle().Foreground(color)

	status := "▶"
	if v.Snapshot.Playing {
		status = "⏸"
	}
	screen := "⛶"
	if v.Fullscreen {
		screen = "🗗"
	}

	row := lipgloss.JoinHorizontal(lipgloss.Center,
		text.Render(status+"  "+v.TimeLabel()+"  "),
		volume.View(),
		text.Render("  "+screen),
	)

	return seek.View() + "\n\n" + row
}
