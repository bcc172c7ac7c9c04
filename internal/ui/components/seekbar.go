package components

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SeekBar renders playback position against duration
type SeekBar struct {
	Width       int
	Position    time.Duration
	Duration    time.Duration
	BarChar     string
	EmptyChar   string
	ShowTime    bool
	Style       lipgloss.Style
	FilledStyle lipgloss.Style
	EmptyStyle  lipgloss.Style
}

// NewSeekBar creates a new seek bar
func NewSeekBar(width int) SeekBar {
	return SeekBar{
		Width:       width,
		BarChar:     "█",
		EmptyChar:   "░",
		ShowTime:    true,
		Style:       lipgloss.NewStyle(),
		FilledStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
		EmptyStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// Update handles messages for the seek bar
func (p SeekBar) Update(msg tea.Msg) (SeekBar, tea.Cmd) {
	return p, nil
}

// SetProgress sets the position and duration
func (p *SeekBar) SetProgress(position, duration time.Duration) {
	p.Position = position
	p.Duration = duration
}

// Fraction is the filled share of the bar in [0,1].
func (p SeekBar) Fraction() float64 {
	if p.Duration <= 0 || p.Position <= 0 {
		return 0
	}
	if p.Position >= p.Duration {
		return 1
	}
	return float64(p.Position) / float64(p.Duration)
}

// View renders the seek bar
func (p SeekBar) View() string {
	var sb strings.Builder

	// Leave room for "MMM:SS/MMM:SS"
	barWidth := p.Width
	if p.ShowTime {
		barWidth -= 14
	}
	if barWidth < 10 {
		barWidth = 10
	}

	filled := int(float64(barWidth) * p.Fraction())
	empty := barWidth - filled

	sb.WriteString(p.FilledStyle.Render(strings.Repeat(p.BarChar, filled)))
	sb.WriteString(p.EmptyStyle.Render(strings.Repeat(p.EmptyChar, empty)))

	if p.ShowTime {
		sb.WriteString(" ")
		sb.WriteString(FormatDuration(p.Position))
		sb.WriteString("/")
		sb.WriteString(FormatDuration(p.Duration))
	}

	return p.Style.Render(sb.String())
}
