package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// VolumeBar renders a volume level as ten dots
type VolumeBar struct {
	Level       float64
	Muted       bool
	FilledStyle lipgloss.Style
	EmptyStyle  lipgloss.Style
}

// NewVolumeBar creates a volume bar
func NewVolumeBar() VolumeBar {
	return VolumeBar{
		FilledStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
		EmptyStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// View renders the volume bar
func (v VolumeBar) View() string {
	filled := int(v.Level*10 + 0.5)
	if filled < 0 {
		filled = 0
	}
	if filled > 10 {
		filled = 10
	}

	icon := "🔊"
	if v.Muted || filled == 0 {
		icon = "🔇"
	}

	return fmt.Sprintf("%s %s%s %3d%%",
		icon,
		v.FilledStyle.Render(strings.Repeat("●", filled)),
		v.EmptyStyle.Render(strings.Repeat("○", 10-filled)),
		int(v.Level*100+0.5),
	)
}
