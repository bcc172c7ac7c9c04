package components

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func plainSeekBar(width int) SeekBar {
	bar := NewSeekBar(width)
	bar.FilledStyle = lipgloss.NewStyle()
	bar.EmptyStyle = lipgloss.NewStyle()
	return bar
}

func TestSeekBarFraction(t *testing.T) {
	tests := []struct {
		name     string
		position time.Duration
		duration time.Duration
		want     float64
	}{
		{"unknown duration", 10 * time.Second, 0, 0},
		{"start", 0, time.Minute, 0},
		{"half", 30 * time.Second, time.Minute, 0.5},
		{"past end", 2 * time.Minute, time.Minute, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := NewSeekBar(40)
			bar.SetProgress(tt.position, tt.duration)
			assert.Equal(t, tt.want, bar.Fraction())
		})
	}
}

func TestSeekBarView(t *testing.T) {
	bar := plainSeekBar(34)
	bar.SetProgress(30*time.Second, 120*time.Second)

	view := bar.View()
	assert.Equal(t, 5, strings.Count(view, "█"), "a quarter of a 20 cell bar")
	assert.Equal(t, 15, strings.Count(view, "░"))
	assert.True(t, strings.HasSuffix(view, "0:30/2:00"), "got %q", view)
}

func TestSeekBarMinimumWidth(t *testing.T) {
	bar := plainSeekBar(4)
	bar.ShowTime = false

	view := bar.View()
	assert.Equal(t, 10, strings.Count(view, "░"))
}

func TestVolumeBarView(t *testing.T) {
	bar := NewVolumeBar()
	bar.FilledStyle = lipgloss.NewStyle()
	bar.EmptyStyle = lipgloss.NewStyle()

	bar.Level = 0.8
	view := bar.View()
	assert.Equal(t, 8, strings.Count(view, "●"))
	assert.Equal(t, 2, strings.Count(view, "○"))
	assert.Contains(t, view, " 80%")
	assert.Contains(t, view, "🔊")

	bar.Level, bar.Muted = 0, true
	view = bar.View()
	assert.Equal(t, 0, strings.Count(view, "●"))
	assert.Contains(t, view, "🔇")
}
