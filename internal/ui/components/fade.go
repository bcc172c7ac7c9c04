package components

import (
	"time"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Fade ramps the control layer's opacity toward the hover state in fixed
// steps, one per frame.
type Fade struct {
	Level float64
	Step  float64
}

// NewFade creates a hidden fade that takes duration to complete, advancing
// once per frame. A non-positive duration switches instantly.
func NewFade(duration, frame time.Duration) Fade {
	if duration <= 0 || frame <= 0 || frame >= duration {
		return Fade{Step: 1}
	}
	return Fade{Step: float64(frame) / float64(duration)}
}

// Advance moves one step toward fully shown (hovered) or fully hidden.
func (f Fade) Advance(hovered bool) Fade {
	if hovered {
		f.Level += f.Step
	} else {
		f.Level -= f.Step
	}
	if f.Level > 1 {
		f.Level = 1
	}
	if f.Level < 0 {
		f.Level = 0
	}
	return f
}

// Settled reports whether the fade has reached the hover state.
func (f Fade) Settled(hovered bool) bool {
	if hovered {
		return f.Level >= 1
	}
	return f.Level <= 0
}

// Visible reports whether any of the layer shows.
func (f Fade) Visible() bool {
	return f.Level > 0
}

// Blend returns the color at the current level between hidden and shown.
// Colors must be hex; an invalid one yields shown unchanged.
func (f Fade) Blend(hidden, shown string) lipgloss.Color {
	from, err := colorful.Hex(hidden)
	if err != nil {
		return lipgloss.Color(shown)
	}
	to, err := colorful.Hex(shown)
	if err != nil {
		return lipgloss.Color(shown)
	}
	return lipgloss.Color(from.BlendLab(to, f.Level).Clamped().Hex())
}
