package components

import (
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestFadeRampsInFixedSteps(t *testing.T) {
	f := NewFade(200*time.Millisecond, 50*time.Millisecond)
	assert.False(t, f.Visible())
	assert.True(t, f.Settled(false))

	for i := 1; i <= 4; i++ {
		assert.False(t, f.Settled(true), "step %d", i)
		f = f.Advance(true)
		assert.InDelta(t, float64(i)*0.25, f.Level, 1e-9)
	}
	assert.True(t, f.Settled(true))

	f = f.Advance(true)
	assert.Equal(t, 1.0, f.Level, "level saturates")

	for i := 0; i < 4; i++ {
		f = f.Advance(false)
	}
	assert.True(t, f.Settled(false))
	assert.False(t, f.Visible())
}

func TestFadeInstant(t *testing.T) {
	f := NewFade(0, 50*time.Millisecond)
	f = f.Advance(true)
	assert.True(t, f.Settled(true))
}

func TestFadeBlend(t *testing.T) {
	f := Fade{Level: 0}
	assert.Equal(t, lipgloss.Color("#000000"), f.Blend("#000000", "#ffffff"))

	f.Level = 1
	assert.Equal(t, lipgloss.Color("#ffffff"), f.Blend("#000000", "#ffffff"))

	assert.Equal(t, lipgloss.Color("212"), f.Blend("not-a-color", "212"))
}
