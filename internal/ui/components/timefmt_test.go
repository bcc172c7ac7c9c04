package components

import (
	"math"
	"testing"
	"time"

	"github.com/jscyril/golang_video_player/api"
)

func TestFormatTime(t *testing.T) {
	tests := []struct {
		name     string
		seconds  float64
		expected string
	}{
		{"zero seconds", 0, "0:00"},
		{"under 10 seconds", 5, "0:05"},
		{"fractional", 9.99, "0:09"},
		{"under one minute", 45, "0:45"},
		{"exactly one minute", 60, "1:00"},
		{"over one minute", 75, "1:15"},
		{"exactly 10 minutes", 600, "10:00"},
		{"over one hour", 3661, "61:01"},
		{"negative", -3, "0:00"},
		{"NaN", math.NaN(), "0:00"},
		{"positive infinity", math.Inf(1), "0:00"},
		{"negative infinity", math.Inf(-1), "0:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatTime(tt.seconds)
			if result != tt.expected {
				t.Errorf("FormatTime(%v) = %q; want %q", tt.seconds, result, tt.expected)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	if got := FormatDuration(75 * time.Second); got != "1:15" {
		t.Errorf("FormatDuration(75s) = %q; want %q", got, "1:15")
	}
	if got := FormatDuration(-time.Second); got != "0:00" {
		t.Errorf("FormatDuration(-1s) = %q; want %q", got, "0:00")
	}
}

func TestSeekPosition(t *testing.T) {
	tests := []struct {
		name string
		snap api.PlaybackSnapshot
		want time.Duration
	}{
		{"within duration", api.PlaybackSnapshot{CurrentTime: 30 * time.Second, Duration: 120 * time.Second, DurationKnown: true}, 30 * time.Second},
		{"past duration", api.PlaybackSnapshot{CurrentTime: 130 * time.Second, Duration: 120 * time.Second, DurationKnown: true}, 120 * time.Second},
		{"unknown duration", api.PlaybackSnapshot{CurrentTime: 30 * time.Second}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SeekPosition(tt.snap); got != tt.want {
				t.Errorf("SeekPosition() = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestVolumeLevel(t *testing.T) {
	if got := VolumeLevel(api.PlaybackSnapshot{Volume: 0.6}); got != 0.6 {
		t.Errorf("VolumeLevel(unmuted) = %v; want 0.6", got)
	}
	if got := VolumeLevel(api.PlaybackSnapshot{Volume: 0.6, Muted: true}); got != 0 {
		t.Errorf("VolumeLevel(muted) = %v; want 0", got)
	}
}
