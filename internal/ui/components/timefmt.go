package components

import (
	"fmt"
	"math"
	"time"

	"github.com/jscyril/golang_video_player/api"
)

// FormatTime formats seconds as M:SS. Non-finite or negative input is 0:00.
func FormatTime(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return "0:00"
	}
	total := int64(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// FormatDuration formats a duration as M:SS
func FormatDuration(d time.Duration) string {
	return FormatTime(d.Seconds())
}

// SeekPosition is where the seek control sits: the current time, never past
// the duration (0 while the duration is unknown).
func SeekPosition(s api.PlaybackSnapshot) time.Duration {
	limit := time.Duration(0)
	if s.DurationKnown {
		limit = s.Duration
	}
	if s.CurrentTime < limit {
		return s.CurrentTime
	}
	return limit
}

// VolumeLevel is the level the volume control shows.
func VolumeLevel(s api.PlaybackSnapshot) float64 {
	if s.Muted {
		return 0
	}
	return s.Volume
}
