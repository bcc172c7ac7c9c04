package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jscyril/golang_video_player/api"
)

// SnapshotMsg delivers a new playback snapshot to the model
type SnapshotMsg struct {
	Snapshot api.PlaybackSnapshot
}

// Feed hands snapshots from the mirror to the program. It holds only the
// latest one, so a slow UI skips intermediate states instead of blocking.
type Feed struct {
	ch chan api.PlaybackSnapshot
}

// NewFeed creates an empty feed
func NewFeed() *Feed {
	return &Feed{ch: make(chan api.PlaybackSnapshot, 1)}
}

// Push replaces any undelivered snapshot with s. It never blocks.
func (f *Feed) Push(s api.PlaybackSnapshot) {
	for {
		select {
		case f.ch <- s:
			return
		default:
		}
		select {
		case <-f.ch:
		default:
		}
	}
}

// listen waits for the next snapshot
func (f *Feed) listen(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		select {
		case s := <-f.ch:
			return SnapshotMsg{Snapshot: s}
		case <-ctx.Done():
			return nil
		}
	}
}
