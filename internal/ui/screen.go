package ui

import (
	"errors"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jscyril/golang_video_player/api"
	playerrors "github.com/jscyril/golang_video_player/pkg/errors"
	"github.com/mattn/go-isatty"
)

// Ensure Screen implements Surface interface at compile time
var _ api.Surface = (*Screen)(nil)

var (
	errNoProgram   = errors.New("no program bound to the screen")
	errNotTerminal = errors.New("output is not a terminal")
	errClosed      = errors.New("screen closed")
)

// sender delivers messages to a running program.
type sender interface {
	Send(msg tea.Msg)
}

// fullscreenMsg carries a fullscreen request onto the program's loop.
type fullscreenMsg struct {
	enter  bool
	result chan error
}

// Screen is the terminal as a visual surface. Fullscreen is the terminal's
// alternate screen; switching happens on the program's loop.
type Screen struct {
	isTerminal func() bool

	mu         sync.Mutex
	program    sender
	fullscreen bool
	closed     bool
	pending    map[chan error]struct{}
}

// NewScreen creates an unbound screen for standard output.
func NewScreen() *Screen {
	return &Screen{
		isTerminal: func() bool {
			fd := os.Stdout.Fd()
			return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
		},
		pending: make(map[chan error]struct{}),
	}
}

// Bind attaches the program that owns the terminal.
func (s *Screen) Bind(p sender) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.program = p
}

func (s *Screen) IsFullscreen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fullscreen
}

func (s *Screen) RequestFullscreen() <-chan error {
	return s.request(true)
}

func (s *Screen) ExitFullscreen() <-chan error {
	return s.request(false)
}

func (s *Screen) request(enter bool) <-chan error {
	result := make(chan error, 1)

	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.closed:
		result <- playerrors.Rejected(playerrors.ErrFullscreenRejected, errClosed)
	case s.program == nil:
		result <- playerrors.Rejected(playerrors.ErrFullscreenRejected, errNoProgram)
	case !s.isTerminal():
		result <- playerrors.Rejected(playerrors.ErrFullscreenRejected, errNotTerminal)
	default:
		s.pending[result] = struct{}{}
		// Send blocks until the loop receives; the loop may be the caller.
		go s.program.Send(fullscreenMsg{enter: enter, result: result})
	}
	return result
}

// apply settles a request on the program's loop and returns the command that
// switches the terminal.
func (s *Screen) apply(msg fullscreenMsg) tea.Cmd {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pending[msg.result]; !ok {
		return nil
	}
	delete(s.pending, msg.result)
	s.fullscreen = msg.enter
	msg.result <- nil

	if msg.enter {
		return tea.EnterAltScreen
	}
	return tea.ExitAltScreen
}

// Close rejects requests the program never got to and refuses new ones.
func (s *Screen) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	for result := range s.pending {
		result <- playerrors.Rejected(playerrors.ErrFullscreenRejected, errClosed)
		delete(s.pending, result)
	}
}
