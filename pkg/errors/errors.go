package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrPlayRejected       = errors.New("playback request rejected")
	ErrFullscreenRejected = errors.New("fullscreen request rejected")
	ErrNotLoaded          = errors.New("media not loaded")
	ErrInvalidFormat      = errors.New("unsupported media format")
	ErrNoSource           = errors.New("no media source given")
	ErrUnsupportedSource  = errors.New("media source is not supported")
)

// MediaError wraps errors with additional context
type MediaError struct {
	Op     string // Operation that failed
	Source string // Source locator if applicable
	Err    error  // Underlying error
}

func (e *MediaError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("%s failed for %s: %v", e.Op, e.Source, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *MediaError) Unwrap() error {
	return e.Err
}

// NewMediaError creates a new MediaError
func NewMediaError(op, source string, err error) *MediaError {
	return &MediaError{Op: op, Source: source, Err: err}
}

// Rejected builds the error a platform request settles with when refused.
// The result matches both kind and cause with errors.Is.
func Rejected(kind error, cause error) error {
	if cause == nil {
		return kind
	}
	return fmt.Errorf("%w: %w", kind, cause)
}
