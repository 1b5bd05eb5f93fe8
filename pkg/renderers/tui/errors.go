package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrTooManyAttempts is returned when a submission keeps failing
	// validation past the configured attempt limit.
	ErrTooManyAttempts = errors.New("tui: too many invalid attempts")
)
