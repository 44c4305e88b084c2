package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrInvalidAnswer is wrapped by validators that reject an answer.
	ErrInvalidAnswer = errors.New("tui: invalid answer")
)
