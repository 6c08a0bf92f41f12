package prompt

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("prompt: aborted")
	// ErrValueRequired is reported by validators when a required member is
	// left blank.
	ErrValueRequired = errors.New("prompt: a value is required")
)
