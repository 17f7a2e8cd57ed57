package collect

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("collect: aborted")
	// ErrDeclined is returned when the user does not confirm the summary.
	ErrDeclined = errors.New("collect: submission not confirmed")
)
