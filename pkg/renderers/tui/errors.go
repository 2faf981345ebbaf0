package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrInvalidSubmission is returned when the collected values still fail
	// validation after the last attempt, or when only hidden fields are in
	// error and re-prompting cannot fix them.
	ErrInvalidSubmission = errors.New("tui: submission is invalid")
	// ErrNilSchema is returned when Collect is called without a schema.
	ErrNilSchema = errors.New("tui: schema is required")
)
