package domain

import "errors"

var (
	// ErrCaseNotFound indicates the case content could not be loaded.
	ErrCaseNotFound = errors.New("case not found")
	// ErrEventNotFound indicates the event definition could not be loaded.
	ErrEventNotFound = errors.New("event not found")
	// ErrAttemptNotFound is returned when acting on a session that was never started.
	ErrAttemptNotFound = errors.New("attempt session not found")
	// ErrAttemptExists is returned when starting a second session for the same view.
	ErrAttemptExists = errors.New("attempt session already active")
)
