package taskwarrior

import "errors"

var (
	// ErrProcessFailure wraps a task(1) invocation that exited non-zero or
	// produced output that could not be parsed as expected.
	ErrProcessFailure = errors.New("taskwarrior command failed")

	// ErrNotFound is returned when a re-fetch after a mutation, or a direct
	// lookup, yields no task.
	ErrNotFound = errors.New("task not found")

	// ErrCreationFailed is returned when no UUID could be extracted from the
	// add command's confirmation output.
	ErrCreationFailed = errors.New("task creation failed")

	// ErrInvalidRecurrence is returned for a recur: value outside the known
	// daily/weekly/monthly/yearly set.
	ErrInvalidRecurrence = errors.New("invalid recurrence frequency")
)
