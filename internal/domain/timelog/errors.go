package timelog

import "errors"

var (
	// ErrLogNotFound indicates the log doesn't exist.
	ErrLogNotFound = errors.New("time log not found")
	// ErrAlreadyActive indicates another log is already running.
	ErrAlreadyActive = errors.New("another time log is already running")
	// ErrInvalidRange indicates an end time before the start time.
	ErrInvalidRange = errors.New("end time precedes start time")
	// ErrLogHeld indicates the log is being dragged and only shifts may target it.
	ErrLogHeld = errors.New("time log is being dragged")
	// ErrLogRunning indicates an operation that needs a closed log.
	ErrLogRunning = errors.New("time log is still running")
	// ErrNotRunning indicates an operation that needs a running log.
	ErrNotRunning = errors.New("time log is not running")
	// ErrDuplicateID indicates an insert with an id already in the store.
	ErrDuplicateID = errors.New("time log id already exists")
	// ErrInvalidInput indicates a malformed log.
	ErrInvalidInput = errors.New("invalid time log input")
)
