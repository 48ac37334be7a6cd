package schedule

import "errors"

var (
	ErrDragInProgress = errors.New("a drag is already in progress")
	ErrNotDragging    = errors.New("no drag in progress")
	ErrInvalidDay     = errors.New("invalid day")
)
