package timer

import "errors"

// ErrInvalidDuration indicates a quick log with a non-positive duration.
var ErrInvalidDuration = errors.New("quick log duration must be positive")
