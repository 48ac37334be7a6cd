package entry

import "errors"

var (
	ErrInvalidDate     = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidClock    = errors.New("invalid clock time, expected HH:MM")
	ErrMissingCategory = errors.New("category is required")
)
