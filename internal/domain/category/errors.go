package category

import "errors"

var (
	// ErrCategoryNotFound indicates the category doesn't exist.
	ErrCategoryNotFound = errors.New("category not found")
)
