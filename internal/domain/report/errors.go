package report

import "errors"

var ErrMissingAPIKey = errors.New("API key is missing")
