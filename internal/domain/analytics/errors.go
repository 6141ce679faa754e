package analytics

import "errors"

// Sentinel error kinds for query parameters.
var (
	ErrUnknownAttribute = errors.New("unknown attribute")
)
