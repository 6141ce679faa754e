package normalize

import "errors"

// Sentinel error kinds for this package. All of them are fatal at start-up.
var (
	ErrConfiguration     = errors.New("configuration error")
	ErrEmptyLookup       = errors.New("region lookup is empty")
	ErrConflictingRegion = errors.New("conflicting region for NOC")
)
