package cache

import "errors"

// Sentinel kinds for cache errors.
var (
	ErrTypeMismatch = errors.New("cached value has unexpected type")
)
