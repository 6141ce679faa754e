package model

import "errors"

// Sentinel error kinds for this package.
var (
	ErrInvalidValue   = errors.New("invalid value")
	ErrInvalidEdition = errors.New("invalid edition")
)
