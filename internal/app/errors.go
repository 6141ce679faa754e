package service

import "errors"

// Sentinel error kinds for this package.
var (
	ErrNotStarted       = errors.New("service not started")
	ErrNoDataSource     = errors.New("no data source configured")
	ErrMissingParameter = errors.New("missing parameter")
)
