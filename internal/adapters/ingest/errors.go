package ingest

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrMissingColumn  = errors.New("missing column")
	ErrMalformedValue = errors.New("malformed value")
	ErrEmptyLookup    = errors.New("empty region lookup")
	ErrReadFile       = errors.New("read file failed")
)
