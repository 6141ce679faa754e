package model

import (
	"fmt"
	"strconv"
	"strings"
)

// OverallLabel is the wire spelling of an unconstrained filter.
const OverallLabel = "Overall"

// Filter is either unconstrained ("Overall") or pinned to one concrete value.
// The zero value is unconstrained.
type Filter[T comparable] struct {
	value T
	set   bool
}

// Overall returns an unconstrained filter.
func Overall[T comparable]() Filter[T] { return Filter[T]{} }

// Only returns a filter pinned to v.
func Only[T comparable](v T) Filter[T] { return Filter[T]{value: v, set: true} }

// IsOverall reports whether the filter is unconstrained.
func (f Filter[T]) IsOverall() bool { return !f.set }

// Value returns the pinned value and whether there is one.
func (f Filter[T]) Value() (T, bool) { return f.value, f.set }

// Match reports whether v passes the filter.
func (f Filter[T]) Match(v T) bool { return !f.set || f.value == v }

// String renders the filter for cache keys and logs.
func (f Filter[T]) String() string {
	if !f.set {
		return OverallLabel
	}
	return fmt.Sprint(f.value)
}

// ParseEdition converts a textual edition into a filter. "Overall" and ""
// are unconstrained; anything else must be an integer year.
func ParseEdition(s string) (Filter[int], error) {
	s = strings.TrimSpace(s)
	if s == "" || s == OverallLabel {
		return Overall[int](), nil
	}
	year, err := strconv.Atoi(s)
	if err != nil {
		return Filter[int]{}, fmt.Errorf("%w: %q", ErrInvalidEdition, s)
	}
	return Only(year), nil
}

// ParseLabel converts a textual region or sport into a filter.
func ParseLabel(s string) Filter[string] {
	s = strings.TrimSpace(s)
	if s == "" || s == OverallLabel {
		return Overall[string]()
	}
	return Only(s)
}

// MatchRegion applies a region filter to a nullable region. A null region
// never matches a concrete filter.
func MatchRegion(f Filter[string], region NullString) bool {
	want, ok := f.Value()
	if !ok {
		return true
	}
	return region.Valid && region.Value == want
}
