// Package model contains domain models passed between layers.
package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Medal is the outcome of one athlete-event entry.
type Medal uint8

// Medal classes. MedalNone is the zero value and means no medal was awarded.
const (
	MedalNone Medal = iota
	MedalGold
	MedalSilver
	MedalBronze
)

// NoMedalLabel is the explicit category used where a missing medal must be shown.
const NoMedalLabel = "No Medal"

// String returns the dataset spelling of the medal, empty for MedalNone.
func (m Medal) String() string {
	switch m {
	case MedalGold:
		return "Gold"
	case MedalSilver:
		return "Silver"
	case MedalBronze:
		return "Bronze"
	default:
		return ""
	}
}

// Awarded reports whether m is a real medal.
func (m Medal) Awarded() bool { return m != MedalNone }

// MarshalJSON encodes MedalNone as null.
func (m Medal) MarshalJSON() ([]byte, error) {
	if !m.Awarded() {
		return []byte("null"), nil
	}
	return json.Marshal(m.String())
}

// ParseMedal parses the dataset spelling. "NA" and "" mean no medal.
func ParseMedal(s string) (Medal, error) {
	switch strings.TrimSpace(s) {
	case "", "NA":
		return MedalNone, nil
	case "Gold":
		return MedalGold, nil
	case "Silver":
		return MedalSilver, nil
	case "Bronze":
		return MedalBronze, nil
	}
	return MedalNone, fmt.Errorf("%w: medal %q", ErrInvalidValue, s)
}

// Sex of an athlete as recorded in the dataset.
type Sex string

// Recorded sexes.
const (
	SexMale   Sex = "M"
	SexFemale Sex = "F"
)

// ParseSex accepts "M" or "F".
func ParseSex(s string) (Sex, error) {
	switch Sex(strings.TrimSpace(s)) {
	case SexMale:
		return SexMale, nil
	case SexFemale:
		return SexFemale, nil
	}
	return "", fmt.Errorf("%w: sex %q", ErrInvalidValue, s)
}

// NullString is a string that may be absent. The zero value is null.
type NullString struct {
	Value string
	Valid bool
}

// String returns a present NullString.
func String(v string) NullString { return NullString{Value: v, Valid: true} }

// MarshalJSON encodes a null value as JSON null.
func (n NullString) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// NullFloat is a numeric attribute that may be absent. The zero value is null.
type NullFloat struct {
	Value float64
	Valid bool
}

// Float returns a present NullFloat.
func Float(v float64) NullFloat { return NullFloat{Value: v, Valid: true} }

// MarshalJSON encodes a null value as JSON null.
func (n NullFloat) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// RawResult is one record of the raw results table, before normalization.
type RawResult struct {
	ID     int
	Name   string
	Sex    Sex
	Age    NullFloat
	Height NullFloat
	Weight NullFloat
	Team   string
	NOC    string
	Games  string
	Year   int
	Season string
	City   string
	Sport  string
	Event  string
	Medal  Medal
}

// RegionEntry maps an NOC code to its region.
type RegionEntry struct {
	NOC    string
	Region string
	Notes  string
}

// EventResult is one canonical athlete-per-event-per-edition row.
// Team events produce one row per team member.
// All fields are comparable so a row can serve as its own identity key.
type EventResult struct {
	RawResult

	// Region is resolved from NOC and is null when the NOC is unknown.
	Region NullString

	// Exactly one flag is set iff Medal is awarded.
	Gold   bool
	Silver bool
	Bronze bool
}

// NewEventResult derives the region and medal flags for raw.
func NewEventResult(raw RawResult, region NullString) EventResult {
	return EventResult{
		RawResult: raw,
		Region:    region,
		Gold:      raw.Medal == MedalGold,
		Silver:    raw.Medal == MedalSilver,
		Bronze:    raw.Medal == MedalBronze,
	}
}
