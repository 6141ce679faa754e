// Package dedupe holds the row identity definitions shared by every aggregator
// and the seen-set used to apply them.
package dedupe

import (
	"iter"

	"github.com/okian/podium/internal/domain/model"
)

// Set records keys that were already seen.
// It is not safe for concurrent use; every aggregator call owns its own Set.
type Set[K comparable] struct {
	seen map[K]struct{}
}

// NewSet creates an empty Set.
func NewSet[K comparable](opts ...Option) *Set[K] {
	cfg := options{}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Set[K]{seen: make(map[K]struct{}, max(cfg.capacity, 0))}
}

// SeenAndRecord checks whether k was seen and records it if not.
// Returns true if k was already seen, false if it was newly recorded.
func (s *Set[K]) SeenAndRecord(k K) bool {
	if _, ok := s.seen[k]; ok {
		return true
	}
	s.seen[k] = struct{}{}
	return false
}

// Size returns the number of distinct keys recorded.
func (s *Set[K]) Size() int {
	return len(s.seen)
}

// Identity maps a row to the key that decides when two rows are the same
// occurrence.
type Identity[R any, K comparable] func(R) K

// Unique returns the rows of seq whose identity was not seen before, in
// input order. The first occurrence of each identity wins.
func Unique[R any, K comparable](seq iter.Seq[R], id Identity[R, K]) []R {
	set := NewSet[K]()
	var out []R
	for r := range seq {
		if set.SeenAndRecord(id(r)) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// MedalKey identifies one medal award. A team's member rows share it.
type MedalKey struct {
	Team  string
	NOC   string
	Games string
	Year  int
	City  string
	Sport string
	Event string
	Medal model.Medal
}

// AthleteMedalKey identifies one medal award credited to one athlete.
type AthleteMedalKey struct {
	MedalKey
	Name string
}

// AthleteEditionKey identifies one athlete taking part in one edition.
type AthleteEditionKey struct {
	Year   int
	Name   string
	Region model.NullString
}

// EditionValueKey identifies one attribute value within one edition.
type EditionValueKey struct {
	Year  int
	Value model.NullString
}

// EditionEventKey identifies one contested event within one edition.
type EditionEventKey struct {
	Year  int
	Sport string
	Event string
}

// Raw treats rows as equal only when every column matches.
func Raw(r model.EventResult) model.EventResult { return r }

// MedalOccurrence collapses a team's member rows for one medal into one.
func MedalOccurrence(r model.EventResult) MedalKey {
	return MedalKey{
		Team:  r.Team,
		NOC:   r.NOC,
		Games: r.Games,
		Year:  r.Year,
		City:  r.City,
		Sport: r.Sport,
		Event: r.Event,
		Medal: r.Medal,
	}
}

// AthleteMedal keeps one row per athlete per medal award, so every team
// member is credited once.
func AthleteMedal(r model.EventResult) AthleteMedalKey {
	return AthleteMedalKey{MedalKey: MedalOccurrence(r), Name: r.Name}
}

// AthleteEdition collapses an athlete's entries within one edition.
func AthleteEdition(r model.EventResult) AthleteEditionKey {
	return AthleteEditionKey{Year: r.Year, Name: r.Name, Region: r.Region}
}

// EditionValue builds an identity that keeps one row per edition per value of attr.
func EditionValue(attr func(model.EventResult) model.NullString) Identity[model.EventResult, EditionValueKey] {
	return func(r model.EventResult) EditionValueKey {
		return EditionValueKey{Year: r.Year, Value: attr(r)}
	}
}

// EditionEvent keeps one row per (edition, sport, event).
func EditionEvent(r model.EventResult) EditionEventKey {
	return EditionEventKey{Year: r.Year, Sport: r.Sport, Event: r.Event}
}
