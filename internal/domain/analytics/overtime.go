package analytics

import (
	"fmt"
	"slices"
	"strings"

	"github.com/okian/podium/internal/domain/dedupe"
	"github.com/okian/podium/internal/domain/model"
)

// Attribute is a column whose distinct values can be counted per edition.
type Attribute string

// Countable attributes.
const (
	AttrRegion Attribute = "region"
	AttrSport  Attribute = "sport"
	AttrEvent  Attribute = "event"
	AttrName   Attribute = "name"
)

// ParseAttribute resolves an attribute name, ignoring case.
func ParseAttribute(s string) (Attribute, error) {
	a := Attribute(strings.ToLower(strings.TrimSpace(s)))
	switch a {
	case AttrRegion, AttrSport, AttrEvent, AttrName:
		return a, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAttribute, s)
}

// DefaultLabel is the series label used when the caller gives none.
func (a Attribute) DefaultLabel() string {
	switch a {
	case AttrRegion:
		return "No. of Countries"
	case AttrSport:
		return "No. of Sports"
	case AttrEvent:
		return "No. of Events"
	case AttrName:
		return "No. of Athletes"
	}
	return string(a)
}

func (a Attribute) value(r model.EventResult) model.NullString {
	switch a {
	case AttrRegion:
		return r.Region
	case AttrSport:
		return model.String(r.Sport)
	case AttrEvent:
		return model.String(r.Event)
	default:
		return model.String(r.Name)
	}
}

// EditionCount is one point of a per-edition series.
type EditionCount struct {
	Edition int `json:"edition"`
	Count   int `json:"count"`
}

// EditionCounts is a per-edition series in chronological order.
type EditionCounts struct {
	Label string         `json:"label"`
	Rows  []EditionCount `json:"rows"`
}

// Columns returns the column set of the table.
func (e EditionCounts) Columns() []string { return []string{"Editions", e.Label} }

// Clone returns a deep copy.
func (e EditionCounts) Clone() EditionCounts {
	e.Rows = slices.Clone(e.Rows)
	return e
}

func newEditionCounts(label string, counts map[int]int) EditionCounts {
	out := EditionCounts{Label: label, Rows: make([]EditionCount, 0, len(counts))}
	for _, y := range sortedKeys(counts) {
		out.Rows = append(out.Rows, EditionCount{Edition: y, Count: counts[y]})
	}
	return out
}

// OverTime counts the distinct values of attr in each edition. A null region
// counts as one value of its own.
func OverTime(t *model.Table, attr Attribute, label string) (EditionCounts, error) {
	if _, err := ParseAttribute(string(attr)); err != nil {
		return EditionCounts{}, err
	}
	if label == "" {
		label = attr.DefaultLabel()
	}
	counts := make(map[int]int)
	for _, r := range dedupe.Unique(t.All(), dedupe.EditionValue(attr.value)) {
		counts[r.Year]++
	}
	return newEditionCounts(label, counts), nil
}
