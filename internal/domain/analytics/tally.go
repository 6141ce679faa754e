package analytics

import (
	"cmp"
	"slices"
	"strings"

	"github.com/okian/podium/internal/domain/dedupe"
	"github.com/okian/podium/internal/domain/model"
)

// GroupBy names the grouping column of a Tally.
type GroupBy string

// Tally groupings.
const (
	GroupByRegion  GroupBy = "region"
	GroupByEdition GroupBy = "edition"
)

// TallyRow is one group of a medal tally. Region is set when grouped by
// region, Year when grouped by edition.
type TallyRow struct {
	Region string `json:"region,omitempty"`
	Year   int    `json:"year,omitempty"`
	Medals
}

// Tally is a medal standings table.
type Tally struct {
	GroupBy GroupBy    `json:"group_by"`
	Rows    []TallyRow `json:"rows"`
}

// Columns returns the column set of the table.
func (t Tally) Columns() []string {
	first := "Region"
	if t.GroupBy == GroupByEdition {
		first = "Year"
	}
	return append([]string{first}, medalColumns...)
}

// Clone returns a deep copy.
func (t Tally) Clone() Tally {
	t.Rows = slices.Clone(t.Rows)
	return t
}

// MedalTally counts medal awards, one per team medal, restricted to edition
// and region. A concrete region with every edition yields that region's
// trend by year in chronological order; every other combination compares
// regions, ranked by gold, silver, then bronze.
func MedalTally(t *model.Table, edition model.Filter[int], region model.Filter[string]) Tally {
	awards := dedupe.Unique(t.All(), dedupe.MedalOccurrence)
	inScope := func(r model.EventResult) bool {
		return edition.Match(r.Year) && model.MatchRegion(region, r.Region)
	}

	if !region.IsOverall() && edition.IsOverall() {
		years, groups := medalGroups(awards, func(r model.EventResult) (int, bool) {
			return r.Year, inScope(r)
		}, cmp.Compare[int])
		out := Tally{GroupBy: GroupByEdition, Rows: make([]TallyRow, 0, len(years))}
		for _, y := range years {
			out.Rows = append(out.Rows, TallyRow{Year: y, Medals: *groups[y]})
		}
		return out
	}

	regions, groups := medalGroups(awards, func(r model.EventResult) (string, bool) {
		return r.Region.Value, r.Region.Valid && inScope(r)
	}, strings.Compare)
	out := Tally{GroupBy: GroupByRegion, Rows: make([]TallyRow, 0, len(regions))}
	for _, name := range regions {
		out.Rows = append(out.Rows, TallyRow{Region: name, Medals: *groups[name]})
	}
	slices.SortStableFunc(out.Rows, func(a, b TallyRow) int {
		return compareStandings(a.Medals, b.Medals, false)
	})
	return out
}

// MedalsPerEdition counts one region's medal awards per edition.
func MedalsPerEdition(t *model.Table, region string) EditionCounts {
	counts := make(map[int]int)
	for _, r := range dedupe.Unique(t.All(), dedupe.MedalOccurrence) {
		if r.Medal.Awarded() && r.Region.Valid && r.Region.Value == region {
			counts[r.Year]++
		}
	}
	return newEditionCounts("Medal", counts)
}
