package analytics

import (
	"cmp"
	"slices"

	"github.com/okian/podium/internal/domain/dedupe"
	"github.com/okian/podium/internal/domain/model"
)

// Leaderboard sizes.
const (
	GlobalLeaderboardSize  = 15
	CountryLeaderboardSize = 10
)

// Scope restricts a leaderboard to a sport and/or a region.
type Scope struct {
	Sport  model.Filter[string]
	Region model.Filter[string]
}

// AthleteRow is one leaderboard entry. Sport is empty when the board is
// restricted to one sport and Region is empty on a country board.
type AthleteRow struct {
	Name   string `json:"name"`
	Sport  string `json:"sport,omitempty"`
	Region string `json:"region,omitempty"`
	Medals
}

// Leaderboard is a ranked, truncated list of athletes.
type Leaderboard struct {
	Rows       []AthleteRow `json:"rows"`
	showSport  bool
	showRegion bool
}

// Columns returns the column set of the table.
func (l Leaderboard) Columns() []string {
	cols := []string{"Name"}
	if l.showSport {
		cols = append(cols, "Sport")
	}
	if l.showRegion {
		cols = append(cols, "Region")
	}
	return append(cols, medalColumns...)
}

// Clone returns a deep copy.
func (l Leaderboard) Clone() Leaderboard {
	l.Rows = slices.Clone(l.Rows)
	return l
}

type athleteKey struct {
	Name   string
	Sport  string
	Region string
}

func compareAthleteKeys(a, b athleteKey) int {
	if c := cmp.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Sport, b.Sport); c != 0 {
		return c
	}
	return cmp.Compare(a.Region, b.Region)
}

// TopAthletes ranks athletes by gold, silver, bronze and total medals.
// Entries are per (athlete, sport[, region]) so a multi-sport medallist shows
// up once per sport. A concrete region yields the country board, truncated to
// CountryLeaderboardSize; otherwise the board holds GlobalLeaderboardSize rows.
// Rows still tied after all four keys keep athlete name order.
func TopAthletes(t *model.Table, scope Scope) Leaderboard {
	country := !scope.Region.IsOverall()
	limit := GlobalLeaderboardSize
	if country {
		limit = CountryLeaderboardSize
	}

	medals := dedupe.Unique(t.All(), dedupe.AthleteMedal)
	keys, groups := medalGroups(medals, func(r model.EventResult) (athleteKey, bool) {
		if !scope.Sport.Match(r.Sport) || !r.Region.Valid || !scope.Region.Match(r.Region.Value) {
			return athleteKey{}, false
		}
		k := athleteKey{Name: r.Name, Sport: r.Sport, Region: r.Region.Value}
		if country {
			k.Region = ""
		}
		return k, true
	}, compareAthleteKeys)

	out := Leaderboard{
		Rows:       make([]AthleteRow, 0, len(keys)),
		showSport:  scope.Sport.IsOverall(),
		showRegion: !country,
	}
	for _, k := range keys {
		row := AthleteRow{Name: k.Name, Region: k.Region, Medals: *groups[k]}
		if out.showSport {
			row.Sport = k.Sport
		}
		out.Rows = append(out.Rows, row)
	}
	slices.SortStableFunc(out.Rows, func(a, b AthleteRow) int {
		return compareStandings(a.Medals, b.Medals, true)
	})
	if len(out.Rows) > limit {
		out.Rows = slices.Clip(out.Rows[:limit])
	}
	return out
}
