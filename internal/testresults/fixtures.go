// Package testresults builds result datasets for tests, benchmarks and the
// generate command.
package testresults

import (
	"fmt"
	"hash/fnv"

	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/normalize"
)

// hostCities maps editions used by fixtures to their host city.
var hostCities = map[int]string{
	1896: "Athina",
	1900: "Paris",
	1996: "Atlanta",
	2000: "Sydney",
	2004: "Athina",
	2008: "Beijing",
	2012: "London",
	2016: "Rio de Janeiro",
}

// Result returns a Summer entry for a male athlete with the given fields.
// Team is the NOC code; callers adjust any other field on the returned value.
func Result(name, noc string, year int, sport, event string, medal model.Medal) model.RawResult {
	city, ok := hostCities[year]
	if !ok {
		city = fmt.Sprintf("City %d", year)
	}
	return model.RawResult{
		ID:     athleteID(name),
		Name:   name,
		Sex:    model.SexMale,
		Age:    model.Float(25),
		Height: model.Float(180),
		Weight: model.Float(75),
		Team:   noc,
		NOC:    noc,
		Games:  fmt.Sprintf("%d Summer", year),
		Year:   year,
		Season: normalize.DefaultSeason,
		City:   city,
		Sport:  sport,
		Event:  event,
		Medal:  medal,
	}
}

// Female returns r with Sex set to F.
func Female(r model.RawResult) model.RawResult {
	r.Sex = model.SexFemale
	return r
}

// Winter returns r moved to the Winter season.
func Winter(r model.RawResult) model.RawResult {
	r.Season = "Winter"
	r.Games = fmt.Sprintf("%d Winter", r.Year)
	return r
}

// Regions returns a lookup covering the NOC codes used by fixtures.
func Regions() []model.RegionEntry {
	return []model.RegionEntry{
		{NOC: "USA", Region: "USA"},
		{NOC: "FRA", Region: "France"},
		{NOC: "GBR", Region: "UK"},
		{NOC: "GER", Region: "Germany"},
		{NOC: "FRG", Region: "Germany"},
		{NOC: "CHN", Region: "China"},
		{NOC: "AUS", Region: "Australia"},
		{NOC: "KEN", Region: "Kenya"},
		{NOC: "JAM", Region: "Jamaica"},
		{NOC: "ROT", Notes: "Refugee Olympic Team"},
	}
}

// Table normalizes results against Regions. It panics on error and is meant
// for tests only.
func Table(results ...model.RawResult) *model.Table {
	t, _, err := normalize.New().Run(results, Regions())
	if err != nil {
		panic(err)
	}
	return t
}

func athleteID(name string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return int(h.Sum32() % 1_000_000)
}
