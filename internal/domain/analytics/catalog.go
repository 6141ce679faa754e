package analytics

import (
	"slices"

	"github.com/okian/podium/internal/domain/model"
)

// Catalog lists the concrete values a caller can filter on.
type Catalog struct {
	Editions []int    `json:"editions"`
	Regions  []string `json:"regions"`
	Sports   []string `json:"sports"`
}

// Columns returns the list names.
func (Catalog) Columns() []string { return []string{"Editions", "Regions", "Sports"} }

// Clone returns a deep copy.
func (c Catalog) Clone() Catalog {
	return Catalog{
		Editions: slices.Clone(c.Editions),
		Regions:  slices.Clone(c.Regions),
		Sports:   slices.Clone(c.Sports),
	}
}

// BuildCatalog collects the sorted distinct editions, known regions and sports.
func BuildCatalog(t *model.Table) Catalog {
	editions := make(map[int]struct{})
	regions := make(map[string]struct{})
	sports := make(map[string]struct{})
	for r := range t.All() {
		editions[r.Year] = struct{}{}
		sports[r.Sport] = struct{}{}
		if r.Region.Valid {
			regions[r.Region.Value] = struct{}{}
		}
	}
	return Catalog{
		Editions: sortedKeys(editions),
		Regions:  sortedKeys(regions),
		Sports:   sortedKeys(sports),
	}
}

// Summary holds headline distinct counts over the whole table.
type Summary struct {
	Editions int `json:"editions"`
	Hosts    int `json:"hosts"`
	Sports   int `json:"sports"`
	Events   int `json:"events"`
	Athletes int `json:"athletes"`
	Regions  int `json:"regions"`
}

// Columns returns the column set of the table.
func (Summary) Columns() []string {
	return []string{"Editions", "Hosts", "Sports", "Events", "Athletes", "Regions"}
}

// Clone returns a copy.
func (s Summary) Clone() Summary { return s }

// Summarize counts distinct editions, host cities, sports, events, athlete
// names and known regions.
func Summarize(t *model.Table) Summary {
	editions := make(map[int]struct{})
	hosts := make(map[string]struct{})
	sports := make(map[string]struct{})
	events := make(map[string]struct{})
	athletes := make(map[string]struct{})
	regions := make(map[string]struct{})
	for r := range t.All() {
		editions[r.Year] = struct{}{}
		hosts[r.City] = struct{}{}
		sports[r.Sport] = struct{}{}
		events[r.Event] = struct{}{}
		athletes[r.Name] = struct{}{}
		if r.Region.Valid {
			regions[r.Region.Value] = struct{}{}
		}
	}
	return Summary{
		Editions: len(editions),
		Hosts:    len(hosts),
		Sports:   len(sports),
		Events:   len(events),
		Athletes: len(athletes),
		Regions:  len(regions),
	}
}
