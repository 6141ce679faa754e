// Package normalize builds the canonical results table from the raw results
// and the NOC to region lookup.
package normalize

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/okian/podium/internal/domain/dedupe"
	"github.com/okian/podium/internal/domain/model"
)

// DefaultSeason is the competition season kept by default.
const DefaultSeason = "Summer"

// Report summarizes one normalization run.
type Report struct {
	Input             int // raw result rows received
	OutOfSeason       int // rows dropped by the season filter
	UnresolvedRegions int // kept rows whose NOC is missing from the lookup
	Duplicates        int // exact duplicate rows removed
	Output            int // rows in the canonical table
}

// Normalizer turns raw inputs into a canonical table.
type Normalizer struct {
	season string
}

// New creates a Normalizer with the given options.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		season: DefaultSeason,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Run filters results to the configured season, joins regions by NOC, drops
// exact duplicates and derives the medal flags. A broken lookup table is a
// configuration error; rows themselves never fail.
func (n *Normalizer) Run(results []model.RawResult, regions []model.RegionEntry) (*model.Table, Report, error) {
	const op = "normalize.run"
	rep := Report{Input: len(results)}

	lookup, err := buildLookup(regions)
	if err != nil {
		return nil, rep, fmt.Errorf("%s: %w", op, err)
	}

	fold := cases.Fold()
	season := fold.String(strings.TrimSpace(n.season))
	seen := dedupe.NewSet[model.EventResult](dedupe.WithCapacity(len(results)))
	rows := make([]model.EventResult, 0, len(results))
	for _, raw := range results {
		if fold.String(strings.TrimSpace(raw.Season)) != season {
			rep.OutOfSeason++
			continue
		}
		region, ok := lookup[raw.NOC]
		row := model.NewEventResult(raw, region)
		if seen.SeenAndRecord(dedupe.Raw(row)) {
			rep.Duplicates++
			continue
		}
		if !ok {
			rep.UnresolvedRegions++
		}
		rows = append(rows, row)
	}
	rep.Output = len(rows)
	return model.NewTable(rows), rep, nil
}

// buildLookup indexes the region table by NOC. Repeated NOCs are tolerated
// only when they agree on the region.
func buildLookup(regions []model.RegionEntry) (map[string]model.NullString, error) {
	if len(regions) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, ErrEmptyLookup)
	}
	lookup := make(map[string]model.NullString, len(regions))
	for i, e := range regions {
		noc := strings.TrimSpace(e.NOC)
		if noc == "" {
			return nil, fmt.Errorf("%w: lookup row %d has no NOC", ErrConfiguration, i)
		}
		region := model.NullString{}
		if r := strings.TrimSpace(e.Region); r != "" {
			region = model.String(r)
		}
		if prev, ok := lookup[noc]; ok && prev != region {
			return nil, fmt.Errorf("%w: %w: %s maps to %q and %q", ErrConfiguration, ErrConflictingRegion, noc, prev.Value, region.Value)
		}
		lookup[noc] = region
	}
	return lookup, nil
}
