package service

import (
	"context"
	"slices"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"

	"github.com/okian/podium/internal/domain/model"
)

// Dimension names a filterable catalog list.
type Dimension string

// Suggestable dimensions.
const (
	DimensionRegion Dimension = "region"
	DimensionSport  Dimension = "sport"
)

// minSuggestDistance is the edit distance always tolerated; longer inputs
// tolerate a third of their length.
const minSuggestDistance = 2

// Suggest returns the closest known value when value is neither "Overall"
// nor present in the catalog. Matching ignores case.
func (s *Service) Suggest(ctx context.Context, dim Dimension, value string) (string, bool) {
	want, ok := model.ParseLabel(value).Value()
	if !ok {
		return "", false
	}
	catalog, err := s.Catalog(ctx)
	if err != nil {
		return "", false
	}

	var known []string
	switch dim {
	case DimensionRegion:
		known = catalog.Regions
	case DimensionSport:
		known = catalog.Sports
	default:
		return "", false
	}
	if slices.Contains(known, want) {
		return "", false
	}

	fold := cases.Fold()
	folded := fold.String(want)
	best, bestDist := "", max(minSuggestDistance, len([]rune(want))/3)+1
	for _, k := range known {
		d := levenshtein.ComputeDistance(folded, fold.String(k))
		if d < bestDist {
			best, bestDist = k, d
		}
	}
	return best, best != ""
}
