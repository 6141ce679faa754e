// Package analytics derives standings, trends, pivots, leaderboards and
// demographic slices from the canonical results table.
//
// Every function here is pure: it reads the table, never mutates it, and
// returns a freshly allocated result owned by the caller. Filters that match
// nothing produce empty results, not errors.
package analytics

import (
	"cmp"
	"slices"

	"github.com/okian/podium/internal/domain/model"
)

// Medals is a medal count by class with its derived total.
type Medals struct {
	Gold   int `json:"gold"`
	Silver int `json:"silver"`
	Bronze int `json:"bronze"`
	Total  int `json:"total"`
}

var medalColumns = []string{"Gold", "Silver", "Bronze", "Total"}

// add counts the medal flags of r.
func (m *Medals) add(r model.EventResult) {
	if r.Gold {
		m.Gold++
	}
	if r.Silver {
		m.Silver++
	}
	if r.Bronze {
		m.Bronze++
	}
	m.Total = m.Gold + m.Silver + m.Bronze
}

// compareStandings orders by Gold, then Silver, then Bronze, all descending.
// Total breaks the remaining ties when withTotal is set.
func compareStandings(a, b Medals, withTotal bool) int {
	if c := cmp.Compare(b.Gold, a.Gold); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Silver, a.Silver); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Bronze, a.Bronze); c != 0 {
		return c
	}
	if withTotal {
		return cmp.Compare(b.Total, a.Total)
	}
	return 0
}

// medalGroups sums medal flags of awarded rows per key. Rows for which key
// reports false are skipped. Keys come back in ascending order.
func medalGroups[K comparable](rows []model.EventResult, key func(model.EventResult) (K, bool), less func(a, b K) int) ([]K, map[K]*Medals) {
	groups := make(map[K]*Medals)
	for _, r := range rows {
		if !r.Medal.Awarded() {
			continue
		}
		k, ok := key(r)
		if !ok {
			continue
		}
		m, found := groups[k]
		if !found {
			m = &Medals{}
			groups[k] = m
		}
		m.add(r)
	}
	keys := make([]K, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, less)
	return keys, groups
}

// sortedKeys returns the keys of m in ascending order.
func sortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// awarded filters rows down to those with a medal.
func awarded(rows []model.EventResult) []model.EventResult {
	out := rows[:0:0]
	for _, r := range rows {
		if r.Medal.Awarded() {
			out = append(out, r)
		}
	}
	return out
}
