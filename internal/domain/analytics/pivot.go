package analytics

import (
	"slices"
	"strconv"

	"github.com/okian/podium/internal/domain/dedupe"
	"github.com/okian/podium/internal/domain/model"
)

// Matrix is a sport by edition count table. Cells[i][j] holds the count for
// Sports[i] in Editions[j]; every cell is present.
type Matrix struct {
	Sports   []string `json:"sports"`
	Editions []int    `json:"editions"`
	Cells    [][]int  `json:"cells"`
}

// Columns returns the header row: the sport column followed by each edition.
func (m Matrix) Columns() []string {
	cols := make([]string, 0, len(m.Editions)+1)
	cols = append(cols, "Sport")
	for _, y := range m.Editions {
		cols = append(cols, strconv.Itoa(y))
	}
	return cols
}

// At returns the cell for sport and edition.
func (m Matrix) At(sport string, edition int) (int, bool) {
	i := slices.Index(m.Sports, sport)
	j := slices.Index(m.Editions, edition)
	if i < 0 || j < 0 {
		return 0, false
	}
	return m.Cells[i][j], true
}

// Clone returns a deep copy.
func (m Matrix) Clone() Matrix {
	out := Matrix{
		Sports:   slices.Clone(m.Sports),
		Editions: slices.Clone(m.Editions),
		Cells:    make([][]int, len(m.Cells)),
	}
	for i, row := range m.Cells {
		out.Cells[i] = slices.Clone(row)
	}
	return out
}

// pivot materializes a two level count map over the given axes, filling
// missing cells with zero.
func pivot(counts map[string]map[int]int, sports []string, editions []int) Matrix {
	m := Matrix{
		Sports:   sports,
		Editions: editions,
		Cells:    make([][]int, len(sports)),
	}
	for i, s := range sports {
		row := make([]int, len(editions))
		for j, y := range editions {
			row[j] = counts[s][y]
		}
		m.Cells[i] = row
	}
	return m
}

func countCell(counts map[string]map[int]int, sport string, year int) {
	inner, ok := counts[sport]
	if !ok {
		inner = make(map[int]int)
		counts[sport] = inner
	}
	inner[year]++
}

// EventsPerSportPerEdition counts distinct events per sport and edition. The
// matrix spans every sport and every edition in the table.
func EventsPerSportPerEdition(t *model.Table) Matrix {
	sports := make(map[string]struct{})
	editions := make(map[int]struct{})
	for r := range t.All() {
		sports[r.Sport] = struct{}{}
		editions[r.Year] = struct{}{}
	}
	counts := make(map[string]map[int]int)
	for _, r := range dedupe.Unique(t.All(), dedupe.EditionEvent) {
		countCell(counts, r.Sport, r.Year)
	}
	return pivot(counts, sortedKeys(sports), sortedKeys(editions))
}

// CountryEventHeatmap counts one region's medal awards per sport and edition.
// The axes only cover sports and editions where the region won something.
func CountryEventHeatmap(t *model.Table, region string) Matrix {
	counts := make(map[string]map[int]int)
	editions := make(map[int]struct{})
	for _, r := range awarded(dedupe.Unique(t.All(), dedupe.MedalOccurrence)) {
		if !r.Region.Valid || r.Region.Value != region {
			continue
		}
		countCell(counts, r.Sport, r.Year)
		editions[r.Year] = struct{}{}
	}
	return pivot(counts, sortedKeys(counts), sortedKeys(editions))
}
