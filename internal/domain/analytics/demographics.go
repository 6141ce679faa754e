package analytics

import (
	"slices"

	"github.com/okian/podium/internal/domain/dedupe"
	"github.com/okian/podium/internal/domain/model"
)

// PhysicalRow is one athlete in one edition with their body measurements.
type PhysicalRow struct {
	Name   string           `json:"name"`
	Region model.NullString `json:"region"`
	Sport  string           `json:"sport"`
	Weight model.NullFloat  `json:"weight"`
	Height model.NullFloat  `json:"height"`
	Medal  string           `json:"medal"`
	Sex    model.Sex        `json:"sex"`
	Year   int              `json:"year"`
}

// PhysicalSlice holds one row per athlete per edition.
type PhysicalSlice struct {
	Rows []PhysicalRow `json:"rows"`
}

// Columns returns the column set of the table.
func (PhysicalSlice) Columns() []string {
	return []string{"Name", "Region", "Sport", "Weight", "Height", "Medal", "Sex", "Year"}
}

// Clone returns a deep copy.
func (p PhysicalSlice) Clone() PhysicalSlice {
	p.Rows = slices.Clone(p.Rows)
	return p
}

// PhysicalAttributes projects every athlete-edition, keeping the athlete's
// first entry of that edition, and then restricts to sport. Missing
// measurements stay null; a missing medal becomes model.NoMedalLabel.
func PhysicalAttributes(t *model.Table, sport model.Filter[string]) PhysicalSlice {
	out := PhysicalSlice{Rows: []PhysicalRow{}}
	for _, r := range dedupe.Unique(t.All(), dedupe.AthleteEdition) {
		if !sport.Match(r.Sport) {
			continue
		}
		medal := model.NoMedalLabel
		if r.Medal.Awarded() {
			medal = r.Medal.String()
		}
		out.Rows = append(out.Rows, PhysicalRow{
			Name:   r.Name,
			Region: r.Region,
			Sport:  r.Sport,
			Weight: r.Weight,
			Height: r.Height,
			Medal:  medal,
			Sex:    r.Sex,
			Year:   r.Year,
		})
	}
	return out
}

// ParticipationRow holds the number of distinct male and female athletes of
// one edition.
type ParticipationRow struct {
	Year   int `json:"year"`
	Male   int `json:"male"`
	Female int `json:"female"`
}

// Participation is a per-edition participation split by sex.
type Participation struct {
	Rows []ParticipationRow `json:"rows"`
}

// Columns returns the column set of the table.
func (Participation) Columns() []string { return []string{"Year", "Male", "Female"} }

// Clone returns a deep copy.
func (p Participation) Clone() Participation {
	p.Rows = slices.Clone(p.Rows)
	return p
}

// ParticipationBySex counts distinct athletes per edition and sex. An edition
// where only one sex took part still reports zero for the other.
func ParticipationBySex(t *model.Table) Participation {
	byYear := make(map[int]*ParticipationRow)
	for _, r := range dedupe.Unique(t.All(), dedupe.AthleteEdition) {
		if r.Sex != model.SexMale && r.Sex != model.SexFemale {
			continue
		}
		row, ok := byYear[r.Year]
		if !ok {
			row = &ParticipationRow{Year: r.Year}
			byYear[r.Year] = row
		}
		if r.Sex == model.SexMale {
			row.Male++
		} else {
			row.Female++
		}
	}
	out := Participation{Rows: make([]ParticipationRow, 0, len(byYear))}
	for _, y := range sortedKeys(byYear) {
		out.Rows = append(out.Rows, *byYear[y])
	}
	return out
}

// AgeSeries is a labelled sample of ages.
type AgeSeries struct {
	Label string    `json:"label"`
	Ages  []float64 `json:"ages"`
}

// AgeDistribution is a set of age samples meant to be plotted together.
type AgeDistribution struct {
	Series []AgeSeries `json:"series"`
}

// Columns returns the series labels.
func (a AgeDistribution) Columns() []string {
	cols := make([]string, len(a.Series))
	for i, s := range a.Series {
		cols[i] = s.Label
	}
	return cols
}

// Clone returns a deep copy.
func (a AgeDistribution) Clone() AgeDistribution {
	out := AgeDistribution{Series: make([]AgeSeries, len(a.Series))}
	for i, s := range a.Series {
		out.Series[i] = AgeSeries{Label: s.Label, Ages: slices.Clone(s.Ages)}
	}
	return out
}

// Age series labels.
const (
	LabelOverallAge = "Overall Age"
	LabelGold       = "Gold Medalist"
	LabelSilver     = "Silver Medalist"
	LabelBronze     = "Bronze Medalist"
)

// AgesByMedal samples athlete-edition ages overall and per medal class.
// Unknown ages are left out.
func AgesByMedal(t *model.Table) AgeDistribution {
	overall := AgeSeries{Label: LabelOverallAge, Ages: []float64{}}
	gold := AgeSeries{Label: LabelGold, Ages: []float64{}}
	silver := AgeSeries{Label: LabelSilver, Ages: []float64{}}
	bronze := AgeSeries{Label: LabelBronze, Ages: []float64{}}
	for _, r := range dedupe.Unique(t.All(), dedupe.AthleteEdition) {
		if !r.Age.Valid {
			continue
		}
		overall.Ages = append(overall.Ages, r.Age.Value)
		switch r.Medal {
		case model.MedalGold:
			gold.Ages = append(gold.Ages, r.Age.Value)
		case model.MedalSilver:
			silver.Ages = append(silver.Ages, r.Age.Value)
		case model.MedalBronze:
			bronze.Ages = append(bronze.Ages, r.Age.Value)
		}
	}
	return AgeDistribution{Series: []AgeSeries{overall, gold, silver, bronze}}
}

// GoldAgesBySport samples the ages of gold medallists for each requested
// sport, in request order. Sports without gold medallists yield an empty
// series.
func GoldAgesBySport(t *model.Table, sports []string) AgeDistribution {
	bySport := make(map[string][]float64, len(sports))
	for _, r := range dedupe.Unique(t.All(), dedupe.AthleteEdition) {
		if r.Medal == model.MedalGold && r.Age.Valid {
			bySport[r.Sport] = append(bySport[r.Sport], r.Age.Value)
		}
	}
	out := AgeDistribution{Series: make([]AgeSeries, 0, len(sports))}
	for _, s := range sports {
		ages := bySport[s]
		if ages == nil {
			ages = []float64{}
		}
		out.Series = append(out.Series, AgeSeries{Label: s, Ages: slices.Clone(ages)})
	}
	return out
}
