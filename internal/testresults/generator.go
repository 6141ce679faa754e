package testresults

import (
	"fmt"
	"math/rand/v2"

	"github.com/okian/podium/internal/domain/model"
)

// Generator defaults.
const (
	defaultAthletes       = 500
	defaultEventsPerSport = 4
	teamSize              = 3
	medalsPerEvent        = 3
	firstEdition          = 1996
	editionStep           = 4
)

var (
	generatedSports = []string{"Athletics", "Swimming", "Rowing", "Fencing", "Judo", "Hockey"}
	generatedNOCs   = []string{"USA", "FRA", "GBR", "GER", "CHN", "AUS", "KEN", "JAM"}
)

// GenerateConfig controls the synthetic dataset.
type GenerateConfig struct {
	Seed           uint64
	Editions       int
	Athletes       int
	EventsPerSport int
}

// Generate builds a deterministic synthetic dataset: every athlete enters
// one sport, events award gold, silver and bronze, and every fourth event is
// a team event whose medal is repeated on each member row.
func Generate(cfg GenerateConfig) []model.RawResult {
	if cfg.Editions <= 0 {
		cfg.Editions = 3
	}
	if cfg.Athletes <= 0 {
		cfg.Athletes = defaultAthletes
	}
	if cfg.EventsPerSport <= 0 {
		cfg.EventsPerSport = defaultEventsPerSport
	}
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))

	type athlete struct {
		name  string
		noc   string
		sport string
		sex   model.Sex
		born  int
	}
	athletes := make([]athlete, cfg.Athletes)
	for i := range athletes {
		sex := model.SexMale
		if rng.IntN(2) == 0 {
			sex = model.SexFemale
		}
		athletes[i] = athlete{
			name:  fmt.Sprintf("Athlete %04d", i),
			noc:   generatedNOCs[rng.IntN(len(generatedNOCs))],
			sport: generatedSports[rng.IntN(len(generatedSports))],
			sex:   sex,
			born:  firstEdition - 18 - rng.IntN(15),
		}
	}

	var out []model.RawResult
	for e := range cfg.Editions {
		year := firstEdition + e*editionStep
		for _, sport := range generatedSports {
			var field []athlete
			for _, a := range athletes {
				if a.sport == sport {
					field = append(field, a)
				}
			}
			if len(field) == 0 {
				continue
			}
			for ev := range cfg.EventsPerSport {
				event := fmt.Sprintf("%s Event %d", sport, ev+1)
				team := ev%4 == 3
				rng.Shuffle(len(field), func(i, j int) { field[i], field[j] = field[j], field[i] })
				for i, a := range field {
					medal := model.MedalNone
					place := i
					if team {
						place = i / teamSize
					}
					if place < medalsPerEvent {
						medal = model.Medal(place + 1)
					}
					r := Result(a.name, a.noc, year, sport, event, medal)
					r.Sex = a.sex
					r.Age = model.Float(float64(year - a.born))
					if rng.IntN(10) == 0 {
						r.Height = model.NullFloat{}
					}
					if team {
						captain := field[place*teamSize]
						r.NOC = captain.noc
						r.Team = fmt.Sprintf("%s Team %d", captain.noc, place+1)
					}
					out = append(out, r)
				}
			}
		}
	}
	return out
}
