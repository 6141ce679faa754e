package dedupe_test

import (
	"slices"
	"testing"

	"github.com/okian/podium/internal/domain/dedupe"
	"github.com/okian/podium/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func row(name, team string, year int, event string, medal model.Medal) model.EventResult {
	return model.NewEventResult(model.RawResult{
		Name:   name,
		Team:   team,
		NOC:    "FRA",
		Games:  "2000 Summer",
		Year:   year,
		Season: "Summer",
		City:   "Sydney",
		Sport:  "Fencing",
		Event:  event,
		Medal:  medal,
	}, model.String("France"))
}

func TestSet(t *testing.T) {
	Convey("Given a new Set", t, func() {
		s := dedupe.NewSet[string](dedupe.WithCapacity(4))

		Convey("When a key is recorded for the first time", func() {
			seen := s.SeenAndRecord("a")

			Convey("Then it is reported as new", func() {
				So(seen, ShouldBeFalse)
				So(s.Size(), ShouldEqual, 1)
			})
		})

		Convey("When a key is recorded twice", func() {
			s.SeenAndRecord("a")
			seen := s.SeenAndRecord("a")

			Convey("Then the second call reports it as seen", func() {
				So(seen, ShouldBeTrue)
				So(s.Size(), ShouldEqual, 1)
			})
		})

		Convey("When the capacity hint is negative", func() {
			s := dedupe.NewSet[int](dedupe.WithCapacity(-1))

			Convey("Then the set still works", func() {
				So(s.SeenAndRecord(1), ShouldBeFalse)
				So(s.SeenAndRecord(1), ShouldBeTrue)
			})
		})
	})
}

func TestIdentities(t *testing.T) {
	Convey("Given three teammates sharing a gold medal", t, func() {
		rows := []model.EventResult{
			row("A", "France", 2000, "Foil, Team", model.MedalGold),
			row("B", "France", 2000, "Foil, Team", model.MedalGold),
			row("C", "France", 2000, "Foil, Team", model.MedalGold),
			row("A", "FRA", 2000, "Foil, Individual", model.MedalNone),
			row("A", "FRA", 2004, "Foil, Individual", model.MedalNone),
		}

		Convey("When deduplicating by medal occurrence", func() {
			out := dedupe.Unique(slices.Values(rows), dedupe.MedalOccurrence)

			Convey("Then the team collapses to its first row", func() {
				So(out, ShouldHaveLength, 3)
				So(out[0].Name, ShouldEqual, "A")
				So(out[1].Event, ShouldEqual, "Foil, Individual")
			})
		})

		Convey("When deduplicating by athlete medal", func() {
			out := dedupe.Unique(slices.Values(rows), dedupe.AthleteMedal)

			Convey("Then every teammate keeps a row", func() {
				So(out, ShouldHaveLength, 5)
			})
		})

		Convey("When deduplicating by athlete edition", func() {
			out := dedupe.Unique(slices.Values(rows), dedupe.AthleteEdition)

			Convey("Then each athlete counts once per edition", func() {
				So(out, ShouldHaveLength, 4)
				So(out[3].Year, ShouldEqual, 2004)
			})
		})

		Convey("When deduplicating by edition event", func() {
			out := dedupe.Unique(slices.Values(rows), dedupe.EditionEvent)

			Convey("Then each contested event counts once", func() {
				So(out, ShouldHaveLength, 3)
			})
		})

		Convey("When deduplicating by edition value", func() {
			id := dedupe.EditionValue(func(r model.EventResult) model.NullString { return r.Region })
			out := dedupe.Unique(slices.Values(rows), id)

			Convey("Then one row per edition remains", func() {
				So(out, ShouldHaveLength, 2)
			})
		})

		Convey("When deduplicating raw rows", func() {
			out := dedupe.Unique(slices.Values(append(rows, rows[0])), dedupe.Raw)

			Convey("Then only exact copies are removed", func() {
				So(out, ShouldHaveLength, len(rows))
			})
		})
	})

	Convey("Given athletes with and without a region", t, func() {
		known := row("A", "FRA", 2000, "Foil", model.MedalNone)
		unknown := known
		unknown.Region = model.NullString{}

		Convey("Then their edition identities differ", func() {
			So(dedupe.AthleteEdition(known), ShouldNotResemble, dedupe.AthleteEdition(unknown))
		})
	})
}
