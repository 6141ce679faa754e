package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	service "github.com/okian/podium/internal/app"
	"github.com/okian/podium/internal/adapters/ingest"
	"github.com/okian/podium/internal/domain/analytics"
	"github.com/okian/podium/internal/domain/model"
	tr "github.com/okian/podium/internal/testresults"
	"github.com/okian/podium/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

// smallDataset has one out-of-season row, one exact duplicate and one row
// whose NOC is missing from the lookup.
func smallDataset() ingest.Dataset {
	return ingest.Dataset{
		Results: []model.RawResult{
			tr.Result("Li Wei", "CHN", 2000, "Diving", "Diving Men's Platform", model.MedalGold),
			tr.Result("Carl Smith", "USA", 2000, "Athletics", "Athletics Men's 100 metres", model.MedalGold),
			tr.Result("Joe Brown", "USA", 2004, "Athletics", "Athletics Men's 200 metres", model.MedalSilver),
			tr.Result("Tom Hill", "GBR", 2004, "Rowing", "Rowing Men's Single Sculls", model.MedalBronze),
			tr.Result("Tom Hill", "GBR", 2004, "Rowing", "Rowing Men's Single Sculls", model.MedalBronze),
			tr.Winter(tr.Result("Sara Ice", "USA", 2002, "Alpine Skiing", "Alpine Skiing Women's Downhill", model.MedalGold)),
			tr.Result("Nobody", "XXX", 2004, "Athletics", "Athletics Men's 100 metres", model.MedalBronze),
		},
		Regions: tr.Regions(),
	}
}

func newStarted(opts ...service.Option) *service.Service {
	opts = append([]service.Option{
		service.WithLogger(logger.NewNop()),
		service.WithDataset(smallDataset()),
	}, opts...)
	svc := service.New(opts...)
	So(svc.Start(context.Background()), ShouldBeNil)
	return svc
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should not be started", func() {
			So(svc, ShouldNotBeNil)
			So(svc.GetStats()["started"], ShouldEqual, false)
			So(svc.GetStats()["season"], ShouldEqual, "Summer")
		})

		Convey("Then queries should fail with ErrNotStarted", func() {
			_, err := svc.Summary(context.Background())
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
		})
	})

	Convey("Given a service without any data source", t, func() {
		svc := service.New(service.WithLogger(logger.NewNop()))

		Convey("Then Start should fail with ErrNoDataSource", func() {
			err := svc.Start(context.Background())
			So(errors.Is(err, service.ErrNoDataSource), ShouldBeTrue)
		})
	})
}

func TestService_Start(t *testing.T) {
	Convey("Given a service over an in-memory dataset", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		svc := newStarted()
		defer svc.Stop()

		Convey("Then the normalization report should be exposed in stats", func() {
			stats := svc.GetStats()
			So(stats["started"], ShouldEqual, true)
			So(stats["inputRows"], ShouldEqual, 7)
			So(stats["outOfSeasonRows"], ShouldEqual, 1)
			So(stats["duplicateRows"], ShouldEqual, 1)
			So(stats["unresolvedRegionRows"], ShouldEqual, 1)
			So(stats["rows"], ShouldEqual, 5)
		})

		Convey("When starting it a second time", func() {
			err := svc.Start(ctx)

			Convey("Then it should be a no-op", func() {
				So(err, ShouldBeNil)
				So(svc.GetStats()["rows"], ShouldEqual, 5)
			})
		})

		Convey("When stopping it", func() {
			svc.Stop()

			Convey("Then queries should fail again", func() {
				_, err := svc.Catalog(ctx)
				So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			})
		})
	})

	Convey("Given a lookup that maps one NOC to two regions", t, func() {
		ds := smallDataset()
		ds.Regions = append(ds.Regions, model.RegionEntry{NOC: "USA", Region: "America"})
		svc := service.New(service.WithLogger(logger.NewNop()), service.WithDataset(ds))

		Convey("Then Start should fail", func() {
			So(svc.Start(context.Background()), ShouldNotBeNil)
		})
	})
}

func TestService_Queries(t *testing.T) {
	Convey("Given a started service", t, func() {
		ctx := context.Background()
		svc := newStarted()
		defer svc.Stop()

		Convey("When asking for the overall medal tally", func() {
			tally, err := svc.MedalTally(ctx, "Overall", "Overall")

			Convey("Then regions should be ranked by gold, silver, bronze", func() {
				So(err, ShouldBeNil)
				So(tally.GroupBy, ShouldEqual, analytics.GroupByRegion)
				So(len(tally.Rows), ShouldEqual, 3)
				So(tally.Rows[0].Region, ShouldEqual, "USA")
				So(tally.Rows[1].Region, ShouldEqual, "China")
				So(tally.Rows[2].Region, ShouldEqual, "UK")
				So(tally.Rows[0].Total, ShouldEqual, 2)
			})
		})

		Convey("When asking for one region across all editions", func() {
			tally, err := svc.MedalTally(ctx, "", "USA")

			Convey("Then rows should be grouped by edition", func() {
				So(err, ShouldBeNil)
				So(tally.GroupBy, ShouldEqual, analytics.GroupByEdition)
				So(len(tally.Rows), ShouldEqual, 2)
				So(tally.Rows[0].Year, ShouldEqual, 2000)
			})
		})

		Convey("When the edition is not a year", func() {
			_, err := svc.MedalTally(ctx, "20x0", "Overall")

			Convey("Then ErrInvalidEdition should be returned", func() {
				So(errors.Is(err, model.ErrInvalidEdition), ShouldBeTrue)
			})
		})

		Convey("When a region-only view has no region", func() {
			_, err1 := svc.MedalsPerEdition(ctx, "Overall")
			_, err2 := svc.CountryHeatmap(ctx, "")

			Convey("Then ErrMissingParameter should be returned", func() {
				So(errors.Is(err1, service.ErrMissingParameter), ShouldBeTrue)
				So(errors.Is(err2, service.ErrMissingParameter), ShouldBeTrue)
			})
		})

		Convey("When counting an unknown attribute over time", func() {
			_, err := svc.OverTime(ctx, "colour", "")

			Convey("Then ErrUnknownAttribute should be returned", func() {
				So(errors.Is(err, analytics.ErrUnknownAttribute), ShouldBeTrue)
			})
		})

		Convey("When counting sports over time without a label", func() {
			counts, err := svc.OverTime(ctx, "Sport", "")

			Convey("Then the default label should be used", func() {
				So(err, ShouldBeNil)
				So(counts.Label, ShouldEqual, "No. of Sports")
				So(len(counts.Rows), ShouldEqual, 2)
			})
		})

		Convey("When reading the catalog", func() {
			catalog, err := svc.Catalog(ctx)

			Convey("Then it should list sorted known values", func() {
				So(err, ShouldBeNil)
				So(catalog.Editions, ShouldResemble, []int{2000, 2004})
				So(catalog.Regions, ShouldResemble, []string{"China", "UK", "USA"})
				So(catalog.Sports, ShouldResemble, []string{"Athletics", "Diving", "Rowing"})
			})
		})

		Convey("When a caller mutates a returned result", func() {
			first, err := svc.TopAthletes(ctx, "Overall", "Overall")
			So(err, ShouldBeNil)
			So(len(first.Rows), ShouldBeGreaterThan, 0)
			name := first.Rows[0].Name
			first.Rows[0].Name = "changed"

			second, err := svc.TopAthletes(ctx, "Overall", "Overall")

			Convey("Then the cached value should be unaffected", func() {
				So(err, ShouldBeNil)
				So(second.Rows[0].Name, ShouldEqual, name)
			})
		})

		Convey("When the same query runs twice", func() {
			_, _ = svc.Summary(ctx)
			_, _ = svc.Summary(ctx)

			Convey("Then one cache entry should exist", func() {
				So(svc.GetStats()["cacheEntries"], ShouldEqual, 1)
			})
		})

		Convey("When asking for gold ages with no sports", func() {
			svc := newStarted(service.WithGoldAgeSports([]string{"Diving", "Athletics", "Fencing"}))
			ages, err := svc.GoldAgesBySport(ctx, nil)

			Convey("Then the configured sports should be used in order", func() {
				So(err, ShouldBeNil)
				So(len(ages.Series), ShouldEqual, 3)
				So(ages.Series[0].Label, ShouldEqual, "Diving")
				So(ages.Series[0].Ages, ShouldResemble, []float64{25})
				So(ages.Series[2].Ages, ShouldBeEmpty)
			})
		})

		Convey("When one sport name contains the text of two", func() {
			two, err := svc.GoldAgesBySport(ctx, []string{"Diving", "Athletics"})
			So(err, ShouldBeNil)
			one, err := svc.GoldAgesBySport(ctx, []string{"Diving\x1fAthletics"})
			So(err, ShouldBeNil)

			Convey("Then each request gets its own table", func() {
				So(len(two.Series), ShouldEqual, 2)
				So(len(one.Series), ShouldEqual, 1)
				So(one.Series[0].Label, ShouldEqual, "Diving\x1fAthletics")
				So(one.Series[0].Ages, ShouldBeEmpty)
			})
		})
	})
}

func TestService_Suggest(t *testing.T) {
	Convey("Given a started service", t, func() {
		ctx := context.Background()
		svc := newStarted()
		defer svc.Stop()

		Convey("Then a misspelt region should get a suggestion", func() {
			got, ok := svc.Suggest(ctx, service.DimensionRegion, "Chnia")
			So(ok, ShouldBeTrue)
			So(got, ShouldEqual, "China")
		})

		Convey("Then a wrongly cased region should suggest the catalog spelling", func() {
			got, ok := svc.Suggest(ctx, service.DimensionRegion, "usa")
			So(ok, ShouldBeTrue)
			So(got, ShouldEqual, "USA")
		})

		Convey("Then a misspelt sport should get a suggestion", func() {
			got, ok := svc.Suggest(ctx, service.DimensionSport, "Rowwing")
			So(ok, ShouldBeTrue)
			So(got, ShouldEqual, "Rowing")
		})

		Convey("Then known values, Overall and distant values get nothing", func() {
			_, ok := svc.Suggest(ctx, service.DimensionRegion, "USA")
			So(ok, ShouldBeFalse)
			_, ok = svc.Suggest(ctx, service.DimensionRegion, "Overall")
			So(ok, ShouldBeFalse)
			_, ok = svc.Suggest(ctx, service.DimensionRegion, "Zimbabwe")
			So(ok, ShouldBeFalse)
		})
	})
}
