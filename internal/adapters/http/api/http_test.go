package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/okian/podium/internal/adapters/http/api"
	service "github.com/okian/podium/internal/app"
	"github.com/okian/podium/internal/domain/analytics"
	"github.com/okian/podium/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

// mockDependencies answers every query from canned values and records the
// parameters it was called with.
type mockDependencies struct {
	calls   []string
	err     error
	regions []string
	sports  []string
}

func (m *mockDependencies) record(format string, args ...any) {
	m.calls = append(m.calls, fmt.Sprintf(format, args...))
}

func (m *mockDependencies) Suggest(_ context.Context, dim service.Dimension, value string) (string, bool) {
	known := m.regions
	if dim == service.DimensionSport {
		known = m.sports
	}
	for _, k := range known {
		if k == value || value == model.OverallLabel {
			return "", false
		}
	}
	if len(known) == 0 {
		return "", false
	}
	return known[0], true
}

func (m *mockDependencies) MedalTally(_ context.Context, edition, region string) (analytics.Tally, error) {
	m.record("tally %s %s", edition, region)
	if _, err := model.ParseEdition(edition); err != nil {
		return analytics.Tally{}, err
	}
	return analytics.Tally{GroupBy: analytics.GroupByRegion, Rows: []analytics.TallyRow{
		{Region: "USA", Medals: analytics.Medals{Gold: 2, Silver: 1, Total: 3}},
	}}, m.err
}

func (m *mockDependencies) MedalsPerEdition(_ context.Context, region string) (analytics.EditionCounts, error) {
	m.record("by-edition %s", region)
	if region == "" {
		return analytics.EditionCounts{}, service.ErrMissingParameter
	}
	return analytics.EditionCounts{Label: "Medal", Rows: []analytics.EditionCount{{Edition: 2000, Count: 4}}}, m.err
}

func (m *mockDependencies) CountryHeatmap(_ context.Context, region string) (analytics.Matrix, error) {
	m.record("medals-heatmap %s", region)
	return analytics.Matrix{Sports: []string{"Rowing"}, Editions: []int{2000}, Cells: [][]int{{1}}}, m.err
}

func (m *mockDependencies) OverTime(_ context.Context, attribute, label string) (analytics.EditionCounts, error) {
	m.record("trend %s %s", attribute, label)
	attr, err := analytics.ParseAttribute(attribute)
	if err != nil {
		return analytics.EditionCounts{}, err
	}
	return analytics.EditionCounts{Label: attr.DefaultLabel()}, m.err
}

func (m *mockDependencies) EventsHeatmap(context.Context) (analytics.Matrix, error) {
	m.record("events-heatmap")
	return analytics.Matrix{}, m.err
}

func (m *mockDependencies) TopAthletes(_ context.Context, sport, region string) (analytics.Leaderboard, error) {
	m.record("top %s %s", sport, region)
	return analytics.Leaderboard{}, m.err
}

func (m *mockDependencies) PhysicalAttributes(_ context.Context, sport string) (analytics.PhysicalSlice, error) {
	m.record("physique %s", sport)
	return analytics.PhysicalSlice{}, m.err
}

func (m *mockDependencies) Participation(context.Context) (analytics.Participation, error) {
	m.record("participation")
	return analytics.Participation{}, m.err
}

func (m *mockDependencies) AgesByMedal(context.Context) (analytics.AgeDistribution, error) {
	m.record("ages")
	return analytics.AgeDistribution{Series: []analytics.AgeSeries{{Label: "Overall Age", Ages: []float64{25}}}}, m.err
}

func (m *mockDependencies) GoldAgesBySport(_ context.Context, sports []string) (analytics.AgeDistribution, error) {
	m.record("gold-ages %v", sports)
	out := analytics.AgeDistribution{Series: []analytics.AgeSeries{}}
	for _, s := range append([]string{"Overall"}, sports...) {
		out.Series = append(out.Series, analytics.AgeSeries{Label: s})
	}
	return out, m.err
}

func (m *mockDependencies) Catalog(context.Context) (analytics.Catalog, error) {
	m.record("catalog")
	return analytics.Catalog{Editions: []int{2000}, Regions: m.regions, Sports: m.sports}, m.err
}

func (m *mockDependencies) Summary(context.Context) (analytics.Summary, error) {
	m.record("summary")
	return analytics.Summary{Editions: 1}, m.err
}

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

type decoded struct {
	Columns []string        `json:"columns"`
	Data    json.RawMessage `json:"data"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
}

func newMux(deps *mockDependencies) *http.ServeMux {
	server := api.NewServer(deps, &mockStatsProvider{stats: map[string]interface{}{"started": true}})
	mux := http.NewServeMux()
	server.Register(context.Background(), mux)
	return mux
}

func do(mux *http.ServeMux, method, target string) (*httptest.ResponseRecorder, decoded) {
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	var body decoded
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestServer_Register(t *testing.T) {
	Convey("Given a new API server", t, func() {
		deps := &mockDependencies{regions: []string{"China", "USA"}, sports: []string{"Rowing"}}
		mux := newMux(deps)

		Convey("Then health endpoint should be accessible", func() {
			w, _ := do(mux, http.MethodGet, "/healthz")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"status":"ok"`)
		})

		Convey("Then stats endpoint should be accessible", func() {
			w, _ := do(mux, http.MethodGet, "/stats")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"started":true`)
		})

		Convey("Then metrics endpoint should expose the registry", func() {
			_, _ = do(mux, http.MethodGet, "/healthz")
			w, _ := do(mux, http.MethodGet, "/metrics")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "podium_engine_http_requests_total")
		})

		Convey("Then every query route should answer 200", func() {
			for _, target := range []string{
				"/v1/catalog",
				"/v1/summary",
				"/v1/tally",
				"/v1/medals/by-edition?region=USA",
				"/v1/heatmaps/medals?region=USA",
				"/v1/trends/sport",
				"/v1/heatmaps/events",
				"/v1/athletes/top",
				"/v1/athletes/physique",
				"/v1/athletes/participation",
				"/v1/athletes/ages",
				"/v1/athletes/ages/gold",
			} {
				w, body := do(mux, http.MethodGet, target)
				So(w.Code, ShouldEqual, http.StatusOK)
				So(body.Columns, ShouldNotBeEmpty)
			}
			So(len(deps.calls), ShouldEqual, 12)
		})

		Convey("Then writes should be rejected", func() {
			w, _ := do(mux, http.MethodPost, "/v1/tally")
			So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
		})

		Convey("Then every response should carry a request id", func() {
			w, _ := do(mux, http.MethodGet, "/v1/summary")
			So(w.Header().Get(api.HeaderRequestID), ShouldNotBeEmpty)
		})
	})
}

func TestTallyHandler(t *testing.T) {
	Convey("Given the tally endpoint", t, func() {
		deps := &mockDependencies{regions: []string{"China", "USA"}}
		mux := newMux(deps)

		Convey("When passing edition and region", func() {
			w, body := do(mux, http.MethodGet, "/v1/tally?edition=2000&region=USA")

			Convey("Then the parameters should reach the service", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.calls, ShouldContain, "tally 2000 USA")
				So(body.Columns, ShouldResemble, []string{"Region", "Gold", "Silver", "Bronze", "Total"})
				So(w.Header().Get(api.HeaderDidYouMean), ShouldBeEmpty)
			})
		})

		Convey("When the edition is not a year", func() {
			w, body := do(mux, http.MethodGet, "/v1/tally?edition=sydney")

			Convey("Then it should answer 400", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(body.Code, ShouldEqual, "bad_request")
				So(body.Message, ShouldContainSubstring, "invalid edition")
			})
		})

		Convey("When the region is unknown", func() {
			w, _ := do(mux, http.MethodGet, "/v1/tally?region=Chnia")

			Convey("Then it should answer 200 with a suggestion", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get(api.HeaderDidYouMean), ShouldEqual, "region=China")
			})
		})
	})
}

func TestErrorMapping(t *testing.T) {
	Convey("Given query routes", t, func() {
		deps := &mockDependencies{}
		mux := newMux(deps)

		Convey("When a region-only view has no region", func() {
			w, _ := do(mux, http.MethodGet, "/v1/medals/by-edition")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the trend attribute is unknown", func() {
			w, body := do(mux, http.MethodGet, "/v1/trends/colour")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(body.Message, ShouldContainSubstring, "colour")
		})

		Convey("When the service is not started", func() {
			deps.err = service.ErrNotStarted
			w, body := do(mux, http.MethodGet, "/v1/summary")
			So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
			So(body.Code, ShouldEqual, "unavailable")
		})

		Convey("When the service fails unexpectedly", func() {
			deps.err = fmt.Errorf("boom")
			w, body := do(mux, http.MethodGet, "/v1/catalog")
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
			So(body.Code, ShouldEqual, "internal_error")
		})
	})
}

func TestAthleteHandler(t *testing.T) {
	Convey("Given the athlete endpoints", t, func() {
		deps := &mockDependencies{regions: []string{"USA"}, sports: []string{"Rowing", "Judo"}}
		mux := newMux(deps)

		Convey("When asking for gold ages of several sports", func() {
			w, _ := do(mux, http.MethodGet, "/v1/athletes/ages/gold?sport=Judo&sport=Rowing")

			Convey("Then the sports should be passed in order", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.calls, ShouldContain, "gold-ages [Judo Rowing]")
			})
		})

		Convey("When both top filters are misspelt", func() {
			w, _ := do(mux, http.MethodGet, "/v1/athletes/top?sport=Rowng&region=US")

			Convey("Then both suggestions should be returned", func() {
				So(w.Header().Values(api.HeaderDidYouMean), ShouldResemble, []string{"sport=Rowing", "region=USA"})
				So(deps.calls, ShouldContain, "top Rowng US")
			})
		})
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	Convey("Given a handler wrapped with the request id middleware", t, func() {
		var seen string
		h := api.RequestIDMiddleware(func(w http.ResponseWriter, r *http.Request) {
			seen = api.RequestID(r.Context())
		})

		Convey("When the caller supplies an id", func() {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(api.HeaderRequestID, "abc-123")
			w := httptest.NewRecorder()
			h(w, req)

			Convey("Then it should be propagated", func() {
				So(seen, ShouldEqual, "abc-123")
				So(w.Header().Get(api.HeaderRequestID), ShouldEqual, "abc-123")
			})
		})

		Convey("When the caller supplies none", func() {
			w := httptest.NewRecorder()
			h(w, httptest.NewRequest(http.MethodGet, "/", nil))

			Convey("Then a uuid should be assigned", func() {
				So(len(seen), ShouldEqual, 36)
				So(w.Header().Get(api.HeaderRequestID), ShouldEqual, seen)
			})
		})
	})
}
