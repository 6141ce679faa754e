package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	app "github.com/okian/podium/internal/app"
)

var errUnknownOperation = errors.New("unknown operation")

// queryFlags are the filters accepted by the query subcommand.
type queryFlags struct {
	edition   string
	region    string
	sport     []string
	attribute string
	label     string
}

// firstSport returns the single sport filter, or "" for all sports.
func (f queryFlags) firstSport() string {
	if len(f.sport) == 0 {
		return ""
	}
	return f.sport[0]
}

// table is a query result with its column set.
type table interface {
	Columns() []string
}

type queryFunc func(ctx context.Context, svc *app.Service, f queryFlags) (table, error)

func wrap[T table](v T, err error) (table, error) {
	if err != nil {
		return nil, err
	}
	return v, nil
}

var queries = map[string]queryFunc{
	app.OpTally: func(ctx context.Context, svc *app.Service, f queryFlags) (table, error) {
		return wrap(svc.MedalTally(ctx, f.edition, f.region))
	},
	app.OpMedalsPerYear: func(ctx context.Context, svc *app.Service, f queryFlags) (table, error) {
		return wrap(svc.MedalsPerEdition(ctx, f.region))
	},
	app.OpOverTime: func(ctx context.Context, svc *app.Service, f queryFlags) (table, error) {
		return wrap(svc.OverTime(ctx, f.attribute, f.label))
	},
	app.OpEventsHeatmap: func(ctx context.Context, svc *app.Service, _ queryFlags) (table, error) {
		return wrap(svc.EventsHeatmap(ctx))
	},
	app.OpMedalsHeatmap: func(ctx context.Context, svc *app.Service, f queryFlags) (table, error) {
		return wrap(svc.CountryHeatmap(ctx, f.region))
	},
	app.OpTopAthletes: func(ctx context.Context, svc *app.Service, f queryFlags) (table, error) {
		return wrap(svc.TopAthletes(ctx, f.firstSport(), f.region))
	},
	app.OpPhysique: func(ctx context.Context, svc *app.Service, f queryFlags) (table, error) {
		return wrap(svc.PhysicalAttributes(ctx, f.firstSport()))
	},
	app.OpParticipation: func(ctx context.Context, svc *app.Service, _ queryFlags) (table, error) {
		return wrap(svc.Participation(ctx))
	},
	app.OpAges: func(ctx context.Context, svc *app.Service, _ queryFlags) (table, error) {
		return wrap(svc.AgesByMedal(ctx))
	},
	app.OpGoldAges: func(ctx context.Context, svc *app.Service, f queryFlags) (table, error) {
		return wrap(svc.GoldAgesBySport(ctx, f.sport))
	},
	app.OpCatalog: func(ctx context.Context, svc *app.Service, _ queryFlags) (table, error) {
		return wrap(svc.Catalog(ctx))
	},
	app.OpSummary: func(ctx context.Context, svc *app.Service, _ queryFlags) (table, error) {
		return wrap(svc.Summary(ctx))
	},
}

func queryNames() []string {
	names := make([]string, 0, len(queries))
	for name := range queries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func newQueryCmd(c *cli) *cobra.Command {
	var f queryFlags
	cmd := &cobra.Command{
		Use:       "query <operation>",
		Short:     "Run one query against the dataset and print it as JSON",
		Long:      "Run one query against the dataset and print it as JSON.\n\nOperations: " + strings.Join(queryNames(), ", "),
		Args:      cobra.ExactArgs(1),
		ValidArgs: queryNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			run, ok := queries[args[0]]
			if !ok {
				return fmt.Errorf("%w %q (one of %s)",
					errUnknownOperation, args[0], strings.Join(queryNames(), ", "))
			}

			ctx := cmd.Context()
			svc := newService(c.cfg, c.log, false)
			if err := svc.Start(ctx); err != nil {
				return err
			}
			defer svc.Stop()

			res, err := run(ctx, svc, f)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Columns []string `json:"columns"`
				Data    any      `json:"data"`
			}{Columns: res.Columns(), Data: res})
		},
	}
	cmd.Flags().StringVar(&f.edition, "edition", "", "edition year or \"Overall\"")
	cmd.Flags().StringVar(&f.region, "region", "", "region name or \"Overall\"")
	cmd.Flags().StringSliceVar(&f.sport, "sport", nil, "sport filter; repeat for gold_ages")
	cmd.Flags().StringVar(&f.attribute, "attribute", "", "over_time attribute: region, sport, event or name")
	cmd.Flags().StringVar(&f.label, "label", "", "over_time value column label")
	return cmd
}
