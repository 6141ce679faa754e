package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/podium/internal/domain/analytics"
	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/pkg/logger"
)

// Warm precomputes the queries that take no caller-specific parameters,
// plus the per-region views for every region in the catalog.
func (s *Service) Warm(ctx context.Context) error {
	start := time.Now()
	catalog, err := s.Catalog(ctx)
	if err != nil {
		return err
	}

	tasks := []func(context.Context) error{
		func(ctx context.Context) error { _, err := s.Summary(ctx); return err },
		func(ctx context.Context) error { _, err := s.MedalTally(ctx, model.OverallLabel, model.OverallLabel); return err },
		func(ctx context.Context) error { _, err := s.EventsHeatmap(ctx); return err },
		func(ctx context.Context) error { _, err := s.Participation(ctx); return err },
		func(ctx context.Context) error { _, err := s.AgesByMedal(ctx); return err },
		func(ctx context.Context) error { _, err := s.GoldAgesBySport(ctx, nil); return err },
		func(ctx context.Context) error { _, err := s.TopAthletes(ctx, model.OverallLabel, model.OverallLabel); return err },
		func(ctx context.Context) error { _, err := s.PhysicalAttributes(ctx, model.OverallLabel); return err },
	}
	for _, attr := range []analytics.Attribute{analytics.AttrRegion, analytics.AttrSport, analytics.AttrEvent, analytics.AttrName} {
		tasks = append(tasks, func(ctx context.Context) error { _, err := s.OverTime(ctx, string(attr), ""); return err })
	}
	for _, region := range catalog.Regions {
		tasks = append(tasks,
			func(ctx context.Context) error { _, err := s.MedalTally(ctx, model.OverallLabel, region); return err },
			func(ctx context.Context) error { _, err := s.MedalsPerEdition(ctx, region); return err },
			func(ctx context.Context) error { _, err := s.CountryHeatmap(ctx, region); return err },
			func(ctx context.Context) error { _, err := s.TopAthletes(ctx, model.OverallLabel, region); return err },
		)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.warmupConcurrency)
	for _, task := range tasks {
		g.Go(func() error { return task(gctx) })
	}
	if err := g.Wait(); err != nil {
		return err
	}

	s.logger.Info(ctx, "cache warmed",
		logger.Int("queries", len(tasks)+1),
		logger.Duration("took", time.Since(start)),
	)
	return nil
}
