// Package service loads the results dataset once and answers every
// analytical query the HTTP API and CLI expose, memoizing the results.
package service

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/okian/podium/internal/adapters/cache"
	"github.com/okian/podium/internal/adapters/ingest"
	"github.com/okian/podium/internal/domain/analytics"
	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/normalize"
	"github.com/okian/podium/pkg/logger"
	"github.com/okian/podium/pkg/metrics"
)

// Query operation names, used as cache keys and metric labels.
const (
	OpTally         = "tally"
	OpMedalsPerYear = "medals_by_edition"
	OpOverTime      = "over_time"
	OpEventsHeatmap = "events_heatmap"
	OpMedalsHeatmap = "medals_heatmap"
	OpTopAthletes   = "top_athletes"
	OpPhysique      = "physique"
	OpParticipation = "participation"
	OpAges          = "ages"
	OpGoldAges      = "gold_ages"
	OpCatalog       = "catalog"
	OpSummary       = "summary"
)

// Service implements the API dependencies for the results engine.
type Service struct {
	mu sync.RWMutex

	// Data sources
	resultsPath string
	regionsPath string
	dataset     *ingest.Dataset

	// Configuration
	season            string
	warmup            bool
	warmupConcurrency int
	goldAgeSports     []string

	// State
	table        *model.Table
	report       normalize.Report
	memo         *cache.Memo
	started      bool
	loadDuration time.Duration

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		season:            normalize.DefaultSeason,
		warmupConcurrency: runtime.NumCPU(),
		logger:            nil, // Will be replaced when service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads and normalizes the dataset, then optionally warms the cache.
// Calling Start on a started service is a no-op.
func (s *Service) Start(ctx context.Context) error {
	loaded, err := s.init(ctx)
	if err != nil || !loaded || !s.warmup {
		return err
	}
	if err := s.Warm(ctx); err != nil {
		s.logger.Warn(ctx, "cache warm-up incomplete", logger.Error(err))
	}
	return nil
}

// init loads the table under the write lock. It reports false when the
// service was already started.
func (s *Service) init(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return false, nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting results service...",
		logger.String("season", s.season),
		logger.Bool("warmup", s.warmup),
	)
	start := time.Now()

	ds, err := s.load(ctx)
	if err != nil {
		return false, err
	}

	table, rep, err := normalize.New(normalize.WithSeason(s.season)).Run(ds.Results, ds.Regions)
	if err != nil {
		return false, err
	}

	s.table = table
	s.report = rep
	s.memo = cache.New(cache.WithCapacity(64))
	s.loadDuration = time.Since(start)
	s.started = true

	metrics.UpdateDatasetRows("input", rep.Input)
	metrics.UpdateDatasetRows("out_of_season", rep.OutOfSeason)
	metrics.UpdateDatasetRows("duplicates", rep.Duplicates)
	metrics.UpdateDatasetRows("unresolved_region", rep.UnresolvedRegions)
	metrics.UpdateDatasetRows("canonical", rep.Output)

	s.logger.Info(ctx, "results dataset loaded",
		logger.Int("input", rep.Input),
		logger.Int("outOfSeason", rep.OutOfSeason),
		logger.Int("duplicates", rep.Duplicates),
		logger.Int("unresolvedRegions", rep.UnresolvedRegions),
		logger.Int("rows", rep.Output),
		logger.Int("regions", len(ds.Regions)),
		logger.Duration("took", s.loadDuration),
	)
	return true, nil
}

func (s *Service) load(ctx context.Context) (ingest.Dataset, error) {
	if s.dataset != nil {
		return *s.dataset, nil
	}
	if s.resultsPath == "" || s.regionsPath == "" {
		return ingest.Dataset{}, ErrNoDataSource
	}
	s.logger.Info(ctx, "reading dataset files",
		logger.String("results", s.resultsPath),
		logger.String("regions", s.regionsPath),
	)
	return ingest.LoadFiles(ctx, s.resultsPath, s.regionsPath)
}

// Stop releases the table and cached results.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.table = nil
	s.memo = nil
	s.started = false
	metrics.UpdateCacheEntries(0)
	s.logger.Info(context.Background(), "results service stopped")
}

func (s *Service) snapshot() (*model.Table, *cache.Memo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, nil, ErrNotStarted
	}
	return s.table, s.memo, nil
}

// query memoizes compute under key on the current snapshot.
func query[T cache.Cloner[T]](ctx context.Context, s *Service, key cache.Key, compute func(*model.Table) (T, error)) (T, error) {
	table, memo, err := s.snapshot()
	if err != nil {
		var zero T
		return zero, err
	}
	v, err := cache.Get(ctx, memo, key, func() (T, error) { return compute(table) })
	metrics.UpdateCacheEntries(memo.Len())
	return v, err
}

func pure[T any](f func(*model.Table) T) func(*model.Table) (T, error) {
	return func(t *model.Table) (T, error) { return f(t), nil }
}

func requireLabel(name, v string) (string, error) {
	f := model.ParseLabel(v)
	label, ok := f.Value()
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingParameter, name)
	}
	return label, nil
}

// MedalTally returns the medal standings for an edition and region, each of
// which may be "Overall".
func (s *Service) MedalTally(ctx context.Context, edition, region string) (analytics.Tally, error) {
	ed, err := model.ParseEdition(edition)
	if err != nil {
		metrics.RecordQueryError(OpTally)
		return analytics.Tally{}, err
	}
	rg := model.ParseLabel(region)
	return query(ctx, s, cache.NewKey(OpTally, ed.String(), rg.String()), func(t *model.Table) (analytics.Tally, error) {
		return analytics.MedalTally(t, ed, rg), nil
	})
}

// MedalsPerEdition returns one region's medal count per edition.
func (s *Service) MedalsPerEdition(ctx context.Context, region string) (analytics.EditionCounts, error) {
	rg, err := requireLabel("region", region)
	if err != nil {
		metrics.RecordQueryError(OpMedalsPerYear)
		return analytics.EditionCounts{}, err
	}
	return query(ctx, s, cache.NewKey(OpMedalsPerYear, rg), func(t *model.Table) (analytics.EditionCounts, error) {
		return analytics.MedalsPerEdition(t, rg), nil
	})
}

// OverTime counts the distinct values of attribute per edition. An empty
// label selects the attribute's default label.
func (s *Service) OverTime(ctx context.Context, attribute, label string) (analytics.EditionCounts, error) {
	attr, err := analytics.ParseAttribute(attribute)
	if err != nil {
		metrics.RecordQueryError(OpOverTime)
		return analytics.EditionCounts{}, err
	}
	label = strings.TrimSpace(label)
	if label == "" {
		label = attr.DefaultLabel()
	}
	return query(ctx, s, cache.NewKey(OpOverTime, string(attr), label), func(t *model.Table) (analytics.EditionCounts, error) {
		return analytics.OverTime(t, attr, label)
	})
}

// EventsHeatmap returns the events per sport per edition matrix.
func (s *Service) EventsHeatmap(ctx context.Context) (analytics.Matrix, error) {
	return query(ctx, s, cache.NewKey(OpEventsHeatmap), pure(analytics.EventsPerSportPerEdition))
}

// CountryHeatmap returns one region's medals per sport per edition.
func (s *Service) CountryHeatmap(ctx context.Context, region string) (analytics.Matrix, error) {
	rg, err := requireLabel("region", region)
	if err != nil {
		metrics.RecordQueryError(OpMedalsHeatmap)
		return analytics.Matrix{}, err
	}
	return query(ctx, s, cache.NewKey(OpMedalsHeatmap, rg), func(t *model.Table) (analytics.Matrix, error) {
		return analytics.CountryEventHeatmap(t, rg), nil
	})
}

// TopAthletes returns the most decorated athletes for a sport and region.
func (s *Service) TopAthletes(ctx context.Context, sport, region string) (analytics.Leaderboard, error) {
	scope := analytics.Scope{Sport: model.ParseLabel(sport), Region: model.ParseLabel(region)}
	key := cache.NewKey(OpTopAthletes, scope.Sport.String(), scope.Region.String())
	return query(ctx, s, key, func(t *model.Table) (analytics.Leaderboard, error) {
		return analytics.TopAthletes(t, scope), nil
	})
}

// PhysicalAttributes returns the height and weight scatter for a sport.
func (s *Service) PhysicalAttributes(ctx context.Context, sport string) (analytics.PhysicalSlice, error) {
	sp := model.ParseLabel(sport)
	return query(ctx, s, cache.NewKey(OpPhysique, sp.String()), func(t *model.Table) (analytics.PhysicalSlice, error) {
		return analytics.PhysicalAttributes(t, sp), nil
	})
}

// Participation returns male and female athletes per edition.
func (s *Service) Participation(ctx context.Context) (analytics.Participation, error) {
	return query(ctx, s, cache.NewKey(OpParticipation), pure(analytics.ParticipationBySex))
}

// AgesByMedal returns the overall, gold, silver and bronze age samples.
func (s *Service) AgesByMedal(ctx context.Context) (analytics.AgeDistribution, error) {
	return query(ctx, s, cache.NewKey(OpAges), pure(analytics.AgesByMedal))
}

// GoldAgesBySport returns gold medallist ages per sport. No sports selects
// the configured default list.
func (s *Service) GoldAgesBySport(ctx context.Context, sports []string) (analytics.AgeDistribution, error) {
	if len(sports) == 0 {
		sports = s.goldAgeSports
	}
	return query(ctx, s, cache.NewKey(OpGoldAges, sports...), func(t *model.Table) (analytics.AgeDistribution, error) {
		return analytics.GoldAgesBySport(t, sports), nil
	})
}

// Catalog returns the filterable editions, regions and sports.
func (s *Service) Catalog(ctx context.Context) (analytics.Catalog, error) {
	return query(ctx, s, cache.NewKey(OpCatalog), pure(analytics.BuildCatalog))
}

// Summary returns the headline distinct counts.
func (s *Service) Summary(ctx context.Context) (analytics.Summary, error) {
	return query(ctx, s, cache.NewKey(OpSummary), pure(analytics.Summarize))
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started": s.started,
		"season":  s.season,
		"warmup":  s.warmup,
	}

	if s.started {
		stats["inputRows"] = s.report.Input
		stats["outOfSeasonRows"] = s.report.OutOfSeason
		stats["duplicateRows"] = s.report.Duplicates
		stats["unresolvedRegionRows"] = s.report.UnresolvedRegions
		stats["rows"] = s.table.Len()
		stats["cacheEntries"] = s.memo.Len()
		stats["loadDurationMs"] = s.loadDuration.Milliseconds()

		metrics.UpdateCacheEntries(s.memo.Len())
	}

	return stats
}
