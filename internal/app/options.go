package service

import (
	"slices"

	"github.com/okian/podium/internal/adapters/ingest"
	"github.com/okian/podium/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithFiles reads the dataset from the two CSV files on Start.
func WithFiles(resultsPath, regionsPath string) Option {
	return func(s *Service) {
		s.resultsPath = resultsPath
		s.regionsPath = regionsPath
	}
}

// WithDataset uses an in-memory dataset instead of files.
func WithDataset(ds ingest.Dataset) Option {
	return func(s *Service) {
		s.dataset = &ds
	}
}

// WithSeason sets the season kept by normalization.
func WithSeason(season string) Option {
	return func(s *Service) {
		if season != "" {
			s.season = season
		}
	}
}

// WithWarmup precomputes the parameterless queries on Start using at most
// concurrency goroutines.
func WithWarmup(enabled bool, concurrency int) Option {
	return func(s *Service) {
		s.warmup = enabled
		if concurrency > 0 {
			s.warmupConcurrency = concurrency
		}
	}
}

// WithGoldAgeSports sets the default sports of the gold medallist age view.
func WithGoldAgeSports(sports []string) Option {
	return func(s *Service) {
		if len(sports) > 0 {
			s.goldAgeSports = slices.Clone(sports)
		}
	}
}
