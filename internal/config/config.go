// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers a YAML file and PODIUM_* env vars on top of the defaults.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"runtime"
	"slices"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn warning error"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format" validate:"oneof=text json"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr" validate:"required"`

	// ResultsPath points at the per-athlete results CSV.
	ResultsPath string `koanf:"results_path" validate:"required"`

	// RegionsPath points at the NOC to region lookup CSV.
	RegionsPath string `koanf:"regions_path" validate:"required"`

	// Season keeps only results of this season.
	Season string `koanf:"season" validate:"required"`

	// Warmup precomputes the parameterless queries at start-up.
	Warmup bool `koanf:"warmup"`

	// WarmupConcurrency bounds the warm-up goroutines.
	WarmupConcurrency int `koanf:"warmup_concurrency" validate:"min=1,max=256"`

	// GoldAgeSports lists the sports of the gold medallist age distribution.
	GoldAgeSports []string `koanf:"gold_age_sports" validate:"dive,required"`
}

// DefaultGoldAgeSports is the sport list of the gold medallist age view.
var DefaultGoldAgeSports = []string{ //nolint:gochecknoglobals // read-only default list
	"Basketball", "Judo", "Football", "Tug-Of-War", "Athletics", "Swimming",
	"Badminton", "Sailing", "Gymnastics", "Art Competitions", "Handball",
	"Weightlifting", "Wrestling", "Water Polo", "Hockey", "Rowing", "Fencing",
	"Shooting", "Boxing", "Taekwondo", "Cycling", "Diving", "Canoeing",
	"Tennis", "Golf", "Softball", "Archery", "Volleyball",
	"Synchronized Swimming", "Table Tennis", "Baseball", "Rhythmic Gymnastics",
	"Rugby Sevens", "Beach Volleyball", "Triathlon", "Rugby", "Polo", "Ice Hockey",
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":9080",
		ResultsPath:       "data/athlete_events.csv",
		RegionsPath:       "data/noc_regions.csv",
		Season:            "Summer",
		Warmup:            true,
		WarmupConcurrency: runtime.NumCPU(),
		GoldAgeSports:     slices.Clone(DefaultGoldAgeSports),
	}
}
