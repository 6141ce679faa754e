package normalize

import "strings"

// Option applies a configuration option to the Normalizer.
type Option func(*Normalizer)

// WithSeason sets the season kept by the normalizer. Matching ignores case.
func WithSeason(season string) Option {
	return func(n *Normalizer) {
		if s := strings.TrimSpace(season); s != "" {
			n.season = s
		}
	}
}
