package dedupe

type options struct {
	capacity int
}

// Option configures a Set.
type Option func(*options)

// WithCapacity pre-sizes the set for n keys. Non-positive values are ignored.
func WithCapacity(n int) Option {
	return func(o *options) {
		o.capacity = n
	}
}
