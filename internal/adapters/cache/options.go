package cache

type options struct {
	capacity int
}

// Option applies a configuration option to the Memo.
type Option func(*options)

// WithCapacity pre-sizes the memo table. It is a hint, not a bound.
func WithCapacity(n int) Option {
	return func(o *options) {
		o.capacity = n
	}
}
