// Package cache memoizes query results over the immutable canonical table.
//
// Entries never expire: the table does not change for the lifetime of the
// process, so a hit is always equivalent to recomputing. Concurrent requests
// for the same key share a single computation.
package cache

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/okian/podium/pkg/metrics"
)

// Key identifies one query: the operation name and its canonical parameters.
type Key struct {
	Op     string
	Params []string
}

// NewKey builds a Key.
func NewKey(op string, params ...string) Key {
	return Key{Op: op, Params: params}
}

// String renders the canonical form used for lookups. Every part is quoted,
// so parameters containing separators or quotes cannot collide.
func (k Key) String() string {
	var b strings.Builder
	b.WriteString(strconv.Quote(k.Op))
	for _, p := range k.Params {
		b.WriteByte(',')
		b.WriteString(strconv.Quote(p))
	}
	return b.String()
}

// Cloner is implemented by results that hand callers their own copy.
type Cloner[T any] interface {
	Clone() T
}

// Memo is a concurrency-safe memo table.
type Memo struct {
	mu      sync.RWMutex
	entries map[string]any
	sf      singleflight.Group
}

// New creates an empty Memo.
func New(opts ...Option) *Memo {
	cfg := options{}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Memo{entries: make(map[string]any, max(cfg.capacity, 0))}
}

// Len returns the number of memoized results.
func (m *Memo) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func (m *Memo) lookup(key string) (any, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.entries[key]
	return v, ok
}

// Do returns the memoized value for key, computing it with fn on a miss.
// Errors are returned to every waiter and are not memoized. If ctx ends
// before the shared computation finishes, Do returns ctx.Err() while the
// computation carries on for the other callers.
func (m *Memo) Do(ctx context.Context, key Key, fn func() (any, error)) (any, error) {
	k := key.String()
	if v, ok := m.lookup(k); ok {
		metrics.RecordCacheHit(key.Op)
		return v, nil
	}

	ch := m.sf.DoChan(k, func() (any, error) {
		// Re-check under singleflight: a previous flight may have just stored it.
		if v, ok := m.lookup(k); ok {
			return v, nil
		}
		metrics.RecordCacheMiss(key.Op)
		start := time.Now()
		v, err := fn()
		metrics.RecordQueryDuration(key.Op, float64(time.Since(start).Microseconds())/1000)
		if err != nil {
			metrics.RecordQueryError(key.Op)
			return nil, err
		}
		m.mu.Lock()
		m.entries[k] = v
		m.mu.Unlock()
		return v, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Shared {
			metrics.RecordCacheShared(key.Op)
		}
		return res.Val, res.Err
	}
}

// Get is the typed form of Memo.Do. The caller receives a clone, never the
// memoized value itself.
func Get[T Cloner[T]](ctx context.Context, m *Memo, key Key, fn func() (T, error)) (T, error) {
	v, err := m.Do(ctx, key, func() (any, error) {
		return fn()
	})
	if err != nil {
		var zero T
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %s holds %T", ErrTypeMismatch, key.Op, v)
	}
	return t.Clone(), nil
}
