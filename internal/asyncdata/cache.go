package asyncdata

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel/metric"
)

// Loader fetches the value for a key. It runs at most once per entry, on a
// context that keeps the caller's values but not its cancellation.
type Loader[T any] func(ctx context.Context) (T, error)

// Source is anything a resource can be loaded through: a Cache, or a Scope
// bound to one.
type Source interface {
	Invalidate(key string)
	acquire(ctx context.Context, key string, loader func(context.Context) (any, error), force bool) *entry
	cache() *Cache
}

type entry struct {
	state State
	value any
	err   error
	done  chan struct{}
}

// slot is the per-key holder that outlives individual loads: Refresh swaps
// its entry, Invalidate drops the slot.
type slot struct {
	key         string
	current     *entry
	subscribers int
	retained    bool
}

type Option func(*Cache)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMeter records lookups and settled loads on the given meter.
func WithMeter(m metric.Meter) Option {
	return func(c *Cache) {
		c.metrics = newCacheMetrics(m)
	}
}

type Cache struct {
	mu      sync.Mutex
	slots   map[string]*slot
	logger  *slog.Logger
	metrics cacheMetrics
}

func NewCache(opts ...Option) *Cache {
	c := &Cache{
		slots:   make(map[string]*slot),
		logger:  slog.Default(),
		metrics: newCacheMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

func (c *Cache) cache() *Cache { return c }

func (c *Cache) acquire(ctx context.Context, key string, loader func(context.Context) (any, error), force bool) *entry {
	c.mu.Lock()
	s := c.slotLocked(key)
	s.retained = true
	e := c.entryLocked(ctx, s, loader, force)
	c.mu.Unlock()
	return e
}

// slotLocked returns the slot for key, creating it if needed.
func (c *Cache) slotLocked(key string) *slot {
	s, ok := c.slots[key]
	if !ok {
		s = &slot{key: key}
		c.slots[key] = s
	}
	return s
}

// entryLocked returns the entry to wait on, starting a load when the slot
// has none or force is set.
func (c *Cache) entryLocked(ctx context.Context, s *slot, loader func(context.Context) (any, error), force bool) *entry {
	if e := s.current; e != nil && !force {
		if e.state == Pending {
			c.metrics.recordLookup(ctx, "join")
		} else {
			c.metrics.recordLookup(ctx, "hit")
		}
		return e
	}

	if force {
		c.metrics.recordLookup(ctx, "refresh")
	} else {
		c.metrics.recordLookup(ctx, "miss")
	}

	e := &entry{state: Pending, done: make(chan struct{})}
	s.current = e
	c.logger.Debug("starting load", "key", s.key, "refresh", force)

	go c.run(context.WithoutCancel(ctx), s, e, loader)
	return e
}

func (c *Cache) run(ctx context.Context, s *slot, e *entry, loader func(context.Context) (any, error)) {
	value, err := callLoader(ctx, loader)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		e.state = Failed
		e.err = err
		c.logger.Debug("load failed", "key", s.key, "error", err)
	} else {
		e.state = Resolved
		e.value = value
	}
	close(e.done)
	c.metrics.recordSettled(ctx, e.state)

	if s.current == e && s.subscribers == 0 && !s.retained {
		c.evictLocked(s)
	}
}

func callLoader(ctx context.Context, loader func(context.Context) (any, error)) (value any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			value = nil
			err = fmt.Errorf("loader panicked: %v", rec)
		}
	}()
	return loader(ctx)
}

func (c *Cache) evictLocked(s *slot) {
	if c.slots[s.key] == s {
		delete(c.slots, s.key)
		c.logger.Debug("evicted entry", "key", s.key)
	}
}

// Invalidate drops the entry for key without loading it again. Callers
// already waiting on a pending load still receive its outcome.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if s, ok := c.slots[key]; ok {
		delete(c.slots, s.key)
		c.logger.Debug("invalidated entry", "key", key)
	}
}

// Peek returns the current state of key without loading it.
func (c *Cache) Peek(key string) (Result[any], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.slots[key]
	if !ok || s.current == nil {
		return Result[any]{}, false
	}
	e := s.current
	switch e.state {
	case Pending:
		return Result[any]{Pending: true}, true
	case Failed:
		return Result[any]{Err: e.err}, true
	default:
		return Result[any]{Data: e.value}, true
	}
}

// Len is the number of keys currently held.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.slots)
}

// Load returns the value for key, running loader only if no entry exists.
// If ctx ends while the entry is still pending, Load returns a pending
// Result and the load carries on in the background.
func Load[T any](ctx context.Context, src Source, key string, loader Loader[T]) Result[T] {
	return typed[T](key, wait(ctx, src.acquire(ctx, key, erase(loader), false)))
}

// Refresh discards any entry for key and runs loader again.
func Refresh[T any](ctx context.Context, src Source, key string, loader Loader[T]) Result[T] {
	return typed[T](key, wait(ctx, src.acquire(ctx, key, erase(loader), true)))
}

// Get is Peek with the value typed as T.
func Get[T any](src Source, key string) (Result[T], bool) {
	r, ok := src.cache().Peek(key)
	if !ok {
		return Result[T]{}, false
	}
	return typed[T](key, outcome{value: r.Data, err: r.Err, pending: r.Pending}), true
}

func erase[T any](loader Loader[T]) func(context.Context) (any, error) {
	return func(ctx context.Context) (any, error) {
		v, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}

func wait(ctx context.Context, e *entry) outcome {
	select {
	case <-e.done:
	case <-ctx.Done():
		// done may have closed concurrently; prefer the settled outcome.
		select {
		case <-e.done:
		default:
			return outcome{pending: true}
		}
	}
	// state, value and err are written before done is closed.
	return outcome{value: e.value, err: e.err}
}
