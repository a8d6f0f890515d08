package asyncdata

import (
	"context"
	"sync"
)

var (
	_ Source = (*Cache)(nil)
	_ Source = (*Scope)(nil)
)

// Scope subscribes to entries on behalf of one view. Closing it releases
// every subscription; entries nobody else holds are then evicted, and a load
// still in flight is evicted as soon as it settles.
type Scope struct {
	c      *Cache
	mu     sync.Mutex
	held   map[string]*slot
	closed bool
}

func (c *Cache) NewScope() *Scope {
	return &Scope{c: c, held: make(map[string]*slot)}
}

func (s *Scope) cache() *Cache { return s.c }

// Invalidate drops key from the underlying cache.
func (s *Scope) Invalidate(key string) { s.c.Invalidate(key) }

func (s *Scope) acquire(ctx context.Context, key string, loader func(context.Context) (any, error), force bool) *entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.c
	c.mu.Lock()
	defer c.mu.Unlock()

	sl := c.slotLocked(key)
	if !s.closed && s.held[key] != sl {
		if prev, ok := s.held[key]; ok {
			prev.subscribers--
		}
		sl.subscribers++
		s.held[key] = sl
	}
	return c.entryLocked(ctx, sl, loader, force)
}

// Close releases the scope's subscriptions. Loads made through a closed
// scope behave like loads on the Cache that are not retained.
func (s *Scope) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true

	c := s.c
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, sl := range s.held {
		sl.subscribers--
		if sl.subscribers == 0 && !sl.retained && sl.current != nil && sl.current.state != Pending {
			c.evictLocked(sl)
		}
		delete(s.held, key)
	}
}
