package asyncdata_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DanielPopoola/shelter-fetch/internal/asyncdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScope_CloseEvictsUnsharedEntries(t *testing.T) {
	cache := asyncdata.NewCache()
	var calls atomic.Int32
	scope := cache.NewScope()

	asyncdata.Load(context.Background(), scope, "news", countingLoader(&calls, nil, "v1", nil))
	require.Equal(t, 1, cache.Len())

	scope.Close()
	assert.Equal(t, 0, cache.Len())

	next := cache.NewScope()
	defer next.Close()
	r := asyncdata.Load(context.Background(), next, "news", countingLoader(&calls, nil, "v2", nil))
	assert.Equal(t, "v2", r.Data)
	assert.Equal(t, int32(2), calls.Load())
}

func TestScope_SharedEntrySurvivesUntilLastScope(t *testing.T) {
	cache := asyncdata.NewCache()
	var calls atomic.Int32
	header := cache.NewScope()
	page := cache.NewScope()

	asyncdata.Load(context.Background(), header, "tags", countingLoader(&calls, nil, "tags", nil))
	asyncdata.Load(context.Background(), page, "tags", countingLoader(&calls, nil, "tags", nil))
	assert.Equal(t, int32(1), calls.Load())

	header.Close()
	_, ok := cache.Peek("tags")
	assert.True(t, ok)

	page.Close()
	_, ok = cache.Peek("tags")
	assert.False(t, ok)
}

func TestScope_RepeatedLoadsSubscribeOnce(t *testing.T) {
	cache := asyncdata.NewCache()
	var calls atomic.Int32
	scope := cache.NewScope()

	for i := 0; i < 3; i++ {
		asyncdata.Load(context.Background(), scope, "dogs", countingLoader(&calls, nil, "dogs", nil))
	}
	scope.Close()

	assert.Equal(t, 0, cache.Len())
}

func TestScope_UnscopedLoadRetainsEntry(t *testing.T) {
	cache := asyncdata.NewCache()
	var calls atomic.Int32
	scope := cache.NewScope()

	asyncdata.Load(context.Background(), scope, "stats", countingLoader(&calls, nil, 1, nil))
	asyncdata.Load(context.Background(), cache, "stats", countingLoader(&calls, nil, 1, nil))
	scope.Close()

	_, ok := cache.Peek("stats")
	assert.True(t, ok)
}

func TestScope_ClosedWhilePendingEvictsOnSettle(t *testing.T) {
	cache := asyncdata.NewCache()
	var calls atomic.Int32
	release := make(chan struct{})
	scope := cache.NewScope()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := asyncdata.Load(ctx, scope, "dog:3", countingLoader(&calls, release, "Bim", nil))
	require.True(t, r.Pending)

	scope.Close()
	_, ok := cache.Peek("dog:3")
	assert.True(t, ok, "pending load keeps its entry until it settles")

	close(release)
	assert.Eventually(t, func() bool { return cache.Len() == 0 }, time.Second, time.Millisecond)
}

func TestScope_CloseIsIdempotent(t *testing.T) {
	cache := asyncdata.NewCache()
	var calls atomic.Int32
	a := cache.NewScope()
	b := cache.NewScope()

	asyncdata.Load(context.Background(), a, "tags", countingLoader(&calls, nil, 1, nil))
	asyncdata.Load(context.Background(), b, "tags", countingLoader(&calls, nil, 1, nil))

	a.Close()
	a.Close()

	_, ok := cache.Peek("tags")
	assert.True(t, ok, "second close must not release b's subscription")
}

func TestScope_RefreshKeepsSubscription(t *testing.T) {
	cache := asyncdata.NewCache()
	var calls atomic.Int32
	scope := cache.NewScope()

	asyncdata.Load(context.Background(), scope, "news", countingLoader(&calls, nil, "v1", nil))
	r := asyncdata.Refresh(context.Background(), scope, "news", countingLoader(&calls, nil, "v2", nil))
	assert.Equal(t, "v2", r.Data)

	scope.Close()
	assert.Equal(t, 0, cache.Len())
}

func TestScope_ResubscribesAfterInvalidate(t *testing.T) {
	cache := asyncdata.NewCache()
	var calls atomic.Int32
	scope := cache.NewScope()
	other := cache.NewScope()
	defer other.Close()

	asyncdata.Load(context.Background(), scope, "tags", countingLoader(&calls, nil, 1, nil))
	cache.Invalidate("tags")
	asyncdata.Load(context.Background(), scope, "tags", countingLoader(&calls, nil, 2, nil))
	asyncdata.Load(context.Background(), other, "tags", countingLoader(&calls, nil, 3, nil))

	scope.Close()
	r, ok := asyncdata.Get[int](cache, "tags")
	require.True(t, ok)
	assert.Equal(t, 2, r.Data)
}
