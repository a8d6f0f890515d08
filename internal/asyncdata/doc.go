// Package asyncdata memoizes the results of loaders by cache key and
// coalesces concurrent loads of the same key into one call.
//
// An entry is created Pending the first time a key is requested and settles
// exactly once, as Resolved or Failed. Callers that arrive while it is
// Pending wait for the same outcome instead of starting another load.
// Failures are cached like values; nothing is retried until the caller asks
// for it with Refresh or Invalidate.
//
// A Scope ties entries to the lifetime of a view: entries loaded through a
// scope are evicted once every scope holding them has been closed. Entries
// loaded directly on the Cache stay until they are invalidated.
//
//	tags := asyncdata.Load(ctx, scope, "tags", func(ctx context.Context) ([]Tag, error) {
//		var out []Tag
//		return out, client.Do(ctx, req, &out)
//	})
//	if tags.Err != nil { ... }
package asyncdata
