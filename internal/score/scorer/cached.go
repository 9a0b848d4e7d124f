package scorer

import (
	"context"
	"log/slog"
	"time"

	"liveable/internal/cache"
	"liveable/internal/score"
)

// batchKey is the sentinel cache key for the all-districts batch.
const batchKey = "all"

// publishTimeout bounds the background write to the external store.
const publishTimeout = 10 * time.Second

// Publisher writes a computed batch to an external store for downstream
// consumers. Publishing is best-effort: failures are logged, never surfaced
// to the caller that triggered the computation.
type Publisher interface {
	Publish(ctx context.Context, batch *score.Batch) error
}

// Recorder observes freshly computed batches, e.g. for audit logging or
// history tracking.
type Recorder interface {
	Record(batch *score.Batch)
}

// CachedAggregator memoizes the aggregator's composites with a short TTL and
// publishes fresh batch results without blocking the caller. Repeated
// requests within the TTL window are served from memory with zero fetches.
type CachedAggregator struct {
	agg        *Aggregator
	composites *cache.Cache[*score.Composite]
	batches    *cache.Cache[*score.Batch]

	publisher Publisher // optional
	recorder  Recorder  // optional
}

// NewCachedAggregator wraps an aggregator with a score cache of the given
// TTL. publisher and recorder may be nil.
func NewCachedAggregator(agg *Aggregator, ttl time.Duration, publisher Publisher, recorder Recorder) *CachedAggregator {
	return &CachedAggregator{
		agg:        agg,
		composites: cache.New[*score.Composite](ttl),
		batches:    cache.New[*score.Batch](ttl),
		publisher:  publisher,
		recorder:   recorder,
	}
}

// ComputeOne returns the composite for one district, recomputing only when
// the cached value has expired.
func (c *CachedAggregator) ComputeOne(ctx context.Context, name string) (*score.Composite, error) {
	if composite, ok := c.composites.Get(name); ok {
		return composite, nil
	}

	composite, err := c.agg.ComputeOne(ctx, name)
	if err != nil {
		return nil, err
	}
	c.composites.Set(name, composite)
	return composite, nil
}

// ComputeAll returns the batch for the whole catalog, recomputing only when
// the cached batch has expired. A fresh batch is handed to the publisher and
// recorder in the background; neither delays nor fails the response.
func (c *CachedAggregator) ComputeAll(ctx context.Context) *score.Batch {
	if batch, ok := c.batches.Get(batchKey); ok {
		return batch
	}

	batch := c.agg.ComputeAll(ctx)
	c.batches.Set(batchKey, batch)
	go c.distribute(batch)
	return batch
}

// ClearCache drops all memoized scores unconditionally. Used for forced
// refresh; the next request recomputes.
func (c *CachedAggregator) ClearCache() {
	c.composites.Clear()
	c.batches.Clear()
}

// Close releases the cache janitors.
func (c *CachedAggregator) Close() {
	c.composites.Close()
	c.batches.Close()
}

func (c *CachedAggregator) distribute(batch *score.Batch) {
	if c.recorder != nil {
		c.recorder.Record(batch)
	}
	if c.publisher == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := c.publisher.Publish(ctx, batch); err != nil {
		slog.Warn("batch publish failed", "error", err)
	}
}
