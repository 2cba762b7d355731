package species

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/K4zzu/Nfc-PokeDex/internal/model"
)

// DefaultFetchTimeout bounds a single species fetch so that a hung request
// cannot leave a detail view waiting forever.
const DefaultFetchTimeout = 10 * time.Second

// FailureHook is called once per failed fetch attempt, regardless of how
// many callers were waiting on it.
type FailureHook func(id model.ID, err error)

// Cache is a read-through, session-scoped cache of species records.
//
// Records are never invalidated: upstream data is static. Concurrent Get
// calls for the same uncached ID share one underlying request. Failed
// fetches are not cached, so a later Get retries.
type Cache struct {
	fetcher Fetcher
	timeout time.Duration
	logger  *slog.Logger

	group singleflight.Group

	mu         sync.Mutex
	records    map[model.ID]*model.Species
	inflight   map[model.ID]bool
	failed     map[model.ID]bool
	generation uint64
	onFailure  FailureHook
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithFetchTimeout bounds each underlying fetch.
func WithFetchTimeout(d time.Duration) CacheOption {
	return func(c *Cache) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithCacheLogger sets the logger used for fetch diagnostics.
func WithCacheLogger(logger *slog.Logger) CacheOption {
	return func(c *Cache) {
		c.logger = logger
	}
}

// WithFailureHook sets the hook fired on each failed attempt.
func WithFailureHook(hook FailureHook) CacheOption {
	return func(c *Cache) {
		c.onFailure = hook
	}
}

// NewCache creates a Cache backed by fetcher.
func NewCache(fetcher Fetcher, opts ...CacheOption) *Cache {
	c := &Cache{
		fetcher:  fetcher,
		timeout:  DefaultFetchTimeout,
		records:  make(map[model.ID]*model.Species),
		inflight: make(map[model.ID]bool),
		failed:   make(map[model.ID]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// OnFailure replaces the failure hook. It is used by the controller, which
// is constructed after the cache.
func (c *Cache) OnFailure(hook FailureHook) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onFailure = hook
}

// Get returns the record for id, fetching it if needed.
//
// The boolean is false when the fetch failed or ctx ended before the shared
// fetch finished. Ending ctx does not cancel the shared fetch; other waiters
// still receive its result. Range checks belong to the caller: the cache
// forwards any positive ID to the API and reports what it answers.
func (c *Cache) Get(ctx context.Context, id model.ID) (*model.Species, bool) {
	if id <= 0 {
		return nil, false
	}
	if s, ok := c.Peek(id); ok {
		return s, true
	}

	ch := c.group.DoChan(id.Key(), func() (any, error) {
		return c.fetch(ctx, id)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, false
		}
		s, ok := res.Val.(*model.Species)
		return s, ok && s != nil
	case <-ctx.Done():
		return nil, false
	}
}

// fetch performs one underlying request. It runs inside the singleflight
// group, so at most one fetch per ID executes at a time.
func (c *Cache) fetch(ctx context.Context, id model.ID) (*model.Species, error) {
	c.mu.Lock()
	if s, ok := c.records[id]; ok {
		// Resolved between Peek and DoChan.
		c.mu.Unlock()
		return s, nil
	}
	gen := c.generation
	c.inflight[id] = true
	delete(c.failed, id)
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		if c.generation == gen {
			delete(c.inflight, id)
		}
		c.mu.Unlock()
	}()

	fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
	defer cancel()

	c.logger.Debug("fetching species", "id", int(id))
	s, err := c.fetcher.Fetch(fetchCtx, strconv.Itoa(int(id)))
	if err == nil && s == nil {
		err = model.ErrFetchFailure
	}

	c.mu.Lock()
	stale := c.generation != gen
	if !stale {
		if err != nil {
			c.failed[id] = true
		} else {
			c.records[id] = s
		}
	}
	hook := c.onFailure
	c.mu.Unlock()

	if err != nil {
		if !errors.Is(err, model.ErrFetchFailure) {
			err = errors.Join(model.ErrFetchFailure, err)
		}
		c.logger.Warn("species fetch failed", "id", int(id), "error", err)
		if hook != nil {
			hook(id, err)
		}
		return nil, err
	}
	if stale {
		c.logger.Debug("discarding species fetched before reset", "id", int(id))
	}
	return s, nil
}

// Peek returns a cached record without fetching.
func (c *Cache) Peek(id model.ID) (*model.Species, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.records[id]
	return s, ok
}

// Loading reports whether a fetch for id is in flight.
func (c *Cache) Loading(id model.ID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inflight[id]
}

// State returns the fetch state of id.
func (c *Cache) State(id model.ID) model.FetchState {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case c.inflight[id]:
		return model.FetchInFlight
	case c.records[id] != nil:
		return model.FetchResolved
	case c.failed[id]:
		return model.FetchFailed
	default:
		return model.FetchNotRequested
	}
}

// Len returns the number of cached records.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.records)
}

// Reset drops every cached record and in-flight marker. Fetches that
// complete after a reset are returned to their waiters but not stored.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.records = make(map[model.ID]*model.Species)
	c.inflight = make(map[model.ID]bool)
	c.failed = make(map[model.ID]bool)
}

// LookupName resolves a species name to its ID. The fetched record is
// cached under its ID as a side effect.
func (c *Cache) LookupName(ctx context.Context, name string) (model.ID, error) {
	ch := c.group.DoChan("name:"+name, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()
		return c.fetcher.Fetch(fetchCtx, name)
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return 0, ctx.Err()
	}
	if res.Err != nil {
		return 0, res.Err
	}
	s, ok := res.Val.(*model.Species)
	if !ok || s == nil || !s.ID.Valid() {
		return 0, model.ErrFetchFailure
	}

	c.mu.Lock()
	if _, exists := c.records[s.ID]; !exists {
		c.records[s.ID] = s
	}
	c.mu.Unlock()
	return s.ID, nil
}

// Prefetch warms the cache for ids with at most limit concurrent fetches.
// Individual failures fire the failure hook but do not stop the batch.
func (c *Cache) Prefetch(ctx context.Context, ids []model.ID, limit int) error {
	if limit <= 0 {
		limit = 1
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for _, id := range ids {
		if _, ok := c.Peek(id); ok {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c.Get(ctx, id)
			return nil
		})
	}
	return g.Wait()
}
