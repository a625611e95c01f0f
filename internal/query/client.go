// Package query is a keyed result cache with explicit invalidation.
//
// Each key maps to an entry holding the last fetched data, its status and
// timestamp. Reads go through the cache: fresh data is served directly, stale
// data is served while a background refetch runs, and missing or invalidated
// data is fetched before returning. Concurrent fetches for the same key and
// generation share one request.
//
// Invalidate marks entries stale without fetching; the next read refetches.
// A fetch that started before an invalidation may still store its result,
// but the entry stays stale so it can never mask the newer write.
package query

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/sync/singleflight"
)

const (
	defaultGCTime   = 5 * time.Minute
	defaultRetry    = 3
	maxRetryBackoff = 30 * time.Second
)

// Options tunes cache behaviour. The zero value is usable.
type Options struct {
	// StaleTime is how long fetched data counts as fresh. Zero means data is
	// stale as soon as it arrives and every read revalidates.
	StaleTime time.Duration

	// GCTime is how long an entry that nobody reads is kept. Zero means
	// five minutes.
	GCTime time.Duration

	// Retry is the number of retries after a failed fetch. Negative disables
	// retries; zero means the default of 3.
	Retry int

	// RetryDelay returns the wait before retry n (0-based). Defaults to
	// exponential backoff from one second, capped at 30 seconds.
	RetryDelay func(attempt int) time.Duration

	// ShouldRetry filters which errors are retried. Defaults to every error
	// except context cancellation.
	ShouldRetry func(err error) bool
}

func (o Options) withDefaults() Options {
	if o.GCTime <= 0 {
		o.GCTime = defaultGCTime
	}
	if o.Retry == 0 {
		o.Retry = defaultRetry
	}
	if o.Retry < 0 {
		o.Retry = 0
	}
	if o.RetryDelay == nil {
		o.RetryDelay = exponentialBackoff
	}
	if o.ShouldRetry == nil {
		o.ShouldRetry = func(err error) bool {
			return !errors.Is(err, context.Canceled)
		}
	}
	return o
}

func exponentialBackoff(attempt int) time.Duration {
	if attempt > 5 {
		return maxRetryBackoff
	}
	d := time.Second << attempt
	if d > maxRetryBackoff {
		d = maxRetryBackoff
	}
	return d
}

// entry is the mutable record behind a key. All fields are guarded by
// Client.mu.
type entry struct {
	key       Key
	data      any
	hasData   bool
	err       error
	status    Status
	updatedAt time.Time

	// generation is bumped by Invalidate. dataGen is the generation the
	// stored result was fetched under.
	generation  uint64
	dataGen     uint64
	invalidated bool
	fetching    bool
}

// Client owns the cache entries and the background fetches that fill them.
type Client struct {
	opts Options
	now  func() time.Time

	mu      sync.Mutex
	entries *ttlcache.Cache[string, *entry]
	flights singleflight.Group

	// ctx bounds every fetch; Close cancels it.
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a Client and starts its garbage collector.
func New(opts Options) *Client {
	opts = opts.withDefaults()

	entries := ttlcache.New[string, *entry](
		ttlcache.WithTTL[string, *entry](opts.GCTime),
	)
	go entries.Start()

	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		opts:    opts,
		now:     time.Now,
		entries: entries,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Close cancels in-flight fetches, waits for background work and stops the
// garbage collector.
func (c *Client) Close() {
	c.cancel()
	c.wg.Wait()
	c.entries.Stop()
}

// Wait blocks until every background refetch started so far has finished.
func (c *Client) Wait() {
	c.wg.Wait()
}

// Invalidate marks every entry under prefix as stale. It returns the number
// of entries affected. Nothing is fetched until the next read.
func (c *Client) Invalidate(prefix Key) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, item := range c.entries.Items() {
		e := item.Value()
		if !e.key.HasPrefix(prefix) {
			continue
		}
		e.generation++
		e.invalidated = true
		n++
	}
	slog.Debug("invalidated queries", "prefix", prefix.String(), "count", n)
	return n
}

// Remove drops every entry under prefix.
func (c *Client) Remove(prefix Key) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for id, item := range c.entries.Items() {
		if item.Value().key.HasPrefix(prefix) {
			c.entries.Delete(id)
		}
	}
}

// SetData stores v under key as fresh, successful data.
func (c *Client) SetData(key Key, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.lookup(key, true)
	e.data = v
	e.hasData = true
	e.err = nil
	e.status = StatusSuccess
	e.updatedAt = c.now()
	e.dataGen = e.generation
	e.invalidated = false
}

// lookup returns the entry for key, creating it when create is set.
// Callers hold c.mu.
func (c *Client) lookup(key Key, create bool) *entry {
	if item := c.entries.Get(key.id()); item != nil {
		return item.Value()
	}
	if !create {
		return nil
	}
	e := &entry{key: append(Key(nil), key...)}
	c.entries.Set(key.id(), e, ttlcache.DefaultTTL)
	return e
}

// freshness classifies an entry for a read. Callers hold c.mu.
func (c *Client) freshness(e *entry) (fresh, servable bool) {
	if e == nil || !e.hasData || e.invalidated {
		return false, false
	}
	if c.opts.StaleTime > 0 && c.now().Sub(e.updatedAt) < c.opts.StaleTime {
		return true, true
	}
	return false, true
}

// fetch runs fn for key, sharing the call with any concurrent fetch of the
// same key and generation. The shared call keeps the caller's context values
// but is bound to the client's lifetime, so an abandoned caller does not
// cancel it for the others.
func (c *Client) fetch(ctx context.Context, key Key, fn func(context.Context) (any, error)) (any, error) {
	c.mu.Lock()
	gen := c.lookup(key, true).generation
	c.mu.Unlock()

	flight := fmt.Sprintf("%s#%d", key.id(), gen)
	ch := c.flights.DoChan(flight, func() (any, error) {
		fctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		defer cancel()
		stop := context.AfterFunc(c.ctx, cancel)
		defer stop()

		c.markFetching(key)
		v, err := c.runWithRetry(fctx, key, fn)
		c.store(key, gen, v, err)
		return v, err
	})

	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Client) markFetching(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.lookup(key, true)
	e.fetching = true
	if !e.hasData {
		e.status = StatusPending
	}
}

// store records a fetch result unless a fetch from a newer generation has
// already stored one.
func (c *Client) store(key Key, gen uint64, v any, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.lookup(key, true)
	e.fetching = false
	if gen < e.dataGen {
		slog.Debug("dropping superseded query result", "key", key.String(), "generation", gen)
		return
	}
	e.dataGen = gen

	if err != nil {
		e.err = err
		e.status = StatusError
		return
	}
	e.data = v
	e.hasData = true
	e.err = nil
	e.status = StatusSuccess
	e.updatedAt = c.now()
	e.invalidated = gen != e.generation
}

func (c *Client) runWithRetry(ctx context.Context, key Key, fn func(context.Context) (any, error)) (any, error) {
	for attempt := 0; ; attempt++ {
		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		if attempt >= c.opts.Retry || !c.opts.ShouldRetry(err) {
			slog.Warn("query failed", "key", key.String(), "attempts", attempt+1, "error", err)
			return nil, err
		}

		delay := c.opts.RetryDelay(attempt)
		slog.Info("query failed, retrying",
			"key", key.String(),
			"attempt", attempt+1,
			"delay", delay.String(),
			"error", err,
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, fmt.Errorf("retrying %s: %w", key, ctx.Err())
		case <-timer.C:
		}
	}
}

// revalidate starts a background refetch unless one is already running.
func (c *Client) revalidate(key Key, fn func(context.Context) (any, error)) {
	c.mu.Lock()
	e := c.lookup(key, true)
	if e.fetching {
		c.mu.Unlock()
		return
	}
	e.fetching = true
	c.mu.Unlock()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if _, err := c.fetch(c.ctx, key, fn); err != nil {
			slog.Warn("background refetch failed", "key", key.String(), "error", err)
		}
	}()
}

// snapshot converts an entry into a typed State. Callers hold c.mu.
func snapshot[T any](e *entry) State[T] {
	if e == nil {
		return State[T]{Status: StatusIdle}
	}
	st := State[T]{
		HasData:    e.hasData,
		Status:     e.status,
		Err:        e.err,
		UpdatedAt:  e.updatedAt,
		IsFetching: e.fetching,
	}
	if e.hasData {
		if v, ok := e.data.(T); ok {
			st.Data = v
		}
	}
	return st
}

func erase[T any](fn func(context.Context) (T, error)) func(context.Context) (any, error) {
	return func(ctx context.Context) (any, error) {
		return fn(ctx)
	}
}

// Fetch returns fresh data for key, fetching it when the cached copy is
// missing, stale or invalidated.
func Fetch[T any](ctx context.Context, c *Client, key Key, fn func(context.Context) (T, error)) (T, error) {
	var zero T

	c.mu.Lock()
	e := c.lookup(key, false)
	fresh, _ := c.freshness(e)
	if fresh {
		st := snapshot[T](e)
		c.mu.Unlock()
		return st.Data, nil
	}
	c.mu.Unlock()

	v, err := c.fetch(ctx, key, erase(fn))
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("query %s: cached value has type %T", key, v)
	}
	return typed, nil
}

// Query returns the state for key with stale-while-revalidate semantics:
// fresh data is returned as is; stale data is returned immediately while a
// background refetch runs; missing, failed or invalidated data is fetched
// before returning. Fetch errors are reported through the State, not as a
// return value.
func Query[T any](ctx context.Context, c *Client, key Key, fn func(context.Context) (T, error)) State[T] {
	c.mu.Lock()
	e := c.lookup(key, false)
	fresh, servable := c.freshness(e)
	if fresh || servable {
		st := snapshot[T](e)
		c.mu.Unlock()
		if !fresh {
			c.revalidate(key, erase(fn))
			st.IsFetching = true
		}
		return st
	}
	c.mu.Unlock()

	_, err := c.fetch(ctx, key, erase(fn))

	c.mu.Lock()
	st := snapshot[T](c.lookup(key, true))
	c.mu.Unlock()

	if err != nil && st.Status != StatusError {
		// The caller gave up (ctx done) before the shared fetch settled.
		st.Status = StatusError
		st.Err = err
	}
	return st
}

// Peek returns the cached state for key without fetching.
func Peek[T any](c *Client, key Key) State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return snapshot[T](c.lookup(key, false))
}
