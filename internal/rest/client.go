package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"golang.org/x/sync/singleflight"
)

// Fetcher performs a single request against the upstream API.
// *Requester satisfies it.
type Fetcher interface {
	Do(ctx context.Context, method, path string, params url.Values, body any) ([]byte, error)
}

// Result is the state of a cached query as seen by a caller or subscriber.
// A failed refresh keeps the previous Data and reports the failure in Err.
type Result struct {
	Data      json.RawMessage
	Err       error
	Stale     bool
	FetchedAt time.Time
}

// Decode unwraps the response envelope held in r into out.
func (r Result) Decode(out any) error { return Decode(r.Data, out) }

// Decode unmarshals body into out. Bodies shaped as {success, message, data}
// are unwrapped to their data member first.
func Decode(body []byte, out any) error {
	if out == nil || len(body) == 0 {
		return nil
	}
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err == nil && len(env.Data) > 0 {
		body = env.Data
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errors.Annotate(err, "decoding response")
	}
	return nil
}

// Config holds the collaborators of a Client.
type Config struct {
	Fetcher Fetcher
	Clock   clock.Clock
	Metrics *Collector
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Fetcher == nil {
		return errors.NotValidf("nil Fetcher")
	}
	return nil
}

// Client memoizes query results by endpoint and argument, deduplicates
// concurrent identical reads, and invalidates cached results when a
// mutation that declares an intersecting tag succeeds.
type Client struct {
	fetcher Fetcher
	clock   clock.Clock
	metrics *Collector

	group singleflight.Group
	wg    sync.WaitGroup

	mu      sync.Mutex
	entries map[string]*entry
	nextGen uint64
	nextSub uint64
}

type entry struct {
	query     Query
	arg       Arg
	tags      Tags
	data      json.RawMessage
	err       error
	stale     bool
	fetchedAt time.Time
	// gen identifies the entry's current validity period. Reads started
	// under an older generation are never stored.
	gen uint64
	// version counts stored outcomes.
	version uint64
	subs    map[uint64]func(Result)
}

func (e *entry) fresh() bool { return e.data != nil && e.err == nil && !e.stale }

func (e *entry) result() Result {
	return Result{Data: e.data, Err: e.err, Stale: e.stale, FetchedAt: e.fetchedAt}
}

// NewClient returns a Client for the given configuration.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.WallClock
	}
	if cfg.Metrics == nil {
		cfg.Metrics = NewMetricsCollector()
	}
	return &Client{
		fetcher: cfg.Fetcher,
		clock:   cfg.Clock,
		metrics: cfg.Metrics,
		entries: make(map[string]*entry),
	}, nil
}

// Metrics returns the client's metrics collector.
func (c *Client) Metrics() *Collector { return c.metrics }

// Query returns the result of q for arg, from the cache when it holds fresh
// data, otherwise from the network. The decoded data is written to out.
func (c *Client) Query(ctx context.Context, q Query, arg Arg, out any) error {
	res, _, err := c.read(ctx, q, arg, false)
	if err != nil {
		return err
	}
	return res.Decode(out)
}

// Refetch reads q for arg from the network regardless of cache state. A
// read already in flight for the entry is not joined, and its outcome is
// not stored.
func (c *Client) Refetch(ctx context.Context, q Query, arg Arg, out any) error {
	res, _, err := c.read(ctx, q, arg, true)
	if err != nil {
		return err
	}
	return res.Decode(out)
}

// Cached returns the cached state of q for arg without any I/O.
func (c *Client) Cached(q Query, arg Arg) (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[q.Key(arg)]
	if !ok || (e.data == nil && e.err == nil) {
		return Result{}, false
	}
	return e.result(), true
}

// Download performs an uncached GET and returns the raw body.
func (c *Client) Download(ctx context.Context, path string, arg Arg) ([]byte, error) {
	return c.fetcher.Do(ctx, http.MethodGet, expandPath(path, arg), arg.Params, nil)
}

// Mutate sends body to m. When the server acknowledges it, every cache entry
// whose tags intersect the mutation's tags is invalidated before Mutate
// returns. A failed mutation invalidates nothing.
func (c *Client) Mutate(ctx context.Context, m Mutation, arg Arg, body any, out any) error {
	data, err := c.fetcher.Do(ctx, m.method(), expandPath(m.Path, arg), arg.Params, body)
	c.metrics.mutations.WithLabelValues(m.Name, outcome(err)).Inc()
	if err != nil {
		return err
	}
	if tags := m.Tags(arg); len(tags) > 0 {
		c.Invalidate(tags)
	}
	return Decode(data, out)
}

// Invalidate marks every entry providing a tag reached by tags as stale.
// Subscribed entries are refetched once in the background; the rest are
// dropped and read again on next use. It returns the number of entries hit.
func (c *Client) Invalidate(tags Tags) int {
	c.mu.Lock()
	var refetch []*entry
	hit := 0
	for key, e := range c.entries {
		if !tags.Invalidates(e.tags) {
			continue
		}
		hit++
		c.metrics.invalidated.WithLabelValues(e.query.Name).Inc()
		c.nextGen++
		e.gen = c.nextGen
		e.stale = true
		if len(e.subs) == 0 {
			delete(c.entries, key)
			continue
		}
		refetch = append(refetch, e)
	}
	c.mu.Unlock()

	logger.Debugf("invalidated %d entries for %s", hit, tags)
	for _, e := range refetch {
		c.metrics.refetches.WithLabelValues(e.query.Name).Inc()
		c.background(e.query, e.arg)
	}
	return hit
}

// Reset forgets every cached result, as when the caller's identity changes.
// Reads in flight are not stored. Subscribed entries are emptied and read
// again in the background; the rest are dropped.
func (c *Client) Reset() {
	c.mu.Lock()
	var refetch []*entry
	for key, e := range c.entries {
		c.nextGen++
		e.gen = c.nextGen
		if len(e.subs) == 0 {
			delete(c.entries, key)
			continue
		}
		e.data, e.err, e.stale = nil, nil, false
		e.fetchedAt = time.Time{}
		refetch = append(refetch, e)
	}
	c.mu.Unlock()

	logger.Debugf("cache reset, refetching %d subscribed entries", len(refetch))
	for _, e := range refetch {
		c.metrics.refetches.WithLabelValues(e.query.Name).Inc()
		c.background(e.query, e.arg)
	}
}

// Wait blocks until every background read started so far has finished.
func (c *Client) Wait() { c.wg.Wait() }

// Subscription keeps a cache entry alive and receives its results.
type Subscription struct {
	client *Client
	key    string
	id     uint64
	once   sync.Once
}

// Close detaches the subscriber. Results arriving afterwards are not delivered.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.client.mu.Lock()
		defer s.client.mu.Unlock()
		if e, ok := s.client.entries[s.key]; ok {
			delete(e.subs, s.id)
		}
	})
}

// Subscribe registers fn for q with arg. fn receives the current result
// (reading it first if the cache holds none) and every result stored later,
// including background refetches after invalidation. fn runs on the
// goroutine that completed the read and must not block.
func (c *Client) Subscribe(q Query, arg Arg, fn func(Result)) *Subscription {
	c.mu.Lock()
	e := c.entryLocked(q, arg)
	c.nextSub++
	id := c.nextSub
	e.subs[id] = fn
	fresh, res, version := e.fresh(), e.result(), e.version
	c.mu.Unlock()

	sub := &Subscription{client: c, key: q.Key(arg), id: id}
	if fresh {
		fn(res)
		return sub
	}
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.prime(q, arg, version, fn)
	}()
	return sub
}

// prime reads q for a subscriber registered when the entry was at version.
// A read that stores its outcome notifies fn from store; a cache hit is
// delivered here only if nothing was stored since registration.
func (c *Client) prime(q Query, arg Arg, version uint64, fn func(Result)) {
	res, hit, err := c.read(context.Background(), q, arg, false)
	if err != nil || !hit {
		return
	}
	c.mu.Lock()
	e, ok := c.entries[q.Key(arg)]
	unchanged := ok && e.version == version
	c.mu.Unlock()
	if unchanged {
		fn(res)
	}
}

func (c *Client) background(q Query, arg Arg) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if _, _, err := c.read(context.Background(), q, arg, false); err != nil {
			logger.Warningf("refetching %s: %v", q.Key(arg), err)
		}
	}()
}

func (c *Client) entryLocked(q Query, arg Arg) *entry {
	key := q.Key(arg)
	e, ok := c.entries[key]
	if !ok {
		c.nextGen++
		e = &entry{
			query: q,
			arg:   arg,
			tags:  q.Tags(arg),
			gen:   c.nextGen,
			subs:  make(map[uint64]func(Result)),
		}
		c.entries[key] = e
	}
	return e
}

// read returns fresh cached data unless force is set; otherwise it joins or
// starts the single network read for the entry's current generation.
func (c *Client) read(ctx context.Context, q Query, arg Arg, force bool) (Result, bool, error) {
	key := q.Key(arg)
	c.mu.Lock()
	e := c.entryLocked(q, arg)
	if !force && e.fresh() {
		res := e.result()
		c.mu.Unlock()
		c.metrics.cacheHits.WithLabelValues(q.Name).Inc()
		return res, true, nil
	}
	if force {
		c.nextGen++
		e.gen = c.nextGen
	}
	gen := e.gen
	c.mu.Unlock()
	c.metrics.cacheMisses.WithLabelValues(q.Name).Inc()

	flight := key + "#" + strconv.FormatUint(gen, 10)
	// The read outlives any single caller: others may be waiting on it.
	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(flight, func() (any, error) {
		data, err := c.fetcher.Do(fetchCtx, http.MethodGet, expandPath(q.Path, arg), arg.Params, nil)
		c.metrics.fetches.WithLabelValues(q.Name, outcome(err)).Inc()
		c.store(key, gen, data, err)
		return data, err
	})

	select {
	case r := <-ch:
		if r.Shared {
			c.metrics.sharedFetches.WithLabelValues(q.Name).Inc()
		}
		if r.Err != nil {
			return Result{}, false, r.Err
		}
		return Result{Data: r.Val.([]byte), FetchedAt: c.clock.Now()}, false, nil
	case <-ctx.Done():
		return Result{}, false, ctx.Err()
	}
}

// store records the outcome of a read begun under gen and notifies
// subscribers. Outcomes of superseded generations are dropped.
func (c *Client) store(key string, gen uint64, data []byte, err error) {
	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok || e.gen != gen {
		c.mu.Unlock()
		return
	}
	if err != nil {
		e.err = err
	} else {
		e.data = json.RawMessage(data)
		e.err = nil
		e.stale = false
		e.fetchedAt = c.clock.Now()
	}
	e.version++
	res := e.result()
	subs := make([]func(Result), 0, len(e.subs))
	for _, fn := range e.subs {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn(res)
	}
}
