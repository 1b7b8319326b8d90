package sprite

import (
	"context"
	"fmt"
	"sync"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// State is where a cached Set is in its life.
type State int

const (
	// Absent: never requested.
	Absent State = iota
	// Pending: a fetch chain is running.
	Pending
	// Ready: the Set is complete and published.
	Ready
	// Failed: the fetch chain failed. Failed sets are never retried.
	Failed
)

func (s State) String() string {
	switch s {
	case Absent:
		return "absent"
	case Pending:
		return "pending"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

type entry struct {
	state State
	set   *Set
	err   error
	done  chan struct{}
}

func (e *entry) begin(key Key) {
	if e.state != Absent {
		panic(fmt.Sprintf("sprite: starting a build of %v which is already %v", key, e.state))
	}
	e.state = Pending
}

func (e *entry) finish(key Key, set *Set, err error) {
	if e.state != Pending {
		panic(fmt.Sprintf("sprite: publishing a build of %v which is %v, not pending", key, e.state))
	}
	if err != nil {
		e.state = Failed
		e.err = err
	} else {
		e.state = Ready
		e.set = set
	}
	close(e.done)
}

// DefaultMaxChains is the number of fetch chains a Cache runs at once unless
// told otherwise.
const DefaultMaxChains = 8

// Cache builds each Set at most once and hands out the same instance to
// everyone asking for the same key.
//
// Lookups never block. A request for an absent key starts a fetch chain in
// its own goroutine; until it completes, the key is Pending.
type Cache struct {
	builder Builder
	sem     *semaphore.Weighted

	mu      sync.Mutex
	entries map[Key]*entry
}

// NewCache returns a cache using b to build sets, running at most maxChains
// fetch chains concurrently. maxChains <= 0 means DefaultMaxChains.
func NewCache(b Builder, maxChains int64) *Cache {
	if maxChains <= 0 {
		maxChains = DefaultMaxChains
	}
	return &Cache{
		builder: b,
		sem:     semaphore.NewWeighted(maxChains),
		entries: make(map[Key]*entry),
	}
}

// Lookup returns the state of key and, if Ready, its Set. It never starts a
// build.
func (c *Cache) Lookup(key Key) (State, *Set) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return Absent, nil
	}
	return e.state, e.set
}

// Request returns the state of req's key, starting a build if it is absent.
// The returned Set is non-nil only when the state is Ready.
func (c *Cache) Request(req Request) (State, *Set) {
	st, set, _ := c.request(req)
	return st, set
}

func (c *Cache) request(req Request) (State, *Set, *entry) {
	key := req.Key()

	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		e = &entry{done: make(chan struct{})}
		c.entries[key] = e
	}
	if e.state == Absent {
		e.begin(key)
		go c.build(key, req, e)
	}
	return e.state, e.set, e
}

func (c *Cache) build(key Key, req Request, e *entry) {
	// Chains are never cancelled once started.
	ctx := context.Background()
	if err := c.sem.Acquire(ctx, 1); err != nil {
		c.publish(key, e, nil, err)
		return
	}
	defer c.sem.Release(1)

	glog.V(1).Infof("sprite: building %v", key)
	set, err := c.builder.Assemble(ctx, req)
	if err == nil && set == nil {
		err = errors.Errorf("builder returned no set")
	}
	if err != nil {
		glog.Errorf("sprite: building %v failed; it will not be drawn: %v", key, err)
	}
	c.publish(key, e, set, err)
}

func (c *Cache) publish(key Key, e *entry, set *Set, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e.finish(key, set, err)
}

// Wait requests req and blocks until its Set is ready, its build failed or
// ctx is done. Giving up on ctx does not stop the build.
func (c *Cache) Wait(ctx context.Context, req Request) (*Set, error) {
	_, _, e := c.request(req)
	select {
	case <-e.done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if e.state == Failed {
		return nil, errors.Wrapf(e.err, "sprite %v", req.Key())
	}
	return e.set, nil
}

// Preload waits for all passed requests, returning the first failure.
func (c *Cache) Preload(ctx context.Context, reqs ...Request) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, req := range reqs {
		req := req
		g.Go(func() error {
			_, err := c.Wait(ctx, req)
			return err
		})
	}
	return g.Wait()
}
