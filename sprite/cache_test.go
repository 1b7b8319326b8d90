package sprite

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
)

type countingBuilder struct {
	calls int32
	gate  chan struct{}
	err   error
}

func (b *countingBuilder) Assemble(ctx context.Context, req Request) (*Set, error) {
	atomic.AddInt32(&b.calls, 1)
	if b.gate != nil {
		<-b.gate
	}
	if b.err != nil {
		return nil, b.err
	}
	return &Set{Width: 1, Height: 1, Actions: map[string]map[Direction]FrameList{}}, nil
}

func TestCacheDeduplicatesConcurrentRequests(t *testing.T) {
	b := &countingBuilder{gate: make(chan struct{})}
	c := NewCache(b, 0)
	req := Request{Path: "a.xml", Dye: []string{"W:#ffffff"}}

	if st, set := c.Request(req); st != Pending || set != nil {
		t.Fatalf("got %v, %v; want pending with no set", st, set)
	}

	var wg sync.WaitGroup
	sets := make([]*Set, 2)
	for i := range sets {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			set, err := c.Wait(context.Background(), req)
			if err != nil {
				t.Errorf("wait %d: %v", i, err)
			}
			sets[i] = set
		}(i)
	}
	if st, _ := c.Lookup(req.Key()); st != Pending {
		t.Errorf("got %v; want pending while building", st)
	}
	close(b.gate)
	wg.Wait()

	if sets[0] == nil || sets[0] != sets[1] {
		t.Errorf("requests did not share one set: %p %p", sets[0], sets[1])
	}
	st, set := c.Request(req)
	if st != Ready || set != sets[0] {
		t.Errorf("got %v, %p; want ready, %p", st, set, sets[0])
	}
	if n := atomic.LoadInt32(&b.calls); n != 1 {
		t.Errorf("got %d builds; want 1", n)
	}
}

func TestCacheDistinctKeys(t *testing.T) {
	b := &countingBuilder{}
	c := NewCache(b, 2)
	err := c.Preload(context.Background(),
		Request{Path: "a.xml"},
		Request{Path: "a.xml", Dye: []string{"W:#ffffff"}},
		Request{Path: "a.xml", Variant: 2},
		Request{Path: "a.xml"},
	)
	if err != nil {
		t.Fatalf("preload: %v", err)
	}
	if n := atomic.LoadInt32(&b.calls); n != 3 {
		t.Errorf("got %d builds; want 3", n)
	}
}

func TestCacheFailureIsPermanent(t *testing.T) {
	b := &countingBuilder{err: errors.New("no such sheet")}
	c := NewCache(b, 1)
	req := Request{Path: "broken.xml"}

	if _, err := c.Wait(context.Background(), req); err == nil {
		t.Fatalf("expected error")
	}
	for i := 0; i < 3; i++ {
		if st, set := c.Request(req); st != Failed || set != nil {
			t.Errorf("got %v, %v; want failed", st, set)
		}
	}
	if n := atomic.LoadInt32(&b.calls); n != 1 {
		t.Errorf("got %d builds; want 1", n)
	}
}

func TestCacheWaitHonoursContext(t *testing.T) {
	b := &countingBuilder{gate: make(chan struct{})}
	defer close(b.gate)
	c := NewCache(b, 1)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := c.Wait(ctx, Request{Path: "slow.xml"}); err != context.DeadlineExceeded {
		t.Errorf("got %v; want deadline exceeded", err)
	}
	if st, _ := c.Lookup(Request{Path: "slow.xml"}.Key()); st != Pending {
		t.Errorf("got %v; want pending", st)
	}
}

func TestCacheLookupDoesNotBuild(t *testing.T) {
	b := &countingBuilder{}
	c := NewCache(b, 1)
	if st, _ := c.Lookup(Request{Path: "a.xml"}.Key()); st != Absent {
		t.Errorf("got %v; want absent", st)
	}
	if n := atomic.LoadInt32(&b.calls); n != 0 {
		t.Errorf("got %d builds; want 0", n)
	}
}

func TestEntryRebuildPanics(t *testing.T) {
	key := Request{Path: "a.xml"}.Key()
	for _, tc := range []struct {
		name string
		f    func(e *entry)
	}{
		{"begin while pending", func(e *entry) { e.begin(key) }},
		{"finish twice", func(e *entry) { e.finish(key, &Set{}, nil); e.finish(key, &Set{}, nil) }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("expected panic")
				}
			}()
			e := &entry{state: Pending, done: make(chan struct{})}
			tc.f(e)
		})
	}
}

type emptyBuilder struct{}

func (emptyBuilder) Assemble(ctx context.Context, req Request) (*Set, error) {
	return nil, nil
}

func TestCacheBuilderWithoutSetFails(t *testing.T) {
	c := NewCache(emptyBuilder{}, 0)
	req := Request{Path: "empty.xml"}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if _, err := c.Wait(ctx, req); err == nil {
		t.Fatalf("expected error for a builder returning no set")
	}
	if st, set := c.Lookup(req.Key()); st != Failed || set != nil {
		t.Errorf("got %v, %v; want failed with no set", st, set)
	}
}
