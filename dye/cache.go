package dye

import (
	"strings"
	"sync"
)

// Cache memoizes parsed channel maps by their joined specification. Parse
// failures are memoized too.
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	ch  Channels
	err error
}

// Key returns the string a dye list is memoized under.
func Key(spec []string) string {
	return strings.Join(spec, "|")
}

// Channels returns the channel map for spec, parsing it on first use. The
// returned map is shared and must not be modified.
func (c *Cache) Channels(spec []string) (Channels, error) {
	key := Key(spec)

	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		return e.ch, e.err
	}
	if c.entries == nil {
		c.entries = make(map[string]cacheEntry)
	}
	ch, err := ParseChannels(spec)
	c.entries[key] = cacheEntry{ch: ch, err: err}
	return ch, err
}
