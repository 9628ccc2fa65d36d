package scanner

import (
	"strings"
	"sync"
)

// lineCacheCapacity bounds the number of distinct text buffers whose line
// splits are memoized. A miss only costs one O(n) re-split.
const lineCacheCapacity = 100

// lineCache memoizes line splits per distinct text buffer with fixed
// capacity and FIFO eviction. Shared across concurrent file tasks, so all
// access goes through the mutex.
type lineCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string][]string
	order    []string
}

func newLineCache(capacity int) *lineCache {
	return &lineCache{
		capacity: capacity,
		entries:  make(map[string][]string, capacity),
		order:    make([]string, 0, capacity),
	}
}

func (c *lineCache) get(text string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if lines, ok := c.entries[text]; ok {
		return lines
	}

	lines := strings.Split(text, "\n")
	if len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[text] = lines
	c.order = append(c.order, text)
	return lines
}

func (c *lineCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
