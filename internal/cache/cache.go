// Package cache is a best-effort, single-process memoization layer for
// generated pages. No size bound, no persistence; entries expire after a
// fixed TTL and are evicted lazily on read.
package cache

import (
	"fmt"
	"sync"
	"time"
)

// DefaultTTL is how long a cached page is served before regeneration.
const DefaultTTL = 120 * time.Minute

// Cache is the injected interface request handlers use.
type Cache interface {
	SetPage(namespace string, page int, data any)
	GetPage(namespace string, page int) (*Entry, bool)
	Info(namespace string, page int) (*Info, bool)
	Clear()
}

type Entry struct {
	Data      any
	Page      int
	Timestamp time.Time
}

// Info is presentational cache metadata returned to the caller.
type Info struct {
	Age         string `json:"age"`
	GeneratedAt string `json:"generatedAt"`
}

type Memory struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]Entry
	now     func() time.Time
}

func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Memory{
		ttl:     ttl,
		entries: make(map[string]Entry),
		now:     time.Now,
	}
}

func pageKey(namespace string, page int) string {
	return fmt.Sprintf("%s_page_%d", namespace, page)
}

func (m *Memory) SetPage(namespace string, page int, data any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[pageKey(namespace, page)] = Entry{
		Data:      data,
		Page:      page,
		Timestamp: m.now(),
	}
}

// GetPage returns the snapshot only while it is younger than the TTL;
// expired entries are deleted on the spot.
func (m *Memory) GetPage(namespace string, page int) (*Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := pageKey(namespace, page)
	entry, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	if m.now().Sub(entry.Timestamp) >= m.ttl {
		delete(m.entries, key)
		return nil, false
	}
	return &entry, true
}

func (m *Memory) Info(namespace string, page int) (*Info, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[pageKey(namespace, page)]
	if !ok {
		return nil, false
	}

	minutes := int(m.now().Sub(entry.Timestamp).Minutes())
	var age string
	switch {
	case minutes < 1:
		age = "just now"
	case minutes == 1:
		age = "1 minute ago"
	case minutes < 60:
		age = fmt.Sprintf("%d minutes ago", minutes)
	default:
		age = fmt.Sprintf("%d hours ago", minutes/60)
	}

	return &Info{
		Age:         age,
		GeneratedAt: entry.Timestamp.Format(time.RFC3339),
	}, true
}

func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]Entry)
}
