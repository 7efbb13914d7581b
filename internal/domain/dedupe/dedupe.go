// Package dedupe tracks message ids so a resubmitted turn is applied once.
package dedupe

import (
	"container/list"
	"context"
	"strings"
	"sync"
	"sync/atomic"
)

const defaultMaxSize = 10_000

// Deduper records message keys to ensure a turn is processed at most once.
type Deduper interface {
	// SeenAndRecord atomically checks if key was seen and records it if not.
	// Returns true if key was already seen.
	SeenAndRecord(ctx context.Context, key string) bool

	// Unrecord forgets key so the message can be retried. Used when a turn
	// was recorded but could not be applied (e.g. the session vanished).
	Unrecord(ctx context.Context, key string)

	// Forget drops every key with the given prefix. Used when a session is
	// deleted or reset.
	Forget(ctx context.Context, prefix string)

	Size() int64
}

// Key builds the dedupe key for a message inside a session.
func Key(sessionID, messageID string) string {
	return sessionID + "/" + messageID
}

// inMemoryDeduper keeps keys in insertion order and evicts the oldest
// when bounded.
type inMemoryDeduper struct {
	mu      sync.Mutex
	seen    map[string]*list.Element
	order   *list.List // front = oldest
	maxSize int
	size    atomic.Int64
}

// NewInMemoryDeduper creates a new in-memory deduper with configuration options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{
		maxSize: defaultMaxSize,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[string]*list.Element)
	d.order = list.New()
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[key]; ok {
		return true
	}
	if d.maxSize > 0 && len(d.seen) >= d.maxSize {
		d.removeLocked(d.order.Front())
	}
	d.seen[key] = d.order.PushBack(key)
	d.size.Add(1)
	return false
}

func (d *inMemoryDeduper) Unrecord(_ context.Context, key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if el, ok := d.seen[key]; ok {
		d.removeLocked(el)
	}
}

func (d *inMemoryDeduper) Forget(_ context.Context, prefix string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for el := d.order.Front(); el != nil; {
		next := el.Next()
		if strings.HasPrefix(el.Value.(string), prefix) {
			d.removeLocked(el)
		}
		el = next
	}
}

// removeLocked drops el from both indexes. d.mu must be held.
func (d *inMemoryDeduper) removeLocked(el *list.Element) {
	if el == nil {
		return
	}
	delete(d.seen, el.Value.(string))
	d.order.Remove(el)
	d.size.Add(-1)
}

func (d *inMemoryDeduper) Size() int64 {
	return d.size.Load()
}
