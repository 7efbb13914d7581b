package repository

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/gradebot/internal/domain/model"
	"github.com/okian/gradebot/pkg/metrics"
)

const (
	defaultMaxSessions   = 10_000
	defaultSweepInterval = time.Minute
)

// entry is one live session and its last access time.
type entry struct {
	sess     *model.Session
	lastUsed time.Time
}

// eviction is a session dropped by the store, reported after unlocking.
type eviction struct {
	id     string
	reason string
}

// InMemoryStore keeps sessions in a map with an LRU list for capacity
// eviction. A background sweeper expires idle sessions.
type InMemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*list.Element
	lru      *list.List // front = most recently used
	closed   bool

	maxSessions   int
	idleTTL       time.Duration
	sweepInterval time.Duration
	onEvict       func(id, reason string)
	now           func() time.Time

	stopChan chan struct{}
	wg       sync.WaitGroup
}

// NewInMemoryStore creates a store and, if idle expiry is enabled, starts the
// sweeper. The sweeper stops when ctx is done or Close is called.
func NewInMemoryStore(ctx context.Context, opts ...Option) *InMemoryStore {
	s := &InMemoryStore{
		sessions:      make(map[string]*list.Element),
		lru:           list.New(),
		maxSessions:   defaultMaxSessions,
		sweepInterval: defaultSweepInterval,
		now:           time.Now,
		stopChan:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.idleTTL > 0 {
		s.startSweeper(ctx)
	}
	return s
}

func (s *InMemoryStore) startSweeper(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.sweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopChan:
				return
			case <-ticker.C:
				s.Sweep(ctx)
			}
		}
	}()
}

// Create implements Store.Create.
func (s *InMemoryStore) Create(_ context.Context) (*model.Session, error) {
	sess := model.NewSession(uuid.NewString())

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}
	var evicted []eviction
	for len(s.sessions) >= s.maxSessions {
		oldest := s.lru.Back()
		id := oldest.Value.(*entry).sess.ID
		s.removeLocked(oldest)
		evicted = append(evicted, eviction{id: id, reason: EvictCapacity})
	}
	s.sessions[sess.ID] = s.lru.PushFront(&entry{sess: sess, lastUsed: s.now()})
	count := len(s.sessions)
	out := sess.Clone()
	s.mu.Unlock()

	metrics.RecordSessionCreated()
	metrics.UpdateActiveSessions(count)
	s.report(evicted)
	return out, nil
}

// Get implements Store.Get.
func (s *InMemoryStore) Get(_ context.Context, id string) (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	el, err := s.touchLocked(id)
	if err != nil {
		return nil, err
	}
	return el.Value.(*entry).sess.Clone(), nil
}

// Update implements Store.Update.
func (s *InMemoryStore) Update(_ context.Context, id string, fn func(*model.Session) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	el, err := s.touchLocked(id)
	if err != nil {
		return err
	}
	return fn(el.Value.(*entry).sess)
}

// Delete implements Store.Delete.
func (s *InMemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	el, ok := s.sessions[id]
	if !ok {
		s.mu.Unlock()
		return ErrNotFound
	}
	s.removeLocked(el)
	count := len(s.sessions)
	s.mu.Unlock()

	metrics.UpdateActiveSessions(count)
	return nil
}

// Count implements Store.Count.
func (s *InMemoryStore) Count(_ context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep drops sessions idle longer than the configured TTL and returns how
// many were dropped.
func (s *InMemoryStore) Sweep(_ context.Context) int {
	if s.idleTTL <= 0 {
		return 0
	}

	s.mu.Lock()
	cutoff := s.now().Add(-s.idleTTL)
	var evicted []eviction
	// The LRU back holds the stalest sessions; stop at the first fresh one.
	for el := s.lru.Back(); el != nil; {
		e := el.Value.(*entry)
		if e.lastUsed.After(cutoff) {
			break
		}
		prev := el.Prev()
		s.removeLocked(el)
		evicted = append(evicted, eviction{id: e.sess.ID, reason: EvictIdle})
		el = prev
	}
	count := len(s.sessions)
	s.mu.Unlock()

	if len(evicted) > 0 {
		metrics.UpdateActiveSessions(count)
	}
	s.report(evicted)
	return len(evicted)
}

// Close stops the sweeper and rejects further session creation.
func (s *InMemoryStore) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	select {
	case <-s.stopChan:
		// Channel already closed
	default:
		close(s.stopChan)
	}
	s.wg.Wait()
	return nil
}

// touchLocked looks up id and marks it most recently used. s.mu must be held.
func (s *InMemoryStore) touchLocked(id string) (*list.Element, error) {
	el, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	el.Value.(*entry).lastUsed = s.now()
	s.lru.MoveToFront(el)
	return el, nil
}

// removeLocked drops el from both indexes. s.mu must be held.
func (s *InMemoryStore) removeLocked(el *list.Element) {
	delete(s.sessions, el.Value.(*entry).sess.ID)
	s.lru.Remove(el)
}

func (s *InMemoryStore) report(evicted []eviction) {
	for _, ev := range evicted {
		metrics.RecordSessionEvicted(ev.reason)
		if s.onEvict != nil {
			s.onEvict(ev.id, ev.reason)
		}
	}
}
