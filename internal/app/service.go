// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"strings"
	"sync"
	"time"

	repository "github.com/okian/gradebot/internal/adapters/repository"
	"github.com/okian/gradebot/internal/domain/chat"
	"github.com/okian/gradebot/internal/domain/dedupe"
	"github.com/okian/gradebot/internal/domain/model"
	"github.com/okian/gradebot/internal/domain/types"
	"github.com/okian/gradebot/pkg/logger"
	"github.com/okian/gradebot/pkg/metrics"
)

// Service implements the API dependencies for the grade chatbot.
type Service struct {
	mu sync.RWMutex

	// Core components
	sessions *repository.InMemoryStore
	deduper  dedupe.Deduper

	// Configuration
	maxSessions   int
	idleTTL       time.Duration
	sweepInterval time.Duration
	dedupeSize    int

	// State
	started bool
	cancel  context.CancelFunc

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithMaxSessions bounds the number of live sessions.
func WithMaxSessions(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxSessions = n
		}
	}
}

// WithSessionIdleTTL expires sessions idle for longer than ttl. Zero keeps
// sessions until they are evicted for capacity or deleted.
func WithSessionIdleTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl >= 0 {
			s.idleTTL = ttl
		}
	}
}

// WithSweepInterval sets how often idle sessions are looked for.
func WithSweepInterval(interval time.Duration) Option {
	return func(s *Service) {
		if interval > 0 {
			s.sweepInterval = interval
		}
	}
}

// WithDedupeSize sets the size of the message id cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		maxSessions:   10_000,
		idleTTL:       2 * time.Hour,
		sweepInterval: time.Minute,
		dedupeSize:    100_000,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the session store and the deduper.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting grade service...")

	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))

	storeCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel
	deduper := s.deduper
	log := s.logger
	s.sessions = repository.NewInMemoryStore(storeCtx,
		repository.WithMaxSessions(s.maxSessions),
		repository.WithIdleTTL(s.idleTTL),
		repository.WithSweepInterval(s.sweepInterval),
		repository.WithEvictionHook(func(id, reason string) {
			deduper.Forget(storeCtx, dedupe.Key(id, ""))
			log.Debug(storeCtx, "session evicted",
				logger.String("sessionID", id),
				logger.String("reason", reason),
			)
		}),
	)

	s.started = true
	s.logger.Info(ctx, "grade service started",
		logger.Int("maxSessions", s.maxSessions),
		logger.Duration("idleTTL", s.idleTTL),
		logger.Int("dedupeSize", s.dedupeSize),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping grade service...")

	if s.sessions != nil {
		_ = s.sessions.Close()
	}
	if s.cancel != nil {
		s.cancel()
	}

	s.started = false
	s.logger.Info(context.Background(), "grade service stopped")
}

// components returns the store and deduper of a started service.
func (s *Service) components() (*repository.InMemoryStore, dedupe.Deduper, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, nil, ErrNotStarted
	}
	return s.sessions, s.deduper, nil
}

// CreateSession starts a new conversation.
func (s *Service) CreateSession(ctx context.Context) (types.SessionView, error) {
	store, _, err := s.components()
	if err != nil {
		return types.SessionView{}, err
	}
	sess, err := store.Create(ctx)
	if err != nil {
		return types.SessionView{}, err
	}
	s.logger.Debug(ctx, "session created", logger.String("sessionID", sess.ID))
	return types.NewSessionView(sess), nil
}

// Session returns the current state of a session.
func (s *Service) Session(ctx context.Context, id string) (types.SessionView, error) {
	store, _, err := s.components()
	if err != nil {
		return types.SessionView{}, err
	}
	sess, err := store.Get(ctx, id)
	if err != nil {
		return types.SessionView{}, err
	}
	return types.NewSessionView(sess), nil
}

// Send runs one turn. A non-empty messageID makes the turn idempotent: a
// second send with the same id returns ErrDuplicateMessage and changes nothing.
func (s *Service) Send(ctx context.Context, id, messageID, text string) (types.Reply, error) {
	store, deduper, err := s.components()
	if err != nil {
		return types.Reply{}, err
	}
	if strings.TrimSpace(text) == "" {
		return types.Reply{}, ErrEmptyText
	}

	var key string
	if messageID != "" {
		key = dedupe.Key(id, messageID)
		if deduper.SeenAndRecord(ctx, key) {
			metrics.RecordDuplicateMessage()
			s.logger.Debug(ctx, "duplicate message detected, skipping",
				logger.String("sessionID", id),
				logger.String("messageID", messageID),
			)
			return types.Reply{}, ErrDuplicateMessage
		}
	}

	start := time.Now()
	var reply chat.Reply
	err = store.Update(ctx, id, func(sess *model.Session) error {
		reply = chat.Turn(sess, text)
		return nil
	})
	if err != nil {
		if key != "" {
			deduper.Unrecord(ctx, key)
		}
		return types.Reply{}, err
	}

	metrics.RecordTurn(string(reply.Intent), float64(time.Since(start).Microseconds())/1000.0)
	if len(reply.Recorded) > 0 {
		metrics.RecordScoresRecorded(len(reply.Recorded))
	}
	if reply.Grade != nil {
		metrics.RecordPrediction(string(reply.Grade.Letter))
	}

	s.logger.Debug(ctx, "turn handled",
		logger.String("sessionID", id),
		logger.String("intent", string(reply.Intent)),
		logger.Int("recorded", len(reply.Recorded)),
	)

	return types.NewReply(id, reply), nil
}

// Reset clears the scores and transcript of a session. The id and profile
// are kept, and message ids seen so far are forgotten.
func (s *Service) Reset(ctx context.Context, id string) (types.SessionView, error) {
	store, deduper, err := s.components()
	if err != nil {
		return types.SessionView{}, err
	}
	var view types.SessionView
	err = store.Update(ctx, id, func(sess *model.Session) error {
		sess.Reset()
		view = types.NewSessionView(sess)
		return nil
	})
	if err != nil {
		return types.SessionView{}, err
	}
	deduper.Forget(ctx, dedupe.Key(id, ""))
	s.logger.Debug(ctx, "session reset", logger.String("sessionID", id))
	return view, nil
}

// DeleteSession ends a session.
func (s *Service) DeleteSession(ctx context.Context, id string) error {
	store, deduper, err := s.components()
	if err != nil {
		return err
	}
	if err := store.Delete(ctx, id); err != nil {
		return err
	}
	deduper.Forget(ctx, dedupe.Key(id, ""))
	s.logger.Debug(ctx, "session deleted", logger.String("sessionID", id))
	return nil
}

// UpdateProfile replaces the profile of a session. Out-of-range values are
// clamped and unknown choices dropped.
func (s *Service) UpdateProfile(ctx context.Context, id string, p model.Profile) (types.SessionView, error) {
	store, _, err := s.components()
	if err != nil {
		return types.SessionView{}, err
	}
	var view types.SessionView
	err = store.Update(ctx, id, func(sess *model.Session) error {
		sess.Profile = p.Normalize()
		view = types.NewSessionView(sess)
		return nil
	})
	if err != nil {
		return types.SessionView{}, err
	}
	return view, nil
}

// Summary returns the recorded scores with the current prediction.
func (s *Service) Summary(ctx context.Context, id string) (types.Summary, error) {
	store, _, err := s.components()
	if err != nil {
		return types.Summary{}, err
	}
	sess, err := store.Get(ctx, id)
	if err != nil {
		return types.Summary{}, err
	}
	return types.NewSummary(sess.Scores), nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":     s.started,
		"maxSessions": s.maxSessions,
		"idleTTL":     s.idleTTL.String(),
		"dedupeSize":  s.dedupeSize,
	}

	if s.started {
		active := s.sessions.Count(context.Background())
		stats["activeSessions"] = active
		stats["dedupeEntries"] = s.deduper.Size()
		metrics.UpdateActiveSessions(active)
	}

	return stats
}
