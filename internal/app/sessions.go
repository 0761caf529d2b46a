package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/randomtoy/klondike-go/internal/domain"
	"github.com/randomtoy/klondike-go/internal/ports"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrTooManyGames = errors.New("too many active games")
)

// RNGFactory returns the RNG for a new game. A nil seed asks for an
// unpredictable deal.
type RNGFactory func(seed *uint64) domain.RNG

type session struct {
	mu       sync.Mutex
	ctl      *Controller
	stop     func()
	lastSeen atomic.Int64 // unix nanos
}

func (s *session) touch(now time.Time) { s.lastSeen.Store(now.UnixNano()) }

func (s *session) idleSince(cutoff time.Time) bool {
	return s.lastSeen.Load() < cutoff.UnixNano()
}

// Registry hosts many independent games. Each game is mutated by one
// caller at a time, including its clock.
type Registry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*session

	newRNG   RNGFactory
	prefs    ports.Preferences
	notifier ports.WinNotifier
	renderer ports.Renderer
	clock    ports.Clock
	maxGames int
	idleTTL  time.Duration
	now      func() time.Time
	logger   *slog.Logger
}

// RegistryOption tunes a Registry.
type RegistryOption func(*Registry)

// WithIdleTTL evicts games nobody has touched for ttl. Zero keeps games
// until they are deleted.
func WithIdleTTL(ttl time.Duration) RegistryOption {
	return func(r *Registry) { r.idleTTL = ttl }
}

// WithNow replaces the wall clock used for idle tracking.
func WithNow(now func() time.Time) RegistryOption {
	return func(r *Registry) { r.now = now }
}

// NewRegistry builds a registry. clock, renderer and notifier may be nil;
// maxGames <= 0 means no limit.
func NewRegistry(newRNG RNGFactory, prefs ports.Preferences, renderer ports.Renderer, notifier ports.WinNotifier, clock ports.Clock, maxGames int, logger *slog.Logger, opts ...RegistryOption) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Registry{
		sessions: make(map[uuid.UUID]*session),
		newRNG:   newRNG,
		prefs:    prefs,
		renderer: renderer,
		notifier: notifier,
		clock:    clock,
		maxGames: maxGames,
		now:      time.Now,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create deals a new game and starts its clock. Idle games are evicted
// first so they do not count against the cap.
func (r *Registry) Create(ctx context.Context, seed *uint64) (uuid.UUID, error) {
	r.Sweep(ctx)
	id := uuid.New()
	ctl := NewController(r.newRNG(seed), r.prefs, r.renderer, r.notifier, r.logger.With("game_id", id.String()))
	ctl.NewGame(ctx)
	s := &session{ctl: ctl}
	s.touch(r.now())
	if r.clock != nil {
		s.stop = r.clock.Start(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.ctl.Tick()
		})
	}

	r.mu.Lock()
	if r.maxGames > 0 && len(r.sessions) >= r.maxGames {
		r.mu.Unlock()
		s.close()
		return uuid.Nil, ErrTooManyGames
	}
	r.sessions[id] = s
	r.mu.Unlock()

	r.logger.InfoContext(ctx, "game created", "game_id", id.String(), "active", r.Len())
	return id, nil
}

// Do runs fn with exclusive access to the game's controller.
func (r *Registry) Do(id uuid.UUID, fn func(*Controller) error) error {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return ErrGameNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch(r.now())
	return fn(s.ctl)
}

// Delete stops the game's clock and forgets it.
func (r *Registry) Delete(id uuid.UUID) error {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if !ok {
		return ErrGameNotFound
	}
	s.close()
	return nil
}

// Sweep stops and forgets every game idle for longer than the TTL. It
// returns the number evicted.
func (r *Registry) Sweep(ctx context.Context) int {
	if r.idleTTL <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.idleTTL)

	var expired []*session
	r.mu.Lock()
	for id, s := range r.sessions {
		if s.idleSince(cutoff) {
			delete(r.sessions, id)
			expired = append(expired, s)
		}
	}
	r.mu.Unlock()

	for _, s := range expired {
		s.close()
	}
	if len(expired) > 0 {
		r.logger.InfoContext(ctx, "evicted idle games", "count", len(expired), "active", r.Len())
	}
	return len(expired)
}

// Len is the number of active games.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Close stops every clock and drops all games.
func (r *Registry) Close() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[uuid.UUID]*session)
	r.mu.Unlock()

	for _, s := range sessions {
		s.close()
	}
}

func (s *session) close() {
	s.mu.Lock()
	stop := s.stop
	s.stop = nil
	s.mu.Unlock()
	if stop != nil {
		stop()
	}
}
