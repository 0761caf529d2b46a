package prefs

import (
	"context"
	"sync"

	"github.com/randomtoy/klondike-go/internal/domain"
	"github.com/randomtoy/klondike-go/internal/ports"
)

// MemoryStore keeps the preference for the life of the process.
type MemoryStore struct {
	mu sync.Mutex
	n  domain.DrawCount
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) DrawCount(_ context.Context) (domain.DrawCount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.n == 0 {
		return 0, ports.ErrNoPreference
	}
	return s.n, nil
}

func (s *MemoryStore) SetDrawCount(_ context.Context, n domain.DrawCount) error {
	if !n.Valid() {
		return domain.ErrInvalidDrawCount
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n = n
	return nil
}
