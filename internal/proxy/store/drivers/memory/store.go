// Package memory provides the default in-process token cache driver.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jasiripay/krabridge/internal/proxy/domain"
	"github.com/jasiripay/krabridge/internal/proxy/store"
)

type Store struct {
	mu     sync.RWMutex
	tokens map[string]domain.CachedToken

	// now is swappable for tests.
	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		tokens: make(map[string]domain.CachedToken),
		now:    time.Now,
	}
}

func (s *Store) Get(ctx context.Context, app string) (domain.CachedToken, error) {
	s.mu.RLock()
	token, ok := s.tokens[app]
	s.mu.RUnlock()

	if !ok || token.Expired(s.now()) {
		return domain.CachedToken{}, store.ErrNotFound
	}
	return token, nil
}

func (s *Store) Put(ctx context.Context, token domain.CachedToken) error {
	s.mu.Lock()
	s.tokens[token.App] = token
	s.mu.Unlock()
	return nil
}

func (s *Store) Delete(ctx context.Context, app string) error {
	s.mu.Lock()
	delete(s.tokens, app)
	s.mu.Unlock()
	return nil
}

func (s *Store) Ping(ctx context.Context) error { return nil }

func (s *Store) Close() error { return nil }
