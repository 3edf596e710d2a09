package session

import (
	"context"
	"errors"
	"sync"
)

// ErrAnonymous is returned by OwnerID when the token has no owner bound.
var ErrAnonymous = errors.New("session: no owner bound")

// Store maps an opaque session token to at most one authenticated owner id.
// Bind overwrites any previous binding for the token; Clear is idempotent
// and succeeds even when nothing was bound.
type Store interface {
	Bind(ctx context.Context, token, ownerID string) error
	OwnerID(ctx context.Context, token string) (string, error)
	Clear(ctx context.Context, token string) error
}

// memoryStore keeps bindings in process memory. It backs tests and local
// development; production uses the Redis-backed store.
type memoryStore struct {
	mu       sync.RWMutex
	bindings map[string]string
}

// NewMemoryStore returns an in-memory Store.
func NewMemoryStore() Store {
	return &memoryStore{bindings: make(map[string]string)}
}

func (s *memoryStore) Bind(_ context.Context, token, ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bindings[token] = ownerID
	return nil
}

func (s *memoryStore) OwnerID(_ context.Context, token string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ownerID, ok := s.bindings[token]
	if !ok {
		return "", ErrAnonymous
	}
	return ownerID, nil
}

func (s *memoryStore) Clear(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.bindings, token)
	return nil
}
